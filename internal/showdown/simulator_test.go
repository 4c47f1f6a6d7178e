package showdown

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/showdown/internal/statistics"
	"github.com/lox/showdown/poker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func mustScenario(t *testing.T, board string, players ...string) Scenario {
	t.Helper()
	s, err := ParseScenario(players, board)
	require.NoError(t, err)
	return s
}

func TestRunCompleteBoardIsExact(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	sim := New(Config{Iterations: 1000, Workers: 4, Clock: clock, Logger: testLogger()})

	report, err := sim.Run(context.Background(), mustScenario(t, "2C 7D 9H JS 3C", "AS AH", "KS KH"))
	require.NoError(t, err)

	assert.True(t, report.Exact)
	assert.Equal(t, 1, report.Iterations)
	assert.Equal(t, time.Duration(0), report.Duration)
	assert.Equal(t, 1.0, report.Players[0].Equity.Mean())
	assert.Equal(t, 0.0, report.Players[1].Equity.Mean())
	require.NotNil(t, report.Players[0].Final)
	assert.Equal(t, "Pair of Aces", report.Players[0].Final.Describe())
	assert.Equal(t, []int{0}, report.Winners())
}

func TestRunAcesAgainstKings(t *testing.T) {
	t.Parallel()
	sim := New(Config{
		Iterations:       20_000,
		Workers:          4,
		Seed:             1,
		ProgressInterval: time.Hour,
		Clock:            quartz.NewMock(t),
		Logger:           testLogger(),
	})

	report, err := sim.Run(context.Background(), mustScenario(t, "", "AS AH", "KS KH"))
	require.NoError(t, err)

	assert.False(t, report.Exact)
	assert.Equal(t, 20_000, report.Iterations)
	assert.Equal(t, 4, report.Workers)
	// Aces are roughly an 82% favourite.
	assert.InDelta(t, 0.82, report.Players[0].Equity.Mean(), 0.03)

	equities := []statistics.Equity{report.Players[0].Equity, report.Players[1].Equity}
	assert.InDelta(t, 1.0, statistics.TotalEquity(equities), 1e-9)
	for i := range report.Players {
		require.NoError(t, report.Players[i].Equity.Validate())
	}
}

func TestRunIsDeterministicForSeed(t *testing.T) {
	t.Parallel()
	scenario := mustScenario(t, "2C 7D 9H", "AS KS", "QD QC", "8H 9S")
	run := func() *Report {
		sim := New(Config{Iterations: 3000, Workers: 3, Seed: 42, Logger: testLogger()})
		report, err := sim.Run(context.Background(), scenario)
		require.NoError(t, err)
		return report
	}

	a, b := run(), run()
	for i := range a.Players {
		assert.Equal(t, a.Players[i].Equity, b.Players[i].Equity, "player %d", i)
	}
}

func TestRunOneCardToComeWithLockedNuts(t *testing.T) {
	t.Parallel()
	sim := New(Config{Iterations: 500, Workers: 2, Logger: testLogger()})

	report, err := sim.Run(context.Background(), mustScenario(t, "AS KS QS JS", "TS 2C", "9D 9C"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, report.Players[0].Equity.Mean())
	assert.Equal(t, 500, report.Players[0].Equity.Categories[poker.StraightFlush.Strength()])
	assert.Equal(t, 500, report.Players[1].Equity.Losses)
}

func TestRunCapsWorkersAtIterations(t *testing.T) {
	t.Parallel()
	sim := New(Config{Iterations: 3, Workers: 8, Logger: testLogger()})

	report, err := sim.Run(context.Background(), mustScenario(t, "", "AS AH", "KS KH"))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Workers)
	assert.Equal(t, 3, report.Iterations)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := New(Config{Iterations: 10_000, Workers: 2, Logger: testLogger()})
	_, err := sim.Run(ctx, mustScenario(t, "", "AS AH", "KS KH"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsInvalidScenario(t *testing.T) {
	t.Parallel()
	sim := New(Config{Logger: testLogger()})
	_, err := sim.Run(context.Background(), Scenario{Players: [][]poker.Card{poker.MustParseCards("AS AH")}})
	require.ErrorIs(t, err, poker.ErrInvalidInput)
}

func TestRunRecordsMetrics(t *testing.T) {
	t.Parallel()
	metrics := NewMetrics()
	sim := New(Config{Iterations: 1000, Workers: 2, Seed: 5, Logger: testLogger(), Metrics: metrics})

	_, err := sim.Run(context.Background(), mustScenario(t, "2C 7D 9H", "AS AH", "KS KH", "QS QH"))
	require.NoError(t, err)

	assert.Equal(t, 1000.0, testutil.ToFloat64(metrics.runouts))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs))

	var evaluations float64
	for _, c := range poker.Categories() {
		evaluations += testutil.ToFloat64(metrics.evaluations.WithLabelValues(CategoryLabel(c)))
	}
	assert.Equal(t, 3000.0, evaluations)

	path := filepath.Join(t.TempDir(), "showdown.prom")
	require.NoError(t, metrics.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "showdown_runouts_total 1000"))
}

func TestCategoryLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "full_house", CategoryLabel(poker.FullHouse))
	assert.Equal(t, "high_card", CategoryLabel(poker.HighCard))
}
