package crosscheck

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/showdown/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dealOf(t *testing.T, a, b, board string) Deal {
	t.Helper()
	var d Deal
	copy(d.Board[:], poker.MustParseCards(board))
	copy(d.A[:2], poker.MustParseCards(a))
	copy(d.A[2:], d.Board[:])
	copy(d.B[:2], poker.MustParseCards(b))
	copy(d.B[2:], d.Board[:])
	return d
}

func TestCompareKnownDeals(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		a, b, board string
		want        int
	}{
		{"aces beat kings", "AS AH", "KS KH", "2C 7D 9H JS 3C", 1},
		{"wheel loses to six high", "AS 9D", "6C 9C", "2D 3H 4S 5C KD", -1},
		{"board plays", "2C 3D", "4H 5H", "AS KS QS JS TS", 0},
		{"kicker decides", "AS KD", "AH QD", "AC 7S 8H 2D 3C", 1},
		{"flush over straight", "9S 2S", "9H TD", "JS QS 8S 7C 4D", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ours, ref, _, _, err := Compare(dealOf(t, tt.a, tt.b, tt.board))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ours, "ours")
			assert.Equal(t, tt.want, ref, "reference")
		})
	}
}

func TestRunAgrees(t *testing.T) {
	t.Parallel()
	summary, err := Run(context.Background(), Config{
		Samples: 20_000,
		Workers: 4,
		Seed:    2024,
		Logger:  log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	})
	require.NoError(t, err)

	for _, m := range summary.Mismatches {
		t.Errorf("mismatch: %s", m)
	}
	assert.True(t, summary.OK())
	assert.Equal(t, 20_000, summary.Samples)

	var hands int
	for _, n := range summary.Categories {
		hands += n
	}
	assert.Equal(t, 40_000, hands)
	assert.Positive(t, summary.Splits)
}

func TestRunRejectsNoSamples(t *testing.T) {
	t.Parallel()
	_, err := Run(context.Background(), Config{})
	assert.ErrorIs(t, err, poker.ErrInvalidInput)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Samples: 10_000})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummaryMergeCapsMismatches(t *testing.T) {
	t.Parallel()
	var total Summary
	batch := Summary{Samples: 3, MismatchCount: 3, Mismatches: make([]Mismatch, 3)}
	total.merge(&batch, 4)
	total.merge(&batch, 4)

	assert.Equal(t, 6, total.MismatchCount)
	assert.Len(t, total.Mismatches, 4)
	assert.False(t, total.OK())
}

func TestScoreOrdersCategories(t *testing.T) {
	t.Parallel()
	var quads, boat [poker.ShowdownSize]poker.Card
	copy(quads[:], poker.MustParseCards("AS AH AD AC KS 2H 3H"))
	copy(boat[:], poker.MustParseCards("AS AH AD KS KH 2H 3H"))

	q, err := Score(quads)
	require.NoError(t, err)
	b, err := Score(boat)
	require.NoError(t, err)
	assert.Greater(t, q, b)
}
