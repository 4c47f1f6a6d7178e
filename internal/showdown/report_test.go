package showdown

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportJSON(t *testing.T) {
	t.Parallel()
	sim := New(Config{Logger: testLogger()})
	report, err := sim.Run(context.Background(), mustScenario(t, "2C 3D 4H 5S 9C", "AS AH", "KD QD"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.EncodeJSON(&buf))

	var decoded jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "2C 3D 4H 5S 9C", decoded.Board)
	assert.True(t, decoded.Exact)
	require.Len(t, decoded.Players, 2)

	hero, villain := decoded.Players[0], decoded.Players[1]
	assert.Equal(t, "AS AH", hero.Hole)
	require.NotNil(t, hero.Hand)
	// The board completes a wheel for the aces.
	assert.Equal(t, "Straight", hero.Hand.Category)
	assert.Equal(t, []int{3}, hero.Hand.Key)
	assert.Equal(t, 1.0, hero.Equity)
	assert.Equal(t, map[string]int{"straight": 1}, hero.Categories)

	require.NotNil(t, villain.Hand)
	assert.Equal(t, "High Card, King", villain.Hand.Describe)
	assert.Equal(t, 0.0, villain.Equity)
}

func TestReportWriteJSON(t *testing.T) {
	t.Parallel()
	sim := New(Config{Iterations: 100, Workers: 1, Logger: testLogger()})
	report, err := sim.Run(context.Background(), mustScenario(t, "", "AS AH", "KS KH"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteJSON(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded jsonReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 100, decoded.Iterations)
	assert.Nil(t, decoded.Players[0].Hand)

	marshalled, err := report.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(bytes.TrimSpace(data)), string(marshalled))
}
