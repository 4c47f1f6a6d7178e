package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run parses args like the real binary and captures stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("showdown"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)

	args = append([]string{"--config", filepath.Join(t.TempDir(), "missing.hcl"), "--no-color", "--log-level", "error"}, args...)
	ctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	stdout = &buf
	t.Cleanup(func() { stdout = os.Stdout })

	err = ctx.Run(&cli.Globals)
	return buf.String(), err
}

func TestEvalCommand(t *testing.T) {
	out, err := run(t, "eval", "AS", "KS", "QS", "JS", "TS", "2D", "3C")
	require.NoError(t, err)
	assert.Contains(t, out, "Royal Flush")
	assert.Contains(t, out, "A♠ K♠ Q♠ J♠ T♠")
	assert.Contains(t, out, "hole cards Premium")
}

func TestEvalCommandRejectsDuplicates(t *testing.T) {
	_, err := run(t, "eval", "AS AS QS JS TS 2D 3C")
	assert.ErrorContains(t, err, "duplicate card")
}

func TestCompareCommand(t *testing.T) {
	out, err := run(t, "compare", "--board", "2C 7D 9H JS 3C", "AS AH", "KS KH")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var aces string
	for _, line := range lines {
		if strings.HasPrefix(line, "AS AH") {
			aces = line
		}
	}
	assert.Contains(t, aces, "Pair of Aces")
	assert.Contains(t, aces, "wins")
}

func TestSimulateCommand(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.json")
	metrics := filepath.Join(dir, "showdown.prom")

	out, err := run(t, "simulate", "-n", "2000", "--workers", "2", "--seed", "9",
		"--json", report, "--metrics-file", metrics, "--categories", "AS AH", "KS KH")
	require.NoError(t, err)
	assert.Contains(t, out, "2000 iterations on 2 workers")
	assert.Contains(t, out, "Pair")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(9), decoded["seed"])

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "showdown_runouts_total 2000")
}

func TestSimulateScenarioFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showdown.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation {
  iterations = 500
  workers    = 1
  seed       = 3
}
scenario "locked" {
  players = ["TS 2C", "9D 9C"]
  board   = "AS KS QS JS"
}
`), 0o644))

	out, err := run(t, "--config", path, "simulate", "--scenario", "locked")
	require.NoError(t, err)
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "500 iterations on 1 workers")

	_, err = run(t, "--config", path, "simulate", "--scenario", "nope")
	assert.ErrorContains(t, err, "not found")
}

func TestSimulateNeedsHands(t *testing.T) {
	_, err := run(t, "simulate")
	assert.ErrorContains(t, err, "either hands or --scenario is required")
}

func TestVerifyCommand(t *testing.T) {
	out, err := run(t, "verify", "--samples", "3000", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "ok 3000 deals agree")
}

func TestDeckCommand(t *testing.T) {
	out, err := run(t, "deck")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "2♦ 2♣ 2♥ 2♠", lines[0])
	assert.Equal(t, "A♦ A♣ A♥ A♠", lines[12])

	a, err := run(t, "deck", "--seed", "5")
	require.NoError(t, err)
	b, err := run(t, "deck", "--seed", "5")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, out, a)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "info", "json")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "iterations", 10)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"iterations":10`)

	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
}
