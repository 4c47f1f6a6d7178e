package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lox/showdown/internal/config"
	"github.com/lox/showdown/internal/crosscheck"
	"github.com/lox/showdown/internal/display"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/showdown"
	"github.com/lox/showdown/poker"
)

var stdout io.Writer = os.Stdout

// EvalCmd evaluates 5 to 52 cards and prints the best five
type EvalCmd struct {
	Cards []string `kong:"arg,help='Cards such as AS KS QS JS TS 2D 3C'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	cards, err := poker.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return err
	}
	result, err := poker.EvaluateN(cards, len(cards))
	if err != nil {
		return err
	}

	display.Result(stdout, result)
	fmt.Fprintf(stdout, "%s %s\n",
		display.InfoStyle.Render("hole cards"),
		poker.CategorizeHoleCards(cards[0], cards[1]))
	return nil
}

// CompareCmd settles a showdown between hands on a complete board
type CompareCmd struct {
	Board string   `kong:"required,help='Five board cards'"`
	Hands []string `kong:"arg,help='Hole cards per player, e.g. \"AS AH\" \"KS KH\"'"`
}

func (c *CompareCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	scenario, err := showdown.ParseScenario(c.Hands, c.Board)
	if err != nil {
		return err
	}
	results, winners, err := scenario.Showdown()
	if err != nil {
		return err
	}

	display.Showdown(stdout, scenario, results, winners)
	return nil
}

// SimulateCmd estimates each player's equity
type SimulateCmd struct {
	Scenario    string   `kong:"help='Named scenario from the configuration file'"`
	Board       string   `kong:"help='Known board cards (0 to 5)'"`
	Hands       []string `kong:"arg,optional,help='Hole cards per player'"`
	Iterations  int      `kong:"short='n',help='Runouts to deal (overrides config)'"`
	Workers     int      `kong:"help='Worker goroutines (overrides config)'"`
	Seed        *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	Categories  bool     `kong:"help='Show final hand category frequencies'"`
	JSON        string   `kong:"name='json',type='path',help='Write the report as JSON to this file'"`
	MetricsFile string   `kong:"type='path',help='Write Prometheus metrics in textfile format'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	scenario, err := c.scenario(cfg)
	if err != nil {
		return err
	}

	seed := cfg.Simulation.Seed
	switch {
	case c.Seed != nil:
		seed = *c.Seed
	case seed == 0:
		seed = time.Now().UnixNano()
	}
	logger.Info("using seed", "seed", seed)

	interval, err := cfg.ProgressInterval()
	if err != nil {
		return err
	}
	simConfig := showdown.Config{
		Iterations:       cfg.Simulation.Iterations,
		Workers:          cfg.Simulation.Workers,
		Seed:             seed,
		ProgressInterval: interval,
		Logger:           logger,
	}
	if c.Iterations > 0 {
		simConfig.Iterations = c.Iterations
	}
	if c.Workers > 0 {
		simConfig.Workers = c.Workers
	}
	if c.MetricsFile != "" {
		simConfig.Metrics = showdown.NewMetrics()
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	report, err := showdown.New(simConfig).Run(ctx, scenario)
	if err != nil {
		return err
	}

	display.Equity(stdout, report)
	if c.Categories {
		fmt.Fprintln(stdout)
		display.Categories(stdout, report)
	}

	if c.JSON != "" {
		if err := report.WriteJSON(c.JSON); err != nil {
			return err
		}
		logger.Info("wrote report", "path", c.JSON)
	}
	if c.MetricsFile != "" {
		if err := simConfig.Metrics.WriteTextfile(c.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		logger.Info("wrote metrics", "path", c.MetricsFile)
	}
	return nil
}

// scenario resolves the hands from the command line or a named scenario.
func (c *SimulateCmd) scenario(cfg *config.Config) (showdown.Scenario, error) {
	if c.Scenario == "" {
		if len(c.Hands) == 0 {
			return showdown.Scenario{}, errors.New("either hands or --scenario is required")
		}
		return showdown.ParseScenario(c.Hands, c.Board)
	}

	if len(c.Hands) > 0 {
		return showdown.Scenario{}, errors.New("hands and --scenario are mutually exclusive")
	}
	named := cfg.GetScenarioByName(c.Scenario)
	if named == nil {
		return showdown.Scenario{}, fmt.Errorf("scenario %q not found in configuration", c.Scenario)
	}
	board := named.Board
	if c.Board != "" {
		board = c.Board
	}
	return showdown.ParseScenario(named.Players, board)
}

// VerifyCmd compares the evaluator against a reference evaluator
type VerifyCmd struct {
	Samples       int    `kong:"default='100000',help='Random deals to compare'"`
	Workers       int    `kong:"help='Concurrent batches (overrides config)'"`
	Seed          *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	MaxMismatches int    `kong:"default='20',help='Mismatching deals to print'"`
}

func (c *VerifyCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	workers := cfg.Simulation.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}
	logger.Info("using seed", "seed", seed)

	ctx, cancel := signalContext(logger)
	defer cancel()

	summary, err := crosscheck.Run(ctx, crosscheck.Config{
		Samples:       c.Samples,
		Workers:       workers,
		Seed:          seed,
		MaxMismatches: c.MaxMismatches,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	display.CrossCheck(stdout, summary)
	if !summary.OK() {
		return fmt.Errorf("%d of %d deals disagree (seed %d)", summary.MismatchCount, summary.Samples, seed)
	}
	return nil
}

// DeckCmd prints the deck, shuffled when a seed is given
type DeckCmd struct {
	Seed *int64 `kong:"help='Shuffle with this seed; without it the deck is printed in index order'"`
}

func (c *DeckCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	deck := poker.NewDeck(nil)
	if c.Seed != nil {
		deck = poker.NewDeck(randutil.New(*c.Seed))
	}

	cards := deck.Deal(deck.Len())
	for row := 0; row < len(cards); row += poker.NumSuits {
		fmt.Fprintln(stdout, display.Cards(cards[row:row+poker.NumSuits]))
	}
	return nil
}
