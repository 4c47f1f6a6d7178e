package showdown

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/statistics"
	"github.com/lox/showdown/poker"
	"golang.org/x/sync/errgroup"
)

// cancelCheckInterval is how many runouts a worker deals between context checks.
const cancelCheckInterval = 1024

// Config controls a Simulator.
type Config struct {
	Iterations int
	Workers    int
	Seed       int64

	// ProgressInterval is how often progress is logged. Zero disables it.
	ProgressInterval time.Duration

	Clock   quartz.Clock
	Logger  *log.Logger
	Metrics *Metrics
}

// Simulator estimates showdown equity by dealing random runouts.
type Simulator struct {
	config  Config
	clock   quartz.Clock
	logger  *log.Logger
	metrics *Metrics
}

// New creates a simulator, filling in defaults for unset fields.
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Iterations <= 0 {
		config.Iterations = 1
	}
	clock := config.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{
		config:  config,
		clock:   clock,
		logger:  logger.WithPrefix("simulator"),
		metrics: config.Metrics,
	}
}

// workerResult holds one worker's tallies
type workerResult struct {
	equities   []statistics.Equity
	runouts    int
	categories [poker.NumCategories]int
}

// Run evaluates the scenario. A complete board is settled by a single
// showdown; otherwise Iterations random runouts are dealt across Workers.
func (s *Simulator) Run(ctx context.Context, scenario Scenario) (*Report, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	start := s.clock.Now()
	report := &Report{
		Players: make([]PlayerReport, len(scenario.Players)),
		Board:   scenario.Board,
		Seed:    s.config.Seed,
	}
	for i, hole := range scenario.Players {
		report.Players[i].Hole = hole
	}

	if scenario.Complete() {
		if err := s.settle(scenario, report); err != nil {
			return nil, err
		}
	} else if err := s.simulate(ctx, scenario, report); err != nil {
		return nil, err
	}

	report.Duration = s.clock.Since(start)
	s.metrics.observeRun(report.Duration.Seconds())
	s.logger.Debug("run complete",
		"players", len(scenario.Players),
		"iterations", report.Iterations,
		"duration", report.Duration)
	return report, nil
}

func (s *Simulator) settle(scenario Scenario, report *Report) error {
	results, winners, err := scenario.Showdown()
	if err != nil {
		return err
	}

	share := make([]float64, len(results))
	shares(share, winners)

	var categories [poker.NumCategories]int
	for i, r := range results {
		report.Players[i].Final = &results[i]
		report.Players[i].Equity.Add(share[i], r.Category)
		categories[r.Category.Strength()]++
	}
	report.Iterations = 1
	report.Workers = 1
	report.Exact = true
	s.metrics.observe(0, categories)
	return nil
}

func (s *Simulator) simulate(ctx context.Context, scenario Scenario, report *Report) error {
	workers := min(s.config.Workers, s.config.Iterations)
	perWorker := s.config.Iterations / workers
	remainder := s.config.Iterations % workers

	s.logger.Debug("starting simulation",
		"players", len(scenario.Players),
		"board", poker.FormatCards(scenario.Board),
		"iterations", s.config.Iterations,
		"workers", workers,
		"seed", s.config.Seed)

	var completed atomic.Int64
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var progress quartz.Waiter
	if s.config.ProgressInterval > 0 {
		total := s.config.Iterations
		progress = s.clock.TickerFunc(ctx, s.config.ProgressInterval, func() error {
			done := completed.Load()
			s.logger.Info("progress",
				"completed", done,
				"total", total,
				"percent", fmt.Sprintf("%.1f", 100*float64(done)/float64(total)))
			return nil
		}, "progress")
	}

	results := make([]workerResult, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		iterations := perWorker
		if w < remainder {
			iterations++
		}
		rng := randutil.Stream(s.config.Seed, w)

		g.Go(func() error {
			deck := poker.NewDeck(rng, scenario.Dead()...)
			res, err := runWorker(gctx, scenario, deck, iterations, &completed)
			if err != nil {
				return err
			}
			results[w] = res
			s.metrics.observe(res.runouts, res.categories)
			return nil
		})
	}

	err := g.Wait()
	cancel()
	if progress != nil {
		// The ticker only ever returns context errors once cancelled.
		_ = progress.Wait()
	}
	if err != nil {
		return fmt.Errorf("simulation cancelled after %d runouts: %w", completed.Load(), err)
	}

	for _, res := range results {
		for i := range report.Players {
			report.Players[i].Equity.Merge(res.equities[i])
		}
		report.Iterations += res.runouts
	}
	report.Workers = workers
	return nil
}

func runWorker(ctx context.Context, scenario Scenario, deck *poker.Deck, iterations int, completed *atomic.Int64) (workerResult, error) {
	res := workerResult{equities: make([]statistics.Equity, len(scenario.Players))}
	need := BoardSize - len(scenario.Board)
	results := make([]poker.Result, len(scenario.Players))
	share := make([]float64, len(scenario.Players))

	for i := range iterations {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		deck.Shuffle()
		runout := deck.Deal(need)
		if err := evaluatePlayers(results, scenario.Players, scenario.Board, runout); err != nil {
			return res, err
		}
		shares(share, poker.Winners(results))

		for p, r := range results {
			res.equities[p].Add(share[p], r.Category)
			res.categories[r.Category.Strength()]++
		}
		res.runouts++
		completed.Add(1)
	}
	return res, nil
}
