// Package crosscheck compares the evaluator's showdown ordering against an
// independent lookup-table evaluator on random deals.
package crosscheck

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/poker"
	"golang.org/x/sync/errgroup"
)

const (
	// batchSize is the number of deals handed to one errgroup task.
	batchSize = 2048
	// DefaultMaxMismatches bounds how many mismatching deals are kept.
	DefaultMaxMismatches = 20
)

// Config controls a cross-check run.
type Config struct {
	Samples       int
	Workers       int
	Seed          int64
	MaxMismatches int
	Logger        *log.Logger
}

// Deal is two hands sharing a board.
type Deal struct {
	A, B  [poker.ShowdownSize]poker.Card
	Board [5]poker.Card
}

// Mismatch records a deal on which the two evaluators disagree.
type Mismatch struct {
	Deal      Deal
	Ours      int
	Reference int
	OursA     poker.Result
	OursB     poker.Result
	// ReferenceA and ReferenceB are the reference evaluator's descriptions.
	ReferenceA string
	ReferenceB string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s vs %s: ours %+d (%s / %s), reference %+d (%s / %s)",
		poker.FormatCards(m.Deal.A[:]), poker.FormatCards(m.Deal.B[:]),
		m.Ours, m.OursA.Describe(), m.OursB.Describe(),
		m.Reference, m.ReferenceA, m.ReferenceB)
}

// Summary is the result of a cross-check run.
type Summary struct {
	Samples    int
	Agreements int
	Splits     int
	// Categories counts our category for every evaluated hand.
	Categories    [poker.NumCategories]int
	MismatchCount int
	Mismatches    []Mismatch
}

// OK reports whether every sample agreed.
func (s *Summary) OK() bool {
	return s.MismatchCount == 0 && s.Agreements == s.Samples
}

func (s *Summary) merge(other *Summary, limit int) {
	s.Samples += other.Samples
	s.Agreements += other.Agreements
	s.Splits += other.Splits
	s.MismatchCount += other.MismatchCount
	for i, n := range other.Categories {
		s.Categories[i] += n
	}
	for _, m := range other.Mismatches {
		if len(s.Mismatches) >= limit {
			break
		}
		s.Mismatches = append(s.Mismatches, m)
	}
}

// Run deals Samples random pairs of hands sharing a board and checks that
// both evaluators order them the same way.
func Run(ctx context.Context, cfg Config) (*Summary, error) {
	if cfg.Samples <= 0 {
		return nil, fmt.Errorf("%w: samples must be positive, got %d", poker.ErrInvalidInput, cfg.Samples)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.MaxMismatches <= 0 {
		cfg.MaxMismatches = DefaultMaxMismatches
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	logger = logger.WithPrefix("crosscheck")

	var (
		mu      sync.Mutex
		summary Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	batches := (cfg.Samples + batchSize - 1) / batchSize
	logger.Debug("starting cross-check", "samples", cfg.Samples, "batches", batches, "workers", cfg.Workers)

	for b := range batches {
		n := min(batchSize, cfg.Samples-b*batchSize)
		rng := randutil.Stream(cfg.Seed, b)

		g.Go(func() error {
			deck := poker.NewDeck(rng)
			var local Summary
			for range n {
				if err := gctx.Err(); err != nil {
					return err
				}
				deck.Shuffle()
				if err := check(DealFrom(deck), &local, cfg.MaxMismatches); err != nil {
					return err
				}
			}

			mu.Lock()
			summary.merge(&local, cfg.MaxMismatches)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if summary.MismatchCount > 0 {
		logger.Warn("evaluators disagree", "mismatches", summary.MismatchCount, "samples", summary.Samples)
	} else {
		logger.Info("evaluators agree", "samples", summary.Samples, "splits", summary.Splits)
	}
	return &summary, nil
}

// DealFrom deals two hole cards each and a five card board.
func DealFrom(deck *poker.Deck) Deal {
	cards := deck.Deal(2*2 + 5)
	var d Deal
	copy(d.Board[:], cards[4:])
	copy(d.A[:2], cards[:2])
	copy(d.A[2:], d.Board[:])
	copy(d.B[:2], cards[2:4])
	copy(d.B[2:], d.Board[:])
	return d
}

// Compare evaluates the deal with both evaluators and returns each one's
// ordering of A against B.
func Compare(d Deal) (ours, ref int, a, b poker.Result, err error) {
	if a, err = poker.Evaluate(d.A[:]); err != nil {
		return 0, 0, a, b, err
	}
	if b, err = poker.Evaluate(d.B[:]); err != nil {
		return 0, 0, a, b, err
	}

	ra, err := Score(d.A)
	if err != nil {
		return 0, 0, a, b, err
	}
	rb, err := Score(d.B)
	if err != nil {
		return 0, 0, a, b, err
	}
	return a.Compare(b), sign(int(ra) - int(rb)), a, b, nil
}

func check(d Deal, s *Summary, limit int) error {
	ours, ref, a, b, err := Compare(d)
	if err != nil {
		return err
	}

	s.Samples++
	s.Categories[a.Category.Strength()]++
	s.Categories[b.Category.Strength()]++

	if ours == ref {
		s.Agreements++
		if ours == 0 {
			s.Splits++
		}
		return nil
	}

	s.MismatchCount++
	if len(s.Mismatches) < limit {
		m := Mismatch{Deal: d, Ours: ours, Reference: ref, OursA: a, OursB: b}
		m.ReferenceA, _ = Describe(d.A)
		m.ReferenceB, _ = Describe(d.B)
		s.Mismatches = append(s.Mismatches, m)
	}
	return nil
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
