// Package statistics accumulates per-player showdown equity.
package statistics

import (
	"fmt"
	"math"

	"github.com/lox/showdown/poker"
)

// Equity tracks one player's results across many runouts. Each trial adds a
// pot share: 1 for an outright win, 1/k for a k-way split and 0 for a loss.
type Equity struct {
	Trials int
	Wins   int
	Ties   int
	Losses int

	SumShare  float64
	SumShare2 float64 // Sum of squares for variance calculation

	// Categories counts the category of the player's best hand per trial.
	Categories [poker.NumCategories]int
}

// Add records one trial with the given pot share and the player's final category.
func (e *Equity) Add(share float64, category poker.HandCategory) {
	e.Trials++
	e.SumShare += share
	e.SumShare2 += share * share

	switch {
	case share >= 1:
		e.Wins++
	case share > 0:
		e.Ties++
	default:
		e.Losses++
	}

	if s := category.Strength(); s >= 0 {
		e.Categories[s]++
	}
}

// Merge folds other into e. Workers keep their own accumulators and merge at
// the end.
func (e *Equity) Merge(other Equity) {
	e.Trials += other.Trials
	e.Wins += other.Wins
	e.Ties += other.Ties
	e.Losses += other.Losses
	e.SumShare += other.SumShare
	e.SumShare2 += other.SumShare2
	for i, n := range other.Categories {
		e.Categories[i] += n
	}
}

// Mean returns the average pot share per trial, i.e. the equity.
func (e *Equity) Mean() float64 {
	if e.Trials == 0 {
		return 0
	}
	return e.SumShare / float64(e.Trials)
}

// Variance returns the sample variance of the pot share
func (e *Equity) Variance() float64 {
	if e.Trials < 2 {
		return 0
	}
	mean := e.Mean()
	v := (e.SumShare2 - float64(e.Trials)*mean*mean) / float64(e.Trials-1)
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation of the pot share
func (e *Equity) StdDev() float64 {
	return math.Sqrt(e.Variance())
}

// StdError returns the standard error of the mean
func (e *Equity) StdError() float64 {
	if e.Trials == 0 {
		return 0
	}
	return e.StdDev() / math.Sqrt(float64(e.Trials))
}

// ConfidenceInterval95 returns the 95% confidence interval for the equity
func (e *Equity) ConfidenceInterval95() (float64, float64) {
	mean := e.Mean()
	margin := 1.96 * e.StdError()
	return math.Max(mean-margin, 0), math.Min(mean+margin, 1)
}

// WinRate returns the fraction of trials won outright.
func (e *Equity) WinRate() float64 {
	return e.rate(e.Wins)
}

// TieRate returns the fraction of trials that ended in a split.
func (e *Equity) TieRate() float64 {
	return e.rate(e.Ties)
}

// CategoryRate returns how often the player finished with category c.
func (e *Equity) CategoryRate(c poker.HandCategory) float64 {
	s := c.Strength()
	if s < 0 {
		return 0
	}
	return e.rate(e.Categories[s])
}

func (e *Equity) rate(n int) float64 {
	if e.Trials == 0 {
		return 0
	}
	return float64(n) / float64(e.Trials)
}

// Validate checks that the counters agree with each other.
func (e *Equity) Validate() error {
	if e.Wins+e.Ties+e.Losses != e.Trials {
		return fmt.Errorf("outcomes (%d wins, %d ties, %d losses) do not sum to %d trials",
			e.Wins, e.Ties, e.Losses, e.Trials)
	}
	var categories int
	for _, n := range e.Categories {
		categories += n
	}
	if categories != e.Trials {
		return fmt.Errorf("category histogram total (%d) does not match trials (%d)", categories, e.Trials)
	}
	if e.SumShare < 0 || e.SumShare > float64(e.Trials)+1e-9 {
		return fmt.Errorf("share total %.6f outside [0, %d]", e.SumShare, e.Trials)
	}
	return nil
}

// TotalEquity sums the means of all players. For a complete set of players it
// is 1 within floating point error.
func TotalEquity(players []Equity) float64 {
	var total float64
	for i := range players {
		total += players[i].Mean()
	}
	return total
}
