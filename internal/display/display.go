// Package display renders evaluator and simulator output for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lox/showdown/internal/crosscheck"
	"github.com/lox/showdown/internal/showdown"
	"github.com/lox/showdown/poker"
)

// Card renders a card with its suit symbol, coloured by suit.
func Card(c poker.Card) string {
	if c.Suit().IsRed() {
		return RedCardStyle.Render(c.Pretty())
	}
	return BlackCardStyle.Render(c.Pretty())
}

// Cards renders cards separated by spaces.
func Cards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return strings.Join(parts, " ")
}

// Result writes a single evaluation.
func Result(w io.Writer, r poker.Result) {
	fmt.Fprintf(w, "%s\n", HeaderStyle.Render(r.Describe()))
	fmt.Fprintf(w, "%s  %s\n", Cards(r.Hand[:]), InfoStyle.Render(fmt.Sprintf("%s %s", r.Category, r.Key)))
}

// Showdown writes each player's hand and marks the winners.
func Showdown(w io.Writer, s showdown.Scenario, results []poker.Result, winners []int) {
	if len(s.Board) > 0 {
		fmt.Fprintf(w, "%s\n", HeaderStyle.Render("board"))
		fmt.Fprintf(w, "%s\n\n", Cards(s.Board))
	}

	won := make(map[int]bool, len(winners))
	for _, i := range winners {
		won[i] = true
	}
	outcome := WinStyle.Render("wins")
	if len(winners) > 1 {
		outcome = TieStyle.Render("splits")
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t\n",
		HeaderStyle.Render("hand"),
		HeaderStyle.Render("best five"),
		HeaderStyle.Render("result"))
	for i, r := range results {
		result := ""
		if won[i] {
			result = outcome
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			HandStyle.Render(poker.FormatCards(s.Players[i])),
			poker.FormatCards(r.Hand[:]),
			CategoryStyle.Render(r.Describe()),
			result)
	}
	tw.Flush()
}

// Equity writes the per-player equity table of a simulator report.
func Equity(w io.Writer, report *showdown.Report) {
	if len(report.Board) > 0 {
		fmt.Fprintf(w, "%s\n", HeaderStyle.Render("board"))
		fmt.Fprintf(w, "%s\n\n", Cards(report.Board))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("hand"),
		HeaderStyle.Render("equity"),
		HeaderStyle.Render("win"),
		HeaderStyle.Render("tie"),
		HeaderStyle.Render("±95%"))
	for _, p := range report.Players {
		low, high := p.Equity.ConfidenceInterval95()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			HandStyle.Render(poker.FormatCards(p.Hole)),
			PercentStyle.Render(percent(p.Equity.Mean())),
			WinStyle.Render(percent(p.Equity.WinRate())),
			TieStyle.Render(percent(p.Equity.TieRate())),
			InfoStyle.Render(fmt.Sprintf("%.2f", 100*(high-low)/2)))
	}
	tw.Flush()

	fmt.Fprintf(w, "\n")
	if report.Exact {
		fmt.Fprintf(w, "exact showdown in %v\n", report.Duration.Truncate(time.Microsecond))
		return
	}
	fmt.Fprintf(w, "%d iterations on %d workers in %v (seed %d)\n",
		report.Iterations, report.Workers, report.Duration.Truncate(time.Millisecond), report.Seed)
}

// Categories writes how often each player finished with each category,
// strongest first.
func Categories(w io.Writer, report *showdown.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s", CategoryStyle.Render("hand"))
	for _, p := range report.Players {
		fmt.Fprintf(tw, "\t%s", HandStyle.Render(poker.FormatCards(p.Hole)))
	}
	fmt.Fprintf(tw, "\n")

	categories := poker.Categories()
	for i := len(categories) - 1; i >= 0; i-- {
		c := categories[i]
		seen := false
		for _, p := range report.Players {
			if p.Equity.Categories[c.Strength()] > 0 {
				seen = true
				break
			}
		}
		if !seen {
			continue
		}

		fmt.Fprintf(tw, "%s", CategoryStyle.Render(c.String()))
		for _, p := range report.Players {
			if p.Equity.Categories[c.Strength()] == 0 {
				fmt.Fprintf(tw, "\t%s", PercentStyle.Render("."))
				continue
			}
			fmt.Fprintf(tw, "\t%s", PercentStyle.Render(percent(p.Equity.CategoryRate(c))))
		}
		fmt.Fprintf(tw, "\n")
	}
	tw.Flush()
}

// CrossCheck writes a cross-check summary and any recorded mismatches.
func CrossCheck(w io.Writer, s *crosscheck.Summary) {
	if s.OK() {
		fmt.Fprintf(w, "%s %d deals agree (%d splits)\n",
			SuccessStyle.Render("ok"), s.Samples, s.Splits)
	} else {
		fmt.Fprintf(w, "%s %d of %d deals disagree\n",
			ErrorStyle.Render("FAIL"), s.MismatchCount, s.Samples)
		for _, m := range s.Mismatches {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	var hands int
	for _, n := range s.Categories {
		hands += n
	}
	categories := poker.Categories()
	for i := len(categories) - 1; i >= 0; i-- {
		c := categories[i]
		n := s.Categories[c.Strength()]
		rate := 0.0
		if hands > 0 {
			rate = float64(n) / float64(hands)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", CategoryStyle.Render(c.String()), n, PercentStyle.Render(percent(rate)))
	}
	tw.Flush()
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", 100*f)
}
