package showdown

import (
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/lox/showdown/internal/fileutil"
	"github.com/lox/showdown/internal/statistics"
	"github.com/lox/showdown/poker"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Report is the outcome of a simulator run.
type Report struct {
	Players    []PlayerReport
	Board      []poker.Card
	Iterations int
	Workers    int
	Seed       int64
	Duration   time.Duration
	// Exact is set when the board was complete and no sampling was needed.
	Exact bool
}

// PlayerReport holds one player's cards and accumulated equity.
type PlayerReport struct {
	Hole   []poker.Card
	Equity statistics.Equity
	// Final is the player's hand when the board was complete.
	Final *poker.Result
}

// Winners returns the players with the highest equity.
func (r *Report) Winners() []int {
	var best float64
	var winners []int
	for i := range r.Players {
		eq := r.Players[i].Equity.Mean()
		switch {
		case len(winners) == 0 || eq > best:
			best, winners = eq, []int{i}
		case eq == best:
			winners = append(winners, i)
		}
	}
	return winners
}

type jsonReport struct {
	Board      string       `json:"board"`
	Iterations int          `json:"iterations"`
	Workers    int          `json:"workers"`
	Seed       int64        `json:"seed"`
	DurationMS float64      `json:"duration_ms"`
	Exact      bool         `json:"exact"`
	Players    []jsonPlayer `json:"players"`
}

type jsonPlayer struct {
	Hole       string         `json:"hole"`
	Equity     float64        `json:"equity"`
	StdError   float64        `json:"std_error"`
	CI95       [2]float64     `json:"ci95"`
	Wins       int            `json:"wins"`
	Ties       int            `json:"ties"`
	Losses     int            `json:"losses"`
	Categories map[string]int `json:"categories"`
	Hand       *jsonHand      `json:"hand,omitempty"`
}

type jsonHand struct {
	Category string `json:"category"`
	Key      []int  `json:"key"`
	Cards    string `json:"cards"`
	Describe string `json:"describe"`
}

func (r *Report) toJSON() jsonReport {
	out := jsonReport{
		Board:      poker.FormatCards(r.Board),
		Iterations: r.Iterations,
		Workers:    r.Workers,
		Seed:       r.Seed,
		DurationMS: float64(r.Duration) / float64(time.Millisecond),
		Exact:      r.Exact,
		Players:    make([]jsonPlayer, len(r.Players)),
	}
	for i := range r.Players {
		p := &r.Players[i]
		low, high := p.Equity.ConfidenceInterval95()
		jp := jsonPlayer{
			Hole:       poker.FormatCards(p.Hole),
			Equity:     p.Equity.Mean(),
			StdError:   p.Equity.StdError(),
			CI95:       [2]float64{low, high},
			Wins:       p.Equity.Wins,
			Ties:       p.Equity.Ties,
			Losses:     p.Equity.Losses,
			Categories: make(map[string]int),
		}
		for _, c := range poker.Categories() {
			if n := p.Equity.Categories[c.Strength()]; n > 0 {
				jp.Categories[CategoryLabel(c)] = n
			}
		}
		if p.Final != nil {
			jp.Hand = &jsonHand{
				Category: p.Final.Category.String(),
				Key:      p.Final.Key.Strengths(),
				Cards:    poker.FormatCards(p.Final.Hand[:]),
				Describe: p.Final.Describe(),
			}
		}
		out.Players[i] = jp
	}
	return out
}

// MarshalJSON renders the report with cards as text.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.toJSON())
}

// EncodeJSON writes the report as indented JSON.
func (r *Report) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.toJSON())
}

// WriteJSON atomically writes the report to path.
func (r *Report) WriteJSON(path string) error {
	return fileutil.WriteAtomic(path, 0o644, r.EncodeJSON)
}
