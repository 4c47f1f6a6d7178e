// Package showdown runs Hold'em showdowns and Monte Carlo runouts on top of
// the poker evaluator.
package showdown

import (
	"fmt"

	"github.com/lox/showdown/poker"
)

const (
	// HoleCards is the number of private cards per player.
	HoleCards = 2
	// BoardSize is the number of community cards on a complete board.
	BoardSize = poker.ShowdownSize - HoleCards
	// MaxPlayers is the most players a single deck can serve with a full board.
	MaxPlayers = (poker.DeckSize - BoardSize) / HoleCards
)

// Scenario is a set of known hole cards and a possibly partial board.
type Scenario struct {
	Players [][]poker.Card
	Board   []poker.Card
}

// ParseScenario builds a scenario from text such as []string{"AS KS", "QD QC"}
// and a board such as "2H 7D 9C".
func ParseScenario(players []string, board string) (Scenario, error) {
	var s Scenario
	for i, p := range players {
		cards, err := poker.ParseCards(p)
		if err != nil {
			return Scenario{}, fmt.Errorf("player %d: %w", i+1, err)
		}
		s.Players = append(s.Players, cards)
	}

	cards, err := poker.ParseCards(board)
	if err != nil {
		return Scenario{}, fmt.Errorf("board: %w", err)
	}
	s.Board = cards

	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate checks player count, card counts and that no card appears twice.
func (s Scenario) Validate() error {
	if len(s.Players) < 2 {
		return fmt.Errorf("%w: need at least 2 players, got %d", poker.ErrInvalidInput, len(s.Players))
	}
	if len(s.Players) > MaxPlayers {
		return fmt.Errorf("%w: at most %d players, got %d", poker.ErrInvalidInput, MaxPlayers, len(s.Players))
	}
	if len(s.Board) > BoardSize {
		return fmt.Errorf("%w: board has %d cards, at most %d allowed", poker.ErrInvalidInput, len(s.Board), BoardSize)
	}

	var seen [poker.DeckSize]bool
	check := func(c poker.Card, owner string) error {
		if !c.Valid() {
			return fmt.Errorf("%w: %s has an invalid card", poker.ErrInvalidInput, owner)
		}
		if seen[c.Index()] {
			return fmt.Errorf("%w: %s appears more than once", poker.ErrInvalidInput, c)
		}
		seen[c.Index()] = true
		return nil
	}

	for i, hole := range s.Players {
		owner := fmt.Sprintf("player %d", i+1)
		if len(hole) != HoleCards {
			return fmt.Errorf("%w: %s has %d hole cards, want %d", poker.ErrInvalidInput, owner, len(hole), HoleCards)
		}
		for _, c := range hole {
			if err := check(c, owner); err != nil {
				return err
			}
		}
	}
	for _, c := range s.Board {
		if err := check(c, "board"); err != nil {
			return err
		}
	}
	return nil
}

// Complete reports whether the board has all five cards.
func (s Scenario) Complete() bool {
	return len(s.Board) == BoardSize
}

// Dead returns every card already assigned to a player or the board.
func (s Scenario) Dead() []poker.Card {
	dead := make([]poker.Card, 0, len(s.Players)*HoleCards+len(s.Board))
	for _, hole := range s.Players {
		dead = append(dead, hole...)
	}
	return append(dead, s.Board...)
}

// Showdown evaluates every player against a complete board and returns the
// results together with the indices of the winners.
func (s Scenario) Showdown() ([]poker.Result, []int, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	if !s.Complete() {
		return nil, nil, fmt.Errorf("%w: showdown needs %d board cards, got %d", poker.ErrInvalidInput, BoardSize, len(s.Board))
	}

	results := make([]poker.Result, len(s.Players))
	if err := evaluatePlayers(results, s.Players, s.Board, nil); err != nil {
		return nil, nil, err
	}
	return results, poker.Winners(results), nil
}

// evaluatePlayers fills results with each player's best hand over hole,
// board and runout.
func evaluatePlayers(results []poker.Result, players [][]poker.Card, board, runout []poker.Card) error {
	var hand [poker.ShowdownSize]poker.Card
	for i, hole := range players {
		n := copy(hand[:], hole)
		n += copy(hand[n:], board)
		copy(hand[n:], runout)

		r, err := poker.Evaluate(hand[:])
		if err != nil {
			return fmt.Errorf("player %d: %w", i+1, err)
		}
		results[i] = r
	}
	return nil
}

// shares converts a winner list into per-player pot shares.
func shares(dst []float64, winners []int) {
	clear(dst)
	share := 1 / float64(len(winners))
	for _, w := range winners {
		dst[w] = share
	}
}
