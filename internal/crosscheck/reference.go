package crosscheck

import (
	"fmt"

	"github.com/lox/showdown/poker"
	reference "github.com/paulhankin/poker"
)

// toReference converts a card. The reference library numbers suits
// club, diamond, heart, spade from 0 and ranks with the ace as 1 and kings
// as 13.
func toReference(c poker.Card) (reference.Card, error) {
	rank := reference.Rank(c.Rank().Strength() + 2)
	if c.Rank() == poker.Ace {
		rank = 1
	}

	var suit reference.Suit
	switch c.Suit() {
	case poker.Clubs:
		suit = 0
	case poker.Diamonds:
		suit = 1
	case poker.Hearts:
		suit = 2
	case poker.Spades:
		suit = 3
	default:
		var zero reference.Card
		return zero, fmt.Errorf("%w: suit %d", poker.ErrInvalidInput, c.Suit())
	}

	card, err := reference.MakeCard(suit, rank)
	if err != nil {
		var zero reference.Card
		return zero, fmt.Errorf("converting %s: %w", c, err)
	}
	return card, nil
}

func toReferenceHand(cards [poker.ShowdownSize]poker.Card) ([poker.ShowdownSize]reference.Card, error) {
	var out [poker.ShowdownSize]reference.Card
	for i, c := range cards {
		rc, err := toReference(c)
		if err != nil {
			return out, err
		}
		out[i] = rc
	}
	return out, nil
}

// Score returns the reference evaluator's score for seven cards. Higher
// scores are better hands.
func Score(cards [poker.ShowdownSize]poker.Card) (int16, error) {
	hand, err := toReferenceHand(cards)
	if err != nil {
		return 0, err
	}
	return reference.Eval7(&hand), nil
}

// Describe returns the reference evaluator's description of seven cards.
func Describe(cards [poker.ShowdownSize]poker.Card) (string, error) {
	hand, err := toReferenceHand(cards)
	if err != nil {
		return "", err
	}
	return reference.Describe(hand[:])
}
