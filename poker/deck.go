package poker

import (
	"math/rand/v2"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = NumRanks * NumSuits

// OrderedDeck returns the 52 cards in rank-major order: 2D 2C 2H 2S 3D ... AS.
// A card's position equals Card.Index.
func OrderedDeck() [DeckSize]Card {
	var cards [DeckSize]Card
	i := 0
	for _, rank := range Ranks() {
		for _, suit := range Suits() {
			cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return cards
}

// Deck is a dealable deck. Shuffling is delegated to the injected RNG.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck without the excluded cards. A nil rng
// leaves the deck in rank-major order.
func NewDeck(rng *rand.Rand, exclude ...Card) *Deck {
	var skip [DeckSize]bool
	for _, c := range exclude {
		if c.Valid() {
			skip[c.Index()] = true
		}
	}

	ordered := OrderedDeck()
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
		rng:   rng,
	}
	for _, c := range ordered {
		if !skip[c.Index()] {
			d.cards = append(d.cards, c)
		}
	}

	d.Shuffle()
	return d
}

// Shuffle returns all dealt cards to the deck and permutes it.
func (d *Deck) Shuffle() {
	d.next = 0
	if d.rng == nil {
		return
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal deals n cards. It returns nil if fewer than n remain. The returned
// slice aliases the deck and is only valid until the next Shuffle.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealOne deals a single card.
func (d *Deck) DealOne() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// Reset returns all dealt cards to the deck. With an RNG the deck is
// reshuffled; without one it is rewound in its current order.
func (d *Deck) Reset() {
	d.Shuffle()
}

// CardsRemaining returns the number of undealt cards.
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// Len returns the size of the deck including dealt cards.
func (d *Deck) Len() int {
	return len(d.cards)
}
