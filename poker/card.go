package poker

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat is returned when rank, suit or card text cannot be parsed.
	ErrInvalidFormat = errors.New("poker: invalid format")
	// ErrInvalidInput is returned when the evaluator receives the wrong number
	// of cards, duplicate cards or cards outside the 52-card deck.
	ErrInvalidInput = errors.New("poker: invalid input")
)

// Rank is a card rank. The zero value is Two and strengths are dense 0..12.
type Rank uint8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of distinct ranks.
const NumRanks = 13

const rankChars = "23456789TJQKA"

var rankNames = [NumRanks]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

// Ranks returns every rank in ascending strength order.
func Ranks() []Rank {
	ranks := make([]Rank, NumRanks)
	for i := range ranks {
		ranks[i] = Rank(i)
	}
	return ranks
}

// Strength returns the rank's strength, Two=0 through Ace=12.
func (r Rank) Strength() int {
	switch r {
	case Two:
		return 0
	case Three:
		return 1
	case Four:
		return 2
	case Five:
		return 3
	case Six:
		return 4
	case Seven:
		return 5
	case Eight:
		return 6
	case Nine:
		return 7
	case Ten:
		return 8
	case Jack:
		return 9
	case Queen:
		return 10
	case King:
		return 11
	case Ace:
		return 12
	default:
		return -1
	}
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool {
	return r <= Ace
}

// Char returns the single display character for the rank (2-9, T, J, Q, K, A).
func (r Rank) Char() byte {
	if !r.Valid() {
		return '?'
	}
	return rankChars[r]
}

// String returns the canonical rank name, e.g. "Queen".
func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", uint8(r))
	}
	return rankNames[r]
}

// ParseRank parses a rank character. Lower-case face letters are accepted.
func ParseRank(c byte) (Rank, error) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	idx := strings.IndexByte(rankChars, c)
	if idx < 0 {
		return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidFormat, c)
	}
	return Rank(idx), nil
}

// ParseRankName parses a canonical rank name as returned by Rank.String.
func ParseRankName(name string) (Rank, error) {
	for i, n := range rankNames {
		if n == name {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown rank name %q", ErrInvalidFormat, name)
}

// Suit is a card suit. Suits carry no poker ranking; the order only makes card
// ordering deterministic.
type Suit uint8

const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
)

// NumSuits is the number of distinct suits.
const NumSuits = 4

const suitChars = "DCHS"

var (
	suitSymbols = [NumSuits]string{"♦", "♣", "♥", "♠"}
	suitNames   = [NumSuits]string{"Diamond", "Club", "Heart", "Spade"}
)

// Suits returns every suit in declared order.
func Suits() []Suit {
	return []Suit{Diamonds, Clubs, Hearts, Spades}
}

// Strength returns the suit's fixed ordinal, Diamonds=0 through Spades=3.
func (s Suit) Strength() int {
	switch s {
	case Diamonds:
		return 0
	case Clubs:
		return 1
	case Hearts:
		return 2
	case Spades:
		return 3
	default:
		return -1
	}
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s <= Spades
}

// Char returns the suit's typeable character (D, C, H, S).
func (s Suit) Char() byte {
	if !s.Valid() {
		return '?'
	}
	return suitChars[s]
}

// Symbol returns the suit's unicode symbol.
func (s Suit) Symbol() string {
	if !s.Valid() {
		return "?"
	}
	return suitSymbols[s]
}

// String returns the canonical suit name, e.g. "Heart".
func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", uint8(s))
	}
	return suitNames[s]
}

// IsRed returns true for Diamonds and Hearts.
func (s Suit) IsRed() bool {
	return s == Diamonds || s == Hearts
}

// ParseSuit parses a suit character, case-insensitively.
func ParseSuit(c byte) (Suit, error) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	idx := strings.IndexByte(suitChars, c)
	if idx < 0 {
		return 0, fmt.Errorf("%w: unknown suit %q", ErrInvalidFormat, c)
	}
	return Suit(idx), nil
}

// ParseSuitName parses a canonical suit name as returned by Suit.String.
func ParseSuitName(name string) (Suit, error) {
	for i, n := range suitNames {
		if n == name {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown suit name %q", ErrInvalidFormat, name)
}

// Card is an immutable rank and suit pair.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard creates a card from a rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

// Rank returns the card's rank.
func (c Card) Rank() Rank { return c.rank }

// Suit returns the card's suit.
func (c Card) Suit() Suit { return c.suit }

// Valid reports whether both rank and suit are in range.
func (c Card) Valid() bool {
	return c.rank.Valid() && c.suit.Valid()
}

// Index returns the card's position in the rank-major ordered deck (0..51).
func (c Card) Index() int {
	return c.rank.Strength()*NumSuits + c.suit.Strength()
}

// Compare orders cards by rank, then by suit. It returns -1, 0 or +1.
func (c Card) Compare(other Card) int {
	switch {
	case c.rank.Strength() < other.rank.Strength():
		return -1
	case c.rank.Strength() > other.rank.Strength():
		return 1
	case c.suit.Strength() < other.suit.Strength():
		return -1
	case c.suit.Strength() > other.suit.Strength():
		return 1
	default:
		return 0
	}
}

// String returns the two-character form, e.g. "AS".
func (c Card) String() string {
	return string([]byte{c.rank.Char(), c.suit.Char()})
}

// Pretty returns the card with its suit symbol, e.g. "A♠".
func (c Card) Pretty() string {
	return string(c.rank.Char()) + c.suit.Symbol()
}

// ParseCard parses a two-character card such as "AS" or "td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: card %q must be exactly two characters", ErrInvalidFormat, s)
	}
	rank, err := ParseRank(s[0])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	suit, err := ParseSuit(s[1])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	return NewCard(rank, suit), nil
}

// MustParseCard is ParseCard for fixtures; it panics on error.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a card list. Cards may be separated by whitespace or
// commas, or run together ("ASKD").
func ParseCards(s string) ([]Card, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', ',':
			return -1
		}
		return r
	}, s)
	if len(compact)%2 != 0 {
		return nil, fmt.Errorf("%w: card list %q has odd length", ErrInvalidFormat, s)
	}
	cards := make([]Card, 0, len(compact)/2)
	for i := 0; i < len(compact); i += 2 {
		c, err := ParseCard(compact[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
