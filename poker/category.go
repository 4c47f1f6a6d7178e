package poker

import (
	"fmt"
	"strconv"
	"strings"
)

// HandCategory enumerates poker hand categories ordered from weakest to strongest.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// NumCategories is the number of hand categories.
const NumCategories = 9

// Categories returns every category in ascending strength order.
func Categories() []HandCategory {
	return []HandCategory{
		HighCard, Pair, TwoPair, ThreeOfAKind, Straight,
		Flush, FullHouse, FourOfAKind, StraightFlush,
	}
}

// Strength returns the category's position in the ranking, HighCard=0.
func (c HandCategory) Strength() int {
	switch c {
	case HighCard:
		return 0
	case Pair:
		return 1
	case TwoPair:
		return 2
	case ThreeOfAKind:
		return 3
	case Straight:
		return 4
	case Flush:
		return 5
	case FullHouse:
		return 6
	case FourOfAKind:
		return 7
	case StraightFlush:
		return 8
	default:
		return -1
	}
}

// String returns a human-readable category name.
func (c HandCategory) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// TieBreakKey is an ordered sequence of rank strengths, compared
// lexicographically. Its length depends on the category: one value for
// straights, two for quads and full houses, up to five for flushes and high
// cards.
type TieBreakKey struct {
	ranks [HandSize]Rank
	n     uint8
}

func newKey(ranks ...Rank) TieBreakKey {
	var k TieBreakKey
	k.n = uint8(copy(k.ranks[:], ranks))
	return k
}

// Len returns the number of values in the key.
func (k TieBreakKey) Len() int {
	return int(k.n)
}

// At returns the i-th rank strength in the key.
func (k TieBreakKey) At(i int) int {
	if i < 0 || i >= int(k.n) {
		panic(fmt.Sprintf("poker: tie-break index %d out of range [0,%d)", i, k.n))
	}
	return k.ranks[i].Strength()
}

// Ranks returns the key as ranks, most significant first.
func (k TieBreakKey) Ranks() []Rank {
	out := make([]Rank, k.n)
	copy(out, k.ranks[:k.n])
	return out
}

// Strengths returns the key as rank strengths, most significant first.
func (k TieBreakKey) Strengths() []int {
	out := make([]int, k.n)
	for i := range out {
		out[i] = k.ranks[i].Strength()
	}
	return out
}

// Compare compares two keys lexicographically. A key that is a strict prefix
// of the other sorts first.
func (k TieBreakKey) Compare(other TieBreakKey) int {
	n := min(k.n, other.n)
	for i := range n {
		a, b := k.ranks[i].Strength(), other.ranks[i].Strength()
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	switch {
	case k.n < other.n:
		return -1
	case k.n > other.n:
		return 1
	}
	return 0
}

// String renders the key as strengths, e.g. "[12 11]".
func (k TieBreakKey) String() string {
	parts := make([]string, k.n)
	for i := range parts {
		parts[i] = strconv.Itoa(k.ranks[i].Strength())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// packed folds the key into 20 bits, four per value. Keys of the same
// category have the same length, so the packing preserves order within a
// category.
func (k TieBreakKey) packed() uint32 {
	var v uint32
	for i := range HandSize {
		v <<= 4
		if i < int(k.n) {
			v |= uint32(k.ranks[i].Strength())
		}
	}
	return v
}
