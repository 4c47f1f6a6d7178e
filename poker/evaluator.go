package poker

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// HandSize is the number of cards in a poker hand.
	HandSize = 5
	// ShowdownSize is the number of cards a Hold'em player has at showdown.
	ShowdownSize = 7
)

// Result is the outcome of evaluating a card set.
type Result struct {
	Category HandCategory
	Key      TieBreakKey
	// Hand holds the selected five cards: the cards that make the category
	// first, then kickers, each in descending significance.
	Hand [HandSize]Card
}

// Compare orders results by category and then tie-break key. It returns +1
// if r beats other, -1 if other wins and 0 for a split.
func (r Result) Compare(other Result) int {
	switch {
	case r.Category.Strength() > other.Category.Strength():
		return 1
	case r.Category.Strength() < other.Category.Strength():
		return -1
	}
	return r.Key.Compare(other.Key)
}

// Score packs the result into a uint32 that orders exactly like Compare.
func (r Result) Score() uint32 {
	return uint32(r.Category.Strength())<<20 | r.Key.packed()
}

// Cards returns a copy of the selected five cards.
func (r Result) Cards() []Card {
	out := make([]Card, HandSize)
	copy(out, r.Hand[:])
	return out
}

// Describe returns a readable description such as "Full House, Aces full of Kings".
func (r Result) Describe() string {
	if r.Key.Len() == 0 {
		return r.Category.String()
	}
	top := r.Key.ranks[0]
	switch r.Category {
	case StraightFlush:
		if top == Ace {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s high", top)
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", pluralRank(top))
	case FullHouse:
		return fmt.Sprintf("Full House, %s full of %s", pluralRank(top), pluralRank(r.Key.ranks[1]))
	case Flush:
		return fmt.Sprintf("Flush, %s high", top)
	case Straight:
		return fmt.Sprintf("Straight, %s high", top)
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", pluralRank(top))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", pluralRank(top), pluralRank(r.Key.ranks[1]))
	case Pair:
		return fmt.Sprintf("Pair of %s", pluralRank(top))
	default:
		return fmt.Sprintf("High Card, %s", top)
	}
}

// String returns the description followed by the selected cards.
func (r Result) String() string {
	return fmt.Sprintf("%s [%s]", r.Describe(), FormatCards(r.Hand[:]))
}

func pluralRank(r Rank) string {
	if r == Six {
		return "Sixes"
	}
	return r.String() + "s"
}

// Compare compares two results and returns 1 if a wins, -1 if b wins, 0 for a tie.
func Compare(a, b Result) int {
	return a.Compare(b)
}

// Winners returns the indices of every result that ties for best. More than
// one index means a split pot.
func Winners(results []Result) []int {
	if len(results) == 0 {
		return nil
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Compare(best) > 0 {
			best = r
		}
	}
	var winners []int
	for i, r := range results {
		if r.Compare(best) == 0 {
			winners = append(winners, i)
		}
	}
	return winners
}

// Evaluate classifies a 7-card showdown set into its best five-card hand.
// The cards must be exactly seven distinct valid cards, in any order.
func Evaluate(cards []Card) (Result, error) {
	return EvaluateN(cards, ShowdownSize)
}

// EvaluateN is Evaluate for a set of exactly n cards, HandSize <= n <= DeckSize.
func EvaluateN(cards []Card, n int) (Result, error) {
	if err := validate(cards, n); err != nil {
		return Result{}, err
	}
	return evaluate(cards), nil
}

// EvaluateBatch evaluates multiple 7-card sets and writes results into out.
// If out is smaller than hands, a new slice is allocated and returned.
func EvaluateBatch(hands [][]Card, out []Result) ([]Result, error) {
	if len(out) < len(hands) {
		out = make([]Result, len(hands))
	} else {
		out = out[:len(hands)]
	}

	for i, hand := range hands {
		if err := validate(hand, ShowdownSize); err != nil {
			return nil, fmt.Errorf("hand %d: %w", i, err)
		}
		out[i] = evaluate(hand)
	}

	return out, nil
}

func validate(cards []Card, n int) error {
	if n < HandSize || n > DeckSize {
		return fmt.Errorf("%w: set size %d outside [%d, %d]", ErrInvalidInput, n, HandSize, DeckSize)
	}
	if len(cards) != n {
		return fmt.Errorf("%w: expected %d cards, got %d", ErrInvalidInput, n, len(cards))
	}
	var seen uint64
	for _, c := range cards {
		if !c.Valid() {
			return fmt.Errorf("%w: card out of range (rank %d, suit %d)", ErrInvalidInput, c.rank, c.suit)
		}
		bit := uint64(1) << c.Index()
		if seen&bit != 0 {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidInput, c)
		}
		seen |= bit
	}
	return nil
}

type (
	suitGroup = Group[Suit, Card]
	rankGroup = Group[Rank, Card]
)

func evaluate(cards []Card) Result {
	var buf [ShowdownSize]Card
	sorted := buf[:0]
	if len(cards) > len(buf) {
		sorted = make([]Card, 0, len(cards))
	}
	sorted = append(sorted, cards...)
	slices.SortFunc(sorted, func(a, b Card) int { return b.Compare(a) })

	// Both partitions inherit the descending order, so rank groups come out
	// strongest first and every bucket is sorted high to low.
	bySuit := GroupBy(sorted, Card.Suit)
	byRank := GroupBy(sorted, Card.Rank)

	if r, ok := straightFlush(bySuit); ok {
		return r
	}
	if r, ok := fourOfAKind(byRank, sorted); ok {
		return r
	}
	if r, ok := fullHouse(byRank); ok {
		return r
	}
	if r, ok := flush(bySuit); ok {
		return r
	}
	if hand, ok := findStraight(sorted); ok {
		return Result{Category: Straight, Key: newKey(hand[0].rank), Hand: hand}
	}
	if r, ok := threeOfAKind(byRank, sorted); ok {
		return r
	}
	if r, ok := pairs(byRank, sorted); ok {
		return r
	}

	var hand [HandSize]Card
	copy(hand[:], sorted)
	return Result{Category: HighCard, Key: keyOf(hand[:]), Hand: hand}
}

func straightFlush(bySuit []suitGroup) (Result, bool) {
	var best Result
	found := false
	for _, g := range bySuit {
		if g.Len() < HandSize {
			continue
		}
		hand, ok := findStraight(g.Items)
		if !ok {
			continue
		}
		r := Result{Category: StraightFlush, Key: newKey(hand[0].rank), Hand: hand}
		if !found || r.Key.Compare(best.Key) > 0 {
			best, found = r, true
		}
	}
	return best, found
}

func fourOfAKind(byRank []rankGroup, sorted []Card) (Result, bool) {
	for _, g := range byRank {
		if g.Len() != 4 {
			continue
		}
		var hand [HandSize]Card
		copy(hand[:4], g.Items)
		fillKickers(hand[4:], sorted, g.Key)
		return Result{Category: FourOfAKind, Key: newKey(g.Key, hand[4].rank), Hand: hand}, true
	}
	return Result{}, false
}

func fullHouse(byRank []rankGroup) (Result, bool) {
	trip := -1
	for i, g := range byRank {
		if g.Len() >= 3 {
			trip = i
			break
		}
	}
	if trip < 0 {
		return Result{}, false
	}
	// The pair may come from a lower set, which gives up one card.
	for i, g := range byRank {
		if i == trip || g.Len() < 2 {
			continue
		}
		var hand [HandSize]Card
		copy(hand[:3], byRank[trip].Items)
		copy(hand[3:], g.Items[:2])
		return Result{Category: FullHouse, Key: newKey(byRank[trip].Key, g.Key), Hand: hand}, true
	}
	return Result{}, false
}

func flush(bySuit []suitGroup) (Result, bool) {
	var best Result
	found := false
	for _, g := range bySuit {
		if g.Len() < HandSize {
			continue
		}
		var hand [HandSize]Card
		copy(hand[:], g.Items)
		r := Result{Category: Flush, Key: keyOf(hand[:]), Hand: hand}
		if !found || r.Key.Compare(best.Key) > 0 {
			best, found = r, true
		}
	}
	return best, found
}

func threeOfAKind(byRank []rankGroup, sorted []Card) (Result, bool) {
	for _, g := range byRank {
		if g.Len() != 3 {
			continue
		}
		var hand [HandSize]Card
		copy(hand[:3], g.Items)
		fillKickers(hand[3:], sorted, g.Key)
		return Result{
			Category: ThreeOfAKind,
			Key:      newKey(g.Key, hand[3].rank, hand[4].rank),
			Hand:     hand,
		}, true
	}
	return Result{}, false
}

// pairs handles both TwoPair and Pair.
func pairs(byRank []rankGroup, sorted []Card) (Result, bool) {
	var found [2]int
	n := 0
	for i, g := range byRank {
		if g.Len() == 2 {
			found[n] = i
			n++
			if n == len(found) {
				break
			}
		}
	}

	var hand [HandSize]Card
	switch n {
	case 2:
		high, low := byRank[found[0]], byRank[found[1]]
		copy(hand[:2], high.Items)
		copy(hand[2:4], low.Items)
		fillKickers(hand[4:], sorted, high.Key, low.Key)
		return Result{
			Category: TwoPair,
			Key:      newKey(high.Key, low.Key, hand[4].rank),
			Hand:     hand,
		}, true
	case 1:
		pair := byRank[found[0]]
		copy(hand[:2], pair.Items)
		fillKickers(hand[2:], sorted, pair.Key)
		return Result{
			Category: Pair,
			Key:      newKey(pair.Key, hand[2].rank, hand[3].rank, hand[4].rank),
			Hand:     hand,
		}, true
	}
	return Result{}, false
}

// findStraight returns the highest five-card straight in cards, which must be
// sorted by descending rank. Duplicate ranks are skipped. The wheel is
// returned as 5-4-3-2-A.
func findStraight(cards []Card) ([HandSize]Card, bool) {
	var hand [HandSize]Card
	var distinct [NumRanks]Card
	n := 0
	for _, c := range cards {
		if n > 0 && distinct[n-1].rank == c.rank {
			continue
		}
		distinct[n] = c
		n++
	}

	for i := 0; i+HandSize <= n; i++ {
		if distinct[i].rank.Strength()-distinct[i+HandSize-1].rank.Strength() == HandSize-1 {
			copy(hand[:], distinct[i:i+HandSize])
			return hand, true
		}
	}

	// Wheel: with distinct descending ranks, Five..Two are the lowest four.
	if n >= HandSize && distinct[0].rank == Ace && distinct[n-4].rank == Five && distinct[n-1].rank == Two {
		copy(hand[:4], distinct[n-4:n])
		hand[4] = distinct[0]
		return hand, true
	}
	return hand, false
}

// fillKickers fills dst with the highest cards from sorted whose rank is not excluded.
func fillKickers(dst []Card, sorted []Card, exclude ...Rank) {
	i := 0
	for _, c := range sorted {
		if i == len(dst) {
			return
		}
		if slices.Contains(exclude, c.rank) {
			continue
		}
		dst[i] = c
		i++
	}
}

func keyOf(cards []Card) TieBreakKey {
	var k TieBreakKey
	for i, c := range cards {
		if i == HandSize {
			break
		}
		k.ranks[i] = c.rank
		k.n++
	}
	return k
}

// EvaluateString parses a 7-card list such as "AS KS QS JS TS 2D 3C" and evaluates it.
func EvaluateString(s string) (Result, error) {
	cards, err := ParseCards(strings.TrimSpace(s))
	if err != nil {
		return Result{}, err
	}
	return Evaluate(cards)
}
