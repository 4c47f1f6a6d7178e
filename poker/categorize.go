package poker

// HoleCardCategory represents the strength category of hole cards
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "Premium"
	CategoryStrong  HoleCardCategory = "Strong"
	CategoryMedium  HoleCardCategory = "Medium"
	CategoryWeak    HoleCardCategory = "Weak"
	CategoryTrash   HoleCardCategory = "Trash"
	CategoryUnknown HoleCardCategory = "Unknown"
)

// CategorizeHoleCards provides a simple preflop bucket for two hole cards.
// Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium (77-99, suited broadway),
// Weak (22-66, suited connectors), Trash (everything else).
func CategorizeHoleCards(a, b Card) HoleCardCategory {
	if !a.Valid() || !b.Valid() || a == b {
		return CategoryUnknown
	}

	low, high := a.Rank(), b.Rank()
	if low > high {
		low, high = high, low
	}
	suited := a.Suit() == b.Suit()
	pair := low == high

	switch {
	case pair && low >= Jack, low == King && high == Ace:
		return CategoryPremium
	case pair && low == Ten, high == Ace && (low == Queen || low == Jack):
		return CategoryStrong
	case pair && low >= Seven, suited && low >= Ten:
		return CategoryMedium
	case pair, suited && high.Strength()-low.Strength() <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}

// CategorizeHoleCardsFromStrings categorizes hole cards from text such as
// []string{"AS", "KD"}.
func CategorizeHoleCardsFromStrings(cards []string) HoleCardCategory {
	if len(cards) != 2 {
		return CategoryUnknown
	}

	a, errA := ParseCard(cards[0])
	b, errB := ParseCard(cards[1])
	if errA != nil || errB != nil {
		return CategoryUnknown
	}

	return CategorizeHoleCards(a, b)
}
