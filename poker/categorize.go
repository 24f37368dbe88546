package poker

// HoleCardCategory is a coarse label for a starting hand.
type HoleCardCategory string

const (
	CategoryPremium HoleCardCategory = "premium"
	CategoryStrong  HoleCardCategory = "strong"
	CategoryMedium  HoleCardCategory = "medium"
	CategoryWeak    HoleCardCategory = "weak"
	CategoryTrash   HoleCardCategory = "trash"
	CategoryUnknown HoleCardCategory = "unknown"
)

// CategorizeHoleCards labels two hole cards.
// Premium: JJ+, AK. Strong: TT, AQ, AJ. Medium: 77-99, suited broadway.
// Weak: 22-66, suited connectors and one-gappers. Trash: everything else.
func CategorizeHoleCards(hole Hand) HoleCardCategory {
	cards := hole.Cards()
	if len(cards) != 2 {
		return CategoryUnknown
	}

	low, high := cards[0].Rank(), cards[1].Rank()
	if low > high {
		low, high = high, low
	}
	suited := cards[0].Suit() == cards[1].Suit()
	pair := low == high

	switch {
	case pair && low >= Jack, low == King && high == Ace:
		return CategoryPremium
	case pair && low == Ten, high == Ace && (low == Queen || low == Jack):
		return CategoryStrong
	case pair && low >= Seven, suited && low >= Ten:
		return CategoryMedium
	case pair, suited && high-low <= 2:
		return CategoryWeak
	}
	return CategoryTrash
}
