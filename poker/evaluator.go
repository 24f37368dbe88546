package poker

import (
	"fmt"
	"math/bits"
)

// HandRank represents the strength of a poker hand. Lower values are stronger.
//
// A rank packs the hand type into the top bits and up to five tie-breaking
// ranks (four bits each) below it, then inverts the result so that the best
// possible hand is rank 0. Ranks of the same type occupy one contiguous band.
type HandRank uint32

// HandType enumerates the categories of poker hands ordered from weakest to strongest.
type HandType uint8

const (
	HighCard HandType = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const (
	typeShift = 20
	bandWidth = 1 << typeShift
	// WorstRank is one past the weakest possible rank and sorts after every real hand.
	WorstRank = HandRank(9 * bandWidth)
	maxPacked = uint32(WorstRank) - 1
)

var handTypeNames = [...]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (t HandType) String() string {
	if int(t) < len(handTypeNames) {
		return handTypeNames[t]
	}
	return "Unknown"
}

// Type returns the type of hand (pair, flush, etc.).
func (hr HandRank) Type() HandType {
	if hr >= WorstRank {
		return HighCard
	}
	return StraightFlush - HandType(uint32(hr)>>typeShift)
}

// String returns a human-readable hand description.
func (hr HandRank) String() string {
	return hr.Type().String()
}

// TypeBand returns the inclusive range of ranks belonging to a hand type.
func TypeBand(t HandType) (best, worst HandRank) {
	band := HandRank(StraightFlush-t) * bandWidth
	return band, band + bandWidth - 1
}

// Evaluate ranks the best five-card hand contained in 5 to 7 cards.
func Evaluate(hand Hand) (HandRank, error) {
	if n := hand.CountCards(); n < 5 || n > 7 {
		return WorstRank, fmt.Errorf("evaluate: need 5-7 cards, got %d", n)
	}
	return evaluateUnchecked(hand), nil
}

// Evaluate7Cards evaluates the best 5-card hand from exactly 7 cards and
// returns WorstRank for any other count.
func Evaluate7Cards(hand Hand) HandRank {
	if hand.CountCards() != 7 {
		return WorstRank
	}
	return evaluateUnchecked(hand)
}

func evaluateUnchecked(hand Hand) HandRank {
	var suitMasks [4]uint16
	var rankMask uint16
	for suit := range uint8(4) {
		mask := hand.GetSuitMask(suit)
		suitMasks[suit] = mask
		rankMask |= mask
	}
	return HandRank(maxPacked - strength(suitMasks, rankMask))
}

// strength returns the packed value where larger is stronger.
func strength(suitMasks [4]uint16, rankMask uint16) uint32 {
	// At most one suit can hold five of seven cards.
	for _, suitMask := range suitMasks {
		if bits.OnesCount16(suitMask) < 5 {
			continue
		}
		if high, ok := straightHigh(suitMask); ok {
			return pack(StraightFlush, high)
		}
		return pack(Flush, topRanks(suitMask, 5)...)
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quads := s0 & s1 & s2 & s3
	trips := ((s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)) &^ quads
	pairs := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ (trips | quads)

	if quads != 0 {
		quad := highest(quads)
		return pack(FourOfAKind, append([]uint8{quad}, topRanks(rankMask&^bit(quad), 1)...)...)
	}

	if trips != 0 {
		trip := highest(trips)
		// a second set of trips plays as the pair
		if rest := (trips &^ bit(trip)) | pairs; rest != 0 {
			return pack(FullHouse, trip, highest(rest))
		}
	}

	if high, ok := straightHigh(rankMask); ok {
		return pack(Straight, high)
	}

	if trips != 0 {
		trip := highest(trips)
		return pack(ThreeOfAKind, append([]uint8{trip}, topRanks(rankMask&^bit(trip), 2)...)...)
	}

	if pairs != 0 {
		top := highest(pairs)
		if rest := pairs &^ bit(top); rest != 0 {
			second := highest(rest)
			kicker := topRanks(rankMask&^bit(top)&^bit(second), 1)
			return pack(TwoPair, append([]uint8{top, second}, kicker...)...)
		}
		return pack(Pair, append([]uint8{top}, topRanks(rankMask&^bit(top), 3)...)...)
	}

	return pack(HighCard, topRanks(rankMask, 5)...)
}

// pack stores the type above up to five tiebreak ranks, most significant first.
// Missing tiebreaks stay zero, which only happens when every hand of that
// shape has the same shortfall.
func pack(t HandType, ranks ...uint8) uint32 {
	v := uint32(t) << typeShift
	for i, r := range ranks {
		if i == 5 {
			break
		}
		v |= uint32(r+1) << (16 - 4*i)
	}
	return v
}

func bit(rank uint8) uint16 {
	return 1 << rank
}

// highest returns the highest rank present in a non-empty mask.
func highest(mask uint16) uint8 {
	return uint8(bits.Len16(mask) - 1)
}

// topRanks returns up to n ranks from the mask in descending order.
func topRanks(mask uint16, n int) []uint8 {
	out := make([]uint8, 0, n)
	for mask != 0 && len(out) < n {
		top := highest(mask)
		out = append(out, top)
		mask &^= bit(top)
	}
	return out
}

// straightHigh returns the high-card rank of the best straight in the mask.
func straightHigh(mask uint16) (uint8, bool) {
	const wheel = 0x100F // A-2-3-4-5
	mask &= 0x1FFF

	// Bitwise cascade finds five consecutive ranks in one pass.
	if seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4); seq != 0 {
		return highest(seq) + 4, true
	}
	if mask&wheel == wheel {
		return Five, true
	}
	return 0, false
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	switch {
	case a < b:
		return 1
	case a > b:
		return -1
	}
	return 0
}
