package game

import "fmt"

// maxBlindDoublings stops long sessions from overflowing the blind amounts.
const maxBlindDoublings = 20

// BlindLevel is the pair of forced bets for one hand.
type BlindLevel struct {
	Small int
	Big   int
}

// BlindSchedule doubles both blinds every DoubleEvery hands. A zero
// DoubleEvery keeps the blinds fixed.
type BlindSchedule struct {
	Small       int
	Big         int
	DoubleEvery int
}

// DefaultBlinds is 5/10 doubling every 10 hands.
var DefaultBlinds = BlindSchedule{Small: 5, Big: 10, DoubleEvery: 10}

// At returns the blinds for the 1-based hand number.
func (b BlindSchedule) At(hand int) BlindLevel {
	level := 0
	if b.DoubleEvery > 0 && hand > 1 {
		level = min((hand-1)/b.DoubleEvery, maxBlindDoublings)
	}
	return BlindLevel{Small: b.Small << level, Big: b.Big << level}
}

// Validate checks the schedule is usable.
func (b BlindSchedule) Validate() error {
	if b.Small <= 0 || b.Big <= 0 {
		return fmt.Errorf("blinds must be positive, got %d/%d", b.Small, b.Big)
	}
	if b.Small > b.Big {
		return fmt.Errorf("small blind %d exceeds big blind %d", b.Small, b.Big)
	}
	if b.DoubleEvery < 0 {
		return fmt.Errorf("blind doubling interval must not be negative, got %d", b.DoubleEvery)
	}
	return nil
}
