package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrInsufficientCards is returned when a deal asks for more cards than remain
// in the deck, or for a negative number of cards.
var ErrInsufficientCards = errors.New("insufficient cards")

// Deck represents a standard 52-card deck
type Deck struct {
	cards   []Card
	next    int
	rng     *rand.Rand
	stacked []Card // fixed order used instead of shuffling when non-nil
}

// NewDeck creates a new shuffled deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// NewDeckFromCards creates a deck that deals the given cards in order. Reset
// restores the same order rather than shuffling, which makes hands
// reproducible card-for-card in tests.
func NewDeckFromCards(cards []Card) *Deck {
	d := &Deck{stacked: append([]Card(nil), cards...)}
	d.Reset()
	return d
}

// Reset rebuilds the full deck and shuffles it, starting a new shuffle epoch.
func (d *Deck) Reset() {
	d.next = 0
	if d.stacked != nil {
		d.cards = append(d.cards[:0], d.stacked...)
		return
	}

	d.cards = d.cards[:0]
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}

	// Fisher-Yates
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top n cards. The deck is left untouched when
// the request cannot be satisfied.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > d.Remaining() {
		return nil, fmt.Errorf("%w: requested %d, %d remaining", ErrInsufficientCards, n, d.Remaining())
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealFlop burns one card then deals three.
func (d *Deck) DealFlop() ([]Card, error) {
	return d.burnAndDeal(3)
}

// DealTurn burns one card then deals one.
func (d *Deck) DealTurn() (Card, error) {
	cards, err := d.burnAndDeal(1)
	if err != nil {
		return 0, err
	}
	return cards[0], nil
}

// DealRiver burns one card then deals one.
func (d *Deck) DealRiver() (Card, error) {
	return d.DealTurn()
}

func (d *Deck) burnAndDeal(n int) ([]Card, error) {
	// check both up front so a failed street never consumes the burn card
	if d.Remaining() < n+1 {
		return nil, fmt.Errorf("%w: need %d with burn, %d remaining", ErrInsufficientCards, n+1, d.Remaining())
	}
	d.next++
	return d.Deal(n)
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
