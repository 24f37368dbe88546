package game

import (
	"fmt"
	"slices"
)

// MovementKind classifies a chip movement.
type MovementKind uint8

const (
	MoveBlind MovementKind = iota
	MoveCall
	MoveRaise
	MoveAward
	MoveRefund
)

func (k MovementKind) String() string {
	switch k {
	case MoveBlind:
		return "blind"
	case MoveCall:
		return "call"
	case MoveRaise:
		return "raise"
	case MoveAward:
		return "award"
	case MoveRefund:
		return "refund"
	default:
		return "unknown"
	}
}

// Movement is a single transfer between a stack and the pot. Positive
// amounts for blind, call and raise flow into the pot; award and refund flow
// out of it.
type Movement struct {
	Hand   int
	Street Street
	Seat   int
	Kind   MovementKind
	Amount int
}

// Ledger records chip movements for the current hand and checks that the
// session's chips are conserved.
type Ledger struct {
	total     int
	movements []Movement
}

// NewLedger creates a ledger for a session holding total chips.
func NewLedger(total int) *Ledger {
	return &Ledger{total: total}
}

// Total returns the session's chip endowment.
func (l *Ledger) Total() int {
	return l.total
}

// BeginHand discards the previous hand's movements.
func (l *Ledger) BeginHand() {
	l.movements = l.movements[:0]
}

// Record appends a movement.
func (l *Ledger) Record(m Movement) {
	l.movements = append(l.movements, m)
}

// Movements returns a copy of the current hand's movements.
func (l *Ledger) Movements() []Movement {
	return slices.Clone(l.movements)
}

// Verify checks that no balance is negative and that stacks plus pot equal
// the endowment.
func (l *Ledger) Verify(players []*Player, pot int) error {
	if pot < 0 {
		return &InvariantError{Check: "balance", Detail: fmt.Sprintf("pot is %d", pot), Err: ErrNegativeBalance}
	}
	sum := pot
	for _, p := range players {
		switch {
		case p.Stack < 0:
			return &InvariantError{Check: "balance", Detail: fmt.Sprintf("seat %d stack is %d", p.Seat, p.Stack), Err: ErrNegativeBalance}
		case p.Bet < 0:
			return &InvariantError{Check: "balance", Detail: fmt.Sprintf("seat %d bet is %d", p.Seat, p.Bet), Err: ErrNegativeBalance}
		case p.Invested < 0:
			return &InvariantError{Check: "balance", Detail: fmt.Sprintf("seat %d invested %d", p.Seat, p.Invested), Err: ErrNegativeBalance}
		}
		sum += p.Stack
	}
	if sum != l.total {
		return &InvariantError{
			Check:  "conservation",
			Detail: fmt.Sprintf("stacks plus pot is %d, expected %d", sum, l.total),
			Err:    ErrChipConservation,
		}
	}
	return nil
}
