package game

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertrainer/internal/history"
	"github.com/lox/pokertrainer/poker"
)

var fixedBlinds = BlindSchedule{Small: 5, Big: 10}

func stackedDeck(t *testing.T, cards string) *poker.Deck {
	t.Helper()
	var out []poker.Card
	for _, f := range strings.Fields(cards) {
		c, err := poker.ParseCard(f)
		require.NoError(t, err)
		out = append(out, c)
	}
	return poker.NewDeckFromCards(out)
}

func humans(stacks ...int) []SeatConfig {
	seats := make([]SeatConfig, len(stacks))
	for i, stack := range stacks {
		seats[i] = SeatConfig{Name: fmt.Sprintf("p%d", i), Stack: stack}
	}
	return seats
}

func newTable(t *testing.T, seats []SeatConfig, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithBlinds(fixedBlinds), WithSeed(7)}, opts...)
	s, err := NewSession(seats, opts...)
	require.NoError(t, err)
	return s
}

func act(t *testing.T, s *Session, seat int, action Action, amount int) ActionResult {
	t.Helper()
	res, err := s.ApplyAction(seat, action, amount)
	require.NoError(t, err)
	require.True(t, res.Success, "seat %d %s %d: %v", seat, action, amount, res.Err)
	return res
}

func TestFourPlayerHand(t *testing.T) {
	t.Parallel()

	deck := stackedDeck(t, "As Ks Qs Js Ah Kh Qh Jh 3c 2d 7c 9h 5c 4d 6s Tc")
	buf := history.NewBuffer(10)
	s := newTable(t, humans(1000, 1000, 1000, 1000), WithDeck(deck), WithRecorder(buf))

	snap, err := s.StartNewHand()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Dealer)
	assert.Equal(t, 1, snap.SmallBlind)
	assert.Equal(t, 2, snap.BigBlind)
	assert.Equal(t, 3, snap.Turn)
	assert.Equal(t, 15, snap.Pot)
	assert.Equal(t, 5, snap.Players[1].Bet)
	assert.Equal(t, 10, snap.Players[2].Bet)
	assert.Equal(t, 8, deck.Remaining())

	act(t, s, 3, Raise, 30)
	act(t, s, 0, Call, 0)
	act(t, s, 1, Call, 0)
	res := act(t, s, 2, Call, 0)
	assert.Equal(t, 20, res.BetAmount)

	remaining := []int{4, 2, 0}
	for i, street := range []Street{Flop, Turn, River} {
		snap = s.Snapshot(-1)
		require.Equal(t, street, snap.Street)
		assert.Equal(t, remaining[i], deck.Remaining())
		assert.Equal(t, 120, snap.Pot)
		assert.Equal(t, 1, snap.Turn, "first to act after the flop is left of the button")
		for _, seat := range []int{1, 2, 3, 0} {
			res = act(t, s, seat, Check, 0)
		}
	}
	assert.True(t, res.TriggersShowdown)
	assert.False(t, s.InProgress())

	result, ok := s.ShowdownResult()
	require.True(t, ok)
	require.Len(t, result.Pots, 1)
	assert.Equal(t, 120, result.Pots[0].Amount)
	assert.Equal(t, []int{1}, result.Pots[0].Winners)
	assert.Equal(t, map[int]int{1: 120}, result.Payouts)
	assert.Equal(t, []int{970, 1090, 970, 970}, s.Stacks())
	require.Len(t, result.Hands, 4)
	assert.Equal(t, 1, result.Hands[0].Seat)
	assert.NotEmpty(t, result.Hands[0].Description)

	require.Equal(t, 1, buf.Len())
	rec := buf.Hands()[0]
	assert.Equal(t, []string{"2d", "7c", "9h", "4d", "Tc"}, rec.Board)
	assert.Len(t, rec.Streets, 4)
	assert.Equal(t, 90, rec.Net()[1])
	assert.False(t, rec.Uncontested)
}

func TestSplitPotOddChip(t *testing.T) {
	t.Parallel()

	// everyone plays the broadway board
	deck := stackedDeck(t, "2c 3c 4d 2d 3d 4h 5s Ts Jd Qh 6s Kc 7s Ac")
	s := newTable(t, humans(1000, 1000, 1000), WithDeck(deck))
	_, err := s.StartNewHand()
	require.NoError(t, err)

	act(t, s, 0, Call, 0)
	act(t, s, 1, Fold, 0)
	act(t, s, 2, Check, 0)
	for range 3 {
		act(t, s, 2, Check, 0)
		act(t, s, 0, Check, 0)
	}

	result, ok := s.ShowdownResult()
	require.True(t, ok)
	assert.Equal(t, 25, result.Pots[0].Amount)
	// the odd chip goes to the first winner left of the button
	assert.Equal(t, map[int]int{2: 13, 0: 12}, result.Payouts)
	assert.Equal(t, []int{1002, 995, 1003}, s.Stacks())
}

func TestAllInSidePots(t *testing.T) {
	t.Parallel()

	deck := stackedDeck(t, "Ks Qs As Kh Qh Ah 3c 2d 7c 9h 5c 4d 6s Tc")
	s := newTable(t, humans(100, 300, 1000), WithDeck(deck))
	_, err := s.StartNewHand()
	require.NoError(t, err)

	act(t, s, 0, AllIn, 0)
	act(t, s, 1, AllIn, 0)
	res := act(t, s, 2, Call, 0)
	assert.Equal(t, 290, res.BetAmount)
	assert.True(t, res.TriggersShowdown, "nobody left to bet, the board runs out")

	result, ok := s.ShowdownResult()
	require.True(t, ok)
	require.Len(t, result.Pots, 2)
	assert.Equal(t, PotResult{Amount: 300, Winners: []int{0}, Eligible: []int{0, 1, 2}}, result.Pots[0])
	assert.Equal(t, PotResult{Amount: 400, Winners: []int{1}, Eligible: []int{1, 2}}, result.Pots[1])
	assert.Equal(t, []int{300, 400, 700}, s.Stacks())

	snap := s.Snapshot(-1)
	assert.Equal(t, Showdown, snap.Street)
	assert.Len(t, snap.Board, 5)
	for _, p := range snap.Players {
		assert.False(t, p.AllIn, "seat %d still has chips", p.Seat)
		assert.Equal(t, 2, p.Hole.CountCards(), "contested showdown reveals seat %d", p.Seat)
	}
}

func TestBigBlindOption(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 1000, 1000, 1000))
	_, err := s.StartNewHand()
	require.NoError(t, err)

	act(t, s, 3, Call, 0)
	act(t, s, 0, Call, 0)
	act(t, s, 1, Call, 0)

	snap := s.Snapshot(-1)
	require.Equal(t, PreFlop, snap.Street, "the round waits for the big blind")
	cur, ok := s.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, 2, cur.Seat)
	assert.True(t, cur.IsBigBlind)
	assert.Equal(t, 0, cur.ToCall(snap.CurrentBet))

	res := act(t, s, 2, Check, 0)
	assert.Equal(t, 0, res.BetAmount)
	assert.Equal(t, Flop, s.Snapshot(-1).Street)
}

func TestBigBlindOptionRaiseReopens(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 1000, 1000, 1000))
	_, err := s.StartNewHand()
	require.NoError(t, err)

	act(t, s, 3, Call, 0)
	act(t, s, 0, Call, 0)
	act(t, s, 1, Call, 0)
	act(t, s, 2, Raise, 40)

	snap := s.Snapshot(-1)
	assert.Equal(t, PreFlop, snap.Street)
	assert.Equal(t, 3, snap.Turn)
	assert.Equal(t, 70, snap.MinRaiseTo)
}

func TestMinimumRaise(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 1000, 1000, 1000))
	_, err := s.StartNewHand()
	require.NoError(t, err)

	steps := []struct {
		seat      int
		tooSmall  int
		legal     int
		nextMinTo int
	}{
		{seat: 3, tooSmall: 15, legal: 20, nextMinTo: 30},
		{seat: 0, tooSmall: 25, legal: 50, nextMinTo: 80},
		{seat: 1, tooSmall: 70, legal: 80, nextMinTo: 110},
	}
	for _, step := range steps {
		before := s.Snapshot(-1)
		res, err := s.ApplyAction(step.seat, Raise, step.tooSmall)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.ErrorIs(t, res.Err, ErrRaiseTooSmall)
		assert.ErrorIs(t, res.Err, ErrInvalidAction)
		assert.Equal(t, before, s.Snapshot(-1), "a rejected raise must not change the table")

		act(t, s, step.seat, Raise, step.legal)
		assert.Equal(t, step.nextMinTo, s.Snapshot(-1).MinRaiseTo)
	}
}

func TestRejectedActions(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 1000, 1000, 1000))

	res, err := s.ApplyAction(0, Call, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, res.Err, ErrHandNotInProgress)

	_, err = s.StartNewHand()
	require.NoError(t, err)
	_, err = s.StartNewHand()
	assert.ErrorIs(t, err, ErrHandInProgress)

	tests := []struct {
		name   string
		seat   int
		action Action
		amount int
		want   error
	}{
		{"seat out of range", 7, Call, 0, ErrSeatOutOfRange},
		{"negative seat", -1, Fold, 0, ErrSeatOutOfRange},
		{"not your turn", 0, Call, 0, ErrNotYourTurn},
		{"negative amount", 3, Raise, -20, ErrInvalidAmount},
		{"check facing a bet", 3, Check, 0, ErrCannotCheck},
		{"raise beyond stack", 3, Raise, 5000, ErrInsufficientChips},
		{"raise not above bet", 3, Raise, 10, ErrRaiseTooSmall},
		{"unknown action", 3, Action(99), 0, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Snapshot(-1)
			res, err := s.ApplyAction(tt.seat, tt.action, tt.amount)
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.ErrorIs(t, res.Err, tt.want)
			assert.Equal(t, before, s.Snapshot(-1))
		})
	}
}

func TestFoldIsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 1000, 1000, 1000))
	_, err := s.StartNewHand()
	require.NoError(t, err)

	act(t, s, 3, Fold, 0)
	before := s.Snapshot(-1)
	movements := s.Movements()

	res := act(t, s, 3, Fold, 0)
	assert.Equal(t, 0, res.BetAmount)
	assert.False(t, res.TriggersShowdown)
	assert.Equal(t, before, s.Snapshot(-1))
	assert.Equal(t, movements, s.Movements())
}

func TestFoldToWinner(t *testing.T) {
	t.Parallel()

	buf := history.NewBuffer(5)
	s := newTable(t, humans(1000, 1000, 1000, 1000), WithRecorder(buf))
	_, err := s.StartNewHand()
	require.NoError(t, err)

	act(t, s, 3, Fold, 0)
	act(t, s, 0, Fold, 0)
	res := act(t, s, 1, Fold, 0)
	assert.True(t, res.TriggersShowdown)

	result, ok := s.ShowdownResult()
	require.True(t, ok)
	assert.True(t, result.Uncontested)
	require.Len(t, result.Hands, 1)
	assert.Equal(t, 2, result.Hands[0].Seat)
	assert.Equal(t, 2, result.Hands[0].Hole.CountCards(), "the winner's final hole cards are kept")
	assert.Equal(t, poker.WorstRank, result.Hands[0].Rank)
	assert.Empty(t, result.Hands[0].Description)
	assert.Equal(t, map[int]int{2: 15}, result.Payouts)
	assert.Equal(t, []int{1000, 995, 1005, 1000}, s.Stacks())

	snap := s.Snapshot(-1)
	assert.True(t, snap.Players[2].HoleHidden, "an uncontested winner does not show")

	rec := buf.Hands()[0]
	assert.True(t, rec.Uncontested)
	assert.Empty(t, rec.Showdown, "nobody shows down an uncontested hand")
	assert.Len(t, rec.Streets, 1)
	assert.Len(t, rec.Streets[0].Actions, 5)
}

func TestHeadsUpPositions(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 1000))
	snap, err := s.StartNewHand()
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Dealer)
	assert.Equal(t, 0, snap.SmallBlind, "the button posts the small blind heads-up")
	assert.Equal(t, 1, snap.BigBlind)
	assert.Equal(t, 0, snap.Turn, "the button acts first before the flop")

	act(t, s, 0, Call, 0)
	act(t, s, 1, Check, 0)

	snap = s.Snapshot(-1)
	require.Equal(t, Flop, snap.Street)
	assert.Equal(t, 1, snap.Turn, "the button acts last after the flop")
	act(t, s, 1, Check, 0)
	act(t, s, 0, Check, 0)

	act(t, s, 1, Raise, 10)
	act(t, s, 0, Fold, 0)
	assert.Equal(t, []int{990, 1010}, s.Stacks())

	snap, err = s.StartNewHand()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Dealer)
	assert.Equal(t, 1, snap.SmallBlind)
	assert.Equal(t, 0, snap.BigBlind)
	assert.Equal(t, 1, snap.Turn)
}

func TestBlindsDouble(t *testing.T) {
	t.Parallel()

	s, err := NewSession(humans(1000, 1000, 1000, 1000), WithBlinds(BlindSchedule{Small: 5, Big: 10, DoubleEvery: 1}))
	require.NoError(t, err)

	snap, err := s.StartNewHand()
	require.NoError(t, err)
	assert.Equal(t, BlindLevel{5, 10}, snap.Blinds)
	act(t, s, 3, Fold, 0)
	act(t, s, 0, Fold, 0)
	act(t, s, 1, Fold, 0)

	snap, err = s.StartNewHand()
	require.NoError(t, err)
	assert.Equal(t, BlindLevel{10, 20}, snap.Blinds)
	assert.Equal(t, 1, snap.Dealer)
	assert.Equal(t, 10, snap.Players[2].Bet)
	assert.Equal(t, 20, snap.Players[3].Bet)
	assert.Equal(t, 20, snap.CurrentBet)
}

func TestShortAllInDoesNotReopen(t *testing.T) {
	t.Parallel()

	start := func(t *testing.T) *Session {
		s := newTable(t, humans(1000, 150, 1000))
		_, err := s.StartNewHand()
		require.NoError(t, err)
		act(t, s, 0, Raise, 100)
		act(t, s, 1, AllIn, 0)

		snap := s.Snapshot(-1)
		require.Equal(t, 150, snap.CurrentBet)
		require.Equal(t, 240, snap.MinRaiseTo, "a short all-in leaves the raise size alone")
		return s
	}

	t.Run("player who acted may only call", func(t *testing.T) {
		s := start(t)
		act(t, s, 2, Call, 0)

		res, err := s.ApplyAction(0, Raise, 400)
		require.NoError(t, err)
		assert.ErrorIs(t, res.Err, ErrBettingNotReopened)

		res = act(t, s, 0, AllIn, 0)
		assert.Equal(t, 50, res.BetAmount, "all-in resolves to a call")
		assert.Equal(t, Flop, s.Snapshot(-1).Street)
	})

	t.Run("player yet to act may raise", func(t *testing.T) {
		s := start(t)
		act(t, s, 2, Raise, 240)
		act(t, s, 0, Raise, 400)
		assert.Equal(t, 2, s.Snapshot(-1).Turn)
	})
}

func TestEliminatedSeatsSitOut(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 0, 1000))
	snap, err := s.StartNewHand()
	require.NoError(t, err)
	assert.True(t, snap.Players[1].Eliminated)
	assert.Equal(t, 0, snap.SmallBlind, "two players left plays heads-up")
	assert.Equal(t, 2, snap.BigBlind)

	s = newTable(t, humans(1000, 0))
	_, err = s.StartNewHand()
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	s = newTable(t, humans(1000, 40, 1000), WithTableMinimum(50))
	snap, err = s.StartNewHand()
	require.NoError(t, err)
	assert.True(t, snap.Players[1].Eliminated)
	assert.Equal(t, 40, snap.Players[1].Stack)
}

func TestShortBlindGoesAllIn(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 3, 1000))
	snap, err := s.StartNewHand()
	require.NoError(t, err)
	assert.True(t, snap.Players[1].AllIn)
	assert.Equal(t, 3, snap.Players[1].Bet)
	assert.Equal(t, 10, snap.CurrentBet)
	assert.Equal(t, 13, snap.Pot)
}

func TestShortBigBlindAllInPlaysOut(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 1000, 6))
	snap, err := s.StartNewHand()
	require.NoError(t, err)
	require.NoError(t, s.Err())
	assert.Equal(t, 2, snap.BigBlind)
	assert.True(t, snap.Players[2].AllIn)
	assert.Equal(t, 11, snap.Pot)
	assert.Equal(t, 10, snap.CurrentBet)
	assert.Equal(t, 0, snap.Turn)

	act(t, s, 0, Call, 0)
	act(t, s, 1, Call, 0)
	for range 3 {
		require.Equal(t, 1, s.Snapshot(-1).Turn, "the all-in big blind is skipped")
		act(t, s, 1, Check, 0)
		act(t, s, 0, Check, 0)
	}
	require.False(t, s.InProgress())
	require.NoError(t, s.Err())

	result, ok := s.ShowdownResult()
	require.True(t, ok)
	require.Len(t, result.Pots, 2)
	assert.Equal(t, 18, result.Pots[0].Amount)
	assert.Equal(t, []int{0, 1, 2}, result.Pots[0].Eligible)
	assert.Equal(t, 8, result.Pots[1].Amount)
	assert.Equal(t, []int{0, 1}, result.Pots[1].Eligible)

	total := 0
	for _, stack := range s.Stacks() {
		total += stack
	}
	assert.Equal(t, 2006, total)
}

func TestFoldAndAllInMidRound(t *testing.T) {
	t.Parallel()

	t.Run("fold then play on", func(t *testing.T) {
		s := newTable(t, humans(1000, 1000, 1000))
		_, err := s.StartNewHand()
		require.NoError(t, err)

		res := act(t, s, 0, Fold, 0)
		assert.False(t, res.TriggersShowdown)
		require.NoError(t, s.Err())
		assert.Equal(t, 1, s.Snapshot(-1).Turn)

		act(t, s, 1, Call, 0)
		act(t, s, 2, Check, 0)
		for range 3 {
			act(t, s, 1, Check, 0)
			res = act(t, s, 2, Check, 0)
		}
		assert.True(t, res.TriggersShowdown)
		assert.NoError(t, s.Err())
		assert.Equal(t, 3000, s.Stacks()[0]+s.Stacks()[1]+s.Stacks()[2])
		assert.Equal(t, 1000, s.Stacks()[0], "the folded player lost nothing")

		_, err = s.StartNewHand()
		assert.NoError(t, err, "the session keeps dealing")
	})

	t.Run("all-in then call", func(t *testing.T) {
		s := newTable(t, humans(1000, 1000, 1000))
		_, err := s.StartNewHand()
		require.NoError(t, err)

		res := act(t, s, 0, AllIn, 0)
		assert.Equal(t, 1000, res.BetAmount)
		require.NoError(t, s.Err())
		assert.Equal(t, 1, s.Snapshot(-1).Turn)

		act(t, s, 1, Fold, 0)
		res = act(t, s, 2, Call, 0)
		assert.True(t, res.TriggersShowdown, "both all-in, the board runs out")
		assert.NoError(t, s.Err())

		result, ok := s.ShowdownResult()
		require.True(t, ok)
		assert.Len(t, result.Board.Cards(), 5)
		assert.Equal(t, 3000, s.Stacks()[0]+s.Stacks()[1]+s.Stacks()[2])
		assert.Equal(t, 995, s.Stacks()[1])
	})
}

func TestInsufficientCardsRestoresStacks(t *testing.T) {
	t.Parallel()

	t.Run("flop", func(t *testing.T) {
		deck := stackedDeck(t, "As Ks Qs Js Ah Kh Qh Jh")
		s := newTable(t, humans(1000, 1000, 1000, 1000), WithDeck(deck))
		_, err := s.StartNewHand()
		require.NoError(t, err)

		act(t, s, 3, Call, 0)
		act(t, s, 0, Call, 0)
		act(t, s, 1, Call, 0)
		res, err := s.ApplyAction(2, Check, 0)
		require.ErrorIs(t, err, poker.ErrInsufficientCards)
		assert.True(t, res.Success)
		assert.False(t, res.TriggersShowdown)

		assert.False(t, s.InProgress())
		assert.NoError(t, s.Err(), "an aborted hand does not stop the session")
		assert.Equal(t, []int{1000, 1000, 1000, 1000}, s.Stacks())

		refunds := 0
		for _, m := range s.Movements() {
			if m.Kind == MoveRefund {
				refunds++
				assert.Equal(t, 10, m.Amount)
			}
		}
		assert.Equal(t, 4, refunds)
	})

	t.Run("river", func(t *testing.T) {
		deck := stackedDeck(t, "As Ks Qs Js Ah Kh Qh Jh 3c 2d 7c 9h 5c 4d")
		s := newTable(t, humans(1000, 1000, 1000, 1000), WithDeck(deck))
		_, err := s.StartNewHand()
		require.NoError(t, err)

		act(t, s, 3, Call, 0)
		act(t, s, 0, Call, 0)
		act(t, s, 1, Call, 0)
		act(t, s, 2, Check, 0)
		for _, seat := range []int{1, 2, 3, 0} {
			act(t, s, seat, Check, 0)
		}
		assert.Equal(t, Turn, s.Snapshot(-1).Street)
		for _, seat := range []int{1, 2, 3} {
			act(t, s, seat, Check, 0)
		}
		_, err = s.ApplyAction(0, Check, 0)
		require.ErrorIs(t, err, poker.ErrInsufficientCards)
		assert.Contains(t, err.Error(), "dealing river")
		assert.NoError(t, s.Err())
		assert.Equal(t, []int{1000, 1000, 1000, 1000}, s.Stacks())
	})

	t.Run("hole cards", func(t *testing.T) {
		deck := stackedDeck(t, "As Ks Qs Js Ah")
		s := newTable(t, humans(1000, 1000, 1000, 1000), WithDeck(deck))
		_, err := s.StartNewHand()
		require.ErrorIs(t, err, poker.ErrInsufficientCards)
		assert.False(t, s.InProgress())
		assert.Equal(t, []int{1000, 1000, 1000, 1000}, s.Stacks())
	})
}

func TestInvariantViolationStopsSession(t *testing.T) {
	t.Parallel()

	t.Run("conservation", func(t *testing.T) {
		s := newTable(t, humans(1000, 1000, 1000, 1000))
		_, err := s.StartNewHand()
		require.NoError(t, err)

		s.players[0].Stack += 7
		res, err := s.ApplyAction(3, Call, 0)
		require.ErrorIs(t, err, ErrChipConservation)
		assert.ErrorIs(t, err, ErrSessionFailed)
		assert.False(t, res.Success)

		var inv *InvariantError
		require.ErrorAs(t, err, &inv)
		assert.Equal(t, "conservation", inv.Check)

		_, err = s.StartNewHand()
		assert.ErrorIs(t, err, ErrSessionFailed)
		_, err = s.ApplyAction(0, Call, 0)
		assert.ErrorIs(t, err, ErrSessionFailed)
	})

	t.Run("all-in flag", func(t *testing.T) {
		s := newTable(t, humans(1000, 1000, 1000, 1000))
		_, err := s.StartNewHand()
		require.NoError(t, err)

		s.players[0].AllIn = true
		_, err = s.ApplyAction(3, Call, 0)
		require.ErrorIs(t, err, ErrStateInvariant)
		assert.Error(t, s.Err())
	})
}

func TestSnapshotHidesHoleCards(t *testing.T) {
	t.Parallel()

	s := newTable(t, humans(1000, 1000, 1000))
	_, err := s.StartNewHand()
	require.NoError(t, err)

	snap := s.Snapshot(1)
	for _, p := range snap.Players {
		if p.Seat == 1 {
			assert.Equal(t, 2, p.Hole.CountCards())
			assert.False(t, p.HoleHidden)
			continue
		}
		assert.Zero(t, p.Hole, "seat %d leaked to seat 1", p.Seat)
		assert.True(t, p.HoleHidden)
	}

	for _, p := range s.Snapshot(-1).Players {
		assert.True(t, p.HoleHidden)
	}

	cur, ok := s.CurrentPlayer()
	require.True(t, ok)
	assert.Equal(t, 2, cur.Hole.CountCards(), "the player to act sees their own cards")
}

func TestRecorderTimestamps(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	start := clock.Now()
	buf := history.NewBuffer(2)
	s := newTable(t, humans(1000, 1000), WithClock(clock), WithRecorder(buf), WithID("test-session"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for range 3 {
		snap, err := s.StartNewHand()
		require.NoError(t, err)
		act(t, s, snap.Turn, Fold, 0)
		clock.Advance(time.Minute).MustWait(ctx)
	}

	assert.Equal(t, 2, buf.Len())
	assert.Equal(t, 3, buf.Total())
	hands := buf.Hands()
	assert.Equal(t, 2, hands[0].Hand)
	assert.Equal(t, 3, hands[1].Hand)
	assert.Equal(t, "test-session", hands[0].SessionID)
	assert.True(t, hands[0].StartedAt.Equal(start.Add(time.Minute)))
	assert.True(t, hands[1].EndedAt.Equal(start.Add(2*time.Minute)))

	actions := hands[1].Streets[0].Actions
	require.Len(t, actions, 3)
	assert.Equal(t, history.ActionSmallBlind, actions[0].Action)
	assert.Equal(t, history.ActionBigBlind, actions[1].Action)
	assert.Equal(t, "fold", actions[2].Action)
}

func TestNewSessionValidation(t *testing.T) {
	t.Parallel()

	_, err := NewSession(humans(1000))
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)

	_, err = NewSession(humans(1000, -1))
	assert.Error(t, err)

	_, err = NewSession(humans(1000, 1000), WithBlinds(BlindSchedule{Small: 10, Big: 5}))
	assert.Error(t, err)

	_, err = NewSession(humans(1000, 1000), WithButton(2))
	assert.Error(t, err)

	s, err := NewSession(humans(600, 400))
	require.NoError(t, err)
	assert.Equal(t, 1000, s.TotalChips())
	assert.Len(t, s.ID(), 26)
}
