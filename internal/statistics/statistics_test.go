package statistics

import (
	"math"
	"sync"
	"testing"

	"github.com/lox/pokertrainer/internal/history"
)

func TestStats_Empty(t *testing.T) {
	var s Stats

	if s.Mean() != 0 || s.Variance() != 0 || s.StdDev() != 0 || s.StdError() != 0 {
		t.Errorf("Expected zero moments for empty stats, got mean=%f var=%f", s.Mean(), s.Variance())
	}
	lo, hi := s.ConfidenceInterval95()
	if lo != 0 || hi != 0 {
		t.Errorf("Expected empty interval, got [%f, %f]", lo, hi)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Empty stats should validate: %v", err)
	}
}

func TestStats_Add(t *testing.T) {
	var s Stats
	s.Add(Result{NetBB: 2.5, WentToShowdown: true, PotBB: 8})
	s.Add(Result{NetBB: -1})
	s.Add(Result{NetBB: 0.5, PotBB: 1.5})

	if s.Hands != 3 {
		t.Fatalf("Expected 3 hands, got %d", s.Hands)
	}
	if math.Abs(s.Mean()-2.0/3.0) > 1e-9 {
		t.Errorf("Expected mean 0.667, got %f", s.Mean())
	}
	if math.Abs(s.BBPer100()-200.0/3.0) > 1e-9 {
		t.Errorf("Expected 66.7 bb/100, got %f", s.BBPer100())
	}
	if math.Abs(s.Variance()-37.0/12.0) > 1e-9 {
		t.Errorf("Expected variance 3.083, got %f", s.Variance())
	}
	if s.ShowdownWins != 1 || s.NonShowdownWins != 1 {
		t.Errorf("Expected one win of each kind, got %d/%d", s.ShowdownWins, s.NonShowdownWins)
	}
	if s.ShowdownBB != 2.5 || s.NonShowdownBB != -0.5 {
		t.Errorf("Unexpected showdown split %f/%f", s.ShowdownBB, s.NonShowdownBB)
	}
	if s.MaxPotBB != 8 {
		t.Errorf("Expected max pot 8bb, got %f", s.MaxPotBB)
	}

	lo, hi := s.ConfidenceInterval95()
	if !(lo < s.Mean() && s.Mean() < hi) {
		t.Errorf("Mean %f outside interval [%f, %f]", s.Mean(), lo, hi)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestStats_ValidateMismatch(t *testing.T) {
	s := Stats{Hands: 1, SumBB: 2, ShowdownBB: 1}
	if err := s.Validate(); err == nil {
		t.Error("Expected a ledger mismatch")
	}
	s = Stats{Hands: 1, ShowdownWins: 1, NonShowdownWins: 1}
	if err := s.Validate(); err == nil {
		t.Error("Expected too many wins to fail")
	}
}

func hand(bigBlind int, ends [2]int, showdown bool, pot int) history.HandRecord {
	h := history.HandRecord{
		BigBlind: bigBlind,
		Players: []history.PlayerRecord{
			{Seat: 0, StartingStack: 100, EndingStack: ends[0]},
			{Seat: 1, StartingStack: 100, EndingStack: ends[1]},
		},
		Pots: []history.PotRecord{{Amount: pot}},
	}
	if showdown {
		h.Showdown = []history.ShowdownEntry{{Seat: 0}, {Seat: 1}}
	}
	return h
}

func TestTracker(t *testing.T) {
	tr := NewTracker()
	tr.Record(hand(10, [2]int{130, 70}, true, 60))
	tr.Record(hand(10, [2]int{95, 105}, false, 15))
	tr.Record(hand(0, [2]int{0, 200}, true, 200))

	if got := tr.Seats(); len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Fatalf("Expected seats [0 1], got %v", got)
	}

	s0 := tr.Seat(0)
	if s0.Hands != 2 || s0.SumBB != 2.5 || s0.ShowdownWins != 1 {
		t.Errorf("Unexpected seat 0 stats %+v", s0)
	}

	s1 := tr.Seat(1)
	if s1.Hands != 2 || s1.SumBB != -2.5 {
		t.Errorf("Unexpected seat 1 stats %+v", s1)
	}
	if s1.ShowdownBB != -3 || s1.NonShowdownBB != 0.5 || s1.NonShowdownWins != 1 {
		t.Errorf("Unexpected seat 1 split %+v", s1)
	}
	if s1.MaxPotBB != 6 {
		t.Errorf("Expected max pot 6bb, got %f", s1.MaxPotBB)
	}

	if empty := tr.Seat(7); empty.Hands != 0 {
		t.Errorf("Unknown seat should be empty, got %+v", empty)
	}
}

func TestTrackerConcurrent(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				tr.Record(hand(10, [2]int{110, 90}, false, 20))
			}
		}()
	}
	wg.Wait()

	if s := tr.Seat(0); s.Hands != 400 || s.SumBB != 400 {
		t.Errorf("Expected 400 hands of +1bb, got %+v", s)
	}
}
