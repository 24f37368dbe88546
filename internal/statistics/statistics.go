// Package statistics aggregates completed hands into per-seat results
// measured in big blinds.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/lox/pokertrainer/internal/history"
)

// Result is one seat's outcome in one hand.
type Result struct {
	NetBB          float64
	WentToShowdown bool
	PotBB          float64
}

// Stats tracks a seat's results. Sums are kept rather than values so a
// session of any length costs the same memory.
type Stats struct {
	Hands  int
	SumBB  float64
	SumBB2 float64 // sum of squares for the variance

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // net from hands that reached showdown
	NonShowdownBB   float64 // net from everything else
	MaxPotBB        float64
}

// Add incorporates one hand.
func (s *Stats) Add(r Result) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB

	if r.WentToShowdown {
		s.ShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.NonShowdownWins++
		}
	}
	s.MaxPotBB = max(s.MaxPotBB, r.PotBB)
}

// Mean returns the average result in big blinds per hand.
func (s Stats) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// BBPer100 is the mean scaled to a hundred hands.
func (s Stats) BBPer100() float64 {
	return s.Mean() * 100
}

// Variance returns the sample variance.
func (s Stats) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
	return max(v, 0)
}

func (s Stats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s Stats) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% interval for the mean.
func (s Stats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Validate checks the showdown split accounts for every chip.
func (s Stats) Validate() error {
	if math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: total=%.6f, showdown=%.6f, non-showdown=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.ShowdownWins+s.NonShowdownWins > s.Hands {
		return fmt.Errorf("wins (%d) exceed hands (%d)", s.ShowdownWins+s.NonShowdownWins, s.Hands)
	}
	return nil
}

// Tracker collects Stats per seat from completed hands. It satisfies the
// session recorder hook and is safe to share between sessions.
type Tracker struct {
	mu    sync.Mutex
	seats map[int]*Stats
}

func NewTracker() *Tracker {
	return &Tracker{seats: make(map[int]*Stats)}
}

// Record adds every dealt-in player of the hand.
func (t *Tracker) Record(h history.HandRecord) {
	if h.BigBlind <= 0 {
		return
	}
	bb := float64(h.BigBlind)
	showdown := make(map[int]bool, len(h.Showdown))
	for _, e := range h.Showdown {
		showdown[e.Seat] = true
	}
	pot := 0
	for _, p := range h.Pots {
		pot += p.Amount
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for seat, net := range h.Net() {
		s, ok := t.seats[seat]
		if !ok {
			s = &Stats{}
			t.seats[seat] = s
		}
		s.Add(Result{
			NetBB:          float64(net) / bb,
			WentToShowdown: showdown[seat],
			PotBB:          float64(pot) / bb,
		})
	}
}

// Seat returns a copy of a seat's stats.
func (t *Tracker) Seat(seat int) Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.seats[seat]; ok {
		return *s
	}
	return Stats{}
}

// Seats lists the seats seen so far in order.
func (t *Tracker) Seats() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	seats := make([]int, 0, len(t.seats))
	for seat := range t.seats {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}
