package history

import "sync"

// DefaultCapacity is the number of hands a Buffer keeps.
const DefaultCapacity = 100

// Buffer is a fixed-size ring of the most recent hands. It is safe for
// concurrent use.
type Buffer struct {
	mu    sync.RWMutex
	hands []HandRecord
	next  int // slot the next record overwrites
	full  bool
	total int
}

// NewBuffer creates a buffer holding up to capacity hands. A non-positive
// capacity uses DefaultCapacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{hands: make([]HandRecord, capacity)}
}

// Record stores a hand, evicting the oldest once full.
func (b *Buffer) Record(h HandRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hands[b.next] = h
	b.next = (b.next + 1) % len(b.hands)
	if b.next == 0 {
		b.full = true
	}
	b.total++
}

// Len returns the number of hands held.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lenLocked()
}

func (b *Buffer) lenLocked() int {
	if b.full {
		return len(b.hands)
	}
	return b.next
}

// Capacity returns the maximum number of hands held.
func (b *Buffer) Capacity() int {
	return len(b.hands)
}

// Total returns how many hands were ever recorded, including evicted ones.
func (b *Buffer) Total() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.total
}

// Hands returns the held hands, oldest first.
func (b *Buffer) Hands() []HandRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := b.lenLocked()
	out := make([]HandRecord, 0, n)
	start := 0
	if b.full {
		start = b.next
	}
	for i := range n {
		out = append(out, b.hands[(start+i)%len(b.hands)])
	}
	return out
}

// Last returns up to n of the most recent hands, oldest first.
func (b *Buffer) Last(n int) []HandRecord {
	hands := b.Hands()
	if n >= 0 && n < len(hands) {
		hands = hands[len(hands)-n:]
	}
	return hands
}
