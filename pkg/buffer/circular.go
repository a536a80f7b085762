package buffer

import (
	"sync"
)

// DefaultCapacity is the number of inputs kept when New is given no capacity.
const DefaultCapacity = 200

// InputRing is a thread-safe ring of submitted inputs with a recall cursor,
// used to step back and forth through what the user has already sent.
type InputRing struct {
	mu       sync.RWMutex
	data     []string
	capacity int // Maximum number of entries
	size     int // Current number of entries
	head     int // Write position
	cursor   int // Recall offset from the newest entry; -1 means not recalling
}

// New creates a ring with the specified capacity (in entries).
func New(capacity int) *InputRing {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &InputRing{
		data:     make([]string, capacity),
		capacity: capacity,
		cursor:   -1,
	}
}

// Push records an input and resets the recall cursor. An input equal to
// the newest entry is not stored twice.
func (r *InputRing) Push(input string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cursor = -1
	if input == "" {
		return
	}
	if r.size > 0 && r.data[r.index(0)] == input {
		return
	}

	r.data[r.head] = input
	r.head = (r.head + 1) % r.capacity
	if r.size < r.capacity {
		r.size++
	}
}

// Prev moves the cursor one entry back and returns it. It reports false
// when the ring is empty; at the oldest entry it keeps returning that entry.
func (r *InputRing) Prev() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.size == 0 {
		return "", false
	}
	if r.cursor < r.size-1 {
		r.cursor++
	}
	return r.data[r.index(r.cursor)], true
}

// Next moves the cursor one entry forward. Stepping past the newest entry
// leaves recall mode and reports false so the caller can restore a draft.
func (r *InputRing) Next() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cursor <= 0 {
		r.cursor = -1
		return "", false
	}
	r.cursor--
	return r.data[r.index(r.cursor)], true
}

// Recalling reports whether the cursor points at a stored entry.
func (r *InputRing) Recalling() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cursor >= 0
}

// LastN returns up to n entries, oldest first.
func (r *InputRing) LastN(n int) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n > r.size {
		n = r.size
	}

	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = r.data[r.index(n-1-i)]
	}
	return result
}

// All returns every stored entry, oldest first.
func (r *InputRing) All() []string {
	return r.LastN(r.Size())
}

// Size returns the current number of entries.
func (r *InputRing) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Capacity returns the maximum number of entries.
func (r *InputRing) Capacity() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.capacity
}

// Clear empties the ring.
func (r *InputRing) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = make([]string, r.capacity)
	r.size = 0
	r.head = 0
	r.cursor = -1
}

// index maps an offset from the newest entry to a slot. Caller holds the lock.
func (r *InputRing) index(offset int) int {
	return (r.head - 1 - offset + 2*r.capacity) % r.capacity
}
