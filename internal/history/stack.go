// ABOUTME: Fixed-capacity deque used as a stack with oldest-end eviction
// ABOUTME: Push/pop at the top, eviction from the bottom when full

package history

// boundedStack is a ring buffer holding at most cap values.
// Pushing onto a full stack evicts the oldest value.
type boundedStack[T any] struct {
	data []T
	head int // index of the oldest value
	size int
}

func newBoundedStack[T any](capacity int) *boundedStack[T] {
	return &boundedStack[T]{data: make([]T, capacity)}
}

// push adds v on top and reports whether an old value was evicted.
func (s *boundedStack[T]) push(v T) (evicted bool) {
	capacity := len(s.data)
	if s.size == capacity {
		// Overwrite the oldest slot and advance the bottom.
		s.data[s.head] = v
		s.head = (s.head + 1) % capacity
		return true
	}
	s.data[(s.head+s.size)%capacity] = v
	s.size++
	return false
}

// pop removes and returns the top value.
func (s *boundedStack[T]) pop() (T, bool) {
	var zero T
	if s.size == 0 {
		return zero, false
	}
	idx := (s.head + s.size - 1) % len(s.data)
	v := s.data[idx]
	s.data[idx] = zero
	s.size--
	return v, true
}

// top returns the most recently pushed value without removing it.
func (s *boundedStack[T]) top() (T, bool) {
	var zero T
	if s.size == 0 {
		return zero, false
	}
	return s.data[(s.head+s.size-1)%len(s.data)], true
}

func (s *boundedStack[T]) count() int {
	return s.size
}

func (s *boundedStack[T]) empty() bool {
	return s.size == 0
}

func (s *boundedStack[T]) clear() {
	var zero T
	for i := range s.data {
		s.data[i] = zero
	}
	s.head = 0
	s.size = 0
}

// oldestFirst returns a copy of the contents, bottom to top.
func (s *boundedStack[T]) oldestFirst() []T {
	out := make([]T, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.data[(s.head+i)%len(s.data)]
	}
	return out
}

// newestFirst returns a copy of the contents in pop order.
func (s *boundedStack[T]) newestFirst() []T {
	out := make([]T, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.data[(s.head+s.size-1-i)%len(s.data)]
	}
	return out
}

// contains reports whether match holds for some value.
func (s *boundedStack[T]) contains(match func(T) bool) bool {
	for i := 0; i < s.size; i++ {
		if match(s.data[(s.head+i)%len(s.data)]) {
			return true
		}
	}
	return false
}
