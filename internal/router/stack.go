package router

// Stack stores the visited paths, most recent last
type Stack struct {
	entries []string
}

// NewStack creates a new empty stack
func NewStack() *Stack {
	return &Stack{entries: make([]string, 0, 4)}
}

// Push adds a path to the top
func (s *Stack) Push(path string) {
	s.entries = append(s.entries, path)
}

// Pop removes and returns the top path
func (s *Stack) Pop() (string, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// Peek returns the top path without removing it
func (s *Stack) Peek() (string, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	return s.entries[len(s.entries)-1], true
}

// Len returns the number of entries
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}
