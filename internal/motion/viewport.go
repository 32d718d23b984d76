package motion

import (
	"os"
	"sync"

	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// ViewportSizer reports the current drawable size in cells
type ViewportSizer interface {
	ViewportSize() (width, height int)
}

// SizerFunc adapts a function to ViewportSizer
type SizerFunc func() (int, int)

// ViewportSize implements ViewportSizer
func (f SizerFunc) ViewportSize() (int, int) { return f() }

// TerminalSizer tracks the terminal size from resize events, asking the
// terminal directly until the first event arrives
type TerminalSizer struct {
	mu     sync.RWMutex
	fd     int
	width  int
	height int
}

// NewTerminalSizer creates a sizer for stdout
func NewTerminalSizer() *TerminalSizer {
	return &TerminalSizer{fd: int(os.Stdout.Fd())}
}

// Update records a size reported by a resize event
func (s *TerminalSizer) Update(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

// ViewportSize implements ViewportSizer
func (s *TerminalSizer) ViewportSize() (int, int) {
	s.mu.RLock()
	w, h := s.width, s.height
	s.mu.RUnlock()
	if w > 0 && h > 0 {
		return w, h
	}

	if term.IsTerminal(s.fd) {
		if w, h, err := term.GetSize(s.fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return fallbackWidth, fallbackHeight
}
