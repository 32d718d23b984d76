package motion

import "time"

// Slide animates one carousel page leaving while the next arrives.
// The outgoing row goes visible -> exit, the incoming row hidden -> visible.
type Slide struct {
	From, To int // Page indices

	outgoing *Animator
	incoming *Animator

	exitReported bool
}

// NewSlide starts a page transition at now using row variants
func NewSlide(rows Variants, from, to int, now time.Time) *Slide {
	hidden := rows.MustGet(StateHidden)
	visible := rows.MustGet(StateVisible)
	return &Slide{
		From:     from,
		To:       to,
		outgoing: NewAnimator(visible.Target, rows.MustGet(StateExit), now),
		incoming: NewAnimator(hidden.Target, visible, now),
	}
}

// Frame returns the outgoing and incoming row values at now
func (s *Slide) Frame(now time.Time) (out, in Values) {
	out, _ = s.outgoing.Frame(now)
	in, _ = s.incoming.Frame(now)
	return out, in
}

// ExitComplete reports true exactly once: on the first call at or after
// the outgoing row finished
func (s *Slide) ExitComplete(now time.Time) bool {
	if s.exitReported || !s.outgoing.Done(now) {
		return false
	}
	s.exitReported = true
	return true
}

// Done reports whether both rows have settled
func (s *Slide) Done(now time.Time) bool {
	return s.outgoing.Done(now) && s.incoming.Done(now)
}
