package motion

import "time"

// Animator plays one transition from a starting value to a variant
type Animator struct {
	from   Values
	target Variant
	start  time.Time
}

// NewAnimator starts a transition from from towards target at start
func NewAnimator(from Values, target Variant, start time.Time) *Animator {
	return &Animator{from: from, target: target, start: start}
}

// Settled returns an animator already resting at v
func Settled(name string, v Values) *Animator {
	return &Animator{from: v, target: Variant{Name: name, Target: v, Timing: Timing{Type: Instant}}}
}

// State returns the name of the variant being animated towards
func (a *Animator) State() string {
	return a.target.Name
}

// Frame returns the values at now and whether the transition finished
func (a *Animator) Frame(now time.Time) (Values, bool) {
	t := a.target.Timing
	elapsed := now.Sub(a.start) - t.Delay
	if elapsed < 0 {
		return a.from, false
	}
	if t.Type == Instant || t.Duration <= 0 || elapsed >= t.Duration {
		return a.target.Target, true
	}

	ease := t.Ease
	if ease == nil {
		ease = EaseInOut
	}
	p := ease(float64(elapsed) / float64(t.Duration))
	return lerpValues(a.from, a.target.Target, p), false
}

// Done reports whether the transition has finished at now
func (a *Animator) Done(now time.Time) bool {
	_, done := a.Frame(now)
	return done
}

// Retarget redirects the animation to target, starting from wherever it
// is at now. Retargeting to the current state is a no-op.
func (a *Animator) Retarget(target Variant, now time.Time) {
	if target.Name == a.target.Name {
		return
	}
	current, _ := a.Frame(now)
	a.from = current
	a.target = target
	a.start = now
}
