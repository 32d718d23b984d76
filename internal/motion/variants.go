// Package motion describes animations as named target states with timing
// and plays them frame by frame.
package motion

import "time"

// Variant names
const (
	StateNormal  = "normal"
	StateHover   = "hover"
	StateHidden  = "hidden"
	StateVisible = "visible"
	StateExit    = "exit"
)

// TransitionType selects how a variant is reached
type TransitionType int

const (
	Tween   TransitionType = iota // Interpolate over Duration with easing
	Instant                       // Jump after Delay
)

// Values are the animatable properties. X and Y are in terminal cells.
type Values struct {
	X       float64
	Y       float64
	Scale   float64
	Opacity float64
}

// Identity is the resting state: no offset, full size, fully visible
var Identity = Values{Scale: 1, Opacity: 1}

// Timing describes how long a transition takes to reach its target
type Timing struct {
	Type     TransitionType
	Delay    time.Duration
	Duration time.Duration
	Ease     Easing // nil means EaseInOut
}

// Variant is a named target state with its transition
type Variant struct {
	Name   string
	Target Values
	Timing Timing
}

// Variants maps state names to variants
type Variants map[string]Variant

// Get returns the named variant
func (v Variants) Get(name string) (Variant, bool) {
	vr, ok := v[name]
	return vr, ok
}

// MustGet returns the named variant or a zero-duration identity
func (v Variants) MustGet(name string) Variant {
	if vr, ok := v[name]; ok {
		return vr
	}
	return Variant{Name: name, Target: Identity, Timing: Timing{Type: Instant}}
}

// RowVariants describes the carousel row sliding in from the right and out
// to the left. Distances come from the viewport width at call time.
func RowVariants(vp ViewportSizer, duration time.Duration) Variants {
	width, _ := vp.ViewportSize()
	w := float64(width)
	timing := Timing{Type: Tween, Duration: duration}
	return Variants{
		StateHidden:  {Name: StateHidden, Target: Values{X: w + 5, Scale: 1, Opacity: 1}, Timing: timing},
		StateVisible: {Name: StateVisible, Target: Identity, Timing: timing},
		StateExit:    {Name: StateExit, Target: Values{X: -(w - 5), Scale: 1, Opacity: 1}, Timing: timing},
	}
}

// BoxVariants describes a carousel box growing and lifting one row while
// focused
func BoxVariants(delay, duration time.Duration) Variants {
	return Variants{
		StateNormal: {Name: StateNormal, Target: Identity, Timing: Timing{Type: Tween, Duration: duration}},
		StateHover: {
			Name:   StateHover,
			Target: Values{Y: -1, Scale: 1.3, Opacity: 1},
			Timing: Timing{Type: Tween, Delay: delay, Duration: duration},
		},
	}
}

// InfoVariants describes the title strip under a focused box fading in
func InfoVariants(delay, duration time.Duration) Variants {
	return Variants{
		StateNormal: {Name: StateNormal, Target: Values{Scale: 1}, Timing: Timing{Type: Tween, Duration: duration}},
		StateHover: {
			Name:   StateHover,
			Target: Values{Y: -1, Scale: 1, Opacity: 1},
			Timing: Timing{Type: Tween, Delay: delay, Duration: duration},
		},
	}
}

// OverlayVariants describes the dimmed backdrop behind the detail panel
func OverlayVariants(duration time.Duration) Variants {
	timing := Timing{Type: Tween, Duration: duration}
	return Variants{
		StateHidden:  {Name: StateHidden, Target: Values{Scale: 1}, Timing: timing},
		StateVisible: {Name: StateVisible, Target: Identity, Timing: timing},
		StateExit:    {Name: StateExit, Target: Values{Scale: 1}, Timing: timing},
	}
}
