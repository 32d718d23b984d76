package motion

// Easing maps linear progress in [0,1] to eased progress
type Easing func(t float64) float64

// Linear is constant speed
func Linear(t float64) float64 { return t }

// EaseInOut is a cubic ease that starts and ends slowly
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}

// EaseOut decelerates towards the end
func EaseOut(t float64) float64 {
	f := 1 - t
	return 1 - f*f*f
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpValues(from, to Values, t float64) Values {
	return Values{
		X:       lerp(from.X, to.X, t),
		Y:       lerp(from.Y, to.Y, t),
		Scale:   lerp(from.Scale, to.Scale, t),
		Opacity: lerp(from.Opacity, to.Opacity, t),
	}
}
