// internal/chart/transition.go
package chart

import (
	"math"
	"time"
)

const (
	// MoveDuration animates position and size changes after sort or reset.
	MoveDuration = 500 * time.Millisecond
	// HoverDuration animates the fill change on pointer enter.
	HoverDuration = 200 * time.Millisecond
	// RestoreDuration animates the fill back on pointer leave.
	RestoreDuration = 500 * time.Millisecond
)

// Transition moves one bar from one geometry and fill to another.
type Transition struct {
	ID       int           `json:"id"`
	From     Geometry      `json:"from"`
	To       Geometry      `json:"to"`
	FromFill string        `json:"fromFill"`
	ToFill   string        `json:"toFill"`
	Duration time.Duration `json:"duration"`
}

// Progress returns the eased completion in [0, 1] after elapsed.
func (t Transition) Progress(elapsed time.Duration) float64 {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return easeCubicInOut(float64(elapsed) / float64(t.Duration))
}

// At interpolates the geometry after elapsed.
func (t Transition) At(elapsed time.Duration) Geometry {
	p := t.Progress(elapsed)
	return Geometry{
		X:      lerp(t.From.X, t.To.X, p),
		Y:      lerp(t.From.Y, t.To.Y, p),
		Width:  lerp(t.From.Width, t.To.Width, p),
		Height: lerp(t.From.Height, t.To.Height, p),
	}
}

// FillAt switches to the target fill once the transition completes.
func (t Transition) FillAt(elapsed time.Duration) string {
	if t.Progress(elapsed) >= 1 {
		return t.ToFill
	}
	return t.FromFill
}

// Done reports whether elapsed covers the whole transition.
func (t Transition) Done(elapsed time.Duration) bool {
	return elapsed >= t.Duration
}

func lerp(a, b, p float64) float64 { return a + (b-a)*p }

func easeCubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}
