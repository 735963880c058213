// internal/scale/linear.go
package scale

import (
	"math"
	"strconv"
)

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the input interval.
func (l Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the output interval.
func (l Linear) Range() (float64, float64) { return l.r0, l.r1 }

// Scale maps v. A zero-width domain maps everything to r0.
func (l Linear) Scale(v float64) float64 {
	if l.d1 == l.d0 {
		return l.r0
	}
	return l.r0 + (v-l.d0)/(l.d1-l.d0)*(l.r1-l.r0)
}

// Ticks returns roughly count round values (1, 2 or 5 times a power of ten)
// inside the domain.
func (l Linear) Ticks(count int) []float64 {
	lo, hi := l.d0, l.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	if count <= 0 {
		return nil
	}
	if lo == hi {
		return []float64{lo}
	}
	step := tickStep(lo, hi, count)
	if step <= 0 || math.IsInf(step, 0) {
		return nil
	}
	var ticks []float64
	if step >= 1 {
		first, last := math.Ceil(lo/step), math.Floor(hi/step)
		for i := first; i <= last; i++ {
			ticks = append(ticks, i*step)
		}
		return ticks
	}
	inv := math.Round(1 / step)
	first, last := math.Ceil(lo*inv), math.Floor(hi*inv)
	for i := first; i <= last; i++ {
		ticks = append(ticks, i/inv)
	}
	return ticks
}

func tickStep(lo, hi float64, count int) float64 {
	raw := (hi - lo) / float64(count)
	power := math.Pow(10, math.Floor(math.Log10(raw)))
	e := raw / power
	switch {
	case e >= math.Sqrt(50):
		return 10 * power
	case e >= math.Sqrt(10):
		return 5 * power
	case e >= math.Sqrt(2):
		return 2 * power
	default:
		return power
	}
}

// FormatValue renders v the shortest way that round-trips, without exponent
// for ordinary magnitudes ("10", "2.5", "0.1").
func FormatValue(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
