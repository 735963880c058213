// internal/scale/band.go
// Package scale maps data domains onto pixel (or terminal cell) ranges.
package scale

import "math"

// Band maps discrete keys to evenly spaced bands. Padding is used for both
// the gaps between bands and the space before the first and after the last,
// as a fraction of the step, with the bands centered in the range.
type Band struct {
	domain  []string
	index   map[string]int
	r0, r1  float64
	padding float64
	step    float64
	start   float64
}

// NewBand builds a band scale over keys spanning [r0, r1]. Duplicate keys
// share the band of their first occurrence.
func NewBand(keys []string, r0, r1, padding float64) Band {
	b := Band{index: make(map[string]int, len(keys)), r0: r0, r1: r1, padding: clampPadding(padding)}
	for _, k := range keys {
		if _, ok := b.index[k]; ok {
			continue
		}
		b.index[k] = len(b.domain)
		b.domain = append(b.domain, k)
	}
	b.rescale()
	return b
}

func clampPadding(p float64) float64 {
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func (b *Band) rescale() {
	n := float64(len(b.domain))
	span := b.r1 - b.r0
	b.step = span / math.Max(1, n-b.padding+2*b.padding)
	b.start = b.r0 + (span-b.step*(n-b.padding))*0.5
}

// WithDomain returns a copy of b over a new key sequence and the same range.
func (b Band) WithDomain(keys []string) Band {
	return NewBand(keys, b.r0, b.r1, b.padding)
}

// Domain returns the deduplicated keys in band order.
func (b Band) Domain() []string {
	out := make([]string, len(b.domain))
	copy(out, b.domain)
	return out
}

// Range returns the output interval.
func (b Band) Range() (float64, float64) { return b.r0, b.r1 }

// Step is the distance between the starts of adjacent bands.
func (b Band) Step() float64 { return b.step }

// Bandwidth is the width of a single band.
func (b Band) Bandwidth() float64 { return b.step * (1 - b.padding) }

// Position returns the start of key's band.
func (b Band) Position(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Invert returns the key whose band, widened by half the gap on each side,
// contains px.
func (b Band) Invert(px float64) (string, bool) {
	if len(b.domain) == 0 || b.step <= 0 {
		return "", false
	}
	gap := b.step - b.Bandwidth()
	i := int(math.Floor((px - b.start + gap/2) / b.step))
	if i < 0 || i >= len(b.domain) {
		return "", false
	}
	return b.domain[i], true
}
