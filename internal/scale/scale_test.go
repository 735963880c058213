package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandGeometry(t *testing.T) {
	b := NewBand([]string{"a", "b", "c", "d"}, 0, 410, 0.05)

	// step = 410 / (4 - 0.05 + 0.1) = 101.2345...
	assert.InDelta(t, 410/4.05, b.Step(), 1e-9)
	assert.InDelta(t, b.Step()*0.95, b.Bandwidth(), 1e-9)

	first, ok := b.Position("a")
	require.True(t, ok)
	last, _ := b.Position("d")
	// outer padding equals inner padding, so the layout is symmetric
	assert.InDelta(t, 410-(last+b.Bandwidth()), first, 1e-9)
	assert.InDelta(t, b.Step()*0.05, first, 1e-9)

	_, ok = b.Position("zzz")
	assert.False(t, ok)
}

func TestBandDedupesDomain(t *testing.T) {
	b := NewBand([]string{"x", "y", "x"}, 0, 100, 0)
	assert.Equal(t, []string{"x", "y"}, b.Domain())
	assert.InDelta(t, 50, b.Step(), 1e-9)
}

func TestBandWithDomainKeepsRange(t *testing.T) {
	b := NewBand([]string{"a", "b"}, 10, 110, 0.1)
	c := b.WithDomain([]string{"b", "a"})
	r0, r1 := c.Range()
	assert.Equal(t, 10.0, r0)
	assert.Equal(t, 110.0, r1)
	pa, _ := b.Position("a")
	pb, _ := c.Position("b")
	assert.InDelta(t, pa, pb, 1e-9)
}

func TestBandInvert(t *testing.T) {
	b := NewBand([]string{"a", "b", "c"}, 0, 300, 0)
	key, ok := b.Invert(150)
	require.True(t, ok)
	assert.Equal(t, "b", key)

	key, ok = b.Invert(0)
	require.True(t, ok)
	assert.Equal(t, "a", key)

	_, ok = b.Invert(-5)
	assert.False(t, ok)
	_, ok = b.Invert(300)
	assert.False(t, ok)

	_, ok = NewBand(nil, 0, 100, 0.05).Invert(10)
	assert.False(t, ok)
}

func TestLinearInvertedRange(t *testing.T) {
	l := NewLinear(0, 10, 220, 0)
	assert.Equal(t, 220.0, l.Scale(0))
	assert.Equal(t, 0.0, l.Scale(10))
	assert.Equal(t, 110.0, l.Scale(5))
	assert.Less(t, l.Scale(7), l.Scale(3), "larger values sit higher on screen")
}

func TestLinearDegenerateDomain(t *testing.T) {
	l := NewLinear(0, 0, 220, 0)
	assert.Equal(t, 220.0, l.Scale(0))
	assert.Equal(t, []float64{0}, l.Ticks(10))
}

func TestTicks(t *testing.T) {
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, NewLinear(0, 10, 0, 1).Ticks(10))
	assert.Equal(t, []float64{0, 20, 40, 60, 80, 100}, NewLinear(0, 100, 0, 1).Ticks(5))
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2, 2.5}, NewLinear(0, 2.7, 0, 1).Ticks(5))
	assert.Nil(t, NewLinear(0, 1, 0, 1).Ticks(0))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "10", FormatValue(10))
	assert.Equal(t, "2.5", FormatValue(2.5))
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "-3", FormatValue(-3))
}
