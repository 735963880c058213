package derived

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = map[string]float64{"A5": 3, "A20": 7, "A15": 10, "A7": 2, "A13": 4, "A12": 5}

func TestDefaultsOnSample(t *testing.T) {
	metrics := Evaluate(sample, Defaults(), MissingUnavailable)
	require.Len(t, metrics, 3)

	assert.Equal(t, Metric{Name: "Alpha", Value: 10, Available: true}, metrics[0])
	assert.Equal(t, Metric{Name: "Beta", Value: 5, Available: true}, metrics[1])
	assert.Equal(t, Metric{Name: "Charlie", Value: 20, Available: true}, metrics[2])
}

func TestMissingKeyPolicies(t *testing.T) {
	lookup := map[string]float64{"A5": 3, "A15": 10, "A7": 2}

	metrics := Evaluate(lookup, Defaults(), MissingUnavailable)
	require.Len(t, metrics, 3)
	assert.False(t, metrics[0].Available)
	assert.Equal(t, []string{"A20"}, metrics[0].Missing)
	assert.Equal(t, "Unavailable", metrics[0].Display("Unavailable"))
	assert.True(t, metrics[1].Available)
	assert.Equal(t, "5", metrics[1].Display("Unavailable"))
	assert.Equal(t, []string{"A13", "A12"}, metrics[2].Missing)

	metrics = Evaluate(lookup, Defaults(), MissingZero)
	assert.True(t, metrics[0].Available)
	assert.Equal(t, 3.0, metrics[0].Value)
	assert.Equal(t, "0", metrics[2].Display("n/a"))
}

func TestMissingZeroPolicyPerOp(t *testing.T) {
	defs := []Definition{
		{Name: "Sum", Op: Sum, Keys: []string{"A5", "A20"}},
		{Name: "Ratio", Op: RatioRound, Keys: []string{"A15", "A7"}},
		{Name: "RatioNoDivisor", Op: RatioRound, Keys: []string{"A15", "A8"}},
		{Name: "Product", Op: Product, Keys: []string{"A13", "A12"}},
		{Name: "Unknown", Op: Op("median"), Keys: []string{"A5", "A99"}},
	}
	lookup := map[string]float64{"A5": 3, "A15": 10, "A13": 4}

	metrics := Evaluate(lookup, defs, MissingZero)
	require.Len(t, metrics, 5)

	assert.True(t, metrics[0].Available)
	assert.Equal(t, 3.0, metrics[0].Value)
	assert.Equal(t, []string{"A20"}, metrics[0].Missing)

	for _, m := range metrics[1:4] {
		assert.True(t, m.Available, m.Name)
		assert.Equal(t, 0.0, m.Value, m.Name)
	}
	assert.False(t, metrics[4].Available)

	metrics = Evaluate(lookup, defs[:1], MissingUnavailable)
	assert.False(t, metrics[0].Available)
}

func TestZeroValuedKeyIsPresent(t *testing.T) {
	lookup := map[string]float64{"A5": 0, "A20": 7}
	metrics := Evaluate(lookup, Defaults()[:1], MissingUnavailable)
	require.Len(t, metrics, 1)
	assert.True(t, metrics[0].Available)
	assert.Equal(t, 7.0, metrics[0].Value)
}

func TestDivisionByZeroIsUnavailable(t *testing.T) {
	lookup := map[string]float64{"A15": 10, "A7": 0}
	for _, policy := range []Policy{MissingUnavailable, MissingZero} {
		metrics := Evaluate(lookup, Defaults()[1:2], policy)
		require.Len(t, metrics, 1)
		assert.False(t, metrics[0].Available)
	}
}

func TestEmptyLookupYieldsNoMetrics(t *testing.T) {
	assert.Empty(t, Evaluate(nil, Defaults(), MissingZero))
	assert.Empty(t, Evaluate(map[string]float64{}, Defaults(), MissingUnavailable))
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3.0, RoundHalfUp(2.5))
	assert.Equal(t, -2.0, RoundHalfUp(-2.5))
	assert.Equal(t, 2.0, RoundHalfUp(2.49))
}

func TestUnknownOpAndArity(t *testing.T) {
	lookup := map[string]float64{"A1": 1, "A2": 2, "A3": 3}
	metrics := Evaluate(lookup, []Definition{
		{Name: "Mean", Op: "mean", Keys: []string{"A1"}},
		{Name: "Triple", Op: RatioRound, Keys: []string{"A1", "A2", "A3"}},
		{Name: "All", Op: Product, Keys: []string{"A1", "A2", "A3"}},
	}, MissingUnavailable)
	require.Len(t, metrics, 3)
	assert.False(t, metrics[0].Available)
	assert.False(t, metrics[1].Available)
	assert.Equal(t, 6.0, metrics[2].Value)
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, MissingZero, ParsePolicy(" Zero "))
	assert.Equal(t, MissingUnavailable, ParsePolicy(""))
	assert.Equal(t, MissingUnavailable, ParsePolicy("nan"))
}
