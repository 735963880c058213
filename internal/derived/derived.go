// internal/derived/derived.go
// Package derived evaluates named scalar metrics from specific table keys.
package derived

import (
	"fmt"
	"math"
	"strings"

	"github.com/mwiater/tablechart/internal/scale"
)

// Op is the arithmetic applied to a definition's keys.
type Op string

const (
	// Sum adds every referenced value.
	Sum Op = "sum"
	// RatioRound divides the first value by the second and rounds half up.
	RatioRound Op = "ratio_round"
	// Product multiplies every referenced value.
	Product Op = "product"
)

// Policy decides what a missing key does to a metric.
type Policy int

const (
	// MissingUnavailable makes any metric with a missing key unavailable.
	MissingUnavailable Policy = iota
	// MissingZero treats a missing key as 0: it drops out of a sum and makes a
	// product or ratio 0.
	MissingZero
)

// ParsePolicy maps "zero" to MissingZero and anything else to MissingUnavailable.
func ParsePolicy(s string) Policy {
	if strings.EqualFold(strings.TrimSpace(s), "zero") {
		return MissingZero
	}
	return MissingUnavailable
}

// Definition is one named formula.
type Definition struct {
	Name string   `json:"name" yaml:"name"`
	Op   Op       `json:"op" yaml:"op"`
	Keys []string `json:"keys" yaml:"keys"`
}

// Defaults returns Alpha = A5 + A20, Beta = round(A15 / A7), Charlie = A13 * A12.
func Defaults() []Definition {
	return []Definition{
		{Name: "Alpha", Op: Sum, Keys: []string{"A5", "A20"}},
		{Name: "Beta", Op: RatioRound, Keys: []string{"A15", "A7"}},
		{Name: "Charlie", Op: Product, Keys: []string{"A13", "A12"}},
	}
}

// Metric is an evaluated definition. Value is meaningful only when Available.
type Metric struct {
	Name      string   `json:"name" yaml:"name"`
	Value     float64  `json:"value" yaml:"value"`
	Available bool     `json:"available" yaml:"available"`
	Missing   []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Display returns the formatted value, or placeholder when unavailable.
func (m Metric) Display(placeholder string) string {
	if !m.Available {
		return placeholder
	}
	return scale.FormatValue(m.Value)
}

// Evaluate computes every definition against lookup. An empty lookup means
// nothing was loaded and yields no metrics at all.
func Evaluate(lookup map[string]float64, defs []Definition, policy Policy) []Metric {
	if len(lookup) == 0 {
		return nil
	}
	out := make([]Metric, 0, len(defs))
	for _, def := range defs {
		out = append(out, evaluate(lookup, def, policy))
	}
	return out
}

func evaluate(lookup map[string]float64, def Definition, policy Policy) Metric {
	m := Metric{Name: def.Name}
	vals := make([]float64, 0, len(def.Keys))
	for _, k := range def.Keys {
		v, ok := lookup[k]
		if !ok {
			m.Missing = append(m.Missing, k)
			continue
		}
		vals = append(vals, v)
	}
	if len(m.Missing) > 0 {
		if policy != MissingZero {
			return m
		}
		// A missing key is a 0 operand: it drops out of a sum and zeroes a
		// product or a ratio.
		switch def.Op {
		case Sum:
			m.Value, _ = apply(Sum, vals)
			m.Available = true
		case Product, RatioRound:
			m.Available = true
		}
		return m
	}

	v, err := apply(def.Op, vals)
	if err != nil {
		return m
	}
	m.Value, m.Available = v, true
	return m
}

func apply(op Op, vals []float64) (float64, error) {
	switch op {
	case Sum:
		total := 0.0
		for _, v := range vals {
			total += v
		}
		return total, nil
	case Product:
		if len(vals) == 0 {
			return 0, fmt.Errorf("product of no values")
		}
		total := 1.0
		for _, v := range vals {
			total *= v
		}
		return total, nil
	case RatioRound:
		if len(vals) != 2 {
			return 0, fmt.Errorf("ratio_round needs 2 keys, got %d", len(vals))
		}
		if vals[1] == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return RoundHalfUp(vals[0] / vals[1]), nil
	default:
		return 0, fmt.Errorf("unknown op %q", op)
	}
}

// RoundHalfUp rounds to the nearest integer, ties toward positive infinity.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
