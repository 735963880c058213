// internal/chart/layout.go
// Package chart turns a dataset into positioned bars, keeps them in step with
// sort, reset and hover actions, and renders them as SVG.
package chart

import (
	"math"

	"github.com/mwiater/tablechart/internal/dataset"
	"github.com/mwiater/tablechart/internal/scale"
)

// Margin is the space around the plot area, in output units.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Layout is the outer size of the chart surface, its margins, the band
// padding and the gap left between a hovered bar and its tooltip. Units are
// pixels for SVG and cells for the terminal view.
type Layout struct {
	Width         float64
	Height        float64
	Margin        Margin
	Padding       float64
	TooltipOffset float64
}

// DefaultLayout is a 500x300 surface with room for rotated category labels.
func DefaultLayout() Layout {
	return Layout{
		Width:         500,
		Height:        300,
		Margin:        Margin{Top: 20, Right: 20, Bottom: 60, Left: 50},
		Padding:       0.05,
		TooltipOffset: 5,
	}
}

func (l Layout) InnerWidth() float64  { return math.Max(0, l.Width-l.Margin.Left-l.Margin.Right) }
func (l Layout) InnerHeight() float64 { return math.Max(0, l.Height-l.Margin.Top-l.Margin.Bottom) }

// Style holds the fill colors used for bars and the tooltip label.
type Style struct {
	BarFill     string
	HoverFill   string
	TooltipFill string
}

func DefaultStyle() Style {
	return Style{BarFill: "rgb(106, 90, 205)", HoverFill: "orange", TooltipFill: "black"}
}

// Geometry is a bar rectangle in plot-area coordinates.
type Geometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bar is one drawn record.
type Bar struct {
	ID    int     `json:"id"`
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Geometry
	Fill string `json:"fill"`
}

// Scales builds the category and value scales for records laid out in l.
// The value domain is [0, max]; a dataset whose max is not positive gets a
// zero-width domain and every bar collapses onto the baseline.
func Scales(records []dataset.Record, l Layout) (scale.Band, scale.Linear) {
	keys := make([]string, len(records))
	max := 0.0
	for i, r := range records {
		keys[i] = r.Key
		if i == 0 || r.Value > max {
			max = r.Value
		}
	}
	if max < 0 {
		max = 0
	}
	x := scale.NewBand(keys, 0, l.InnerWidth(), l.Padding)
	y := scale.NewLinear(0, max, l.InnerHeight(), 0)
	return x, y
}

// LayoutBars positions every record. Negative values are drawn with zero
// height at the baseline.
func LayoutBars(records []dataset.Record, x scale.Band, y scale.Linear, fill string) []Bar {
	baseline, _ := y.Range()
	bars := make([]Bar, 0, len(records))
	for _, r := range records {
		px, _ := x.Position(r.Key)
		top := math.Min(y.Scale(r.Value), baseline)
		bars = append(bars, Bar{
			ID:    r.ID,
			Key:   r.Key,
			Value: r.Value,
			Geometry: Geometry{
				X:      px,
				Y:      top,
				Width:  x.Bandwidth(),
				Height: baseline - top,
			},
			Fill: fill,
		})
	}
	return bars
}
