// internal/report/png.go
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mwiater/tablechart/internal/chart"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var namedColors = map[string]drawing.Color{
	"black":     drawing.ColorBlack,
	"white":     drawing.ColorWhite,
	"orange":    {R: 255, G: 165, B: 0, A: 255},
	"slateblue": {R: 106, G: 90, B: 205, A: 255},
	"steelblue": {R: 70, G: 130, B: 180, A: 255},
	"red":       drawing.ColorRed,
	"green":     drawing.ColorGreen,
	"blue":      drawing.ColorBlue,
}

// ParseColor understands "#rrggbb", "rgb(r, g, b)" and a few color names.
func ParseColor(s string) (drawing.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		return drawing.ColorFromHex(s[1:]), nil
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "rgb("), ")"), ",")
		if len(parts) == 3 {
			var rgb [3]uint8
			for i, p := range parts {
				n, err := strconv.Atoi(strings.TrimSpace(p))
				if err != nil || n < 0 || n > 255 {
					return drawing.Color{}, fmt.Errorf("bad color component %q in %q", p, s)
				}
				rgb[i] = uint8(n)
			}
			return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
		}
	}
	return drawing.Color{}, fmt.Errorf("unsupported color %q", s)
}

// WritePNG draws the bars of r, in their current order, as a PNG bar chart.
// The hovered bar keeps its hover fill.
func WritePNG(w io.Writer, r *chart.Renderer) error {
	if r.State() != chart.StateRendered {
		return chart.ErrNotRendered
	}
	layout := r.Layout()
	style := r.Style()

	barFill, err := ParseColor(style.BarFill)
	if err != nil {
		return err
	}
	hoverFill, err := ParseColor(style.HoverFill)
	if err != nil {
		return err
	}

	x, y := r.Scales()
	_, max := y.Domain()
	if max <= 0 {
		return fmt.Errorf("png export needs a positive maximum value, got %v", max)
	}

	bars := r.Bars()
	values := make([]gochart.Value, 0, len(bars))
	for _, b := range bars {
		fill := barFill
		if b.ID == r.Hovered() {
			fill = hoverFill
		}
		values = append(values, gochart.Value{
			Label: b.Key,
			Value: math.Max(0, b.Value),
			Style: gochart.Style{FillColor: fill, StrokeColor: fill},
		})
	}

	graph := gochart.BarChart{
		Width:  int(layout.Width),
		Height: int(layout.Height),
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    int(layout.Margin.Top),
				Right:  int(layout.Margin.Right),
				Bottom: int(layout.Margin.Bottom),
				Left:   int(layout.Margin.Left),
			},
		},
		BarWidth:   int(math.Max(1, math.Floor(x.Bandwidth()))),
		BarSpacing: int(math.Max(1, math.Round(x.Step()-x.Bandwidth()))),
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: max},
		},
		Bars: values,
	}
	return graph.Render(gochart.PNG, w)
}
