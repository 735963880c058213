// internal/tui/canvas.go
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/mwiater/tablechart/internal/chart"
	"github.com/mwiater/tablechart/internal/report"
	"github.com/mwiater/tablechart/internal/scale"
)

const (
	barRune       = '█'
	valueTicks    = 4
	minChartRows  = 6
	chartMarginL  = 7
	chartMarginT  = 2
	chartMarginB  = 2
	chartMarginR  = 1
	chartPadding  = 0.2
	tooltipOffset = 1
)

// cellLayout is the chart surface for a terminal area of width x height cells.
func cellLayout(width, height int) chart.Layout {
	return chart.Layout{
		Width:         float64(width),
		Height:        float64(height),
		Margin:        chart.Margin{Top: chartMarginT, Right: chartMarginR, Bottom: chartMarginB, Left: chartMarginL},
		Padding:       chartPadding,
		TooltipOffset: tooltipOffset,
	}
}

// animation tracks the transitions of the last sort or reset.
type animation struct {
	byID  map[int]chart.Transition
	start time.Time
}

func newAnimation(frame chart.Frame, start time.Time) *animation {
	a := &animation{byID: make(map[int]chart.Transition, len(frame.Transitions)), start: start}
	for _, t := range frame.Transitions {
		a.byID[t.ID] = t
	}
	return a
}

func (a *animation) geometry(b chart.Bar, now time.Time) chart.Geometry {
	if a == nil {
		return b.Geometry
	}
	t, ok := a.byID[b.ID]
	if !ok {
		return b.Geometry
	}
	return t.At(now.Sub(a.start))
}

func (a *animation) done(now time.Time) bool {
	if a == nil {
		return true
	}
	elapsed := now.Sub(a.start)
	for _, t := range a.byID {
		if !t.Done(elapsed) {
			return false
		}
	}
	return true
}

type cell struct {
	r     rune
	color string
}

type grid struct {
	cells [][]cell
	w, h  int
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h, cells: make([][]cell, h)}
	for i := range g.cells {
		g.cells[i] = make([]cell, w)
		for j := range g.cells[i] {
			g.cells[i][j] = cell{r: ' '}
		}
	}
	return g
}

func (g *grid) set(row, col int, r rune, color string) {
	if row < 0 || row >= g.h || col < 0 || col >= g.w {
		return
	}
	g.cells[row][col] = cell{r: r, color: color}
}

func (g *grid) text(row, col int, s, color string) {
	for _, r := range s {
		g.set(row, col, r, color)
		col += runewidth.RuneWidth(r)
	}
}

func (g *grid) String() string {
	var b strings.Builder
	for i, row := range g.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		runColor := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.color != runColor {
				flush()
				runColor = c.color
			}
			run.WriteRune(c.r)
		}
		flush()
	}
	return b.String()
}

// termColor converts a CSS color to a lipgloss hex color, or "" when unknown.
func termColor(css string) string {
	c, err := report.ParseColor(css)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func round(v float64) int { return int(math.Round(v)) }

// drawChart paints the renderer's bars, axes and tooltip into a grid the
// size of its layout, moving bars along anim when one is running.
func drawChart(r *chart.Renderer, anim *animation, now time.Time) string {
	l := r.Layout()
	if int(l.Width) <= 0 || int(l.Height) <= 0 {
		return ""
	}
	g := newGrid(int(l.Width), int(l.Height))
	top, left := int(l.Margin.Top), int(l.Margin.Left)
	innerW, innerH := round(l.InnerWidth()), round(l.InnerHeight())
	_, y := r.Scales()
	axisColor := "244"

	for row := top; row < top+innerH; row++ {
		g.set(row, left-1, '│', axisColor)
	}
	g.set(top+innerH, left-1, '└', axisColor)
	for col := left; col < left+innerW; col++ {
		g.set(top+innerH, col, '─', axisColor)
	}
	for _, v := range y.Ticks(valueTicks) {
		label := scale.FormatValue(v)
		if w := runewidth.StringWidth(label); w > left-2 {
			label = runewidth.Truncate(label, left-2, "")
		}
		row := top + round(y.Scale(v))
		g.text(row, left-2-runewidth.StringWidth(label), label, axisColor)
	}

	style := r.Style()
	barColor, hoverColor := termColor(style.BarFill), termColor(style.HoverFill)
	for _, b := range r.Bars() {
		geo := anim.geometry(b, now)
		c0 := left + round(geo.X)
		c1 := left + round(geo.X+geo.Width) - 1
		if c1 < c0 {
			c1 = c0
		}
		color := barColor
		if b.ID == r.Hovered() {
			color = hoverColor
		}
		for row := top + round(geo.Y); row < top+round(geo.Y+geo.Height); row++ {
			for col := c0; col <= c1; col++ {
				g.set(row, col, barRune, color)
			}
		}
		width := c1 - c0 + 1
		label := runewidth.Truncate(b.Key, width, "")
		pad := (width - runewidth.StringWidth(label)) / 2
		g.text(top+innerH+1, c0+pad, label, "")
	}

	if tip, ok := r.Tooltip(); ok && (anim == nil || anim.done(now)) {
		row := top + round(tip.Y)
		if row < 0 {
			row = 0
		}
		col := left + round(tip.X) - runewidth.StringWidth(tip.Text)/2
		g.text(row, col, tip.Text, hoverColor)
	}
	return g.String()
}
