// internal/chart/svg.go
package chart

import (
	"bytes"
	"html/template"
	"io"
	"math"
	"strconv"

	"github.com/mwiater/tablechart/internal/scale"
)

// ValueTickCount is the number of ticks requested for the value axis.
const ValueTickCount = 10

type svgTick struct {
	Offset float64
	Label  string
}

type svgModel struct {
	Layout      Layout
	InnerWidth  float64
	InnerHeight float64
	CategoryX   []svgTick
	ValueY      []svgTick
	Bars        []Bar
	Tooltip     *Tooltip
	Style       Style
}

// SVG renders the chart surface: axes, axis titles, bars and, when a bar is
// hovered, the tooltip. An unrendered chart produces ErrNotRendered.
func (r *Renderer) SVG() (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.WriteSVG(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// WriteSVG is SVG written to w.
func (r *Renderer) WriteSVG(w io.Writer) error {
	if r.state != StateRendered {
		return ErrNotRendered
	}
	return svgTemplate.Execute(w, r.svgModel())
}

func (r *Renderer) svgModel() svgModel {
	m := svgModel{
		Layout:      r.layout,
		InnerWidth:  r.layout.InnerWidth(),
		InnerHeight: r.layout.InnerHeight(),
		Bars:        r.Bars(),
		Style:       r.style,
	}
	half := r.x.Bandwidth() / 2
	for _, key := range r.x.Domain() {
		pos, _ := r.x.Position(key)
		m.CategoryX = append(m.CategoryX, svgTick{Offset: pos + half, Label: key})
	}
	for _, v := range r.y.Ticks(ValueTickCount) {
		m.ValueY = append(m.ValueY, svgTick{Offset: r.y.Scale(v), Label: scale.FormatValue(v)})
	}
	if tip, ok := r.Tooltip(); ok {
		m.Tooltip = &tip
	}
	return m
}

// num trims coordinates to three decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

var svgFuncs = template.FuncMap{
	"num":   num,
	"value": scale.FormatValue,
	"neg":   func(v float64) float64 { return -v },
	"half":  func(v float64) float64 { return v / 2 },
	"sub":   func(a, b float64) float64 { return a - b },
	"add":   func(a, b float64) float64 { return a + b },
}

var svgTemplate = template.Must(template.New("chart-svg").Funcs(svgFuncs).Parse(svgTemplateText))

const svgTemplateText = `<svg xmlns="http://www.w3.org/2000/svg" id="chart" width="{{num .Layout.Width}}" height="{{num .Layout.Height}}" viewBox="0 0 {{num .Layout.Width}} {{num .Layout.Height}}" font-family="sans-serif" font-size="10">
<g class="plot" transform="translate({{num .Layout.Margin.Left}}, {{num .Layout.Margin.Top}})">
<g class="x-axis" transform="translate(0, {{num .InnerHeight}})" fill="none" text-anchor="middle">
<path class="domain" stroke="currentColor" d="M0.5,6V0.5H{{num .InnerWidth}}V6"></path>
{{- range .CategoryX}}
<g class="tick" transform="translate({{num .Offset}}, 0)"><line stroke="currentColor" y2="6"></line><text fill="currentColor" y="9" dy="0.71em" transform="rotate(-45)" text-anchor="end">{{.Label}}</text></g>
{{- end}}
</g>
<g class="y-axis" fill="none" text-anchor="end">
<path class="domain" stroke="currentColor" d="M-6,{{num .InnerHeight}}H0.5V0.5H-6"></path>
{{- range .ValueY}}
<g class="tick" transform="translate(0, {{num .Offset}})"><line stroke="currentColor" x2="-6"></line><text fill="currentColor" x="-9" dy="0.32em">{{.Label}}</text></g>
{{- end}}
</g>
<text class="axis-label" transform="rotate(-90)" y="{{num (add (neg .Layout.Margin.Left) 10)}}" x="{{num (neg (half .InnerHeight))}}" dy="-1em" text-anchor="middle">Values</text>
<text class="axis-label" x="{{num (half .InnerWidth)}}" y="{{num (sub (add .InnerHeight .Layout.Margin.Bottom) 10)}}" text-anchor="middle">Index</text>
<g class="bars">
{{- range .Bars}}
<rect class="bar" data-id="{{.ID}}" data-key="{{.Key}}" data-value="{{value .Value}}" x="{{num .X}}" y="{{num .Y}}" width="{{num .Width}}" height="{{num .Height}}" fill="{{.Fill}}"></rect>
{{- end}}
</g>
{{- with .Tooltip}}
<text id="tooltip" x="{{num .X}}" y="{{num .Y}}" text-anchor="middle" fill="{{.Fill}}">{{.Text}}</text>
{{- end}}
</g>
</svg>
`
