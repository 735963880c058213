// internal/chart/renderer.go
package chart

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwiater/tablechart/internal/dataset"
	"github.com/mwiater/tablechart/internal/derived"
	"github.com/mwiater/tablechart/internal/logging"
	"github.com/mwiater/tablechart/internal/scale"
)

var (
	// ErrNotRendered is returned by interactions before a successful load.
	ErrNotRendered = errors.New("chart is not rendered")
	// ErrSettled is returned when a renderer that already finished loading is loaded again.
	ErrSettled = errors.New("chart load already settled")
	// ErrUnknownBar is returned by Hover for an ID that is not on screen.
	ErrUnknownBar = errors.New("no such bar")
)

// State is the renderer lifecycle position.
type State int

const (
	StateLoading State = iota
	StateRendered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tooltip is the value label shown above a hovered bar.
type Tooltip struct {
	BarID int     `json:"barId"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Fill  string  `json:"fill"`
}

// Loader produces the dataset for a renderer.
type Loader func(ctx context.Context) (*dataset.Dataset, error)

// Option configures a Renderer.
type Option func(*Renderer)

// WithMetrics replaces the derived metric formulas and missing-key policy.
func WithMetrics(defs []derived.Definition, policy derived.Policy) Option {
	return func(r *Renderer) {
		r.defs = defs
		r.policy = policy
	}
}

// Renderer owns one loaded dataset and the bars drawn from it. It starts in
// StateLoading, settles once into StateRendered or StateFailed, and then only
// changes bar order and hover state. It is not safe for concurrent use.
type Renderer struct {
	layout Layout
	style  Style
	defs   []derived.Definition
	policy derived.Policy

	state   State
	err     error
	data    *dataset.Dataset
	x       scale.Band
	y       scale.Linear
	bars    []Bar
	hovered int
	tooltip *Tooltip
	metrics []derived.Metric
	frame   Frame
}

func NewRenderer(layout Layout, style Style, opts ...Option) *Renderer {
	r := &Renderer{
		layout:  layout,
		style:   style,
		defs:    derived.Defaults(),
		policy:  derived.MissingUnavailable,
		state:   StateLoading,
		hovered: -1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load runs load and settles the renderer with its result.
func (r *Renderer) Load(ctx context.Context, load Loader) error {
	if r.state != StateLoading {
		return ErrSettled
	}
	ds, err := load(ctx)
	return r.Complete(ds, err)
}

// Complete settles the renderer with an already fetched dataset. A load
// error or an empty dataset moves it to StateFailed and is returned.
func (r *Renderer) Complete(ds *dataset.Dataset, err error) error {
	if r.state != StateLoading {
		return ErrSettled
	}
	if ds != nil {
		r.data = ds
	}
	if err == nil && (ds == nil || ds.Len() == 0) {
		err = dataset.ErrEmptyDataset
	}
	if err != nil {
		r.state = StateFailed
		r.err = err
		logging.LogEvent("chart not rendered: %v", err)
		return err
	}

	r.x, r.y = Scales(ds.Records(), r.layout)
	r.redraw()
	r.metrics = derived.Evaluate(ds.Lookup(), r.defs, r.policy)
	r.state = StateRendered
	return nil
}

func (r *Renderer) redraw() Frame {
	r.clearHover()
	next := LayoutBars(r.data.Records(), r.x, r.y, r.style.BarFill)
	baseline, _ := r.y.Range()
	r.frame = Join(r.bars, next, baseline)
	r.bars = next
	return r.frame
}

// Sort toggles ascending/descending value order and re-lays out the bars.
func (r *Renderer) Sort() (Frame, error) {
	if r.state != StateRendered {
		return Frame{}, ErrNotRendered
	}
	dir := r.data.Sort()
	r.x = r.x.WithDomain(r.data.Keys())
	logging.LogDebug("sorted %d bars %s", len(r.bars), dir)
	return r.redraw(), nil
}

// Reset restores load order and re-lays out the bars.
func (r *Renderer) Reset() (Frame, error) {
	if r.state != StateRendered {
		return Frame{}, ErrNotRendered
	}
	r.data.Reset()
	r.x = r.x.WithDomain(r.data.Keys())
	logging.LogDebug("reset %d bars to load order", len(r.bars))
	return r.redraw(), nil
}

// Hover highlights bar id and places a tooltip over it. Hovering a second
// bar first restores the previous one.
func (r *Renderer) Hover(id int) (Transition, error) {
	if r.state != StateRendered {
		return Transition{}, ErrNotRendered
	}
	idx := r.indexOf(id)
	if idx < 0 {
		return Transition{}, fmt.Errorf("%w: %d", ErrUnknownBar, id)
	}
	if r.hovered >= 0 && r.hovered != id {
		r.clearHover()
	}
	b := &r.bars[idx]
	t := Transition{ID: id, From: b.Geometry, To: b.Geometry, FromFill: b.Fill, ToFill: r.style.HoverFill, Duration: HoverDuration}
	b.Fill = r.style.HoverFill
	r.hovered = id
	r.tooltip = &Tooltip{
		BarID: id,
		X:     b.X + r.x.Bandwidth()/2,
		Y:     b.Y - r.layout.TooltipOffset,
		Text:  scale.FormatValue(b.Value),
		Fill:  r.style.TooltipFill,
	}
	return t, nil
}

// Leave removes the tooltip and restores the hovered bar's fill. It is a
// no-op when nothing is hovered.
func (r *Renderer) Leave() (Transition, bool) {
	if r.hovered < 0 {
		return Transition{}, false
	}
	idx := r.indexOf(r.hovered)
	r.hovered = -1
	r.tooltip = nil
	if idx < 0 {
		return Transition{}, false
	}
	b := &r.bars[idx]
	t := Transition{ID: b.ID, From: b.Geometry, To: b.Geometry, FromFill: b.Fill, ToFill: r.style.BarFill, Duration: RestoreDuration}
	b.Fill = r.style.BarFill
	return t, true
}

func (r *Renderer) clearHover() {
	_, _ = r.Leave()
}

func (r *Renderer) indexOf(id int) int {
	for i, b := range r.bars {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// Resize lays the current bars out again for a new surface size. Hover
// state survives; no transitions are produced.
func (r *Renderer) Resize(layout Layout) {
	r.layout = layout
	if r.state != StateRendered {
		return
	}
	hovered := r.hovered
	r.clearHover()
	r.x, r.y = Scales(r.data.Records(), layout)
	r.bars = LayoutBars(r.data.Records(), r.x, r.y, r.style.BarFill)
	if hovered >= 0 {
		_, _ = r.Hover(hovered)
	}
}

// BarAt returns the bar under plot-area x coordinate px.
func (r *Renderer) BarAt(px float64) (Bar, bool) {
	if r.state != StateRendered {
		return Bar{}, false
	}
	key, ok := r.x.Invert(px)
	if !ok {
		return Bar{}, false
	}
	for _, b := range r.bars {
		if b.Key == key {
			return b, true
		}
	}
	return Bar{}, false
}

// Arrangement lays out the bars for dir without changing the renderer.
func (r *Renderer) Arrangement(dir dataset.Direction) []Bar {
	if r.state != StateRendered {
		return nil
	}
	records := r.data.Sorted(dir)
	keys := make([]string, len(records))
	for i, rec := range records {
		keys[i] = rec.Key
	}
	return LayoutBars(records, r.x.WithDomain(keys), r.y, r.style.BarFill)
}

// Bars returns the drawn bars in display order.
func (r *Renderer) Bars() []Bar {
	out := make([]Bar, len(r.bars))
	copy(out, r.bars)
	return out
}

// Tooltip returns the current tooltip, if a bar is hovered.
func (r *Renderer) Tooltip() (Tooltip, bool) {
	if r.tooltip == nil {
		return Tooltip{}, false
	}
	return *r.tooltip, true
}

// Hovered returns the hovered bar ID, or -1.
func (r *Renderer) Hovered() int { return r.hovered }

// LastFrame returns the join computed by the most recent render.
func (r *Renderer) LastFrame() Frame { return r.frame }

func (r *Renderer) Scales() (scale.Band, scale.Linear) { return r.x, r.y }
func (r *Renderer) Metrics() []derived.Metric         { return append([]derived.Metric(nil), r.metrics...) }
func (r *Renderer) State() State                      { return r.state }
func (r *Renderer) Err() error                        { return r.err }
func (r *Renderer) Layout() Layout                    { return r.layout }
func (r *Renderer) Style() Style                      { return r.style }

// Direction reports the order the bars are currently drawn in.
func (r *Renderer) Direction() dataset.Direction {
	if r.data == nil {
		return dataset.Unsorted
	}
	return r.data.Direction()
}

// Dropped returns how many source rows failed numeric coercion.
func (r *Renderer) Dropped() int {
	if r.data == nil {
		return 0
	}
	return r.data.Dropped
}
