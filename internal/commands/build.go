// internal/commands/build.go
package tablechart

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/mwiater/tablechart/internal/appconfig"
	"github.com/mwiater/tablechart/internal/chart"
	"github.com/mwiater/tablechart/internal/dataset"
	"github.com/mwiater/tablechart/internal/derived"
)

// stdin is read when the source is "-". Tests swap it.
var stdin io.Reader = os.Stdin

// sourceFromConfig describes where and how to read the table.
func sourceFromConfig(cfg *appconfig.Config) dataset.Source {
	mode := dataset.Normalize
	if cfg.HeaderModeOrDefault() == appconfig.HeaderModeExact {
		mode = dataset.Exact
	}
	key, value := cfg.Columns()
	return dataset.Source{
		Location: cfg.SourcePath(),
		Client:   &http.Client{Timeout: cfg.FetchTimeout()},
		Stdin:    stdin,
		Options: dataset.ParseOptions{
			Delimiter:   cfg.DelimiterRune(),
			HeaderMode:  mode,
			KeyColumn:   key,
			ValueColumn: value,
		},
	}
}

// layoutFromConfig converts the chart section into pixel layout and colors.
func layoutFromConfig(cfg *appconfig.Config) (chart.Layout, chart.Style) {
	ch := cfg.ChartOrDefault()
	layout := chart.DefaultLayout()
	layout.Width = float64(ch.Width)
	layout.Height = float64(ch.Height)
	layout.Margin = chart.Margin{
		Top:    float64(ch.Margin.Top),
		Right:  float64(ch.Margin.Right),
		Bottom: float64(ch.Margin.Bottom),
		Left:   float64(ch.Margin.Left),
	}
	layout.Padding = ch.Padding
	return layout, chart.Style{BarFill: ch.BarColor, HoverFill: ch.HoverColor, TooltipFill: ch.TooltipColor}
}

// metricsFromConfig returns the derived metric formulas and missing-key policy.
func metricsFromConfig(cfg *appconfig.Config) ([]derived.Definition, derived.Policy) {
	defs := make([]derived.Definition, 0, len(cfg.MetricDefinitions()))
	for _, d := range cfg.MetricDefinitions() {
		defs = append(defs, derived.Definition{Name: d.Name, Op: derived.Op(d.Op), Keys: d.Keys})
	}
	return defs, derived.ParsePolicy(cfg.MissingKeyPolicyOrDefault())
}

// newRenderer builds an unloaded renderer from cfg.
func newRenderer(cfg *appconfig.Config) *chart.Renderer {
	layout, style := layoutFromConfig(cfg)
	defs, policy := metricsFromConfig(cfg)
	return chart.NewRenderer(layout, style, chart.WithMetrics(defs, policy))
}

// loaderFor returns a loader reading the configured source.
func loaderFor(cfg *appconfig.Config) chart.Loader {
	src := sourceFromConfig(cfg)
	return func(ctx context.Context) (*dataset.Dataset, error) {
		return dataset.Load(ctx, src)
	}
}

// loadChart builds a renderer and settles it with the configured source.
func loadChart(ctx context.Context, cfg *appconfig.Config) (*chart.Renderer, error) {
	r := newRenderer(cfg)
	if err := r.Load(ctx, loaderFor(cfg)); err != nil {
		return r, err
	}
	return r, nil
}
