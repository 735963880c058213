// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultSource is the table loaded when neither config nor flags name one.
	DefaultSource = "Table_Input.csv"
	// defaultFetchTimeout bounds http sources; file sources ignore it.
	defaultFetchTimeout = 30 * time.Second

	HeaderModeNormalize = "normalize"
	HeaderModeExact     = "exact"

	PolicyUnavailable = "unavailable"
	PolicyZero        = "zero"
)

// Config represents the top-level application configuration.
type Config struct {
	Source              string        `json:"source" mapstructure:"source"`
	Delimiter           string        `json:"delimiter,omitempty" mapstructure:"delimiter"`
	HeaderMode          string        `json:"headerMode,omitempty" mapstructure:"headerMode"`
	KeyColumn           string        `json:"keyColumn,omitempty" mapstructure:"keyColumn"`
	ValueColumn         string        `json:"valueColumn,omitempty" mapstructure:"valueColumn"`
	FetchTimeoutSeconds int           `json:"fetchTimeout,omitempty" mapstructure:"fetchTimeout"`
	Chart               ChartConfig   `json:"chart" mapstructure:"chart"`
	Metrics             MetricsConfig `json:"metrics" mapstructure:"metrics"`
	HTMLOutput          string        `json:"htmlOutput,omitempty" mapstructure:"htmlOutput"`
	SVGOutput           string        `json:"svgOutput,omitempty" mapstructure:"svgOutput"`
	PNGOutput           string        `json:"pngOutput,omitempty" mapstructure:"pngOutput"`
	LogFile             string        `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug               bool          `json:"debug" mapstructure:"debug"`
	ConfigPath          string        `json:"-" mapstructure:"-"`
}

// ChartConfig holds the pixel geometry and colors of the rendered chart.
type ChartConfig struct {
	Width        int     `json:"width,omitempty" mapstructure:"width"`
	Height       int     `json:"height,omitempty" mapstructure:"height"`
	Margin       Margin  `json:"margin" mapstructure:"margin"`
	Padding      float64 `json:"padding,omitempty" mapstructure:"padding"`
	BarColor     string  `json:"barColor,omitempty" mapstructure:"barColor"`
	HoverColor   string  `json:"hoverColor,omitempty" mapstructure:"hoverColor"`
	TooltipColor string  `json:"tooltipColor,omitempty" mapstructure:"tooltipColor"`
}

// Margin is the space reserved around the plot area for axes and titles.
type Margin struct {
	Top    int `json:"top" mapstructure:"top"`
	Right  int `json:"right" mapstructure:"right"`
	Bottom int `json:"bottom" mapstructure:"bottom"`
	Left   int `json:"left" mapstructure:"left"`
}

// MetricsConfig controls the derived metrics table.
type MetricsConfig struct {
	MissingKeyPolicy string             `json:"missingKeyPolicy,omitempty" mapstructure:"missingKeyPolicy"`
	Placeholder      string             `json:"placeholder,omitempty" mapstructure:"placeholder"`
	Definitions      []MetricDefinition `json:"definitions,omitempty" mapstructure:"definitions"`
}

// MetricDefinition names one derived metric: an operation over fixed keys.
type MetricDefinition struct {
	Name string   `json:"name" mapstructure:"name"`
	Op   string   `json:"op" mapstructure:"op"`
	Keys []string `json:"keys" mapstructure:"keys"`
}

// DefaultMetricDefinitions returns the Alpha/Beta/Charlie formulas.
func DefaultMetricDefinitions() []MetricDefinition {
	return []MetricDefinition{
		{Name: "Alpha", Op: "sum", Keys: []string{"A5", "A20"}},
		{Name: "Beta", Op: "ratio_round", Keys: []string{"A15", "A7"}},
		{Name: "Charlie", Op: "product", Keys: []string{"A13", "A12"}},
	}
}

// SourcePath returns the table location, falling back to DefaultSource.
func (c Config) SourcePath() string {
	if s := strings.TrimSpace(c.Source); s != "" {
		return s
	}
	return DefaultSource
}

// DelimiterRune returns the CSV field separator; only the first rune of the
// configured value is used and "\t" is accepted as a tab.
func (c Config) DelimiterRune() rune {
	d := c.Delimiter
	if d == `\t` {
		return '\t'
	}
	for _, r := range d {
		return r
	}
	return ','
}

// HeaderModeOrDefault returns the header matching mode, normalize by default.
func (c Config) HeaderModeOrDefault() string {
	switch strings.ToLower(strings.TrimSpace(c.HeaderMode)) {
	case HeaderModeExact:
		return HeaderModeExact
	default:
		return HeaderModeNormalize
	}
}

// Columns returns the key and value header names, defaulting to index/value.
func (c Config) Columns() (key, value string) {
	key, value = c.KeyColumn, c.ValueColumn
	if strings.TrimSpace(key) == "" {
		key = "index"
	}
	if strings.TrimSpace(value) == "" {
		value = "value"
	}
	return key, value
}

// FetchTimeout returns the timeout for http sources.
func (c Config) FetchTimeout() time.Duration {
	if c.FetchTimeoutSeconds <= 0 {
		return defaultFetchTimeout
	}
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// ChartOrDefault fills any unset chart field with the stock 500x300 layout.
// A padding of 0 reads as unset; the schema only accepts padding in (0, 1).
func (c Config) ChartOrDefault() ChartConfig {
	ch := c.Chart
	if ch.Width <= 0 {
		ch.Width = 500
	}
	if ch.Height <= 0 {
		ch.Height = 300
	}
	if ch.Margin == (Margin{}) {
		ch.Margin = Margin{Top: 20, Right: 20, Bottom: 60, Left: 50}
	}
	if ch.Padding <= 0 || ch.Padding >= 1 {
		ch.Padding = 0.05
	}
	if strings.TrimSpace(ch.BarColor) == "" {
		ch.BarColor = "rgb(106, 90, 205)"
	}
	if strings.TrimSpace(ch.HoverColor) == "" {
		ch.HoverColor = "orange"
	}
	if strings.TrimSpace(ch.TooltipColor) == "" {
		ch.TooltipColor = "black"
	}
	return ch
}

// MissingKeyPolicyOrDefault returns how absent keys affect derived metrics.
func (c Config) MissingKeyPolicyOrDefault() string {
	if strings.EqualFold(strings.TrimSpace(c.Metrics.MissingKeyPolicy), PolicyZero) {
		return PolicyZero
	}
	return PolicyUnavailable
}

// PlaceholderText is shown in place of an unavailable metric value.
func (c Config) PlaceholderText() string {
	if p := strings.TrimSpace(c.Metrics.Placeholder); p != "" {
		return p
	}
	return "Unavailable"
}

// MetricDefinitions returns the configured formulas or the default trio.
func (c Config) MetricDefinitions() []MetricDefinition {
	if len(c.Metrics.Definitions) == 0 {
		return DefaultMetricDefinitions()
	}
	return c.Metrics.Definitions
}

// HTMLOutputPath returns the destination of the HTML report.
func (c Config) HTMLOutputPath() string {
	if p := strings.TrimSpace(c.HTMLOutput); p != "" {
		return p
	}
	return "reports/chart.html"
}

// PNGOutputPath returns the destination of the PNG export.
func (c Config) PNGOutputPath() string {
	if p := strings.TrimSpace(c.PNGOutput); p != "" {
		return p
	}
	return "reports/chart.png"
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "tablechart.log"
}
