// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaults verifies that a zero Config resolves to the stock chart,
// columns, policy and output locations.
func TestDefaults(t *testing.T) {
	var cfg Config

	if cfg.SourcePath() != DefaultSource {
		t.Fatalf("expected default source, got %q", cfg.SourcePath())
	}
	if cfg.DelimiterRune() != ',' {
		t.Fatalf("expected comma delimiter, got %q", cfg.DelimiterRune())
	}
	if cfg.HeaderModeOrDefault() != HeaderModeNormalize {
		t.Fatalf("expected normalize header mode, got %q", cfg.HeaderModeOrDefault())
	}
	key, value := cfg.Columns()
	if key != "index" || value != "value" {
		t.Fatalf("expected index/value columns, got %s/%s", key, value)
	}
	if cfg.FetchTimeout() != 30*time.Second {
		t.Fatalf("expected 30s fetch timeout, got %v", cfg.FetchTimeout())
	}

	ch := cfg.ChartOrDefault()
	if ch.Width != 500 || ch.Height != 300 {
		t.Fatalf("expected 500x300 chart, got %dx%d", ch.Width, ch.Height)
	}
	if ch.Margin != (Margin{Top: 20, Right: 20, Bottom: 60, Left: 50}) {
		t.Fatalf("unexpected default margin %+v", ch.Margin)
	}
	if ch.Padding != 0.05 {
		t.Fatalf("expected 0.05 padding, got %v", ch.Padding)
	}
	if ch.BarColor != "rgb(106, 90, 205)" || ch.HoverColor != "orange" {
		t.Fatalf("unexpected default colors %s/%s", ch.BarColor, ch.HoverColor)
	}

	if cfg.MissingKeyPolicyOrDefault() != PolicyUnavailable {
		t.Fatalf("expected unavailable policy, got %q", cfg.MissingKeyPolicyOrDefault())
	}
	if cfg.PlaceholderText() != "Unavailable" {
		t.Fatalf("expected Unavailable placeholder, got %q", cfg.PlaceholderText())
	}
	if defs := cfg.MetricDefinitions(); len(defs) != 3 || defs[1].Name != "Beta" {
		t.Fatalf("unexpected default metric definitions %+v", defs)
	}
	if cfg.LogFilePath() != "tablechart.log" {
		t.Fatalf("expected default log file, got %q", cfg.LogFilePath())
	}
}

func TestDelimiterVariants(t *testing.T) {
	if got := (Config{Delimiter: `\t`}).DelimiterRune(); got != '\t' {
		t.Fatalf("expected tab, got %q", got)
	}
	if got := (Config{Delimiter: ";"}).DelimiterRune(); got != ';' {
		t.Fatalf("expected semicolon, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	valid := `{
		"source": "data/table.csv",
		"headerMode": "exact",
		"keyColumn": "Index",
		"valueColumn": "Value",
		"chart": {"width": 640, "height": 400, "margin": {"top": 10, "right": 10, "bottom": 40, "left": 40}},
		"metrics": {
			"missingKeyPolicy": "zero",
			"definitions": [{"name": "Delta", "op": "sum", "keys": ["A1", "A2"]}]
		}
	}`
	if err := Validate([]byte(valid)); err != nil {
		t.Fatalf("Validate() on valid config: %v", err)
	}

	cases := map[string]string{
		"unknown field":   `{"hosts": []}`,
		"bad header mode": `{"headerMode": "fuzzy"}`,
		"bad op":          `{"metrics": {"definitions": [{"name": "X", "op": "mean", "keys": ["A1"]}]}}`,
		"padding too big": `{"chart": {"padding": 1}}`,
		"padding zero":    `{"chart": {"padding": 0}}`,
		"not json":        `{`,
	}
	for name, doc := range cases {
		err := Validate([]byte(doc))
		if err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	if err := ValidateFile(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("non-json files are not schema checked, got %v", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"debug": "yes"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	err := ValidateFile(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error naming %s, got %v", path, err)
	}
}

func TestPrintAndDump(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, Config{Source: "x.csv"})
	out := buf.String()
	for _, want := range []string{"Source:          x.csv", "Metric Alpha:", "ratio_round(A15, A7)", "Chart Size:      500x300"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	Dump(&buf, Config{Source: "dump.csv"}, false)
	if !strings.Contains(buf.String(), "dump.csv") {
		t.Fatalf("expected dumped source, got %s", buf.String())
	}
}
