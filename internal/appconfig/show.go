// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
	"strings"

	"github.com/k0kubun/pp"
)

// Print writes the effective configuration, defaults applied, as aligned
// label/value lines.
func Print(w io.Writer, c Config) {
	ch := c.ChartOrDefault()
	key, value := c.Columns()

	fmt.Fprintf(w, "  Source:          %s\n", c.SourcePath())
	fmt.Fprintf(w, "  Delimiter:       %q\n", string(c.DelimiterRune()))
	fmt.Fprintf(w, "  Header Mode:     %s\n", c.HeaderModeOrDefault())
	fmt.Fprintf(w, "  Columns:         %s / %s\n", key, value)
	fmt.Fprintf(w, "  Fetch Timeout:   %s\n", c.FetchTimeout())
	fmt.Fprintf(w, "  Chart Size:      %dx%d\n", ch.Width, ch.Height)
	fmt.Fprintf(w, "  Chart Margin:    top=%d right=%d bottom=%d left=%d\n", ch.Margin.Top, ch.Margin.Right, ch.Margin.Bottom, ch.Margin.Left)
	fmt.Fprintf(w, "  Band Padding:    %v\n", ch.Padding)
	fmt.Fprintf(w, "  Colors:          bar=%s hover=%s tooltip=%s\n", ch.BarColor, ch.HoverColor, ch.TooltipColor)
	fmt.Fprintf(w, "  Missing Keys:    %s (placeholder %q)\n", c.MissingKeyPolicyOrDefault(), c.PlaceholderText())
	for _, def := range c.MetricDefinitions() {
		fmt.Fprintf(w, "  Metric %-9s %s(%s)\n", def.Name+":", def.Op, strings.Join(def.Keys, ", "))
	}
	fmt.Fprintf(w, "  HTML Output:     %s\n", c.HTMLOutputPath())
	fmt.Fprintf(w, "  PNG Output:      %s\n", c.PNGOutputPath())
	if c.SVGOutput != "" {
		fmt.Fprintf(w, "  SVG Output:      %s\n", c.SVGOutput)
	}
	fmt.Fprintf(w, "  Log File:        %s\n", c.LogFilePath())
	fmt.Fprintf(w, "  Debug:           %v\n", c.Debug)
}

// Dump pretty-prints the raw Config struct.
func Dump(w io.Writer, c Config, colored bool) {
	prev := pp.ColoringEnabled
	pp.ColoringEnabled = colored
	defer func() { pp.ColoringEnabled = prev }()
	_, _ = pp.Fprintln(w, c)
}
