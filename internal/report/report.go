// internal/report/report.go
// Package report renders a loaded chart as a standalone HTML page or a PNG.
package report

import (
	"bytes"
	"encoding/json"
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/tablechart/internal/chart"
	"github.com/mwiater/tablechart/internal/dataset"
)

// Options tune the generated page.
type Options struct {
	Title       string
	Source      string
	Placeholder string
	RunID       uuid.UUID
	Generated   time.Time
}

type reportData struct {
	Title     string
	Source    string
	RunID     string
	Generated string
	Chart     template.HTML
	Metrics   []metricRow
	Dropped   int
	Payload   template.JS
}

type metricRow struct {
	Name  string
	Value string
}

type reportPayload struct {
	Arrangements  map[string][]position `json:"arrangements"`
	BarFill       string                `json:"barFill"`
	HoverFill     string                `json:"hoverFill"`
	TooltipFill   string                `json:"tooltipFill"`
	TooltipOffset float64               `json:"tooltipOffset"`
	MoveMs        int64                 `json:"moveMs"`
	HoverMs       int64                 `json:"hoverMs"`
	RestoreMs     int64                 `json:"restoreMs"`
}

type position struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Generate renders r as a self-contained HTML page: the SVG chart, sort and
// reset buttons, and the derived metrics table. The page script only swaps
// bar positions precomputed here for each order.
func Generate(r *chart.Renderer, opts Options) (string, error) {
	svg, err := r.SVG()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(buildPayload(r))
	if err != nil {
		return "", err
	}

	if opts.Title == "" {
		opts.Title = "tablechart"
	}
	if opts.Placeholder == "" {
		opts.Placeholder = "Unavailable"
	}
	if opts.RunID == uuid.Nil {
		opts.RunID = uuid.New()
	}
	if opts.Generated.IsZero() {
		opts.Generated = time.Now()
	}

	metrics := r.Metrics()
	rows := make([]metricRow, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, metricRow{Name: m.Name, Value: m.Display(opts.Placeholder)})
	}

	viewModel := reportData{
		Title:     opts.Title,
		Source:    opts.Source,
		RunID:     opts.RunID.String(),
		Generated: opts.Generated.Format(time.RFC3339),
		Chart:     svg,
		Metrics:   rows,
		Dropped:   r.Dropped(),
		Payload:   template.JS(payload),
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildPayload(r *chart.Renderer) reportPayload {
	style := r.Style()
	p := reportPayload{
		Arrangements:  make(map[string][]position, 3),
		BarFill:       style.BarFill,
		HoverFill:     style.HoverFill,
		TooltipFill:   style.TooltipFill,
		TooltipOffset: r.Layout().TooltipOffset,
		MoveMs:        chart.MoveDuration.Milliseconds(),
		HoverMs:       chart.HoverDuration.Milliseconds(),
		RestoreMs:     chart.RestoreDuration.Milliseconds(),
	}
	for _, dir := range []dataset.Direction{dataset.Unsorted, dataset.Ascending, dataset.Descending} {
		bars := r.Arrangement(dir)
		positions := make([]position, 0, len(bars))
		for _, b := range bars {
			positions = append(positions, position{ID: b.ID, X: b.X, Y: b.Y})
		}
		p.Arrangements[dir.String()] = positions
	}
	return p
}

var reportTemplate = template.Must(template.New("chart-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="tablechart-run" content="{{.RunID}}">
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; color: #222; }
    header p { color: #666; font-size: 0.85rem; margin: 0.2rem 0; }
    .controls { margin: 1rem 0; }
    .controls button { margin-right: 0.5rem; padding: 0.3rem 0.9rem; }
    #chart-container rect.bar { transition: x 500ms ease-in-out, fill 200ms; }
    #results { border-collapse: collapse; margin-top: 1.5rem; }
    #results th, #results td { border: 1px solid black; padding: 8px; text-align: left; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    {{- if .Source}}
    <p>Source: {{.Source}}</p>
    {{- end}}
    <p>Generated {{.Generated}}{{if .Dropped}} &middot; {{.Dropped}} non-numeric row(s) dropped{{end}}</p>
  </header>
  <div class="controls">
    <button id="sort" type="button">Sort</button>
    <button id="reset" type="button">Reset</button>
  </div>
  <div id="chart-container">{{.Chart}}</div>
  <table id="results">
    <thead><tr><th>Category</th><th>Value</th></tr></thead>
    <tbody>
    {{- range .Metrics}}
      <tr><td>{{.Name}}</td><td>{{.Value}}</td></tr>
    {{- end}}
    </tbody>
  </table>
  <script>
    (function () {
      const payload = {{.Payload}};
      const svg = document.getElementById("chart");
      const plot = svg.querySelector("g.plot");
      const bars = Array.from(svg.querySelectorAll("rect.bar"));
      const byId = new Map(bars.map(function (b) { return [Number(b.dataset.id), b]; }));
      let ascendingNext = true;

      function arrange(name) {
        payload.arrangements[name].forEach(function (p) {
          const bar = byId.get(p.id);
          if (!bar) { return; }
          bar.style.transition = "x " + payload.moveMs + "ms ease-in-out, fill " + payload.hoverMs + "ms";
          bar.setAttribute("x", p.x);
          bar.setAttribute("y", p.y);
        });
        leave();
      }

      function leave(bar) {
        const tip = document.getElementById("tooltip");
        if (tip) { tip.remove(); }
        (bar ? [bar] : bars).forEach(function (b) {
          b.style.transition = "fill " + payload.restoreMs + "ms";
          b.setAttribute("fill", payload.barFill);
        });
      }

      function enter(bar) {
        leave();
        bar.style.transition = "fill " + payload.hoverMs + "ms";
        bar.setAttribute("fill", payload.hoverFill);
        const tip = document.createElementNS("http://www.w3.org/2000/svg", "text");
        tip.setAttribute("id", "tooltip");
        tip.setAttribute("x", Number(bar.getAttribute("x")) + Number(bar.getAttribute("width")) / 2);
        tip.setAttribute("y", Number(bar.getAttribute("y")) - payload.tooltipOffset);
        tip.setAttribute("text-anchor", "middle");
        tip.setAttribute("fill", payload.tooltipFill);
        tip.textContent = bar.dataset.value;
        plot.appendChild(tip);
      }

      bars.forEach(function (bar) {
        bar.addEventListener("mouseover", function () { enter(bar); });
        bar.addEventListener("mouseout", function () { leave(bar); });
      });
      document.getElementById("sort").addEventListener("click", function () {
        arrange(ascendingNext ? "ascending" : "descending");
        ascendingNext = !ascendingNext;
      });
      document.getElementById("reset").addEventListener("click", function () {
        arrange("original");
        ascendingNext = true;
      });
    })();
  </script>
</body>
</html>
`
