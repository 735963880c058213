// internal/commands/metrics.go
package tablechart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mwiater/tablechart/internal/derived"
	"github.com/mwiater/tablechart/internal/tui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var metricsFormat string

// metricsReport is the json/yaml shape of the metrics command.
type metricsReport struct {
	Source  string           `json:"source" yaml:"source"`
	Records int              `json:"records" yaml:"records"`
	Dropped int              `json:"dropped" yaml:"dropped"`
	Metrics []derived.Metric `json:"metrics" yaml:"metrics"`
}

// metricsCmd prints the derived metrics of the configured table.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print the derived metrics of the table",
	Long: `Load the configured table and evaluate the derived metric formulas
(by default Alpha = A5 + A20, Beta = round(A15 / A7), Charlie = A13 * A12).
Unavailable metrics show the configured placeholder in table output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(strings.TrimSpace(metricsFormat))
		switch format {
		case "table", "json", "yaml":
		default:
			return fmt.Errorf("unsupported format %q (want table, json or yaml)", metricsFormat)
		}

		cfg := GetConfig()
		r, err := loadChart(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", failedLabel("[FAILED]"), cfg.SourcePath(), err)
			return err
		}

		out := metricsReport{
			Source:  cfg.SourcePath(),
			Records: len(r.Bars()),
			Dropped: r.Dropped(),
			Metrics: r.Metrics(),
		}
		w := cmd.OutOrStdout()
		switch format {
		case "json":
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		case "yaml":
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}
			return enc.Close()
		default:
			fmt.Fprintf(w, "Source: %s (%d records, %d dropped)\n", out.Source, out.Records, out.Dropped)
			fmt.Fprintln(w, tui.MetricsTable(out.Metrics, cfg.PlaceholderText()))
			return nil
		}
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsFormat, "format", "table", "output format: table, json or yaml")
	rootCmd.AddCommand(metricsCmd)
}
