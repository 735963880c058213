// internal/commands/render.go
package tablechart

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mwiater/tablechart/internal/logging"
	"github.com/mwiater/tablechart/internal/report"
	"github.com/mwiater/tablechart/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	successLabel = color.New(color.FgGreen).SprintFunc()
	failedLabel  = color.New(color.FgRed).SprintFunc()
)

// renderCmd loads the table and writes the interactive HTML report.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the table as an interactive HTML bar chart",
	Long: `Load the configured table, lay it out as a bar chart, evaluate the derived
metrics, and write a self-contained HTML report with hover tooltips and
sort/reset buttons. Optionally write the bare SVG as well.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		r, err := loadChart(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", failedLabel("[FAILED]"), cfg.SourcePath(), err)
			return err
		}

		html, err := report.Generate(r, report.Options{
			Title:       "tablechart: " + filepath.Base(cfg.SourcePath()),
			Source:      cfg.SourcePath(),
			Placeholder: cfg.PlaceholderText(),
			RunID:       uuid.New(),
			Generated:   time.Now(),
		})
		if err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		htmlPath := cfg.HTMLOutputPath()
		if err := util.WriteFile(htmlPath, []byte(html)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logging.LogEvent("report written to %s (%d bars)", htmlPath, len(r.Bars()))
		fmt.Fprintf(cmd.OutOrStdout(), "%s Report written to %s\n", successLabel("[OK]"), htmlPath)

		if svgPath := strings.TrimSpace(cfg.SVGOutput); svgPath != "" {
			f, err := util.CreateFile(svgPath)
			if err != nil {
				return fmt.Errorf("write svg: %w", err)
			}
			if err := r.WriteSVG(f); err != nil {
				_ = f.Close()
				return fmt.Errorf("write svg: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write svg: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s SVG written to %s\n", successLabel("[OK]"), svgPath)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().String("html-output", "", "destination HTML report path (default reports/chart.html)")
	renderCmd.Flags().String("svg-output", "", "optional path to write the chart SVG")
	_ = viper.BindPFlag("htmlOutput", renderCmd.Flags().Lookup("html-output"))
	_ = viper.BindPFlag("svgOutput", renderCmd.Flags().Lookup("svg-output"))

	rootCmd.AddCommand(renderCmd)
}
