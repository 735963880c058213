// internal/commands/export.go
package tablechart

import (
	"fmt"

	"github.com/mwiater/tablechart/internal/logging"
	"github.com/mwiater/tablechart/internal/report"
	"github.com/mwiater/tablechart/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exportCmd hosts static image exports.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the chart as a static image",
}

// exportPNGCmd draws the chart with go-chart and writes a PNG.
var exportPNGCmd = &cobra.Command{
	Use:   "png",
	Short: "Write the bar chart as a PNG",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		r, err := loadChart(cmd.Context(), cfg)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", failedLabel("[FAILED]"), cfg.SourcePath(), err)
			return err
		}

		path := cfg.PNGOutputPath()
		f, err := util.CreateFile(path)
		if err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		if err := report.WritePNG(f, r); err != nil {
			_ = f.Close()
			return fmt.Errorf("write png: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		logging.LogEvent("png written to %s", path)
		fmt.Fprintf(cmd.OutOrStdout(), "%s PNG written to %s\n", successLabel("[OK]"), path)
		return nil
	},
}

func init() {
	exportPNGCmd.Flags().String("png-output", "", "destination PNG path (default reports/chart.png)")
	_ = viper.BindPFlag("pngOutput", exportPNGCmd.Flags().Lookup("png-output"))

	exportCmd.AddCommand(exportPNGCmd)
	rootCmd.AddCommand(exportCmd)
}
