// internal/commands/view.go
package tablechart

import (
	"fmt"
	"os"

	"github.com/mwiater/tablechart/internal/logging"
	"github.com/mwiater/tablechart/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	snapshotWidth  int
	snapshotHeight int
)

// isTerminal reports whether the live view can take over the terminal. Tests
// swap it.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}

// viewCmd opens the live terminal chart.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Explore the chart in the terminal",
	Long: `Open an interactive terminal bar chart. Hover bars with the mouse or the
arrow keys, press s to toggle the sort order and r to restore the loaded
order. When stdout is not a terminal a static snapshot is printed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if snapshotWidth < 1 || snapshotHeight < 1 {
			return fmt.Errorf("snapshot size must be at least 1x1, got %dx%d", snapshotWidth, snapshotHeight)
		}
		cfg := GetConfig()
		opts := tui.Options{Source: cfg.SourcePath(), Placeholder: cfg.PlaceholderText()}

		if !isTerminal() {
			r, err := loadChart(cmd.Context(), cfg)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", failedLabel("[FAILED]"), cfg.SourcePath(), err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Snapshot(r, snapshotWidth, snapshotHeight, opts))
			return nil
		}

		// The program owns the screen; keep logging on the file only.
		if err := logging.InitWith(cfg.LogFilePath(), nil); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return tui.Run(cmd.Context(), newRenderer(cfg), loaderFor(cfg), opts)
	},
}

func init() {
	viewCmd.Flags().IntVar(&snapshotWidth, "width", 80, "snapshot width in cells when not attached to a terminal")
	viewCmd.Flags().IntVar(&snapshotHeight, "height", 24, "snapshot height in cells when not attached to a terminal")
	rootCmd.AddCommand(viewCmd)
}
