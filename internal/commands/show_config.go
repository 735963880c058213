// internal/commands/show_config.go
package tablechart

import (
	"fmt"

	"github.com/mwiater/tablechart/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showConfigDump bool

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		used := viper.ConfigFileUsed()
		if used == "" {
			used = "(none, defaults applied)"
		}
		fmt.Fprintf(w, "Config file: %s\n", used)
		if showConfigDump {
			appconfig.Dump(w, *GetConfig(), false)
			return
		}
		appconfig.Print(w, *GetConfig())
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigDump, "dump", false, "pretty-print the raw config struct")
	showCmd.AddCommand(showConfigCmd)
}
