// Command ladspa-tool lists, inspects and runs LADSPA plugins.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"

	pathFlag string
	noColor  bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ladspa-tool",
		Short: "Inspect and run LADSPA plugins",
		Long: `ladspa-tool loads LADSPA plugin libraries from LADSPA_PATH and can list
their plugins, describe their ports, and apply a plugin to a WAV file.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&pathFlag, "path", "", "Plugin search path (overrides LADSPA_PATH)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAnalyseCmd())
	rootCmd.AddCommand(newApplyCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
