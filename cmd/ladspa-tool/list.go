package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justyntemme/ladspago/pkg/host"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [dir...]",
		Short: "List the plugins found on the search path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := args
			if len(dirs) == 0 {
				cfg, err := LoadConfig()
				if err != nil {
					return err
				}
				dirs = cfg.Dirs()
			}

			paths, err := host.Scan(dirs)
			if err != nil {
				warn(cmd.ErrOrStderr(), err)
			}
			libs, err := host.LoadAll(paths)
			if err != nil {
				warn(cmd.ErrOrStderr(), err)
			}

			for _, lib := range libs {
				printLibrary(cmd.OutOrStdout(), lib)
				if err := lib.Close(); err != nil {
					warn(cmd.ErrOrStderr(), err)
				}
			}
			if len(libs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no plugin libraries found")
			}
			return nil
		},
	}
}

// printLibrary writes one line per plugin: unique id, label and name.
func printLibrary(w io.Writer, lib *host.Library) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "%s:\n", lib.Path)

	descs := lib.Descriptors()
	if len(descs) == 0 {
		fmt.Fprintln(w, "\t(no plugins)")
		return
	}
	gray := color.New(color.FgHiBlack)
	for _, d := range descs {
		fmt.Fprintf(w, "\t%s %s ", gray.Sprintf("%6d", d.UniqueID), color.CyanString(d.Label))
		fmt.Fprintf(w, "%s\n", d.Name)
	}
}

func warn(w io.Writer, err error) {
	fmt.Fprintln(w, color.YellowString("warning:"), err)
}
