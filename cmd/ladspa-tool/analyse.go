package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justyntemme/ladspago/pkg/host"
	"github.com/justyntemme/ladspago/pkg/ladspa"
)

func newAnalyseCmd() *cobra.Command {
	var sampleRate uint64

	cmd := &cobra.Command{
		Use:     "analyse <library> [label]",
		Aliases: []string{"analyze"},
		Short:   "Describe the plugins in a library",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			if sampleRate == 0 {
				sampleRate = uint64(cfg.SampleRate)
			}

			lib, err := openLibrary(cfg, args[0])
			if err != nil {
				return err
			}
			defer lib.Close()

			descs := lib.Descriptors()
			if len(args) == 2 {
				d, err := lib.Find(args[1])
				if err != nil {
					return err
				}
				descs = []*host.Descriptor{d}
			}
			for i, d := range descs {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				describe(cmd.OutOrStdout(), d, sampleRate)
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&sampleRate, "rate", 0, "Sample rate used to resolve defaults (default from config)")
	return cmd
}

func openLibrary(cfg *Config, name string) (*host.Library, error) {
	path, err := host.Resolve(name, cfg.Dirs())
	if err != nil {
		return nil, err
	}
	return host.Open(path)
}

// describe prints a plugin the way analyseplugin does: identity and
// properties, then one line per port with its hints.
func describe(w io.Writer, d *host.Descriptor, sampleRate uint64) {
	label := color.New(color.Bold, color.FgCyan)

	label.Fprintf(w, "Plugin %q", d.Name)
	fmt.Fprintf(w, " (%s, %d)\n", d.Label, d.UniqueID)
	fmt.Fprintf(w, "\tMaker:     %s\n", d.Maker)
	fmt.Fprintf(w, "\tCopyright: %s\n", d.Copyright)
	fmt.Fprintf(w, "\tRealtime:  %s\n", yesNo(d.Properties.Has(ladspa.PropRealtime)))
	fmt.Fprintf(w, "\tIn-place:  %s\n", yesNo(!d.Properties.Has(ladspa.PropInplaceBroken)))
	fmt.Fprintf(w, "\tHard RT:   %s\n", yesNo(d.Properties.Has(ladspa.PropHardRealtimeCapable)))
	fmt.Fprintf(w, "\tRun adding: %s\n", yesNo(d.HasRunAdding()))

	fmt.Fprintf(w, "\tPorts (%d):\n", len(d.Ports))
	for i, p := range d.Ports {
		fmt.Fprintf(w, "\t  %2d %-16s %-14s%s\n", i, fmt.Sprintf("%q", p.Name), p.Kind, hintText(p, sampleRate))
	}
}

func hintText(p host.PortInfo, sampleRate uint64) string {
	if !p.Kind.IsControl() {
		return ""
	}
	rh := p.Hint

	var parts []string
	if rh.BoundedBelow() || rh.BoundedAbove() {
		lo, hi := "...", "..."
		scale := ""
		if rh.SampleRate() {
			scale = "*srate"
		}
		if rh.BoundedBelow() {
			lo = fmt.Sprintf("%g%s", rh.Lower, scale)
		}
		if rh.BoundedAbove() {
			hi = fmt.Sprintf("%g%s", rh.Upper, scale)
		}
		parts = append(parts, lo+" to "+hi)
	}
	if v, ok := rh.Default(sampleRate); ok {
		parts = append(parts, fmt.Sprintf("default %g", v))
	}
	if rh.Toggled() {
		parts = append(parts, "toggled")
	}
	if rh.Logarithmic() {
		parts = append(parts, "logarithmic")
	}
	if rh.Integer() {
		parts = append(parts, "integer")
	}
	if len(parts) == 0 {
		return ""
	}
	return color.HiBlackString(strings.Join(parts, ", "))
}

func yesNo(b bool) string {
	if b {
		return color.GreenString("yes")
	}
	return color.RedString("no")
}
