package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justyntemme/ladspago/pkg/ladspa"
)

func newApplyCmd() *cobra.Command {
	var (
		adding    bool
		gain      float32
		blockSize int
	)

	cmd := &cobra.Command{
		Use:   "apply <library> <label> <in.wav> <out.wav> [control...]",
		Short: "Process a WAV file through a plugin",
		Long: `Apply runs every frame of the input file through the plugin and writes the
result at the input's sample rate and bit depth. Input channels map to the
plugin's audio inputs in port order; control inputs take the given values in
port order, falling back to their defaults.`,
		Args: cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			if blockSize > 0 {
				cfg.BlockSize = blockSize
			}

			lib, err := openLibrary(cfg, args[0])
			if err != nil {
				return err
			}
			defer lib.Close()

			d, err := lib.Find(args[1])
			if err != nil {
				return err
			}

			clip, err := readWav(args[2])
			if err != nil {
				return err
			}
			controls, err := controlValues(d, args[4:], uint64(clip.SampleRate))
			if err != nil {
				return err
			}

			out, err := process(d, clip, controls, ProcessOptions{
				BlockSize: cfg.BlockSize,
				Adding:    adding,
				Gain:      ladspa.Data(gain),
			})
			if err != nil {
				return err
			}
			if err := writeWav(args[3], out); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d frames through %s -> %s\n",
				color.GreenString("processed"), clip.Frames(), d.Label, args[3])
			return nil
		},
	}

	cmd.Flags().BoolVar(&adding, "adding", false, "Use run_adding instead of run")
	cmd.Flags().Float32Var(&gain, "gain", 1, "Gain for run_adding")
	cmd.Flags().IntVar(&blockSize, "block", 0, "Block size in frames (default from config)")
	return cmd
}
