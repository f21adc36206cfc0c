package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/polstack/internal/polstack"
)

// LeakOptions holds flags for the leak command.
type LeakOptions struct {
	*RootOptions
	Theta Real
	Phi   Real
	NM    Real
}

// Real mirrors polstack.Real for flag bindings.
type Real = polstack.Real

// NewLeakCommand creates the leak command.
func NewLeakCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LeakOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "leak <config>",
		Short: "Print leakage and contrast at one viewing direction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return leak(opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Theta, "theta", 0, "polar angle from the normal (deg)")
	cmd.Flags().Float64Var(&opts.Phi, "phi", 0, "azimuth (deg)")
	cmd.Flags().Float64Var(&opts.NM, "nm", 0, "single wavelength (nm); 0 prints every primary and W")

	return cmd
}

func leak(opts *LeakOptions, path string, cmd *cobra.Command) error {
	cfg, err := polstack.LoadConfig(path)
	if err != nil {
		return err
	}
	stack, ev, _, err := cfg.Build()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if opts.NM > 0 {
		T := ev.Leakage(opts.Theta, opts.Phi, stack, opts.NM)
		_, err = fmt.Fprintf(out, "%-6s %8.2f nm  T=%.6e  CR=%.2f\n", "mono", opts.NM, T, polstack.Contrast(T))
		return err
	}
	d := ev.Direction(opts.Theta, opts.Phi, stack)
	for _, s := range ev.Wavelengths {
		if _, err := fmt.Fprintf(out, "%-6s %8.2f nm  T=%.6e  CR=%.2f\n", s.Key, s.NM, d.Leakage[s.Key], d.Contrast[s.Key]); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "%-6s %11s  T=%.6e  CR=%.2f\n", polstack.KeyW, "", d.Leakage[polstack.KeyW], d.Contrast[polstack.KeyW])
	return err
}
