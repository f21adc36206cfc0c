package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/polstack/internal/polstack"
)

// StokesOptions holds flags for the stokes command.
type StokesOptions struct {
	*RootOptions
	Theta Real
	Phi   Real
	Basis string
	White bool
	Align bool
	Stage string
}

// NewStokesCommand creates the stokes command.
func NewStokesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StokesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stokes <config>",
		Short: "Print the Stokes state after every stage as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return stokes(opts, args[0], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Theta, "theta", 30, "polar angle from the normal (deg)")
	cmd.Flags().Float64Var(&opts.Phi, "phi", 45, "azimuth (deg)")
	cmd.Flags().StringVar(&opts.Basis, "basis", "", "transverse basis: lab, pol_in or pol_out (default from config, else lab)")
	cmd.Flags().BoolVar(&opts.White, "white", false, "print the white-averaged trace")
	cmd.Flags().BoolVar(&opts.Align, "align", false, "print the analyzer alignment instead of the trace")
	cmd.Flags().StringVar(&opts.Stage, "stage", "", "stage for --align (default: last element)")

	return cmd
}

func stokes(opts *StokesOptions, path string, cmd *cobra.Command) error {
	cfg, err := polstack.LoadConfig(path)
	if err != nil {
		return err
	}
	stack, ev, basis, err := cfg.Build()
	if err != nil {
		return err
	}
	if opts.Basis != "" {
		if basis, err = polstack.ParseBasisPolicy(opts.Basis); err != nil {
			return err
		}
	}
	var v any
	switch {
	case opts.Align:
		v, err = ev.AnalyzerAlignment(opts.Theta, opts.Phi, stack, basis, opts.Stage)
	case opts.White:
		v, err = ev.TraceStokesWhite(opts.Theta, opts.Phi, stack, basis)
	default:
		v, err = ev.TraceStokes(opts.Theta, opts.Phi, stack, basis)
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
