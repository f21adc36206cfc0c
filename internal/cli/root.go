package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/polstack/internal/polstack"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the polstack CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "polstack",
		Short: "Off-axis leakage, contrast and Stokes traces of polarizer/retarder stacks",
		Long: `polstack propagates polarized light through a stack of LC, A and C plates
between two polarizers and reports leakage, contrast ratio and the Stokes
state after every element, per wavelength and white-averaged.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			polstack.SetLogger(slog.New(handler))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewLeakCommand(opts))
	cmd.AddCommand(NewStokesCommand(opts))

	return cmd
}
