package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/polstack/internal/polstack"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Out string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <config>",
		Short: "Evaluate a stack config and write the JSON report",
		Long: `Evaluate CR00, per-direction leakage, the contrast monitor and the
optional contrast grid and Stokes trace described by a JSON or YAML config.

Example:
  polstack run scenes/ips.json
  polstack run -o report.json scenes/ips.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Out == "" {
				return polstack.Run(args[0], cmd.OutOrStdout())
			}
			f, err := os.Create(opts.Out)
			if err != nil {
				return err
			}
			if err := polstack.Run(args[0], f); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the report to this file instead of stdout")

	return cmd
}
