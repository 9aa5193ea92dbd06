package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tui [dir]",
		Short:         "Browse a directory interactively, largest entries first",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if !isDir(dir) {
				return &ExitError{Code: ExitCLIError, Err: fmt.Errorf("not a directory: %s", dir)}
			}
			return runUI(cmd, dir, opts)
		},
	}
	bindListFlags(cmd.Flags())
	// The browser has no MIME column.
	if f := cmd.Flags().Lookup("mime"); f != nil {
		f.Hidden = true
	}
	return cmd
}
