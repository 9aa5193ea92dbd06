package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fit4/internal/cli"
	"fit4/internal/util/format"
	"fit4/pkg/filesize"
)

func runFormat(cmd *cobra.Command, args []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	// Arguments are all validated before anything is printed.
	if len(args) > 0 {
		sizes := make([]uint64, 0, len(args))
		for i, a := range args {
			n, err := cli.ParseSize(a)
			if err != nil {
				if i == 0 {
					err = withCommandHint(cmd, a, err)
				}
				return &ExitError{Code: ExitInputError, Err: err}
			}
			sizes = append(sizes, n)
		}
		for _, n := range sizes {
			printSize(w, n, opts.Exact)
		}
		return nil
	}

	err = cli.ReadSizes(cmd.InOrStdin(), func(_ string, size uint64, err error) error {
		if err != nil {
			return &ExitError{Code: ExitInputError, Err: err}
		}
		printSize(w, size, opts.Exact)
		return nil
	})
	var ee *ExitError
	switch {
	case err == nil, errors.As(err, &ee):
		return err
	case errors.Is(err, cli.ErrInvalidSize):
		return &ExitError{Code: ExitInputError, Err: err}
	default:
		return &ExitError{Code: ExitCLIError, Err: err}
	}
}

// withCommandHint points at a subcommand when a size that failed to parse
// looks like a mistyped command name ("tabel").
func withCommandHint(cmd *cobra.Command, arg string, err error) error {
	suggestions := cmd.Root().SuggestionsFor(arg)
	if len(suggestions) == 0 {
		return err
	}
	return fmt.Errorf("%w (unknown command? did you mean %s)", err, strings.Join(suggestions, ", "))
}

func printSize(w io.Writer, size uint64, exact bool) {
	s := filesize.Fit4(size)
	if exact {
		fmt.Fprintf(w, "%s  %s\n", format.PadLeft(s, filesize.Width), format.Exact(size))
		return
	}
	fmt.Fprintln(w, s)
}
