package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fit4/internal/cli"
	"fit4/internal/util/format"
	"fit4/pkg/filesize"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "explain <sizes...>",
		Short:         "Show which band a size falls in and how it is rounded",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes := make([]uint64, 0, len(args))
			for _, a := range args {
				n, err := cli.ParseSize(a)
				if err != nil {
					return &ExitError{Code: ExitInputError, Err: err}
				}
				sizes = append(sizes, n)
			}
			st := newTextStyles(isTerminal(cmd.OutOrStdout()))
			for i, n := range sizes {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				explain(cmd.OutOrStdout(), st, n)
			}
			return nil
		},
	}
	return cmd
}

func explain(w io.Writer, st textStyles, size uint64) {
	b := filesize.Classify(size)
	fmt.Fprintf(w, "%s %s\n", st.header.Render(format.Exact(size)), st.result.Render(b.Format(size)))
	fmt.Fprintf(w, "- Band:      %s\n", bandRange(b))
	fmt.Fprintf(w, "- Rendering: %s\n", describeBand(b))
	if b.Unit != 0 && !b.Overflow {
		fmt.Fprintf(w, "- Scaled:    %d / %s = %s\n", size, format.Exact(b.Unit),
			strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", float64(size)/float64(b.Unit)), "0"), "."))
	}
}

func bandRange(b filesize.Band) string {
	if b.Overflow {
		return format.Exact(b.Lo) + " and above"
	}
	return format.Exact(b.Lo) + " to " + format.Exact(b.Hi)
}

func describeBand(b filesize.Band) string {
	switch {
	case b.Overflow:
		return fmt.Sprintf("too large for %d characters, printed as %q", filesize.Width, filesize.Huge)
	case b.Unit == 0:
		return "digits as is"
	case b.Decimals == 0:
		return fmt.Sprintf("whole %s (units of %s bytes)", b.Suffix, format.Exact(b.Unit))
	default:
		return fmt.Sprintf("%s with %d decimal (units of %s bytes)", b.Suffix, b.Decimals, format.Exact(b.Unit))
	}
}
