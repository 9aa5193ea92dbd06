package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"fit4/internal/util/format"
	"fit4/pkg/filesize"
)

type textStyles struct {
	header lipgloss.Style
	result lipgloss.Style
	faint  lipgloss.Style
}

// Plain styles render text unchanged so piped output stays free of escapes.
func newTextStyles(styled bool) textStyles {
	base := lipgloss.NewStyle()
	if !styled {
		return textStyles{header: base, result: base, faint: base}
	}
	return textStyles{
		header: base.Bold(true),
		result: base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		faint:  base.Faint(true),
	}
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "table",
		Short:         "Print the size bands with the rendering of their first and last size",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			st := newTextStyles(isTerminal(w))
			const rangeWidth = 52
			fmt.Fprintln(w, st.header.Render(format.PadRight("BAND", rangeWidth)+"  FIRST  LAST   RENDERING"))
			for _, b := range filesize.Bands() {
				last := b.Format(b.Hi)
				fmt.Fprintf(w, "%s  %s   %s   %s\n",
					format.PadRight(bandRange(b), rangeWidth),
					st.result.Render(format.PadLeft(b.Format(b.Lo), filesize.Width)),
					st.result.Render(format.PadLeft(last, filesize.Width)),
					st.faint.Render(describeBand(b)))
			}
			return nil
		},
	}
}
