package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fit4/internal/model"
	"fit4/internal/scan"
	"fit4/internal/ui"
	"fit4/internal/util/format"
	"fit4/pkg/filesize"
)

var errScan = errors.New("some paths could not be read")

func newDuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "du [paths...]",
		Short: "Show disk usage with 4-character sizes",
		Long: "du sizes every given path. A single directory is expanded into its entries, " +
			"shown in the interactive browser when stdout is a terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = []string{"."}
			}
			expand := len(args) == 1 && isDir(args[0])
			if useBrowser(expand, opts, isTerminal(cmd.OutOrStdout())) {
				return runUI(cmd, args[0], opts)
			}
			return runDu(cmd, args, expand, opts)
		},
	}
	bindListFlags(cmd.Flags())
	return cmd
}

// useBrowser reports whether du hands an expanded directory to the
// interactive browser. The browser has no MIME column, so --mime keeps the
// plain listing.
func useBrowser(expand bool, opts model.Options, tty bool) bool {
	return expand && tty && !opts.NoUI && !opts.Mime
}

func runDu(cmd *cobra.Command, paths []string, expand bool, opts model.Options) error {
	sopts := scanOptions(opts)
	var entries []scan.Entry
	var err error
	if expand {
		entries, err = scan.Children(cmd.Context(), paths[0], sopts)
	} else {
		entries, err = scan.Sizes(cmd.Context(), paths, sopts)
	}
	if err != nil {
		return &ExitError{Code: ExitScanError, Err: err}
	}
	scan.Sort(entries, opts.Sort, opts.Reverse)

	failed := 0
	w := cmd.OutOrStdout()
	for _, e := range entries {
		if e.Err != nil {
			failed++
			slog.Warn("cannot read path", "path", e.Path, "error", e.Err)
		}
		label := e.Path
		if expand {
			label = e.Name
		}
		if e.IsDir && !strings.HasSuffix(label, string(os.PathSeparator)) {
			label += string(os.PathSeparator)
		}
		writeRow(w, e.Size, e.Mime, label, opts)
	}
	if len(entries) > 1 || expand {
		writeRow(w, scan.Total(entries), "", "total", model.Options{Exact: opts.Exact, Mime: opts.Mime})
	}

	if failed > 0 {
		return &ExitError{Code: ExitScanError, Err: fmt.Errorf("%w (%d of %d)", errScan, failed, len(entries))}
	}
	return nil
}

const mimeWidth = 28

func writeRow(w io.Writer, size uint64, mime, label string, opts model.Options) {
	var b strings.Builder
	b.WriteString(format.PadLeft(filesize.Fit4(size), filesize.Width))
	if opts.Exact {
		b.WriteString("  ")
		b.WriteString(format.PadLeft(format.Exact(size), 26))
	}
	if opts.Mime {
		b.WriteString("  ")
		b.WriteString(format.PadRight(mime, mimeWidth))
	}
	b.WriteString("  ")
	b.WriteString(label)
	fmt.Fprintln(w, b.String())
}

func runUI(cmd *cobra.Command, dir string, opts model.Options) error {
	restore, err := quietLogging(opts.Verbose)
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	defer restore()
	if err := ui.Run(cmd.Context(), dir, opts); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	return nil
}

// quietLogging keeps log lines off the screen while the TUI owns it; with
// verbose set they go to a file in the temp dir instead.
func quietLogging(verbose bool) (func(), error) {
	prev := slog.Default()
	restore := func() { slog.SetDefault(prev) }
	if !verbose {
		setupLogging(io.Discard, false)
		return restore, nil
	}
	f, err := os.CreateTemp("", "fit4-debug-*.log")
	if err != nil {
		return nil, fmt.Errorf("create debug log: %w", err)
	}
	setupLogging(f, true)
	slog.Info("debug log", "path", f.Name())
	return func() {
		restore()
		if err := f.Close(); err != nil {
			slog.Warn("failed to close log file", "error", err)
		}
	}, nil
}

func scanOptions(opts model.Options) scan.Options {
	return scan.Options{Jobs: opts.Jobs, Mime: opts.Mime, All: opts.All}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
