package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"fit4/internal/config"
	"fit4/internal/model"
)

const (
	ExitOK         = 0
	ExitCLIError   = 1
	ExitInputError = 2
	ExitScanError  = 3
)

// Version is set at build time with -ldflags "-X fit4/internal/cli/cmd.Version=...".
var Version = "dev"

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fit4 [sizes...]",
		Short: "Print byte counts in at most four characters",
		Long: "fit4 prints byte counts the way narrow columns need them: 999, 57K, 1.0M, 7.2T. " +
			"Sizes are taken from the arguments or, when there are none, one per line from stdin.",
		Example: "  fit4 999 999999 7155456789012\n  ls -l | awk '{print $5}' | fit4\n  fit4 du ~/Downloads",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: rootPreRun,
		RunE:              runFormat,
	}

	// Persistent flags available to all subcommands
	root.PersistentFlags().IntP("jobs", "j", 0, "Max concurrent size computations (0 = number of CPUs)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log debug details to stderr")
	root.PersistentFlags().BoolP("exact", "e", false, "Also print the exact byte count")
	root.PersistentFlags().Bool("no-ui", false, "Never start the interactive browser")

	// Subcommands
	root.AddCommand(newExplainCmd())
	root.AddCommand(newTableCmd())
	root.AddCommand(newDuCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindListFlags(fs *pflag.FlagSet) {
	fs.Bool("mime", false, "Show the MIME type of files")
	fs.String("sort", string(model.SortSize), "Sort entries by: size, name")
	fs.BoolP("reverse", "r", false, "Reverse the sort order")
	fs.BoolP("all", "a", false, "Include entries starting with a dot")
}

func rootPreRun(cmd *cobra.Command, _ []string) error {
	if err := config.Init(cmd.Root()); err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	setupLogging(cmd.ErrOrStderr(), viper.GetBool("verbose"))
	return nil
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return fang.Execute(ctx, root, fang.WithVersion(Version))
}

// Options with precedence: flag > env/config > default. List flags only exist
// on du and tui.
func resolveOptions(cmd *cobra.Command) (model.Options, error) {
	opts := model.Options{
		Jobs:    viper.GetInt("jobs"),
		Verbose: viper.GetBool("verbose"),
		Exact:   viper.GetBool("exact"),
		NoUI:    viper.GetBool("no_ui"),
		Sort:    model.SortSize,
	}
	if opts.Jobs < 0 {
		opts.Jobs = 0
	}
	if cmd.Flags().Lookup("sort") == nil {
		return opts, nil
	}

	opts.Mime, _ = cmd.Flags().GetBool("mime")
	opts.Reverse, _ = cmd.Flags().GetBool("reverse")
	opts.All, _ = cmd.Flags().GetBool("all")
	raw, _ := cmd.Flags().GetString("sort")
	key, ok := model.ParseSortKey(raw)
	if !ok {
		return opts, &ExitError{Code: ExitCLIError, Err: fmt.Errorf("invalid --sort: %q (valid: size|name)", raw)}
	}
	opts.Sort = key
	return opts, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
