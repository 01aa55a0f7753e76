package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/nationalarchives/ctd-nfs/cmd/nfsqa/cmd/compare"
	"github.com/nationalarchives/ctd-nfs/cmd/nfsqa/cmd/ratios"
	"github.com/nationalarchives/ctd-nfs/cmd/nfsqa/cmd/reconcile"
	"github.com/nationalarchives/ctd-nfs/cmd/nfsqa/cmd/version"
	"github.com/nationalarchives/ctd-nfs/internal/appcontext"
)

// Execute runs the nfsqa CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "nfsqa",
		Short:   "Reconcile transcription variants of record fields",
		Version: a.version,
		Long: `nfsqa merges independently transcribed renderings of the same record
field into one canonical value.

Disagreement between transcriptions is kept inside the merged value:
"(text?)" marks a doubtful or minority reading and "a/b(?)" marks
unrelated alternatives. Each field also reports the warnings raised while
merging it and whether it needs manual review.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "diagnostics",
		Title: "Diagnostic Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, markdown")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.IntVar(&a.config.Workers, "workers", a.config.Workers, "number of fields reconciled concurrently")
	flags.StringSliceVar(&a.config.Placeholders, "placeholder", a.config.Placeholders, "value marking a source with no data (repeatable)")
	flags.BoolVar(&a.config.Normalize, "normalize", a.config.Normalize, "apply Unicode NFC normalisation to variants")

	rootCmd.SetVersionTemplate("nfsqa {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)
	if err := a.config.Validate(); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	registerCommands(rootCmd, a)
}

func registerCommands(rootCmd *cobra.Command, app appcontext.Interface) {
	rootCmd.AddCommand(reconcile.NewCommand(app))
	rootCmd.AddCommand(compare.NewCommand(app))
	rootCmd.AddCommand(ratios.NewCommand(app))
	rootCmd.AddCommand(version.NewCommand(app))
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
