package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/courses/internal/config"
	"github.com/raphi011/courses/internal/log"
	"github.com/raphi011/courses/internal/output"
	"github.com/raphi011/courses/internal/store"
	"github.com/raphi011/courses/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose   bool
	quiet     bool
	ephemeral bool
}

// newRootCmd builds the command tree. Running it without a subcommand
// opens the browser.
func newRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Browse courses and keep track of your favorites",
		Long: `courses fetches the course catalog, caches it locally and lets you
mark courses as favorites.

Favorite changes are saved locally right away and sent to the server in the
background. The next fetch replaces the local cache with the server's view.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		Args:                       cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, flags)
		},
		RunE: runBrowse,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show debug logs, including background favorite requests")
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "Keep the cache in memory for this run only")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newBrowseCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newFavCmd())
	cmd.AddCommand(newUnfavCmd())
	cmd.AddCommand(newFilterCmd())

	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// setup attaches the logger and the effective config to the command context.
func setup(cmd *cobra.Command, flags globalFlags) error {
	ctx := cmd.Context()

	logger := log.New(cmd.ErrOrStderr(), flags.verbose, flags.quiet)
	ctx = log.WithLogger(ctx, logger)

	if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
		cmd.SetContext(ctx)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Printf("Warning: %v\n", err)
	}
	if flags.ephemeral {
		cfg.Store.Backend = store.BackendMemory
	}
	styles.Init(cfg.Theme)

	logger.Debug("config loaded", "base_url", cfg.BaseURL, "backend", cfg.Store.Backend, "data_dir", cfg.Store.DataDir)

	cmd.SetContext(config.WithConfig(ctx, &cfg))
	return nil
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Primary data goes to stdout, diagnostics to stderr
	ctx = output.WithPrinter(ctx, os.Stdout)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'courses -h' for help")
		cancel()
		os.Exit(1)
	}
}
