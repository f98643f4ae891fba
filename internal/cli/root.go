// Package cli provides the command-line interface for mortydex.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/raphaelgruber/mortydex/internal/client"
	"github.com/raphaelgruber/mortydex/internal/config"
	"github.com/raphaelgruber/mortydex/internal/metrics"
	"github.com/raphaelgruber/mortydex/internal/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose    bool
	apiURL     string
	timeout    time.Duration
	noProgress bool

	// Global config and API client
	cfg        config.Config
	logger     *slog.Logger
	logCleanup func() error
	collector  *metrics.Collector
	apiClient  *client.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mortydex",
	Short: "Browse Rick and Morty characters from the terminal",
	Long: `Mortydex is an interactive client for the Rick and Morty API.

It asks for (part of) a character name, lists the matching characters,
lets you pick one by index and prints its details together with the
titles of every episode it appears in. Enter an empty name to quit.

Environment:
  MORTYDEX_API_URL    API base URL (default https://rickandmortyapi.com/api)
  MORTYDEX_TIMEOUT    HTTP timeout (default 30s)
  MORTYDEX_LOG_FILE   also write JSON logs to this file
  MORTYDEX_LOG_LEVEL  DEBUG, INFO, WARN or ERROR (default WARN)
  MORTYDEX_PROGRESS   auto, always or never (default auto)`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		if cmd.Flags().Changed("api-url") {
			cfg.APIURL = apiURL
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Timeout = timeout
		}
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
		if noProgress {
			cfg.Progress = config.ProgressNever
		}

		logger, logCleanup = config.SetupLogger(cfg)
		collector = metrics.NewCollector()
		apiClient = client.New(cfg.APIURL,
			client.WithTimeout(cfg.Timeout),
			client.WithMetrics(collector),
			client.WithLogger(logger),
		)

		logger.Debug("config loaded", "api_url", apiClient.BaseURL(), "timeout", cfg.Timeout, "progress", cfg.Progress)
		return nil
	},
	RunE: runInteractive,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	if logCleanup != nil {
		if cerr := logCleanup(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", cerr)
		}
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging and request stats)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", config.DefaultAPIURL, "API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", config.DefaultTimeout, "HTTP request timeout")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "never show the episode progress bar")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	stderr := cmd.ErrOrStderr()

	resolve := session.Sequential(apiClient)
	if showProgress(stderr) {
		resolve = progressResolver(apiClient, stderr)
	}

	s := session.New(apiClient, session.Options{
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
		Logger:  logger,
		Metrics: collector,
		Resolve: resolve,
		Styled:  isTerminal(cmd.OutOrStdout()),
	})

	return s.Run(cmd.Context())
}

func showProgress(w io.Writer) bool {
	switch cfg.Progress {
	case config.ProgressAlways:
		return true
	case config.ProgressNever:
		return false
	default:
		return isTerminal(w)
	}
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
