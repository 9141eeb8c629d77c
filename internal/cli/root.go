// Package cli implements the battlecards command line client.
package cli

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/octobees/battlecards/internal/bootstrap"
	"github.com/octobees/battlecards/internal/config"
	"github.com/octobees/battlecards/internal/logging"
)

// rootOptions holds the global flags and the app opened for a command run.
type rootOptions struct {
	configFile string
	logLevel   string
	store      string

	app *bootstrap.App
}

// NewRootCommand builds the battlecards command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "battlecards",
		Short: "Manage competitor battlecards from the command line.",
		Long: `battlecards lists, inspects, imports and deletes competitor battlecards
stored in PostgreSQL, SQLite or a PostgREST endpoint.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (YAML or JSON)")
	cmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.store, "store", "", "store driver: postgres, sqlite or postgrest")

	cmd.AddCommand(
		newListCommand(opts),
		newShowCommand(opts),
		newStatsCommand(opts),
		newDeleteCommand(opts),
		newImportCommand(opts),
		newTemplateCommand(),
	)
	return cmd
}

// open loads configuration and connects to the configured store. Callers
// must defer opts.close.
func (opts *rootOptions) open(cmd *cobra.Command) (*bootstrap.App, error) {
	v, err := config.New(opts.configFile)
	if err != nil {
		return nil, err
	}
	if opts.store != "" {
		v.Set("STORE_DRIVER", strings.ToLower(opts.store))
	}
	if opts.logLevel != "" {
		v.Set("LOG_LEVEL", opts.logLevel)
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	cmd.SetContext(logging.WithContext(cmd.Context(), logrus.NewEntry(logger).WithField("command", cmd.Name())))

	app, err := bootstrap.New(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	opts.app = app
	return app, nil
}

func (opts *rootOptions) close() {
	if opts.app != nil {
		opts.app.Close()
		opts.app = nil
	}
}
