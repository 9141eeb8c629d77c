// Package bootstrap assembles the battlecard store and service from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/octobees/battlecards/internal/config"
	"github.com/octobees/battlecards/internal/database"
	"github.com/octobees/battlecards/internal/repository"
	"github.com/octobees/battlecards/internal/service"
)

// App holds the assembled dependencies. Close releases the store.
type App struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Repo    repository.BattlecardsRepository
	Service *service.BattlecardsService

	closers []func()
}

// New opens the store selected by cfg.StoreDriver. The postgres driver creates
// the battlecards table when it is missing.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}
	log := logger.WithField("store", cfg.StoreDriver)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		app.closers = append(app.closers, pool.Close)
		if err := database.EnsurePostgresSchema(ctx, pool); err != nil {
			app.Close()
			return nil, err
		}
		app.Repo = repository.NewPGXBattlecardsRepository(pool)
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = db.Close() })
		app.Repo = repository.NewSQLiteBattlecardsRepository(db)
		log = log.WithField("path", cfg.SQLitePath)
	case config.DriverPostgREST:
		client := repository.NewRetryableClient(cfg.HTTPRetryMax, retryLogger{entry: log})
		app.Repo = repository.NewRESTBattlecardsRepository(cfg.PostgRESTURL, cfg.PostgRESTAPIKey, client)
		log = log.WithField("url", cfg.PostgRESTURL)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	app.Service = service.NewBattlecardsService(app.Repo, cfg.ImportMaxBytes)
	log.Debug("battlecard store ready")
	return app, nil
}

// Close releases every resource opened by New.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// retryLogger adapts logrus to retryablehttp's leveled logger. Per-attempt
// chatter goes to debug.
type retryLogger struct {
	entry *logrus.Entry
}

var _ retryablehttp.LeveledLogger = retryLogger{}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Error(msg)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}

func (l retryLogger) with(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}
