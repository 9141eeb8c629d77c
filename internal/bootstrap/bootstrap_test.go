package bootstrap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/battlecards/internal/config"
	"github.com/octobees/battlecards/internal/entity"
	"github.com/octobees/battlecards/internal/repository"
)

func TestNew_SQLite(t *testing.T) {
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{
		StoreDriver:    config.DriverSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "battlecards.db"),
		ImportMaxBytes: 1024,
	}

	app, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer app.Close()

	_, ok := app.Repo.(*repository.SQLiteBattlecardsRepository)
	assert.True(t, ok, "expected sqlite repository, got %T", app.Repo)

	saved, err := app.Service.CreateBattlecard(context.Background(), &entity.Battlecard{CompanyName: "Acme"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
}

func TestNew_PostgREST(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id": "1", "company_name": "Acme"}]`)
	}))
	defer server.Close()

	logger, _ := test.NewNullLogger()
	cfg := &config.Config{StoreDriver: config.DriverPostgREST, PostgRESTURL: server.URL, PostgRESTAPIKey: "anon"}

	app, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer app.Close()

	cards, err := app.Repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Acme", cards[0].CompanyName)
}

func TestNew_Errors(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := New(context.Background(), &config.Config{StoreDriver: "mongo"}, logger)
	assert.Error(t, err)

	_, err = New(context.Background(), &config.Config{StoreDriver: config.DriverPostgres}, logger)
	assert.Error(t, err, "empty DSN must fail")
}

func TestRetryLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	l := retryLogger{entry: logrus.NewEntry(logger)}

	l.Warn("retrying request", "url", "http://x", "attempt", 2)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "http://x", entry.Data["url"])
	assert.Equal(t, 2, entry.Data["attempt"])

	l.Info("performing request")
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
}
