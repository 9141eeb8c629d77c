package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/octobees/battlecards/internal/entity"
)

// BattlecardsRepository describes persistence operations for battlecards.
type BattlecardsRepository interface {
	List(ctx context.Context) ([]entity.Battlecard, error)
	Get(ctx context.Context, id string) (*entity.Battlecard, error)
	Create(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error)
	Update(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error)
	Delete(ctx context.Context, id string) error
}

// ErrBattlecardNotFound indicates there is no battlecard with the given id.
var ErrBattlecardNotFound = errors.New("battlecard not found")

// ValidationError is returned when a record cannot be stored as given.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// pgxPool is the subset of *pgxpool.Pool used by the pgx repositories.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func validateForWrite(card *entity.Battlecard) error {
	if card == nil {
		return fmt.Errorf("battlecard payload is nil")
	}
	if strings.TrimSpace(card.CompanyName) == "" {
		return &ValidationError{Field: "company_name", Message: "company name is required"}
	}
	return nil
}

// attributeTargets returns scan destinations for every column in entity.Fields.
func attributeTargets(values []sql.NullString) []any {
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	return dest
}

func applyAttributes(card *entity.Battlecard, values []sql.NullString) {
	for i, f := range entity.Fields {
		f.SetFlat(card, values[i].String)
	}
	card.EnsureDefaults()
}

func storedValues(card *entity.Battlecard) []any {
	args := make([]any, len(entity.Fields))
	for i, f := range entity.Fields {
		args[i] = f.StoredValue(card)
	}
	return args
}

// parseTimestamp reads RFC 3339 text, returning the zero time when malformed.
func parseTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
