package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/octobees/battlecards/internal/entity"
)

// sqliteTimeLayout is fixed width so stored timestamps sort lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteBattlecardsRepository implements BattlecardsRepository on a local
// SQLite file. Timestamps are stored as UTC text.
type SQLiteBattlecardsRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteBattlecardsRepository wraps an opened SQLite handle whose schema
// has been prepared by database.OpenSQLite.
func NewSQLiteBattlecardsRepository(db *sql.DB) *SQLiteBattlecardsRepository {
	return &SQLiteBattlecardsRepository{db: db, now: time.Now}
}

var _ BattlecardsRepository = (*SQLiteBattlecardsRepository)(nil)

var sqliteSelect = "SELECT id, " + strings.Join(entity.Columns(), ", ") + ", created_at, updated_at, last_updated FROM battlecards"

// List returns every battlecard, most recently updated first.
func (r *SQLiteBattlecardsRepository) List(ctx context.Context) ([]entity.Battlecard, error) {
	rows, err := r.db.QueryContext(ctx, sqliteSelect+" ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list battlecards: %w", err)
	}
	defer rows.Close()

	cards := []entity.Battlecard{}
	for rows.Next() {
		card, err := scanSQLiteBattlecard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan battlecard row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate battlecards: %w", err)
	}
	return cards, nil
}

// Get fetches a single battlecard by id.
func (r *SQLiteBattlecardsRepository) Get(ctx context.Context, id string) (*entity.Battlecard, error) {
	card, err := scanSQLiteBattlecard(r.db.QueryRowContext(ctx, sqliteSelect+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBattlecardNotFound
		}
		return nil, fmt.Errorf("query battlecard by id: %w", err)
	}
	return &card, nil
}

// Create inserts a new battlecard with a generated id.
func (r *SQLiteBattlecardsRepository) Create(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error) {
	if err := validateForWrite(card); err != nil {
		return nil, err
	}

	columns := entity.Columns()
	id := uuid.NewString()
	now := r.now().UTC()

	query := fmt.Sprintf(`INSERT INTO battlecards (id, %s, created_at, updated_at, last_updated) VALUES (?%s, ?, ?, ?)`,
		strings.Join(columns, ", "), strings.Repeat(", ?", len(columns)))

	args := make([]any, 0, len(columns)+4)
	args = append(args, id)
	args = append(args, storedValues(card)...)
	args = append(args, formatSQLiteTime(now), formatSQLiteTime(now), formatSQLiteTime(lastUpdatedOr(card, now)))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert battlecard %q: %w", card.CompanyName, err)
	}
	return r.Get(ctx, id)
}

// Update replaces every attribute of the battlecard identified by card.ID.
func (r *SQLiteBattlecardsRepository) Update(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error) {
	if err := validateForWrite(card); err != nil {
		return nil, err
	}

	columns := entity.Columns()
	setClauses := make([]string, len(columns))
	for i, column := range columns {
		setClauses[i] = column + " = ?"
	}
	now := r.now().UTC()

	query := fmt.Sprintf(`UPDATE battlecards SET %s, updated_at = ?, last_updated = ? WHERE id = ?`, strings.Join(setClauses, ", "))

	args := make([]any, 0, len(columns)+3)
	args = append(args, storedValues(card)...)
	args = append(args, formatSQLiteTime(now), formatSQLiteTime(lastUpdatedOr(card, now)), card.ID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update battlecard %q: %w", card.CompanyName, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update battlecard %q: %w", card.CompanyName, err)
	}
	if affected == 0 {
		return nil, ErrBattlecardNotFound
	}
	return r.Get(ctx, card.ID)
}

// Delete removes a battlecard by id.
func (r *SQLiteBattlecardsRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM battlecards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete battlecard: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete battlecard: %w", err)
	}
	if affected == 0 {
		return ErrBattlecardNotFound
	}
	return nil
}

func scanSQLiteBattlecard(row rowScanner) (entity.Battlecard, error) {
	var (
		card                 entity.Battlecard
		values               = make([]sql.NullString, len(entity.Fields))
		createdAt, updatedAt string
		lastUpdated          sql.NullString
	)

	dest := make([]any, 0, len(values)+4)
	dest = append(dest, &card.ID)
	dest = append(dest, attributeTargets(values)...)
	dest = append(dest, &createdAt, &updatedAt, &lastUpdated)
	if err := row.Scan(dest...); err != nil {
		return entity.Battlecard{}, err
	}

	applyAttributes(&card, values)
	card.CreatedAt = parseTimestamp(createdAt)
	card.UpdatedAt = parseTimestamp(updatedAt)
	if lastUpdated.Valid && lastUpdated.String != "" {
		ts := parseTimestamp(lastUpdated.String)
		card.LastUpdated = &ts
	}
	return card, nil
}

func lastUpdatedOr(card *entity.Battlecard, fallback time.Time) time.Time {
	if card.LastUpdated != nil {
		return card.LastUpdated.UTC()
	}
	return fallback
}

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}
