package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/battlecards/internal/entity"
)

// PGXBattlecardsRepository implements BattlecardsRepository using pgx.
type PGXBattlecardsRepository struct {
	pool pgxPool
}

// NewPGXBattlecardsRepository wires a pgx backed repository.
func NewPGXBattlecardsRepository(pool *pgxpool.Pool) *PGXBattlecardsRepository {
	return &PGXBattlecardsRepository{pool: pool}
}

var _ pgxPool = (*pgxpool.Pool)(nil)

var _ BattlecardsRepository = (*PGXBattlecardsRepository)(nil)

var pgxReturning = "id::text, " + strings.Join(entity.Columns(), ", ") + ", created_at, updated_at, last_updated"

// List returns every battlecard, most recently updated first.
func (r *PGXBattlecardsRepository) List(ctx context.Context) ([]entity.Battlecard, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+pgxReturning+" FROM battlecards ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list battlecards: %w", err)
	}
	defer rows.Close()

	return scanPGXBattlecards(rows)
}

// Get fetches a single battlecard by id.
func (r *PGXBattlecardsRepository) Get(ctx context.Context, id string) (*entity.Battlecard, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrBattlecardNotFound
	}

	row := r.pool.QueryRow(ctx, "SELECT "+pgxReturning+" FROM battlecards WHERE id = $1", parsed)
	card, err := scanPGXBattlecard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBattlecardNotFound
		}
		return nil, fmt.Errorf("query battlecard by id: %w", err)
	}
	return &card, nil
}

// Create inserts a new battlecard and returns it with its server-assigned id.
func (r *PGXBattlecardsRepository) Create(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error) {
	if err := validateForWrite(card); err != nil {
		return nil, err
	}

	columns := entity.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	lastUpdatedIdx := len(columns) + 1

	query := fmt.Sprintf(`
        INSERT INTO battlecards (%s, last_updated)
        VALUES (%s, COALESCE($%d::timestamptz, NOW()))
        RETURNING %s`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		lastUpdatedIdx,
		pgxReturning,
	)

	args := append(storedValues(card), card.LastUpdated)
	saved, err := scanPGXBattlecard(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("insert battlecard %q: %w", card.CompanyName, err)
	}
	return &saved, nil
}

// Update replaces every attribute of the battlecard identified by card.ID.
func (r *PGXBattlecardsRepository) Update(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error) {
	if err := validateForWrite(card); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(card.ID)
	if err != nil {
		return nil, ErrBattlecardNotFound
	}

	columns := entity.Columns()
	setClauses := make([]string, 0, len(columns)+2)
	for i, column := range columns {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, i+1))
	}
	idx := len(columns) + 1
	setClauses = append(setClauses,
		fmt.Sprintf("last_updated = COALESCE($%d::timestamptz, NOW())", idx),
		"updated_at = NOW()",
	)

	query := fmt.Sprintf(`UPDATE battlecards SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), idx+1, pgxReturning)

	args := append(storedValues(card), card.LastUpdated, id)
	saved, err := scanPGXBattlecard(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBattlecardNotFound
		}
		return nil, fmt.Errorf("update battlecard %q: %w", card.CompanyName, err)
	}
	return &saved, nil
}

// Delete removes a battlecard by id.
func (r *PGXBattlecardsRepository) Delete(ctx context.Context, id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return ErrBattlecardNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM battlecards WHERE id = $1`, parsed)
	if err != nil {
		return fmt.Errorf("delete battlecard: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrBattlecardNotFound
	}
	return nil
}

func scanPGXBattlecards(rows pgx.Rows) ([]entity.Battlecard, error) {
	cards := []entity.Battlecard{}
	for rows.Next() {
		card, err := scanPGXBattlecard(rows)
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

func scanPGXBattlecard(row rowScanner) (entity.Battlecard, error) {
	var (
		card        entity.Battlecard
		values      = make([]sql.NullString, len(entity.Fields))
		createdAt   time.Time
		updatedAt   time.Time
		lastUpdated sql.NullTime
	)

	dest := make([]any, 0, len(values)+4)
	dest = append(dest, &card.ID)
	dest = append(dest, attributeTargets(values)...)
	dest = append(dest, &createdAt, &updatedAt, &lastUpdated)
	if err := row.Scan(dest...); err != nil {
		return entity.Battlecard{}, err
	}

	applyAttributes(&card, values)
	card.CreatedAt = createdAt
	card.UpdatedAt = updatedAt
	if lastUpdated.Valid {
		ts := lastUpdated.Time
		card.LastUpdated = &ts
	}
	return card, nil
}
