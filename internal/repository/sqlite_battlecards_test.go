package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/octobees/battlecards/internal/database"
	"github.com/octobees/battlecards/internal/entity"
)

func newSQLiteRepo(t *testing.T) *SQLiteBattlecardsRepository {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteBattlecardsRepository(db)
	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func TestSQLiteBattlecardsRepository_Lifecycle(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Battlecard{
		CompanyName:        "Acme",
		ThreatLevel:        "High",
		PubliclyListed:     true,
		StrongestVerticals: []string{"Retail", "Finance"},
		PricingTiers:       map[string]entity.PricingTier{"Pro": {Price: "$20", Features: []string{"SSO"}}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.LastUpdated == nil || created.CreatedAt.IsZero() {
		t.Fatalf("expected timestamps, got %+v", created)
	}
	if created.PricingTiers["Pro"].Price != "$20" || !created.PubliclyListed {
		t.Fatalf("unexpected round trip: %+v", created)
	}
	if created.Website != "" || created.FeatureComparison == nil {
		t.Fatalf("expected empty defaults, got %+v", created)
	}

	second, err := repo.Create(ctx, &entity.Battlecard{CompanyName: "Globex"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected most recent first, got %+v", list)
	}

	created.CompanyName = "Acme Corp"
	created.StrongestVerticals = []string{}
	updated, err := repo.Update(ctx, created)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.CompanyName != "Acme Corp" || len(updated.StrongestVerticals) != 0 {
		t.Fatalf("expected full replace, got %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updated_at to advance")
	}

	list, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].ID != created.ID {
		t.Fatalf("expected updated record first")
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); !errors.Is(err, ErrBattlecardNotFound) {
		t.Fatalf("expected ErrBattlecardNotFound after delete, got %v", err)
	}
}

func TestSQLiteBattlecardsRepository_NotFound(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	if _, err := repo.Update(ctx, &entity.Battlecard{ID: "missing", CompanyName: "Acme"}); !errors.Is(err, ErrBattlecardNotFound) {
		t.Fatalf("expected ErrBattlecardNotFound on update, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrBattlecardNotFound) {
		t.Fatalf("expected ErrBattlecardNotFound on delete, got %v", err)
	}
}

func TestSQLiteBattlecardsRepository_Validation(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.Create(context.Background(), &entity.Battlecard{})
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSQLiteBattlecardsRepository_KeepsSuppliedLastUpdated(t *testing.T) {
	repo := newSQLiteRepo(t)
	when := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)

	created, err := repo.Create(context.Background(), &entity.Battlecard{CompanyName: "Acme", LastUpdated: &when})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.LastUpdated == nil || !created.LastUpdated.Equal(when) {
		t.Fatalf("expected supplied last_updated, got %v", created.LastUpdated)
	}
}
