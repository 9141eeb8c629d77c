package service

import (
	"context"
	"time"

	"github.com/octobees/battlecards/internal/csvcodec"
	"github.com/octobees/battlecards/internal/entity"
	"github.com/octobees/battlecards/internal/logging"
	"github.com/octobees/battlecards/internal/repository"
	"github.com/octobees/battlecards/internal/search"
)

// DefaultImportMaxBytes bounds an uploaded file when no limit is configured.
const DefaultImportMaxBytes int64 = 5 << 20

// BattlecardsService exposes read/write operations for the battlecard catalogue.
type BattlecardsService struct {
	repo           repository.BattlecardsRepository
	maxImportBytes int64
	now            func() time.Time
}

// NewBattlecardsService creates a new instance of BattlecardsService.
func NewBattlecardsService(repo repository.BattlecardsRepository, maxImportBytes int64) *BattlecardsService {
	if maxImportBytes <= 0 {
		maxImportBytes = DefaultImportMaxBytes
	}
	return &BattlecardsService{
		repo:           repo,
		maxImportBytes: maxImportBytes,
		now:            time.Now,
	}
}

// ListBattlecards loads every record, most recently updated first, and narrows
// the set with q.
func (s *BattlecardsService) ListBattlecards(ctx context.Context, q search.Query) ([]entity.Battlecard, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(records, q), nil
}

// GetBattlecard returns one record or repository.ErrBattlecardNotFound.
func (s *BattlecardsService) GetBattlecard(ctx context.Context, id string) (*entity.Battlecard, error) {
	return s.repo.Get(ctx, id)
}

// CreateBattlecard validates and stores a new record. Any id on card is ignored.
func (s *BattlecardsService) CreateBattlecard(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error) {
	if err := normalizeBattlecard(card); err != nil {
		return nil, err
	}
	card.ID = ""
	s.stamp(card)

	saved, err := s.repo.Create(ctx, card)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).WithField("battlecard_id", saved.ID).Info("battlecard created")
	return saved, nil
}

// UpdateBattlecard replaces every attribute of the record identified by id.
func (s *BattlecardsService) UpdateBattlecard(ctx context.Context, id string, card *entity.Battlecard) (*entity.Battlecard, error) {
	if err := normalizeBattlecard(card); err != nil {
		return nil, err
	}
	card.ID = id
	s.stamp(card)

	saved, err := s.repo.Update(ctx, card)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).WithField("battlecard_id", saved.ID).Info("battlecard updated")
	return saved, nil
}

// DeleteBattlecard removes the record identified by id.
func (s *BattlecardsService) DeleteBattlecard(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.FromContext(ctx).WithField("battlecard_id", id).Info("battlecard deleted")
	return nil
}

// Stats summarizes the whole catalogue as of now.
func (s *BattlecardsService) Stats(ctx context.Context, now time.Time) (search.Stats, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return search.Stats{}, err
	}
	return search.Summarize(records, now), nil
}

// Template returns the downloadable import template.
func (s *BattlecardsService) Template() string {
	return csvcodec.Template()
}

func (s *BattlecardsService) stamp(card *entity.Battlecard) {
	now := s.now().UTC()
	card.LastUpdated = &now
}
