package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/battlecards/internal/entity"
	"github.com/octobees/battlecards/internal/repository"
	"github.com/octobees/battlecards/internal/service"
)

type stubBattlecardsRepository struct {
	records []entity.Battlecard
	listErr error
	failOn  string
	nextID  int
}

func (s *stubBattlecardsRepository) List(ctx context.Context) ([]entity.Battlecard, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]entity.Battlecard(nil), s.records...), nil
}

func (s *stubBattlecardsRepository) Get(ctx context.Context, id string) (*entity.Battlecard, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			card := s.records[i]
			return &card, nil
		}
	}
	return nil, repository.ErrBattlecardNotFound
}

func (s *stubBattlecardsRepository) Create(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error) {
	if card.CompanyName == s.failOn {
		return nil, errors.New("insert rejected")
	}
	s.nextID++
	saved := *card
	saved.ID = fmt.Sprintf("id-%d", s.nextID)
	s.records = append(s.records, saved)
	return &saved, nil
}

func (s *stubBattlecardsRepository) Update(ctx context.Context, card *entity.Battlecard) (*entity.Battlecard, error) {
	for i := range s.records {
		if s.records[i].ID == card.ID {
			s.records[i] = *card
			saved := *card
			return &saved, nil
		}
	}
	return nil, repository.ErrBattlecardNotFound
}

func (s *stubBattlecardsRepository) Delete(ctx context.Context, id string) error {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrBattlecardNotFound
}

func newBattlecardsHandler(repo repository.BattlecardsRepository) *BattlecardsHandler {
	return NewBattlecardsHandler(service.NewBattlecardsService(repo, 0))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) APIResponse {
	t.Helper()
	var raw struct {
		APIResponse
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, data); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}
	return raw.APIResponse
}

func TestBattlecardsHandler_List(t *testing.T) {
	repo := &stubBattlecardsRepository{records: []entity.Battlecard{
		{ID: "1", CompanyName: "Acme", ThreatLevel: "High", StrongestRegions: []string{"EMEA"}},
		{ID: "2", CompanyName: "Globex", ThreatLevel: "High", StrongestRegions: []string{"APAC"}},
	}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/battlecards?threat_level=High&region=emea", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newBattlecardsHandler(repo).List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var cards []entity.Battlecard
	decodeEnvelope(t, rec, &cards)
	if len(cards) != 1 || cards[0].ID != "1" {
		t.Fatalf("expected only Acme, got %+v", cards)
	}
}

func TestBattlecardsHandler_ListError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/battlecards", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = newBattlecardsHandler(&stubBattlecardsRepository{listErr: errors.New("db down")}).List(c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	payload := decodeEnvelope(t, rec, nil)
	if payload.Message != "failed to list battlecards" {
		t.Fatalf("expected generic message, got %q", payload.Message)
	}
}

func TestBattlecardsHandler_GetNotFound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/battlecards/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	_ = newBattlecardsHandler(&stubBattlecardsRepository{}).Get(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestBattlecardsHandler_Create(t *testing.T) {
	repo := &stubBattlecardsRepository{}
	e := echo.New()
	body := `{"company_name": "Acme", "threat_level": "high", "strongest_verticals": ["Retail"]}`
	req := httptest.NewRequest(http.MethodPost, "/battlecards", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newBattlecardsHandler(repo).Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var card entity.Battlecard
	decodeEnvelope(t, rec, &card)
	if card.ID != "id-1" || card.ThreatLevel != "High" {
		t.Fatalf("unexpected created card: %+v", card)
	}
	if len(repo.records) != 1 || repo.records[0].StrongestVerticals[0] != "Retail" {
		t.Fatalf("expected record to be stored, got %+v", repo.records)
	}
}

func TestBattlecardsHandler_CreateValidation(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/battlecards", strings.NewReader(`{"company_name": "  "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = newBattlecardsHandler(&stubBattlecardsRepository{}).Create(c)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/battlecards", strings.NewReader(`{"company_name":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	_ = newBattlecardsHandler(&stubBattlecardsRepository{}).Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", rec.Code)
	}
}

func TestBattlecardsHandler_Update(t *testing.T) {
	repo := &stubBattlecardsRepository{records: []entity.Battlecard{{ID: "1", CompanyName: "Acme"}}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/battlecards/1", strings.NewReader(`{"company_name": "Acme Corp"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	_ = newBattlecardsHandler(repo).Update(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if repo.records[0].CompanyName != "Acme Corp" {
		t.Fatalf("expected record replaced, got %+v", repo.records[0])
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/battlecards/2", strings.NewReader(`{"company_name": "Other"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("2")
	_ = newBattlecardsHandler(repo).Update(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
}

func TestBattlecardsHandler_DeleteRequiresConfirmation(t *testing.T) {
	repo := &stubBattlecardsRepository{records: []entity.Battlecard{{ID: "1", CompanyName: "Acme"}}}
	e := echo.New()

	req := httptest.NewRequest(http.MethodDelete, "/battlecards/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	_ = newBattlecardsHandler(repo).Delete(c)
	if rec.Code != http.StatusPreconditionRequired {
		t.Fatalf("expected 428, got %d", rec.Code)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected record to survive unconfirmed delete")
	}

	req = httptest.NewRequest(http.MethodDelete, "/battlecards/1?confirm=true", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	_ = newBattlecardsHandler(repo).Delete(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(repo.records) != 0 {
		t.Fatalf("expected record removed")
	}
}

func TestBattlecardsHandler_Template(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/battlecards/template", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newBattlecardsHandler(&stubBattlecardsRepository{}).Template(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "battlecard_template.csv") {
		t.Fatalf("expected attachment filename, got %q", rec.Header().Get(echo.HeaderContentDisposition))
	}
	if !strings.HasPrefix(rec.Body.String(), `"company_name",`) {
		t.Fatalf("expected template header, got %.40q", rec.Body.String())
	}
}

func TestBattlecardsHandler_Stats(t *testing.T) {
	repo := &stubBattlecardsRepository{records: []entity.Battlecard{
		{ID: "1", CompanyName: "Acme", ThreatLevel: "Critical"},
		{ID: "2", CompanyName: "Globex"},
	}}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/battlecards/stats", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = newBattlecardsHandler(repo).Stats(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats map[string]int
	decodeEnvelope(t, rec, &stats)
	if stats["total"] != 2 || stats["critical"] != 1 || stats["unrated"] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}
