package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/battlecards/internal/csvcodec"
	"github.com/octobees/battlecards/internal/entity"
	"github.com/octobees/battlecards/internal/repository"
	"github.com/octobees/battlecards/internal/service"
)

func newImportHandler(repo repository.BattlecardsRepository) *ImportHandler {
	return NewImportHandler(service.NewBattlecardsService(repo, 0))
}

func TestImportHandler_MissingFile(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/battlecards/import", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = newImportHandler(&stubBattlecardsRepository{}).Import(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestImportHandler_HeaderMismatch(t *testing.T) {
	e := echo.New()
	req, rec := multipartRequest(t, "file", "battlecards.csv", "company,threat\nAcme,High\n")
	c := e.NewContext(req, rec)

	_ = newImportHandler(&stubBattlecardsRepository{}).Import(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for header mismatch, got %d", rec.Code)
	}
	payload := decodeEnvelope(t, rec, nil)
	if !strings.Contains(payload.Message, "missing columns") {
		t.Fatalf("expected missing columns message, got %q", payload.Message)
	}
}

func TestImportHandler_NoValidRecords(t *testing.T) {
	e := echo.New()
	req, rec := multipartRequest(t, "file", "battlecards.csv", importCSV(""))
	c := e.NewContext(req, rec)

	_ = newImportHandler(&stubBattlecardsRepository{}).Import(c)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var report service.ImportReport
	decodeEnvelope(t, rec, &report)
	if len(report.Errors) != 1 || report.Errors[0].Row != 2 {
		t.Fatalf("expected row error to be returned, got %+v", report.Errors)
	}
}

func TestImportHandler_GatewayFailure(t *testing.T) {
	e := echo.New()
	req, rec := multipartRequest(t, "file", "battlecards.csv", importCSV("Acme", "Globex"))
	c := e.NewContext(req, rec)

	repo := &stubBattlecardsRepository{failOn: "Globex"}
	_ = newImportHandler(repo).Import(c)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	payload := decodeEnvelope(t, rec, nil)
	if !strings.Contains(payload.Message, `"Globex"`) {
		t.Fatalf("expected failing company in message, got %q", payload.Message)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected first create to persist, got %d", len(repo.records))
	}
}

// staleListRepository lists a record that is already gone from the store.
type staleListRepository struct {
	stubBattlecardsRepository
	stale []entity.Battlecard
}

func (s *staleListRepository) List(ctx context.Context) ([]entity.Battlecard, error) {
	return append(s.stale, s.records...), nil
}

func TestImportHandler_UpdateOfDeletedRecordAborts(t *testing.T) {
	e := echo.New()
	req, rec := multipartRequest(t, "file", "battlecards.csv", importCSV("Globex"))
	c := e.NewContext(req, rec)

	repo := &staleListRepository{stale: []entity.Battlecard{{ID: "gone", CompanyName: "Globex"}}}
	_ = newImportHandler(repo).Import(c)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for aborted update, got %d: %s", rec.Code, rec.Body.String())
	}
	payload := decodeEnvelope(t, rec, nil)
	if !strings.Contains(payload.Message, `"Globex"`) {
		t.Fatalf("expected failing company in message, got %q", payload.Message)
	}
}

func TestImportHandler_Success(t *testing.T) {
	e := echo.New()
	req, rec := multipartRequest(t, "file", "battlecards.csv", importCSV("Acme", "globex"))
	c := e.NewContext(req, rec)

	repo := &stubBattlecardsRepository{records: []entity.Battlecard{{ID: "g", CompanyName: "Globex"}}}
	_ = newImportHandler(repo).Import(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report service.ImportReport
	decodeEnvelope(t, rec, &report)
	if report.Created != 1 || report.Updated != 1 || report.Total != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func importCSV(companies ...string) string {
	rows := make([][]string, len(companies))
	for i, name := range companies {
		row := make([]string, len(csvcodec.Manifest))
		row[0] = name
		rows[i] = row
	}
	return csvcodec.Serialize(csvcodec.Manifest, rows)
}

func multipartRequest(t *testing.T, field, filename, content string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/battlecards/import", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	return req, rec
}
