package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/battlecards/internal/csvcodec"
	"github.com/octobees/battlecards/internal/entity"
	"github.com/octobees/battlecards/internal/search"
	"github.com/octobees/battlecards/internal/service"
)

// BattlecardsHandler exposes battlecard catalogue endpoints.
type BattlecardsHandler struct {
	service *service.BattlecardsService
	now     func() time.Time
}

// NewBattlecardsHandler creates a new handler instance.
func NewBattlecardsHandler(service *service.BattlecardsService) *BattlecardsHandler {
	return &BattlecardsHandler{service: service, now: time.Now}
}

// List handles GET /battlecards requests.
func (h *BattlecardsHandler) List(c echo.Context) error {
	q := search.Query{
		SearchTerm:  strings.TrimSpace(c.QueryParam("q")),
		ThreatLevel: strings.TrimSpace(c.QueryParam("threat_level")),
		Vertical:    strings.TrimSpace(c.QueryParam("vertical")),
		Region:      strings.TrimSpace(c.QueryParam("region")),
	}

	cards, err := h.service.ListBattlecards(c.Request().Context(), q)
	if err != nil {
		return fail(c, err, "failed to list battlecards", nil)
	}
	return Success(c, http.StatusOK, "battlecards retrieved", cards)
}

// Stats handles GET /battlecards/stats requests.
func (h *BattlecardsHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context(), h.now())
	if err != nil {
		return fail(c, err, "failed to compute battlecard stats", nil)
	}
	return Success(c, http.StatusOK, "battlecard stats retrieved", stats)
}

// Template handles GET /battlecards/template requests.
func (h *BattlecardsHandler) Template(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+csvcodec.TemplateFilename+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(h.service.Template()))
}

// Get handles GET /battlecards/:id requests.
func (h *BattlecardsHandler) Get(c echo.Context) error {
	card, err := h.service.GetBattlecard(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err, "failed to load battlecard", nil)
	}
	return Success(c, http.StatusOK, "battlecard retrieved", card)
}

// Create handles POST /battlecards requests.
func (h *BattlecardsHandler) Create(c echo.Context) error {
	var card entity.Battlecard
	if err := c.Bind(&card); err != nil {
		return Error(c, http.StatusBadRequest, "invalid battlecard payload")
	}

	saved, err := h.service.CreateBattlecard(c.Request().Context(), &card)
	if err != nil {
		return fail(c, err, "failed to create battlecard", nil)
	}
	return Success(c, http.StatusCreated, "battlecard created", saved)
}

// Update handles PUT /battlecards/:id requests. The body replaces the record.
func (h *BattlecardsHandler) Update(c echo.Context) error {
	var card entity.Battlecard
	if err := c.Bind(&card); err != nil {
		return Error(c, http.StatusBadRequest, "invalid battlecard payload")
	}

	saved, err := h.service.UpdateBattlecard(c.Request().Context(), c.Param("id"), &card)
	if err != nil {
		return fail(c, err, "failed to update battlecard", nil)
	}
	return Success(c, http.StatusOK, "battlecard updated", saved)
}

// Delete handles DELETE /battlecards/:id?confirm=true requests.
func (h *BattlecardsHandler) Delete(c echo.Context) error {
	if !strings.EqualFold(strings.TrimSpace(c.QueryParam("confirm")), "true") {
		return Error(c, http.StatusPreconditionRequired, "deleting a battlecard requires confirm=true")
	}

	if err := h.service.DeleteBattlecard(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err, "failed to delete battlecard", nil)
	}
	return Success(c, http.StatusOK, "battlecard deleted", map[string]string{"id": c.Param("id")})
}
