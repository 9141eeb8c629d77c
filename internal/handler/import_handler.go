package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/battlecards/internal/service"
)

// ImportHandler handles bulk battlecard uploads.
type ImportHandler struct {
	service *service.BattlecardsService
}

// NewImportHandler wires a handler backed by the battlecards service.
func NewImportHandler(service *service.BattlecardsService) *ImportHandler {
	return &ImportHandler{service: service}
}

// Import handles POST /battlecards/import requests carrying a multipart "file".
func (h *ImportHandler) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	report, err := h.service.ImportCSV(c.Request().Context(), file, nil)
	if err != nil {
		return fail(c, err, "failed to import battlecards", report)
	}
	return Success(c, http.StatusOK, "battlecards imported", report)
}
