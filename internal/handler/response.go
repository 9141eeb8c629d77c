package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/battlecards/internal/csvcodec"
	"github.com/octobees/battlecards/internal/importer"
	"github.com/octobees/battlecards/internal/logging"
	"github.com/octobees/battlecards/internal/repository"
	"github.com/octobees/battlecards/internal/service"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	return ErrorWithData(c, status, message, nil)
}

// ErrorWithData sends an error envelope that also carries details, such as the
// row errors of a rejected import.
func ErrorWithData(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	payload := APIResponse{
		Status:  "error",
		Message: message,
		Data:    data,
	}
	return c.JSON(status, payload)
}

// statusFor maps domain errors to HTTP status codes. An aborted import is a
// gateway failure whatever the wrapped cause. Unknown errors are 500.
func statusFor(err error) int {
	var (
		formatErr     *csvcodec.FormatError
		validationErr *repository.ValidationError
		applyErr      *importer.ApplyError
	)
	switch {
	case errors.As(err, &applyErr):
		return http.StatusBadGateway
	case errors.Is(err, repository.ErrBattlecardNotFound):
		return http.StatusNotFound
	case errors.As(err, &formatErr):
		return http.StatusBadRequest
	case errors.As(err, &validationErr), errors.Is(err, importer.ErrNoValidRecords):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrImportTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err using statusFor. Server-side failures are logged and their
// message replaced by fallback.
func fail(c echo.Context, err error, fallback string, data any) error {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).WithError(err).Error(fallback)
		message = fallback
	}
	return ErrorWithData(c, status, message, data)
}
