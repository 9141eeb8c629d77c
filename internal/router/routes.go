package router

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/battlecards/internal/config"
	"github.com/octobees/battlecards/internal/handler"
	"github.com/octobees/battlecards/internal/metrics"
	middlewarepkg "github.com/octobees/battlecards/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Battlecards *handler.BattlecardsHandler
	Import      *handler.ImportHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	cards := e.Group("/battlecards")
	cards.GET("", handlers.Battlecards.List)
	cards.GET("/stats", handlers.Battlecards.Stats)
	cards.GET("/template", handlers.Battlecards.Template)
	cards.GET("/:id", handlers.Battlecards.Get)
	cards.POST("", handlers.Battlecards.Create)
	cards.PUT("/:id", handlers.Battlecards.Update)
	cards.DELETE("/:id", handlers.Battlecards.Delete)

	// The multipart envelope adds some overhead on top of the file itself.
	bodyLimit := strconv.FormatInt(cfg.ImportMaxBytes+1<<20, 10)
	cards.POST("/import", handlers.Import.Import,
		middlewarepkg.ImportRateLimiter(cfg.RateLimitImport),
		echoMiddleware.BodyLimit(bodyLimit),
	)
}
