package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/octobees/battlecards/internal/logging"
	"github.com/octobees/battlecards/internal/metrics"
)

// Logging attaches a request-scoped logrus entry to the request context and
// writes one line per request once the handler returns. Request counts and
// latencies are recorded against the route pattern.
func Logging(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			entry := logger.WithFields(logrus.Fields{
				"request_id": RequestIDFromContext(c),
				"method":     req.Method,
				"path":       req.URL.Path,
			})
			c.SetRequest(req.WithContext(logging.WithContext(req.Context(), entry)))

			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.RecordRequest(req.Method, route, status, latency)

			line := entry.WithFields(logrus.Fields{
				"status":  status,
				"latency": latency.String(),
			})
			if status >= 500 {
				line.Error("request completed")
			} else {
				line.Info("request completed")
			}

			return err
		}
	}
}
