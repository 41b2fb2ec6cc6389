package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yuetlam/splitter/internal/metrics"
)

// Observe logs every request and records Prometheus request metrics. Route
// templates (not raw paths) label the metrics so cardinality stays bounded.
func Observe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		duration := time.Since(start)

		metrics.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Method(), route).Observe(duration.Seconds())

		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"user_id", UserID(c),
		}
		if err != nil {
			slog.Warn("request failed", append(attrs, "error", err)...)
		} else {
			slog.Info("request handled", attrs...)
		}

		return err
	}
}
