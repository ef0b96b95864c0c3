package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags every request with an id, attaches a request-scoped
// zerolog logger to the user context and logs the outcome.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		logger := log.With().
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("remote_ip", c.IP()).
			Str("user_agent", c.Get(fiber.HeaderUserAgent)).
			Logger()

		c.SetUserContext(logger.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			// let the app error handler set the status before we read it
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		duration := time.Since(start)

		if status >= fiber.StatusInternalServerError {
			logger.Error().
				Err(err).
				Int("status", status).
				Dur("duration", duration).
				Msg("http request failed")
		} else {
			logger.Info().
				Int("status", status).
				Dur("duration", duration).
				Msg("http request served")
		}

		return nil
	}
}
