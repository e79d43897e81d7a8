package middleware

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type startKey struct{}

// RequestObserver receives the outcome of every logged request.
// *metrics.HTTPMetrics satisfies it.
type RequestObserver interface {
	ObserveRequest(method string, status int, elapsed time.Duration)
}

// RequestLoggerConfig configures RequestLogger.
type RequestLoggerConfig struct {
	// Prefix limits logging to paths under it, e.g. "/api".
	Prefix string
	// Logger receives one INFO entry per request.
	Logger *zap.Logger
	// Observer is optional.
	Observer RequestObserver
}

// WithStart returns a copy of ctx carrying the request start time.
func WithStart(ctx context.Context, start time.Time) context.Context {
	return context.WithValue(ctx, startKey{}, start)
}

// StartTime returns the request start time stored by WithStart.
func StartTime(ctx context.Context) (time.Time, bool) {
	start, ok := ctx.Value(startKey{}).(time.Time)
	return start, ok
}

// RequestLogger is a Fiber middleware that logs every request under the
// configured prefix as "METHOD PATH -> STATUS (IDENTITY) DURATIONms".
// Errors returned by the chain are rendered by the app's ErrorHandler first,
// so the logged status is the one the client receives. Other paths pass
// through untouched.
func RequestLogger(cfg RequestLoggerConfig) fiber.Handler {
	prefix := strings.TrimRight(cfg.Prefix, "/")
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		path := utils.CopyString(c.Path())
		if !underPrefix(path, prefix) {
			return c.Next()
		}
		method := utils.CopyString(c.Method())

		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.SetUserContext(WithStart(c.UserContext(), time.Now()))

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		user := IdentityFrom(c).String()

		duration := "-"
		var elapsed time.Duration
		start, ok := StartTime(c.UserContext())
		if ok {
			elapsed = time.Since(start)
			duration = strconv.FormatInt(elapsed.Milliseconds(), 10)
		}

		log.Info(fmt.Sprintf("%s %s -> %d (%s) %sms", method, path, status, user, duration),
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("user", user),
			zap.String("duration_ms", duration),
			zap.String("request_id", requestID),
		)

		if cfg.Observer != nil {
			cfg.Observer.ObserveRequest(method, status, elapsed)
		}
		return nil
	}
}

func underPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
