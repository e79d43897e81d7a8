package middleware

import (
	"strings"

	"catalog/internal/apperror"
	"catalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Authenticator resolves a bearer token to the user it was issued for.
// *services.AuthService satisfies it.
type Authenticator interface {
	Authenticate(token string) (*models.User, error)
}

// Authenticate is a Fiber middleware that resolves the caller from the
// Authorization header. It never rejects a request: a missing or invalid
// token leaves the request anonymous and routes that need a caller are
// guarded with RequireAuth.
func Authenticate(auth Authenticator, headerTypes []string, log *zap.Logger) fiber.Handler {
	if len(headerTypes) == 0 {
		headerTypes = []string{"Bearer"}
	}
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		// Expected format: "<type> <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !acceptedType(parts[0], headerTypes) {
			return c.Next()
		}

		user, err := auth.Authenticate(parts[1])
		if err != nil {
			log.Debug("bearer token rejected", zap.String("path", c.Path()), zap.Error(err))
			c.Locals(authErrorKey, err)
			return c.Next()
		}

		setIdentity(c, &Identity{ID: user.ID, Username: user.Username})
		return c.Next()
	}
}

// RequireAuth rejects anonymous callers with apperror.ErrNotAuthenticated,
// or with the token error recorded by Authenticate when one was presented.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if IdentityFrom(c) != nil {
			return c.Next()
		}
		if err, ok := c.Locals(authErrorKey).(error); ok {
			return err
		}
		return apperror.ErrNotAuthenticated
	}
}

func acceptedType(got string, accepted []string) bool {
	for _, t := range accepted {
		if strings.EqualFold(got, t) {
			return true
		}
	}
	return false
}
