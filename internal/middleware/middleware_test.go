package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"catalog/internal/apperror"
	"catalog/internal/middleware"
	"catalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errBadToken = apperror.New(apperror.ErrNotAuthenticated, "Given token not valid for any token type")

type stubAuthenticator map[string]*models.User

func (s stubAuthenticator) Authenticate(token string) (*models.User, error) {
	if user, ok := s[token]; ok {
		return user, nil
	}
	return nil, errBadToken
}

type recordingObserver struct {
	mu       sync.Mutex
	statuses []int
}

func (r *recordingObserver) ObserveRequest(_ string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func testErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return c.Status(fe.Code).SendString(fe.Message)
	case errors.Is(err, apperror.ErrNotAuthenticated):
		return c.Status(fiber.StatusUnauthorized).SendString(apperror.PublicMessage(err))
	default:
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
}

func setupApp(obs middleware.RequestObserver) (*fiber.App, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)

	app := fiber.New(fiber.Config{ErrorHandler: testErrorHandler})
	app.Use(middleware.RequestLogger(middleware.RequestLoggerConfig{
		Prefix:   "/api/",
		Logger:   zap.New(core),
		Observer: obs,
	}))
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/apiary", func(c *fiber.Ctx) error { return c.SendString("bees") })

	users := stubAuthenticator{"good": {ID: "7", Username: "alice"}}
	api := app.Group("/api", middleware.Authenticate(users, []string{"Bearer"}, nil))
	api.Get("/things", func(c *fiber.Ctx) error { return c.SendString("things") })
	api.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	api.Get("/whoami", func(c *fiber.Ctx) error { return c.SendString(middleware.IdentityFrom(c).String()) })
	api.Delete("/things/:id", middleware.RequireAuth(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	api.Get("/detached", func(c *fiber.Ctx) error {
		c.SetUserContext(context.Background())
		return c.SendString("detached")
	})
	api.Get("/panic", func(c *fiber.Ctx) error { return errors.New("boom") })

	return app, logs
}

func do(t *testing.T, app *fiber.App, method, target, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

var linePattern = regexp.MustCompile(`^([A-Z]+) (\S+) -> (\d{3}) \((\S+)\) (\d+|-)ms$`)

func TestRequestLogger_OneLinePerAPIRequest(t *testing.T) {
	app, logs := setupApp(nil)

	resp := do(t, app, http.MethodGet, "/api/things", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	entries := logs.All()
	require.Len(t, entries, 1)
	m := linePattern.FindStringSubmatch(entries[0].Message)
	require.NotNil(t, m, entries[0].Message)
	assert.Equal(t, "GET", m[1])
	assert.Equal(t, "/api/things", m[2])
	assert.Equal(t, "200", m[3])
	assert.Equal(t, "anonymous", m[4])
	assert.NotEqual(t, "-", m[5])

	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/things", fields["path"])
	assert.EqualValues(t, 200, fields["status"])
	assert.Equal(t, "anonymous", fields["user"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRequestLogger_StatusMatchesFailedResponses(t *testing.T) {
	app, logs := setupApp(nil)

	cases := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodGet, "/api/missing", "", http.StatusNotFound},
		{http.MethodDelete, "/api/things/1", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/panic", "", http.StatusInternalServerError},
		{http.MethodGet, "/api/no-such-route", "", http.StatusNotFound},
	}
	for i, tc := range cases {
		resp := do(t, app, tc.method, tc.path, tc.token)
		assert.Equal(t, tc.want, resp.StatusCode, tc.path)

		entries := logs.All()
		require.Len(t, entries, i+1)
		assert.EqualValues(t, resp.StatusCode, entries[i].ContextMap()["status"], tc.path)
	}
}

func TestRequestLogger_SkipsPathsOutsidePrefix(t *testing.T) {
	app, logs := setupApp(nil)

	for _, path := range []string{"/health", "/apiary"} {
		resp := do(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 0, logs.Len())
}

func TestRequestLogger_PlaceholderWhenStartLost(t *testing.T) {
	app, logs := setupApp(nil)

	do(t, app, http.MethodGet, "/api/detached", "")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "GET /api/detached -> 200 (anonymous) -ms", entry.Message)
	assert.Equal(t, "-", entry.ContextMap()["duration_ms"])
}

func TestRequestLogger_FeedsObserver(t *testing.T) {
	obs := &recordingObserver{}
	app, _ := setupApp(obs)

	do(t, app, http.MethodGet, "/api/things", "")
	do(t, app, http.MethodGet, "/api/missing", "")
	do(t, app, http.MethodGet, "/health", "")

	assert.Equal(t, []int{200, 404}, obs.statuses)
}

func TestAuthenticate_ResolvesIdentity(t *testing.T) {
	app, logs := setupApp(nil)

	resp := do(t, app, http.MethodGet, "/api/whoami", "good")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "7:alice", logs.All()[0].ContextMap()["user"])

	resp = do(t, app, http.MethodDelete, "/api/things/1", "good")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAuthenticate_InvalidTokenIsAnonymousOnOpenRoutes(t *testing.T) {
	app, logs := setupApp(nil)

	resp := do(t, app, http.MethodGet, "/api/whoami", "forged")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "anonymous", logs.All()[0].ContextMap()["user"])

	// the token error is what a protected route reports
	resp = do(t, app, http.MethodDelete, "/api/things/1", "forged")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIdentity_String(t *testing.T) {
	var anonymous *middleware.Identity
	assert.Equal(t, "anonymous", anonymous.String())
	assert.Equal(t, "42:bob", (&middleware.Identity{ID: "42", Username: "bob"}).String())
}
