//go:build unit

package middleware_test

import (
	"context"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"campus-placement/internal/domain/user"
	"campus-placement/internal/handler/middleware"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/pkg/jwt"
	"campus-placement/internal/testutil/authtest"
	"campus-placement/internal/testutil/builder"
	"campus-placement/internal/testutil/httptest"
	"campus-placement/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(cfg config.Config) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration)))
}

func whoami(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": identity.UserID, "role": identity.Role})
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	helper := authtest.NewJWTHelper(cfg.JWT)
	student := builder.Student(t, uuid.New())

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/me", newAuth(cfg).RequireAuth(), whoami)

	t.Run("bearer header", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, helper.GenerateToken(t, student))
		var body struct {
			UserID uuid.UUID `json:"user_id"`
			Role   string    `json:"role"`
		}
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, student.UserID, body.UserID)
		assert.Equal(t, "STUDENT", body.Role)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		req := nethttptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookieName, Value: helper.GenerateToken(t, student)})
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := authtest.NewJWTHelper(config.JWTConfig{Secret: "someone-else", Duration: cfg.JWT.Duration})
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, other.GenerateToken(t, student))
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	helper := authtest.NewJWTHelper(cfg.JWT)
	auth := newAuth(cfg)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/org", auth.RequireAuth(), auth.RequireRole(user.RoleCompany, user.RoleAdmin), whoami)
	router.GET("/misconfigured", auth.RequireRole(user.RoleAdmin), whoami)

	tests := []struct {
		name     string
		identity user.Identity
		want     int
	}{
		{name: "company", identity: builder.Recruiter(t, uuid.New()), want: http.StatusOK},
		{name: "admin", identity: builder.Admin(t, uuid.New()), want: http.StatusOK},
		{name: "student", identity: builder.Student(t, uuid.New()), want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.PerformRequest(t, router, http.MethodGet, "/org", nil, helper.GenerateToken(t, tt.identity))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	t.Run("without RequireAuth", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/misconfigured", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	})
}

type countingLimiter struct {
	allow int
	keys  []string
}

func (l *countingLimiter) Allow(_ context.Context, key string) bool {
	l.keys = append(l.keys, key)
	l.allow--
	return l.allow >= 0
}

func TestConnectRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := &countingLimiter{allow: 2}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.GET("/ws", middleware.ConnectRateLimit(limiter), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for range 2 {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/ws", nil, "")
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
	rec := httptest.PerformRequest(t, router, http.MethodGet, "/ws", nil, "")
	httptest.AssertErrorResponse(t, rec, http.StatusTooManyRequests, "Too many connection attempts")
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, []string{"192.0.2.1", "192.0.2.1", "192.0.2.1"}, limiter.keys)

	open := gin.New()
	open.GET("/ws", middleware.ConnectRateLimit(nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	rec = httptest.PerformRequest(t, open, http.MethodGet, "/ws", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	preflight := func(cfg config.CORSConfig, origin string) *nethttptest.ResponseRecorder {
		router := gin.New()
		router.Use(middleware.NewCORSMiddleware(cfg))
		router.GET("/api/notifications", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := nethttptest.NewRequest(http.MethodOptions, "/api/notifications", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := nethttptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	base := config.CORSConfig{
		AllowOrigins:     []string{"https://placement.example.edu"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}

	t.Run("listed origin", func(t *testing.T) {
		rec := preflight(base, "https://placement.example.edu")
		assert.Equal(t, "https://placement.example.edu", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted origin", func(t *testing.T) {
		rec := preflight(base, "https://evil.example.com")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("test config builds a working middleware", func(t *testing.T) {
		cfg := config.NewTestConfig().CORS
		require.NotEmpty(t, cfg.AllowOrigins)
		require.NotPanics(t, func() { middleware.NewCORSMiddleware(cfg) })

		rec := preflight(cfg, cfg.AllowOrigins[0])
		assert.Equal(t, cfg.AllowOrigins[0], rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard drops credentials", func(t *testing.T) {
		open := base
		open.AllowOrigins = []string{"*"}
		rec := preflight(open, "https://anywhere.example.org")
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}
