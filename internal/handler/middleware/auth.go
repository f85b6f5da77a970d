package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"campus-placement/internal/domain/user"
	"campus-placement/internal/handler/httperr"
	"campus-placement/internal/usecase"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

var (
	errMissingToken = errors.New("access token required")
	errNoIdentity   = errors.New("identity missing from context")
	errRoleDenied   = errors.New("role not permitted")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxIdentityKey = "identity"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Access token required", nil)
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxIdentityKey, identity)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoIdentity, "Internal server error", nil)
			return
		}
		if !slices.Contains(roles, identity.Role) {
			httperr.AbortWithError(c, http.StatusForbidden, errRoleDenied, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// BearerToken prefers the Authorization header and falls back to the access_token cookie.
func BearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimSpace(authHeader[len("Bearer "):]); token != "" {
			return token
		}
	}
	if token, err := c.Cookie(AccessTokenCookieName); err == nil {
		return strings.TrimSpace(token)
	}
	return ""
}

func GetIdentity(c *gin.Context) (user.Identity, bool) {
	v, exists := c.Get(ctxIdentityKey)
	if !exists {
		return user.Identity{}, false
	}
	identity, ok := v.(user.Identity)
	return identity, ok
}
