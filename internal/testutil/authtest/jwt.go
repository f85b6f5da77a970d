//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"campus-placement/internal/domain/user"
	"campus-placement/internal/pkg/config"
	"campus-placement/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, id user.Identity) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Duration).GenerateToken(id)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, id user.Identity) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(id)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
