//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"facility-booking/internal/domain/operator"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

// JWTHelper mints operator tokens signed the way the front office signs them.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, operatorID, siteID int64, role operator.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(operatorID, siteID, role.String(), "")
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, operatorID, siteID int64, role operator.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(operatorID, siteID, role.String(), "")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
