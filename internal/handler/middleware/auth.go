package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"facility-booking/internal/domain/operator"
	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/cookie"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/session"
	"facility-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

var (
	errTokenRequired = errs.New("access token required")
	errNoOperator    = errs.New("operator missing from context")
	errRoleTooLow    = errs.New("insufficient role")
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	pms            config.PMSConfig
}

const (
	ctxOperatorKey = "operator"
	ctxSessionKey  = "session"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, pms config.PMSConfig) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		pms:            pms,
	}
}

// RequireAuth resolves the operator and builds the upstream session for the
// request. The operator token is forwarded to the PMS as is.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errTokenRequired, "Access token required", nil)
			return
		}

		identity, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		currency := identity.Currency
		if currency == "" {
			currency = m.pms.Currency
		}
		sess := session.New(m.pms.BaseURL, token, currency)

		c.Set(ctxOperatorKey, identity.Operator)
		c.Set(ctxSessionKey, sess)
		c.Set("jwt_claims", map[string]any{
			"operator_id": identity.Operator.ID(),
			"site_id":     identity.Operator.SiteID(),
			"role":        identity.Operator.Role().String(),
		})
		c.Request = c.Request.WithContext(session.WithContext(c.Request.Context(), sess))
		c.Next()
	}
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole operator.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		op, ok := GetOperator(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoOperator, "Internal server error", nil)
			return
		}

		if !op.Role().AtLeast(minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errRoleTooLow, "Insufficient permissions", nil)
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetOperator(c *gin.Context) (*operator.Operator, bool) {
	v, exists := c.Get(ctxOperatorKey)
	if !exists {
		return nil, false
	}
	op, ok := v.(*operator.Operator)
	return op, ok
}

func GetSession(c *gin.Context) (session.Context, bool) {
	v, exists := c.Get(ctxSessionKey)
	if !exists {
		return session.Context{}, false
	}
	sess, ok := v.(session.Context)
	return sess, ok
}

// SetIdentity installs an operator and session without a token. Tests only.
func SetIdentity(c *gin.Context, op *operator.Operator, sess session.Context) {
	c.Set(ctxOperatorKey, op)
	c.Set(ctxSessionKey, sess)
}
