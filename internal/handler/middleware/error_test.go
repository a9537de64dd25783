//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"facility-booking/internal/handler/httperr"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery())
	r.Use(middleware.LoggingMiddleware(nil, config.LogConfig{Level: "error", TimeFormat: "2006-01-02 15:04:05"}))
	r.Use(middleware.ErrorHandler())
	return r
}

func TestErrorHandler(t *testing.T) {
	t.Run("success: public errors carry a code", func(t *testing.T) {
		r := newTestEngine()
		r.GET("/p", func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, errs.New("bad"), "Please select a user", nil)
		})

		w := httptest.PerformRequest(t, r, http.MethodGet, "/p", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Please select a user")
		assert.Contains(t, w.Body.String(), `"code":"unprocessable_entity"`)
	})

	t.Run("error: panic becomes 500", func(t *testing.T) {
		r := newTestEngine()
		r.GET("/p", func(c *gin.Context) { panic("boom") })

		w := httptest.PerformRequest(t, r, http.MethodGet, "/p", nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "Internal server error")
	})
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	t.Run("success: echoes the incoming X-Request-ID", func(t *testing.T) {
		r := newTestEngine()
		var seen string
		r.GET("/p", func(c *gin.Context) {
			seen = middleware.GetRequestID(c)
			c.Status(http.StatusNoContent)
		})

		w := httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/p", nil, map[string]string{"X-Request-ID": "req-123"})

		assert.Equal(t, "req-123", seen)
		httptest.AssertHeaders(t, w, map[string]string{"X-Request-ID": "req-123"})
	})

	t.Run("success: generates one when absent", func(t *testing.T) {
		r := newTestEngine()
		r.GET("/p", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.PerformRequest(t, r, http.MethodGet, "/p", nil, "")

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestHTTPErrCode(t *testing.T) {
	assert.Equal(t, "not_found", httperr.Code(http.StatusNotFound))
	assert.Equal(t, "too_many_requests", httperr.Code(http.StatusTooManyRequests))
	assert.Equal(t, "error", httperr.Code(599))
}
