package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventrack/internal/core/apperror"
	"inventrack/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Trace(), Logger(logger.NewNop()), ErrorHandler(), Recovery())
	r.GET("/x", h)
	return r
}

func serve(t *testing.T, r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestErrorHandler_AppError(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		_ = c.Error(apperror.NewValidation("quantity must be a non-negative integer").WithDetail("field", "quantity"))
		c.Abort()
	})

	rec, body := serve(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperror.CodeValidation, body["code"])
	assert.Equal(t, "quantity must be a non-negative integer", body["message"])
	assert.Equal(t, "quantity", body["details"].(map[string]any)["field"])
}

func TestErrorHandler_HidesStorageDetails(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		_ = c.Error(apperror.NewDatabase("update product", errors.New("relation \"products\" does not exist")))
		c.Abort()
	})

	rec, body := serve(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperror.CodeDatabase, body["code"])
	assert.Empty(t, body["details"])
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestErrorHandler_PlainError(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Abort()
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	rec, body := serve(t, r, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperror.CodeInternal, body["code"])
	assert.Equal(t, "req-1", body["details"].(map[string]any)["request_id"])
}

func TestRecovery_PanicBecomesInternalError(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		panic("nil map")
	})

	rec, body := serve(t, r, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperror.CodeInternal, body["code"])
	assert.NotContains(t, rec.Body.String(), "nil map")
}

func TestTrace_EchoesAndGeneratesIDs(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderTraceID, "trace-1")
	rec, _ := serve(t, r, req)

	assert.Equal(t, "trace-1", rec.Header().Get(HeaderTraceID))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}
