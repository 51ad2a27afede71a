package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func newEngine(buf *bytes.Buffer, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFrom(c.Request.Context()))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func serve(r http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	r := newEngine(nil, RequestID())

	w := serve(r, "/ok", nil)
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	w = serve(r, "/ok", http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = serve(r, "/ok", http.Header{RequestIDHeader: {"bad id\n"}})
	assert.NotEqual(t, "bad id\n", w.Header().Get(RequestIDHeader))
}

func TestRecoveryReturnsJSON500(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := newEngine(&buf, RequestID(), Recovery(logger))

	w := serve(r, "/panic", http.Header{RequestIDHeader: {"req-9"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), `"request_id":"req-9"`)
}

func TestLoggingWritesAccessLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := newEngine(&buf, RequestID(), Logging(logger))

	serve(r, "/ok", http.Header{RequestIDHeader: {"req-1"}})
	assert.Contains(t, buf.String(), `"path":"/ok"`)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}

func TestRateLimit(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	denied := &stubLimiter{allow: false}
	w := serve(newEngine(nil, RateLimit(denied, logger)), "/ok", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "error")
	require.Len(t, denied.keys, 1)
	assert.NotEmpty(t, denied.keys[0])

	allowed := &stubLimiter{allow: true}
	w = serve(newEngine(nil, RateLimit(allowed, logger)), "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	broken := &stubLimiter{err: errors.New("redis down")}
	w = serve(newEngine(nil, RateLimit(broken, logger)), "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code, "limiter errors fail open")
}
