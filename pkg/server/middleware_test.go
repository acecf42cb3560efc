package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer(t)
	handler := s.requestIDMiddleware(okHandler)

	t.Run("generates when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		id := rec.Header().Get("X-Request-Id")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("echoes valid id", func(t *testing.T) {
		given := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", given)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, given, rec.Header().Get("X-Request-Id"))
	})

	t.Run("replaces malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "not-a-uuid")
		rec := httptest.NewRecorder()
		handler(rec, req)

		id := rec.Header().Get("X-Request-Id")
		assert.NotEqual(t, "not-a-uuid", id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := NewConfig()
	cfg.RateLimit = 1
	cfg.RateLimitBurst = 1
	s := New(cfg, testCollection())
	handler := s.withMiddleware(okHandler)

	first := httptest.NewRecorder()
	handler(first, httptest.NewRequest(http.MethodGet, "/v1/plans", nil))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	// Burst is exhausted; the next request is rejected.
	second := httptest.NewRecorder()
	handler(second, httptest.NewRequest(http.MethodGet, "/v1/plans", nil))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeRateLimitExceeded, resp.Code)
	assert.True(t, resp.Retryable)
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newTestServer(t)
	handler := s.panicRecoveryMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("handler bug")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/plans", nil)

	assert.NotPanics(t, func() {
		handler(rec, req)
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeInternalError, resp.Code)
}

func TestResponseWriter_TracksStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK) // ignored

	assert.Equal(t, http.StatusTeapot, rw.Status())
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	_, err := rw.Write([]byte("body"))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rw.Status())
}
