package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgpai22/srtcheck/internal/config"
	"github.com/mgpai22/srtcheck/internal/logging"
)

const overlappingSRT = `1
00:00:01,000 --> 00:00:09,839
First.

2
00:00:09,519 --> 00:00:11,000
Second.
`

func testConfig() *config.Config {
	return &config.Config{
		Input: config.InputConfig{MaxBytes: 1024},
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			RateLimit:    config.RateLimitConfig{RPS: 100, Burst: 100},
			CORS:         config.CORSConfig{AllowedOrigins: []string{"*"}},
		},
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := NewServer(cfg, logging.NewNop(), "1.2.3")
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func do(s *Server, method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name           string
		contentType    string
		body           string
		expectedStatus int
		segments       float64
		overlaps       float64
	}{
		{
			name:           "plain text body",
			contentType:    "text/plain",
			body:           overlappingSRT,
			expectedStatus: http.StatusOK,
			segments:       2,
			overlaps:       1,
		},
		{
			name:           "json body",
			contentType:    "application/json",
			body:           `{"content": "1\n00:00:01,000 --> 00:00:02,000\nHi\n"}`,
			expectedStatus: http.StatusOK,
			segments:       1,
			overlaps:       0,
		},
		{
			name:           "empty body",
			contentType:    "text/plain",
			body:           "",
			expectedStatus: http.StatusOK,
			segments:       0,
			overlaps:       0,
		},
		{
			name:           "empty json body",
			contentType:    "application/json",
			body:           "",
			expectedStatus: http.StatusOK,
			segments:       0,
			overlaps:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(s, http.MethodPost, "/v1/analyze", tt.contentType, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			body := decode(t, w)
			assert.Equal(t, tt.segments, body["segment_count"])
			assert.Equal(t, tt.overlaps, body["overlap_count"])
		})
	}
}

func TestAnalyzeOverlapPayload(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := do(s, http.MethodPost, "/v1/analyze", "text/plain", overlappingSRT)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	overlaps := body["overlaps"].([]any)
	require.Len(t, overlaps, 1)

	o := overlaps[0].(map[string]any)
	assert.Equal(t, float64(1), o["first_index"])
	assert.Equal(t, float64(2), o["second_index"])
	assert.Equal(t, float64(320), o["overlap_duration_ms"])

	segments := body["segments"].([]any)
	first := segments[0].(map[string]any)
	assert.Equal(t, "00:00:01,000", first["start_label"])
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name           string
		contentType    string
		body           string
		expectedStatus int
	}{
		{"too large", "text/plain", strings.Repeat("a", 2048), http.StatusRequestEntityTooLarge},
		{"invalid utf-8", "text/plain", "1\n\xff\n", http.StatusBadRequest},
		{"invalid json", "application/json", "{not json", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(s, http.MethodPost, "/v1/analyze", tt.contentType, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, decode(t, w), "error")
		})
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RateLimit = config.RateLimitConfig{RPS: 1, Burst: 2}
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		w := do(s, http.MethodPost, "/v1/analyze", "text/plain", "")
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i)
	}

	w := do(s, http.MethodPost, "/v1/analyze", "text/plain", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// health is outside the limited group
	w = do(s, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := do(s, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	w = do(s, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "srtcheck", body["name"])
	assert.Equal(t, "1.2.3", body["version"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/v1/analyze", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestShutdownTwice(t *testing.T) {
	s := newTestServer(t, testConfig())

	require.NotPanics(t, func() {
		assert.NoError(t, s.Shutdown(context.Background()))
		assert.NoError(t, s.Shutdown(context.Background()))
	})
}
