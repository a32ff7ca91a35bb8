package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"worldvoice.in/web/internal/observability"
)

func TestLoggerEmitsRequestEntry(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	var fromCtx *zap.Logger
	h := chiMid.RequestID(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = observability.FromContext(r.Context())
		if _, ok := RequestID(r.Context()); !ok {
			t.Errorf("expected request id in context")
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 203.0.113.9")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, fromCtx)
	entries := logs.All()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "request", e.Message)
	assert.Equal(t, zapcore.WarnLevel, e.Level)
	fields := e.ContextMap()
	assert.Equal(t, "/nope", fields["path"])
	assert.EqualValues(t, http.StatusNotFound, fields["status"])
	assert.EqualValues(t, len("missing"), fields["bytes"])
	assert.Equal(t, "203.0.113.9", fields["remote_ip"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestLoggerRecordsImplicitAndFirstStatus(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		status  int
		bytes   int
		level   zapcore.Level
	}{
		{
			name:    "write without header",
			handler: func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) },
			status:  http.StatusOK,
			bytes:   2,
			level:   zapcore.InfoLevel,
		},
		{
			name: "late header ignored",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("ok"))
				w.WriteHeader(http.StatusInternalServerError)
			},
			status: http.StatusOK,
			bytes:  2,
			level:  zapcore.InfoLevel,
		},
		{
			name:    "no write at all",
			handler: func(http.ResponseWriter, *http.Request) {},
			status:  http.StatusOK,
			level:   zapcore.InfoLevel,
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			status:  http.StatusInternalServerError,
			level:   zapcore.ErrorLevel,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			h := Logger(zap.New(core))(tc.handler)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

			require.Equal(t, tc.status, rec.Code)
			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tc.level, entries[0].Level)
			fields := entries[0].ContextMap()
			assert.EqualValues(t, tc.status, fields["status"])
			assert.EqualValues(t, tc.bytes, fields["bytes"])
		})
	}
}

func TestAssetsWithCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.css"), []byte("body{}"), 0o644))

	h := http.StripPrefix("/assets", AssetsWithCache(dir, 0))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
	assert.Equal(t, "public, max-age=604800, stale-while-revalidate=86400", rec.Header().Get("Cache-Control"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/assets/site.css", nil)
	req.Header.Set("If-None-Match", `"other", `+etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/missing.css", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
