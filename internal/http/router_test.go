package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ondrasimku/filedrop/internal/config"
	"github.com/ondrasimku/filedrop/internal/http/handler"
	"github.com/ondrasimku/filedrop/internal/storage/local"
)

func newTestRouter(t *testing.T, logs io.Writer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.UploadDir = filepath.Join(t.TempDir(), "uploads")

	s, err := local.NewLocalStorage(cfg.UploadDir, cfg.MaxFileSize)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	router, err := NewRouter(s, cfg, "test", slog.New(slog.NewTextHandler(logs, nil)))
	require.NoError(t, err)
	return router
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t, io.Discard)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "hello.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var files []handler.FileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	require.Len(t, files, 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, files[0].URI, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestID_Generated(t *testing.T) {
	router := newTestRouter(t, io.Discard)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/files", nil))

	rid := rec.Header().Get("X-Request-Id")
	_, err := uuid.Parse(rid)
	assert.NoError(t, err, "request id %q", rid)
}

func TestRequestID_Propagated(t *testing.T) {
	var logs bytes.Buffer
	router := newTestRouter(t, &logs)

	req := httptest.NewRequest(http.MethodGet, "/api/files/download/missing.txt", nil)
	req.Header.Set("X-Request-Id", "client-supplied-id")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "client-supplied-id", rec.Header().Get("X-Request-Id"))
	assert.Contains(t, logs.String(), "requestId=client-supplied-id")
	assert.Contains(t, logs.String(), "status=500")
}
