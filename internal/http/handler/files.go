package handler

import (
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ondrasimku/filedrop/internal/domain"
	"github.com/ondrasimku/filedrop/internal/storage"
)

const DownloadPath = "/api/files/download/"

type FileHandler struct {
	storage       storage.Storage
	maxSize       int64
	publicBaseURL string
	logger        *slog.Logger
}

func NewFileHandler(storage storage.Storage, maxSize int64, publicBaseURL string, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		storage:       storage,
		maxSize:       maxSize,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

func (h *FileHandler) Upload(c *gin.Context) {
	logger := requestLogger(c, h.logger)

	file, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Failed to get file from form", "error", err)
		internalError(c, "No file provided")
		return
	}

	if h.maxSize > 0 && file.Size > h.maxSize {
		logger.Warn("File too large", "fileName", file.Filename, "size", file.Size, "max", h.maxSize)
		internalError(c, "File too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", "error", err)
		internalError(c, "Failed to process file")
		return
	}
	defer src.Close()

	stored, err := h.storage.Save(c.Request.Context(), src, file.Filename)
	if err != nil {
		logger.Error("Failed to save file", "fileName", file.Filename, "error", err)
		internalError(c, "Failed to save file")
		return
	}

	logger.Info("File uploaded successfully", "fileName", stored.Name, "size", stored.Size)
	c.JSON(http.StatusOK, h.toResponse(stored, h.baseURL(c)))
}

func (h *FileHandler) Download(c *gin.Context) {
	logger := requestLogger(c, h.logger)
	name := c.Param("fileName")

	file, info, err := h.storage.Open(c.Request.Context(), name)
	if err != nil {
		logger.Warn("File not found", "fileName", name, "error", err)
		internalError(c, "File not found")
		return
	}
	defer file.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = storage.DefaultContentType
	}

	c.DataFromReader(http.StatusOK, int64(info.Size), contentType, file, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": info.Name}),
	})
}

func (h *FileHandler) List(c *gin.Context) {
	logger := requestLogger(c, h.logger)

	files, err := h.storage.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list files", "error", err)
		internalError(c, "Failed to list files")
		return
	}

	response := make([]FileResponse, 0, len(files))
	for _, f := range files {
		response = append(response, h.toResponse(f, h.publicBaseURL))
	}

	c.JSON(http.StatusOK, response)
}

func (h *FileHandler) toResponse(f domain.StoredFile, base string) FileResponse {
	return FileResponse{
		FileName: f.Name,
		URI:      DownloadURI(base, f.Name),
		Size:     f.Size,
	}
}

// baseURL is the configured public URL, or the one the client used to
// reach us.
func (h *FileHandler) baseURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + c.Request.Host
}

// DownloadURI returns the download location of name. An empty base yields
// a path relative to the server root.
func DownloadURI(base, name string) string {
	return base + DownloadPath + url.PathEscape(name)
}
