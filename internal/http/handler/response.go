package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "requestId"

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// FileResponse is the wire form of a stored file.
type FileResponse struct {
	FileName string `json:"fileName"`
	URI      string `json:"uri"`
	Size     uint64 `json:"size"`
}

func requestLogger(c *gin.Context, logger *slog.Logger) *slog.Logger {
	if rid := c.GetString(RequestIDKey); rid != "" {
		return logger.With("requestId", rid)
	}
	return logger
}

// internalError is the only failure response the file endpoints produce.
func internalError(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error: msg,
	})
}
