package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/ondrasimku/filedrop/internal/config"
	"github.com/ondrasimku/filedrop/internal/http/handler"
	"github.com/ondrasimku/filedrop/internal/storage"
)

func NewRouter(storage storage.Storage, cfg *config.Config, version string, logger *slog.Logger) (*gin.Engine, error) {
	router := gin.New()
	router.Use(RequestID(), AccessLog(logger), gin.Recovery())

	healthHandler, err := handler.NewHealthHandler(storage, version)
	if err != nil {
		return nil, err
	}
	fileHandler := handler.NewFileHandler(storage, cfg.MaxFileSize, cfg.PublicBaseURL, logger)

	router.GET("/healthz", healthHandler.Health)

	fileRoutes := router.Group("/api/files")
	{
		fileRoutes.POST("", fileHandler.Upload)
		fileRoutes.GET("", fileHandler.List)
		fileRoutes.GET("/download/:fileName", fileHandler.Download)
	}

	return router, nil
}
