package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hellofresh/health-go/v5"
)

// Pinger reports whether a dependency is usable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	health *health.Health
}

func NewHealthHandler(storage Pinger, version string) (*HealthHandler, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "filedrop",
			Version: version,
		}),
		health.WithChecks(health.Config{
			Name:    "storage",
			Timeout: time.Second,
			Check:   storage.Ping,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health checker: %w", err)
	}

	return &HealthHandler{health: h}, nil
}

func (h *HealthHandler) Health(c *gin.Context) {
	h.health.HandlerFunc(c.Writer, c.Request)
}
