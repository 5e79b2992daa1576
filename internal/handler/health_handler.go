package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker はヘルスチェック対象の依存サービス
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler GET /api/health
type HealthHandler struct {
	service  string
	checkers map[string]HealthChecker
}

func NewHealthHandler(service string, checkers map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{
		service:  service,
		checkers: checkers,
	}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	deps := gin.H{}

	for name, checker := range h.checkers {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		err := checker.HealthCheck(ctx)
		cancel()
		if err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
			deps[name] = err.Error()
			continue
		}
		deps[name] = "ok"
	}

	c.JSON(code, gin.H{
		"status":       status,
		"service":      h.service,
		"dependencies": deps,
	})
}
