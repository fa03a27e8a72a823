package v1

import (
	"context"
	"net/http"

	"placementhub-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

// HealthChecker probes the service dependencies.
type HealthChecker interface {
	Check(ctx context.Context) (bool, map[string]string)
}

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(public *gin.RouterGroup, checker HealthChecker) {
	handler := &HealthHandler{checker: checker}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Reports the database and cache reachability
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.checker == nil {
		response.Success(c, http.StatusOK, "System operational", gin.H{"status": "ok"})
		return
	}

	healthy, report := h.checker.Check(c.Request.Context())
	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "System degraded", report)
		return
	}
	response.Success(c, http.StatusOK, "System operational", report)
}
