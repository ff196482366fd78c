package api_router

import (
	"github.com/spacekeep/capture-service/internal/app"
	pkgapp "github.com/spacekeep/capture-service/pkg/app"
	"github.com/spacekeep/capture-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	*Handler
}

func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

func (h *HealthHandler) Health(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(gin.H{
		"name":             app.Name,
		"version":          app.Version,
		"pendingDeletions": h.App.Deletions.PendingCount(),
		"openSessions":     h.App.Sessions.Count(),
	}))
}
