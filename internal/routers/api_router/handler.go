// Package api_router holds the HTTP handlers of the API surface.
package api_router

import (
	"github.com/spacekeep/capture-service/internal/app"

	"go.uber.org/zap"
)

// Handler is the shared base of every API handler, carrying the app
// container.
type Handler struct {
	App *app.App
}

func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

func (h *Handler) logError(method string, err error) {
	h.App.Logger().Error(method, zap.Error(err))
}
