package api_router

import (
	"github.com/spacekeep/capture-service/internal/app"
	"github.com/spacekeep/capture-service/internal/dto"
	pkgapp "github.com/spacekeep/capture-service/pkg/app"
	"github.com/spacekeep/capture-service/pkg/code"
	apperrors "github.com/spacekeep/capture-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SpaceHandler serves space CRUD and the aggregate item counts.
type SpaceHandler struct {
	*Handler
}

func NewSpaceHandler(a *app.App) *SpaceHandler {
	return &SpaceHandler{Handler: NewHandler(a)}
}

// Create adds a new space.
func (h *SpaceHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SpaceCreateRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	space, err := h.App.SpaceService.Create(c.Request.Context(), params.Name)
	if err != nil {
		h.logError("SpaceHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewSpaceResponse(space)))
}

// List returns all spaces with their item counters.
func (h *SpaceHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	spaces, err := h.App.SpaceService.List(c.Request.Context())
	if err != nil {
		h.logError("SpaceHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewSpaceListResponse(spaces)))
}

// Get returns a single space.
func (h *SpaceHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	space, err := h.App.SpaceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewSpaceResponse(space)))
}
