package api_router

import (
	"github.com/spacekeep/capture-service/internal/app"
	"github.com/spacekeep/capture-service/internal/coordinator"
	"github.com/spacekeep/capture-service/internal/dto"
	pkgapp "github.com/spacekeep/capture-service/pkg/app"
	"github.com/spacekeep/capture-service/pkg/code"
	apperrors "github.com/spacekeep/capture-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// DraftHandler serves the edit-session and draft autosave flow. A
// client opens a session for its editing surface, pushes field edits as
// they happen and polls draft status; the coordinator does the
// debouncing and the store writes.
type DraftHandler struct {
	*Handler
}

func NewDraftHandler(a *app.App) *DraftHandler {
	return &DraftHandler{Handler: NewHandler(a)}
}

// SessionOpen creates an edit session.
func (h *DraftHandler) SessionOpen(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	s := h.App.Sessions.Open()
	response.ToResponse(code.Success.WithData(&dto.SessionResponse{SessionID: s.ID()}))
}

// SessionClose tears a session down, flushing savable dirty drafts.
// Pending deletion countdowns are unaffected.
func (h *DraftHandler) SessionClose(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	if !h.App.Sessions.Close(c.Param("sid")) {
		response.ToResponse(code.ErrorSessionNotFound)
		return
	}
	response.ToResponse(code.Success)
}

// DraftOpen opens a draft for an item inside a session.
func (h *DraftHandler) DraftOpen(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DraftOpenRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}
	s, ok := h.App.Sessions.Get(c.Param("sid"))
	if !ok {
		response.ToResponse(code.ErrorSessionNotFound)
		return
	}
	if h.App.Deletions.IsPending(params.ItemID) {
		response.ToResponse(code.ErrorItemNotFound)
		return
	}
	item, err := h.App.ItemService.GetByID(c.Request.Context(), params.ItemID)
	if err != nil {
		h.logError("DraftHandler.DraftOpen", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if item == nil {
		response.ToResponse(code.ErrorItemNotFound)
		return
	}

	d, err := s.Open(item)
	if err != nil {
		if errors.Is(err, coordinator.ErrSessionClosed) {
			response.ToResponse(code.ErrorSessionClosed)
			return
		}
		h.logError("DraftHandler.DraftOpen", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewDraftStatusResponse(d.Draft())))
}

// DraftEdit pushes one burst of field edits into an open draft.
func (h *DraftHandler) DraftEdit(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.DraftEditRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}
	d, ok := h.draft(c)
	if !ok {
		return
	}
	if err := d.EditFields(params.Fields); err != nil {
		if errors.Is(err, coordinator.ErrSessionClosed) {
			response.ToResponse(code.ErrorSessionClosed)
			return
		}
		h.logError("DraftHandler.DraftEdit", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewDraftStatusResponse(d.Draft())))
}

// DraftSave persists the draft immediately, the "save now" shortcut.
func (h *DraftHandler) DraftSave(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	d, ok := h.draft(c)
	if !ok {
		return
	}
	if err := d.SaveNow(); err != nil {
		switch {
		case errors.Is(err, coordinator.ErrNotSavable):
			response.ToResponse(code.ErrorDraftNotSavable)
		case errors.Is(err, coordinator.ErrSessionClosed):
			response.ToResponse(code.ErrorSessionClosed)
		default:
			h.logError("DraftHandler.DraftSave", err)
			apperrors.ErrorResponse(c, err)
		}
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewDraftStatusResponse(d.Draft())))
}

// DraftStatus reports the draft state machine.
func (h *DraftHandler) DraftStatus(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	d, ok := h.draft(c)
	if !ok {
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewDraftStatusResponse(d.Draft())))
}

// draft resolves the session and draft from the route params, writing
// the error response itself when either is missing.
func (h *DraftHandler) draft(c *gin.Context) (*coordinator.DraftCoordinator, bool) {
	response := pkgapp.NewResponse(c)
	s, ok := h.App.Sessions.Get(c.Param("sid"))
	if !ok {
		response.ToResponse(code.ErrorSessionNotFound)
		return nil, false
	}
	d, ok := s.Draft(c.Param("itemId"))
	if !ok {
		response.ToResponse(code.ErrorDraftNotFound)
		return nil, false
	}
	return d, true
}
