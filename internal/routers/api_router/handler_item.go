package api_router

import (
	"time"

	"github.com/spacekeep/capture-service/internal/app"
	"github.com/spacekeep/capture-service/internal/coordinator"
	"github.com/spacekeep/capture-service/internal/domain"
	"github.com/spacekeep/capture-service/internal/dto"
	pkgapp "github.com/spacekeep/capture-service/pkg/app"
	"github.com/spacekeep/capture-service/pkg/code"
	apperrors "github.com/spacekeep/capture-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ItemHandler serves item CRUD plus the reversible deletion flow. Items
// with a pending deletion are hidden from every read path while their
// grace window runs.
type ItemHandler struct {
	*Handler
}

func NewItemHandler(a *app.App) *ItemHandler {
	return &ItemHandler{Handler: NewHandler(a)}
}

// Create adds an item to a space and bumps the space counter.
func (h *ItemHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ItemCreateRequest{}
	if valid, errs := pkgapp.BindAndValid(c, params); !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	item := &domain.Item{
		SpaceID: params.SpaceID,
		Kind:    domain.ItemKind(params.Kind),
		Title:   params.Title,
		Body:    params.Body,
		Due:     params.Due,
		Tags:    params.Tags,
	}
	created, err := h.App.ItemService.NewItem(c.Request.Context(), item)
	if err != nil {
		h.logError("ItemHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewItemResponse(created)))
}

// Get returns a single item. A pending-deletion item is reported as not
// found: it left the working set the moment its deletion was confirmed.
func (h *ItemHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	id := c.Param("id")
	if h.App.Deletions.IsPending(id) {
		response.ToResponse(code.ErrorItemNotFound)
		return
	}
	item, err := h.App.ItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logError("ItemHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if item == nil {
		response.ToResponse(code.ErrorItemNotFound)
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewItemResponse(item)))
}

// List returns the items of a space, minus those awaiting deletion.
func (h *ItemHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	spaceID := c.Query("spaceId")
	if spaceID == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("spaceId is required"))
		return
	}
	items, err := h.App.ItemService.ListBySpace(c.Request.Context(), spaceID)
	if err != nil {
		h.logError("ItemHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	visible := make([]*domain.Item, 0, len(items))
	for _, item := range items {
		if h.App.Deletions.IsPending(item.ID) {
			continue
		}
		visible = append(visible, item)
	}
	response.ToResponse(code.Success.WithData(dto.NewItemListResponse(visible)))
}

// Delete starts the reversible deletion of an item. The item vanishes
// from the working set at once; the store commit runs when the grace
// window elapses without an undo.
func (h *ItemHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	id := c.Param("id")
	if h.App.Deletions.IsPending(id) {
		response.ToResponse(code.ErrorDeletePending)
		return
	}
	item, err := h.App.ItemService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logError("ItemHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if item == nil {
		response.ToResponse(code.ErrorItemNotFound)
		return
	}

	// Drop any open draft first so no flush targets the gone item.
	h.App.Sessions.DiscardItem(id)

	intent, err := h.App.Deletions.Delete(item)
	if err != nil {
		if errors.Is(err, coordinator.ErrDeletePending) {
			response.ToResponse(code.ErrorDeletePending)
			return
		}
		h.logError("ItemHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponse(code.Success.WithData(&dto.DeletionResponse{
		ItemID:      id,
		Status:      string(intent.Status),
		RemainingMs: intent.Remaining(time.Now()).Milliseconds(),
	}))
}

// Undo cancels a pending deletion. Undoing after the grace window
// elapsed is a no-op reported as committed.
func (h *ItemHandler) Undo(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	id := c.Param("id")
	restored, err := h.App.Deletions.Undo(c.Request.Context(), id)
	if err != nil {
		h.logError("ItemHandler.Undo", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if restored == nil {
		h.App.Logger().Info("undo had no pending deletion", zap.String("itemId", id))
		response.ToResponse(code.Success.WithData(&dto.DeletionResponse{
			ItemID: id,
			Status: string(domain.IntentCommitted),
		}))
		return
	}
	response.ToResponse(code.Success.WithData(dto.NewItemResponse(restored)))
}
