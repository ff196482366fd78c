// Package dto defines the request and response shapes of the API.
package dto

import (
	"time"

	"github.com/spacekeep/capture-service/internal/domain"
)

// ItemCreateRequest creates a new item in a space.
type ItemCreateRequest struct {
	SpaceID string   `json:"spaceId" binding:"required"`
	Kind    string   `json:"kind" binding:"required,oneof=task note list"`
	Title   string   `json:"title" binding:"required"`
	Body    string   `json:"body"`
	Due     int64    `json:"due"`
	Tags    []string `json:"tags"`
}

// ItemResponse is the outward form of an item.
type ItemResponse struct {
	ID        string    `json:"id"`
	SpaceID   string    `json:"spaceId"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Due       int64     `json:"due"`
	Tags      []string  `json:"tags"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewItemResponse maps a domain item.
func NewItemResponse(item *domain.Item) *ItemResponse {
	return &ItemResponse{
		ID:        item.ID,
		SpaceID:   item.SpaceID,
		Kind:      string(item.Kind),
		Title:     item.Title,
		Body:      item.Body,
		Due:       item.Due,
		Tags:      item.Tags,
		Done:      item.Done,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// NewItemListResponse maps a slice of domain items.
func NewItemListResponse(items []*domain.Item) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return out
}

// DeletionResponse reports a pending or resolved deletion.
type DeletionResponse struct {
	ItemID      string `json:"itemId"`
	Status      string `json:"status"`
	RemainingMs int64  `json:"remainingMs,omitempty"`
}
