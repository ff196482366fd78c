package dto

import (
	"time"

	"github.com/spacekeep/capture-service/internal/domain"
)

// SpaceCreateRequest creates a new space.
type SpaceCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// SpaceResponse is the outward form of a space.
type SpaceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ItemCount int64     `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewSpaceResponse(space *domain.Space) *SpaceResponse {
	return &SpaceResponse{
		ID:        space.ID,
		Name:      space.Name,
		ItemCount: space.ItemCount,
		CreatedAt: space.CreatedAt,
	}
}

func NewSpaceListResponse(spaces []*domain.Space) []*SpaceResponse {
	out := make([]*SpaceResponse, 0, len(spaces))
	for _, space := range spaces {
		out = append(out, NewSpaceResponse(space))
	}
	return out
}
