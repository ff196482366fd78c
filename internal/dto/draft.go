package dto

import "github.com/spacekeep/capture-service/internal/domain"

// SessionResponse identifies an edit session.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// DraftOpenRequest opens a draft for an item inside a session.
type DraftOpenRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// DraftEditRequest pushes one burst of field edits into a draft.
type DraftEditRequest struct {
	Fields map[string]string `json:"fields" binding:"required"`
}

// DraftStatusResponse reports the draft state machine to the client.
type DraftStatusResponse struct {
	ItemID     string            `json:"itemId"`
	Status     string            `json:"status"`
	FailReason string            `json:"failReason,omitempty"`
	Dirty      bool              `json:"dirty"`
	Fields     map[string]string `json:"fields"`
}

// NewDraftStatusResponse maps a draft snapshot.
func NewDraftStatusResponse(d *domain.EditableDraft) *DraftStatusResponse {
	return &DraftStatusResponse{
		ItemID:     d.ItemID,
		Status:     string(d.Status),
		FailReason: d.FailReason,
		Dirty:      d.IsDirty(),
		Fields:     d.Fields,
	}
}
