package coordinator

import (
	"time"

	"github.com/spacekeep/capture-service/internal/domain"

	"go.uber.org/zap"
)

// Signals is the outward contract to the presentation layer. All calls
// are fire-and-forget status notifications; implementations must not
// block the caller for long and must not call back into the
// coordinators.
type Signals interface {
	// DraftStatusChanged reports every draft state transition. reason is
	// non-empty only for DraftFailed.
	DraftStatusChanged(itemID string, status domain.DraftStatus, reason string)

	// DeletionPending reports that an item entered the undo grace window.
	DeletionPending(itemID string, remaining time.Duration)

	// DeletionCommitted reports that a deletion became permanent.
	DeletionCommitted(itemID string)

	// DeletionCancelled reports that an undo restored the item.
	DeletionCancelled(itemID string)
}

// NopSignals discards every notification.
type NopSignals struct{}

func (NopSignals) DraftStatusChanged(string, domain.DraftStatus, string) {}
func (NopSignals) DeletionPending(string, time.Duration)                 {}
func (NopSignals) DeletionCommitted(string)                              {}
func (NopSignals) DeletionCancelled(string)                              {}

// LogSignals writes every notification to the service log. Used by the
// HTTP surface, where clients poll status instead of receiving pushes.
type LogSignals struct {
	Logger *zap.Logger
}

func (s LogSignals) DraftStatusChanged(itemID string, status domain.DraftStatus, reason string) {
	if reason != "" {
		s.Logger.Warn("draft status changed",
			zap.String("itemId", itemID),
			zap.String("status", string(status)),
			zap.String("reason", reason))
		return
	}
	s.Logger.Debug("draft status changed",
		zap.String("itemId", itemID),
		zap.String("status", string(status)))
}

func (s LogSignals) DeletionPending(itemID string, remaining time.Duration) {
	s.Logger.Info("deletion pending",
		zap.String("itemId", itemID),
		zap.Duration("remaining", remaining))
}

func (s LogSignals) DeletionCommitted(itemID string) {
	s.Logger.Info("deletion committed", zap.String("itemId", itemID))
}

func (s LogSignals) DeletionCancelled(itemID string) {
	s.Logger.Info("deletion cancelled", zap.String("itemId", itemID))
}

// MultiSignals fans every notification out to each receiver in order.
type MultiSignals []Signals

func (m MultiSignals) DraftStatusChanged(itemID string, status domain.DraftStatus, reason string) {
	for _, s := range m {
		s.DraftStatusChanged(itemID, status, reason)
	}
}

func (m MultiSignals) DeletionPending(itemID string, remaining time.Duration) {
	for _, s := range m {
		s.DeletionPending(itemID, remaining)
	}
}

func (m MultiSignals) DeletionCommitted(itemID string) {
	for _, s := range m {
		s.DeletionCommitted(itemID)
	}
}

func (m MultiSignals) DeletionCancelled(itemID string) {
	for _, s := range m {
		s.DeletionCancelled(itemID)
	}
}

var (
	_ Signals = NopSignals{}
	_ Signals = LogSignals{}
	_ Signals = MultiSignals{}
)
