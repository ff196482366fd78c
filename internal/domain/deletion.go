package domain

import "time"

// IntentStatus is the lifecycle state of a reversible deletion.
type IntentStatus string

const (
	// IntentPendingUndo the item is hidden and the grace timer is armed.
	IntentPendingUndo IntentStatus = "pending_undo"
	// IntentCommitted the grace period elapsed; the deletion is permanent.
	IntentCommitted IntentStatus = "committed"
	// IntentCancelled undo arrived before the deadline; the snapshot was
	// restored.
	IntentCancelled IntentStatus = "cancelled"
)

// DeletionIntent records one confirmed deletion while it is still
// reversible. The snapshot holds the complete prior item, identity
// included, so undo can recreate it exactly.
type DeletionIntent struct {
	ID       string
	ItemID   string
	SpaceID  string
	Snapshot *Item
	Status   IntentStatus
	Deadline time.Time
}

// Remaining returns the grace time left before the intent auto-commits.
// Zero once the deadline passed or the intent is no longer pending.
func (d *DeletionIntent) Remaining(now time.Time) time.Duration {
	if d.Status != IntentPendingUndo {
		return 0
	}
	if r := d.Deadline.Sub(now); r > 0 {
		return r
	}
	return 0
}
