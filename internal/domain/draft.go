package domain

// DraftStatus is the lifecycle state of an in-progress edit buffer.
type DraftStatus string

const (
	// DraftClean fields match the persisted baseline.
	DraftClean DraftStatus = "clean"
	// DraftDirty an edit moved the fields away from the baseline.
	DraftDirty DraftStatus = "dirty"
	// DraftDebouncing the quiet-period timer is armed. Functionally an
	// alias of DraftDirty; reported separately so the UI can show the
	// pending state.
	DraftDebouncing DraftStatus = "debouncing"
	// DraftSaving a store write is in flight.
	DraftSaving DraftStatus = "saving"
	// DraftSaved the last write succeeded and no newer edits exist.
	DraftSaved DraftStatus = "saved"
	// DraftFailed the last write failed; the buffer is intact for retry.
	DraftFailed DraftStatus = "failed"
)

// EditableDraft is a snapshot of the edit state for one open item.
type EditableDraft struct {
	ItemID   string
	Fields   map[string]string
	Baseline map[string]string
	Status   DraftStatus
	// FailReason carries the human-readable reason when Status is
	// DraftFailed, empty otherwise.
	FailReason string
}

// IsDirty reports whether the draft holds edits not yet persisted.
func (d *EditableDraft) IsDirty() bool {
	return !FieldsEqual(d.Fields, d.Baseline)
}
