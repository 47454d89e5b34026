package domain

// ChangeTracker records which product fields a patch actually modified, in
// the order they were marked. The Spanner repository uses it to write only
// the changed columns and catalog events use it to describe the update.
type ChangeTracker struct {
	order []string
	dirty map[string]struct{}
}

// NewChangeTracker creates an empty tracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{dirty: make(map[string]struct{})}
}

// MarkDirty marks a field as modified. Marking twice is a no-op.
func (ct *ChangeTracker) MarkDirty(field string) {
	if _, ok := ct.dirty[field]; ok {
		return
	}
	ct.dirty[field] = struct{}{}
	ct.order = append(ct.order, field)
}

// Dirty checks if a specific field has been marked dirty.
func (ct *ChangeTracker) Dirty(field string) bool {
	if ct == nil {
		return false
	}
	_, ok := ct.dirty[field]
	return ok
}

// HasChanges returns true if any fields have been marked dirty.
func (ct *ChangeTracker) HasChanges() bool {
	return ct != nil && len(ct.order) > 0
}

// DirtyFields returns the modified fields in marking order.
func (ct *ChangeTracker) DirtyFields() []string {
	if ct == nil {
		return nil
	}
	out := make([]string, len(ct.order))
	copy(out, ct.order)
	return out
}
