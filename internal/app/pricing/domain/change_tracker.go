package domain

// ChangeTracker records which parts of a PriceEntry were modified since it was
// loaded, so repositories can write only those columns.
type ChangeTracker struct {
	dirtyFields map[string]bool
}

// NewChangeTracker creates an empty ChangeTracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		dirtyFields: make(map[string]bool),
	}
}

func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirtyFields[field] = true
}

func (ct *ChangeTracker) Dirty(field string) bool {
	return ct.dirtyFields[field]
}

// Clear is called by repositories after a successful save.
func (ct *ChangeTracker) Clear() {
	ct.dirtyFields = make(map[string]bool)
}

func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirtyFields) > 0
}

func (ct *ChangeTracker) clone() *ChangeTracker {
	c := NewChangeTracker()
	for field := range ct.dirtyFields {
		c.dirtyFields[field] = true
	}
	return c
}
