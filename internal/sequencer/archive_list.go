package sequencer

// ArchiveList holds locked batches, most recent first. Single owner, not
// safe for concurrent use.
type ArchiveList struct {
	batches []Batch
}

// NewArchiveList returns an empty list.
func NewArchiveList() *ArchiveList {
	return &ArchiveList{}
}

// Add puts the batch at the front of the list.
func (l *ArchiveList) Add(b Batch) {
	l.batches = append([]Batch{b}, l.batches...)
}

// Remove deletes the batch with the given ID and reports whether it existed.
func (l *ArchiveList) Remove(id string) bool {
	for i, b := range l.batches {
		if b.ID == id {
			l.batches = append(l.batches[:i], l.batches[i+1:]...)
			return true
		}
	}
	return false
}

// Get looks a batch up by ID.
func (l *ArchiveList) Get(id string) (Batch, bool) {
	for _, b := range l.batches {
		if b.ID == id {
			return b, true
		}
	}
	return Batch{}, false
}

// Batches returns a copy of the list, most recent first.
func (l *ArchiveList) Batches() []Batch {
	out := make([]Batch, len(l.batches))
	copy(out, l.batches)
	return out
}

// Len returns the number of batches.
func (l *ArchiveList) Len() int {
	return len(l.batches)
}

// Reset drops every batch. Callers confirm with the operator first.
func (l *ArchiveList) Reset() {
	l.batches = nil
}
