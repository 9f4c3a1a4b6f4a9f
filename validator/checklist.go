package validator

import (
	"github.com/fogpack/fogpack/xcodec"
)

// ChecklistEntry is one deferred obligation: the referenced document must,
// once fetched, validate successfully under every schema in Schemas (an
// empty list means "any schema is acceptable") and then satisfy Link.
type ChecklistEntry struct {
	Schemas []xcodec.Hash
	Link    Validator
}

// Checklist accumulates hash references encountered while validating a
// value tree, per §4.4's state machine: pending entries become discharged
// once a caller fetches and validates the referenced document.
type Checklist struct {
	pending    map[xcodec.Hash][]ChecklistEntry
	discharged map[xcodec.Hash]bool
}

// NewChecklist returns an empty Checklist.
func NewChecklist() *Checklist {
	return &Checklist{
		pending:    make(map[xcodec.Hash][]ChecklistEntry),
		discharged: make(map[xcodec.Hash]bool),
	}
}

// Add registers a deferred obligation for h. Adding for an already
// discharged hash is a no-op matching "entries may be discharged in any
// order" — a hash proven valid earlier need not be re-verified.
func (c *Checklist) Add(h xcodec.Hash, entry ChecklistEntry) {
	if c.discharged[h] {
		return
	}

	c.pending[h] = append(c.pending[h], entry)
}

// Pending returns the hashes that still have undischarged obligations.
func (c *Checklist) Pending() []xcodec.Hash {
	out := make([]xcodec.Hash, 0, len(c.pending))
	for h, entries := range c.pending {
		if len(entries) > 0 {
			out = append(out, h)
		}
	}

	return out
}

// EntriesFor returns the obligations registered against h.
func (c *Checklist) EntriesFor(h xcodec.Hash) []ChecklistEntry {
	return c.pending[h]
}

// Discharge marks h as resolved, clearing its pending entries. Callers
// invoke this after fetching the referenced document and validating it
// against every entry returned by EntriesFor.
func (c *Checklist) Discharge(h xcodec.Hash) {
	delete(c.pending, h)
	c.discharged[h] = true
}

// Complete reports whether every registered hash has been discharged, per
// §4.4 ("a completed validation requires zero remaining pending entries").
func (c *Checklist) Complete() bool {
	return len(c.Pending()) == 0
}
