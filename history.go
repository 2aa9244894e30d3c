package frameshow

import "bytes"

// History is the undo stack of whole-scene snapshots, ordered oldest to
// newest. Entries are the canonical JSON encoding of the scene, so equal
// scenes compare equal byte for byte. There is no redo.
type History struct {
	// MaxDepth caps the number of entries; the oldest are dropped first.
	// Zero means unbounded.
	MaxDepth int

	entries [][]byte
}

// NewHistory creates an empty history holding at most maxDepth entries.
func NewHistory(maxDepth int) *History {
	return &History{MaxDepth: maxDepth}
}

// Save pushes the current state of s unless it equals the top entry. It
// reports whether an entry was pushed. Call it at settle points such as
// pointer-up and key-up, not every tick.
func (h *History) Save(s *Scene) (bool, error) {
	data, err := s.MarshalJSON()
	if err != nil {
		return false, &SerializationError{Op: "save history", Err: err}
	}
	if n := len(h.entries); n > 0 && bytes.Equal(h.entries[n-1], data) {
		return false, nil
	}
	h.entries = append(h.entries, data)
	if h.MaxDepth > 0 && len(h.entries) > h.MaxDepth {
		drop := len(h.entries) - h.MaxDepth
		clear(h.entries[:drop])
		h.entries = h.entries[drop:]
	}
	return true, nil
}

// Undo discards the top entry and restores s from the new top. With one
// entry or fewer it does nothing and reports false. The discarded state
// cannot be recovered.
func (h *History) Undo(s *Scene) (bool, error) {
	if len(h.entries) <= 1 {
		return false, nil
	}
	n := len(h.entries)
	prev := h.entries[n-2]
	if err := s.Load(prev); err != nil {
		return false, err
	}
	h.entries[n-1] = nil
	h.entries = h.entries[:n-1]
	return true, nil
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Top returns the newest entry, or nil when empty. The bytes MUST NOT be mutated.
func (h *History) Top() []byte {
	if len(h.entries) == 0 {
		return nil
	}
	return h.entries[len(h.entries)-1]
}

// Reset drops every entry.
func (h *History) Reset() {
	clear(h.entries)
	h.entries = h.entries[:0]
}
