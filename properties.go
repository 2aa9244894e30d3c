package frameshow

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// PropertyStore holds the sparse per-frame snapshots of one object.
// A frame with no entry inherits from the nearest lower frame, so the store
// only grows when a frame is visited, copied or inserted.
type PropertyStore struct {
	frames map[int]Snapshot
}

// NewPropertyStore creates a store with a single entry at frame.
func NewPropertyStore(frame int, s Snapshot) *PropertyStore {
	ps := &PropertyStore{frames: make(map[int]Snapshot, 4)}
	ps.frames[frame] = s.Clone()
	return ps
}

// Get returns the snapshot at frame. When the frame has no entry, a copy of
// the nearest lower entry is returned. The result never aliases the store.
//
// The lookup costs O(entries), independent of how large frame is.
func (ps *PropertyStore) Get(frame int) (Snapshot, error) {
	if s, ok := ps.frames[frame]; ok && frame >= 1 {
		return s.Clone(), nil
	}
	best := 0
	for f := range ps.frames {
		if f <= frame && f > best {
			best = f
		}
	}
	if best < 1 {
		return Snapshot{}, &MissingBaselineError{Frame: frame}
	}
	return ps.frames[best].Clone(), nil
}

// Has reports whether frame has an explicit entry.
func (ps *PropertyStore) Has(frame int) bool {
	_, ok := ps.frames[frame]
	return ok
}

// Set overwrites the entry at frame.
func (ps *PropertyStore) Set(frame int, s Snapshot) {
	if ps.frames == nil {
		ps.frames = make(map[int]Snapshot, 4)
	}
	ps.frames[frame] = s.Clone()
}

// Update applies fn to the snapshot at frame, materializing it first.
func (ps *PropertyStore) Update(frame int, fn func(*Snapshot)) error {
	s, err := ps.Get(frame)
	if err != nil {
		return err
	}
	fn(&s)
	ps.frames[frame] = s
	return nil
}

// Copy duplicates the snapshot at from into to. A copy made towards an
// earlier frame starts fully transparent so that the object fades in when
// playback moves forward again.
func (ps *PropertyStore) Copy(from, to int) error {
	s, err := ps.Get(from)
	if err != nil {
		return err
	}
	if to < from {
		s.C.A = 0
	}
	ps.frames[to] = s
	return nil
}

// Materialize writes the inherited snapshot at frame if it has no entry.
func (ps *PropertyStore) Materialize(frame int) error {
	if ps.Has(frame) {
		return nil
	}
	s, err := ps.Get(frame)
	if err != nil {
		return err
	}
	ps.frames[frame] = s
	return nil
}

// Prepare makes sure both endpoints of a transition exist. The target, if
// missing, is copied from the source frame (see Copy for the alpha rule).
func (ps *PropertyStore) Prepare(from, to int) error {
	if err := ps.Materialize(from); err != nil {
		return err
	}
	if ps.Has(to) {
		return nil
	}
	return ps.Copy(from, to)
}

// ShiftFrom moves every entry at a frame >= at one frame later. Frames are
// processed from the highest down so no entry is overwritten before it moves.
func (ps *PropertyStore) ShiftFrom(at int) {
	frames := ps.Frames()
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		if f < at {
			break
		}
		ps.frames[f+1] = ps.frames[f]
		delete(ps.frames, f)
	}
}

// InsertAt opens a new frame at position at. Entries at or after at move one
// frame later and the new frame keeps the value the old frame at had.
func (ps *PropertyStore) InsertAt(at int) {
	had := ps.Has(at)
	ps.ShiftFrom(at)
	if had {
		ps.frames[at] = ps.frames[at+1].Clone()
	}
}

// Delete removes the explicit entry at frame. Frame 1 cannot be removed.
func (ps *PropertyStore) Delete(frame int) {
	if frame > 1 {
		delete(ps.frames, frame)
	}
}

// Frames returns the explicit frame numbers in ascending order.
func (ps *PropertyStore) Frames() []int {
	out := make([]int, 0, len(ps.frames))
	for f := range ps.frames {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of explicit entries.
func (ps *PropertyStore) Len() int {
	return len(ps.frames)
}

// Validate checks the baseline invariant.
func (ps *PropertyStore) Validate() error {
	if !ps.Has(1) {
		return &MissingBaselineError{Frame: 1}
	}
	return nil
}

// Clone returns an independent copy of the store.
func (ps *PropertyStore) Clone() *PropertyStore {
	out := &PropertyStore{frames: make(map[int]Snapshot, len(ps.frames))}
	for f, s := range ps.frames {
		out.frames[f] = s.Clone()
	}
	return out
}

// MarshalJSON writes the store as an object keyed by frame number, in
// ascending numeric order. History deduplication compares encoded bytes,
// so the order must not depend on map iteration.
func (ps *PropertyStore) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range ps.Frames() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(f))
		buf.WriteString(`":`)
		data, err := json.Marshal(ps.frames[f])
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by positive frame numbers. Keys must be
// in canonical decimal form ("7", not "07" or "+7") so that no two keys name
// the same frame.
func (ps *PropertyStore) UnmarshalJSON(data []byte) error {
	var raw map[string]Snapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	frames := make(map[int]Snapshot, len(raw))
	for k, s := range raw {
		f, err := strconv.Atoi(k)
		if err != nil || f < 1 || strconv.Itoa(f) != k {
			return fmt.Errorf("invalid frame key %q", k)
		}
		frames[f] = s
	}
	ps.frames = frames
	return nil
}
