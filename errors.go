package frameshow

import (
	"errors"
	"fmt"
)

// ErrTransitionRunning is returned when a transition is requested while
// another one is still in flight.
var ErrTransitionRunning = errors.New("transition already running")

// ErrFrameRange is returned for frame numbers outside 1..NumFrames.
var ErrFrameRange = errors.New("frame out of range")

// MissingBaselineError reports a property store with no entry at or below
// the requested frame, which means frame 1 was never written.
type MissingBaselineError struct {
	Frame int
}

func (e *MissingBaselineError) Error() string {
	return fmt.Sprintf("no baseline snapshot at frame 1 (requested frame %d)", e.Frame)
}

// PathLengthMismatchError reports interpolation endpoints whose paths have
// different point counts.
type PathLengthMismatchError struct {
	From, To int
}

func (e *PathLengthMismatchError) Error() string {
	return fmt.Sprintf("path length mismatch: %d points vs %d points", e.From, e.To)
}

// SerializationError wraps any failure to decode persisted scene data.
type SerializationError struct {
	Op  string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
