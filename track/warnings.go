package track

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoBlobs is returned by Session.Init when the first segmented frame
// contains no blobs: there is no marker set to track.
var ErrNoBlobs = errors.New("no blobs found in first frame")

// Warning is a non-fatal per-frame diagnostic. Warnings never stop a run;
// the session recovers automatically and the caller may log them.
type Warning interface {
	fmt.Stringer
	// Frame returns the index of the frame the warning refers to.
	Frame() int
}

// MissedDetection is emitted when a frame yields fewer candidate blobs than
// tracked markers. The previous frame's positions are carried forward
// unchanged for all markers.
type MissedDetection struct {
	FrameIndex int
	Found      int
	Want       int
}

func (w MissedDetection) Frame() int {
	return w.FrameIndex
}

func (w MissedDetection) String() string {
	return fmt.Sprintf("frame %d: detected %d blobs, want %d; carrying previous positions forward", w.FrameIndex, w.Found, w.Want)
}

// AmbiguousAssignment is emitted when the greedy strategy lets several
// markers claim the same candidate blob. The assignment itself is kept;
// switching to AssignHungarian avoids the situation entirely.
type AmbiguousAssignment struct {
	FrameIndex int
	Candidate  int
	Markers    []int
}

func (w AmbiguousAssignment) Frame() int {
	return w.FrameIndex
}

func (w AmbiguousAssignment) String() string {
	return fmt.Sprintf("frame %d: markers %v claimed the same candidate blob %d", w.FrameIndex, w.Markers, w.Candidate)
}
