package track

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Session is the stateful per-run tracking controller. It holds the
// canonical marker count K, the previous frame's assigned centroids and the
// accumulated trajectories, and advances one frame at a time.
//
// A Session owns its state exclusively for its lifetime: it holds no
// internal locks and must be driven by a single logical thread of control.
// Frame i+1 depends on the centroids assigned at frame i, so Advance calls
// are inherently sequential.
type Session struct {
	// ID identifies the session in logs and default output naming.
	ID uuid.UUID

	threshold  uint8
	strategy   AssignStrategy
	predictive bool
	dt         float64

	markers    int
	prev       []Point
	predictors []*markerPredictor
	trajectory *TrajectoryLog
	warnings   []Warning

	// OnFrameTracked, if set, is invoked once per Advance call with the
	// frame and the assigned positions, after the trajectory row has been
	// appended. Callers typically forward it to a renderer/encoder.
	OnFrameTracked func(frameIndex int, frame *Frame, positions []Point)
	// OnWarning, if set, receives non-fatal warnings as they occur. The
	// default sink logs them via the standard log package.
	OnWarning func(w Warning)
}

// NewSessionDefault creates a session with the greedy assignment strategy
// and no motion prediction.
func NewSessionDefault(threshold uint8) *Session {
	return NewSession(threshold, AssignGreedy, false, 1.0)
}

// NewSession creates a session with an explicit assignment strategy. When
// predictive is true, matching distances are measured against per-marker
// Kalman-predicted positions instead of the raw previous centroids; dt is
// the frame interval in seconds (1/fps) used by the motion filters.
func NewSession(threshold uint8, strategy AssignStrategy, predictive bool, dt float64) *Session {
	return &Session{
		ID:         uuid.New(),
		threshold:  threshold,
		strategy:   strategy,
		predictive: predictive,
		dt:         dt,
	}
}

// Init segments the first frame with the supplied region mask, extracts the
// blob set and fixes the marker count K to its size. The blob centroids, in
// extraction order, become the canonical identity assignment: marker i is
// blob i. Returns ErrNoBlobs (wrapped) when the frame yields no blobs. No
// trajectory row is appended; rows accumulate only through Advance.
//
// Calling Init again resets the session: K, previous centroids, warnings
// and the trajectory log are all replaced.
func (s *Session) Init(first *Frame, mask *RegionMask) (int, error) {
	bin, err := Segment(first, s.threshold, TrackingSteps(), mask)
	if err != nil {
		return 0, errors.Wrap(err, "Can't segment first frame")
	}
	blobs := ExtractBlobs(bin)
	if len(blobs) == 0 {
		return 0, errors.Wrapf(ErrNoBlobs, "frame %d, threshold %d", first.Index, s.threshold)
	}

	s.markers = len(blobs)
	s.prev = make([]Point, s.markers)
	for i, blob := range blobs {
		s.prev[i] = blob.Centroid
	}
	s.trajectory = NewTrajectoryLog(s.markers)
	s.warnings = nil
	s.predictors = nil
	if s.predictive {
		s.predictors = make([]*markerPredictor, s.markers)
		for i, p := range s.prev {
			s.predictors[i] = newMarkerPredictor(p, s.dt)
		}
	}
	return s.markers, nil
}

// Advance processes exactly one frame and appends one row to the trajectory
// log. When fewer blobs than markers are detected, the previous positions
// are carried forward unchanged and a MissedDetection warning is emitted;
// otherwise each marker is mapped to a candidate blob by the configured
// assignment strategy and takes that candidate's centroid as its new
// position. The returned slice is a copy in marker-identity order.
func (s *Session) Advance(frame *Frame) ([]Point, error) {
	if s.markers == 0 {
		return nil, errors.New("session is not initialized")
	}

	bin, err := Segment(frame, s.threshold, TrackingSteps(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't segment frame %d", frame.Index)
	}
	candidates := ExtractBlobs(bin)

	positions := make([]Point, s.markers)
	if len(candidates) < s.markers {
		// Carry-forward: no position update, no interpolation. Motion
		// filters still advance so a recovered marker is matched against
		// a coasted prediction.
		copy(positions, s.prev)
		for _, p := range s.predictors {
			p.PredictNext()
		}
		s.warn(MissedDetection{
			FrameIndex: frame.Index,
			Found:      len(candidates),
			Want:       s.markers,
		})
	} else {
		refs := s.prev
		if s.predictive {
			refs = make([]Point, s.markers)
			for i, p := range s.predictors {
				refs[i] = p.PredictNext()
			}
		}
		var picks []int
		switch s.strategy {
		case AssignHungarian:
			picks = assignHungarian(refs, candidates)
		default:
			picks = assignGreedy(refs, candidates)
			for candidate, markers := range duplicateClaims(picks) {
				s.warn(AmbiguousAssignment{
					FrameIndex: frame.Index,
					Candidate:  candidate,
					Markers:    markers,
				})
			}
		}
		for i, pick := range picks {
			positions[i] = candidates[pick].Centroid
		}
		copy(s.prev, positions)
		for i, p := range s.predictors {
			if err := p.Correct(positions[i]); err != nil {
				return nil, errors.Wrapf(err, "marker %d, frame %d", i, frame.Index)
			}
		}
	}

	if err := s.trajectory.Append(positions); err != nil {
		return nil, errors.Wrapf(err, "Can't append trajectory row for frame %d", frame.Index)
	}
	if s.OnFrameTracked != nil {
		s.OnFrameTracked(frame.Index, frame, positions)
	}
	return positions, nil
}

// MarkerCount returns K, fixed at initialization. Zero before Init.
func (s *Session) MarkerCount() int {
	return s.markers
}

// Positions returns a copy of the most recently assigned centroids.
func (s *Session) Positions() []Point {
	out := make([]Point, len(s.prev))
	copy(out, s.prev)
	return out
}

// Trajectory returns the session's trajectory log. Nil before Init.
func (s *Session) Trajectory() *TrajectoryLog {
	return s.trajectory
}

// Warnings returns all warnings emitted since the last Init.
func (s *Session) Warnings() []Warning {
	return s.warnings
}

func (s *Session) warn(w Warning) {
	s.warnings = append(s.warnings, w)
	if s.OnWarning != nil {
		s.OnWarning(w)
		return
	}
	log.Printf("session %s: %s", s.ID, w)
}
