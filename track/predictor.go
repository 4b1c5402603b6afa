package track

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"
)

// markerPredictor smooths one marker's motion with a 2D Kalman filter and
// exposes the predicted next position for matching. Reported marker
// positions are always raw blob centroids; the predictor only influences
// which candidate a marker is matched to.
type markerPredictor struct {
	filter    *kalman_filter.Kalman2D
	predicted Point
}

func newMarkerPredictor(start Point, dt float64) *markerPredictor {
	/* Kalman filter props */
	ux := 1.0
	uy := 1.0
	stdDevA := 2.0
	stdDevMx := 0.1
	stdDevMy := 0.1
	kf := kalman_filter.NewKalman2D(dt, ux, uy, stdDevA, stdDevMx, stdDevMy, kalman_filter.WithState2D(start.X, start.Y))
	return &markerPredictor{
		filter:    kf,
		predicted: start,
	}
}

// PredictNext executes the filter's time-update step and returns the
// predicted position without re-evaluating the state vector based on the
// Kalman gain.
func (p *markerPredictor) PredictNext() Point {
	p.filter.Predict()
	stateX, stateY := p.filter.GetState()
	p.predicted.X = stateX
	p.predicted.Y = stateY
	return p.predicted
}

// Correct feeds the measured centroid into the filter's measurement-update
// step.
func (p *markerPredictor) Correct(measured Point) error {
	if err := p.filter.Update(measured.X, measured.Y); err != nil {
		return errors.Wrap(err, "Can't update marker motion filter")
	}
	return nil
}
