package track

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// TrajectoryLog is the append-only per-marker (x, y) time series accumulated
// by a session. Row i holds marker positions for the i-th advanced frame.
// Past rows are never mutated, so the log is safe to export mid-run.
type TrajectoryLog struct {
	markers int
	xs      []float64
	ys      []float64
}

// NewTrajectoryLog creates an empty log for the given marker count.
func NewTrajectoryLog(markers int) *TrajectoryLog {
	return &TrajectoryLog{
		markers: markers,
	}
}

// Append adds one row of marker positions, in marker-identity order.
func (l *TrajectoryLog) Append(positions []Point) error {
	if len(positions) != l.markers {
		return errors.Errorf("expected %d positions, got %d", l.markers, len(positions))
	}
	for _, p := range positions {
		l.xs = append(l.xs, p.X)
		l.ys = append(l.ys, p.Y)
	}
	return nil
}

// Len returns the number of rows (frames advanced so far).
func (l *TrajectoryLog) Len() int {
	if l.markers == 0 {
		return 0
	}
	return len(l.xs) / l.markers
}

// MarkerCount returns the number of columns K.
func (l *TrajectoryLog) MarkerCount() int {
	return l.markers
}

// At returns the position of the given marker at the given row.
func (l *TrajectoryLog) At(frame, marker int) Point {
	idx := frame*l.markers + marker
	return Point{X: l.xs[idx], Y: l.ys[idx]}
}

// Export returns the accumulated series as two F×K dense matrices. The
// matrices are copies; appending further rows does not affect them.
func (l *TrajectoryLog) Export() (x, y *mat.Dense) {
	rows := l.Len()
	if rows == 0 {
		return &mat.Dense{}, &mat.Dense{}
	}
	xData := make([]float64, len(l.xs))
	copy(xData, l.xs)
	yData := make([]float64, len(l.ys))
	copy(yData, l.ys)
	return mat.NewDense(rows, l.markers, xData), mat.NewDense(rows, l.markers, yData)
}

// WriteCSV writes the log as semicolon-separated records, one per advanced
// frame: frame;x0;y0;x1;y1;...
func (l *TrajectoryLog) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	writer.Comma = ';'

	header := make([]string, 0, 2*l.markers+1)
	header = append(header, "frame")
	for i := 0; i < l.markers; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "Can't write trajectory header")
	}

	rows := l.Len()
	for row := 0; row < rows; row++ {
		record := make([]string, 0, 2*l.markers+1)
		record = append(record, fmt.Sprintf("%d", row))
		for marker := 0; marker < l.markers; marker++ {
			p := l.At(row, marker)
			record = append(record, fmt.Sprintf("%f", p.X), fmt.Sprintf("%f", p.Y))
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "Can't write trajectory row %d", row)
		}
	}
	return nil
}
