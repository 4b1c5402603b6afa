package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/LdDl/marker-track/track"
)

// SaveTrajectoryPlots renders one time-series plot per axis (x over frame,
// y over frame) with a line per marker, and writes them as PNG files into
// outputDir. fps scales the horizontal axis to seconds; pass 0 to keep it
// in frames.
func SaveTrajectoryPlots(trajectory *track.TrajectoryLog, fps float64, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return errors.Wrap(err, "Can't create plot output dir")
	}

	xAxisLabel := "frame"
	timeScale := 1.0
	if fps > 0 {
		xAxisLabel = "time [s]"
		timeScale = 1.0 / fps
	}

	axes := []struct {
		name   string
		sample func(frame, marker int) float64
	}{
		{name: "x", sample: func(frame, marker int) float64 { return trajectory.At(frame, marker).X }},
		{name: "y", sample: func(frame, marker int) float64 { return trajectory.At(frame, marker).Y }},
	}

	rows := trajectory.Len()
	for _, axis := range axes {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("Marker %s positions", axis.name)
		p.X.Label.Text = xAxisLabel
		p.Y.Label.Text = fmt.Sprintf("%s [px]", axis.name)

		for marker := 0; marker < trajectory.MarkerCount(); marker++ {
			pts := make(plotter.XYs, 0, rows)
			for frame := 0; frame < rows; frame++ {
				pts = append(pts, plotter.XY{
					X: float64(frame) * timeScale,
					Y: axis.sample(frame, marker),
				})
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return errors.Wrapf(err, "Can't build %s line for marker %d", axis.name, marker)
			}
			line.Color = MarkerColor(marker)
			line.Width = vg.Points(1)
			p.Add(line)
			p.Legend.Add(fmt.Sprintf("marker %d", marker), line)
		}

		file := filepath.Join(outputDir, fmt.Sprintf("trajectory_%s.png", axis.name))
		if err := p.Save(10*vg.Inch, 5*vg.Inch, file); err != nil {
			return errors.Wrapf(err, "Can't save %s plot", axis.name)
		}
	}
	return nil
}
