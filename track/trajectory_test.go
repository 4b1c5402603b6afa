package track

import (
	"bytes"
	"strings"
	"testing"
)

func TestTrajectoryLogAppendAndExport(t *testing.T) {
	trajectory := NewTrajectoryLog(2)
	rows := [][]Point{
		{NewPoint(1, 2), NewPoint(3, 4)},
		{NewPoint(1.5, 2.5), NewPoint(3.5, 4.5)},
		{NewPoint(2, 3), NewPoint(4, 5)},
	}
	for _, row := range rows {
		if err := trajectory.Append(row); err != nil {
			t.Fatal(err)
		}
	}

	if trajectory.Len() != 3 || trajectory.MarkerCount() != 2 {
		t.Fatalf("expected 3x2 log, got %dx%d", trajectory.Len(), trajectory.MarkerCount())
	}

	xs, ys := trajectory.Export()
	r, c := xs.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("expected 3x2 export, got %dx%d", r, c)
	}
	for row := range rows {
		for marker := range rows[row] {
			if xs.At(row, marker) != rows[row][marker].X {
				t.Errorf("x[%d][%d]: got %f, want %f", row, marker, xs.At(row, marker), rows[row][marker].X)
			}
			if ys.At(row, marker) != rows[row][marker].Y {
				t.Errorf("y[%d][%d]: got %f, want %f", row, marker, ys.At(row, marker), rows[row][marker].Y)
			}
		}
	}
}

func TestTrajectoryLogAppendLengthChecked(t *testing.T) {
	trajectory := NewTrajectoryLog(3)
	if err := trajectory.Append([]Point{NewPoint(0, 0)}); err == nil {
		t.Error("expected error for short row")
	}
	if trajectory.Len() != 0 {
		t.Errorf("rejected append must not grow the log, got %d rows", trajectory.Len())
	}
}

func TestTrajectoryLogExportIsSnapshot(t *testing.T) {
	trajectory := NewTrajectoryLog(1)
	if err := trajectory.Append([]Point{NewPoint(1, 1)}); err != nil {
		t.Fatal(err)
	}
	xs, _ := trajectory.Export()
	if err := trajectory.Append([]Point{NewPoint(2, 2)}); err != nil {
		t.Fatal(err)
	}
	if r, _ := xs.Dims(); r != 1 {
		t.Errorf("export must be a snapshot, got %d rows after later append", r)
	}
	if trajectory.Len() != 2 {
		t.Errorf("expected 2 rows in the log, got %d", trajectory.Len())
	}
}

func TestTrajectoryLogWriteCSV(t *testing.T) {
	trajectory := NewTrajectoryLog(2)
	if err := trajectory.Append([]Point{NewPoint(1, 2), NewPoint(3, 4)}); err != nil {
		t.Fatal(err)
	}
	if err := trajectory.Append([]Point{NewPoint(5, 6), NewPoint(7, 8)}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := trajectory.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "frame;x0;y0;x1;y1" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0;1.000000;2.000000") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
}
