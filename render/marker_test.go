package render

import (
	"testing"

	"github.com/LdDl/marker-track/track"
)

func TestOverlayDrawsMarkers(t *testing.T) {
	pix := make([]uint8, 40*30)
	for i := range pix {
		pix[i] = 128
	}
	frame, err := track.NewFrame(0, 40, 30, pix)
	if err != nil {
		t.Fatal(err)
	}

	positions := []track.Point{
		track.NewPoint(10, 10),
		track.NewPoint(30, 20),
	}
	img := Overlay(frame, positions)

	bounds := img.Bounds()
	if bounds.Dx() != 40 || bounds.Dy() != 30 {
		t.Fatalf("expected 40x30 overlay, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	// Crosshair center carries the marker color.
	if img.RGBAAt(10, 10) != MarkerColor(0) {
		t.Errorf("expected marker 0 color at (10,10), got %v", img.RGBAAt(10, 10))
	}
	if img.RGBAAt(30, 20) != MarkerColor(1) {
		t.Errorf("expected marker 1 color at (30,20), got %v", img.RGBAAt(30, 20))
	}
	// Source frame is untouched.
	if frame.At(10, 10) != 128 {
		t.Error("Overlay must not modify the source frame")
	}
}

func TestMarkerColorsCycle(t *testing.T) {
	if MarkerColor(0) != MarkerColor(len(markerColors)) {
		t.Error("colors must cycle by marker identity")
	}
}
