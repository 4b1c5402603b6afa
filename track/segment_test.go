package track

import (
	"image"
	"testing"
)

func TestBinarizeMonotonic(t *testing.T) {
	// Gradient frame: every intensity value appears.
	width, height := 16, 16
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = uint8(i)
	}
	frame := &Frame{Index: 0, Width: width, Height: height, Pix: pix}

	prevCount := -1
	for threshold := 0; threshold <= 255; threshold += 5 {
		bin, err := Segment(frame, uint8(threshold), SegmentSteps{}, nil)
		if err != nil {
			t.Fatal(err)
		}
		count := bin.ForegroundCount()
		if count < prevCount {
			t.Errorf("foreground count decreased from %d to %d at threshold %d", prevCount, count, threshold)
		}
		prevCount = count
	}
}

func TestDespeckleRemovesIsolatedPixels(t *testing.T) {
	frame := frameFromRows(0, []string{
		".......",
		"...#...",
		".......",
		"...#...",
		"...##..",
	})
	bin, err := Segment(frame, testThreshold, SegmentSteps{Despeckle: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if bin.At(3, 1) {
		t.Error("isolated pixel at (3,1) should have been removed")
	}
	if !bin.At(3, 3) || !bin.At(3, 4) || !bin.At(4, 4) {
		t.Error("connected pixels should survive despeckling")
	}
}

func TestFillHolesOnlyInPreviewPipeline(t *testing.T) {
	frame := frameFromRows(0, []string{
		".....",
		".###.",
		".#.#.",
		".###.",
		".....",
	})
	filled, err := Segment(frame, testThreshold, SegmentSteps{FillHoles: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !filled.At(2, 2) {
		t.Error("hole at (2,2) should have been filled")
	}
	unfilled, err := Segment(frame, testThreshold, SegmentSteps{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if unfilled.At(2, 2) {
		t.Error("hole at (2,2) should stay background without FillHoles")
	}
	if !PreviewSteps().FillHoles || TrackingSteps().FillHoles {
		t.Error("hole filling belongs to the preview pipeline only")
	}
}

func TestClosingMergesFragmentedMarker(t *testing.T) {
	// Two 3x3 squares separated by a 1-pixel gap: thresholding noise split
	// one marker in two.
	frame := frameFromRows(0, []string{
		".........",
		".###.###.",
		".###.###.",
		".###.###.",
		".........",
	})
	closed, err := Segment(frame, testThreshold, SegmentSteps{Close: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(ExtractBlobs(closed)); got != 1 {
		t.Errorf("expected closing to merge the fragments into 1 blob, got %d", got)
	}

	open, err := Segment(frame, testThreshold, SegmentSteps{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(ExtractBlobs(open)); got != 2 {
		t.Errorf("expected 2 blobs without closing, got %d", got)
	}
}

func TestMaskZeroesForegroundOutside(t *testing.T) {
	frame := makeDiskFrame(0, 60, 30, []disk{
		{cx: 12, cy: 15, r: 3},
		{cx: 45, cy: 15, r: 3},
	})
	mask := NewRegionMask(60, 30)
	mask.AddRect(image.Rect(0, 0, 30, 30))

	bin, err := Segment(frame, testThreshold, TrackingSteps(), mask)
	if err != nil {
		t.Fatal(err)
	}
	blobs := ExtractBlobs(bin)
	if len(blobs) != 1 {
		t.Fatalf("expected 1 blob inside mask, got %d", len(blobs))
	}
	if absFloat(blobs[0].Centroid.X-12) > 0.5 || absFloat(blobs[0].Centroid.Y-15) > 0.5 {
		t.Errorf("unexpected centroid %v for masked blob", blobs[0].Centroid)
	}
}

func TestMaskShapeMismatch(t *testing.T) {
	frame := makeDiskFrame(0, 20, 20, nil)
	mask := NewRegionMask(10, 10)
	if _, err := Segment(frame, testThreshold, TrackingSteps(), mask); err == nil {
		t.Error("expected shape mismatch error")
	}
}

func TestZeroVarianceFrameIsNotAnError(t *testing.T) {
	frame := makeDiskFrame(0, 20, 20, nil)
	bin, err := Segment(frame, testThreshold, TrackingSteps(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if bin.ForegroundCount() != 0 {
		t.Errorf("expected all-background output, got %d foreground pixels", bin.ForegroundCount())
	}
}

func TestAllFalseMaskYieldsAllBackground(t *testing.T) {
	frame := makeDiskFrame(0, 20, 20, []disk{{cx: 10, cy: 10, r: 3}})
	mask := NewRegionMask(20, 20)
	bin, err := Segment(frame, testThreshold, TrackingSteps(), mask)
	if err != nil {
		t.Fatal(err)
	}
	if bin.ForegroundCount() != 0 {
		t.Errorf("expected all-background output under empty mask, got %d foreground pixels", bin.ForegroundCount())
	}
}
