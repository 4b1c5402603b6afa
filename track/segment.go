package track

import (
	"github.com/pkg/errors"
)

// SegmentSteps selects the cleanup steps applied after binarization. Hole
// filling is wanted during interactive threshold preview but not during
// steady-state tracking; keeping the steps explicit lets every caller state
// what it runs instead of hiding stage-dependent behavior.
type SegmentSteps struct {
	// Despeckle removes foreground pixels with no foreground 8-neighbor.
	Despeckle bool
	// FillHoles turns background pixels whose 8-neighbors are all foreground
	// into foreground.
	FillHoles bool
	// Close applies morphological closing with a disk-shaped structuring
	// element of radius 1, merging foreground separated by a 1-pixel gap.
	Close bool
}

// TrackingSteps is the pipeline used during initialization and steady-state
// tracking: despeckle and closing, no hole filling.
func TrackingSteps() SegmentSteps {
	return SegmentSteps{
		Despeckle: true,
		FillHoles: false,
		Close:     true,
	}
}

// PreviewSteps is the pipeline used for interactive threshold preview: same
// as TrackingSteps plus hole filling.
func PreviewSteps() SegmentSteps {
	return SegmentSteps{
		Despeckle: true,
		FillHoles: true,
		Close:     true,
	}
}

// Segment converts a grayscale frame into a cleaned binary foreground mask.
// A pixel is foreground iff its intensity is strictly below threshold. If
// mask is non-nil, foreground outside the mask is zeroed as the last step.
// Segment is a pure function of its inputs; an all-background result is not
// an error.
func Segment(frame *Frame, threshold uint8, steps SegmentSteps, mask *RegionMask) (*BinaryImage, error) {
	if frame == nil {
		return nil, errors.New("nil frame")
	}
	if mask != nil && (mask.Width != frame.Width || mask.Height != frame.Height) {
		return nil, errors.Errorf("mask shape %dx%d does not match frame shape %dx%d",
			mask.Width, mask.Height, frame.Width, frame.Height)
	}

	bin := binarize(frame, threshold)
	if steps.Despeckle {
		bin = despeckle(bin)
	}
	if steps.FillHoles {
		bin = fillHoles(bin)
	}
	if steps.Close {
		bin = dilate(bin)
		bin = erode(bin)
	}
	if mask != nil {
		for i := range bin.Bits {
			bin.Bits[i] = bin.Bits[i] && mask.Bits[i]
		}
	}
	return bin, nil
}

func binarize(frame *Frame, threshold uint8) *BinaryImage {
	bin := newBinaryImage(frame.Width, frame.Height)
	for i, v := range frame.Pix {
		bin.Bits[i] = v < threshold
	}
	return bin
}

// neighbors8 is the 8-connected neighborhood offset list.
var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func despeckle(bin *BinaryImage) *BinaryImage {
	out := newBinaryImage(bin.Width, bin.Height)
	for y := 0; y < bin.Height; y++ {
		for x := 0; x < bin.Width; x++ {
			if !bin.At(x, y) {
				continue
			}
			for _, d := range neighbors8 {
				if bin.At(x+d[0], y+d[1]) {
					out.Bits[y*bin.Width+x] = true
					break
				}
			}
		}
	}
	return out
}

func fillHoles(bin *BinaryImage) *BinaryImage {
	out := newBinaryImage(bin.Width, bin.Height)
	copy(out.Bits, bin.Bits)
	// Border pixels have out-of-bounds neighbors and are never holes.
	for y := 1; y < bin.Height-1; y++ {
		for x := 1; x < bin.Width-1; x++ {
			if bin.At(x, y) {
				continue
			}
			surrounded := true
			for _, d := range neighbors8 {
				if !bin.At(x+d[0], y+d[1]) {
					surrounded = false
					break
				}
			}
			if surrounded {
				out.Bits[y*bin.Width+x] = true
			}
		}
	}
	return out
}

// disk1 is the disk-shaped structuring element of radius 1.
var disk1 = [5][2]int{
	{0, 0},
	{-1, 0}, {1, 0},
	{0, -1}, {0, 1},
}

func dilate(bin *BinaryImage) *BinaryImage {
	out := newBinaryImage(bin.Width, bin.Height)
	for y := 0; y < bin.Height; y++ {
		for x := 0; x < bin.Width; x++ {
			for _, d := range disk1 {
				if bin.At(x+d[0], y+d[1]) {
					out.Bits[y*bin.Width+x] = true
					break
				}
			}
		}
	}
	return out
}

func erode(bin *BinaryImage) *BinaryImage {
	out := newBinaryImage(bin.Width, bin.Height)
	for y := 0; y < bin.Height; y++ {
		for x := 0; x < bin.Width; x++ {
			keep := true
			for _, d := range disk1 {
				if !bin.At(x+d[0], y+d[1]) {
					keep = false
					break
				}
			}
			out.Bits[y*bin.Width+x] = keep
		}
	}
	return out
}
