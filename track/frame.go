package track

import (
	"image"

	"github.com/pkg/errors"
)

// Frame is a single decoded grayscale frame. Pix is row-major, Width*Height
// bytes. Index is supplied by the frame source and is only used to identify
// the frame in warnings and callbacks. A Frame is never mutated by this
// package.
type Frame struct {
	Index  int
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame wraps a row-major intensity plane as a Frame.
func NewFrame(index, width, height int, pix []uint8) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid frame dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, errors.Errorf("pixel buffer length %d does not match dimensions %dx%d", len(pix), width, height)
	}
	return &Frame{
		Index:  index,
		Width:  width,
		Height: height,
		Pix:    pix,
	}, nil
}

// FrameFromGray copies a stdlib grayscale image into a Frame.
func FrameFromGray(index int, img *image.Gray) *Frame {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	pix := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		offset := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(pix[y*w:(y+1)*w], img.Pix[offset:offset+w])
	}
	return &Frame{
		Index:  index,
		Width:  w,
		Height: h,
		Pix:    pix,
	}
}

// At returns the intensity at (x, y). No bounds check.
func (f *Frame) At(x, y int) uint8 {
	return f.Pix[y*f.Width+x]
}

// RegionMask restricts detection to user-specified areas. It is built by
// unioning rectangles and treated as immutable once a session has been
// initialized with it. A nil *RegionMask means "no restriction".
type RegionMask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewRegionMask creates an all-false mask of the given shape.
func NewRegionMask(width, height int) *RegionMask {
	return &RegionMask{
		Width:  width,
		Height: height,
		Bits:   make([]bool, width*height),
	}
}

// AddRect unions an axis-aligned rectangle into the mask. The rectangle is
// clipped to the mask bounds.
func (m *RegionMask) AddRect(r image.Rectangle) {
	clipped := r.Intersect(image.Rect(0, 0, m.Width, m.Height))
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		row := y * m.Width
		for x := clipped.Min.X; x < clipped.Max.X; x++ {
			m.Bits[row+x] = true
		}
	}
}

// At reports whether (x, y) belongs to the region of interest.
func (m *RegionMask) At(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// Empty reports whether no pixel is selected.
func (m *RegionMask) Empty() bool {
	for _, b := range m.Bits {
		if b {
			return false
		}
	}
	return true
}

// BinaryImage is the foreground mask produced by the segmenter. It is
// recomputed for every frame and never shared between frames.
type BinaryImage struct {
	Width  int
	Height int
	Bits   []bool
}

func newBinaryImage(width, height int) *BinaryImage {
	return &BinaryImage{
		Width:  width,
		Height: height,
		Bits:   make([]bool, width*height),
	}
}

// At reports whether (x, y) is foreground. Out-of-bounds coordinates are
// background.
func (b *BinaryImage) At(x, y int) bool {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return false
	}
	return b.Bits[y*b.Width+x]
}

// ForegroundCount returns the number of foreground pixels.
func (b *BinaryImage) ForegroundCount() int {
	n := 0
	for _, bit := range b.Bits {
		if bit {
			n++
		}
	}
	return n
}
