package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/LdDl/marker-track/track"
)

const (
	circleRadius  = 5
	crossHalfSize = 8
	labelOffsetX  = 7
	labelOffsetY  = -7
)

// Overlay draws a crosshair, circle and identity label for every marker
// position over the source frame and returns the annotated RGBA image. The
// frame itself is not modified.
func Overlay(frame *track.Frame, positions []track.Point) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			v := frame.At(x, y)
			out.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	for i, p := range positions {
		c := MarkerColor(i)
		cx := int(p.X + 0.5)
		cy := int(p.Y + 0.5)
		drawCross(out, cx, cy, c)
		drawCircle(out, cx, cy, circleRadius, c)
		drawLabel(out, cx+labelOffsetX, cy+labelOffsetY, fmt.Sprintf("%d", i), c)
	}
	return out
}

func drawCross(img *image.RGBA, cx, cy int, c color.RGBA) {
	for d := -crossHalfSize; d <= crossHalfSize; d++ {
		setIfInside(img, cx+d, cy, c)
		setIfInside(img, cx, cy+d, c)
	}
}

// drawCircle rasterizes a circle outline with the midpoint algorithm.
func drawCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	x, y := r, 0
	err := 1 - r
	for x >= y {
		setIfInside(img, cx+x, cy+y, c)
		setIfInside(img, cx-x, cy+y, c)
		setIfInside(img, cx+x, cy-y, c)
		setIfInside(img, cx-x, cy-y, c)
		setIfInside(img, cx+y, cy+x, c)
		setIfInside(img, cx-y, cy+x, c)
		setIfInside(img, cx+y, cy-x, c)
		setIfInside(img, cx-y, cy-x, c)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

func drawLabel(img *image.RGBA, x, y int, label string, c color.RGBA) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(label)
}

func setIfInside(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}
