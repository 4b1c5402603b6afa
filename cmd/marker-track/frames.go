package main

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/LdDl/marker-track/track"
)

// frameSource yields decoded grayscale frames from an image sequence on
// demand. It is finite and non-restartable: Next returns io.EOF once the
// sequence is exhausted.
type frameSource struct {
	paths []string
	next  int
}

func newFrameSource(dir, pattern string) (*frameSource, error) {
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "Can't list frames matching '%s' in '%s'", pattern, dir)
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no frames matching '%s' in '%s'", pattern, dir)
	}
	sort.Strings(paths)
	return &frameSource{paths: paths}, nil
}

func (fs *frameSource) Next() (*track.Frame, error) {
	if fs.next >= len(fs.paths) {
		return nil, io.EOF
	}
	index := fs.next
	path := fs.paths[index]
	fs.next++

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't open frame %d", index)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't decode frame %d ('%s')", index, path)
	}
	return track.FrameFromGray(index, toGray(img)), nil
}

func (fs *frameSource) Len() int {
	return len(fs.paths)
}

func toGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

// parseMaskRects builds a region mask from "x0,y0,x1,y1" rectangle specs.
// An empty spec list yields a nil mask (no restriction).
func parseMaskRects(specs []string, width, height int) (*track.RegionMask, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	mask := track.NewRegionMask(width, height)
	for _, spec := range specs {
		parts := strings.Split(spec, ",")
		if len(parts) != 4 {
			return nil, errors.Errorf("invalid mask rect '%s', want 'x0,y0,x1,y1'", spec)
		}
		coords := make([]int, 4)
		for i, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, errors.Wrapf(err, "invalid mask rect '%s'", spec)
			}
			coords[i] = v
		}
		mask.AddRect(image.Rect(coords[0], coords[1], coords[2], coords[3]))
	}
	return mask, nil
}
