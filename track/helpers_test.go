package track

const (
	testBackground = uint8(200)
	testMarker     = uint8(50)
	testThreshold  = uint8(100)
)

type disk struct {
	cx, cy int
	r      int
}

// makeDiskFrame builds a bright synthetic frame with dark disks on it.
func makeDiskFrame(index, width, height int, disks []disk) *Frame {
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = testBackground
	}
	for _, d := range disks {
		for y := d.cy - d.r; y <= d.cy+d.r; y++ {
			for x := d.cx - d.r; x <= d.cx+d.r; x++ {
				if x < 0 || x >= width || y < 0 || y >= height {
					continue
				}
				dx := x - d.cx
				dy := y - d.cy
				if dx*dx+dy*dy <= d.r*d.r {
					pix[y*width+x] = testMarker
				}
			}
		}
	}
	return &Frame{
		Index:  index,
		Width:  width,
		Height: height,
		Pix:    pix,
	}
}

func binaryFromRows(rows []string) *BinaryImage {
	h := len(rows)
	w := len(rows[0])
	bin := newBinaryImage(w, h)
	for y, row := range rows {
		for x, c := range row {
			bin.Bits[y*w+x] = c == '#'
		}
	}
	return bin
}

func frameFromRows(index int, rows []string) *Frame {
	h := len(rows)
	w := len(rows[0])
	pix := make([]uint8, w*h)
	for y, row := range rows {
		for x, c := range row {
			v := testBackground
			if c == '#' {
				v = testMarker
			}
			pix[y*w+x] = v
		}
	}
	return &Frame{
		Index:  index,
		Width:  w,
		Height: h,
		Pix:    pix,
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
