package track

// Blob is a maximal 8-connected set of foreground pixels found in a binary
// image. Blobs from one frame form an unordered set: Label reflects scan
// order only and carries no identity across frames.
type Blob struct {
	Label    int
	Area     int
	Centroid Point
	BBox     Rectangle
}

// ExtractBlobs labels the connected foreground components of a binary image
// using 8-connectivity (matching the closing step, which merges foreground
// across 1-pixel gaps) and computes each component's area and centroid. The
// centroid is the arithmetic mean of the pixel coordinates, not weighted by
// intensity. An empty image yields an empty slice.
func ExtractBlobs(bin *BinaryImage) []Blob {
	visited := make([]bool, len(bin.Bits))
	blobs := make([]Blob, 0)
	stack := make([][2]int, 0, 64)

	label := 0
	for y := 0; y < bin.Height; y++ {
		for x := 0; x < bin.Width; x++ {
			idx := y*bin.Width + x
			if !bin.Bits[idx] || visited[idx] {
				continue
			}
			label++

			// Flood fill with an explicit stack.
			area := 0
			sumX, sumY := 0.0, 0.0
			minX, minY := x, y
			maxX, maxY := x, y
			visited[idx] = true
			stack = append(stack[:0], [2]int{x, y})
			for len(stack) > 0 {
				px, py := stack[len(stack)-1][0], stack[len(stack)-1][1]
				stack = stack[:len(stack)-1]

				area++
				sumX += float64(px)
				sumY += float64(py)
				minX = minInt(minX, px)
				minY = minInt(minY, py)
				maxX = maxInt(maxX, px)
				maxY = maxInt(maxY, py)

				for _, d := range neighbors8 {
					nx, ny := px+d[0], py+d[1]
					if !bin.At(nx, ny) {
						continue
					}
					nidx := ny*bin.Width + nx
					if visited[nidx] {
						continue
					}
					visited[nidx] = true
					stack = append(stack, [2]int{nx, ny})
				}
			}

			blobs = append(blobs, Blob{
				Label: label,
				Area:  area,
				Centroid: Point{
					X: sumX / float64(area),
					Y: sumY / float64(area),
				},
				BBox: NewRect(
					float64(minX),
					float64(minY),
					float64(maxX-minX+1),
					float64(maxY-minY+1),
				),
			})
		}
	}
	return blobs
}
