package track

import (
	"math"

	"github.com/arthurkushman/go-hungarian"
)

// AssignStrategy is the correspondence policy used to map markers to
// candidate blobs when enough candidates were detected.
type AssignStrategy uint16

const (
	// AssignGreedy lets every marker independently claim its nearest
	// candidate. Candidates stay in the pool after being claimed, so two
	// markers whose previous positions are close together may claim the
	// same candidate; such double claims are reported as
	// AmbiguousAssignment warnings.
	AssignGreedy AssignStrategy = iota
	// AssignHungarian performs one-to-one minimum-cost matching over the
	// K×M squared-distance matrix (Kuhn-Munkres), so no candidate is
	// claimed twice.
	AssignHungarian
)

// dummyCost pads rectangular distance matrices to square. It only needs to
// exceed any real squared pixel distance.
const dummyCost = 1e18

// assignGreedy returns, for each reference point, the index of the candidate
// with minimum squared Euclidean distance. Ties resolve to the lowest
// candidate index.
func assignGreedy(refs []Point, candidates []Blob) []int {
	picks := make([]int, len(refs))
	for i, ref := range refs {
		best := 0
		bestDist := math.MaxFloat64
		for j := range candidates {
			if d := squaredDistance(ref, candidates[j].Centroid); d < bestDist {
				bestDist = d
				best = j
			}
		}
		picks[i] = best
	}
	return picks
}

// assignHungarian returns a one-to-one assignment of reference points to
// candidates minimizing total squared distance. The solver needs a square
// matrix, so rectangular cost matrices are padded with dummy entries.
func assignHungarian(refs []Point, candidates []Blob) []int {
	n := maxInt(len(refs), len(candidates))
	matrix := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			if i < len(refs) && j < len(candidates) {
				row[j] = squaredDistance(refs[i], candidates[j].Centroid)
			} else {
				row[j] = dummyCost
			}
		}
		matrix[i] = row
	}

	assignments := hungarian.SolveMin(matrix)
	picks := make([]int, len(refs))
	for i := range picks {
		picks[i] = -1
	}
	for markerIdx, rowMap := range assignments {
		if markerIdx >= len(refs) {
			continue
		}
		for candidateIdx := range rowMap {
			if candidateIdx < len(candidates) {
				picks[markerIdx] = candidateIdx
			}
			break
		}
	}
	// The solver should cover every row; fall back to the greedy pick for
	// any marker left unassigned.
	for i, pick := range picks {
		if pick < 0 {
			picks[i] = assignGreedy(refs[i:i+1], candidates)[0]
		}
	}
	return picks
}

// duplicateClaims returns, for every candidate claimed by more than one
// marker, the claiming marker identities in ascending order.
func duplicateClaims(picks []int) map[int][]int {
	claims := make(map[int][]int, len(picks))
	for marker, candidate := range picks {
		claims[candidate] = append(claims[candidate], marker)
	}
	duplicates := make(map[int][]int)
	for candidate, markers := range claims {
		if len(markers) > 1 {
			duplicates[candidate] = markers
		}
	}
	return duplicates
}
