package features

import (
	"github.com/gokigo/kigo/coords"
)

// Symmetry identifies one of the eight transformations of the dihedral
// group D4 (the symmetries of a square): the four rotations, and the
// four reflections obtained by flipping then rotating.
type Symmetry int

const (
	Identity Symmetry = iota
	Rot90
	Rot180
	Rot270
	Flip
	FlipRot90
	FlipRot180
	FlipRot270

	numSymmetries = 8
)

// inverses mirrors minigo's INVERSES table: every reflection is its own
// inverse, and the two non-self-inverse rotations pair off.
var inverses = [numSymmetries]Symmetry{
	Identity:   Identity,
	Rot90:      Rot270,
	Rot180:     Rot180,
	Rot270:     Rot90,
	Flip:       Flip,
	FlipRot90:  FlipRot90,
	FlipRot180: FlipRot180,
	FlipRot270: FlipRot270,
}

// Inverse returns the symmetry that undoes s.
func (s Symmetry) Inverse() Symmetry { return inverses[s] }

// All lists every symmetry in the group, in a fixed order.
func All() []Symmetry {
	return []Symmetry{Identity, Rot90, Rot180, Rot270, Flip, FlipRot90, FlipRot180, FlipRot270}
}

// transformPoint maps (row, col) on an n x n board through symmetry s.
func transformPoint(s Symmetry, n, row, col int) (int, int) {
	switch s {
	case Identity:
		return row, col
	case Rot90:
		return n - 1 - col, row
	case Rot180:
		return n - 1 - row, n - 1 - col
	case Rot270:
		return col, n - 1 - row
	case Flip:
		// Flip is defined (per minigo) as rot90(fliplr(x)): flip left-right,
		// then rotate 90 degrees.
		fr, fc := row, n-1-col
		return n - 1 - fc, fr
	case FlipRot90:
		// flipud(x): flip top-bottom.
		return n - 1 - row, col
	case FlipRot180:
		// rot90(flipud(x)): flip top-bottom, then rotate 90.
		fr, fc := n-1-row, col
		return n - 1 - fc, fr
	case FlipRot270:
		// fliplr(x): flip left-right.
		return row, n - 1 - col
	default:
		return row, col
	}
}

// ApplyTensor returns a copy of a row-major N*N*Planes feature tensor
// with symmetry s applied to its spatial dimensions; the plane axis is
// untouched.
func ApplyTensor(s Symmetry, n int, tensor []uint8) []uint8 {
	out := make([]uint8, len(tensor))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			nr, nc := transformPoint(s, n, row, col)
			srcBase := (row*n + col) * Planes
			dstBase := (nr*n + nc) * Planes
			copy(out[dstBase:dstBase+Planes], tensor[srcBase:srcBase+Planes])
		}
	}
	return out
}

// ApplyPolicy permutes a length N*N+1 policy vector's board entries by s,
// leaving the trailing Pass entry fixed.
func ApplyPolicy(s Symmetry, n int, pi []float32) []float32 {
	out := make([]float32, len(pi))
	out[n*n] = pi[n*n]
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			nr, nc := transformPoint(s, n, row, col)
			src := coords.Flatten(n, coords.Point{Row: row, Col: col})
			dst := coords.Flatten(n, coords.Point{Row: nr, Col: nc})
			out[dst] = pi[src]
		}
	}
	return out
}
