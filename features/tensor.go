// Package features extracts the fixed-shape input tensor a network
// Inferencer consumes from a board.Position, and provides the dihedral-8
// symmetry group that the network package uses to randomize the board
// orientation each inference query sees.
package features

import (
	"github.com/gokigo/kigo/board"
)

// History is how many past board states the stone-history planes cover.
const History = 8

// Planes is the total number of feature planes per point: 2*History own
// and opponent stone-presence planes, plus one constant to-play plane.
const Planes = 2*History + 1

// ExtractFeatures builds the N*N*Planes feature tensor for p, channel-last
// (row-major over rows, then columns, then plane index), as a dense uint8
// array alongside its own shape: every plane is a binary indicator, so
// uint8 is the tensor's natural, most compact element type. Plane 2*t
// holds whether the point was occupied by the side to move t plies ago;
// plane 2*t+1 holds the same for the opponent. The final plane is a
// constant: all ones if Black is to play, all zeros otherwise.
func ExtractFeatures(p *board.Position) (tensor []uint8, shape [3]int) {
	n := p.N
	out := make([]uint8, n*n*Planes)

	history := reconstructHistory(p)
	toPlay := p.ToPlay

	for cell := 0; cell < n*n; cell++ {
		base := cell * Planes
		for t := 0; t < History; t++ {
			c := history[t][cell]
			if c == toPlay {
				out[base+2*t] = 1
			} else if c == toPlay.Opponent() {
				out[base+2*t+1] = 1
			}
		}
		if toPlay == board.Black {
			out[base+2*History] = 1
		}
	}
	return out, [3]int{n, n, Planes}
}

// ToFloat32 widens an extracted uint8 feature tensor into the float32
// format a network's numeric input actually uses; extraction itself
// stays uint8 since every plane is a binary indicator.
func ToFloat32(tensor []uint8) []float32 {
	out := make([]float32, len(tensor))
	for i, v := range tensor {
		out[i] = float32(v)
	}
	return out
}

// reconstructHistory replays p.BoardDeltas (most-recent-first, each a
// per-cell color delta) against p.Cells to recover up to History prior
// board snapshots. Once the available deltas run out the oldest
// reconstructed board is repeated, matching how a freshly-started game
// pads its missing history.
func reconstructHistory(p *board.Position) [][]board.Color {
	n := p.N
	history := make([][]board.Color, History)
	cur := append([]board.Color(nil), p.Cells...)
	history[0] = cur

	for t := 1; t < History; t++ {
		if t-1 >= len(p.BoardDeltas) {
			history[t] = history[t-1]
			continue
		}
		delta := p.BoardDeltas[t-1]
		prev := make([]board.Color, n*n)
		for i := range prev {
			prev[i] = board.Color(int8(history[t-1][i]) - delta[i])
		}
		history[t] = prev
	}
	return history
}
