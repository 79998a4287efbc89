package board

import (
	"fmt"
	"strings"

	"github.com/gokigo/kigo/coords"
)

// maxBoardDeltas bounds how many per-move delta planes a Position carries
// forward, matching the 8 history planes the feature extractor consumes.
const maxBoardDeltas = 8

// PlayerMove records who played where, used to build the feature history
// and to detect the two-consecutive-pass termination condition.
type PlayerMove struct {
	Color Color
	Coord coords.Point
}

// Position is an immutable Go board state. Every mutating operation
// (PlayMove, PassMove, FlipPlayerTurn) returns a new Position derived via
// copy-on-write from the receiver; the receiver itself is never modified.
type Position struct {
	N     int
	Cells []Color
	ToPlay Color
	Ply   int
	Komi  float64

	CapturedByBlack int
	CapturedByWhite int

	// Ko is the flattened index of the point currently forbidden by the
	// simple-ko rule, or -1 if no point is forbidden.
	Ko int

	Recent []PlayerMove

	// BoardDeltas holds, most-recent-first, a per-cell color delta
	// (newColor - oldColor) for each of the last maxBoardDeltas plays. It
	// is what the feature extractor replays to reconstruct prior board
	// states without keeping full board snapshots.
	BoardDeltas [][]int8

	Lib *LibertyTracker
}

// NewPosition returns the empty starting position for an n x n board.
func NewPosition(n int, komi float64) *Position {
	return &Position{
		N:      n,
		Cells:  make([]Color, n*n),
		ToPlay: Black,
		Ko:     -1,
		Komi:   komi,
		Lib:    NewLibertyTracker(n),
	}
}

func (p *Position) cloneShallow() *Position {
	return &Position{
		N:               p.N,
		Cells:           append([]Color(nil), p.Cells...),
		ToPlay:          p.ToPlay,
		Ply:             p.Ply,
		Komi:            p.Komi,
		CapturedByBlack: p.CapturedByBlack,
		CapturedByWhite: p.CapturedByWhite,
		Ko:              p.Ko,
		Recent:          p.Recent,
		BoardDeltas:     p.BoardDeltas,
		Lib:             p.Lib,
	}
}

func (p *Position) pushDelta(before []Color) {
	delta := make([]int8, p.N*p.N)
	for i := range delta {
		delta[i] = int8(p.Cells[i]) - int8(before[i])
	}
	deltas := append([][]int8{delta}, p.BoardDeltas...)
	if len(deltas) > maxBoardDeltas {
		deltas = deltas[:maxBoardDeltas]
	}
	p.BoardDeltas = deltas
}

// PlayMove returns the successor position after color plays at pt. Passing
// coords.Pass always succeeds. An occupied cell, a ko-forbidden point, or
// a suicidal placement with no compensating capture returns a non-nil
// *IllegalMoveError.
func (p *Position) PlayMove(pt coords.Point, color Color) (*Position, error) {
	if pt.IsPass() {
		return p.PassMove(color), nil
	}

	idx := coords.Flatten(p.N, pt)
	if idx == p.N*p.N {
		return p.PassMove(color), nil
	}
	if p.Cells[idx] != Empty {
		return nil, &IllegalMoveError{Reason: "occupied", Flat: idx}
	}
	if idx == p.Ko {
		return nil, &IllegalMoveError{Reason: "ko", Flat: idx}
	}

	next := p.cloneShallow()
	next.Cells = append([]Color(nil), p.Cells...)
	next.Lib = p.Lib.Copy()
	before := append([]Color(nil), p.Cells...)

	captured, err := next.Lib.AddStone(next.Cells, color, idx)
	if err != nil {
		return nil, err
	}

	switch color {
	case Black:
		next.CapturedByBlack += len(captured)
	case White:
		next.CapturedByWhite += len(captured)
	}

	// Simple ko: forbid immediate recapture only when this move captured
	// exactly one stone and the placed stone itself is a lone stone with
	// exactly that one liberty (i.e. retaking would exactly reproduce the
	// previous board).
	next.Ko = -1
	if len(captured) == 1 {
		newGroupID := next.Lib.GroupIndex[idx]
		newGroupStones := next.Lib.Groups[newGroupID].Stones
		if len(newGroupStones) == 1 && next.Lib.LibertyCache[idx] == 1 {
			for k := range captured {
				next.Ko = k
			}
		}
	}

	next.ToPlay = color.Opponent()
	next.Ply = p.Ply + 1
	next.Recent = append(append([]PlayerMove(nil), p.Recent...), PlayerMove{Color: color, Coord: pt})
	next.pushDelta(before)
	return next, nil
}

// PassMove returns the successor position after color passes.
func (p *Position) PassMove(color Color) *Position {
	next := p.cloneShallow()
	next.Ko = -1
	next.ToPlay = color.Opponent()
	next.Ply = p.Ply + 1
	next.Recent = append(append([]PlayerMove(nil), p.Recent...), PlayerMove{Color: color, Coord: coords.Pass})
	before := append([]Color(nil), p.Cells...)
	next.pushDelta(before)
	return next
}

// IsMoveLegal reports whether color may play at pt, by attempting the play
// on a value derived from the receiver and checking for an error. This
// shares PlayMove's own code path so legality and play agreement hold by
// construction.
func (p *Position) IsMoveLegal(pt coords.Point, color Color) bool {
	_, err := p.PlayMove(pt, color)
	return err == nil
}

// AllLegalMoves returns a mask of length N*N+1 (the board plus Pass, which
// is always legal) indicating which of ToPlay's moves are legal.
func (p *Position) AllLegalMoves() []bool {
	out := make([]bool, p.N*p.N+1)
	for idx := 0; idx < p.N*p.N; idx++ {
		pt := coords.Unflatten(p.N, idx)
		out[idx] = p.IsMoveLegal(pt, p.ToPlay)
	}
	out[p.N*p.N] = true
	return out
}

// FlipPlayerTurn returns a position identical to the receiver except that
// ToPlay is swapped, with no change to ply or move history. It is used to
// align a replayed SGF's turn order without recording a synthetic move.
func (p *Position) FlipPlayerTurn() *Position {
	next := p.cloneShallow()
	next.ToPlay = p.ToPlay.Opponent()
	return next
}

// IsGameOver reports whether the last two moves were both passes.
func (p *Position) IsGameOver() bool {
	n := len(p.Recent)
	if n < 2 {
		return false
	}
	return p.Recent[n-1].Coord.IsPass() && p.Recent[n-2].Coord.IsPass()
}

// Score returns the Tromp-Taylor area score (Black stones and Black
// territory, minus White stones and White territory, minus komi),
// positive favoring Black.
func (p *Position) Score() float64 {
	black, white := p.areaScore()
	return float64(black) - float64(white) - p.Komi
}

// Result returns +1 if Black is currently ahead by score, -1 if White is,
// and 0 for an exact tie (impossible with a fractional komi but checked
// for completeness).
func (p *Position) Result() int {
	s := p.Score()
	switch {
	case s > 0:
		return 1
	case s < 0:
		return -1
	default:
		return 0
	}
}

// String renders the board as a grid of ".", "B", "W" rows, for debugging
// and test failure output.
func (p *Position) String() string {
	var b strings.Builder
	for r := 0; r < p.N; r++ {
		for c := 0; c < p.N; c++ {
			fmt.Fprint(&b, p.Cells[r*p.N+c].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
