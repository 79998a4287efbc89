package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokigo/kigo/coords"
)

func pt(row, col int) coords.Point { return coords.Point{Row: row, Col: col} }

func TestPlayMoveSingleStoneCapture(t *testing.T) {
	p := NewPosition(9, 6.5)
	// Surround a lone white stone at (4,4) with black on three sides, then
	// play the fourth to capture it.
	var err error
	p, err = p.PlayMove(pt(3, 4), Black)
	require.NoError(t, err)
	p, err = p.PlayMove(pt(4, 4), White)
	require.NoError(t, err)
	p, err = p.PlayMove(pt(5, 4), Black)
	require.NoError(t, err)
	p, err = p.PlayMove(pt(0, 0), White) // elsewhere, keep turn order
	require.NoError(t, err)
	p, err = p.PlayMove(pt(4, 3), Black)
	require.NoError(t, err)
	p, err = p.PlayMove(pt(1, 1), White)
	require.NoError(t, err)
	p, err = p.PlayMove(pt(4, 5), Black)
	require.NoError(t, err)

	assert.Equal(t, Empty, p.Cells[idx(9, 4, 4)])
	assert.Equal(t, 1, p.CapturedByBlack)
}

func TestKoForbidsImmediateRecapture(t *testing.T) {
	// Classic corner ko shape, built up stone by stone so the final white
	// play at (1,1) captures exactly the lone black stone at (1,2) and is
	// itself left with a single liberty there:
	//   . B W .
	//   B . B W
	//   . B W .
	n := 9
	p := NewPosition(n, 6.5)
	setup := []struct {
		pt    coords.Point
		color Color
	}{
		{pt(0, 1), Black},
		{pt(0, 2), White},
		{pt(1, 0), Black},
		{pt(1, 3), White},
		{pt(1, 2), Black},
		{pt(2, 1), Black},
		{pt(2, 2), White},
	}
	var err error
	for _, mv := range setup {
		p, err = p.PlayMove(mv.pt, mv.color)
		require.NoError(t, err)
	}

	p, err = p.PlayMove(pt(1, 1), White)
	require.NoError(t, err)
	assert.Equal(t, Empty, p.Cells[idx(n, 1, 2)])
	assert.Equal(t, 1, p.CapturedByWhite)
	require.NotEqual(t, -1, p.Ko)
	assert.Equal(t, idx(n, 1, 2), p.Ko)

	_, err = p.PlayMove(pt(1, 2), Black)
	require.Error(t, err)
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "ko", illegal.Reason)

	// Playing elsewhere clears the ko point for next time around.
	p2, err := p.PlayMove(pt(8, 8), Black)
	require.NoError(t, err)
	assert.Equal(t, -1, p2.Ko)
}

func TestSuicideRejected(t *testing.T) {
	n := 9
	p := NewPosition(n, 6.5)
	var err error
	p, err = p.PlayMove(pt(0, 1), White)
	require.NoError(t, err)
	p, err = p.PlayMove(pt(8, 8), Black)
	require.NoError(t, err)
	p, err = p.PlayMove(pt(1, 0), White)
	require.NoError(t, err)

	_, err = p.PlayMove(pt(0, 0), Black)
	require.Error(t, err)
	var illegal *IllegalMoveError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "suicide", illegal.Reason)
}

func TestIsMoveLegalAgreesWithPlayMove(t *testing.T) {
	p := NewPosition(9, 6.5)
	var err error
	p, err = p.PlayMove(pt(4, 4), Black)
	require.NoError(t, err)

	assert.False(t, p.IsMoveLegal(pt(4, 4), White), "occupied cell must be illegal")
	assert.True(t, p.IsMoveLegal(pt(3, 3), White))

	_, playErr := p.PlayMove(pt(4, 4), White)
	assert.Error(t, playErr)
}

func TestAllLegalMovesMatchesPerPointCheck(t *testing.T) {
	p := NewPosition(9, 6.5)
	var err error
	p, err = p.PlayMove(pt(4, 4), Black)
	require.NoError(t, err)
	p, err = p.PlayMove(pt(4, 5), White)
	require.NoError(t, err)

	mask := p.AllLegalMoves()
	require.Len(t, mask, 9*9+1)
	for i := 0; i < 9*9; i++ {
		want := p.IsMoveLegal(coords.Unflatten(9, i), p.ToPlay)
		assert.Equal(t, want, mask[i], "mismatch at flat index %d", i)
	}
	assert.True(t, mask[9*9], "pass must always be legal")
}

func TestTwoPassesEndsGame(t *testing.T) {
	p := NewPosition(9, 6.5)
	assert.False(t, p.IsGameOver())
	p, err := p.PlayMove(coords.Pass, Black)
	require.NoError(t, err)
	assert.False(t, p.IsGameOver())
	p, err = p.PlayMove(coords.Pass, White)
	require.NoError(t, err)
	assert.True(t, p.IsGameOver())
}

func TestScoreEmptyBoardIsNegativeKomi(t *testing.T) {
	p := NewPosition(9, 6.5)
	assert.Equal(t, -6.5, p.Score())
	assert.Equal(t, -1, p.Result())
}

func TestScoreCountsTerritoryByBorder(t *testing.T) {
	// With only black stones on the board, every empty region borders
	// black exclusively, so Tromp-Taylor area scoring awards Black the
	// entire board.
	n := 9
	p := NewPosition(n, 0)
	var err error
	for _, mv := range []coords.Point{pt(0, 1), pt(1, 0), pt(1, 2), pt(2, 1)} {
		p, err = p.PlayMove(mv, Black)
		require.NoError(t, err)
	}
	assert.Equal(t, float64(n*n), p.Score())
}

func TestBoardDeltasAreBoundedAndAccurate(t *testing.T) {
	p := NewPosition(9, 6.5)
	var err error
	for i := 0; i < 10; i++ {
		color := Black
		if i%2 == 1 {
			color = White
		}
		p, err = p.PlayMove(pt(i/9, i%9), color)
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, len(p.BoardDeltas), maxBoardDeltas)

	latest := p.BoardDeltas[0]
	lastMove := p.Recent[len(p.Recent)-1]
	flat := coords.Flatten(9, lastMove.Coord)
	assert.Equal(t, int8(lastMove.Color), latest[flat])
}

func TestFlipPlayerTurnDoesNotAdvancePly(t *testing.T) {
	p := NewPosition(9, 6.5)
	flipped := p.FlipPlayerTurn()
	assert.Equal(t, p.Ply, flipped.Ply)
	assert.Equal(t, White, flipped.ToPlay)
	assert.Equal(t, Black, p.ToPlay)
}
