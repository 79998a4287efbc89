package kigo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokigo/kigo/board"
	"github.com/gokigo/kigo/mcts"
	"github.com/gokigo/kigo/network"
)

// almostDoneFullBoard returns a 9x9 position with every cell occupied by
// Black: the only legal action for either side, forever, is Pass, so the
// game can only end by two passes at a fixed, already-decided score. This
// exercises the search's terminal-value propagation without depending on
// any particular move sequence.
func almostDoneFullBoard(komi float64) *board.Position {
	n := 9
	cells := make([]board.Color, n*n)
	for i := range cells {
		cells[i] = board.Black
	}
	return &board.Position{
		N:      n,
		Cells:  cells,
		ToPlay: board.Black,
		// Past the early-pass-exclusion window (ply < 8*N) so Pass, the
		// only legal action here, is a selectable candidate.
		Ply:  8 * n,
		Ko:   -1,
		Komi: komi,
		Lib:  board.LibertyTrackerFromBoard(n, cells),
	}
}

func TestGuaranteedWinPropagatesThroughSearch(t *testing.T) {
	start := almostDoneFullBoard(0.5)
	conf := DefaultConfig(9)
	conf.MCTSConf = mcts.Config{NumSimulations: 100}
	conf.ReadoutsPerMove = 100
	// White faces a certain loss here and would otherwise resign under the
	// default threshold; disable resignation so the game ends by two passes.
	conf.ResignDisableProb = 1

	p := NewPlayer(conf, network.MockInferencer{Value: 0})
	require.NoError(t, p.InitializeGame(start))

	examples, result, err := PlayGame(p)
	require.NoError(t, err)

	assert.False(t, result.WasResign)
	assert.Equal(t, board.Black, result.Winner)
	assert.Equal(t, "B+80.5", result.String())

	require.NotEmpty(t, p.moves)
	assert.Equal(t, 9*9, p.moves[0].move, "the only legal action on a full board is Pass")
	assert.Greater(t, p.moves[0].q, float32(0), "root Q should reflect Black's already-secured win")

	for _, ex := range examples {
		if ex.toPlaySign > 0 {
			assert.Equal(t, float32(1), ex.Value)
		} else {
			assert.Equal(t, float32(-1), ex.Value)
		}
	}
}

// constantInferencer always returns the same value regardless of position,
// used to force an immediate resignation.
type constantInferencer struct {
	value float32
}

func (c constantInferencer) Infer(p *board.Position) ([]float32, float32) {
	legal := p.AllLegalMoves()
	policy := make([]float32, len(legal))
	count := 0
	for _, ok := range legal {
		if ok {
			count++
		}
	}
	share := float32(1) / float32(count)
	for i, ok := range legal {
		if ok {
			policy[i] = share
		}
	}
	return policy, c.value
}

func (c constantInferencer) InferMany(positions []*board.Position) ([][]float32, []float32) {
	policies := make([][]float32, len(positions))
	values := make([]float32, len(positions))
	for i, p := range positions {
		policies[i], values[i] = c.Infer(p)
	}
	return policies, values
}

func TestResignationPath(t *testing.T) {
	conf := DefaultConfig(9)
	conf.ResignThreshold = -0.5
	conf.ResignDisableProb = 0
	conf.ReadoutsPerMove = 1
	conf.MCTSConf = mcts.Config{NumSimulations: 1}

	p := NewPlayer(conf, constantInferencer{value: -0.9})
	require.NoError(t, p.InitializeGame(nil))

	_, result, err := PlayGame(p)
	require.NoError(t, err)

	assert.True(t, result.WasResign)
	assert.Equal(t, board.Black, result.ResignedBy)
	assert.Equal(t, board.White, result.Winner)
	assert.Equal(t, "W+R", result.String())
}

func TestFinalizeResultAssignsZByToPlaySign(t *testing.T) {
	examples := []Example{
		{toPlaySign: 1},
		{toPlaySign: -1},
	}
	finalizeResult(examples, board.Black.Sign())
	assert.Equal(t, float32(1), examples[0].Value)
	assert.Equal(t, float32(-1), examples[1].Value)

	finalizeResult(examples, 0)
	assert.Equal(t, float32(0), examples[0].Value)
	assert.Equal(t, float32(0), examples[1].Value)
}
