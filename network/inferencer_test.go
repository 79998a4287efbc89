package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokigo/kigo/board"
	"github.com/gokigo/kigo/coords"
)

type fakeTensorInferencer struct {
	lastN int
}

func (f *fakeTensorInferencer) InferTensor(n int, tensor []float32) ([]float32, float32) {
	f.lastN = n
	policy := make([]float32, n*n+1)
	for i := range policy {
		policy[i] = float32(i)
	}
	return policy, 0.5
}

func TestRandomSymmetryInferencerRoundTripsPolicy(t *testing.T) {
	p := board.NewPosition(9, 6.5)
	fake := &fakeTensorInferencer{}
	inf := NewRandomSymmetryInferencer(fake, 42)

	policy, value := inf.Infer(p)
	require.Len(t, policy, 9*9+1)
	assert.Equal(t, float32(0.5), value)
	assert.Equal(t, 9, fake.lastN)
	// The Pass entry is fixed by every symmetry, so whatever the fake
	// returns there should survive the inverse transform untouched.
	assert.Equal(t, float32(9*9), policy[9*9])
}

func TestMockInferencerOnlyAssignsMassToLegalMoves(t *testing.T) {
	pos := board.NewPosition(9, 6.5)
	pos, err := pos.PlayMove(coords.Point{Row: 4, Col: 4}, board.Black)
	require.NoError(t, err)

	mock := MockInferencer{Value: 0.1}
	policy, value := mock.Infer(pos)
	assert.Equal(t, float32(0.1), value)

	legal := pos.AllLegalMoves()
	var sum float32
	for i, ok := range legal {
		if !ok {
			assert.Equal(t, float32(0), policy[i])
		} else {
			sum += policy[i]
		}
	}
	assert.InDelta(t, float32(1), sum, 1e-5)
}

func TestMockInferencerInferManyMatchesInferPerPosition(t *testing.T) {
	a := board.NewPosition(9, 6.5)
	b, err := a.PlayMove(coords.Point{Row: 4, Col: 4}, board.Black)
	require.NoError(t, err)

	mock := MockInferencer{Value: 0.25}
	policies, values := mock.InferMany([]*board.Position{a, b})
	require.Len(t, policies, 2)
	require.Len(t, values, 2)

	wantPolicyA, wantValueA := mock.Infer(a)
	wantPolicyB, wantValueB := mock.Infer(b)
	assert.Equal(t, wantPolicyA, policies[0])
	assert.Equal(t, wantValueA, values[0])
	assert.Equal(t, wantPolicyB, policies[1])
	assert.Equal(t, wantValueB, values[1])
}
