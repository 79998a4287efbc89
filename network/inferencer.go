package network

import (
	"math/rand"

	"github.com/gokigo/kigo/board"
	"github.com/gokigo/kigo/features"
)

// Inferencer evaluates a Position and returns a policy over N*N+1 actions
// (board points plus Pass) and a scalar value. The search backs that
// value up unchanged in its Black-positive convention (+1 favors Black,
// whichever side is to play). It is the sole point of contact between the
// search and a neural network; tests and self-play drivers alike can
// supply any implementation.
type Inferencer interface {
	Infer(p *board.Position) (policy []float32, value float32)

	// InferMany evaluates a batch of positions in one call so a network
	// backed by batched hardware inference isn't forced through one
	// position at a time; positions[i] corresponds to policies[i] and
	// values[i].
	InferMany(positions []*board.Position) (policies [][]float32, values []float32)
}

// InferencerFunc adapts a plain function to the Inferencer interface.
// InferMany falls back to calling Infer once per position.
type InferencerFunc func(p *board.Position) ([]float32, float32)

func (f InferencerFunc) Infer(p *board.Position) ([]float32, float32) { return f(p) }

func (f InferencerFunc) InferMany(positions []*board.Position) ([][]float32, []float32) {
	policies := make([][]float32, len(positions))
	values := make([]float32, len(positions))
	for i, p := range positions {
		policies[i], values[i] = f(p)
	}
	return policies, values
}

// RandomSymmetryInferencer wraps a TensorInferencer so that every query is
// presented to the underlying network under a uniformly random board
// symmetry: the feature tensor is transformed before inference and the
// returned policy is transformed back by the symmetry's inverse. The
// scalar value is symmetry-invariant and passes through unchanged.
//
// It wraps a TensorInferencer rather than an Inferencer because an
// Inferencer accepts a Position and does its own feature extraction;
// RandomSymmetryInferencer extracts the tensor itself so that it controls
// which symmetry the network sees.
type RandomSymmetryInferencer struct {
	Tensor TensorInferencer
	Rand   *rand.Rand
}

// TensorInferencer evaluates an already-extracted, already-transformed
// feature tensor directly, bypassing feature extraction. Concrete
// network implementations satisfy this rather than Inferencer so that
// RandomSymmetryInferencer can control exactly which symmetry they see.
type TensorInferencer interface {
	InferTensor(n int, tensor []float32) (policy []float32, value float32)
}

// NewRandomSymmetryInferencer builds a wrapper with its own private
// random source so concurrent searches on different goroutines do not
// contend over a shared one.
func NewRandomSymmetryInferencer(t TensorInferencer, seed int64) *RandomSymmetryInferencer {
	return &RandomSymmetryInferencer{Tensor: t, Rand: rand.New(rand.NewSource(seed))}
}

func (r *RandomSymmetryInferencer) Infer(p *board.Position) ([]float32, float32) {
	all := features.All()
	s := all[r.Rand.Intn(len(all))]

	tensor, _ := features.ExtractFeatures(p)
	transformed := features.ApplyTensor(s, p.N, tensor)

	policy, value := r.Tensor.InferTensor(p.N, features.ToFloat32(transformed))
	restored := features.ApplyPolicy(s.Inverse(), p.N, policy)
	return restored, value
}

// InferMany evaluates each position under its own independently-drawn
// symmetry. The underlying TensorInferencer sees one tensor at a time,
// same as Infer; batching here is a per-call API so a caller driving
// many concurrent games can present them as a single unit of work.
func (r *RandomSymmetryInferencer) InferMany(positions []*board.Position) ([][]float32, []float32) {
	policies := make([][]float32, len(positions))
	values := make([]float32, len(positions))
	for i, p := range positions {
		policies[i], values[i] = r.Infer(p)
	}
	return policies, values
}

// MockInferencer is a deterministic stand-in network for tests: it
// returns a uniform policy over legal moves and a fixed value, so search
// and driver tests don't depend on a trained model.
type MockInferencer struct {
	Value float32
}

func (m MockInferencer) Infer(p *board.Position) ([]float32, float32) {
	legal := p.AllLegalMoves()
	policy := make([]float32, len(legal))
	count := 0
	for _, ok := range legal {
		if ok {
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	share := float32(1) / float32(count)
	for i, ok := range legal {
		if ok {
			policy[i] = share
		}
	}
	return policy, m.Value
}

// InferMany evaluates each position independently; MockInferencer has no
// batched backend to exercise, so this exists to satisfy Inferencer and
// let tests exercise the batched call path without a real network.
func (m MockInferencer) InferMany(positions []*board.Position) ([][]float32, []float32) {
	policies := make([][]float32, len(positions))
	values := make([]float32, len(positions))
	for i, p := range positions {
		policies[i], values[i] = m.Infer(p)
	}
	return policies, values
}
