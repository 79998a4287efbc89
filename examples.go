package kigo

import (
	"math/rand"
	"time"

	"github.com/gokigo/kigo/network"
)

// Example is one training sample: the feature tensor of a position the
// root was searched from, the root visit distribution that became its
// training target (plain before the temperature cutoff, sharpened after
// it), and the final game outcome from that position's
// to-play perspective once the game concluded.
type Example struct {
	Board  []float32
	Policy []float32

	// toPlaySign is +1 if this example was recorded with Black to play,
	// -1 if White; finalizeResult consumes it to produce Value.
	toPlaySign float32

	// Value is the training target z, filled in by finalizeResult once
	// the game's outcome is known. It is 0 (unset) until then.
	Value float32
}

// finalizeResult assigns z to every recorded example: +1 if the example's
// recorded to-play color matches the winner, -1 otherwise, 0 for a draw.
func finalizeResult(examples []Example, winnerSign float32) {
	for i := range examples {
		switch {
		case winnerSign == 0:
			examples[i].Value = 0
		case examples[i].toPlaySign == winnerSign:
			examples[i].Value = 1
		default:
			examples[i].Value = -1
		}
	}
}

// BatchExamples shuffles examples and packs them into dense tensors sized
// to whole multiples of conf.BatchSize, ready to hand to an external
// training sink.
func BatchExamples(conf network.Config, examples []Example) (network.Batch, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	shuffled := append([]Example(nil), examples...)
	for i := range shuffled {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	boards := make([][]float32, len(shuffled))
	policies := make([][]float32, len(shuffled))
	values := make([]float32, len(shuffled))
	for i, ex := range shuffled {
		boards[i] = ex.Board
		policies[i] = ex.Policy
		values[i] = ex.Value
	}
	return network.PackBatches(conf, boards, policies, values)
}
