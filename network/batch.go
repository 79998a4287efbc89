package network

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Batch is a shuffled, batch-size-truncated set of training examples
// packed into dense tensors ready for a training loop: Xs has shape
// (batches*BatchSize, Features, N, N), Policies has shape
// (batches*BatchSize, N*N+1), Values has shape (batches*BatchSize).
type Batch struct {
	Xs       *tensor.Dense
	Policies *tensor.Dense
	Values   *tensor.Dense
	Batches  int
}

// PackBatches assembles boards, policies, and values (already shuffled by
// the caller, one training example per index) into a Batch sized to
// whole multiples of conf.BatchSize; any remainder examples that don't
// fill a final batch are dropped, matching how a shuffled-example training
// loop truncates its leftover tail.
func PackBatches(conf Config, boards [][]float32, policies [][]float32, values []float32) (Batch, error) {
	if len(boards) != len(policies) || len(boards) != len(values) {
		return Batch{}, errors.Errorf("network: mismatched example counts: %d boards, %d policies, %d values",
			len(boards), len(policies), len(values))
	}

	batches := len(boards) / conf.BatchSize
	total := batches * conf.BatchSize
	if batches == 0 {
		return Batch{}, errors.Errorf("network: not enough examples (%d) to fill one batch of %d", len(boards), conf.BatchSize)
	}

	var xsBacking, policiesBacking []float32
	valuesBacking := make([]float32, 0, total)
	for i := 0; i < total; i++ {
		xsBacking = append(xsBacking, boards[i]...)
		policiesBacking = append(policiesBacking, policies[i]...)
		valuesBacking = append(valuesBacking, values[i])
	}

	xs := tensor.New(tensor.WithBacking(xsBacking), tensor.WithShape(total, conf.Features, conf.BoardSize, conf.BoardSize))
	pis := tensor.New(tensor.WithBacking(policiesBacking), tensor.WithShape(total, conf.ActionSpace))
	vs := tensor.New(tensor.WithBacking(valuesBacking), tensor.WithShape(total))

	return Batch{Xs: xs, Policies: pis, Values: vs, Batches: batches}, nil
}
