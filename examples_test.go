package kigo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokigo/kigo/network"
)

func TestBatchExamplesPacksWholeBatches(t *testing.T) {
	conf := network.DefaultConfig(9)
	conf.BatchSize = 2

	examples := make([]Example, 5)
	for i := range examples {
		board := make([]float32, conf.Features*conf.BoardSize*conf.BoardSize)
		policy := make([]float32, conf.ActionSpace)
		examples[i] = Example{Board: board, Policy: policy, Value: float32(i)}
	}

	batch, err := BatchExamples(conf, examples)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.Batches)
}

func TestBatchExamplesRejectsTooFewExamples(t *testing.T) {
	conf := network.DefaultConfig(9)
	conf.BatchSize = 256

	_, err := BatchExamples(conf, nil)
	assert.Error(t, err)
}
