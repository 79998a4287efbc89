package kigo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokigo/kigo/board"
	"github.com/gokigo/kigo/network"
)

type failingCloser struct{ err error }

func (f failingCloser) Close() error { return f.err }

func TestPlayerCloseAggregatesFailures(t *testing.T) {
	conf := DefaultConfig(9)
	p := NewPlayer(conf, network.MockInferencer{},
		failingCloser{err: errors.New("first handle")},
		failingCloser{err: errors.New("second handle")},
	)

	err := p.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first handle")
	assert.Contains(t, err.Error(), "second handle")
}

func TestPlayerCloseNoErrorsWhenNoClosers(t *testing.T) {
	conf := DefaultConfig(9)
	p := NewPlayer(conf, network.MockInferencer{})
	assert.NoError(t, p.Close())
}

func TestInitializeGameDefaultsToEmptyPosition(t *testing.T) {
	conf := DefaultConfig(9)
	p := NewPlayer(conf, network.MockInferencer{})
	require.NoError(t, p.InitializeGame(nil))

	pos := p.Position()
	assert.Equal(t, board.Black, pos.ToPlay)
	assert.Equal(t, 1, p.Root().N())
}
