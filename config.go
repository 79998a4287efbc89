package kigo

import (
	"github.com/gokigo/kigo/mcts"
	"github.com/gokigo/kigo/network"
)

// Config holds everything a Player needs to run one game: board shape,
// the MCTS and network shape configs, and the resignation/depth-cap
// parameters that gate the driver loop.
type Config struct {
	Name string

	BoardSize int
	Komi      float64

	MCTSConf mcts.Config
	NetConf  network.Config

	// ReadoutsPerMove is the per-move readout budget R: the driver runs
	// readouts until root.N reaches the pre-move visit count plus R.
	ReadoutsPerMove int

	// ResignThreshold is a negative constant; the current player resigns
	// when to_play*root.Q drops below it.
	ResignThreshold float32

	// ResignDisableProb is the fraction of games (e.g. 0.05) that play to
	// the end regardless of ResignThreshold, to calibrate the threshold
	// against false positives.
	ResignDisableProb float64
}

// DefaultConfig returns a configuration scaled to an n x n board.
func DefaultConfig(n int) Config {
	return Config{
		Name:              "kigo",
		BoardSize:         n,
		Komi:              7.5,
		MCTSConf:          mcts.DefaultConfig(),
		NetConf:           network.DefaultConfig(n),
		ReadoutsPerMove:   400,
		ResignThreshold:   -0.9,
		ResignDisableProb: 0.05,
	}
}

// MaxGameLength returns the maximum ply count before the driver forces
// termination, floor(1.25*N*N).
func (c Config) MaxGameLength() int {
	return (5 * c.BoardSize * c.BoardSize) / 4
}

// TemperatureCutoff returns the ply past which move selection switches
// from sampling to argmax, N*N/12.
func (c Config) TemperatureCutoff() int {
	return (c.BoardSize * c.BoardSize) / 12
}

// IsValid reports whether the configuration is internally consistent
// enough to run a game.
func (c Config) IsValid() bool {
	return c.BoardSize > 0 &&
		c.ReadoutsPerMove > 0 &&
		c.ResignThreshold < 0 &&
		c.ResignDisableProb >= 0 && c.ResignDisableProb <= 1 &&
		c.NetConf.IsValid()
}
