// Package network defines the Inferencer contract the search drives, a
// symmetry-randomizing decorator for it, and the batching helpers used to
// assemble training examples.
package network

import "github.com/gokigo/kigo/features"

// Config describes a dual (policy+value) network's shape. It carries
// enough information to construct or validate a concrete network
// implementation without this package needing to depend on one.
type Config struct {
	K            int `json:"k"`             // number of convolutional filters
	SharedLayers int `json:"shared_layers"` // number of shared residual blocks
	FC           int `json:"fc"`             // fully-connected layer width
	BatchSize    int `json:"batch_size"`
	BoardSize    int `json:"board_size"`
	Features     int `json:"features"`     // input feature plane count
	ActionSpace  int `json:"action_space"` // N*N + 1 (board points plus pass)
	FwdOnly      bool `json:"fwd_only"`    // inference-only graph, no training ops
}

// DefaultConfig returns a shape scaled to an n x n board, using the
// feature plane count the features package actually produces.
func DefaultConfig(n int) Config {
	k := round((n * n) / 3)
	return Config{
		K:            k,
		SharedLayers: n,
		FC:           2 * k,
		BatchSize:    256,
		BoardSize:    n,
		Features:     features.Planes,
		ActionSpace:  n*n + 1,
	}
}

// IsValid reports whether the configuration is internally consistent
// enough to build a network from.
func (c Config) IsValid() bool {
	return c.K >= 1 &&
		c.ActionSpace >= 3 &&
		c.SharedLayers >= 0 &&
		c.FC > 1 &&
		c.BatchSize >= 1 &&
		c.Features > 0
}

// round returns the power of two nearest a, taking the larger one on a
// tie, matching the filter-count heuristic used to size a dual-head conv net.
func round(a int) int {
	n := a - 1
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++

	lt := n / 2
	if (a - lt) < (n - a) {
		return lt
	}
	return n
}
