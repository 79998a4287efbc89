package mcts

import (
	"sync"

	"github.com/gokigo/kigo/board"
)

// Status mirrors a node's place in the arena: freshly allocated nodes are
// Active, and a node is marked Pruned when its subtree is dropped on root
// advancement, just before free resets it to Invalid and returns its slot
// to the free list. No search code reads Status.
type Status uint32

const (
	Invalid Status = iota
	Active
	Pruned
)

// Node is one state in the search tree: a Position reached from the
// parent by playing the move at fmove, together with the dense per-action
// statistics PUCT selection needs. Node is allocated and owned by exactly
// one Tree's arena; nodeID is this node's index into that arena.
type Node struct {
	lock sync.Mutex

	id nodeID

	parent nodeID
	fmove  int // flattened move index into the parent's action space, -1 for root

	status Status

	Position *board.Position

	n int     // visit count of this node
	w float32 // accumulated value, Black-positive absolute convention

	childN     []float32
	childW     []float32
	childPrior []float32

	children map[int]nodeID

	isExpanded bool
}

func (n *Node) reset() {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.parent = nilNode
	n.fmove = -1
	n.status = Invalid
	n.Position = nil
	n.n = 0
	n.w = 0
	n.childN = nil
	n.childW = nil
	n.childPrior = nil
	n.children = nil
	n.isExpanded = false
}

// N returns the node's visit count.
func (n *Node) N() int {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.n
}

// W returns the node's accumulated value.
func (n *Node) W() float32 {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.w
}

// Q returns the node's own mean value, or 0 if unvisited. selectBestChild
// computes the same value as the first-play-urgency fallback for an
// unvisited child.
func (n *Node) Q() float32 {
	n.lock.Lock()
	defer n.lock.Unlock()
	if n.n == 0 {
		return 0
	}
	return n.w / float32(n.n)
}

// IsExpanded reports whether incorporateResults has run on this node.
func (n *Node) IsExpanded() bool {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.isExpanded
}

// ChildN returns a copy of the per-action visit counts.
func (n *Node) ChildN() []float32 {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]float32(nil), n.childN...)
}

// ChildPrior returns a copy of the per-action prior.
func (n *Node) ChildPrior() []float32 {
	n.lock.Lock()
	defer n.lock.Unlock()
	return append([]float32(nil), n.childPrior...)
}

// ChildQ returns child_W[a]/child_N[a] for every action, 0 where unvisited.
func (n *Node) ChildQ() []float32 {
	n.lock.Lock()
	defer n.lock.Unlock()
	out := make([]float32, len(n.childN))
	for a := range out {
		if n.childN[a] > 0 {
			out[a] = n.childW[a] / n.childN[a]
		}
	}
	return out
}
