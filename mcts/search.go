package mcts

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// illegalPriorPenalty is subtracted from the prior of every illegal
// action so the dense prior vector stays usable by vectorized selection
// without ever being renormalized.
const illegalPriorPenalty = 10.0

// AssertionViolationError reports a broken search invariant: double
// expansion, re-expansion of a terminal node, or a legality-mask
// mismatch. Per the engine's error model this is always fatal — callers
// are expected to let it propagate rather than retry. It embeds a
// pkg/errors-constructed error so the failure carries a stack trace.
type AssertionViolationError struct {
	error
}

func newAssertionViolationError(msg string) *AssertionViolationError {
	return &AssertionViolationError{error: errors.New("mcts: assertion violated: " + msg)}
}

// ShapeMismatchError reports a network output of unexpected length.
type ShapeMismatchError struct {
	error
}

func newShapeMismatchError(msg string) *ShapeMismatchError {
	return &ShapeMismatchError{error: errors.New("mcts: shape mismatch: " + msg)}
}

// ExpandRoot runs the driver's one-time pre-evaluation of a freshly
// created root: a single network call whose results are incorporated
// with up_to equal to the root itself, giving the selection rule priors
// before the first descent.
func (t *Tree) ExpandRoot() error {
	policy, value := t.nn.Infer(t.Root().Position)
	return t.incorporateResults(t.root, policy, value, t.root)
}

// Search runs n readouts sequentially. Per the engine's concurrency
// model the core is single-threaded within one game's tree: there is no
// virtual loss and no intra-tree parallelism here. Only the network
// itself is a shared resource, and it must tolerate concurrent callers
// when independently-running games are parallelized above this package.
func (t *Tree) Search(n int) error {
	for i := 0; i < n; i++ {
		if err := t.readout(); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) readout() error {
	leafID := t.selectLeaf(t.root)
	leaf := t.nodeFromID(leafID)

	if leaf.IsExpanded() {
		// Terminal stickiness: a leaf selection landed back on an
		// already-expanded terminal node. Re-backup its known result
		// without re-running incorporate_results, which would violate
		// the single-expansion assertion.
		value := float32(leaf.Position.Result())
		t.backup(leafID, value, t.root)
		return nil
	}

	policy, value := t.nn.Infer(leaf.Position)
	return t.incorporateResults(leafID, policy, value, t.root)
}

// selectLeaf descends from node via PUCT selection until it reaches a
// node with zero visits (never yet expanded) or a terminal Position,
// creating any child nodes visited for the first time along the way.
func (t *Tree) selectLeaf(root nodeID) nodeID {
	cur := root
	for {
		node := t.nodeFromID(cur)
		if node.N() == 0 {
			return cur
		}
		if node.Position.IsGameOver() {
			return cur
		}
		move := t.selectBestChild(cur)
		cur = t.maybeCreateChild(cur, move)
	}
}

// selectBestChild implements the PUCT score at node for each candidate
// action, returning the argmax (ties favor the smallest flattened
// index). Pass is excluded from consideration during the early-game
// window (ply < 8*boardSize).
func (t *Tree) selectBestChild(id nodeID) int {
	node := t.nodeFromID(id)
	node.lock.Lock()
	childN := append([]float32(nil), node.childN...)
	childW := append([]float32(nil), node.childW...)
	childPrior := append([]float32(nil), node.childPrior...)
	ownQ := float32(0)
	if node.n > 0 {
		ownQ = node.w / float32(node.n)
	}
	parentVisits := node.n
	ply := node.Position.Ply
	node.lock.Unlock()

	toPlaySign := node.Position.ToPlay.Sign()
	sqrtParent := math32.Sqrt(math32.Max(1, float32(parentVisits)))

	excludePass := ply < earlyPassExclusionFactor*t.boardSize
	passIndex := t.actionSpace - 1

	best := -1
	bestScore := math32.Inf(-1)
	for a := 0; a < t.actionSpace; a++ {
		if excludePass && a == passIndex {
			continue
		}
		q := ownQ
		if childN[a] > 0 {
			q = childW[a] / childN[a]
		}
		priorTerm := explorationConstant * childPrior[a] * sqrtParent / (1 + childN[a])
		score := toPlaySign*q + priorTerm
		if score > bestScore {
			bestScore = score
			best = a
		}
	}
	if best < 0 {
		panic(fmt.Sprintf("mcts: selectBestChild found no candidate action (excludePass=%v)", excludePass))
	}
	return best
}

// incorporateResults expands leaf with a network's (policy, value),
// masks illegal priors by subtraction, and backs the value up to upTo.
func (t *Tree) incorporateResults(leaf nodeID, policy []float32, value float32, upTo nodeID) error {
	node := t.nodeFromID(leaf)
	if node.IsExpanded() {
		return newAssertionViolationError("incorporate_results called twice on the same node")
	}
	if len(policy) != t.actionSpace {
		return newShapeMismatchError(fmt.Sprintf("policy has length %d, want %d", len(policy), t.actionSpace))
	}

	if node.Position.IsGameOver() {
		value = float32(node.Position.Result())
	}

	legal := node.Position.AllLegalMoves()
	prior := make([]float32, t.actionSpace)
	for a := range prior {
		l := float32(0)
		if legal[a] {
			l = 1
		}
		prior[a] = policy[a] - illegalPriorPenalty*(1-l)
	}

	node.lock.Lock()
	node.childPrior = prior
	node.isExpanded = true
	node.lock.Unlock()

	t.backup(leaf, value, upTo)
	return nil
}

// backup walks from leaf toward upTo (inclusive), incrementing visit
// counts and accumulating value in the Black-positive absolute
// convention, mirroring each step into the parent's child_N/child_W.
func (t *Tree) backup(leaf nodeID, value float32, upTo nodeID) {
	cur := leaf
	for {
		node := t.nodeFromID(cur)
		node.lock.Lock()
		node.n++
		node.w += value
		n, w, parentID, fmove := node.n, node.w, node.parent, node.fmove
		node.lock.Unlock()

		if parentID != nilNode {
			parent := t.nodeFromID(parentID)
			parent.lock.Lock()
			parent.childN[fmove] = float32(n)
			parent.childW[fmove] = w
			parent.lock.Unlock()
		}

		if cur == upTo || parentID == nilNode {
			return
		}
		cur = parentID
	}
}
