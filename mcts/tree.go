package mcts

import (
	"sync"
	"time"

	"github.com/chewxy/math32"
	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/gokigo/kigo/board"
	"github.com/gokigo/kigo/network"
)

// exploration constant c in the PUCT score, per the engine's fixed value.
const explorationConstant float32 = 5.0

// dirichletNumerator divided by the board size N gives the standard
// alpha = 0.03 * 19 / N dirichlet concentration.
const dirichletNumerator = 0.03 * 19

// earlyPassExclusionFactor bounds the early-game window (plies < 8*N)
// during which Pass is excluded from leaf selection.
const earlyPassExclusionFactor = 8

// Config configures one Tree's search behavior.
type Config struct {
	NumSimulations int // per-move readout budget

	// RandomTemperature is carried for callers' configuration only:
	// ChildrenAsPi and SelectMove do not read it. Their high/low
	// temperature behavior is chosen by their temperatureHigh argument.
	RandomTemperature float32
}

// DefaultConfig returns sane defaults for a 9x9-scale game.
func DefaultConfig() Config {
	return Config{NumSimulations: 400, RandomTemperature: 1.0}
}

// Tree is the arena owning every Node reached by the current game, plus
// the search's connection to the network. Nodes are allocated from a
// backing slice and indexed by nodeID so that dropping a subtree on
// root advancement is a cheap free-list push rather than a GC-tracked
// pointer teardown.
type Tree struct {
	sync.RWMutex
	Config

	boardSize   int
	actionSpace int

	nn   network.Inferencer
	rand *distrand.Rand

	nodes    []Node
	freelist []nodeID

	root nodeID
}

// New creates a Tree rooted at the given Position.
func New(root *board.Position, nn network.Inferencer, conf Config) *Tree {
	t := &Tree{
		Config:      conf,
		boardSize:   root.N,
		actionSpace: root.N*root.N + 1,
		nn:          nn,
		rand:        distrand.New(distrand.NewSource(uint64(time.Now().UnixNano()))),
		nodes:       make([]Node, 0, 4096),
	}
	rootID := t.alloc()
	n := t.nodeFromID(rootID)
	n.parent = nilNode
	n.fmove = -1
	n.status = Active
	n.Position = root
	n.childN = make([]float32, t.actionSpace)
	n.childW = make([]float32, t.actionSpace)
	n.childPrior = make([]float32, t.actionSpace)
	n.children = make(map[int]nodeID)
	t.root = rootID
	return t
}

// Root returns the node the tree is currently rooted at.
func (t *Tree) Root() *Node { return t.nodeFromID(t.root) }

// ActionSpace returns N*N+1.
func (t *Tree) ActionSpace() int { return t.actionSpace }

func (t *Tree) nodeFromID(id nodeID) *Node {
	t.RLock()
	defer t.RUnlock()
	return &t.nodes[int(id)]
}

// alloc pulls a node from the free list or grows the arena.
func (t *Tree) alloc() nodeID {
	t.Lock()
	defer t.Unlock()
	if l := len(t.freelist); l > 0 {
		id := t.freelist[l-1]
		t.freelist = t.freelist[:l-1]
		return id
	}
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{id: id})
	return id
}

// free returns a node's slot to the free list, clearing its state.
func (t *Tree) free(id nodeID) {
	t.nodeFromID(id).reset()
	t.Lock()
	t.freelist = append(t.freelist, id)
	t.Unlock()
}

// maybeCreateChild returns the existing child of node for move, creating
// and registering it (unexpanded, N=0) if this is its first visit.
func (t *Tree) maybeCreateChild(parentID nodeID, move int) nodeID {
	parent := t.nodeFromID(parentID)
	parent.lock.Lock()
	if id, ok := parent.children[move]; ok {
		parent.lock.Unlock()
		return id
	}
	parent.lock.Unlock()

	childPos, err := parent.Position.PlayMove(flatToPoint(parent.Position.N, move), parent.Position.ToPlay)
	if err != nil {
		// The search only ever descends through moves masked as legal by
		// child_prior's illegal-move penalty, so this indicates a bug in
		// the caller rather than a recoverable condition.
		panic(err)
	}

	id := t.alloc()
	child := t.nodeFromID(id)
	child.parent = parentID
	child.fmove = move
	child.status = Active
	child.Position = childPos
	child.childN = make([]float32, t.actionSpace)
	child.childW = make([]float32, t.actionSpace)
	child.childPrior = make([]float32, t.actionSpace)
	child.children = make(map[int]nodeID)

	parent.lock.Lock()
	parent.children[move] = id
	parent.lock.Unlock()
	return id
}

// AdvanceRoot commits move as the next root, discarding every sibling
// subtree. If move has not been visited yet, its child is created first.
func (t *Tree) AdvanceRoot(move int) {
	root := t.nodeFromID(t.root)
	root.lock.Lock()
	newRootID, ok := root.children[move]
	children := root.children
	root.lock.Unlock()
	if !ok {
		newRootID = t.maybeCreateChild(t.root, move)
		root.lock.Lock()
		children = root.children
		root.lock.Unlock()
	}

	for mv, id := range children {
		if mv != move {
			t.pruneSubtree(id)
		}
	}

	newRoot := t.nodeFromID(newRootID)
	newRoot.lock.Lock()
	newRoot.parent = nilNode
	newRoot.fmove = -1
	newRoot.lock.Unlock()

	t.free(t.root)
	t.root = newRootID
}

func (t *Tree) pruneSubtree(id nodeID) {
	n := t.nodeFromID(id)
	n.lock.Lock()
	n.status = Pruned
	children := n.children
	n.lock.Unlock()
	for _, kid := range children {
		t.pruneSubtree(kid)
	}
	t.free(id)
}

// InjectNoise mixes Dirichlet(alpha) noise into the root's child_prior,
// where alpha = 0.03*19/N. Illegal actions keep their strongly negative
// prior because the mix is applied on top of the already-masked values.
func (t *Tree) InjectNoise() {
	root := t.nodeFromID(t.root)
	alpha := dirichletNumerator / float64(t.boardSize)
	concentration := make([]float64, t.actionSpace)
	for i := range concentration {
		concentration[i] = alpha
	}
	dist := distmv.NewDirichlet(concentration, t.rand)
	noise := dist.Rand(nil)

	root.lock.Lock()
	defer root.lock.Unlock()
	for i := range root.childPrior {
		root.childPrior[i] = 0.75*root.childPrior[i] + 0.25*float32(noise[i])
	}
}

// ChildrenAsPi returns the training-target visit distribution at the
// root: a flat child_N/sum when temperatureHigh, else the visit counts
// raised to the 8th power and renormalized, which sharpens the
// distribution toward argmax for late-game deterministic play.
func (t *Tree) ChildrenAsPi(temperatureHigh bool) []float32 {
	root := t.nodeFromID(t.root)
	root.lock.Lock()
	n := append([]float32(nil), root.childN...)
	root.lock.Unlock()

	if !temperatureHigh {
		for i := range n {
			n[i] = math32.Pow(n[i], 8)
		}
	}
	var sum float32
	for _, v := range n {
		sum += v
	}
	if sum == 0 {
		return n
	}
	for i := range n {
		n[i] /= sum
	}
	return n
}

// SelectMove picks the next move given the move selection rule: argmax
// past the temperature cutoff, else a sample from the cumulative
// child_N distribution.
func (t *Tree) SelectMove(temperatureHigh bool) int {
	root := t.nodeFromID(t.root)
	root.lock.Lock()
	n := append([]float32(nil), root.childN...)
	root.lock.Unlock()

	if !temperatureHigh {
		return argmax(n)
	}

	var total float32
	for _, v := range n {
		total += v
	}
	if total == 0 {
		return t.actionSpace - 1 // Pass
	}
	r := t.rand.Float32() * total
	var accum float32
	for i, v := range n {
		accum += v
		if r < accum {
			return i
		}
	}
	return len(n) - 1
}
