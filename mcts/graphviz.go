package mcts

import (
	"fmt"

	"github.com/awalterschulze/gographviz"

	"github.com/gokigo/kigo/coords"
)

// DumpGraph renders the tree rooted at the current root as a Graphviz DOT
// string, down to maxDepth levels, labeling each node with its visit
// count and mean value. It is a debugging aid for inspecting search
// behavior offline, not part of the search itself.
func (t *Tree) DumpGraph(maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("mcts"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	if err := t.addGraphNode(g, t.root, "root", 0, maxDepth); err != nil {
		return "", err
	}
	return g.String(), nil
}

func (t *Tree) addGraphNode(g *gographviz.Graph, id nodeID, graphName string, depth, maxDepth int) error {
	node := t.nodeFromID(id)
	label := fmt.Sprintf("\"N=%d Q=%.3f\"", node.N(), node.Q())
	if err := g.AddNode("mcts", graphName, map[string]string{"label": label}); err != nil {
		return err
	}
	if depth >= maxDepth {
		return nil
	}

	node.lock.Lock()
	children := make(map[int]nodeID, len(node.children))
	for mv, childID := range node.children {
		children[mv] = childID
	}
	boardSize := node.Position.N
	node.lock.Unlock()

	for move, childID := range children {
		childName := fmt.Sprintf("%s_%d", graphName, move)
		if err := t.addGraphNode(g, childID, childName, depth+1, maxDepth); err != nil {
			return err
		}
		pt := coords.Unflatten(boardSize, move)
		edgeLabel := fmt.Sprintf("\"%s\"", pt.String())
		if err := g.AddEdge(graphName, childName, true, map[string]string{"label": edgeLabel}); err != nil {
			return err
		}
	}
	return nil
}
