package board

// LibertyTracker maps every occupied cell to the Group that owns it and
// caches each stone's group liberty count, so the rules engine never has
// to recompute a group's liberties from scratch on a hot path.
//
// Invariants: every non-empty cell maps to an extant group; LibertyCache[s]
// equals len(group.Liberties) for every stone s in that group.
type LibertyTracker struct {
	N            int
	GroupIndex   []GroupID
	Groups       map[GroupID]*Group
	LibertyCache []int
	nextID       GroupID
}

// NewLibertyTracker returns a tracker for an empty n x n board.
func NewLibertyTracker(n int) *LibertyTracker {
	idx := make([]GroupID, n*n)
	for i := range idx {
		idx[i] = noGroup
	}
	return &LibertyTracker{
		N:            n,
		GroupIndex:   idx,
		Groups:       make(map[GroupID]*Group),
		LibertyCache: make([]int, n*n),
	}
}

// LibertyTrackerFromBoard rebuilds a tracker by scanning an existing board,
// used when a Position is constructed from externally-supplied stones
// (e.g. replaying an SGF's AB/AW setup properties).
func LibertyTrackerFromBoard(n int, cells []Color) *LibertyTracker {
	lt := NewLibertyTracker(n)
	visited := make([]bool, n*n)
	for start := 0; start < n*n; start++ {
		if visited[start] || cells[start] == Empty {
			continue
		}
		color := cells[start]
		stones := map[int]struct{}{}
		liberties := map[int]struct{}{}
		stack := []int{start}
		visited[start] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stones[cur] = struct{}{}
			for _, nb := range neighbors(n, cur) {
				switch cells[nb] {
				case Empty:
					liberties[nb] = struct{}{}
				case color:
					if !visited[nb] {
						visited[nb] = true
						stack = append(stack, nb)
					}
				}
			}
		}
		id := lt.nextID
		lt.nextID++
		g := newGroup(id, color, stones, liberties)
		lt.Groups[id] = g
		libCount := len(liberties)
		for s := range stones {
			lt.GroupIndex[s] = id
			lt.LibertyCache[s] = libCount
		}
	}
	return lt
}

// Copy returns a deep copy suitable for the copy-on-write semantics a
// Position needs when it derives a successor via PlayMove.
func (lt *LibertyTracker) Copy() *LibertyTracker {
	out := &LibertyTracker{
		N:            lt.N,
		GroupIndex:   append([]GroupID(nil), lt.GroupIndex...),
		LibertyCache: append([]int(nil), lt.LibertyCache...),
		Groups:       make(map[GroupID]*Group, len(lt.Groups)),
		nextID:       lt.nextID,
	}
	for id, g := range lt.Groups {
		out.Groups[id] = g.clone()
	}
	return out
}

// AddStone places a stone of the given color at idx on cells (which the
// caller owns and which must currently be Empty at idx; AddStone sets
// cells[idx] = color itself), resolves any opponent captures by mutating
// cells to Empty at the captured points, and returns the set of captured
// points. It returns an IllegalMoveError if the resulting group has no
// liberties (suicide) — which, because a neighboring capture frees up a
// liberty for the placing group, can only happen when no capture occurred.
func (lt *LibertyTracker) AddStone(cells []Color, color Color, idx int) (map[int]struct{}, error) {
	cells[idx] = color

	friendly := map[GroupID]struct{}{}
	opponent := map[GroupID]struct{}{}
	emptyNeighbors := map[int]struct{}{}
	for _, nb := range neighbors(lt.N, idx) {
		gid := lt.GroupIndex[nb]
		if gid == noGroup {
			emptyNeighbors[nb] = struct{}{}
			continue
		}
		if lt.Groups[gid].Color == color {
			friendly[gid] = struct{}{}
		} else {
			opponent[gid] = struct{}{}
		}
	}

	newID := lt.nextID
	lt.nextID++
	stones := map[int]struct{}{idx: {}}
	g := newGroup(newID, color, stones, emptyNeighbors)
	lt.Groups[newID] = g
	lt.GroupIndex[idx] = newID
	lt.LibertyCache[idx] = len(emptyNeighbors)

	newID = lt.mergeFriendly(newID, friendly)

	captured := map[int]struct{}{}
	for gid := range opponent {
		ng, ok := lt.Groups[gid]
		if !ok {
			// already captured as a side effect of an earlier merge in this
			// same call (cannot happen with 4-connectivity, but keep the
			// lookup defensive rather than asserting).
			continue
		}
		if len(ng.Liberties) == 1 {
			for s := range lt.captureGroup(gid) {
				captured[s] = struct{}{}
			}
		} else {
			lt.removeLiberty(gid, idx)
		}
	}

	for s := range captured {
		cells[s] = Empty
	}
	lt.handleCaptures(cells, captured)

	if len(lt.Groups[newID].Liberties) == 0 {
		return nil, &IllegalMoveError{Reason: "suicide", Flat: idx}
	}
	return captured, nil
}

// mergeFriendly merges every group in friendly plus the group newID into
// a single group, preferring the identity of whichever starts out with the
// largest stone set (the standard tie-break for incremental liberty
// tracking), and returns the surviving group's id.
func (lt *LibertyTracker) mergeFriendly(newID GroupID, friendly map[GroupID]struct{}) GroupID {
	if len(friendly) == 0 {
		return newID
	}
	survivor := lt.Groups[newID]
	toMerge := make([]*Group, 0, len(friendly))
	for gid := range friendly {
		toMerge = append(toMerge, lt.Groups[gid])
	}
	for _, g := range toMerge {
		if len(g.Stones) > len(survivor.Stones) {
			survivor = g
		}
	}
	all := append([]*Group{lt.Groups[newID]}, toMerge...)
	stones := map[int]struct{}{}
	liberties := map[int]struct{}{}
	for _, g := range all {
		if g.ID == survivor.ID {
			continue
		}
		for s := range g.Stones {
			stones[s] = struct{}{}
		}
	}
	for s := range survivor.Stones {
		stones[s] = struct{}{}
	}
	for _, g := range all {
		for l := range g.Liberties {
			liberties[l] = struct{}{}
		}
	}
	for s := range stones {
		delete(liberties, s)
	}
	merged := newGroup(survivor.ID, survivor.Color, stones, liberties)
	lt.Groups[survivor.ID] = merged
	for _, g := range all {
		if g.ID != survivor.ID {
			delete(lt.Groups, g.ID)
		}
	}
	libCount := len(liberties)
	for s := range stones {
		lt.GroupIndex[s] = survivor.ID
		lt.LibertyCache[s] = libCount
	}
	return survivor.ID
}

// removeLiberty removes pt from the liberties of gid and refreshes the
// liberty cache for its stones.
func (lt *LibertyTracker) removeLiberty(gid GroupID, pt int) {
	g := lt.Groups[gid]
	delete(g.Liberties, pt)
	libCount := len(g.Liberties)
	for s := range g.Stones {
		lt.LibertyCache[s] = libCount
	}
}

// captureGroup removes gid's stones from the tracker (the board itself is
// cleared by the caller) and returns the set of points that were captured.
func (lt *LibertyTracker) captureGroup(gid GroupID) map[int]struct{} {
	g := lt.Groups[gid]
	delete(lt.Groups, gid)
	for s := range g.Stones {
		lt.GroupIndex[s] = noGroup
		lt.LibertyCache[s] = 0
	}
	return g.Stones
}

// handleCaptures gives every group neighboring a captured point a new
// liberty there, now that cells has been updated to reflect the capture.
func (lt *LibertyTracker) handleCaptures(cells []Color, captured map[int]struct{}) {
	for pt := range captured {
		for _, nb := range neighbors(lt.N, pt) {
			gid := lt.GroupIndex[nb]
			if gid == noGroup {
				continue
			}
			g := lt.Groups[gid]
			g.Liberties[pt] = struct{}{}
			libCount := len(g.Liberties)
			for s := range g.Stones {
				lt.LibertyCache[s] = libCount
			}
		}
	}
}
