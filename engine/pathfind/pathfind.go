// Package pathfind implements breadth-first search over the four-directional
// room graph. It is stateless and serves both player map hints and NPC
// pursuit, so it must be correct and terminate on any finite graph,
// including cyclic ones.
package pathfind

import "github.com/nathoo/dundork/types"

// NoPath is the sentinel distance returned when the target is unreachable.
const NoPath = 999

// NextStep returns the first direction to take from start on a shortest
// path (by edge count) to target, and the path length. Among equal-length
// paths the N, S, E, W expansion order makes the result deterministic for a
// fixed graph. If target is unreachable it returns (North, NoPath) with
// ok=false; if start == target it returns distance 0 with ok=false (there
// is no step to take).
func NextStep(locs map[int]*types.Location, start, target int) (step types.Direction, dist int, ok bool) {
	type hop struct {
		parent int
		dir    types.Direction
	}
	cameFrom := map[int]*hop{start: nil}
	queue := []int{start}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == target {
			break
		}
		loc, found := locs[id]
		if !found {
			continue
		}
		for _, d := range types.Directions {
			next := loc.Exit(d)
			if next == 0 {
				continue
			}
			if _, seen := cameFrom[next]; seen {
				continue
			}
			cameFrom[next] = &hop{parent: id, dir: d}
			queue = append(queue, next)
		}
	}

	if _, reached := cameFrom[target]; !reached {
		return types.North, NoPath, false
	}

	// Walk back from the target to recover the first hop.
	var path []types.Direction
	cur := target
	for cameFrom[cur] != nil {
		h := cameFrom[cur]
		path = append(path, h.dir)
		cur = h.parent
	}
	if len(path) == 0 {
		return types.North, 0, false
	}
	return path[len(path)-1], len(path), true
}

// Distance returns the BFS distance from start to target and whether the
// target is reachable at all.
func Distance(locs map[int]*types.Location, start, target int) (int, bool) {
	if start == target {
		return 0, true
	}
	_, dist, ok := NextStep(locs, start, target)
	return dist, ok
}
