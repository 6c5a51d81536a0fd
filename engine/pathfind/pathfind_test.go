package pathfind

import (
	"testing"

	"github.com/nathoo/dundork/types"
)

// grid builds a location map from a compact exit table.
func grid(exits map[int][4]int) map[int]*types.Location {
	locs := make(map[int]*types.Location, len(exits))
	for id, e := range exits {
		locs[id] = &types.Location{ID: id, Exits: e}
	}
	return locs
}

// Exits order is N, S, E, W.
func corridor() map[int]*types.Location {
	// 1 -S-> 2 -S-> 3, with return exits north.
	return grid(map[int][4]int{
		1: {0, 2, 0, 0},
		2: {1, 3, 0, 0},
		3: {2, 0, 0, 0},
	})
}

func TestNextStep_StraightLine(t *testing.T) {
	locs := corridor()

	step, dist, ok := NextStep(locs, 1, 3)
	if !ok {
		t.Fatal("expected a path from 1 to 3")
	}
	if step != types.South {
		t.Errorf("step = %v, want S", step)
	}
	if dist != 2 {
		t.Errorf("dist = %d, want 2", dist)
	}
}

func TestNextStep_Unreachable(t *testing.T) {
	locs := grid(map[int][4]int{
		1: {0, 0, 0, 0},
		2: {0, 0, 0, 0},
	})

	_, dist, ok := NextStep(locs, 1, 2)
	if ok {
		t.Error("expected no path")
	}
	if dist != NoPath {
		t.Errorf("dist = %d, want NoPath", dist)
	}
}

func TestNextStep_SameRoom(t *testing.T) {
	locs := corridor()

	_, dist, ok := NextStep(locs, 2, 2)
	if ok {
		t.Error("expected ok=false for start == target")
	}
	if dist != 0 {
		t.Errorf("dist = %d, want 0", dist)
	}
}

func TestNextStep_TerminatesOnCycle(t *testing.T) {
	// 1 ⇄ 2 ⇄ 3 ⇄ 1 ring; target not on the ring.
	locs := grid(map[int][4]int{
		1: {0, 0, 2, 3},
		2: {0, 0, 3, 1},
		3: {0, 0, 1, 2},
		9: {0, 0, 0, 0},
	})

	_, dist, ok := NextStep(locs, 1, 9)
	if ok || dist != NoPath {
		t.Errorf("expected no path through cycle, got dist %d ok %v", dist, ok)
	}
}

func TestNextStep_TieBreakPrefersNorth(t *testing.T) {
	// Two equal-length routes to 4: north then east, or east then north.
	// N,S,E,W expansion order must pick the north hop first.
	locs := grid(map[int][4]int{
		1: {2, 0, 3, 0},
		2: {0, 1, 4, 0},
		3: {4, 0, 0, 1},
		4: {0, 3, 0, 2},
	})

	step, dist, ok := NextStep(locs, 1, 4)
	if !ok || dist != 2 {
		t.Fatalf("dist = %d ok %v, want 2 true", dist, ok)
	}
	if step != types.North {
		t.Errorf("step = %v, want N (tie-break)", step)
	}
}

func TestNextStep_OneWayPassage(t *testing.T) {
	// 1 -E-> 2 with no return exit: reachable one way only.
	locs := grid(map[int][4]int{
		1: {0, 0, 2, 0},
		2: {0, 0, 0, 0},
	})

	step, dist, ok := NextStep(locs, 1, 2)
	if !ok || step != types.East || dist != 1 {
		t.Errorf("forward: step %v dist %d ok %v", step, dist, ok)
	}
	if _, dist, ok := NextStep(locs, 2, 1); ok || dist != NoPath {
		t.Errorf("reverse: expected no path, got dist %d", dist)
	}
}

// Taking the returned step must strictly decrease the distance to the
// target, for every reachable start/target pair.
func TestNextStep_StepDecreasesDistance(t *testing.T) {
	locs := grid(map[int][4]int{
		1: {0, 4, 2, 0},
		2: {0, 5, 3, 1},
		3: {0, 6, 0, 2},
		4: {1, 0, 5, 0},
		5: {2, 0, 6, 4},
		6: {3, 0, 0, 5},
	})

	for start := 1; start <= 6; start++ {
		for target := 1; target <= 6; target++ {
			if start == target {
				continue
			}
			step, dist, ok := NextStep(locs, start, target)
			if !ok {
				t.Fatalf("%d→%d unexpectedly unreachable", start, target)
			}
			next := locs[start].Exit(step)
			if next == 0 {
				t.Fatalf("%d→%d: step %v has no exit", start, target, step)
			}
			nextDist, reachable := Distance(locs, next, target)
			if !reachable || nextDist != dist-1 {
				t.Errorf("%d→%d: dist %d, after step %v dist %d", start, target, dist, step, nextDist)
			}
		}
	}
}

func TestDistance_Reachability(t *testing.T) {
	locs := grid(map[int][4]int{
		1: {0, 0, 2, 0},
		2: {0, 0, 0, 1},
		3: {0, 0, 0, 0},
	})
	if d, ok := Distance(locs, 1, 2); !ok || d != 1 {
		t.Errorf("1→2 = (%d, %v), want (1, true)", d, ok)
	}
	if d, ok := Distance(locs, 1, 1); !ok || d != 0 {
		t.Errorf("1→1 = (%d, %v), want (0, true)", d, ok)
	}
	if _, ok := Distance(locs, 1, 3); ok {
		t.Error("1→3 should be unreachable")
	}
}
