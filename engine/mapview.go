package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/dundork/engine/pathfind"
	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/types"
)

const (
	fogLieChance = 0.35
	scanXP       = 3
)

// useMap reads the dungeon map: a pathfinding hint toward the exit gate
// plus a summary of explored ground. Under Fog of War the hint sometimes
// lies.
func (e *Engine) useMap() bool {
	if !e.hasItem(types.ItemMap) {
		e.say("You have no map to consult.")
		return false
	}

	step, dist, ok := pathfind.NextStep(e.world.LocByID, e.currentLoc, types.WinRoomID)
	if !ok {
		e.say("The map shows no route to the exit from here.")
	} else {
		hint := step
		if e.mut.Fog && e.rng.Chance(fogLieChance) {
			hint = rng.Pick(e.rng, types.Directions[:])
		}
		e.say(fmt.Sprintf("The map suggests heading %s. The exit gate feels %d rooms away.", hint, dist))
	}

	e.describeExplored()

	if e.perks[perkMapMove] {
		e.mapBoost = true
		e.say("Studying the map sharpens your bearings. Your next move may chain into another.")
	}
	return true
}

// describeExplored lists the revealed rooms with their tags.
func (e *Engine) describeExplored() {
	ids := make([]int, 0, len(e.revealed))
	for id := range e.revealed {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var parts []string
	for _, id := range ids {
		loc := e.world.LocByID[id]
		if loc == nil {
			continue
		}
		tag := loc.Tag
		if tag == "" {
			tag = types.TagSafe
		}
		parts = append(parts, fmt.Sprintf("%d:%s", id, tag))
	}
	e.say(fmt.Sprintf("Explored %d rooms: %s", len(parts), strings.Join(parts, " ")))
}

// scan is the scout's read of the surroundings: tags and occupants of every
// adjacent room.
func (e *Engine) scan() bool {
	if e.class != "scout" {
		e.say("Only a scout can scan the surroundings.")
		return false
	}

	loc := e.location()
	found := false
	for _, dir := range types.Directions {
		next := loc.Exit(dir)
		if next == 0 {
			continue
		}
		found = true
		adj := e.world.LocByID[next]
		if adj == nil {
			continue
		}
		e.revealed[next] = true

		tag := adj.Tag
		if tag == "" {
			tag = types.TagSafe
		}
		line := fmt.Sprintf("%s: %s", dir, tag)
		if adj.IsDark {
			line += ", dark"
		}
		for _, npc := range e.world.NPCs {
			if npc.CurrentLoc == next && !e.defeated[npc.ID] {
				line += ", something moves there"
				break
			}
		}
		e.say(line)
	}
	if !found {
		e.say("There is nothing around to scan.")
		return true
	}
	e.addXP(scanXP, "surroundings scanned")
	return true
}
