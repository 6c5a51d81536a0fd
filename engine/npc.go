package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/dundork/engine/pathfind"
	"github.com/nathoo/dundork/types"
)

const (
	chaseRange    = 3
	patrolShuffle = 0.5
)

const scholarStandingForPeace = 2

// advanceNPCs re-evaluates faction tension, moves every live NPC one step
// according to its behavior variant, then checks whether anything walked
// into the player's room.
func (e *Engine) advanceNPCs() {
	e.factionTension()
	for _, npc := range e.world.NPCs {
		if e.defeated[npc.ID] || npc.CurrentLoc < 0 {
			continue
		}
		switch b := npc.Behavior.(type) {
		case types.Boss:
			// The boss holds its lair.
		case *types.Chaser:
			e.advanceChaser(npc, b)
		case types.Patroller:
			e.advancePatroller(npc, b)
		}
	}

	if e.pending == nil && !e.newLocation {
		e.checkEncounter()
	}
}

// advanceChaser paths straight at the player every turn once awake. There
// is no relic errand and no patrol beat for it to fall back on.
func (e *Engine) advanceChaser(npc *types.NPC, c *types.Chaser) {
	if !c.Awake {
		return
	}
	step, dist, ok := pathfind.NextStep(e.world.LocByID, npc.CurrentLoc, e.currentLoc)
	if !ok {
		return
	}
	e.stepNPC(npc, step)
	switch {
	case npc.CurrentLoc == e.currentLoc:
		e.say(fmt.Sprintf("%s has found you!", npc.Name))
	case dist <= chaseRange:
		e.say("You hear footfalls closing in.")
	}
}

// nearestRelicRoom finds the closest room whose floor holds a required relic.
func (e *Engine) nearestRelicRoom(from int) int {
	best, bestDist := 0, pathfind.NoPath
	for _, loc := range e.world.Locations {
		if !isRelicID(loc.ObjectID) {
			continue
		}
		if d, ok := pathfind.Distance(e.world.LocByID, from, loc.ID); ok && d < bestDist {
			best, bestDist = loc.ID, d
		}
	}
	return best
}

func isRelicID(id int) bool {
	for _, r := range types.RequiredRelics {
		if id == r {
			return true
		}
	}
	return false
}

// advancePatroller drives the guard errand: a hostile patroller seeks the
// nearest floor relic, switching to the player when the player is close.
// Without a target (or while peaceful) it shuffles along its two-room beat.
func (e *Engine) advancePatroller(npc *types.NPC, p types.Patroller) {
	if !npc.Hostile {
		e.patrolBeat(npc, p)
		return
	}

	target := e.nearestRelicRoom(npc.CurrentLoc)
	if d, ok := pathfind.Distance(e.world.LocByID, npc.CurrentLoc, e.currentLoc); ok && d <= chaseRange {
		target = e.currentLoc
	}
	if target == 0 || target == npc.CurrentLoc {
		e.patrolBeat(npc, p)
		return
	}
	if step, _, ok := pathfind.NextStep(e.world.LocByID, npc.CurrentLoc, target); ok {
		e.stepNPC(npc, step)
		return
	}
	e.patrolBeat(npc, p)
}

// patrolBeat is the idle shuffle between the two rooms of the patrol route.
func (e *Engine) patrolBeat(npc *types.NPC, p types.Patroller) {
	if !e.rng.Chance(patrolShuffle) {
		return
	}
	loc := e.world.LocByID[npc.CurrentLoc]
	if loc == nil {
		return
	}
	next := p.Route[0]
	if npc.CurrentLoc == p.Route[0] {
		next = p.Route[1]
	}
	if next == 0 || next == npc.CurrentLoc {
		return
	}
	for _, d := range types.Directions {
		if loc.Exit(d) == next {
			e.stepNPC(npc, d)
			return
		}
	}
}

func (e *Engine) stepNPC(npc *types.NPC, dir types.Direction) {
	loc := e.world.LocByID[npc.CurrentLoc]
	if loc == nil {
		return
	}
	if next := loc.Exit(dir); next != 0 && next != types.WinRoomID {
		npc.CurrentLoc = next
	}
}

// factionTension keeps hostility in step with reputation: librarians stand
// down once the scholars trust you. The boss and the hunter never soften.
func (e *Engine) factionTension() {
	for _, npc := range e.world.NPCs {
		if e.defeated[npc.ID] || npc.IsBoss() {
			continue
		}
		if _, chaser := npc.Behavior.(*types.Chaser); chaser {
			continue
		}
		if strings.Contains(strings.ToLower(npc.Name), "librarian") {
			npc.Hostile = e.repute["scholars"] < scholarStandingForPeace
		}
	}
}

// wakeHunter turns the dormant chaser hostile. Called by the timed-event
// schedule once its wake turn arrives.
func (e *Engine) wakeHunter() {
	for _, npc := range e.world.NPCs {
		c, ok := npc.Behavior.(*types.Chaser)
		if !ok || c.Awake || e.defeated[npc.ID] {
			continue
		}
		if e.turnCount >= c.WakeTurn {
			c.Awake = true
			npc.Hostile = true
			e.say("Something stirs in the deep. You are being hunted.")
		}
	}
}
