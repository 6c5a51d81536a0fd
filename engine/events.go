package engine

import (
	"fmt"

	"github.com/nathoo/dundork/engine/parser"
	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/types"
)

const (
	trapDamage      = 10
	trapDamageHard  = 12
	charmSaveChance = 0.35
	trapIdolChance  = 0.35
	darkStumble     = 3
	loreXP          = 5
	trapAvoidXP     = 5

	treasureChance     = 0.70
	treasureChanceRich = 0.85

	sealInterval = 12
	sealTurns    = 3
	hunterTurn   = 15
)

// treasurePool is the minor loot found in treasure caches.
var treasurePool = [3]int{types.ItemCharm, types.ItemHerb, types.ItemOil}

// roomEvent fires the current room's tag event once per run.
func (e *Engine) roomEvent() {
	loc := e.location()
	if loc.EventResolved {
		return
	}
	loc.EventResolved = true

	switch loc.Tag {
	case types.TagTreasure:
		e.treasureEvent(loc)
	case types.TagTrap:
		e.trapEvent(loc)
	case types.TagLore:
		e.loreEvent()
	case types.TagDark:
		e.darkEvent()
	}
}

// darkEvent punishes entering an unlit room without a light source. The
// amulet's glow counts as well as the torch.
func (e *Engine) darkEvent() {
	if e.hasItem(types.ItemTorch) || e.hasItem(types.ItemAmulet) {
		e.say("Your light source keeps the darkness at bay.")
		return
	}
	e.applyDamage(darkStumble, "You stumble blind through the dark")
}

// treasureEvent may yield a find from the minor-loot pool. Rich Vaults
// raises the odds.
func (e *Engine) treasureEvent(loc *types.Location) {
	chance := treasureChance
	if e.mut.RichLoot {
		chance = treasureChanceRich
	}
	e.say("You pry open a dusty cache.")
	if !e.rng.Chance(chance) {
		e.say("Whatever was inside crumbled to dust long ago.")
		return
	}

	itemID := rng.Pick(e.rng, treasurePool[:])
	it := e.world.ItemByID[itemID]
	if it == nil {
		return
	}
	if slot := e.freeSlot(); slot >= 0 {
		e.backpack[slot] = itemID
		e.say(fmt.Sprintf("You find a %s and stow it.", it.Name))
	} else if loc.ObjectID == 0 {
		loc.ObjectID = itemID
		e.say(fmt.Sprintf("You find a %s, but your backpack is full. It lies on the floor.", it.Name))
	} else {
		e.say(fmt.Sprintf("You find a %s, but there is no room for it anywhere. You leave it be.", it.Name))
	}
}

// trapEvent deals floor damage unless detected or warded off. Sprung traps
// sometimes hide a cursed idol underneath.
func (e *Engine) trapEvent(loc *types.Location) {
	if e.perks[perkTrapDetection] {
		e.say("You spot a pressure plate just in time and step around it.")
		e.addXP(trapAvoidXP, "trap avoided")
		if e.hasItem(types.ItemToolkit) {
			if slot := e.freeSlot(); slot >= 0 {
				e.backpack[slot] = types.ItemHerb
				e.say("You dismantle the trap with your toolkit and salvage a healing herb from its bait.")
			} else if loc.ObjectID == 0 {
				loc.ObjectID = types.ItemHerb
				e.say("You dismantle the trap with your toolkit. A healing herb drops from its bait onto the floor.")
			}
		}
		return
	}
	if e.hasItem(types.ItemCharm) && e.rng.Chance(charmSaveChance) {
		e.say("The charm flashes hot. The trap misfires harmlessly.")
		return
	}
	dmg := trapDamage
	if e.mut.ExtraTraps {
		dmg = trapDamageHard
	}
	e.applyDamage(dmg, "A hidden trap springs")

	if loc.ObjectID == 0 && e.rng.Chance(trapIdolChance) {
		loc.ObjectID = types.ItemIdol
		e.say("The sprung trap uncovers something: a cursed idol, half buried in the floor.")
	}
}

// loreEvent surfaces an unseen lore snippet for a small XP reward.
func (e *Engine) loreEvent() {
	var unseen []string
	for _, s := range e.lore {
		if !e.loreSeen[s] {
			unseen = append(unseen, s)
		}
	}
	if len(unseen) == 0 {
		e.say("Faded carvings cover the walls, but you have read them all before.")
		return
	}
	snippet := rng.Pick(e.rng, unseen)
	e.loreSeen[snippet] = true
	e.say("Carved into the stone: " + snippet)
	e.addXP(loreXP, "lore discovered")
}

// timedEvents runs the fixed-turn schedule: the hunter's wake call and the
// recurring exit seals.
func (e *Engine) timedEvents() {
	if e.turnCount >= hunterTurn {
		e.wakeHunter()
	}
	if e.turnCount%sealInterval == 0 {
		e.sealRandomExit()
	}
}

// sealRandomExit blocks one open exit of the current room for a few turns.
func (e *Engine) sealRandomExit() {
	exits := e.location().OpenExits()
	if len(exits) == 0 {
		return
	}
	dir := rng.Pick(e.rng, exits)
	e.block = timedBlock{loc: e.currentLoc, dir: dir, ttl: sealTurns}
	e.say(fmt.Sprintf("Stone grinds on stone. The way %s seals shut!", dir))
}

// blockedDirection reports the active seal if it applies to the current room.
func (e *Engine) blockedDirection() (types.Direction, bool) {
	if e.block.ttl > 0 && e.block.loc == e.currentLoc {
		return e.block.dir, true
	}
	return 0, false
}

// endOfTurnEffects applies lingering per-turn costs: seal decay, the idol's
// drain, and stumbling through unlit darkness.
func (e *Engine) endOfTurnEffects() {
	if e.block.ttl > 0 {
		e.block.ttl--
		if e.block.ttl == 0 && e.block.loc == e.currentLoc {
			e.say("The sealed passage grinds back open.")
		}
	}

	if e.hasItem(types.ItemIdol) {
		drain := idolDrain
		if e.perks[perkIdolDampened] {
			drain = idolDrainEased
		}
		e.health -= drain
		e.say(fmt.Sprintf("The idol gnaws at you. (-%d health)", drain))
	}
}

// solveRune handles the hidden keyword puzzle. Speaking the right word in
// the right chamber opens a shortcut to the boss's lair.
func (e *Engine) solveRune(word string) bool {
	if word == "" {
		e.say("Speak which word?")
		return false
	}
	loc := e.location()
	if loc.ID != types.SecretRoom {
		e.say("Your word echoes and dies. Nothing here is listening.")
		return true
	}
	if loc.SecretSolved {
		e.say("The rune is already spent.")
		return false
	}
	if parser.Normalize(word) != secretKeyword {
		e.say("The rune flickers, unimpressed.")
		return true
	}

	loc.SecretSolved = true
	loc.SetExit(types.East, secretTarget)
	e.say("The rune blazes! The eastern wall folds away, revealing a passage thick with dread.")
	e.addXP(10, "secret uncovered")
	return true
}
