package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/dundork/engine/parser"
	"github.com/nathoo/dundork/types"
)

const (
	baseDamage         = 12
	fighterDamage      = 18
	weaknessBonus      = 16
	bossWeaknessHit    = 25
	powerstrikeDamage  = 24
	oilStrikeBonus     = 8
	strikeSynergyBonus = 4
	retaliationBase    = 8
	wrongItemDamage    = 10
	auraShieldBlock    = 4
	fleeCost           = 5

	killXP        = 15
	bossKillXP    = 40
	analyzeXP     = 2
	analyzeBossXP = 4
)

// bossTelegraphs maps boss phase to the wind-up attack launched from it.
var bossTelegraphs = map[int]types.Telegraph{
	1: {Name: "Shadow Lance", Damage: 8},
	2: {Name: "Rift Wave", Damage: 12},
	3: {Name: "Cataclysmic Arc", Damage: 16},
}

// checkEncounter opens combat if a live hostile NPC shares the room.
func (e *Engine) checkEncounter() {
	for _, npc := range e.world.NPCs {
		if npc.CurrentLoc != e.currentLoc || e.defeated[npc.ID] || !npc.Hostile {
			continue
		}
		e.pending = npc
		e.sayLog(fmt.Sprintf("%s blocks your path!", npc.Name))
		if npc.IsBoss() {
			e.bossWindup(npc)
		}
		return
	}
}

// encounterTurn runs one full combat round. A boss resolves its armed
// telegraph first, before any input is requested; then the player acts;
// then the opponent answers if it is still standing.
func (e *Engine) encounterTurn() {
	npc := e.pending

	if npc.IsBoss() && npc.Telegraph != nil {
		t := npc.Telegraph
		npc.Telegraph = nil
		e.applyDamage(t.Damage+e.mut.EnemyDamageBonus, fmt.Sprintf("%s unleashes %s", npc.Name, t.Name))
		if e.health <= 0 {
			return
		}
	}
	defer func() {
		if !e.gameOver && e.pending == npc && npc.HP > 0 && e.health > 0 && npc.IsBoss() && npc.Telegraph == nil {
			e.bossWindup(npc)
		}
	}()

	text := strings.TrimSpace(e.prompt(fmt.Sprintf("[%s HP %d] attack/flee/use <item>/powerstrike/analyze > ", npc.Name, npc.HP)))
	cmd := parser.Parse(text)

	acted := false
	switch cmd.Verb {
	case parser.VerbAttack:
		if e.attackNPC(npc) {
			return
		}
		acted = true
	case parser.VerbPowerstrike:
		acted = e.combatPowerstrike(npc)
	case parser.VerbAnalyze:
		acted = e.combatAnalyze(npc)
	case parser.VerbUse:
		acted = e.useInCombat(npc, cmd.Arg)
	case parser.VerbFlee:
		e.flee(npc)
		return
	case parser.VerbStatus:
		e.showStatus()
		return
	case parser.VerbLog:
		e.showLog()
		return
	case parser.VerbQuit:
		e.confirmQuit()
		return
	default:
		e.say("You hesitate! (attack, flee, use <item>, powerstrike, analyze)")
		return
	}

	if !acted || e.pending == nil {
		return
	}
	e.enemyAnswer(npc)
}

// attackNPC resolves a plain strike. Carrying a non-boss opponent's
// weakness item turns it into an exploit that hits much harder and spares
// the player the retaliation exchange; the caller skips enemyAnswer when
// it reports true.
func (e *Engine) attackNPC(npc *types.NPC) (exploited bool) {
	dmg := e.attackDamage()
	if !npc.IsBoss() && npc.WeaknessID != 0 && e.hasItem(npc.WeaknessID) {
		name := fmt.Sprintf("item %d", npc.WeaknessID)
		if it := e.world.ItemByID[npc.WeaknessID]; it != nil {
			name = it.Name
		}
		e.sayLog(fmt.Sprintf("You exploit %s's weakness with the %s!", npc.Name, name))
		e.playerAttack(npc, dmg+weaknessBonus, "strike")
		return true
	}
	e.playerAttack(npc, dmg, "strike")
	return false
}

func (e *Engine) attackDamage() int {
	dmg := baseDamage
	if e.class == "fighter" {
		dmg = fighterDamage
	}
	if e.hasItem(types.ItemAmulet) && e.hasItem(types.ItemCharm) {
		dmg += strikeSynergyBonus
		e.say("The amulet and the charm resonate, empowering your strike.")
	}
	return dmg
}

func (e *Engine) playerAttack(npc *types.NPC, dmg int, verb string) {
	npc.HP -= dmg
	e.sayLog(fmt.Sprintf("Your %s hits %s for %d. (%d HP left)", verb, npc.Name, dmg, max(npc.HP, 0)))
	if npc.HP <= 0 {
		e.defeatNPC(npc)
		return
	}
	if npc.IsBoss() {
		e.bossPhaseCheck(npc)
	}
}

// combatPowerstrike is the fighter's heavy blow, hotter with an oiled torch.
func (e *Engine) combatPowerstrike(npc *types.NPC) bool {
	if e.class != "fighter" {
		e.say("Only a fighter can powerstrike.")
		return false
	}
	dmg := powerstrikeDamage
	if e.perks[perkOilTorch] {
		dmg += oilStrikeBonus
		delete(e.perks, perkOilTorch)
		e.say("Your oiled torch flares and burns out as you swing!")
	}
	e.playerAttack(npc, dmg, "powerstrike")
	return true
}

// combatAnalyze is the scholar's read of an enemy: it names the weakness.
func (e *Engine) combatAnalyze(npc *types.NPC) bool {
	if e.class != "scholar" {
		e.say("Only a scholar can analyze an enemy.")
		return false
	}
	xp := analyzeXP
	if npc.IsBoss() {
		xp = analyzeBossXP
	}
	if npc.WeaknessID == 0 {
		e.say(fmt.Sprintf("%s has no exploitable weakness.", npc.Name))
		e.addXP(xp, "enemy analyzed")
		return true
	}
	name := fmt.Sprintf("item %d", npc.WeaknessID)
	if it := e.world.ItemByID[npc.WeaknessID]; it != nil {
		name = it.Name
	}
	e.say(fmt.Sprintf("You study %s. Weakness: the %s.", npc.Name, name))
	e.addXP(xp, "enemy analyzed")
	return true
}

// useInCombat resolves an item against the opponent. The right item hits
// hard; the wrong one leaves an opening.
func (e *Engine) useInCombat(npc *types.NPC, arg string) bool {
	if arg == "" {
		e.say("Use what?")
		return false
	}
	it := e.findCarried(arg)
	if it == nil {
		e.say(fmt.Sprintf("You are not carrying a %s.", arg))
		return false
	}

	if it.ID == types.ItemHerb {
		if e.health >= e.maxHealth {
			e.say("You are already at full health.")
			return false
		}
		e.removeItem(it.ID)
		e.health = min(e.maxHealth, e.health+herbHeal)
		e.sayLog(fmt.Sprintf("You chew the herb mid-fight. Health: %d/%d", e.health, e.maxHealth))
		return true
	}

	if it.ID == npc.WeaknessID {
		dmg := e.attackDamage() + weaknessBonus
		if npc.IsBoss() {
			dmg = bossWeaknessHit
		}
		e.sayLog(fmt.Sprintf("The %s blazes against %s!", it.Name, npc.Name))
		e.playerAttack(npc, dmg, it.Name)
		return true
	}

	dmg := wrongItemDamage + e.mut.EnemyDamageBonus
	e.applyDamage(dmg, fmt.Sprintf("%s punishes the opening your %s left", npc.Name, it.Name))
	return true
}

// flee breaks off combat at a cost and retreats to the previous room. The
// boss seals its lair: there is no running from it.
func (e *Engine) flee(npc *types.NPC) {
	if npc.IsBoss() {
		e.say(fmt.Sprintf("%s blocks every exit. There is no running from this.", npc.Name))
		return
	}
	e.health -= fleeCost
	e.sayLog(fmt.Sprintf("You flee from %s! (-%d health)", npc.Name, fleeCost))
	e.pending = nil
	npc.Telegraph = nil
	e.currentLoc = e.previousLoc
	e.toldStory = false
	e.newLocation = true
}

// enemyAnswer is the opponent's half of the round. The boss fights on its
// own telegraph schedule and is handled by the encounter loop; anything
// else just retaliates.
func (e *Engine) enemyAnswer(npc *types.NPC) {
	if npc.IsBoss() {
		return
	}
	e.applyDamage(retaliationBase+e.mut.EnemyDamageBonus, npc.Name+" retaliates")
}

// applyDamage routes all incoming damage so the one-shot aura shield is
// consumed consistently.
func (e *Engine) applyDamage(dmg int, cause string) {
	if e.perks[perkAuraShield] {
		dmg = max(0, dmg-auraShieldBlock)
		delete(e.perks, perkAuraShield)
		e.say("Your protective aura absorbs part of the blow and fades.")
	}
	e.health -= dmg
	e.sayLog(fmt.Sprintf("%s for %d damage. (Health: %d/%d)", cause, dmg, max(e.health, 0), e.maxHealth))
}

func (e *Engine) bossWindup(npc *types.NPC) {
	t := bossTelegraphs[npc.Phase]
	npc.Telegraph = &t
	e.sayLog(fmt.Sprintf("%s winds up: %s!", npc.Name, t.Name))
}

// bossPhaseCheck escalates the boss at two-thirds and one-third health.
func (e *Engine) bossPhaseCheck(npc *types.NPC) {
	phase := 1
	switch {
	case npc.HP*3 <= npc.MaxHP:
		phase = 3
	case npc.HP*3 <= npc.MaxHP*2:
		phase = 2
	}
	if phase > npc.Phase {
		npc.Phase = phase
		e.sayLog(fmt.Sprintf("%s shudders and changes stance. (phase %d)", npc.Name, phase))
	}
}

// defeatNPC closes out a won fight: XP, bookkeeping, and reputation.
func (e *Engine) defeatNPC(npc *types.NPC) {
	e.defeated[npc.ID] = true
	e.pending = nil
	npc.Telegraph = nil
	npc.CurrentLoc = -1

	if npc.IsBoss() {
		e.sayLog(fmt.Sprintf("%s collapses into ash. The dungeon itself seems to exhale.", npc.Name))
		e.addXP(bossKillXP, "boss defeated")
		e.repute["outcasts"]++
	} else {
		e.sayLog(fmt.Sprintf("%s is defeated!", npc.Name))
		e.addXP(killXP, "enemy defeated")
	}
}
