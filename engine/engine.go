// Package engine implements the turn-by-turn game state machine: command
// dispatch, movement with gating, inventory, combat, quests, room events,
// perks, timed hazards, and NPC advancement. One Engine owns all session
// state; the caller drives it by calling PlayTurn until Over reports true.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/nathoo/dundork/engine/mutator"
	"github.com/nathoo/dundork/engine/parser"
	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/types"
)

// IO is the narrow boundary between the engine and its presentation layer.
// Prompt blocks until the player answers; Say emits one line of narrative
// or system text. The engine assumes nothing about rendering.
type IO struct {
	Prompt func(text string) string
	Say    func(text string)
}

// Config assembles everything an Engine needs at construction.
type Config struct {
	World   *types.World
	Quests  []*types.Quest
	Lore    []string
	Mutator types.Mutator
	Class   string
	Meta    *types.Meta
	RNG     *rng.RNG
	IO      IO

	// OnMetaUpdate, if set, is called whenever the engine mutates the
	// meta-progression record (win or quit) so the caller can persist it.
	OnMetaUpdate func(*types.Meta)
}

// Session-wide gameplay constants.
const (
	baseHealth       = 100
	backpackSlots    = 5
	fighterBonusHP   = 15
	scholarStartXP   = 10
	ironmanFloorHP   = 60
	ironmanPenaltyHP = 20

	secretKeyword = "dork"
	secretTarget  = types.BossRoomID

	perkTrapDetection = "trap_detection"
	perkExtraSlot     = "extra_slot"
	perkMapMove       = "extra_move_on_map"
	perkAuraShield    = "aura_shield"
	perkOilTorch      = "oil_torch_boost"
	perkIdolDampened  = "idol_dampened"

	xpPerkTrap   = 20
	xpPerkSlot   = 40
	xpPerkMap    = 60
	combatLogMax = 25
)

type timedBlock struct {
	loc int
	dir types.Direction
	ttl int
}

// Engine is the single mutating owner of one game session.
type Engine struct {
	world  *types.World
	quests []*types.Quest
	lore   []string
	mut    types.Mutator
	class  string
	meta   *types.Meta
	rng    *rng.RNG
	io     IO

	onMetaUpdate func(*types.Meta)
	runID        string

	backpack    []int // 0 = empty slot
	currentLoc  int
	previousLoc int
	health      int
	maxHealth   int
	xp          int
	perks       map[string]bool

	pending  *types.NPC // state: nil = Exploring, set = InEncounter
	defeated map[int]bool
	loreSeen map[string]bool
	revealed map[int]bool
	repute   map[string]int

	turnCount   int
	block       timedBlock
	mapBoost    bool
	newLocation bool
	toldStory   bool
	gameOver    bool
	won         bool
	ending      string

	combatLog []string

	// Presentation hints owned by the caller; the engine only tracks them.
	styleColor      bool
	styleTypewriter bool
}

// New constructs an engine from a generated world. Class and mutator are
// applied immediately; call Start to emit the intro lines.
func New(cfg Config) *Engine {
	e := &Engine{
		world:        cfg.World,
		quests:       cfg.Quests,
		lore:         cfg.Lore,
		mut:          cfg.Mutator,
		class:        cfg.Class,
		meta:         cfg.Meta,
		rng:          cfg.RNG,
		io:           cfg.IO,
		onMetaUpdate: cfg.OnMetaUpdate,
		runID:        uuid.NewString(),

		backpack:    make([]int, backpackSlots),
		currentLoc:  types.StartRoomID,
		previousLoc: types.StartRoomID,
		health:      baseHealth,
		maxHealth:   baseHealth,
		perks:       map[string]bool{},
		defeated:    map[int]bool{},
		loreSeen:    map[string]bool{},
		revealed:    map[int]bool{types.StartRoomID: true},
		repute:      map[string]int{"scholars": 0, "outcasts": 0},
		newLocation: true,
		styleColor:  true,
	}
	if e.meta == nil {
		e.meta = &types.Meta{UnlockedClasses: []string{mutator.DefaultClass}, LastClass: mutator.DefaultClass}
	}
	if e.class == "" {
		e.class = mutator.DefaultClass
	}
	if e.rng == nil {
		e.rng = rng.New(0)
	}
	if len(e.lore) == 0 {
		e.lore = []string{"The dungeon keeps its secrets."}
	}

	e.applyClassModifiers()
	e.applyMutatorModifiers()
	return e
}

func (e *Engine) applyClassModifiers() {
	switch e.class {
	case "fighter":
		e.maxHealth += fighterBonusHP
		e.health = e.maxHealth
	case "scout":
		e.perks[perkTrapDetection] = true
	case "scholar":
		e.xp = scholarStartXP
	}
}

func (e *Engine) applyMutatorModifiers() {
	if e.mut.Name == "Ironman" {
		e.maxHealth = max(ironmanFloorHP, e.maxHealth-ironmanPenaltyHP)
		e.health = min(e.health, e.maxHealth)
	}
}

// RunID identifies this session for logs and debug dumps.
func (e *Engine) RunID() string { return e.runID }

// Over reports whether the session has reached a terminal state.
func (e *Engine) Over() bool { return e.gameOver }

// Won reports whether the terminal state was a win.
func (e *Engine) Won() bool { return e.won }

// Ending returns the ending label after a win, otherwise "".
func (e *Engine) Ending() string { return e.ending }

// Meta exposes the progression record for the caller to persist.
func (e *Engine) Meta() *types.Meta { return e.meta }

// Health returns current and maximum health, for status displays.
func (e *Engine) Health() (cur, max int) { return e.health, e.maxHealth }

// XP returns the experience total.
func (e *Engine) XP() int { return e.xp }

// Turn returns the number of turns consumed so far.
func (e *Engine) Turn() int { return e.turnCount }

// RoomID returns the current room's identifier.
func (e *Engine) RoomID() int { return e.currentLoc }

// InCombat reports whether an encounter is waiting on the player.
func (e *Engine) InCombat() bool { return e.pending != nil }

// MutatorName returns the active run modifier's name.
func (e *Engine) MutatorName() string { return e.mut.Name }

// Class returns the validated player class for this run.
func (e *Engine) Class() string { return e.class }

// Start emits the instruction banner and the class/mutator line.
func (e *Engine) Start() {
	e.say(instructions)
	e.say(fmt.Sprintf("Class: %s | Mutator: %s - %s", e.class, e.mut.Name, e.mut.Desc))
}

const instructions = "----------------------------------------------------------------------------------\n" +
	"Escape the Dungeons, but first collect 3 relics: Amulet, Dagger, Book of Spells.\n" +
	"Move: N/S/E/W or north/south/east/west.\n" +
	"Core: look, pickup <item>, drop <item>, inventory, map, quests, status, quit.\n" +
	"Combat: attack, flee, use <item>, powerstrike (fighter), analyze (scholar), scan (scout).\n" +
	"World: rune <word>, style color, style type, log\n" +
	"----------------------------------------------------------------------------------"

// PlayTurn advances the state machine by one step: an encounter turn if a
// fight is pending, a location report after movement, or one player
// command. It returns the terminal flag for convenience.
func (e *Engine) PlayTurn() bool {
	if e.gameOver {
		return true
	}

	if e.pending != nil {
		e.encounterTurn()
		e.checkDeath()
		return e.gameOver
	}

	if e.newLocation {
		e.reportLocation()
		e.roomEvent()
		e.questsInRoom()
		e.checkEncounter()
	} else {
		e.handleCommand()
	}

	e.checkDeath()
	return e.gameOver
}

// handleCommand reads, parses, and executes one command. Commands that act
// consume a turn and trigger end-of-turn world advancement; rejected
// commands explain themselves and consume nothing.
func (e *Engine) handleCommand() {
	text := strings.TrimSpace(e.prompt("What now? > "))
	if text == "" {
		return
	}

	acted := e.execute(parser.Parse(text))
	if acted && !e.gameOver {
		e.turnCount++
		e.timedEvents()
		e.advanceNPCs()
		e.endOfTurnEffects()
	}
}

func (e *Engine) execute(cmd parser.Command) bool {
	switch cmd.Verb {
	case parser.VerbMove:
		return e.move(cmd.Dir, true)
	case parser.VerbLook:
		e.reportLocation()
		return true
	case parser.VerbInventory:
		return e.showBackpack()
	case parser.VerbPickup:
		return e.pickup(cmd.Arg)
	case parser.VerbDrop:
		return e.drop(cmd.Arg)
	case parser.VerbUse:
		if cmd.Arg == "" {
			e.say("Use what?")
			return false
		}
		return e.useUtility(cmd.Arg)
	case parser.VerbAttack:
		e.say("There is nothing to attack right now.")
		return false
	case parser.VerbFlee:
		e.say("You are not in combat.")
		return false
	case parser.VerbPowerstrike:
		if e.class != "fighter" {
			e.say("Only a fighter can powerstrike.")
		} else {
			e.say("There is nothing here to powerstrike.")
		}
		return false
	case parser.VerbAnalyze:
		if e.class != "scholar" {
			e.say("Only a scholar can analyze an enemy.")
		} else {
			e.say("There is nothing here to analyze.")
		}
		return false
	case parser.VerbScan:
		return e.scan()
	case parser.VerbRune:
		return e.solveRune(cmd.Arg)
	case parser.VerbMap:
		return e.useMap()
	case parser.VerbMoves:
		return e.listDirections()
	case parser.VerbQuests:
		return e.showQuests()
	case parser.VerbStatus:
		return e.showStatus()
	case parser.VerbHelp:
		return e.showHelp()
	case parser.VerbStyle:
		return e.toggleStyle(cmd.Arg)
	case parser.VerbLog:
		return e.showLog()
	case parser.VerbClass:
		e.say(fmt.Sprintf("Current class: %s | Unlocked: %s",
			e.class, strings.Join(e.meta.UnlockedClasses, ", ")))
		return true
	case parser.VerbQuit:
		return e.confirmQuit()
	default:
		e.say("Sorry, I do not understand that instruction. Press 'H' for help.")
		return false
	}
}

// confirmQuit asks for a yes/no confirmation before ending the session.
func (e *Engine) confirmQuit() bool {
	confirm := strings.ToUpper(strings.TrimSpace(e.prompt("Are you sure? Y/N > ")))
	if !strings.HasPrefix(confirm, "Y") {
		return false
	}
	e.gameOver = true
	e.meta.LastClass = e.class
	e.metaUpdated()
	return true
}

// move resolves one directional step, honoring blocked directions and the
// relic gate on the win room. allowBonus guards the map-perk chained move
// against recursion: only one bonus move per map use.
func (e *Engine) move(dir types.Direction, allowBonus bool) bool {
	if blocked, ok := e.blockedDirection(); ok && blocked == dir {
		e.say(fmt.Sprintf("The way %s is blocked.", dir))
		return false
	}

	next := e.location().Exit(dir)
	if next == 0 {
		e.say("You cannot go that way. Try again.")
		return false
	}

	if next == types.WinRoomID {
		if missing := e.missingRelics(); len(missing) > 0 {
			e.say("The exit gate rejects you. Missing relics: " + strings.Join(missing, ", "))
			return false
		}
	}

	e.previousLoc = e.currentLoc
	e.currentLoc = next
	e.toldStory = false
	e.newLocation = true

	if e.currentLoc == types.WinRoomID {
		e.finishWin()
		return true
	}

	if allowBonus && e.mapBoost && e.perks[perkMapMove] {
		e.mapBoost = false
		bonus := strings.ToUpper(strings.TrimSpace(e.prompt("Map insight grants a bonus move (N/S/E/W or skip) > ")))
		if d, ok := parser.ParseDirection(bonus); ok {
			e.move(d, false)
		}
	}
	return true
}

// missingRelics names the required relics not currently carried.
func (e *Engine) missingRelics() []string {
	var missing []string
	for _, id := range types.RequiredRelics {
		if !e.hasItem(id) {
			if it := e.world.ItemByID[id]; it != nil {
				missing = append(missing, it.Name)
			} else {
				missing = append(missing, fmt.Sprintf("relic %d", id))
			}
		}
	}
	return missing
}

// finishWin classifies the ending, reports the summary, and folds the run
// into the meta-progression record.
func (e *Engine) finishWin() {
	e.gameOver = true
	e.won = true

	completed := 0
	for _, q := range e.quests {
		if q.Completed {
			completed++
		}
	}
	lore := len(e.loreSeen)
	defeated := len(e.defeated)

	var detail string
	switch {
	case completed >= 3 && lore >= 3:
		e.ending = "Scholar's Escape"
		detail = "You leave with hard-won knowledge and every promise fulfilled."
	case defeated >= 3:
		e.ending = "Warrior's Escape"
		detail = "You force your way out, scarred but unstoppable."
	default:
		e.ending = "Narrow Escape"
		detail = "You barely outrun the dungeon, but you made it."
	}

	e.say("Congratulations, you escaped the Dungeons of Dork!")
	e.say("Ending: " + e.ending)
	e.say(detail)
	e.say(fmt.Sprintf("Summary: XP %d, Quests %d/%d, Lore %d, Defeated NPCs %d",
		e.xp, completed, len(e.quests), lore, defeated))

	e.meta.Wins++
	e.meta.TotalXP += e.xp
	e.meta.BestEnding = e.ending
	e.meta.LastClass = e.class
	e.unlockClasses()
	e.metaUpdated()
}

// unlockClasses grants class unlocks at the fixed win thresholds.
func (e *Engine) unlockClasses() {
	thresholds := []struct {
		wins  int
		class string
	}{
		{1, "fighter"},
		{2, "scout"},
		{3, "scholar"},
	}
	for _, t := range thresholds {
		if e.meta.Wins >= t.wins && !e.meta.HasClass(t.class) {
			e.meta.UnlockedClasses = append(e.meta.UnlockedClasses, t.class)
		}
	}
	sort.Strings(e.meta.UnlockedClasses)
}

func (e *Engine) metaUpdated() {
	if e.onMetaUpdate != nil {
		e.onMetaUpdate(e.meta)
	}
}

// checkDeath moves the session to the terminal state once health is gone.
func (e *Engine) checkDeath() bool {
	if e.health > 0 {
		return false
	}
	if !e.gameOver {
		e.gameOver = true
		e.pending = nil
		e.say("You collapse in the dungeon. Game over.")
	}
	return true
}

// reportLocation describes the current room: narrative, exits, floor item,
// and NPCs present.
func (e *Engine) reportLocation() {
	e.revealed[e.currentLoc] = true
	e.lookAround()
	e.listDirections()
	e.listObjects()
	e.listNPCs()
}

// lookAround tells the room's story on arrival and its short description on
// repeated looks.
func (e *Engine) lookAround() {
	e.newLocation = false
	loc := e.location()
	if e.toldStory {
		e.say(loc.Desc)
	} else {
		e.say(loc.Story)
		e.toldStory = true
	}
}

func (e *Engine) listDirections() bool {
	dirs := e.location().OpenExits()
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.String()
	}
	if blocked, ok := e.blockedDirection(); ok {
		e.say(fmt.Sprintf("You may go [%s] (but %s is blocked)", strings.Join(names, " "), blocked))
	} else {
		e.say(fmt.Sprintf("You may go [%s]", strings.Join(names, " ")))
	}
	return true
}

func (e *Engine) listObjects() {
	if oid := e.location().ObjectID; oid != 0 {
		if it := e.world.ItemByID[oid]; it != nil {
			e.say(fmt.Sprintf("There is %s here.", it.Desc))
		}
	}
}

func (e *Engine) listNPCs() {
	for _, npc := range e.world.NPCs {
		if npc.CurrentLoc != e.currentLoc || e.defeated[npc.ID] {
			continue
		}
		label := "friendly"
		if npc.IsBoss() {
			label = "BOSS"
		} else if npc.Hostile {
			label = "hostile"
		}
		e.say(fmt.Sprintf("There is %s here. (%s)", npc.Desc, label))
	}
}

func (e *Engine) showStatus() bool {
	completed := 0
	for _, q := range e.quests {
		if q.Completed {
			completed++
		}
	}
	e.say(fmt.Sprintf("Health: %d/%d | XP: %d | Quests: %d/%d | Lore: %d | Rep S:%d O:%d",
		e.health, e.maxHealth, e.xp, completed, len(e.quests), len(e.loreSeen),
		e.repute["scholars"], e.repute["outcasts"]))

	var active []string
	for perk, on := range e.perks {
		if on {
			active = append(active, perk)
		}
	}
	sort.Strings(active)
	if len(active) == 0 {
		e.say("Perks: none")
	} else {
		e.say("Perks: " + strings.Join(active, ", "))
	}
	return true
}

func (e *Engine) showHelp() bool {
	e.say(instructions)
	e.say("Examples: 'go north', 'pickup torch', 'drop dagger', 'use amulet', 'rune dork', 'style color'")
	return true
}

func (e *Engine) toggleStyle(arg string) bool {
	switch parser.Normalize(arg) {
	case "color", "colour":
		e.styleColor = !e.styleColor
		e.say("Color output: " + onOff(e.styleColor))
		return true
	case "type", "typewriter":
		e.styleTypewriter = !e.styleTypewriter
		e.say("Typewriter: " + onOff(e.styleTypewriter))
		return true
	}
	e.say("Usage: style color | style type")
	return false
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (e *Engine) showLog() bool {
	if len(e.combatLog) == 0 {
		e.say("Combat log is empty.")
		return false
	}
	e.say("Recent combat log:")
	start := len(e.combatLog) - 8
	if start < 0 {
		start = 0
	}
	for _, line := range e.combatLog[start:] {
		e.say("- " + line)
	}
	return true
}

// StyleColor reports the color toggle for the presentation layer.
func (e *Engine) StyleColor() bool { return e.styleColor }

// StyleTypewriter reports the typewriter toggle for the presentation layer.
func (e *Engine) StyleTypewriter() bool { return e.styleTypewriter }

// addXP grants experience and fires any newly crossed perk thresholds.
func (e *Engine) addXP(amount int, reason string) {
	if amount <= 0 {
		return
	}
	e.xp += amount
	e.say(fmt.Sprintf("+%d XP (%s)", amount, reason))
	e.checkLevelRewards()
}

func (e *Engine) checkLevelRewards() {
	if e.xp >= xpPerkTrap && !e.perks[perkTrapDetection] {
		e.perks[perkTrapDetection] = true
		e.say("Perk unlocked: trap_detection")
	}
	if e.xp >= xpPerkSlot && !e.perks[perkExtraSlot] {
		e.perks[perkExtraSlot] = true
		e.backpack = append(e.backpack, 0)
		e.say("Perk unlocked: extra_slot (+1 backpack slot)")
	}
	if e.xp >= xpPerkMap && !e.perks[perkMapMove] {
		e.perks[perkMapMove] = true
		e.say("Perk unlocked: extra_move_on_map (after using map)")
	}
}

// location returns the current room. The current room always exists: moves
// only land on validated exits.
func (e *Engine) location() *types.Location {
	return e.world.LocByID[e.currentLoc]
}

func (e *Engine) say(text string) {
	if e.io.Say != nil {
		e.io.Say(text)
	}
}

func (e *Engine) sayLog(text string) {
	e.say(text)
	e.combatLog = append(e.combatLog, text)
	if len(e.combatLog) > combatLogMax {
		e.combatLog = e.combatLog[len(e.combatLog)-combatLogMax:]
	}
}

func (e *Engine) prompt(text string) string {
	if e.io.Prompt == nil {
		return ""
	}
	return e.io.Prompt(text)
}
