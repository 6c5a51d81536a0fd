// Package parser converts command strings into Command structs.
// Intentionally dumb: no NLP, just token matching with synonym tables.
package parser

import (
	"strings"

	"github.com/nathoo/dundork/types"
)

// Verb is the canonical command verb after alias resolution.
type Verb string

const (
	VerbMove        Verb = "MOVE"
	VerbLook        Verb = "LOOK"
	VerbInventory   Verb = "INVENTORY"
	VerbPickup      Verb = "PICKUP"
	VerbDrop        Verb = "DROP"
	VerbUse         Verb = "USE"
	VerbAttack      Verb = "ATTACK"
	VerbFlee        Verb = "FLEE"
	VerbPowerstrike Verb = "POWERSTRIKE"
	VerbAnalyze     Verb = "ANALYZE"
	VerbScan        Verb = "SCAN"
	VerbRune        Verb = "RUNE"
	VerbMap         Verb = "MAP"
	VerbMoves       Verb = "MOVES"
	VerbQuests      Verb = "QUESTS"
	VerbStatus      Verb = "STATUS"
	VerbHelp        Verb = "HELP"
	VerbStyle       Verb = "STYLE"
	VerbLog         Verb = "LOG"
	VerbClass       Verb = "CLASS"
	VerbQuit        Verb = "QUIT"
	VerbUnknown     Verb = "UNKNOWN"
)

// Command is the parsed representation of a player input line.
type Command struct {
	Verb Verb
	Arg  string          // trailing words joined, for PICKUP/DROP/USE/RUNE/STYLE
	Dir  types.Direction // valid only for VerbMove
}

var directionAliases = map[string]types.Direction{
	"n": types.North, "north": types.North,
	"s": types.South, "south": types.South,
	"e": types.East, "east": types.East,
	"w": types.West, "west": types.West,
}

var verbAliases = map[string]Verb{
	"look": VerbLook, "l": VerbLook,
	"i": VerbInventory, "inventory": VerbInventory, "backpack": VerbInventory,
	"u": VerbPickup, "pickup": VerbPickup, "pick": VerbPickup, "take": VerbPickup, "grab": VerbPickup,
	"d": VerbDrop, "drop": VerbDrop,
	"h": VerbHelp, "help": VerbHelp, "?": VerbHelp,
	"m": VerbMoves, "moves": VerbMoves,
	"q": VerbQuit, "quit": VerbQuit, "exit": VerbQuit,
	"attack": VerbAttack, "a": VerbAttack,
	"flee": VerbFlee, "run": VerbFlee,
	"use":         VerbUse,
	"quests":      VerbQuests,
	"status":      VerbStatus,
	"map":         VerbMap,
	"rune":        VerbRune,
	"scan":        VerbScan,
	"analyze":     VerbAnalyze,
	"powerstrike": VerbPowerstrike,
	"style":       VerbStyle,
	"log":         VerbLog,
	"class":       VerbClass,
}

// ParseDirection resolves a direction word or letter. The second return is
// false if the token is not a direction.
func ParseDirection(token string) (types.Direction, bool) {
	d, ok := directionAliases[strings.ToLower(strings.TrimSpace(token))]
	return d, ok
}

// Parse converts a raw input line into a Command. Input is case-insensitive
// and the first token selects the verb. Unrecognized input yields
// VerbUnknown.
func Parse(input string) Command {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(words) == 0 {
		return Command{Verb: VerbUnknown}
	}

	// Bare direction: "n", "north" → MOVE.
	if d, ok := directionAliases[words[0]]; ok {
		return Command{Verb: VerbMove, Dir: d}
	}

	// "go north" / "move n".
	if (words[0] == "go" || words[0] == "move") && len(words) > 1 {
		if d, ok := directionAliases[words[1]]; ok {
			return Command{Verb: VerbMove, Dir: d}
		}
	}

	verb, ok := verbAliases[words[0]]
	if !ok {
		return Command{Verb: VerbUnknown}
	}
	return Command{Verb: verb, Arg: strings.Join(words[1:], " ")}
}

// Normalize collapses whitespace and lowercases, for name matching.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
