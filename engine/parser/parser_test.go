package parser

import (
	"testing"

	"github.com/nathoo/dundork/types"
)

func TestParse_Directions(t *testing.T) {
	tests := []struct {
		input string
		dir   types.Direction
	}{
		{"n", types.North},
		{"NORTH", types.North},
		{"s", types.South},
		{"go south", types.South},
		{"move E", types.East},
		{"  west  ", types.West},
	}
	for _, tt := range tests {
		cmd := Parse(tt.input)
		if cmd.Verb != VerbMove {
			t.Errorf("Parse(%q).Verb = %v, want MOVE", tt.input, cmd.Verb)
			continue
		}
		if cmd.Dir != tt.dir {
			t.Errorf("Parse(%q).Dir = %v, want %v", tt.input, cmd.Dir, tt.dir)
		}
	}
}

func TestParse_VerbsAndArgs(t *testing.T) {
	tests := []struct {
		input string
		verb  Verb
		arg   string
	}{
		{"look", VerbLook, ""},
		{"L", VerbLook, ""},
		{"pickup torch", VerbPickup, "torch"},
		{"TAKE Book of Spells", VerbPickup, "book of spells"},
		{"drop dagger", VerbDrop, "dagger"},
		{"use torch with oil flask", VerbUse, "torch with oil flask"},
		{"rune dork", VerbRune, "dork"},
		{"style color", VerbStyle, "color"},
		{"i", VerbInventory, ""},
		{"quests", VerbQuests, ""},
		{"powerstrike", VerbPowerstrike, ""},
		{"q", VerbQuit, ""},
		{"frobnicate", VerbUnknown, ""},
		{"", VerbUnknown, ""},
	}
	for _, tt := range tests {
		cmd := Parse(tt.input)
		if cmd.Verb != tt.verb {
			t.Errorf("Parse(%q).Verb = %v, want %v", tt.input, cmd.Verb, tt.verb)
		}
		if cmd.Arg != tt.arg {
			t.Errorf("Parse(%q).Arg = %q, want %q", tt.input, cmd.Arg, tt.arg)
		}
	}
}

func TestParse_GoWithoutDirection(t *testing.T) {
	if cmd := Parse("go sideways"); cmd.Verb != VerbUnknown {
		t.Errorf("Parse(go sideways).Verb = %v, want UNKNOWN", cmd.Verb)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Book   OF  Spells "); got != "book of spells" {
		t.Errorf("Normalize = %q", got)
	}
}
