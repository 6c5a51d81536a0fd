package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/dundork/types"
)

// WorldScript holds the scriptable content from world.lua: quest
// definitions and lore snippets. Both fall back to built-in defaults when
// the script is absent or leaves them out.
type WorldScript struct {
	Quests []*types.Quest
	Lore   []string
}

// ScriptName is the optional Lua file looked for next to the CSV data.
const ScriptName = "world.lua"

// DefaultQuests returns the built-in quest set.
func DefaultQuests() []*types.Quest {
	return []*types.Quest{
		{
			ID: "q_torch", Title: "Light the Scriptorium",
			Giver: "Old Cartographer", Faction: "scholars",
			Room: 39, RequiredItem: 1, RewardItem: 100, RewardXP: 20,
			Description: "Bring a Torch to the Old Cartographer.",
		},
		{
			ID: "q_amulet", Title: "Proof of Courage",
			Giver: "Trapped Scholar", Faction: "scholars",
			Room: 61, RequiredItem: 2, RewardItem: 101, RewardXP: 20,
			Description: "Show the Amulet to the Trapped Scholar.",
		},
		{
			ID: "q_book", Title: "Last Lesson",
			Giver: "Lost Knight", Faction: "outcasts",
			Room: 75, RequiredItem: 4, RewardItem: 102, RewardXP: 25,
			Description: "Bring the Book of Spells to the Lost Knight.",
		},
	}
}

// DefaultLore returns the built-in lore snippets.
func DefaultLore() []string {
	return []string{
		"A scratched inscription reads: 'Only wit outlives steel.'",
		"You find initials carved in stone: 'E.B. made it this far.'",
		"A brittle note says: 'The east gate answers to relics.'",
		"A mural depicts three relics held aloft before a sunlit door.",
		"A faded warning says: 'Never trust the quiet room.'",
	}
}

// LoadScript executes dir/world.lua in a sandboxed VM and returns its quest
// and lore definitions, falling back to the defaults for anything the
// script does not define. A missing script is not an error.
func LoadScript(dir string) (*WorldScript, error) {
	ws := &WorldScript{}

	path := filepath.Join(dir, ScriptName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			ws.Quests = DefaultQuests()
			ws.Lore = DefaultLore()
			return ws, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ScriptName, err)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)
	registerScriptAPI(L, ws)

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("executing %s: %w", ScriptName, err)
	}

	if len(ws.Quests) == 0 {
		ws.Quests = DefaultQuests()
	}
	if len(ws.Lore) == 0 {
		ws.Lore = DefaultLore()
	}
	if err := validateScript(ws); err != nil {
		return nil, err
	}
	return ws, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}

// registerScriptAPI registers the world.lua constructors.
func registerScriptAPI(L *lua.LState, ws *WorldScript) {
	// Quest "id" { title = "...", room = 39, ... } — curried: Quest("id")
	// returns a function that takes the definition table.
	L.SetGlobal("Quest", L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			ws.Quests = append(ws.Quests, questFromTable(id, tbl))
			return 0
		}))
		return 1
	}))

	// Lore { "snippet", ... }
	L.SetGlobal("Lore", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				ws.Lore = append(ws.Lore, string(s))
			}
		})
		return 0
	}))
}

func questFromTable(id string, tbl *lua.LTable) *types.Quest {
	q := &types.Quest{ID: id}
	q.Title = tableString(tbl, "title")
	q.Giver = tableString(tbl, "giver")
	q.Faction = tableString(tbl, "faction")
	q.Room = tableInt(tbl, "room")
	q.RequiredItem = tableInt(tbl, "required_item")
	q.RewardItem = tableInt(tbl, "reward_item")
	q.RewardXP = tableInt(tbl, "reward_xp")
	q.Description = tableString(tbl, "description")
	return q
}

func tableString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func tableInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// validateScript rejects quest definitions an engine cannot run.
func validateScript(ws *WorldScript) error {
	var problems []string
	seen := map[string]bool{}
	for _, q := range ws.Quests {
		switch {
		case q.ID == "":
			problems = append(problems, "quest with empty id")
		case seen[q.ID]:
			problems = append(problems, fmt.Sprintf("duplicate quest id %q", q.ID))
		}
		seen[q.ID] = true
		if q.Room <= 0 {
			problems = append(problems, fmt.Sprintf("quest %q: missing trigger room", q.ID))
		}
		if q.RequiredItem <= 0 {
			problems = append(problems, fmt.Sprintf("quest %q: missing required item", q.ID))
		}
		if q.Title == "" {
			problems = append(problems, fmt.Sprintf("quest %q: missing title", q.ID))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid %s:\n  %s", ScriptName, strings.Join(problems, "\n  "))
	}
	return nil
}
