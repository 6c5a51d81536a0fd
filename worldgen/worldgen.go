// Package worldgen turns a freshly loaded, narratively-authored world into
// a replayable one: it tags rooms, scatters relics and bonus loot, tops up
// the NPC roster, assigns patrol routes, and injects the boss. All
// randomness comes from the injected *rng.RNG, so a fixed seed yields an
// identical world.
package worldgen

import (
	"fmt"
	"strings"

	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/types"
)

// Empirically tuned constants carried over from the authored game. They
// are not derived from anything; do not "correct" them.
const (
	deadEndTreasureChance = 0.65
	trapBand              = 0.20
	loreBand              = 0.35
	darkBand              = 0.50

	minNPCs      = 4
	bossHP       = 120
	hunterWake   = 15
	patrolLength = 2
)

// bonusPool is placed after the relics, in order, into further distinct
// rooms: light source, cursed artifact, two healing herbs, one oil flask.
var bonusPool = []int{types.ItemTorch, types.ItemIdol, types.ItemHerb, types.ItemHerb, types.ItemOil}

// Generate post-processes w in place. It never fails at runtime; rooms or
// NPCs that could not be placed (possible only in degenerate worlds) are
// reported in the returned warning list.
func Generate(w *types.World, r *rng.RNG) []string {
	var warnings []string

	ensureBonusItems(w)
	assignRoomTags(w, r)
	warnings = append(warnings, placeItems(w, r)...)
	ensureMinimumNPCs(w)
	warnings = append(warnings, placeNPCs(w, r)...)
	addBoss(w)

	w.Reindex()
	return warnings
}

// assignRoomTags gives each room its category. Dark-flagged rooms always
// tag dark; the start and win rooms always tag safe; dead-ends favor
// treasure; otherwise the fixed probability bands apply.
func assignRoomTags(w *types.World, r *rng.RNG) {
	for _, loc := range w.Locations {
		if loc.ID == types.StartRoomID || loc.ID == types.WinRoomID {
			loc.Tag = types.TagSafe
			continue
		}
		if loc.IsDark {
			loc.Tag = types.TagDark
			continue
		}
		// One draw decides the band; dead-ends get first claim on treasure.
		roll := r.Float()
		exits := len(loc.OpenExits())
		switch {
		case exits <= 1 && roll < deadEndTreasureChance:
			loc.Tag = types.TagTreasure
		case roll < trapBand:
			loc.Tag = types.TagTrap
		case roll < loreBand:
			loc.Tag = types.TagLore
		case roll < darkBand:
			loc.Tag = types.TagDark
		default:
			loc.Tag = types.TagSafe
		}
	}
}

// placeItems clears every room's item slot, then deals the three relics and
// the bonus pool into distinct non-start/non-exit rooms.
func placeItems(w *types.World, r *rng.RNG) []string {
	for _, loc := range w.Locations {
		loc.ObjectID = 0
	}

	var eligible []int
	for _, loc := range w.Locations {
		if loc.ID != types.StartRoomID && loc.ID != types.WinRoomID {
			eligible = append(eligible, loc.ID)
		}
	}
	rng.Shuffle(r, eligible)

	var warnings []string
	place := func(itemID int) {
		if len(eligible) == 0 {
			warnings = append(warnings, fmt.Sprintf("no eligible room left for item %d", itemID))
			return
		}
		roomID := eligible[len(eligible)-1]
		eligible = eligible[:len(eligible)-1]
		w.LocByID[roomID].ObjectID = itemID
	}

	for _, relic := range types.RequiredRelics {
		place(relic)
	}
	for _, bonus := range bonusPool {
		place(bonus)
	}
	return warnings
}

// ensureBonusItems appends the bonus item definitions missing from the
// authored item list.
func ensureBonusItems(w *types.World) {
	templates := []*types.Item{
		{ID: types.ItemMap, Name: "Explorer's Map", Desc: "an explorer's map",
			Story: "You unfold the map and old routes shimmer into focus."},
		{ID: types.ItemToolkit, Name: "Engineer Toolkit", Desc: "an engineer toolkit",
			Story: "Tools clink together. You feel more prepared."},
		{ID: types.ItemCharm, Name: "Lucky Charm", Desc: "a lucky charm",
			Story: "A small charm warms in your hand."},
		{ID: types.ItemIdol, Name: "Cursed Idol", Desc: "a cursed idol",
			Story: "The idol hums with a dangerous pulse."},
		{ID: types.ItemHerb, Name: "Healing Herb", Desc: "a bundle of healing herb",
			Story: "A sharp scent promises recovery."},
		{ID: types.ItemOil, Name: "Oil Flask", Desc: "an oil flask",
			Story: "The flask smells strongly of lamp oil."},
	}
	existing := map[int]bool{}
	for _, it := range w.Items {
		existing[it.ID] = true
	}
	for _, tpl := range templates {
		if !existing[tpl.ID] {
			w.Items = append(w.Items, tpl)
		}
	}
}

// ensureMinimumNPCs guarantees the hunter exists, then synthesizes named
// templates until the roster holds at least four NPCs. Each carries a
// weakness item. The hunter is unconditional: the turn-15 wake event needs
// one to aim at the player.
func ensureMinimumNPCs(w *types.World) {
	nextID := 0
	hasHunter := false
	for _, n := range w.NPCs {
		if n.ID > nextID {
			nextID = n.ID
		}
		if isHunter(n.Name) {
			hasHunter = true
		}
	}
	nextID++

	add := func(name, desc string, weakness int) {
		w.NPCs = append(w.NPCs, &types.NPC{
			ID:         nextID,
			Name:       name,
			Desc:       desc,
			WeaknessID: weakness,
			Hostile:    true,
			Behavior:   types.Patroller{},
			HP:         40,
			MaxHP:      40,
			Phase:      1,
		})
		nextID++
	}

	if !hasHunter {
		add("The Hunter", "a relentless hunter", types.ItemAmulet)
	}

	templates := []struct {
		name, desc string
		weakness   int
	}{
		{"Gate Warden", "a stern gate warden", types.ItemAmulet},
		{"Bone Duelist", "a rattling bone duelist", types.ItemDagger},
		{"Hex Librarian", "a whispering hex librarian", types.ItemBook},
	}
	for _, tpl := range templates {
		if len(w.NPCs) >= minNPCs {
			break
		}
		add(tpl.name, tpl.desc, tpl.weakness)
	}
}

// placeNPCs assigns each non-boss NPC a random spawn room with at least one
// exit and a two-room patrol route. The NPC named "the hunter" is forced
// onto the reserved ID and becomes a dormant Chaser.
func placeNPCs(w *types.World, r *rng.RNG) []string {
	var spawnable []int
	for _, loc := range w.Locations {
		if loc.ID == types.StartRoomID || loc.ID == types.WinRoomID {
			continue
		}
		if len(loc.OpenExits()) > 0 {
			spawnable = append(spawnable, loc.ID)
		}
	}
	if len(spawnable) == 0 {
		return []string{"no spawnable rooms for npc placement"}
	}

	for _, npc := range w.NPCs {
		if npc.IsBoss() {
			continue
		}
		base := rng.Pick(r, spawnable)
		loc := w.LocByID[base]
		exits := loc.OpenExits()
		patrolTo := base
		if len(exits) > 0 {
			patrolTo = loc.Exit(rng.Pick(r, exits))
		}

		npc.StartLoc = base
		npc.CurrentLoc = base
		npc.Hostile = true
		npc.Behavior = types.Patroller{Route: [patrolLength]int{base, patrolTo}}

		if isHunter(npc.Name) {
			npc.ID = types.HunterID
			npc.Hostile = false
			npc.Behavior = &types.Chaser{WakeTurn: hunterWake}
		}
	}
	return nil
}

func isHunter(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), "the hunter")
}

// addBoss appends the fixed, hostile, stationary boss anchored next to the
// win room.
func addBoss(w *types.World) {
	w.NPCs = append(w.NPCs, &types.NPC{
		ID:         types.BossID,
		Name:       "Arch-Dork",
		Desc:       "the Arch-Dork, master of the labyrinth",
		WeaknessID: types.ItemBook,
		Hostile:    true,
		Behavior:   types.Boss{},
		HP:         bossHP,
		MaxHP:      bossHP,
		Phase:      1,
		StartLoc:   types.BossRoomID,
		CurrentLoc: types.BossRoomID,
	})
}
