// Package mutator selects the run-wide modifier and validates the player
// class against the unlocked set.
package mutator

import (
	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/types"
)

// DefaultClass is used when the requested class is empty or locked.
const DefaultClass = "adventurer"

// Catalog is the fixed set of run modifiers. Selection is uniform.
var Catalog = []types.Mutator{
	{Name: "None", Desc: "Standard dungeon conditions."},
	{Name: "Ironman", Desc: "Lower max health, no mercy.", EnemyDamageBonus: 2},
	{Name: "Fog of War", Desc: "Map hints can lie.", Fog: true},
	{Name: "Relentless Foes", Desc: "Enemies hit harder.", EnemyDamageBonus: 5},
	{Name: "Rich Vaults", Desc: "Treasure rooms are more generous.", RichLoot: true},
	{Name: "Hazard Floors", Desc: "Trap rooms hurt more.", ExtraTraps: true},
}

// Choose draws one modifier uniformly from the catalog.
func Choose(r *rng.RNG) types.Mutator {
	return rng.Pick(r, Catalog)
}

// ValidateClass returns the requested class if it is unlocked, otherwise
// the fixed default.
func ValidateClass(requested string, meta *types.Meta) string {
	if requested == "" {
		requested = meta.LastClass
	}
	if requested != "" && meta.HasClass(requested) {
		return requested
	}
	return DefaultClass
}
