package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/dundork/engine/parser"
	"github.com/nathoo/dundork/types"
)

const (
	herbHeal       = 20
	idolDrain      = 2
	idolDrainEased = 1
	synergyXP      = 5
)

// hasItem reports whether the backpack holds the given item id.
func (e *Engine) hasItem(id int) bool {
	for _, slot := range e.backpack {
		if slot == id {
			return true
		}
	}
	return false
}

// hasAnyItem reports whether any backpack slot is occupied.
func (e *Engine) hasAnyItem() bool {
	for _, slot := range e.backpack {
		if slot != 0 {
			return true
		}
	}
	return false
}

func (e *Engine) freeSlot() int {
	for i, slot := range e.backpack {
		if slot == 0 {
			return i
		}
	}
	return -1
}

// removeItem drops the first matching id from the backpack and reports
// whether anything was removed.
func (e *Engine) removeItem(id int) bool {
	for i, slot := range e.backpack {
		if slot == id {
			e.backpack[i] = 0
			return true
		}
	}
	return false
}

// findCarried resolves a player-typed item name against the backpack.
func (e *Engine) findCarried(name string) *types.Item {
	want := parser.Normalize(name)
	for _, slot := range e.backpack {
		if slot == 0 {
			continue
		}
		it := e.world.ItemByID[slot]
		if it != nil && parser.Normalize(it.Name) == want {
			return it
		}
	}
	return nil
}

func (e *Engine) showBackpack() bool {
	var names []string
	for _, slot := range e.backpack {
		if slot == 0 {
			continue
		}
		if it := e.world.ItemByID[slot]; it != nil {
			names = append(names, it.Name)
		}
	}
	if len(names) == 0 {
		e.say(fmt.Sprintf("Your backpack is empty. (%d slots)", len(e.backpack)))
		return true
	}
	e.say(fmt.Sprintf("Backpack [%d/%d]: %s", len(names), len(e.backpack), strings.Join(names, ", ")))
	return true
}

// pickup moves the room's floor item into the backpack. With an argument
// the name must match; without one the floor item is offered directly.
func (e *Engine) pickup(arg string) bool {
	loc := e.location()
	if loc.ObjectID == 0 {
		e.say("There is nothing here to pick up.")
		return false
	}
	it := e.world.ItemByID[loc.ObjectID]
	if it == nil {
		loc.ObjectID = 0
		e.say("There is nothing here to pick up.")
		return false
	}
	if arg != "" && parser.Normalize(arg) != parser.Normalize(it.Name) {
		e.say(fmt.Sprintf("There is no %s here.", arg))
		return false
	}

	slot := e.freeSlot()
	if slot < 0 {
		e.say("Your backpack is full. Drop something first.")
		return false
	}

	e.backpack[slot] = it.ID
	loc.ObjectID = 0
	e.say(fmt.Sprintf("You pick up the %s.", it.Name))
	if it.ID == types.ItemIdol {
		e.say("The idol feels ice-cold. Something is wrong with it.")
	}
	return true
}

// drop asks for confirmation, then places the item on the floor if the
// room has space for one. The argument is an item name or a slot number.
func (e *Engine) drop(arg string) bool {
	if arg == "" {
		e.say("Drop what?")
		return false
	}
	if !e.hasAnyItem() {
		e.say("Your backpack is empty.")
		return false
	}
	it := e.findCarried(arg)
	if it == nil {
		if n, err := strconv.Atoi(arg); err == nil {
			if n < 1 || n > len(e.backpack) {
				e.say(fmt.Sprintf("There is no slot %d.", n))
				return false
			}
			if e.backpack[n-1] == 0 {
				e.say(fmt.Sprintf("Slot %d is empty.", n))
				return false
			}
			it = e.world.ItemByID[e.backpack[n-1]]
		}
	}
	if it == nil {
		e.say(fmt.Sprintf("You are not carrying a %s.", arg))
		return false
	}

	confirm := strings.ToUpper(strings.TrimSpace(
		e.prompt(fmt.Sprintf("Are you sure you want to drop the %s? Y/N > ", it.Name))))
	if !strings.HasPrefix(confirm, "Y") {
		e.say("You keep it.")
		return false
	}

	loc := e.location()
	if loc.ObjectID != 0 {
		e.say("There is no room on the floor here.")
		return false
	}

	e.removeItem(it.ID)
	loc.ObjectID = it.ID
	e.say(fmt.Sprintf("You drop the %s.", it.Name))
	return true
}

// useUtility handles item use outside combat. It accepts a single item
// name or the explicit pair form "X with Y".
func (e *Engine) useUtility(arg string) bool {
	if parser.Normalize(arg) == "map" {
		return e.useMap()
	}
	if a, b, ok := strings.Cut(parser.Normalize(arg), " with "); ok {
		return e.useTogether(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	it := e.findCarried(arg)
	if it == nil {
		e.say(fmt.Sprintf("You are not carrying a %s.", arg))
		return false
	}
	return e.useSingle(it)
}

// useTogether routes a named pair to the item that drives the combination.
func (e *Engine) useTogether(a, b string) bool {
	first := e.findCarried(a)
	if first == nil {
		e.say(fmt.Sprintf("You are not carrying a %s.", a))
		return false
	}
	second := e.findCarried(b)
	if second == nil {
		e.say(fmt.Sprintf("You are not carrying a %s.", b))
		return false
	}
	for _, it := range []*types.Item{first, second} {
		switch it.ID {
		case types.ItemOil, types.ItemToolkit, types.ItemCharm:
			return e.useSingle(it)
		}
	}
	e.say(fmt.Sprintf("The %s and the %s do nothing together.", first.Name, second.Name))
	return false
}

func (e *Engine) useSingle(it *types.Item) bool {
	switch it.ID {
	case types.ItemTorch:
		if e.location().IsDark {
			e.say("The torch pushes the darkness back. You can see clearly now.")
		} else {
			e.say("The torch flickers. It is already bright enough here.")
		}
		return true

	case types.ItemHerb:
		if e.health >= e.maxHealth {
			e.say("You are already at full health. You save the herb.")
			return false
		}
		e.removeItem(it.ID)
		e.health = min(e.maxHealth, e.health+herbHeal)
		e.say(fmt.Sprintf("The bitter herb restores you. Health: %d/%d", e.health, e.maxHealth))
		return true

	case types.ItemOil:
		if !e.hasItem(types.ItemTorch) {
			e.say("The oil needs a torch to be of any use.")
			return false
		}
		if e.perks[perkOilTorch] {
			e.say("Your torch is already treated with oil.")
			return false
		}
		e.removeItem(it.ID)
		e.perks[perkOilTorch] = true
		e.say("You soak the torch in oil. It burns hot and bright now.")
		e.addXP(synergyXP, "oil and torch combined")
		return true

	case types.ItemToolkit:
		if !e.hasItem(types.ItemIdol) {
			e.say("You fiddle with the toolkit, but nothing here needs fixing.")
			return false
		}
		e.removeItem(types.ItemIdol)
		e.say("You pry the idol apart with the toolkit. Its chill dies with it.")
		e.addXP(synergyXP, "idol dismantled")
		return true

	case types.ItemCharm:
		if e.hasItem(types.ItemIdol) {
			if e.perks[perkIdolDampened] {
				e.say("The charm is already straining against the idol.")
				return false
			}
			e.perks[perkIdolDampened] = true
			e.say("The charm wraps the idol's chill in a thin warmth.")
			return true
		}
		if !e.hasItem(types.ItemAmulet) {
			e.say("The charm hums faintly, waiting for something to resonate with.")
			return false
		}
		if e.perks[perkAuraShield] {
			e.say("The charm's aura already surrounds you.")
			return false
		}
		e.perks[perkAuraShield] = true
		e.say("The charm resonates with the amulet. A faint aura settles over you.")
		e.addXP(synergyXP, "charm and amulet attuned")
		return true

	case types.ItemIdol:
		e.say("You stare into the idol's eyes. They stare back. You feel worse for it.")
		return true

	case types.ItemBook:
		e.revealLore()
		return true
	}

	e.say(fmt.Sprintf("Nothing happens when you use the %s.", it.Name))
	return false
}

// revealLore surfaces the next unseen lore snippet.
func (e *Engine) revealLore() {
	for _, snippet := range e.lore {
		if !e.loreSeen[snippet] {
			e.loreSeen[snippet] = true
			e.say("The pages whisper: " + snippet)
			return
		}
	}
	e.say("The book has nothing new to tell you.")
}
