package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/dundork/types"
)

// questsInRoom announces and progresses quests tied to the current room:
// unmet givers introduce themselves, and met ones accept their item.
func (e *Engine) questsInRoom() {
	for _, q := range e.quests {
		if q.Room != e.currentLoc || q.Completed {
			continue
		}
		if !q.Accepted {
			q.Accepted = true
			e.say(fmt.Sprintf("%s approaches. \"%s\"", q.Giver, q.Description))
			e.say(fmt.Sprintf("Quest accepted: %s", q.Title))
		}
		if e.hasItem(q.RequiredItem) {
			e.offerTurnIn(q)
		}
	}
}

// offerTurnIn completes a quest on confirmation: the item is handed over
// and the reward granted.
func (e *Engine) offerTurnIn(q *types.Quest) {
	need := fmt.Sprintf("item %d", q.RequiredItem)
	if it := e.world.ItemByID[q.RequiredItem]; it != nil {
		need = it.Name
	}
	confirm := strings.ToUpper(strings.TrimSpace(
		e.prompt(fmt.Sprintf("%s asks for the %s. Hand it over? Y/N > ", q.Giver, need))))
	if !strings.HasPrefix(confirm, "Y") {
		e.say(fmt.Sprintf("%s nods. \"I will wait.\"", q.Giver))
		return
	}

	e.removeItem(q.RequiredItem)
	q.Completed = true
	e.say(fmt.Sprintf("Quest complete: %s", q.Title))
	e.addXP(q.RewardXP, "quest reward")

	if q.Faction != "" {
		e.repute[q.Faction]++
	}

	if q.RewardItem != 0 {
		reward := e.world.ItemByID[q.RewardItem]
		if reward == nil {
			return
		}
		if slot := e.freeSlot(); slot >= 0 {
			e.backpack[slot] = q.RewardItem
			e.say(fmt.Sprintf("%s hands you a %s.", q.Giver, reward.Name))
		} else if e.location().ObjectID == 0 {
			e.location().ObjectID = q.RewardItem
			e.say(fmt.Sprintf("%s sets a %s at your feet. Your backpack is full.", q.Giver, reward.Name))
		} else {
			e.say(fmt.Sprintf("%s shrugs. You have no room for the reward.", q.Giver))
		}
	}
}

func (e *Engine) showQuests() bool {
	shown := false
	for _, q := range e.quests {
		if !q.Accepted {
			continue
		}
		shown = true
		state := "in progress"
		if q.Completed {
			state = "done"
		}
		e.say(fmt.Sprintf("- %s [%s] (%s)", q.Title, state, q.Giver))
	}
	if !shown {
		e.say("No quests yet. Someone in the dungeon may need your help.")
	}
	return true
}
