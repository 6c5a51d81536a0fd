package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/dundork/types"
)

// ValidationError collects all referential problems found in a loaded world.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("world validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks referential integrity: non-zero exits must reference
// existing locations, location/NPC item references must exist, and IDs must
// be unique. The graph may be asymmetric (one-way passages are valid).
func validate(w *types.World) error {
	ve := &ValidationError{}

	seenLoc := map[int]bool{}
	for _, loc := range w.Locations {
		if seenLoc[loc.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate location id %d", loc.ID))
		}
		seenLoc[loc.ID] = true
	}

	for _, loc := range w.Locations {
		for _, d := range types.Directions {
			next := loc.Exit(d)
			if next == 0 {
				continue
			}
			if _, ok := w.LocByID[next]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"location %d exit %s points to undefined location %d", loc.ID, d, next))
			}
		}
		if loc.ObjectID != 0 {
			if _, ok := w.ItemByID[loc.ObjectID]; !ok {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"location %d holds undefined item %d", loc.ID, loc.ObjectID))
			}
		}
	}

	seenItem := map[int]bool{}
	for _, it := range w.Items {
		if seenItem[it.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate item id %d", it.ID))
		}
		seenItem[it.ID] = true
	}

	seenNPC := map[int]bool{}
	for _, n := range w.NPCs {
		if seenNPC[n.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate npc id %d", n.ID))
		}
		seenNPC[n.ID] = true
		if n.WeaknessID != 0 {
			if _, ok := w.ItemByID[n.WeaknessID]; !ok {
				ve.Warnings = append(ve.Warnings, fmt.Sprintf(
					"npc %d (%s) weakness references undefined item %d", n.ID, n.Name, n.WeaknessID))
			}
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
