// Package loader converts raw tabular records into typed world entities,
// applying the blank-value default policy, and assembles a validated World.
// It also reads the CSV source files and an optional Lua world script for
// quest and lore definitions.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/types"
)

// Record is one raw row: field name → text value. Blank or missing values
// mean "absent" and fall back per field (0, empty string, or filler text).
type Record map[string]string

// RowError describes a malformed record. The entity is not constructed.
type RowError struct {
	Kind  string // "location", "item", "npc", "filler"
	Row   int    // 1-based data row index
	Field string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: field %s: %v", e.Kind, e.Row, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// fieldInt parses an integer field; blank means def.
func fieldInt(rec Record, field string, def int) (int, error) {
	raw := strings.TrimSpace(rec[field])
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return v, nil
}

// fieldFlag treats any non-blank value except "0", "n" and "no" as set.
func fieldFlag(rec Record, field string) bool {
	raw := strings.ToLower(strings.TrimSpace(rec[field]))
	switch raw {
	case "", "0", "n", "no", "false":
		return false
	}
	return true
}

// ParseLocation builds a Location from a raw record. Blank narrative fields
// fall back to one filler text chosen with r (nil fillers leave them empty).
func ParseLocation(rec Record, row int, fillers []*types.FillerText, r *rng.RNG) (*types.Location, error) {
	id, err := fieldInt(rec, "LOC_ID", 0)
	if err != nil {
		return nil, &RowError{Kind: "location", Row: row, Field: "LOC_ID", Err: err}
	}
	if id <= 0 {
		return nil, &RowError{Kind: "location", Row: row, Field: "LOC_ID", Err: fmt.Errorf("missing or non-positive id")}
	}

	loc := &types.Location{ID: id, Tag: types.TagSafe}
	for field, d := range map[string]types.Direction{
		"LOC_N": types.North, "LOC_S": types.South,
		"LOC_E": types.East, "LOC_W": types.West,
	} {
		v, err := fieldInt(rec, field, 0)
		if err != nil {
			return nil, &RowError{Kind: "location", Row: row, Field: field, Err: err}
		}
		loc.Exits[d] = v
	}

	loc.IsDark = fieldFlag(rec, "LOC_IS_DARK")
	loc.Story = strings.TrimSpace(rec["LOC_STORY"])
	loc.Desc = strings.TrimSpace(rec["LOC_DESC"])
	if (loc.Story == "" || loc.Desc == "") && len(fillers) > 0 {
		filler := fillers[0]
		if r != nil {
			filler = rng.Pick(r, fillers)
		}
		if loc.Story == "" {
			loc.Story = filler.Story
		}
		if loc.Desc == "" {
			loc.Desc = filler.Desc
		}
	}

	if loc.ObjectID, err = fieldInt(rec, "LOC_OBJ_ID", 0); err != nil {
		return nil, &RowError{Kind: "location", Row: row, Field: "LOC_OBJ_ID", Err: err}
	}
	return loc, nil
}

// ParseItem builds an Item from a raw record.
func ParseItem(rec Record, row int) (*types.Item, error) {
	id, err := fieldInt(rec, "OBJ_ID", 0)
	if err != nil {
		return nil, &RowError{Kind: "item", Row: row, Field: "OBJ_ID", Err: err}
	}
	if id <= 0 {
		return nil, &RowError{Kind: "item", Row: row, Field: "OBJ_ID", Err: fmt.Errorf("missing or non-positive id")}
	}
	name := strings.TrimSpace(rec["OBJ_NAME"])
	if name == "" {
		return nil, &RowError{Kind: "item", Row: row, Field: "OBJ_NAME", Err: fmt.Errorf("missing name")}
	}
	return &types.Item{
		ID:            id,
		Name:          name,
		Desc:          strings.TrimSpace(rec["OBJ_DESC"]),
		Story:         strings.TrimSpace(rec["OBJ_NARRATIVE"]),
		RequiredToWin: fieldFlag(rec, "OBJ_WIN"),
	}, nil
}

// ParseNPC builds an NPC from a raw record. Behavior defaults to Patroller
// with an empty route; world generation assigns the final variant.
func ParseNPC(rec Record, row int) (*types.NPC, error) {
	id, err := fieldInt(rec, "NPC_ID", 0)
	if err != nil {
		return nil, &RowError{Kind: "npc", Row: row, Field: "NPC_ID", Err: err}
	}
	if id <= 0 {
		return nil, &RowError{Kind: "npc", Row: row, Field: "NPC_ID", Err: fmt.Errorf("missing or non-positive id")}
	}
	name := strings.TrimSpace(rec["NPC_NAME"])
	if name == "" {
		return nil, &RowError{Kind: "npc", Row: row, Field: "NPC_NAME", Err: fmt.Errorf("missing name")}
	}
	weakness, err := fieldInt(rec, "NPC_OBJID", 0)
	if err != nil {
		return nil, &RowError{Kind: "npc", Row: row, Field: "NPC_OBJID", Err: err}
	}
	start, err := fieldInt(rec, "NPC_START_LOC_ID", 0)
	if err != nil {
		return nil, &RowError{Kind: "npc", Row: row, Field: "NPC_START_LOC_ID", Err: err}
	}
	current, err := fieldInt(rec, "NPC_CURRENT_LOC_ID", start)
	if err != nil {
		return nil, &RowError{Kind: "npc", Row: row, Field: "NPC_CURRENT_LOC_ID", Err: err}
	}

	return &types.NPC{
		ID:         id,
		Name:       name,
		Desc:       strings.TrimSpace(rec["NPC_DESC"]),
		WeaknessID: weakness,
		Hostile:    true,
		Behavior:   types.Patroller{},
		HP:         DefaultNPCHP,
		MaxHP:      DefaultNPCHP,
		Phase:      1,
		StartLoc:   start,
		CurrentLoc: current,
	}, nil
}

// DefaultNPCHP is the hit point total for NPCs with no authored value.
const DefaultNPCHP = 40

// ParseFiller builds a FillerText from a raw record.
func ParseFiller(rec Record, row int) (*types.FillerText, error) {
	id, err := fieldInt(rec, "GEN_LOC_ID", 0)
	if err != nil {
		return nil, &RowError{Kind: "filler", Row: row, Field: "GEN_LOC_ID", Err: err}
	}
	return &types.FillerText{
		ID:    id,
		Story: strings.TrimSpace(rec["GEN_STORY"]),
		Desc:  strings.TrimSpace(rec["GEN_DESC"]),
	}, nil
}

// LoadWorld assembles a World from the four record sets. A missing required
// set is a fatal error; no partial world is returned.
func LoadWorld(locRows, itemRows, npcRows, fillerRows []Record, r *rng.RNG) (*types.World, error) {
	if len(locRows) == 0 {
		return nil, fmt.Errorf("cannot load locations: no records")
	}
	if len(itemRows) == 0 {
		return nil, fmt.Errorf("cannot load items: no records")
	}
	if len(npcRows) == 0 {
		return nil, fmt.Errorf("cannot load npcs: no records")
	}

	w := &types.World{}

	for i, rec := range fillerRows {
		f, err := ParseFiller(rec, i+1)
		if err != nil {
			return nil, fmt.Errorf("cannot load fillers: %w", err)
		}
		w.Fillers = append(w.Fillers, f)
	}
	for i, rec := range locRows {
		loc, err := ParseLocation(rec, i+1, w.Fillers, r)
		if err != nil {
			return nil, fmt.Errorf("cannot load locations: %w", err)
		}
		w.Locations = append(w.Locations, loc)
	}
	for i, rec := range itemRows {
		it, err := ParseItem(rec, i+1)
		if err != nil {
			return nil, fmt.Errorf("cannot load items: %w", err)
		}
		w.Items = append(w.Items, it)
	}
	for i, rec := range npcRows {
		n, err := ParseNPC(rec, i+1)
		if err != nil {
			return nil, fmt.Errorf("cannot load npcs: %w", err)
		}
		w.NPCs = append(w.NPCs, n)
	}

	w.Reindex()
	if err := validate(w); err != nil {
		return nil, err
	}
	return w, nil
}

// LoadDir reads the four CSV files (locations.csv, objects.csv, npcs.csv,
// genlocs.csv) from dir and assembles the world.
func LoadDir(dir string, r *rng.RNG) (*types.World, error) {
	read := func(name, kind string) ([]Record, error) {
		rows, err := ReadRecords(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("cannot load %s: %w", kind, err)
		}
		return rows, nil
	}

	locRows, err := read("locations.csv", "locations")
	if err != nil {
		return nil, err
	}
	itemRows, err := read("objects.csv", "items")
	if err != nil {
		return nil, err
	}
	npcRows, err := read("npcs.csv", "npcs")
	if err != nil {
		return nil, err
	}
	fillerRows, err := read("genlocs.csv", "fillers")
	if err != nil {
		return nil, err
	}

	return LoadWorld(locRows, itemRows, npcRows, fillerRows, r)
}

// ReadRecords reads one CSV file into raw records keyed by header name.
// A UTF-8 byte order mark on the first header cell is stripped.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s: empty file", filepath.Base(path))
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{}
		for i, field := range header {
			if i < len(row) {
				rec[field] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
