package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/types"
)

func locRecord(id, n, s, e, w string) Record {
	return Record{
		"LOC_ID": id, "LOC_N": n, "LOC_S": s, "LOC_E": e, "LOC_W": w,
		"LOC_STORY": "story " + id, "LOC_DESC": "desc " + id,
		"LOC_OBJ_ID": "", "LOC_NPC_ID": "",
	}
}

func minimalRows() (locs, items, npcs, fillers []Record) {
	locs = []Record{
		locRecord("1", "0", "2", "0", "0"),
		locRecord("2", "1", "0", "0", "0"),
	}
	items = []Record{
		{"OBJ_ID": "1", "OBJ_NAME": "Torch", "OBJ_DESC": "a torch", "OBJ_NARRATIVE": "", "OBJ_WIN": ""},
	}
	npcs = []Record{
		{"NPC_ID": "1", "NPC_NAME": "Gump", "NPC_DESC": "a gruesome gump", "NPC_OBJID": "1", "NPC_START_LOC_ID": "2"},
	}
	fillers = []Record{
		{"GEN_LOC_ID": "1", "GEN_STORY": "filler story", "GEN_DESC": "filler desc"},
	}
	return
}

func TestLoadWorld_Minimal(t *testing.T) {
	locs, items, npcs, fillers := minimalRows()
	w, err := LoadWorld(locs, items, npcs, fillers, rng.New(1))
	if err != nil {
		t.Fatalf("LoadWorld: %v", err)
	}

	if len(w.Locations) != 2 || len(w.Items) != 1 || len(w.NPCs) != 1 {
		t.Fatalf("unexpected counts: %d locs, %d items, %d npcs",
			len(w.Locations), len(w.Items), len(w.NPCs))
	}
	if w.LocByID[1].Exit(types.South) != 2 {
		t.Errorf("location 1 south exit = %d, want 2", w.LocByID[1].Exit(types.South))
	}
	npc := w.NPCByID[1]
	if npc.HP != DefaultNPCHP || npc.MaxHP != DefaultNPCHP {
		t.Errorf("npc hp = %d/%d, want defaults", npc.HP, npc.MaxHP)
	}
	if npc.CurrentLoc != 2 {
		t.Errorf("npc current loc = %d, want start loc 2", npc.CurrentLoc)
	}
	if !npc.Hostile {
		t.Error("npc should default to hostile")
	}
}

func TestLoadWorld_MissingSet(t *testing.T) {
	locs, items, _, fillers := minimalRows()
	_, err := LoadWorld(locs, items, nil, fillers, rng.New(1))
	if err == nil || !strings.Contains(err.Error(), "cannot load npcs") {
		t.Errorf("expected fatal 'cannot load npcs', got %v", err)
	}
}

func TestLoadWorld_BadNeighbor(t *testing.T) {
	locs, items, npcs, fillers := minimalRows()
	locs[0]["LOC_E"] = "77" // no location 77
	_, err := LoadWorld(locs, items, npcs, fillers, rng.New(1))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Errors) != 1 || !strings.Contains(ve.Errors[0], "undefined location 77") {
		t.Errorf("unexpected errors: %v", ve.Errors)
	}
}

func TestParseLocation_BlankNarrativeUsesFiller(t *testing.T) {
	rec := locRecord("5", "0", "0", "0", "0")
	rec["LOC_STORY"] = ""
	rec["LOC_DESC"] = "  "
	fillers := []*types.FillerText{{ID: 1, Story: "generic story", Desc: "generic desc"}}

	loc, err := ParseLocation(rec, 1, fillers, rng.New(1))
	if err != nil {
		t.Fatalf("ParseLocation: %v", err)
	}
	if loc.Story != "generic story" || loc.Desc != "generic desc" {
		t.Errorf("filler not applied: %q / %q", loc.Story, loc.Desc)
	}
}

func TestParseLocation_MalformedNumber(t *testing.T) {
	rec := locRecord("1", "zero", "0", "0", "0")
	_, err := ParseLocation(rec, 3, nil, nil)

	var re *RowError
	if !errors.As(err, &re) {
		t.Fatalf("expected RowError, got %v", err)
	}
	if re.Kind != "location" || re.Row != 3 || re.Field != "LOC_N" {
		t.Errorf("unexpected RowError: %+v", re)
	}
}

func TestParseItem_WinFlag(t *testing.T) {
	rec := Record{"OBJ_ID": "2", "OBJ_NAME": "Amulet", "OBJ_WIN": "Y"}
	it, err := ParseItem(rec, 1)
	if err != nil {
		t.Fatalf("ParseItem: %v", err)
	}
	if !it.RequiredToWin {
		t.Error("OBJ_WIN=Y should mark item required to win")
	}

	rec["OBJ_WIN"] = ""
	it, _ = ParseItem(rec, 1)
	if it.RequiredToWin {
		t.Error("blank OBJ_WIN should not mark item required")
	}
}

func TestParseNPC_MissingName(t *testing.T) {
	rec := Record{"NPC_ID": "3", "NPC_NAME": " "}
	if _, err := ParseNPC(rec, 2); err == nil {
		t.Error("expected error for missing npc name")
	}
}

func TestReadRecords_HeaderAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "objects.csv")
	data := "\uFEFFOBJ_ID,OBJ_NAME,OBJ_DESC\n1,Torch,a torch\n2,Amulet,an amulet\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["OBJ_ID"] != "1" || rows[1]["OBJ_NAME"] != "Amulet" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	if _, err := ReadRecords(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
