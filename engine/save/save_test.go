package save

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	m := DefaultMeta()
	m.Wins = 2
	m.TotalXP = 140
	m.UnlockedClasses = []string{"adventurer", "fighter", "scout"}
	m.LastClass = "scout"
	m.BestEnding = "Warrior's Escape"

	data, err := Encode(m)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Wins != 2 || got.TotalXP != 140 || got.LastClass != "scout" || got.BestEnding != "Warrior's Escape" {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if len(got.UnlockedClasses) != 3 {
		t.Errorf("unlocked classes = %v", got.UnlockedClasses)
	}
}

func TestDecode_MissingKeysDefault(t *testing.T) {
	got, err := Decode([]byte(`{"wins": 1}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Wins != 1 {
		t.Errorf("wins = %d, want 1", got.Wins)
	}
	if got.LastClass != "adventurer" || len(got.UnlockedClasses) == 0 {
		t.Errorf("defaults not applied: %+v", got)
	}
}

func TestLoadFile_MissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()

	if m := LoadFile(filepath.Join(dir, "absent.json")); m.LastClass != "adventurer" {
		t.Errorf("missing file should yield defaults, got %+v", m)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if m := LoadFile(bad); m.Wins != 0 || m.LastClass != "adventurer" {
		t.Errorf("corrupt file should yield defaults, got %+v", m)
	}
}

func TestWriteFile_ThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	m := DefaultMeta()
	m.Wins = 5

	if err := WriteFile(path, m); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := LoadFile(path); got.Wins != 5 {
		t.Errorf("reloaded wins = %d, want 5", got.Wins)
	}
}
