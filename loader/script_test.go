package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ScriptName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadScript_MissingFileUsesDefaults(t *testing.T) {
	ws, err := LoadScript(t.TempDir())
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(ws.Quests) != 3 {
		t.Errorf("got %d default quests, want 3", len(ws.Quests))
	}
	if len(ws.Lore) != 5 {
		t.Errorf("got %d default lore snippets, want 5", len(ws.Lore))
	}
	if ws.Quests[0].ID != "q_torch" || ws.Quests[0].Room != 39 {
		t.Errorf("unexpected first quest: %+v", ws.Quests[0])
	}
}

func TestLoadScript_CustomQuests(t *testing.T) {
	dir := writeScript(t, `
Quest "q_bell" {
  title = "Ring the Bell",
  giver = "Deaf Sexton",
  faction = "outcasts",
  room = 12,
  required_item = 5,
  reward_item = 104,
  reward_xp = 15,
  description = "Bring the clapper to the sexton.",
}

Lore {
  "The bell has not rung in a century.",
}
`)
	ws, err := LoadScript(dir)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(ws.Quests) != 1 {
		t.Fatalf("got %d quests, want 1", len(ws.Quests))
	}
	q := ws.Quests[0]
	if q.ID != "q_bell" || q.Room != 12 || q.RequiredItem != 5 || q.RewardXP != 15 {
		t.Errorf("unexpected quest: %+v", q)
	}
	if len(ws.Lore) != 1 || !strings.Contains(ws.Lore[0], "century") {
		t.Errorf("unexpected lore: %v", ws.Lore)
	}
}

func TestLoadScript_InvalidQuestRejected(t *testing.T) {
	dir := writeScript(t, `
Quest "q_broken" {
  title = "No Room",
  required_item = 5,
}
`)
	_, err := LoadScript(dir)
	if err == nil || !strings.Contains(err.Error(), "missing trigger room") {
		t.Errorf("expected validation failure, got %v", err)
	}
}

func TestLoadScript_SandboxBlocksIO(t *testing.T) {
	dir := writeScript(t, `local f = loadfile("/etc/passwd")`)
	if _, err := LoadScript(dir); err == nil {
		t.Error("expected sandboxed script to fail on loadfile")
	}
}

func TestLoadScript_SyntaxError(t *testing.T) {
	dir := writeScript(t, `Quest "broken` + "\n")
	if _, err := LoadScript(dir); err == nil {
		t.Error("expected syntax error")
	}
}
