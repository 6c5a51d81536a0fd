package mutator

import (
	"testing"

	"github.com/nathoo/dundork/rng"
	"github.com/nathoo/dundork/types"
)

func TestChoose_FromCatalog(t *testing.T) {
	r := rng.New(42)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		m := Choose(r)
		seen[m.Name] = true
	}
	// All six entries should show up over 200 uniform draws.
	if len(seen) != len(Catalog) {
		t.Errorf("saw %d distinct mutators, want %d: %v", len(seen), len(Catalog), seen)
	}
}

func TestChoose_Deterministic(t *testing.T) {
	a := Choose(rng.New(7))
	b := Choose(rng.New(7))
	if a.Name != b.Name {
		t.Errorf("same seed chose %q and %q", a.Name, b.Name)
	}
}

func TestValidateClass(t *testing.T) {
	meta := &types.Meta{
		UnlockedClasses: []string{"adventurer", "fighter"},
		LastClass:       "fighter",
	}

	tests := []struct {
		requested string
		want      string
	}{
		{"fighter", "fighter"},
		{"scout", DefaultClass},   // locked
		{"", "fighter"},           // falls back to last class
		{"scholar", DefaultClass}, // locked
	}
	for _, tt := range tests {
		if got := ValidateClass(tt.requested, meta); got != tt.want {
			t.Errorf("ValidateClass(%q) = %q, want %q", tt.requested, got, tt.want)
		}
	}
}

func TestValidateClass_EmptyMeta(t *testing.T) {
	meta := &types.Meta{}
	if got := ValidateClass("", meta); got != DefaultClass {
		t.Errorf("ValidateClass on empty meta = %q, want %q", got, DefaultClass)
	}
}
