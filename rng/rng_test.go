package rng

import "testing"

func TestDeterministic(t *testing.T) {
	r1 := New(42)
	r2 := New(42)

	for i := 0; i < 20; i++ {
		a := r1.Roll(6)
		b := r2.Roll(6)
		if a != b {
			t.Fatalf("roll %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRoll_Range(t *testing.T) {
	r := New(99)

	for i := 0; i < 1000; i++ {
		v := r.Roll(6)
		if v < 1 || v > 6 {
			t.Fatalf("roll out of range [1,6]: got %d", v)
		}
	}
}

func TestChance_Extremes(t *testing.T) {
	r := New(7)

	for i := 0; i < 100; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) returned false")
		}
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	a := []int{1, 2, 3, 4, 5, 6, 7, 8}
	b := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(New(42), a)
	Shuffle(New(42), b)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d: got %d and %d from same seed", i, a[i], b[i])
		}
	}
}

func TestShuffle_Permutes(t *testing.T) {
	a := []int{1, 2, 3, 4, 5, 6, 7, 8}
	Shuffle(New(42), a)

	seen := map[int]bool{}
	for _, v := range a {
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Fatalf("shuffle lost elements: %v", a)
	}
}

func TestWeightedSelect_Distribution(t *testing.T) {
	r := New(12345)
	weights := []int{70, 20, 10}
	counts := [3]int{}

	const trials = 10000
	for i := 0; i < trials; i++ {
		idx := r.WeightedSelect(weights)
		if idx < 0 || idx > 2 {
			t.Fatalf("index out of range: %d", idx)
		}
		counts[idx]++
	}

	// Rough sanity: the heaviest bucket dominates.
	if counts[0] < counts[1] || counts[1] < counts[2] {
		t.Errorf("distribution inverted: %v", counts)
	}
}

func TestRestore_ReproducesPosition(t *testing.T) {
	r := New(42)
	for i := 0; i < 10; i++ {
		r.Roll(20)
	}
	want := r.Roll(20)

	replay := Restore(42, 10)
	if got := replay.Roll(20); got != want {
		t.Errorf("restored roll = %d, want %d", got, want)
	}
}
