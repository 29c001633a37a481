package subtitle

import (
	"math/rand"
	"testing"
)

func sampleCues() []Cue {
	return []Cue{
		{Start: 1, End: 2, Text: "a"},
		{Start: 3, End: 4, Text: "b"},
		{Start: 5, End: 6, Text: "c"},
		{Start: 8, End: 10, Text: "d"},
	}
}

func TestLocateWithoutHint(t *testing.T) {
	cues := sampleCues()
	tests := []struct {
		t    float64
		want int
	}{
		{1, 0},
		{1.5, 0},
		{2, 0},
		{3.5, 1},
		{5, 2},
		{9.999, 3},
		{10, 3},

		// gaps
		{0, -1},
		{2.5, -1},
		{7, -1},
		{10.01, -1},
	}

	for _, tt := range tests {
		if got := Locate(tt.t, cues, -1); got != tt.want {
			t.Errorf("Locate(%v, cues, -1) = %d, want %d", tt.t, got, tt.want)
		}
	}
}

func TestLocateWithHint(t *testing.T) {
	cues := sampleCues()
	tests := []struct {
		name string
		t    float64
		last int
		want int
	}{
		{"still inside hint", 3.2, 1, 1},
		{"next cue", 5.5, 1, 2},
		{"skip ahead two", 9, 1, 3},
		{"previous cue", 1.5, 2, 0},
		{"forward into gap", 7, 2, -1},
		{"backward into gap", 2.5, 2, -1},
		{"far seek back", 1.2, 3, 0},
		{"hint out of range", 5.5, 99, 2},
		{"negative hint", 5.5, -7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Locate(tt.t, cues, tt.last); got != tt.want {
				t.Errorf(
					"Locate(%v, cues, %d) = %d, want %d",
					tt.t,
					tt.last,
					got,
					tt.want,
				)
			}
		})
	}
}

func TestLocateEmpty(t *testing.T) {
	if got := Locate(1, nil, -1); got != -1 {
		t.Errorf("expected -1 for empty sequence, got %d", got)
	}
	if got := Locate(1, nil, 0); got != -1 {
		t.Errorf("expected -1 for empty sequence with stale hint, got %d", got)
	}
}

func TestLocateOverlapPrefersFirst(t *testing.T) {
	cues := []Cue{
		{Start: 0, End: 5, Text: "A"},
		{Start: 3, End: 8, Text: "B"},
	}
	if got := Locate(4, cues, -1); got != 0 {
		t.Errorf("expected overlap to resolve to 0, got %d", got)
	}
	// once playback has moved into B alone, the hint keeps it there
	if got := Locate(6, cues, 0); got != 1 {
		t.Errorf("expected 1 past A's end, got %d", got)
	}
	if got := Locate(4, cues, 1); got != 1 {
		t.Errorf("expected hint to keep B inside the overlap, got %d", got)
	}
}

// random sorted cues with non-negative gaps; zero gaps make neighbours touch
func randomCues(r *rand.Rand, n int) []Cue {
	cues := make([]Cue, 0, n)
	at := r.Float64() * 2
	for i := 0; i < n; i++ {
		gap := 0.0
		if r.Intn(3) > 0 {
			gap = r.Float64() * 3
		}
		start := at + gap
		end := start + 0.1 + r.Float64()*4
		cues = append(cues, Cue{Start: start, End: end})
		at = end
	}
	return cues
}

func TestLocateMatchesFreshSearchDuringPlayback(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		cues := randomCues(r, r.Intn(40))
		last := -1
		for now := 0.0; now < 200; now += r.Float64() * 0.6 {
			last = Locate(now, cues, last)
			fresh := search(now, cues)

			if (last == -1) != (fresh == -1) {
				t.Fatalf(
					"round %d t=%v: hinted=%d fresh=%d disagree on presence",
					round,
					now,
					last,
					fresh,
				)
			}
			if last != -1 && !cues[last].Contains(now) {
				t.Fatalf("round %d t=%v: hinted cue %d does not contain t", round, now, last)
			}
			// only touching boundaries may legitimately differ
			if last != fresh && last != -1 {
				if cues[last].End != cues[fresh].Start && cues[fresh].End != cues[last].Start {
					t.Fatalf(
						"round %d t=%v: hinted=%d fresh=%d",
						round,
						now,
						last,
						fresh,
					)
				}
			}
		}
	}
}

func TestLocateRandomSeeks(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	cues := randomCues(r, 500)
	last := -1
	for i := 0; i < 5000; i++ {
		now := r.Float64() * (cues[len(cues)-1].End + 5)
		last = Locate(now, cues, last)
		if last == -1 {
			for j, c := range cues {
				if c.Contains(now) {
					t.Fatalf("t=%v: expected a cue (e.g. %d), got -1", now, j)
				}
			}
			continue
		}
		if !cues[last].Contains(now) {
			t.Fatalf("t=%v: cue %d does not contain t", now, last)
		}
	}
}
