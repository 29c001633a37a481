package subtitle

import (
	"sort"
)

// single timed caption, times in seconds
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// reports whether t falls inside the cue's closed range
func (c Cue) Contains(t float64) bool {
	return t >= c.Start && t <= c.End
}

// represents a parsed cue sequence, sorted by start time
type Track struct {
	Cues   []Cue
	Format Format
	Source string
}

// number of cues in the track, safe on nil
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Cues)
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
)

// interface for writing cue sequences to files
type Writer interface {
	Write(track *Track, path string) error
}

// SortCues orders cues by start time. Ties keep their parsed order.
func SortCues(cues []Cue) {
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})
}
