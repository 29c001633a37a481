package player

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mgpai22/sublay/internal/logging"
	"github.com/mgpai22/sublay/internal/subtitle"
	"github.com/mgpai22/sublay/internal/track"
)

// fake wall clock advancing by step on every read
func steppingNow(step time.Duration) func() time.Time {
	var mu sync.Mutex
	at := time.Unix(0, 0)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		at = at.Add(step)
		return at
	}
}

type recordingRenderer struct {
	mu    sync.Mutex
	texts []string
	text  string
}

func (r *recordingRenderer) Render(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.texts = append(r.texts, text)
}

func (r *recordingRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = ""
}

func (r *recordingRenderer) rendered() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func twoCueTrack() *subtitle.Track {
	return &subtitle.Track{
		Cues: []subtitle.Cue{
			{Start: 1, End: 2, Text: "Hello"},
			{Start: 3, End: 4, Text: "World"},
		},
		Format: subtitle.FormatSRT,
		Source: "movie.srt",
	}
}

func TestClock(t *testing.T) {
	c := newClockWithNow(10, 2, steppingNow(time.Second))

	if got := c.CurrentTime(); got != 12 {
		t.Errorf("expected 12 after one second at 2x, got %v", got)
	}

	c.Pause()
	paused := c.CurrentTime()
	if got := c.CurrentTime(); got != paused {
		t.Errorf("paused clock moved from %v to %v", paused, got)
	}

	c.Seek(100)
	if got := c.CurrentTime(); got != 100 {
		t.Errorf("expected paused seek to hold at 100, got %v", got)
	}

	c.Resume()
	if got := c.CurrentTime(); got != 102 {
		t.Errorf("expected 102 after resuming, got %v", got)
	}

	c.Seek(-5)
	if got := c.CurrentTime(); got < 0 {
		t.Errorf("clock went negative: %v", got)
	}
}

func TestNewClockClampsArguments(t *testing.T) {
	c := newClockWithNow(-3, 0, steppingNow(0))
	if got := c.CurrentTime(); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if c.speed != 1 {
		t.Errorf("expected speed defaulted to 1, got %v", c.speed)
	}
}

func TestNativeCaptionsPresenceAndSelection(t *testing.T) {
	n := NewNativeCaptions(nil, true)

	var reports []bool
	n.SubscribePresence(func(present bool) { reports = append(reports, present) })
	n.SetMenus([][]string{{"Quality", "Speed"}})
	n.SetMenus([][]string{{"Off", "English"}})

	want := []bool{false, false, true}
	if len(reports) != len(want) {
		t.Fatalf("expected %d presence reports, got %v", len(want), reports)
	}
	for i := range want {
		if reports[i] != want[i] {
			t.Errorf("report %d: expected %v, got %v", i, want[i], reports[i])
		}
	}

	selections := 0
	n.SubscribeSelection(func() { selections++ })
	n.Select("Off")
	if n.CaptionsOn() {
		t.Error("selecting Off should turn native captions off")
	}
	n.Select("English")
	if !n.CaptionsOn() {
		t.Error("selecting a language should turn native captions on")
	}
	if selections != 2 {
		t.Errorf("expected 2 selection callbacks, got %d", selections)
	}
}

func TestRunRendersCuesUntilEnd(t *testing.T) {
	engine := track.New(logging.Nop())
	engine.LoadTrack(twoCueTrack())

	renderer := &recordingRenderer{}
	clock := newClockWithNow(0, 1, steppingNow(250*time.Millisecond))
	p := New(engine, renderer, nil, clock, Options{
		Interval: time.Millisecond,
		Duration: 4.5,
	}, logging.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	got := renderer.rendered()
	if len(got) != 2 || got[0] != "Hello" || got[1] != "World" {
		t.Errorf("expected [Hello World], got %v", got)
	}
	if renderer.text != "" {
		t.Errorf("expected blank overlay at end of media, got %q", renderer.text)
	}
}

func TestRunManagedByNativeToggle(t *testing.T) {
	engine := track.New(logging.Nop())
	captions := NewNativeCaptions(nil, false)
	captions.SetMenus([][]string{{"Off", "English"}})

	renderer := &recordingRenderer{}
	clock := newClockWithNow(0, 1, steppingNow(250*time.Millisecond))
	p := New(engine, renderer, captions, clock, Options{
		Interval: 5 * time.Millisecond,
		Duration: 4.5,
	}, logging.Nop())

	// queued before the loop starts, so handled before the first tick
	p.Post(func(e *track.Engine) { e.LoadTrack(twoCueTrack()) })

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if engine.State() != track.ActiveManaged {
		t.Errorf("expected %s, got %s", track.ActiveManaged, engine.State())
	}
	if !captions.CaptionsOn() {
		t.Error("loading with a native surface should switch native captions on")
	}
	if !captions.Hidden() {
		t.Error("native captions should be hidden while local subtitles are active")
	}
	if got := renderer.rendered(); len(got) != 2 {
		t.Errorf("expected both cues rendered, got %v", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	engine := track.New(logging.Nop())
	p := New(engine, &recordingRenderer{}, nil, NewClock(0, 1), Options{
		Interval: time.Millisecond,
	}, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPostAfterRunDoesNotBlock(t *testing.T) {
	engine := track.New(logging.Nop())
	p := New(engine, &recordingRenderer{}, nil, NewClock(0, 1), Options{
		Interval: time.Millisecond,
	}, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := 0; i < 2*cap(p.events); i++ {
			p.ClickRootMenu()
		}
		p.Navigate()
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("posting after Run returned blocked")
	}
}

func TestNavigateResetsEngine(t *testing.T) {
	engine := track.New(logging.Nop())
	engine.LoadTrack(twoCueTrack())

	clock := newClockWithNow(0, 1, steppingNow(250*time.Millisecond))
	p := New(engine, &recordingRenderer{}, nil, clock, Options{
		Interval: 5 * time.Millisecond,
		Duration: 3,
	}, logging.Nop())
	p.Navigate()

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	snap := engine.Snapshot()
	if snap.Cues != 0 || snap.Activated {
		t.Errorf("expected reset after navigation, got %+v", snap)
	}
	if p.RootMenu().Status() != track.StatusNotLoaded {
		t.Errorf("expected menu status %s, got %s", track.StatusNotLoaded, p.RootMenu().Status())
	}
}

func TestRootMenuPickFileDeliversAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.srt")
	if err := os.WriteFile(path, []byte("1\n00:00:01,000 --> 00:00:02,000\nHi\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	delivered := make(chan [2]string, 1)
	menu := &RootMenu{
		pick: PickPath(path),
		log:  logging.Nop(),
		deliver: func(text, filename string) {
			delivered <- [2]string{text, filename}
		},
	}
	menu.PickFile()

	select {
	case got := <-delivered:
		if got[1] != "movie.srt" {
			t.Errorf("expected filename movie.srt, got %q", got[1])
		}
		parsed := subtitle.Parse(got[0])
		if parsed.Len() != 1 || math.Abs(parsed.Cues[0].End-2) > 1e-9 {
			t.Errorf("unexpected delivered content %+v", parsed.Cues)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("file was never delivered")
	}
}
