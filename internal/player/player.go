// Package player is a stand-in for the host video player. It owns the
// playback clock, the native caption controls and the root menu, and it
// delivers every event to a track.Engine from a single loop.
package player

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mgpai22/sublay/internal/logging"
	"github.com/mgpai22/sublay/internal/track"
)

const safetyNetInterval = 5 * time.Second

// delivers (text, filename) for a user-chosen subtitle file
type FilePicker func() (text, filename string, err error)

// PickPath returns a FilePicker that reads a fixed path.
func PickPath(path string) FilePicker {
	return func() (string, string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to read subtitle file: %w", err)
		}
		return string(data), filepath.Base(path), nil
	}
}

// RootMenu is the local subtitles entry in the host settings menu.
type RootMenu struct {
	mu      sync.Mutex
	status  track.Status
	pick    FilePicker
	deliver func(text, filename string)
	log     *logging.Logger
}

func (m *RootMenu) SetStatus(status track.Status) {
	m.mu.Lock()
	changed := status != m.status
	m.status = status
	m.mu.Unlock()

	if changed {
		m.log.Infow("Local subtitles", "status", status.String())
	}
}

func (m *RootMenu) Status() track.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// PickFile runs the picker off the event loop; the result comes back as
// a queued Load.
func (m *RootMenu) PickFile() {
	if m.pick == nil {
		m.log.Debugw("No file picker configured")
		return
	}
	go func() {
		text, filename, err := m.pick()
		if err != nil {
			m.log.Warnw("File selection failed", "error", err)
			return
		}
		m.deliver(text, filename)
	}()
}

// Options tunes the sampler loop.
type Options struct {
	// time between playback samples
	Interval time.Duration
	// media length in seconds; Run stops once the clock passes it. Zero
	// means run until the context is cancelled.
	Duration float64
	Picker   FilePicker
}

// Player implements track.Environment.
type Player struct {
	log      *logging.Logger
	engine   *track.Engine
	overlay  track.Renderer
	captions *NativeCaptions
	clock    *Clock
	menu     *RootMenu
	opts     Options
	events   chan func(*track.Engine)
	done     chan struct{}
	stopOnce sync.Once
}

func New(
	engine *track.Engine,
	overlay track.Renderer,
	captions *NativeCaptions,
	clock *Clock,
	opts Options,
	log *logging.Logger,
) *Player {
	if log == nil {
		log = logging.Nop()
	}
	if opts.Interval <= 0 {
		opts.Interval = 250 * time.Millisecond
	}
	if captions == nil {
		captions = NewNativeCaptions(nil, false)
	}

	p := &Player{
		log:      log,
		engine:   engine,
		overlay:  overlay,
		captions: captions,
		clock:    clock,
		opts:     opts,
		events:   make(chan func(*track.Engine), 64),
		done:     make(chan struct{}),
	}
	p.menu = &RootMenu{
		pick: opts.Picker,
		log:  log,
		deliver: func(text, filename string) {
			p.Post(func(e *track.Engine) { e.Load(text, filename) })
		},
	}
	return p
}

func (p *Player) Overlay() track.Renderer {
	return p.overlay
}

func (p *Player) Captions() track.CaptionControl {
	return p.captions
}

func (p *Player) Playhead() track.Playhead {
	if p.clock == nil {
		return nil
	}
	return p.clock
}

func (p *Player) Menu() track.Menu {
	return p.menu
}

func (p *Player) NativeCaptions() *NativeCaptions { return p.captions }

func (p *Player) Clock() *Clock { return p.clock }

func (p *Player) RootMenu() *RootMenu { return p.menu }

// Post queues fn to run on the event loop. Once Run has returned, events
// are dropped.
func (p *Player) Post(fn func(*track.Engine)) {
	select {
	case <-p.done:
		return
	default:
	}
	select {
	case p.events <- fn:
	case <-p.done:
	}
}

// ClickRootMenu simulates the user clicking the local subtitles entry.
func (p *Player) ClickRootMenu() {
	p.Post(func(e *track.Engine) { e.OnLocalTrackUserToggle() })
}

// Navigate simulates the host switching to other content: a reset when
// navigation starts, then setup again once the new content is ready.
func (p *Player) Navigate() {
	p.Post(func(e *track.Engine) {
		e.OnContentChangeStart()
		p.captions.SetMenus(nil)
		if p.clock != nil {
			p.clock.Seek(0)
		}
	})
	p.Post(func(e *track.Engine) { e.OnContentChangeFinish() })
}

// Run drives the engine until ctx is done or playback passes the media
// duration. It is the only goroutine that touches the engine.
func (p *Player) Run(ctx context.Context) error {
	defer p.stopOnce.Do(func() { close(p.done) })

	p.engine.Setup(p)
	p.captions.SubscribePresence(p.engine.OnNativePresenceChanged)
	p.captions.SubscribeSelection(p.engine.OnNativeToggleChanged)

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()
	safety := time.NewTicker(safetyNetInterval)
	defer safety.Stop()

	p.log.Debugw("Playback started",
		"interval", p.opts.Interval.String(),
		"duration", p.opts.Duration,
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-p.events:
			fn(p.engine)
		case <-safety.C:
			p.engine.Setup(p)
		case <-ticker.C:
			if p.clock == nil {
				continue
			}
			now := p.clock.CurrentTime()
			if p.opts.Duration > 0 && now > p.opts.Duration {
				p.engine.OnTimeSample(p.opts.Duration)
				p.log.Debugw("Playback reached end of media", "position", now)
				return nil
			}
			p.engine.OnTimeSample(now)
		}
	}
}
