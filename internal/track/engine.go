package track

import (
	"reflect"

	"github.com/mgpai22/sublay/internal/logging"
	"github.com/mgpai22/sublay/internal/subtitle"
)

// Engine owns the loaded cue sequence and the activation flags, and
// forwards the active cue to the overlay when the flags allow it.
//
// Collaborators from the Environment are compared with == when their
// dynamic types allow it, and by value otherwise.
type Engine struct {
	log *logging.Logger

	env      Environment
	overlay  Renderer
	captions CaptionControl
	playhead Playhead
	menu     Menu
	ready    bool

	cues          []subtitle.Cue
	source        string
	activated     bool
	nativeSurface bool

	// locality hint for the next lookup
	current int
	// index currently on the overlay, -1 when blank
	shown int
}

// Snapshot is a read-only view of the engine state.
type Snapshot struct {
	State         State
	Status        Status
	Activated     bool
	NativeSurface bool
	Cues          int
	Source        string
	Current       int
	Shown         int
	Ready         bool
}

func New(log *logging.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{
		log:     log,
		current: -1,
		shown:   -1,
	}
}

// Setup binds the engine to the host collaborators. It is safe to call
// repeatedly: while the host still offers the same collaborators nothing
// changes, and without an overlay the call waits for a later retry.
func (e *Engine) Setup(env Environment) {
	if env == nil {
		return
	}
	e.env = env

	overlay := env.Overlay()
	if overlay == nil {
		e.log.Debugw("Setup deferred, no overlay available")
		return
	}

	captions, playhead, menu := env.Captions(), env.Playhead(), env.Menu()
	if e.ready &&
		sameCollaborator(overlay, e.overlay) &&
		sameCollaborator(captions, e.captions) &&
		sameCollaborator(playhead, e.playhead) &&
		sameCollaborator(menu, e.menu) {
		return
	}

	if !sameCollaborator(overlay, e.overlay) {
		e.overlay = overlay
		e.shown = -1
	}
	e.captions = captions
	e.playhead = playhead
	e.menu = menu
	e.ready = true

	e.syncNativeVisibility()
	e.publishStatus()

	e.log.Debugw("Engine bound to host",
		"captions", captions != nil,
		"playhead", playhead != nil,
		"menu", menu != nil,
	)
}

// Load parses raw subtitle text delivered by the file acquisition
// collaborator and activates it when it holds at least one cue.
func (e *Engine) Load(text, filename string) {
	track := subtitle.Parse(text)
	track.Source = filename
	e.LoadTrack(track)
}

// LoadTrack installs an already parsed track.
func (e *Engine) LoadTrack(track *subtitle.Track) {
	var cues []subtitle.Cue
	var source string
	var format subtitle.Format
	if track != nil {
		cues = track.Cues
		source = track.Source
		format = track.Format
	}

	e.cues = cues
	e.source = source
	e.current = -1
	e.activated = len(cues) > 0
	e.clearOverlay()

	if len(cues) == 0 {
		e.log.Warnw("No cues found in subtitle file", "file", source)
	} else {
		e.log.Infow("Loaded subtitles",
			"file", source,
			"format", format,
			"cues", len(cues),
		)
	}

	e.pressCaptionsIfNeeded()
	e.syncNativeVisibility()
	e.publishStatus()
	e.refresh()
}

// OnLocalTrackUserToggle handles a click on the root menu entry. Without
// loaded cues it asks for a file; otherwise it flips the local track.
func (e *Engine) OnLocalTrackUserToggle() {
	if len(e.cues) == 0 {
		if e.menu != nil {
			e.menu.PickFile()
		}
		return
	}

	e.activated = !e.activated
	e.log.Debugw("Local track toggled", "activated", e.activated)

	e.publishStatus()
	e.syncNativeVisibility()
	e.pressCaptionsIfNeeded()

	if !e.activated {
		e.clearOverlay()
		e.current = -1
		return
	}
	e.refresh()
}

// OnNativeToggleChanged handles the user picking another native caption
// option, or "off", from the host caption menu.
func (e *Engine) OnNativeToggleChanged() {
	if e.activated {
		e.log.Debugw("Native caption selected, local track off")
	}
	e.activated = false
	e.publishStatus()
	e.syncNativeVisibility()
	e.clearOverlay()
	e.current = -1
}

// OnNativePresenceChanged records whether the host currently exposes a
// caption selection surface.
func (e *Engine) OnNativePresenceChanged(present bool) {
	if present != e.nativeSurface {
		e.log.Debugw("Native caption surface changed", "present", present)
	}
	e.nativeSurface = present
}

// OnTimeSample updates the overlay for playback position t, in seconds.
func (e *Engine) OnTimeSample(t float64) {
	if e.overlay == nil {
		return
	}

	switch e.State() {
	case Inactive:
		if e.shown != -1 {
			e.clearOverlay()
		}
		return
	case ActiveManaged:
		if e.captions != nil && !e.captions.CaptionsOn() {
			// keep the hint so switching back on resumes in place
			if e.shown != -1 {
				e.clearOverlay()
			}
			return
		}
	}

	e.current = subtitle.Locate(t, e.cues, e.current)
	e.show(e.current)
}

// OnContentChangeStart resets everything when the host starts navigating
// to other content.
func (e *Engine) OnContentChangeStart() {
	e.cues = nil
	e.source = ""
	e.current = -1
	e.activated = false
	e.nativeSurface = false

	if e.overlay != nil {
		e.overlay.Clear()
	}
	e.shown = -1

	e.syncNativeVisibility()
	e.publishStatus()
	e.log.Debugw("Content change started, subtitles cleared")
}

// OnContentChangeFinish re-runs setup against the last environment once
// the new content is in place.
func (e *Engine) OnContentChangeFinish() {
	e.Setup(e.env)
}

func (e *Engine) State() State {
	if !e.activated || len(e.cues) == 0 {
		return Inactive
	}
	if e.nativeSurface {
		return ActiveManaged
	}
	return ActiveUnmanaged
}

func (e *Engine) MenuStatus() Status {
	switch {
	case len(e.cues) == 0:
		return StatusNotLoaded
	case e.activated:
		return StatusEnabled
	default:
		return StatusLoaded
	}
}

// Cues returns the loaded cue sequence. Callers must not modify it.
func (e *Engine) Cues() []subtitle.Cue {
	return e.cues
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:         e.State(),
		Status:        e.MenuStatus(),
		Activated:     e.activated,
		NativeSurface: e.nativeSurface,
		Cues:          len(e.cues),
		Source:        e.source,
		Current:       e.current,
		Shown:         e.shown,
		Ready:         e.ready,
	}
}

// sameCollaborator is == for comparable dynamic types; values that cannot
// be compared, such as structs holding slices, fall back to deep equality
// instead of panicking.
func sameCollaborator(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func (e *Engine) refresh() {
	if e.playhead != nil {
		e.OnTimeSample(e.playhead.CurrentTime())
	}
}

func (e *Engine) show(index int) {
	if index == e.shown {
		return
	}
	if index < 0 || e.cues[index].Text == "" {
		e.clearOverlay()
		e.shown = index
		return
	}
	e.overlay.Render(e.cues[index].Text)
	e.shown = index
}

func (e *Engine) clearOverlay() {
	if e.overlay != nil {
		e.overlay.Clear()
	}
	e.shown = -1
}

func (e *Engine) pressCaptionsIfNeeded() {
	if e.activated && e.nativeSurface && e.captions != nil && !e.captions.CaptionsOn() {
		e.captions.PressCaptions()
	}
}

func (e *Engine) syncNativeVisibility() {
	if e.captions != nil {
		e.captions.HideNative(e.activated)
	}
}

func (e *Engine) publishStatus() {
	if e.menu != nil {
		e.menu.SetStatus(e.MenuStatus())
	}
}
