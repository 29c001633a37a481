// Package track decides whether locally loaded subtitles are shown over a
// video and which cue is shown. It reconciles three signals: the local
// track switch, whether the host player offers its own caption selection,
// and the host's caption toggle.
//
// All methods on Engine are meant to be called from a single event loop;
// the engine holds no locks.
package track

// receives the text to display; Render is never called with ""
type Renderer interface {
	Render(text string)
	Clear()
}

// host player's own caption button and caption layer
type CaptionControl interface {
	// reports whether the host caption toggle is on
	CaptionsOn() bool
	// flips the host caption toggle, as a click would
	PressCaptions()
	// hides or restores the host's rendered captions
	HideNative(hidden bool)
}

// current playback position, in seconds
type Playhead interface {
	CurrentTime() float64
}

// root menu entry for local subtitles
type Menu interface {
	SetStatus(status Status)
	// asks the file acquisition collaborator for a subtitle file; the
	// result arrives later through Engine.Load
	PickFile()
}

// host collaborators available at setup time. Any accessor may return nil
// when the host has not created that piece yet.
type Environment interface {
	Overlay() Renderer
	Captions() CaptionControl
	Playhead() Playhead
	Menu() Menu
}

// State is the derived activation state.
type State int

const (
	Inactive State = iota
	ActiveUnmanaged
	ActiveManaged
)

func (s State) String() string {
	switch s {
	case ActiveUnmanaged:
		return "active-unmanaged"
	case ActiveManaged:
		return "active-managed"
	default:
		return "inactive"
	}
}

// Status is what the root menu entry shows.
type Status int

const (
	StatusNotLoaded Status = iota
	StatusLoaded
	StatusEnabled
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusEnabled:
		return "on"
	default:
		return "not loaded"
	}
}
