package player

import (
	"github.com/mgpai22/sublay/internal/track"
)

// NativeCaptions simulates the host player's own caption button and
// caption menu. Menu changes are pushed to the presence subscriber, the
// way a DOM observer would report them.
type NativeCaptions struct {
	on      bool
	hidden  bool
	menus   [][]string
	matcher *track.OffMatcher

	onPresence  func(present bool)
	onSelection func()
}

func NewNativeCaptions(matcher *track.OffMatcher, on bool) *NativeCaptions {
	if matcher == nil {
		matcher = track.DefaultOffMatcher()
	}
	return &NativeCaptions{matcher: matcher, on: on}
}

func (n *NativeCaptions) CaptionsOn() bool { return n.on }

func (n *NativeCaptions) PressCaptions() { n.on = !n.on }

func (n *NativeCaptions) HideNative(hidden bool) { n.hidden = hidden }

// Hidden reports whether the host's own captions are suppressed.
func (n *NativeCaptions) Hidden() bool { return n.hidden }

// SubscribePresence registers the callback fed whenever the caption menu
// changes. The callback fires once immediately with the current state.
func (n *NativeCaptions) SubscribePresence(fn func(present bool)) {
	n.onPresence = fn
	n.notifyPresence()
}

// SubscribeSelection registers the callback fired when the user picks a
// native caption option or "off".
func (n *NativeCaptions) SubscribeSelection(fn func()) {
	n.onSelection = fn
}

// SetMenus replaces the host menu panels, one label slice per panel.
func (n *NativeCaptions) SetMenus(menus [][]string) {
	n.menus = menus
	n.notifyPresence()
}

// Select simulates a click on a native caption menu entry.
func (n *NativeCaptions) Select(label string) {
	n.on = !n.matcher.IsOff(label)
	if n.onSelection != nil {
		n.onSelection()
	}
}

// Present reports whether a caption selection panel exists.
func (n *NativeCaptions) Present() bool {
	return track.DetectNativeSurface(n.menus, n.matcher)
}

func (n *NativeCaptions) notifyPresence() {
	if n.onPresence != nil {
		n.onPresence(n.Present())
	}
}
