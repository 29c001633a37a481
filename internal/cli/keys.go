package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/mgpai22/sublay/internal/logging"
	"github.com/mgpai22/sublay/internal/overlay"
	"github.com/mgpai22/sublay/internal/player"
	"github.com/mgpai22/sublay/internal/track"
)

const keyHelp = "c=toggle local subtitles, o/e=native captions off/on, n=navigate, f=fullscreen, q=quit"

// keyControls turns one-letter commands, one per line, into host events
// on the player's event loop.
type keyControls struct {
	player     *player.Player
	captions   *player.NativeCaptions
	html       *overlay.HTMLRenderer
	offLabel   string
	onLabel    string
	fullscreen bool
	quit       func()
	log        *logging.Logger
}

// run reads commands until r is exhausted or a quit command arrives.
func (k *keyControls) run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if !k.dispatch(scanner.Text()) {
			return
		}
	}
}

func (k *keyControls) dispatch(line string) bool {
	switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
	case "":
	case "c":
		k.player.ClickRootMenu()
	case "o":
		k.selectNative(k.offLabel)
	case "e":
		k.selectNative(k.onLabel)
	case "n":
		k.player.Navigate()
	case "f":
		if k.html == nil {
			k.log.Warnw("Fullscreen only applies to --html output")
			return true
		}
		k.fullscreen = !k.fullscreen
		k.html.SetFullscreen(k.fullscreen)
	case "q":
		if k.quit != nil {
			k.quit()
		}
		return false
	default:
		k.log.Warnw("Unknown key command", "command", cmd, "help", keyHelp)
	}
	return true
}

// menu clicks happen on the loop, where the caption menu is owned
func (k *keyControls) selectNative(label string) {
	k.player.Post(func(*track.Engine) {
		if !k.captions.Present() {
			k.log.Warnw("Player has no caption menu, start with --native")
			return
		}
		k.captions.Select(label)
	})
}
