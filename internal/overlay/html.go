package overlay

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mgpai22/sublay/internal/config"
)

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Markup escapes cue text for embedding in HTML and turns line breaks into
// <br>, wrapped in a caption box span. Empty text yields "".
func Markup(text, boxClass string) string {
	if text == "" {
		return ""
	}
	body := strings.ReplaceAll(markupEscaper.Replace(text), "\n", "<br>")
	if boxClass == "" {
		return body
	}
	return `<span class="` + markupEscaper.Replace(boxClass) + `">` + body + `</span>`
}

// HTMLRenderer keeps the overlay element's inner HTML and inline style.
// The host reads it back with HTML and Style. When out is set, every
// update is also written to it as one line: the overlay element with its
// current style wrapping the markup.
type HTMLRenderer struct {
	mu         sync.Mutex
	html       string
	fullscreen bool
	cfg        config.Overlay
	out        io.Writer
}

func NewHTMLRenderer(cfg config.Overlay, out io.Writer) *HTMLRenderer {
	return &HTMLRenderer{cfg: cfg, out: out}
}

func (r *HTMLRenderer) Render(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(Markup(text, r.cfg.BoxClass))
}

func (r *HTMLRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.set("")
}

func (r *HTMLRenderer) set(html string) {
	r.html = html
	if r.out != nil {
		_, _ = fmt.Fprintf(r.out, "<div style=\"%s\">%s</div>\n", r.style(), html)
	}
}

func (r *HTMLRenderer) HTML() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.html
}

// SetFullscreen switches between the windowed and fullscreen font size.
func (r *HTMLRenderer) SetFullscreen(fullscreen bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fullscreen = fullscreen
}

// Style returns the inline style for the overlay element.
func (r *HTMLRenderer) Style() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style()
}

func (r *HTMLRenderer) style() string {
	size := r.cfg.FontSize
	if r.fullscreen {
		size = r.cfg.FullscreenFontSize
	}
	return fmt.Sprintf(
		"position:absolute;left:0;right:0;bottom:%d%%;text-align:center;font-size:%dpx;white-space:pre-line;pointer-events:none",
		r.cfg.BottomPercent,
		size,
	)
}
