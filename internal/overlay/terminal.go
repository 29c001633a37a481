package overlay

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiCursorUp  = "\x1b[1A"
	ansiClearLine = "\x1b[2K"
	ansiBold      = "\x1b[1m"
	ansiReset     = "\x1b[0m"
)

// TerminalRenderer draws cues on a terminal. On a TTY the previous cue is
// erased in place; otherwise each cue is appended as a paragraph.
type TerminalRenderer struct {
	w     io.Writer
	tty   bool
	drawn int
}

func NewTerminalRenderer(w io.Writer) *TerminalRenderer {
	return &TerminalRenderer{w: w, tty: isTerminal(w)}
}

func (r *TerminalRenderer) Render(text string) {
	r.erase()

	lines := strings.Split(text, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if r.tty {
			sb.WriteString(ansiBold + line + ansiReset + "\n")
		} else {
			sb.WriteString(line + "\n")
		}
	}
	if !r.tty {
		sb.WriteString("\n")
	}
	_, _ = io.WriteString(r.w, sb.String())

	if r.tty {
		r.drawn = len(lines)
	}
}

func (r *TerminalRenderer) Clear() {
	r.erase()
}

func (r *TerminalRenderer) erase() {
	if !r.tty || r.drawn == 0 {
		return
	}
	_, _ = io.WriteString(r.w, strings.Repeat(ansiCursorUp+ansiClearLine, r.drawn))
	r.drawn = 0
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
