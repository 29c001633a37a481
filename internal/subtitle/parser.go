package subtitle

import (
	"regexp"
	"strings"
)

var timeRangeRegex = regexp.MustCompile(`(.+?)\s*-->\s*(.+)`)

// named stages of the line cursor
type parseStage int

const (
	stageSkipHeader parseStage = iota
	stageSeekBlock
	stageExpectRange
	stageCollectText
	stageDone
)

func (s parseStage) String() string {
	switch s {
	case stageSkipHeader:
		return "skip-header"
	case stageSeekBlock:
		return "seek-block"
	case stageExpectRange:
		return "expect-time-range"
	case stageCollectText:
		return "collect-text"
	default:
		return "done"
	}
}

// DetectFormat reports FormatVTT when the text opens with a WEBVTT header
// (any case, leading whitespace allowed) and FormatSRT otherwise.
func DetectFormat(text string) Format {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.TrimLeft(text, " \t\r\n\f\v")
	if len(text) >= len("WEBVTT") && strings.EqualFold(text[:len("WEBVTT")], "WEBVTT") {
		return FormatVTT
	}
	return FormatSRT
}

// Parse turns raw SRT or WebVTT text into a track sorted by start time.
// Blocks without a time range are skipped, so malformed input yields
// whatever cues could be recovered, possibly none.
func Parse(text string) *Track {
	format := DetectFormat(text)
	cues := newCueScanner(text, format).run()
	SortCues(cues)
	return &Track{
		Cues:   cues,
		Format: format,
	}
}

type cueScanner struct {
	lines  []string
	pos    int
	format Format

	start float64
	end   float64
	cues  []Cue
}

func newCueScanner(text string, format Format) *cueScanner {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return &cueScanner{
		lines:  strings.Split(text, "\n"),
		format: format,
	}
}

func (s *cueScanner) run() []Cue {
	stage := stageSeekBlock
	if s.format == FormatVTT {
		stage = stageSkipHeader
	}

	for stage != stageDone {
		switch stage {
		case stageSkipHeader:
			stage = s.skipHeader()
		case stageSeekBlock:
			stage = s.seekBlock()
		case stageExpectRange:
			stage = s.expectRange()
		case stageCollectText:
			stage = s.collectText()
		}
	}

	return s.cues
}

func (s *cueScanner) eof() bool {
	return s.pos >= len(s.lines)
}

func (s *cueScanner) current() string {
	return strings.TrimSpace(s.lines[s.pos])
}

// skips blank lines, the WEBVTT line and NOTE comments
func (s *cueScanner) skipHeader() parseStage {
	for !s.eof() {
		line := s.current()
		switch {
		case line == "":
			s.pos++
		case len(line) >= 6 && strings.EqualFold(line[:6], "WEBVTT"),
			isCommentLine(line):
			s.skipAnnotation()
		default:
			return stageSeekBlock
		}
	}
	return stageDone
}

// positions the cursor on the line expected to hold the time range
func (s *cueScanner) seekBlock() parseStage {
	for !s.eof() && s.current() == "" {
		s.pos++
	}
	if s.eof() {
		return stageDone
	}

	line := s.current()
	if s.format == FormatVTT && isCommentLine(line) {
		s.skipAnnotation()
		return stageSeekBlock
	}
	if s.isIdentifier(line) {
		s.pos++
	}
	return stageExpectRange
}

func (s *cueScanner) expectRange() parseStage {
	if s.eof() {
		return stageDone
	}

	matches := timeRangeRegex.FindStringSubmatch(s.current())
	s.pos++
	if matches == nil {
		return stageSeekBlock
	}

	s.start = ParseTimestamp(matches[1])
	s.end = ParseTimestamp(matches[2])
	return stageCollectText
}

func (s *cueScanner) collectText() parseStage {
	var textLines []string
	for !s.eof() && s.current() != "" {
		textLines = append(textLines, s.lines[s.pos])
		s.pos++
	}

	s.cues = append(s.cues, Cue{
		Start: s.start,
		End:   s.end,
		Text:  strings.Join(textLines, "\n"),
	})
	return stageSeekBlock
}

// skips a header or comment line plus its continuation lines; a line that
// already carries a time range ends the annotation
func (s *cueScanner) skipAnnotation() {
	s.pos++
	for !s.eof() {
		line := s.current()
		if line == "" || strings.Contains(line, "-->") {
			return
		}
		s.pos++
	}
}

func (s *cueScanner) isIdentifier(line string) bool {
	if s.format == FormatVTT {
		return !strings.Contains(line, "-->")
	}
	return isDigits(line)
}

func isCommentLine(line string) bool {
	return strings.HasPrefix(line, "NOTE") ||
		strings.HasPrefix(line, "STYLE") ||
		strings.HasPrefix(line, "REGION")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
