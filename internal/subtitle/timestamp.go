package subtitle

import (
	"strconv"
	"strings"
)

// ParseTimestamp converts a timestamp token to seconds. It accepts
// H:MM:SS.mmm, MM:SS,mmm, SS.mmm and bare integers; anything after the
// first space or tab is a cue setting and is ignored. Segments that do not
// parse count as zero, so the result is always a usable offset.
func ParseTimestamp(raw string) float64 {
	token := strings.TrimSpace(raw)
	if token == "" {
		return 0
	}
	if i := strings.IndexAny(token, " \t"); i >= 0 {
		token = token[:i]
	}
	token = strings.Replace(token, ",", ".", 1)

	var h, m, s float64
	parts := strings.Split(token, ":")
	switch len(parts) {
	case 3:
		h = float64(leadingInt(parts[0]))
		m = float64(leadingInt(parts[1]))
		s = leadingFloat(parts[2])
	case 2:
		m = float64(leadingInt(parts[0]))
		s = leadingFloat(parts[1])
	case 1:
		s = leadingFloat(parts[0])
	}

	total := h*3600 + m*60 + s
	if total < 0 {
		return 0
	}
	return total
}

// parses the longest integer prefix, 0 when there is none
func leadingInt(s string) int {
	end := signPrefix(s)
	digits := end
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == end {
		return 0
	}
	n, err := strconv.Atoi(s[:digits])
	if err != nil {
		return 0
	}
	return n
}

// parses the longest decimal prefix, 0 when there is none
func leadingFloat(s string) float64 {
	end := signPrefix(s)
	digits := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' && !seenDot {
			seenDot = true
		} else {
			break
		}
		end++
	}
	if digits == 0 {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return f
}

func signPrefix(s string) int {
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		return 1
	}
	return 0
}
