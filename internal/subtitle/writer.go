package subtitle

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// writes the track to an SRT file
func (w *SRTWriter) Write(track *Track, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	for i, cue := range track.Cues {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatTimestamp(cue.Start, ','),
			FormatTimestamp(cue.End, ',')))

		sb.WriteString(blankSafe(cue.Text))
		sb.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// writes the track to a VTT file
func (w *VTTWriter) Write(track *Track, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for i, cue := range track.Cues {
		// optional cue identifier
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			FormatTimestamp(cue.Start, '.'),
			FormatTimestamp(cue.End, '.')))

		sb.WriteString(blankSafe(cue.Text))
		sb.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// FormatTimestamp renders seconds as HH:MM:SS<sep>mmm.
func FormatTimestamp(seconds float64, sep byte) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int64(math.Round(seconds * 1000))
	millis := total % 1000
	secs := (total / 1000) % 60
	minutes := (total / 60000) % 60
	hours := total / 3600000

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

// blank lines inside cue text would end the block on re-read
func blankSafe(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtt":
		return FormatVTT
	default:
		return FormatSRT
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	default:
		return ".srt"
	}
}
