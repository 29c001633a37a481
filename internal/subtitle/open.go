package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// extensions offered when picking a subtitle file
var pickerExtensions = []string{".srt", ".vtt", ".txt"}

// Open reads a subtitle file from disk and parses it. The format comes
// from the content, not the extension.
func Open(path string) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitle file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("subtitle file %s is not valid UTF-8", filepath.Base(path))
	}

	track := Parse(string(data))
	track.Source = filepath.Base(path)
	return track, nil
}

// reports whether the path has an extension the file picker accepts
func IsSubtitleFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range pickerExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
