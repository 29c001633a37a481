package video

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const probeJSON = `{
  "streams": [
    {"index": 2, "codec_name": "subrip", "tags": {"language": "eng", "title": "English"}},
    {"index": 3, "codec_name": "ass", "tags": {"language": "jpn"}}
  ],
  "format": {"duration": "12.500000"}
}`

func TestDecodeProbe(t *testing.T) {
	probe, err := decodeProbe([]byte(probeJSON))
	if err != nil {
		t.Fatalf("decodeProbe failed: %v", err)
	}

	d, err := parseDuration(probe)
	if err != nil {
		t.Fatalf("parseDuration failed: %v", err)
	}
	if want := 12500 * time.Millisecond; d != want {
		t.Errorf("expected duration %v, got %v", want, d)
	}

	streams := subtitleStreams(probe)
	if len(streams) != 2 {
		t.Fatalf("expected 2 streams, got %d", len(streams))
	}
	if streams[0].Index != 0 || streams[0].Codec != "subrip" || streams[0].Language != "eng" || streams[0].Title != "English" {
		t.Errorf("unexpected first stream %+v", streams[0])
	}
	if streams[1].Index != 1 || streams[1].Language != "jpn" || streams[1].Title != "" {
		t.Errorf("unexpected second stream %+v", streams[1])
	}
}

func TestParseDurationInvalid(t *testing.T) {
	if _, err := parseDuration(&ffprobeOutput{}); err == nil {
		t.Error("expected error for missing duration")
	}
	if _, err := decodeProbe([]byte("not json")); err == nil {
		t.Error("expected error for malformed ffprobe output")
	}
}

func TestExtractArgs(t *testing.T) {
	tests := []struct {
		output    string
		stream    int
		wantMap   string
		wantCodec string
	}{
		{"out.srt", 0, "0:s:0", "srt"},
		{"out.vtt", 2, "0:s:2", "webvtt"},
		{"out.txt", 1, "0:s:1", "srt"},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			args := extractArgs(tt.output, tt.stream)
			if args["map"] != tt.wantMap {
				t.Errorf("expected map %q, got %v", tt.wantMap, args["map"])
			}
			if args["c:s"] != tt.wantCodec {
				t.Errorf("expected codec %q, got %v", tt.wantCodec, args["c:s"])
			}
		})
	}
}

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"movie.mkv", true},
		{"MOVIE.MP4", true},
		{"clip.webm", true},
		{"movie.srt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := IsVideoFile(tt.path); got != tt.want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestProbeMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.mkv")
	_, err := Duration(context.Background(), missing)
	if err == nil || !strings.Contains(err.Error(), "file not found") {
		t.Errorf("expected file not found error, got %v", err)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Fatalf("probe must not create files")
	}
}
