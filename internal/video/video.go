package video

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/sublay/internal/ffmpeg"
	"github.com/mgpai22/sublay/internal/subtitle"
)

var ErrNoSubtitleStream = errors.New("no such subtitle stream")

// one subtitle stream inside a container
type SubtitleStream struct {
	// position among subtitle streams, as used by -map 0:s:N
	Index    int
	Codec    string
	Language string
	Title    string
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName string            `json:"codec_name"`
		Tags      map[string]string `json:"tags"`
	} `json:"streams"`
}

// Duration returns the length of a media file.
func Duration(ctx context.Context, filePath string) (time.Duration, error) {
	probe, err := runProbe(ctx, filePath, "-show_format")
	if err != nil {
		return 0, err
	}
	return parseDuration(probe)
}

// SubtitleStreams lists the subtitle streams of a media file.
func SubtitleStreams(ctx context.Context, filePath string) ([]SubtitleStream, error) {
	probe, err := runProbe(ctx, filePath, "-show_streams", "-select_streams", "s")
	if err != nil {
		return nil, err
	}
	return subtitleStreams(probe), nil
}

// ExtractSubtitles writes subtitle stream n of videoPath to outputPath.
// The output extension picks the codec: .vtt yields WebVTT, anything else
// SubRip.
func ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
	stream int,
) error {
	streams, err := SubtitleStreams(ctx, videoPath)
	if err != nil {
		return err
	}
	if stream < 0 || stream >= len(streams) {
		return fmt.Errorf("%w: %d (file has %d)", ErrNoSubtitleStream, stream, len(streams))
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, extractArgs(outputPath, stream)).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg extraction failed: %w", err)
	}

	return nil
}

func extractArgs(outputPath string, stream int) ffmpeg.KwArgs {
	codec := "srt"
	if subtitle.GetFormatFromExtension(outputPath) == subtitle.FormatVTT {
		codec = "webvtt"
	}
	return ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", stream),
		"c:s": codec,
		"vn":  "",
		"an":  "",
	}
}

func runProbe(ctx context.Context, filePath string, args ...string) (*ffprobeOutput, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmdArgs := append([]string{"-v", "quiet", "-print_format", "json"}, args...)
	cmdArgs = append(cmdArgs, filePath)
	cmd := exec.CommandContext(ctx, ffprobePath, cmdArgs...)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return decodeProbe(out.Bytes())
}

func decodeProbe(data []byte) (*ffprobeOutput, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &probe, nil
}

func parseDuration(probe *ffprobeOutput) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

func subtitleStreams(probe *ffprobeOutput) []SubtitleStream {
	streams := make([]SubtitleStream, 0, len(probe.Streams))
	for i, s := range probe.Streams {
		streams = append(streams, SubtitleStream{
			Index:    i,
			Codec:    s.CodecName,
			Language: s.Tags["language"],
			Title:    s.Tags["title"],
		})
	}
	return streams
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	videoExts := map[string]bool{
		".mp4":  true,
		".mkv":  true,
		".avi":  true,
		".mov":  true,
		".webm": true,
		".m4v":  true,
		".ts":   true,
	}
	return videoExts[ext]
}
