package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mgpai22/sublay/internal/subtitle"
	"github.com/mgpai22/sublay/internal/video"
	"github.com/spf13/cobra"
)

const maxCueWidth = 60

func newInspectCommand(ctx *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the cues of a subtitle file",
		Long: `Print a table of every cue in an SRT or WebVTT file.

Given a video file instead, list its embedded subtitle streams.

Examples:
  sublay inspect movie.srt
  sublay inspect movie.vtt --limit 20
  sublay inspect movie.mkv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			out := cmd.OutOrStdout()

			if video.IsVideoFile(path) {
				streams, err := video.SubtitleStreams(cmd.Context(), path)
				if err != nil {
					return fmt.Errorf("failed to probe %s: %w", path, err)
				}
				fmt.Fprintln(out, renderStreams(streams))
				return nil
			}

			limit, _ := cmd.Flags().GetInt("limit")

			track, err := subtitle.Open(path)
			if err != nil {
				return err
			}
			ctx.logger.Debugw("Parsed subtitle file",
				"file", track.Source,
				"format", track.Format,
				"cues", track.Len(),
			)

			fmt.Fprintln(out, summarize(track))
			if track.Len() > 0 {
				fmt.Fprintln(out, renderCues(track.Cues, limit))
			}
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 0, "Show at most N cues (0 shows all)")
	return cmd
}

func summarize(track *subtitle.Track) string {
	if track.Len() == 0 {
		return fmt.Sprintf("%s: %s, no cues", track.Source, track.Format)
	}
	first, last := track.Cues[0].Start, track.Cues[0].End
	for _, c := range track.Cues {
		if c.End > last {
			last = c.End
		}
	}
	return fmt.Sprintf("%s: %s, %d cues, %s - %s",
		track.Source,
		track.Format,
		track.Len(),
		subtitle.FormatTimestamp(first, '.'),
		subtitle.FormatTimestamp(last, '.'),
	)
}

func renderCues(cues []subtitle.Cue, limit int) string {
	if limit <= 0 || limit > len(cues) {
		limit = len(cues)
	}
	rows := make([][]string, 0, limit)
	for i, c := range cues[:limit] {
		rows = append(rows, []string{
			strconv.Itoa(i),
			subtitle.FormatTimestamp(c.Start, '.'),
			subtitle.FormatTimestamp(c.End, '.'),
			oneLine(c.Text),
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
	)
}

func renderStreams(streams []video.SubtitleStream) string {
	if len(streams) == 0 {
		return "no subtitle streams"
	}
	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		rows = append(rows, []string{strconv.Itoa(s.Index), s.Codec, s.Language, s.Title})
	}
	return renderTable(
		[]string{"Stream", "Codec", "Language", "Title"},
		rows,
		[]columnAlignment{alignRight},
	)
}

// joins cue lines with " / " and caps the width
func oneLine(text string) string {
	line := strings.ReplaceAll(text, "\n", " / ")
	runes := []rune(line)
	if len(runes) > maxCueWidth {
		return string(runes[:maxCueWidth-3]) + "..."
	}
	return line
}
