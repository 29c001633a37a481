package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/sublay/internal/video"
	"github.com/spf13/cobra"
)

func newExtractCommand(ctx *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [video_file]",
		Short: "Extract a subtitle stream from a video file",
		Long: `Extract an embedded subtitle stream from a video file and save it as
SRT or WebVTT, ready to load with play.

Streams are numbered from 0 among the subtitle streams of the file; use
--list or inspect to see them.

Examples:
  sublay extract movie.mkv
  sublay extract movie.mkv -s 1 -o movie.en.vtt
  sublay extract movie.mkv --list`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoPath := args[0]

			stream, _ := cmd.Flags().GetInt("stream")
			outputPath, _ := cmd.Flags().GetString("output")
			list, _ := cmd.Flags().GetBool("list")

			if list {
				streams, err := video.SubtitleStreams(cmd.Context(), videoPath)
				if err != nil {
					return fmt.Errorf("failed to probe %s: %w", videoPath, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderStreams(streams))
				return nil
			}

			if outputPath == "" {
				outputPath = defaultExtractPath(videoPath)
			}

			ctx.logger.Infow("Extracting subtitles",
				"video", videoPath,
				"stream", stream,
				"output", outputPath,
			)

			if err := video.ExtractSubtitles(cmd.Context(), videoPath, outputPath, stream); err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			absOutput, _ := filepath.Abs(outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s\n", absOutput)
			return nil
		},
	}

	cmd.Flags().IntP("stream", "s", 0, "Subtitle stream number within the file")
	cmd.Flags().StringP("output", "o", "", "Output file path (.srt or .vtt)")
	cmd.Flags().Bool("list", false, "List subtitle streams instead of extracting")
	return cmd
}

func defaultExtractPath(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".srt"
}
