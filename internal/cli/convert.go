package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mgpai22/sublay/internal/subtitle"
	"github.com/spf13/cobra"
)

func newConvertCommand(ctx *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Rewrite a subtitle file as SRT or WebVTT",
		Long: `Parse a subtitle file and write its cues in another format.

The output format follows --format, or else the extension of --output.
With neither, SRT input becomes WebVTT and the other way round.

Examples:
  sublay convert movie.srt
  sublay convert movie.vtt -o movie.srt
  sublay convert movie.srt -f vtt -o out/movie.vtt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			outputPath, _ := cmd.Flags().GetString("output")
			formatStr, _ := cmd.Flags().GetString("format")

			track, err := subtitle.Open(inputPath)
			if err != nil {
				return err
			}
			if track.Len() == 0 {
				return fmt.Errorf("no cues found in %s", inputPath)
			}

			format, err := outputFormat(track.Format, formatStr, outputPath)
			if err != nil {
				return err
			}
			if outputPath == "" {
				outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) +
					subtitle.GetExtensionForFormat(format)
			}
			if sameFile(inputPath, outputPath) {
				return fmt.Errorf("output %s would overwrite the input", outputPath)
			}

			writer, err := subtitle.NewWriter(format)
			if err != nil {
				return err
			}
			if err := writer.Write(track, outputPath); err != nil {
				return fmt.Errorf("failed to write subtitles: %w", err)
			}

			ctx.logger.Infow("Converted subtitles",
				"input", inputPath,
				"output", outputPath,
				"format", format,
				"cues", track.Len(),
			)
			absOutput, _ := filepath.Abs(outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Subtitles written: %s\n", absOutput)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path")
	cmd.Flags().StringP("format", "f", "", "Output subtitle format (srt, vtt)")
	return cmd
}

func outputFormat(input subtitle.Format, flag, outputPath string) (subtitle.Format, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "srt":
		return subtitle.FormatSRT, nil
	case "vtt", "webvtt":
		return subtitle.FormatVTT, nil
	case "":
	default:
		return "", fmt.Errorf("invalid format %q: supported formats are srt, vtt", flag)
	}

	if outputPath != "" {
		return subtitle.GetFormatFromExtension(outputPath), nil
	}
	if input == subtitle.FormatVTT {
		return subtitle.FormatSRT, nil
	}
	return subtitle.FormatVTT, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
