package cli

import (
	"fmt"
	"io"

	"github.com/mgpai22/sublay/internal/subtitle"
	"github.com/spf13/cobra"
)

func newAtCommand(ctx *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "at [file] [time...]",
		Short: "Show which cue is active at the given times",
		Long: `Look up the cue on screen at each playback time.

Times are seconds ("95.5") or subtitle timestamps ("00:01:35,500").
They are looked up in order, the way a player samples them.

Examples:
  sublay at movie.srt 95.5
  sublay at movie.vtt 00:01:00 00:01:02.5 00:00:10`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := subtitle.Open(args[0])
			if err != nil {
				return err
			}

			times := make([]float64, 0, len(args)-1)
			for _, raw := range args[1:] {
				times = append(times, subtitle.ParseTimestamp(raw))
			}

			ctx.logger.Debugw("Locating cues", "file", track.Source, "samples", len(times))
			printMatches(cmd.OutOrStdout(), track.Cues, times)
			return nil
		},
	}
}

// locateAll resolves each time in order, reusing the previous answer as
// the search hint.
func locateAll(cues []subtitle.Cue, times []float64) []int {
	found := make([]int, len(times))
	last := -1
	for i, t := range times {
		last = subtitle.Locate(t, cues, last)
		found[i] = last
	}
	return found
}

func printMatches(w io.Writer, cues []subtitle.Cue, times []float64) {
	for i, idx := range locateAll(cues, times) {
		stamp := subtitle.FormatTimestamp(times[i], '.')
		if idx < 0 {
			fmt.Fprintf(w, "%s  -\n", stamp)
			continue
		}
		fmt.Fprintf(w, "%s  #%d  %s\n", stamp, idx, oneLine(cues[idx].Text))
	}
}
