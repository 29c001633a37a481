package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgpai22/sublay/internal/config"
	"github.com/mgpai22/sublay/internal/overlay"
	"github.com/mgpai22/sublay/internal/player"
	"github.com/mgpai22/sublay/internal/subtitle"
	"github.com/mgpai22/sublay/internal/track"
	"github.com/mgpai22/sublay/internal/video"
	"github.com/spf13/cobra"
)

// trailing time after the last cue when no media length is known
const playTail = 1.0

func newPlayCommand(ctx *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [subtitle_file]",
		Short: "Play a subtitle file against a simulated player",
		Long: `Run a simulated video player and render the active cue to the terminal
as playback advances.

With --native the player also offers its own caption menu, and the local
subtitles are shown only while the player's caption toggle is on.

With --keys, commands typed on stdin drive the player while it runs:
  c  toggle the local subtitles (the settings menu entry)
  o  pick "off" in the player's caption menu
  e  pick a language in the player's caption menu
  n  navigate to other content
  f  toggle fullscreen sizing of the --html overlay
  q  quit

Examples:
  sublay play movie.srt
  sublay play movie.vtt --from 00:10:00 --speed 4
  sublay play movie.srt --media movie.mkv
  sublay play movie.srt --native --cc-off
  sublay play movie.srt --html --fullscreen
  sublay play movie.srt --native --keys`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg := ctx.cfg

			fromStr, _ := cmd.Flags().GetString("from")
			speed, _ := cmd.Flags().GetFloat64("speed")
			mediaPath, _ := cmd.Flags().GetString("media")
			native, _ := cmd.Flags().GetBool("native")
			ccOff, _ := cmd.Flags().GetBool("cc-off")
			asHTML, _ := cmd.Flags().GetBool("html")
			fullscreen, _ := cmd.Flags().GetBool("fullscreen")
			keys, _ := cmd.Flags().GetBool("keys")

			if speed <= 0 {
				speed = cfg.Playback.Speed
			}
			from := subtitle.ParseTimestamp(fromStr)

			if !subtitle.IsSubtitleFile(path) {
				ctx.logger.Warnw("Unexpected subtitle file extension", "file", path)
			}
			loaded, err := subtitle.Open(path)
			if err != nil {
				return err
			}

			duration := lastCueEnd(loaded) + playTail
			if mediaPath != "" {
				d, err := video.Duration(cmd.Context(), mediaPath)
				if err != nil {
					return fmt.Errorf("failed to read media duration: %w", err)
				}
				duration = d.Seconds()
			}

			matcher := track.NewOffMatcher(cfg.Native.OffLabels, cfg.Native.OffSubstrings)
			captions := player.NewNativeCaptions(matcher, !ccOff)
			if native {
				captions.SetMenus(nativeMenus(cfg.Native))
			}

			var renderer track.Renderer = overlay.NewTerminalRenderer(cmd.OutOrStdout())
			var html *overlay.HTMLRenderer
			if asHTML {
				html = overlay.NewHTMLRenderer(cfg.Overlay, cmd.OutOrStdout())
				html.SetFullscreen(fullscreen)
				renderer = html
			}

			engine := track.New(ctx.logger.Named("engine"))
			p := player.New(
				engine,
				renderer,
				captions,
				player.NewClock(from, speed),
				player.Options{
					Interval: cfg.SampleInterval(),
					Duration: duration,
					Picker:   player.PickPath(path),
				},
				ctx.logger.Named("player"),
			)
			p.Post(func(e *track.Engine) { e.LoadTrack(loaded) })

			ctx.logger.Infow("Starting playback",
				"file", loaded.Source,
				"from", from,
				"speed", speed,
				"duration", duration,
				"native", native,
			)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if keys {
				controls := &keyControls{
					player:     p,
					captions:   captions,
					html:       html,
					offLabel:   offLabel(cfg.Native),
					onLabel:    nativeOnLabel,
					fullscreen: fullscreen,
					quit:       stop,
					log:        ctx.logger,
				}
				ctx.logger.Infow("Reading key commands from stdin", "keys", keyHelp)
				go controls.run(cmd.InOrStdin())
			}

			err = p.Run(runCtx)
			if errors.Is(err, context.Canceled) {
				ctx.logger.Infow("Playback interrupted")
				return nil
			}
			if err != nil {
				return err
			}

			ctx.logger.Infow("Playback finished", "state", engine.State().String())
			return nil
		},
	}

	cmd.Flags().String("from", "0", "Start position (seconds or HH:MM:SS.mmm)")
	cmd.Flags().Float64("speed", 0, "Playback speed (defaults to playback.speed from config)")
	cmd.Flags().String("media", "", "Video file whose duration bounds playback")
	cmd.Flags().Bool("native", false, "Simulate a player that has its own caption menu")
	cmd.Flags().Bool("cc-off", false, "Start with the player's own captions switched off")
	cmd.Flags().Bool("html", false, "Print the overlay markup instead of plain text")
	cmd.Flags().Bool("fullscreen", false, "Size the HTML overlay for a fullscreen player")
	cmd.Flags().Bool("keys", false, "Read player commands from stdin, one per line ("+keyHelp+")")
	return cmd
}

// caption language offered next to "off" in the simulated menu
const nativeOnLabel = "English"

// a single caption panel whose off entry the configured matcher accepts
func nativeMenus(cfg config.Native) [][]string {
	return [][]string{{offLabel(cfg), nativeOnLabel}}
}

func offLabel(cfg config.Native) string {
	if len(cfg.OffLabels) > 0 {
		return cfg.OffLabels[0]
	}
	if len(cfg.OffSubstrings) > 0 {
		return cfg.OffSubstrings[0]
	}
	return "Off"
}

func lastCueEnd(t *subtitle.Track) float64 {
	end := 0.0
	if t == nil {
		return end
	}
	for _, c := range t.Cues {
		if c.End > end {
			end = c.End
		}
	}
	return end
}
