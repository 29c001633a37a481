package cli

import (
	"github.com/mgpai22/sublay/internal/config"
	"github.com/mgpai22/sublay/internal/logging"
	"github.com/spf13/cobra"
)

// state shared by every subcommand, filled in before each run
type cliContext struct {
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
}

func (c *cliContext) load() error {
	cfg, _, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logging.NewLoggerWithLevel(cfg.Logging.Level, c.verbose)
	return nil
}

func newRootCommand() *cobra.Command {
	ctx := &cliContext{}

	rootCmd := &cobra.Command{
		Use:   "sublay",
		Short: "Overlay local subtitle files on video playback",
		Long: `Sublay loads an SRT or WebVTT subtitle file and shows the right cue
for every moment of playback, alongside or in place of the player's own
captions.

It can also inspect, query and convert subtitle files, and pull subtitle
streams out of video containers with ffmpeg.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.load()
		},
	}

	rootCmd.PersistentFlags().
		BoolVarP(&ctx.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newPlayCommand(ctx))
	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newAtCommand(ctx))
	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newExtractCommand(ctx))

	return rootCmd
}

func Execute() error {
	return newRootCommand().Execute()
}
