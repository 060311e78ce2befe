package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// logger is shared by every subcommand. It is replaced in PersistentPreRun
// once flags are parsed.
var logger = slog.Default()

var debug bool

var rootCmd = &cobra.Command{
	Use:   "chordharp",
	Short: "Pitch engine for a chord keyboard and strum harp",
	Long: `chordharp computes the notes a chord instrument sounds from its held
fundamental, chord type, voicing pattern, key signature, frame shift and
modifier buttons.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(debug)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging with source locations")
}

func initLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
