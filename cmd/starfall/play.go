package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/games/starfall"
	"github.com/vovakirdan/starfall/internal/platform/tui"
	"github.com/vovakirdan/starfall/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagNoMusic    bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Starfall in this terminal",
	Long: `Start a round of Starfall.

Controls:
  Left/Right, A/D, H/L  - Walk
  Up, W, K, Space       - Jump (only when standing)
  P/Esc                 - Pause
  Enter/R               - Play again (after the restart button shows)
  Ctrl+S                - Save a screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Config as loaded (same as no preset)
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, literal bomb speeds

Examples:
  starfall play
  starfall play --difficulty hard
  starfall play --config ./my-starfall.yaml
  starfall play --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().BoolVar(&flagNoMusic, "no-music", false, "Play sound effects without the theme")
	playCmd.Flags().Float64Var(&flagVolume, "volume", audio.DefaultConfig().Volume, "Sound volume from 0 to 1")

	menuCmd.Flags().AddFlagSet(playCmd.Flags())
}

// openSound starts the speaker unless muted.
func openSound() audio.Player {
	cfg := audio.DefaultConfig()
	cfg.Volume = flagVolume
	cfg.Music = !flagNoMusic
	if flagMute {
		cfg.Volume = 0
	}
	return audio.New(cfg, newLogger("starfall-audio"))
}

func runPlay(_ *cobra.Command, _ []string) {
	applyGameFlags(flagConfig, flagDifficulty)
	cfg := terminalConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	sound := openSound()
	runErr := tui.Run(starfall.ID, store, sound, cfg)

	sound.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
