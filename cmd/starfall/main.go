// starfall is a collect-the-stars, dodge-the-bombs platformer for the
// terminal, SSH and the browser.
//
// Usage:
//
//	starfall play            - Play in this terminal
//	starfall menu            - Title menu with high scores
//	starfall serve           - Start SSH server for remote play
//	starfall web             - Serve the browser host page
//	starfall scores          - Show high scores
//	starfall list            - List registered games
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.starfall/scores.db)
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/games/starfall"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starfall",
	Short: "Starfall - catch the stars, dodge the bombs",
	Long: `Starfall is a single-screen platformer. Walk and jump across the
ledges to collect every star. Each time the sky is cleared the stars
fall again and a new bomb starts bouncing around. Touch a bomb and the
round is over.

Available commands:
  play     - Play in this terminal
  menu     - Title menu with high scores
  serve    - Start SSH server for remote play
  web      - Serve the browser host page
  scores   - View high scores
  list     - List registered games

Examples:
  starfall play
  starfall play --difficulty hard
  starfall serve --ssh :2222
  starfall web --addr :8080
  starfall scores -i`,
	SilenceUsage:      true,
	PersistentPreRunE: validateGlobalFlags,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starfall/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}

// validateGlobalFlags rejects flag values the hosts cannot run with.
func validateGlobalFlags(cmd *cobra.Command, args []string) error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}

// newLogger builds the root logger from --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// applyGameFlags hands --config and --difficulty to the game before it loads.
func applyGameFlags(configPath, difficulty string) {
	starfall.SetConfigPath(configPath)
	starfall.SetDifficultyPreset(difficulty)
}

// terminalConfig sizes the runtime config from the controlling terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
