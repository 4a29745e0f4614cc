package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfall/internal/games/starfall"
	"github.com/vovakirdan/starfall/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the browser host page",
	Long: `Start an HTTP server with the Starfall host page.

Every browser tab gets its own world over a WebSocket. The page plays
the sound cues itself and shows a "Play again" button after a round
ends; pressing it reloads the page and starts a fresh world.

Pass ?name=<player> in the page URL to record scores under a name.

Examples:
  starfall web
  starfall web --addr 127.0.0.1:9000
  starfall web --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", web.DefaultConfig().Address, "HTTP listen address (host:port)")
	webCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	webCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runWeb(_ *cobra.Command, _ []string) {
	applyGameFlags(flagConfig, flagDifficulty)
	logger := newLogger("starfall-web")

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.DBPath = flagDBPath
	cfg.GameID = starfall.ID
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	server, err := web.NewServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
