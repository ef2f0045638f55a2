// patternisland is a pattern-recognition puzzle game for young children,
// played in the terminal, over SSH or through an HTTP API.
//
// Usage:
//
//	patternisland list [category]    - List the generated levels
//	patternisland play [level-id]    - Play in the terminal
//	patternisland stats              - Show a profile's progress
//	patternisland profiles           - List profiles with saved progress
//	patternisland reset              - Erase a profile's progress
//	patternisland hint <level-id>    - Print a hint for a level
//	patternisland serve              - Start the SSH server
//	patternisland web                - Start the HTTP API
//
// Global flags:
//
//	--seed <value>      - Set the level generator seed (0 = random)
//	--db <path>         - Set database path (default: ~/.patternisland/patternisland.db)
//	--config <path>     - Read configuration from a YAML file
//	--profile <name>    - Player profile (default: player)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pattern-island/internal/core"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagProfile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "patternisland",
	Short: "Pattern Island - find what comes next",
	Long: `Pattern Island is a puzzle game about spotting patterns. Every level
shows a short sequence of colors, shapes, numbers or pictures and three
options; pick the one that comes next.

Available commands:
  list     - Show the generated levels
  play     - Play in the terminal
  stats    - Show stars, XP, quests and badges
  profiles - List profiles with saved progress
  reset    - Erase a profile's progress
  hint     - Ask for a hint on a level
  serve    - Start the SSH server
  web      - Start the HTTP API

Examples:
  patternisland play
  patternisland play 15 --profile ada
  patternisland list shape --seed 42
  patternisland serve --ssh :2222
  patternisland web --addr :8080`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Level generator seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the statistics database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", core.DefaultProfile, "Player profile")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// fatal prints err and exits.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
