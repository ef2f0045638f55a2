package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pattern-island/internal/audio"
	"github.com/vovakirdan/pattern-island/internal/core"
	"github.com/vovakirdan/pattern-island/internal/platform/tui"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play in the terminal",
	Long: `Opens the island map, or a level directly when its id is given.

Controls:
  Arrows     - Move on the map / choose an option
  1-3        - Pick an option
  Enter      - Play level / answer
  H          - Hint
  Tab        - Stats (on the map)
  Esc        - Back to the map
  Q/Ctrl+C   - Quit

Examples:
  patternisland play
  patternisland play 15
  patternisland play --profile ada --mute`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := runPlay(args); err != nil {
			fatal(err)
		}
	},
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(args []string) error {
	levelID := 0
	if len(args) == 1 {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("level id must be a number: %q", args[0])
		}
		levelID = id
	}

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	if levelID != 0 {
		if _, ok := a.catalog.Level(levelID); !ok {
			return fmt.Errorf("unknown level %d (1-%d)", levelID, a.catalog.Len())
		}
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg = cfg.WithSize(w, h)
	}
	cfg.Profile = flagProfile
	cfg.LevelID = levelID

	player := audio.NewPlayer(a.cfg.Audio.Enabled && !flagMute, a.cfg.Audio.Volume, a.log)
	_ = player.Init() // logged; the game runs silent without a speaker
	defer player.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go player.Run(ctx, a.bus)

	a.log.Info("session started", "profile", cfg.Profile, "level", levelID)
	if err := tui.Run(a.svc, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	a.log.Info("session ended", "profile", cfg.Profile)
	return nil
}
