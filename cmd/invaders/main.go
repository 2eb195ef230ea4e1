// Command invaders plays a Space-Invaders clone. Arrow keys move the cannon,
// space fires and Escape quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/darkf/ecs-pong/internal/config"
	"github.com/darkf/ecs-pong/internal/logging"
	"github.com/darkf/ecs-pong/internal/screen"
	"github.com/darkf/ecs-pong/invaders"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "path to a TOML config file")
	waves := flag.String("waves", "", "path to a YAML wave file, overrides invaders.wave_file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *waves != "" {
		cfg.Invaders.WaveFile = *waves
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	game, err := invaders.New(cfg, screen.Input{}, log)
	if err != nil {
		return err
	}
	if err := screen.Run(cfg.Window, game); err != nil {
		return err
	}

	score := game.Score.Get()
	log.Info("invaders closed", zap.Int("points", score.Points), zap.Int("wave", score.Wave+1))
	return nil
}
