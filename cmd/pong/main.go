// Command pong plays Pong against a simple AI. The left paddle follows the
// mouse; Escape quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/darkf/ecs-pong/internal/config"
	"github.com/darkf/ecs-pong/internal/logging"
	"github.com/darkf/ecs-pong/internal/screen"
	"github.com/darkf/ecs-pong/pong"
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
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	game := pong.New(cfg, screen.Input{}, log)
	if err := screen.Run(cfg.Window, game); err != nil {
		return err
	}

	score := game.Score.Get()
	log.Info("pong closed", zap.Int("left", score.Left), zap.Int("right", score.Right))
	return nil
}
