package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Logging  LoggingConfig  `toml:"logging"`
	Events   EventsConfig   `toml:"events"`
	Pong     PongConfig     `toml:"pong"`
	Invaders InvadersConfig `toml:"invaders"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	TPS    int    `toml:"tps"` // simulation ticks per second
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type EventsConfig struct {
	MaxDepth int `toml:"max_depth"` // per-type nesting limit for synchronous dispatch
}

type PongConfig struct {
	BallSpeed    int     `toml:"ball_speed"`
	BallSize     int     `toml:"ball_size"`
	PaddleWidth  int     `toml:"paddle_width"`
	PaddleHeight int     `toml:"paddle_height"`
	AIReaction   float64 `toml:"ai_reaction"` // fraction of the distance to the ball covered per tick
}

type InvadersConfig struct {
	WaveFile     string  `toml:"wave_file"` // empty uses the built-in waves
	CannonSpeed  int     `toml:"cannon_speed"`
	MissileSpeed int     `toml:"missile_speed"`
	FireCooldown float64 `toml:"fire_cooldown"` // seconds
	Lives        int     `toml:"lives"`
}

// Load reads a TOML file over Defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.Events.MaxDepth <= 0 {
		return fmt.Errorf("events.max_depth must be positive, got %d", c.Events.MaxDepth)
	}

	p := c.Pong
	if p.BallSpeed <= 0 || p.BallSize <= 0 {
		return fmt.Errorf("pong ball speed and size must be positive, got %d and %d", p.BallSpeed, p.BallSize)
	}
	if p.PaddleWidth <= 0 || p.PaddleHeight <= 0 {
		return fmt.Errorf("pong paddle size must be positive, got %dx%d", p.PaddleWidth, p.PaddleHeight)
	}
	if p.AIReaction < 0 || p.AIReaction > 1 {
		return fmt.Errorf("pong.ai_reaction must be within [0,1], got %g", p.AIReaction)
	}

	inv := c.Invaders
	if inv.CannonSpeed <= 0 || inv.MissileSpeed <= 0 {
		return fmt.Errorf("invaders cannon and missile speed must be positive, got %d and %d", inv.CannonSpeed, inv.MissileSpeed)
	}
	if inv.Lives <= 0 {
		return fmt.Errorf("invaders.lives must be positive, got %d", inv.Lives)
	}
	if inv.FireCooldown < 0 {
		return fmt.Errorf("invaders.fire_cooldown must not be negative, got %g", inv.FireCooldown)
	}
	return nil
}

// Defaults returns the configuration used when no file is given. Every
// loaded file is applied on top of it.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "ecs-pong",
			TPS:    30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Events: EventsConfig{
			MaxDepth: 64,
		},
		Pong: PongConfig{
			BallSpeed:    8,
			BallSize:     8,
			PaddleWidth:  16,
			PaddleHeight: 16 * 4,
			AIReaction:   0.1,
		},
		Invaders: InvadersConfig{
			CannonSpeed:  6,
			MissileSpeed: 12,
			FireCooldown: 0.4,
			Lives:        3,
		},
	}
}
