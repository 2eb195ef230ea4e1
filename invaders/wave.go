package invaders

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
	"gopkg.in/yaml.v3"
)

//go:embed waves.yaml
var defaultWaves []byte

// Vec is an x/y offset in pixels.
type Vec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Size is a width and height in pixels.
type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Wave describes one invader formation.
type Wave struct {
	Name    string `yaml:"name"`
	Rows    int    `yaml:"rows"`
	Columns int    `yaml:"columns"`
	Spacing Vec    `yaml:"spacing"`
	Origin  Vec    `yaml:"origin"`
	Size    Size   `yaml:"size"`
	Speed   int    `yaml:"speed"`
	Drop    int    `yaml:"drop"`
	Points  int    `yaml:"points"`
}

type waveFile struct {
	Waves []Wave `yaml:"waves"`
}

// ParseWaves decodes a YAML wave list.
func ParseWaves(data []byte) ([]Wave, error) {
	var f waveFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode waves: %w", err)
	}
	if len(f.Waves) == 0 {
		return nil, errors.New("no waves defined")
	}
	for i, w := range f.Waves {
		if err := w.validate(); err != nil {
			return nil, fmt.Errorf("wave %d (%s): %w", i, w.Name, err)
		}
	}
	return f.Waves, nil
}

// LoadWaves reads waves from path, or the built-in set when path is empty.
func LoadWaves(path string) ([]Wave, error) {
	if path == "" {
		return ParseWaves(defaultWaves)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read waves %s: %w", path, err)
	}
	waves, err := ParseWaves(data)
	if err != nil {
		return nil, fmt.Errorf("waves %s: %w", path, err)
	}
	return waves, nil
}

func (w Wave) validate() error {
	switch {
	case w.Rows <= 0 || w.Columns <= 0:
		return fmt.Errorf("formation must have rows and columns, got %dx%d", w.Rows, w.Columns)
	case w.Size.W <= 0 || w.Size.H <= 0:
		return fmt.Errorf("invader size must be positive, got %dx%d", w.Size.W, w.Size.H)
	case w.Spacing.X < w.Size.W || w.Spacing.Y < w.Size.H:
		return errors.New("spacing smaller than invader size")
	case w.Speed <= 0:
		return fmt.Errorf("speed must be positive, got %d", w.Speed)
	case w.Drop <= 0:
		return fmt.Errorf("drop must be positive, got %d", w.Drop)
	}
	return nil
}

// Width is the horizontal extent of the formation from its left edge.
func (w Wave) Width() int {
	return (w.Columns-1)*w.Spacing.X + w.Size.W
}

// fits reports an error when the formation cannot march inside a window of
// the given width.
func (w Wave) fits(width int) error {
	if w.Origin.X < 0 || w.Origin.X+w.Width() > width {
		return fmt.Errorf("wave %s spans x %d..%d, window is %d wide", w.Name, w.Origin.X, w.Origin.X+w.Width(), width)
	}
	return nil
}

// Spawn creates the wave's invaders row by row and returns how many it made.
func (w Wave) Spawn(storage *ecs.Storage) int {
	for row := range w.Rows {
		for col := range w.Columns {
			storage.Spawn(
				Invader{Points: w.Points},
				arcade.Position{X: w.Origin.X + col*w.Spacing.X, Y: w.Origin.Y + row*w.Spacing.Y},
				arcade.Rect{W: w.Size.W, H: w.Size.H},
				arcade.Collidable{},
			)
		}
	}
	return w.Rows * w.Columns
}
