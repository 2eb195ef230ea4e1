package invaders_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/darkf/ecs-pong/invaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWaves(t *testing.T) {
	waves, err := invaders.LoadWaves("")
	require.NoError(t, err)
	require.Len(t, waves, 3)

	assert.Equal(t, "scouts", waves[0].Name)
	assert.Equal(t, 3, waves[0].Rows)
	assert.Equal(t, 8, waves[0].Columns)
	assert.Equal(t, invaders.Vec{X: 40, Y: 32}, waves[0].Spacing)
	assert.Equal(t, "armada", waves[2].Name)
}

func TestLoadWavesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waves.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
waves:
  - name: solo
    rows: 1
    columns: 1
    spacing: {x: 10, y: 10}
    origin: {x: 5, y: 5}
    size: {w: 10, h: 10}
    speed: 1
    drop: 4
    points: 50
`), 0o644))

	waves, err := invaders.LoadWaves(path)
	require.NoError(t, err)
	require.Len(t, waves, 1)
	assert.Equal(t, 50, waves[0].Points)
	assert.Equal(t, 4, waves[0].Drop)
}

func TestParseWavesErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"malformed", "waves: [", "decode waves"},
		{"empty", "waves: []", "no waves"},
		{"no rows", "waves: [{name: a, columns: 2, size: {w: 1, h: 1}, spacing: {x: 1, y: 1}, speed: 1}]", "rows and columns"},
		{"no size", "waves: [{name: a, rows: 1, columns: 1, spacing: {x: 1, y: 1}, speed: 1}]", "size must be positive"},
		{"overlapping", "waves: [{name: a, rows: 1, columns: 1, size: {w: 10, h: 10}, spacing: {x: 5, y: 10}, speed: 1}]", "spacing"},
		{"stationary", "waves: [{name: a, rows: 1, columns: 1, size: {w: 1, h: 1}, spacing: {x: 1, y: 1}}]", "speed"},
		{"no drop", "waves: [{name: a, rows: 1, columns: 1, size: {w: 1, h: 1}, spacing: {x: 1, y: 1}, speed: 1}]", "drop must be positive"},
		{"climbing", "waves: [{name: a, rows: 1, columns: 1, size: {w: 1, h: 1}, spacing: {x: 1, y: 1}, speed: 1, drop: -50}]", "drop must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := invaders.ParseWaves([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadWavesMissingFile(t *testing.T) {
	_, err := invaders.LoadWaves(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWaveSpawn(t *testing.T) {
	storage := newStorage()
	wave := invaders.Wave{
		Rows: 2, Columns: 3,
		Spacing: invaders.Vec{X: 30, Y: 20},
		Origin:  invaders.Vec{X: 10, Y: 5},
		Size:    invaders.Size{W: 20, H: 10},
		Speed:   1,
		Points:  7,
	}

	assert.Equal(t, 6, wave.Spawn(storage))
	positions := invaderPositions(storage)
	assert.Len(t, positions, 6)
	assert.Equal(t, [2]int{10, 5}, positions[0])
	assert.Equal(t, [2]int{70, 25}, positions[5])
	assert.Equal(t, 80, wave.Width())
}
