package snapshot_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/pong"
	"github.com/plus3/heep/snapshot"
	"github.com/plus3/heep/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func newPongWorld(t *testing.T) *ecs.Storage {
	t.Helper()

	storage := pong.NewStorage()
	storage.AddSingleton(spatial.Playfield{Width: 800, Height: 600})
	require.True(t, pong.Spawn(storage))
	return storage
}

func TestRenderPong(t *testing.T) {
	img := snapshot.Render(newPongWorld(t), 800, 600)
	require.Equal(t, 800, img.Bounds().Dx())

	// Ball at the center, gutters along the top and bottom, paddles 50px in.
	assert.Equal(t, pong.BallColor, rgba(img.At(400, 300)))
	assert.Equal(t, pong.GutterColor, rgba(img.At(400, 5)))
	assert.Equal(t, pong.GutterColor, rgba(img.At(400, 595)))
	assert.Equal(t, pong.PlayerColor, rgba(img.At(750, 300)))
	assert.Equal(t, pong.AiColor, rgba(img.At(50, 300)))
	assert.Equal(t, pong.BackgroundColor, rgba(img.At(200, 150)))
}

func TestRenderWithoutPlayfield(t *testing.T) {
	img := snapshot.Render(pong.NewStorage(), 16, 16)
	assert.Equal(t, snapshot.DefaultBackground, rgba(img.At(8, 8)))
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.png")
	require.NoError(t, snapshot.SavePNG(newPongWorld(t), 80, 60, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, snapshot.SavePNG(newPongWorld(t), 8, 8, filepath.Join(t.TempDir(), "missing", "x.png")))
}
