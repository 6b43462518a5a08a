package render_test

import (
	"image/color"
	"testing"

	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/render"
	"github.com/plus3/heep/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	spatial.RegisterComponents(registry)
	render.RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func TestProjection(t *testing.T) {
	proj := render.Projection{
		Field:   spatial.Playfield{Width: 100, Height: 100},
		ScreenW: 400,
		ScreenH: 200,
	}

	assert.Equal(t, float32(2), proj.Scale())

	x, y := proj.Point(spatial.Vec2{})
	assert.Equal(t, float32(200), x)
	assert.Equal(t, float32(100), y)

	// +Y in the world is up on screen.
	x, y = proj.Point(spatial.Vec2{X: 10, Y: 10})
	assert.Equal(t, float32(220), x)
	assert.Equal(t, float32(80), y)
}

func TestProjectionWithoutField(t *testing.T) {
	assert.Equal(t, float32(1), render.Projection{ScreenW: 10, ScreenH: 10}.Scale())
}

func TestCollect(t *testing.T) {
	storage := newStorage()
	red := color.RGBA{R: 255, A: 255}
	black := color.RGBA{A: 255}

	storage.Spawn(
		spatial.Position{X: 0, Y: 0},
		spatial.Shape{X: 5, Y: 5},
		render.Sprite{Color: red, Kind: render.KindCircle, Layer: 1},
	)
	storage.Spawn(
		spatial.Position{X: 0, Y: 40},
		spatial.Shape{X: 100, Y: 20},
		render.Sprite{Color: black, Kind: render.KindRect},
	)
	// No sprite, not drawn.
	storage.Spawn(spatial.Position{}, spatial.Shape{X: 1, Y: 1})

	proj := render.Projection{
		Field:   spatial.Playfield{Width: 100, Height: 100},
		ScreenW: 100,
		ScreenH: 100,
	}
	items := render.NewCollector(storage).Collect(proj)
	require.Len(t, items, 2)

	assert.Equal(t, render.Item{Kind: render.KindRect, Color: black, X: 0, Y: 0, W: 100, H: 20}, items[0])
	assert.Equal(t, render.Item{Kind: render.KindCircle, Color: red, X: 50, Y: 50, W: 5, H: 5, Layer: 1}, items[1])
}

func TestSpriteKindString(t *testing.T) {
	assert.Equal(t, "rect", render.KindRect.String())
	assert.Equal(t, "circle", render.KindCircle.String())
	assert.Equal(t, "unknown", render.SpriteKind(9).String())
}
