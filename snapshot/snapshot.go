// Package snapshot rasterises a world to an image without a window, for
// headless runs.
package snapshot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/render"
	"github.com/plus3/heep/spatial"
)

// DefaultBackground is used when the storage has no Background singleton.
var DefaultBackground = color.RGBA{A: 255}

// Render draws every sprite in storage onto a width x height image. The
// Playfield singleton sets the world bounds; without it nothing but the
// background is drawn.
func Render(storage *ecs.Storage, width, height int) image.Image {
	dc := gg.NewContext(width, height)

	bg := DefaultBackground
	var background *render.Background
	if storage.ReadSingleton(&background) {
		bg = background.Color
	}
	dc.SetColor(bg)
	dc.Clear()

	var field *spatial.Playfield
	if !storage.ReadSingleton(&field) {
		return dc.Image()
	}

	proj := render.Projection{Field: *field, ScreenW: float32(width), ScreenH: float32(height)}
	for _, item := range render.NewCollector(storage).Collect(proj) {
		dc.SetColor(item.Color)
		switch item.Kind {
		case render.KindCircle:
			dc.DrawCircle(float64(item.X), float64(item.Y), float64(item.W))
		default:
			dc.DrawRectangle(float64(item.X), float64(item.Y), float64(item.W), float64(item.H))
		}
		dc.Fill()
	}

	return dc.Image()
}

// SavePNG renders storage and writes it to path.
func SavePNG(storage *ecs.Storage, width, height int, path string) error {
	img := Render(storage, width, height)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save snapshot %s: %w", path, err)
	}
	return nil
}
