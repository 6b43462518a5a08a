// Package render turns entities with a Sprite into draw items in screen
// space. It knows nothing about the window; hosts paint the items with
// whatever backend they use.
package render

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/spatial"
)

type SpriteKind int

const (
	KindRect SpriteKind = iota
	KindCircle
)

func (k SpriteKind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Sprite marks an entity as drawable. Rects are drawn with the entity's full
// Shape, circles with radius Shape.X.
type Sprite struct {
	Color color.RGBA
	Kind  SpriteKind
	Layer int
}

// Background is the optional singleton clear color.
type Background struct {
	Color color.RGBA
}

// Projection maps world coordinates, origin centered and +Y up, onto a
// screen with the origin top left and +Y down. The world is scaled uniformly
// to fit.
type Projection struct {
	Field   spatial.Playfield
	ScreenW float32
	ScreenH float32
}

// Scale returns screen pixels per world unit.
func (p Projection) Scale() float32 {
	if p.Field.Width <= 0 || p.Field.Height <= 0 {
		return 1
	}
	return min(p.ScreenW/p.Field.Width, p.ScreenH/p.Field.Height)
}

// Point converts a world point to screen coordinates.
func (p Projection) Point(v spatial.Vec2) (float32, float32) {
	s := p.Scale()
	return p.ScreenW/2 + v.X*s, p.ScreenH/2 - v.Y*s
}

// Item is one thing to paint. For rects X, Y is the top left corner; for
// circles it is the center and W is the radius.
type Item struct {
	Kind  SpriteKind
	Color color.RGBA
	X, Y  float32
	W, H  float32
	Layer int
}

type drawable struct {
	*spatial.Position
	*spatial.Shape
	*Sprite
}

// Collector gathers draw items from a storage.
type Collector struct {
	query *ecs.Query[drawable]
}

// NewCollector returns a collector bound to storage.
func NewCollector(storage *ecs.Storage) *Collector {
	return &Collector{query: ecs.NewQuery[drawable](storage)}
}

// Collect projects every drawable entity, ordered by layer. Entities on the
// same layer keep query order.
func (c *Collector) Collect(proj Projection) []Item {
	scale := proj.Scale()

	var items []Item
	for d := range c.query.Values() {
		x, y := proj.Point(d.Position.Vec())
		item := Item{Kind: d.Sprite.Kind, Color: d.Sprite.Color, Layer: d.Sprite.Layer}

		switch d.Sprite.Kind {
		case KindCircle:
			item.X, item.Y = x, y
			item.W = d.Shape.X * scale
			item.H = item.W
		default:
			item.W = d.Shape.X * scale
			item.H = d.Shape.Y * scale
			item.X = x - item.W/2
			item.Y = y - item.H/2
		}
		items = append(items, item)
	}

	slices.SortStableFunc(items, func(a, b Item) int {
		return cmp.Compare(a.Layer, b.Layer)
	})
	return items
}

// RegisterComponents registers Sprite.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Sprite](registry)
}
