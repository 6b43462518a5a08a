package spatial

import "github.com/plus3/heep/ecs"

// Position is an entity's center in world coordinates.
type Position Vec2

// Velocity is the displacement per step.
type Velocity Vec2

// Shape is an entity's full extent. For round entities X is the radius.
type Shape Vec2

func (p Position) Vec() Vec2 { return Vec2(p) }
func (v Velocity) Vec() Vec2 { return Vec2(v) }
func (s Shape) Vec() Vec2    { return Vec2(s) }

// Half returns half of the extent.
func (s Shape) Half() Vec2 { return Vec2(s).Scale(0.5) }

// Playfield is the singleton world size, centered on the origin. Hosts set
// it from the window size; until it exists simulations treat the world as not
// ready.
type Playfield struct {
	Width, Height float32
}

func (p Playfield) HalfWidth() float32  { return p.Width / 2 }
func (p Playfield) HalfHeight() float32 { return p.Height / 2 }

// AspectPlayfield returns a playfield of the given world height whose width
// follows the screen's aspect ratio. A degenerate screen gives a square.
func AspectPlayfield(height float32, screenW, screenH int) Playfield {
	if screenW <= 0 || screenH <= 0 {
		return Playfield{Width: height, Height: height}
	}
	return Playfield{Width: height * float32(screenW) / float32(screenH), Height: height}
}

// Integrate moves p by v scaled by step.
func Integrate(p *Position, v Velocity, step float32) {
	*p = Position(p.Vec().Add(v.Vec().Scale(step)))
}

// RegisterComponents registers the spatial component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Shape](registry)
}
