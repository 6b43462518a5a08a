// Package bounce is a single ball flying around the playfield, reflected off
// its edges. Motion is scaled by the frame's delta time.
package bounce

import (
	"image/color"

	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/render"
	"github.com/plus3/heep/spatial"
)

const (
	Radius = 2.5

	// WorldHeight is the fixed visible height in world units; the width
	// follows the window's aspect ratio.
	WorldHeight = 100
)

var (
	InitialVelocity = spatial.Velocity{X: 10, Y: 15}

	BallColor       = color.RGBA{R: 31, G: 31, B: 122, A: 153}
	BackgroundColor = color.RGBA{R: 51, G: 102, B: 153, A: 255}
)

// Ball tags the bouncing entity.
type Ball struct{}

// Playfield returns the world size for a window of the given pixel size.
func Playfield(screenW, screenH int) spatial.Playfield {
	return spatial.AspectPlayfield(WorldHeight, screenW, screenH)
}

// RegisterComponents registers the components a bounce world uses.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	spatial.RegisterComponents(registry)
	render.RegisterComponents(registry)
	ecs.RegisterComponent[Ball](registry)
}

// Spawn creates the ball at the origin unless one exists.
func Spawn(storage *ecs.Storage) {
	if ecs.NewQuery[struct{ *Ball }](storage).Count() > 0 {
		return
	}

	storage.Spawn(
		Ball{},
		spatial.Position{},
		InitialVelocity,
		spatial.Shape{X: Radius, Y: Radius},
		render.Sprite{Color: BallColor, Kind: render.KindCircle},
	)
	ecs.NewSingleton[render.Background](storage, render.Background{Color: BackgroundColor})
}

type body struct {
	*Ball
	*spatial.Position
	*spatial.Velocity
	*spatial.Shape
}

// MotionSystem advances the ball by velocity times the frame time.
type MotionSystem struct {
	Balls ecs.Query[body]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	if ball, ok := s.Balls.Single(); ok {
		spatial.Integrate(ball.Position, *ball.Velocity, float32(frame.DeltaTime))
	}
}

// BoundsSystem keeps the ball inside the playfield. On each axis a ball past
// an edge is put back against it and that velocity component flips.
type BoundsSystem struct {
	Field ecs.Singleton[spatial.Playfield]
	Balls ecs.Query[body]
}

func (s *BoundsSystem) Execute(frame *ecs.UpdateFrame) {
	field := s.Field.Get()
	if field == nil {
		return
	}
	ball, ok := s.Balls.Single()
	if !ok {
		return
	}

	ball.Position.X, ball.Velocity.X = reflectAxis(ball.Position.X, ball.Velocity.X, ball.Shape.X, field.HalfWidth())
	ball.Position.Y, ball.Velocity.Y = reflectAxis(ball.Position.Y, ball.Velocity.Y, ball.Shape.Y, field.HalfHeight())
}

func reflectAxis(pos, vel, radius, half float32) (float32, float32) {
	switch {
	case pos-radius < -half:
		return -half + radius, -vel
	case pos+radius > half:
		return half - radius, -vel
	default:
		return pos, vel
	}
}

type spawnSystem struct {
	done bool
}

func (s *spawnSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.done {
		Spawn(frame.Storage)
		s.done = true
	}
}

// Register adds the bounce pipeline: spawn on the first tick, then motion
// followed by the bounds check.
func Register(scheduler *ecs.Scheduler) {
	scheduler.RegisterNamed("BounceSpawnSystem", &spawnSystem{})
	scheduler.Register(&MotionSystem{})
	scheduler.Register(&BoundsSystem{})
}
