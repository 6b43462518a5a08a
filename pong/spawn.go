package pong

import (
	"log/slog"

	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/render"
	"github.com/plus3/heep/spatial"
)

// Spawn creates the ball, both paddles, both gutters and the Score and Input
// singletons. It needs the Playfield singleton and returns false until it
// exists. Calling it again after a successful spawn does nothing.
func Spawn(storage *ecs.Storage) bool {
	var field *spatial.Playfield
	if !storage.ReadSingleton(&field) {
		return false
	}
	if ecs.NewQuery[struct{ *Ball }](storage).Count() > 0 {
		return true
	}

	storage.Spawn(
		Ball{},
		spatial.Position{},
		BallVelocity,
		spatial.Shape{X: BallRadius, Y: BallRadius},
		render.Sprite{Color: BallColor, Kind: render.KindCircle, Layer: 1},
	)

	paddleShape := spatial.Shape{X: PaddleWidth, Y: PaddleHeight}
	storage.Spawn(
		Paddle{},
		Player{},
		spatial.Position{X: field.HalfWidth() - PaddlePadding},
		spatial.Velocity{},
		paddleShape,
		render.Sprite{Color: PlayerColor, Kind: render.KindRect},
	)
	storage.Spawn(
		Paddle{},
		Ai{},
		spatial.Position{X: -field.HalfWidth() + PaddlePadding},
		spatial.Velocity{},
		paddleShape,
		render.Sprite{Color: AiColor, Kind: render.KindRect},
	)

	gutterShape := spatial.Shape{X: field.Width, Y: GutterHeight}
	storage.Spawn(
		Gutter{},
		Reference{},
		spatial.Position{Y: field.HalfHeight() - GutterHeight/2},
		gutterShape,
		render.Sprite{Color: GutterColor, Kind: render.KindRect},
	)
	storage.Spawn(
		Gutter{},
		spatial.Position{Y: -field.HalfHeight() + GutterHeight/2},
		gutterShape,
		render.Sprite{Color: GutterColor, Kind: render.KindRect},
	)

	storage.AddSingleton(Score{})
	ecs.NewSingleton[Input](storage)
	ecs.NewSingleton[render.Background](storage, render.Background{Color: BackgroundColor})
	return true
}

// StartupSystem calls Spawn every tick until it succeeds.
type StartupSystem struct {
	Log     *slog.Logger
	spawned bool
}

func (s *StartupSystem) Execute(frame *ecs.UpdateFrame) {
	if s.spawned {
		return
	}
	if s.spawned = Spawn(frame.Storage); s.spawned && s.Log != nil {
		s.Log.Debug("spawned pong world", "tick", frame.Tick)
	}
}
