package pong

import (
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/spatial"
)

// PlayerInputSystem sets the player paddle's vertical velocity from Input.
// Up wins when both keys are held.
type PlayerInputSystem struct {
	Input   ecs.Singleton[Input]
	Paddles ecs.Query[struct {
		*Player
		*spatial.Velocity
	}]
}

func (s *PlayerInputSystem) Execute(frame *ecs.UpdateFrame) {
	paddle, ok := s.Paddles.Single()
	if !ok {
		return
	}

	var input Input
	if in := s.Input.Get(); in != nil {
		input = *in
	}

	switch {
	case input.Up:
		paddle.Velocity.Y = 1
	case input.Down:
		paddle.Velocity.Y = -1
	default:
		paddle.Velocity.Y = 0
	}
}

// AiSystem steers the AI paddle toward the ball's height at a fixed speed.
// A ball level with the paddle counts as above it.
type AiSystem struct {
	Paddles ecs.Query[struct {
		*Ai
		*spatial.Position
		*spatial.Velocity
	}]
	Balls ecs.Query[struct {
		*Ball
		*spatial.Position
	}]
}

func (s *AiSystem) Execute(frame *ecs.UpdateFrame) {
	paddle, ok := s.Paddles.Single()
	if !ok {
		return
	}
	ball, ok := s.Balls.Single()
	if !ok {
		return
	}

	paddle.Velocity.Y = spatial.Signum(ball.Position.Y-paddle.Position.Y) * AiSpeed
}

// MaxPaddleY is the largest |y| a paddle center may reach: half the playfield
// less half the gutter and half the paddle.
func MaxPaddleY(field spatial.Playfield, gutter, paddle spatial.Shape) float32 {
	return field.HalfHeight() - gutter.Y/2 - paddle.Y/2
}

// PaddleMotionSystem moves paddles by velocity times PaddleSpeed. A move that
// would reach the travel limit is dropped for that tick rather than clamped.
type PaddleMotionSystem struct {
	Field   ecs.Singleton[spatial.Playfield]
	Gutters ecs.Query[struct {
		*Gutter
		*Reference
		*spatial.Shape
	}]
	Paddles ecs.Query[struct {
		*Paddle
		*spatial.Position
		*spatial.Velocity
		*spatial.Shape
	}]
}

func (s *PaddleMotionSystem) Execute(frame *ecs.UpdateFrame) {
	field := s.Field.Get()
	if field == nil {
		return
	}
	gutter, ok := s.Gutters.Single()
	if !ok {
		return
	}

	for paddle := range s.Paddles.Values() {
		maxY := MaxPaddleY(*field, *gutter.Shape, *paddle.Shape)
		candidate := paddle.Position.Vec().Add(paddle.Velocity.Vec().Scale(PaddleSpeed))
		if abs := candidate.Abs(); abs.Y < maxY {
			*paddle.Position = spatial.Position(candidate)
		}
	}
}
