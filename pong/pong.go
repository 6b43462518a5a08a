// Package pong is the gameplay core of a Pong clone: ball motion, collisions
// against paddles and gutters, paddle control and scoring. It runs on an
// ecs.Scheduler and draws nothing itself.
package pong

import (
	"log/slog"

	"github.com/plus3/heep/ecs"
)

// Register adds the pong pipeline to scheduler in tick order. logger may be
// nil, in which case slog.Default is used.
func Register(scheduler *ecs.Scheduler, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("sim", "pong")

	scheduler.Register(&StartupSystem{Log: logger})
	scheduler.Register(&PlayerInputSystem{})
	scheduler.Register(&AiSystem{})
	scheduler.Register(&PaddleMotionSystem{})
	scheduler.Register(&CollisionSystem{})
	scheduler.Register(&BallMotionSystem{})
	scheduler.Register(&DetectScoringSystem{})
	scheduler.Register(&ResetBallSystem{})
	scheduler.Register(&UpdateScoreSystem{Log: logger})
}
