package main

import (
	"log/slog"
	"math/rand/v2"

	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/pong"
	"github.com/plus3/heep/spatial"
	"golang.org/x/time/rate"
)

// autopilot holds the player's keys so the paddle follows the ball. Each
// tick it misreads the ball's height by up to Slop, so it loses points now
// and then.
type autopilot struct {
	Rand *rand.Rand
	Slop float32

	Balls ecs.Query[struct {
		*pong.Ball
		*spatial.Position
	}]
	Paddles ecs.Query[struct {
		*pong.Player
		*spatial.Position
	}]
}

func newAutopilot(seed uint64) *autopilot {
	return &autopilot{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), Slop: 40}
}

func (a *autopilot) Execute(frame *ecs.UpdateFrame) {
	ball, ok := a.Balls.Single()
	if !ok {
		return
	}
	paddle, ok := a.Paddles.Single()
	if !ok {
		return
	}

	target := ball.Position.Y + (a.Rand.Float32()*2-1)*a.Slop
	frame.Storage.AddSingleton(pong.Input{
		Up:   target > paddle.Position.Y+pong.PaddleSpeed,
		Down: target < paddle.Position.Y-pong.PaddleSpeed,
	})
}

// goalLogSystem reports goals at info level, throttled by a limiter shared
// between matches.
type goalLogSystem struct {
	Log     *slog.Logger
	Limiter *rate.Limiter
	Score   ecs.Singleton[pong.Score]
	Scored  ecs.EventReader[pong.Scored]
}

func (g *goalLogSystem) Execute(frame *ecs.UpdateFrame) {
	for ev := range g.Scored.Read() {
		if !g.Limiter.Allow() {
			continue
		}
		attrs := []any{"by", ev.By.String(), "tick", frame.Tick}
		if score := g.Score.Get(); score != nil {
			attrs = append(attrs, "player", score.Player, "ai", score.Ai)
		}
		g.Log.Info("goal", attrs...)
	}
}
