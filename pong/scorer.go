package pong

import (
	"log/slog"

	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/spatial"
)

// DetectScoringSystem sends Scored when the ball center is past the left or
// right edge of the playfield. The ball is not moved here.
type DetectScoringSystem struct {
	Field  ecs.Singleton[spatial.Playfield]
	Scored ecs.EventWriter[Scored]
	Balls  ecs.Query[ballBody]
}

func (s *DetectScoringSystem) Execute(frame *ecs.UpdateFrame) {
	field := s.Field.Get()
	if field == nil {
		return
	}
	ball, ok := s.Balls.Single()
	if !ok {
		return
	}

	switch x := ball.Position.X; {
	case x > field.HalfWidth():
		s.Scored.Send(Scored{By: ScorerAi})
	case x < -field.HalfWidth():
		s.Scored.Send(Scored{By: ScorerPlayer})
	}
}

// ServeVelocity is the ball velocity after a point: toward the side that
// conceded it.
func ServeVelocity(by Scorer) spatial.Velocity {
	if by == ScorerAi {
		return spatial.Velocity{X: -1, Y: 2}
	}
	return spatial.Velocity{X: 1, Y: 2}
}

// ResetBallSystem puts the ball back in the middle after each point.
type ResetBallSystem struct {
	Scored ecs.EventReader[Scored]
	Balls  ecs.Query[ballBody]
}

func (s *ResetBallSystem) Execute(frame *ecs.UpdateFrame) {
	for event := range s.Scored.Read() {
		ball, ok := s.Balls.Single()
		if !ok {
			continue
		}
		*ball.Position = spatial.Position{}
		*ball.Velocity = ServeVelocity(event.By)
	}
}

// UpdateScoreSystem adds one point per Scored event.
type UpdateScoreSystem struct {
	Log    *slog.Logger
	Score  ecs.Singleton[Score]
	Scored ecs.EventReader[Scored]
}

func (s *UpdateScoreSystem) Execute(frame *ecs.UpdateFrame) {
	for event := range s.Scored.Read() {
		score := s.Score.Get()
		if score == nil {
			continue
		}

		switch event.By {
		case ScorerAi:
			score.Ai++
		case ScorerPlayer:
			score.Player++
		}

		if s.Log != nil {
			s.Log.Debug("score", "player", score.Player, "ai", score.Ai)
		}
	}
}
