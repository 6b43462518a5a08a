package pong

import (
	"image/color"

	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/render"
	"github.com/plus3/heep/spatial"
)

const (
	BallRadius = 5

	PaddleWidth   = 10
	PaddleHeight  = 50
	PaddleSpeed   = 2
	PaddlePadding = 50

	GutterHeight = 20

	AiSpeed = 0.9
)

var (
	BallVelocity = spatial.Velocity{X: 1, Y: 2}

	BallColor       = color.RGBA{R: 255, A: 255}
	PlayerColor     = color.RGBA{G: 255, A: 255}
	AiColor         = color.RGBA{B: 255, A: 255}
	GutterColor     = color.RGBA{A: 255}
	BackgroundColor = color.RGBA{R: 43, G: 44, B: 47, A: 255}
)

// Tags. Each is a zero-size component.
type (
	Ball      struct{}
	Paddle    struct{}
	Player    struct{}
	Ai        struct{}
	Gutter    struct{}
	Reference struct{}
)

// Input is the keyboard state the host writes before each tick.
type Input struct {
	Up, Down bool
}

// Score counts points per side. It only ever increases.
type Score struct {
	Player uint32
	Ai     uint32
}

// Scorer says who earned a point.
type Scorer int

const (
	ScorerAi Scorer = iota
	ScorerPlayer
)

func (s Scorer) String() string {
	switch s {
	case ScorerAi:
		return "ai"
	case ScorerPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Scored is sent when the ball leaves the playfield on the left or right.
type Scored struct {
	By Scorer
}

// RegisterComponents registers every component a pong world uses, including
// the spatial and sprite ones.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	spatial.RegisterComponents(registry)
	render.RegisterComponents(registry)

	ecs.RegisterComponent[Ball](registry)
	ecs.RegisterComponent[Paddle](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Ai](registry)
	ecs.RegisterComponent[Gutter](registry)
	ecs.RegisterComponent[Reference](registry)
}

// NewStorage returns an empty storage that accepts pong components.
func NewStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	return ecs.NewStorage(registry)
}
