// Package walker lays a trail of dots. On a repeating timer the newest dot
// hands the head tag to a fresh dot placed up to one diameter away on each
// axis.
package walker

import (
	"image/color"
	"math/rand/v2"
	"reflect"

	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/render"
	"github.com/plus3/heep/spatial"
)

const (
	Radius = 1.5
	Period = 0.05

	// WorldHeight is the visible height in world units.
	WorldHeight = 100
)

var (
	DotColor        = color.RGBA{R: 31, G: 31, B: 122, A: 153}
	BackgroundColor = color.RGBA{R: 51, G: 102, B: 153, A: 255}
)

// Walker tags every dot of the trail.
type Walker struct{}

// LastWalker tags the head of the trail. Exactly one dot carries it.
type LastWalker struct{}

// SpawnTimer is the repeating step timer singleton, in seconds.
type SpawnTimer struct {
	Period  float64
	Elapsed float64
}

// Tick advances the timer by dt and reports whether it expired. Overshoot
// carries into the next period; several periods elapsing in one tick still
// count as one expiry.
func (t *SpawnTimer) Tick(dt float64) bool {
	if t.Period <= 0 {
		return false
	}
	t.Elapsed += dt
	if t.Elapsed < t.Period {
		return false
	}
	for t.Elapsed >= t.Period {
		t.Elapsed -= t.Period
	}
	return true
}

// Rand is the random source for step offsets. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Playfield returns the visible world for a window of the given pixel size.
// The trail is unbounded and may walk off screen.
func Playfield(screenW, screenH int) spatial.Playfield {
	return spatial.AspectPlayfield(WorldHeight, screenW, screenH)
}

// RegisterComponents registers the components a walker world uses.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	spatial.RegisterComponents(registry)
	render.RegisterComponents(registry)
	ecs.RegisterComponent[Walker](registry)
	ecs.RegisterComponent[LastWalker](registry)
}

func dot(at spatial.Position) []any {
	return []any{
		Walker{},
		LastWalker{},
		at,
		spatial.Shape{X: Radius, Y: Radius},
		render.Sprite{Color: DotColor, Kind: render.KindCircle},
	}
}

// Spawn creates the first head at the origin and the timer, unless a walker
// already exists.
func Spawn(storage *ecs.Storage) {
	if ecs.NewQuery[struct{ *Walker }](storage).Count() > 0 {
		return
	}
	storage.Spawn(dot(spatial.Position{})...)
	ecs.NewSingleton[SpawnTimer](storage, SpawnTimer{Period: Period})
	ecs.NewSingleton[render.Background](storage, render.Background{Color: BackgroundColor})
}

// WalkSystem extends the trail when the timer expires. The move happens
// through deferred commands, so the new head appears at the end of the tick.
type WalkSystem struct {
	Rand  Rand
	Timer ecs.Singleton[SpawnTimer]
	Heads ecs.Query[struct {
		ecs.EntityId
		*LastWalker
		*spatial.Position
	}]
}

func (s *WalkSystem) Execute(frame *ecs.UpdateFrame) {
	timer := s.Timer.Get()
	if timer == nil || !timer.Tick(frame.DeltaTime) {
		return
	}
	head, ok := s.Heads.Single()
	if !ok {
		return
	}

	r := s.Rand
	if r == nil {
		r = globalRand{}
	}
	step := spatial.Vec2{X: float32(r.IntN(3) - 1), Y: float32(r.IntN(3) - 1)}
	next := spatial.Position(head.Position.Vec().Add(step.Scale(2 * Radius)))

	frame.Commands.RemoveComponent(head.EntityId, reflect.TypeFor[LastWalker]())
	frame.Commands.Spawn(dot(next)...)
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

// Register adds the walker pipeline. rng may be nil to use the global
// source.
func Register(scheduler *ecs.Scheduler, rng Rand) {
	scheduler.RegisterNamed("WalkerSpawnSystem", &spawnSystem{})
	scheduler.Register(&WalkSystem{Rand: rng})
}
