package bounce_test

import (
	"testing"

	"github.com/plus3/heep/bounce"
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ball struct {
	*bounce.Ball
	*spatial.Position
	*spatial.Velocity
}

func newWorld(field spatial.Playfield) (*ecs.Storage, *ecs.Scheduler, *ecs.Query[ball]) {
	registry := ecs.NewComponentRegistry()
	bounce.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	storage.AddSingleton(field)

	scheduler := ecs.NewScheduler(storage)
	bounce.Register(scheduler)
	return storage, scheduler, ecs.NewQuery[ball](storage)
}

func TestPlayfield(t *testing.T) {
	assert.Equal(t, spatial.Playfield{Width: 200, Height: 100}, bounce.Playfield(1280, 640))
	assert.Equal(t, spatial.Playfield{Width: 100, Height: 100}, bounce.Playfield(1280, 0))
}

func TestMotionScalesWithDeltaTime(t *testing.T) {
	_, scheduler, balls := newWorld(spatial.Playfield{Width: 200, Height: 100})

	scheduler.Once(0.5)

	b, ok := balls.Single()
	require.True(t, ok)
	assert.Equal(t, spatial.Position{X: 5, Y: 7.5}, *b.Position)
	assert.Equal(t, bounce.InitialVelocity, *b.Velocity)
}

func TestBoundsReflect(t *testing.T) {
	tests := []struct {
		name    string
		at      spatial.Position
		v       spatial.Velocity
		wantPos spatial.Position
		wantVel spatial.Velocity
	}{
		{"inside", spatial.Position{X: 10, Y: 10}, spatial.Velocity{X: 1, Y: 1}, spatial.Position{X: 10, Y: 10}, spatial.Velocity{X: 1, Y: 1}},
		{"past right", spatial.Position{X: 99, Y: 0}, spatial.Velocity{X: 10, Y: 1}, spatial.Position{X: 97.5, Y: 0}, spatial.Velocity{X: -10, Y: 1}},
		{"past left", spatial.Position{X: -99, Y: 0}, spatial.Velocity{X: -10, Y: 1}, spatial.Position{X: -97.5, Y: 0}, spatial.Velocity{X: 10, Y: 1}},
		{"past top", spatial.Position{X: 0, Y: 49}, spatial.Velocity{X: 1, Y: 5}, spatial.Position{X: 0, Y: 47.5}, spatial.Velocity{X: 1, Y: -5}},
		{"past corner", spatial.Position{X: -99, Y: -49}, spatial.Velocity{X: -1, Y: -5}, spatial.Position{X: -97.5, Y: -47.5}, spatial.Velocity{X: 1, Y: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, scheduler, balls := newWorld(spatial.Playfield{Width: 200, Height: 100})
			bounce.Spawn(storage)

			b, ok := balls.Single()
			require.True(t, ok)
			*b.Position = tt.at
			*b.Velocity = tt.v

			// Zero delta isolates the bounds check.
			scheduler.Once(0)

			assert.Equal(t, tt.wantPos, *b.Position)
			assert.Equal(t, tt.wantVel, *b.Velocity)
		})
	}
}

func TestBallStaysInside(t *testing.T) {
	_, scheduler, balls := newWorld(spatial.Playfield{Width: 177, Height: 100})

	for range 5000 {
		scheduler.Once(1.0 / 60)

		b, ok := balls.Single()
		require.True(t, ok)
		assert.LessOrEqual(t, abs(b.Position.X), float32(177.0/2-bounce.Radius)+1e-3)
		assert.LessOrEqual(t, abs(b.Position.Y), float32(50-bounce.Radius)+1e-3)
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
