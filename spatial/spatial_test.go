package spatial_test

import (
	"math"
	"testing"

	"github.com/plus3/heep/spatial"
	"github.com/stretchr/testify/assert"
)

func TestSignum(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"positive", 3.5, 1},
		{"negative", -0.1, -1},
		{"positive zero", 0, 1},
		{"negative zero", float32(math.Copysign(0, -1)), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spatial.Signum(tt.in))
		})
	}

	assert.True(t, math.IsNaN(float64(spatial.Signum(float32(math.NaN())))))
}

func TestVecOps(t *testing.T) {
	a := spatial.Vec2{X: 1, Y: -2}
	b := spatial.Vec2{X: 3, Y: 4}

	assert.Equal(t, spatial.Vec2{X: 4, Y: 2}, a.Add(b))
	assert.Equal(t, spatial.Vec2{X: -2, Y: -6}, a.Sub(b))
	assert.Equal(t, spatial.Vec2{X: 2, Y: -4}, a.Scale(2))
	assert.Equal(t, spatial.Vec2{X: 1, Y: 2}, a.Abs())
	assert.Equal(t, float32(25), b.LengthSquared())
}

func TestAABBClosestPoint(t *testing.T) {
	box := spatial.NewAABB(spatial.Vec2{X: 100, Y: 0}, spatial.Vec2{X: 5, Y: 25})

	assert.Equal(t, spatial.Vec2{X: 95, Y: -25}, box.Min)
	assert.Equal(t, spatial.Vec2{X: 105, Y: 25}, box.Max)
	assert.Equal(t, spatial.Vec2{X: 100, Y: 0}, box.Center())
	assert.Equal(t, spatial.Vec2{X: 5, Y: 25}, box.HalfSize())

	assert.Equal(t, spatial.Vec2{X: 95, Y: 10}, box.ClosestPoint(spatial.Vec2{X: 0, Y: 10}))
	assert.Equal(t, spatial.Vec2{X: 105, Y: 25}, box.ClosestPoint(spatial.Vec2{X: 200, Y: 200}))
	assert.Equal(t, spatial.Vec2{X: 101, Y: 1}, box.ClosestPoint(spatial.Vec2{X: 101, Y: 1}))
}

func TestCircleIntersectsAABB(t *testing.T) {
	box := spatial.NewAABB(spatial.Vec2{X: 100, Y: 0}, spatial.Vec2{X: 5, Y: 25})

	tests := []struct {
		name   string
		center spatial.Vec2
		want   bool
	}{
		{"far left", spatial.Vec2{X: 80, Y: 0}, false},
		{"touching edge", spatial.Vec2{X: 90, Y: 0}, true},
		{"overlapping", spatial.Vec2{X: 94, Y: 0}, true},
		{"inside", spatial.Vec2{X: 100, Y: 0}, true},
		{"near corner", spatial.Vec2{X: 91, Y: 29}, false},
		{"touching corner", spatial.Vec2{X: 92, Y: 29}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			circle := spatial.Circle{Center: tt.center, Radius: 5}
			assert.Equal(t, tt.want, circle.IntersectsAABB(box))
		})
	}
}

func TestIntegrate(t *testing.T) {
	p := spatial.Position{X: 1, Y: 1}
	spatial.Integrate(&p, spatial.Velocity{X: 2, Y: -4}, 0.5)
	assert.Equal(t, spatial.Position{X: 2, Y: -1}, p)
}

func TestPlayfieldHalves(t *testing.T) {
	field := spatial.Playfield{Width: 800, Height: 600}
	assert.Equal(t, float32(400), field.HalfWidth())
	assert.Equal(t, float32(300), field.HalfHeight())
	assert.Equal(t, spatial.Vec2{X: 5, Y: 25}, spatial.Shape{X: 10, Y: 50}.Half())
}

func TestAspectPlayfield(t *testing.T) {
	assert.Equal(t, spatial.Playfield{Width: 160, Height: 90}, spatial.AspectPlayfield(90, 1600, 900))
	assert.Equal(t, spatial.Playfield{Width: 50, Height: 100}, spatial.AspectPlayfield(100, 300, 600))
	assert.Equal(t, spatial.Playfield{Width: 10, Height: 10}, spatial.AspectPlayfield(10, 0, 600))
}
