package pong

import (
	"github.com/plus3/heep/ecs"
	"github.com/plus3/heep/spatial"
)

// Collision is the side of an obstacle the ball hit.
type Collision int

const (
	CollisionLeft Collision = iota
	CollisionRight
	CollisionTop
	CollisionBottom
)

func (c Collision) String() string {
	switch c {
	case CollisionLeft:
		return "left"
	case CollisionRight:
		return "right"
	case CollisionTop:
		return "top"
	case CollisionBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Horizontal reports whether the hit reflects the X velocity.
func (c Collision) Horizontal() bool {
	return c == CollisionLeft || c == CollisionRight
}

// CollideWithSide reports which side of wall the ball touches. The side is
// picked from the offset between the ball center and the closest point of
// the wall: the larger axis wins, ties go to the vertical axis, and a zero
// offset on the winning axis counts as Right or Bottom.
func CollideWithSide(ball spatial.Circle, wall spatial.AABB) (Collision, bool) {
	if !ball.IntersectsAABB(wall) {
		return 0, false
	}

	offset := ball.Center.Sub(wall.ClosestPoint(ball.Center))
	abs := offset.Abs()

	if abs.X > abs.Y {
		if offset.X < 0 {
			return CollisionLeft, true
		}
		return CollisionRight, true
	}
	if offset.Y > 0 {
		return CollisionTop, true
	}
	return CollisionBottom, true
}

// Reflect flips the velocity axis that c acts on.
func Reflect(v *spatial.Velocity, c Collision) {
	if c.Horizontal() {
		v.X = -v.X
	} else {
		v.Y = -v.Y
	}
}

type ballBody struct {
	ecs.EntityId
	*Ball
	*spatial.Position
	*spatial.Velocity
	*spatial.Shape
}

type obstacle struct {
	ecs.EntityId
	*spatial.Position
	*spatial.Shape
}

// CollisionSystem bounces the ball off every paddle and gutter it touches.
// Obstacles are tested one by one against the same ball position, so touching
// two obstacles in one tick flips once per obstacle.
type CollisionSystem struct {
	Balls     ecs.Query[ballBody]
	Obstacles ecs.Query[obstacle]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	ball, ok := s.Balls.Single()
	if !ok {
		return
	}

	circle := spatial.Circle{Center: ball.Position.Vec(), Radius: ball.Shape.X}
	for other := range s.Obstacles.Values() {
		if other.EntityId == ball.EntityId {
			continue
		}
		wall := spatial.NewAABB(other.Position.Vec(), other.Shape.Half())
		if side, hit := CollideWithSide(circle, wall); hit {
			Reflect(ball.Velocity, side)
		}
	}
}

// BallMotionSystem moves the ball by its velocity once per tick.
type BallMotionSystem struct {
	Balls ecs.Query[ballBody]
}

func (s *BallMotionSystem) Execute(frame *ecs.UpdateFrame) {
	if ball, ok := s.Balls.Single(); ok {
		spatial.Integrate(ball.Position, *ball.Velocity, 1)
	}
}
