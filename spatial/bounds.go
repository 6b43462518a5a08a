package spatial

// Circle is a bounding circle.
type Circle struct {
	Center Vec2
	Radius float32
}

// AABB is an axis-aligned box given by its corners.
type AABB struct {
	Min, Max Vec2
}

// NewAABB builds a box from its center and half extents.
func NewAABB(center, half Vec2) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

func (b AABB) Center() Vec2 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b AABB) HalfSize() Vec2 {
	return b.Max.Sub(b.Min).Scale(0.5)
}

// ClosestPoint returns the point of b nearest to p. Points inside b are
// returned unchanged.
func (b AABB) ClosestPoint(p Vec2) Vec2 {
	return p.Clamp(b.Min, b.Max)
}

// IntersectsAABB reports whether the circle touches or overlaps b.
func (c Circle) IntersectsAABB(b AABB) bool {
	return c.Center.Sub(b.ClosestPoint(c.Center)).LengthSquared() <= c.Radius*c.Radius
}
