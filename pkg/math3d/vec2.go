package math3d

// Vec2 represents a 2D vector, used for texture coordinates.
type Vec2 struct {
	X, Y float64
}

// V2 creates a new Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Barycentric2 blends three Vec2 with weights bc.X, bc.Y and bc.Z.
func Barycentric2(a, b, c Vec2, bc Vec3) Vec2 {
	return Vec2{
		a.X*bc.X + b.X*bc.Y + c.X*bc.Z,
		a.Y*bc.X + b.Y*bc.Y + c.Y*bc.Z,
	}
}
