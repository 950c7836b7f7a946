package vec3

// Point-based helpers. These treat their arguments as positions and build
// the intermediate free vectors from point differences.

// Direction returns the unit vector pointing from point a toward point b.
// Fails with ErrUndefinedDirection when the points coincide.
func Direction(a, b Vec3) (Vec3, error) {
	return b.Sub(a).Unit()
}

// AngleAt returns the angle at vertex between the rays toward a and b, in
// [0, π]. Fails with ErrUndefinedDirection when either point coincides
// with the vertex.
func AngleAt(vertex, a, b Vec3) (float64, error) {
	ra, err := Direction(vertex, a)
	if err != nil {
		return 0, err
	}
	rb, err := Direction(vertex, b)
	if err != nil {
		return 0, err
	}
	return ra.InnerAngle(rb)
}

// PlaneNormal returns the unit normal of the plane through vertex, a and b,
// oriented by the right-hand rule following vertex→a then vertex→b.
// Fails with ErrUndefinedDirection when the three points are collinear.
func PlaneNormal(vertex, a, b Vec3) (Vec3, error) {
	return a.Sub(vertex).Cross(b.Sub(vertex)).Unit()
}

// TriArea returns the area of the triangle with vertices a, b and c.
// Never fails; collinear points yield area 0.
func TriArea(a, b, c Vec3) float64 {
	return a.Sub(b).Cross(a.Sub(c)).Len() / 2
}
