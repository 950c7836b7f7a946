// Package vec3 provides 3D vector math on an immutable value type:
// construction, arithmetic, dot and cross products, norms, and angle
// computations, plus helpers that operate on points rather than free
// vectors. All operations return new values; nothing is mutated in place,
// so values are safe to share across goroutines.
package vec3

import "math"

// Vec3 is an ordered triple (x, y, z) representing a point or free vector
// in 3-space. Value type, trivially copyable.
type Vec3 [3]float64

// New builds a Vec3 from up to three coordinates. Omitted trailing
// coordinates default to 0; values beyond the third are ignored.
// Never fails.
func New(coords ...float64) Vec3 {
	var v Vec3
	n := len(coords)
	if n > 3 {
		n = 3
	}
	copy(v[:], coords[:n])
	return v
}

// Add returns v plus all operands, folded left to right.
// With no operands it returns v unchanged.
func (v Vec3) Add(vs ...Vec3) Vec3 {
	for _, o := range vs {
		v[0] += o[0]
		v[1] += o[1]
		v[2] += o[2]
	}
	return v
}

// Sub returns v minus each operand in turn, folded left to right:
// v - v1 - v2 - ...
func (v Vec3) Sub(vs ...Vec3) Vec3 {
	for _, o := range vs {
		v[0] -= o[0]
		v[1] -= o[1]
		v[2] -= o[2]
	}
	return v
}

// Scale returns v with each component multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of a and b: x0x1 + y0y1 + z0z1.
func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the cross product a × b, oriented by the right-hand rule.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len returns the Euclidean norm of v. The zero vector has length 0.
func (v Vec3) Len() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
