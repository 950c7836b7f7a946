package vec3

import (
	"errors"
	"math"
)

// ErrUndefinedDirection reports a request for a direction that does not
// exist: a unit vector, direction angle, inner angle, or plane normal of a
// zero-length vector or a collinear point configuration. Callers branch on
// it with errors.Is.
var ErrUndefinedDirection = errors.New("vec3: undefined direction for zero-length vector")

// Unit returns the vector of length 1 pointing in the direction of v.
// Fails with ErrUndefinedDirection when v has length exactly 0; the error
// is surfaced instead of silently producing NaN or Inf components.
func (v Vec3) Unit() (Vec3, error) {
	l := v.Len()
	if l == 0 {
		return Vec3{}, ErrUndefinedDirection
	}
	return v.Scale(1 / l), nil
}

// DirAngles returns the angles v makes with the x, y and z axes, in
// radians: the arccosine of each unit-vector component. Fails with
// ErrUndefinedDirection when v has length 0.
func (v Vec3) DirAngles() (ax, ay, az float64, err error) {
	u, err := v.Unit()
	if err != nil {
		return 0, 0, 0, err
	}
	return math.Acos(clamp1(u[0])), math.Acos(clamp1(u[1])), math.Acos(clamp1(u[2])), nil
}

// PlanarAngles returns the counter-clockwise angles of v in the xy, xz and
// yz coordinate planes: atan2(y,x), atan2(z,x) and atan2(z,y). Total over
// all inputs; a zero component pair follows the atan2 convention and
// yields 0.
func (v Vec3) PlanarAngles() (xy, xz, yz float64) {
	return math.Atan2(v[1], v[0]), math.Atan2(v[2], v[0]), math.Atan2(v[2], v[1])
}

// AngleXY returns only the xy-plane angle atan2(y,x), skipping the other
// two planar angles.
func (v Vec3) AngleXY() float64 {
	return math.Atan2(v[1], v[0])
}

// InnerAngle returns the unsigned angle between a and b, in [0, π].
// The cosine ratio is clamped to [-1, 1] so rounding cannot push acos out
// of its domain. Fails with ErrUndefinedDirection when either vector has
// length 0.
func (a Vec3) InnerAngle(b Vec3) (float64, error) {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0, ErrUndefinedDirection
	}
	return math.Acos(clamp1(a.Dot(b) / (la * lb))), nil
}

func clamp1(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
