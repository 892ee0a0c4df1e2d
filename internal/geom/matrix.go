package geom

import "math"

// Matrix is a 2D affine transform, row-major: [a b c d e f] represents
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
//
// matching the layout spec.md §4.4 describes for GState.CTM:
// m[0][0] m[0][1] m[1][0] m[1][1] m[2][0] m[2][1].
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Apply transforms the point (x, y) by m.
func (m Matrix) Apply(v Vec2) Vec2 {
	return Vec2{
		X: m[0]*v.X + m[2]*v.Y + m[4],
		Y: m[1]*v.X + m[3]*v.Y + m[5],
	}
}

// ApplyDirection applies only the linear part of m (no translation) to v.
// This is user_to_device_distance in spec.md §4.4.
func (m Matrix) ApplyDirection(v Vec2) Vec2 {
	return Vec2{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// Mul returns the matrix product m*other, i.e. applying m first, then
// other (post-multiplication, as spec.md §4.4 apply_transform specifies).
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate returns a translation matrix.
func Translate(dx, dy float64) Matrix {
	return Matrix{1, 0, 0, 1, dx, dy}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix for angle radians (CCW).
func Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{c, s, -s, c, 0, 0}
}

// RotateDeg returns a rotation matrix for angleDeg degrees (CCW).
func RotateDeg(angleDeg float64) Matrix {
	return Rotate(angleDeg * math.Pi / 180)
}

// Translate post-multiplies m by a translation of (dx, dy), i.e. the
// translation applies after m. Matches spec.md §4.4's apply_transform
// post-multiply convention, expressed as a chainable builder method for
// callers composing a CTM from several steps.
func (m Matrix) Translate(dx, dy float64) Matrix {
	return m.Mul(Translate(dx, dy))
}

// Scale post-multiplies m by a scaling of (sx, sy).
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Mul(Scale(sx, sy))
}

// Rotate post-multiplies m by a rotation of angle radians (CCW).
func (m Matrix) Rotate(angle float64) Matrix {
	return m.Mul(Rotate(angle))
}

// RotateDeg post-multiplies m by a rotation of angleDeg degrees (CCW).
func (m Matrix) RotateDeg(angleDeg float64) Matrix {
	return m.Rotate(angleDeg * math.Pi / 180)
}

// Det returns the determinant of the linear part of m.
func (m Matrix) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// zeroDetThreshold is the defensive "singular enough" band spec.md §4.4
// documents for matrix_invert: determinants in (-1e-7, 1e-7) yield the
// zero matrix so that downstream transforms become harmless no-ops.
const zeroDetThreshold = 1e-7

// Invert returns the inverse of m. If m is (near-)singular, it returns the
// all-zero matrix rather than an error, per spec.md §4.4 — callers that
// then transform through it get degenerate (but non-crashing) results.
func (m Matrix) Invert() Matrix {
	det := m.Det()
	if det > -zeroDetThreshold && det < zeroDetThreshold {
		return Matrix{}
	}
	invDet := 1 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	e := -(m[4]*a + m[5]*c)
	f := -(m[4]*b + m[5]*d)
	return Matrix{a, b, c, d, e, f}
}

// ScaleFactor returns an approximate uniform scale factor for m, used to
// decide texture sampling mode (spec.md §4.9) and curve flattening
// tolerance (spec.md §4.5).
func (m Matrix) ScaleFactor() float64 {
	sx := math.Hypot(m[0], m[1])
	sy := math.Hypot(m[2], m[3])
	return math.Sqrt(sx * sy)
}
