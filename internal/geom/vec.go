// Package geom provides the minimal 2D geometry types shared by the path
// builder, the rasterizer and the stroke expander: vectors, affine
// matrices, rectangles and the path command stream. The API shape mirrors
// seehuhn.de/go/geom, which ctx's rasterizer core was ported from.
package geom

import "math"

// Vec2 is a point or direction in 2D space.
type Vec2 struct {
	X, Y float64
}

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v.X + w.X, v.Y + w.Y}
}

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v.X - w.X, v.Y - w.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Cross returns the Z component of the 3D cross product of v and w.
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}
