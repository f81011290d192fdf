// Package linear provides the small fixed-size vector and matrix types
// used by the renderer and the world simulation.
//
// Matrices are column-major, matching the memory layout uniform buffers
// expect. All types are plain value types; operations return new values
// and never mutate their receivers.
package linear

import "math"

// Vec2 is a two-component float32 vector.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a three-component float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a four-component float32 vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{v.X - u.X, v.Y - u.Y, v.Z - u.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and u.
func (v Vec3) Dot(u Vec3) float32 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the cross product of v and u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		v.Y*u.Z - v.Z*u.Y,
		v.Z*u.X - v.X*u.Z,
		v.X*u.Y - v.Y*u.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

// Normalized returns v scaled to unit length. The zero vector is
// returned unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Distance returns the Euclidean distance between v and u.
func (v Vec3) Distance(u Vec3) float32 {
	return v.Sub(u).Length()
}

// Lerp returns the linear interpolation between v and u at t.
// t is clamped to [0, 1].
func (v Vec3) Lerp(u Vec3, t float32) Vec3 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return v.Add(u.Sub(v).Scale(t))
}

// Vec4 returns v extended with the given w component.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}
