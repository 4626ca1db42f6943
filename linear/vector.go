// Copyright 2026 The swrast Authors. All rights reserved.

// Package linear implements the math kernel used by the rasterizer:
// 2/3/4-component vectors, 3x3/4x4 matrices, and the transform
// builders (translate/rotate/scale/lookAt/perspective/ortho) that
// feed the pipeline's vertex stage.
package linear

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// V2 is a 2-component vector of float32.
type V2 [2]float32

// Add sets v to contain l + r.
func (v *V2) Add(l, r *V2) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V2) Sub(l, r *V2) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V2) Scale(s float32, w *V2) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// V3 is a 3-component vector of float32.
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r *V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V3) Scale(s float32, w *V3) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v ⋅ w.
func (v *V3) Dot(w *V3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Norm sets v to contain w normalized.
func (v *V3) Norm(w *V3) { v.Scale(1/w.Len(), w) }

// Cross sets v to contain l × r.
func (v *V3) Cross(l, r *V3) {
	x := l[1]*r[2] - l[2]*r[1]
	y := l[2]*r[0] - l[0]*r[2]
	z := l[0]*r[1] - l[1]*r[0]
	v[0], v[1], v[2] = x, y, z
}

// Mul sets v to contain m ⋅ w (standard column-vector multiply).
func (v *V3) Mul(m *M3, w *V3) {
	*v = V3{}
	for i := range v {
		for j := range v {
			v[i] += m[j][i] * w[j]
		}
	}
}

// V4 is a 4-component vector of float32.
type V4 [4]float32

// Add sets v to contain l + r.
func (v *V4) Add(l, r *V4) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V4) Sub(l, r *V4) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ w.
func (v *V4) Scale(s float32, w *V4) {
	for i := range v {
		v[i] = s * w[i]
	}
}

// Dot returns v ⋅ w.
func (v *V4) Dot(w *V4) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Mul sets v to contain m ⋅ w (standard column-vector multiply).
func (v *V4) Mul(m *M4, w *V4) {
	*v = V4{}
	for i := range v {
		for j := range v {
			v[i] += m[j][i] * w[j]
		}
	}
}

// Lerp sets v to a + (b-a)*t.
func (v *V4) Lerp(a, b *V4, t float32) {
	for i := range v {
		v[i] = a[i] + (b[i]-a[i])*t
	}
}

// Combine3 sets v to a*t0 + b*t1 + c*t2 (barycentric combination).
func (v *V4) Combine3(a, b, c *V4, t0, t1, t2 float32) {
	for i := range v {
		v[i] = a[i]*t0 + b[i]*t1 + c[i]*t2
	}
}

// V2FromV4 drops the z, w components.
func V2FromV4(v V4) V2 { return V2{v[0], v[1]} }

// V3FromV4 drops the w component.
func V3FromV4(v V4) V3 { return V3{v[0], v[1], v[2]} }

// V4FromV3 appends w.
func V4FromV3(v V3, w float32) V4 { return V4{v[0], v[1], v[2], w} }

// V4FromV2 appends z, w.
func V4FromV2(v V2, z, w float32) V4 { return V4{v[0], v[1], z, w} }

// Color3 and Color4 are the RGB/RGBA color aliases shared with the
// math kernel, mirroring the original source's Color3/Color4 = Vec3/Vec4.
type (
	Color3 = V3
	Color4 = V4
)

// Named colors, as in the original source's Color namespace.
var (
	White       = Color4{1, 1, 1, 1}
	Black       = Color4{0, 0, 0, 1}
	Red         = Color4{1, 0, 0, 1}
	Green       = Color4{0, 1, 0, 1}
	Blue        = Color4{0, 0, 1, 1}
	Transparent = Color4{0, 0, 0, 0}
)

// LerpF linearly interpolates between a and b by t.
func LerpF[T constraints.Float](a, b, t T) T { return a + (b-a)*t }

// Clamp clamps x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Sign returns -1, 0 or 1 depending on the sign of x, using the same
// epsilon-guarded comparison as the original source's sign().
func Sign(x float32) int {
	switch {
	case x < -Epsilon:
		return -1
	case x > Epsilon:
		return 1
	default:
		return 0
	}
}

// Area returns the signed area of the parallelogram spanned by
// (b-a) and (c-a); twice the signed area of triangle (a,b,c).
func Area(a, b, c V2) float32 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// Epsilon is the clip-plane tolerance used throughout the pipeline.
const Epsilon = 1e-4

// Pi matches the original source's float32 constant (not math32.Pi's
// float64-derived value) so that Deg2Rad/Rad2Deg round-trip exactly
// the way the original does.
const Pi = 3.14159265358979323846

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float32) float32 { return deg / 180 * Pi }

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float32) float32 { return rad / Pi * 180 }
