// Copyright 2026 The swrast Authors. All rights reserved.

package linear

import "github.com/chewxy/math32"

// Q is a quaternion of float32.
type Q struct {
	V V3
	R float32
}

// QFromAxisAngle builds a unit quaternion representing a rotation of
// rad radians around axis.
func QFromAxisAngle(rad float32, axis V3) Q {
	var a V3
	a.Norm(&axis)
	half := rad / 2
	s := math32.Sin(half)
	var v V3
	v.Scale(s, &a)
	return Q{V: v, R: math32.Cos(half)}
}

// Mul sets q to contain l ⋅ r.
func (q *Q) Mul(l, r *Q) {
	var v, w V3
	v.Scale(r.R, &l.V)
	w.Scale(l.R, &r.V)
	v.Add(&v, &w)
	w.Cross(&l.V, &r.V)
	d := l.V.Dot(&r.V)
	q.V.Add(&v, &w)
	q.R = l.R*r.R - d
}

// ToMat4 converts q to an equivalent rotation matrix, in the same
// element layout produced by Rotate.
func (q *Q) ToMat4() M4 {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	m := Identity4()
	m[0][0] = 1 - 2*(y*y+z*z)
	m[0][1] = 2 * (x*y - z*w)
	m[0][2] = 2 * (x*z + y*w)
	m[1][0] = 2 * (x*y + z*w)
	m[1][1] = 1 - 2*(x*x+z*z)
	m[1][2] = 2 * (y*z - x*w)
	m[2][0] = 2 * (x*z - y*w)
	m[2][1] = 2 * (y*z + x*w)
	m[2][2] = 1 - 2*(x*x+y*y)
	return m
}
