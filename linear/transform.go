// Copyright 2026 The swrast Authors. All rights reserved.

package linear

import "github.com/chewxy/math32"

// Identity3 returns a 3x3 identity matrix.
func Identity3() M3 {
	var m M3
	m.I()
	return m
}

// Identity4 returns a 4x4 identity matrix.
func Identity4() M4 {
	var m M4
	m.I()
	return m
}

// Mat3FromMat4 extracts the upper-left 3x3 of n.
func Mat3FromMat4(n M4) (m M3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = n[i][j]
		}
	}
	return
}

// Mat4FromMat3 embeds m in the upper-left 3x3 of an otherwise
// identity 4x4 matrix.
func Mat4FromMat3(m M3) (n M4) {
	n.I()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			n[i][j] = m[i][j]
		}
	}
	return
}

// Translate builds a translation matrix for v.
//
// The matrix is built in the same column/row placement as the
// original source's trans::translate — the translation occupies
// row 3 rather than column 3, because every matrix in this package is
// meant to be combined with others via Mul (ordinary matrix
// composition) and applied to a position by transposing the combined
// matrix once and then using the standard column-vector V4.Mul. As
// long as every transform builder here matches the original
// element-for-element, the composed, transposed matrix reproduces the
// original's row-vector right-multiply chain exactly.
func Translate(v V3) M4 {
	m := Identity4()
	m[0][3] = v[0]
	m[1][3] = v[1]
	m[2][3] = v[2]
	return m
}

// Rotate builds a rotation matrix of rad radians around axis (need
// not be normalized).
func Rotate(rad float32, axis V3) M4 {
	m := Identity4()
	c := math32.Cos(rad)
	s := math32.Sin(rad)
	omc := 1 - c
	var a V3
	a.Norm(&axis)
	x, y, z := a[0], a[1], a[2]
	m[0][0] = x*x*omc + c
	m[0][1] = x*y*omc - z*s
	m[0][2] = x*z*omc + y*s
	m[1][0] = y*x*omc + z*s
	m[1][1] = y*y*omc + c
	m[1][2] = y*z*omc - x*s
	m[2][0] = z*x*omc - y*s
	m[2][1] = z*y*omc + x*s
	m[2][2] = z*z*omc + c
	return m
}

// Scale builds a scaling matrix for v.
func Scale(v V3) M4 {
	m := Identity4()
	m[0][0] = v[0]
	m[1][1] = v[1]
	m[2][2] = v[2]
	return m
}

// LookAt builds a right-handed view matrix placing the camera at eye,
// looking toward center, with the given up vector.
func LookAt(eye, center, up V3) M4 {
	var f, u, s V3
	f.Sub(&center, &eye)
	f.Norm(&f)
	u.Norm(&up)
	s.Cross(&f, &u)
	s.Norm(&s)
	u.Cross(&s, &f)

	m := Identity4()
	m[0][0], m[1][0], m[2][0] = s[0], s[1], s[2]
	m[0][1], m[1][1], m[2][1] = u[0], u[1], u[2]
	m[0][2], m[1][2], m[2][2] = -f[0], -f[1], -f[2]
	m[0][3] = -s.Dot(&eye)
	m[1][3] = -u.Dot(&eye)
	m[2][3] = f.Dot(&eye)
	return m
}

// Perspective builds a right-handed perspective projection matrix.
// fov is the full vertical field of view, in radians. Element [3][3]
// keeps the identity's 1, so a view-space point (x, y, z, 1) maps to
// clip w = 1 - z; clip z is -near at z = -near and far at z = -far.
func Perspective(fov, aspect, near, far float32) M4 {
	m := Identity4()
	f := 1 / math32.Tan(fov/2)
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = (far + near) / (near - far)
	m[3][2] = -1
	m[2][3] = (2 * far * near) / (near - far)
	return m
}

// Ortho builds an orthographic projection matrix.
func Ortho(left, right, bottom, top, near, far float32) M4 {
	m := Identity4()
	m[0][0] = 2 / (right - left)
	m[1][1] = 2 / (top - bottom)
	m[2][2] = -2 / (far - near)
	m[0][3] = -(right + left) / (right - left)
	m[1][3] = -(top + bottom) / (top - bottom)
	m[2][3] = -(far + near) / (far - near)
	return m
}

// NormalTransform returns the inverse of the upper-left 3x3 of
// modelview, for transforming normals (applied as a direct
// matrix*vector multiply, unlike position/varying attributes).
func NormalTransform(modelview M4) M3 {
	upper := Mat3FromMat4(modelview)
	var inv M3
	inv.Invert(&upper)
	return inv
}
