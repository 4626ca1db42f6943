// Copyright 2026 The swrast Authors. All rights reserved.

// Package raster implements the rasterizer pipeline: vertex shading,
// primitive assembly, homogeneous clipping, the perspective divide and
// viewport mapping, back-face culling, scan conversion, and the
// fragment test/write-back stage that resolves onto a fb.Framebuffer.
//
// Every matrix a shader receives from linear (Translate, Rotate,
// Scale, LookAt, Perspective, Ortho, or any product of these) is
// built to be composed with ordinary matrix multiplication and then
// applied to a position with a single Transpose followed by the
// standard column-vector V4.Mul — see the comment on linear.Translate
// for the derivation. A VertexShader.Run is expected to have already
// done that transpose by the time it writes VSOut.Position; the
// pipeline below only ever deals with a finished clip-space Vec4.
package raster

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/cpurender/swrast/fb"
	"github.com/cpurender/swrast/linear"
	"github.com/cpurender/swrast/rstate"
	"github.com/cpurender/swrast/shader"
)

const prefix = "raster: "

// Vertex is one entry of a VertexBuffer.
type Vertex = shader.VSIn

// VertexBuffer is the per-vertex attribute input to a draw.
type VertexBuffer []Vertex

// IndexBuffer selects and orders the vertices assembled into
// primitives. An empty IndexBuffer draws vertices in order, one per
// index.
type IndexBuffer []uint32

// VertexArray is the input geometry of a draw call.
type VertexArray struct {
	Vertices VertexBuffer
	Indices  IndexBuffer
}

type point struct {
	v      shader.VSOut
	culled bool
}

type line struct {
	v      [2]shader.VSOut
	culled bool
}

type triangle struct {
	v      [3]shader.VSOut
	culled bool
}

func (t *triangle) reverseOrder() { t.v[0], t.v[1] = t.v[1], t.v[0] }

type fragment struct {
	color     linear.V4
	x, y      int
	depth     float32
	invW      float32
	discarded bool
}

// Device runs the rasterizer pipeline against a shader.Program and a
// set of rstate.States.
type Device struct {
	States   rstate.States
	Uniforms *shader.Uniforms

	program *shader.Program

	vsoutBuf    []shader.VSOut
	pointBuf    []point
	lineBuf     []line
	triangleBuf []triangle
	fsinBuf     []shader.FSIn
	fragmentBuf []fragment
}

// New creates a Device with default render states and an empty
// uniform store.
func New() *Device {
	return &Device{
		States:   rstate.Default(),
		Uniforms: shader.NewUniforms(),
	}
}

// SetProgram binds the shader program used by subsequent Draw calls.
func (d *Device) SetProgram(p *shader.Program) error {
	if p == nil || p.Vertex == nil || p.Fragment == nil {
		return errors.New(prefix + "program must have a vertex and fragment shader")
	}
	if p.VaryingNum > shader.MaxVaryings {
		return errors.New(prefix + "varying count exceeds shader.MaxVaryings")
	}
	d.program = p
	return nil
}

// Program returns the currently bound shader program, or nil.
func (d *Device) Program() *shader.Program { return d.program }

// Draw runs the full pipeline for va against target, using the
// currently bound program and render states.
func (d *Device) Draw(target *fb.Framebuffer, va VertexArray) error {
	if d.program == nil {
		return errors.New(prefix + "no shader program bound")
	}
	if d.States.DepthTest && d.States.EarlyZTest && target.DepthFormat() == fb.DepthNone {
		return errors.New(prefix + "early-Z test needs a depth plane")
	}

	indices := va.Indices
	if len(indices) == 0 && len(va.Vertices) > 0 {
		indices = make(IndexBuffer, len(va.Vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if d.States.Viewport.W == 0 {
		d.States.Viewport.W = target.Width()
		d.States.Viewport.H = target.Height()
	}

	d.clearBuffers()
	d.runVertexShader(va.Vertices)

	switch d.States.PrimitiveMode {
	case rstate.Points:
		d.assemblePoints(indices)
		d.clipPoints()
		d.toViewport()
		d.rasterizePoints()
	case rstate.Lines, rstate.LineStrip, rstate.LineLoop:
		d.assembleLines(indices)
		d.clipLines()
		d.toViewport()
		d.rasterizeLines()
	case rstate.Triangles, rstate.TriangleStrip, rstate.TriangleFan, rstate.Quads:
		d.assembleTriangles(indices)
		d.clipTriangles()
		d.toViewport()
		d.faceCulling()
		d.rasterizeTriangles()
	}

	d.earlyZTest(target)
	d.runFragmentShader()
	d.fragmentTest(target)
	d.postProcessing(target)

	return nil
}

func (d *Device) clearBuffers() {
	d.vsoutBuf = d.vsoutBuf[:0]
	d.pointBuf = d.pointBuf[:0]
	d.lineBuf = d.lineBuf[:0]
	d.triangleBuf = d.triangleBuf[:0]
	d.fsinBuf = d.fsinBuf[:0]
	d.fragmentBuf = d.fragmentBuf[:0]
}

func (d *Device) runVertexShader(vertices VertexBuffer) {
	ctx := shader.NewContext(d.Uniforms)
	vs := d.program.Vertex
	vs.LoadUniforms(ctx)
	for i := range vertices {
		var out shader.VSOut
		vs.Run(ctx, &vertices[i], &out)
		d.vsoutBuf = append(d.vsoutBuf, out)
	}
}

func (d *Device) addPoint(i uint32) {
	d.pointBuf = append(d.pointBuf, point{v: d.vsoutBuf[i]})
}

func (d *Device) addLine(i, j uint32) {
	d.lineBuf = append(d.lineBuf, line{v: [2]shader.VSOut{d.vsoutBuf[i], d.vsoutBuf[j]}})
}

func (d *Device) addTriangle(i, j, k uint32) {
	d.triangleBuf = append(d.triangleBuf, triangle{v: [3]shader.VSOut{d.vsoutBuf[i], d.vsoutBuf[j], d.vsoutBuf[k]}})
}

func (d *Device) assemblePoints(indices IndexBuffer) {
	for _, i := range indices {
		d.addPoint(i)
	}
}

func (d *Device) assembleLines(indices IndexBuffer) {
	switch d.States.PrimitiveMode {
	case rstate.Lines:
		for i := 0; i+1 < len(indices); i += 2 {
			d.addLine(indices[i], indices[i+1])
		}
	case rstate.LineStrip:
		if len(indices) >= 2 {
			d.addLine(indices[0], indices[1])
		}
		for i := 2; i < len(indices); i++ {
			d.addLine(indices[i-1], indices[i])
		}
	case rstate.LineLoop:
		n := len(indices)
		for i := 0; i < n; i++ {
			d.addLine(indices[i], indices[(i+1)%n])
		}
	}
}

func (d *Device) assembleTriangles(indices IndexBuffer) {
	switch d.States.PrimitiveMode {
	case rstate.Triangles:
		for i := 0; i+2 < len(indices); i += 3 {
			d.addTriangle(indices[i], indices[i+1], indices[i+2])
		}
	case rstate.TriangleStrip:
		if len(indices) >= 3 {
			d.addTriangle(indices[0], indices[1], indices[2])
		}
		for i := 3; i < len(indices); i++ {
			d.addTriangle(indices[i-2], indices[i-1], indices[i])
			if i&1 != 0 {
				d.triangleBuf[len(d.triangleBuf)-1].reverseOrder()
			}
		}
	case rstate.TriangleFan:
		// The original source bounded this loop by i+1 < len(indices),
		// which reads indices[i+2] one past the end on the final
		// iteration; the bound here is i+2 < len(indices).
		for i := 0; i+2 < len(indices); i++ {
			d.addTriangle(indices[0], indices[i+1], indices[i+2])
		}
	case rstate.Quads:
		for i := 0; i+3 < len(indices); i += 4 {
			d.addTriangle(indices[i], indices[i+1], indices[i+2])
			d.addTriangle(indices[i], indices[i+2], indices[i+3])
		}
	}
}

func (d *Device) clipPoints() {
	for i := range d.pointBuf {
		p := &d.pointBuf[i].v.Position
		w := p[3]
		if p[0] <= -w || p[0] >= w || p[1] <= -w || p[1] >= w || p[2] <= 0 || p[2] >= w {
			d.pointBuf[i].culled = true
		}
	}
}

// clipPlane identifies one of the six homogeneous clip planes.
type clipPlane int

const (
	clipLeft clipPlane = iota
	clipRight
	clipBottom
	clipTop
	clipNear
	clipFar
)

// checkInClipPlane reports whether p lies on the inside of plane.
func checkInClipPlane(p *linear.V4, plane clipPlane) bool {
	switch plane {
	case clipLeft:
		return p[0] >= -p[3]
	case clipRight:
		return p[0] <= p[3]
	case clipBottom:
		return p[1] >= -p[3]
	case clipTop:
		return p[1] <= p[3]
	case clipNear:
		if p[3] > 0 {
			return p[2] >= linear.Epsilon
		}
		return p[2] <= linear.Epsilon
	case clipFar:
		if p[3] > 0 {
			return p[2] <= p[3]
		}
		return p[2] >= p[3]
	default:
		return false
	}
}

// clipInterpolationRatio returns the parameter t such that lerp(a, b,
// t) lies exactly on plane.
func clipInterpolationRatio(a, b *linear.V4, plane clipPlane) float32 {
	switch plane {
	case clipLeft:
		return (a[0] + a[3]) / (a[0] + a[3] - b[0] - b[3])
	case clipRight:
		return (a[0] - a[3]) / (a[0] - a[3] - b[0] + b[3])
	case clipBottom:
		return (a[1] + a[3]) / (a[1] + a[3] - b[1] - b[3])
	case clipTop:
		return (a[1] - a[3]) / (a[1] - a[3] - b[1] + b[3])
	case clipNear:
		return (a[2] - linear.Epsilon) / (a[2] - b[2])
	case clipFar:
		return (a[2] - a[3]) / (a[2] - a[3] - b[2] + b[3])
	default:
		return 0
	}
}

func (d *Device) interpolateVSOut(a, b *shader.VSOut, t float32) shader.VSOut {
	var c shader.VSOut
	c.Position.Lerp(&a.Position, &b.Position, t)
	for i := 0; i < d.program.VaryingNum; i++ {
		c.Varying[i].Lerp(&a.Varying[i], &b.Varying[i], t)
	}
	return c
}

func (d *Device) interpolateVSOut3(a, b, c *shader.VSOut, t0, t1, t2 float32) shader.VSOut {
	var out shader.VSOut
	out.Position.Combine3(&a.Position, &b.Position, &c.Position, t0, t1, t2)
	for i := 0; i < d.program.VaryingNum; i++ {
		out.Varying[i].Combine3(&a.Varying[i], &b.Varying[i], &c.Varying[i], t0, t1, t2)
	}
	return out
}

func (d *Device) clipLines() {
	for _, plane := range [...]clipPlane{clipLeft, clipRight, clipBottom, clipTop, clipNear, clipFar} {
		d.clipLinesByPlane(plane)
	}
}

func (d *Device) clipLinesByPlane(plane clipPlane) {
	n := len(d.lineBuf)
	for i := 0; i < n; i++ {
		l := &d.lineBuf[i]
		if l.culled {
			continue
		}
		var in [2]bool
		in[0] = checkInClipPlane(&l.v[0].Position, plane)
		in[1] = checkInClipPlane(&l.v[1].Position, plane)

		if !in[0] && !in[1] {
			l.culled = true
		} else if in[0] != in[1] {
			l.culled = true
			t := clipInterpolationRatio(&l.v[0].Position, &l.v[1].Position, plane)
			v := d.interpolateVSOut(&l.v[0], &l.v[1], t)
			if in[0] {
				d.lineBuf = append(d.lineBuf, line{v: [2]shader.VSOut{l.v[0], v}})
			} else {
				d.lineBuf = append(d.lineBuf, line{v: [2]shader.VSOut{v, l.v[1]}})
			}
		}
	}
}

func (d *Device) clipTriangles() {
	for _, plane := range [...]clipPlane{clipLeft, clipRight, clipBottom, clipTop, clipNear, clipFar} {
		d.clipTrianglesByPlane(plane)
	}
}

func (d *Device) clipTrianglesByPlane(plane clipPlane) {
	n := len(d.triangleBuf)
	for i := 0; i < n; i++ {
		tri := &d.triangleBuf[i]
		if tri.culled {
			continue
		}
		v := &tri.v

		var in, out [3]int
		var inCnt, outCnt int
		for j := 0; j < 3; j++ {
			if checkInClipPlane(&v[j].Position, plane) {
				in[inCnt] = j
				inCnt++
			} else {
				out[outCnt] = j
				outCnt++
			}
		}

		switch outCnt {
		case 3:
			tri.culled = true
		case 2:
			tri.culled = true
			t0 := clipInterpolationRatio(&v[in[0]].Position, &v[out[0]].Position, plane)
			t1 := clipInterpolationRatio(&v[in[0]].Position, &v[out[1]].Position, plane)
			v0 := d.interpolateVSOut(&v[in[0]], &v[out[0]], t0)
			v1 := d.interpolateVSOut(&v[in[0]], &v[out[1]], t1)
			if plane == clipNear {
				// Place the new vertices exactly on the near plane, so
				// float rounding cannot leave them just outside it.
				v0.Position[2], v1.Position[2] = linear.Epsilon, linear.Epsilon
			}

			nt := triangle{v: [3]shader.VSOut{d.triangleBuf[i].v[in[0]], v0, v1}}
			if in[0] == 1 {
				nt.reverseOrder()
			}
			d.triangleBuf = append(d.triangleBuf, nt)
		case 1:
			tri.culled = true
			t0 := clipInterpolationRatio(&v[in[0]].Position, &v[out[0]].Position, plane)
			t1 := clipInterpolationRatio(&v[in[1]].Position, &v[out[0]].Position, plane)
			v0 := d.interpolateVSOut(&v[in[0]], &v[out[0]], t0)
			v1 := d.interpolateVSOut(&v[in[1]], &v[out[0]], t1)
			if plane == clipNear {
				v0.Position[2], v1.Position[2] = linear.Epsilon, linear.Epsilon
			}

			nt0 := triangle{v: [3]shader.VSOut{d.triangleBuf[i].v[in[0]], d.triangleBuf[i].v[in[1]], v0}}
			nt1 := triangle{v: [3]shader.VSOut{d.triangleBuf[i].v[in[1]], v1, v0}}
			if out[0] == 1 {
				nt0.reverseOrder()
				nt1.reverseOrder()
			}
			d.triangleBuf = append(d.triangleBuf, nt0, nt1)
		}
	}
}

func (d *Device) faceCulling() {
	if d.States.CullFaceMode == rstate.CullNone {
		return
	}
	order := d.States.FrontVertexOrder
	if d.States.CullFaceMode == rstate.CullBack {
		if order == rstate.Clockwise {
			order = rstate.CounterClockwise
		} else {
			order = rstate.Clockwise
		}
	}
	for i := range d.triangleBuf {
		tri := &d.triangleBuf[i]
		if tri.culled {
			continue
		}
		v0, v1, v2 := &tri.v[0].Position, &tri.v[1].Position, &tri.v[2].Position
		d1x, d1y := v1[0]-v0[0], v1[1]-v0[1]
		d2x, d2y := v2[0]-v1[0], v2[1]-v1[1]
		s := d1x*d2y - d1y*d2x
		if (order == rstate.Clockwise && s < 0) || (order == rstate.CounterClockwise && s > 0) {
			tri.culled = true
		}
	}
}

func (d *Device) vsoutToViewport(v *shader.VSOut) {
	for i := 0; i < d.program.VaryingNum; i++ {
		v.Varying[i].Scale(1/v.Position[3], &v.Varying[i])
	}
	invW := 1 / v.Position[3]
	v.Position[0] *= invW
	v.Position[1] *= invW
	v.Position[2] *= invW
	v.Position[3] = invW

	vp := &d.States.Viewport
	v.Position[0] = (v.Position[0] + 1) * float32(vp.W) * 0.5
	v.Position[1] = (v.Position[1] + 1) * float32(vp.H) * 0.5
	if d.States.ApplyViewportOffset {
		v.Position[0] += float32(vp.X)
		v.Position[1] += float32(vp.Y)
	}
}

func (d *Device) toViewport() {
	for i := range d.pointBuf {
		d.vsoutToViewport(&d.pointBuf[i].v)
	}
	for i := range d.lineBuf {
		d.vsoutToViewport(&d.lineBuf[i].v[0])
		d.vsoutToViewport(&d.lineBuf[i].v[1])
	}
	for i := range d.triangleBuf {
		d.vsoutToViewport(&d.triangleBuf[i].v[0])
		d.vsoutToViewport(&d.triangleBuf[i].v[1])
		d.vsoutToViewport(&d.triangleBuf[i].v[2])
	}
}

func (d *Device) pushFragment(v *shader.VSOut, x, y int) {
	var in shader.FSIn
	copy(in.Varying[:d.program.VaryingNum], v.Varying[:d.program.VaryingNum])
	d.fsinBuf = append(d.fsinBuf, in)
	d.fragmentBuf = append(d.fragmentBuf, fragment{
		x:     x,
		y:     y,
		depth: v.Position[2],
		invW:  v.Position[3],
	})
}

func (d *Device) drawPoint(v *shader.VSOut) {
	size := d.States.PointSize
	sx := int(math32.Ceil(v.Position[0] - size*0.5))
	tx := int(math32.Floor(v.Position[0] + size*0.5))
	sy := int(math32.Ceil(v.Position[1] - size*0.5))
	ty := int(math32.Floor(v.Position[1] + size*0.5))

	for x := sx; x <= tx; x++ {
		for y := sy; y <= ty; y++ {
			if d.States.PointStyle == rstate.Circle {
				dx := float32(x) + 0.5 - v.Position[0]
				dy := float32(y) + 0.5 - v.Position[1]
				if dx*dx+dy*dy > size*size*0.25 {
					continue
				}
			}
			d.pushFragment(v, x, y)
		}
	}
}

func (d *Device) drawLine(vs, vt *shader.VSOut) {
	sx := int(math32.Floor(vs.Position[0]))
	tx := int(math32.Floor(vt.Position[0]))
	sy := int(math32.Floor(vs.Position[1]))
	ty := int(math32.Floor(vt.Position[1]))

	steep := abs(ty-sy) > abs(tx-sx)
	if steep {
		sx, sy = sy, sx
		tx, ty = ty, tx
	}
	reverse := sx > tx
	if reverse {
		sx, tx = tx, sx
		sy, ty = ty, sy
	}

	dx := tx - sx
	dy := abs(ty - sy)
	errAcc := dx / 2
	stepY := 1
	if ty < sy {
		stepY = -1
	}

	y := sy
	for x := sx; x <= tx; x++ {
		t := float32(x-sx) / float32(tx-sx)
		if reverse {
			t = 1 - t
		}
		v := d.interpolateVSOut(vs, vt, t)

		fx, fy := x, y
		if steep {
			fx, fy = fy, fx
		}
		d.pushFragment(&v, fx, fy)

		errAcc -= dy
		if errAcc < 0 {
			y += stepY
			errAcc += dx
		}
	}
}

func (d *Device) drawTriangle(v0, v1, v2 *shader.VSOut) {
	p0 := linear.V2{v0.Position[0], v0.Position[1]}
	p1 := linear.V2{v1.Position[0], v1.Position[1]}
	p2 := linear.V2{v2.Position[0], v2.Position[1]}

	sx := int(math32.Floor(minF(p0[0], p1[0], p2[0])))
	tx := int(math32.Floor(maxF(p0[0], p1[0], p2[0])))
	sy := int(math32.Floor(minF(p0[1], p1[1], p2[1])))
	ty := int(math32.Floor(maxF(p0[1], p1[1], p2[1])))

	s := linear.Area(p0, p1, p2)
	for y := sy; y <= ty; y++ {
		for x := sx; x <= tx; x++ {
			pt := linear.V2{float32(x) + 0.5, float32(y) + 0.5}
			t0 := linear.Area(pt, p1, p2) / s
			t1 := linear.Area(pt, p2, p0) / s
			t2 := linear.Area(pt, p0, p1) / s
			if t0 < 0 || t1 < 0 || t2 < 0 {
				continue
			}
			v := d.interpolateVSOut3(v0, v1, v2, t0, t1, t2)
			d.pushFragment(&v, x, y)
		}
	}
}

func (d *Device) rasterizePoints() {
	for i := range d.pointBuf {
		if d.pointBuf[i].culled {
			continue
		}
		d.drawPoint(&d.pointBuf[i].v)
	}
}

func (d *Device) rasterizeLines() {
	for i := range d.lineBuf {
		l := &d.lineBuf[i]
		if l.culled {
			continue
		}
		if d.States.PolygonMode == rstate.Pointed {
			d.drawPoint(&l.v[0])
			d.drawPoint(&l.v[1])
		} else {
			d.drawLine(&l.v[0], &l.v[1])
		}
	}
}

func (d *Device) rasterizeTriangles() {
	for i := range d.triangleBuf {
		tri := &d.triangleBuf[i]
		if tri.culled {
			continue
		}
		v0, v1, v2 := &tri.v[0], &tri.v[1], &tri.v[2]
		switch d.States.PolygonMode {
		case rstate.Pointed:
			d.drawPoint(v0)
			d.drawPoint(v1)
			d.drawPoint(v2)
		case rstate.Wireframe:
			d.drawLine(v0, v1)
			d.drawLine(v1, v2)
			d.drawLine(v2, v0)
		default:
			d.drawTriangle(v0, v1, v2)
		}
	}
}

func (d *Device) earlyZTest(target *fb.Framebuffer) {
	if !(d.States.DepthTest && d.States.EarlyZTest) {
		return
	}
	w, h := target.Width(), target.Height()
	for i := range d.fragmentBuf {
		f := &d.fragmentBuf[i]
		if f.x < 0 || f.y < 0 || f.x >= w || f.y >= h {
			continue
		}
		if f.depth <= target.GetDepth(f.x, f.y) {
			if d.States.DepthWrite {
				target.SetDepth(f.x, f.y, f.depth)
			}
		} else {
			f.discarded = true
		}
	}
}

func (d *Device) runFragmentShader() {
	for i := range d.fsinBuf {
		invW := d.fragmentBuf[i].invW
		for j := 0; j < d.program.VaryingNum; j++ {
			d.fsinBuf[i].Varying[j].Scale(1/invW, &d.fsinBuf[i].Varying[j])
		}
	}

	ctx := shader.NewContext(d.Uniforms)
	fs := d.program.Fragment
	fs.LoadUniforms(ctx)
	for i := range d.fsinBuf {
		var out shader.FSOut
		fs.Run(ctx, &d.fsinBuf[i], &out)
		d.fragmentBuf[i].color = out.Color
		d.fragmentBuf[i].discarded = d.fragmentBuf[i].discarded || out.Discard
	}
}

func (d *Device) fragmentTest(target *fb.Framebuffer) {
	w, h := target.Width(), target.Height()
	for i := range d.fragmentBuf {
		f := &d.fragmentBuf[i]
		if f.discarded {
			continue
		}
		if f.x < 0 || f.y < 0 || f.x >= w || f.y >= h {
			continue
		}
		if d.States.AlphaTest && f.color[3] < d.States.AlphaTestThreshold {
			continue
		}
		if d.States.DepthTest && !d.States.EarlyZTest {
			if f.depth <= target.GetDepth(f.x, f.y) {
				if d.States.DepthWrite {
					target.SetDepth(f.x, f.y, f.depth)
				}
				if d.States.ColorWrite {
					target.SetColor(f.x, f.y, f.color)
				}
			}
		} else if d.States.ColorWrite {
			target.SetColor(f.x, f.y, f.color)
		}
	}
}

// postProcessing is the full-framebuffer stage Draw runs after the
// fragment test/write-back stage. It is unexported and performs no
// post-processing: it leaves target unchanged.
func (d *Device) postProcessing(target *fb.Framebuffer) {}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func minF(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxF(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
