// Copyright 2026 The swrast Authors. All rights reserved.

package raster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpurender/swrast/fb"
	"github.com/cpurender/swrast/linear"
	"github.com/cpurender/swrast/rstate"
	"github.com/cpurender/swrast/shader"
)

// S1 — single flat-colored triangle on a 4x4 viewport.
func TestScenarioSingleTriangleFlatColor(t *testing.T) {
	d := New()
	require.NoError(t, d.SetProgram(&shader.Program{Vertex: passthroughVS{}, Fragment: colorFS{}, VaryingNum: 1}))
	target, err := fb.New(4, 4, fb.LDR8, fb.DepthNone)
	require.NoError(t, err)
	d.States.Viewport = rstate.Viewport{W: 4, H: 4}
	d.States.AlphaTest = false

	red := linear.Color4{1, 0, 0, 1}
	va := VertexArray{
		Vertices: VertexBuffer{
			{Attributes: [5]linear.V4{{-1, -1, 0.5, 1}, red}},
			{Attributes: [5]linear.V4{{1, -1, 0.5, 1}, red}},
			{Attributes: [5]linear.V4{{0, 1, 0.5, 1}, red}},
		},
	}
	require.NoError(t, d.Draw(target, va))

	center := target.GetColor(2, 1)
	require.GreaterOrEqual(t, center[0], float32(0.9), "center pixel should be red")

	corner := target.GetColor(0, 3)
	require.Less(t, corner[0], float32(0.1), "far corner should be clear color")
}

// S2 — two overlapping triangles with depth test, nearer wins regardless of
// draw order.
func TestScenarioTwoTrianglesDepthTest(t *testing.T) {
	run := func(firstRed bool) linear.Color4 {
		d := New()
		require.NoError(t, d.SetProgram(&shader.Program{Vertex: passthroughVS{}, Fragment: colorFS{}, VaryingNum: 1}))
		target, err := fb.New(2, 2, fb.LDR8, fb.Depth32F)
		require.NoError(t, err)
		target.ClearDepth(3.4e38)
		d.States.Viewport = rstate.Viewport{W: 2, H: 2}
		d.States.AlphaTest = false
		d.States.DepthTest = true
		d.States.DepthWrite = true

		red := linear.Color4{1, 0, 0, 1}
		green := linear.Color4{0, 1, 0, 1}

		near := VertexArray{Vertices: VertexBuffer{
			{Attributes: [5]linear.V4{{-2, -2, 0.1, 1}, red}},
			{Attributes: [5]linear.V4{{2, -2, 0.1, 1}, red}},
			{Attributes: [5]linear.V4{{0, 2, 0.1, 1}, red}},
		}}
		far := VertexArray{Vertices: VertexBuffer{
			{Attributes: [5]linear.V4{{-2, -2, 0.5, 1}, green}},
			{Attributes: [5]linear.V4{{2, -2, 0.5, 1}, green}},
			{Attributes: [5]linear.V4{{0, 2, 0.5, 1}, green}},
		}}

		if firstRed {
			require.NoError(t, d.Draw(target, near))
			require.NoError(t, d.Draw(target, far))
		} else {
			require.NoError(t, d.Draw(target, far))
			require.NoError(t, d.Draw(target, near))
		}
		return target.GetColor(1, 1)
	}

	redFirst := run(true)
	greenFirst := run(false)

	require.GreaterOrEqual(t, redFirst[0], float32(0.9), "nearer triangle should win when drawn first")
	require.GreaterOrEqual(t, greenFirst[0], float32(0.9), "nearer triangle should win regardless of draw order")
}

// S4 — clipping a triangle against the near plane with one vertex outside.
func TestScenarioNearPlaneClip(t *testing.T) {
	d := New()
	require.NoError(t, d.SetProgram(&shader.Program{Vertex: passthroughVS{}, Fragment: colorFS{}, VaryingNum: 1}))
	white := linear.Color4{1, 1, 1, 1}

	d.clearBuffers()
	d.vsoutBuf = []shader.VSOut{
		{Position: linear.V4{-0.3, -0.3, -0.5, 1}, Varying: [5]linear.V4{white}},
		{Position: linear.V4{0.3, -0.3, 0.5, 1}, Varying: [5]linear.V4{white}},
		{Position: linear.V4{0, 0.3, 0.5, 1}, Varying: [5]linear.V4{white}},
	}
	d.triangleBuf = []triangle{{v: [3]shader.VSOut{d.vsoutBuf[0], d.vsoutBuf[1], d.vsoutBuf[2]}}}
	d.clipTriangles()

	var kept int
	for _, tri := range d.triangleBuf {
		if tri.culled {
			continue
		}
		kept++
		for _, v := range tri.v {
			require.True(t, checkInClipPlane(&v.Position, clipNear), "clipped vertex must satisfy the NEAR predicate")
		}
	}
	require.Equal(t, 2, kept, "one vertex outside the near plane splits the triangle into the quad's two triangles")
}

// S6 — alpha test discards or keeps fragments depending on the threshold.
func TestScenarioAlphaTest(t *testing.T) {
	run := func(threshold float32) linear.Color4 {
		d := New()
		require.NoError(t, d.SetProgram(&shader.Program{Vertex: passthroughVS{}, Fragment: colorFS{}, VaryingNum: 1}))
		target, err := fb.New(2, 2, fb.LDR8, fb.DepthNone)
		require.NoError(t, err)
		d.States.Viewport = rstate.Viewport{W: 2, H: 2}
		d.States.AlphaTest = true
		d.States.AlphaTestThreshold = threshold

		translucentRed := linear.Color4{1, 0, 0, 0.4}
		va := VertexArray{Vertices: VertexBuffer{
			{Attributes: [5]linear.V4{{-2, -2, 0.5, 1}, translucentRed}},
			{Attributes: [5]linear.V4{{2, -2, 0.5, 1}, translucentRed}},
			{Attributes: [5]linear.V4{{0, 2, 0.5, 1}, translucentRed}},
		}}
		require.NoError(t, d.Draw(target, va))
		return target.GetColor(1, 1)
	}

	require.Less(t, run(0.5)[0], float32(0.1), "threshold above alpha must discard the fragment")
	require.GreaterOrEqual(t, run(0.3)[0], float32(0.9), "threshold below alpha must keep the fragment")
}

// I1 — identity projection maps NDC corners and center to the matching
// viewport pixels.
func TestInvariantIdentityProjectionRoundTrip(t *testing.T) {
	d := New()
	require.NoError(t, d.SetProgram(&shader.Program{Vertex: passthroughVS{}, Fragment: colorFS{}, VaryingNum: 1}))
	white := linear.Color4{1, 1, 1, 1}

	d.States.Viewport = rstate.Viewport{W: 8, H: 6}

	center := shader.VSOut{Position: linear.V4{0, 0, 0, 1}, Varying: [5]linear.V4{white}}
	d.vsoutToViewport(&center)
	require.InDelta(t, 4, center.Position[0], 0.001)
	require.InDelta(t, 3, center.Position[1], 0.001)

	corners := []linear.V4{
		{-1, -1, 0, 1}, {1, -1, 0, 1}, {-1, 1, 0, 1}, {1, 1, 0, 1},
	}
	want := [][2]float32{{0, 0}, {8, 0}, {0, 6}, {8, 6}}
	for i, c := range corners {
		v := shader.VSOut{Position: c, Varying: [5]linear.V4{white}}
		d.vsoutToViewport(&v)
		require.InDelta(t, want[i][0], v.Position[0], 0.001)
		require.InDelta(t, want[i][1], v.Position[1], 0.001)
	}
}

// I5 — flipping winding order together with the cull face mode yields the
// same image.
func TestInvariantBackFaceCullingSymmetry(t *testing.T) {
	render := func(reverseWinding bool, cullMode rstate.CullFaceMode) linear.Color4 {
		d := New()
		require.NoError(t, d.SetProgram(&shader.Program{Vertex: passthroughVS{}, Fragment: colorFS{}, VaryingNum: 1}))
		target, err := fb.New(4, 4, fb.LDR8, fb.DepthNone)
		require.NoError(t, err)
		d.States.Viewport = rstate.Viewport{W: 4, H: 4}
		d.States.AlphaTest = false
		d.States.CullFaceMode = cullMode

		red := linear.Color4{1, 0, 0, 1}
		v0 := [5]linear.V4{{-1, -1, 0.5, 1}, red}
		v1 := [5]linear.V4{{1, -1, 0.5, 1}, red}
		v2 := [5]linear.V4{{0, 1, 0.5, 1}, red}

		var va VertexArray
		if reverseWinding {
			va = VertexArray{Vertices: VertexBuffer{{Attributes: v0}, {Attributes: v2}, {Attributes: v1}}}
		} else {
			va = VertexArray{Vertices: VertexBuffer{{Attributes: v0}, {Attributes: v1}, {Attributes: v2}}}
		}
		require.NoError(t, d.Draw(target, va))
		return target.GetColor(2, 1)
	}

	ccwCullBack := render(false, rstate.CullBack)
	cwCullFront := render(true, rstate.CullFront)

	require.Equal(t, ccwCullBack, cwCullFront, "flipping winding and cull mode together must reproduce the same image")
	require.GreaterOrEqual(t, ccwCullBack[0], float32(0.9), "the front-facing triangle must still be drawn")
}
