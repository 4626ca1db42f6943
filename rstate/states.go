// Copyright 2026 The swrast Authors. All rights reserved.

// Package rstate implements the rasterizer's render state block: the
// primitive topology, polygon fill mode, viewport, and the set of
// tests/masks that gate the per-fragment write-back stage.
package rstate

// PrimitiveMode selects how the pipeline assembles vertices into
// points, lines or triangles.
type PrimitiveMode int

const (
	Points PrimitiveMode = iota
	Lines
	LineStrip
	LineLoop
	Triangles
	TriangleStrip
	TriangleFan
	Quads
)

// PolygonMode selects how an assembled triangle is rasterized.
type PolygonMode int

const (
	Pointed PolygonMode = iota
	Wireframe
	Fill
)

// PointStyle selects the shape used to rasterize a wide point.
type PointStyle int

const (
	Rect PointStyle = iota
	Circle
)

// CullFaceMode selects which winding of triangle is discarded by
// back-face culling.
type CullFaceMode int

const (
	CullNone CullFaceMode = iota
	CullFront
	CullBack
)

// FrontVertexOrder selects which winding order is considered
// front-facing.
type FrontVertexOrder int

const (
	CounterClockwise FrontVertexOrder = iota
	Clockwise
)

// Viewport maps NDC coordinates to framebuffer pixels.
type Viewport struct {
	X, Y int
	W, H int
}

// States holds every render state read by the pipeline for a draw.
type States struct {
	PrimitiveMode PrimitiveMode
	PolygonMode   PolygonMode
	Viewport      Viewport

	PointSize  float32
	PointStyle PointStyle

	// ColorWrite enables writing the fragment color to the
	// framebuffer's color plane. The original source expressed this
	// as an inverted "color_mask" flag (true meant "do not write");
	// ColorWrite uses the conventional sense instead.
	ColorWrite bool
	// DepthWrite enables writing the fragment depth to the
	// framebuffer's depth plane, subject to DepthTest. Same polarity
	// fix as ColorWrite.
	DepthWrite bool

	DepthTest          bool
	EarlyZTest         bool
	AlphaTest          bool
	AlphaTestThreshold float32
	CullFaceMode       CullFaceMode
	FrontVertexOrder   FrontVertexOrder

	// ApplyViewportOffset applies Viewport.X/Y when mapping NDC
	// coordinates to framebuffer pixels. The original source computed
	// this mapping but dropped the viewport's origin offset, so a
	// non-zero Viewport.X/Y had no effect; ApplyViewportOffset is on
	// by default, giving Viewport.X/Y their documented meaning.
	ApplyViewportOffset bool
}

// Default returns the pipeline's default render states.
func Default() States {
	return States{
		PrimitiveMode:       Triangles,
		PolygonMode:         Fill,
		Viewport:            Viewport{},
		PointSize:           1,
		PointStyle:          Rect,
		ColorWrite:          true,
		DepthWrite:          true,
		DepthTest:           false,
		EarlyZTest:          false,
		AlphaTest:           true,
		AlphaTestThreshold:  0.5,
		CullFaceMode:        CullNone,
		FrontVertexOrder:    CounterClockwise,
		ApplyViewportOffset: true,
	}
}
