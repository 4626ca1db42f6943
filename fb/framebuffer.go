// Copyright 2026 The swrast Authors. All rights reserved.

// Package fb implements the rasterizer's framebuffer: a pair of
// color/depth planes that the pipeline clears, writes into during
// scan conversion, and that a target or exporter later reads back.
package fb

import (
	"errors"

	"github.com/cpurender/swrast/linear"
)

const prefix = "fb: "

// ColorFormat selects the storage of the color plane.
type ColorFormat int

const (
	// LDR8 stores each channel as a clamped byte in [0, 255].
	LDR8 ColorFormat = iota
	// HDRFloat stores each channel as an unclamped float32.
	HDRFloat
)

// DepthFormat selects the storage of the depth plane.
type DepthFormat int

const (
	// DepthNone allocates no depth plane: SetDepth and ClearDepth on a
	// Framebuffer built this way do nothing, and GetDepth returns 0.
	DepthNone DepthFormat = iota
	// Depth32F stores depth as a float32 per pixel.
	Depth32F
)

// Framebuffer holds the color and (optional) depth planes that the
// rasterizer pipeline writes fragments into.
type Framebuffer struct {
	width, height int
	colorFormat   ColorFormat
	depthFormat   DepthFormat

	ldrColor []uint8
	hdrColor []float32
	depth    []float32
}

// New creates a Framebuffer of the given size, color format and depth
// format. width and height must both be at least 1.
func New(width, height int, colorFormat ColorFormat, depthFormat DepthFormat) (*Framebuffer, error) {
	if width < 1 || height < 1 {
		return nil, errors.New(prefix + "invalid size")
	}
	f := &Framebuffer{
		width:       width,
		height:      height,
		colorFormat: colorFormat,
		depthFormat: depthFormat,
	}
	switch colorFormat {
	case LDR8:
		f.ldrColor = make([]uint8, width*height*3)
	case HDRFloat:
		f.hdrColor = make([]float32, width*height*3)
	default:
		return nil, errors.New(prefix + "invalid color format")
	}
	switch depthFormat {
	case DepthNone:
	case Depth32F:
		f.depth = make([]float32, width*height)
	default:
		return nil, errors.New(prefix + "invalid depth format")
	}
	return f, nil
}

// Width returns the framebuffer's width, in pixels.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the framebuffer's height, in pixels.
func (f *Framebuffer) Height() int { return f.height }

// ColorFormat returns f's color plane format.
func (f *Framebuffer) ColorFormat() ColorFormat { return f.colorFormat }

// DepthFormat returns f's depth plane format.
func (f *Framebuffer) DepthFormat() DepthFormat { return f.depthFormat }

// ClearColor sets every pixel of the color plane to color.
func (f *Framebuffer) ClearColor(color linear.Color4) {
	switch f.colorFormat {
	case LDR8:
		r := uint8(linear.Clamp(int(color[0]*255), 0, 255))
		g := uint8(linear.Clamp(int(color[1]*255), 0, 255))
		b := uint8(linear.Clamp(int(color[2]*255), 0, 255))
		for i := 0; i < len(f.ldrColor); i += 3 {
			f.ldrColor[i] = r
			f.ldrColor[i+1] = g
			f.ldrColor[i+2] = b
		}
	case HDRFloat:
		for i := 0; i < len(f.hdrColor); i += 3 {
			f.hdrColor[i] = color[0]
			f.hdrColor[i+1] = color[1]
			f.hdrColor[i+2] = color[2]
		}
	}
}

// ClearDepth sets every pixel of the depth plane to depth. It is a
// no-op if f has no depth plane.
func (f *Framebuffer) ClearDepth(depth float32) {
	for i := range f.depth {
		f.depth[i] = depth
	}
}

// LDRColorData returns the raw LDR8 color plane, or nil if f was not
// created with ColorFormat LDR8.
func (f *Framebuffer) LDRColorData() []uint8 {
	if f.colorFormat != LDR8 {
		return nil
	}
	return f.ldrColor
}

// HDRColorData returns the raw HDRFloat color plane, or nil if f was
// not created with ColorFormat HDRFloat.
func (f *Framebuffer) HDRColorData() []float32 {
	if f.colorFormat != HDRFloat {
		return nil
	}
	return f.hdrColor
}

// DepthData returns the raw depth plane, or nil if f has no depth
// plane.
func (f *Framebuffer) DepthData() []float32 {
	if f.depthFormat != Depth32F {
		return nil
	}
	return f.depth
}

// SetColor writes color at pixel (x, y).
func (f *Framebuffer) SetColor(x, y int, color linear.Color4) {
	i := (y*f.width + x) * 3
	switch f.colorFormat {
	case LDR8:
		f.ldrColor[i] = uint8(linear.Clamp(int(color[0]*255), 0, 255))
		f.ldrColor[i+1] = uint8(linear.Clamp(int(color[1]*255), 0, 255))
		f.ldrColor[i+2] = uint8(linear.Clamp(int(color[2]*255), 0, 255))
	case HDRFloat:
		f.hdrColor[i] = color[0]
		f.hdrColor[i+1] = color[1]
		f.hdrColor[i+2] = color[2]
	}
}

// SetDepth writes depth at pixel (x, y). It is a no-op if f has no
// depth plane.
func (f *Framebuffer) SetDepth(x, y int, depth float32) {
	if f.depthFormat != Depth32F {
		return
	}
	f.depth[x+y*f.width] = depth
}

// GetColor reads the color at pixel (x, y). The alpha channel always
// reads back as 1, matching the original source's framebuffer
// (alpha is not stored).
func (f *Framebuffer) GetColor(x, y int) linear.Color4 {
	i := (y*f.width + x) * 3
	switch f.colorFormat {
	case LDR8:
		return linear.Color4{
			float32(f.ldrColor[i]) / 255,
			float32(f.ldrColor[i+1]) / 255,
			float32(f.ldrColor[i+2]) / 255,
			1,
		}
	case HDRFloat:
		return linear.Color4{f.hdrColor[i], f.hdrColor[i+1], f.hdrColor[i+2], 1}
	default:
		return linear.Color4{}
	}
}

// GetDepth reads the depth at pixel (x, y). It returns 0 if f has no
// depth plane.
func (f *Framebuffer) GetDepth(x, y int) float32 {
	if f.depthFormat != Depth32F {
		return 0
	}
	return f.depth[x+y*f.width]
}
