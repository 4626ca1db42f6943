// Copyright 2026 The swrast Authors. All rights reserved.

// Package texture implements the CPU-side image sampled by fragment
// shaders: a 4-channel color buffer plus the wrap and filter modes
// used to resolve a sample outside [0, 1) UV space.
package texture

import (
	"bufio"
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/chewxy/math32"

	"github.com/cpurender/swrast/linear"
)

const prefix = "texture: "

// ColorFormat selects the storage of a Texture's color buffer.
type ColorFormat int

const (
	// LDR8 stores each channel as a byte in [0, 255].
	LDR8 ColorFormat = iota
	// HDRFloat stores each channel as an unclamped float32.
	HDRFloat
)

// SampleMode selects the filter used by Texture.Sample.
type SampleMode int

const (
	Nearest SampleMode = iota
	Bilinear
	Bicubic
)

// WrapMode selects how Texture.GetColor resolves out-of-range
// coordinates.
type WrapMode int

const (
	Repeat WrapMode = iota
	MirroredRepeat
	ClampToEdge
	ClampToBorder
)

// Texture is a 2D image with per-texture wrap and sample modes.
type Texture struct {
	SampleMode SampleMode
	WrapMode   WrapMode

	width, height int
	format        ColorFormat
	ldr           []uint8
	hdr           []float32
}

// New creates a w x h texture with the given color format. Both
// dimensions must be at least 1.
func New(w, h int, format ColorFormat) (*Texture, error) {
	if w < 1 || h < 1 {
		return nil, errors.New(prefix + "invalid size")
	}
	t := &Texture{width: w, height: h, format: format}
	switch format {
	case LDR8:
		t.ldr = make([]uint8, w*h*4)
	case HDRFloat:
		t.hdr = make([]float32, w*h*4)
	default:
		return nil, errors.New(prefix + "invalid color format")
	}
	return t, nil
}

// Load decodes an image (any format registered with the standard
// image package, or via a blank import of golang.org/x/image/...)
// into a new LDR8 Texture. If flip is true, the image is flipped
// vertically on load, matching stb_image's flip-on-load convention.
func Load(r io.Reader, flip bool) (*Texture, error) {
	img, _, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, errors.New(prefix + "decode: " + err.Error())
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t, err := New(w, h, LDR8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		sy := y
		if flip {
			sy = h - 1 - y
		}
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+sy).RGBA()
			i := (y*w + x) * 4
			t.ldr[i] = uint8(r >> 8)
			t.ldr[i+1] = uint8(g >> 8)
			t.ldr[i+2] = uint8(bl >> 8)
			t.ldr[i+3] = uint8(a >> 8)
		}
	}
	return t, nil
}

// Save encodes t as a PNG. It returns an error if t's color format is
// not LDR8.
func (t *Texture) Save(w io.Writer) error {
	if t.format != LDR8 {
		return errors.New(prefix + "save: only LDR8 textures can be saved")
	}
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	copy(img.Pix, t.ldr)
	return png.Encode(w, img)
}

// Width returns t's width, in texels.
func (t *Texture) Width() int { return t.width }

// Height returns t's height, in texels.
func (t *Texture) Height() int { return t.height }

// ColorFormat returns t's color format.
func (t *Texture) ColorFormat() ColorFormat { return t.format }

// SetColor writes color at texel (x, y). x and y must be in range.
func (t *Texture) SetColor(x, y int, color linear.Color4) {
	i := (y*t.width + x) * 4
	switch t.format {
	case LDR8:
		t.ldr[i] = uint8(linear.Clamp(int(color[0]*255), 0, 255))
		t.ldr[i+1] = uint8(linear.Clamp(int(color[1]*255), 0, 255))
		t.ldr[i+2] = uint8(linear.Clamp(int(color[2]*255), 0, 255))
		t.ldr[i+3] = uint8(linear.Clamp(int(color[3]*255), 0, 255))
	case HDRFloat:
		t.hdr[i] = color[0]
		t.hdr[i+1] = color[1]
		t.hdr[i+2] = color[2]
		t.hdr[i+3] = color[3]
	}
}

// GetColor reads the texel nearest to (x, y), resolving out-of-range
// coordinates per t.WrapMode.
func (t *Texture) GetColor(x, y int) linear.Color4 {
	if t.width == 0 || t.height == 0 {
		return linear.Transparent
	}
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		w, h := t.width, t.height
		switch t.WrapMode {
		case Repeat:
			x = (x%w + w) % w
			y = (y%h + h) % h
		case MirroredRepeat:
			x = (x%(w*2) + w*2) % (w * 2)
			y = (y%(h*2) + h*2) % (h * 2)
			if x >= w {
				x = 2*w - x - 1
			}
			if y >= h {
				y = 2*h - y - 1
			}
		case ClampToEdge:
			x = linear.Clamp(x, 0, w-1)
			y = linear.Clamp(y, 0, h-1)
		case ClampToBorder:
			return linear.Transparent
		}
	}
	i := (y*t.width + x) * 4
	switch t.format {
	case LDR8:
		return linear.Color4{
			float32(t.ldr[i]) / 255,
			float32(t.ldr[i+1]) / 255,
			float32(t.ldr[i+2]) / 255,
			float32(t.ldr[i+3]) / 255,
		}
	case HDRFloat:
		return linear.Color4{t.hdr[i], t.hdr[i+1], t.hdr[i+2], t.hdr[i+3]}
	default:
		return linear.Color4{}
	}
}

// Sample reads a color at normalized coordinates (u, v) in [0, 1),
// filtered per t.SampleMode.
func (t *Texture) Sample(u, v float32) linear.Color4 {
	x := u * float32(t.width)
	y := v * float32(t.height)

	switch t.SampleMode {
	case Bilinear:
		lbx := int(math32.Floor(x - 0.5))
		lby := int(math32.Floor(y - 0.5))
		tx := x - (float32(lbx) + 0.5)
		ty := y - (float32(lby) + 0.5)
		c0 := lerpColor(t.GetColor(lbx, lby), t.GetColor(lbx+1, lby), tx)
		c1 := lerpColor(t.GetColor(lbx, lby+1), t.GetColor(lbx+1, lby+1), tx)
		return lerpColor(c0, c1, ty)
	case Bicubic:
		lbx := int(math32.Floor(x - 0.5))
		lby := int(math32.Floor(y - 0.5))
		tx := x - (float32(lbx) + 0.5)
		ty := y - (float32(lby) + 0.5)
		wx := catmullRomWeights(tx)
		wy := catmullRomWeights(ty)
		var cx [4]linear.Color4
		for i := 0; i < 4; i++ {
			var c linear.Color4
			for j := 0; j < 4; j++ {
				s := t.GetColor(lbx+j-1, lby+i-1)
				c[0] += s[0] * wx[j]
				c[1] += s[1] * wx[j]
				c[2] += s[2] * wx[j]
				c[3] += s[3] * wx[j]
			}
			cx[i] = c
		}
		var cy linear.Color4
		for i := 0; i < 4; i++ {
			cy[0] += cx[i][0] * wy[i]
			cy[1] += cx[i][1] * wy[i]
			cy[2] += cx[i][2] * wy[i]
			cy[3] += cx[i][3] * wy[i]
		}
		return cy
	default: // Nearest
		return t.GetColor(int(math32.Floor(x)), int(math32.Floor(y)))
	}
}

func lerpColor(a, b linear.Color4, t float32) linear.Color4 {
	var c linear.Color4
	c.Lerp(&a, &b, t)
	return c
}

// catmullRomWeights returns the 4 Catmull-Rom cubic interpolation
// weights for fractional offset t, in sample order [-1, 0, 1, 2].
func catmullRomWeights(t float32) [4]float32 {
	return [4]float32{
		0.5 * (-t + 2*t*t - t*t*t),
		0.5 * (2 - 5*t*t + 3*t*t*t),
		0.5 * (t + 4*t*t - 3*t*t*t),
		0.5 * (-t*t + t*t*t),
	}
}
