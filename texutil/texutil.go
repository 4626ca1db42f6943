// Copyright 2026 The swrast Authors. All rights reserved.

// Package texutil generates and post-processes procedural textures
// for use without an on-disk asset: tileable noise, flat-color
// checkerboards composited with github.com/anthonynsimon/bild's blend
// modes, and a box-blur preview filter, for quick material testing and
// placeholder art.
package texutil

import (
	"errors"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/noise"

	"github.com/cpurender/swrast/linear"
	"github.com/cpurender/swrast/texture"
)

const prefix = "texutil: "

// GenerateNoise creates a w x h LDR8 texture filled with monochrome
// uniform noise, grounded on bild's noise.Generate.
func GenerateNoise(w, h int) (*texture.Texture, error) {
	if w < 1 || h < 1 {
		return nil, errors.New(prefix + "invalid size")
	}
	img := noise.Generate(w, h, &noise.Options{
		Monochrome: true,
		NoiseFn:    noise.Uniform,
	})

	t, err := texture.New(w, h, texture.LDR8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float32(img.GrayAt(x, y).Y) / 255
			t.SetColor(x, y, linear.Color4{v, v, v, 1})
		}
	}
	return t, nil
}

// GenerateCheckerboard creates a w x h LDR8 texture tiling a and b in
// cell x cell blocks. The tiles are built as two solid-color layers
// masked by a black/white checker pattern and recombined with
// bild/blend's Multiply and Add modes, rather than written pixel by
// pixel, so the composite goes through the same library the rest of
// texutil uses for image processing.
func GenerateCheckerboard(w, h, cell int, a, b linear.Color4) (*texture.Texture, error) {
	if w < 1 || h < 1 || cell < 1 {
		return nil, errors.New(prefix + "invalid size")
	}

	bounds := image.Rect(0, 0, w, h)
	maskA := image.NewGray(bounds)
	maskB := image.NewGray(bounds)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				maskA.SetGray(x, y, color.Gray{Y: 255})
			} else {
				maskB.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	layerA := solidImage(bounds, a)
	layerB := solidImage(bounds, b)

	maskedA := blend.Multiply(layerA, maskA)
	maskedB := blend.Multiply(layerB, maskB)
	composite := blend.Add(maskedA, maskedB)

	t, err := texture.New(w, h, texture.LDR8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t.SetColor(x, y, colorFromRGBA(composite.RGBAAt(x, y)))
		}
	}
	return t, nil
}

func solidImage(bounds image.Rectangle, c linear.Color4) *image.RGBA {
	img := image.NewRGBA(bounds)
	rgba := color.RGBA{
		R: uint8(clamp01(c[0]) * 255),
		G: uint8(clamp01(c[1]) * 255),
		B: uint8(clamp01(c[2]) * 255),
		A: uint8(clamp01(c[3]) * 255),
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, rgba)
		}
	}
	return img
}

func colorFromRGBA(c color.RGBA) linear.Color4 {
	return linear.Color4{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// BoxBlurPreview returns a box-blurred copy of t, using bild/blur, for
// quickly previewing a texture's low-frequency content (e.g. before
// baking a mip chain).
func BoxBlurPreview(t *texture.Texture, radius float64) (*texture.Texture, error) {
	w, h := t.Width(), t.Height()
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := t.GetColor(x, y)
			src.SetRGBA(x, y, color.RGBA{
				R: uint8(clamp01(c[0]) * 255),
				G: uint8(clamp01(c[1]) * 255),
				B: uint8(clamp01(c[2]) * 255),
				A: uint8(clamp01(c[3]) * 255),
			})
		}
	}
	blurred := blur.Box(src, radius)

	out, err := texture.New(w, h, texture.LDR8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetColor(x, y, colorFromRGBA(blurred.RGBAAt(x, y)))
		}
	}
	return out, nil
}
