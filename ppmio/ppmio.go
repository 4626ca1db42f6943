// Copyright 2026 The swrast Authors. All rights reserved.

// Package ppmio exports a framebuffer's color plane as a plain-text
// PPM (P3) image, the same format the original source wrote for quick
// inspection without an external image library.
package ppmio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cpurender/swrast/fb"
	"github.com/cpurender/swrast/target"
)

// Target is a render target preconfigured the way the original
// source's RenderPpm always was: an LDR color plane and no depth
// plane, since a PPM has no room for either HDR color or depth.
type Target struct {
	*target.Target
}

// New creates a Target of the given dimensions, ready to draw into
// and then Save.
func New(width, height int) (*Target, error) {
	t, err := target.New(width, height, fb.LDR8, fb.DepthNone)
	if err != nil {
		return nil, err
	}
	return &Target{Target: t}, nil
}

// Save writes t's color plane to w as a P3 (ASCII) PPM image.
func (t *Target) Save(w io.Writer) error {
	return Save(w, t.Framebuffer)
}

// Save writes f's color plane to w as a P3 (ASCII) PPM image.
func Save(w io.Writer, f *fb.Framebuffer) error {
	bw := bufio.NewWriter(w)

	width, height := f.Width(), f.Height()
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return err
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := f.GetColor(x, y)
			r := int(c[0] * 255)
			g := int(c[1] * 255)
			b := int(c[2] * 255)
			if _, err := fmt.Fprintf(bw, "%d %d %d ", r, g, b); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
