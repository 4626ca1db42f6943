// Copyright 2026 The swrast Authors. All rights reserved.

// Package imageio widens texture.Load's format support beyond PNG by
// registering the image codecs a modeling tool is likely to export:
// JPEG from the standard library, and BMP/TIFF/WebP from
// golang.org/x/image. Importing this package for its side effect is
// enough to make texture.Load (which calls image.Decode under the
// hood) accept any of these formats; LoadFile is a small convenience
// wrapper for the common case of loading straight from a path.
package imageio

import (
	_ "image/jpeg"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/cpurender/swrast/texture"
)

// LoadFile opens path and decodes it as a texture.Texture. When flip
// is true, scanlines are flipped on load, matching the stb_image-derived
// convention of texture.Load.
func LoadFile(path string, flip bool) (*texture.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return texture.Load(f, flip)
}

// SaveFile encodes t as a PNG and writes it to path, creating or
// truncating the file.
func SaveFile(path string, t *texture.Texture) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
