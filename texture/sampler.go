// Copyright 2026 The swrast Authors. All rights reserved.

package texture

import "github.com/cpurender/swrast/linear"

// Sampler binds an optional Texture to a fragment shader input. A nil
// Texture is valid: Sample then always returns DefaultColor, letting
// a material declare a texture slot it does not populate.
type Sampler struct {
	Texture      *Texture
	DefaultColor linear.Color4
}

// NewSampler creates a Sampler bound to t. t may be nil.
func NewSampler(t *Texture) *Sampler {
	return &Sampler{Texture: t, DefaultColor: linear.Transparent}
}

// Sample reads s.Texture at (u, v), or returns s.DefaultColor if
// s.Texture is nil.
func (s *Sampler) Sample(u, v float32) linear.Color4 {
	if s.Texture == nil {
		return s.DefaultColor
	}
	return s.Texture.Sample(u, v)
}

// SampleUV reads s.Texture at texcoord, or returns s.DefaultColor if
// s.Texture is nil.
func (s *Sampler) SampleUV(texcoord linear.V2) linear.Color4 {
	return s.Sample(texcoord[0], texcoord[1])
}

// Empty reports whether s has no bound Texture.
func (s *Sampler) Empty() bool { return s.Texture == nil }
