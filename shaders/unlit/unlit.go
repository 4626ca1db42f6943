// Copyright 2026 The swrast Authors. All rights reserved.

// Package unlit implements an unlit, gamma-corrected shader program:
// it samples an ambient and a diffuse texture and takes their
// per-channel maximum with the corresponding flat material colors.
package unlit

import (
	"github.com/chewxy/math32"

	"github.com/cpurender/swrast/linear"
	"github.com/cpurender/swrast/shader"
	"github.com/cpurender/swrast/texture"
)

// Attribute/varying slot layout.
const (
	attrPosition = iota
	attrTexcoord
)

const (
	varyPosition = iota
	varyTexcoord
	// VaryingNum is the number of varying slots Program uses.
	VaryingNum
)

type transform struct {
	model, view, projection, modelview linear.M4
}

// VS is the program's vertex shader.
type VS struct {
	t transform
}

func (vs *VS) LoadUniforms(ctx *shader.Context) {
	vs.t.model, _ = shader.Get(ctx.Uniforms, "transform.model", linear.Identity4())
	vs.t.view, _ = shader.Get(ctx.Uniforms, "transform.view", linear.Identity4())
	vs.t.projection, _ = shader.Get(ctx.Uniforms, "transform.projection", linear.Identity4())
	vs.t.modelview.Mul(&vs.t.model, &vs.t.view)
	vs.t.modelview.Transpose(&vs.t.modelview)
	vs.t.projection.Transpose(&vs.t.projection)
}

func (vs *VS) Run(ctx *shader.Context, in *shader.VSIn, out *shader.VSOut) {
	position := in.Attributes[attrPosition]
	position[3] = 1

	var viewSpace, clipSpace linear.V4
	viewSpace.Mul(&vs.t.modelview, &position)
	clipSpace.Mul(&vs.t.projection, &viewSpace)

	out.Position = clipSpace
	out.Varying[varyPosition] = viewSpace
	out.Varying[varyTexcoord] = in.Attributes[attrTexcoord]
}

type material struct {
	colorAmbient, colorDiffuse     linear.Color4
	textureAmbient, textureDiffuse *texture.Sampler
}

// FS is the program's fragment shader.
type FS struct {
	camPos          linear.V3
	gamma, exposure float32
	m               material
}

func (fs *FS) LoadUniforms(ctx *shader.Context) {
	fs.camPos, _ = shader.Get(ctx.Uniforms, "camera_pos", linear.V3{})
	fs.gamma, _ = shader.Get(ctx.Uniforms, "gamma", float32(2.2))
	fs.exposure, _ = shader.Get(ctx.Uniforms, "exposure", float32(1))

	fs.m.colorAmbient, _ = shader.Get(ctx.Uniforms, "material.color_ambient", linear.Black)
	fs.m.colorDiffuse, _ = shader.Get(ctx.Uniforms, "material.color_diffuse", linear.Black)
	fs.m.textureAmbient, _ = shader.Get(ctx.Uniforms, "material.texture_ambient0", texture.NewSampler(nil))
	fs.m.textureDiffuse, _ = shader.Get(ctx.Uniforms, "material.texture_diffuse0", texture.NewSampler(nil))
}

func (fs *FS) Run(ctx *shader.Context, in *shader.FSIn, out *shader.FSOut) {
	texcoord := linear.V2{in.Varying[varyTexcoord][0], in.Varying[varyTexcoord][1]}

	ambientColor := fs.m.textureAmbient.SampleUV(texcoord)
	diffuseColor := fs.m.textureDiffuse.SampleUV(texcoord)

	var color linear.Color4
	for i := 0; i < 3; i++ {
		color[i] = max4(ambientColor[i], diffuseColor[i], fs.m.colorAmbient[i], fs.m.colorDiffuse[i])
	}

	invGamma := 1 / fs.gamma
	for i := 0; i < 3; i++ {
		color[i] = math32.Pow(color[i], invGamma)
		if fs.exposure > 0 {
			color[i] = 1 - math32.Exp(-color[i]*fs.exposure)
		}
	}
	out.Color = linear.Color4{color[0], color[1], color[2], 1}
}

func max4(a, b, c, d float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	if d > m {
		m = d
	}
	return m
}

// Program returns a new unlit shader program, ready to bind to a
// raster.Device.
func Program() *shader.Program {
	return &shader.Program{Vertex: &VS{}, Fragment: &FS{}, VaryingNum: VaryingNum}
}
