// Copyright 2026 The swrast Authors. All rights reserved.

// Package phong implements a single-directional-light Blinn-Phong
// shader program: ambient + diffuse + specular terms, each combining
// a sampled texture with a flat material color, gamma-corrected and
// optionally tone-mapped by exposure.
package phong

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
	attrNormal
)

const (
	varyPosition = iota
	varyNormal
	varyTexcoord
	// VaryingNum is the number of varying slots Program uses.
	VaryingNum
)

// SunLight is a directional light, bound as the "light.sun" uniform.
type SunLight struct {
	Direction linear.V3
	Color     linear.V3
}

// DefaultSunLight reproduces the original source's hardcoded
// light_dir = Vec3(2,1,1), used when no "light.sun" uniform is bound.
var DefaultSunLight = SunLight{
	Direction: linear.V3{2, 1, 1},
	Color:     linear.V3{1, 1, 1},
}

type transform struct {
	model, view, projection, modelview linear.M4
	normal                             linear.M3
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
	vs.t.normal = linear.NormalTransform(vs.t.modelview)
	vs.t.modelview.Transpose(&vs.t.modelview)
	vs.t.projection.Transpose(&vs.t.projection)
}

func (vs *VS) Run(ctx *shader.Context, in *shader.VSIn, out *shader.VSOut) {
	position := in.Attributes[attrPosition]
	position[3] = 1
	normal := linear.V3FromV4(in.Attributes[attrNormal])

	var viewSpace, clipSpace linear.V4
	viewSpace.Mul(&vs.t.modelview, &position)
	clipSpace.Mul(&vs.t.projection, &viewSpace)

	var viewNormal linear.V3
	viewNormal.Mul(&vs.t.normal, &normal)

	out.Position = clipSpace
	out.Varying[varyPosition] = viewSpace
	out.Varying[varyTexcoord] = in.Attributes[attrTexcoord]
	out.Varying[varyNormal] = linear.V4FromV3(viewNormal, 0)
}

type material struct {
	colorAmbient, colorDiffuse, colorSpecular       linear.Color4
	textureAmbient, textureDiffuse, textureSpecular *texture.Sampler
}

// FS is the program's fragment shader.
type FS struct {
	camPos          linear.V3
	gamma, exposure float32
	sun             SunLight
	m               material
}

func (fs *FS) LoadUniforms(ctx *shader.Context) {
	fs.camPos, _ = shader.Get(ctx.Uniforms, "camera_pos", linear.V3{})
	fs.gamma, _ = shader.Get(ctx.Uniforms, "gamma", float32(2.2))
	fs.exposure, _ = shader.Get(ctx.Uniforms, "exposure", float32(1))
	fs.sun, _ = shader.Get(ctx.Uniforms, "light.sun", DefaultSunLight)

	fs.m.colorAmbient, _ = shader.Get(ctx.Uniforms, "material.color_ambient", linear.White)
	fs.m.colorDiffuse, _ = shader.Get(ctx.Uniforms, "material.color_diffuse", linear.White)
	fs.m.colorSpecular, _ = shader.Get(ctx.Uniforms, "material.color_specular", linear.White)
	fs.m.textureAmbient, _ = shader.Get(ctx.Uniforms, "material.texture_ambient0", texture.NewSampler(nil))
	fs.m.textureDiffuse, _ = shader.Get(ctx.Uniforms, "material.texture_diffuse0", texture.NewSampler(nil))
	fs.m.textureSpecular, _ = shader.Get(ctx.Uniforms, "material.texture_specular0", texture.NewSampler(nil))

	if fs.m.textureAmbient.Empty() {
		fs.m.textureAmbient = fs.m.textureDiffuse
	}
}

func (fs *FS) Run(ctx *shader.Context, in *shader.FSIn, out *shader.FSOut) {
	position := linear.V3FromV4(in.Varying[varyPosition])
	normal := linear.V3FromV4(in.Varying[varyNormal])
	texcoord := linear.V2{in.Varying[varyTexcoord][0], in.Varying[varyTexcoord][1]}

	var n, d linear.V3
	n.Norm(&normal)
	d.Norm(&fs.sun.Direction)

	var toEye, h linear.V3
	toEye.Sub(&fs.camPos, &position)
	toEye.Add(&toEye, &d)
	h.Scale(0.5, &toEye)
	h.Norm(&h)

	ambient := float32(0.2)
	diffuse := max0(n.Dot(&d))
	specular := math32.Pow(max0(n.Dot(&h)), 64)

	ambientColor := fs.m.textureAmbient.SampleUV(texcoord)
	diffuseColor := fs.m.textureDiffuse.SampleUV(texcoord)
	specularColor := fs.m.textureSpecular.SampleUV(texcoord)

	var color linear.Color4
	for i := 0; i < 3; i++ {
		color[i] = ambientColor[i]*ambient*fs.m.colorAmbient[i] +
			diffuseColor[i]*diffuse*fs.m.colorDiffuse[i]*fs.sun.Color[i] +
			specularColor[i]*specular*fs.m.colorSpecular[i]*fs.sun.Color[i]
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

func max0(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

// Program returns a new phong shader program, ready to bind to a
// raster.Device.
func Program() *shader.Program {
	return &shader.Program{Vertex: &VS{}, Fragment: &FS{}, VaryingNum: VaryingNum}
}
