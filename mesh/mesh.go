// Copyright 2026 The swrast Authors. All rights reserved.

// Package mesh implements the rasterizer's model boundary API: a Mesh
// bundles a VertexArray with its textures and material colors, and a
// Model composes Meshes under a parent/child transform hierarchy.
// Models can be built programmatically or loaded from a glTF 2.0
// asset via LoadGLTF.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/cpurender/swrast/fb"
	"github.com/cpurender/swrast/linear"
	"github.com/cpurender/swrast/raster"
	"github.com/cpurender/swrast/texture"
)

const prefix = "mesh: "

// ModelTexture pairs a sampler with the material slot it feeds, such
// as "texture_diffuse" or "texture_normal".
type ModelTexture struct {
	Sampler  *texture.Sampler
	TypeName string
}

// Mesh is one drawable piece of a Model: a vertex array plus the
// textures and flat material colors its shaders read as uniforms.
type Mesh struct {
	VertexArray raster.VertexArray

	Textures       []ModelTexture
	MaterialColors map[string]linear.Color4
}

// Draw binds mesh's textures, material colors and transform as
// uniforms under the "material."/"transform.model" names, then draws
// its vertex array with device onto target.
func (m *Mesh) Draw(device *raster.Device, target *fb.Framebuffer, transform linear.M4) error {
	typeNum := make(map[string]int)
	for _, mt := range m.Textures {
		name := fmt.Sprintf("material.%s%d", mt.TypeName, typeNum[mt.TypeName])
		typeNum[mt.TypeName]++
		device.Uniforms.Set(name, mt.Sampler)
	}
	for name, color := range m.MaterialColors {
		device.Uniforms.Set("material."+name, color)
	}
	device.Uniforms.Set("transform.model", transform)

	return device.Draw(target, m.VertexArray)
}

// Model is a node in the scene's transform hierarchy: its own local
// Transform, an optional Parent it composes with, and the Meshes
// drawn at its global transform.
type Model struct {
	Parent    *Model
	Transform linear.M4

	meshes []Mesh

	centroid  linear.V3
	aabbStart linear.V3
	aabbEnd   linear.V3
}

// New creates an empty Model with an identity transform.
func New() *Model {
	return &Model{
		Transform: linear.Identity4(),
		aabbStart: linear.V3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		aabbEnd:   linear.V3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Empty reports whether m has no meshes.
func (m *Model) Empty() bool { return len(m.meshes) == 0 }

// GlobalTransform composes m's Transform with every ancestor's,
// Parent-first, matching the original source's recursive
// get_global_transform.
func (m *Model) GlobalTransform() linear.M4 {
	if m.Parent == nil {
		return m.Transform
	}
	parent := m.Parent.GlobalTransform()
	var out linear.M4
	out.Mul(&parent, &m.Transform)
	return out
}

// Draw draws every mesh of m onto target using device, at m's global
// transform.
func (m *Model) Draw(device *raster.Device, target *fb.Framebuffer) error {
	transform := m.GlobalTransform()
	for i := range m.meshes {
		if err := m.meshes[i].Draw(device, target, transform); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every mesh from m and resets its transform to
// identity.
func (m *Model) Clear() {
	*m = *New()
}

// AddMesh appends a mesh to m and folds its vertex positions into m's
// running centroid/AABB.
func (m *Model) AddMesh(msh Mesh) {
	for _, v := range msh.VertexArray.Vertices {
		p := linear.V3FromV4(v.Attributes[0])
		m.centroid.Add(&m.centroid, &p)
		for i := 0; i < 3; i++ {
			if p[i] < m.aabbStart[i] {
				m.aabbStart[i] = p[i]
			}
			if p[i] > m.aabbEnd[i] {
				m.aabbEnd[i] = p[i]
			}
		}
	}
	m.meshes = append(m.meshes, msh)
}

// CentroidPosition returns the unweighted average of every vertex
// position added via AddMesh.
func (m *Model) CentroidPosition() linear.V3 {
	n := 0
	for _, msh := range m.meshes {
		n += len(msh.VertexArray.Vertices)
	}
	if n == 0 {
		return linear.V3{}
	}
	c := m.centroid
	c.Scale(1/float32(n), &c)
	return c
}

// AABBStartPosition returns the minimum corner of m's axis-aligned
// bounding box.
func (m *Model) AABBStartPosition() linear.V3 { return m.aabbStart }

// AABBEndPosition returns the maximum corner of m's axis-aligned
// bounding box.
func (m *Model) AABBEndPosition() linear.V3 { return m.aabbEnd }

var errNoPositions = errors.New(prefix + "mesh has no POSITION accessor")
