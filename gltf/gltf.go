// Copyright 2026 The swrast Authors. All rights reserved.

// Package gltf decodes the subset of the glTF 2.0 asset format that
// mesh.LoadGLTF needs: the node transform hierarchy, mesh primitives,
// and base-color/normal/occlusion material textures. Skins,
// animations, cameras, morph targets and sparse accessors are not
// part of this schema — mesh.LoadGLTF documents that it does not load
// them, so there is nothing in this package that would decode them.
package gltf

import (
	"encoding/json"
	"io"
)

const prefix = "gltf: "

// GLTF is the root glTF object.
type GLTF struct {
	Asset struct {
		Version    string `json:"version"`
		MinVersion string `json:"minVersion,omitempty"`
	} `json:"asset"`
	Accessors   []Accessor   `json:"accessors,omitempty"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Images      []Image      `json:"images,omitempty"`
	Materials   []Material   `json:"materials,omitempty"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Samplers    []Sampler    `json:"samplers,omitempty"`
	Scene       *int64       `json:"scene,omitempty"`
	Scenes      []Scene      `json:"scenes,omitempty"`
	Textures    []Texture    `json:"textures,omitempty"`
}

// glTF.accessors' element. A subset of the original accessor object:
// sparse accessors are not represented, since nothing in this package
// reads one.
type Accessor struct {
	BufferView    *int64 `json:"bufferView,omitempty"`
	ByteOffset    int64  `json:"byteOffset,omitempty"` // Default is 0.
	ComponentType int64  `json:"componentType"`
	Count         int64  `json:"count"`
	Type          string `json:"type"`
	Name          string `json:"name,omitempty"`
}

// accessor.*.componentType values.
const (
	BYTE           = 5120
	UNSIGNED_BYTE  = 5121
	SHORT          = 5122
	UNSIGNED_SHORT = 5123
	UNSIGNED_INT   = 5125
	FLOAT          = 5126
)

// accessor.type values.
const (
	SCALAR = "SCALAR"
	VEC2   = "VEC2"
	VEC3   = "VEC3"
	VEC4   = "VEC4"
	MAT2   = "MAT2"
	MAT3   = "MAT3"
	MAT4   = "MAT4"
)

// glTF.buffers' element.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int64  `json:"byteLength"`
	Name       string `json:"name,omitempty"`
}

// glTF.bufferViews' element.
type BufferView struct {
	Buffer     int64  `json:"buffer"`
	ByteOffset int64  `json:"byteOffset,omitempty"` // Default is 0.
	ByteLength int64  `json:"byteLength"`
	ByteStride int64  `json:"byteStride,omitempty"` // 0 for tightly packed.
	Target     int64  `json:"target,omitempty"`     // 0 for no hint.
	Name       string `json:"name,omitempty"`
}

// bufferView.target values.
const (
	ARRAY_BUFFER = iota + 34962
	ELEMENT_ARRAY_BUFFER
)

// glTF.images' element.
type Image struct {
	URI        string `json:"uri,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	BufferView *int64 `json:"bufferView,omitempty"`
	Name       string `json:"name,omitempty"`
}

// image.mimeType values.
const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
)

// glTF.materials' element. Only the channels mesh.LoadGLTF maps onto
// a Mesh's MaterialColors/Textures are represented: base color,
// normal and occlusion. Emissive, alpha mode and double-sided are
// not loaded.
type Material struct {
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *TextureInfo          `json:"normalTexture,omitempty"`
	OcclusionTexture     *TextureInfo          `json:"occlusionTexture,omitempty"`
	Name                 string                `json:"name,omitempty"`
}

// material.pbrMetallicRoughness, trimmed to the base color channel.
type PBRMetallicRoughness struct {
	BaseColorFactor  *[4]float32  `json:"baseColorFactor,omitempty"` // Default is [1, 1, 1, 1].
	BaseColorTexture *TextureInfo `json:"baseColorTexture,omitempty"`
}

// glTF.meshes' element.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Name       string      `json:"name,omitempty"`
}

// mesh.primitives' element. Targets (morph targets) and an explicit
// Mode are not represented: mesh.LoadGLTF always assembles a
// primitive's vertices as the caller's rstate.States.PrimitiveMode
// (raster.Device.States) expects, rather than per-primitive.
type Primitive struct {
	Attributes map[string]int64 `json:"attributes"`
	Indices    *int64           `json:"indices,omitempty"`
	Material   *int64           `json:"material,omitempty"`
}

// glTF.nodes' element.
type Node struct {
	Children    []int64      `json:"children,omitempty"`
	Matrix      *[16]float32 `json:"matrix,omitempty"` // Default is identity.
	Mesh        *int64       `json:"mesh,omitempty"`
	Rotation    *[4]float32  `json:"rotation,omitempty"`    // Default is [0, 0, 0, 1].
	Scale       *[3]float32  `json:"scale,omitempty"`       // Default is [1, 1, 1].
	Translation *[3]float32  `json:"translation,omitempty"` // Default is [0, 0, 0].
	Name        string       `json:"name,omitempty"`
}

// glTF.samplers' element, mapped onto texture.Texture's SampleMode
// and WrapMode by mesh.LoadGLTF.
type Sampler struct {
	MagFilter int64 `json:"magFilter,omitempty"`
	WrapS     int64 `json:"wrapS,omitempty"` // Default is Repeat.
	WrapT     int64 `json:"wrapT,omitempty"` // Default is Repeat.
}

// sampler.magFilter values.
const (
	Nearest = 9728
	Linear  = 9729
)

// sampler.wrap* values.
const (
	ClampToEdge    = 33071
	MirroredRepeat = 33648
	Repeat         = 10497
)

// glTF.scenes' element.
type Scene struct {
	Nodes []int64 `json:"nodes,omitempty"`
	Name  string  `json:"name,omitempty"`
}

// glTF.textures' element.
type Texture struct {
	Sampler *int64 `json:"sampler,omitempty"`
	Source  *int64 `json:"source,omitempty"`
	Name    string `json:"name,omitempty"`
}

// textureInfo.
type TextureInfo struct {
	Index int64 `json:"index"`
}

// Encode encodes gltf into w as JSON.
func Encode(w io.Writer, gltf *GLTF) error {
	return json.NewEncoder(w).Encode(gltf)
}

// Decode decodes r into a new GLTF instance.
func Decode(r io.Reader) (*GLTF, error) {
	var gltf GLTF
	if err := json.NewDecoder(r).Decode(&gltf); err != nil {
		return nil, err
	}
	return &gltf, nil
}
