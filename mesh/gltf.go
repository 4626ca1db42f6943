// Copyright 2026 The swrast Authors. All rights reserved.

package mesh

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cpurender/swrast/gltf"
	"github.com/cpurender/swrast/linear"
	"github.com/cpurender/swrast/raster"
	"github.com/cpurender/swrast/texture"
)

// LoadGLTF reads a glTF 2.0 asset from path and returns the Model it
// describes. Both the JSON form (.gltf, with a sibling .bin and image
// files, or a self-contained document using data: URIs) and the
// binary form (.glb, with its buffer 0 embedded as a BIN chunk) are
// accepted. Skins, animations and cameras are not loaded; only the
// node transform hierarchy, meshes, and the base color/normal/
// occlusion textures of each primitive's material.
func LoadGLTF(path_ string) (*Model, error) {
	raw, err := os.ReadFile(path_)
	if err != nil {
		return nil, fmt.Errorf("%sLoadGLTF: %w", prefix, err)
	}

	doc, glbBIN, err := decodeGLTFOrGLB(raw)
	if err != nil {
		return nil, fmt.Errorf("%sLoadGLTF: %w", prefix, err)
	}
	if err := doc.Check(); err != nil {
		return nil, fmt.Errorf("%sLoadGLTF: %w", prefix, err)
	}

	l := &gltfLoader{
		doc:    doc,
		dir:    filepath.Dir(path_),
		glbBIN: glbBIN,
	}
	if err := l.loadBuffers(); err != nil {
		return nil, err
	}

	root := New()
	if doc.Scene == nil && len(doc.Scenes) == 0 {
		return root, nil
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx >= len(doc.Scenes) {
		return root, nil
	}
	for _, n := range doc.Scenes[sceneIdx].Nodes {
		child, err := l.loadNode(int(n))
		if err != nil {
			return nil, err
		}
		child.Parent = root
		root.meshes = append(root.meshes, child.meshes...)
	}
	return root, nil
}

type gltfLoader struct {
	doc      *gltf.GLTF
	dir      string
	glbBIN   []byte
	buffers  [][]byte
	samplers map[int]*texture.Sampler
}

// decodeGLTFOrGLB sniffs raw for the GLB binary container magic,
// delegating to gltf.Unpack for the binary form (returning its
// embedded BIN chunk, if any, as buffer 0's contents) or gltf.Decode
// for a plain JSON .gltf document.
func decodeGLTFOrGLB(raw []byte) (*gltf.GLTF, []byte, error) {
	if !gltf.IsGLB(bytes.NewReader(raw)) {
		doc, err := gltf.Decode(bytes.NewReader(raw))
		return doc, nil, err
	}
	return gltf.Unpack(bytes.NewReader(raw))
}

func (l *gltfLoader) loadBuffers() error {
	l.buffers = make([][]byte, len(l.doc.Buffers))
	for i, b := range l.doc.Buffers {
		if b.URI == "" {
			if l.glbBIN == nil {
				return fmt.Errorf("%sLoadGLTF: buffer %d: no URI and no embedded BIN chunk", prefix, i)
			}
			l.buffers[i] = l.glbBIN
			continue
		}
		data, err := l.resolveURI(b.URI)
		if err != nil {
			return fmt.Errorf("%sLoadGLTF: buffer %d: %w", prefix, i, err)
		}
		l.buffers[i] = data
	}
	return nil
}

func (l *gltfLoader) resolveURI(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "data:") {
		idx := strings.IndexByte(uri, ',')
		if idx < 0 {
			return nil, errors.New(prefix + "malformed data URI")
		}
		return base64.StdEncoding.DecodeString(uri[idx+1:])
	}
	return os.ReadFile(path.Join(l.dir, uri))
}

// loadNode builds the Model subtree rooted at node index idx,
// recursing into its children.
func (l *gltfLoader) loadNode(idx int) (*Model, error) {
	n := &l.doc.Nodes[idx]
	m := New()
	m.Transform = nodeLocalTransform(n)

	if n.Mesh != nil {
		meshes, err := l.loadMesh(int(*n.Mesh))
		if err != nil {
			return nil, err
		}
		for i := range meshes {
			m.AddMesh(meshes[i])
		}
	}
	for _, c := range n.Children {
		child, err := l.loadNode(int(c))
		if err != nil {
			return nil, err
		}
		child.Parent = m
		m.meshes = append(m.meshes, child.meshes...)
	}
	return m, nil
}

// nodeLocalTransform builds n's local TRS matrix, or its explicit
// Matrix if given, matching glTF's node transform precedence.
func nodeLocalTransform(n *gltf.Node) linear.M4 {
	if n.Matrix != nil {
		var m linear.M4
		for c := 0; c < 4; c++ {
			for r := 0; r < 4; r++ {
				m[c][r] = n.Matrix[c*4+r]
			}
		}
		return m
	}

	t := linear.V3{0, 0, 0}
	if n.Translation != nil {
		t = linear.V3{n.Translation[0], n.Translation[1], n.Translation[2]}
	}
	s := linear.V3{1, 1, 1}
	if n.Scale != nil {
		s = linear.V3{n.Scale[0], n.Scale[1], n.Scale[2]}
	}
	q := linear.Q{V: linear.V3{0, 0, 0}, R: 1}
	if n.Rotation != nil {
		q = linear.Q{V: linear.V3{n.Rotation[0], n.Rotation[1], n.Rotation[2]}, R: n.Rotation[3]}
	}

	translate := linear.Translate(t)
	rotate := q.ToMat4()
	scale := linear.Scale(s)

	var ts linear.M4
	ts.Mul(&translate, &rotate)
	var out linear.M4
	out.Mul(&ts, &scale)
	return out
}

func (l *gltfLoader) loadMesh(idx int) ([]Mesh, error) {
	gm := &l.doc.Meshes[idx]
	out := make([]Mesh, 0, len(gm.Primitives))
	for _, prim := range gm.Primitives {
		m, err := l.loadPrimitive(&prim)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (l *gltfLoader) loadPrimitive(prim *gltf.Primitive) (Mesh, error) {
	var m Mesh

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return m, errNoPositions
	}
	positions, err := l.readVec3(int(posIdx))
	if err != nil {
		return m, err
	}

	var texcoords [][2]float32
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		texcoords, err = l.readVec2(int(idx))
		if err != nil {
			return m, err
		}
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, err = l.readVec3(int(idx))
		if err != nil {
			return m, err
		}
	}

	vertices := make(raster.VertexBuffer, len(positions))
	for i, p := range positions {
		var v raster.Vertex
		v.Attributes[0] = linear.V4{p[0], p[1], p[2], 1}
		if i < len(texcoords) {
			v.Attributes[1] = linear.V4{texcoords[i][0], texcoords[i][1], 0, 0}
		}
		if i < len(normals) {
			n := normals[i]
			v.Attributes[2] = linear.V4{n[0], n[1], n[2], 0}
		}
		vertices[i] = v
	}
	m.VertexArray.Vertices = vertices

	if prim.Indices != nil {
		indices, err := l.readIndices(int(*prim.Indices))
		if err != nil {
			return m, err
		}
		m.VertexArray.Indices = indices
	}

	if prim.Material != nil {
		if err := l.loadMaterial(&m, int(*prim.Material)); err != nil {
			return m, err
		}
	}
	return m, nil
}

func (l *gltfLoader) loadMaterial(m *Mesh, idx int) error {
	mat := &l.doc.Materials[idx]
	m.MaterialColors = make(map[string]linear.Color4)

	if mat.PBRMetallicRoughness != nil {
		pbr := mat.PBRMetallicRoughness
		c := linear.Color4{1, 1, 1, 1}
		if pbr.BaseColorFactor != nil {
			c = linear.Color4{pbr.BaseColorFactor[0], pbr.BaseColorFactor[1], pbr.BaseColorFactor[2], pbr.BaseColorFactor[3]}
		}
		m.MaterialColors["color_diffuse"] = c

		if pbr.BaseColorTexture != nil {
			s, err := l.loadTexture(int(pbr.BaseColorTexture.Index))
			if err != nil {
				return err
			}
			m.Textures = append(m.Textures, ModelTexture{Sampler: s, TypeName: "texture_diffuse"})
		}
	}
	if mat.NormalTexture != nil {
		s, err := l.loadTexture(int(mat.NormalTexture.Index))
		if err != nil {
			return err
		}
		m.Textures = append(m.Textures, ModelTexture{Sampler: s, TypeName: "texture_normal"})
	}
	if mat.OcclusionTexture != nil {
		s, err := l.loadTexture(int(mat.OcclusionTexture.Index))
		if err != nil {
			return err
		}
		m.Textures = append(m.Textures, ModelTexture{Sampler: s, TypeName: "texture_ambient"})
	}
	return nil
}

func (l *gltfLoader) loadTexture(idx int) (*texture.Sampler, error) {
	if l.samplers == nil {
		l.samplers = make(map[int]*texture.Sampler)
	}
	if s, ok := l.samplers[idx]; ok {
		return s, nil
	}

	tex := &l.doc.Textures[idx]
	if tex.Source == nil {
		return texture.NewSampler(nil), nil
	}
	img := &l.doc.Images[int(*tex.Source)]

	var data []byte
	var err error
	switch {
	case img.URI != "":
		data, err = l.resolveURI(img.URI)
	case img.BufferView != nil:
		data, err = l.readBufferView(int(*img.BufferView))
	default:
		return nil, errors.New(prefix + "image has neither uri nor bufferView")
	}
	if err != nil {
		return nil, err
	}

	t, err := texture.Load(bytes.NewReader(data), false)
	if err != nil {
		return nil, fmt.Errorf("%sloadTexture: %w", prefix, err)
	}
	if tex.Sampler != nil {
		applySampler(t, &l.doc.Samplers[*tex.Sampler])
	}
	s := texture.NewSampler(t)
	l.samplers[idx] = s
	return s, nil
}

// applySampler maps a glTF sampler's filter and wrap modes onto t.
// texture.Texture has a single WrapMode shared by both axes, so WrapS
// is used for both; assets that rely on independent S/T wrapping are
// not representable here.
func applySampler(t *texture.Texture, s *gltf.Sampler) {
	if s.MagFilter == gltf.Nearest {
		t.SampleMode = texture.Nearest
	} else {
		t.SampleMode = texture.Bilinear
	}
	switch s.WrapS {
	case gltf.ClampToEdge:
		t.WrapMode = texture.ClampToEdge
	case gltf.MirroredRepeat:
		t.WrapMode = texture.MirroredRepeat
	default:
		t.WrapMode = texture.Repeat
	}
}

func (l *gltfLoader) readBufferView(idx int) ([]byte, error) {
	bv := &l.doc.BufferViews[idx]
	buf := l.buffers[bv.Buffer]
	return buf[bv.ByteOffset : bv.ByteOffset+bv.ByteLength], nil
}

func (l *gltfLoader) componentSize(componentType int64) int {
	switch componentType {
	case gltf.BYTE, gltf.UNSIGNED_BYTE:
		return 1
	case gltf.SHORT, gltf.UNSIGNED_SHORT:
		return 2
	default:
		return 4
	}
}

func (l *gltfLoader) readFloats(accIdx, components int) ([]float32, error) {
	acc := &l.doc.Accessors[accIdx]
	if acc.BufferView == nil {
		return make([]float32, int(acc.Count)*components), nil
	}
	bv := &l.doc.BufferViews[*acc.BufferView]
	buf := l.buffers[bv.Buffer]

	elemSize := l.componentSize(acc.ComponentType) * components
	stride := int(bv.ByteStride)
	if stride == 0 {
		stride = elemSize
	}
	base := bv.ByteOffset + acc.ByteOffset

	out := make([]float32, int(acc.Count)*components)
	for i := 0; i < int(acc.Count); i++ {
		off := base + int64(i*stride)
		for c := 0; c < components; c++ {
			out[i*components+c] = readFloat32(buf, off+int64(c*4), acc.ComponentType)
		}
	}
	return out, nil
}

func readFloat32(buf []byte, off int64, componentType int64) float32 {
	if componentType != gltf.FLOAT {
		return 0
	}
	b := buf[off : off+4]
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

func (l *gltfLoader) readVec3(accIdx int) ([][3]float32, error) {
	flat, err := l.readFloats(accIdx, 3)
	if err != nil {
		return nil, err
	}
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return out, nil
}

func (l *gltfLoader) readVec2(accIdx int) ([][2]float32, error) {
	flat, err := l.readFloats(accIdx, 2)
	if err != nil {
		return nil, err
	}
	out := make([][2]float32, len(flat)/2)
	for i := range out {
		out[i] = [2]float32{flat[i*2], flat[i*2+1]}
	}
	return out, nil
}

func (l *gltfLoader) readIndices(accIdx int) (raster.IndexBuffer, error) {
	acc := &l.doc.Accessors[accIdx]
	bv := &l.doc.BufferViews[*acc.BufferView]
	buf := l.buffers[bv.Buffer]
	base := bv.ByteOffset + acc.ByteOffset
	size := l.componentSize(acc.ComponentType)

	out := make(raster.IndexBuffer, acc.Count)
	for i := 0; i < int(acc.Count); i++ {
		off := base + int64(i*size)
		switch acc.ComponentType {
		case gltf.UNSIGNED_BYTE:
			out[i] = uint32(buf[off])
		case gltf.UNSIGNED_SHORT:
			out[i] = uint32(uint16(buf[off]) | uint16(buf[off+1])<<8)
		case gltf.UNSIGNED_INT:
			out[i] = uint32(buf[off]) | uint32(buf[off+1])<<8 | uint32(buf[off+2])<<16 | uint32(buf[off+3])<<24
		}
	}
	return out, nil
}
