// Copyright 2026 The swrast Authors. All rights reserved.

package gltf

import (
	"errors"
	"strconv"
)

// Check checks that f is a valid glTF object that LoadGLTF knows how
// to traverse: a supported version, and every cross-reference
// (accessor, buffer view, node, texture index) within bounds.
func (f *GLTF) Check() error {
	vers, err := strconv.ParseFloat(f.Asset.Version, 64)
	if err != nil {
		return errors.New(prefix + "invalid Asset.Version string")
	}
	if minVers, err := strconv.ParseFloat(f.Asset.MinVersion, 64); err == nil && minVers >= 3 {
		return errors.New(prefix + "unsupported Asset.MinVersion")
	} else if vers < 2 || vers >= 3 {
		return errors.New(prefix + "unsupported Asset.Version")
	}

	if s := f.Scene; s != nil && (*s < 0 || *s >= int64(len(f.Scenes))) {
		return errors.New(prefix + "invalid GLTF.Scene index")
	}

	for i := range f.Accessors {
		if err := f.Accessors[i].check(f); err != nil {
			return err
		}
	}
	for i := range f.Buffers {
		if err := f.Buffers[i].check(); err != nil {
			return err
		}
	}
	for i := range f.BufferViews {
		if err := f.BufferViews[i].check(f); err != nil {
			return err
		}
	}
	for i := range f.Images {
		if err := f.Images[i].check(f); err != nil {
			return err
		}
	}
	for i := range f.Materials {
		if err := f.Materials[i].check(f); err != nil {
			return err
		}
	}
	for i := range f.Meshes {
		if err := f.Meshes[i].check(f); err != nil {
			return err
		}
	}
	for i := range f.Nodes {
		if err := f.Nodes[i].check(f); err != nil {
			return err
		}
	}
	for i := range f.Scenes {
		if err := f.Scenes[i].check(f); err != nil {
			return err
		}
	}
	return nil
}

func (a *Accessor) check(gltf *GLTF) error {
	if a.BufferView != nil {
		if idx := *a.BufferView; idx < 0 || idx >= int64(len(gltf.BufferViews)) {
			return errors.New(prefix + "invalid Accessor.BufferView index")
		}
	}
	if a.ByteOffset < 0 {
		return errors.New(prefix + "invalid Accessor.ByteOffset value")
	}
	switch a.ComponentType {
	case BYTE, UNSIGNED_BYTE, SHORT, UNSIGNED_SHORT, UNSIGNED_INT, FLOAT:
	default:
		return errors.New(prefix + "invalid Accessor.ComponentType value")
	}
	if a.Count < 1 {
		return errors.New(prefix + "invalid Accessor.Count value")
	}
	switch a.Type {
	case SCALAR, VEC2, VEC3, VEC4, MAT2, MAT3, MAT4:
	default:
		return errors.New(prefix + "invalid Accessor.Type value")
	}
	return nil
}

func (b *Buffer) check() error {
	if b.ByteLength < 1 {
		return errors.New(prefix + "invalid Buffer.ByteLength value")
	}
	return nil
}

func (v *BufferView) check(gltf *GLTF) error {
	if v.Buffer < 0 || v.Buffer >= int64(len(gltf.Buffers)) {
		return errors.New(prefix + "invalid BufferView.Buffer index")
	}
	if v.ByteOffset < 0 {
		return errors.New(prefix + "invalid BufferView.ByteOffset value")
	}
	if v.ByteLength < 1 || v.ByteOffset+v.ByteLength > gltf.Buffers[v.Buffer].ByteLength {
		return errors.New(prefix + "invalid BufferView.ByteLength value")
	}
	if v.ByteStride != 0 && (v.ByteStride < 4 || v.ByteStride > 252) {
		return errors.New(prefix + "invalid BufferView.ByteStride value")
	}
	switch v.Target {
	case 0, ARRAY_BUFFER, ELEMENT_ARRAY_BUFFER:
	default:
		return errors.New(prefix + "invalid BufferView.Target value")
	}
	return nil
}

func (i *Image) check(gltf *GLTF) error {
	switch i.URI {
	case "":
		if i.BufferView == nil {
			return errors.New(prefix + "invalid Image.URI/BufferView non-definitions")
		}
		if idx := *i.BufferView; idx < 0 || idx >= int64(len(gltf.BufferViews)) {
			return errors.New(prefix + "invalid Image.BufferView index")
		}
		switch i.MimeType {
		case JPEG, PNG:
		default:
			return errors.New(prefix + "invalid Image.MimeType value")
		}
	default:
		if i.BufferView != nil {
			return errors.New(prefix + "invalid Image.URI/BufferView definitions")
		}
	}
	return nil
}

func (m *Material) check(gltf *GLTF) error {
	checkTextureInfo := func(info *TextureInfo, name string) error {
		if info.Index < 0 || info.Index >= int64(len(gltf.Textures)) {
			return errors.New(prefix + "invalid Material." + name + ".Index index")
		}
		return nil
	}
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if fac := pbr.BaseColorFactor; fac != nil {
			for _, x := range fac {
				if x < 0 || x > 1 {
					return errors.New(prefix + "invalid PBRMetallicRoughness.BaseColorFactor value")
				}
			}
		}
		if tex := pbr.BaseColorTexture; tex != nil {
			if err := checkTextureInfo(tex, "PBRMetallicRoughness.BaseColorTexture"); err != nil {
				return err
			}
		}
	}
	if norm := m.NormalTexture; norm != nil {
		if err := checkTextureInfo(norm, "NormalTexture"); err != nil {
			return err
		}
	}
	if occ := m.OcclusionTexture; occ != nil {
		if err := checkTextureInfo(occ, "OcclusionTexture"); err != nil {
			return err
		}
	}
	return nil
}

func (m *Mesh) check(gltf *GLTF) error {
	if len(m.Primitives) == 0 {
		return errors.New(prefix + "invalid Mesh.Primitives length")
	}
	for i := range m.Primitives {
		p := &m.Primitives[i]
		if _, ok := p.Attributes["POSITION"]; !ok {
			return errors.New(prefix + "invalid Primitive.Attributes: missing POSITION")
		}
		for _, v := range p.Attributes {
			if v < 0 || v >= int64(len(gltf.Accessors)) {
				return errors.New(prefix + "invalid Primitive.Attributes index")
			}
		}
		if idx := p.Indices; idx != nil {
			if *idx < 0 || *idx >= int64(len(gltf.Accessors)) {
				return errors.New(prefix + "invalid Primitive.Indices index")
			}
		}
		if idx := p.Material; idx != nil {
			if *idx < 0 || *idx >= int64(len(gltf.Materials)) {
				return errors.New(prefix + "invalid Primitive.Material index")
			}
		}
	}
	return nil
}

func (n *Node) check(gltf *GLTF) error {
	if m := n.Matrix; m != nil {
		if n.Rotation != nil || n.Scale != nil || n.Translation != nil {
			return errors.New(prefix + "invalid Node.Matrix/TRS definitions")
		}
	}
	if msh := n.Mesh; msh != nil {
		if *msh < 0 || *msh >= int64(len(gltf.Meshes)) {
			return errors.New(prefix + "invalid Node.Mesh index")
		}
	}
	seen := make(map[int64]bool, len(n.Children))
	for _, c := range n.Children {
		if c < 0 || c >= int64(len(gltf.Nodes)) {
			return errors.New(prefix + "invalid Node.Children index")
		}
		if &gltf.Nodes[c] == n {
			return errors.New(prefix + "invalid Node.Children hierarchy: self-reference")
		}
		if seen[c] {
			return errors.New(prefix + "invalid Node.Children list: duplicate index")
		}
		seen[c] = true
	}
	return nil
}

func (s *Scene) check(gltf *GLTF) error {
	seen := make(map[int64]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		if n < 0 || n >= int64(len(gltf.Nodes)) {
			return errors.New(prefix + "invalid Scene.Nodes index")
		}
		if seen[n] {
			return errors.New(prefix + "invalid Scene.Nodes list: duplicate index")
		}
		seen[n] = true
	}
	return nil
}
