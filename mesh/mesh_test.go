// Copyright 2026 The swrast Authors. All rights reserved.

package mesh

import (
	"bytes"
	"testing"

	"github.com/cpurender/swrast/gltf"
	"github.com/cpurender/swrast/linear"
	"github.com/cpurender/swrast/raster"
)

func TestGlobalTransformComposesParent(t *testing.T) {
	parent := New()
	parent.Transform = linear.Translate(linear.V3{1, 0, 0})

	child := New()
	child.Parent = parent
	child.Transform = linear.Translate(linear.V3{0, 2, 0})

	got := child.GlobalTransform()

	var v linear.V4
	var transposed linear.M4
	transposed.Transpose(&got)
	v.Mul(&transposed, &linear.V4{0, 0, 0, 1})

	want := linear.V4{1, 2, 0, 1}
	for i := range v {
		if v[i] != want[i] {
			t.Fatalf("GlobalTransform: got %v, want %v", v, want)
		}
	}
}

func TestAddMeshTracksCentroidAndAABB(t *testing.T) {
	m := New()
	m.AddMesh(Mesh{
		VertexArray: raster.VertexArray{
			Vertices: raster.VertexBuffer{
				{Attributes: [5]linear.V4{{-1, -1, -1, 1}}},
				{Attributes: [5]linear.V4{{1, 1, 1, 1}}},
			},
		},
	})

	c := m.CentroidPosition()
	if c != (linear.V3{0, 0, 0}) {
		t.Fatalf("CentroidPosition: got %v, want (0,0,0)", c)
	}
	if m.AABBStartPosition() != (linear.V3{-1, -1, -1}) {
		t.Fatalf("AABBStartPosition: got %v", m.AABBStartPosition())
	}
	if m.AABBEndPosition() != (linear.V3{1, 1, 1}) {
		t.Fatalf("AABBEndPosition: got %v", m.AABBEndPosition())
	}
}

func TestDecodeGLTFOrGLBReadsPackedBlob(t *testing.T) {
	var doc gltf.GLTF
	doc.Asset.Version = "2.0"
	bin := []byte{1, 2, 3, 4}

	var packed bytes.Buffer
	if err := gltf.Pack(&packed, &doc, bin); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	got, glbBIN, err := decodeGLTFOrGLB(packed.Bytes())
	if err != nil {
		t.Fatalf("decodeGLTFOrGLB: %v", err)
	}
	if got.Asset.Version != "2.0" {
		t.Fatalf("decodeGLTFOrGLB: got version %q, want 2.0", got.Asset.Version)
	}
	if !bytes.Equal(glbBIN, bin) {
		t.Fatalf("decodeGLTFOrGLB: got BIN chunk %v, want %v", glbBIN, bin)
	}
}

func TestEmptyModel(t *testing.T) {
	m := New()
	if !m.Empty() {
		t.Fatal("Empty: expected true for new model")
	}
	m.AddMesh(Mesh{})
	if m.Empty() {
		t.Fatal("Empty: expected false after AddMesh")
	}
}
