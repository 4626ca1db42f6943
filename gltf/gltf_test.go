// Copyright 2026 The swrast Authors. All rights reserved.

package gltf

import (
	"bytes"
	"io"
	"testing"
)

// triangleDoc returns a minimal but valid single-triangle GLTF, the kind
// of document mesh.LoadGLTF is expected to traverse: one scene, one
// node with a mesh, one primitive with a POSITION accessor and an
// indexed draw, and one material referencing a texture/sampler pair.
func triangleDoc() *GLTF {
	var doc GLTF
	doc.Asset.Version = "2.0"
	zero := int64(0)
	doc.Scene = &zero
	doc.Scenes = []Scene{{Nodes: []int64{0}}}
	doc.Nodes = []Node{{Mesh: &zero}}
	doc.Meshes = []Mesh{{
		Primitives: []Primitive{{
			Attributes: map[string]int64{"POSITION": 0},
			Indices:    &zero,
			Material:   &zero,
		}},
	}}
	doc.Accessors = []Accessor{
		{BufferView: &zero, ComponentType: FLOAT, Count: 3, Type: VEC3},
		{BufferView: &zero, ComponentType: UNSIGNED_SHORT, Count: 3, Type: SCALAR},
	}
	doc.BufferViews = []BufferView{{Buffer: 0, ByteLength: 36}}
	doc.Buffers = []Buffer{{ByteLength: 36}}
	tex := TextureInfo{Index: 0}
	doc.Materials = []Material{{
		PBRMetallicRoughness: &PBRMetallicRoughness{BaseColorTexture: &tex},
	}}
	doc.Textures = []Texture{{Sampler: &zero, Source: &zero}}
	doc.Samplers = []Sampler{{MagFilter: Nearest, WrapS: ClampToEdge, WrapT: Repeat}}
	doc.Images = []Image{{URI: "albedo.png"}}
	return &doc
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	want := triangleDoc()
	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Asset.Version != want.Asset.Version {
		t.Fatalf("Asset.Version: got %q, want %q", got.Asset.Version, want.Asset.Version)
	}
	if len(got.Meshes) != 1 || len(got.Meshes[0].Primitives) != 1 {
		t.Fatalf("Meshes: got %+v", got.Meshes)
	}
	if got.Materials[0].PBRMetallicRoughness.BaseColorTexture.Index != 0 {
		t.Fatalf("BaseColorTexture.Index: got %+v", got.Materials[0].PBRMetallicRoughness.BaseColorTexture)
	}
}

func TestCheckValidDoc(t *testing.T) {
	if err := triangleDoc().Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheckRejectsUnsupportedVersion(t *testing.T) {
	doc := triangleDoc()
	doc.Asset.Version = "1.0"
	if err := doc.Check(); err == nil {
		t.Fatal("Check: expected error for glTF 1.0 asset")
	}
}

func TestCheckRejectsOutOfBoundsIndex(t *testing.T) {
	doc := triangleDoc()
	bad := int64(7)
	doc.Nodes[0].Mesh = &bad
	if err := doc.Check(); err == nil {
		t.Fatal("Check: expected error for out-of-bounds Node.Mesh index")
	}
}

func TestCheckRejectsMissingPosition(t *testing.T) {
	doc := triangleDoc()
	doc.Meshes[0].Primitives[0].Attributes = map[string]int64{"NORMAL": 0}
	if err := doc.Check(); err == nil {
		t.Fatal("Check: expected error for primitive missing POSITION")
	}
}

func TestCheckRejectsNodeSelfReference(t *testing.T) {
	doc := triangleDoc()
	doc.Nodes[0].Children = []int64{0}
	if err := doc.Check(); err == nil {
		t.Fatal("Check: expected error for a node listing itself as a child")
	}
}

func TestIsGLB(t *testing.T) {
	var buf bytes.Buffer
	if err := Pack(&buf, triangleDoc(), nil); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if !IsGLB(bytes.NewReader(buf.Bytes())) {
		t.Fatal("IsGLB: reported false for a packed GLB blob")
	}
	if IsGLB(bytes.NewReader([]byte("not a glb"))) {
		t.Fatal("IsGLB: reported true for plain text")
	}
}

func TestSeekJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Pack(&buf, triangleDoc(), []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	n, err := SeekJSON(bytes.NewReader(buf.Bytes()), 0)
	if err != nil {
		t.Fatalf("SeekJSON: %v", err)
	}
	if n <= 0 {
		t.Fatalf("SeekJSON: got length %d, want > 0", n)
	}
}

func TestSeekBIN(t *testing.T) {
	bin := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	var buf bytes.Buffer
	if err := Pack(&buf, triangleDoc(), bin); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	r := bytes.NewReader(buf.Bytes())
	n, err := SeekBIN(r, 0)
	if err != nil {
		t.Fatalf("SeekBIN: %v", err)
	}
	got := make([]byte, n)
	if _, err := r.Read(got); err != nil {
		t.Fatalf("read BIN payload: %v", err)
	}
	if !bytes.Equal(got, bin) {
		t.Fatalf("BIN payload: got %v, want %v", got, bin)
	}
}

func TestSeekBINAbsentIsEOF(t *testing.T) {
	var buf bytes.Buffer
	if err := Pack(&buf, triangleDoc(), nil); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if _, err := SeekBIN(bytes.NewReader(buf.Bytes()), 0); err != io.EOF {
		t.Fatalf("SeekBIN: got %v, want io.EOF when no BIN chunk is present", err)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	want := triangleDoc()
	bin := []byte{9, 9, 9, 9, 9}
	var buf bytes.Buffer
	if err := Pack(&buf, want, bin); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	doc, gotBin, err := Unpack(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if doc.Asset.Version != want.Asset.Version {
		t.Fatalf("Asset.Version: got %q, want %q", doc.Asset.Version, want.Asset.Version)
	}
	// Pack zero-pads the BIN chunk to a multiple of 4 bytes, and Unpack
	// returns the chunk as stored, padding included.
	if wantBin := []byte{9, 9, 9, 9, 9, 0, 0, 0}; !bytes.Equal(gotBin, wantBin) {
		t.Fatalf("BIN chunk: got %v, want %v", gotBin, wantBin)
	}
}

func TestPackUnpackNoBINChunk(t *testing.T) {
	want := triangleDoc()
	var buf bytes.Buffer
	if err := Pack(&buf, want, nil); err != nil {
		t.Fatalf("Pack: %v", err)
	}
	doc, bin, err := Unpack(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if bin != nil {
		t.Fatalf("BIN chunk: got %v, want nil", bin)
	}
	if len(doc.Meshes) != 1 {
		t.Fatalf("Meshes: got %+v", doc.Meshes)
	}
}
