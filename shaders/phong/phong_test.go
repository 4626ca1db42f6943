// Copyright 2026 The swrast Authors. All rights reserved.

package phong

import (
	"testing"

	"github.com/cpurender/swrast/linear"
	"github.com/cpurender/swrast/shader"
)

func TestVSPassesThroughPositionAtIdentity(t *testing.T) {
	u := shader.NewUniforms()
	ctx := shader.NewContext(u)

	vs := &VS{}
	vs.LoadUniforms(ctx)

	var in shader.VSIn
	in.Attributes[attrPosition] = linear.V4{1, 2, 3, 1}
	in.Attributes[attrNormal] = linear.V4{0, 1, 0, 0}

	var out shader.VSOut
	vs.Run(ctx, &in, &out)

	if out.Position != (linear.V4{1, 2, 3, 1}) {
		t.Fatalf("Run: position got %v, want identity pass-through", out.Position)
	}
}

func TestFSTextureAmbientFallsBackToDiffuse(t *testing.T) {
	u := shader.NewUniforms()
	u.Set("gamma", float32(1))
	u.Set("exposure", float32(0))
	ctx := shader.NewContext(u)

	fs := &FS{}
	fs.LoadUniforms(ctx)

	if fs.m.textureAmbient != fs.m.textureDiffuse {
		t.Fatal("LoadUniforms: expected textureAmbient to fall back to textureDiffuse when unset")
	}
}

func TestProgramVaryingNum(t *testing.T) {
	p := Program()
	if p.VaryingNum != VaryingNum {
		t.Fatalf("Program: VaryingNum got %d, want %d", p.VaryingNum, VaryingNum)
	}
}
