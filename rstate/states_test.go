// Copyright 2026 The swrast Authors. All rights reserved.

package rstate

import "testing"

func TestDefaultIsSane(t *testing.T) {
	s := Default()
	if s.PrimitiveMode != Triangles {
		t.Errorf("PrimitiveMode: got %v, want Triangles", s.PrimitiveMode)
	}
	if !s.ColorWrite || !s.DepthWrite {
		t.Error("ColorWrite/DepthWrite: expected writes enabled by default")
	}
	if s.DepthTest {
		t.Error("DepthTest: expected disabled by default")
	}
	if !s.AlphaTest {
		t.Error("AlphaTest: expected enabled by default")
	}
	if !s.ApplyViewportOffset {
		t.Error("ApplyViewportOffset: expected enabled by default")
	}
}
