// Copyright 2026 The swrast Authors. All rights reserved.

package ppmio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cpurender/swrast/fb"
	"github.com/cpurender/swrast/linear"
)

func TestSaveWritesHeaderAndPixels(t *testing.T) {
	f, err := fb.New(2, 1, fb.LDR8, fb.DepthNone)
	if err != nil {
		t.Fatalf("fb.New: %v", err)
	}
	f.SetColor(0, 0, linear.Color4{1, 0, 0, 1})
	f.SetColor(1, 0, linear.Color4{0, 1, 0, 1})

	var buf bytes.Buffer
	if err := Save(&buf, f); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "P3\n2 1\n255\n") {
		t.Fatalf("Save: unexpected header in %q", out)
	}
	if !strings.Contains(out, "255 0 0") || !strings.Contains(out, "0 255 0") {
		t.Fatalf("Save: expected both pixel colors in %q", out)
	}
}

func TestTargetSaveRoundTrips(t *testing.T) {
	tgt, err := New(2, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tgt.Clear(linear.Color4{0, 0, 1, 1})

	var buf bytes.Buffer
	if err := tgt.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "P3\n2 1\n255\n") {
		t.Fatalf("Save: unexpected header in %q", out)
	}
	if !strings.Contains(out, "0 0 255") {
		t.Fatalf("Save: expected cleared blue pixels in %q", out)
	}
}
