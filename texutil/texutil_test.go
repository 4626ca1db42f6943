// Copyright 2026 The swrast Authors. All rights reserved.

package texutil

import (
	"testing"

	"github.com/cpurender/swrast/linear"
)

func TestGenerateNoiseSize(t *testing.T) {
	tex, err := GenerateNoise(8, 8)
	if err != nil {
		t.Fatalf("GenerateNoise: %v", err)
	}
	if tex.Width() != 8 || tex.Height() != 8 {
		t.Fatalf("GenerateNoise: got %dx%d, want 8x8", tex.Width(), tex.Height())
	}
}

func TestGenerateCheckerboardAlternates(t *testing.T) {
	red := linear.Color4{1, 0, 0, 1}
	blue := linear.Color4{0, 0, 1, 1}
	tex, err := GenerateCheckerboard(4, 4, 2, red, blue)
	if err != nil {
		t.Fatalf("GenerateCheckerboard: %v", err)
	}
	c00 := tex.GetColor(0, 0)
	c20 := tex.GetColor(2, 0)
	if c00[0] < 0.9 {
		t.Fatalf("GetColor(0,0): got %v, want red cell", c00)
	}
	if c20[2] < 0.9 {
		t.Fatalf("GetColor(2,0): got %v, want blue cell", c20)
	}
}

func TestGenerateNoiseRejectsInvalidSize(t *testing.T) {
	if _, err := GenerateNoise(0, 4); err == nil {
		t.Fatal("GenerateNoise: expected error for invalid size")
	}
}

func TestBoxBlurPreviewPreservesSize(t *testing.T) {
	red := linear.Color4{1, 0, 0, 1}
	blue := linear.Color4{0, 0, 1, 1}
	tex, err := GenerateCheckerboard(8, 8, 2, red, blue)
	if err != nil {
		t.Fatalf("GenerateCheckerboard: %v", err)
	}
	blurred, err := BoxBlurPreview(tex, 2)
	if err != nil {
		t.Fatalf("BoxBlurPreview: %v", err)
	}
	if blurred.Width() != 8 || blurred.Height() != 8 {
		t.Fatalf("BoxBlurPreview: got %dx%d, want 8x8", blurred.Width(), blurred.Height())
	}
}
