// Copyright 2026 The swrast Authors. All rights reserved.

package fb

import (
	"testing"

	"github.com/cpurender/swrast/linear"
)

func TestNewInvalidSize(t *testing.T) {
	if _, err := New(0, 10, LDR8, Depth32F); err == nil {
		t.Fatal("New: expected error for zero width")
	}
	if _, err := New(10, -1, LDR8, Depth32F); err == nil {
		t.Fatal("New: expected error for negative height")
	}
}

func TestClearAndGetColorLDR(t *testing.T) {
	f, err := New(4, 4, LDR8, DepthNone)
	if err != nil {
		t.Fatal(err)
	}
	f.ClearColor(linear.Color4{0.5, 0.25, 1, 1})
	c := f.GetColor(2, 3)
	want := linear.Color4{127.0 / 255, 63.0 / 255, 1, 1}
	for i := range c {
		d := c[i] - want[i]
		if d < 0 {
			d = -d
		}
		if d > 1.0/255 {
			t.Fatalf("GetColor: got %v, want ~%v", c, want)
		}
	}
}

func TestClearAndGetColorHDR(t *testing.T) {
	f, err := New(2, 2, HDRFloat, DepthNone)
	if err != nil {
		t.Fatal(err)
	}
	want := linear.Color4{2.5, -1, 10, 1}
	f.ClearColor(want)
	if c := f.GetColor(0, 0); c != want {
		t.Fatalf("GetColor: got %v, want %v", c, want)
	}
}

func TestSetColorLDRClamps(t *testing.T) {
	f, err := New(1, 1, LDR8, DepthNone)
	if err != nil {
		t.Fatal(err)
	}
	f.SetColor(0, 0, linear.Color4{2, -1, 0.5, 1})
	data := f.LDRColorData()
	if data[0] != 255 || data[1] != 0 {
		t.Fatalf("SetColor: did not clamp out-of-range channels: %v", data)
	}
}

func TestDepthPlane(t *testing.T) {
	f, err := New(3, 3, LDR8, Depth32F)
	if err != nil {
		t.Fatal(err)
	}
	f.ClearDepth(1)
	if d := f.GetDepth(1, 1); d != 1 {
		t.Fatalf("ClearDepth: got %v, want 1", d)
	}
	f.SetDepth(1, 1, 0.3)
	if d := f.GetDepth(1, 1); d != 0.3 {
		t.Fatalf("SetDepth: got %v, want 0.3", d)
	}
	if d := f.GetDepth(0, 0); d != 1 {
		t.Fatalf("SetDepth: unexpectedly modified neighboring pixel: %v", d)
	}
}

func TestDepthNoneIsNoOp(t *testing.T) {
	f, err := New(2, 2, LDR8, DepthNone)
	if err != nil {
		t.Fatal(err)
	}
	if f.DepthData() != nil {
		t.Fatal("DepthData: expected nil for DepthNone")
	}
	f.ClearDepth(1) // must not panic
	f.SetDepth(0, 0, 1)
	if d := f.GetDepth(0, 0); d != 0 {
		t.Fatalf("GetDepth: got %v, want 0 for DepthNone framebuffer", d)
	}
}

func TestColorDataNilForWrongFormat(t *testing.T) {
	f, err := New(2, 2, LDR8, DepthNone)
	if err != nil {
		t.Fatal(err)
	}
	if f.HDRColorData() != nil {
		t.Fatal("HDRColorData: expected nil on an LDR8 framebuffer")
	}
	if f.LDRColorData() == nil {
		t.Fatal("LDRColorData: expected non-nil on an LDR8 framebuffer")
	}
}
