// Copyright 2026 The swrast Authors. All rights reserved.

package shader

import "testing"

func TestUniformsGetDefault(t *testing.T) {
	u := NewUniforms()
	v, err := Get(u, "missing", 7)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if v != 7 {
		t.Fatalf("Get: got %v, want default 7", v)
	}
}

func TestUniformsSetGet(t *testing.T) {
	u := NewUniforms()
	u.Set("count", 42)
	v, err := Get(u, "count", 0)
	if err != nil {
		t.Fatalf("Get: unexpected error: %v", err)
	}
	if v != 42 {
		t.Fatalf("Get: got %v, want 42", v)
	}
	if !u.Has("count") {
		t.Fatal("Has: expected true for set uniform")
	}
}

func TestUniformsGetTypeMismatch(t *testing.T) {
	u := NewUniforms()
	u.Set("name", "not an int")
	if _, err := Get(u, "name", 0); err == nil {
		t.Fatal("Get: expected error for type mismatch")
	}
}

func TestUniformsClear(t *testing.T) {
	u := NewUniforms()
	u.Set("a", 1)
	u.Clear("a")
	if u.Has("a") {
		t.Fatal("Clear: uniform still present")
	}
	u.Set("b", 1)
	u.ClearAll()
	if u.Has("b") {
		t.Fatal("ClearAll: uniform still present")
	}
}

func TestContextCache(t *testing.T) {
	ctx := NewContext(NewUniforms())
	ctx.CacheSet("light", 3.5)
	v, ok := CacheGet[float64](ctx, "light")
	if !ok || v != 3.5 {
		t.Fatalf("CacheGet: got (%v, %v), want (3.5, true)", v, ok)
	}
	if _, ok := CacheGet[int](ctx, "light"); ok {
		t.Fatal("CacheGet: expected false for type mismatch")
	}
	if _, ok := CacheGet[int](ctx, "missing"); ok {
		t.Fatal("CacheGet: expected false for missing key")
	}
}
