// Copyright 2026 The swrast Authors. All rights reserved.

// Package shader defines the vertex/fragment shader interfaces run by
// the rasterizer pipeline, the fixed-size attribute/varying vectors
// passed between stages, and the per-draw uniform store shaders read
// from.
package shader

import (
	"fmt"

	"github.com/cpurender/swrast/linear"
)

// MaxVaryings is the number of Vec4 slots carried between the vertex
// and fragment stages, matching the pipeline's fixed-size varying
// array.
const MaxVaryings = 5

// VSIn is the input to a VertexShader: one vertex's worth of
// attributes, read from the bound vertex buffer.
type VSIn struct {
	Attributes [MaxVaryings]linear.V4
}

// VSOut is the output of a VertexShader: the clip-space position plus
// up to MaxVaryings interpolants.
type VSOut struct {
	Position linear.V4
	Varying  [MaxVaryings]linear.V4
}

// FSIn is the input to a FragmentShader: the varyings produced by
// clipping and perspective-correct interpolation.
type FSIn struct {
	Varying [MaxVaryings]linear.V4
}

// FSOut is the output of a FragmentShader.
type FSOut struct {
	Color   linear.V4
	Discard bool
}

// VertexShader transforms one input vertex into clip space.
type VertexShader interface {
	// LoadUniforms is called once per draw, before any Run call, so
	// the shader can cache uniform lookups in Context for the
	// duration of the draw.
	LoadUniforms(ctx *Context)
	Run(ctx *Context, in *VSIn, out *VSOut)
}

// FragmentShader shades one fragment.
type FragmentShader interface {
	LoadUniforms(ctx *Context)
	Run(ctx *Context, in *FSIn, out *FSOut)
}

// Program pairs a vertex and fragment shader for one draw call.
// VaryingNum must not exceed MaxVaryings; it tells the pipeline how
// many of VSOut.Varying are meaningful, so that unused slots are not
// interpolated or clipped against.
type Program struct {
	Vertex     VertexShader
	Fragment   FragmentShader
	VaryingNum int
}

// Uniforms is a named store of per-draw shader inputs. Values are
// stored as any and recovered with the generic Get, which reports a
// type-mismatch error instead of panicking the way the original
// source's std::any_cast does.
type Uniforms struct {
	values map[string]any
}

// NewUniforms creates an empty Uniforms store.
func NewUniforms() *Uniforms {
	return &Uniforms{values: make(map[string]any)}
}

// Set stores value under name, replacing any previous value.
func (u *Uniforms) Set(name string, value any) {
	u.values[name] = value
}

// Has reports whether name has a stored value.
func (u *Uniforms) Has(name string) bool {
	_, ok := u.values[name]
	return ok
}

// Clear removes name's stored value, if any.
func (u *Uniforms) Clear(name string) {
	delete(u.values, name)
}

// ClearAll removes every stored value.
func (u *Uniforms) ClearAll() {
	u.values = make(map[string]any)
}

// Get returns the value stored under name, type-asserted to T. If
// name has no stored value, it returns the given default and a nil
// error. If a value is stored but has a different type, it returns
// the zero value of T and a non-nil error.
func Get[T any](u *Uniforms, name string, def T) (T, error) {
	v, ok := u.values[name]
	if !ok {
		return def, nil
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("shader: uniform %q has type %T, not %T", name, v, zero)
	}
	return t, nil
}

// Context is passed to every shader invocation during a draw. It
// holds the draw's Uniforms plus a free-form cache that a shader's
// LoadUniforms can populate, replacing the original source's
// thread-local caches and RenderDevice back-reference: a shader reads
// uniforms into Context once per draw instead of reaching back into
// shared device state on every vertex/fragment.
type Context struct {
	Uniforms *Uniforms
	cache    map[string]any
}

// NewContext creates a Context bound to the given Uniforms.
func NewContext(u *Uniforms) *Context {
	return &Context{Uniforms: u, cache: make(map[string]any)}
}

// CacheSet stores value in ctx's per-draw cache.
func (ctx *Context) CacheSet(key string, value any) {
	ctx.cache[key] = value
}

// CacheGet returns the cached value for key, type-asserted to T, and
// whether it was present with that type.
func CacheGet[T any](ctx *Context, key string) (T, bool) {
	v, ok := ctx.cache[key]
	if !ok {
		return *new(T), false
	}
	t, ok := v.(T)
	return t, ok
}
