// Package generate turns table objects into meshes. Each object is handled
// by one generator that reads only the object itself and the shared,
// read-only Context, so objects can be generated in any order or in
// parallel.
package generate

import (
	"fmt"

	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// Tint is a fixed colour. A mesh with a tint ignores its table material.
type Tint struct {
	Color     [4]float32
	Metallic  float32
	Roughness float32
}

// NamedMesh is one exported mesh with everything the material mapper and
// the scene assembler need. Mesh is in table units, Z-up, relative to
// Translation.
type NamedMesh struct {
	Name        string
	Kind        table.Kind
	Object      string
	Mesh        *geometry.Mesh
	Translation math.Vec3
	Layer       string

	Material string
	Texture  string
	Tint     *Tint
	// AlphaBlend marks tinted meshes whose alpha must be blended.
	AlphaBlend  bool
	DoubleSided bool
	// LightingThreshold is the object's light transparency threshold.
	LightingThreshold *float32
	Playfield         bool

	// Extras are copied into the node's extras.
	Extras map[string]string
}

// Warning is a recoverable problem with one object.
type Warning struct {
	Object  string
	Kind    table.Kind
	Message string
}

func (w Warning) String() string {
	if w.Object == "" {
		return w.Message
	}
	return fmt.Sprintf("%s %q: %s", w.Kind, w.Object, w.Message)
}

// Result is the output for one object.
type Result struct {
	Meshes   []NamedMesh
	Warnings []Warning
}

func (r *Result) warn(obj *table.Object, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Object:  obj.Name,
		Kind:    obj.Kind(),
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *Result) add(obj *table.Object, m NamedMesh) {
	if m.Mesh.IsEmpty() {
		return
	}
	m.Kind = obj.Kind()
	m.Object = obj.Name
	// Tinted parts carry their own finish.
	if m.LightingThreshold == nil && m.Tint == nil {
		m.LightingThreshold = obj.DisableLightingBelow
	}
	r.Meshes = append(r.Meshes, m)
}

// Context is the read-only state shared by all generators of one export.
type Context struct {
	Table            *table.Table
	Surfaces         *SurfaceIndex
	IncludeInvisible bool
}

// NewContext indexes the table for generation.
func NewContext(t *table.Table, includeInvisible bool) *Context {
	return &Context{
		Table:            t,
		Surfaces:         NewSurfaceIndex(t),
		IncludeInvisible: includeInvisible,
	}
}

// Generate builds the meshes of one object. Invisible objects produce
// nothing unless the context includes them.
func (c *Context) Generate(obj *table.Object) Result {
	var res Result
	if !obj.Visible && !c.IncludeInvisible {
		return res
	}

	switch s := obj.Shape.(type) {
	case *table.Wall:
		c.wall(obj, s, &res)
	case *table.Ramp:
		c.ramp(obj, s, &res)
	case *table.Rubber:
		c.rubber(obj, s, &res)
	case *table.Flasher:
		c.flasher(obj, s, &res)
	case *table.Flipper:
		c.flipper(obj, s, &res)
	case *table.Spinner:
		c.spinner(obj, s, &res)
	case *table.Bumper:
		c.bumper(obj, s, &res)
	case *table.Target:
		c.target(obj, s, &res)
	case *table.Gate:
		c.gate(obj, s, &res)
	case *table.Trigger:
		c.trigger(obj, s, &res)
	case *table.Light:
		c.light(obj, s, &res)
	case *table.Plunger:
		c.plunger(obj, s, &res)
	case *table.Kicker:
		c.kicker(obj, s, &res)
	case *table.Decal:
		c.decal(obj, s, &res)
	case *table.Primitive:
		c.primitive(obj, s, &res)
	case *table.Playfield:
		c.explicitPlayfield(obj, &res)
	case *table.Ball:
		c.ball(obj, s, &res)
	case nil:
		res.warn(obj, "%v %q, skipped", table.ErrUnknownKind, obj.KindName)
	default:
		res.warn(obj, "no generator for %T, skipped", s)
	}

	layer := obj.Layer.GroupName()
	for i := range res.Meshes {
		res.Meshes[i].Layer = layer
	}
	return res
}

// surfaceHeight resolves the object's surface. ok is false when the surface
// is missing, in which case a warning has been recorded and the object must
// be skipped.
func (c *Context) surfaceHeight(obj *table.Object, res *Result) (float32, bool) {
	h, err := c.Surfaces.Height(obj.Surface)
	switch {
	case err == nil:
		return h, true
	case isApproximate(err):
		res.warn(obj, "%v", err)
		return h, true
	default:
		res.warn(obj, "%v, skipped", err)
		return 0, false
	}
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
