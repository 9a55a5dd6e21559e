// Package geometry builds triangle meshes: polygon triangulation, extrusion,
// lathes, tube sweeps and a few fixed primitives.
//
// Every builder emits counter-clockwise triangles whose right-hand normal
// points away from the solid, measured in the object's local Z-up space.
package geometry

import (
	"fmt"

	"github.com/Faultbox/vpxglb/pkg/math"
)

// Vertex is a mesh vertex with position, normal and texture coordinates.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent per axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Extend grows the box to contain p.
func (b Bounds) Extend(p math.Vec3) Bounds {
	return Bounds{
		Min: math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)},
		Max: math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)},
	}
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Indices) == 0
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v Vertex) uint32 {
	m.Vertices = append(m.Vertices, v)
	return uint32(len(m.Vertices) - 1)
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Validate checks the index invariants: whole triangles and every index
// inside the vertex list.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIncompleteTriangle, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d, %d vertices", ErrIndexOutOfRange, idx, i, n)
		}
	}
	return nil
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		b = b.Extend(v.Position)
	}
	return b
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]Vertex(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
}

// Append adds other's triangles to m.
func (m *Mesh) Append(other *Mesh) {
	if other == nil {
		return
	}
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// ReverseWinding swaps the second and third index of every triangle.
func (m *Mesh) ReverseWinding() {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
	}
}

// Transformed returns a copy with positions carried by mat and normals by
// its inverse transpose. Mirroring transforms keep the triangles facing out
// by reversing their winding.
func (m *Mesh) Transformed(mat math.Mat4) *Mesh {
	nm := mat.NormalMatrix()
	out := &Mesh{
		Vertices: make([]Vertex, len(m.Vertices)),
		Indices:  append([]uint32(nil), m.Indices...),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = Vertex{
			Position: mat.TransformPoint(v.Position),
			Normal:   nm.TransformDirection(v.Normal).Normalize(),
			UV:       v.UV,
		}
	}
	if mat.Determinant3() < 0 {
		out.ReverseWinding()
	}
	return out
}

// AddBackFaces duplicates every triangle with reversed winding and flipped
// normals so open surfaces render from both sides.
func (m *Mesh) AddBackFaces() {
	base := uint32(len(m.Vertices))
	for _, v := range m.Vertices {
		v.Normal = v.Normal.Scale(-1)
		m.Vertices = append(m.Vertices, v)
	}
	n := len(m.Indices)
	for i := 0; i+2 < n; i += 3 {
		m.Indices = append(m.Indices, base+m.Indices[i], base+m.Indices[i+2], base+m.Indices[i+1])
	}
}

// ComputeNormals replaces vertex normals with the area-weighted average of
// the adjacent face normals.
func (m *Mesh) ComputeNormals() {
	acc := make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa, pb, pc := m.Vertices[a].Position, m.Vertices[b].Position, m.Vertices[c].Position
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i := range m.Vertices {
		if acc[i] != (math.Vec3{}) {
			m.Vertices[i].Normal = acc[i].Normalize()
		}
	}
}

// RemoveDegenerate drops triangles whose area is below eps.
func (m *Mesh) RemoveDegenerate(eps float32) {
	kept := m.Indices[:0]
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		pa := m.Vertices[a].Position
		n := m.Vertices[b].Position.Sub(pa).Cross(m.Vertices[c].Position.Sub(pa))
		if n.Length() < eps {
			continue
		}
		kept = append(kept, a, b, c)
	}
	m.Indices = kept
}
