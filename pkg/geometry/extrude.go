package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/math"
)

// ExtrudeSide builds the vertical side walls of a closed outline between two
// heights. smooth marks points whose normals are averaged with the
// neighbouring edge; it may be nil for all-sharp outlines. The outline is
// walked counter-clockwise whatever its authored winding, so the walls always
// face outward. U runs along the outline length, V is 0 at the top.
func ExtrudeSide(outline []math.Vec2, smooth []bool, bottom, top float32) (*Mesh, error) {
	if len(outline) < 3 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewPoints, len(outline))
	}
	if math32.Abs(SignedArea(outline)) < areaEpsilon {
		return nil, ErrDegenerate
	}

	order, _ := CCWOrder(outline)
	pts := make([]math.Vec2, len(order))
	sm := make([]bool, len(order))
	for i, idx := range order {
		pts[i] = outline[idx]
		if smooth != nil {
			sm[i] = smooth[idx]
		}
	}

	n := len(pts)
	edgeNormals := make([]math.Vec2, n)
	for i := range pts {
		d := pts[(i+1)%n].Sub(pts[i])
		edgeNormals[i] = math.Vec2{X: d.Y, Y: -d.X}.Normalize()
	}
	vertexNormal := func(i, edge int) math.Vec3 {
		nrm := edgeNormals[edge]
		if sm[i] {
			prev := edgeNormals[(i+n-1)%n]
			next := edgeNormals[i]
			if avg := prev.Add(next).Normalize(); avg != (math.Vec2{}) {
				nrm = avg
			}
		}
		return nrm.Vec3(0)
	}

	lengths := CumulativeLengths(pts, true)
	total := lengths[n]

	m := &Mesh{}
	for i := range pts {
		j := (i + 1) % n
		if pts[i] == pts[j] {
			continue
		}
		u0, u1 := lengths[i]/total, lengths[i+1]/total
		ni, nj := vertexNormal(i, i), vertexNormal(j, i)

		a := m.AddVertex(Vertex{Position: pts[i].Vec3(bottom), Normal: ni, UV: math.V2(u0, 1)})
		b := m.AddVertex(Vertex{Position: pts[j].Vec3(bottom), Normal: nj, UV: math.V2(u1, 1)})
		c := m.AddVertex(Vertex{Position: pts[j].Vec3(top), Normal: nj, UV: math.V2(u1, 0)})
		d := m.AddVertex(Vertex{Position: pts[i].Vec3(top), Normal: ni, UV: math.V2(u0, 0)})
		m.AddTriangle(a, b, c)
		m.AddTriangle(a, c, d)
	}
	return m, nil
}

// Ribbon joins two rails of equal length with a strip of quads. Walking
// along the rails, the front face is on the side where a is to the right of
// b when viewed from the front. Normals are derived from the faces.
func Ribbon(a, b []Vertex) *Mesh {
	n := min(len(a), len(b))
	m := &Mesh{Vertices: make([]Vertex, 0, 2*n)}
	m.Vertices = append(m.Vertices, a[:n]...)
	m.Vertices = append(m.Vertices, b[:n]...)
	off := uint32(n)
	for i := 0; i+1 < n; i++ {
		ai, aj := uint32(i), uint32(i+1)
		bi, bj := off+uint32(i), off+uint32(i+1)
		m.AddTriangle(ai, aj, bj)
		m.AddTriangle(ai, bj, bi)
	}
	m.RemoveDegenerate(1e-8)
	m.ComputeNormals()
	return m
}
