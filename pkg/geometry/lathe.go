package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/math"
)

// ProfilePoint is one step of a lathe profile.
type ProfilePoint struct {
	Axial  float32
	Radius float32
}

// Lathe revolves a radius profile around the +Z axis. The profile is walked
// in order; walking it with the solid on the left (in the axial/radial
// half-plane, axial up) makes the surface face outward, so a closed solid
// is described bottom centre, out, up, back to the top centre. Repeating a
// point makes a hard crease there.
func Lathe(profile []ProfilePoint, segments int) *Mesh {
	if len(profile) < 2 || segments < 3 {
		return &Mesh{}
	}
	n := len(profile)

	// Outward normal in the (radial, axial) plane for each profile point.
	segNormal := func(a, b ProfilePoint) (math.Vec2, bool) {
		d := math.Vec2{X: b.Radius - a.Radius, Y: b.Axial - a.Axial}
		if d.Length() < 1e-7 {
			return math.Vec2{}, false
		}
		return math.Vec2{X: d.Y, Y: -d.X}.Normalize(), true
	}
	normals := make([]math.Vec2, n)
	for j := range profile {
		var sum math.Vec2
		if j > 0 {
			if nv, ok := segNormal(profile[j-1], profile[j]); ok {
				sum = sum.Add(nv)
			}
		}
		if j+1 < n {
			if nv, ok := segNormal(profile[j], profile[j+1]); ok {
				sum = sum.Add(nv)
			}
		}
		normals[j] = sum.Normalize()
	}
	// A repeated point takes the normal of its own side only.
	for j := 0; j+1 < n; j++ {
		if profile[j] == profile[j+1] {
			if j > 0 {
				normals[j], _ = segNormal(profile[j-1], profile[j])
			}
			if j+2 < n {
				normals[j+1], _ = segNormal(profile[j+1], profile[j+2])
			}
		}
	}

	lengths := make([]float32, n)
	for j := 1; j < n; j++ {
		d := math.Vec2{X: profile[j].Radius - profile[j-1].Radius, Y: profile[j].Axial - profile[j-1].Axial}
		lengths[j] = lengths[j-1] + d.Length()
	}
	total := lengths[n-1]
	if total == 0 {
		total = 1
	}

	ring := segments + 1
	m := &Mesh{Vertices: make([]Vertex, 0, n*ring)}
	for j, p := range profile {
		for i := 0; i < ring; i++ {
			s, c := math32.Sincos(2 * math32.Pi * float32(i) / float32(segments))
			nr := normals[j]
			m.Vertices = append(m.Vertices, Vertex{
				Position: math.Vec3{X: p.Radius * c, Y: p.Radius * s, Z: p.Axial},
				Normal:   math.Vec3{X: nr.X * c, Y: nr.X * s, Z: nr.Y},
				UV:       math.V2(float32(i)/float32(segments), lengths[j]/total),
			})
		}
	}

	for j := 0; j+1 < n; j++ {
		if profile[j] == profile[j+1] {
			continue
		}
		for i := 0; i < segments; i++ {
			a := uint32(j*ring + i)
			b := uint32(j*ring + i + 1)
			c := uint32((j+1)*ring + i)
			d := uint32((j+1)*ring + i + 1)
			if profile[j].Radius > 0 {
				m.AddTriangle(a, b, c)
			}
			if profile[j+1].Radius > 0 {
				m.AddTriangle(b, d, c)
			}
		}
	}
	return m
}
