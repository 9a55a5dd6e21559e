package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/math"
)

// Tube sweeps a circle of the given radius along path. Frames are carried
// along the path by parallel transport starting from the up axis, so planar
// paths in the XY plane do not twist. Open tubes are left uncapped.
func Tube(path []math.Vec3, radius float32, segments int, closed bool) *Mesh {
	n := len(path)
	if n < 2 || segments < 3 || radius <= 0 {
		return &Mesh{}
	}

	tangents := make([]math.Vec3, n)
	for i := range path {
		var prev, next math.Vec3
		switch {
		case closed:
			prev, next = path[(i+n-1)%n], path[(i+1)%n]
		case i == 0:
			prev, next = path[0], path[1]
		case i == n-1:
			prev, next = path[n-2], path[n-1]
		default:
			prev, next = path[i-1], path[i+1]
		}
		tangents[i] = next.Sub(prev).Normalize()
	}

	normal := initialNormal(tangents[0])
	lengths := make([]float32, n)
	ring := segments + 1
	m := &Mesh{Vertices: make([]Vertex, 0, n*ring)}
	for i, p := range path {
		t := tangents[i]
		if i > 0 {
			lengths[i] = lengths[i-1] + p.Distance(path[i-1])
			if proj := normal.Sub(t.Scale(normal.Dot(t))); proj.Length() > 1e-6 {
				normal = proj.Normalize()
			}
		}
		bi := t.Cross(normal)
		for j := 0; j < ring; j++ {
			s, c := math32.Sincos(2 * math32.Pi * float32(j) / float32(segments))
			dir := normal.Scale(c).Add(bi.Scale(s))
			m.Vertices = append(m.Vertices, Vertex{
				Position: p.Add(dir.Scale(radius)),
				Normal:   dir,
				UV:       math.V2(float32(j)/float32(segments), 0),
			})
		}
	}
	total := lengths[n-1]
	if total > 0 {
		for i := 0; i < n; i++ {
			for j := 0; j < ring; j++ {
				m.Vertices[i*ring+j].UV.Y = lengths[i] / total
			}
		}
	}

	rows := n - 1
	if closed {
		rows = n
	}
	for i := 0; i < rows; i++ {
		next := (i + 1) % n
		for j := 0; j < segments; j++ {
			a := uint32(i*ring + j)
			b := uint32(i*ring + j + 1)
			c := uint32(next*ring + j)
			d := uint32(next*ring + j + 1)
			m.AddTriangle(a, b, c)
			m.AddTriangle(b, d, c)
		}
	}
	return m
}

func initialNormal(t math.Vec3) math.Vec3 {
	up := math.Vec3{Z: 1}
	if math32.Abs(t.Dot(up)) > 0.99 {
		up = math.Vec3{X: 1}
	}
	return up.Sub(t.Scale(up.Dot(t))).Normalize()
}
