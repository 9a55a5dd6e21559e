package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/math"
)

// areaEpsilon is the smallest polygon area, in squared table units, treated
// as non-degenerate.
const areaEpsilon = 1e-6

// SignedArea returns the shoelace area of a closed polygon. Positive means
// counter-clockwise in a Y-up frame.
func SignedArea(pts []math.Vec2) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].Cross(pts[j])
	}
	return a / 2
}

// IsCCW reports whether the polygon winds counter-clockwise.
func IsCCW(pts []math.Vec2) bool {
	return SignedArea(pts) > 0
}

// CCWOrder returns the vertex order that walks the polygon counter-clockwise,
// whatever order it was authored in. reversed is true when the authored order
// was clockwise.
func CCWOrder(pts []math.Vec2) (order []int, reversed bool) {
	order = make([]int, len(pts))
	reversed = SignedArea(pts) < 0
	for i := range order {
		if reversed {
			order[i] = len(pts) - 1 - i
		} else {
			order[i] = i
		}
	}
	return order, reversed
}

// Triangulate splits a simple polygon into triangles by ear clipping. The
// returned indices refer to pts and every triangle is counter-clockwise,
// independent of the authored winding. Collinear points are allowed and
// produce no sliver triangles.
func Triangulate(pts []math.Vec2) ([]uint32, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: %d", ErrTooFewPoints, len(pts))
	}
	if math32.Abs(SignedArea(pts)) < areaEpsilon {
		return nil, ErrDegenerate
	}

	order, _ := CCWOrder(pts)
	ring := dedupe(pts, order)
	if len(ring) < 3 {
		return nil, ErrDegenerate
	}

	tris := make([]uint32, 0, (len(ring)-2)*3)
	for len(ring) > 3 {
		ear := -1
		for i := range ring {
			prev, cur, next := ring[(i+len(ring)-1)%len(ring)], ring[i], ring[(i+1)%len(ring)]
			turn := pts[cur].Sub(pts[prev]).Cross(pts[next].Sub(pts[cur]))
			if math32.Abs(turn) < areaEpsilon {
				// Collinear: drop the middle point.
				ear = i
				break
			}
			if turn < 0 {
				continue
			}
			if !containsAny(pts, ring, prev, cur, next) {
				tris = append(tris, uint32(prev), uint32(cur), uint32(next))
				ear = i
				break
			}
		}
		if ear < 0 {
			return nil, ErrNotSimple
		}
		ring = append(ring[:ear], ring[ear+1:]...)
	}

	a, b, c := ring[0], ring[1], ring[2]
	if pts[b].Sub(pts[a]).Cross(pts[c].Sub(pts[a])) > areaEpsilon {
		tris = append(tris, uint32(a), uint32(b), uint32(c))
	}
	if len(tris) == 0 {
		return nil, ErrDegenerate
	}
	return tris, nil
}

// dedupe drops consecutive repeated points.
func dedupe(pts []math.Vec2, order []int) []int {
	out := make([]int, 0, len(order))
	for _, idx := range order {
		if len(out) > 0 && pts[out[len(out)-1]] == pts[idx] {
			continue
		}
		out = append(out, idx)
	}
	for len(out) > 1 && pts[out[0]] == pts[out[len(out)-1]] {
		out = out[:len(out)-1]
	}
	return out
}

func containsAny(pts []math.Vec2, ring []int, a, b, c int) bool {
	for _, idx := range ring {
		if idx == a || idx == b || idx == c {
			continue
		}
		p := pts[idx]
		if p == pts[a] || p == pts[b] || p == pts[c] {
			continue
		}
		if inTriangle(p, pts[a], pts[b], pts[c]) {
			return true
		}
	}
	return false
}

// inTriangle is inclusive of the edges so a reflex vertex touching the
// candidate ear blocks it.
func inTriangle(p, a, b, c math.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	return d1 >= 0 && d2 >= 0 && d3 >= 0
}

// Cap triangulates the outline into a flat face at height z. With up set the
// face normal is +Z, otherwise -Z. uv maps an outline point to texture
// coordinates and may be nil.
func Cap(outline []math.Vec2, z float32, up bool, uv func(math.Vec2) math.Vec2) (*Mesh, error) {
	tris, err := Triangulate(outline)
	if err != nil {
		return nil, err
	}
	normal := math.Vec3{Z: 1}
	if !up {
		normal.Z = -1
	}
	m := &Mesh{Vertices: make([]Vertex, len(outline))}
	for i, p := range outline {
		v := Vertex{Position: p.Vec3(z), Normal: normal}
		if uv != nil {
			v.UV = uv(p)
		}
		m.Vertices[i] = v
	}
	m.Indices = tris
	if !up {
		m.ReverseWinding()
	}
	return m, nil
}

// BoundsOf returns the 2D bounding box of pts as min and max corners.
func BoundsOf(pts []math.Vec2) (lo, hi math.Vec2) {
	if len(pts) == 0 {
		return
	}
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = math.Vec2{X: min(lo.X, p.X), Y: min(lo.Y, p.Y)}
		hi = math.Vec2{X: max(hi.X, p.X), Y: max(hi.Y, p.Y)}
	}
	return lo, hi
}
