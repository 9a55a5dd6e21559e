package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/math"
)

// ControlPoint is an authored point of an outline or path.
type ControlPoint struct {
	Position math.Vec3
	Smooth   bool
}

// SplinePoint is a point on the subdivided curve.
type SplinePoint struct {
	Position math.Vec3
	// Smooth is false only at sharp authored corners.
	Smooth bool
	// Control marks points that came from an authored control point.
	Control bool
}

const maxSplineDepth = 6

// Subdivide turns control points into a polyline. Segments touching a smooth
// control point follow a centripetal Catmull-Rom curve, the others stay
// straight. Smaller accuracy values give finer curves. A closed curve does
// not repeat its first point.
func Subdivide(ctrl []ControlPoint, closed bool, accuracy float32) []SplinePoint {
	n := len(ctrl)
	if n < 2 {
		out := make([]SplinePoint, n)
		for i, c := range ctrl {
			out[i] = SplinePoint{Position: c.Position, Smooth: c.Smooth, Control: true}
		}
		return out
	}
	tol := float32(0.05)
	if accuracy > 0 {
		tol = math32.Sqrt(accuracy) / 8
	}

	segments := n - 1
	if closed {
		segments = n
	}

	out := make([]SplinePoint, 0, n*4)
	out = append(out, SplinePoint{Position: ctrl[0].Position, Smooth: ctrl[0].Smooth, Control: true})
	for s := 0; s < segments; s++ {
		i1 := s
		i2 := (s + 1) % n
		p1, p2 := ctrl[i1], ctrl[i2]
		last := closed && s == segments-1

		if p1.Smooth || p2.Smooth {
			p0 := neighbor(ctrl, i1, -1, closed)
			p3 := neighbor(ctrl, i2, +1, closed)
			if !p1.Smooth {
				p0 = p1.Position.Sub(p2.Position.Sub(p1.Position))
			}
			if !p2.Smooth {
				p3 = p2.Position.Add(p2.Position.Sub(p1.Position))
			}
			c := newCentripetal(p0, p1.Position, p2.Position, p3)
			c.subdivide(c.t1, c.t2, tol, 0, &out)
		}
		if !last {
			out = append(out, SplinePoint{Position: p2.Position, Smooth: p2.Smooth, Control: true})
		}
	}
	return out
}

// neighbor returns the control point step positions away, mirroring past the
// ends of an open path.
func neighbor(ctrl []ControlPoint, i, step int, closed bool) math.Vec3 {
	n := len(ctrl)
	j := i + step
	if closed {
		return ctrl[(j+n)%n].Position
	}
	if j < 0 || j >= n {
		p := ctrl[i].Position
		o := ctrl[i-step].Position
		return p.Add(p.Sub(o))
	}
	return ctrl[j].Position
}

type centripetal struct {
	p0, p1, p2, p3 math.Vec3
	t0, t1, t2, t3 float32
}

func newCentripetal(p0, p1, p2, p3 math.Vec3) centripetal {
	knot := func(a, b math.Vec3) float32 {
		d := math32.Sqrt(a.Distance(b))
		if d < 1e-4 {
			return 1
		}
		return d
	}
	c := centripetal{p0: p0, p1: p1, p2: p2, p3: p3}
	c.t1 = c.t0 + knot(p0, p1)
	c.t2 = c.t1 + knot(p1, p2)
	c.t3 = c.t2 + knot(p2, p3)
	return c
}

// at evaluates the curve with the Barry-Goldman pyramid.
func (c centripetal) at(t float32) math.Vec3 {
	lerp := func(a, b math.Vec3, ta, tb float32) math.Vec3 {
		return a.Lerp(b, (t-ta)/(tb-ta))
	}
	a1 := lerp(c.p0, c.p1, c.t0, c.t1)
	a2 := lerp(c.p1, c.p2, c.t1, c.t2)
	a3 := lerp(c.p2, c.p3, c.t2, c.t3)
	b1 := lerp(a1, a2, c.t0, c.t2)
	b2 := lerp(a2, a3, c.t1, c.t3)
	return lerp(b1, b2, c.t1, c.t2)
}

// subdivide appends interior curve points between ta and tb, excluding both
// ends.
func (c centripetal) subdivide(ta, tb, tol float32, depth int, out *[]SplinePoint) {
	tm := (ta + tb) / 2
	mid := c.at(tm)
	chord := c.at(ta).Lerp(c.at(tb), 0.5)
	if depth >= maxSplineDepth || (depth > 0 && mid.Distance(chord) < tol) {
		return
	}
	c.subdivide(ta, tm, tol, depth+1, out)
	*out = append(*out, SplinePoint{Position: mid, Smooth: true})
	c.subdivide(tm, tb, tol, depth+1, out)
}

// Positions2D returns the XY coordinates of the points.
func Positions2D(pts []SplinePoint) []math.Vec2 {
	out := make([]math.Vec2, len(pts))
	for i, p := range pts {
		out[i] = p.Position.XY()
	}
	return out
}

// CumulativeLengths returns the running XY path length at every point,
// starting at 0. For closed paths the closing edge is added as a final entry.
func CumulativeLengths(pts []math.Vec2, closed bool) []float32 {
	n := len(pts)
	if n == 0 {
		return nil
	}
	size := n
	if closed {
		size++
	}
	out := make([]float32, size)
	for i := 1; i < size; i++ {
		out[i] = out[i-1] + pts[i%n].Distance(pts[i-1])
	}
	return out
}
