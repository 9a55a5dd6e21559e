package generate

import (
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// Wire rails sit this far above the ramp path.
const rampLowerRailLift = 3

// rampSection is one cross-section of the ramp path.
type rampSection struct {
	pos    math.Vec2
	normal math.Vec2 // points to the left of the direction of travel
	height float32
	width  float32
	pct    float32
}

// minRampLength is the shortest path that still gives the ramp a direction.
const minRampLength = 1e-3

// rampSections returns the cross-sections along the ramp path and the path
// length.
func rampSections(r *table.Ramp) ([]rampSection, float32) {
	sp := geometry.Subdivide(controlPoints(r.DragPoints), false, detailAccuracy(r.DetailLevel))
	pts := geometry.Positions2D(sp)
	lengths := geometry.CumulativeLengths(pts, false)
	total := lengths[len(lengths)-1]

	out := make([]rampSection, len(pts))
	for i, p := range pts {
		var pct float32
		if total > 0 {
			pct = lengths[i] / total
		}
		prev, next := pts[max(i-1, 0)], pts[min(i+1, len(pts)-1)]
		t := next.Sub(prev).Normalize()
		out[i] = rampSection{
			pos:    p,
			normal: math.V2(-t.Y, t.X),
			height: sp[i].Position.Z + pct*(r.HeightTop-r.HeightBottom) + r.HeightBottom,
			width:  r.WidthBottom + pct*(r.WidthTop-r.WidthBottom),
			pct:    pct,
		}
	}
	return out, total
}

func (c *Context) ramp(obj *table.Object, r *table.Ramp, res *Result) {
	if len(r.DragPoints) < 2 {
		res.warn(obj, "ramp needs at least 2 drag points, has %d", len(r.DragPoints))
		return
	}
	if !r.Type.Valid() {
		res.warn(obj, "unknown ramp type %d, skipped", int(r.Type))
		return
	}
	sections, length := rampSections(r)
	if length < minRampLength {
		res.warn(obj, "ramp path has no length, skipped")
		return
	}
	if r.Type == table.RampFlat {
		c.flatRamp(obj, r, sections, res)
		return
	}
	c.wireRamp(obj, r, sections, res)
}

func (c *Context) flatRamp(obj *table.Object, r *table.Ramp, sections []rampSection, res *Result) {
	n := len(sections)
	right := make([]geometry.Vertex, n)
	left := make([]geometry.Vertex, n)
	for i, s := range sections {
		half := s.normal.Scale(s.width / 2)
		rp, lp := s.pos.Sub(half), s.pos.Add(half)
		ru, lu := math.V2(0, s.pct), math.V2(1, s.pct)
		if r.ImageAlignment == table.AlignWorld {
			ru, lu = c.tableUV(rp), c.tableUV(lp)
		}
		right[i] = geometry.Vertex{Position: rp.Vec3(s.height), UV: ru}
		left[i] = geometry.Vertex{Position: lp.Vec3(s.height), UV: lu}
	}
	res.add(obj, NamedMesh{
		Name:     obj.Name,
		Mesh:     geometry.Ribbon(right, left),
		Material: obj.Material,
		Texture:  obj.Image,
	})

	raise := func(rail []geometry.Vertex, by float32) []geometry.Vertex {
		out := make([]geometry.Vertex, len(rail))
		for i, v := range rail {
			v.Position.Z += by
			v.UV = math.V2(sections[i].pct, 0)
			out[i] = v
		}
		return out
	}
	drop := func(rail []geometry.Vertex) []geometry.Vertex {
		out := make([]geometry.Vertex, len(rail))
		for i, v := range rail {
			v.UV = math.V2(sections[i].pct, 1)
			out[i] = v
		}
		return out
	}
	if h := r.RightWallHeightVisible; h > 0 {
		m := geometry.Ribbon(drop(right), raise(right, h))
		m.AddBackFaces()
		res.add(obj, NamedMesh{Name: obj.Name + "RightWall", Mesh: m, Material: obj.Material, DoubleSided: true})
	}
	if h := r.LeftWallHeightVisible; h > 0 {
		m := geometry.Ribbon(raise(left, h), drop(left))
		m.AddBackFaces()
		res.add(obj, NamedMesh{Name: obj.Name + "LeftWall", Mesh: m, Material: obj.Material, DoubleSided: true})
	}
}

// wireRamp sweeps one tube per rail. Lower rails run just above the path,
// upper rails half the wire distance higher.
func (c *Context) wireRamp(obj *table.Object, r *table.Ramp, sections []rampSection, res *Result) {
	radius := r.WireDiameter / 2
	if radius <= 0 {
		res.warn(obj, "wire diameter %.2f is not positive, skipped", r.WireDiameter)
		return
	}
	rail := func(side, lift float32) []math.Vec3 {
		path := make([]math.Vec3, len(sections))
		for i, s := range sections {
			path[i] = s.pos.Add(s.normal.Scale(side)).Vec3(s.height + lift)
		}
		return path
	}

	dx := r.WireDistanceX / 2
	upper := r.WireDistanceY * 0.5
	var rails [][]math.Vec3
	switch r.Type {
	case table.RampOneWire:
		rails = append(rails, rail(0, rampLowerRailLift))
	case table.RampTwoWire:
		rails = append(rails, rail(-dx, rampLowerRailLift), rail(dx, rampLowerRailLift))
	case table.RampThreeWireLeft:
		rails = append(rails, rail(-dx, rampLowerRailLift), rail(dx, rampLowerRailLift), rail(dx, upper))
	case table.RampThreeWireRight:
		rails = append(rails, rail(-dx, rampLowerRailLift), rail(dx, rampLowerRailLift), rail(-dx, upper))
	case table.RampFourWire:
		rails = append(rails,
			rail(-dx, rampLowerRailLift), rail(dx, rampLowerRailLift),
			rail(-dx, upper), rail(dx, upper))
	}

	m := &geometry.Mesh{}
	for _, path := range rails {
		m.Append(geometry.Tube(path, radius, wireSegments, false))
	}
	res.add(obj, NamedMesh{
		Name:     obj.Name,
		Mesh:     m,
		Material: obj.Material,
	})
}
