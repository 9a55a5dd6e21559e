package generate

import (
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
	"github.com/Faultbox/vpxglb/pkg/transform"
)

func (c *Context) flasher(obj *table.Object, f *table.Flasher, res *Result) {
	if len(f.DragPoints) < 3 {
		res.warn(obj, "flasher needs at least 3 drag points, has %d", len(f.DragPoints))
		return
	}
	pts, _ := outline(f.DragPoints, detailAccuracy(flasherDetail))
	lo, hi := geometry.BoundsOf(pts)
	center := lo.Add(hi).Scale(0.5)

	uv := boundsUV(lo, hi)
	if f.ImageAlignment == table.AlignWorld {
		uv = c.tableUV
	}
	local := make([]math.Vec2, len(pts))
	for i, p := range pts {
		local[i] = p.Sub(center)
	}
	face, err := geometry.Cap(local, 0, true, func(p math.Vec2) math.Vec2 {
		return uv(p.Add(center))
	})
	if err != nil {
		res.warn(obj, "flasher outline: %v", err)
		return
	}

	rgb := f.Color.Floats()
	m := NamedMesh{
		Name:        obj.Name,
		Mesh:        face.Transformed(transform.RotationZYX(obj.Rotation)),
		Translation: center.Vec3(f.Height),
		Material:    obj.Material,
		Texture:     obj.Image,
		Tint: &Tint{
			Color:     [4]float32{rgb[0], rgb[1], rgb[2], math.Clamp(f.Alpha/100, 0, 1)},
			Roughness: 0.5,
		},
		AlphaBlend:  true,
		DoubleSided: true,
	}
	if f.AddBlend {
		m.Extras = map[string]string{"add_blend": "true"}
	}
	res.add(obj, m)
}
