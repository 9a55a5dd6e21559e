package generate

import (
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
	"github.com/Faultbox/vpxglb/pkg/transform"
)

func (c *Context) rubber(obj *table.Object, r *table.Rubber, res *Result) {
	if len(r.DragPoints) < 3 {
		res.warn(obj, "rubber needs at least 3 drag points, has %d", len(r.DragPoints))
		return
	}
	if r.Thickness <= 0 {
		res.warn(obj, "rubber thickness %.2f is not positive, skipped", r.Thickness)
		return
	}
	height := r.Height
	if r.HitHeight != nil {
		height = *r.HitHeight
	}

	pts, _ := outline(r.DragPoints, rubberAccuracy)
	lo, hi := geometry.BoundsOf(pts)
	center := lo.Add(hi).Scale(0.5)
	path := make([]math.Vec3, len(pts))
	for i, p := range pts {
		path[i] = p.Sub(center).Vec3(0)
	}

	tube := geometry.Tube(path, r.Thickness/2, rubberSegments, true)
	res.add(obj, NamedMesh{
		Name:        obj.Name,
		Mesh:        tube.Transformed(transform.RotationZYX(obj.Rotation)),
		Translation: center.Vec3(height),
		Material:    obj.Material,
		Texture:     obj.Image,
	})
}
