package generate

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/table"
)

func (c *Context) wall(obj *table.Object, w *table.Wall, res *Result) {
	if len(w.DragPoints) < 3 {
		res.warn(obj, "wall needs at least 3 drag points, has %d", len(w.DragPoints))
		return
	}
	pts, smooth := outline(w.DragPoints, wallAccuracy)
	if math32.Abs(geometry.SignedArea(pts)) < 1e-3 {
		res.warn(obj, "wall outline has no area, skipped")
		return
	}

	if w.TopVisible {
		top, err := geometry.Cap(pts, w.HeightTop, true, c.tableUV)
		if err != nil {
			res.warn(obj, "wall top: %v", err)
		} else {
			res.add(obj, NamedMesh{
				Name:     obj.Name + "Top",
				Mesh:     top,
				Material: obj.Material,
				Texture:  obj.Image,
			})
		}
	}
	if w.SideVisible && w.HeightTop != w.HeightBottom {
		side, err := geometry.ExtrudeSide(pts, smooth, w.HeightBottom, w.HeightTop)
		if err != nil {
			res.warn(obj, "wall side: %v", err)
			return
		}
		res.add(obj, NamedMesh{
			Name:     obj.Name + "Side",
			Mesh:     side,
			Material: firstNonEmpty(w.SideMaterial, obj.Material),
			Texture:  w.SideImage,
		})
	}
}
