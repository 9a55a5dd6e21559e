package generate

import (
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// decalLift keeps decals from fighting with the surface below.
const decalLift = 0.2

func (c *Context) decal(obj *table.Object, d *table.Decal, res *Result) {
	switch {
	case d.Type == table.DecalText:
		res.warn(obj, "text decals are not supported, skipped")
		return
	case d.Backglass:
		res.warn(obj, "backglass decals are not supported, skipped")
		return
	case obj.Image == "":
		res.warn(obj, "image decal without an image, skipped")
		return
	}
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}
	res.add(obj, NamedMesh{
		Name:        obj.Name,
		Mesh:        geometry.Quad(d.Width, d.Height, math.Radians(obj.Rotation.Z)),
		Translation: math.V3(obj.Position.X, obj.Position.Y, surface+decalLift),
		Material:    obj.Material,
		Texture:     obj.Image,
	})
}
