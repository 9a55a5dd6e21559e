package generate

import (
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

func (c *Context) ball(obj *table.Object, b *table.Ball, res *Result) {
	if b.Radius <= 0 {
		res.warn(obj, "ball radius %.2f is not positive, skipped", b.Radius)
		return
	}
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}
	z := obj.Position.Z
	if z == 0 {
		z = surface + b.Radius
	}
	rgb := b.Color.Floats()
	res.add(obj, NamedMesh{
		Name:        obj.Name,
		Mesh:        ballTemplate().Transformed(math.Scale(b.Radius, b.Radius, b.Radius)),
		Translation: math.V3(obj.Position.X, obj.Position.Y, z),
		Material:    obj.Material,
		Texture:     firstNonEmpty(obj.Image, c.Table.BallImage),
		Tint: &Tint{
			Color:     [4]float32{rgb[0], rgb[1], rgb[2], 1},
			Metallic:  1,
			Roughness: 0.1,
		},
	})
}
