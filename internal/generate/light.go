package generate

import (
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
	"github.com/Faultbox/vpxglb/pkg/transform"
)

var (
	bulbTint   = Tint{Color: [4]float32{1, 1, 1, 0.2}, Roughness: 0.05}
	socketTint = Tint{Color: [4]float32{0.094, 0.094, 0.094, 1}, Metallic: 1, Roughness: 0.4}
)

// bulbLift keeps bulbs authored at Z = 0 off the playfield.
var bulbLift = transform.MMToUnits(10)

func (c *Context) light(obj *table.Object, l *table.Light, res *Result) {
	if !l.ShowBulbMesh || l.Backglass {
		return
	}
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}
	z := surface + obj.Position.Z
	if obj.Position.Z == 0 {
		z = surface + bulbLift
	}
	translation := math.V3(obj.Position.X, obj.Position.Y, z)
	place := math.Scale(l.MeshRadius, l.MeshRadius, l.MeshRadius)

	bulb, socket := bulbTint, socketTint
	res.add(obj, NamedMesh{
		Name:        obj.Name + "Bulb",
		Mesh:        bulbTemplate().Transformed(place),
		Translation: translation,
		Tint:        &bulb,
		AlphaBlend:  true,
	})
	res.add(obj, NamedMesh{
		Name:        obj.Name + "Socket",
		Mesh:        bulbSocketTemplate().Transformed(place),
		Translation: translation,
		Tint:        &socket,
	})
}
