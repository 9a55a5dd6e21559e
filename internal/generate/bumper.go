package generate

import (
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

func (c *Context) bumper(obj *table.Object, b *table.Bumper, res *Result) {
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}
	place := math.RotateZ(math.Radians(obj.Rotation.Z)).
		Then(math.Scale(b.Radius, b.Radius, b.HeightScale))
	translation := math.V3(obj.Position.X, obj.Position.Y, surface)

	parts := []struct {
		suffix   string
		visible  bool
		material string
		template func() *geometry.Mesh
	}{
		{"Base", b.BaseVisible, b.BaseMaterial, bumperBaseTemplate},
		{"Socket", b.SocketVisible, b.SocketMaterial, bumperSocketTemplate},
		{"Ring", b.RingVisible, b.RingMaterial, bumperRingTemplate},
		{"Cap", b.CapVisible, b.CapMaterial, bumperCapTemplate},
	}
	for _, p := range parts {
		if !p.visible {
			continue
		}
		res.add(obj, NamedMesh{
			Name:        obj.Name + p.suffix,
			Mesh:        p.template().Transformed(place),
			Translation: translation,
			Material:    firstNonEmpty(p.material, obj.Material),
		})
	}
}
