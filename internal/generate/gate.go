package generate

import (
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

var gateTemplates = map[table.GateType]func() *geometry.Mesh{
	table.GateWireW:         gateWireWTemplate,
	table.GateWireRectangle: gateWireRectangleTemplate,
	table.GatePlate:         gatePlateTemplate,
	table.GateLongPlate:     gateLongPlateTemplate,
}

// axleParts places the bracket and the moving part of gates and spinners:
// turned by the orientation, scaled by the length, axle at height above
// the surface.
func (c *Context) axleParts(obj *table.Object, length, height float32, bracket bool,
	bracketMesh, part *geometry.Mesh, partSuffix string, res *Result) {
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}
	place := math.RotateZ(math.Radians(obj.Rotation.Z)).
		Then(math.Scale(length, length, length))
	translation := math.V3(obj.Position.X, obj.Position.Y, surface+height)

	if bracket {
		res.add(obj, NamedMesh{
			Name:        obj.Name + "Bracket",
			Mesh:        bracketMesh.Transformed(place),
			Translation: translation,
			Material:    obj.Material,
		})
	}
	res.add(obj, NamedMesh{
		Name:        obj.Name + partSuffix,
		Mesh:        part.Transformed(place),
		Translation: translation,
		Material:    obj.Material,
		Texture:     obj.Image,
	})
}

func (c *Context) gate(obj *table.Object, g *table.Gate, res *Result) {
	tmpl, ok := gateTemplates[g.Type]
	if !ok {
		res.warn(obj, "unknown gate type %d, skipped", int(g.Type))
		return
	}
	suffix := "Wire"
	if g.Type == table.GatePlate || g.Type == table.GateLongPlate {
		suffix = "Plate"
	}
	c.axleParts(obj, g.Length, g.Height, g.ShowBracket, gateBracketTemplate(), tmpl(), suffix, res)
}

func (c *Context) spinner(obj *table.Object, s *table.Spinner, res *Result) {
	c.axleParts(obj, s.Length, s.Height, s.ShowBracket, spinnerBracketTemplate(), spinnerPlateTemplate(), "Plate", res)
}
