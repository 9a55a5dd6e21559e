package generate

import (
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// triggerStyle is how one trigger shape uses its template.
type triggerStyle struct {
	template triggerTemplate
	// tilt is a fixed rotation around X in degrees, applied before the
	// orientation.
	tilt    float32
	zOffset float32
	// uniform scales by the radius; otherwise by scale X/Y with Z kept.
	uniform bool
	wire    bool
}

var triggerStyles = map[table.TriggerShape]triggerStyle{
	table.TriggerWireA:  {template: triggerTemplateWire, wire: true},
	table.TriggerWireB:  {template: triggerTemplateWire, tilt: -23, wire: true},
	table.TriggerWireC:  {template: triggerTemplateWire, tilt: 140, zOffset: -19, wire: true},
	table.TriggerWireD:  {template: triggerTemplateWireD, wire: true},
	table.TriggerInder:  {template: triggerTemplateInder, wire: true},
	table.TriggerStar:   {template: triggerTemplateStar, uniform: true},
	table.TriggerButton: {template: triggerTemplateButton, zOffset: 5, uniform: true},
}

// placeTrigger rotates the template, then scales it and finally pushes
// wire shapes out along their rotated normals by the wire thickness.
func placeTrigger(mesh *geometry.Mesh, style triggerStyle, obj *table.Object, t *table.Trigger) *geometry.Mesh {
	rotated := mesh.Transformed(math.RotateX(math.Radians(style.tilt)).
		Then(math.RotateZ(math.Radians(obj.Rotation.Z))))

	var scale math.Mat4
	if style.uniform {
		scale = math.Scale(t.Radius, t.Radius, t.Radius)
	} else {
		scale = math.Scale(obj.Scale.X, obj.Scale.Y, 1)
	}
	out := rotated.Transformed(scale)

	if style.wire && t.WireThickness != 0 {
		for i := range out.Vertices {
			v := &out.Vertices[i]
			v.Position = v.Position.Add(rotated.Vertices[i].Normal.Scale(t.WireThickness))
		}
	}
	return out
}

func (c *Context) trigger(obj *table.Object, t *table.Trigger, res *Result) {
	if t.Shape == table.TriggerNone {
		return
	}
	style, ok := triggerStyles[t.Shape]
	if !ok {
		res.warn(obj, "unknown trigger shape %d, skipped", int(t.Shape))
		return
	}
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}

	templates, err := triggerTemplates()
	if err != nil {
		res.warn(obj, "trigger template: %v, skipped", err)
		return
	}

	res.add(obj, NamedMesh{
		Name:        obj.Name,
		Mesh:        placeTrigger(templates[style.template], style, obj, t),
		Translation: math.V3(obj.Position.X, obj.Position.Y, surface+style.zOffset),
		Material:    obj.Material,
	})
}
