package generate

import (
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// RoleBooleanCutter marks meshes meant to be subtracted from the playfield
// by downstream tools rather than rendered.
const RoleBooleanCutter = "boolean-cutter"

type kickerStyle struct {
	body         func() *geometry.Mesh
	plateFactor  float32
	zOffset      float32
	extraAngle   float32
	ignoreAngle  bool
	openGeometry bool
}

var kickerStyles = map[table.KickerType]kickerStyle{
	table.KickerHole:       {body: kickerHoleTemplate, plateFactor: 0.82, ignoreAngle: true},
	table.KickerHoleSimple: {body: kickerHoleTemplate, plateFactor: 0.82, ignoreAngle: true},
	table.KickerCup:        {body: kickerCupTemplate, plateFactor: 1, zOffset: -0.18, openGeometry: true},
	table.KickerCup2:       {body: kickerCup2Template, plateFactor: 0.87, openGeometry: true},
	table.KickerWilliams:   {body: kickerWilliamsTemplate, plateFactor: 0.88, extraAngle: 90},
	table.KickerGottlieb:   {body: kickerGottliebTemplate, plateFactor: 0.88},
}

func (c *Context) kicker(obj *table.Object, k *table.Kicker, res *Result) {
	if k.Type == table.KickerInvisible {
		return
	}
	style, ok := kickerStyles[k.Type]
	if !ok {
		res.warn(obj, "unknown kicker type %d, skipped", int(k.Type))
		return
	}
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}

	angle := obj.Rotation.Z + style.extraAngle
	if style.ignoreAngle {
		angle = 0
	}
	r := k.Radius
	body := math.Translate(0, 0, style.zOffset).
		Then(math.Scale(r, r, r)).
		Then(math.RotateZ(math.Radians(angle)))
	pr := r * style.plateFactor
	plate := math.Scale(pr, pr, r)

	translation := math.V3(obj.Position.X, obj.Position.Y, surface)
	res.add(obj, NamedMesh{
		Name:        obj.Name,
		Mesh:        style.body().Transformed(body),
		Translation: translation,
		Material:    obj.Material,
		DoubleSided: style.openGeometry,
	})
	res.add(obj, NamedMesh{
		Name:        obj.Name + "Plate",
		Mesh:        kickerPlateTemplate().Transformed(plate),
		Translation: translation,
		Material:    obj.Material,
		Extras:      map[string]string{"role": RoleBooleanCutter},
	})
}
