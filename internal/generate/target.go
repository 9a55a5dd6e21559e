package generate

import (
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// Dropped targets sit below the playfield.
const droppedTargetOffset = -52

var targetShapes = map[table.TargetType]targetShape{
	table.DropTargetBeveled:     targetDropBeveled,
	table.DropTargetSimple:      targetDropSimple,
	table.DropTargetFlatSimple:  targetDropFlat,
	table.HitTargetRound:        targetHitRound,
	table.HitTargetRectangle:    targetHitRectangle,
	table.HitFatTargetRectangle: targetHitFatRect,
	table.HitFatTargetSquare:    targetHitFatSquare,
	table.HitFatTargetSlim:      targetHitFatSlim,
	table.HitTargetSlim:         targetHitSlim,
}

func (c *Context) target(obj *table.Object, t *table.Target, res *Result) {
	shape, ok := targetShapes[t.Type]
	if !ok {
		res.warn(obj, "unknown target type %d, skipped", int(t.Type))
		return
	}
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}
	size := obj.Scale
	place := math.Scale(size.X, size.Y, size.Z).
		Then(math.RotateZ(math.Radians(obj.Rotation.Z)))

	translation := obj.Position.Add(math.V3(0, 0, surface))
	if t.IsDropped && t.Type.IsDrop() {
		translation.Z += droppedTargetOffset
	}
	res.add(obj, NamedMesh{
		Name:        obj.Name,
		Mesh:        targetTemplates()[shape].Transformed(place),
		Translation: translation,
		Material:    obj.Material,
		Texture:     obj.Image,
	})
}
