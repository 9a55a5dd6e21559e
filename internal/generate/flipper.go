package generate

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// Reference flipper: a base ring around the pivot and a tip ring further up
// +Y, both half circles, joined into one outline.
const (
	flipperRingPoints = 13
	flipperBaseRadius = 0.100762
	flipperTipRadius  = 0.101425
	flipperTipCenter  = 0.786319
	flipperBottomZ    = 0.003753
	flipperTopZ       = 1.004253
)

type flipperRing int

const (
	ringBase flipperRing = iota
	ringTip
)

type flipperPoint struct {
	pos  math.Vec2
	ring flipperRing
}

var flipperTemplate = sync.OnceValue(func() []flipperPoint {
	pts := make([]flipperPoint, 0, 2*flipperRingPoints)
	for i := 0; i < flipperRingPoints; i++ {
		a := -math32.Pi + math32.Pi*float32(i)/float32(flipperRingPoints-1)
		s, c := math32.Sincos(a)
		pts = append(pts, flipperPoint{pos: math.V2(flipperBaseRadius*c, flipperBaseRadius*s), ring: ringBase})
	}
	for i := 0; i < flipperRingPoints; i++ {
		a := math32.Pi * float32(i) / float32(flipperRingPoints-1)
		s, c := math32.Sincos(a)
		pts = append(pts, flipperPoint{pos: math.V2(flipperTipRadius*c, flipperTipCenter+flipperTipRadius*s), ring: ringTip})
	}
	return pts
})

// flipperFix moves every outline point onto the requested base and tip
// circles. The angular spread of each ring grows or shrinks with the taper
// so the straight sides stay tangent to both circles.
func flipperFix(baseRadius, tipRadius, length, taper float32) []math.Vec2 {
	sin := math.Clamp(taper/length, -1, 1)
	scale := math32.Asin(sin) / (math32.Pi / 2)

	tmpl := flipperTemplate()
	out := make([]math.Vec2, len(tmpl))
	for i, p := range tmpl {
		var ref, center math.Vec2
		var radius, mid float32
		if p.ring == ringBase {
			center, radius, mid = math.Vec2{}, baseRadius, -math32.Pi/2
		} else {
			ref = math.V2(0, flipperTipCenter)
			center, radius, mid = math.V2(0, length), tipRadius, math32.Pi/2
		}
		d := p.pos.Sub(ref)
		angle := math32.Atan2(d.Y, d.X)
		if mid < 0 && angle > 0 {
			angle -= 2 * math32.Pi
		} else if mid > 0 && angle < 0 {
			angle += 2 * math32.Pi
		}
		angle -= (angle - mid) * scale * math.Sign(mid)
		s, c := math32.Sincos(angle)
		out[i] = center.Add(math.V2(radius*c, radius*s))
	}
	return out
}

// flipperBody extrudes the fixed outline between the template heights and
// closes the top.
func flipperBody(outline []math.Vec2) (*geometry.Mesh, error) {
	smooth := make([]bool, len(outline))
	for i := range smooth {
		smooth[i] = true
	}
	side, err := geometry.ExtrudeSide(outline, smooth, flipperBottomZ, flipperTopZ)
	if err != nil {
		return nil, err
	}
	lo, hi := geometry.BoundsOf(outline)
	size := hi.Sub(lo)
	top, err := geometry.Cap(outline, flipperTopZ, true, func(p math.Vec2) math.Vec2 {
		return math.V2((p.X-lo.X)/size.X, (p.Y-lo.Y)/size.Y)
	})
	if err != nil {
		return nil, err
	}
	side.Append(top)
	return side, nil
}

func (c *Context) flipper(obj *table.Object, f *table.Flipper, res *Result) {
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}
	if f.FlipperRadiusMax <= 0 {
		res.warn(obj, "flipper length %.2f is not positive, skipped", f.FlipperRadiusMax)
		return
	}
	baseR := f.BaseRadius - f.RubberThickness
	tipR := f.EndRadius - f.RubberThickness
	if baseR <= 0 || tipR <= 0 {
		res.warn(obj, "flipper radii %.2f/%.2f do not exceed rubber thickness %.2f, skipped",
			f.BaseRadius, f.EndRadius, f.RubberThickness)
		return
	}

	taper := f.BaseRadius - f.EndRadius
	turn := math.RotateZ(math32.Pi)
	start := math.RotateZ(math.Radians(f.StartAngle))
	translation := math.V3(obj.Position.X, obj.Position.Y, surface)

	body, err := flipperBody(flipperFix(baseR, tipR, f.FlipperRadiusMax, taper))
	if err != nil {
		res.warn(obj, "flipper outline: %v", err)
		return
	}
	res.add(obj, NamedMesh{
		Name:        obj.Name + "Base",
		Mesh:        body.Transformed(turn.Then(math.Scale(1, 1, f.Height)).Then(start)),
		Translation: translation,
		Material:    obj.Material,
		Texture:     obj.Image,
	})

	if f.RubberThickness <= 0 {
		return
	}
	rubber, err := flipperBody(flipperFix(f.BaseRadius, f.EndRadius, f.FlipperRadiusMax, taper))
	if err != nil {
		res.warn(obj, "flipper rubber outline: %v", err)
		return
	}
	place := turn.
		Then(math.Scale(1, 1, f.RubberWidth)).
		Then(math.Translate(0, 0, f.RubberHeight)).
		Then(start)
	res.add(obj, NamedMesh{
		Name:        obj.Name + "Rubber",
		Mesh:        rubber.Transformed(place),
		Translation: translation,
		Material:    f.RubberMaterial,
	})
}
