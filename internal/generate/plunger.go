package generate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// DefaultTipShape is the tip profile of the modern plunger.
const DefaultTipShape = "0 .34; 2 .6; 3 .64; 5 .7; 7 .84; 8 .88; 9 .9; 11 .92; 14 .92; 39 .84"

const (
	plungerSegments   = 16
	springTurnSamples = 24
	springWireSides   = 6
)

// ParseTipShape reads a "position diameter;" list. Diameters are relative to
// the plunger width and returned as radii. Malformed entries are dropped.
func ParseTipShape(s string) []geometry.ProfilePoint {
	var pts []geometry.ProfilePoint
	for _, entry := range strings.Split(s, ";") {
		fields := strings.Fields(entry)
		if len(fields) != 2 {
			continue
		}
		y, err := strconv.ParseFloat(fields[0], 32)
		if err != nil {
			continue
		}
		r, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			continue
		}
		pts = append(pts, pp(float32(y), float32(r)*0.5))
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Axial < pts[j].Axial })
	return pts
}

// helix winds a path around +Z between two axial positions.
func helix(radius, from, to, turns float32) []math.Vec3 {
	samples := max(int(turns*springTurnSamples), 2)
	path := make([]math.Vec3, samples+1)
	for i := range path {
		t := float32(i) / float32(samples)
		s, c := math32.Sincos(2 * math32.Pi * turns * t)
		path[i] = math.V3(radius*c, radius*s, from+(to-from)*t)
	}
	return path
}

// plunger builds the parts along +Z with the tip at 0 and then lays them
// along +Y, the direction from the playfield towards the player.
func (c *Context) plunger(obj *table.Object, p *table.Plunger, res *Result) {
	if !p.Type.Valid() {
		res.warn(obj, "unknown plunger type %d, skipped", int(p.Type))
		return
	}
	surface, ok := c.surfaceHeight(obj, res)
	if !ok {
		return
	}

	yTip := obj.Position.Y - p.Stroke
	zCenter := surface + p.ZAdjust + p.Height*0.5
	translation := math.V3(obj.Position.X, yTip, zCenter)
	lay := math.RotateX(-math32.Pi / 2)
	rRod := p.Width * p.RodDiam * 0.5

	add := func(suffix string, m *geometry.Mesh) {
		res.add(obj, NamedMesh{
			Name:        obj.Name + suffix,
			Mesh:        m.Transformed(lay),
			Translation: translation,
			Material:    obj.Material,
			Texture:     obj.Image,
		})
	}

	if p.Type == table.PlungerFlat {
		add("Rod", geometry.Cylinder(rRod, 0, p.Stroke, plungerSegments))
		return
	}

	shape := p.TipShape
	if p.Type == table.PlungerModern || strings.TrimSpace(shape) == "" {
		shape = DefaultTipShape
	}
	tip := ParseTipShape(shape)
	if len(tip) < 2 {
		res.warn(obj, "plunger tip shape %q has fewer than 2 points, skipped", shape)
		return
	}
	for i := range tip {
		tip[i].Radius *= p.Width
	}
	tipLength := tip[len(tip)-1].Axial

	ringStart := tipLength + p.RingGap
	ringEnd := ringStart + p.RingWidth
	// The rod base sits at y - height + stroke.
	rodEnd := 2*p.Stroke - p.Height
	rRing := p.Width * p.RingDiam * 0.5

	add("Tip", geometry.Lathe(tip, plungerSegments))
	add("Ring", geometry.Lathe(creased(pp(ringStart, rRod), pp(ringStart, rRing), pp(ringEnd, rRing), pp(ringEnd, rRod)), plungerSegments))
	if rodEnd > ringEnd {
		add("Rod", geometry.Lathe(creased(pp(ringEnd, rRod), pp(rodEnd, rRod), pp(rodEnd, 0)), plungerSegments))

		turns := p.SpringLoops + 2*p.SpringEndLoops
		if turns > 0 && p.SpringGauge > 0 {
			coil := helix(p.Width*0.5*p.SpringDiam, ringEnd, rodEnd, turns)
			add("Spring", geometry.Tube(coil, p.SpringGauge, springWireSides, false))
		}
	}
}
