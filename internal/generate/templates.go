package generate

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
)

// Templates are built once and shared by every export. They must never be
// mutated: generators only read them through Transformed, which copies.

const (
	latheSegments = 24
	wireSegments  = 8
)

func pp(axial, radius float32) geometry.ProfilePoint {
	return geometry.ProfilePoint{Axial: axial, Radius: radius}
}

// creased repeats every inner point so the lathe keeps hard edges there.
func creased(pts ...geometry.ProfilePoint) []geometry.ProfilePoint {
	out := make([]geometry.ProfilePoint, 0, 2*len(pts))
	for i, p := range pts {
		out = append(out, p)
		if i > 0 && i < len(pts)-1 {
			out = append(out, p)
		}
	}
	return out
}

func lathe(profile []geometry.ProfilePoint) *geometry.Mesh {
	return geometry.Lathe(profile, latheSegments)
}

func joined(parts ...*geometry.Mesh) *geometry.Mesh {
	m := &geometry.Mesh{}
	for _, p := range parts {
		m.Append(p)
	}
	return m
}

func arc(center math.Vec3, radius, from, to float32, steps int) []math.Vec3 {
	pts := make([]math.Vec3, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := from + (to-from)*float32(i)/float32(steps)
		s, c := math32.Sincos(a)
		pts = append(pts, center.Add(math.Vec3{X: radius * c, Y: radius * s}))
	}
	return pts
}

// Bumper parts have unit radius and unit height.
var (
	bumperBaseTemplate = sync.OnceValue(func() *geometry.Mesh {
		return lathe(creased(pp(0, 0), pp(0, 1), pp(0.12, 1), pp(0.16, 0.8), pp(0.16, 0)))
	})
	bumperSocketTemplate = sync.OnceValue(func() *geometry.Mesh {
		return lathe(creased(pp(0.16, 0), pp(0.16, 0.45), pp(0.55, 0.45), pp(0.55, 0)))
	})
	bumperRingTemplate = sync.OnceValue(func() *geometry.Mesh {
		return lathe(creased(pp(0.45, 0.62), pp(0.45, 0.85), pp(0.6, 0.85), pp(0.6, 0.62), pp(0.45, 0.62)))
	})
	bumperCapTemplate = sync.OnceValue(func() *geometry.Mesh {
		return lathe([]geometry.ProfilePoint{
			pp(0.6, 0), pp(0.6, 0.95), pp(0.6, 0.95),
			pp(0.75, 0.93), pp(0.88, 0.8), pp(0.96, 0.5), pp(1, 0),
		})
	})
)

// Target templates are sized for a scale of 1; the object scale is the
// target size.
var targetTemplates = sync.OnceValue(func() map[targetShape]*geometry.Mesh {
	post := geometry.Box(math.V3(-0.08, -0.08, 0), math.V3(0.08, 0.08, 0.35))
	face := func(lo, hi math.Vec3) *geometry.Mesh {
		return joined(post, geometry.Box(lo, hi))
	}
	round := geometry.Cylinder(0.55, -0.06, 0.06, latheSegments).
		Transformed(math.RotateX(math32.Pi / 2).Then(math.Translate(0, 0, 0.9)))
	return map[targetShape]*geometry.Mesh{
		targetDropBeveled: joined(
			geometry.Box(math.V3(-0.78, -0.12, 0), math.V3(0.78, 0.12, 1.55)),
			geometry.Box(math.V3(-0.7, -0.06, 1.55), math.V3(0.7, 0.06, 1.7)),
		),
		targetDropSimple:   geometry.Box(math.V3(-0.78, -0.12, 0), math.V3(0.78, 0.12, 1.6)),
		targetDropFlat:     geometry.Box(math.V3(-0.78, -0.04, 0), math.V3(0.78, 0.04, 1.6)),
		targetHitRound:     joined(post, round),
		targetHitRectangle: face(math.V3(-0.6, -0.05, 0.35), math.V3(0.6, 0.05, 1.5)),
		targetHitFatRect:   face(math.V3(-0.6, -0.3, 0.35), math.V3(0.6, 0.3, 1.5)),
		targetHitFatSquare: face(math.V3(-0.5, -0.3, 0.5), math.V3(0.5, 0.3, 1.5)),
		targetHitFatSlim:   face(math.V3(-0.25, -0.3, 0.35), math.V3(0.25, 0.3, 1.5)),
		targetHitSlim:      face(math.V3(-0.25, -0.05, 0.35), math.V3(0.25, 0.05, 1.5)),
	}
})

type targetShape int

const (
	targetDropBeveled targetShape = iota
	targetDropSimple
	targetDropFlat
	targetHitRound
	targetHitRectangle
	targetHitFatRect
	targetHitFatSquare
	targetHitFatSlim
	targetHitSlim
)

// Trigger templates. Wire shapes are in table units around the trigger
// centre; button and star have unit radius.
type triggerTemplate int

const (
	triggerTemplateWire triggerTemplate = iota
	triggerTemplateWireD
	triggerTemplateStar
	triggerTemplateButton
	triggerTemplateInder
)

// triggerWireRadius is the bare wire radius before the wire thickness is
// added.
const triggerWireRadius = 0.5

var triggerTemplates = sync.OnceValues(func() (map[triggerTemplate]*geometry.Mesh, error) {
	wire := func(halfWidth, length, lift float32) *geometry.Mesh {
		var path []math.Vec3
		path = append(path, math.V3(-halfWidth, length, -3), math.V3(-halfWidth, length-3, lift))
		path = append(path, arc(math.V3(0, -length+halfWidth, lift), halfWidth, math32.Pi, 2*math32.Pi, 12)...)
		path = append(path, math.V3(halfWidth, length-3, lift), math.V3(halfWidth, length, -3))
		return geometry.Tube(path, triggerWireRadius, wireSegments, false)
	}

	star := func() (*geometry.Mesh, error) {
		outline := make([]math.Vec2, 10)
		for i := range outline {
			r := float32(1)
			if i%2 == 1 {
				r = 0.45
			}
			s, c := math32.Sincos(math32.Pi/2 + float32(i)*math32.Pi/5)
			outline[i] = math.V2(r*c, r*s)
		}
		side, err := geometry.ExtrudeSide(outline, nil, 0, 0.2)
		if err != nil {
			return nil, fmt.Errorf("star side: %w", err)
		}
		top, err := geometry.Cap(outline, 0.2, true, nil)
		if err != nil {
			return nil, fmt.Errorf("star top: %w", err)
		}
		return joined(side, top), nil
	}

	inder := []math.Vec3{
		math.V3(-10, -20, 1), math.V3(10, -20, 1),
		math.V3(10, 20, 1), math.V3(-10, 20, 1),
	}

	starMesh, err := star()
	if err != nil {
		return nil, err
	}
	return map[triggerTemplate]*geometry.Mesh{
		triggerTemplateWire:   wire(10, 25, 2),
		triggerTemplateWireD:  wire(13, 28, 4),
		triggerTemplateStar:   starMesh,
		triggerTemplateButton: lathe(creased(pp(0, 0), pp(0, 1), pp(0.1, 1), pp(0.22, 0.85), pp(0.28, 0))),
		triggerTemplateInder:  geometry.Tube(inder, triggerWireRadius, wireSegments, true),
	}, nil
})

// Kicker bodies have unit radius; the plate is a cutter puck reaching below
// the playfield.
var (
	kickerPlateTemplate = sync.OnceValue(func() *geometry.Mesh {
		return geometry.Cylinder(1, -1, 0.02, latheSegments)
	})
	kickerHoleTemplate = sync.OnceValue(func() *geometry.Mesh {
		return lathe(creased(pp(0, 1), pp(-1, 1), pp(-1, 0)))
	})
	kickerCupTemplate = sync.OnceValue(func() *geometry.Mesh {
		return lathe(creased(pp(0, 1.1), pp(0.15, 1), pp(0.15, 0.85), pp(-0.5, 0.8), pp(-0.8, 0)))
	})
	kickerCup2Template = sync.OnceValue(func() *geometry.Mesh {
		return lathe(creased(pp(0, 1.08), pp(0.08, 1), pp(0.08, 0.88), pp(-0.45, 0.82), pp(-0.6, 0)))
	})
	kickerWilliamsTemplate = sync.OnceValue(func() *geometry.Mesh {
		return lathe(creased(pp(0, 1.12), pp(0.05, 1.05), pp(0.05, 0.95), pp(-1, 0.95), pp(-1, 0)))
	})
	kickerGottliebTemplate = sync.OnceValue(func() *geometry.Mesh {
		return lathe(creased(pp(0, 1.15), pp(0.03, 1.1), pp(0.03, 0.92), pp(-0.9, 0.9), pp(-0.9, 0)))
	})
)

// Gate and spinner parts are sized for a length of 1 with the axle on the
// X axis.
var (
	gateBracketTemplate = sync.OnceValue(func() *geometry.Mesh {
		return joined(
			geometry.Box(math.V3(-0.56, -0.025, -0.06), math.V3(-0.5, 0.025, 0.06)),
			geometry.Box(math.V3(0.5, -0.025, -0.06), math.V3(0.56, 0.025, 0.06)),
		)
	})
	gateAxle = func() *geometry.Mesh {
		return geometry.Tube([]math.Vec3{math.V3(-0.5, 0, 0), math.V3(0.5, 0, 0)}, 0.012, wireSegments, false)
	}
	gateWireWTemplate = sync.OnceValue(func() *geometry.Mesh {
		path := []math.Vec3{
			math.V3(-0.45, 0, 0), math.V3(-0.45, 0, -0.45), math.V3(-0.15, 0, -0.3),
			math.V3(0, 0, -0.45), math.V3(0.15, 0, -0.3), math.V3(0.45, 0, -0.45),
			math.V3(0.45, 0, 0),
		}
		return joined(gateAxle(), geometry.Tube(path, 0.012, wireSegments, false))
	})
	gateWireRectangleTemplate = sync.OnceValue(func() *geometry.Mesh {
		path := []math.Vec3{
			math.V3(-0.45, 0, 0), math.V3(-0.45, 0, -0.5),
			math.V3(0.45, 0, -0.5), math.V3(0.45, 0, 0),
		}
		return joined(gateAxle(), geometry.Tube(path, 0.012, wireSegments, false))
	})
	gatePlateTemplate = sync.OnceValue(func() *geometry.Mesh {
		return joined(gateAxle(), geometry.Box(math.V3(-0.45, -0.015, -0.5), math.V3(0.45, 0.015, 0)))
	})
	gateLongPlateTemplate = sync.OnceValue(func() *geometry.Mesh {
		return joined(gateAxle(), geometry.Box(math.V3(-0.45, -0.015, -0.7), math.V3(0.45, 0.015, 0)))
	})

	spinnerBracketTemplate = sync.OnceValue(func() *geometry.Mesh {
		return joined(
			geometry.Box(math.V3(-0.56, -0.03, -0.05), math.V3(-0.5, 0.03, 0.12)),
			geometry.Box(math.V3(0.5, -0.03, -0.05), math.V3(0.56, 0.03, 0.12)),
			geometry.Box(math.V3(-0.56, -0.03, 0.12), math.V3(0.56, 0.03, 0.16)),
		)
	})
	spinnerPlateTemplate = sync.OnceValue(func() *geometry.Mesh {
		return joined(gateAxle(), geometry.Box(math.V3(-0.48, -0.01, -0.45), math.V3(0.48, 0.01, 0)))
	})
)

// Light parts have unit radius.
var (
	bulbTemplate = sync.OnceValue(func() *geometry.Mesh {
		return geometry.Sphere(0.6, 12, latheSegments).Transformed(math.Translate(0, 0, 0.9))
	})
	bulbSocketTemplate = sync.OnceValue(func() *geometry.Mesh {
		return geometry.Cylinder(0.3, 0, 0.35, latheSegments)
	})
	ballTemplate = sync.OnceValue(func() *geometry.Mesh {
		return geometry.Sphere(1, 16, 32)
	})
)
