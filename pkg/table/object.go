package table

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/vpxglb/pkg/encoding"
	"github.com/Faultbox/vpxglb/pkg/math"
)

// Kind identifies the object variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindWall
	KindRamp
	KindRubber
	KindFlasher
	KindFlipper
	KindSpinner
	KindBumper
	KindTarget
	KindGate
	KindTrigger
	KindLight
	KindPlunger
	KindKicker
	KindDecal
	KindPrimitive
	KindPlayfield
	KindBall
)

var kindNames = map[Kind]string{
	KindWall:      "Wall",
	KindRamp:      "Ramp",
	KindRubber:    "Rubber",
	KindFlasher:   "Flasher",
	KindFlipper:   "Flipper",
	KindSpinner:   "Spinner",
	KindBumper:    "Bumper",
	KindTarget:    "Target",
	KindGate:      "Gate",
	KindTrigger:   "Trigger",
	KindLight:     "Light",
	KindPlunger:   "Plunger",
	KindKicker:    "Kicker",
	KindDecal:     "Decal",
	KindPrimitive: "Primitive",
	KindPlayfield: "Playfield",
	KindBall:      "Ball",
}

func (k Kind) String() string {
	if k == KindUnknown {
		return "Unknown"
	}
	return enumName(k, kindNames)
}

// ErrUnknownKind is reported for objects whose kind is not recognised.
var ErrUnknownKind = errors.New("unknown object kind")

// PlayfieldMeshName is the object name the engine treats as the playfield.
const PlayfieldMeshName = "playfield_mesh"

// DragPoint is one authored point of an outline or path.
type DragPoint struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Z      float32 `yaml:"z"`
	Smooth bool    `yaml:"smooth"`
}

// Vec2 returns the point's XY coordinates.
func (d DragPoint) Vec2() math.Vec2 {
	return math.Vec2{X: d.X, Y: d.Y}
}

// Layer is the editor layer an object belongs to.
type Layer struct {
	Name  string `yaml:"name"`
	Index *int   `yaml:"index"`
}

// GroupName returns the export group for the layer, or "" when the object
// is on no layer.
func (l Layer) GroupName() string {
	switch {
	case l.Name != "":
		return "Layer_" + l.Name
	case l.Index != nil:
		return fmt.Sprintf("Layer_%d", *l.Index+1)
	}
	return ""
}

// Common holds the fields every object kind shares.
type Common struct {
	Name     string    `yaml:"name"`
	Position math.Vec3 `yaml:"position"`
	// Rotation is in degrees around x, y and z. Kinds with a single
	// orientation angle use Z.
	Rotation math.Vec3 `yaml:"rotation"`
	Scale    math.Vec3 `yaml:"scale"`
	Visible  bool      `yaml:"visible"`
	// Surface names the wall or ramp the object sits on.
	Surface  string `yaml:"surface"`
	Material string `yaml:"material"`
	Image    string `yaml:"image"`
	Layer    Layer  `yaml:"layer"`
	// DisableLightingBelow is the light transparency threshold in [0, 1].
	DisableLightingBelow *float32 `yaml:"disable_lighting_below"`
}

func defaultCommon(kind Kind) Common {
	c := Common{
		Visible: true,
		Scale:   math.Vec3{X: 1, Y: 1, Z: 1},
	}
	if kind == KindTarget {
		c.Scale = math.Vec3{X: 32, Y: 32, Z: 32}
	}
	return c
}

// Shape is the kind-specific part of an object. The concrete types are the
// pointer types declared in shapes.go.
type Shape interface {
	Kind() Kind
}

// Object is one placed table item.
type Object struct {
	Common
	Shape Shape
	// KindName is the kind as authored, kept for reporting unknown kinds.
	KindName string
}

// Kind returns the object kind, KindUnknown when the authored kind was not
// recognised.
func (o *Object) Kind() Kind {
	if o.Shape == nil {
		return KindUnknown
	}
	return o.Shape.Kind()
}

// IsPlayfield reports whether the object is an explicit playfield: either a
// playfield object or a primitive named like the engine's playfield mesh.
func (o *Object) IsPlayfield() bool {
	switch o.Shape.(type) {
	case *Playfield:
		return true
	case *Primitive:
		return encoding.NormalizeName(o.Name) == PlayfieldMeshName
	}
	return false
}

// UnmarshalYAML decodes the shared fields and the body selected by kind.
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Kind string `yaml:"kind"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}
	kind := parseKind(head.Kind)
	common := defaultCommon(kind)
	if err := node.Decode(&common); err != nil {
		return err
	}
	common.Name = encoding.FixName(common.Name)
	common.Layer.Name = encoding.FixName(common.Layer.Name)

	o.Common = common
	o.KindName = head.Kind
	o.Shape = nil

	if kind == KindUnknown {
		return nil
	}
	shape := newShape(kind)
	if err := node.Decode(shape); err != nil {
		return fmt.Errorf("%s %q: %w", kind, common.Name, err)
	}
	o.Shape = shape
	return nil
}

func parseKind(s string) Kind {
	key := foldEnum(s)
	for k, name := range kindNames {
		if foldEnum(name) == key {
			return k
		}
	}
	return KindUnknown
}
