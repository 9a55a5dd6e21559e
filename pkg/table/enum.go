package table

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Invalid is stored in any enum field whose authored value is not known.
// Generators report such objects as input defects.
const Invalid = -1

type enumValue interface {
	~int
}

func enumName[T enumValue](v T, names map[T]string) string {
	if n, ok := names[v]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%d)", int(v))
}

func foldEnum(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// decodeEnum accepts either the engine's integer value or a name.
func decodeEnum[T enumValue](node *yaml.Node, names map[T]string, out *T) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar enum value", node.Line)
	}
	if n, err := strconv.Atoi(node.Value); err == nil {
		if _, ok := names[T(n)]; ok {
			*out = T(n)
		} else {
			*out = T(Invalid)
		}
		return nil
	}
	key := foldEnum(node.Value)
	for v, name := range names {
		if foldEnum(name) == key {
			*out = v
			return nil
		}
	}
	*out = T(Invalid)
	return nil
}

// RampType selects between a flat ramp and the wire-ramp variants.
type RampType int

const (
	RampFlat           RampType = 0
	RampFourWire       RampType = 1
	RampTwoWire        RampType = 2
	RampThreeWireLeft  RampType = 3
	RampThreeWireRight RampType = 4
	RampOneWire        RampType = 5
)

var rampTypeNames = map[RampType]string{
	RampFlat:           "Flat",
	RampFourWire:       "FourWire",
	RampTwoWire:        "TwoWire",
	RampThreeWireLeft:  "ThreeWireLeft",
	RampThreeWireRight: "ThreeWireRight",
	RampOneWire:        "OneWire",
}

func (t RampType) String() string                    { return enumName(t, rampTypeNames) }
func (t RampType) Valid() bool                       { _, ok := rampTypeNames[t]; return ok }
func (t *RampType) UnmarshalYAML(n *yaml.Node) error { return decodeEnum(n, rampTypeNames, t) }

// ImageAlignment controls how ramps and flashers map their texture.
type ImageAlignment int

const (
	AlignWorld ImageAlignment = 0
	AlignWrap  ImageAlignment = 1
)

var imageAlignmentNames = map[ImageAlignment]string{
	AlignWorld: "World",
	AlignWrap:  "Wrap",
}

func (a ImageAlignment) String() string { return enumName(a, imageAlignmentNames) }
func (a *ImageAlignment) UnmarshalYAML(n *yaml.Node) error {
	return decodeEnum(n, imageAlignmentNames, a)
}

// TriggerShape selects the trigger mesh.
type TriggerShape int

const (
	TriggerNone   TriggerShape = 0
	TriggerWireA  TriggerShape = 1
	TriggerStar   TriggerShape = 2
	TriggerWireB  TriggerShape = 3
	TriggerButton TriggerShape = 4
	TriggerWireC  TriggerShape = 5
	TriggerWireD  TriggerShape = 6
	TriggerInder  TriggerShape = 7
)

var triggerShapeNames = map[TriggerShape]string{
	TriggerNone:   "None",
	TriggerWireA:  "WireA",
	TriggerStar:   "Star",
	TriggerWireB:  "WireB",
	TriggerButton: "Button",
	TriggerWireC:  "WireC",
	TriggerWireD:  "WireD",
	TriggerInder:  "Inder",
}

func (s TriggerShape) String() string { return enumName(s, triggerShapeNames) }
func (s TriggerShape) Valid() bool    { _, ok := triggerShapeNames[s]; return ok }
func (s *TriggerShape) UnmarshalYAML(n *yaml.Node) error {
	return decodeEnum(n, triggerShapeNames, s)
}

// KickerType selects the kicker body.
type KickerType int

const (
	KickerInvisible  KickerType = 0
	KickerHole       KickerType = 1
	KickerCup        KickerType = 2
	KickerHoleSimple KickerType = 3
	KickerWilliams   KickerType = 4
	KickerGottlieb   KickerType = 5
	KickerCup2       KickerType = 6
)

var kickerTypeNames = map[KickerType]string{
	KickerInvisible:  "Invisible",
	KickerHole:       "Hole",
	KickerCup:        "Cup",
	KickerHoleSimple: "HoleSimple",
	KickerWilliams:   "Williams",
	KickerGottlieb:   "Gottlieb",
	KickerCup2:       "Cup2",
}

func (k KickerType) String() string                    { return enumName(k, kickerTypeNames) }
func (k KickerType) Valid() bool                       { _, ok := kickerTypeNames[k]; return ok }
func (k *KickerType) UnmarshalYAML(n *yaml.Node) error { return decodeEnum(n, kickerTypeNames, k) }

// TargetType selects the hit or drop target mesh.
type TargetType int

const (
	DropTargetBeveled     TargetType = 1
	DropTargetSimple      TargetType = 2
	HitTargetRound        TargetType = 3
	HitTargetRectangle    TargetType = 4
	HitFatTargetRectangle TargetType = 5
	HitFatTargetSquare    TargetType = 6
	DropTargetFlatSimple  TargetType = 7
	HitFatTargetSlim      TargetType = 8
	HitTargetSlim         TargetType = 9
)

var targetTypeNames = map[TargetType]string{
	DropTargetBeveled:     "DropTargetBeveled",
	DropTargetSimple:      "DropTargetSimple",
	HitTargetRound:        "HitTargetRound",
	HitTargetRectangle:    "HitTargetRectangle",
	HitFatTargetRectangle: "HitFatTargetRectangle",
	HitFatTargetSquare:    "HitFatTargetSquare",
	DropTargetFlatSimple:  "DropTargetFlatSimple",
	HitFatTargetSlim:      "HitFatTargetSlim",
	HitTargetSlim:         "HitTargetSlim",
}

func (t TargetType) String() string                    { return enumName(t, targetTypeNames) }
func (t TargetType) Valid() bool                       { _, ok := targetTypeNames[t]; return ok }
func (t *TargetType) UnmarshalYAML(n *yaml.Node) error { return decodeEnum(n, targetTypeNames, t) }

// IsDrop reports whether the target is a drop target.
func (t TargetType) IsDrop() bool {
	return t == DropTargetBeveled || t == DropTargetSimple || t == DropTargetFlatSimple
}

// GateType selects the gate wire or plate.
type GateType int

const (
	GateWireW         GateType = 1
	GateWireRectangle GateType = 2
	GatePlate         GateType = 3
	GateLongPlate     GateType = 4
)

var gateTypeNames = map[GateType]string{
	GateWireW:         "WireW",
	GateWireRectangle: "WireRectangle",
	GatePlate:         "Plate",
	GateLongPlate:     "LongPlate",
}

func (g GateType) String() string                    { return enumName(g, gateTypeNames) }
func (g GateType) Valid() bool                       { _, ok := gateTypeNames[g]; return ok }
func (g *GateType) UnmarshalYAML(n *yaml.Node) error { return decodeEnum(n, gateTypeNames, g) }

// PlungerType selects the plunger mesh set.
type PlungerType int

const (
	PlungerModern PlungerType = 1
	PlungerFlat   PlungerType = 2
	PlungerCustom PlungerType = 3
)

var plungerTypeNames = map[PlungerType]string{
	PlungerModern: "Modern",
	PlungerFlat:   "Flat",
	PlungerCustom: "Custom",
}

func (p PlungerType) String() string { return enumName(p, plungerTypeNames) }
func (p PlungerType) Valid() bool    { _, ok := plungerTypeNames[p]; return ok }
func (p *PlungerType) UnmarshalYAML(n *yaml.Node) error {
	return decodeEnum(n, plungerTypeNames, p)
}

// DecalType distinguishes image decals from text decals.
type DecalType int

const (
	DecalText  DecalType = 0
	DecalImage DecalType = 1
)

var decalTypeNames = map[DecalType]string{
	DecalText:  "Text",
	DecalImage: "Image",
}

func (d DecalType) String() string                    { return enumName(d, decalTypeNames) }
func (d *DecalType) UnmarshalYAML(n *yaml.Node) error { return decodeEnum(n, decalTypeNames, d) }

// MaterialType is the shading model of a table material.
type MaterialType int

const (
	MaterialBasic MaterialType = 0
	MaterialMetal MaterialType = 1
)

var materialTypeNames = map[MaterialType]string{
	MaterialBasic: "Basic",
	MaterialMetal: "Metal",
}

func (m MaterialType) String() string { return enumName(m, materialTypeNames) }
func (m *MaterialType) UnmarshalYAML(n *yaml.Node) error {
	return decodeEnum(n, materialTypeNames, m)
}

// ViewLayoutMode is how a view's inclination and offsets are interpreted.
type ViewLayoutMode int

const (
	// ViewLegacy treats inclination as a percentage of the vertical angle.
	ViewLegacy ViewLayoutMode = 0
	// ViewCamera treats inclination as a look-at percentage.
	ViewCamera ViewLayoutMode = 1
	// ViewWindow behaves like ViewCamera for export purposes.
	ViewWindow ViewLayoutMode = 2
)

var viewLayoutModeNames = map[ViewLayoutMode]string{
	ViewLegacy: "Legacy",
	ViewCamera: "Camera",
	ViewWindow: "Window",
}

func (v ViewLayoutMode) String() string { return enumName(v, viewLayoutModeNames) }
func (v *ViewLayoutMode) UnmarshalYAML(n *yaml.Node) error {
	return decodeEnum(n, viewLayoutModeNames, v)
}
