package table

import "github.com/Faultbox/vpxglb/pkg/math"

// Color is an 8-bit RGB triple, authored as [r, g, b].
type Color [3]uint8

// Floats returns the colour scaled to [0, 1].
func (c Color) Floats() [3]float32 {
	return [3]float32{float32(c[0]) / 255, float32(c[1]) / 255, float32(c[2]) / 255}
}

var white = Color{255, 255, 255}

// Wall is an extruded outline with a top and side.
type Wall struct {
	DragPoints   []DragPoint `yaml:"drag_points"`
	HeightBottom float32     `yaml:"height_bottom"`
	HeightTop    float32     `yaml:"height_top"`
	TopVisible   bool        `yaml:"top_visible"`
	SideVisible  bool        `yaml:"side_visible"`
	SideMaterial string      `yaml:"side_material"`
	SideImage    string      `yaml:"side_image"`
}

// Ramp is a path with interpolated height and width.
type Ramp struct {
	DragPoints             []DragPoint    `yaml:"drag_points"`
	Type                   RampType       `yaml:"type"`
	HeightBottom           float32        `yaml:"height_bottom"`
	HeightTop              float32        `yaml:"height_top"`
	WidthBottom            float32        `yaml:"width_bottom"`
	WidthTop               float32        `yaml:"width_top"`
	LeftWallHeightVisible  float32        `yaml:"left_wall_height_visible"`
	RightWallHeightVisible float32        `yaml:"right_wall_height_visible"`
	WireDiameter           float32        `yaml:"wire_diameter"`
	WireDistanceX          float32        `yaml:"wire_distance_x"`
	WireDistanceY          float32        `yaml:"wire_distance_y"`
	ImageAlignment         ImageAlignment `yaml:"image_alignment"`
	// DetailLevel in [0, 10] controls spline subdivision.
	DetailLevel int `yaml:"detail_level"`
}

// Rubber is a tube swept around a closed path.
type Rubber struct {
	DragPoints []DragPoint `yaml:"drag_points"`
	Thickness  float32     `yaml:"thickness"`
	Height     float32     `yaml:"height"`
	HitHeight  *float32    `yaml:"hit_height"`
}

// Flasher is a flat, tinted, usually translucent polygon.
type Flasher struct {
	DragPoints     []DragPoint    `yaml:"drag_points"`
	Height         float32        `yaml:"height"`
	Color          Color          `yaml:"color"`
	Alpha          float32        `yaml:"alpha"`
	ImageAlignment ImageAlignment `yaml:"image_alignment"`
	AddBlend       bool           `yaml:"add_blend"`
}

// Flipper is the bat. Position is its pivot.
type Flipper struct {
	BaseRadius       float32 `yaml:"base_radius"`
	EndRadius        float32 `yaml:"end_radius"`
	FlipperRadiusMax float32 `yaml:"flipper_radius_max"`
	Height           float32 `yaml:"height"`
	StartAngle       float32 `yaml:"start_angle"`
	RubberThickness  float32 `yaml:"rubber_thickness"`
	RubberHeight     float32 `yaml:"rubber_height"`
	RubberWidth      float32 `yaml:"rubber_width"`
	RubberMaterial   string  `yaml:"rubber_material"`
}

// Spinner is a plate on a horizontal axle. Rotation.Z is its orientation.
type Spinner struct {
	Length      float32 `yaml:"length"`
	Height      float32 `yaml:"height"`
	ShowBracket bool    `yaml:"show_bracket"`
}

// Bumper is a pop bumper. Rotation.Z is its orientation.
type Bumper struct {
	Radius         float32 `yaml:"radius"`
	HeightScale    float32 `yaml:"height_scale"`
	BaseVisible    bool    `yaml:"base_visible"`
	SocketVisible  bool    `yaml:"socket_visible"`
	RingVisible    bool    `yaml:"ring_visible"`
	CapVisible     bool    `yaml:"cap_visible"`
	BaseMaterial   string  `yaml:"base_material"`
	SocketMaterial string  `yaml:"socket_material"`
	RingMaterial   string  `yaml:"ring_material"`
	CapMaterial    string  `yaml:"cap_material"`
}

// Target is a hit or drop target. Scale is its size and Rotation.Z its
// orientation.
type Target struct {
	Type      TargetType `yaml:"type"`
	IsDropped bool       `yaml:"is_dropped"`
}

// Gate is a one-way gate. Rotation.Z is its orientation.
type Gate struct {
	Type        GateType `yaml:"type"`
	Length      float32  `yaml:"length"`
	Height      float32  `yaml:"height"`
	ShowBracket bool     `yaml:"show_bracket"`
}

// Trigger is a rollover switch. Scale.X and Scale.Y stretch wire shapes.
type Trigger struct {
	Shape         TriggerShape `yaml:"shape"`
	Radius        float32      `yaml:"radius"`
	WireThickness float32      `yaml:"wire_thickness"`
}

// Light is an insert or bulb. Position.Z is its height above the surface.
type Light struct {
	MeshRadius    float32     `yaml:"mesh_radius"`
	ShowBulbMesh  bool        `yaml:"show_bulb_mesh"`
	Backglass     bool        `yaml:"backglass"`
	Color         Color       `yaml:"color"`
	Intensity     float32     `yaml:"intensity"`
	FalloffRadius float32     `yaml:"falloff_radius"`
	DragPoints    []DragPoint `yaml:"drag_points"`
}

// Plunger is the ball launcher. Position is the centre of its player end.
type Plunger struct {
	Type           PlungerType `yaml:"type"`
	Width          float32     `yaml:"width"`
	Height         float32     `yaml:"height"`
	ZAdjust        float32     `yaml:"z_adjust"`
	Stroke         float32     `yaml:"stroke"`
	TipShape       string      `yaml:"tip_shape"`
	RodDiam        float32     `yaml:"rod_diam"`
	RingGap        float32     `yaml:"ring_gap"`
	RingDiam       float32     `yaml:"ring_diam"`
	RingWidth      float32     `yaml:"ring_width"`
	SpringDiam     float32     `yaml:"spring_diam"`
	SpringGauge    float32     `yaml:"spring_gauge"`
	SpringLoops    float32     `yaml:"spring_loops"`
	SpringEndLoops float32     `yaml:"spring_end_loops"`
}

// Kicker is a ball catcher. Rotation.Z is its orientation.
type Kicker struct {
	Type   KickerType `yaml:"type"`
	Radius float32    `yaml:"radius"`
}

// Decal is an image or text sticker. Rotation.Z is its orientation.
type Decal struct {
	Type      DecalType `yaml:"type"`
	Width     float32   `yaml:"width"`
	Height    float32   `yaml:"height"`
	Backglass bool      `yaml:"backglass"`
	Text      string    `yaml:"text"`
}

// PrimitiveMesh is authored mesh data: each vertex is
// [x, y, z, nx, ny, nz, u, v].
type PrimitiveMesh struct {
	Vertices [][8]float32 `yaml:"vertices"`
	Indices  []uint32     `yaml:"indices"`
}

// Primitive is an arbitrary mesh. Scale is its size, Rotation its rotation
// and ObjectRotation the secondary rotation applied after it.
type Primitive struct {
	Mesh           PrimitiveMesh `yaml:"mesh"`
	ObjectRotation math.Vec3     `yaml:"object_rotation"`
	Translation    math.Vec3     `yaml:"translation"`
}

// Playfield is an explicitly authored playfield surface covering the table
// bounds.
type Playfield struct{}

// Ball is a ball placed on the table.
type Ball struct {
	Radius float32 `yaml:"radius"`
	Color  Color   `yaml:"color"`
}

func (*Wall) Kind() Kind      { return KindWall }
func (*Ramp) Kind() Kind      { return KindRamp }
func (*Rubber) Kind() Kind    { return KindRubber }
func (*Flasher) Kind() Kind   { return KindFlasher }
func (*Flipper) Kind() Kind   { return KindFlipper }
func (*Spinner) Kind() Kind   { return KindSpinner }
func (*Bumper) Kind() Kind    { return KindBumper }
func (*Target) Kind() Kind    { return KindTarget }
func (*Gate) Kind() Kind      { return KindGate }
func (*Trigger) Kind() Kind   { return KindTrigger }
func (*Light) Kind() Kind     { return KindLight }
func (*Plunger) Kind() Kind   { return KindPlunger }
func (*Kicker) Kind() Kind    { return KindKicker }
func (*Decal) Kind() Kind     { return KindDecal }
func (*Primitive) Kind() Kind { return KindPrimitive }
func (*Playfield) Kind() Kind { return KindPlayfield }
func (*Ball) Kind() Kind      { return KindBall }

// newShape returns the body for kind filled with the editor defaults.
func newShape(kind Kind) Shape {
	switch kind {
	case KindWall:
		return &Wall{HeightTop: 50, TopVisible: true, SideVisible: true}
	case KindRamp:
		return &Ramp{
			HeightTop:              50,
			WidthBottom:            75,
			WidthTop:               60,
			LeftWallHeightVisible:  62,
			RightWallHeightVisible: 62,
			WireDiameter:           8,
			WireDistanceX:          38,
			WireDistanceY:          88,
			ImageAlignment:         AlignWorld,
			DetailLevel:            10,
		}
	case KindRubber:
		return &Rubber{Thickness: 8, Height: 25}
	case KindFlasher:
		return &Flasher{Height: 50, Color: white, Alpha: 100, ImageAlignment: AlignWrap}
	case KindFlipper:
		return &Flipper{
			BaseRadius:       21.5,
			EndRadius:        13,
			FlipperRadiusMax: 130,
			Height:           50,
			StartAngle:       121,
			RubberThickness:  7,
			RubberHeight:     19,
			RubberWidth:      24,
		}
	case KindSpinner:
		return &Spinner{Length: 80, Height: 60, ShowBracket: true}
	case KindBumper:
		return &Bumper{
			Radius:        45,
			HeightScale:   90,
			BaseVisible:   true,
			SocketVisible: true,
			RingVisible:   true,
			CapVisible:    true,
		}
	case KindTarget:
		return &Target{Type: DropTargetSimple}
	case KindGate:
		return &Gate{Type: GateWireW, Length: 100, Height: 50, ShowBracket: true}
	case KindTrigger:
		return &Trigger{Shape: TriggerWireA, Radius: 25}
	case KindLight:
		return &Light{MeshRadius: 20, Color: Color{255, 169, 87}, Intensity: 1, FalloffRadius: 50}
	case KindPlunger:
		return &Plunger{
			Type:           PlungerModern,
			Width:          25,
			Height:         20,
			Stroke:         80,
			RodDiam:        0.6,
			RingGap:        2,
			RingDiam:       0.94,
			RingWidth:      3,
			SpringDiam:     0.77,
			SpringGauge:    1.38,
			SpringLoops:    8,
			SpringEndLoops: 2.5,
		}
	case KindKicker:
		return &Kicker{Type: KickerHole, Radius: 25}
	case KindDecal:
		return &Decal{Type: DecalImage, Width: 100, Height: 100}
	case KindPrimitive:
		return &Primitive{}
	case KindPlayfield:
		return &Playfield{}
	case KindBall:
		return &Ball{Radius: 25, Color: white}
	}
	return nil
}
