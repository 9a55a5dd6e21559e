// Package table holds the decoded object model of a pinball table and reads
// it from a YAML table description.
package table

import (
	"github.com/Faultbox/vpxglb/pkg/encoding"
	"github.com/Faultbox/vpxglb/pkg/math"
)

// Dimensions is the playfield rectangle in table units.
type Dimensions struct {
	Left   float32 `yaml:"left"`
	Top    float32 `yaml:"top"`
	Right  float32 `yaml:"right"`
	Bottom float32 `yaml:"bottom"`
}

// Width returns right - left.
func (d Dimensions) Width() float32 { return d.Right - d.Left }

// Height returns bottom - top.
func (d Dimensions) Height() float32 { return d.Bottom - d.Top }

// Center returns the middle of the playfield.
func (d Dimensions) Center() math.Vec2 {
	return math.Vec2{X: (d.Left + d.Right) / 2, Y: (d.Top + d.Bottom) / 2}
}

// Lighting is the table-level light setup.
type Lighting struct {
	Light0Emission      Color   `yaml:"light0_emission"`
	LightHeight         float32 `yaml:"light_height"`
	LightRange          float32 `yaml:"light_range"`
	EmissionScale       float32 `yaml:"emission_scale"`
	GlobalEmissionScale float32 `yaml:"global_emission_scale"`
	AmbientColor        Color   `yaml:"ambient_color"`
}

// View is one of the player view setups.
type View struct {
	Mode ViewLayoutMode `yaml:"mode"`
	// FOV is the vertical field of view in degrees.
	FOV         float32   `yaml:"fov"`
	Inclination float32   `yaml:"inclination"`
	Layback     float32   `yaml:"layback"`
	Rotation    float32   `yaml:"rotation"`
	Offset      math.Vec3 `yaml:"offset"`
	Scale       math.Vec3 `yaml:"scale"`
}

// Views holds the desktop, fullscreen and full single screen views. FSS is
// optional in older tables.
type Views struct {
	Desktop    View  `yaml:"desktop"`
	Fullscreen View  `yaml:"fullscreen"`
	FSS        *View `yaml:"fss"`
}

// DefaultFSSView is used when a table has no full single screen view.
func DefaultFSSView() View {
	return View{
		Mode:        ViewLegacy,
		FOV:         45,
		Inclination: 52,
		Offset:      math.Vec3{X: 0, Y: 30, Z: -50},
		Scale:       math.Vec3{X: 1.2, Y: 1.1, Z: 1},
	}
}

// Material is a named table material.
type Material struct {
	Name      string       `yaml:"name"`
	Type      MaterialType `yaml:"type"`
	BaseColor Color        `yaml:"base_color"`
	// Roughness follows the editor convention: 0 is matte, 1 is shiny.
	Roughness     float32 `yaml:"roughness"`
	Opacity       float32 `yaml:"opacity"`
	OpacityActive bool    `yaml:"opacity_active"`
}

// Image is a named texture. Data is filled by the loader from Path.
type Image struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Data []byte `yaml:"-"`
}

// Table is the complete decoded table.
type Table struct {
	Name               string     `yaml:"name"`
	Dimensions         Dimensions `yaml:"dimensions"`
	GlassHeight        float32    `yaml:"glass_height"`
	PlayfieldMaterial  string     `yaml:"playfield_material"`
	PlayfieldImage     string     `yaml:"playfield_image"`
	BallImage          string     `yaml:"ball_image"`
	ReflectionStrength float32    `yaml:"reflection_strength"`
	Lighting           Lighting   `yaml:"lighting"`
	Views              Views      `yaml:"views"`
	Materials          []Material `yaml:"materials"`
	Images             []Image    `yaml:"images"`
	Objects            []Object   `yaml:"objects"`
}

// Default returns a table with the editor's defaults and no objects.
func Default() *Table {
	view := View{
		Mode:        ViewLegacy,
		FOV:         45,
		Inclination: 0,
		Scale:       math.Vec3{X: 1, Y: 1, Z: 1},
	}
	return &Table{
		Dimensions:         Dimensions{Left: 0, Top: 0, Right: 952, Bottom: 2162},
		GlassHeight:        210,
		ReflectionStrength: 0.2,
		Lighting: Lighting{
			Light0Emission:      white,
			LightHeight:         1000,
			LightRange:          3000,
			EmissionScale:       1_000_000,
			GlobalEmissionScale: 1,
		},
		Views: Views{Desktop: view, Fullscreen: view},
	}
}

// FindMaterial looks a material up by name, ignoring case.
func (t *Table) FindMaterial(name string) (*Material, bool) {
	if name == "" {
		return nil, false
	}
	key := encoding.NormalizeName(name)
	for i := range t.Materials {
		if encoding.NormalizeName(t.Materials[i].Name) == key {
			return &t.Materials[i], true
		}
	}
	return nil, false
}

// FindImage looks an image up by name, ignoring case.
func (t *Table) FindImage(name string) (*Image, bool) {
	if name == "" {
		return nil, false
	}
	key := encoding.NormalizeName(name)
	for i := range t.Images {
		if encoding.NormalizeName(t.Images[i].Name) == key {
			return &t.Images[i], true
		}
	}
	return nil, false
}
