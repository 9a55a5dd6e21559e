// Package material maps table materials onto glTF metallic-roughness
// materials and collects the textures that get embedded.
package material

import (
	"fmt"
	"strings"

	"github.com/Faultbox/vpxglb/internal/generate"
	"github.com/Faultbox/vpxglb/pkg/encoding"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
)

// NoTexture is the texture index of untextured materials.
const NoTexture = -1

// Material is one exported material.
type Material struct {
	Name      string
	BaseColor [4]float32
	Metallic  float32
	Roughness float32
	// Transmission is the KHR_materials_transmission factor, 0 for none.
	Transmission float32
	AlphaBlend   bool
	DoubleSided  bool
	Texture      int
}

// Texture is an embeddable image.
type Texture struct {
	Name     string
	MimeType string
	Data     []byte
}

// Mapper turns the material references of generated meshes into a
// deduplicated material and texture list. It is not safe for concurrent
// use; the scene is assembled on one goroutine.
type Mapper struct {
	table *table.Table

	materials []Material
	byKey     map[string]int
	textures  []Texture
	byImage   map[string]int

	warnings []generate.Warning
	warned   map[string]bool
}

// NewMapper returns a mapper for the materials and images of t.
func NewMapper(t *table.Table) *Mapper {
	return &Mapper{
		table:   t,
		byKey:   make(map[string]int),
		byImage: make(map[string]int),
		warned:  make(map[string]bool),
	}
}

// Materials returns the materials in the order they were first resolved.
func (m *Mapper) Materials() []Material { return m.materials }

// Textures returns the embedded textures.
func (m *Mapper) Textures() []Texture { return m.textures }

// Warnings returns the asset defects found so far.
func (m *Mapper) Warnings() []generate.Warning { return m.warnings }

func (m *Mapper) warnOnce(key string, mesh *generate.NamedMesh, format string, args ...any) {
	if m.warned[key] {
		return
	}
	m.warned[key] = true
	m.warnings = append(m.warnings, generate.Warning{
		Object:  mesh.Object,
		Kind:    mesh.Kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// Resolve returns the index of the material for mesh, creating it on first
// use. Meshes whose derived identity matches share one material.
func (m *Mapper) Resolve(mesh *generate.NamedMesh) int {
	tex := m.texture(mesh)

	var (
		key string
		mat Material
	)
	if mesh.Tint != nil {
		key, mat = tintMaterial(mesh.Tint)
	} else {
		key, mat = m.tableMaterial(mesh)
	}

	if mesh.AlphaBlend {
		mat.AlphaBlend = true
		key += "|blend"
	}
	if mesh.DoubleSided {
		mat.DoubleSided = true
		key += "|double"
		mat.Name += "_double_sided"
	}
	if mesh.Playfield {
		mat.Roughness = playfieldRoughness(m.table.ReflectionStrength, mat.Roughness)
		key += "|playfield"
	}
	mat.Texture = tex
	if tex != NoTexture {
		key += "|tex:" + m.textures[tex].Name
	}
	if t := mesh.LightingThreshold; t != nil && *t < 1 && mesh.Tint == nil {
		mat.Transmission = Transmission(*t, tex != NoTexture)
		key += fmt.Sprintf("|transmission:%g", *t)
		mat.Name += fmt.Sprintf("_transmission_%.2f", *t)
	}

	if idx, ok := m.byKey[key]; ok {
		return idx
	}
	idx := len(m.materials)
	m.materials = append(m.materials, mat)
	m.byKey[key] = idx
	return idx
}

func tintMaterial(t *generate.Tint) (string, Material) {
	c := t.Color
	name := fmt.Sprintf("tint_%02x%02x%02x%02x",
		uint8(c[0]*255+0.5), uint8(c[1]*255+0.5), uint8(c[2]*255+0.5), uint8(c[3]*255+0.5))
	key := fmt.Sprintf("tint:%v:%g:%g", c, t.Metallic, t.Roughness)
	return key, Material{
		Name:      name,
		BaseColor: c,
		Metallic:  t.Metallic,
		Roughness: t.Roughness,
		Texture:   NoTexture,
	}
}

// DefaultMaterial is used by meshes without a usable table material.
func DefaultMaterial() Material {
	return Material{
		Name:      "__default__",
		BaseColor: [4]float32{0.8, 0.8, 0.8, 1},
		Roughness: 0.5,
		Texture:   NoTexture,
	}
}

func (m *Mapper) tableMaterial(mesh *generate.NamedMesh) (string, Material) {
	name := mesh.Material
	src, ok := m.table.FindMaterial(name)
	if !ok {
		if name != "" && name != generate.DefaultPlayfieldMaterial {
			m.warnOnce("material:"+encoding.NormalizeName(name), mesh, "material %q not found, using default", name)
		}
		mat := DefaultMaterial()
		if mesh.Playfield {
			mat.Name = generate.DefaultPlayfieldMaterial
			return "playfield-default", mat
		}
		return "default", mat
	}
	return "material:" + encoding.NormalizeName(src.Name), FromTable(src)
}

// FromTable converts a table material. Table roughness counts up towards
// shiny, glTF roughness towards matte.
func FromTable(src *table.Material) Material {
	rgb := src.BaseColor.Floats()
	alpha := float32(1)
	if src.OpacityActive {
		alpha = math.Clamp(src.Opacity, 0, 1)
	}
	mat := Material{
		Name:      src.Name,
		BaseColor: [4]float32{rgb[0], rgb[1], rgb[2], alpha},
		Roughness: math.Clamp(1-src.Roughness, 0, 1),
		Texture:   NoTexture,
	}
	if src.Type == table.MaterialMetal {
		mat.Metallic = 1
	}
	if alpha < 1 {
		mat.AlphaBlend = true
	}
	return mat
}

// Transmission converts a light transparency threshold into a transmission
// factor. Textured surfaces let less light through.
func Transmission(threshold float32, textured bool) float32 {
	if threshold >= 1 {
		return 0
	}
	f := (1 - math.Clamp(threshold, 0, 1)) * 0.3
	if textured {
		f *= 0.3
	}
	return f
}

// playfieldRoughness makes reflective playfields glossier.
func playfieldRoughness(strength, fallback float32) float32 {
	if strength > 0.1 {
		return math.Clamp(0.20-strength*0.17, 0.03, 0.20)
	}
	return fallback
}

// texture embeds the playfield image. Other images are not exported and are
// reported once each.
func (m *Mapper) texture(mesh *generate.NamedMesh) int {
	name := mesh.Texture
	if name == "" {
		return NoTexture
	}
	key := encoding.NormalizeName(name)
	if !mesh.Playfield {
		m.warnOnce("object-texture:"+key, mesh, "per-object texture %q is not exported", name)
		return NoTexture
	}
	if idx, ok := m.byImage[key]; ok {
		return idx
	}

	img, ok := m.table.FindImage(name)
	if !ok {
		m.warnOnce("image:"+key, mesh, "image %q not found, texture omitted", name)
		return NoTexture
	}
	data, mime, err := Embeddable(img.Data)
	if err != nil {
		m.warnOnce("image:"+key, mesh, "image %q: %v, texture omitted", name, err)
		return NoTexture
	}
	idx := len(m.textures)
	m.textures = append(m.textures, Texture{Name: strings.TrimSpace(img.Name), MimeType: mime, Data: data})
	m.byImage[key] = idx
	return idx
}
