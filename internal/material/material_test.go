package material

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/vpxglb/internal/generate"
	"github.com/Faultbox/vpxglb/pkg/table"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 200, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func encodeBMP(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func threshold(v float32) *float32 { return &v }

func testTable(t *testing.T) *table.Table {
	tbl := table.Default()
	tbl.Materials = []table.Material{
		{Name: "Plastic", BaseColor: table.Color{255, 0, 0}, Roughness: 0.3},
		{Name: "Chrome", Type: table.MaterialMetal, BaseColor: table.Color{200, 200, 200}, Roughness: 0.9},
		{Name: "Glass", BaseColor: table.Color{255, 255, 255}, Opacity: 0.4, OpacityActive: true},
	}
	tbl.Images = []table.Image{
		{Name: "PF", Data: encodePNG(t)},
		{Name: "Old", Data: encodeBMP(t)},
		{Name: "Broken", Data: []byte("not an image")},
	}
	return tbl
}

func TestFromTable(t *testing.T) {
	tbl := testTable(t)
	tests := []struct {
		name      string
		metallic  float32
		roughness float32
		alpha     float32
		blend     bool
	}{
		{"Plastic", 0, 0.7, 1, false},
		{"Chrome", 1, 0.1, 1, false},
		{"Glass", 0, 1, 0.4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, ok := tbl.FindMaterial(tt.name)
			if !ok {
				t.Fatal("material missing")
			}
			m := FromTable(src)
			if m.Metallic != tt.metallic || !near(m.Roughness, tt.roughness) || !near(m.BaseColor[3], tt.alpha) {
				t.Errorf("got metallic %v roughness %v alpha %v", m.Metallic, m.Roughness, m.BaseColor[3])
			}
			if m.AlphaBlend != tt.blend {
				t.Errorf("AlphaBlend = %v, want %v", m.AlphaBlend, tt.blend)
			}
		})
	}
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}

func TestTransmission(t *testing.T) {
	tests := []struct {
		threshold float32
		textured  bool
		want      float32
	}{
		{1, false, 0},
		{0.5, false, 0.15},
		{0.5, true, 0.045},
		{0, false, 0.3},
	}
	for _, tt := range tests {
		if got := Transmission(tt.threshold, tt.textured); !near(got, tt.want) {
			t.Errorf("Transmission(%v, %v) = %v, want %v", tt.threshold, tt.textured, got, tt.want)
		}
	}
}

func TestResolveIdentity(t *testing.T) {
	m := NewMapper(testTable(t))
	mesh := func(material string, th *float32) *generate.NamedMesh {
		return &generate.NamedMesh{Object: "o", Material: material, LightingThreshold: th}
	}

	a := m.Resolve(mesh("Plastic", nil))
	b := m.Resolve(mesh("plastic", nil))
	if a != b {
		t.Errorf("same material resolved to %d and %d", a, b)
	}
	c := m.Resolve(mesh("Plastic", threshold(0.5)))
	d := m.Resolve(mesh("Plastic", threshold(0.5)))
	e := m.Resolve(mesh("Plastic", threshold(0.25)))
	if c == a || c != d || c == e {
		t.Errorf("threshold variants = %d, %d, %d (base %d)", c, d, e, a)
	}
	if got := m.Materials()[c].Transmission; !near(got, 0.15) {
		t.Errorf("Transmission = %v, want 0.15", got)
	}

	double := m.Resolve(&generate.NamedMesh{Material: "Plastic", DoubleSided: true})
	if double == a || !m.Materials()[double].DoubleSided {
		t.Errorf("double sided variant = %d, base %d", double, a)
	}
	if n := len(m.Materials()); n != 4 {
		t.Errorf("Materials = %d, want 4", n)
	}
}

func TestResolveTint(t *testing.T) {
	m := NewMapper(testTable(t))
	tint := &generate.Tint{Color: [4]float32{1, 1, 1, 0.2}, Roughness: 0.05}
	a := m.Resolve(&generate.NamedMesh{Material: "Plastic", Tint: tint, AlphaBlend: true})
	b := m.Resolve(&generate.NamedMesh{Tint: tint, AlphaBlend: true})
	if a != b {
		t.Errorf("tints resolved to %d and %d", a, b)
	}
	mat := m.Materials()[a]
	if !mat.AlphaBlend || mat.BaseColor[3] != 0.2 {
		t.Errorf("tint material = %+v", mat)
	}
}

func TestTintedPartsHaveNoTransmission(t *testing.T) {
	tbl := testTable(t)
	tbl.Objects = []table.Object{{
		Common: table.Common{
			Name:                 "Bulb1",
			Visible:              true,
			Material:             "Plastic",
			DisableLightingBelow: threshold(0.3),
		},
		Shape: &table.Light{ShowBulbMesh: true, MeshRadius: 20},
	}}
	res := generate.NewContext(tbl, false).Generate(&tbl.Objects[0])
	if len(res.Meshes) != 2 {
		t.Fatalf("got %d meshes, want bulb and socket", len(res.Meshes))
	}

	m := NewMapper(tbl)
	for i := range res.Meshes {
		mesh := &res.Meshes[i]
		if mesh.LightingThreshold != nil {
			t.Errorf("%s inherited the lighting threshold", mesh.Name)
		}
		if mat := m.Materials()[m.Resolve(mesh)]; mat.Transmission != 0 {
			t.Errorf("%s transmission = %v, want 0", mesh.Name, mat.Transmission)
		}
	}

	th := threshold(0.3)
	tinted := m.Resolve(&generate.NamedMesh{Tint: &generate.Tint{Color: [4]float32{1, 0, 0, 1}}, LightingThreshold: th})
	if got := m.Materials()[tinted].Transmission; got != 0 {
		t.Errorf("explicit threshold on a tint gave transmission %v", got)
	}
}

func TestMissingMaterial(t *testing.T) {
	m := NewMapper(testTable(t))
	a := m.Resolve(&generate.NamedMesh{Object: "x", Material: "Nope"})
	b := m.Resolve(&generate.NamedMesh{Object: "y", Material: "NOPE"})
	if a != b {
		t.Errorf("defaults resolved to %d and %d", a, b)
	}
	if len(m.Warnings()) != 1 {
		t.Errorf("Warnings = %v, want one", m.Warnings())
	}
	if m.Materials()[a].Name != DefaultMaterial().Name {
		t.Errorf("name = %q", m.Materials()[a].Name)
	}
}

func TestTextures(t *testing.T) {
	m := NewMapper(testTable(t))

	pf := m.Resolve(&generate.NamedMesh{Material: "Plastic", Texture: "pf", Playfield: true})
	if tex := m.Materials()[pf].Texture; tex != 0 {
		t.Fatalf("playfield texture = %d, want 0", tex)
	}
	if got := m.Textures()[0].MimeType; got != MimePNG {
		t.Errorf("MimeType = %q", got)
	}

	obj := m.Resolve(&generate.NamedMesh{Object: "wall", Material: "Plastic", Texture: "PF"})
	if tex := m.Materials()[obj].Texture; tex != NoTexture {
		t.Errorf("object texture = %d, want none", tex)
	}
	m.Resolve(&generate.NamedMesh{Object: "wall2", Material: "Plastic", Texture: "PF"})
	if len(m.Warnings()) != 1 {
		t.Errorf("Warnings = %v, want one for the object texture", m.Warnings())
	}

	old := m.Resolve(&generate.NamedMesh{Texture: "Old", Playfield: true})
	if tex := m.Materials()[old].Texture; tex != 1 || m.Textures()[1].MimeType != MimePNG {
		t.Errorf("BMP texture = %d", tex)
	}

	broken := m.Resolve(&generate.NamedMesh{Texture: "Broken", Playfield: true})
	if tex := m.Materials()[broken].Texture; tex != NoTexture {
		t.Errorf("broken texture = %d, want none", tex)
	}
	if len(m.Warnings()) != 2 {
		t.Errorf("Warnings = %v, want two", m.Warnings())
	}
	if len(m.Textures()) != 2 {
		t.Errorf("Textures = %d, want 2", len(m.Textures()))
	}
}

func TestPlayfieldRoughness(t *testing.T) {
	tbl := testTable(t)
	tbl.ReflectionStrength = 1
	m := NewMapper(tbl)
	idx := m.Resolve(&generate.NamedMesh{Material: "Plastic", Playfield: true})
	if got := m.Materials()[idx].Roughness; !near(got, 0.03) {
		t.Errorf("Roughness = %v, want 0.03", got)
	}

	tbl.ReflectionStrength = 0
	m = NewMapper(tbl)
	idx = m.Resolve(&generate.NamedMesh{Material: "Plastic", Playfield: true})
	if got := m.Materials()[idx].Roughness; !near(got, 0.7) {
		t.Errorf("Roughness = %v, want 0.7", got)
	}
}

func TestEmbeddable(t *testing.T) {
	pngData := encodePNG(t)
	tests := []struct {
		name     string
		data     []byte
		wantMime string
		wantErr  error
	}{
		{"png", pngData, MimePNG, nil},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0}, MimeJPEG, nil},
		{"bmp", encodeBMP(t), MimePNG, nil},
		{"unknown", []byte("GIF89a"), "", ErrUnsupportedImage},
		{"empty", nil, "", ErrNoImageData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, mime, err := Embeddable(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if mime != tt.wantMime {
				t.Errorf("mime = %q, want %q", mime, tt.wantMime)
			}
			if tt.wantErr == nil && len(data) == 0 {
				t.Error("no data")
			}
		})
	}

	out, _, err := Embeddable(encodeBMP(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("transcoded BMP is not a PNG: %v", err)
	}
}
