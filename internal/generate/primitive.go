package generate

import (
	"github.com/Faultbox/vpxglb/pkg/geometry"
	"github.com/Faultbox/vpxglb/pkg/math"
	"github.com/Faultbox/vpxglb/pkg/table"
	"github.com/Faultbox/vpxglb/pkg/transform"
)

// DefaultPlayfieldMaterial names the material of a playfield whose table
// has none configured.
const DefaultPlayfieldMaterial = "__playfield__"

func primitiveMesh(data table.PrimitiveMesh) (*geometry.Mesh, error) {
	m := &geometry.Mesh{
		Vertices: make([]geometry.Vertex, len(data.Vertices)),
		Indices:  append([]uint32(nil), data.Indices...),
	}
	for i, v := range data.Vertices {
		m.Vertices[i] = geometry.Vertex{
			Position: math.V3(v[0], v[1], v[2]),
			Normal:   math.V3(v[3], v[4], v[5]),
			UV:       math.V2(v[6], v[7]),
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Context) primitive(obj *table.Object, p *table.Primitive, res *Result) {
	if len(p.Mesh.Vertices) == 0 || len(p.Mesh.Indices) == 0 {
		if obj.IsPlayfield() {
			c.explicitPlayfield(obj, res)
			return
		}
		res.warn(obj, "primitive has no mesh data, skipped")
		return
	}
	mesh, err := primitiveMesh(p.Mesh)
	if err != nil {
		res.warn(obj, "primitive mesh: %v, skipped", err)
		return
	}
	place := transform.Placement{
		Scale:          obj.Scale,
		Rotation:       obj.Rotation,
		ObjectRotation: p.ObjectRotation,
		Translation:    p.Translation,
	}
	m := NamedMesh{
		Name:        obj.Name,
		Mesh:        mesh.Transformed(place.Linear()),
		Translation: obj.Position,
		Material:    obj.Material,
		Texture:     obj.Image,
	}
	if obj.IsPlayfield() {
		c.asPlayfield(&m, obj)
	}
	res.add(obj, m)
}

// asPlayfield makes m the playfield, inheriting the table's playfield
// material and image where the object sets none.
func (c *Context) asPlayfield(m *NamedMesh, obj *table.Object) {
	m.Playfield = true
	m.Material = firstNonEmpty(obj.Material, c.Table.PlayfieldMaterial, DefaultPlayfieldMaterial)
	m.Texture = firstNonEmpty(obj.Image, c.Table.PlayfieldImage)
}

// playfieldQuad covers the table bounds at height 0.
func (c *Context) playfieldQuad() (*geometry.Mesh, math.Vec3) {
	d := c.Table.Dimensions
	center := d.Center()
	return geometry.Quad(d.Width(), d.Height(), 0), center.Vec3(0)
}

func (c *Context) explicitPlayfield(obj *table.Object, res *Result) {
	mesh, translation := c.playfieldQuad()
	m := NamedMesh{
		Name:        firstNonEmpty(obj.Name, table.PlayfieldMeshName),
		Mesh:        mesh,
		Translation: translation,
	}
	c.asPlayfield(&m, obj)
	res.add(obj, m)
}

// ImplicitPlayfield returns the playfield used when the table has no
// explicit one.
func (c *Context) ImplicitPlayfield() NamedMesh {
	mesh, translation := c.playfieldQuad()
	return NamedMesh{
		Name:        "Playfield",
		Kind:        table.KindPlayfield,
		Mesh:        mesh,
		Translation: translation,
		Material:    firstNonEmpty(c.Table.PlayfieldMaterial, DefaultPlayfieldMaterial),
		Texture:     c.Table.PlayfieldImage,
		Playfield:   true,
	}
}
