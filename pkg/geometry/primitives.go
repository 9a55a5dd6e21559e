package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/vpxglb/pkg/math"
)

// Box returns an axis-aligned box with 24 vertices so each face keeps a flat
// normal.
func Box(lo, hi math.Vec3) *Mesh {
	m := &Mesh{}
	face := func(n math.Vec3, corners [4]math.Vec3) {
		base := uint32(len(m.Vertices))
		uvs := [4]math.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}
		for k, c := range corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: n, UV: uvs[k]})
		}
		m.AddTriangle(base, base+1, base+2)
		m.AddTriangle(base, base+2, base+3)
	}
	x0, y0, z0 := lo.X, lo.Y, lo.Z
	x1, y1, z1 := hi.X, hi.Y, hi.Z
	face(math.Vec3{Z: 1}, [4]math.Vec3{{X: x0, Y: y0, Z: z1}, {X: x1, Y: y0, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z1}})
	face(math.Vec3{Z: -1}, [4]math.Vec3{{X: x0, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y0, Z: z0}, {X: x0, Y: y0, Z: z0}})
	face(math.Vec3{Y: -1}, [4]math.Vec3{{X: x0, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z1}, {X: x0, Y: y0, Z: z1}})
	face(math.Vec3{Y: 1}, [4]math.Vec3{{X: x1, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z1}})
	face(math.Vec3{X: 1}, [4]math.Vec3{{X: x1, Y: y0, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z1}, {X: x1, Y: y0, Z: z1}})
	face(math.Vec3{X: -1}, [4]math.Vec3{{X: x0, Y: y1, Z: z0}, {X: x0, Y: y0, Z: z0}, {X: x0, Y: y0, Z: z1}, {X: x0, Y: y1, Z: z1}})
	return m
}

// Quad returns a flat rectangle in the XY plane facing +Z, centred on the
// origin and turned counter-clockwise by angle radians. UV (0,0) is at the
// -X/-Y corner.
func Quad(width, height, angle float32) *Mesh {
	hw, hh := width/2, height/2
	s, c := math32.Sincos(angle)
	corner := func(x, y float32) math.Vec3 {
		return math.Vec3{X: x*c - y*s, Y: x*s + y*c}
	}
	up := math.Vec3{Z: 1}
	m := &Mesh{Vertices: []Vertex{
		{Position: corner(-hw, -hh), Normal: up, UV: math.V2(0, 0)},
		{Position: corner(hw, -hh), Normal: up, UV: math.V2(1, 0)},
		{Position: corner(-hw, hh), Normal: up, UV: math.V2(0, 1)},
		{Position: corner(hw, hh), Normal: up, UV: math.V2(1, 1)},
	}}
	m.Indices = []uint32{0, 1, 2, 2, 1, 3}
	return m
}

// Cylinder returns a capped cylinder around +Z from z0 to z1.
func Cylinder(radius, z0, z1 float32, segments int) *Mesh {
	return Lathe([]ProfilePoint{
		{Axial: z0, Radius: 0},
		{Axial: z0, Radius: radius},
		{Axial: z0, Radius: radius},
		{Axial: z1, Radius: radius},
		{Axial: z1, Radius: radius},
		{Axial: z1, Radius: 0},
	}, segments)
}

// Sphere returns a UV sphere centred on the origin.
func Sphere(radius float32, rings, segments int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	profile := make([]ProfilePoint, rings+1)
	for j := range profile {
		phi := math32.Pi * float32(j) / float32(rings)
		s, c := math32.Sincos(phi)
		profile[j] = ProfilePoint{Axial: -radius * c, Radius: radius * s}
	}
	profile[0].Radius, profile[rings].Radius = 0, 0
	return Lathe(profile, segments)
}
