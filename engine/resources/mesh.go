package resources

import (
	"fmt"
	gomath "math"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
)

// Mesh is an indexed triangle mesh in its own local space. A mesh exposes
// the intersection capability leaf nodes delegate to; it knows nothing about
// materials, textures or transforms.
type Mesh struct {
	Name     string
	Vertices []math.Vertex3D
	Indices  []uint32
}

func NewMesh(name string, vertices []math.Vertex3D, indices []uint32) *Mesh {
	return &Mesh{Name: name, Vertices: vertices, Indices: indices}
}

// Validate reports malformed meshes up front: a triangle count mismatch or
// an index outside the vertex array.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: mesh '%s' index count %d is not a multiple of 3", core.ErrIntersection, m.Name, len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: mesh '%s' index %d out of range (%d vertices)", core.ErrIntersection, m.Name, idx, len(m.Vertices))
		}
	}
	return nil
}

// RayCast intersects the ray, given in the mesh's local space, against every
// triangle and returns one hit record per strike with position, interpolated
// normal and texture coordinate still in local space. Only intersections in
// front of the ray start (t > 0) are reported. The t parameter is expressed
// against the ray's own (unnormalized) direction, so it survives transforms
// applied to the ray.
//
// The mesh must have passed Validate at registration; RayCast runs once per
// pixel and does not re-check the index data.
func (m *Mesh) RayCast(ray math.Ray) ([]HitRecord, error) {
	var hits []HitRecord
	origin := ray.Start.ToVec3()
	dir := ray.Direction.ToVec3()

	for i := 0; i+2 < len(m.Indices); i += 3 {
		v0 := m.Vertices[m.Indices[i]]
		v1 := m.Vertices[m.Indices[i+1]]
		v2 := m.Vertices[m.Indices[i+2]]

		t, u, v, ok := intersectTriangle(origin, dir, v0.Position, v1.Position, v2.Position)
		if !ok {
			continue
		}

		w := 1.0 - u - v
		normal := v0.Normal.MulScalar(w).
			Add(v1.Normal.MulScalar(u)).
			Add(v2.Normal.MulScalar(v)).
			Normalized()
		texcoord := math.NewVec2(
			w*v0.Texcoord.X+u*v1.Texcoord.X+v*v2.Texcoord.X,
			w*v0.Texcoord.Y+u*v1.Texcoord.Y+v*v2.Texcoord.Y,
		)

		hits = append(hits, HitRecord{
			T:            t,
			Intersection: ray.PointAt(t),
			Normal:       normal.ToVec4(0),
			Texcoord:     texcoord,
		})
	}

	return hits, nil
}

// intersectTriangle is the Moeller-Trumbore ray/triangle test. Returns the
// ray parameter and the barycentric coordinates of the hit.
func intersectTriangle(origin, dir, p0, p1, p2 math.Vec3) (t, u, v float32, ok bool) {
	const epsilon = 1e-7

	edge1 := p1.Sub(p0)
	edge2 := p2.Sub(p0)

	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -epsilon && det < epsilon {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det

	tvec := origin.Sub(p0)
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1.0 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(edge1)
	v = dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	t = edge2.Dot(qvec) * invDet
	if t <= 0 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// GenerateQuadMesh builds a unit quad in the XY plane centered at the
// origin, facing +z, with texture coordinates covering [0,1].
func GenerateQuadMesh(name string, width, height float32) *Mesh {
	hw := width * 0.5
	hh := height * 0.5
	vertices := []math.Vertex3D{
		{Position: math.NewVec3(-hw, -hh, 0), Normal: math.NewVec3(0, 0, 1.0), Texcoord: math.NewVec2(0, 0)},
		{Position: math.NewVec3(hw, -hh, 0), Normal: math.NewVec3(0, 0, 1.0), Texcoord: math.NewVec2(1.0, 0)},
		{Position: math.NewVec3(hw, hh, 0), Normal: math.NewVec3(0, 0, 1.0), Texcoord: math.NewVec2(1.0, 1.0)},
		{Position: math.NewVec3(-hw, hh, 0), Normal: math.NewVec3(0, 0, 1.0), Texcoord: math.NewVec2(0, 1.0)},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	return NewMesh(name, vertices, indices)
}

// GenerateBoxMesh builds an axis-aligned box centered at the origin with
// outward face normals.
func GenerateBoxMesh(name string, width, height, depth float32) *Mesh {
	hw := width * 0.5
	hh := height * 0.5
	hd := depth * 0.5

	type face struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}
	faces := []face{
		{math.NewVec3(0, 0, 1.0), [4]math.Vec3{{X: -hw, Y: -hh, Z: hd}, {X: hw, Y: -hh, Z: hd}, {X: hw, Y: hh, Z: hd}, {X: -hw, Y: hh, Z: hd}}},
		{math.NewVec3(0, 0, -1.0), [4]math.Vec3{{X: hw, Y: -hh, Z: -hd}, {X: -hw, Y: -hh, Z: -hd}, {X: -hw, Y: hh, Z: -hd}, {X: hw, Y: hh, Z: -hd}}},
		{math.NewVec3(1.0, 0, 0), [4]math.Vec3{{X: hw, Y: -hh, Z: hd}, {X: hw, Y: -hh, Z: -hd}, {X: hw, Y: hh, Z: -hd}, {X: hw, Y: hh, Z: hd}}},
		{math.NewVec3(-1.0, 0, 0), [4]math.Vec3{{X: -hw, Y: -hh, Z: -hd}, {X: -hw, Y: -hh, Z: hd}, {X: -hw, Y: hh, Z: hd}, {X: -hw, Y: hh, Z: -hd}}},
		{math.NewVec3(0, 1.0, 0), [4]math.Vec3{{X: -hw, Y: hh, Z: hd}, {X: hw, Y: hh, Z: hd}, {X: hw, Y: hh, Z: -hd}, {X: -hw, Y: hh, Z: -hd}}},
		{math.NewVec3(0, -1.0, 0), [4]math.Vec3{{X: -hw, Y: -hh, Z: -hd}, {X: hw, Y: -hh, Z: -hd}, {X: hw, Y: -hh, Z: hd}, {X: -hw, Y: -hh, Z: hd}}},
	}

	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1.0, Y: 0}, {X: 1.0, Y: 1.0}, {X: 0, Y: 1.0}}

	var vertices []math.Vertex3D
	var indices []uint32
	for _, f := range faces {
		base := uint32(len(vertices))
		for c := 0; c < 4; c++ {
			vertices = append(vertices, math.Vertex3D{
				Position: f.corners[c],
				Normal:   f.normal,
				Texcoord: uvs[c],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewMesh(name, vertices, indices)
}

// GenerateSphereMesh builds a latitude/longitude sphere of the given radius.
func GenerateSphereMesh(name string, radius float32, rings, segments int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	var vertices []math.Vertex3D
	var indices []uint32

	for r := 0; r <= rings; r++ {
		phi := gomath.Pi * float64(r) / float64(rings)
		for s := 0; s <= segments; s++ {
			theta := 2.0 * gomath.Pi * float64(s) / float64(segments)

			n := math.NewVec3(
				float32(gomath.Sin(phi)*gomath.Cos(theta)),
				float32(gomath.Cos(phi)),
				float32(gomath.Sin(phi)*gomath.Sin(theta)),
			)
			vertices = append(vertices, math.Vertex3D{
				Position: n.MulScalar(radius),
				Normal:   n,
				Texcoord: math.NewVec2(float32(s)/float32(segments), 1.0-float32(r)/float32(rings)),
			})
		}
	}

	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			i0 := uint32(r)*stride + uint32(s)
			i1 := i0 + stride
			indices = append(indices, i0, i1, i0+1, i1, i1+1, i0+1)
		}
	}
	return NewMesh(name, vertices, indices)
}
