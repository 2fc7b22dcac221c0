package resources

import (
	"github.com/spaghettifunk/prisma/engine/math"
)

// Material holds the Phong reflectance terms of a surface. Materials are
// read-only during shading.
type Material struct {
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Shininess float32
}

// DefaultMaterial is a neutral grey surface used when a leaf declares none.
func DefaultMaterial() Material {
	return Material{
		Ambient:   math.NewVec3(0.2, 0.2, 0.2),
		Diffuse:   math.NewVec3(0.7, 0.7, 0.7),
		Specular:  math.NewVec3(0.3, 0.3, 0.3),
		Shininess: 10.0,
	}
}
