package resources

import (
	gomath "math"

	"github.com/spaghettifunk/prisma/engine/math"
)

// Light is a positional or directional Phong light. Position.W encodes the
// kind: w=0 is a directional light arriving from Position's direction, any
// other w is a point in the space of the node the light is attached to.
//
// SpotCutoff holds the cosine of the half-angle of the spot cone. The default
// of -1 makes every direction pass the (strictly greater-than) cone test, so
// a plain point light is simply a spotlight with a fully open cone.
type Light struct {
	Position      math.Vec4
	SpotDirection math.Vec4
	SpotCutoff    float32
	Ambient       math.Vec3
	Diffuse       math.Vec3
	Specular      math.Vec3
}

func NewPointLight(position math.Vec3, ambient, diffuse, specular math.Vec3) *Light {
	return &Light{
		Position:      position.ToVec4(1.0),
		SpotDirection: math.NewVec4Direction(0, 0, -1.0),
		SpotCutoff:    -1.0,
		Ambient:       ambient,
		Diffuse:       diffuse,
		Specular:      specular,
	}
}

// NewDirectionalLight creates a light at infinity arriving from the given
// direction.
func NewDirectionalLight(direction math.Vec3, ambient, diffuse, specular math.Vec3) *Light {
	return &Light{
		Position:      direction.ToVec4(0),
		SpotDirection: math.NewVec4Direction(0, 0, -1.0),
		SpotCutoff:    -1.0,
		Ambient:       ambient,
		Diffuse:       diffuse,
		Specular:      specular,
	}
}

func NewSpotLight(position, spotDirection math.Vec3, cutoffRadians float32, ambient, diffuse, specular math.Vec3) *Light {
	l := NewPointLight(position, ambient, diffuse, specular)
	l.SpotDirection = spotDirection.ToVec4(0)
	l.SetSpotAngle(cutoffRadians)
	return l
}

// SetSpotAngle stores the cosine of the given half-angle as the cutoff.
func (l *Light) SetSpotAngle(radians float32) {
	l.SpotCutoff = float32(gomath.Cos(float64(radians)))
}

// Directional reports whether the light sits at infinity.
func (l *Light) Directional() bool {
	return l.Position.W == 0
}
