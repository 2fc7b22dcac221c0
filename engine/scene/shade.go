package scene

import (
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/resources"
)

// spotFallbackBrightness dims the ambient contribution of a light whose
// cone does not reach the shaded point.
const spotFallbackBrightness float32 = 0.4

// shade runs the Phong model for the closest hit of a primary ray. Both the
// hit record and the light table are already in view space; the modelview
// stack is only consumed by the shadow rays. Lights accumulate in discovery
// order, so a pixel shades to the same bits on every trace. The returned
// color is not yet clamped.
func (sg *Scenegraph) shade(hit resources.HitRecord, lights []LightEntry, modelview *math.MatrixStack) math.Vec3 {
	position := hit.Intersection.ToVec3()
	normal := hit.Normal.ToVec3().Normalized()
	viewVec := position.Negate().Normalized()

	color := hit.Material.Ambient

	for _, entry := range lights {
		light, lightModelview := entry.Light, entry.Transform
		if !sg.canSeeLight(hit, light, lightModelview, modelview) {
			continue
		}

		lightPosition := light.Position.Transform(lightModelview)
		spotDirection := light.SpotDirection.Transform(lightModelview)

		var lightVec, lightDirect math.Vec3
		if light.Directional() {
			lightVec = lightPosition.ToVec3().Negate().Normalized()
			lightDirect = lightPosition.ToVec3().Normalized()
		} else {
			lightVec = lightPosition.ToVec3().Sub(position).Normalized()
			lightDirect = spotDirection.ToVec3().Normalized()
		}

		nDotL := normal.Dot(lightVec)
		reflectVec := lightVec.Negate().Reflect(normal).Normalized()
		rDotV := math.Max(reflectVec.Dot(viewVec), 0)

		ambient := hit.Material.Ambient.Mul(light.Ambient)
		diffuse := hit.Material.Diffuse.Mul(light.Diffuse).MulScalar(math.Max(nDotL, 0))
		specular := math.NewVec3Zero()
		if nDotL > 0 {
			specular = hit.Material.Specular.Mul(light.Specular).
				MulScalar(math.Kpow(rDotV, hit.Material.Shininess))
		}

		// points outside the spot cone only receive a dimmed ambient term
		if lightDirect.Negate().Dot(lightVec) > light.SpotCutoff {
			color = color.Add(ambient).Add(diffuse).Add(specular)
		} else {
			color = color.Add(hit.Material.Ambient.MulScalar(spotFallbackBrightness))
		}
	}

	return color.Mul(hit.Texture.Sample(hit.Texcoord.X, hit.Texcoord.Y))
}

// canSeeLight casts a shadow ray from the hit point towards the light and
// reports whether nothing stands in between. The ray origin steps 0.001
// along the light direction to escape the surface it starts on; for point
// lights the direction is left unnormalized so t=1 lands exactly on the
// light, which lets occluders beyond the light be ignored.
func (sg *Scenegraph) canSeeLight(hit resources.HitRecord, light *resources.Light, lightModelview math.Mat4, modelview *math.MatrixStack) bool {
	core.MetricsCountShadowRay()

	lightPosition := light.Position.Transform(lightModelview)
	hitPosition := hit.Intersection.ToVec3()

	var origin, direction math.Vec3
	var beforeLight func(t float32) bool
	if light.Directional() {
		direction = lightPosition.ToVec3().Negate().Normalized()
		origin = hitPosition.Add(direction.MulScalar(0.001))
		beforeLight = func(t float32) bool { return t > 0.001 }
	} else {
		direction = lightPosition.ToVec3().Sub(hitPosition)
		origin = hitPosition.Add(direction.Normalized().MulScalar(0.001))
		beforeLight = func(t float32) bool { return t > 0.001 && t < 1.001 }
	}

	shadowRay := math.NewRay(
		math.NewVec4Point(origin.X, origin.Y, origin.Z),
		math.NewVec4Direction(direction.X, direction.Y, direction.Z),
	)

	hits, err := sg.root.RayCast(modelview, shadowRay, sg.renderer)
	if err != nil {
		core.LogWarn("shadow ray cast failed: %v", err)
		return true
	}
	for _, occluder := range hits {
		if beforeLight(occluder.T) {
			return false
		}
	}
	return true
}
