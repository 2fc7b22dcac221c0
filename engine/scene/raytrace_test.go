package scene

import (
	"context"
	"errors"
	gomath "math"
	"testing"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/resources"
)

// occluderGraph builds a scene containing a single large quad orthogonal to
// the z axis at the given depth, used as a shadow blocker.
func occluderGraph(t *testing.T, z float32) *Scenegraph {
	t.Helper()

	sg := NewScenegraph()
	sg.AddPolygonMesh("quad", resources.GenerateQuadMesh("quad", 1, 1))

	root := NewGroupNode("root")
	tn := NewTransformNode("occluder", math.TransformFromPositionRotationScale(
		math.NewVec3(0, 0, z),
		math.NewQuatIdentity(),
		math.NewVec3(50, 50, 1),
	))
	tn.SetChild(NewLeafNode("blocker", "quad"))
	root.AddChild(tn)
	sg.MakeScenegraph(root)

	if err := sg.SetRenderer(newFakeRenderer()); err != nil {
		t.Fatalf("SetRenderer failed: %v", err)
	}
	return sg
}

func emptyGraph(t *testing.T) *Scenegraph {
	t.Helper()
	sg := NewScenegraph()
	sg.MakeScenegraph(NewGroupNode("root"))
	if err := sg.SetRenderer(newFakeRenderer()); err != nil {
		t.Fatalf("SetRenderer failed: %v", err)
	}
	return sg
}

func TestRayTrace_NotReadyWithoutRootOrRenderer(t *testing.T) {
	sg := NewScenegraph()
	if _, err := sg.RayTrace(context.Background(), 4, 4, math.NewMatrixStack(), 90); !errors.Is(err, core.ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}

	sg.MakeScenegraph(NewGroupNode("root"))
	if _, err := sg.RayTrace(context.Background(), 4, 4, math.NewMatrixStack(), 90); !errors.Is(err, core.ErrNotReady) {
		t.Errorf("expected ErrNotReady without a renderer, got %v", err)
	}
}

func TestRayTrace_EmptySceneIsBlack(t *testing.T) {
	sg := emptyGraph(t)

	img, err := sg.RayTrace(context.Background(), 4, 4, math.NewMatrixStack(), 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 {
				t.Fatalf("expected black at (%d,%d), got %v", x, y, c)
			}
			if c.A != 255 {
				t.Fatalf("expected opaque alpha at (%d,%d), got %d", x, y, c.A)
			}
		}
	}
}

func TestRayTrace_UnlitHitShowsAmbient(t *testing.T) {
	sg := occluderGraph(t, -10)

	img, err := sg.RayTrace(context.Background(), 4, 4, math.NewMatrixStack(), 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// center pixel looks straight down -z into the quad; with no lights the
	// color is the default material's ambient term
	c := img.RGBAAt(2, 2)
	want := uint8(255 * 0.2)
	if c.R != want || c.G != want || c.B != want {
		t.Errorf("expected ambient grey (%d), got %v", want, c)
	}
	if c.A != 255 {
		t.Errorf("expected opaque alpha, got %d", c.A)
	}
}

// TestRayTrace_LitQuadMatchesPhongByHand traces a single pixel against a quad
// and one point light and checks the full pipeline (primary ray, shadow ray,
// Phong terms, texture multiply, quantization) against a closed-form value.
//
// Geometry: 1x1 image at 90 degrees vertical FOV gives the one ray direction
// (-0.5, 0.5, -0.5). The quad spans x,y in [-25,25] at z=-10, so the ray hits
// at (-10, 10, -10) with normal (0,0,1). The light sits at the eye, so the
// light vector is (1,-1,1)/sqrt(3), N.L = 1/sqrt(3), and the reflection of the
// light about the normal points away from the viewer (R.V clamps to zero, no
// specular). Nothing occludes the shadow ray back to the eye. Expected color:
//
//	ambient + lightAmbient*ambient + N.L * diffuse*lightDiffuse
//	= 0.2 + 0.1*0.2 + (1/sqrt(3))*0.5 per channel, times a white texel.
func TestRayTrace_LitQuadMatchesPhongByHand(t *testing.T) {
	sg := occluderGraph(t, -10)

	leaf, ok := sg.GetNode("blocker")
	if !ok {
		t.Fatal("blocker leaf not registered")
	}
	leaf.(*LeafNode).SetMaterial(resources.Material{
		Ambient:   math.NewVec3(0.2, 0.2, 0.2),
		Diffuse:   math.NewVec3(0.5, 0.5, 0.5),
		Specular:  math.NewVec3(0.8, 0.8, 0.8),
		Shininess: 10,
	})

	root, _ := sg.GetNode("root")
	root.AddLight(resources.NewPointLight(
		math.NewVec3(0, 0, 0),
		math.NewVec3(0.1, 0.1, 0.1),
		math.NewVec3(1, 1, 1),
		math.NewVec3(1, 1, 1),
	))

	img, err := sg.RayTrace(context.Background(), 1, 1, math.NewMatrixStack(), 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nDotL := float32(1.0 / gomath.Sqrt(3))
	expected := 0.2 + 0.1*0.2 + nDotL*0.5
	want := uint8(255 * math.Clamp(expected, 0, 1))

	c := img.RGBAAt(0, 0)
	for name, got := range map[string]uint8{"R": c.R, "G": c.G, "B": c.B} {
		if got < want-1 || got > want+1 {
			t.Errorf("%s: expected %d within one step, got %d", name, want, got)
		}
	}
	if c.A != 255 {
		t.Errorf("expected opaque alpha, got %d", c.A)
	}
}

func TestRayTrace_CancelledContext(t *testing.T) {
	sg := occluderGraph(t, -10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sg.RayTrace(ctx, 64, 64, math.NewMatrixStack(), 90); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCanSeeLight_PositionalShadowWindow(t *testing.T) {
	hit := resources.HitRecord{Intersection: math.NewVec4Point(0, 0, 0)}
	light := resources.NewPointLight(
		math.NewVec3(0, 0, 10),
		math.NewVec3(0.1, 0.1, 0.1),
		math.NewVec3(1, 1, 1),
		math.NewVec3(1, 1, 1),
	)

	// blocker halfway to the light occludes (t near 0.5)
	sg := occluderGraph(t, 5)
	if sg.canSeeLight(hit, light, math.NewMat4Identity(), math.NewMatrixStack()) {
		t.Error("expected a blocker between point and light to occlude")
	}

	// blocker past the light does not (t past the shadow window)
	sg = occluderGraph(t, 10.2)
	if !sg.canSeeLight(hit, light, math.NewMat4Identity(), math.NewMatrixStack()) {
		t.Error("expected a blocker beyond the light not to occlude")
	}

	// blocker behind the point does not (t < 0)
	sg = occluderGraph(t, -5)
	if !sg.canSeeLight(hit, light, math.NewMat4Identity(), math.NewMatrixStack()) {
		t.Error("expected a blocker behind the point not to occlude")
	}
}

func TestCanSeeLight_DirectionalHasNoUpperBound(t *testing.T) {
	hit := resources.HitRecord{Intersection: math.NewVec4Point(0, 0, 0)}
	// light arrives travelling towards -z, so the shadow ray goes +z
	light := resources.NewDirectionalLight(
		math.NewVec3(0, 0, -1),
		math.NewVec3(0.1, 0.1, 0.1),
		math.NewVec3(1, 1, 1),
		math.NewVec3(1, 1, 1),
	)

	// any blocker along the direction occludes, no matter how far
	sg := occluderGraph(t, 10.2)
	if sg.canSeeLight(hit, light, math.NewMat4Identity(), math.NewMatrixStack()) {
		t.Error("expected a distant blocker to occlude a directional light")
	}

	sg = occluderGraph(t, -5)
	if !sg.canSeeLight(hit, light, math.NewMat4Identity(), math.NewMatrixStack()) {
		t.Error("expected a blocker behind the point not to occlude")
	}
}

func TestShade_SpotCutoffIsStrict(t *testing.T) {
	sg := emptyGraph(t)

	material := resources.Material{
		Ambient:   math.NewVec3(0.2, 0.2, 0.2),
		Diffuse:   math.NewVec3(0.5, 0.5, 0.5),
		Specular:  math.NewVec3(0, 0, 0),
		Shininess: 1,
	}
	hit := resources.HitRecord{
		Intersection: math.NewVec4Point(0, 0, -10),
		Normal:       math.NewVec4Direction(0, 0, 1),
		Material:     material,
		Texture:      resources.NewWhiteTexture("white"),
	}
	light := resources.NewSpotLight(
		math.NewVec3(0, 0, 0),
		math.NewVec3(0, 0, -1),
		math.DegToRad(30),
		math.NewVec3(1, 1, 1),
		math.NewVec3(1, 1, 1),
		math.NewVec3(0, 0, 0),
	)
	lights := []LightEntry{{Light: light, Transform: math.NewMat4Identity()}}

	// dead-center in the cone: base ambient + (ambient + diffuse) from the light
	got := sg.shade(hit, lights, math.NewMatrixStack())
	want := math.NewVec3(0.9, 0.9, 0.9)
	if !got.Compare(want, 1e-4) {
		t.Errorf("inside the cone: expected %v, got %v", want, got)
	}

	// a cutoff of exactly 1 can never be strictly exceeded, so even a
	// perfectly aligned point falls back to the dimmed ambient term
	light.SpotCutoff = 1.0
	got = sg.shade(hit, lights, math.NewMatrixStack())
	want = material.Ambient.Add(material.Ambient.MulScalar(0.4))
	if !got.Compare(want, 1e-4) {
		t.Errorf("on the cutoff boundary: expected %v, got %v", want, got)
	}
}

func TestShade_OccludedLightContributesNothing(t *testing.T) {
	// blocker at z=5 sits between the shaded point at z=0 and the light at z=10
	sg := occluderGraph(t, 5)

	material := resources.Material{
		Ambient:   math.NewVec3(0.2, 0.2, 0.2),
		Diffuse:   math.NewVec3(0.5, 0.5, 0.5),
		Specular:  math.NewVec3(0, 0, 0),
		Shininess: 1,
	}
	hit := resources.HitRecord{
		Intersection: math.NewVec4Point(0, 0, 0),
		Normal:       math.NewVec4Direction(0, 0, 1),
		Material:     material,
		Texture:      resources.NewWhiteTexture("white"),
	}
	light := resources.NewPointLight(
		math.NewVec3(0, 0, 10),
		math.NewVec3(1, 1, 1),
		math.NewVec3(1, 1, 1),
		math.NewVec3(1, 1, 1),
	)
	lights := []LightEntry{{Light: light, Transform: math.NewMat4Identity()}}

	got := sg.shade(hit, lights, math.NewMatrixStack())
	if !got.Compare(material.Ambient, 1e-4) {
		t.Errorf("expected only the base ambient term %v, got %v", material.Ambient, got)
	}
}
