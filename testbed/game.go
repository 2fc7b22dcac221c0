package testbed

import (
	"github.com/spaghettifunk/prisma/engine"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/resources"
	"github.com/spaghettifunk/prisma/engine/scene"
)

func NewTestGame() *engine.Game {
	return &engine.Game{
		ApplicationConfig: engine.DefaultApplicationConfig(),
		FnBuildScene:      buildScene,
		FnUpdate:          update,
	}
}

// buildScene assembles a small showcase: a floor, a sphere flanked by two
// boxes, a point light high up and a spot light aimed straight down at the
// sphere.
func buildScene(g *engine.Game) (*scene.Scenegraph, error) {
	sg := scene.NewScenegraph()

	sg.AddPolygonMesh("floor", resources.GenerateQuadMesh("floor", 1, 1))
	sg.AddPolygonMesh("box", resources.GenerateBoxMesh("box", 1, 1, 1))
	sg.AddPolygonMesh("sphere", resources.GenerateSphereMesh("sphere", 1, 24, 48))
	sg.AddTexture("checkerboard", "textures/checkerboard.png")

	root := scene.NewGroupNode("root")

	dim := math.NewVec3(0.4, 0.4, 0.4)
	bright := math.NewVec3(0.9, 0.9, 0.9)
	root.AddLight(resources.NewPointLight(
		math.NewVec3(-60, 60, 60), dim, bright, bright))
	spot := resources.NewSpotLight(
		math.NewVec3(0, 50, 0), math.NewVec3(0, -1, 0),
		math.DegToRad(25), dim, bright, bright)
	spot.SetSpotAngle(math.DegToRad(25))
	root.AddLight(spot)

	floor := scene.NewTransformNode("floor-transform",
		math.TransformFromPositionRotationScale(
			math.NewVec3(0, -10, 0),
			math.NewQuatFromAxisAngle(math.NewVec3(1, 0, 0), math.DegToRad(-90), true),
			math.NewVec3(120, 120, 1)))
	floorLeaf := scene.NewLeafNode("floor-leaf", "floor")
	floorLeaf.SetMaterial(resources.Material{
		Ambient:   math.NewVec3(0.2, 0.2, 0.2),
		Diffuse:   math.NewVec3(0.7, 0.7, 0.7),
		Specular:  math.NewVec3(0.1, 0.1, 0.1),
		Shininess: 10,
	})
	floorLeaf.SetTexture("checkerboard")
	floor.SetChild(floorLeaf)
	root.AddChild(floor)

	sphere := scene.NewTransformNode("sphere-transform",
		math.TransformFromPositionRotationScale(
			math.NewVec3(0, 0, 0),
			math.NewQuatIdentity(),
			math.NewVec3(10, 10, 10)))
	sphereLeaf := scene.NewLeafNode("sphere-leaf", "sphere")
	sphereLeaf.SetMaterial(resources.Material{
		Ambient:   math.NewVec3(0.1, 0.1, 0.25),
		Diffuse:   math.NewVec3(0.2, 0.2, 0.8),
		Specular:  math.NewVec3(0.9, 0.9, 0.9),
		Shininess: 80,
	})
	sphere.SetChild(sphereLeaf)
	root.AddChild(sphere)

	for _, side := range []struct {
		name string
		x    float32
	}{
		{name: "left-box", x: -25},
		{name: "right-box", x: 25},
	} {
		box := scene.NewTransformNode(side.name+"-transform",
			math.TransformFromPositionRotationScale(
				math.NewVec3(side.x, -2.5, 0),
				math.NewQuatFromAxisAngle(math.NewVec3(0, 1, 0), math.DegToRad(30), true),
				math.NewVec3(15, 15, 15)))
		boxLeaf := scene.NewLeafNode(side.name+"-leaf", "box")
		boxLeaf.SetMaterial(resources.Material{
			Ambient:   math.NewVec3(0.25, 0.1, 0.1),
			Diffuse:   math.NewVec3(0.8, 0.2, 0.2),
			Specular:  math.NewVec3(0.4, 0.4, 0.4),
			Shininess: 30,
		})
		box.SetChild(boxLeaf)
		root.AddChild(box)
	}

	sg.MakeScenegraph(root)
	return sg, nil
}

// update spins the sphere a little every frame so multi-frame runs show
// motion.
func update(g *engine.Game, frame int, sg *scene.Scenegraph) error {
	node, ok := sg.GetNode("sphere-transform")
	if !ok {
		return nil
	}
	if tn, ok := node.(*scene.TransformNode); ok {
		tn.SetAnimation(math.NewMat4EulerY(math.DegToRad(float32(frame) * 12)))
	}
	return nil
}
