package scene

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/resources"
)

// DefaultTextureName is the texture every scene graph is seeded with.
const DefaultTextureName = "white"

// Scenegraph owns the node hierarchy, the registries of named meshes and
// textures, and the renderer it draws through. It stays independent of the
// rendering technology: everything backend-specific hides behind Renderer.
type Scenegraph struct {
	root     Node
	meshes   map[string]*resources.Mesh
	nodes    map[string]Node
	textures map[string]string
	renderer Renderer

	traceConfig *TraceConfig
}

func NewScenegraph() *Scenegraph {
	sg := &Scenegraph{
		meshes:   make(map[string]*resources.Mesh),
		nodes:    make(map[string]Node),
		textures: make(map[string]string),
	}
	sg.AddTexture(DefaultTextureName, "textures/white.png")
	return sg
}

// MakeScenegraph sets the root of the graph and hands every node below it a
// back-reference to this graph.
func (sg *Scenegraph) MakeScenegraph(root Node) {
	sg.root = root
	if root != nil {
		root.SetScenegraph(sg)
	}
}

func (sg *Scenegraph) Root() Node {
	return sg.root
}

// SetRenderer installs the renderer and registers every known mesh and
// texture with it. Must be called once the graph is complete; a second call
// is rejected.
func (sg *Scenegraph) SetRenderer(renderer Renderer) error {
	if sg.renderer != nil {
		return fmt.Errorf("scenegraph renderer already set")
	}
	sg.renderer = renderer

	for name, mesh := range sg.meshes {
		if err := renderer.AddMesh(name, mesh); err != nil {
			return fmt.Errorf("failed to register mesh '%s': %w", name, err)
		}
	}
	for name, path := range sg.textures {
		if err := renderer.AddTexture(name, path); err != nil {
			return fmt.Errorf("failed to register texture '%s': %w", name, err)
		}
	}
	return nil
}

// AddPolygonMesh registers a mesh under a unique name. Registering after the
// renderer is set forwards the mesh immediately.
func (sg *Scenegraph) AddPolygonMesh(name string, mesh *resources.Mesh) {
	sg.meshes[name] = mesh
	if sg.renderer != nil {
		if err := sg.renderer.AddMesh(name, mesh); err != nil {
			core.LogWarn("failed to register mesh '%s' with renderer: %v", name, err)
		}
	}
}

func (sg *Scenegraph) PolygonMeshes() map[string]*resources.Mesh {
	meshes := make(map[string]*resources.Mesh, len(sg.meshes))
	for name, m := range sg.meshes {
		meshes[name] = m
	}
	return meshes
}

// AddTexture registers a texture path under a unique name.
func (sg *Scenegraph) AddTexture(name, path string) {
	sg.textures[name] = path
	if sg.renderer != nil {
		if err := sg.renderer.AddTexture(name, path); err != nil {
			core.LogWarn("failed to register texture '%s' with renderer: %v", name, err)
		}
	}
}

// trackNode records a node in the name registry for external lookup.
// Anonymous nodes are given a generated name so the registry stays unique.
func (sg *Scenegraph) trackNode(node Node) {
	name := node.Name()
	if name == "" {
		name = uuid.New().String()
	}
	sg.nodes[name] = node
}

func (sg *Scenegraph) GetNode(name string) (Node, bool) {
	n, ok := sg.nodes[name]
	return n, ok
}

func (sg *Scenegraph) Nodes() map[string]Node {
	nodes := make(map[string]Node, len(sg.nodes))
	for name, n := range sg.nodes {
		nodes[name] = n
	}
	return nodes
}

// Draw renders the graph through the interactive renderer. A graph without
// a root or renderer draws nothing.
func (sg *Scenegraph) Draw(modelview *math.MatrixStack) {
	if sg.root == nil || sg.renderer == nil {
		return
	}
	sg.renderer.LightOn(sg.root, modelview)
	sg.renderer.Draw(sg.root, modelview)
}

// LightOn enables all lights. Should be called before Draw.
func (sg *Scenegraph) LightOn(modelview *math.MatrixStack) {
	if sg.root == nil || sg.renderer == nil {
		return
	}
	sg.renderer.LightOn(sg.root, modelview)
}

func (sg *Scenegraph) Dispose() {
	if sg.renderer != nil {
		sg.renderer.Dispose()
	}
}
