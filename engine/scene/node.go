package scene

import (
	"fmt"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/resources"
)

// Node is one element of the scene graph. Every variant answers the two
// traversal questions, "what does this ray hit below you?" and "which
// lights shine below you?", after composing the incoming transform stack
// with its own local transform. Results are always expressed in the space of
// the stack the caller passed in.
type Node interface {
	Name() string
	// RayCast intersects the ray against everything below this node. The
	// stack is returned at the depth it was received.
	RayCast(modelview *math.MatrixStack, ray math.Ray, renderer Renderer) ([]resources.HitRecord, error)
	// GetLights collects every light reachable from this node, paired with
	// the matrix that was on top of the stack where the light is attached.
	// Entries come back in discovery order, so shading accumulates the same
	// way on every trace; when the same light is reachable through two paths
	// the first-discovered transform wins.
	GetLights(modelview *math.MatrixStack) []LightEntry
	// SetScenegraph installs a back-reference to the owning graph on this
	// node and everything below it. Non-owning: nodes never extend the
	// graph's lifetime.
	SetScenegraph(sg *Scenegraph)
	AddLight(light *resources.Light)
}

// LightEntry pairs a light with the modelview transform captured where the
// light is attached to the graph.
type LightEntry struct {
	Light     *resources.Light
	Transform math.Mat4
}

type baseNode struct {
	name   string
	sg     *Scenegraph
	lights []*resources.Light
}

func (n *baseNode) Name() string {
	return n.name
}

func (n *baseNode) AddLight(light *resources.Light) {
	n.lights = append(n.lights, light)
}

// ownLights pairs the node's attached lights with the given transform, in
// attachment order.
func (n *baseNode) ownLights(top math.Mat4) []LightEntry {
	lights := make([]LightEntry, 0, len(n.lights))
	for _, l := range n.lights {
		lights = append(lights, LightEntry{Light: l, Transform: top})
	}
	return lights
}

// mergeLights appends src entries whose light is not already present,
// keeping the first-discovered transform when a light is reachable through
// more than one path.
func mergeLights(dst, src []LightEntry) []LightEntry {
	for _, entry := range src {
		seen := false
		for _, existing := range dst {
			if existing.Light == entry.Light {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, entry)
		}
	}
	return dst
}

// GroupNode holds an ordered list of children and no geometry of its own.
type GroupNode struct {
	baseNode
	children []Node
}

func NewGroupNode(name string) *GroupNode {
	return &GroupNode{baseNode: baseNode{name: name}}
}

func (n *GroupNode) AddChild(child Node) {
	n.children = append(n.children, child)
}

func (n *GroupNode) Children() []Node {
	return n.children
}

func (n *GroupNode) SetScenegraph(sg *Scenegraph) {
	n.sg = sg
	for _, c := range n.children {
		c.SetScenegraph(sg)
	}
	sg.trackNode(n)
}

func (n *GroupNode) RayCast(modelview *math.MatrixStack, ray math.Ray, renderer Renderer) ([]resources.HitRecord, error) {
	modelview.Push()
	defer modelview.Pop()

	var hits []resources.HitRecord
	for _, c := range n.children {
		childHits, err := c.RayCast(modelview, ray, renderer)
		if err != nil {
			// A failing subtree contributes no hits but never kills the image.
			core.LogWarn("ray cast below node '%s' failed: %v", c.Name(), err)
			continue
		}
		hits = append(hits, childHits...)
	}
	return hits, nil
}

func (n *GroupNode) GetLights(modelview *math.MatrixStack) []LightEntry {
	modelview.Push()
	defer modelview.Pop()

	lights := n.ownLights(modelview.Peek())
	for _, c := range n.children {
		lights = mergeLights(lights, c.GetLights(modelview))
	}
	return lights
}

// TransformNode applies a local transform to a single child. The static
// transform is authored once; the animation transform can be replaced every
// frame and is applied before it.
type TransformNode struct {
	baseNode
	transform *math.Transform
	animation math.Mat4
	child     Node
}

func NewTransformNode(name string, transform *math.Transform) *TransformNode {
	if transform == nil {
		transform = math.TransformCreate()
	}
	return &TransformNode{
		baseNode:  baseNode{name: name},
		transform: transform,
		animation: math.NewMat4Identity(),
	}
}

func (n *TransformNode) SetChild(child Node) {
	n.child = child
}

func (n *TransformNode) Transform() *math.Transform {
	return n.transform
}

func (n *TransformNode) SetAnimation(m math.Mat4) {
	n.animation = m
}

func (n *TransformNode) SetScenegraph(sg *Scenegraph) {
	n.sg = sg
	if n.child != nil {
		n.child.SetScenegraph(sg)
	}
	sg.trackNode(n)
}

// local composes the animation under the static transform: animation first,
// then the authored transform.
func (n *TransformNode) local() math.Mat4 {
	return n.animation.Mul(n.transform.GetLocal())
}

func (n *TransformNode) RayCast(modelview *math.MatrixStack, ray math.Ray, renderer Renderer) ([]resources.HitRecord, error) {
	modelview.PushMul(n.local())
	defer modelview.Pop()

	if n.child == nil {
		return nil, nil
	}
	hits, err := n.child.RayCast(modelview, ray, renderer)
	if err != nil {
		core.LogWarn("ray cast below node '%s' failed: %v", n.child.Name(), err)
		return nil, nil
	}
	return hits, nil
}

func (n *TransformNode) GetLights(modelview *math.MatrixStack) []LightEntry {
	modelview.PushMul(n.local())
	defer modelview.Pop()

	lights := n.ownLights(modelview.Peek())
	if n.child != nil {
		lights = mergeLights(lights, n.child.GetLights(modelview))
	}
	return lights
}

// LeafNode references a registered mesh along with the material and texture
// used to shade it.
type LeafNode struct {
	baseNode
	meshName    string
	material    resources.Material
	textureName string
}

func NewLeafNode(name, meshName string) *LeafNode {
	return &LeafNode{
		baseNode:    baseNode{name: name},
		meshName:    meshName,
		material:    resources.DefaultMaterial(),
		textureName: "",
	}
}

func (n *LeafNode) SetMaterial(m resources.Material) {
	n.material = m
}

func (n *LeafNode) Material() resources.Material {
	return n.material
}

// SetTexture names the texture used during shading. An empty name resolves
// to the default white texture.
func (n *LeafNode) SetTexture(name string) {
	n.textureName = name
}

func (n *LeafNode) SetScenegraph(sg *Scenegraph) {
	n.sg = sg
	sg.trackNode(n)
}

// RayCast transforms the ray into the leaf's local space with the inverse of
// the stack top, delegates the primitive test to the renderer's mesh
// capability and stamps the resulting records back into the caller's space.
func (n *LeafNode) RayCast(modelview *math.MatrixStack, ray math.Ray, renderer Renderer) ([]resources.HitRecord, error) {
	if renderer == nil {
		return nil, fmt.Errorf("leaf '%s': no renderer to delegate intersection to", n.name)
	}

	top := modelview.Peek()
	inverse := top.Inverse()
	localRay := ray.Transform(inverse)

	hits, err := renderer.MeshRayCast(n.meshName, localRay)
	if err != nil {
		return nil, fmt.Errorf("leaf '%s': %w", n.name, err)
	}

	normalMatrix := top.NormalMatrix()
	texture := renderer.AcquireTexture(n.textureName)
	for i := range hits {
		h := &hits[i]
		// The t parameter is shared between the local and the caller-space
		// ray, so the position can be evaluated on the original ray.
		h.Intersection = ray.PointAt(h.T)
		normal := h.Normal.Transform(normalMatrix)
		normal.W = 0
		h.Normal = normal.ToVec3().Normalized().ToVec4(0)
		h.Material = n.material
		h.Texture = texture
	}
	return hits, nil
}

func (n *LeafNode) GetLights(modelview *math.MatrixStack) []LightEntry {
	return n.ownLights(modelview.Peek())
}
