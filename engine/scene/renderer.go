package scene

import (
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/resources"
)

// Renderer is the contract a scene graph renders through. The interactive
// rasterized path implements Draw/LightOn against a GPU API; the ray-traced
// path only ever calls the mesh intersection and texture resolution
// capabilities.
type Renderer interface {
	// AddMesh registers a named mesh with the renderer.
	AddMesh(name string, mesh *resources.Mesh) error
	// AddTexture registers a named texture by path.
	AddTexture(name, path string) error
	// MeshRayCast intersects a ray, given in the mesh's local space, against
	// the named mesh.
	MeshRayCast(name string, ray math.Ray) ([]resources.HitRecord, error)
	// AcquireTexture resolves a texture by name, falling back to the default
	// white texture for unknown names.
	AcquireTexture(name string) *resources.TextureImage
	// Draw renders the graph below root under the given modelview stack.
	Draw(root Node, modelview *math.MatrixStack)
	// LightOn enables every light reachable from root. Must be called before
	// Draw on renderers that maintain light state.
	LightOn(root Node, modelview *math.MatrixStack)
	// Dispose releases renderer-owned resources.
	Dispose()
}
