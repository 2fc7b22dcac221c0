package engine

import (
	"github.com/spaghettifunk/prisma/engine/scene"
	"github.com/spaghettifunk/prisma/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnBuildScene      BuildScene
	FnUpdate          Update
}

// BuildScene assembles the scene graph the engine renders. Called once
// during initialization, before the renderer is attached.
type BuildScene func(g *Game) (*scene.Scenegraph, error)

// Update runs before each frame and may animate the graph. Optional.
type Update func(g *Game, frame int, graph *scene.Scenegraph) error
