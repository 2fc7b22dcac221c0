package engine

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/renderer"
	"github.com/spaghettifunk/prisma/engine/scene"
	"github.com/spaghettifunk/prisma/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	systemManager *systems.SystemManager
	renderer      *renderer.Headless
	writer        *renderer.ImageWriter
	graph         *scene.Scenegraph
	clock         *core.Clock
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, fmt.Errorf("engine requires a game with a configuration")
	}
	if g.FnBuildScene == nil {
		return nil, fmt.Errorf("engine requires a scene builder")
	}
	if err := g.ApplicationConfig.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(g.ApplicationConfig.logLevel())

	sm, err := systems.NewSystemManager(g.ApplicationConfig.AssetsDir)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	g.SystemManager = sm

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		systemManager: sm,
		clock:         core.NewClock(),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	config := e.gameInstance.ApplicationConfig

	format, err := renderer.ParseImageFormat(config.OutputFormat)
	if err != nil {
		return err
	}
	e.writer, err = renderer.NewImageWriter(config.OutputDir, format)
	if err != nil {
		return err
	}

	e.renderer, err = renderer.NewHeadless(e.systemManager)
	if err != nil {
		return err
	}

	e.graph, err = e.gameInstance.FnBuildScene(e.gameInstance)
	if err != nil {
		return fmt.Errorf("scene build failed: %w", err)
	}
	if err := e.graph.SetRenderer(e.renderer); err != nil {
		return err
	}
	e.graph.SetTraceConfig(scene.TraceConfig{Workers: config.Workers})

	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized: %dx%d, fov %.1f, %d frame(s)",
		config.Name, config.Width, config.Height, config.FOVDegrees, config.Frames)
	return nil
}

// Run renders every configured frame, honoring cancellation between frames
// and between scan-lines of a frame.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("%w: engine not initialized", core.ErrNotReady)
	}
	e.currentStage = EngineStageRunning
	config := e.gameInstance.ApplicationConfig

	e.clock.Start()
	for frame := 0; frame < config.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(e.gameInstance, frame, e.graph); err != nil {
				return fmt.Errorf("frame %d update failed: %w", frame, err)
			}
		}

		modelview := math.NewMatrixStackFrom(config.viewMatrix())
		img, err := e.graph.RayTrace(ctx, config.Width, config.Height, modelview, config.FOVDegrees)
		if err != nil {
			return err
		}
		if _, err := e.writer.Write(img); err != nil {
			return err
		}
	}
	e.clock.Update()
	core.LogInfo("rendered %d frame(s) in %s", config.Frames, e.clock.Elapsed())

	return e.Shutdown()
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	core.LogInfo("shutting down")

	if e.graph != nil {
		e.graph.Dispose()
	}
	if e.systemManager != nil {
		if err := e.systemManager.Shutdown(); err != nil {
			core.LogError(err.Error())
			return err
		}
	}
	return nil
}
