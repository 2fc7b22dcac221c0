package scene

import (
	"context"
	"fmt"
	"image"
	"image/color"
	gomath "math"
	"runtime"
	"sync"

	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
	"github.com/spaghettifunk/prisma/engine/resources"
)

// TraceConfig controls how a full-image trace is scheduled.
type TraceConfig struct {
	// Workers is the number of goroutines rendering scan-lines. Zero or
	// negative means one per CPU.
	Workers int
}

func DefaultTraceConfig() TraceConfig {
	return TraceConfig{Workers: runtime.NumCPU()}
}

// SetTraceConfig overrides the scheduling configuration for RayTrace.
func (sg *Scenegraph) SetTraceConfig(config TraceConfig) {
	sg.traceConfig = &config
}

// RayTrace renders the scene into a width x height image. The modelview
// stack maps world space into camera space and fovDegrees is the vertical
// field of view. Pixels are traced in parallel, one scan-line per task, and
// cancellation is honored between scan-lines.
//
// Row 0 is the top of the image. Rays that hit nothing produce black.
func (sg *Scenegraph) RayTrace(ctx context.Context, width, height int, modelview *math.MatrixStack, fovDegrees float32) (*image.RGBA, error) {
	if sg.root == nil || sg.renderer == nil {
		return nil, fmt.Errorf("%w: cannot ray trace", core.ErrNotReady)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}

	config := DefaultTraceConfig()
	if sg.traceConfig != nil {
		config = *sg.traceConfig
	}
	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	core.MetricsInitialize()
	core.MetricsTraceBegin()
	clock := core.NewClock()
	clock.Start()

	distance := (float32(height) * 0.5) / float32(gomath.Tan(float64(math.DegToRad(fovDegrees))*0.5))
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	rows := make(chan int, height)
	for i := 0; i < height; i++ {
		rows <- i
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				select {
				case <-ctx.Done():
					return
				default:
				}
				sg.traceScanLine(i, width, height, distance, modelview, img)
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	core.MetricsTraceEnd()
	clock.Update()
	metrics := core.MetricsTrace()
	core.LogInfo("ray traced %dx%d image in %s (%d primary rays, %d shadow rays, %d hits)",
		width, height, clock.Elapsed(), metrics.PrimaryRays, metrics.ShadowRays, metrics.Hits)

	return img, nil
}

// traceScanLine renders one row of the image. Every pixel clones the
// modelview template three times (hit testing, light collection and shading
// each consume their own copy), so rows share nothing mutable.
func (sg *Scenegraph) traceScanLine(i, width, height int, distance float32, modelview *math.MatrixStack, img *image.RGBA) {
	for j := 0; j < width; j++ {
		ray := math.NewRay(
			math.NewVec4Point(0, 0, 0),
			math.NewVec4Direction(
				-float32(width)*0.5+float32(j),
				float32(height)*0.5-float32(i),
				-distance,
			),
		)
		core.MetricsCountPrimaryRay()

		mvHit := modelview.Clone()
		mvLights := modelview.Clone()
		mvShade := modelview.Clone()

		hits, err := sg.root.RayCast(mvHit, ray, sg.renderer)
		if err != nil {
			core.LogWarn("ray cast failed at pixel (%d,%d): %v", j, i, err)
			hits = nil
		}
		lights := sg.root.GetLights(mvLights)

		rgb := math.NewVec3Zero()
		if closest, ok := resources.ClosestHit(hits); ok {
			core.MetricsCountHit()
			rgb = sg.shade(closest, lights, mvShade)
		}

		img.SetRGBA(j, i, color.RGBA{
			R: uint8(255.0 * math.Clamp(rgb.X, 0, 1.0)),
			G: uint8(255.0 * math.Clamp(rgb.Y, 0, 1.0)),
			B: uint8(255.0 * math.Clamp(rgb.Z, 0, 1.0)),
			A: 255,
		})
	}
}
