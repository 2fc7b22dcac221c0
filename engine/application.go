package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/prisma/engine/core"
	"github.com/spaghettifunk/prisma/engine/math"
)

type ApplicationConfig struct {
	// The application name used for logging.
	Name string `toml:"name"`
	// Rendered image width in pixels.
	Width int `toml:"width"`
	// Rendered image height in pixels.
	Height int `toml:"height"`
	// Vertical field of view in degrees.
	FOVDegrees float32 `toml:"fov_degrees"`
	// Number of frames to render. The scene builder may animate between them.
	Frames int `toml:"frames"`
	// Number of goroutines rendering scan-lines. Zero means one per CPU.
	Workers int `toml:"workers"`
	// Directory the numbered output images are written to.
	OutputDir string `toml:"output_dir"`
	// Output encoding, "png" or "webp".
	OutputFormat string `toml:"output_format"`
	// Directory watched for meshes and textures.
	AssetsDir string `toml:"assets_dir"`
	// Minimum log level: debug, info, warn or error.
	LogLevel string `toml:"log_level"`
	// Camera placement, consumed by the view matrix.
	CameraEye    [3]float32 `toml:"camera_eye"`
	CameraTarget [3]float32 `toml:"camera_target"`
	CameraUp     [3]float32 `toml:"camera_up"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:         "Prisma",
		Width:        800,
		Height:       800,
		FOVDegrees:   120,
		Frames:       1,
		OutputDir:    "output",
		OutputFormat: "png",
		AssetsDir:    "assets",
		LogLevel:     "info",
		CameraEye:    [3]float32{0, 0, 80},
		CameraTarget: [3]float32{0, 0, 0},
		CameraUp:     [3]float32{0, 1, 0},
	}
}

// LoadApplicationConfig reads a TOML configuration file on top of the
// defaults, so a partial file only overrides what it names.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration '%s': %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration '%s': %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", c.Width, c.Height)
	}
	if c.FOVDegrees <= 0 || c.FOVDegrees >= 180 {
		return fmt.Errorf("field of view %f out of range (0, 180)", c.FOVDegrees)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frame count must be positive, got %d", c.Frames)
	}
	return nil
}

func (c *ApplicationConfig) logLevel() core.LogLevel {
	switch c.LogLevel {
	case "debug":
		return core.DebugLevel
	case "warn":
		return core.WarnLevel
	case "error":
		return core.ErrorLevel
	default:
		return core.InfoLevel
	}
}

// viewMatrix builds the world-to-camera transform from the configured
// camera placement.
func (c *ApplicationConfig) viewMatrix() math.Mat4 {
	return math.NewMat4LookAt(
		math.NewVec3(c.CameraEye[0], c.CameraEye[1], c.CameraEye[2]),
		math.NewVec3(c.CameraTarget[0], c.CameraTarget[1], c.CameraTarget[2]),
		math.NewVec3(c.CameraUp[0], c.CameraUp[1], c.CameraUp[2]),
	)
}
