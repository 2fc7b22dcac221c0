package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/HugoSmits86/nativewebp"
	"github.com/spaghettifunk/prisma/engine/core"
)

// ImageFormat selects the encoder an ImageWriter uses.
type ImageFormat string

const (
	FormatPNG  ImageFormat = "png"
	FormatWebP ImageFormat = "webp"
)

// ImageWriter writes traced frames to disk as imageNNN.<ext>, numbering
// frames with its own counter so concurrent writers never clash on a name.
type ImageWriter struct {
	dir     string
	format  ImageFormat
	counter atomic.Int64
}

func NewImageWriter(dir string, format ImageFormat) (*ImageWriter, error) {
	switch format {
	case FormatPNG, FormatWebP:
	default:
		return nil, fmt.Errorf("%w: unsupported image format '%s'", core.ErrOutputWrite, format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: cannot create output directory '%s': %v", core.ErrOutputWrite, dir, err)
	}
	return &ImageWriter{dir: dir, format: format}, nil
}

// Write encodes the frame and returns the path it was written to.
func (w *ImageWriter) Write(img image.Image) (string, error) {
	n := w.counter.Add(1) - 1
	path := filepath.Join(w.dir, fmt.Sprintf("image%03d.%s", n, w.format))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrOutputWrite, err)
	}
	defer f.Close()

	switch w.format {
	case FormatWebP:
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return "", fmt.Errorf("%w: encoding '%s': %v", core.ErrOutputWrite, path, err)
	}

	core.LogInfo("wrote frame to %s", path)
	return path, nil
}

// ParseImageFormat resolves a configuration string, accepting a leading dot.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png", "":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("unknown image format '%s'", s)
}
