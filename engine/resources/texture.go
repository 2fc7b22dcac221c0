package resources

import (
	"image"
	"image/color"

	"github.com/spaghettifunk/prisma/engine/math"
)

// TextureImage is a named, decoded texture that resolves 2D texture
// coordinates to color samples. FlipY records the source convention: when
// true, sampling flips the coordinate vertically before lookup.
type TextureImage struct {
	Name  string
	FlipY bool
	img   image.Image
}

func NewTextureImage(name string, img image.Image, flipY bool) *TextureImage {
	return &TextureImage{Name: name, FlipY: flipY, img: img}
}

// NewWhiteTexture returns the 1x1 opaque white texture every registry is
// seeded with. Sampling it is the identity for color modulation.
func NewWhiteTexture(name string) *TextureImage {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return &TextureImage{Name: name, img: img}
}

// Sample resolves the texture coordinate to an RGB color with components in
// [0,1]. Coordinates are clamped to the edge, and a texture with no backing
// image degrades to opaque white rather than failing the pixel.
func (t *TextureImage) Sample(u, v float32) math.Vec3 {
	if t == nil || t.img == nil {
		return math.NewVec3One()
	}

	if t.FlipY {
		v = 1.0 - v
	}
	u = math.Clamp(u, 0, 1.0)
	v = math.Clamp(v, 0, 1.0)

	bounds := t.img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w == 0 || h == 0 {
		return math.NewVec3One()
	}

	x := bounds.Min.X + math.Clamp(int(u*float32(w)), 0, w-1)
	// Image row 0 is the top; texture v=0 is the bottom.
	y := bounds.Min.Y + math.Clamp(int((1.0-v)*float32(h)), 0, h-1)

	r, g, b, _ := t.img.At(x, y).RGBA()
	return math.NewVec3(
		float32(r)/0xffff,
		float32(g)/0xffff,
		float32(b)/0xffff,
	)
}
