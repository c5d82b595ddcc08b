package matrixscene

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Image renders a decoded image at its native pixel size, clipped to the
// box. Small sprite sheets and icons for LED matrices are expected; no
// scaling is applied.
type Image struct {
	Base

	src    image.Image
	pixels *Buffer
}

// NewImage wraps an already decoded image. Panics on nil.
func NewImage(src image.Image) *Image {
	if src == nil {
		panic("matrixscene: cannot create image component from nil image")
	}
	i := &Image{src: src}
	baseDefaults(&i.Base)
	return i
}

// LoadImage decodes a PNG, GIF or JPEG file into an Image component.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return NewImage(src), nil
}

// SetImage swaps the source image.
func (i *Image) SetImage(src image.Image) {
	if src == nil {
		panic("matrixscene: cannot set nil image")
	}
	i.src = src
	i.pixels = nil
	i.MarkDirty()
}

// IntrinsicSize returns the image's native size.
func (i *Image) IntrinsicSize() (int, int) {
	b := i.src.Bounds()
	return b.Dx(), b.Dy()
}

// convert flattens the source image into a pixel buffer once per source.
func (i *Image) convert() *Buffer {
	if i.pixels != nil {
		return i.pixels
	}
	b := i.src.Bounds()
	buf := NewBuffer(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, a := i.src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			buf.SetPixel(x, y, Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: uint8(a >> 8)})
		}
	}
	i.pixels = buf
	return buf
}

// Render copies the image into the box, clipping any overhang.
func (i *Image) Render(ctx *RenderContext, box Rect) *Buffer {
	return i.renderCached(ctx, box, i.Epoch(), func() *Buffer {
		buf := NewBuffer(box.Width, box.Height)
		buf.Blit(i.convert(), 0, 0, 1)
		return buf
	})
}
