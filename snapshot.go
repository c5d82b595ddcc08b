package matrixscene

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// ToImage converts the buffer into a standard image for encoding or
// inspection.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

// SavePNG writes the buffer to a PNG file. Useful for golden-frame
// debugging without a display attached.
func (b *Buffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, b.ToImage()); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return f.Close()
}
