package matrixscene

// Buffer is a fixed-size row-major RGBA pixel buffer. Pix holds 4 bytes per
// pixel in R, G, B, A order with the origin at the top-left. Buffers are
// cheap, short-lived values; the render pipeline recreates or reuses them per
// call and never shares them across scenes.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer creates a transparent buffer of the given size. Non-positive
// dimensions are clamped to zero so a malformed derived size can never make
// rendering fail.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// SetPixel writes color at (x, y). Out-of-bounds writes are ignored.
func (b *Buffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	i := (y*b.Width + x) * 4
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// At returns the color at (x, y), or transparent black when out of bounds.
func (b *Buffer) At(x, y int) Color {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return Color{}
	}
	i := (y*b.Width + x) * 4
	return Color{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
}

// Clear resets every pixel to transparent black.
func (b *Buffer) Clear() {
	clear(b.Pix)
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c Color) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = c.R
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.B
		b.Pix[i+3] = c.A
	}
}

// FillRect fills the intersection of r with the buffer bounds.
func (b *Buffer) FillRect(r Rect, c Color) {
	x0 := clampI(r.X, 0, b.Width)
	y0 := clampI(r.Y, 0, b.Height)
	x1 := clampI(r.X+r.Width, 0, b.Width)
	y1 := clampI(r.Y+r.Height, 0, b.Height)
	for y := y0; y < y1; y++ {
		i := (y*b.Width + x0) * 4
		for x := x0; x < x1; x++ {
			b.Pix[i] = c.R
			b.Pix[i+1] = c.G
			b.Pix[i+2] = c.B
			b.Pix[i+3] = c.A
			i += 4
		}
	}
}

// DrawFrame draws a one-pixel outline just inside the buffer edges.
func (b *Buffer) DrawFrame(c Color) {
	for x := 0; x < b.Width; x++ {
		b.SetPixel(x, 0, c)
		b.SetPixel(x, b.Height-1, c)
	}
	for y := 0; y < b.Height; y++ {
		b.SetPixel(0, y, c)
		b.SetPixel(b.Width-1, y, c)
	}
}

// Blit composites src over this buffer at (x, y) using standard source-over
// alpha blending scaled by opacity. The source is clipped to the destination
// bounds; placements partially or fully outside never fail.
func (b *Buffer) Blit(src *Buffer, x, y int, opacity float64) {
	if src == nil || opacity <= 0 {
		return
	}
	opacity = clampF(opacity, 0, 1)

	sx0 := 0
	sy0 := 0
	if x < 0 {
		sx0 = -x
	}
	if y < 0 {
		sy0 = -y
	}
	sx1 := src.Width
	if x+src.Width > b.Width {
		sx1 = b.Width - x
	}
	sy1 := src.Height
	if y+src.Height > b.Height {
		sy1 = b.Height - y
	}
	if sx0 >= sx1 || sy0 >= sy1 {
		return
	}

	for sy := sy0; sy < sy1; sy++ {
		si := (sy*src.Width + sx0) * 4
		di := ((y+sy)*b.Width + (x + sx0)) * 4
		for sx := sx0; sx < sx1; sx++ {
			sa := float64(src.Pix[si+3]) / 255 * opacity
			if sa > 0 {
				da := float64(b.Pix[di+3]) / 255
				b.Pix[di] = uint8(float64(b.Pix[di])*(1-sa) + float64(src.Pix[si])*sa)
				b.Pix[di+1] = uint8(float64(b.Pix[di+1])*(1-sa) + float64(src.Pix[si+1])*sa)
				b.Pix[di+2] = uint8(float64(b.Pix[di+2])*(1-sa) + float64(src.Pix[si+2])*sa)
				b.Pix[di+3] = uint8((sa + da*(1-sa)) * 255)
			}
			si += 4
			di += 4
		}
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]uint8, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}
