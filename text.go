package matrixscene

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text renders a single line of text with the bundled 7x13 pixel face. When
// the line is wider than the available box the component becomes scrollable:
// either manually through the Scrollable capability (and then focusable for
// keyboard scrolling), or automatically with a pause / scroll / pause /
// scroll-back cycle driven by the scene clock.
type Text struct {
	Base

	text    string
	face    font.Face
	fg, bg  Color
	padding int

	// maxWidth caps the intrinsic width in pixels. Zero means the natural
	// text width.
	maxWidth int

	autoScroll  bool
	scrollSpeed float64 // pixels per second
	scrollPause float64 // seconds at each end of the cycle

	offset int // current horizontal scroll in pixels
	boxW   int // width from the last layout pass, for overflow checks
}

// NewText creates a white-on-transparent text component.
func NewText(text string) *Text {
	t := &Text{
		text:        text,
		face:        basicfont.Face7x13,
		fg:          ColorWhite,
		bg:          ColorTransparent,
		scrollSpeed: 12,
		scrollPause: 1,
	}
	baseDefaults(&t.Base)
	return t
}

// Text returns the current string.
func (t *Text) Text() string { return t.text }

// SetText replaces the string and resets any scroll position.
func (t *Text) SetText(s string) {
	if t.text == s {
		return
	}
	t.text = s
	t.offset = 0
	t.MarkDirty()
}

// SetColor sets the glyph color.
func (t *Text) SetColor(c Color) {
	t.fg = c
	t.MarkDirty()
}

// SetBackground sets the fill behind the glyphs.
func (t *Text) SetBackground(c Color) {
	t.bg = c
	t.MarkDirty()
}

// SetPadding sets the pixel inset on all four sides.
func (t *Text) SetPadding(p int) {
	if p < 0 {
		p = 0
	}
	t.padding = p
	t.MarkDirty()
}

// SetMaxWidth caps the intrinsic width. The text scrolls within the cap
// when it does not fit. Zero removes the cap.
func (t *Text) SetMaxWidth(w int) {
	t.maxWidth = w
	t.MarkDirty()
}

// SetAutoScroll enables the ping-pong scroll cycle at speed pixels per
// second, pausing pause seconds at each end. It only has an effect while
// the text overflows its box.
func (t *Text) SetAutoScroll(speed, pause float64) {
	t.autoScroll = speed > 0
	if speed > 0 {
		t.scrollSpeed = speed
	}
	if pause >= 0 {
		t.scrollPause = pause
	}
	t.MarkDirty()
}

func (t *Text) textWidth() int {
	return font.MeasureString(t.face, t.text).Ceil()
}

func (t *Text) lineHeight() int {
	return t.face.Metrics().Height.Ceil()
}

// IntrinsicSize returns the text extent plus padding, width-capped by
// SetMaxWidth.
func (t *Text) IntrinsicSize() (int, int) {
	w := t.textWidth() + 2*t.padding
	if t.maxWidth > 0 && w > t.maxWidth {
		w = t.maxWidth
	}
	return w, t.lineHeight() + 2*t.padding
}

// maxOffset is the furthest the text can scroll within the last box.
func (t *Text) maxOffset() int {
	inner := t.boxW - 2*t.padding
	over := t.textWidth() - inner
	if over < 0 {
		return 0
	}
	return over
}

// overflows reports whether the text is wider than its box.
func (t *Text) overflows() bool { return t.maxOffset() > 0 }

// IsFocusable reports true while the text overflows and can be scrolled.
func (t *Text) IsFocusable() bool { return t.overflows() }

// CanScroll implements Scrollable.
func (t *Text) CanScroll() bool { return t.overflows() }

// ScrollTo implements Scrollable, clamping to the scrollable range.
func (t *Text) ScrollTo(offset int) {
	offset = clampI(offset, 0, t.maxOffset())
	if offset == t.offset {
		return
	}
	t.offset = offset
	t.MarkDirty()
}

// ScrollBy implements Scrollable.
func (t *Text) ScrollBy(delta int) { t.ScrollTo(t.offset + delta) }

// Advance drives the auto-scroll cycle from the scene clock. The cycle is a
// pure function of t, so rendering the same instant twice lands on the same
// offset.
func (t *Text) Advance(now float64) {
	if !t.autoScroll || !t.overflows() {
		return
	}
	max := float64(t.maxOffset())
	travel := max / t.scrollSpeed
	cycle := 2*t.scrollPause + 2*travel
	if cycle <= 0 {
		return
	}
	phase := math.Mod(now, cycle)

	var pos float64
	switch {
	case phase < t.scrollPause:
		pos = 0
	case phase < t.scrollPause+travel:
		pos = (phase - t.scrollPause) * t.scrollSpeed
	case phase < 2*t.scrollPause+travel:
		pos = max
	default:
		pos = max - (phase-2*t.scrollPause-travel)*t.scrollSpeed
	}
	t.ScrollTo(int(math.Round(clampF(pos, 0, max))))
}

// Render draws the line clipped to box, honoring the scroll offset.
func (t *Text) Render(ctx *RenderContext, box Rect) *Buffer {
	t.boxW = box.Width
	sig := t.Epoch()
	return t.renderCached(ctx, box, sig, func() *Buffer {
		buf := NewBuffer(box.Width, box.Height)
		if t.bg.A > 0 {
			buf.Fill(t.bg)
		}
		t.drawLine(buf)
		return buf
	})
}

// drawString rasterizes s through face and writes it into buf with the
// glyph top-left at (x, y). Pixels falling outside buf are dropped.
func drawString(buf *Buffer, face font.Face, s string, x, y int, fg Color) {
	tw := font.MeasureString(face, s).Ceil()
	lh := face.Metrics().Height.Ceil()
	if tw <= 0 || lh <= 0 {
		return
	}
	img := image.NewRGBA(image.Rect(0, 0, tw, lh))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: fg.R, G: fg.G, B: fg.B, A: fg.A}),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	for sy := 0; sy < lh; sy++ {
		for sx := 0; sx < tw; sx++ {
			r, g, b, a := img.At(sx, sy).RGBA()
			if a == 0 {
				continue
			}
			buf.SetPixel(x+sx, y+sy, Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}
}

// drawLine rasterizes the string through the font face and copies the
// coverage into buf, shifted left by the scroll offset.
func (t *Text) drawLine(buf *Buffer) {
	tw := t.textWidth()
	lh := t.lineHeight()
	if tw <= 0 || lh <= 0 {
		return
	}
	img := image.NewRGBA(image.Rect(0, 0, tw, lh))
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: t.fg.R, G: t.fg.G, B: t.fg.B, A: t.fg.A}),
		Face: t.face,
		Dot:  fixed.P(0, t.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(t.text)

	for y := 0; y < lh; y++ {
		dy := y + t.padding
		if dy < 0 || dy >= buf.Height {
			continue
		}
		for x := 0; x < tw; x++ {
			dx := x - t.offset + t.padding
			if dx < t.padding || dx >= buf.Width-t.padding {
				continue
			}
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			buf.SetPixel(dx, dy, Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
		}
	}
}
