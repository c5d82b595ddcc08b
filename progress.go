package matrixscene

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ProgressBar renders a filled fraction of a horizontal or vertical bar.
// Vertical bars fill bottom-up. The fill is a solid color, or a per-pixel
// gradient blended in HCL space when a gradient is set.
type ProgressBar struct {
	Base

	orientation Orientation
	progress    float64

	fill       Color
	track      Color
	borderCol  Color
	showBorder bool

	gradFrom, gradTo colorful.Color
	hasGradient      bool
}

// NewProgressBar creates an empty horizontal bar with a green fill on a
// dark track.
func NewProgressBar(orientation Orientation) *ProgressBar {
	p := &ProgressBar{
		orientation: orientation,
		fill:        RGB(0, 200, 80),
		track:       RGB(30, 30, 30),
		borderCol:   RGB(90, 90, 90),
	}
	baseDefaults(&p.Base)
	return p
}

// Progress returns the current fraction in [0, 1].
func (p *ProgressBar) Progress() float64 { return p.progress }

// SetProgress sets the fraction. A value outside [0, 1] is rejected with a
// RangeError and leaves the bar unchanged; use the animated "progress"
// property for clamping behavior.
func (p *ProgressBar) SetProgress(v float64) error {
	if v < 0 || v > 1 {
		return RangeError{Field: "progress", Value: v, Min: 0, Max: 1}
	}
	if v == p.progress {
		return nil
	}
	p.progress = v
	p.MarkDirty()
	return nil
}

// SetColors sets the fill and track colors and clears any gradient.
func (p *ProgressBar) SetColors(fill, track Color) {
	p.fill = fill
	p.track = track
	p.hasGradient = false
	p.MarkDirty()
}

// SetGradient fills the bar with an HCL blend from c0 at the empty end to
// c1 at the full end.
func (p *ProgressBar) SetGradient(c0, c1 Color) {
	p.gradFrom = colorful.Color{R: float64(c0.R) / 255, G: float64(c0.G) / 255, B: float64(c0.B) / 255}
	p.gradTo = colorful.Color{R: float64(c1.R) / 255, G: float64(c1.G) / 255, B: float64(c1.B) / 255}
	p.hasGradient = true
	p.MarkDirty()
}

// SetBorder toggles a one-pixel frame around the bar.
func (p *ProgressBar) SetBorder(on bool) {
	p.showBorder = on
	p.MarkDirty()
}

// SetProperty implements PropertyTarget for the Animate animation. Unlike
// SetProgress it clamps out-of-range values, since an easing overshoot must
// not fail a render pass.
func (p *ProgressBar) SetProperty(name string, value float64) error {
	if name != "progress" {
		return fmt.Errorf("progress bar has no property %q", name)
	}
	v := clampF(value, 0, 1)
	if v != p.progress {
		p.progress = v
		p.MarkDirty()
	}
	return nil
}

// IntrinsicSize fills the available box.
func (p *ProgressBar) IntrinsicSize() (int, int) { return 0, 0 }

func (p *ProgressBar) fillColorAt(frac float64) Color {
	if !p.hasGradient {
		return p.fill
	}
	c := p.gradFrom.BlendHcl(p.gradTo, clampF(frac, 0, 1)).Clamped()
	return RGB(uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5))
}

// Render draws the track, the filled span, and the optional border.
func (p *ProgressBar) Render(ctx *RenderContext, box Rect) *Buffer {
	return p.renderCached(ctx, box, p.Epoch(), func() *Buffer {
		buf := NewBuffer(box.Width, box.Height)
		buf.Fill(p.track)

		inset := 0
		if p.showBorder {
			inset = 1
		}
		innerW := box.Width - 2*inset
		innerH := box.Height - 2*inset

		if innerW > 0 && innerH > 0 {
			if p.orientation == Horizontal {
				filled := int(float64(innerW)*p.progress + 0.5)
				for x := 0; x < filled; x++ {
					c := p.fillColorAt(float64(x) / float64(innerW))
					for y := 0; y < innerH; y++ {
						buf.SetPixel(inset+x, inset+y, c)
					}
				}
			} else {
				filled := int(float64(innerH)*p.progress + 0.5)
				for y := 0; y < filled; y++ {
					c := p.fillColorAt(float64(y) / float64(innerH))
					row := box.Height - 1 - inset - y
					for x := 0; x < innerW; x++ {
						buf.SetPixel(inset+x, row, c)
					}
				}
			}
		}

		if p.showBorder {
			buf.DrawFrame(p.borderCol)
		}
		return buf
	})
}
