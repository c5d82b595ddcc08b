package matrixscene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// FilterMode selects the per-pixel transform a ColorFilter applies.
type FilterMode uint8

const (
	// FilterTint blends every pixel toward the filter color in HCL space
	// by the filter strength.
	FilterTint FilterMode = iota
	// FilterGrayscale desaturates toward luminance by the filter strength.
	FilterGrayscale
	// FilterHueShift rotates every pixel's hue by the filter strength
	// expressed in degrees.
	FilterHueShift
)

// ColorFilter wraps another component and recolors its output pixel by
// pixel. The wrapped component stays fully functional; mount, focus and
// clock advancement pass through.
type ColorFilter struct {
	Base

	child    Component
	mode     FilterMode
	tint     colorful.Color
	strength float64
}

// NewColorFilter wraps child with an identity filter. Panics on a nil
// child.
func NewColorFilter(child Component) *ColorFilter {
	if child == nil {
		panic("matrixscene: cannot wrap nil child in color filter")
	}
	f := &ColorFilter{child: child}
	baseDefaults(&f.Base)
	return f
}

// SetTint blends output toward c with the given strength in [0, 1].
func (f *ColorFilter) SetTint(c Color, strength float64) {
	f.mode = FilterTint
	f.tint = colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	f.strength = clampF(strength, 0, 1)
	f.MarkDirty()
}

// SetGrayscale desaturates output by strength in [0, 1].
func (f *ColorFilter) SetGrayscale(strength float64) {
	f.mode = FilterGrayscale
	f.strength = clampF(strength, 0, 1)
	f.MarkDirty()
}

// SetHueShift rotates output hues by degrees.
func (f *ColorFilter) SetHueShift(degrees float64) {
	f.mode = FilterHueShift
	f.strength = degrees
	f.MarkDirty()
}

// ChildComponents implements Container so lifecycle and clock dispatch
// reach the wrapped component.
func (f *ColorFilter) ChildComponents() []Component { return []Component{f.child} }

// IntrinsicSize forwards to the wrapped component.
func (f *ColorFilter) IntrinsicSize() (int, int) { return f.child.IntrinsicSize() }

// IsFocusable forwards to the wrapped component.
func (f *ColorFilter) IsFocusable() bool { return f.child.IsFocusable() }

// apply transforms one pixel.
func (f *ColorFilter) apply(c Color) Color {
	if f.strength == 0 {
		return c
	}
	in := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	var out colorful.Color
	switch f.mode {
	case FilterTint:
		out = in.BlendHcl(f.tint, f.strength).Clamped()
	case FilterGrayscale:
		_, _, l := in.Hcl()
		gray := colorful.Hcl(0, 0, l).Clamped()
		out = in.BlendLuv(gray, f.strength).Clamped()
	case FilterHueShift:
		h, cc, l := in.Hcl()
		out = colorful.Hcl(h+f.strength, cc, l).Clamped()
	default:
		out = in
	}
	return Color{
		R: uint8(out.R*255 + 0.5),
		G: uint8(out.G*255 + 0.5),
		B: uint8(out.B*255 + 0.5),
		A: c.A,
	}
}

// contentSig folds the filter's own epoch with the wrapped subtree's
// signature, so mutations anywhere below the filter invalidate the
// recolored output and any composite holding it.
func (f *ColorFilter) contentSig() uint64 {
	return f.Epoch()<<32 ^ subtreeSig(f.child)
}

// Render renders the wrapped component and recolors its pixels.
func (f *ColorFilter) Render(ctx *RenderContext, box Rect) *Buffer {
	return f.renderCached(ctx, box, f.contentSig(), func() *Buffer {
		src := f.child.Render(ctx, box)
		if src == nil {
			return NewBuffer(box.Width, box.Height)
		}
		out := src.Clone()
		for i := 0; i < len(out.Pix); i += 4 {
			if out.Pix[i+3] == 0 {
				continue
			}
			c := f.apply(Color{out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3]})
			out.Pix[i], out.Pix[i+1], out.Pix[i+2] = c.R, c.G, c.B
		}
		return out
	})
}
