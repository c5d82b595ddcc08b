package matrixscene

import (
	"bytes"
	"testing"
)

// fakeBox is a solid-color test component with a render call counter for
// cache assertions.
type fakeBox struct {
	Base
	w, h      int
	color     Color
	focusable bool
	renders   int
}

func newFakeBox(w, h int, c Color) *fakeBox {
	f := &fakeBox{w: w, h: h, color: c}
	baseDefaults(&f.Base)
	return f
}

func (f *fakeBox) IntrinsicSize() (int, int) { return f.w, f.h }
func (f *fakeBox) IsFocusable() bool         { return f.focusable }

func (f *fakeBox) Render(ctx *RenderContext, box Rect) *Buffer {
	return f.renderCached(ctx, box, f.Epoch(), func() *Buffer {
		f.renders++
		buf := NewBuffer(box.Width, box.Height)
		buf.Fill(f.color)
		return buf
	})
}

func (f *fakeBox) setColor(c Color) {
	f.color = c
	f.MarkDirty()
}

func buffersEqual(a, b *Buffer) bool {
	return a.Width == b.Width && a.Height == b.Height && bytes.Equal(a.Pix, b.Pix)
}

func assertPixel(t *testing.T, buf *Buffer, x, y int, want Color) {
	t.Helper()
	if got := buf.At(x, y); got != want {
		t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
	}
}
