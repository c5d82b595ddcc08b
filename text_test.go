package matrixscene

import "testing"

func TestTextIntrinsicSize(t *testing.T) {
	txt := NewText("AB")
	w, h := txt.IntrinsicSize()
	if w != 14 { // 7px advance per glyph
		t.Errorf("width = %d, want 14", w)
	}
	if h != 13 {
		t.Errorf("height = %d, want 13", h)
	}

	txt.SetPadding(2)
	w, h = txt.IntrinsicSize()
	if w != 18 || h != 17 {
		t.Errorf("padded size = %dx%d, want 18x17", w, h)
	}
}

func TestTextMaxWidthCapsIntrinsicSize(t *testing.T) {
	txt := NewText("A VERY LONG HEADLINE")
	txt.SetMaxWidth(40)
	if w, _ := txt.IntrinsicSize(); w != 40 {
		t.Errorf("capped width = %d, want 40", w)
	}
}

func TestTextRenderProducesGlyphPixels(t *testing.T) {
	txt := NewText("X")
	buf := txt.Render(&RenderContext{}, Rect{Width: 14, Height: 13})
	lit := 0
	for i := 3; i < len(buf.Pix); i += 4 {
		if buf.Pix[i] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("rendered glyph produced no pixels")
	}
}

func TestTextOverflowEnablesScrolling(t *testing.T) {
	txt := NewText("SCROLLING HEADLINE")
	txt.SetMaxWidth(40)
	txt.Render(&RenderContext{}, Rect{Width: 40, Height: 13})

	if !txt.CanScroll() {
		t.Fatal("overflowing text not scrollable")
	}
	if !txt.IsFocusable() {
		t.Error("overflowing text not focusable")
	}

	txt.ScrollTo(10000)
	max := txt.textWidth() - 40
	if got := txt.offset; got != max {
		t.Errorf("clamped offset = %d, want %d", got, max)
	}
	txt.ScrollBy(-10000)
	if txt.offset != 0 {
		t.Errorf("offset = %d after scroll to start, want 0", txt.offset)
	}
}

func TestShortTextIsNotScrollable(t *testing.T) {
	txt := NewText("HI")
	txt.Render(&RenderContext{}, Rect{Width: 40, Height: 13})
	if txt.CanScroll() || txt.IsFocusable() {
		t.Error("fitting text should be neither scrollable nor focusable")
	}
}

func TestAutoScrollCycleIsDeterministic(t *testing.T) {
	txt := NewText("SCROLLING HEADLINE CYCLES")
	txt.SetMaxWidth(40)
	txt.SetAutoScroll(10, 1)
	txt.Render(&RenderContext{}, Rect{Width: 40, Height: 13})

	// During the leading pause the offset stays at the start.
	txt.Advance(0.5)
	if txt.offset != 0 {
		t.Errorf("offset during pause = %d, want 0", txt.offset)
	}

	// Scrolling phase: pause(1s) + 0.7s at 10 px/s.
	txt.Advance(1.7)
	first := txt.offset
	if first != 7 {
		t.Errorf("offset at t=1.7 = %d, want 7", first)
	}

	// Same clock value lands on the same offset.
	txt.Advance(3)
	txt.Advance(1.7)
	if txt.offset != first {
		t.Errorf("offset at repeated t=1.7 = %d, want %d", txt.offset, first)
	}
}

func TestSetTextResetsScroll(t *testing.T) {
	txt := NewText("SCROLLING HEADLINE")
	txt.SetMaxWidth(40)
	txt.Render(&RenderContext{}, Rect{Width: 40, Height: 13})
	txt.ScrollTo(5)
	before := txt.Epoch()
	txt.SetText("NEW")
	if txt.offset != 0 {
		t.Errorf("offset = %d after SetText, want 0", txt.offset)
	}
	if txt.Epoch() == before {
		t.Error("epoch unchanged after SetText")
	}
}
