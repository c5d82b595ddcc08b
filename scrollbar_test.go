package matrixscene

import "testing"

func TestThumbSpanProportions(t *testing.T) {
	sb := NewScrollbar(Vertical)
	sb.SetRange(100, 20)
	sb.SetOffset(40)

	start, length := sb.thumbSpan(20)
	if length != 4 { // 20 * 20/100
		t.Errorf("thumb length = %d, want 4", length)
	}
	if start != 8 { // (20-4) * 40/80
		t.Errorf("thumb start = %d, want 8", start)
	}
}

func TestThumbFillsTrackWhenContentFits(t *testing.T) {
	sb := NewScrollbar(Vertical)
	sb.SetRange(10, 20)
	start, length := sb.thumbSpan(20)
	if start != 0 || length != 20 {
		t.Errorf("thumb = (%d, %d), want full track (0, 20)", start, length)
	}
}

func TestSetOffsetClamps(t *testing.T) {
	sb := NewScrollbar(Vertical)
	sb.SetRange(100, 20)
	sb.SetOffset(500)
	if sb.offset != 80 {
		t.Errorf("offset = %d, want 80", sb.offset)
	}
	sb.SetOffset(-5)
	if sb.offset != 0 {
		t.Errorf("offset = %d, want 0", sb.offset)
	}
}

func TestThumbNeverThinnerThanOnePixel(t *testing.T) {
	sb := NewScrollbar(Vertical)
	sb.SetRange(10000, 10)
	_, length := sb.thumbSpan(16)
	if length < 1 {
		t.Errorf("thumb length = %d, want >= 1", length)
	}
}

func TestScrollbarRenderShowsThumb(t *testing.T) {
	sb := NewScrollbar(Vertical)
	sb.SetRange(40, 10)
	sb.SetOffset(0)
	buf := sb.Render(&RenderContext{}, Rect{Width: 2, Height: 20})
	assertPixel(t, buf, 0, 0, RGB(140, 140, 140))
	assertPixel(t, buf, 0, 19, RGB(20, 20, 20))
}
