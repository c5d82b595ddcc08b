package matrixscene

import (
	"errors"
	"testing"
)

func TestSetProgressRejectsOutOfRange(t *testing.T) {
	bar := NewProgressBar(Horizontal)
	if err := bar.SetProgress(0.5); err != nil {
		t.Fatal(err)
	}
	for _, v := range []float64{-0.01, 1.01} {
		err := bar.SetProgress(v)
		var re RangeError
		if !errors.As(err, &re) {
			t.Errorf("SetProgress(%v) = %v, want RangeError", v, err)
		}
	}
	if bar.Progress() != 0.5 {
		t.Errorf("progress = %v after rejected sets, want 0.5", bar.Progress())
	}
}

func TestSetPropertyClampsProgress(t *testing.T) {
	bar := NewProgressBar(Horizontal)
	if err := bar.SetProperty("progress", 1.4); err != nil {
		t.Fatal(err)
	}
	if bar.Progress() != 1 {
		t.Errorf("progress = %v, want 1 (clamped)", bar.Progress())
	}
	if err := bar.SetProperty("progress", -0.2); err != nil {
		t.Fatal(err)
	}
	if bar.Progress() != 0 {
		t.Errorf("progress = %v, want 0 (clamped)", bar.Progress())
	}
}

func TestSetPropertyUnknownName(t *testing.T) {
	bar := NewProgressBar(Horizontal)
	if err := bar.SetProperty("volume", 0.5); err == nil {
		t.Error("SetProperty(volume) = nil, want error")
	}
}

func TestHorizontalFillCoversProgressFraction(t *testing.T) {
	bar := NewProgressBar(Horizontal)
	bar.SetColors(RGB(0, 255, 0), RGB(10, 10, 10))
	if err := bar.SetProgress(0.5); err != nil {
		t.Fatal(err)
	}

	buf := bar.Render(&RenderContext{}, Rect{Width: 10, Height: 4})
	assertPixel(t, buf, 0, 0, RGB(0, 255, 0))
	assertPixel(t, buf, 4, 3, RGB(0, 255, 0))
	assertPixel(t, buf, 5, 0, RGB(10, 10, 10))
	assertPixel(t, buf, 9, 3, RGB(10, 10, 10))
}

func TestVerticalFillGrowsUpward(t *testing.T) {
	bar := NewProgressBar(Vertical)
	bar.SetColors(RGB(0, 255, 0), RGB(10, 10, 10))
	if err := bar.SetProgress(0.25); err != nil {
		t.Fatal(err)
	}

	buf := bar.Render(&RenderContext{}, Rect{Width: 4, Height: 8})
	assertPixel(t, buf, 0, 7, RGB(0, 255, 0))
	assertPixel(t, buf, 0, 6, RGB(0, 255, 0))
	assertPixel(t, buf, 0, 5, RGB(10, 10, 10))
	assertPixel(t, buf, 0, 0, RGB(10, 10, 10))
}

func TestGradientVariesAlongBar(t *testing.T) {
	bar := NewProgressBar(Horizontal)
	bar.SetGradient(RGB(0, 0, 255), RGB(255, 0, 0))
	if err := bar.SetProgress(1); err != nil {
		t.Fatal(err)
	}

	buf := bar.Render(&RenderContext{}, Rect{Width: 20, Height: 2})
	if buf.At(0, 0) == buf.At(19, 0) {
		t.Error("gradient fill is uniform across the bar")
	}
}

func TestBorderFramesBar(t *testing.T) {
	bar := NewProgressBar(Horizontal)
	bar.SetBorder(true)
	buf := bar.Render(&RenderContext{}, Rect{Width: 8, Height: 4})
	assertPixel(t, buf, 0, 0, RGB(90, 90, 90))
	assertPixel(t, buf, 7, 3, RGB(90, 90, 90))
}
