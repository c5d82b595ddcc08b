package matrixscene

// Scrollbar is a thin indicator for the scroll state of some content: a
// track with a proportionally sized thumb. It holds no reference to the
// scrolled component; the owner feeds it the content extent and offset.
type Scrollbar struct {
	Base

	orientation Orientation
	content     int // total content extent in pixels
	viewport    int // visible extent in pixels
	offset      int // current scroll offset

	track Color
	thumb Color
}

// NewScrollbar creates a scrollbar with a gray thumb on a dark track.
func NewScrollbar(orientation Orientation) *Scrollbar {
	s := &Scrollbar{
		orientation: orientation,
		track:       RGB(20, 20, 20),
		thumb:       RGB(140, 140, 140),
	}
	baseDefaults(&s.Base)
	return s
}

// SetRange sets the content and viewport extents the thumb is derived
// from. Non-positive extents collapse the thumb to the full track.
func (s *Scrollbar) SetRange(content, viewport int) {
	if content == s.content && viewport == s.viewport {
		return
	}
	s.content = content
	s.viewport = viewport
	s.MarkDirty()
}

// SetOffset sets the current scroll offset, clamped to the content range.
func (s *Scrollbar) SetOffset(offset int) {
	max := s.content - s.viewport
	if max < 0 {
		max = 0
	}
	offset = clampI(offset, 0, max)
	if offset == s.offset {
		return
	}
	s.offset = offset
	s.MarkDirty()
}

// SetColors sets the track and thumb colors.
func (s *Scrollbar) SetColors(track, thumb Color) {
	s.track = track
	s.thumb = thumb
	s.MarkDirty()
}

// IntrinsicSize is 2 pixels across and fills the box along the scroll
// axis.
func (s *Scrollbar) IntrinsicSize() (int, int) {
	if s.orientation == Horizontal {
		return 0, 2
	}
	return 2, 0
}

// thumbSpan returns the thumb's start and length along a track of the
// given extent.
func (s *Scrollbar) thumbSpan(extent int) (start, length int) {
	if s.content <= 0 || s.viewport <= 0 || s.content <= s.viewport {
		return 0, extent
	}
	length = extent * s.viewport / s.content
	if length < 1 {
		length = 1
	}
	maxOffset := s.content - s.viewport
	start = (extent - length) * s.offset / maxOffset
	return start, length
}

// Render draws the track with the thumb overlaid.
func (s *Scrollbar) Render(ctx *RenderContext, box Rect) *Buffer {
	return s.renderCached(ctx, box, s.Epoch(), func() *Buffer {
		buf := NewBuffer(box.Width, box.Height)
		buf.Fill(s.track)
		if s.orientation == Horizontal {
			start, length := s.thumbSpan(box.Width)
			buf.FillRect(Rect{X: start, Y: 0, Width: length, Height: box.Height}, s.thumb)
		} else {
			start, length := s.thumbSpan(box.Height)
			buf.FillRect(Rect{X: 0, Y: start, Width: box.Width, Height: length}, s.thumb)
		}
		return buf
	})
}
