package matrixscene

// Color is an 8-bit RGBA color. Alpha 0 is fully transparent, 255 fully
// opaque. Not premultiplied; compositing happens at blit time.
type Color struct {
	R, G, B, A uint8
}

// RGB returns a fully opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA returns a color with an explicit alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{r, g, b, a}
}

// Common colors used by component defaults.
var (
	ColorWhite       = RGB(255, 255, 255)
	ColorBlack       = RGB(0, 0, 0)
	ColorTransparent = Color{}
)

// Point is an integer pixel coordinate. The origin is the top-left corner,
// with Y increasing downward.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Alignment positions children along a stack's secondary axis.
// For a VStack it selects horizontal placement, for an HStack vertical.
type Alignment uint8

const (
	AlignStart  Alignment = iota // left edge (VStack) or top edge (HStack)
	AlignCenter                  // centered on the secondary axis
	AlignEnd                     // right edge (VStack) or bottom edge (HStack)
)

// Anchor positions children of a ZStack or Absolute layout relative to the
// container box.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Direction names the screen edge a slide animation enters from or exits to.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirTop
	DirBottom
)

// Orientation selects the main axis of a ProgressBar or Scrollbar.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// LayoutKind distinguishes arrangement behavior for a Layout. A single flat
// struct with a kind tag is used for all layout variants to keep the arrange
// switch exhaustive.
type LayoutKind uint8

const (
	LayoutVStack LayoutKind = iota
	LayoutHStack
	LayoutGrid
	LayoutZStack
	LayoutAbsolute
)

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
