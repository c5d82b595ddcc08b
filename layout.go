package matrixscene

import (
	"hash/maphash"
)

// layoutChild is one insertion-ordered entry in a Layout.
type layoutChild struct {
	id   string
	comp Component
}

// Layout is a component that positions its children automatically from a
// policy and its own box. A single flat struct with a kind tag covers all
// variants so the arrange switch stays exhaustive. A Layout is itself a
// Component, so layouts nest to arbitrary depth; a nested layout's box is
// the slot its parent computed.
//
// Placement never fails on overflow: children that do not fit are positioned
// anyway and clipped when composited.
type Layout struct {
	Base
	kind   LayoutKind
	width  int
	height int

	// Policy. Mutating these through the setters bumps the epoch and marks
	// positions for recomputation.
	spacing int
	padding int
	align   Alignment
	anchor  Anchor
	columns int

	children []layoutChild
	index    map[string]int
	manual   map[string]Point // Absolute only

	positions      map[string]Point
	positionsDirty bool

	ring focusRing
}

func newLayout(kind LayoutKind, width, height int) *Layout {
	l := &Layout{
		kind:           kind,
		width:          width,
		height:         height,
		index:          make(map[string]int),
		positions:      make(map[string]Point),
		positionsDirty: true,
	}
	baseDefaults(&l.Base)
	return l
}

// NewVStack creates a vertical stack: children are placed top to bottom with
// spacing pixels between them, aligned on the horizontal axis.
func NewVStack(width, height, spacing int, align Alignment, padding int) *Layout {
	l := newLayout(LayoutVStack, width, height)
	l.spacing = spacing
	l.align = align
	l.padding = padding
	return l
}

// NewHStack creates a horizontal stack: children are placed left to right
// with spacing pixels between them, aligned on the vertical axis.
func NewHStack(width, height, spacing int, align Alignment, padding int) *Layout {
	l := newLayout(LayoutHStack, width, height)
	l.spacing = spacing
	l.align = align
	l.padding = padding
	return l
}

// NewGrid creates a fixed-column grid. Column width is derived from the box;
// each row is as tall as its tallest child. Children fill rows in insertion
// order, row-major.
func NewGrid(width, height, columns, spacing, padding int) *Layout {
	if columns < 1 {
		columns = 1
	}
	l := newLayout(LayoutGrid, width, height)
	l.columns = columns
	l.spacing = spacing
	l.padding = padding
	return l
}

// NewZStack creates a layered stack: every child shares one anchor-derived
// position and paint order follows insertion order, later children on top.
func NewZStack(width, height int, anchor Anchor, padding int) *Layout {
	l := newLayout(LayoutZStack, width, height)
	l.anchor = anchor
	l.padding = padding
	return l
}

// NewAbsolute creates a layout with caller-supplied positions. Children
// default to (0, 0) until placed via Place, Center, or Align.
func NewAbsolute(width, height int) *Layout {
	l := newLayout(LayoutAbsolute, width, height)
	l.manual = make(map[string]Point)
	return l
}

// Kind returns the layout variant.
func (l *Layout) Kind() LayoutKind {
	return l.kind
}

// Add appends a child under id. Child ids are unique within a layout;
// adding a duplicate returns a DuplicateChildError. If the layout is already
// mounted the child subtree is mounted immediately.
func (l *Layout) Add(id string, c Component) error {
	if c == nil {
		panic("matrixscene: cannot add nil child")
	}
	if _, ok := l.index[id]; ok {
		return DuplicateChildError{ID: id}
	}
	l.index[id] = len(l.children)
	l.children = append(l.children, layoutChild{id: id, comp: c})
	l.invalidate()
	if l.mounted {
		mountComponent(c, nil)
	}
	l.rebuildRing()
	return nil
}

// Remove detaches the child under id, firing its unmount hooks. Returns an
// UnknownChildError when id is absent.
func (l *Layout) Remove(id string) error {
	i, ok := l.index[id]
	if !ok {
		return UnknownChildError{ID: id}
	}
	c := l.children[i].comp
	l.children = append(l.children[:i], l.children[i+1:]...)
	delete(l.index, id)
	for j := i; j < len(l.children); j++ {
		l.index[l.children[j].id] = j
	}
	if l.manual != nil {
		delete(l.manual, id)
	}
	if l.mounted {
		unmountComponent(c, nil)
	}
	l.invalidate()
	l.rebuildRing()
	return nil
}

// Child returns the component under id, or nil.
func (l *Layout) Child(id string) Component {
	if i, ok := l.index[id]; ok {
		return l.children[i].comp
	}
	return nil
}

// ChildComponents returns the children in insertion order.
func (l *Layout) ChildComponents() []Component {
	out := make([]Component, len(l.children))
	for i, ch := range l.children {
		out[i] = ch.comp
	}
	return out
}

// Positions returns a copy of the current position map, arranging first if
// children or policy changed since the last call.
func (l *Layout) Positions() map[string]Point {
	l.ensurePositions()
	out := make(map[string]Point, len(l.positions))
	for id, p := range l.positions {
		out[id] = p
	}
	return out
}

// SetSpacing updates the gap between stack or grid cells.
func (l *Layout) SetSpacing(spacing int) {
	if spacing != l.spacing {
		l.spacing = spacing
		l.invalidate()
	}
}

// SetPadding updates the edge padding.
func (l *Layout) SetPadding(padding int) {
	if padding != l.padding {
		l.padding = padding
		l.invalidate()
	}
}

// SetAlignment updates the secondary-axis alignment of a stack.
func (l *Layout) SetAlignment(a Alignment) {
	if a != l.align {
		l.align = a
		l.invalidate()
	}
}

// invalidate marks positions stale and bumps the epoch.
func (l *Layout) invalidate() {
	l.positionsDirty = true
	l.MarkDirty()
}

// --- Absolute positioning ops ---

// Place records an explicit position for a child of an Absolute layout.
func (l *Layout) Place(id string, x, y int) error {
	if _, ok := l.index[id]; !ok {
		return UnknownChildError{ID: id}
	}
	l.manual[id] = Point{X: x, Y: y}
	l.invalidate()
	return nil
}

// Center positions a child of an Absolute layout at the middle of the box.
func (l *Layout) Center(id string) error {
	c := l.Child(id)
	if c == nil {
		return UnknownChildError{ID: id}
	}
	w, h := resolveSize(c, l.box())
	l.manual[id] = Point{X: (l.width - w) / 2, Y: (l.height - h) / 2}
	l.invalidate()
	return nil
}

// Align positions a child of an Absolute layout at a corner, inset by
// padding pixels.
func (l *Layout) Align(id string, corner Anchor, padding int) error {
	c := l.Child(id)
	if c == nil {
		return UnknownChildError{ID: id}
	}
	w, h := resolveSize(c, l.box())
	l.manual[id] = anchorPoint(corner, l.width, l.height, w, h, padding)
	l.invalidate()
	return nil
}

// anchorPoint computes the placement of a w*h child inside a cw*ch box.
func anchorPoint(a Anchor, cw, ch, w, h, padding int) Point {
	switch a {
	case AnchorTopLeft:
		return Point{X: padding, Y: padding}
	case AnchorTopRight:
		return Point{X: cw - w - padding, Y: padding}
	case AnchorBottomLeft:
		return Point{X: padding, Y: ch - h - padding}
	case AnchorBottomRight:
		return Point{X: cw - w - padding, Y: ch - h - padding}
	default: // AnchorCenter
		return Point{X: (cw - w) / 2, Y: (ch - h) / 2}
	}
}

// --- Arrangement ---

func (l *Layout) box() Rect {
	return Rect{Width: l.width, Height: l.height}
}

// ensurePositions recomputes the position map when children or policy
// changed. Arrangement is deterministic and never fails: overflowing
// children are placed past the edge and clipped at composite time.
func (l *Layout) ensurePositions() {
	if !l.positionsDirty {
		return
	}
	clear(l.positions)
	switch l.kind {
	case LayoutVStack:
		l.arrangeVStack()
	case LayoutHStack:
		l.arrangeHStack()
	case LayoutGrid:
		l.arrangeGrid()
	case LayoutZStack:
		l.arrangeZStack()
	case LayoutAbsolute:
		l.arrangeAbsolute()
	}
	l.positionsDirty = false
}

func (l *Layout) arrangeVStack() {
	y := l.padding
	for _, ch := range l.children {
		w, h := resolveSize(ch.comp, l.box())
		var x int
		switch l.align {
		case AlignCenter:
			x = (l.width - w) / 2
		case AlignEnd:
			x = l.width - w - l.padding
		default:
			x = l.padding
		}
		l.positions[ch.id] = Point{X: x, Y: y}
		y += h + l.spacing
	}
}

func (l *Layout) arrangeHStack() {
	x := l.padding
	for _, ch := range l.children {
		w, h := resolveSize(ch.comp, l.box())
		var y int
		switch l.align {
		case AlignCenter:
			y = (l.height - h) / 2
		case AlignEnd:
			y = l.height - h - l.padding
		default:
			y = l.padding
		}
		l.positions[ch.id] = Point{X: x, Y: y}
		x += w + l.spacing
	}
}

func (l *Layout) arrangeGrid() {
	if len(l.children) == 0 {
		return
	}
	usable := l.width - 2*l.padding - (l.columns-1)*l.spacing
	cellW := usable / l.columns
	if cellW < 0 {
		cellW = 0
	}

	y := l.padding
	for row := 0; row*l.columns < len(l.children); row++ {
		start := row * l.columns
		end := min(start+l.columns, len(l.children))

		// Row height is the tallest child in this row.
		rowH := 0
		for _, ch := range l.children[start:end] {
			_, h := resolveSize(ch.comp, l.box())
			if h > rowH {
				rowH = h
			}
		}

		for col, ch := range l.children[start:end] {
			w, h := resolveSize(ch.comp, l.box())
			x := l.padding + col*(cellW+l.spacing) + (cellW-w)/2
			l.positions[ch.id] = Point{X: x, Y: y + (rowH-h)/2}
		}
		y += rowH + l.spacing
	}
}

func (l *Layout) arrangeZStack() {
	for _, ch := range l.children {
		w, h := resolveSize(ch.comp, l.box())
		l.positions[ch.id] = anchorPoint(l.anchor, l.width, l.height, w, h, l.padding)
	}
}

func (l *Layout) arrangeAbsolute() {
	for _, ch := range l.children {
		l.positions[ch.id] = l.manual[ch.id] // zero Point when unplaced
	}
}

// --- Component implementation ---

// IntrinsicSize returns the layout's declared box.
func (l *Layout) IntrinsicSize() (int, int) {
	return l.width, l.height
}

// IsFocusable reports whether any child is focusable; focusing a layout
// forwards to its internal ring.
func (l *Layout) IsFocusable() bool {
	for _, ch := range l.children {
		if ch.comp.IsFocusable() {
			return true
		}
	}
	return false
}

var layoutHashSeed = maphash.MakeSeed()

// contentSig folds the layout's own epoch with each child's signature,
// opacity, and visibility, so the composite cache misses whenever anything
// in the subtree changed. Nested containers contribute their own content
// signature rather than their flat epoch, which does not move when one of
// their children mutates.
func (l *Layout) contentSig() uint64 {
	var h maphash.Hash
	h.SetSeed(layoutHashSeed)
	writeU64(&h, l.epoch)
	for _, ch := range l.children {
		h.WriteString(ch.id)
		writeU64(&h, subtreeSig(ch.comp))
		if oc, ok := ch.comp.(interface{ Opacity() float64 }); ok {
			writeU64(&h, uint64(oc.Opacity()*1e6))
		}
		if vc, ok := ch.comp.(interface{ Visible() bool }); ok {
			if vc.Visible() {
				h.WriteByte(1)
			} else {
				h.WriteByte(0)
			}
		}
	}
	return h.Sum64()
}

// subtreeSig is a child's contribution to a composite cache signature.
// Containers report their own content signature so that a mutation at any
// depth reaches every enclosing composite; flat components report their
// epoch.
func subtreeSig(c Component) uint64 {
	if cs, ok := c.(interface{ contentSig() uint64 }); ok {
		return cs.contentSig()
	}
	return c.Epoch()
}

func writeU64(h *maphash.Hash, v uint64) {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}

// Render composites all children at their arranged positions, bottom to top
// in insertion order with alpha blending by child opacity. The result is
// memoized until a child or the policy changes.
func (l *Layout) Render(ctx *RenderContext, box Rect) *Buffer {
	l.ensurePositions()
	buf := l.renderCached(ctx, l.box(), l.contentSig(), func() *Buffer {
		canvas := NewBuffer(l.width, l.height)
		for _, ch := range l.children {
			if vc, ok := ch.comp.(interface{ Visible() bool }); ok && !vc.Visible() {
				continue
			}
			pos := l.positions[ch.id]
			w, h := resolveSize(ch.comp, l.box())
			child := ch.comp.Render(ctx, Rect{Width: w, Height: h})
			opacity := 1.0
			if oc, ok := ch.comp.(interface{ Opacity() float64 }); ok {
				opacity = oc.Opacity()
			}
			canvas.Blit(child, pos.X, pos.Y, opacity)
		}
		return canvas
	})
	if ctx != nil && ctx.Debug && l.focused {
		return applyFocusOutline(buf)
	}
	return buf
}

// --- Focus forwarding ---

// rebuildRing refreshes the layout's internal focus ring from the current
// child set, in insertion order.
func (l *Layout) rebuildRing() {
	ids := make([]string, 0, len(l.children))
	for _, ch := range l.children {
		if ch.comp.IsFocusable() {
			ids = append(ids, ch.id)
		}
	}
	l.ring.rebuild(ids, l.focusLookup, nil)
}

func (l *Layout) focusLookup(id string) Component {
	return l.Child(id)
}

// FocusNext moves focus to the next focusable child, wrapping around.
// No-op when no child is focusable.
func (l *Layout) FocusNext() {
	l.ring.next(l.focusLookup, nil)
}

// FocusPrevious moves focus to the previous focusable child, wrapping
// around.
func (l *Layout) FocusPrevious() {
	l.ring.previous(l.focusLookup, nil)
}

// SetFocus focuses the child under id. Ids outside the ring return an
// UnknownFocusTargetError and leave focus unchanged.
func (l *Layout) SetFocus(id string) error {
	return l.ring.set(id, l.focusLookup, nil)
}

// FocusedChild returns the id of the focused child, or "".
func (l *Layout) FocusedChild() string {
	return l.ring.current
}
