package matrixscene

import (
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Table renders rows of string cells under an optional header, with column
// widths derived from the widest cell in each column. Content larger than
// the box scrolls, manually through the Scrollable capability (vertical) or
// automatically with a ping-pong cycle on both axes.
type Table struct {
	Base

	headers []string
	rows    [][]string

	face      font.Face
	fg        Color
	headerFg  Color
	bg        Color
	borderCol Color
	borders   bool
	cellPad   int

	offsetX, offsetY int
	autoScroll       bool
	scrollSpeed      float64
	scrollPause      float64

	boxW, boxH int
}

// NewTable creates an empty bordered table. A nil header slice derives
// headers from the row maps passed to SetRecords, sorted alphabetically.
func NewTable(headers []string) *Table {
	t := &Table{
		headers:     headers,
		face:        basicfont.Face7x13,
		fg:          ColorWhite,
		headerFg:    RGB(255, 200, 0),
		bg:          ColorTransparent,
		borderCol:   RGB(70, 70, 70),
		borders:     true,
		cellPad:     1,
		scrollSpeed: 8,
		scrollPause: 1,
	}
	baseDefaults(&t.Base)
	return t
}

// SetRows replaces the table body with pre-ordered string rows.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	t.offsetX, t.offsetY = 0, 0
	t.MarkDirty()
}

// SetRecords replaces the body with keyed records. When the table was
// created without headers, the headers become the union of record keys in
// alphabetical order.
func (t *Table) SetRecords(records []map[string]string) {
	if t.headers == nil {
		seen := map[string]bool{}
		for _, rec := range records {
			for k := range rec {
				if !seen[k] {
					seen[k] = true
					t.headers = append(t.headers, k)
				}
			}
		}
		sort.Strings(t.headers)
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(t.headers))
		for j, h := range t.headers {
			row[j] = rec[h]
		}
		rows[i] = row
	}
	t.SetRows(rows)
}

// SetColors sets the body text, header text, and background colors.
func (t *Table) SetColors(fg, headerFg, bg Color) {
	t.fg = fg
	t.headerFg = headerFg
	t.bg = bg
	t.MarkDirty()
}

// SetBorders toggles the grid lines between cells.
func (t *Table) SetBorders(on bool) {
	t.borders = on
	t.MarkDirty()
}

// SetAutoScroll enables the ping-pong scroll cycle over any overflowing
// axis.
func (t *Table) SetAutoScroll(speed, pause float64) {
	t.autoScroll = speed > 0
	if speed > 0 {
		t.scrollSpeed = speed
	}
	if pause >= 0 {
		t.scrollPause = pause
	}
	t.MarkDirty()
}

func (t *Table) textWidth(s string) int {
	return font.MeasureString(t.face, s).Ceil()
}

func (t *Table) rowHeight() int {
	return t.face.Metrics().Height.Ceil() + 2*t.cellPad
}

// columnWidths returns each column's width: the widest cell or header plus
// padding.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = t.textWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := t.textWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2 * t.cellPad
	}
	return widths
}

// contentSize is the full unscrolled grid extent.
func (t *Table) contentSize() (int, int) {
	widths := t.columnWidths()
	w := 0
	for _, cw := range widths {
		w += cw
	}
	if t.borders && len(widths) > 0 {
		w += len(widths) + 1
	}
	rowCount := len(t.rows)
	if len(t.headers) > 0 {
		rowCount++
	}
	h := rowCount * t.rowHeight()
	if t.borders && rowCount > 0 {
		h += rowCount + 1
	}
	return w, h
}

// IntrinsicSize fills the box; the grid scrolls inside it when larger.
func (t *Table) IntrinsicSize() (int, int) { return 0, 0 }

func (t *Table) maxOffsets() (int, int) {
	cw, ch := t.contentSize()
	mx := cw - t.boxW
	my := ch - t.boxH
	if mx < 0 {
		mx = 0
	}
	if my < 0 {
		my = 0
	}
	return mx, my
}

// IsFocusable reports true while any axis overflows.
func (t *Table) IsFocusable() bool {
	mx, my := t.maxOffsets()
	return mx > 0 || my > 0
}

// CanScroll implements Scrollable over the vertical axis.
func (t *Table) CanScroll() bool {
	_, my := t.maxOffsets()
	return my > 0
}

// ScrollTo implements Scrollable, clamping the vertical offset.
func (t *Table) ScrollTo(offset int) {
	_, my := t.maxOffsets()
	offset = clampI(offset, 0, my)
	if offset == t.offsetY {
		return
	}
	t.offsetY = offset
	t.MarkDirty()
}

// ScrollBy implements Scrollable.
func (t *Table) ScrollBy(delta int) { t.ScrollTo(t.offsetY + delta) }

// pingPong maps the scene clock onto a 0..max offset cycle with pauses at
// each end.
func (t *Table) pingPong(now, max float64) float64 {
	travel := max / t.scrollSpeed
	cycle := 2*t.scrollPause + 2*travel
	if cycle <= 0 {
		return 0
	}
	phase := math.Mod(now, cycle)
	switch {
	case phase < t.scrollPause:
		return 0
	case phase < t.scrollPause+travel:
		return (phase - t.scrollPause) * t.scrollSpeed
	case phase < 2*t.scrollPause+travel:
		return max
	default:
		return max - (phase-2*t.scrollPause-travel)*t.scrollSpeed
	}
}

// Advance drives the auto-scroll cycle from the scene clock.
func (t *Table) Advance(now float64) {
	if !t.autoScroll {
		return
	}
	mx, my := t.maxOffsets()
	nx := int(math.Round(t.pingPong(now, float64(mx))))
	ny := int(math.Round(t.pingPong(now, float64(my))))
	if nx != t.offsetX || ny != t.offsetY {
		t.offsetX, t.offsetY = nx, ny
		t.MarkDirty()
	}
}

// Render draws the visible window of the grid.
func (t *Table) Render(ctx *RenderContext, box Rect) *Buffer {
	t.boxW, t.boxH = box.Width, box.Height
	return t.renderCached(ctx, box, t.Epoch(), func() *Buffer {
		buf := NewBuffer(box.Width, box.Height)
		if t.bg.A > 0 {
			buf.Fill(t.bg)
		}
		grid := t.renderGrid()
		buf.Blit(grid, -t.offsetX, -t.offsetY, 1)
		return buf
	})
}

// renderGrid rasterizes the full table into one buffer.
func (t *Table) renderGrid() *Buffer {
	cw, ch := t.contentSize()
	grid := NewBuffer(cw, ch)
	if t.bg.A > 0 {
		grid.Fill(t.bg)
	}
	widths := t.columnWidths()
	rh := t.rowHeight()
	step := rh
	if t.borders {
		step++
	}

	y := 0
	if t.borders {
		y = 1
	}
	if len(t.headers) > 0 {
		t.drawRow(grid, t.headers, widths, y, t.headerFg)
		y += step
	}
	for _, row := range t.rows {
		t.drawRow(grid, row, widths, y, t.fg)
		y += step
	}

	if t.borders {
		t.drawGridLines(grid, widths, rh)
	}
	return grid
}

func (t *Table) drawRow(grid *Buffer, cells []string, widths []int, y int, fg Color) {
	x := 0
	if t.borders {
		x = 1
	}
	for i, w := range widths {
		if i < len(cells) {
			drawString(grid, t.face, cells[i], x+t.cellPad, y+t.cellPad, fg)
		}
		x += w
		if t.borders {
			x++
		}
	}
}

func (t *Table) drawGridLines(grid *Buffer, widths []int, rh int) {
	x := 0
	grid.FillRect(Rect{X: 0, Y: 0, Width: 1, Height: grid.Height}, t.borderCol)
	for _, w := range widths {
		x += w + 1
		grid.FillRect(Rect{X: x, Y: 0, Width: 1, Height: grid.Height}, t.borderCol)
	}
	y := 0
	grid.FillRect(Rect{X: 0, Y: 0, Width: grid.Width, Height: 1}, t.borderCol)
	rowCount := len(t.rows)
	if len(t.headers) > 0 {
		rowCount++
	}
	for i := 0; i < rowCount; i++ {
		y += rh + 1
		grid.FillRect(Rect{X: 0, Y: y, Width: grid.Width, Height: 1}, t.borderCol)
	}
}
