package display

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/matrixscene"
)

// Window is a desktop LED-matrix simulator. Frames arrive through the
// DisplayTarget side from the orchestrator's goroutine; the window itself
// must run on the main goroutine via Run, as the graphics backend requires.
//
// Typical use:
//
//	win := display.NewWindow(64, 32, 10, "panel")
//	go orch.Run(ctx, win, 30)
//	if err := win.Run(); err != nil { ... }
type Window struct {
	mu    sync.Mutex
	frame *matrixscene.Buffer

	width, height int
	pixelSize     int
	title         string

	matrix *ebiten.Image
	done   chan struct{}
	once   sync.Once
}

// NewWindow creates a simulator for a width x height matrix, drawn with
// pixelSize screen pixels per matrix pixel.
func NewWindow(width, height, pixelSize int, title string) *Window {
	if pixelSize < 1 {
		pixelSize = 1
	}
	return &Window{
		width:     width,
		height:    height,
		pixelSize: pixelSize,
		title:     title,
		done:      make(chan struct{}),
	}
}

// Start implements matrixscene.DisplayTarget.
func (w *Window) Start() error { return nil }

// Display implements matrixscene.DisplayTarget. The frame is copied under
// lock and picked up by the next draw.
func (w *Window) Display(frame *matrixscene.Buffer) error {
	w.mu.Lock()
	w.frame = frame.Clone()
	w.mu.Unlock()
	return nil
}

// Stop implements matrixscene.DisplayTarget and closes the window.
func (w *Window) Stop() error {
	w.once.Do(func() { close(w.done) })
	return nil
}

// Run opens the window and blocks until it closes. Must be called from the
// main goroutine.
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.width*w.pixelSize, w.height*w.pixelSize)
	ebiten.SetWindowTitle(w.title)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("window display: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	select {
	case <-w.done:
		return ebiten.Termination
	default:
		return nil
	}
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	frame := w.frame
	w.frame = nil
	w.mu.Unlock()

	if w.matrix == nil {
		w.matrix = ebiten.NewImage(w.width, w.height)
	}
	if frame != nil && frame.Width == w.width && frame.Height == w.height {
		w.matrix.WritePixels(frame.Pix)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.pixelSize), float64(w.pixelSize))
	screen.DrawImage(w.matrix, op)
}

// Layout implements ebiten.Game.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width * w.pixelSize, w.height * w.pixelSize
}
