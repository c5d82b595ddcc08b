// Package display provides ready-made DisplayTarget implementations for
// running matrixscene content without LED hardware: a terminal emulator
// built on tcell and a desktop window simulator built on ebiten.
package display

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/matrixscene"
)

// Terminal renders frames into the controlling terminal using the upper
// half block character, packing two vertical pixels per character cell so
// the output keeps roughly square pixels.
type Terminal struct {
	screen tcell.Screen

	// OnKey, when set, receives every key event from the terminal. Called
	// from the event goroutine, not the frame loop.
	OnKey func(*tcell.EventKey)

	// OnQuit, when set, is called once when the user presses Escape or
	// Ctrl-C.
	OnQuit func()

	done chan struct{}
}

// NewTerminal creates an unstarted terminal target.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Start initializes the terminal screen and begins consuming input events.
func (t *Terminal) Start() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal display: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal display: %w", err)
	}
	screen.HideCursor()
	screen.Clear()
	t.screen = screen
	t.done = make(chan struct{})
	go t.eventLoop()
	return nil
}

func (t *Terminal) eventLoop() {
	for {
		select {
		case <-t.done:
			return
		default:
		}
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				if t.OnQuit != nil {
					t.OnQuit()
				}
				continue
			}
			if t.OnKey != nil {
				t.OnKey(ev)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// Display draws the frame. Each terminal cell shows two stacked pixels: the
// upper one as the foreground of '▀', the lower one as the background.
func (t *Terminal) Display(frame *matrixscene.Buffer) error {
	if t.screen == nil {
		return fmt.Errorf("terminal display: not started")
	}
	for y := 0; y < frame.Height; y += 2 {
		for x := 0; x < frame.Width; x++ {
			upper := frame.At(x, y)
			lower := frame.At(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(upper.R), int32(upper.G), int32(upper.B))).
				Background(tcell.NewRGBColor(int32(lower.R), int32(lower.G), int32(lower.B)))
			t.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Stop restores the terminal.
func (t *Terminal) Stop() error {
	if t.screen == nil {
		return nil
	}
	close(t.done)
	t.screen.Fini()
	t.screen = nil
	return nil
}
