package matrixscene

import (
	"errors"
	"testing"
)

func focusScene(t *testing.T, n int) (*Scene, []*fakeBox) {
	t.Helper()
	s := NewScene(64, 32)
	boxes := make([]*fakeBox, n)
	for i := range boxes {
		f := newFakeBox(4, 4, ColorWhite)
		f.focusable = true
		boxes[i] = f
		if err := s.AddChild(string(rune('a'+i)), f, i*5, 0); err != nil {
			t.Fatal(err)
		}
	}
	return s, boxes
}

func TestFocusNextOnEmptySceneIsNoop(t *testing.T) {
	s := NewScene(64, 32)
	s.FocusNext()
	s.FocusPrevious()
	if s.Focused() != "" {
		t.Errorf("focus = %q on empty scene, want none", s.Focused())
	}
}

func TestFocusNextWraps(t *testing.T) {
	s, boxes := focusScene(t, 3)

	s.FocusNext()
	if s.Focused() != "a" {
		t.Fatalf("first FocusNext = %q, want a", s.Focused())
	}
	s.FocusNext()
	s.FocusNext()
	if s.Focused() != "c" {
		t.Fatalf("focus = %q, want c", s.Focused())
	}
	s.FocusNext()
	if s.Focused() != "a" {
		t.Errorf("focus after wrap = %q, want a", s.Focused())
	}
	if !boxes[0].Focused() || boxes[2].Focused() {
		t.Error("component focus flags do not match ring state")
	}
}

func TestFocusPreviousFromNoneSelectsLast(t *testing.T) {
	s, _ := focusScene(t, 3)
	s.FocusPrevious()
	if s.Focused() != "c" {
		t.Errorf("FocusPrevious from none = %q, want c", s.Focused())
	}
}

func TestSetFocusUnknownLeavesFocusUnchanged(t *testing.T) {
	s, _ := focusScene(t, 2)
	if err := s.SetFocus("a"); err != nil {
		t.Fatal(err)
	}
	err := s.SetFocus("ghost")
	var unknown UnknownFocusTargetError
	if !errors.As(err, &unknown) {
		t.Fatalf("SetFocus unknown = %v, want UnknownFocusTargetError", err)
	}
	if s.Focused() != "a" {
		t.Errorf("focus = %q after failed SetFocus, want a", s.Focused())
	}
}

func TestNonFocusableChildrenExcludedFromRing(t *testing.T) {
	s := NewScene(64, 32)
	plain := newFakeBox(4, 4, ColorWhite)
	focusable := newFakeBox(4, 4, ColorWhite)
	focusable.focusable = true
	if err := s.AddChild("plain", plain, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.AddChild("focusable", focusable, 8, 0); err != nil {
		t.Fatal(err)
	}

	s.FocusNext()
	if s.Focused() != "focusable" {
		t.Errorf("focus = %q, want focusable", s.Focused())
	}
	s.FocusNext()
	if s.Focused() != "focusable" {
		t.Errorf("single-entry ring moved focus to %q", s.Focused())
	}
}

func TestFocusHooksFireLostBeforeGain(t *testing.T) {
	s, boxes := focusScene(t, 2)
	var order []string
	boxes[0].OnFocusLost(func() error { order = append(order, "a-lost"); return nil })
	boxes[1].OnFocusGain(func() error { order = append(order, "b-gain"); return nil })

	s.FocusNext()
	s.FocusNext()
	if len(order) != 2 || order[0] != "a-lost" || order[1] != "b-gain" {
		t.Errorf("hook order = %v, want [a-lost b-gain]", order)
	}
}

func TestClearFocusReleasesComponent(t *testing.T) {
	s, boxes := focusScene(t, 1)
	s.FocusNext()
	s.ClearFocus()
	if s.Focused() != "" {
		t.Errorf("focus = %q after clear, want none", s.Focused())
	}
	if boxes[0].Focused() {
		t.Error("component still flagged focused after clear")
	}
}

func TestLayoutFocusRingIsIndependent(t *testing.T) {
	inner := newFakeBox(4, 4, ColorWhite)
	inner.focusable = true
	l := NewVStack(16, 16, 0, AlignStart, 0)
	if err := l.Add("inner", inner); err != nil {
		t.Fatal(err)
	}

	l.FocusNext()
	if l.FocusedChild() != "inner" {
		t.Errorf("layout focus = %q, want inner", l.FocusedChild())
	}
	if err := l.SetFocus("ghost"); err == nil {
		t.Error("layout SetFocus(ghost) = nil, want error")
	}
}

func TestTraversalSkipsChildThatLostFocusability(t *testing.T) {
	s, boxes := focusScene(t, 2)

	// Focusability can change between ring rebuilds, e.g. a Text whose
	// content no longer overflows its box.
	boxes[1].focusable = false

	s.FocusNext()
	if got := s.Focused(); got != "a" {
		t.Fatalf("Focused() = %q, want a", got)
	}
	s.FocusNext()
	if got := s.Focused(); got != "a" {
		t.Errorf("Focused() after second next = %q, want a (b skipped)", got)
	}

	var unknown UnknownFocusTargetError
	if err := s.SetFocus("b"); !errors.As(err, &unknown) {
		t.Errorf("SetFocus on unfocusable child = %v, want UnknownFocusTargetError", err)
	}
	if got := s.Focused(); got != "a" {
		t.Errorf("Focused() after rejected set = %q, want a", got)
	}
}
