package matrixscene

import (
	"errors"
	"testing"
)

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	s := NewScene(64, 32)
	s.SetOnError(func(err error) { t.Errorf("unexpected render error: %v", err) })
	return s
}

// --- Construction and children ---

func TestNewSceneRejectsBadSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewScene(0, 32) did not panic")
		}
	}()
	NewScene(0, 32)
}

func TestAddChildDuplicate(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 0, 0); err != nil {
		t.Fatal(err)
	}
	err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 0, 0)
	var dup DuplicateChildError
	if !errors.As(err, &dup) {
		t.Fatalf("duplicate AddChild = %v, want DuplicateChildError", err)
	}
}

func TestAddChildMounts(t *testing.T) {
	s := newTestScene(t)
	f := newFakeBox(4, 4, ColorWhite)
	mounted := false
	f.OnMount(func() error { mounted = true; return nil })
	if err := s.AddChild("a", f, 0, 0); err != nil {
		t.Fatal(err)
	}
	if !mounted {
		t.Error("mount hook did not fire on AddChild")
	}
}

func TestRemoveChildUnmountsAndDropsFocus(t *testing.T) {
	s := newTestScene(t)
	f := newFakeBox(4, 4, ColorWhite)
	f.focusable = true
	unmounted := false
	f.OnUnmount(func() error { unmounted = true; return nil })

	if err := s.AddChild("a", f, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.SetFocus("a"); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveChild("a"); err != nil {
		t.Fatal(err)
	}
	if !unmounted {
		t.Error("unmount hook did not fire on RemoveChild")
	}
	if s.Focused() != "" {
		t.Errorf("focus = %q after removing focused child, want none", s.Focused())
	}
}

// --- Rendering ---

func TestRenderIsIdempotent(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(8, 8, RGB(200, 30, 30)), 4, 4); err != nil {
		t.Fatal(err)
	}
	s.AddAnimation(0, NewSlideIn("a", DirLeft, 1))

	first := s.Render(0.4).Clone()
	second := s.Render(0.4)
	if !buffersEqual(first, second) {
		t.Error("two renders at the same time differ")
	}
}

func TestRenderPlacesChildAtPosition(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 10, 5); err != nil {
		t.Fatal(err)
	}
	frame := s.Render(0)
	assertPixel(t, frame, 10, 5, ColorWhite)
	assertPixel(t, frame, 9, 5, Color{})
}

func TestZOrderControlsStacking(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("red", newFakeBox(8, 8, RGB(255, 0, 0)), 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := s.AddChild("green", newFakeBox(8, 8, RGB(0, 255, 0)), 0, 0); err != nil {
		t.Fatal(err)
	}

	// Insertion order: green painted last.
	assertPixel(t, s.Render(0), 2, 2, RGB(0, 255, 0))

	if err := s.SetZ("red", 5); err != nil {
		t.Fatal(err)
	}
	assertPixel(t, s.Render(0), 2, 2, RGB(255, 0, 0))
}

func TestInvisibleChildNotComposited(t *testing.T) {
	s := newTestScene(t)
	f := newFakeBox(4, 4, ColorWhite)
	if err := s.AddChild("a", f, 0, 0); err != nil {
		t.Fatal(err)
	}
	f.SetVisible(false)
	assertPixel(t, s.Render(0), 0, 0, Color{})
}

// --- Animation effects ---

func TestScheduledAnimationAppliesInitialValueBeforeStart(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 10, 10); err != nil {
		t.Fatal(err)
	}
	// Slide-in from the left starting at t=5: before then the child sits
	// at its slide origin, fully off the resting spot.
	s.AddAnimation(5, NewSlideIn("a", DirLeft, 1))

	frame := s.Render(0)
	assertPixel(t, frame, 10, 10, Color{})

	// Once finished, the child rests at its position.
	assertPixel(t, s.Render(7), 10, 10, ColorWhite)
}

func TestFinishedSlideOutPersists(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 10, 10); err != nil {
		t.Fatal(err)
	}
	s.AddAnimation(0, NewSlideOut("a", DirRight, 0.5))

	assertPixel(t, s.Render(10), 10, 10, Color{})
}

func TestFadeEffectOverridesOpacity(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 0, 0); err != nil {
		t.Fatal(err)
	}
	s.AddAnimation(0, NewFadeOut("a", 1))

	frame := s.Render(5)
	assertPixel(t, frame, 0, 0, Color{})
}

func TestAnimatedPropertyForwardsToComponent(t *testing.T) {
	s := newTestScene(t)
	bar := NewProgressBar(Horizontal)
	if err := s.AddChild("bar", bar, 0, 0); err != nil {
		t.Fatal(err)
	}
	// Overshooting easing values must clamp instead of failing the pass.
	s.AddAnimation(0, NewAnimate("bar", "progress", 0, 1.4, 1, nil))

	s.Render(1)
	if bar.Progress() != 1 {
		t.Errorf("progress = %v, want 1 (clamped)", bar.Progress())
	}
}

func TestPositionPropertiesOverrideResting(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 0, 0); err != nil {
		t.Fatal(err)
	}
	s.AddAnimation(0, NewAnimate("a", "x", 0, 20, 1, nil))
	s.AddAnimation(0, NewAnimate("a", "y", 0, 10, 1, nil))

	frame := s.Render(1)
	assertPixel(t, frame, 20, 10, ColorWhite)
	assertPixel(t, frame, 0, 0, Color{})
}

// --- Phases ---

func TestPhaseCompleteTracksSchedule(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 0, 0); err != nil {
		t.Fatal(err)
	}
	s.SetEntrance([]ScheduledAnimation{
		{Start: 0, Anim: NewFadeIn("a", 1)},
		{Start: 0.5, Anim: NewFadeIn("a", 1)},
	})
	s.Enter(2)

	if s.PhaseComplete(3) {
		t.Error("phase complete at t=3, second animation still running")
	}
	if !s.PhaseComplete(3.5) {
		t.Error("phase not complete at t=3.5")
	}
}

func TestPhaseWithUnboundedLoopNeverCompletes(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 0, 0); err != nil {
		t.Fatal(err)
	}
	s.SetIdle([]ScheduledAnimation{
		{Start: 0, Anim: NewLoop(NewGravityJump("a", 3, 1))},
	})
	s.StartPhase("idle", 0)

	if s.PhaseComplete(1e6) {
		t.Error("phase with unbounded loop reported complete")
	}
}

func TestClearAnimationsDropsUnboundedLoops(t *testing.T) {
	s := newTestScene(t)
	if err := s.AddChild("a", newFakeBox(4, 4, ColorWhite), 10, 10); err != nil {
		t.Fatal(err)
	}
	s.AddAnimation(0, NewLoop(NewSlideOut("a", DirRight, 1)))
	s.ClearAnimations()

	// With the schedule gone the child renders at rest.
	assertPixel(t, s.Render(0.5), 10, 10, ColorWhite)
}

// --- Dispose ---

func TestDisposeUnmountsAndRendersBlank(t *testing.T) {
	s := newTestScene(t)
	f := newFakeBox(4, 4, ColorWhite)
	unmounted := false
	f.OnUnmount(func() error { unmounted = true; return nil })
	if err := s.AddChild("a", f, 0, 0); err != nil {
		t.Fatal(err)
	}
	s.AddAnimation(0, NewLoop(NewGravityJump("a", 3, 1)))

	s.Dispose()
	if !unmounted {
		t.Error("dispose did not unmount children")
	}
	frame := s.Render(1)
	assertPixel(t, frame, 0, 0, Color{})
	s.Dispose() // second dispose is a no-op
}

func TestSceneReflectsNestedLayoutMutation(t *testing.T) {
	leaf := newFakeBox(6, 4, RGB(255, 0, 0))
	inner := NewVStack(12, 8, 0, AlignStart, 0)
	if err := inner.Add("leaf", leaf); err != nil {
		t.Fatal(err)
	}
	outer := NewVStack(24, 16, 0, AlignStart, 0)
	if err := outer.Add("inner", inner); err != nil {
		t.Fatal(err)
	}
	s := NewScene(24, 16)
	if err := s.AddChild("root", outer, 0, 0); err != nil {
		t.Fatal(err)
	}

	assertPixel(t, s.Render(0), 0, 0, RGB(255, 0, 0))

	leaf.setColor(RGB(0, 255, 0))
	assertPixel(t, s.Render(1), 0, 0, RGB(0, 255, 0))
}
