package matrixscene

import (
	"errors"
	"testing"
)

func orchWithScenes(t *testing.T, names ...string) *Orchestrator {
	t.Helper()
	o := NewOrchestrator()
	for _, name := range names {
		s := NewScene(64, 32)
		if err := s.AddChild("box", newFakeBox(4, 4, ColorWhite), 0, 0); err != nil {
			t.Fatal(err)
		}
		if err := o.AddScene(name, s); err != nil {
			t.Fatal(err)
		}
	}
	return o
}

func TestTransitionToUnknownScene(t *testing.T) {
	o := orchWithScenes(t, "one")
	err := o.TransitionTo("ghost")
	var unknown UnknownSceneError
	if !errors.As(err, &unknown) {
		t.Fatalf("TransitionTo unknown = %v, want UnknownSceneError", err)
	}
	if o.Current() != "" {
		t.Errorf("current = %q after failed transition, want none", o.Current())
	}
}

func TestAddSceneDuplicateName(t *testing.T) {
	o := orchWithScenes(t, "one")
	if err := o.AddScene("one", NewScene(8, 8)); err == nil {
		t.Error("duplicate AddScene = nil, want error")
	}
}

func TestRenderFrameBeforeFirstSceneIsNil(t *testing.T) {
	o := orchWithScenes(t, "one")
	if frame := o.RenderFrame(0); frame != nil {
		t.Error("frame before any transition should be nil")
	}
}

func TestImmediateSwitchWithoutExitPhase(t *testing.T) {
	o := orchWithScenes(t, "one", "two")
	if err := o.TransitionTo("one"); err != nil {
		t.Fatal(err)
	}
	if o.RenderFrame(0) == nil {
		t.Fatal("no frame after transition")
	}
	if o.Current() != "one" {
		t.Fatalf("current = %q, want one", o.Current())
	}

	if err := o.TransitionTo("two"); err != nil {
		t.Fatal(err)
	}
	o.RenderFrame(1)
	if o.Current() != "two" {
		t.Errorf("current = %q, want two (no exit phase)", o.Current())
	}
}

func TestExitPhaseDelaysSwitch(t *testing.T) {
	o := orchWithScenes(t, "one", "two")
	o.Scene("one").SetExit([]ScheduledAnimation{
		{Start: 0, Anim: NewFadeOut("box", 1)},
	})
	if err := o.TransitionTo("one"); err != nil {
		t.Fatal(err)
	}
	o.RenderFrame(0)

	if err := o.TransitionTo("two"); err != nil {
		t.Fatal(err)
	}
	o.RenderFrame(0.1) // starts the exit phase
	if o.Current() != "one" {
		t.Fatalf("current = %q during exit, want one", o.Current())
	}
	o.RenderFrame(0.5)
	if o.Current() != "one" {
		t.Fatalf("current = %q mid-exit, want one", o.Current())
	}
	o.RenderFrame(1.5)
	if o.Current() != "two" {
		t.Errorf("current = %q after exit completed, want two", o.Current())
	}
}

func TestSceneClockRestartsOnActivation(t *testing.T) {
	o := orchWithScenes(t, "one", "two")
	two := o.Scene("two")
	two.SetEntrance([]ScheduledAnimation{
		{Start: 0, Anim: NewSlideIn("box", DirLeft, 1)},
	})

	if err := o.TransitionTo("one"); err != nil {
		t.Fatal(err)
	}
	o.RenderFrame(0)
	if err := o.TransitionTo("two"); err != nil {
		t.Fatal(err)
	}

	// Activation happens at absolute t=10; the entrance's own clock starts
	// at zero, so the box is still at its slide origin, not at rest.
	frame := o.RenderFrame(10)
	if o.Current() != "two" {
		t.Fatalf("current = %q, want two", o.Current())
	}
	if frame.At(0, 0) != (Color{}) {
		t.Error("entrance should still hold the box off its resting spot")
	}
}

func TestEntranceFallsThroughToIdle(t *testing.T) {
	o := orchWithScenes(t, "one")
	s := o.Scene("one")
	s.SetEntrance([]ScheduledAnimation{
		{Start: 0, Anim: NewFadeIn("box", 0.5)},
	})
	s.SetIdle([]ScheduledAnimation{
		{Start: 0, Anim: NewLoop(NewGravityJump("box", 3, 1))},
	})

	if err := o.TransitionTo("one"); err != nil {
		t.Fatal(err)
	}
	o.RenderFrame(0)
	if s.Phase() != "entrance" {
		t.Fatalf("phase = %q, want entrance", s.Phase())
	}
	o.RenderFrame(1)
	if s.Phase() != "idle" {
		t.Errorf("phase = %q after entrance completed, want idle", s.Phase())
	}
}

func TestDisposeClearsRegistry(t *testing.T) {
	o := orchWithScenes(t, "one")
	o.Dispose()
	if o.Scene("one") != nil {
		t.Error("scene still registered after Dispose")
	}
	if frame := o.RenderFrame(0); frame != nil {
		t.Error("frame after Dispose should be nil")
	}
}
