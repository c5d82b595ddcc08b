package matrixscene

import (
	"context"
	"fmt"
	"time"
)

// DisplayTarget is an output device for rendered frames: an LED matrix, a
// terminal emulator, a desktop window. Start is called once before the
// first frame and Stop once after the last, even when the frame loop exits
// with an error.
type DisplayTarget interface {
	Start() error
	Display(frame *Buffer) error
	Stop() error
}

// Orchestrator owns a set of named scenes and drives exactly one of them at
// a time. Each scene sees its own clock starting at zero when it becomes
// current. Transitions play the outgoing scene's exit phase to completion,
// then switch and play the incoming scene's entrance phase; a scene without
// an exit phase switches on the next frame.
//
// Like Scene, an Orchestrator is not safe for concurrent use.
type Orchestrator struct {
	scenes  map[string]*Scene
	current *Scene
	name    string

	pending    string
	exitOpen   bool // exit phase start still owed to the current scene
	sceneStart float64

	onError func(error)
}

// NewOrchestrator creates an empty orchestrator.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{scenes: make(map[string]*Scene)}
}

// SetOnError installs an error sink forwarded to every registered scene.
func (o *Orchestrator) SetOnError(fn func(error)) {
	o.onError = fn
	for _, s := range o.scenes {
		s.SetOnError(fn)
	}
}

// AddScene registers a scene. Panics on a nil scene; returns an error when
// the name is taken.
func (o *Orchestrator) AddScene(name string, s *Scene) error {
	if s == nil {
		panic("matrixscene: cannot add nil scene")
	}
	if _, ok := o.scenes[name]; ok {
		return fmt.Errorf("matrixscene: scene %q already registered", name)
	}
	o.scenes[name] = s
	if o.onError != nil {
		s.SetOnError(o.onError)
	}
	return nil
}

// Scene returns a registered scene, or nil.
func (o *Orchestrator) Scene(name string) *Scene { return o.scenes[name] }

// Current returns the active scene's name, or "" before the first
// transition.
func (o *Orchestrator) Current() string { return o.name }

// TransitionTo requests a switch to a named scene. Returns
// UnknownSceneError for an unregistered name. The switch happens during a
// later RenderFrame: immediately when the current scene has no exit phase,
// otherwise after its exit phase completes.
func (o *Orchestrator) TransitionTo(name string) error {
	if _, ok := o.scenes[name]; !ok {
		return UnknownSceneError{ID: name}
	}
	o.pending = name
	_, hasExit := o.currentExitPhase()
	o.exitOpen = hasExit
	return nil
}

func (o *Orchestrator) currentExitPhase() ([]ScheduledAnimation, bool) {
	if o.current == nil {
		return nil, false
	}
	anims, ok := o.current.phases["exit"]
	return anims, ok && len(anims) > 0
}

// RenderFrame advances the transition state machine and renders the active
// scene at absolute time t. Returns nil before any scene is active.
func (o *Orchestrator) RenderFrame(t float64) *Buffer {
	st := t - o.sceneStart

	if o.pending != "" {
		switch {
		case o.exitOpen:
			o.current.StartPhase("exit", st)
			o.exitOpen = false
		case o.current == nil || o.current.Phase() != "exit" || o.current.PhaseComplete(st):
			o.activate(o.pending, t)
			st = 0
		}
	}

	if o.current == nil {
		return nil
	}

	// Fall through from a finished entrance into the idle phase.
	if o.current.Phase() == "entrance" && o.current.PhaseComplete(st) {
		if anims, ok := o.current.phases["idle"]; ok && len(anims) > 0 {
			o.current.StartPhase("idle", st)
		}
	}
	return o.current.Render(st)
}

func (o *Orchestrator) activate(name string, t float64) {
	if o.current != nil {
		o.current.ClearAnimations()
	}
	o.current = o.scenes[name]
	o.name = name
	o.pending = ""
	o.sceneStart = t
	o.current.Enter(0)
}

// Run drives the frame loop at the given rate until ctx is canceled or the
// display target fails. The target is started before the first frame and
// stopped on the way out.
func (o *Orchestrator) Run(ctx context.Context, target DisplayTarget, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	if err := target.Start(); err != nil {
		return fmt.Errorf("matrixscene: display start: %w", err)
	}
	defer func() {
		if err := target.Stop(); err != nil {
			logError(fmt.Errorf("display stop: %w", err))
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	epoch := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			frame := o.RenderFrame(time.Since(epoch).Seconds())
			if frame == nil {
				continue
			}
			if err := target.Display(frame); err != nil {
				return fmt.Errorf("matrixscene: display: %w", err)
			}
		}
	}
}

// Dispose disposes every registered scene and clears the registry.
func (o *Orchestrator) Dispose() {
	for _, s := range o.scenes {
		s.Dispose()
	}
	o.scenes = make(map[string]*Scene)
	o.current = nil
	o.name = ""
	o.pending = ""
}
