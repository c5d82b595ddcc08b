package matrixscene

import (
	"fmt"
	"sort"
	"time"
)

// sceneNode is one mounted component plus its placement within the scene.
type sceneNode struct {
	id   string
	comp Component
	x, y int
	z    int
	seq  int // insertion order, breaks z ties
}

// Scene owns a set of positioned components, the animation schedule that
// drives them, and the top-level focus ring. Rendering at a time t composes
// every node onto a fixed-size canvas with that instant's animation effects
// applied; the same t always yields the same pixels.
//
// A Scene is not safe for concurrent use. Drive it from a single goroutine,
// typically the Orchestrator's frame loop.
type Scene struct {
	width, height int

	nodes []*sceneNode
	index map[string]*sceneNode

	// Named phase schedules, with starts relative to the phase activation
	// time. The "entrance", "idle" and "exit" names are conventions used by
	// Enter and the transition helpers; any name works.
	phases     map[string][]ScheduledAnimation
	phase      string
	phaseStart float64

	// Ad-hoc animations with absolute scene-time starts.
	extra []ScheduledAnimation

	nextSeq  int
	ring     focusRing
	debug    bool
	onError  func(error)
	disposed bool

	canvas *Buffer
}

// NewScene creates an empty scene with a fixed canvas size. Panics when
// either dimension is not positive.
func NewScene(width, height int) *Scene {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("matrixscene: scene size must be positive, got %dx%d", width, height))
	}
	return &Scene{
		width:  width,
		height: height,
		index:  make(map[string]*sceneNode),
		phases: make(map[string][]ScheduledAnimation),
		canvas: NewBuffer(width, height),
	}
}

// Size returns the canvas dimensions.
func (s *Scene) Size() (w, h int) { return s.width, s.height }

// SetDebug toggles per-frame stats logging and the focus outline.
func (s *Scene) SetDebug(v bool) { s.debug = v }

// SetOnError installs a sink for isolated non-fatal errors (lifecycle
// callbacks, animated property application). Nil reverts to stderr logging.
func (s *Scene) SetOnError(fn func(error)) { s.onError = fn }

func (s *Scene) report(err error) {
	if err == nil {
		return
	}
	if s.onError != nil {
		s.onError(err)
		return
	}
	logError(err)
}

// AddChild places a component at (x, y). Panics on a nil component; returns
// DuplicateChildError when id is already present. The component's mount
// hooks fire immediately. Adding never moves focus.
func (s *Scene) AddChild(id string, c Component, x, y int) error {
	if c == nil {
		panic("matrixscene: cannot add nil child to scene")
	}
	if _, ok := s.index[id]; ok {
		return DuplicateChildError{ID: id}
	}
	n := &sceneNode{id: id, comp: c, x: x, y: y, seq: s.nextSeq}
	s.nextSeq++
	s.nodes = append(s.nodes, n)
	s.index[id] = n
	mountComponent(c, s.report)
	s.rebuildRing()
	return nil
}

// RemoveChild detaches and unmounts a component. Returns UnknownChildError
// for an unknown id. If the removed component held focus, focus falls back
// to none.
func (s *Scene) RemoveChild(id string) error {
	n, ok := s.index[id]
	if !ok {
		return UnknownChildError{ID: id}
	}
	delete(s.index, id)
	for i, cur := range s.nodes {
		if cur == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			break
		}
	}
	unmountComponent(n.comp, s.report)
	s.rebuildRing()
	return nil
}

// Child returns the component registered under id, or nil.
func (s *Scene) Child(id string) Component {
	if n, ok := s.index[id]; ok {
		return n.comp
	}
	return nil
}

// Move repositions a child. Returns UnknownChildError for an unknown id.
func (s *Scene) Move(id string, x, y int) error {
	n, ok := s.index[id]
	if !ok {
		return UnknownChildError{ID: id}
	}
	n.x, n.y = x, y
	return nil
}

// Position returns a child's resting position, ignoring animation offsets.
func (s *Scene) Position(id string) (Point, error) {
	n, ok := s.index[id]
	if !ok {
		return Point{}, UnknownChildError{ID: id}
	}
	return Point{X: n.x, Y: n.y}, nil
}

// SetZ changes a child's stacking order. Higher z composites later (on
// top); equal z keeps insertion order. Returns UnknownChildError for an
// unknown id.
func (s *Scene) SetZ(id string, z int) error {
	n, ok := s.index[id]
	if !ok {
		return UnknownChildError{ID: id}
	}
	n.z = z
	return nil
}

// --- Animation schedule ---

// RegisterPhase installs a named animation schedule. Starts are relative to
// the moment the phase is activated. Replaces any schedule under the same
// name.
func (s *Scene) RegisterPhase(name string, anims []ScheduledAnimation) {
	s.phases[name] = anims
}

// SetEntrance installs the schedule played by Enter.
func (s *Scene) SetEntrance(anims []ScheduledAnimation) { s.RegisterPhase("entrance", anims) }

// SetIdle installs the schedule for the steady phase after entrance.
func (s *Scene) SetIdle(anims []ScheduledAnimation) { s.RegisterPhase("idle", anims) }

// SetExit installs the schedule the orchestrator plays before switching
// away from this scene.
func (s *Scene) SetExit(anims []ScheduledAnimation) { s.RegisterPhase("exit", anims) }

// StartPhase activates a named phase at scene time at. An unregistered name
// activates an empty schedule, which completes immediately.
func (s *Scene) StartPhase(name string, at float64) {
	s.phase = name
	s.phaseStart = at
}

// Enter activates the entrance phase at scene time at.
func (s *Scene) Enter(at float64) { s.StartPhase("entrance", at) }

// Phase returns the active phase name, or "" before any phase started.
func (s *Scene) Phase() string { return s.phase }

// PhaseComplete reports whether every animation in the active phase has
// finished by scene time t. An unbounded Loop in the schedule means the
// phase never completes. No active phase counts as complete.
func (s *Scene) PhaseComplete(t float64) bool {
	for _, sa := range s.phases[s.phase] {
		local := t - s.phaseStart - sa.Start
		if !finished(sa.Anim, local) {
			return false
		}
	}
	return true
}

// AddAnimation schedules an ad-hoc animation at an absolute scene time,
// independent of phases.
func (s *Scene) AddAnimation(start float64, a Animation) {
	s.extra = append(s.extra, ScheduledAnimation{Start: start, Anim: a})
}

// ClearAnimations drops every ad-hoc animation and deactivates the current
// phase. Unbounded loops are cleared like everything else.
func (s *Scene) ClearAnimations() {
	s.extra = nil
	s.phase = ""
	s.phaseStart = 0
}

// activeSchedule returns the phase schedule plus ad-hoc animations, with
// starts converted to absolute scene time.
func (s *Scene) activeSchedule() []ScheduledAnimation {
	phase := s.phases[s.phase]
	out := make([]ScheduledAnimation, 0, len(phase)+len(s.extra))
	for _, sa := range phase {
		out = append(out, ScheduledAnimation{Start: s.phaseStart + sa.Start, Anim: sa.Anim})
	}
	out = append(out, s.extra...)
	return out
}

// --- Rendering ---

// Render composes the scene at time t and returns the canvas. The returned
// buffer is reused across calls; clone it to keep a frame.
//
// The pass runs in three stages: clock-driven components advance their
// state, the animation schedule is sampled into per-node effects, and nodes
// composite back-to-front by z. Animations that have not started yet apply
// their initial value, so entrance targets sit at their pre-entrance
// position instead of flashing at rest; finished animations hold their
// terminal value.
func (s *Scene) Render(t float64) *Buffer {
	s.canvas.Clear()
	if s.disposed {
		return s.canvas
	}

	ctx := &RenderContext{Time: t, Debug: s.debug, OnError: s.onError}
	var stats renderStats
	if s.debug {
		ctx.stats = &stats
	}

	for _, n := range s.nodes {
		advanceComponent(n.comp, t)
	}

	sampleStart := time.Now()
	schedule := s.activeSchedule()
	effects := make(effectSet)
	for _, sa := range schedule {
		sampleAt(sa.Anim, t-sa.Start, effects)
	}
	stats.sampleTime = time.Since(sampleStart)
	stats.animCount = len(schedule)
	stats.nodeCount = len(s.nodes)

	compositeStart := time.Now()
	order := make([]*sceneNode, len(s.nodes))
	copy(order, s.nodes)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].z != order[j].z {
			return order[i].z < order[j].z
		}
		return order[i].seq < order[j].seq
	})

	for _, n := range order {
		s.compositeNode(ctx, n, effects[n.id])
	}
	stats.compositeTime = time.Since(compositeStart)

	if s.debug {
		logStats(t, stats)
	}
	return s.canvas
}

// compositeNode renders one node and blits it onto the canvas with its
// animation effect applied.
func (s *Scene) compositeNode(ctx *RenderContext, n *sceneNode, eff *Effect) {
	if vc, ok := n.comp.(interface{ Visible() bool }); ok && !vc.Visible() {
		return
	}

	x, y := n.x, n.y
	opacity := 1.0
	if oc, ok := n.comp.(interface{ Opacity() float64 }); ok {
		opacity = oc.Opacity()
	}

	if eff != nil {
		for name, v := range eff.Props {
			switch name {
			case "x":
				x = int(v)
			case "y":
				y = int(v)
			case "opacity":
				opacity = clampF(v, 0, 1)
			default:
				if pt, ok := n.comp.(PropertyTarget); ok {
					if err := pt.SetProperty(name, v); err != nil {
						ctx.reportError(fmt.Errorf("animate %q on %q: %w", name, n.id, err))
					}
				} else {
					ctx.reportError(fmt.Errorf("animate %q on %q: component has no animatable properties", name, n.id))
				}
			}
		}
		x += int(eff.DX)
		y += int(eff.DY)
		if eff.HasOpacity {
			opacity = clampF(eff.Opacity, 0, 1)
		}
	}
	if opacity <= 0 {
		return
	}

	w, h := resolveSize(n.comp, Rect{Width: s.width, Height: s.height})
	buf := n.comp.Render(ctx, Rect{Width: w, Height: h})
	if buf == nil {
		return
	}
	if ctx.Debug && isFocused(n.comp) {
		buf = applyFocusOutline(buf)
	}
	s.canvas.Blit(buf, x, y, opacity)
}

func isFocused(c Component) bool {
	fc, ok := c.(interface{ Focused() bool })
	return ok && fc.Focused()
}

// --- Focus ---

func (s *Scene) rebuildRing() {
	ids := make([]string, 0, len(s.nodes))
	for _, n := range s.nodes {
		if n.comp.IsFocusable() {
			ids = append(ids, n.id)
		}
	}
	s.ring.rebuild(ids, s.Child, s.report)
}

// FocusNext moves focus to the next focusable child, wrapping at the end.
// No-op on an empty ring.
func (s *Scene) FocusNext() { s.ring.next(s.Child, s.report) }

// FocusPrevious moves focus to the previous focusable child, wrapping at
// the start.
func (s *Scene) FocusPrevious() { s.ring.previous(s.Child, s.report) }

// SetFocus moves focus to a specific child. Returns UnknownFocusTargetError
// and leaves focus unchanged when id is not in the focus ring.
func (s *Scene) SetFocus(id string) error { return s.ring.set(id, s.Child, s.report) }

// ClearFocus releases focus without selecting a new target.
func (s *Scene) ClearFocus() { s.ring.clear(s.Child, s.report) }

// Focused returns the focused child's id, or "" when nothing has focus.
func (s *Scene) Focused() string { return s.ring.current }

// FocusedComponent returns the focused component, or nil.
func (s *Scene) FocusedComponent() Component {
	if s.ring.current == "" {
		return nil
	}
	return s.Child(s.ring.current)
}

// Dispose unmounts every child and force-clears the animation schedule,
// including un-finishing loops. A disposed scene renders blank; it is not
// reusable.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.ClearAnimations()
	for _, n := range s.nodes {
		unmountComponent(n.comp, s.report)
	}
	s.nodes = nil
	s.index = make(map[string]*sceneNode)
	s.ring.rebuild(nil, s.Child, s.report)
}
