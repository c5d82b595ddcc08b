package matrixscene

import "fmt"

// Component is the capability contract every renderable leaf or container
// satisfies. The core never inspects a component beyond this interface;
// concrete leaves (text, tables, progress bars, images) are peers of any
// caller-provided implementation.
//
// Render must be a pure function of the component's state and the given box:
// two calls with no mutation in between return the same pixels. Mutating
// operations bump the epoch so parents and the render cache can tell the
// output changed.
type Component interface {
	// Render draws the component into a buffer no larger than box. The box
	// origin is always (0, 0); the parent decides final placement.
	Render(ctx *RenderContext, box Rect) *Buffer

	// IntrinsicSize returns the component's natural size in pixels.
	// A zero width or height means "fill the available box".
	IntrinsicSize() (w, h int)

	// IsFocusable reports whether the component can take keyboard focus.
	IsFocusable() bool

	// Epoch is a monotonically increasing counter bumped on every state
	// mutation that affects rendering.
	Epoch() uint64
}

// Scrollable is the capability interface for components with scrollable
// content. Query it with a type assertion instead of probing for methods.
type Scrollable interface {
	CanScroll() bool
	ScrollTo(offset int)
	ScrollBy(delta int)
}

// PropertyTarget is the capability interface for components whose named
// numeric properties can be driven by an Animate animation.
type PropertyTarget interface {
	SetProperty(name string, value float64) error
}

// Advancer is implemented by components whose content derives from the scene
// clock (autoscrolling text, cycling tables). Advance is called once per
// render pass before any cache checks; implementations recompute their
// time-derived state and bump their epoch only when it actually changed.
type Advancer interface {
	Advance(t float64)
}

// Container is implemented by components that own child components. The
// scene walks it to dispatch mount/unmount and to derive the focus ring.
type Container interface {
	ChildComponents() []Component
}

// RenderContext carries per-render configuration and diagnostics down the
// component tree. It replaces any process-global render flag: every render
// call receives its own context, so two scenes can render with different
// settings without interfering.
type RenderContext struct {
	// Time is the scene-relative clock in seconds for this render pass.
	Time float64

	// Debug enables the focus outline on focused components and per-frame
	// stats logging.
	Debug bool

	// OnError receives isolated non-fatal failures (lifecycle callbacks,
	// property application). Nil means log to stderr.
	OnError func(error)

	stats *renderStats
}

func (ctx *RenderContext) reportError(err error) {
	if err == nil {
		return
	}
	if ctx != nil && ctx.OnError != nil {
		ctx.OnError(err)
		return
	}
	logError(err)
}

// Hook is a lifecycle callback. A returned error (or panic, which is
// converted to an error) is routed to the render context's error handler and
// never aborts sibling processing.
type Hook func() error

// cacheEntry is the per-component render memo: at most one buffer, keyed by
// the box it was rendered for and a content signature. Overwritten on miss,
// never accumulated.
type cacheEntry struct {
	valid bool
	box   Rect
	sig   uint64
	buf   *Buffer
}

// Base supplies the bookkeeping shared by all built-in components: the epoch
// counter, the single-buffer render cache, opacity and visibility, mount and
// focus state, and the typed lifecycle callback lists. Embed it and forward
// the Component methods it provides.
type Base struct {
	epoch   uint64
	cache   cacheEntry
	opacity float64
	visible bool
	mounted bool
	focused bool

	mountHooks     []Hook
	unmountHooks   []Hook
	focusGainHooks []Hook
	focusLostHooks []Hook
}

// baseDefaults sets the field values shared by all component constructors.
func baseDefaults(b *Base) {
	b.opacity = 1
	b.visible = true
}

// MarkDirty bumps the epoch, invalidating this component's cached buffer and
// any parent composite that includes it.
func (b *Base) MarkDirty() {
	b.epoch++
}

// Epoch returns the current content epoch.
func (b *Base) Epoch() uint64 {
	return b.epoch
}

// Opacity returns the component's opacity in [0, 1].
func (b *Base) Opacity() float64 {
	return b.opacity
}

// SetOpacity sets the component's opacity. Values outside [0, 1] return a
// RangeError and leave the opacity unchanged.
func (b *Base) SetOpacity(v float64) error {
	if v < 0 || v > 1 {
		return RangeError{Field: "opacity", Value: v, Min: 0, Max: 1}
	}
	if v != b.opacity {
		b.opacity = v
		b.MarkDirty()
	}
	return nil
}

// Visible reports whether the component takes part in compositing.
func (b *Base) Visible() bool {
	return b.visible
}

// SetVisible shows or hides the component.
func (b *Base) SetVisible(v bool) {
	if v != b.visible {
		b.visible = v
		b.MarkDirty()
	}
}

// Mounted reports whether the component is currently part of a scene tree.
func (b *Base) Mounted() bool {
	return b.mounted
}

// Focused reports whether the component currently holds focus.
func (b *Base) Focused() bool {
	return b.focused
}

// IsFocusable reports whether the component can take focus. Components that
// accept input override this.
func (b *Base) IsFocusable() bool {
	return false
}

// OnMount registers a callback fired once when the component first becomes
// reachable from a scene.
func (b *Base) OnMount(h Hook) {
	b.mountHooks = append(b.mountHooks, h)
}

// OnUnmount registers a callback fired once when the component is removed
// from its scene or the scene is torn down.
func (b *Base) OnUnmount(h Hook) {
	b.unmountHooks = append(b.unmountHooks, h)
}

// OnFocusGain registers a callback fired when the component gains focus.
func (b *Base) OnFocusGain(h Hook) {
	b.focusGainHooks = append(b.focusGainHooks, h)
}

// OnFocusLost registers a callback fired when the component loses focus.
func (b *Base) OnFocusLost(h Hook) {
	b.focusLostHooks = append(b.focusLostHooks, h)
}

// triggerMount fires mount hooks exactly once per mount transition.
func (b *Base) triggerMount(report func(error)) {
	if b.mounted {
		return
	}
	b.mounted = true
	dispatchHooks(b.mountHooks, report)
}

// triggerUnmount fires unmount hooks exactly once per unmount transition.
func (b *Base) triggerUnmount(report func(error)) {
	if !b.mounted {
		return
	}
	b.mounted = false
	dispatchHooks(b.unmountHooks, report)
}

// setFocused flips focus state and fires the matching hook list.
func (b *Base) setFocused(focused bool, report func(error)) {
	if focused == b.focused {
		return
	}
	b.focused = focused
	if focused {
		dispatchHooks(b.focusGainHooks, report)
	} else {
		dispatchHooks(b.focusLostHooks, report)
	}
}

// dispatchHooks invokes each hook in registration order. A failing hook is
// caught at its call site and reported; remaining hooks still run.
func dispatchHooks(hooks []Hook, report func(error)) {
	for _, h := range hooks {
		if err := runHook(h); err != nil {
			if report != nil {
				report(err)
			} else {
				logError(err)
			}
		}
	}
}

func runHook(h Hook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lifecycle callback panic: %v", r)
		}
	}()
	return h()
}

// renderCached returns the memoized buffer when both the requested box and
// the content signature match the cached entry; otherwise it calls render
// and replaces the entry. Leaves pass their epoch as the signature;
// containers fold child epochs in as well.
func (b *Base) renderCached(ctx *RenderContext, box Rect, sig uint64, render func() *Buffer) *Buffer {
	if b.cache.valid && b.cache.box == box && b.cache.sig == sig {
		if ctx != nil && ctx.stats != nil {
			ctx.stats.cacheHits++
		}
		return b.cache.buf
	}
	if ctx != nil && ctx.stats != nil {
		ctx.stats.cacheMisses++
	}
	buf := render()
	b.cache = cacheEntry{valid: true, box: box, sig: sig, buf: buf}
	return buf
}

// mountComponent mounts c and, for containers, its whole subtree.
func mountComponent(c Component, report func(error)) {
	if m, ok := c.(interface{ triggerMount(func(error)) }); ok {
		m.triggerMount(report)
	}
	if cont, ok := c.(Container); ok {
		for _, child := range cont.ChildComponents() {
			mountComponent(child, report)
		}
	}
}

// unmountComponent unmounts c and, for containers, its whole subtree.
func unmountComponent(c Component, report func(error)) {
	if cont, ok := c.(Container); ok {
		for _, child := range cont.ChildComponents() {
			unmountComponent(child, report)
		}
	}
	if m, ok := c.(interface{ triggerUnmount(func(error)) }); ok {
		m.triggerUnmount(report)
	}
}

// advanceComponent pushes the scene clock to c and any container descendants
// before cache signatures are computed for the pass.
func advanceComponent(c Component, t float64) {
	if a, ok := c.(Advancer); ok {
		a.Advance(t)
	}
	if cont, ok := c.(Container); ok {
		for _, child := range cont.ChildComponents() {
			advanceComponent(child, t)
		}
	}
}

// resolveSize applies the intrinsic-size contract: zero means fill the box.
func resolveSize(c Component, box Rect) (int, int) {
	w, h := c.IntrinsicSize()
	if w <= 0 {
		w = box.Width
	}
	if h <= 0 {
		h = box.Height
	}
	return w, h
}

// focusOutlineColor marks the focused component when RenderContext.Debug is
// set.
var focusOutlineColor = RGB(128, 0, 255)

// applyFocusOutline copies the buffer and draws a debug outline. The cached
// buffer is never mutated in place.
func applyFocusOutline(buf *Buffer) *Buffer {
	out := buf.Clone()
	out.DrawFrame(focusOutlineColor)
	return out
}
