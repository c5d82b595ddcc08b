package matrixscene

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Easing is a normalized-time-to-progress curve. Animations use the curve
// set from gween's ease package (ease.Linear, ease.OutQuad, ease.OutBounce,
// ease.OutElastic, ...) plus the Gravity curve below. Bounce and elastic
// curves may transiently leave [0, 1] to create overshoot.
type Easing = ease.TweenFunc

// Gravity is an inverted-parabola easing simulating projectile motion:
// 0 at the start, 1 at the peak (halfway), 0 again at the end. Suited for
// jump-up-and-land animations.
func Gravity(t, b, c, d float32) float32 {
	f := t / d
	return b + c*(4*f*(1-f))
}

// easeAt evaluates fn at progress f in [0, 1]. Nil means linear.
func easeAt(fn Easing, f float64) float64 {
	if fn == nil {
		fn = ease.Linear
	}
	return float64(fn(float32(f), 0, 1, 1))
}

// Effect is the transient override an animation pass accumulates for one
// scene node. Offsets accumulate across animations; opacity and named
// properties overwrite.
type Effect struct {
	DX, DY     float64
	Opacity    float64
	HasOpacity bool
	Props      map[string]float64
}

func (e *Effect) setProp(name string, value float64) {
	if e.Props == nil {
		e.Props = make(map[string]float64, 2)
	}
	e.Props[name] = value
}

// effectSet collects the effects of one sampling pass, keyed by target id.
// Combinators may group animations on different targets; each leaf writes
// into its own target's effect.
type effectSet map[string]*Effect

func (s effectSet) effect(target string) *Effect {
	eff := s[target]
	if eff == nil {
		eff = &Effect{}
		s[target] = eff
	}
	return eff
}

// Animation is the closed set of time-sampled effects: the leaf kinds
// (SlideIn, SlideOut, FadeIn, FadeOut, Animate, GravityJump, GravityFallIn)
// and the combinators (Sequence, Parallel, Loop). All kinds share one
// uniform sampling operation, so the scheduler can treat them exhaustively.
//
// Sampling is a pure function of local time: a fixed schedule and a fixed t
// produce an identical effect on every evaluation.
type Animation interface {
	// TargetID names the scene node the animation primarily drives. Each
	// leaf writes its effect to its own target, so a combinator may group
	// animations on different nodes; its TargetID is then just the first
	// child's.
	TargetID() string

	// Duration returns the animation length in seconds. An unbounded Loop
	// reports math.Inf(1).
	Duration() float64

	// sample writes the effect at local time t (clamped to the animation's
	// span by the caller) into its target's slot in set.
	sample(t float64, set effectSet)
}

// finished reports whether a is past its span at local time t. Only a
// counted Loop or a finite animation ever finishes; an unbounded Loop
// never does.
func finished(a Animation, t float64) bool {
	d := a.Duration()
	return !math.IsInf(d, 1) && t >= d
}

// sampleAt evaluates a at local time t, holding the initial value before
// start and the terminal value after the end. Finished one-shot animations
// keep contributing their terminal effect rather than reverting.
func sampleAt(a Animation, t float64, set effectSet) {
	switch {
	case t < 0:
		a.sample(0, set)
	case finished(a, t):
		a.sample(a.Duration(), set)
	default:
		a.sample(t, set)
	}
}

// progress converts local time to eased progress in [0, 1].
func progress(t, duration float64, fn Easing) float64 {
	if duration <= 0 {
		return 1
	}
	return easeAt(fn, clampF(t/duration, 0, 1))
}

// --- Leaf kinds ---

// dirOffset returns the full off-screen displacement for a direction.
func dirOffset(dir Direction, distance int) (dx, dy float64) {
	switch dir {
	case DirLeft:
		return -float64(distance), 0
	case DirRight:
		return float64(distance), 0
	case DirTop:
		return 0, -float64(distance)
	default: // DirBottom
		return 0, float64(distance)
	}
}

// DefaultSlideDistance is the slide displacement when none is given,
// roughly one display width.
const DefaultSlideDistance = 64

// SlideIn moves its target from a direction-derived off-screen origin to
// its resting position.
type SlideIn struct {
	Target   string
	Dir      Direction
	Distance int
	Dur      float64
	Easing   Easing
}

// NewSlideIn creates a slide-in over dur seconds with ease-out easing and
// the default distance.
func NewSlideIn(target string, dir Direction, dur float64) *SlideIn {
	return &SlideIn{Target: target, Dir: dir, Distance: DefaultSlideDistance, Dur: dur, Easing: ease.OutQuad}
}

func (a *SlideIn) TargetID() string  { return a.Target }
func (a *SlideIn) Duration() float64 { return a.Dur }

func (a *SlideIn) sample(t float64, set effectSet) {
	eff := set.effect(a.Target)
	p := progress(t, a.Dur, a.Easing)
	dx, dy := dirOffset(a.Dir, a.Distance)
	eff.DX += math.Round(dx * (1 - p))
	eff.DY += math.Round(dy * (1 - p))
}

// SlideOut moves its target from its resting position off screen in a
// direction. The off-screen displacement persists once finished.
type SlideOut struct {
	Target   string
	Dir      Direction
	Distance int
	Dur      float64
	Easing   Easing
}

// NewSlideOut creates a slide-out over dur seconds with ease-in easing and
// the default distance.
func NewSlideOut(target string, dir Direction, dur float64) *SlideOut {
	return &SlideOut{Target: target, Dir: dir, Distance: DefaultSlideDistance, Dur: dur, Easing: ease.InQuad}
}

func (a *SlideOut) TargetID() string  { return a.Target }
func (a *SlideOut) Duration() float64 { return a.Dur }

func (a *SlideOut) sample(t float64, set effectSet) {
	eff := set.effect(a.Target)
	p := progress(t, a.Dur, a.Easing)
	dx, dy := dirOffset(a.Dir, a.Distance)
	eff.DX += math.Round(dx * p)
	eff.DY += math.Round(dy * p)
}

// FadeIn interpolates the target's opacity from From to To (0 to 1 by
// default). The terminal opacity persists once finished.
type FadeIn struct {
	Target   string
	From, To float64
	Dur      float64
	Easing   Easing
}

// NewFadeIn creates a linear fade from transparent to opaque.
func NewFadeIn(target string, dur float64) *FadeIn {
	return &FadeIn{Target: target, From: 0, To: 1, Dur: dur}
}

func (a *FadeIn) TargetID() string  { return a.Target }
func (a *FadeIn) Duration() float64 { return a.Dur }

func (a *FadeIn) sample(t float64, set effectSet) {
	eff := set.effect(a.Target)
	p := progress(t, a.Dur, a.Easing)
	eff.Opacity = a.From + (a.To-a.From)*p
	eff.HasOpacity = true
}

// FadeOut interpolates the target's opacity from From to To (1 to 0 by
// default).
type FadeOut struct {
	Target   string
	From, To float64
	Dur      float64
	Easing   Easing
}

// NewFadeOut creates a linear fade from opaque to transparent.
func NewFadeOut(target string, dur float64) *FadeOut {
	return &FadeOut{Target: target, From: 1, To: 0, Dur: dur}
}

func (a *FadeOut) TargetID() string  { return a.Target }
func (a *FadeOut) Duration() float64 { return a.Dur }

func (a *FadeOut) sample(t float64, set effectSet) {
	eff := set.effect(a.Target)
	p := progress(t, a.Dur, a.Easing)
	eff.Opacity = a.From + (a.To-a.From)*p
	eff.HasOpacity = true
}

// Animate interpolates an arbitrary named numeric property between
// caller-given bounds. The properties "x" and "y" override the target's
// absolute position; "opacity" overrides its opacity; any other name is
// forwarded to the target component's PropertyTarget capability.
type Animate struct {
	Target   string
	Prop     string
	From, To float64
	Dur      float64
	Easing   Easing

	// Round truncates sampled values to whole numbers, for pixel
	// properties.
	Round bool
}

// NewAnimate creates a property animation from from to to over dur seconds.
func NewAnimate(target, prop string, from, to, dur float64, fn Easing) *Animate {
	return &Animate{Target: target, Prop: prop, From: from, To: to, Dur: dur, Easing: fn}
}

func (a *Animate) TargetID() string  { return a.Target }
func (a *Animate) Duration() float64 { return a.Dur }

func (a *Animate) sample(t float64, set effectSet) {
	p := progress(t, a.Dur, a.Easing)
	v := a.From + (a.To-a.From)*p
	if a.Round {
		v = math.Trunc(v)
	}
	set.effect(a.Target).setProp(a.Prop, v)
}

// GravityJump arcs the target up by Height pixels and back down along a
// projectile parabola: y(t) = v0*t - g*t²/2 with v0 and g solved so the
// peak lands exactly at t = Dur/2.
type GravityJump struct {
	Target string
	Height int
	Dur    float64
}

// NewGravityJump creates a jump of height pixels over dur seconds.
func NewGravityJump(target string, height int, dur float64) *GravityJump {
	return &GravityJump{Target: target, Height: height, Dur: dur}
}

func (a *GravityJump) TargetID() string  { return a.Target }
func (a *GravityJump) Duration() float64 { return a.Dur }

func (a *GravityJump) sample(t float64, set effectSet) {
	if a.Dur <= 0 {
		return
	}
	eff := set.effect(a.Target)
	tt := clampF(t, 0, a.Dur)
	v0 := 4 * float64(a.Height) / a.Dur
	g := 8 * float64(a.Height) / (a.Dur * a.Dur)
	displacement := v0*tt - 0.5*g*tt*tt
	// Screen Y grows downward, so an upward jump is a negative offset.
	eff.DY += math.Trunc(-displacement)
}

// GravityFallIn drops the target from FallDistance pixels above its resting
// position and bounces it to rest using restitution physics. Each bounce
// retains BounceCoef of the impact velocity; bounces stop after MaxBounces
// or when the rebound becomes negligible. The whole fall-and-bounce motion
// is scaled to fit Dur.
type GravityFallIn struct {
	Target       string
	FallDistance int
	Dur          float64
	BounceCoef   float64
	MaxBounces   int
	GravityConst float64

	// Derived bounce table, computed once from the parameters above.
	bounces   []bounceSpan
	timeScale float64
	resolved  bool
}

type bounceSpan struct {
	start, end float64
	velocity   float64
}

// NewGravityFallIn creates a fall-in over dur seconds with the default
// restitution of 0.5, three bounces, and gravity of 800 px/s².
func NewGravityFallIn(target string, fallDistance int, dur float64) *GravityFallIn {
	return &GravityFallIn{
		Target:       target,
		FallDistance: fallDistance,
		Dur:          dur,
		BounceCoef:   0.5,
		MaxBounces:   3,
		GravityConst: 800,
	}
}

func (a *GravityFallIn) TargetID() string  { return a.Target }
func (a *GravityFallIn) Duration() float64 { return a.Dur }

// resolve derives the bounce schedule. It depends only on the constructor
// parameters, so sampling stays a pure function of t.
func (a *GravityFallIn) resolve() {
	if a.resolved {
		return
	}
	a.resolved = true
	g := a.GravityConst
	if g <= 0 {
		g = 800
	}
	a.GravityConst = g
	if a.FallDistance < 0 {
		a.FallDistance = 0
	}

	fall := float64(a.FallDistance)
	vImpact := math.Sqrt(2 * g * fall)
	tFall := math.Sqrt(2 * fall / g)

	now := tFall
	v := vImpact
	for i := 0; i < a.MaxBounces; i++ {
		v *= a.BounceCoef
		if v < 1 {
			break
		}
		span := 2 * v / g
		a.bounces = append(a.bounces, bounceSpan{start: now, end: now + span, velocity: v})
		now += span
	}
	if now > 0 {
		a.timeScale = a.Dur / now
	} else {
		a.timeScale = 1
	}
}

func (a *GravityFallIn) sample(t float64, set effectSet) {
	a.resolve()
	if a.Dur <= 0 || a.timeScale <= 0 {
		return
	}
	eff := set.effect(a.Target)
	g := a.GravityConst
	fall := float64(a.FallDistance)
	tp := clampF(t, 0, a.Dur) / a.timeScale
	tFall := math.Sqrt(2 * fall / g)

	// Offset relative to the resting position: negative means above.
	var rel float64
	if tp <= tFall {
		rel = -fall + 0.5*g*tp*tp
	} else {
		rel = 0
		for _, b := range a.bounces {
			if tp >= b.start && tp <= b.end {
				tb := tp - b.start
				rel = -(b.velocity*tb - 0.5*g*tb*tb)
				break
			}
		}
	}
	eff.DY += math.Trunc(rel)
}

// --- Combinators ---

// Sequence runs its children back to back; total duration is the sum of the
// children's. Finished children keep contributing their terminal effect
// while the current child plays; children past the current one are not
// sampled yet.
type Sequence struct {
	anims []Animation
}

// NewSequence creates a sequence. Panics when called with no children.
func NewSequence(anims ...Animation) *Sequence {
	if len(anims) == 0 {
		panic("matrixscene: Sequence requires at least one animation")
	}
	return &Sequence{anims: anims}
}

func (a *Sequence) TargetID() string { return a.anims[0].TargetID() }

func (a *Sequence) Duration() float64 {
	var total float64
	for _, child := range a.anims {
		d := child.Duration()
		if math.IsInf(d, 1) {
			return d
		}
		total += d
	}
	return total
}

func (a *Sequence) sample(t float64, set effectSet) {
	elapsed := t
	for _, child := range a.anims {
		d := child.Duration()
		if elapsed < d || math.IsInf(d, 1) {
			child.sample(clampF(elapsed, 0, d), set)
			return
		}
		child.sample(d, set) // terminal value persists
		elapsed -= d
	}
}

// Parallel runs its children together; total duration is the maximum of the
// children's. Children that finish early hold their terminal value while
// the rest play out.
type Parallel struct {
	anims []Animation
}

// NewParallel creates a parallel group. Panics when called with no
// children.
func NewParallel(anims ...Animation) *Parallel {
	if len(anims) == 0 {
		panic("matrixscene: Parallel requires at least one animation")
	}
	return &Parallel{anims: anims}
}

func (a *Parallel) TargetID() string { return a.anims[0].TargetID() }

func (a *Parallel) Duration() float64 {
	var max float64
	for _, child := range a.anims {
		if d := child.Duration(); d > max {
			max = d
		}
	}
	return max
}

func (a *Parallel) sample(t float64, set effectSet) {
	for _, child := range a.anims {
		child.sample(clampF(t, 0, child.Duration()), set)
	}
}

// Loop re-triggers its child on finish: exactly Count times when counted,
// forever when Count is zero. Only a counted Loop ever reports finished;
// once it does, sampling holds the child's terminal value.
type Loop struct {
	anim  Animation
	count int // 0 = unbounded
}

// NewLoop creates an unbounded loop of child.
func NewLoop(child Animation) *Loop {
	return &Loop{anim: child}
}

// NewLoopCount creates a loop that runs child exactly count times.
func NewLoopCount(child Animation, count int) *Loop {
	return &Loop{anim: child, count: count}
}

func (a *Loop) TargetID() string { return a.anim.TargetID() }

func (a *Loop) Duration() float64 {
	if a.count == 0 {
		return math.Inf(1)
	}
	return a.anim.Duration() * float64(a.count)
}

func (a *Loop) sample(t float64, set effectSet) {
	d := a.anim.Duration()
	if d <= 0 {
		a.anim.sample(0, set)
		return
	}
	if a.count > 0 && t >= d*float64(a.count) {
		a.anim.sample(d, set)
		return
	}
	a.anim.sample(math.Mod(clampF(t, 0, math.Inf(1)), d), set)
}

// --- Scheduling ---

// ScheduledAnimation pairs an animation with its start time relative to the
// owning phase.
type ScheduledAnimation struct {
	Start float64
	Anim  Animation
}

// The bulk helpers cycle directions so grouped children enter and leave
// from alternating edges.
var slideInDirections = []Direction{DirLeft, DirTop, DirRight, DirBottom}
var slideOutDirections = []Direction{DirLeft, DirBottom, DirRight, DirTop}

// SlideInAll builds slide-in entries for several targets at a shared start
// time, cycling entry directions.
func SlideInAll(targets []string, start, dur float64) []ScheduledAnimation {
	out := make([]ScheduledAnimation, len(targets))
	for i, id := range targets {
		anim := NewSlideIn(id, slideInDirections[i%len(slideInDirections)], dur)
		out[i] = ScheduledAnimation{Start: start, Anim: anim}
	}
	return out
}

// SlideOutAll builds slide-out entries for several targets, cycling exit
// directions.
func SlideOutAll(targets []string, start, dur float64) []ScheduledAnimation {
	out := make([]ScheduledAnimation, len(targets))
	for i, id := range targets {
		anim := NewSlideOut(id, slideOutDirections[i%len(slideOutDirections)], dur)
		out[i] = ScheduledAnimation{Start: start, Anim: anim}
	}
	return out
}

// FadeInAll builds fade-in entries for several targets.
func FadeInAll(targets []string, start, dur float64) []ScheduledAnimation {
	out := make([]ScheduledAnimation, len(targets))
	for i, id := range targets {
		out[i] = ScheduledAnimation{Start: start, Anim: NewFadeIn(id, dur)}
	}
	return out
}

// FadeOutAll builds fade-out entries for several targets.
func FadeOutAll(targets []string, start, dur float64) []ScheduledAnimation {
	out := make([]ScheduledAnimation, len(targets))
	for i, id := range targets {
		out[i] = ScheduledAnimation{Start: start, Anim: NewFadeOut(id, dur)}
	}
	return out
}
