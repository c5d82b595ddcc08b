// Package matrixscene is a retained-mode scene composition and animation
// engine for small pixel displays: LED matrices, flip-dot panels, and
// terminal emulation of either.
//
// # Scenes and components
//
// Every visual element is a [Component] placed into a [Scene] under a
// string id. Components render into RGBA pixel [Buffer] values; the scene
// composites them back to front by z order onto a fixed-size canvas.
//
//	scene := matrixscene.NewScene(64, 32)
//	title := matrixscene.NewText("NOW PLAYING")
//	scene.AddChild("title", title, 2, 2)
//
// Built-in components cover text with auto-scrolling, progress bars,
// scrollbars, tables, images, and color filters. Containers are built from
// [Layout]: [NewVStack], [NewHStack], [NewGrid], [NewZStack], and
// [NewAbsolute].
//
// # Deterministic rendering
//
// Rendering is a pure function of time: [Scene.Render] at a given t always
// produces the same pixels for the same scene state. Animations are sampled
// at absolute time rather than stepped, so a dropped frame never changes
// where anything ends up. A per-component cache keyed by render box and a
// content epoch skips re-rasterizing anything that did not change.
//
// # Animations
//
// Leaf animations ([SlideIn], [SlideOut], [FadeIn], [FadeOut], [Animate],
// [GravityJump], [GravityFallIn]) compose through [Sequence], [Parallel]
// and [Loop]. Scenes group scheduled animations into named phases; the
// conventional entrance, idle and exit phases drive scene transitions.
//
//	scene.SetEntrance(matrixscene.SlideInAll([]string{"title", "bar"}, 0, 0.8))
//
// # Driving a display
//
// [Orchestrator] owns named scenes, switches between them with exit and
// entrance phases, and pushes frames to a [DisplayTarget] at a fixed rate:
//
//	orch := matrixscene.NewOrchestrator()
//	orch.AddScene("main", scene)
//	orch.TransitionTo("main")
//	orch.Run(ctx, display.NewTerminal(), 30)
//
// The display subpackage ships a tcell terminal target and an ebiten
// desktop window simulator.
package matrixscene
