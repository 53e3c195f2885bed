// Package scrollstage is a scroll-driven 3D animation engine for [Ebitengine].
//
// A set of named meshes sits inside a group node. As the page scrolls, the
// meshes grow in a staggered sequence, the group travels and turns, and the
// mouse tilts the whole model. Hovering a mesh swells it smoothly.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window, a
// scroll tracker, and a game loop for you:
//
//	scene := scrollstage.NewScene()
//	set := scrollstage.VoxelMeshSet([]string{"##", "#."}, 1)
//	stage, err := scrollstage.NewStage(set, scrollstage.DefaultConfig(), scrollstage.DefaultStageLayout())
//	if err != nil {
//		log.Fatal(err)
//	}
//	stage.Attach(scene, nil)
//	scrollstage.Run(scene, scrollstage.RunConfig{Title: "Stage", Width: 1280, Height: 720})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Per-frame pipeline
//
// Each [Scene.Update] refreshes world transforms, hit tests the pointer
// (firing leave, enter, and move handlers), advances the [ScrollTracker],
// and then runs the [Scene.OnFrame] handlers. An attached [Animator] samples
// scroll progress there and calls [Animator.Frame], which in order clamps
// progress, steps the mouse [Smoother], steps the [HoverScales], derives
// the tilt, writes every mesh scale, and writes the group pose.
//
// # Timeline
//
// Mesh scale follows [Timeline.BaseScale]: collapsed until 0.1, a staggered
// grow to full size until 0.35, then full size. The group follows
// [Timeline.MotionAt]: at rest until 0.35, a travel to the right until 0.65,
// then a final sweep back. The sweep and the post-hold scale behavior are
// selectable through [Config].
//
// # Rendering
//
// Meshes are convex-faced [Geometry] projected through a perspective
// [Camera]. Faces are back-face culled, flat shaded, sorted back to front,
// and drawn with outlined edges in one triangle batch.
//
// [Ebitengine]: https://ebitengine.org
package scrollstage
