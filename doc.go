// Package recdeck is a small retained-mode 2D scene engine for [Ebitengine]
// that hosts the animated explainers of a slide deck on recommendation
// systems.
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]; children inherit their parent's translation, scale and
// alpha. A node draws one closed [Shape]: circle, rect, line or text.
//
//	scene := recdeck.NewScene(640, 480)
//	dot := recdeck.NewCircle("user", 120, 130, 20, recdeck.Hex(0x4299e1))
//	scene.Root().AddChild(dot)
//
// # Animation
//
// Field animation uses tween groups backed by [gween]:
//
//	tw := recdeck.TweenAlpha(dot, 0.3, 0.2, ease.Linear)
//
// Multi-step sequences are expressed as a [Timeline] of delayed mutations.
// A controller owns its timelines, advances them from the scene's update
// hook, and calls [Timeline.Cancel] to abandon everything in flight.
//
//	var tl recdeck.Timeline
//	tl.After(150*time.Millisecond, func() { tl.Play(recdeck.TweenAlpha(dot, 1, 0.3, ease.Linear)) })
//	scene.SetUpdateFunc(func(dt float32) error { tl.Update(dt); return nil })
//
// # Running
//
// [Run] opens a window. Headless runs call [Scene.Update] directly, inject
// pointer input with [Scene.InjectMove] and friends, and export the tree
// with [Scene.WriteSVG].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package recdeck
