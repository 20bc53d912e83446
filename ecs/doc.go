// Package ecs carries the deck's page-level event bus on a [Donburi] world.
//
// Two typed events travel on it: [ViewChangedEvent], published by the deck
// whenever a different slide becomes the active view, and
// [InteractionEventType], fed by a [recdeck.Scene] through the
// [recdeck.EventSink] bridge. Events are queued on publish and delivered by
// [Bus.ProcessEvents], which the deck calls once per frame.
//
// Usage:
//
//	bus := ecs.NewBus()
//	scene.SetEventSink(bus)
//	bus.OnViewChanged(func(v ecs.ViewChanged) { ... })
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
