package ecs

import (
	"github.com/phanxgames/recdeck"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ViewChanged announces that a container became the active view.
type ViewChanged struct {
	Slide int    // index of the newly active slide
	View  string // container id of the controller shown on it
}

// ViewChangedEvent is the Donburi event type for active-view changes.
var ViewChangedEvent = events.NewEventType[ViewChanged]()

// InteractionEventType is the Donburi event type for scene interaction
// events (down, up, click, enter, leave, drag).
var InteractionEventType = events.NewEventType[recdeck.InteractionEvent]()

// Bus wraps the Donburi world the events live on.
type Bus struct {
	world donburi.World
}

// NewBus creates a bus on a fresh Donburi world.
func NewBus() *Bus {
	return &Bus{world: donburi.NewWorld()}
}

// NewBusWithWorld creates a bus on an existing world.
func NewBusWithWorld(world donburi.World) *Bus {
	return &Bus{world: world}
}

// World returns the underlying Donburi world.
func (b *Bus) World() donburi.World {
	return b.world
}

// EmitEvent implements recdeck.EventSink.
func (b *Bus) EmitEvent(event recdeck.InteractionEvent) {
	InteractionEventType.Publish(b.world, event)
}

// PublishViewChanged queues an active-view change.
func (b *Bus) PublishViewChanged(v ViewChanged) {
	ViewChangedEvent.Publish(b.world, v)
}

// OnViewChanged subscribes fn to active-view changes.
func (b *Bus) OnViewChanged(fn func(ViewChanged)) {
	ViewChangedEvent.Subscribe(b.world, func(_ donburi.World, v ViewChanged) {
		fn(v)
	})
}

// OnInteraction subscribes fn to scene interaction events.
func (b *Bus) OnInteraction(fn func(recdeck.InteractionEvent)) {
	InteractionEventType.Subscribe(b.world, func(_ donburi.World, e recdeck.InteractionEvent) {
		fn(e)
	})
}

// ProcessEvents delivers every queued event to its subscribers.
func (b *Bus) ProcessEvents() {
	events.ProcessAllEvents(b.world)
}
