package ecs

import (
	"github.com/phanxgames/scrollstage"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for scrollstage interaction
// events.
var InteractionEventType = events.NewEventType[scrollstage.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) scrollstage.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event scrollstage.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// HoverData mirrors the mesh under the pointer.
type HoverData struct {
	Hovering bool
	EntityID uint32
	Name     string
	// Normalized is the last pointer position in [-1, 1], Y up.
	Normalized scrollstage.Vec2
}

// Hover is the component written by TrackHover.
var Hover = donburi.NewComponentType[HoverData]()

// TrackHover creates an entity carrying a Hover component and subscribes a
// handler that keeps it current. Values change when events are processed.
func TrackHover(world donburi.World) donburi.Entity {
	e := world.Create(Hover)
	InteractionEventType.Subscribe(world, func(w donburi.World, ev scrollstage.InteractionEvent) {
		if !w.Valid(e) {
			return
		}
		entry := w.Entry(e)
		cur := Hover.Get(entry)
		switch ev.Type {
		case scrollstage.EventPointerEnter, scrollstage.EventPointerMove:
			Hover.SetValue(entry, HoverData{
				Hovering:   true,
				EntityID:   ev.EntityID,
				Name:       ev.Name,
				Normalized: ev.Normalized,
			})
		case scrollstage.EventPointerLeave:
			if cur.EntityID == ev.EntityID {
				Hover.SetValue(entry, HoverData{Normalized: ev.Normalized})
			}
		}
	})
	return e
}
