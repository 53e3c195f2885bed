// Package ecs provides ECS adapters for scrollstage's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges pointer move,
// enter, and leave events into a [Donburi] world as typed events.
// Subscribe to [InteractionEventType] in your ECS systems to receive them,
// or call [TrackHover] to keep a singleton [HoverData] component current.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//	hover := ecs.TrackHover(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
