// Package ecs bridges placard's scene events into a [Donburi] world.
//
// [NewDonburiStore] publishes interaction events (pointer, click, drag) to
// [InteractionEventType] and note lifecycle events (created, destroyed,
// moved) to [LifecycleEventType]. It also mirrors every live note as a
// Donburi entity carrying a [Note] component, so ECS systems can query the
// wall without touching the scene graph.
//
// Usage:
//
//	world := donburi.NewWorld()
//	store := ecs.NewDonburiStore(world)
//	board.Scene().SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
