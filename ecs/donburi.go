package ecs

import (
	"github.com/phanxgames/placard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType is the Donburi event type for placard interaction
// events. Subscribe to it in ECS systems to receive pointer and drag events.
var InteractionEventType = events.NewEventType[placard.InteractionEvent]()

// LifecycleEventType is the Donburi event type for placard entity lifecycle
// events.
var LifecycleEventType = events.NewEventType[placard.LifecycleEvent]()

// Note is the component mirrored for every live placard.
type Note struct {
	ID       placard.NoteID
	EntityID uint32 // scene node ID of the placard
	Text     string
	Position placard.Vec3
}

// NoteComponent is the Donburi component type holding Note.
var NoteComponent = donburi.NewComponentType[Note]()

// noteQuery matches every mirrored note.
var noteQuery = donburi.NewQuery(filter.Contains(NoteComponent))

// DonburiStore is a placard.EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[placard.NoteID]donburi.Entity
}

// NewDonburiStore creates a store publishing into world. Events are queued;
// consume them with Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:    world,
		entities: make(map[placard.NoteID]donburi.Entity),
	}
}

// EmitEvent publishes an interaction event.
func (s *DonburiStore) EmitEvent(event placard.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// EmitLifecycle updates the note mirror and publishes the event.
func (s *DonburiStore) EmitLifecycle(event placard.LifecycleEvent) {
	switch event.Type {
	case placard.EntityCreated:
		if e, ok := s.entities[event.NoteID]; ok && s.world.Valid(e) {
			s.world.Remove(e)
		}
		e := s.world.Create(NoteComponent)
		NoteComponent.SetValue(s.world.Entry(e), Note{
			ID:       event.NoteID,
			EntityID: event.EntityID,
			Text:     event.Text,
			Position: event.Position,
		})
		s.entities[event.NoteID] = e
	case placard.EntityDestroyed:
		if e, ok := s.entities[event.NoteID]; ok {
			if s.world.Valid(e) {
				s.world.Remove(e)
			}
			delete(s.entities, event.NoteID)
		}
	case placard.EntityMoved:
		if e, ok := s.entities[event.NoteID]; ok && s.world.Valid(e) {
			NoteComponent.Get(s.world.Entry(e)).Position = event.Position
		}
	}
	LifecycleEventType.Publish(s.world, event)
}

// Entity returns the Donburi entity mirroring a note.
func (s *DonburiStore) Entity(id placard.NoteID) (donburi.Entity, bool) {
	e, ok := s.entities[id]
	if !ok || !s.world.Valid(e) {
		var none donburi.Entity
		return none, false
	}
	return e, true
}

// Notes returns the mirrored notes of world, in no particular order.
func Notes(world donburi.World) []Note {
	notes := make([]Note, 0, noteQuery.Count(world))
	noteQuery.Each(world, func(entry *donburi.Entry) {
		notes = append(notes, *NoteComponent.Get(entry))
	})
	return notes
}
