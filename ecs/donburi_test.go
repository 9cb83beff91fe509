package ecs

import (
	"math/rand/v2"
	"testing"

	"github.com/phanxgames/placard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store placard.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []placard.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e placard.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(placard.InteractionEvent{
		Type:    placard.EventPointerDown,
		NoteID:  42,
		ScreenX: 100,
		ScreenY: 200,
		Button:  placard.MouseButtonLeft,
	})
	store.EmitEvent(placard.InteractionEvent{
		Type:   placard.EventDrag,
		DeltaX: 3,
		DeltaY: -2,
	})

	// Events are queued, process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != placard.EventPointerDown || e0.NoteID != 42 {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.ScreenX != 100 || e0.ScreenY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.ScreenX, e0.ScreenY)
	}
	e1 := received[1]
	if e1.Type != placard.EventDrag || e1.DeltaX != 3 || e1.DeltaY != -2 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e placard.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e placard.InteractionEvent) {
		count2++
	})

	store.EmitEvent(placard.InteractionEvent{Type: placard.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiStore_LifecycleMirror(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var kinds []placard.LifecycleType
	LifecycleEventType.Subscribe(world, func(w donburi.World, e placard.LifecycleEvent) {
		kinds = append(kinds, e.Type)
	})

	store.EmitLifecycle(placard.LifecycleEvent{
		Type: placard.EntityCreated, NoteID: 7, EntityID: 70,
		Text: "milk", Position: placard.Vec3{X: 1, Y: 2, Z: 3},
	})
	e, ok := store.Entity(7)
	if !ok {
		t.Fatal("created note not mirrored")
	}
	note := NoteComponent.Get(world.Entry(e))
	if note.Text != "milk" || note.EntityID != 70 {
		t.Errorf("mirrored note = %+v", *note)
	}

	store.EmitLifecycle(placard.LifecycleEvent{
		Type: placard.EntityMoved, NoteID: 7, Position: placard.Vec3{X: 9},
	})
	if got := NoteComponent.Get(world.Entry(e)).Position; got != (placard.Vec3{X: 9}) {
		t.Errorf("position after move = %v", got)
	}

	store.EmitLifecycle(placard.LifecycleEvent{Type: placard.EntityDestroyed, NoteID: 7})
	if _, ok := store.Entity(7); ok {
		t.Error("destroyed note still mirrored")
	}
	if n := len(Notes(world)); n != 0 {
		t.Errorf("Notes = %d, want 0", n)
	}

	LifecycleEventType.ProcessEvents(world)
	want := []placard.LifecycleType{placard.EntityCreated, placard.EntityMoved, placard.EntityDestroyed}
	if len(kinds) != len(want) {
		t.Fatalf("lifecycle events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestDonburiStore_RecreateReplacesMirror(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	store.EmitLifecycle(placard.LifecycleEvent{Type: placard.EntityCreated, NoteID: 1, EntityID: 10})
	store.EmitLifecycle(placard.LifecycleEvent{Type: placard.EntityCreated, NoteID: 1, EntityID: 11})

	notes := Notes(world)
	if len(notes) != 1 {
		t.Fatalf("Notes = %d, want 1", len(notes))
	}
	if notes[0].EntityID != 11 {
		t.Errorf("EntityID = %d, want 11", notes[0].EntityID)
	}
}

func TestDonburiStore_FollowsBoard(t *testing.T) {
	cfg := placard.DefaultConfig()
	cfg.Spawn.Duration = 0
	board := placard.NewBoard(cfg, placard.MonoFont{Advance: 8, Height: 16},
		placard.WithStore(placard.NewNoteStore(cfg.Placement, rand.New(rand.NewPCG(1, 2)))))

	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	board.Scene().SetEntityStore(store)

	a, _ := board.CreateNote("alpha")
	if _, err := board.CreateNote("beta"); err != nil {
		t.Fatal(err)
	}
	board.Update()

	if n := len(Notes(world)); n != 2 {
		t.Fatalf("Notes = %d, want 2", n)
	}
	e, ok := store.Entity(a)
	if !ok {
		t.Fatal("alpha not mirrored")
	}
	if got := NoteComponent.Get(world.Entry(e)).Text; got != "alpha" {
		t.Errorf("Text = %q, want alpha", got)
	}

	board.ClearAll()
	board.Update()
	if n := len(Notes(world)); n != 0 {
		t.Errorf("Notes after clear = %d, want 0", n)
	}
}
