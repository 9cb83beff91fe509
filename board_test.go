package placard

import (
	"slices"
	"testing"
)

func TestBoardCommandsApplyInOrder(t *testing.T) {
	tests := []struct {
		name  string
		cmds  []Command
		texts []string
	}{
		{"create", []Command{CreateNoteCommand{"a"}}, []string{"a"}},
		{"create then clear", []Command{CreateNoteCommand{"a"}, ClearAllCommand{}}, nil},
		{"clear then create", []Command{ClearAllCommand{}, CreateNoteCommand{"b"}}, []string{"b"}},
		{"empty text rejected", []Command{CreateNoteCommand{""}, CreateNoteCommand{"c"}}, []string{"c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t)
			for _, c := range tt.cmds {
				b.Enqueue(c)
			}
			b.Update()

			var got []string
			for _, rec := range b.Store().Records() {
				got = append(got, rec.Text)
			}
			if !slices.Equal(got, tt.texts) {
				t.Errorf("notes = %v, want %v", got, tt.texts)
			}
			if b.Reconciler().Len() != len(tt.texts) {
				t.Errorf("placards = %d, want %d", b.Reconciler().Len(), len(tt.texts))
			}
		})
	}
}

func TestBoardCommandsWaitForUpdate(t *testing.T) {
	b := newTestBoard(t)
	b.Enqueue(CreateNoteCommand{"later"})
	if b.Store().Len() != 0 {
		t.Fatal("command applied before Update")
	}
	b.Update()
	if b.Store().Len() != 1 {
		t.Errorf("notes = %d, want 1", b.Store().Len())
	}
	if len(b.queue) != 0 {
		t.Error("queue not drained")
	}
}

func TestDeleteNoteCommand(t *testing.T) {
	b := newTestBoard(t)
	keep, _ := b.CreateNote("keep")
	gone, _ := b.CreateNote("gone")
	b.Update()

	b.Enqueue(DeleteNoteCommand{ID: gone})
	b.Enqueue(DeleteNoteCommand{ID: gone}) // already removed, ignored
	b.Update()

	if b.Store().Contains(gone) || !b.Store().Contains(keep) {
		t.Error("wrong note removed")
	}
	if _, ok := b.Reconciler().Entity(gone); ok {
		t.Error("placard of deleted note still indexed")
	}
}

func TestMoveNoteCommand(t *testing.T) {
	b := newTestBoard(t)
	id, _ := b.CreateNote("mover")
	b.Update()
	rec := recordSubstrate(b)

	to := Vec3{10, -20, 30}
	b.Enqueue(MoveNoteCommand{ID: id, Position: to})
	b.Enqueue(MoveNoteCommand{ID: 9999, Position: to})
	b.Update()

	got, _ := b.Store().Get(id)
	if got.Position != to {
		t.Errorf("stored position = %v, want %v", got.Position, to)
	}
	n, _ := b.Reconciler().Entity(id)
	if n.Position() != to {
		t.Errorf("placard position = %v, want %v", n.Position(), to)
	}
	if rec.count("move") != 1 || rec.count("add")+rec.count("remove") != 0 {
		t.Errorf("substrate ops = %+v", rec.ops)
	}
}

func TestBoardLifecycleEvents(t *testing.T) {
	b := newTestBoard(t)
	store := &recordingEntityStore{}
	b.Scene().SetEntityStore(store)

	id, _ := b.CreateNote("hello")
	b.Update()
	b.Enqueue(MoveNoteCommand{ID: id, Position: Vec3{X: 5}})
	b.Update()
	b.ClearAll()
	b.Update()

	want := []LifecycleType{EntityCreated, EntityMoved, EntityDestroyed}
	if len(store.lifecycle) != len(want) {
		t.Fatalf("lifecycle events = %+v", store.lifecycle)
	}
	for i, e := range store.lifecycle {
		if e.Type != want[i] || e.NoteID != id {
			t.Errorf("event %d = %+v, want type %d for note %d", i, e, want[i], id)
		}
	}
	if store.lifecycle[0].Text != "hello" {
		t.Errorf("created text = %q", store.lifecycle[0].Text)
	}
	if store.lifecycle[1].Position != (Vec3{X: 5}) {
		t.Errorf("moved position = %v", store.lifecycle[1].Position)
	}
}

func TestSetSubstrateRoutesDrag(t *testing.T) {
	b := newTestBoard(t)
	id := placeAt(t, b, "drag me", Vec3{})
	b.Update()
	rec := recordSubstrate(b)

	n, _ := b.Reconciler().Entity(id)
	if !b.BeginDrag(n) {
		t.Fatal("BeginDrag refused a live placard")
	}
	b.UpdateDrag(n, Vec3{X: 40})
	b.EndDrag()

	if rec.count("move") != 1 {
		t.Errorf("moves through substrate = %d, want 1", rec.count("move"))
	}
}

func TestNewBoardDefaults(t *testing.T) {
	b := NewBoard(nil, nil)
	if b.Config() == nil || b.Store() == nil || b.Logger() == nil {
		t.Fatal("NewBoard(nil, nil) left dependencies unset")
	}
	if b.Scene().Camera().Viewport.Width != float64(b.Config().Window.Width) {
		t.Error("viewport does not follow the window size")
	}
	if b.ScriptRunner() != nil {
		t.Error("runner attached by default")
	}
}
