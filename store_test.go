package placard

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestNoteStoreCreate(t *testing.T) {
	cfg := testConfig()
	s := newTestStore(cfg)

	id1, err := s.Create("first")
	if err != nil {
		t.Fatal(err)
	}
	id2, _ := s.Create("second")
	if id1 == 0 || id2 == 0 || id1 == id2 {
		t.Errorf("ids = %d, %d; want distinct and non-zero", id1, id2)
	}
	if id2 <= id1 {
		t.Errorf("ids not increasing: %d then %d", id1, id2)
	}

	recs := s.Records()
	if len(recs) != 2 || recs[0].ID != id1 || recs[1].ID != id2 {
		t.Fatalf("Records = %+v", recs)
	}
	if recs[0].Visual != 0 {
		t.Errorf("new record has Visual %d", recs[0].Visual)
	}
}

func TestNoteStoreCreateEmpty(t *testing.T) {
	s := newTestStore(testConfig())
	if s.CanCreate("") {
		t.Error("CanCreate(\"\") = true")
	}
	if !s.CanCreate(" ") {
		t.Error("CanCreate(\" \") = false; only empty text is rejected")
	}
	if _, err := s.Create(""); !errors.Is(err, ErrEmptyText) {
		t.Errorf("Create(\"\") err = %v, want ErrEmptyText", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after rejected create", s.Len())
	}
}

func TestNoteStorePositionsInsideVolume(t *testing.T) {
	vol := Box{Min: Vec3{-10, -20, -30}, Max: Vec3{10, 20, 30}}
	s := NewNoteStore(vol, rand.New(rand.NewPCG(7, 7)))
	for range 200 {
		id, _ := s.Create("n")
		rec, _ := s.Get(id)
		if !vol.Contains(rec.Position) {
			t.Fatalf("position %v outside %v", rec.Position, vol)
		}
	}
}

func TestNoteStoreDegenerateVolume(t *testing.T) {
	vol := Box{Min: Vec3{1, 2, 3}, Max: Vec3{1, 2, 3}}
	s := NewNoteStore(vol, nil)
	id, _ := s.Create("point")
	if rec, _ := s.Get(id); rec.Position != (Vec3{1, 2, 3}) {
		t.Errorf("position = %v, want (1,2,3)", rec.Position)
	}
}

func TestNoteStoreDeterministicWithSeed(t *testing.T) {
	vol := testConfig().Placement
	a := NewNoteStore(vol, rand.New(rand.NewPCG(3, 4)))
	b := NewNoteStore(vol, rand.New(rand.NewPCG(3, 4)))
	ia, _ := a.Create("x")
	ib, _ := b.Create("x")
	ra, _ := a.Get(ia)
	rb, _ := b.Get(ib)
	if ra.Position != rb.Position {
		t.Errorf("same seed gave %v and %v", ra.Position, rb.Position)
	}
}

func TestNoteStoreClear(t *testing.T) {
	s := newTestStore(testConfig())
	id, _ := s.Create("gone")
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len = %d after Clear", s.Len())
	}
	if s.Contains(id) {
		t.Error("cleared ID still resolves")
	}
	next, _ := s.Create("new")
	if next == id {
		t.Error("ID reused after Clear")
	}
}

func TestNoteStoreMove(t *testing.T) {
	s := newTestStore(testConfig())
	id, _ := s.Create("mobile")

	tests := []struct {
		name string
		id   NoteID
		pos  Vec3
		want bool
	}{
		{"existing", id, Vec3{1, 2, 3}, true},
		{"outside volume is allowed", id, Vec3{9999, 0, 0}, true},
		{"unknown", id + 1000, Vec3{4, 5, 6}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Move(tt.id, tt.pos); got != tt.want {
				t.Errorf("Move = %v, want %v", got, tt.want)
			}
			if tt.want {
				if rec, _ := s.Get(tt.id); rec.Position != tt.pos {
					t.Errorf("position = %v, want %v", rec.Position, tt.pos)
				}
			}
		})
	}
	if s.Len() != 1 {
		t.Errorf("Move on unknown ID changed Len to %d", s.Len())
	}
}

func TestNoteStoreRemoveKeepsOrder(t *testing.T) {
	s := newTestStore(testConfig())
	a, _ := s.Create("a")
	b, _ := s.Create("b")
	c, _ := s.Create("c")

	if !s.Remove(b) {
		t.Fatal("Remove(b) = false")
	}
	if s.Remove(b) {
		t.Error("second Remove(b) = true")
	}
	recs := s.Records()
	if len(recs) != 2 || recs[0].ID != a || recs[1].ID != c {
		t.Errorf("Records = %+v, want a then c", recs)
	}
}

func TestNoteStoreRecordsAreCopies(t *testing.T) {
	s := newTestStore(testConfig())
	id, _ := s.Create("original")
	recs := s.Records()
	recs[0].Text = "mutated"
	recs[0].Position = Vec3{X: 42}

	rec, _ := s.Get(id)
	if rec.Text != "original" || rec.Position.X == 42 {
		t.Error("Records snapshot aliases the store")
	}
}

func TestNoteStoreBindVisual(t *testing.T) {
	s := newTestStore(testConfig())
	id, _ := s.Create("bound")
	s.bindVisual(id, 77)
	s.bindVisual(id+1, 88) // unknown, ignored

	if rec, _ := s.Get(id); rec.Visual != 77 {
		t.Errorf("Visual = %d, want 77", rec.Visual)
	}
}
