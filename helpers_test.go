package placard

import (
	"math"
	"math/rand/v2"
	"testing"
)

// testFont is a fixed-advance font so label layout is deterministic.
var testFont = MonoFont{Advance: 8, Height: 16}

// testConfig returns the defaults without the spawn animation, so placards
// are full size as soon as they exist.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Spawn.Duration = 0
	return cfg
}

func newTestStore(cfg *Config) *NoteStore {
	return NewNoteStore(cfg.Placement, rand.New(rand.NewPCG(1, 2)))
}

func newTestBoard(t testing.TB) *Board {
	t.Helper()
	cfg := testConfig()
	return NewBoard(cfg, testFont, WithStore(newTestStore(cfg)))
}

// substrateOp is one call observed by recordingSubstrate.
type substrateOp struct {
	kind string // add, remove, move
	note NoteID
	pos  Vec3
}

// recordingSubstrate records every call and forwards it to next.
type recordingSubstrate struct {
	next Substrate
	ops  []substrateOp
}

func (r *recordingSubstrate) AddEntity(n *Node) {
	r.ops = append(r.ops, substrateOp{kind: "add", note: n.NoteID, pos: n.Position()})
	r.next.AddEntity(n)
}

func (r *recordingSubstrate) RemoveEntity(n *Node) {
	r.ops = append(r.ops, substrateOp{kind: "remove", note: n.NoteID})
	r.next.RemoveEntity(n)
}

func (r *recordingSubstrate) SetTransform(n *Node, pos Vec3) {
	r.ops = append(r.ops, substrateOp{kind: "move", note: n.NoteID, pos: pos})
	r.next.SetTransform(n, pos)
}

func (r *recordingSubstrate) count(kind string) int {
	c := 0
	for _, op := range r.ops {
		if op.kind == kind {
			c++
		}
	}
	return c
}

func recordSubstrate(b *Board) *recordingSubstrate {
	rec := &recordingSubstrate{next: b.Scene()}
	b.SetSubstrate(rec)
	return rec
}

// recordingEntityStore collects events emitted by a scene.
type recordingEntityStore struct {
	events    []InteractionEvent
	lifecycle []LifecycleEvent
}

func (s *recordingEntityStore) EmitEvent(e InteractionEvent) { s.events = append(s.events, e) }
func (s *recordingEntityStore) EmitLifecycle(e LifecycleEvent) { s.lifecycle = append(s.lifecycle, e) }

func (s *recordingEntityStore) eventTypes() []EventType {
	out := make([]EventType, len(s.events))
	for i, e := range s.events {
		out[i] = e.Type
	}
	return out
}

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecApprox(a, b Vec3, eps float64) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps) && approxEqual(a.Z, b.Z, eps)
}

// tagged returns all tagged placards found by walking the whole tree.
func tagged(root *Node) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Tagged() {
			out = append(out, n)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// placeAt creates a note and pins it to pos before its first reconcile.
func placeAt(t testing.TB, b *Board, text string, pos Vec3) NoteID {
	t.Helper()
	id, err := b.CreateNote(text)
	if err != nil {
		t.Fatalf("CreateNote(%q): %v", text, err)
	}
	b.Store().Move(id, pos)
	return id
}
