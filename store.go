package placard

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyText is returned by NoteStore.Create for empty note text. Controls
// should gate on CanCreate so this never surfaces to the user.
var ErrEmptyText = errors.New("placard: note text is empty")

// noteIDCounter is shared by all stores so IDs are never reused within the
// process (no atomic; placard is single-threaded).
var noteIDCounter NoteID

func nextNoteID() NoteID {
	noteIDCounter++
	return noteIDCounter
}

// NoteRecord is the authoritative state of one note.
type NoteRecord struct {
	ID       NoteID
	Text     string
	Position Vec3
	// Visual is the ID of the node currently representing this note, or 0.
	// It is a lookup key only; the reconciler resolves it to a live node.
	Visual uint32
}

// NoteStore is the ordered collection of note records. Records are kept in
// insertion order; lookups go through an ID-keyed index.
type NoteStore struct {
	order   []NoteID
	records map[NoteID]*NoteRecord
	volume  Box
	rng     *rand.Rand
}

// NewNoteStore creates an empty store placing new notes inside volume.
// rng may be nil, in which case a randomly seeded source is used.
func NewNoteStore(volume Box, rng *rand.Rand) *NoteStore {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &NoteStore{
		records: make(map[NoteID]*NoteRecord),
		volume:  volume,
		rng:     rng,
	}
}

// CanCreate reports whether Create would accept text. Controls use it to
// disable the create affordance.
func (s *NoteStore) CanCreate(text string) bool {
	return text != ""
}

// Create appends a note with a random position inside the placement volume
// and returns its fresh ID.
func (s *NoteStore) Create(text string) (NoteID, error) {
	if !s.CanCreate(text) {
		return 0, ErrEmptyText
	}
	rec := &NoteRecord{
		ID:       nextNoteID(),
		Text:     text,
		Position: s.randomPosition(),
	}
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return rec.ID, nil
}

// randomPosition samples each axis of the volume independently and uniformly.
func (s *NoteStore) randomPosition() Vec3 {
	axis := func(lo, hi float64) float64 {
		if hi <= lo {
			return lo
		}
		return lo + s.rng.Float64()*(hi-lo)
	}
	return Vec3{
		X: axis(s.volume.Min.X, s.volume.Max.X),
		Y: axis(s.volume.Min.Y, s.volume.Max.Y),
		Z: axis(s.volume.Min.Z, s.volume.Max.Z),
	}
}

// Clear removes every note. Previously issued IDs no longer resolve.
func (s *NoteStore) Clear() {
	clear(s.records)
	s.order = s.order[:0]
}

// Remove deletes a single note. Returns false if id is unknown.
func (s *NoteStore) Remove(id NoteID) bool {
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	for i, oid := range s.order {
		if oid == id {
			copy(s.order[i:], s.order[i+1:])
			s.order = s.order[:len(s.order)-1]
			break
		}
	}
	return true
}

// Move sets the position of a note. Unknown IDs are ignored and reported
// with false; a drag may outlive the note it started on.
func (s *NoteStore) Move(id NoteID, pos Vec3) bool {
	rec, ok := s.records[id]
	if !ok {
		return false
	}
	rec.Position = pos
	return true
}

// Get returns a copy of the record for id.
func (s *NoteStore) Get(id NoteID) (NoteRecord, bool) {
	rec, ok := s.records[id]
	if !ok {
		return NoteRecord{}, false
	}
	return *rec, true
}

// Contains reports whether id is a live note.
func (s *NoteStore) Contains(id NoteID) bool {
	_, ok := s.records[id]
	return ok
}

// Len returns the number of notes.
func (s *NoteStore) Len() int {
	return len(s.order)
}

// Records returns a snapshot of all notes in insertion order.
func (s *NoteStore) Records() []NoteRecord {
	out := make([]NoteRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.records[id])
	}
	return out
}

// bindVisual records the node now representing id. Unknown IDs are ignored.
func (s *NoteStore) bindVisual(id NoteID, nodeID uint32) {
	if rec, ok := s.records[id]; ok {
		rec.Visual = nodeID
	}
}
