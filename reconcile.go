package placard

import (
	"go.uber.org/zap"
)

// spawnStartScale is the initial scale of the pop-in animation. Kept above
// zero so transforms stay invertible.
const spawnStartScale = 0.01

// ReconcileStats summarises one reconcile pass.
type ReconcileStats struct {
	Created   int // entities built for records without a live visual
	Destroyed int // orphans removed
	Pruned    int // index entries dropped because their node was destroyed elsewhere
	Strays    int // unindexed tagged nodes purged by the debug audit
}

// Changed reports whether the pass mutated the scene graph.
func (st ReconcileStats) Changed() bool {
	return st.Created+st.Destroyed+st.Strays > 0
}

// Reconciler keeps the scene graph in step with a NoteStore. It is the only
// code that creates or destroys tagged placards. Call Reconcile once per frame.
type Reconciler struct {
	store     *NoteStore
	scene     *Scene
	factory   *Factory
	substrate Substrate
	spawn     SpawnConfig

	// layer is the container all placards are attached to.
	layer *Node
	// index maps note identity to the live placard representing it.
	index map[NoteID]*Node

	last ReconcileStats
}

// NewReconciler creates a reconciler attaching placards to a new "notes"
// container under the scene root.
func NewReconciler(store *NoteStore, scene *Scene, factory *Factory, spawn SpawnConfig) *Reconciler {
	layer := NewContainer("notes")
	layer.Interactable = true
	scene.Root().AddChild(layer)
	return &Reconciler{
		store:     store,
		scene:     scene,
		factory:   factory,
		substrate: scene,
		spawn:     spawn,
		layer:     layer,
		index:     make(map[NoteID]*Node),
	}
}

// SetSubstrate replaces the outbound surface (the scene by default).
func (r *Reconciler) SetSubstrate(sub Substrate) {
	r.substrate = sub
}

// Layer returns the container placards are attached to.
func (r *Reconciler) Layer() *Node {
	return r.layer
}

// Entity resolves a note to its live placard.
func (r *Reconciler) Entity(id NoteID) (*Node, bool) {
	n, ok := r.index[id]
	if !ok || !r.alive(n) {
		return nil, false
	}
	return n, true
}

// Len returns the number of indexed placards.
func (r *Reconciler) Len() int {
	return len(r.index)
}

// LastStats returns the stats of the most recent pass.
func (r *Reconciler) LastStats() ReconcileStats {
	return r.last
}

// alive reports whether n is still a usable placard in this reconciler's layer.
func (r *Reconciler) alive(n *Node) bool {
	return n != nil && !n.disposed && n.Parent == r.layer
}

// Reconcile converges the scene graph to the store: orphans are removed and
// every record without a live visual gets one. Records whose visual is
// already live are left untouched. Running it twice without an intervening
// command changes nothing.
func (r *Reconciler) Reconcile() ReconcileStats {
	var st ReconcileStats

	// Forget entities destroyed behind our back.
	for id, n := range r.index {
		if !r.alive(n) {
			delete(r.index, id)
			st.Pruned++
		}
	}

	// Orphans: indexed entities whose record is gone.
	for id, n := range r.index {
		if r.store.Contains(id) {
			continue
		}
		r.destroy(n)
		delete(r.index, id)
		st.Destroyed++
	}

	// Missing: records without a live, matching visual, in store order.
	for _, rec := range r.store.Records() {
		if rec.Visual != 0 {
			if n, ok := r.index[rec.ID]; ok && n.ID == rec.Visual {
				continue
			}
		}
		if stale, ok := r.index[rec.ID]; ok {
			r.destroy(stale)
			st.Destroyed++
		}
		r.create(rec)
		st.Created++
	}

	if r.scene.debug {
		st.Strays = r.purgeStrays()
		debugCheckLayer(r.scene.logger, r.layer)
	}

	r.last = st
	if st.Changed() || st.Pruned > 0 {
		r.scene.logger.Debug("reconciled",
			zap.Int("created", st.Created),
			zap.Int("destroyed", st.Destroyed),
			zap.Int("pruned", st.Pruned),
			zap.Int("strays", st.Strays),
			zap.Int("live", len(r.index)))
	}
	return st
}

// create builds, attaches and indexes the entity for rec.
func (r *Reconciler) create(rec NoteRecord) {
	n := r.factory.newEntity(rec)
	if r.spawn.Duration > 0 {
		n.SetScale(spawnStartScale, spawnStartScale, spawnStartScale)
		r.scene.AddTween(TweenScale(n, Vec3{1, 1, 1}, float32(r.spawn.Duration), EaseByName(r.spawn.Ease)))
	}
	r.layer.AddChild(n)
	r.substrate.AddEntity(n)
	r.index[rec.ID] = n
	r.store.bindVisual(rec.ID, n.ID)
}

// destroy retires n through the substrate and disposes it.
func (r *Reconciler) destroy(n *Node) {
	r.substrate.RemoveEntity(n)
	n.Dispose()
}

// DestroyAll removes every indexed entity. Records keep their stale Visual
// keys, so the next Reconcile rebuilds each one from the store.
func (r *Reconciler) DestroyAll() int {
	count := 0
	for id, n := range r.index {
		if r.alive(n) {
			r.destroy(n)
			count++
		}
		delete(r.index, id)
	}
	return count
}
