package placard

import (
	"fmt"

	"go.uber.org/zap"
)

// AuditKind classifies an inconsistency between the store, the reconciler
// index and the scene tree.
type AuditKind uint8

const (
	AuditStray     AuditKind = iota // tagged placard in the tree that the index does not own
	AuditDuplicate                  // more than one tagged placard carries the same note ID
	AuditOrphan                     // indexed placard whose note is gone
	AuditUnbound                    // note without a live placard
)

func (k AuditKind) String() string {
	switch k {
	case AuditStray:
		return "stray"
	case AuditDuplicate:
		return "duplicate"
	case AuditOrphan:
		return "orphan"
	case AuditUnbound:
		return "unbound"
	default:
		return fmt.Sprintf("AuditKind(%d)", uint8(k))
	}
}

// AuditIssue is one inconsistency found by Audit.
type AuditIssue struct {
	Kind   AuditKind
	NoteID NoteID
	Node   *Node // nil for AuditUnbound
}

// Audit scans the whole scene tree and compares it with the index and the
// store. It does not modify anything. An empty result right after Reconcile
// means every note has exactly one placard and every placard has a note.
func (r *Reconciler) Audit() []AuditIssue {
	var issues []AuditIssue
	seen := make(map[NoteID]*Node)

	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Tagged() {
			if _, dup := seen[n.NoteID]; dup {
				issues = append(issues, AuditIssue{Kind: AuditDuplicate, NoteID: n.NoteID, Node: n})
			} else {
				seen[n.NoteID] = n
			}
			if r.index[n.NoteID] != n {
				issues = append(issues, AuditIssue{Kind: AuditStray, NoteID: n.NoteID, Node: n})
			} else if !r.store.Contains(n.NoteID) {
				issues = append(issues, AuditIssue{Kind: AuditOrphan, NoteID: n.NoteID, Node: n})
			}
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(r.scene.root)

	for _, rec := range r.store.Records() {
		if n, ok := r.Entity(rec.ID); !ok || n.ID != rec.Visual {
			issues = append(issues, AuditIssue{Kind: AuditUnbound, NoteID: rec.ID})
		}
	}
	return issues
}

// purgeStrays removes tagged placards the index does not own. Runs in debug
// mode after each pass.
func (r *Reconciler) purgeStrays() int {
	purged := 0
	for _, issue := range r.Audit() {
		switch issue.Kind {
		case AuditStray:
			r.scene.logger.Warn("purging stray placard",
				zap.Uint64("note", uint64(issue.NoteID)),
				zap.Uint32("node", issue.Node.ID))
			r.destroy(issue.Node)
			purged++
		case AuditDuplicate:
			// The matching stray entry for the same node handles removal.
		default:
			r.scene.logger.Warn("audit issue",
				zap.Stringer("kind", issue.Kind),
				zap.Uint64("note", uint64(issue.NoteID)))
		}
	}
	return purged
}
