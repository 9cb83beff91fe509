package placard

// Interaction is the fixed capability set carried by every placard: it is
// hit-testable, collidable, hover-reactive and tagged with its note identity.
// The bundle is the same for every note apart from the tag; only Hover changes
// after construction, flipped by the scene on pointer enter/leave.
type Interaction struct {
	// HitRegion is the local-space region tested against pointer rays.
	HitRegion Box
	// Collision is the local-space static collision shape.
	Collision Box
	// Hover is true while a pointer is over the placard.
	Hover bool
	// NoteID mirrors the owning node's identity tag.
	NoteID NoteID
}

// NewInteraction returns the capability set for a note whose placard covers
// footprint in local space.
func NewInteraction(id NoteID, footprint Box) *Interaction {
	return &Interaction{
		HitRegion: footprint,
		Collision: footprint,
		NoteID:    id,
	}
}

// hitNode tests whether ray r hits the node's hit region and returns the
// distance along the ray. Nodes without an Interaction are never hit.
func hitNode(n *Node, r Ray) (float64, bool) {
	if n.Interaction == nil {
		return 0, false
	}
	return transformBox(n.worldTransform, n.Interaction.HitRegion).IntersectRay(r)
}

// worldCollision returns the node's collision shape in world space.
func worldCollision(n *Node) (Box, bool) {
	if n.Interaction == nil {
		return Box{}, false
	}
	return transformBox(n.currentWorldTransform(), n.Interaction.Collision), true
}

// Overlapping returns the tagged placards under root whose collision shapes
// intersect n's. Static shapes only; nothing is pushed apart.
func Overlapping(root, n *Node) []*Node {
	self, ok := worldCollision(n)
	if !ok {
		return nil
	}
	var out []*Node
	var walk func(*Node)
	walk = func(c *Node) {
		if c != n && c.Tagged() {
			if other, ok := worldCollision(c); ok && self.Intersects(other) {
				out = append(out, c)
			}
		}
		for _, child := range c.children {
			walk(child)
		}
	}
	walk(root)
	return out
}
