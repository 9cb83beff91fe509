package placard

// PointerContext carries pointer event data.
type PointerContext struct {
	Node      *Node
	NoteID    NoteID
	Ray       Ray
	ScreenX   float64
	ScreenY   float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// DragContext carries drag event data. Ray is the pointer ray for the
// current frame; StartX/StartY and DeltaX/DeltaY are in screen pixels.
type DragContext struct {
	Node      *Node
	NoteID    NoteID
	Ray       Ray
	ScreenX   float64
	ScreenY   float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// nodeIDCounter is a plain counter (no atomic; placard is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for all node
// types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// NoteID is the identity tag linking a placard (and its label) back to
	// its note record. Zero on untagged nodes.
	NoteID NoteID

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is not supported.
	X, Y, Z                float64
	ScaleX, ScaleY, ScaleZ float64

	// Computed, updated during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool

	// Metadata
	UserData any

	// Geometry (NodeTypePlacard, NodeTypeLabel)
	Mesh     *Mesh
	Material Material

	// Text (NodeTypeLabel)
	Label *TextBlock

	// Interaction is the capability set for hit-testable nodes. Nil on
	// nodes that never receive pointer events.
	Interaction *Interaction

	// Per-node callbacks (nil by default; zero cost when unused)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnClick        func(PointerContext)
	OnDragStart    func(DragContext)
	OnDrag         func(DragContext)
	OnDragEnd      func(DragContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.ScaleZ = 1
	n.Alpha = 1
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewPlacard creates a placard node rendering mesh with a flat material.
func NewPlacard(name string, mesh *Mesh, mat Material) *Node {
	n := &Node{Name: name, Type: NodeTypePlacard, Mesh: mesh, Material: mat}
	nodeDefaults(n)
	return n
}

// NewLabel creates a label node. mesh is the extruded glyph geometry and
// block holds the shaped text used to draw the glyph faces.
func NewLabel(name string, block *TextBlock, mesh *Mesh, mat Material) *Node {
	n := &Node{Name: name, Type: NodeTypeLabel, Label: block, Mesh: mesh, Material: mat}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("placard: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("placard: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("placard: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Mesh = nil
	if n.Label != nil {
		n.Label.release()
		n.Label = nil
	}
	n.Interaction = nil
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnClick = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// Tagged reports whether n is a placard carrying a note identity tag.
func (n *Node) Tagged() bool {
	return n.Type == NodeTypePlacard && n.NoteID != 0
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
