package placard

import (
	"go.uber.org/zap"
)

// DragController turns drag gestures on placards into position updates. Each
// update moves the live node for immediate feedback and writes the same
// position into the store, so a rebuilt entity reappears where it was left.
// One drag is active at a time.
type DragController struct {
	store     *NoteStore
	substrate Substrate
	logger    *zap.Logger

	active *Node
	parent *Node
	noteID NoteID

	// Gesture state for pointer-driven drags: the grab plane faces the
	// camera and passes through the initial hit point.
	planePoint  Vec3
	planeNormal Vec3
	grabOffset  Vec3

	scene   *Scene
	handles []CallbackHandle
}

// NewDragController creates a controller writing to store and substrate.
func NewDragController(store *NoteStore, substrate Substrate, logger *zap.Logger) *DragController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DragController{store: store, substrate: substrate, logger: logger}
}

// Active returns the node being dragged, or nil.
func (d *DragController) Active() *Node {
	return d.active
}

// dragTarget resolves n (a placard or its label) to the tagged placard.
func dragTarget(n *Node) *Node {
	for p := n; p != nil; p = p.Parent {
		if p.Tagged() {
			return p
		}
	}
	return nil
}

// BeginDrag captures the placard under n and its parent. Returns false if n
// does not belong to a live tagged placard.
func (d *DragController) BeginDrag(n *Node) bool {
	target := dragTarget(n)
	if target == nil || target.disposed || target.Parent == nil {
		return false
	}
	d.active = target
	d.parent = target.Parent
	d.noteID = target.NoteID
	return true
}

// UpdateDrag moves the captured placard so its origin lands on world, given
// in world space. Updates for anything other than the captured placard, or
// after the placard was detached or disposed, are dropped.
func (d *DragController) UpdateDrag(n *Node, world Vec3) {
	target := dragTarget(n)
	if target == nil || target != d.active {
		d.logger.Debug("drag update ignored: not the active drag")
		return
	}
	if target.disposed || target.Parent == nil || target.Parent != d.parent {
		d.logger.Debug("drag update ignored: placard detached",
			zap.Uint64("note", uint64(d.noteID)))
		return
	}
	local := d.parent.WorldToLocal(world)
	d.substrate.SetTransform(target, local)
	if !d.store.Move(d.noteID, local) {
		d.logger.Debug("drag update on removed note", zap.Uint64("note", uint64(d.noteID)))
	}
}

// EndDrag releases the capture. The last UpdateDrag already stored the
// final position.
func (d *DragController) EndDrag() {
	d.active = nil
	d.parent = nil
	d.noteID = 0
}

// --- Pointer wiring ---

// Attach subscribes the controller to the scene's drag events so pointer
// drags on placards move them.
func (d *DragController) Attach(s *Scene) {
	d.Detach()
	d.scene = s
	d.handles = append(d.handles,
		s.OnDragStart(d.onDragStart),
		s.OnDrag(d.onDrag),
		s.OnDragEnd(d.onDragEnd),
	)
}

// Detach removes the scene subscriptions added by Attach.
func (d *DragController) Detach() {
	for _, h := range d.handles {
		h.Remove()
	}
	d.handles = d.handles[:0]
}

func (d *DragController) onDragStart(ctx DragContext) {
	if ctx.Node == nil || !d.BeginDrag(ctx.Node) {
		return
	}
	// The gesture is anchored at the press point, not at the first sample
	// past the dead zone, so the placard keeps up with the pointer.
	start := ctx.Ray
	if d.scene != nil {
		start = d.scene.Camera().ScreenRay(ctx.StartX, ctx.StartY)
		// Hover stays on the dragged placard until the pointer is released.
		d.scene.CapturePointer(ctx.PointerID, d.active)
	}
	origin := d.active.WorldPosition()
	d.planeNormal = start.Dir.Scale(-1)
	d.planePoint = origin
	if t, ok := start.IntersectPlane(origin, d.planeNormal); ok {
		d.grabOffset = origin.Sub(start.At(t))
	} else {
		d.grabOffset = Vec3{}
	}
	d.onDrag(ctx)
}

func (d *DragController) onDrag(ctx DragContext) {
	if d.active == nil {
		return
	}
	t, ok := ctx.Ray.IntersectPlane(d.planePoint, d.planeNormal)
	if !ok {
		return
	}
	d.UpdateDrag(ctx.Node, ctx.Ray.At(t).Add(d.grabOffset))
}

func (d *DragController) onDragEnd(DragContext) {
	d.EndDrag()
}
