package placard

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time
}

// --- Handler registry ---

type handler[C any] struct {
	id uint32
	fn func(C)
}

type handlerRegistry struct {
	pointerDown  []handler[PointerContext]
	pointerUp    []handler[PointerContext]
	pointerMove  []handler[PointerContext]
	pointerEnter []handler[PointerContext]
	pointerLeave []handler[PointerContext]
	click        []handler[PointerContext]
	dragStart    []handler[DragContext]
	drag         []handler[DragContext]
	dragEnd      []handler[DragContext]
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removeHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removeHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case EventDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeHandler(h.reg.dragEnd, h.id)
	}
}

func removeHandler[C any](s []handler[C], id uint32) []handler[C] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[C]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func addHandler[C any](reg *handlerRegistry, list *[]handler[C], event EventType, fn func(C)) CallbackHandle {
	reg.nextID++
	*list = append(*list, handler[C]{id: reg.nextID, fn: fn})
	return CallbackHandle{id: reg.nextID, reg: reg, event: event}
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(PointerContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.click, EventClick, fn)
}

// OnDragStart registers a scene-level callback for drag start events.
func (s *Scene) OnDragStart(fn func(DragContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.dragStart, EventDragStart, fn)
}

// OnDrag registers a scene-level callback for drag events.
func (s *Scene) OnDrag(fn func(DragContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.drag, EventDrag, fn)
}

// OnDragEnd registers a scene-level callback for drag end events.
func (s *Scene) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return addHandler(&s.handlers, &s.handlers.dragEnd, EventDragEnd, fn)
}

// CapturePointer routes all events for pointerID to the given node.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// HoveredNode returns the node under the mouse pointer as of the last
// processed frame, or nil.
func (s *Scene) HoveredNode() *Node {
	return s.pointers[0].hoverNode
}

// --- Hit testing ---

// collectInteractable walks the tree appending nodes carrying an Interaction.
// Skips Visible=false or Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.Interaction != nil {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the nearest interactable node along r. Returns nil if
// nothing is hit.
func (s *Scene) hitTest(r Ray) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	var best *Node
	bestT := math.Inf(1)
	for _, n := range s.hitBuf {
		if t, ok := hitNode(n, r); ok && t < bestT {
			best, bestT = n, t
		}
	}
	return best
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Update() to handle all mouse and touch
// input. Injected events take precedence over the real mouse for the frame.
func (s *Scene) processInput() {
	mods := readModifiers()
	if !s.processInjectedInput(mods) {
		s.processMousePointer(mods)
	}
	s.processTouchPointers(mods)
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	// If pointer is already down, the stored button is used instead so it
	// does not change mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (s *Scene) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(s.prevTouchIDs[:0])
	s.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		s.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer at
// screen position (sx, sy).
func (s *Scene) processPointer(pointerID int, sx, sy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]
	ray := s.camera.ScreenRay(sx, sy)

	var target *Node
	if s.captured[pointerID] != nil {
		target = s.captured[pointerID]
	} else {
		target = s.hitTest(ray)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointer(EventPointerLeave, ps.hoverNode, pointerID, ray, sx, sy, button, mods)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, pointerID, ray, sx, sy, button, mods)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.hitNode = target
		ps.dragging = false
		s.firePointer(EventPointerDown, target, pointerID, ray, sx, sy, ps.button, mods)

	case !pressed && ps.down:
		if ps.dragging {
			s.fireDrag(EventDragEnd, ps.hitNode, pointerID, ray, sx, sy, ps, sx-ps.lastX, sy-ps.lastY, mods)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.firePointer(EventClick, target, pointerID, ray, sx, sy, ps.button, mods)
		}
		s.firePointer(EventPointerUp, target, pointerID, ray, sx, sy, ps.button, mods)

		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false

	case pressed && ps.down:
		if sx != ps.lastX || sy != ps.lastY {
			if !ps.dragging && math.Hypot(sx-ps.startX, sy-ps.startY) > s.dragDeadZone {
				ps.dragging = true
				s.fireDrag(EventDragStart, ps.hitNode, pointerID, ray, sx, sy, ps, sx-ps.startX, sy-ps.startY, mods)
			}
			if ps.dragging {
				s.fireDrag(EventDrag, ps.hitNode, pointerID, ray, sx, sy, ps, sx-ps.lastX, sy-ps.lastY, mods)
			}
		}
		ps.lastX, ps.lastY = sx, sy

	default:
		if sx != ps.lastX || sy != ps.lastY {
			s.firePointer(EventPointerMove, target, pointerID, ray, sx, sy, button, mods)
			ps.lastX, ps.lastY = sx, sy
		}
	}
}

// --- Event dispatch ---

func (s *Scene) firePointer(ev EventType, node *Node, pointerID int, ray Ray, sx, sy float64, button MouseButton, mods KeyModifiers) {
	var noteID NoteID
	if node != nil {
		noteID = node.NoteID
	}
	ctx := PointerContext{
		Node: node, NoteID: noteID, Ray: ray,
		ScreenX: sx, ScreenY: sy,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}

	var list []handler[PointerContext]
	var nodeFn func(PointerContext)
	switch ev {
	case EventPointerDown:
		list = s.handlers.pointerDown
		if node != nil {
			nodeFn = node.OnPointerDown
		}
	case EventPointerUp:
		list = s.handlers.pointerUp
		if node != nil {
			nodeFn = node.OnPointerUp
		}
	case EventPointerMove:
		list = s.handlers.pointerMove
	case EventPointerEnter:
		list = s.handlers.pointerEnter
		if node != nil {
			if node.Interaction != nil {
				node.Interaction.Hover = true
			}
			nodeFn = node.OnPointerEnter
		}
	case EventPointerLeave:
		list = s.handlers.pointerLeave
		if node != nil {
			if node.Interaction != nil {
				node.Interaction.Hover = false
			}
			nodeFn = node.OnPointerLeave
		}
	case EventClick:
		list = s.handlers.click
		if node != nil {
			nodeFn = node.OnClick
		}
	}

	// Scene-level handlers first.
	for _, h := range list {
		h.fn(ctx)
	}
	if nodeFn != nil {
		nodeFn(ctx)
	}
	if s.store != nil {
		s.store.EmitEvent(InteractionEvent{
			Type: ev, NoteID: noteID, Ray: ray,
			ScreenX: sx, ScreenY: sy, Button: button, Modifiers: mods,
		})
	}
}

func (s *Scene) fireDrag(ev EventType, node *Node, pointerID int, ray Ray, sx, sy float64, ps *pointerState, dx, dy float64, mods KeyModifiers) {
	var noteID NoteID
	if node != nil {
		noteID = node.NoteID
	}
	ctx := DragContext{
		Node: node, NoteID: noteID, Ray: ray,
		ScreenX: sx, ScreenY: sy,
		StartX: ps.startX, StartY: ps.startY,
		DeltaX: dx, DeltaY: dy,
		Button: ps.button, PointerID: pointerID, Modifiers: mods,
	}

	var list []handler[DragContext]
	var nodeFn func(DragContext)
	switch ev {
	case EventDragStart:
		list = s.handlers.dragStart
		if node != nil {
			nodeFn = node.OnDragStart
		}
	case EventDrag:
		list = s.handlers.drag
		if node != nil {
			nodeFn = node.OnDrag
		}
	case EventDragEnd:
		list = s.handlers.dragEnd
		if node != nil {
			nodeFn = node.OnDragEnd
		}
	}

	for _, h := range list {
		h.fn(ctx)
	}
	if nodeFn != nil {
		nodeFn(ctx)
	}
	if s.store != nil {
		s.store.EmitEvent(InteractionEvent{
			Type: ev, NoteID: noteID, Ray: ray,
			ScreenX: sx, ScreenY: sy, Button: ps.button, Modifiers: mods,
			StartX: ps.startX, StartY: ps.startY, DeltaX: dx, DeltaY: dy,
		})
	}
}
