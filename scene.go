package placard

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Substrate is the outbound surface the reconciler and drag controller use
// to change what the renderer shows. Scene is the default implementation.
type Substrate interface {
	// AddEntity exposes a fully built, already attached entity.
	AddEntity(n *Node)
	// RemoveEntity retires an entity before it is disposed.
	RemoveEntity(n *Node)
	// SetTransform moves a live entity to pos in its parent's space.
	SetTransform(n *Node, pos Vec3)
}

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction and lifecycle events are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
	EmitLifecycle(event LifecycleEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	NoteID    NoteID
	Ray       Ray
	ScreenX   float64
	ScreenY   float64
	Button    MouseButton
	Modifiers KeyModifiers

	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
}

// LifecycleType identifies a note entity lifecycle change.
type LifecycleType uint8

const (
	EntityCreated   LifecycleType = iota // placard attached to the scene
	EntityDestroyed                      // placard removed from the scene
	EntityMoved                          // placard moved by a drag
)

// LifecycleEvent reports a structural or transform change of a tagged entity.
type LifecycleEvent struct {
	Type     LifecycleType
	NoteID   NoteID
	EntityID uint32
	Text     string
	Position Vec3
}

// Scene is the top-level object that owns the node tree, camera, input state
// and render buffers.
type Scene struct {
	root   *Node
	store  EntityStore
	logger *zap.Logger
	debug  bool

	// ClearColor fills the screen before drawing when A > 0.
	ClearColor Color

	camera *Camera
	tweens []*TweenGroup

	// Render state
	drawCmds  []drawCommand
	drawVerts []ebiten.Vertex
	drawInds  []uint16

	// Input state
	handlers     handlerRegistry
	captured     [maxPointers]*Node
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injectQueue  []syntheticPointerEvent
}

// NewScene creates a new scene with a pre-created root container and a
// camera covering viewport.
func NewScene(viewport Rect, cam CameraConfig) *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:         root,
		logger:       zap.NewNop(),
		camera:       NewCamera(viewport, cam),
		dragDeadZone: defaultDragDeadZone,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Update refreshes transforms, advances tweens and the camera, and processes
// input. dt is in seconds.
func (s *Scene) Update(dt float64) {
	// Refresh world transforms first so hit testing has accurate positions
	// this frame.
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.camera.update(float32(dt))
	s.updateTweens(float32(dt))
	s.processInput()
}

// AddTween registers a tween advanced by Update until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

func (s *Scene) updateTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// --- Substrate ---

// AddEntity publishes the creation of a tagged entity. The node must already
// be attached to the tree.
func (s *Scene) AddEntity(n *Node) {
	if globalDebug {
		debugCheckDisposed(n, "AddEntity")
	}
	if s.store != nil && n.NoteID != 0 {
		text := ""
		for _, c := range n.children {
			if c.Label != nil {
				text = c.Label.Content
			}
		}
		s.store.EmitLifecycle(LifecycleEvent{
			Type: EntityCreated, NoteID: n.NoteID, EntityID: n.ID,
			Text: text, Position: n.Position(),
		})
	}
}

// RemoveEntity drops every input reference to n (and its label) so pointer
// events never reach a retired node, then publishes the removal.
func (s *Scene) RemoveEntity(n *Node) {
	for i := range s.pointers {
		ps := &s.pointers[i]
		if ps.hoverNode != nil && isAncestor(n, ps.hoverNode) {
			ps.hoverNode = nil
		}
		if ps.hitNode != nil && isAncestor(n, ps.hitNode) {
			ps.hitNode = nil
		}
		if s.captured[i] != nil && isAncestor(n, s.captured[i]) {
			s.captured[i] = nil
		}
	}
	if s.store != nil && n.NoteID != 0 {
		s.store.EmitLifecycle(LifecycleEvent{
			Type: EntityDestroyed, NoteID: n.NoteID, EntityID: n.ID, Position: n.Position(),
		})
	}
}

// SetTransform moves n to pos in its parent's space.
func (s *Scene) SetTransform(n *Node, pos Vec3) {
	n.SetPosition(pos)
	if s.store != nil && n.NoteID != 0 {
		s.store.EmitLifecycle(LifecycleEvent{
			Type: EntityMoved, NoteID: n.NoteID, EntityID: n.ID, Position: pos,
		})
	}
}

// --- Configuration ---

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetLogger sets the logger used by the scene and everything attached to
// it. A nil logger disables logging.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.logger = l
}

// Logger returns the scene logger. Never nil.
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and each reconcile pass audits the tree.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool
