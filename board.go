package placard

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Board wires a note store, scene, factory, reconciler and drag controller
// into one note wall. It is the inbound surface for the control layer.
type Board struct {
	cfg     *Config
	store   *NoteStore
	scene   *Scene
	factory *Factory
	recon   *Reconciler
	drag    *DragController
	logger  *zap.Logger

	queue  []Command
	runner *ScriptRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// BoardOption configures optional Board collaborators.
type BoardOption func(*Board)

// WithLogger sets the logger used by the board and its scene.
func WithLogger(l *zap.Logger) BoardOption {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithStore replaces the note store, for example one seeded with a
// deterministic random source.
func WithStore(s *NoteStore) BoardOption {
	return func(b *Board) { b.store = s }
}

// NewBoard builds a board from cfg. shaper lays out label text; a nil shaper
// produces placards without labels.
func NewBoard(cfg *Config, shaper Shaper, opts ...BoardOption) *Board {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	b := &Board{
		cfg:           cfg,
		logger:        zap.NewNop(),
		ScreenshotDir: "screenshots",
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.store == nil {
		b.store = NewNoteStore(cfg.Placement, nil)
	}

	viewport := Rect{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}
	b.scene = NewScene(viewport, cfg.Camera)
	b.scene.SetLogger(b.logger)
	b.scene.SetDebugMode(cfg.Debug)
	b.scene.SetDragDeadZone(cfg.Input.DragDeadZone)
	b.scene.ClearColor = Color{0.12, 0.13, 0.16, 1}

	b.factory = NewFactory(cfg, shaper)
	b.recon = NewReconciler(b.store, b.scene, b.factory, cfg.Spawn)
	b.drag = NewDragController(b.store, b.scene, b.logger)
	b.drag.Attach(b.scene)
	return b
}

// Config returns the board configuration.
func (b *Board) Config() *Config { return b.cfg }

// Store returns the note store.
func (b *Board) Store() *NoteStore { return b.store }

// Scene returns the scene.
func (b *Board) Scene() *Scene { return b.scene }

// Factory returns the geometry factory.
func (b *Board) Factory() *Factory { return b.factory }

// Reconciler returns the reconciler.
func (b *Board) Reconciler() *Reconciler { return b.recon }

// Drag returns the drag controller.
func (b *Board) Drag() *DragController { return b.drag }

// Logger returns the board logger.
func (b *Board) Logger() *zap.Logger { return b.logger }

// SetSubstrate routes the reconciler and the drag controller through sub.
func (b *Board) SetSubstrate(sub Substrate) {
	b.recon.SetSubstrate(sub)
	b.drag.substrate = sub
}

// SetScriptRunner attaches a script runner stepped from Update.
func (b *Board) SetScriptRunner(r *ScriptRunner) {
	b.runner = r
}

// ScriptRunner returns the attached runner, or nil.
func (b *Board) ScriptRunner() *ScriptRunner {
	return b.runner
}

// --- Commands ---

// CanCreate reports whether CreateNote would accept text.
func (b *Board) CanCreate(text string) bool {
	return b.store.CanCreate(text)
}

// CreateNote adds a note. Its placard appears on the next Update.
func (b *Board) CreateNote(text string) (NoteID, error) {
	id, err := b.store.Create(text)
	if err != nil {
		return 0, err
	}
	b.logger.Debug("note created", zap.Uint64("note", uint64(id)))
	return id, nil
}

// ClearAll removes every note. Placards disappear on the next Update.
func (b *Board) ClearAll() {
	b.store.Clear()
	b.logger.Debug("notes cleared")
}

// DeleteNote removes a single note. Returns false if it does not exist.
func (b *Board) DeleteNote(id NoteID) bool {
	return b.store.Remove(id)
}

// BeginDrag starts dragging the placard under n.
func (b *Board) BeginDrag(n *Node) bool {
	return b.drag.BeginDrag(n)
}

// UpdateDrag moves the dragged placard to world.
func (b *Board) UpdateDrag(n *Node, world Vec3) {
	b.drag.UpdateDrag(n, world)
}

// EndDrag finishes the active drag.
func (b *Board) EndDrag() {
	b.drag.EndDrag()
}

// Command is a queued note intent applied at the start of the next Update.
type Command interface {
	Apply(b *Board) error
}

// CreateNoteCommand creates a note with Text.
type CreateNoteCommand struct{ Text string }

// Apply implements Command.
func (c CreateNoteCommand) Apply(b *Board) error {
	_, err := b.CreateNote(c.Text)
	return err
}

// ClearAllCommand removes every note.
type ClearAllCommand struct{}

// Apply implements Command.
func (ClearAllCommand) Apply(b *Board) error {
	b.ClearAll()
	return nil
}

// DeleteNoteCommand removes one note.
type DeleteNoteCommand struct{ ID NoteID }

// Apply implements Command.
func (c DeleteNoteCommand) Apply(b *Board) error {
	b.DeleteNote(c.ID)
	return nil
}

// MoveNoteCommand sets a note's stored position and moves its live placard.
// Unknown IDs are ignored.
type MoveNoteCommand struct {
	ID       NoteID
	Position Vec3
}

// Apply implements Command.
func (c MoveNoteCommand) Apply(b *Board) error {
	if !b.store.Move(c.ID, c.Position) {
		return nil
	}
	if n, ok := b.recon.Entity(c.ID); ok {
		b.recon.substrate.SetTransform(n, c.Position)
	}
	return nil
}

// Enqueue queues cmd for the next Update. Commands apply in delivery order.
func (b *Board) Enqueue(cmd Command) {
	b.queue = append(b.queue, cmd)
}

func (b *Board) drainQueue() {
	for i, cmd := range b.queue {
		if err := cmd.Apply(b); err != nil {
			b.logger.Debug("command rejected", zap.Error(err))
		}
		b.queue[i] = nil
	}
	b.queue = b.queue[:0]
}

// --- Frame ---

// Update runs one frame: script step, queued commands, input and tweens,
// then a reconcile pass so the scene reflects every command of the frame.
func (b *Board) Update() ReconcileStats {
	if b.runner != nil {
		b.runner.step(b)
	}
	b.drainQueue()
	b.scene.Update(1.0 / float64(ebiten.DefaultTPS))
	return b.recon.Reconcile()
}

// Draw renders the scene and writes any queued screenshots.
func (b *Board) Draw(screen *ebiten.Image) {
	b.scene.Draw(screen)
	b.flushScreenshots(screen)
}
