package placard

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// dollyStep is how far PageUp/PageDown move the camera along Z.
const dollyStep = 150.0

// Controls is the keyboard control surface. Typed characters build a draft;
// Enter turns it into a note, Ctrl+Backspace clears the wall, Delete removes
// the hovered note and PageUp/PageDown dolly the camera. Every intent is
// queued on the board, never applied directly.
type Controls struct {
	board *Board
	draft []rune
	chars []rune
}

// NewControls creates controls driving board.
func NewControls(board *Board) *Controls {
	return &Controls{board: board}
}

// Draft returns the text typed so far.
func (c *Controls) Draft() string {
	return string(c.draft)
}

// SetDraft replaces the draft text.
func (c *Controls) SetDraft(s string) {
	c.draft = []rune(s)
}

// submit queues a create for the draft. It does nothing while create is
// disabled.
func (c *Controls) submit() {
	text := c.Draft()
	if !c.board.CanCreate(text) {
		return
	}
	c.board.Enqueue(CreateNoteCommand{Text: text})
	c.draft = c.draft[:0]
}

// deleteHovered queues removal of the note under the mouse.
func (c *Controls) deleteHovered() {
	if n := dragTarget(c.board.Scene().HoveredNode()); n != nil {
		c.board.Enqueue(DeleteNoteCommand{ID: n.NoteID})
	}
}

func (c *Controls) dolly(dz float64) {
	cam := c.board.Scene().Camera()
	target := cam.Position
	target.Z = max(target.Z+dz, cam.Near*2)
	cam.MoveTo(target, 0.3, EaseByName("outCubic"))
}

// Update reads this frame's keyboard input.
func (c *Controls) Update() {
	c.chars = ebiten.AppendInputChars(c.chars[:0])
	c.draft = append(c.draft, c.chars...)

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		c.submit()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		if ctrl {
			c.board.Enqueue(ClearAllCommand{})
		} else if len(c.draft) > 0 {
			c.draft = c.draft[:len(c.draft)-1]
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		c.deleteHovered()
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		c.dolly(-dollyStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		c.dolly(dollyStep)
	}
}
