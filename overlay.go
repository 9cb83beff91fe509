package placard

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefresh is the number of frames between overlay text rebuilds.
const overlayRefresh = 30

// Overlay draws the control hints, the current draft and, in debug mode,
// frame rate and reconcile statistics in the top-left corner.
type Overlay struct {
	board    *Board
	controls *Controls
	frames   int
	stats    string
	bg       *ebiten.Image
}

// NewOverlay creates an overlay for board and its controls.
func NewOverlay(board *Board, controls *Controls) *Overlay {
	return &Overlay{board: board, controls: controls}
}

func (o *Overlay) text() string {
	var sb strings.Builder
	draft := o.controls.Draft()
	fmt.Fprintf(&sb, "Note: %s_\n", draft)
	if o.board.CanCreate(draft) {
		sb.WriteString("[Enter] create  ")
	} else {
		sb.WriteString("(type to enable create)  ")
	}
	sb.WriteString("[Ctrl+Backspace] clear all  [Delete] remove hovered\n")
	fmt.Fprintf(&sb, "Notes: %d", o.board.Store().Len())

	if o.board.Scene().DebugMode() {
		if o.frames%overlayRefresh == 0 {
			st := o.board.Reconciler().LastStats()
			o.stats = fmt.Sprintf("\nFPS: %.1f  TPS: %.1f\nlast pass: +%d -%d pruned %d strays %d",
				ebiten.ActualFPS(), ebiten.ActualTPS(),
				st.Created, st.Destroyed, st.Pruned, st.Strays)
		}
		o.frames++
		sb.WriteString(o.stats)
	}
	return sb.String()
}

// Draw renders the overlay on top of screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	msg := o.text()
	if o.bg == nil {
		// Semi-transparent background for readability
		o.bg = ebiten.NewImage(1, 1)
		o.bg.Fill(color.RGBA{0, 0, 0, 128})
	}
	lines := strings.Count(msg, "\n") + 1
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(460, float64(lines*16+4))
	screen.DrawImage(o.bg, op)
	ebitenutil.DebugPrint(screen, msg)
}
