package placard

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// RunConfig configures Run.
type RunConfig struct {
	// ShowOverlay draws the control hints and debug statistics.
	ShowOverlay bool
	// ExitOnScriptDone ends the game loop once the attached script has run.
	ExitOnScriptDone bool
}

// game is the ebiten.Game hosting a Board.
type game struct {
	board    *Board
	controls *Controls
	overlay  *Overlay
	cfg      RunConfig
}

func (g *game) Update() error {
	g.controls.Update()
	g.board.Update()
	if r := g.board.ScriptRunner(); g.cfg.ExitOnScriptDone && r != nil && r.Done() {
		if failed := r.Failures(); len(failed) > 0 {
			return &ScriptError{Failures: failed}
		}
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.board.Draw(screen)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.board.Config().Window
	return w.Width, w.Height
}

// ScriptError reports failed expectations of a script run.
type ScriptError struct {
	Failures []string
}

func (e *ScriptError) Error() string {
	if len(e.Failures) == 1 {
		return "placard: script failed: " + e.Failures[0]
	}
	return "placard: script failed: " + e.Failures[0] + " (and more)"
}

// Run opens a window and runs board until the window is closed or, with
// ExitOnScriptDone, the script finishes. A clean script exit returns nil.
func Run(board *Board, cfg RunConfig) error {
	w := board.Config().Window
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowTitle(w.Title)

	controls := NewControls(board)
	g := &game{board: board, controls: controls, cfg: cfg}
	if cfg.ShowOverlay {
		g.overlay = NewOverlay(board, controls)
	}

	board.Logger().Info("starting", zap.Int("width", w.Width), zap.Int("height", w.Height))
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
