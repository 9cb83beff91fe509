package placard

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Text   string  `json:"text,omitempty"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Count  *int    `json:"count,omitempty"`
	To     *Vec3   `json:"to,omitempty"`
}

// script is the top-level JSON structure.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var knownActions = map[string]bool{
	"create": true, "clear": true, "delete": true, "move": true,
	"click": true, "drag": true, "wait": true,
	"expect": true, "screenshot": true,
}

// ScriptRunner sequences note commands, injected pointer input and checks
// across frames. Attach to a Board via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadScript parses a JSON script and returns a runner ready to be attached
// to a Board.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("placard: parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("placard: parse script: no steps")
	}
	for i, st := range s.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("placard: parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "move" && st.To == nil {
			return nil, fmt.Errorf("placard: parse script: step %d: move needs a target position", i)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Failures returns the messages of failed expect steps.
func (r *ScriptRunner) Failures() []string {
	return r.failures
}

// step advances the runner by one frame. Called from Board.Update before
// commands are drained.
func (r *ScriptRunner) step(b *Board) {
	if r.done {
		return
	}
	s := b.scene
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "create":
		b.Enqueue(CreateNoteCommand{Text: st.Text})
	case "clear":
		b.Enqueue(ClearAllCommand{})
	case "delete":
		if n := dragTarget(s.hitTest(s.camera.ScreenRay(st.X, st.Y))); n != nil {
			b.Enqueue(DeleteNoteCommand{ID: n.NoteID})
		}
	case "move":
		if n := dragTarget(s.hitTest(s.camera.ScreenRay(st.X, st.Y))); n != nil {
			b.Enqueue(MoveNoteCommand{ID: n.NoteID, Position: *st.To})
		}
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "expect":
		if st.Count != nil && b.store.Len() != *st.Count {
			msg := fmt.Sprintf("step %d: expected %d notes, have %d", r.cursor-1, *st.Count, b.store.Len())
			r.failures = append(r.failures, msg)
			b.logger.Warn("script expectation failed", zap.String("detail", msg))
		}
	case "screenshot":
		b.Screenshot(st.Label)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
