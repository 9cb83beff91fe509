package placard

// syntheticPointerEvent is one injected pointer sample in screen pixels.
// It is turned into a pick ray by the camera exactly like real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

func (s *Scene) inject(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: pressed,
		button:  MouseButtonLeft,
	})
}

// InjectPress queues a left-button press at the given screen coordinates.
// The event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.inject(x, y, true)
}

// InjectMove queues a move with the button held down. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.inject(x, y, true)
}

// InjectRelease queues a release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.inject(x, y, false)
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, the last one on (toX, toY), and a release there.
// Minimum frames is 3.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	steps := max(frames, 3) - 2
	s.InjectPress(fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer as pointer 0. Returns true if an event was consumed
// so real mouse input is skipped for the frame.
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(0, evt.screenX, evt.screenY, evt.pressed, evt.button, mods)
	return true
}
