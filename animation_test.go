package placard

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestEaseByName(t *testing.T) {
	for _, name := range []string{"linear", "outQuad", "outCubic", "inOutQuad", "outBack", "outBounce"} {
		if EaseByName(name) == nil {
			t.Errorf("EaseByName(%q) = nil", name)
		}
	}
	// Unknown names fall back to linear.
	fn := EaseByName("nope")
	if got := fn(0.5, 0, 10, 1); got != 5 {
		t.Errorf("fallback ease at half time = %v, want 5", got)
	}
}

func TestTweenPosition(t *testing.T) {
	n := NewContainer("n")
	g := TweenPosition(n, Vec3{10, 20, 30}, 1, ease.Linear)
	g.Update(0.5)
	if !vecApprox(n.Position(), Vec3{5, 10, 15}, 1e-4) {
		t.Errorf("halfway position = %v", n.Position())
	}
	if g.Done {
		t.Error("done halfway")
	}
	g.Update(0.5)
	if !g.Done || n.Position() != (Vec3{10, 20, 30}) {
		t.Errorf("final position = %v, done = %v", n.Position(), g.Done)
	}
}

func TestTweenScaleAndAlpha(t *testing.T) {
	n := NewContainer("n")
	n.ScaleX, n.ScaleY, n.ScaleZ = 0, 0, 0
	n.Alpha = 0

	scale := TweenScale(n, Vec3{1, 1, 1}, 0.2, ease.Linear)
	alpha := TweenAlpha(n, 1, 0.2, ease.Linear)
	for range 4 {
		scale.Update(0.1)
		alpha.Update(0.1)
	}
	if !scale.Done || !alpha.Done {
		t.Fatal("tweens not done")
	}
	if n.ScaleX != 1 || n.ScaleY != 1 || n.ScaleZ != 1 || n.Alpha != 1 {
		t.Errorf("scale = (%v, %v, %v), alpha = %v", n.ScaleX, n.ScaleY, n.ScaleZ, n.Alpha)
	}
}

func TestTweenStopsOnDisposedTarget(t *testing.T) {
	n := NewContainer("n")
	g := TweenPosition(n, Vec3{X: 100}, 1, ease.Linear)
	n.Dispose()
	g.Update(0.5)
	if !g.Done {
		t.Error("tween kept running on a disposed node")
	}
	if n.X != 0 {
		t.Errorf("disposed node written: X = %v", n.X)
	}
}

func TestSceneDropsFinishedTweens(t *testing.T) {
	s := NewScene(Rect{Width: 100, Height: 100}, CameraConfig{Distance: 100, Near: 1})
	n := NewContainer("n")
	s.Root().AddChild(n)
	s.AddTween(TweenAlpha(n, 0, 0.1, ease.Linear))
	s.AddTween(TweenAlpha(n, 0, 1, ease.Linear))
	s.updateTweens(0.2)
	if len(s.tweens) != 1 {
		t.Errorf("live tweens = %d, want 1", len(s.tweens))
	}
}
