package placard

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func testCamera() *Camera {
	return NewCamera(Rect{Width: 1024, Height: 768}, CameraConfig{Distance: 900, Near: 10})
}

func TestCameraProjectCentre(t *testing.T) {
	c := testCamera()
	sx, sy, depth, ok := c.Project(Vec3{})
	if !ok || sx != 512 || sy != 384 || depth != 900 {
		t.Errorf("Project(origin) = (%v, %v, %v, %v)", sx, sy, depth, ok)
	}
	// At Distance the scale is one pixel per unit, with Y pointing up.
	sx, sy, _, _ = c.Project(Vec3{X: 10, Y: 20})
	if sx != 522 || sy != 364 {
		t.Errorf("Project(10,20,0) = (%v, %v), want (522, 364)", sx, sy)
	}
}

func TestCameraProjectNearCull(t *testing.T) {
	c := testCamera()
	if _, _, _, ok := c.Project(Vec3{Z: 895}); ok {
		t.Error("point inside the near plane projected")
	}
	if _, _, _, ok := c.Project(Vec3{Z: 1000}); ok {
		t.Error("point behind the camera projected")
	}
}

func TestScreenRayRoundTrip(t *testing.T) {
	c := testCamera()
	tests := []Vec3{
		{},
		{X: 100, Y: -50},
		{X: -300, Y: 200, Z: -150},
		{X: 40, Y: 40, Z: 120},
	}
	for _, p := range tests {
		sx, sy, _, ok := c.Project(p)
		if !ok {
			t.Fatalf("Project(%v) culled", p)
		}
		r := c.ScreenRay(sx, sy)
		// Walk the ray to the point's depth plane.
		t0 := (p.Z - r.Origin.Z) / r.Dir.Z
		got := r.Origin.Add(r.Dir.Scale(t0))
		if !vecApprox(got, p, 1e-6) {
			t.Errorf("ray through projection of %v reaches %v", p, got)
		}
	}
}

func TestCameraMoveTo(t *testing.T) {
	c := testCamera()
	c.MoveTo(Vec3{Z: 600}, 1, ease.Linear)
	if !c.Moving() {
		t.Fatal("Moving() false after MoveTo")
	}
	c.update(0.5)
	if !approxEqual(c.Position.Z, 750, 1e-3) {
		t.Errorf("halfway Z = %v, want 750", c.Position.Z)
	}
	c.update(0.6)
	if c.Moving() {
		t.Error("still moving after the duration")
	}
	if c.Position.Z != 600 {
		t.Errorf("final Z = %v, want 600", c.Position.Z)
	}
}
