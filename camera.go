package placard

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// moveAnim holds active dolly tweens for the camera position.
type moveAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is a pinhole camera looking down -Z. Focal is in pixels, so a point
// at depth Focal in front of the camera projects at one pixel per unit.
type Camera struct {
	// Position is the eye point in world space.
	Position Vec3
	// Focal is the focal length in pixels.
	Focal float64
	// Near is the minimum depth that is projected; closer points are culled.
	Near float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	move *moveAnim
}

// NewCamera creates a camera centred on the origin at cfg.Distance.
func NewCamera(viewport Rect, cfg CameraConfig) *Camera {
	return &Camera{
		Position: Vec3{Z: cfg.Distance},
		Focal:    cfg.Distance,
		Near:     cfg.Near,
		Viewport: viewport,
	}
}

// Forward returns the viewing direction.
func (c *Camera) Forward() Vec3 {
	return Vec3{Z: -1}
}

func (c *Camera) center() (float64, float64) {
	return c.Viewport.X + c.Viewport.Width/2, c.Viewport.Y + c.Viewport.Height/2
}

// Project maps a world point to screen coordinates and its depth in front
// of the camera. ok is false for points closer than Near.
func (c *Camera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	depth = c.Position.Z - p.Z
	if depth < c.Near {
		return 0, 0, depth, false
	}
	cx, cy := c.center()
	k := c.Focal / depth
	return cx + (p.X-c.Position.X)*k, cy - (p.Y-c.Position.Y)*k, depth, true
}

// ScreenRay returns the world-space ray through screen point (sx, sy).
func (c *Camera) ScreenRay(sx, sy float64) Ray {
	cx, cy := c.center()
	dir := Vec3{
		X: (sx - cx) / c.Focal,
		Y: -(sy - cy) / c.Focal,
		Z: -1,
	}
	return Ray{Origin: c.Position, Dir: dir.Normalize()}
}

// MoveTo animates the camera position to pos over duration seconds.
func (c *Camera) MoveTo(pos Vec3, duration float32, easeFn ease.TweenFunc) {
	c.move = &moveAnim{tweens: [3]*gween.Tween{
		gween.New(float32(c.Position.X), float32(pos.X), duration, easeFn),
		gween.New(float32(c.Position.Y), float32(pos.Y), duration, easeFn),
		gween.New(float32(c.Position.Z), float32(pos.Z), duration, easeFn),
	}}
}

// Moving reports whether a MoveTo animation is in progress.
func (c *Camera) Moving() bool {
	return c.move != nil
}

// update advances the dolly animation. Called from Scene.Update().
func (c *Camera) update(dt float32) {
	if c.move == nil {
		return
	}
	fields := [3]*float64{&c.Position.X, &c.Position.Y, &c.Position.Z}
	for i, tw := range c.move.tweens {
		if c.move.done[i] {
			continue
		}
		val, finished := tw.Update(dt)
		*fields[i] = float64(val)
		c.move.done[i] = finished
	}
	if c.move.done[0] && c.move.done[1] && c.move.done[2] {
		c.move = nil
	}
}
