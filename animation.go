package placard

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// easeFuncs maps config names to gween easing functions.
var easeFuncs = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"outQuad":   ease.OutQuad,
	"outCubic":  ease.OutCubic,
	"inOutQuad": ease.InOutQuad,
	"outBack":   ease.OutBack,
	"outBounce": ease.OutBounce,
}

// EaseByName returns the easing function registered under name, falling
// back to linear for unknown or empty names.
func EaseByName(name string) ease.TweenFunc {
	if fn, ok := easeFuncs[name]; ok {
		return fn
	}
	return ease.Linear
}

// TweenGroup animates up to 3 float64 fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAlpha) and register it with Scene.AddTween or call Update(dt) each
// frame. If the target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition creates a TweenGroup that moves node to the given local position.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(node.Z), float32(to.Z), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	g.fields[2] = &node.Z
	return g
}

// TweenScale creates a TweenGroup that animates all three scale axes of node
// from its current scale to to.
func TweenScale(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	g.tweens[0] = gween.New(float32(node.ScaleX), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(node.ScaleY), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(node.ScaleZ), float32(to.Z), duration, fn)
	g.fields[0] = &node.ScaleX
	g.fields[1] = &node.ScaleY
	g.fields[2] = &node.ScaleZ
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}
