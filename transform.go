package placard

// identityTransform is the identity scale+translate matrix.
var identityTransform = [6]float64{1, 1, 1, 0, 0, 0}

// computeLocalTransform computes the local matrix from the node's transform
// properties. Returns [sx, sy, sz, tx, ty, tz].
//
// Composition order:
//
//	Scale -> Translate(X, Y, Z)
func computeLocalTransform(n *Node) [6]float64 {
	return [6]float64{n.ScaleX, n.ScaleY, n.ScaleZ, n.X, n.Y, n.Z}
}

// multiplyTransform composes two matrices: result = parent * child.
func multiplyTransform(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0] * c[0],
		p[1] * c[1],
		p[2] * c[2],
		p[0]*c[3] + p[3],
		p[1]*c[4] + p[4],
		p[2]*c[5] + p[5],
	}
}

// invertTransform computes the inverse of a scale+translate matrix.
// Returns the identity matrix if any scale is ≈ 0.
func invertTransform(m [6]float64) [6]float64 {
	for i := 0; i < 3; i++ {
		if m[i] > -1e-12 && m[i] < 1e-12 {
			return identityTransform
		}
	}
	return [6]float64{
		1 / m[0], 1 / m[1], 1 / m[2],
		-m[3] / m[0], -m[4] / m[1], -m[5] / m[2],
	}
}

// transformPoint applies a matrix to a point.
func transformPoint(m [6]float64, p Vec3) Vec3 {
	return Vec3{m[0]*p.X + m[3], m[1]*p.Y + m[4], m[2]*p.Z + m[5]}
}

// transformBox applies a matrix to an axis-aligned box. Negative scales
// swap the corners so Min stays below Max.
func transformBox(m [6]float64, b Box) Box {
	lo := transformPoint(m, b.Min)
	hi := transformPoint(m, b.Max)
	if lo.X > hi.X {
		lo.X, hi.X = hi.X, lo.X
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = hi.Y, lo.Y
	}
	if lo.Z > hi.Z {
		lo.Z, hi.Z = hi.Z, lo.Z
	}
	return Box{Min: lo, Max: hi}
}

// updateWorldTransform recomputes a node's worldTransform and worldAlpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyTransform(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// currentWorldTransform composes the local transforms from the root down to
// n without touching the cached state. Used by coordinate conversion, which
// may run between frames after transforms were edited.
func (n *Node) currentWorldTransform() [6]float64 {
	if n.Parent == nil {
		return computeLocalTransform(n)
	}
	return multiplyTransform(n.Parent.currentWorldTransform(), computeLocalTransform(n))
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(p Vec3) {
	n.X = p.X
	n.Y = p.Y
	n.Z = p.Z
	n.transformDirty = true
}

// Position returns the node's local position.
func (n *Node) Position() Vec3 {
	return Vec3{n.X, n.Y, n.Z}
}

// SetScale sets the node's scale on all three axes and marks it dirty.
func (n *Node) SetScale(sx, sy, sz float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.ScaleZ = sz
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(p Vec3) Vec3 {
	return transformPoint(invertTransform(n.currentWorldTransform()), p)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return transformPoint(n.currentWorldTransform(), p)
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() Vec3 {
	return n.LocalToWorld(Vec3{})
}
