package placard

// Mesh is an indexed triangle list in local space. Triangles wind
// counter-clockwise when viewed from outside, so face normals point outward.
type Mesh struct {
	Vertices []Vec3
	Indices  []uint16

	bounds      Box  // cached local-space AABB
	boundsDirty bool // recompute bounds when true
}

// Material is a flat, unlit surface description.
type Material struct {
	Color Color
}

// Opaque reports whether the material is fully opaque.
func (m Material) Opaque() bool {
	return m.Color.A >= 1
}

// NewMesh creates a mesh from vertices and triangle indices.
func NewMesh(vertices []Vec3, indices []uint16) *Mesh {
	return &Mesh{Vertices: vertices, Indices: indices, boundsDirty: true}
}

// Empty reports whether the mesh has no triangles.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Indices) == 0
}

// Triangles returns the number of triangles in the mesh.
func (m *Mesh) Triangles() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Bounds returns the local-space AABB, recomputing it if the vertices changed.
func (m *Mesh) Bounds() Box {
	if m == nil {
		return Box{}
	}
	if m.boundsDirty {
		m.bounds = computeMeshAABB(m.Vertices)
		m.boundsDirty = false
	}
	return m.bounds
}

// InvalidateBounds marks the cached AABB as needing recomputation.
// Call this after modifying Vertices.
func (m *Mesh) InvalidateBounds() {
	m.boundsDirty = true
}

// computeMeshAABB scans the vertices and returns the axis-aligned bounding
// box in local space.
func computeMeshAABB(verts []Vec3) Box {
	if len(verts) == 0 {
		return Box{}
	}
	lo, hi := verts[0], verts[0]
	for _, v := range verts[1:] {
		lo.X = min(lo.X, v.X)
		lo.Y = min(lo.Y, v.Y)
		lo.Z = min(lo.Z, v.Z)
		hi.X = max(hi.X, v.X)
		hi.Y = max(hi.Y, v.Y)
		hi.Z = max(hi.Z, v.Z)
	}
	return Box{Min: lo, Max: hi}
}

// boxIndices lists the 12 triangles of a box over the corner order used by
// appendBox. Each pair of rows is one face: +Z, -Z, +X, -X, +Y, -Y.
var boxIndices = [36]uint16{
	4, 5, 6, 4, 6, 7,
	1, 0, 3, 1, 3, 2,
	5, 1, 2, 5, 2, 6,
	0, 4, 7, 0, 7, 3,
	7, 6, 2, 7, 2, 3,
	0, 1, 5, 0, 5, 4,
}

// appendBox appends the 8 corners and 36 indices of b to the buffers.
// Panics if the mesh would exceed the uint16 index range.
func appendBox(verts []Vec3, inds []uint16, b Box) ([]Vec3, []uint16) {
	base := len(verts)
	if base+8 > 0xFFFF {
		panic("placard: mesh exceeds 65535 vertices")
	}
	lo, hi := b.Min, b.Max
	verts = append(verts,
		Vec3{lo.X, lo.Y, lo.Z},
		Vec3{hi.X, lo.Y, lo.Z},
		Vec3{hi.X, hi.Y, lo.Z},
		Vec3{lo.X, hi.Y, lo.Z},
		Vec3{lo.X, lo.Y, hi.Z},
		Vec3{hi.X, lo.Y, hi.Z},
		Vec3{hi.X, hi.Y, hi.Z},
		Vec3{lo.X, hi.Y, hi.Z},
	)
	for _, i := range boxIndices {
		inds = append(inds, uint16(base)+i)
	}
	return verts, inds
}

// NewBoxMesh returns a closed box mesh covering b.
func NewBoxMesh(b Box) *Mesh {
	verts, inds := appendBox(make([]Vec3, 0, 8), make([]uint16, 0, 36), b)
	return NewMesh(verts, inds)
}
