package placard

import (
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// lightDir is the direction toward the key light used for flat shading.
var lightDir = Vec3{0.3, 0.6, 1}.Normalize()

const (
	ambient = 0.55 // shade of faces pointing away from the light
	diffuse = 0.45
)

// drawCommand is one depth-sorted primitive: a triangle (n == 3) or a
// textured quad (n == 4).
type drawCommand struct {
	depth float64
	image *ebiten.Image // nil = untextured
	verts [4]ebiten.Vertex
	n     int
	order int // emission order for a stable sort
}

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used by untextured meshes.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Draw renders the scene to screen. Faces are sorted back to front and
// submitted in as few DrawTriangles calls as the texture changes allow.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.buildDrawList()
	s.submit(screen)
}

// buildDrawList walks the visible tree and emits one command per front
// facing triangle and one per label quad.
func (s *Scene) buildDrawList() {
	s.drawCmds = s.drawCmds[:0]
	s.emitNode(s.root)
	slices.SortStableFunc(s.drawCmds, func(a, b drawCommand) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return a.order - b.order
	})
}

func (s *Scene) emitNode(n *Node) {
	if !n.Visible || n.disposed {
		return
	}
	if n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypePlacard:
			s.emitMesh(n)
		case NodeTypeLabel:
			s.emitLabel(n)
		}
	}
	for _, c := range n.children {
		s.emitNode(c)
	}
}

// emitMesh flat-shades the front faces of n's mesh.
func (s *Scene) emitMesh(n *Node) {
	m := n.Mesh
	if m.Empty() {
		return
	}
	cam := s.camera
	col := n.Material.Color
	alpha := float32(col.A * n.worldAlpha)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := transformPoint(n.worldTransform, m.Vertices[m.Indices[i]])
		b := transformPoint(n.worldTransform, m.Vertices[m.Indices[i+1]])
		c := transformPoint(n.worldTransform, m.Vertices[m.Indices[i+2]])

		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Dot(cam.Position.Sub(a)) <= 0 {
			continue // back face
		}
		shade := ambient + diffuse*max(0, normal.Normalize().Dot(lightDir))

		cmd := drawCommand{n: 3, order: len(s.drawCmds)}
		ok := true
		for k, p := range [3]Vec3{a, b, c} {
			sx, sy, depth, visible := cam.Project(p)
			if !visible {
				ok = false
				break
			}
			cmd.depth += depth / 3
			cmd.verts[k] = ebiten.Vertex{
				DstX: float32(sx), DstY: float32(sy),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: float32(col.R*shade) * alpha,
				ColorG: float32(col.G*shade) * alpha,
				ColorB: float32(col.B*shade) * alpha,
				ColorA: alpha,
			}
		}
		if ok {
			s.drawCmds = append(s.drawCmds, cmd)
		}
	}
}

// emitLabel draws the label's glyph texture as a quad on the front of the
// extruded glyphs, clipped to the visible height.
func (s *Scene) emitLabel(n *Node) {
	tb := n.Label
	if tb == nil {
		return
	}
	img := tb.texture()
	if img == nil {
		return
	}
	depthZ := 0.0
	if !n.Mesh.Empty() {
		depthZ = n.Mesh.Bounds().Max.Z
	}
	w, h := tb.Width, tb.visibleHeight()
	o := tb.Origin
	corners := [4]Vec3{
		{o.X, o.Y, depthZ},
		{o.X + w, o.Y, depthZ},
		{o.X + w, o.Y - h, depthZ},
		{o.X, o.Y - h, depthZ},
	}
	src := [4][2]float32{{0, 0}, {float32(w), 0}, {float32(w), float32(h)}, {0, float32(h)}}

	alpha := float32(tb.Color.A * n.worldAlpha)
	cmd := drawCommand{n: 4, image: img, order: len(s.drawCmds)}
	for k, p := range corners {
		sx, sy, depth, visible := s.camera.Project(transformPoint(n.worldTransform, p))
		if !visible {
			return
		}
		cmd.depth += depth / 4
		cmd.verts[k] = ebiten.Vertex{
			DstX: float32(sx), DstY: float32(sy),
			SrcX: src[k][0], SrcY: src[k][1],
			ColorR: float32(tb.Color.R) * alpha,
			ColorG: float32(tb.Color.G) * alpha,
			ColorB: float32(tb.Color.B) * alpha,
			ColorA: alpha,
		}
	}
	s.drawCmds = append(s.drawCmds, cmd)
}

// submit batches consecutive commands sharing a texture.
func (s *Scene) submit(screen *ebiten.Image) {
	var current *ebiten.Image
	flush := func() {
		if len(s.drawInds) > 0 {
			img := current
			if img == nil {
				img = ensureWhitePixel()
			}
			screen.DrawTriangles(s.drawVerts, s.drawInds, img, &ebiten.DrawTrianglesOptions{})
		}
		s.drawVerts = s.drawVerts[:0]
		s.drawInds = s.drawInds[:0]
	}

	for i := range s.drawCmds {
		cmd := &s.drawCmds[i]
		if cmd.image != current || len(s.drawVerts)+4 > 0xFFFF {
			flush()
			current = cmd.image
		}
		base := uint16(len(s.drawVerts))
		s.drawVerts = append(s.drawVerts, cmd.verts[:cmd.n]...)
		if cmd.n == 3 {
			s.drawInds = append(s.drawInds, base, base+1, base+2)
		} else {
			s.drawInds = append(s.drawInds, base, base+1, base+2, base, base+2, base+3)
		}
	}
	flush()
}
