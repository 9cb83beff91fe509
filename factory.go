package placard

// maxLabelGlyphs keeps extruded label meshes inside the uint16 index range
// (8 corners per glyph cell).
const maxLabelGlyphs = 0xFFFF / 8

// Factory builds placard and label geometry from note content. All methods
// are pure: equal inputs produce equal meshes and nothing is retained.
type Factory struct {
	placard PlacardConfig
	label   LabelConfig
	shaper  Shaper
}

// NewFactory creates a factory using cfg for dimensions and colors and
// shaper for text layout.
func NewFactory(cfg *Config, shaper Shaper) *Factory {
	return &Factory{placard: cfg.Placard, label: cfg.Label, shaper: shaper}
}

// Footprint returns the placard's local-space box.
func (f *Factory) Footprint() Box {
	return BoxFromSize(f.placard.Size)
}

// LabelOffset returns the label's position relative to the placard origin:
// just in front of the +Z face.
func (f *Factory) LabelOffset() Vec3 {
	return Vec3{Z: f.placard.Size.Z/2 + f.label.Offset}
}

// BuildPlacard returns the flat box mesh and opaque material shared by every note.
func (f *Factory) BuildPlacard() (*Mesh, Material) {
	c := f.placard.Color
	c.A = 1
	return NewBoxMesh(f.Footprint()), Material{Color: c}
}

// BuildLabel returns the extruded glyph mesh and material for text. Empty
// text yields an empty mesh. Text that overflows the placard is kept whole;
// clipping is left to the renderer.
func (f *Factory) BuildLabel(text string) (*Mesh, Material) {
	block := f.shapeLabel(text)
	return f.labelMesh(block), Material{Color: f.label.Color}
}

// shapeLabel shapes text into a block positioned on the placard face.
func (f *Factory) shapeLabel(text string) *TextBlock {
	var glyphs []Glyph
	if f.shaper != nil {
		glyphs = f.shaper.Shape(text, f.label.WrapWidth)
	}
	block := newTextBlock(text, f.shaper, f.label.Color, glyphs)
	block.MaxHeight = f.placard.Size.Y * f.label.MaxHeightRatio
	block.Origin = Vec3{X: -block.Width / 2, Y: block.visibleHeight() / 2}
	return block
}

// labelMesh extrudes each glyph cell of block into a thin box of depth
// LabelConfig.Depth, starting at the label plane and growing toward +Z.
func (f *Factory) labelMesh(block *TextBlock) *Mesh {
	n := min(len(block.Glyphs), maxLabelGlyphs)
	verts := make([]Vec3, 0, n*8)
	inds := make([]uint16, 0, n*36)
	for _, g := range block.Glyphs[:n] {
		if g.Width <= 0 || g.Height <= 0 {
			continue
		}
		x0 := block.Origin.X + g.X
		top := block.Origin.Y - g.Y
		verts, inds = appendBox(verts, inds, Box{
			Min: Vec3{x0, top - g.Height, 0},
			Max: Vec3{x0 + g.Width, top, f.label.Depth},
		})
	}
	return NewMesh(verts, inds)
}

// newEntity builds the complete visual entity for rec: placard node with
// material, capability set and identity tag, plus its label child. Nothing is
// attached to the scene.
func (f *Factory) newEntity(rec NoteRecord) *Node {
	mesh, mat := f.BuildPlacard()
	n := NewPlacard("note", mesh, mat)
	n.NoteID = rec.ID
	n.Interactable = true
	n.Interaction = NewInteraction(rec.ID, f.Footprint())
	n.SetPosition(rec.Position)

	block := f.shapeLabel(rec.Text)
	label := NewLabel("label", block, f.labelMesh(block), Material{Color: f.label.Color})
	label.NoteID = rec.ID
	label.SetPosition(f.LabelOffset())
	n.AddChild(label)
	return n
}
