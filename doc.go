// Package placard is a retained-mode 3D note wall for [Ebitengine].
//
// Users pin labeled placards ("notes") in a 3D viewport and drag them around.
// The package keeps an ordered list of note records in step with a scene
// graph: every frame the [Reconciler] builds placards for new notes, removes
// placards whose notes are gone, and leaves everything else alone. Drag
// gestures flow back into the records through the [DragController], so a
// rebuilt placard reappears where it was left.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window with the
// keyboard controls and overlay:
//
//	font, _ := placard.DefaultFont(16)
//	board := placard.NewBoard(placard.DefaultConfig(), font)
//	placard.Run(board, placard.RunConfig{ShowOverlay: true})
//
// For full control, implement [ebiten.Game] yourself and call
// [Board.Update] and [Board.Draw] directly:
//
//	type Game struct{ board *placard.Board }
//
//	func (g *Game) Update() error         { g.board.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.board.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Notes and placards
//
// A [NoteRecord] is the authoritative state of a note: its ID, text and
// position. A placard is the [Node] representing it: a flat box mesh with a
// label child carrying the shaped text. Both carry the note ID as their
// identity tag. Records only store the placard's node ID; the reconciler's
// index resolves it to the live node.
//
// Commands ([Board.CreateNote], [Board.ClearAll], [Board.DeleteNote]) only
// touch the [NoteStore]. The scene catches up on the next [Board.Update]:
//
//	board.CreateNote("buy milk")
//	board.Update() // the placard now exists
//
// # Input
//
// Pointer input is turned into a pick ray by the [Camera] and tested against
// each placard's hit region. Scene-level handlers ([Scene.OnClick],
// [Scene.OnDrag], ...) and per-node callbacks receive a [PointerContext] or
// [DragContext]. Synthetic input ([Scene.InjectDrag]) follows the same path
// and backs the JSON scripts loaded by [LoadScript].
//
// # Substrate
//
// The reconciler and drag controller change what is shown only through the
// [Substrate] interface. [Scene] implements it; tests and adapters can plug
// in their own. An optional [EntityStore] receives interaction and lifecycle
// events; see the ecs subpackage for a Donburi bridge.
//
// # Debug mode
//
// [Scene.SetDebugMode] makes use of disposed nodes panic and audits the tree
// after each reconcile pass, purging stray placards the index does not own.
//
// [Ebitengine]: https://ebitengine.org
package placard
