// Package offscreen holds the server-side materialised frame: a row-major
// grid of PixelChar cells plus the terminal mode state that travels with
// it. It is the canonical "what should be on screen right now" — the
// compositor is its only writer, the diff engine its only comparator.
package offscreen

import (
	"tuicore/internal/idx"
	"tuicore/internal/tuistyle"
)

// PixelKind distinguishes the three shapes a cell can take.
type PixelKind int

const (
	PixelPlainText PixelKind = iota
	PixelSpacer
	PixelVoid
)

// PixelChar is one terminal cell. It is deliberately Copy-only — no owned
// heap data — so a full-buffer copy (e.g. for diffing) is just a memcpy of
// a flat slice.
type PixelChar struct {
	Kind        PixelKind
	DisplayChar rune
	Style       tuistyle.Style
}

// Spacer is the cell written into the column to the right of a wide
// grapheme, reserving its space without itself being paintable content.
var Spacer = PixelChar{Kind: PixelSpacer}

// Void is the cell written where nothing has been painted at all.
var Void = PixelChar{Kind: PixelVoid}

// PlainText constructs a cell carrying one displayable character.
func PlainText(ch rune, style tuistyle.Style) PixelChar {
	return PixelChar{Kind: PixelPlainText, DisplayChar: ch, Style: style}
}

// TerminalModeState tracks the modes a raw-mode/alt-screen guard (§4.8) has
// put the terminal into, so the backend can skip redundant mode-toggle
// sequences and the guard can always emit the exact inverse on release.
type TerminalModeState struct {
	IsRawMode             bool
	AltScreenActive       bool
	MouseTrackingEnabled  bool
	BracketedPasteEnabled bool
}

// Line is one row of cells, always exactly Size.Width long.
type Line []PixelChar

// Buffer is the canonical materialised frame.
type Buffer struct {
	Rows []Line
	Size idx.Size
	Mode TerminalModeState
}

// New allocates a buffer of the given size with every cell Void.
func New(size idx.Size) *Buffer {
	b := &Buffer{Size: size}
	b.Rows = make([]Line, size.Height.Int())
	for i := range b.Rows {
		b.Rows[i] = make(Line, size.Width.Int())
	}
	return b
}

// Get returns the cell at (row, col), or Void if out of bounds.
func (b *Buffer) Get(pos idx.Pos) PixelChar {
	if !b.inBounds(pos) {
		return Void
	}
	return b.Rows[pos.Row.Int()][pos.Col.Int()]
}

// Set writes a cell at (row, col). Out-of-bounds writes are silently
// clipped (§4.4).
func (b *Buffer) Set(pos idx.Pos, cell PixelChar) {
	if !b.inBounds(pos) {
		return
	}
	b.Rows[pos.Row.Int()][pos.Col.Int()] = cell
}

func (b *Buffer) inBounds(pos idx.Pos) bool {
	return pos.Row.Int() >= 0 && pos.Row.Int() < len(b.Rows) &&
		pos.Col.Int() >= 0 && pos.Col.Int() < b.Size.Width.Int()
}

// Clear resets every cell to Void, leaving Size and Mode untouched.
func (b *Buffer) Clear() {
	for _, row := range b.Rows {
		for i := range row {
			row[i] = Void
		}
	}
}

// Resize reallocates the grid, preserving overlapping content — the same
// "copy what fits" policy the teacher's Buffer.Resize uses.
func (b *Buffer) Resize(size idx.Size) {
	newRows := make([]Line, size.Height.Int())
	for i := range newRows {
		newRows[i] = make(Line, size.Width.Int())
	}

	minH := size.Height.Int()
	if len(b.Rows) < minH {
		minH = len(b.Rows)
	}
	minW := size.Width.Int()
	if b.Size.Width.Int() < minW {
		minW = b.Size.Width.Int()
	}
	for y := 0; y < minH; y++ {
		copy(newRows[y][:minW], b.Rows[y][:minW])
	}

	b.Rows = newRows
	b.Size = size
}

// Equal reports whether two buffers have identical dimensions and content,
// used by tests and by the diff engine's idempotence checks.
func Equal(a, b *Buffer) bool {
	if a.Size != b.Size {
		return false
	}
	for y := range a.Rows {
		for x := range a.Rows[y] {
			if a.Rows[y][x] != b.Rows[y][x] {
				return false
			}
		}
	}
	return true
}
