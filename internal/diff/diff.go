// Package diff compares two offscreen buffers and yields the minimal set of
// per-row changed-cell runs needed to bring a terminal showing `previous`
// to a state matching `current` (§4.5).
package diff

import (
	"tuicore/internal/idx"
	"tuicore/internal/offscreen"
)

// Chunk is one contiguous run of changed cells on a single row.
type Chunk struct {
	Row      idx.RowIndex
	ColStart idx.ColIndex
	Cells    []offscreen.PixelChar
}

// Chunks is an ordered sequence of per-row change runs.
type Chunks []Chunk

// Diff compares previous and current, which must have equal Size, and
// returns the byte-minimal (to a first approximation) set of chunks:
// consecutive changed cells coalesce into one chunk, unchanged trailing
// cells on a row produce no chunk tail, and unchanged rows produce no
// chunks at all.
func Diff(previous, current *offscreen.Buffer) Chunks {
	var chunks Chunks
	rows := len(current.Rows)

	for y := 0; y < rows; y++ {
		prevRow := previous.Rows[y]
		curRow := current.Rows[y]

		x := 0
		width := len(curRow)
		for x < width {
			if prevRow[x] == curRow[x] {
				x++
				continue
			}
			start := x
			var cells []offscreen.PixelChar
			for x < width && prevRow[x] != curRow[x] {
				cells = append(cells, curRow[x])
				x++
			}
			chunks = append(chunks, Chunk{
				Row:      idx.RowIndex(y),
				ColStart: idx.ColIndex(start),
				Cells:    cells,
			})
		}
	}

	return chunks
}

// Apply overwrites previous's cells with current's for every cell named in
// chunks, returning the result. This is the "applying DiffChunks to a
// terminal whose displayed state equals previous" contract (§4.5) expressed
// in-memory, used by tests that check diff correctness without a real
// terminal.
func Apply(previous *offscreen.Buffer, chunks Chunks) *offscreen.Buffer {
	result := &offscreen.Buffer{Size: previous.Size, Mode: previous.Mode}
	result.Rows = make([]offscreen.Line, len(previous.Rows))
	for y := range previous.Rows {
		result.Rows[y] = append(offscreen.Line(nil), previous.Rows[y]...)
	}
	for _, c := range chunks {
		row := result.Rows[c.Row.Int()]
		for i, cell := range c.Cells {
			row[c.ColStart.Int()+i] = cell
		}
	}
	return result
}
