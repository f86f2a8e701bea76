// Package editor is the narrow, cursor-oriented API the editor component
// sees over the gap buffer (§4.2's "Editor lines-storage API" leaf, ≈6% of
// the core): it owns a cursor position and translates ordinary editing
// gestures — typing, backspace, delete, newline, arrow movement — into the
// gapbuf package's row/grapheme-indexed mutations, then hands the buffer's
// `AsStr` view straight to the parser to produce the document tree the
// renderer consumes. Nothing here duplicates gapbuf's own invariants; this
// package only adds cursor bookkeeping on top.
package editor

import (
	"tuicore/internal/gapbuf"
	"tuicore/internal/idx"
	"tuicore/internal/mdast"
	"tuicore/internal/mdparse"
)

// Editor pairs a gap buffer with a single cursor position.
type Editor struct {
	buf    *gapbuf.ZeroCopyGapBuffer
	cursor idx.Pos
}

// New returns an editor over an empty buffer.
func New(opts ...gapbuf.Option) *Editor {
	return &Editor{buf: gapbuf.New(opts...)}
}

// FromString returns an editor over a buffer pre-populated with s, cursor
// at the start.
func FromString(s string, opts ...gapbuf.Option) *Editor {
	return &Editor{buf: gapbuf.FromString(s, opts...)}
}

// Buffer exposes the underlying gap buffer for callers that need direct
// access (e.g. a renderer reading line content for display).
func (e *Editor) Buffer() *gapbuf.ZeroCopyGapBuffer { return e.buf }

// Cursor returns the current cursor position.
func (e *Editor) Cursor() idx.Pos { return e.cursor }

// Text returns the entire buffer contents as a parser-ready string.
func (e *Editor) Text() string { return e.buf.AsStr() }

// Document reparses the current buffer contents into a document tree. The
// gap buffer's zero-copy guarantee means this is cheap enough to call after
// every keystroke (§4.3).
func (e *Editor) Document() mdast.Document {
	return mdparse.Parse(e.buf.AsStr())
}

// clampCursor snaps e.cursor onto a valid (row, col) pair: row is clamped to
// the buffer's line range, col to the resulting line's display width.
func (e *Editor) clampCursor() {
	n := e.buf.LineCount().Int()
	if n == 0 {
		e.cursor = idx.Pos{}
		return
	}
	if e.cursor.Row.Int() < 0 {
		e.cursor.Row = 0
	}
	if e.cursor.Row.Int() >= n {
		e.cursor.Row = idx.RowIndex(n - 1)
	}
	li, ok := e.buf.GetLineInfo(e.cursor.Row)
	if !ok {
		e.cursor.Col = 0
		return
	}
	if e.cursor.Col.Int() < 0 {
		e.cursor.Col = 0
	}
	if e.cursor.Col.Int() > li.DisplayWidth.Int() {
		e.cursor.Col = idx.ColIndex(li.DisplayWidth.Int())
	}
}

// SetCursor moves the cursor to pos, clamped into range.
func (e *Editor) SetCursor(pos idx.Pos) {
	e.cursor = pos
	e.clampCursor()
}

// InsertText inserts s at the cursor, advancing the cursor past it. s must
// not contain newlines; use NewLine to split a line.
func (e *Editor) InsertText(s string) bool {
	width, ok := e.buf.InsertAtCol(e.cursor.Row, e.cursor.Col, s)
	if !ok {
		return false
	}
	e.cursor.Col = e.cursor.Col.Add(width)
	return true
}

// NewLine splits the current line at the cursor, moving the tail to a new
// line below and placing the cursor at its start.
func (e *Editor) NewLine() bool {
	tail, ok := e.buf.SplitLineAtCol(e.cursor.Row, e.cursor.Col)
	if !ok {
		return false
	}
	if !e.buf.InsertLine(e.cursor.Row.Add(1), tail) {
		return false
	}
	e.cursor = idx.Pos{Row: e.cursor.Row.Add(1), Col: 0}
	return true
}

// Backspace deletes the grapheme before the cursor, joining with the
// previous line if the cursor is at column 0 of a non-first line.
func (e *Editor) Backspace() bool {
	if e.cursor.Col.Int() == 0 {
		if e.cursor.Row.Int() == 0 {
			return false
		}
		prevRow := idx.RowIndex(e.cursor.Row.Int() - 1)
		prevLi, ok := e.buf.GetLineInfo(prevRow)
		if !ok {
			return false
		}
		prevWidth := prevLi.DisplayWidth
		if !e.buf.JoinLines(prevRow) {
			return false
		}
		e.cursor = idx.Pos{Row: prevRow, Col: idx.ColIndex(prevWidth.Int())}
		return true
	}

	li, ok := e.buf.GetLineInfo(e.cursor.Row)
	if !ok {
		return false
	}
	seg := segIndexAtOrBefore(li, e.cursor.Col)
	if seg.Int() == 0 {
		return false
	}
	prevSeg := idx.SegIndex(seg.Int() - 1)
	width := li.Segments[prevSeg.Int()].DisplayWidth
	if !e.buf.DeleteAtGrapheme(e.cursor.Row, prevSeg, 1) {
		return false
	}
	e.cursor.Col -= idx.ColIndex(width.Int())
	return true
}

// DeleteForward deletes the grapheme at the cursor, joining with the next
// line if the cursor is at the end of a non-last line.
func (e *Editor) DeleteForward() bool {
	li, ok := e.buf.GetLineInfo(e.cursor.Row)
	if !ok {
		return false
	}
	seg := segIndexAtOrBefore(li, e.cursor.Col)
	if seg.Int() < len(li.Segments) {
		return e.buf.DeleteAtGrapheme(e.cursor.Row, seg, 1)
	}
	if e.cursor.Row.Int()+1 >= e.buf.LineCount().Int() {
		return false
	}
	return e.buf.JoinLines(e.cursor.Row)
}

// MoveLeft/MoveRight move the cursor by one grapheme, crossing line
// boundaries at the start/end of a line.
func (e *Editor) MoveLeft() {
	if e.cursor.Col.Int() > 0 {
		li, ok := e.buf.GetLineInfo(e.cursor.Row)
		if ok {
			seg := segIndexAtOrBefore(li, e.cursor.Col)
			if seg.Int() > 0 {
				e.cursor.Col = li.Segments[seg.Int()-1].StartDisplayColIndex
				return
			}
		}
		e.cursor.Col = 0
		return
	}
	if e.cursor.Row.Int() == 0 {
		return
	}
	e.cursor.Row = idx.RowIndex(e.cursor.Row.Int() - 1)
	li, _ := e.buf.GetLineInfo(e.cursor.Row)
	e.cursor.Col = idx.ColIndex(li.DisplayWidth.Int())
}

// MoveRight moves the cursor one grapheme to the right, wrapping to the
// next line at end of line.
func (e *Editor) MoveRight() {
	li, ok := e.buf.GetLineInfo(e.cursor.Row)
	if !ok {
		return
	}
	if e.cursor.Col.Int() < li.DisplayWidth.Int() {
		seg := segIndexAtOrBefore(li, e.cursor.Col)
		e.cursor.Col = li.Segments[seg.Int()].StartDisplayColIndex.Add(li.Segments[seg.Int()].DisplayWidth)
		return
	}
	if e.cursor.Row.Int()+1 >= e.buf.LineCount().Int() {
		return
	}
	e.cursor.Row = e.cursor.Row.Add(1)
	e.cursor.Col = 0
}

// MoveUp/MoveDown move the cursor a line, clamping column to the target
// line's width.
func (e *Editor) MoveUp() {
	if e.cursor.Row.Int() == 0 {
		return
	}
	e.cursor.Row = idx.RowIndex(e.cursor.Row.Int() - 1)
	e.clampCursor()
}

func (e *Editor) MoveDown() {
	if e.cursor.Row.Int()+1 >= e.buf.LineCount().Int() {
		return
	}
	e.cursor.Row = e.cursor.Row.Add(1)
	e.clampCursor()
}

// segIndexAtOrBefore returns the grapheme index whose left edge is at col,
// or len(segments) if col is at or past line end.
func segIndexAtOrBefore(li gapbuf.LineInfo, col idx.ColIndex) idx.SegIndex {
	for i, s := range li.Segments {
		if s.StartDisplayColIndex.Int() >= col.Int() {
			return idx.SegIndex(i)
		}
	}
	return idx.SegIndex(len(li.Segments))
}
