package gapbuf

import "tuicore/internal/idx"

// InsertAtGrapheme inserts text at grapheme position seg within row.
//
// Algorithm (§4.2): map seg to a byte offset via the line's segments; grow
// the slot if the new content would reach the slot boundary; shift the
// trailing bytes right by len(text); copy text into the hole; rewrite the
// `\n` terminator and re-null-pad the tail; rebuild LineInfo by re-running
// the segmenter over the new content.
func (b *ZeroCopyGapBuffer) InsertAtGrapheme(row idx.RowIndex, seg idx.SegIndex, text string) bool {
	if !b.inRange(row) {
		return false
	}
	li := b.lines[row.Int()]
	relPos, ok := li.byteOffsetForSeg(seg)
	if !ok {
		return false
	}

	newContentLen := li.ContentLen.Int() + len(text)
	if newContentLen+1 > b.slotSize[row.Int()] {
		b.growSlot(row.Int(), newContentLen+1)
		li = b.lines[row.Int()]
	}

	start := li.BufferOffset.Int()
	bytePos := start + relPos
	oldContentEnd := start + li.ContentLen.Int()

	// Shift [bytePos, oldContentEnd) right by len(text) to open a hole, then
	// write text into it.
	copy(b.buffer[bytePos+len(text):bytePos+len(text)+(oldContentEnd-bytePos)], b.buffer[bytePos:oldContentEnd])
	copy(b.buffer[bytePos:], text)

	newContentEnd := oldContentEnd + len(text)
	b.buffer[newContentEnd] = '\n'

	newContent := string(b.buffer[start:newContentEnd])
	b.lines[row.Int()] = buildLineInfo(li.BufferOffset, newContent)
	b.checkInvariants("InsertAtGrapheme")
	return true
}

// DeleteAtGrapheme deletes n graphemes starting at grapheme index seg within
// row. Mirrors InsertAtGrapheme: shift the tail left, rewrite the
// terminator, re-null-pad, rebuild segments.
func (b *ZeroCopyGapBuffer) DeleteAtGrapheme(row idx.RowIndex, seg idx.SegIndex, n idx.Length) bool {
	if !b.inRange(row) || n.Int() < 0 {
		return false
	}
	li := b.lines[row.Int()]
	segs := li.Segments
	if seg.Int() < 0 || seg.Int() > len(segs) {
		return false
	}
	endSeg := seg.Int() + n.Int()
	if endSeg > len(segs) {
		return false
	}
	if n.Int() == 0 {
		return true
	}

	startByte, ok := li.byteOffsetForSeg(seg)
	if !ok {
		return false
	}
	endByte, ok := li.byteOffsetForSeg(idx.SegIndex(endSeg))
	if !ok {
		return false
	}

	start := li.BufferOffset.Int()
	oldContentEnd := start + li.ContentLen.Int()
	removed := endByte - startByte

	// Shift the tail (from endByte to old content end) left over the
	// deleted span.
	copy(b.buffer[start+startByte:], b.buffer[start+endByte:oldContentEnd])

	newContentEnd := oldContentEnd - removed
	b.buffer[newContentEnd] = '\n'
	for p := newContentEnd + 1; p <= oldContentEnd; p++ {
		b.buffer[p] = 0
	}

	newContent := string(b.buffer[start:newContentEnd])
	b.lines[row.Int()] = buildLineInfo(li.BufferOffset, newContent)
	b.checkInvariants("DeleteAtGrapheme")
	return true
}

// DeleteRange deletes graphemes [start, end) within row.
func (b *ZeroCopyGapBuffer) DeleteRange(row idx.RowIndex, start, end idx.SegIndex) bool {
	if end.Int() < start.Int() {
		return false
	}
	return b.DeleteAtGrapheme(row, start, idx.Length(end.Int()-start.Int()))
}

// InsertAtCol inserts text at display column col within row, returning the
// display width actually inserted. If col falls inside a wide grapheme, it
// snaps to the grapheme's left edge (§4.2).
func (b *ZeroCopyGapBuffer) InsertAtCol(row idx.RowIndex, col idx.ColIndex, text string) (idx.ColWidth, bool) {
	if !b.inRange(row) {
		return 0, false
	}
	li := b.lines[row.Int()]
	seg := segIndexForCol(li, col)
	before := widthOf(text)
	if !b.InsertAtGrapheme(row, seg, text) {
		return 0, false
	}
	return before, true
}

func widthOf(s string) idx.ColWidth {
	li := buildLineInfo(0, s)
	return li.DisplayWidth
}

// segIndexForCol maps a display column to the grapheme index whose left
// edge is at or before that column; a column landing mid-wide-grapheme
// snaps left.
func segIndexForCol(li LineInfo, col idx.ColIndex) idx.SegIndex {
	segs := li.Segments
	for i, s := range segs {
		segStart := s.StartDisplayColIndex
		segEnd := s.StartDisplayColIndex.Add(s.DisplayWidth)
		if col.Int() < segEnd.Int() {
			if col.Int() <= segStart.Int() {
				return idx.SegIndex(i)
			}
			// col lands inside this (necessarily wide) grapheme: snap left.
			return idx.SegIndex(i)
		}
	}
	return idx.SegIndex(len(segs))
}

// SplitLineAtCol truncates row at display column col and returns the
// removed tail as an owned string. The tail never includes a partial wide
// grapheme — col snaps to a grapheme boundary exactly as InsertAtCol does.
func (b *ZeroCopyGapBuffer) SplitLineAtCol(row idx.RowIndex, col idx.ColIndex) (string, bool) {
	if !b.inRange(row) {
		return "", false
	}
	li := b.lines[row.Int()]
	seg := segIndexForCol(li, col)
	relPos, ok := li.byteOffsetForSeg(seg)
	if !ok {
		return "", false
	}

	start := li.BufferOffset.Int()
	oldContentEnd := start + li.ContentLen.Int()
	tail := string(b.buffer[start+relPos : oldContentEnd])

	newContentEnd := start + relPos
	b.buffer[newContentEnd] = '\n'
	for p := newContentEnd + 1; p <= oldContentEnd; p++ {
		b.buffer[p] = 0
	}

	newContent := string(b.buffer[start:newContentEnd])
	b.lines[row.Int()] = buildLineInfo(li.BufferOffset, newContent)
	b.checkInvariants("SplitLineAtCol")
	return tail, true
}

// JoinLines concatenates row and row+1 into row, removing row+1.
func (b *ZeroCopyGapBuffer) JoinLines(row idx.RowIndex) bool {
	if !b.inRange(row) || !b.inRange(row.Add(1)) {
		return false
	}
	a, _ := b.GetLineContent(row)
	c, _ := b.GetLineContent(row.Add(1))
	b.RemoveLine(row.Add(1))
	b.SetLine(row, a+c)
	return true
}
