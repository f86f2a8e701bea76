// Package segmenter turns a line of text into grapheme-level metadata: byte
// spans, display columns and display widths. It is the leaf of the whole
// pipeline — the gap buffer rebuilds this after every mutation, so it has to
// be fast on the common case (plain ASCII editing).
package segmenter

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"tuicore/internal/idx"
)

// Seg is one grapheme's metadata within a line.
type Seg struct {
	StartByteIndex      idx.ByteIndex
	EndByteIndex        idx.ByteIndex // exclusive
	BytesSize           idx.Length
	DisplayWidth        idx.ColWidth
	SegIndex            idx.SegIndex
	StartDisplayColIndex idx.ColIndex
}

// Segments is the per-line grapheme array produced by BuildSegments.
type Segments []Seg

// TotalDisplayWidth sums the display width of every segment.
func (s Segments) TotalDisplayWidth() idx.ColWidth {
	var w idx.ColWidth
	for _, seg := range s {
		w += seg.DisplayWidth
	}
	return w
}

// BuildSegments computes grapheme metadata for s.
//
// ASCII fast path: when s is pure ASCII, one byte is one grapheme of display
// width 1, computed by direct indexing with no Unicode library call. This is
// the path taken on essentially every keystroke of plain-text editing, so it
// must never touch uniseg.
func BuildSegments(s string) Segments {
	if isASCII(s) {
		return buildASCIISegments(s)
	}
	return buildUnicodeSegments(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

func buildASCIISegments(s string) Segments {
	segs := make(Segments, len(s))
	var col idx.ColIndex
	for i := 0; i < len(s); i++ {
		segs[i] = Seg{
			StartByteIndex:       idx.ByteIndex(i),
			EndByteIndex:         idx.ByteIndex(i + 1),
			BytesSize:            1,
			DisplayWidth:         1,
			SegIndex:             idx.SegIndex(i),
			StartDisplayColIndex: col,
		}
		col++
	}
	return segs
}

func buildUnicodeSegments(s string) Segments {
	var segs Segments
	var (
		col    idx.ColIndex
		segIdx idx.SegIndex
	)

	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		start, end := gr.Positions()
		width := graphemeDisplayWidth(runes)

		segs = append(segs, Seg{
			StartByteIndex:       idx.ByteIndex(start),
			EndByteIndex:         idx.ByteIndex(end),
			BytesSize:            idx.Length(end - start),
			DisplayWidth:         idx.ColWidth(width),
			SegIndex:             segIdx,
			StartDisplayColIndex: col,
		})

		col += idx.ColIndex(width)
		segIdx++
	}
	return segs
}

// graphemeDisplayWidth approximates UAX #11: the cluster's width is the
// runewidth of its first, widest-relevant rune — combining marks (runewidth 0)
// attached to a base rune do not add width, and a single wide rune (CJK,
// emoji) makes the whole cluster width 2.
func graphemeDisplayWidth(runes []rune) int {
	width := 0
	for _, r := range runes {
		w := runewidth.RuneWidth(r)
		if w > width {
			width = w
		}
	}
	if width == 0 && len(runes) > 0 {
		// A cluster composed entirely of zero-width runes still occupies one
		// cell so the cursor has somewhere to sit.
		width = 1
	}
	return width
}

// GraphemeCount returns the number of graphemes in s without allocating
// segment metadata — used by callers that only need a count.
func GraphemeCount(s string) int {
	if isASCII(s) {
		return len(s)
	}
	n := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		n++
	}
	return n
}
