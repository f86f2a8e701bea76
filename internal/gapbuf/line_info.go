package gapbuf

import (
	"tuicore/internal/idx"
	"tuicore/internal/segmenter"
)

// LineInfo is the metadata the gap buffer keeps alongside the raw bytes of
// one line: where it starts, how long its content is, and its grapheme
// segmentation. The parser and editor never recompute any of this — they
// read it straight off LineInfo.
type LineInfo struct {
	BufferOffset  idx.ByteIndex
	ContentLen    idx.Length
	Segments      segmenter.Segments
	DisplayWidth  idx.ColWidth
	GraphemeCount idx.Length
}

func buildLineInfo(bufferOffset idx.ByteIndex, content string) LineInfo {
	segs := segmenter.BuildSegments(content)
	return LineInfo{
		BufferOffset:  bufferOffset,
		ContentLen:    idx.Length(len(content)),
		Segments:      segs,
		DisplayWidth:  segs.TotalDisplayWidth(),
		GraphemeCount: idx.Length(len(segs)),
	}
}

// byteOffsetForSeg maps a grapheme index within the line to a byte offset
// relative to the start of the line's content. SegIndex equal to the
// grapheme count is the append position (end of content).
func (li LineInfo) byteOffsetForSeg(seg idx.SegIndex) (int, bool) {
	n := len(li.Segments)
	if seg.Int() < 0 || seg.Int() > n {
		return 0, false
	}
	if seg.Int() == n {
		return li.ContentLen.Int(), true
	}
	return li.Segments[seg.Int()].StartByteIndex.Int(), true
}
