// Package compositor rasterises a RenderOpIR stream onto an OffscreenBuffer
// and produces the RenderOpOutput sequence sufficient to paint it (§4.4).
// Z-order is simply program order: later writes overwrite earlier ones, no
// separate z-index sort. A frame is atomic from this package's perspective —
// Compose always finishes writing the buffer before returning, so the diff
// engine never observes a partially-composited frame (§5).
package compositor

import (
	"unicode/utf8"

	"tuicore/internal/idx"
	"tuicore/internal/offscreen"
	"tuicore/internal/renderop"
	"tuicore/internal/segmenter"
	"tuicore/internal/tuistyle"
)

type clipRect struct {
	origin idx.Pos
	size   idx.Size
}

// Compositor holds no state across calls to Compose — the clip stack and
// cursor tracking below are scoped to a single composition pass.
type Compositor struct{}

// New returns a ready-to-use Compositor.
func New() *Compositor { return &Compositor{} }

// Compose writes ops onto buf and returns the RenderOpOutputVec sufficient
// to paint the whole buffer. Resize requests reallocate buf in place.
func (c *Compositor) Compose(buf *offscreen.Buffer, ops renderop.IRVec) renderop.OutputVec {
	var out renderop.OutputVec

	clips := []clipRect{{origin: idx.Pos{}, size: buf.Size}}
	cursor := idx.Pos{}

	for _, op := range ops {
		switch op.Kind {
		case renderop.IRResize:
			buf.Resize(op.Size)
			clips[0] = clipRect{origin: idx.Pos{}, size: op.Size}

		case renderop.IRSetPosition:
			cursor = op.Pos

		case renderop.IREnterBox:
			clips = append(clips, clipRect{origin: op.Pos, size: op.Size})
			cursor = op.Pos

		case renderop.IRExitBox:
			if len(clips) > 1 {
				clips = clips[:len(clips)-1]
			}

		case renderop.IRDrawText:
			clip := clips[len(clips)-1]
			written := drawClipped(buf, clip, cursor, op.Text, op.Style, op.HasStyle)
			out = append(out,
				renderop.Output{Kind: renderop.OutMoveCursorPositionAbs, Pos: cursor},
				renderop.Output{Kind: renderop.OutCompositorPaintText, Text: written, Style: op.Style, HasStyle: op.HasStyle},
			)
			cursor.Col += idx.ColIndex(displayWidth(written))

		case renderop.IRRequestCursorVisible:
			out = append(out, renderop.Output{Kind: renderop.OutShowCursor})
		case renderop.IRRequestCursorHidden:
			out = append(out, renderop.Output{Kind: renderop.OutHideCursor})
		case renderop.IRRequestRawMode:
			buf.Mode.IsRawMode = true
			out = append(out, renderop.Output{Kind: renderop.OutEnterRawMode})
		case renderop.IRRequestNormalMode:
			buf.Mode.IsRawMode = false
			out = append(out, renderop.Output{Kind: renderop.OutExitRawMode})
		case renderop.IRRequestAltScreen:
			buf.Mode.AltScreenActive = true
			out = append(out, renderop.Output{Kind: renderop.OutEnterAltScreen})
		case renderop.IRRequestNormalScreen:
			buf.Mode.AltScreenActive = false
			out = append(out, renderop.Output{Kind: renderop.OutExitAltScreen})
		}
	}

	return out
}

// drawClipped writes text into buf starting at pos, clipped to clip and to
// the buffer's own bounds, handling wide graphemes by writing a Void cell
// into the column they reserve. It returns the substring actually written
// (used to advance the caller's cursor and to build the PrintStyledText
// output for a byte-exact backend emission).
func drawClipped(buf *offscreen.Buffer, clip clipRect, pos idx.Pos, text string, style tuistyle.Style, hasStyle bool) string {
	if !hasStyle {
		style = tuistyle.Style{}
	}

	maxCol := clip.origin.Col.Int() + clip.size.Width.Int()
	if boundCol := buf.Size.Width.Int(); boundCol < maxCol {
		maxCol = boundCol
	}
	minCol := clip.origin.Col.Int()
	if minCol < 0 {
		minCol = 0
	}
	row := pos.Row
	if row.Int() < clip.origin.Row.Int() || row.Int() >= clip.origin.Row.Int()+clip.size.Height.Int() {
		return ""
	}
	if row.Int() < 0 || row.Int() >= buf.Size.Height.Int() {
		return ""
	}

	col := pos.Col.Int()
	writtenStart := 0
	writtenEnd := 0

	segs := segmenter.BuildSegments(text)
	for _, seg := range segs {
		if col >= maxCol {
			break
		}
		width := seg.DisplayWidth.Int()
		if col < minCol {
			col += width
			writtenStart = seg.EndByteIndex.Int()
			continue
		}

		ch, _ := utf8.DecodeRuneInString(text[seg.StartByteIndex.Int():seg.EndByteIndex.Int()])
		buf.Set(idx.Pos{Row: row, Col: idx.ColIndex(col)}, offscreen.PlainText(ch, style))
		if width == 2 && col+1 < maxCol {
			buf.Set(idx.Pos{Row: row, Col: idx.ColIndex(col + 1)}, offscreen.Void)
		}

		col += width
		writtenEnd = seg.EndByteIndex.Int()
	}

	if writtenEnd <= writtenStart {
		return ""
	}
	return text[writtenStart:writtenEnd]
}

func displayWidth(s string) int {
	return segmenter.BuildSegments(s).TotalDisplayWidth().Int()
}
