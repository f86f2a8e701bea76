// Package docrender is the "higher-level renderer" the data-flow line
// between mdast and the compositor implies but that names no core module of
// its own: it walks a parsed document tree and emits the RenderOpIR sequence
// the compositor consumes, the same job the teacher's tui/render.go
// renderNode did for a basement.Node tree. It lives next to the core
// packages rather than inside cmd/ because both the interactive editor and
// the one-shot CLI need it, but it stays out of SYSTEM OVERVIEW's own module
// list since nothing downstream of it depends on its output beyond
// renderop.IRVec itself.
package docrender

import (
	"fmt"
	"strings"

	"tuicore/internal/diff"
	"tuicore/internal/highlight"
	"tuicore/internal/idx"
	"tuicore/internal/mdast"
	"tuicore/internal/offscreen"
	"tuicore/internal/renderop"
	"tuicore/internal/tuistyle"
)

var (
	styleHeading = tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true, Underline: true}}
	styleBold    = tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}
	styleItalic  = tuistyle.Style{Attribs: tuistyle.Attribs{Italic: true}}
	styleCode    = tuistyle.Style{Attribs: tuistyle.Attribs{Reverse: true}}
	styleLink    = tuistyle.Style{Attribs: tuistyle.Attribs{Underline: true}}
	styleDim     = tuistyle.Style{Attribs: tuistyle.Attribs{Dim: true}}
)

// BuildIR lays doc out top to bottom within a viewport of size, one block
// element per row (paragraphs and list items never wrap here — long lines
// are left for the compositor's clip to truncate), with a blank separator
// row between consecutive blocks, mirroring the blank-line spacing the
// teacher's NodeBlock case produced by always advancing y by one.
func BuildIR(doc mdast.Document, size idx.Size) renderop.IRVec {
	ops := renderop.IRVec{
		{Kind: renderop.IRResize, Size: size},
		{Kind: renderop.IREnterBox, Pos: idx.Pos{}, Size: size},
	}

	row := 0
	height := size.Height.Int()
	for i, el := range doc.Elements {
		if row >= height {
			break
		}
		if i > 0 {
			row++ // blank line between blocks
		}
		row = appendElement(&ops, el, row, height)
	}

	ops = append(ops, renderop.IR{Kind: renderop.IRExitBox})
	return ops
}

// appendElement appends the ops for one block element starting at row,
// returning the row just past what it wrote.
func appendElement(ops *renderop.IRVec, el mdast.Element, row, height int) int {
	switch el.Kind {
	case mdast.ElHeading:
		drawFragments(ops, el.Fragments, 0, row, styleHeading)
		return row + 1

	case mdast.ElText:
		drawFragments(ops, el.Fragments, 0, row, tuistyle.Style{})
		return row + 1

	case mdast.ElSmartList:
		for _, item := range el.Items {
			if row >= height {
				break
			}
			bullet := "- "
			col := drawText(ops, bullet, el.Indent, row, styleDim)
			drawFragments(ops, item.Fragments, col, row, tuistyle.Style{})
			row++
		}
		return row

	case mdast.ElCodeBlock:
		spans := highlight.Highlight(strings.Join(el.Lines, "\n"), el.Language)
		col := 0
		for _, span := range spans {
			parts := strings.Split(span.Text, "\n")
			for i, part := range parts {
				if i > 0 {
					row++
					col = 0
				}
				if part == "" || row >= height {
					continue
				}
				col = drawText(ops, part, col, row, span.Style)
			}
		}
		return row + 1

	case mdast.ElTitle:
		drawText(ops, "Title: "+el.Text, 0, row, styleBold)
		return row + 1
	case mdast.ElDate:
		drawText(ops, "Date: "+el.Text, 0, row, styleDim)
		return row + 1
	case mdast.ElTags:
		drawText(ops, "Tags: "+strings.Join(el.Strings, ", "), 0, row, styleDim)
		return row + 1
	case mdast.ElAuthors:
		drawText(ops, "Authors: "+strings.Join(el.Strings, ", "), 0, row, styleDim)
		return row + 1
	}
	return row
}

// drawFragments renders a run of inline fragments starting at (col, row),
// one IRSetPosition plus one IRDrawText per fragment — the compositor
// advances the cursor column itself after each DrawText op (by the written
// text's display width), so fragments naturally run left to right without
// this function tracking widths.
func drawFragments(ops *renderop.IRVec, frags []mdast.Fragment, col, row int, base tuistyle.Style) {
	*ops = append(*ops, renderop.IR{Kind: renderop.IRSetPosition, Pos: idx.Pos{Row: idx.RowIndex(row), Col: idx.ColIndex(col)}})
	for _, f := range frags {
		text, style := fragmentStyle(f, base)
		*ops = append(*ops, renderop.IR{Kind: renderop.IRDrawText, Text: text, Style: style, HasStyle: true})
	}
}

// drawText renders a single plain string at (col, row) and returns col
// advanced by its rune count (an approximation good enough for the ASCII
// chrome text this function is used for; fragment text goes through
// drawFragments/the compositor's grapheme-aware advance instead).
func drawText(ops *renderop.IRVec, text string, col, row int, style tuistyle.Style) int {
	*ops = append(*ops,
		renderop.IR{Kind: renderop.IRSetPosition, Pos: idx.Pos{Row: idx.RowIndex(row), Col: idx.ColIndex(col)}},
		renderop.IR{Kind: renderop.IRDrawText, Text: text, Style: style, HasStyle: true},
	)
	return col + len([]rune(text))
}

func fragmentStyle(f mdast.Fragment, base tuistyle.Style) (string, tuistyle.Style) {
	switch f.Kind {
	case mdast.FragBold:
		return f.Text, mergeAttribs(base, styleBold)
	case mdast.FragItalic:
		return f.Text, mergeAttribs(base, styleItalic)
	case mdast.FragInlineCode:
		return f.Text, mergeAttribs(base, styleCode)
	case mdast.FragLink:
		return fmt.Sprintf("%s (%s)", f.Text, f.URL), mergeAttribs(base, styleLink)
	case mdast.FragImage:
		return fmt.Sprintf("[image: %s]", f.Text), mergeAttribs(base, styleDim)
	case mdast.FragCheckbox:
		if f.Checked {
			return "[x] ", base
		}
		return "[ ] ", base
	case mdast.FragUnorderedBullet:
		return "- ", base
	case mdast.FragOrderedBullet:
		return fmt.Sprintf("%d. ", f.OrderedN), base
	default:
		return f.Text, base
	}
}

// mergeAttribs ORs extra's attribute flags onto base, keeping base's colors.
func mergeAttribs(base, extra tuistyle.Style) tuistyle.Style {
	a := base.Attribs
	b := extra.Attribs
	return tuistyle.Style{
		Fg: base.Fg,
		Bg: base.Bg,
		Attribs: tuistyle.Attribs{
			Bold:          a.Bold || b.Bold,
			Dim:           a.Dim || b.Dim,
			Italic:        a.Italic || b.Italic,
			Underline:     a.Underline || b.Underline,
			Strikethrough: a.Strikethrough || b.Strikethrough,
			Reverse:       a.Reverse || b.Reverse,
			Hidden:        a.Hidden || b.Hidden,
			Overline:      a.Overline || b.Overline,
			BlinkSlow:     a.BlinkSlow || b.BlinkSlow,
			BlinkRapid:    a.BlinkRapid || b.BlinkRapid,
		},
	}
}

// DiffToOutput turns diff chunks into the MoveCursorPositionAbs +
// CompositorPaintText pairs a backend executes, splitting each chunk at
// style boundaries the way the teacher's Screen.renderUnlocked split on
// backCell.Style != lastStyle — a diff chunk is only guaranteed contiguous
// in position, not in style.
func DiffToOutput(chunks diff.Chunks) renderop.OutputVec {
	var out renderop.OutputVec
	for _, c := range chunks {
		out = append(out, styleRuns(c.Row, c.ColStart.Int(), c.Cells)...)
	}
	return out
}

// BufferToOutput emits the ops needed to paint buf in full, row by row, with
// no previous frame to diff against — used by one-shot (non-interactive)
// rendering, where there is nothing on screen yet to compare to.
func BufferToOutput(buf *offscreen.Buffer) renderop.OutputVec {
	var out renderop.OutputVec
	for y, row := range buf.Rows {
		out = append(out, styleRuns(idx.RowIndex(y), 0, row)...)
	}
	return out
}

// styleRuns splits a run of cells starting at (row, col) into one
// MoveCursorPositionAbs+CompositorPaintText pair per maximal same-style
// sub-run. A PixelVoid cell is the second column of a wide grapheme already
// painted by the preceding cell — it contributes no text of its own (and
// must not break the run on its zero-value Style) but still advances col.
func styleRuns(row idx.RowIndex, col int, cells []offscreen.PixelChar) renderop.OutputVec {
	var out renderop.OutputVec
	i := 0
	for i < len(cells) {
		if cells[i].Kind == offscreen.PixelVoid {
			i++
			col++
			continue
		}
		style := cells[i].Style
		var sb strings.Builder
		j := i
		for j < len(cells) && (cells[j].Kind == offscreen.PixelVoid || cells[j].Style == style) {
			if cells[j].Kind != offscreen.PixelVoid {
				sb.WriteRune(cellRune(cells[j]))
			}
			j++
		}
		out = append(out,
			renderop.Output{Kind: renderop.OutMoveCursorPositionAbs, Pos: idx.Pos{Row: row, Col: idx.ColIndex(col)}},
			renderop.Output{Kind: renderop.OutCompositorPaintText, Text: sb.String(), Style: style, HasStyle: !style.IsDefault()},
		)
		col += j - i
		i = j
	}
	return out
}

func cellRune(p offscreen.PixelChar) rune {
	if p.Kind == offscreen.PixelPlainText {
		return p.DisplayChar
	}
	return ' '
}
