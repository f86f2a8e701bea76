package backend

import (
	"strconv"

	"tuicore/internal/ansiterm"
	"tuicore/internal/renderop"
	"tuicore/internal/tuistyle"
)

const esc = "\x1b["

// DirectBackend is the primary PaintRenderOp implementation: it formats
// every escape sequence itself, byte for byte, the way the teacher's
// Screen.writeCursorPos built decimal parameters with strconv.AppendInt
// rather than fmt.Sprintf (tui/screen.go). Cursor position and active style
// are tracked across calls so repeated positioning/style ops collapse to
// nothing, per §4.7's RenderOpsLocalData contract and scenario S6.
type DirectBackend struct {
	renderer *ansiterm.PixelCharRenderer
	local    *RenderOpsLocalData
	scratch  []byte
}

// NewDirectBackend constructs a DirectBackend. opts are forwarded to the
// underlying PixelCharRenderer (color support override, style-diffing
// toggle for tests).
func NewDirectBackend(opts ...ansiterm.Option) *DirectBackend {
	return &DirectBackend{
		renderer: ansiterm.New(opts...),
		local:    newLocalData(),
		scratch:  make([]byte, 0, 256),
	}
}

// Paint executes ops against sink, writing directly-formatted ANSI bytes.
func (d *DirectBackend) Paint(ops renderop.OutputVec, sink Sink) error {
	d.scratch = d.scratch[:0]
	buf := d.scratch

	for _, op := range ops {
		buf = d.appendOp(buf, op)
	}
	d.scratch = buf

	if len(buf) == 0 {
		return nil
	}
	if _, err := sink.Write(buf); err != nil {
		return err
	}
	return sink.Flush()
}

func (d *DirectBackend) appendOp(buf []byte, op renderop.Output) []byte {
	switch op.Kind {
	case renderop.OutEnterRawMode, renderop.OutExitRawMode, renderop.OutNoop:
		return buf

	case renderop.OutMoveCursorPositionAbs:
		if d.local.cursorKnown && d.local.cursorRow == op.Pos.Row.Int() && d.local.cursorCol == op.Pos.Col.Int() {
			return buf
		}
		buf = append(buf, esc...)
		buf = strconv.AppendInt(buf, int64(op.Pos.Row.Int()+1), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(op.Pos.Col.Int()+1), 10)
		buf = append(buf, 'H')
		d.local.cursorKnown = true
		d.local.cursorRow = op.Pos.Row.Int()
		d.local.cursorCol = op.Pos.Col.Int()
		return buf

	case renderop.OutMoveCursorToColumn:
		if d.local.cursorKnown && d.local.cursorCol == op.Col.Int() {
			return buf
		}
		buf = append(buf, esc...)
		buf = strconv.AppendInt(buf, int64(op.Col.Int()+1), 10)
		buf = append(buf, 'G')
		d.local.cursorKnown = true
		d.local.cursorCol = op.Col.Int()
		return buf

	case renderop.OutMoveCursorToNextLine:
		buf = append(buf, esc...)
		buf = strconv.AppendInt(buf, int64(op.Rows.Int()), 10)
		buf = append(buf, 'E')
		if d.local.cursorKnown {
			d.local.cursorRow += op.Rows.Int()
			d.local.cursorCol = 0
		}
		return buf

	case renderop.OutMoveCursorToPreviousLine:
		buf = append(buf, esc...)
		buf = strconv.AppendInt(buf, int64(op.Rows.Int()), 10)
		buf = append(buf, 'F')
		if d.local.cursorKnown {
			d.local.cursorRow -= op.Rows.Int()
			d.local.cursorCol = 0
		}
		return buf

	case renderop.OutClearScreen:
		return append(buf, esc+"2J"...)
	case renderop.OutClearCurrentLine:
		return append(buf, esc+"2K"...)
	case renderop.OutClearToEndOfLine:
		return append(buf, esc+"0K"...)
	case renderop.OutClearToStartOfLine:
		return append(buf, esc+"1K"...)

	case renderop.OutSetFgColor:
		return appendStandaloneColor(buf, op.Color, 38)
	case renderop.OutSetBgColor:
		return appendStandaloneColor(buf, op.Color, 48)
	case renderop.OutSetAttributes:
		return appendStandaloneAttributes(buf, op.Attributes)
	case renderop.OutResetColor:
		return append(buf, esc+"0m"...)

	case renderop.OutPrintStyledText, renderop.OutCompositorPaintText:
		return d.renderer.AppendStyledText(buf, op.Text, op.Style, op.HasStyle)

	case renderop.OutShowCursor:
		return append(buf, esc+"?25h"...)
	case renderop.OutHideCursor:
		return append(buf, esc+"?25l"...)
	case renderop.OutSaveCursorPosition:
		return append(buf, esc+"s"...)
	case renderop.OutRestoreCursorPosition:
		d.local.cursorKnown = false
		return append(buf, esc+"u"...)

	case renderop.OutEnterAltScreen:
		return append(buf, esc+"?1049h"...)
	case renderop.OutExitAltScreen:
		return append(buf, esc+"?1049l"...)
	case renderop.OutEnableMouseTracking:
		return append(buf, esc+"?1003h"+esc+"?1015h"+esc+"?1006h"...)
	case renderop.OutDisableMouseTracking:
		return append(buf, esc+"?1006l"+esc+"?1015l"+esc+"?1003l"...)
	case renderop.OutEnableBracketedPaste:
		return append(buf, esc+"?2004h"...)
	case renderop.OutDisableBracketedPaste:
		return append(buf, esc+"?2004l"...)
	}
	return buf
}

// appendStandaloneColor formats a bare SetFgColor/SetBgColor operation. This
// is always emitted at true color (no capability downgrade): the Common
// vocabulary's standalone color ops are used by callers driving the
// terminal directly rather than through PixelChar composition, which is
// the only path capability detection governs (§4.6 scope).
func appendStandaloneColor(buf []byte, c tuistyle.TuiColor, base int) []byte {
	if c.Kind == tuistyle.ColorNone {
		return buf
	}
	buf = append(buf, esc...)
	buf = strconv.AppendInt(buf, int64(base), 10)
	switch c.Kind {
	case tuistyle.ColorRGB:
		buf = append(buf, ';', '2', ';')
		buf = strconv.AppendInt(buf, int64(c.R), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(c.G), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(c.B), 10)
	case tuistyle.ColorAnsi:
		buf = append(buf, ';', '5', ';')
		buf = strconv.AppendInt(buf, int64(c.Ansi256), 10)
	}
	return append(buf, 'm')
}

func appendStandaloneAttributes(buf []byte, a tuistyle.Attribs) []byte {
	emit := func(on bool, code string) {
		if on {
			buf = append(buf, esc...)
			buf = append(buf, code...)
			buf = append(buf, 'm')
		}
	}
	emit(a.Bold, "1")
	emit(a.Dim, "2")
	emit(a.Italic, "3")
	emit(a.Underline, "4")
	emit(a.BlinkSlow, "5")
	emit(a.BlinkRapid, "6")
	emit(a.Reverse, "7")
	emit(a.Hidden, "8")
	emit(a.Strikethrough, "9")
	emit(a.Overline, "53")
	return buf
}
