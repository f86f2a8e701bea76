package backend

import (
	"github.com/charmbracelet/x/ansi"

	"tuicore/internal/renderop"
)

// CommandBackend is the second PaintRenderOp implementation (§4.7): a shim
// over a pre-built terminal command library rather than hand-formatted
// escape sequences, grounded on the real charmbracelet/x/ansi call shapes
// used by bubbletea's own renderers (SetCursorPosition, CursorUp/Down,
// EraseEntireLine, SetAltScreenSaveCursorMode and friends). It exists for
// parity testing against DirectBackend and as the migration path a project
// depending on that library would actually take, not as the byte-exact
// reference — DirectBackend owns that role.
type CommandBackend struct {
	local *RenderOpsLocalData
}

// NewCommandBackend constructs a CommandBackend.
func NewCommandBackend() *CommandBackend {
	return &CommandBackend{local: newLocalData()}
}

// Paint executes ops against sink using github.com/charmbracelet/x/ansi's
// sequence builders.
func (c *CommandBackend) Paint(ops renderop.OutputVec, sink Sink) error {
	var buf []byte

	for _, op := range ops {
		buf = c.appendOp(buf, op)
	}

	if len(buf) == 0 {
		return nil
	}
	if _, err := sink.Write(buf); err != nil {
		return err
	}
	return sink.Flush()
}

func (c *CommandBackend) appendOp(buf []byte, op renderop.Output) []byte {
	switch op.Kind {
	case renderop.OutEnterRawMode, renderop.OutExitRawMode, renderop.OutNoop:
		return buf

	case renderop.OutMoveCursorPositionAbs:
		if c.local.cursorKnown && c.local.cursorRow == op.Pos.Row.Int() && c.local.cursorCol == op.Pos.Col.Int() {
			return buf
		}
		buf = append(buf, ansi.SetCursorPosition(op.Pos.Col.Int()+1, op.Pos.Row.Int()+1)...)
		c.local.cursorKnown = true
		c.local.cursorRow = op.Pos.Row.Int()
		c.local.cursorCol = op.Pos.Col.Int()
		return buf

	case renderop.OutMoveCursorToColumn:
		if c.local.cursorKnown && c.local.cursorCol == op.Col.Int() {
			return buf
		}
		row := 0
		if c.local.cursorKnown {
			row = c.local.cursorRow
		}
		buf = append(buf, ansi.SetCursorPosition(op.Col.Int()+1, row+1)...)
		c.local.cursorKnown = true
		c.local.cursorCol = op.Col.Int()
		return buf

	case renderop.OutMoveCursorToNextLine:
		buf = append(buf, ansi.CursorDown(op.Rows.Int())...)
		buf = append(buf, ansi.CR)
		if c.local.cursorKnown {
			c.local.cursorRow += op.Rows.Int()
			c.local.cursorCol = 0
		}
		return buf

	case renderop.OutMoveCursorToPreviousLine:
		buf = append(buf, ansi.CursorUp(op.Rows.Int())...)
		buf = append(buf, ansi.CR)
		if c.local.cursorKnown {
			c.local.cursorRow -= op.Rows.Int()
			c.local.cursorCol = 0
		}
		return buf

	case renderop.OutClearScreen:
		return append(buf, ansi.EraseEntireScreen...)
	case renderop.OutClearCurrentLine:
		return append(buf, ansi.EraseEntireLine...)
	case renderop.OutClearToEndOfLine:
		return append(buf, ansi.EraseLineRight...)
	case renderop.OutClearToStartOfLine:
		// Not a confirmed library constant; formatted directly (CSI 1 K).
		return append(buf, esc+"1K"...)

	case renderop.OutSetFgColor, renderop.OutSetBgColor, renderop.OutSetAttributes:
		return appendStandaloneStyleOp(buf, op)
	case renderop.OutResetColor:
		return append(buf, ansi.ResetStyle...)

	case renderop.OutPrintStyledText, renderop.OutCompositorPaintText:
		if op.HasStyle {
			buf = appendStandaloneStyleOp(buf, renderop.Output{Kind: renderop.OutSetAttributes, Attributes: op.Style.Attribs})
			buf = appendStandaloneColor(buf, op.Style.Fg, 38)
			buf = appendStandaloneColor(buf, op.Style.Bg, 48)
		}
		buf = append(buf, op.Text...)
		if op.HasStyle {
			buf = append(buf, ansi.ResetStyle...)
		}
		return buf

	case renderop.OutShowCursor:
		return append(buf, ansi.ShowCursor...)
	case renderop.OutHideCursor:
		return append(buf, ansi.HideCursor...)
	case renderop.OutSaveCursorPosition:
		// Not a confirmed library constant; formatted directly (DECSC).
		return append(buf, esc+"s"...)
	case renderop.OutRestoreCursorPosition:
		c.local.cursorKnown = false
		// Not a confirmed library constant; formatted directly (DECRC).
		return append(buf, esc+"u"...)

	case renderop.OutEnterAltScreen:
		return append(buf, ansi.SetAltScreenSaveCursorMode...)
	case renderop.OutExitAltScreen:
		return append(buf, ansi.ResetAltScreenSaveCursorMode...)
	case renderop.OutEnableMouseTracking:
		buf = append(buf, ansi.SetAnyEventMouseMode...)
		return append(buf, ansi.SetSgrExtMouseMode...)
	case renderop.OutDisableMouseTracking:
		buf = append(buf, ansi.ResetSgrExtMouseMode...)
		return append(buf, ansi.ResetAnyEventMouseMode...)
	case renderop.OutEnableBracketedPaste:
		return append(buf, ansi.SetBracketedPasteMode...)
	case renderop.OutDisableBracketedPaste:
		return append(buf, ansi.ResetBracketedPasteMode...)
	}
	return buf
}

// appendStandaloneStyleOp and appendStandaloneColor reuse the same SGR
// formatting DirectBackend uses: the command library covers cursor motion,
// clears, and mode toggles (the ops actually exercised by bubbletea's own
// renderers, which is what grounds this backend), but does not expose a
// per-attribute SGR builder, so attribute and color sequences are formatted
// directly here regardless of which backend is active.
func appendStandaloneStyleOp(buf []byte, op renderop.Output) []byte {
	if op.Kind == renderop.OutSetAttributes {
		return appendStandaloneAttributes(buf, op.Attributes)
	}
	base := 38
	if op.Kind == renderop.OutSetBgColor {
		base = 48
	}
	return appendStandaloneColor(buf, op.Color, base)
}
