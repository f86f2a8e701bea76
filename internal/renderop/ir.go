// Package renderop defines the two-level render operation vocabulary of
// §3/§4.4: RenderOpIR is the layout-level input the compositor consumes,
// RenderOpOutput is what comes out the other side, addressed directly in
// terminal coordinates and ready for a backend to execute. Only
// RenderOpOutput is executable — RenderOpIR has no such method, by design
// (§4.7 "Type-system invariant"): the only way to turn one into the other
// is through the compositor.
package renderop

import (
	"tuicore/internal/idx"
	"tuicore/internal/tuistyle"
)

// IRKind enumerates layout-level operations.
type IRKind int

const (
	IRSetPosition IRKind = iota
	IRResize
	IREnterBox
	IRExitBox
	IRDrawText
	IRRequestCursorVisible
	IRRequestCursorHidden
	IRRequestRawMode
	IRRequestNormalMode
	IRRequestAltScreen
	IRRequestNormalScreen
)

// IR is one layout-level render operation. Fields are interpreted per Kind;
// unused fields are zero.
type IR struct {
	Kind     IRKind
	Pos      idx.Pos    // SetPosition, EnterBox
	Size     idx.Size   // Resize, EnterBox
	Text     string     // DrawText
	Style    tuistyle.Style
	HasStyle bool // DrawText: whether Style should be applied
	ZIndex   int  // EnterBox/DrawText ordering hint; later ops still win on tie
}

// IRVec is an ordered sequence of layout-level operations — the
// compositor's input. It has no Execute method; see package doc.
type IRVec []IR

// OutputKind enumerates the 27 Common post-composition variants plus the
// post-composition text variant (§3).
type OutputKind int

const (
	// No-ops.
	OutEnterRawMode OutputKind = iota
	OutExitRawMode
	OutNoop

	// Cursor movement.
	OutMoveCursorPositionAbs
	OutMoveCursorToColumn
	OutMoveCursorToNextLine
	OutMoveCursorToPreviousLine

	// Clears.
	OutClearScreen
	OutClearCurrentLine
	OutClearToEndOfLine
	OutClearToStartOfLine

	// Style.
	OutSetFgColor
	OutSetBgColor
	OutSetAttributes
	OutResetColor

	// Text.
	OutPrintStyledText

	// Cursor visibility.
	OutShowCursor
	OutHideCursor

	// Cursor save/restore.
	OutSaveCursorPosition
	OutRestoreCursorPosition

	// Terminal modes.
	OutEnterAltScreen
	OutExitAltScreen
	OutEnableMouseTracking
	OutDisableMouseTracking
	OutEnableBracketedPaste
	OutDisableBracketedPaste

	// Post-composition text (not part of the Common 27).
	OutCompositorPaintText
)

// Output is one post-composition, terminal-addressed render operation.
type Output struct {
	Kind       OutputKind
	Pos        idx.Pos        // MoveCursorPositionAbs
	Col        idx.ColIndex   // MoveCursorToColumn
	Rows       idx.RowHeight  // MoveCursorToNextLine / ToPreviousLine
	Color      tuistyle.TuiColor // SetFgColor / SetBgColor
	Attributes tuistyle.Attribs  // SetAttributes
	Text       string         // PrintStyledText / CompositorPaintText
	Style      tuistyle.Style // CompositorPaintText
	HasStyle   bool           // CompositorPaintText
}

// OutputVec is an ordered sequence of post-composition operations — the
// only type in this package with an Execute surface, provided by the
// backend package (keeping OutputVec and IRVec distinct types is what
// enforces the "only post-composition IR is executable" invariant; there is
// deliberately no method here that would blur the two).
type OutputVec []Output
