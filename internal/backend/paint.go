// Package backend implements §4.7 backend dispatch: two independent
// PaintRenderOp implementations over the same RenderOpOutputVec, selected
// by process-wide static configuration (no plugin loading). The
// direct-ANSI backend is the primary path and is the one held to the exact
// byte sequences §6 specifies; the command-library backend exists for
// incremental migration and parity testing against a real terminal-command
// dependency, matching the spec's crossterm-equivalent collaborator.
package backend

import (
	"tuicore/internal/renderop"
)

// Sink is the output device a backend writes to: the application supplies
// a locked, infallible-modulo-short-writes byte sink (§5, §6).
type Sink interface {
	Write(p []byte) (int, error)
	Flush() error
}

// PaintRenderOp executes a RenderOpOutputVec against a Sink. Only this
// vocabulary is executable — RenderOpIRVec has no equivalent method (§4.7).
type PaintRenderOp interface {
	Paint(ops renderop.OutputVec, sink Sink) error
}

// RenderOpsLocalData is the one-frame scratch structure both backends use
// to skip redundant cursor moves and style changes (§5 "Render-operation
// scratch data"). It carries no cross-frame state.
type RenderOpsLocalData struct {
	cursorKnown bool
	cursorRow   int
	cursorCol   int

	styleKnown bool
	fgSet      bool
	bgSet      bool
}

func newLocalData() *RenderOpsLocalData {
	return &RenderOpsLocalData{}
}
