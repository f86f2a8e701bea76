package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuicore/internal/ansiterm"
	"tuicore/internal/idx"
	"tuicore/internal/renderop"
	"tuicore/internal/tuistyle"
)

type fakeSink struct {
	data    []byte
	flushes int
}

func (f *fakeSink) Write(p []byte) (int, error) {
	f.data = append(f.data, p...)
	return len(p), nil
}

func (f *fakeSink) Flush() error {
	f.flushes++
	return nil
}

func pos(row, col int) idx.Pos {
	return idx.Pos{Row: idx.RowIndex(row), Col: idx.ColIndex(col)}
}

func TestDirectBackendCoalescesRepeatedCursorMoves(t *testing.T) {
	d := NewDirectBackend(ansiterm.WithColorSupport(ansiterm.ColorSupportTrueColor))
	sink := &fakeSink{}

	ops := renderop.OutputVec{
		{Kind: renderop.OutMoveCursorPositionAbs, Pos: pos(2, 5)},
		{Kind: renderop.OutMoveCursorPositionAbs, Pos: pos(2, 5)},
		{Kind: renderop.OutMoveCursorPositionAbs, Pos: pos(2, 5)},
	}

	require.NoError(t, d.Paint(ops, sink))
	assert.Equal(t, "\x1b[3;6H", string(sink.data))
	assert.Equal(t, 1, sink.flushes)
}

func TestDirectBackendMovesOnlyWhenPositionChanges(t *testing.T) {
	d := NewDirectBackend()
	sink := &fakeSink{}

	ops := renderop.OutputVec{
		{Kind: renderop.OutMoveCursorPositionAbs, Pos: pos(0, 0)},
		{Kind: renderop.OutMoveCursorPositionAbs, Pos: pos(0, 1)},
	}

	require.NoError(t, d.Paint(ops, sink))
	assert.Equal(t, "\x1b[1;1H\x1b[1;2H", string(sink.data))
}

func TestDirectBackendStyleDiffingSkipsIdenticalStyle(t *testing.T) {
	d := NewDirectBackend(ansiterm.WithColorSupport(ansiterm.ColorSupportTrueColor))
	sink := &fakeSink{}

	style := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}
	ops := renderop.OutputVec{
		{Kind: renderop.OutCompositorPaintText, Text: "ab", Style: style, HasStyle: true},
		{Kind: renderop.OutCompositorPaintText, Text: "cd", Style: style, HasStyle: true},
	}

	require.NoError(t, d.Paint(ops, sink))
	assert.Equal(t, "\x1b[1mabcd", string(sink.data))
}

func TestDirectBackendResetOnAttributeNarrowing(t *testing.T) {
	d := NewDirectBackend()
	sink := &fakeSink{}

	bold := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}
	plain := tuistyle.Style{}

	ops := renderop.OutputVec{
		{Kind: renderop.OutCompositorPaintText, Text: "x", Style: bold, HasStyle: true},
		{Kind: renderop.OutCompositorPaintText, Text: "y", Style: plain, HasStyle: true},
	}

	require.NoError(t, d.Paint(ops, sink))
	assert.Equal(t, "\x1b[1mx\x1b[0my", string(sink.data))
}

func TestDirectBackendClearAndModeOps(t *testing.T) {
	d := NewDirectBackend()
	sink := &fakeSink{}

	ops := renderop.OutputVec{
		{Kind: renderop.OutClearScreen},
		{Kind: renderop.OutEnterAltScreen},
		{Kind: renderop.OutHideCursor},
		{Kind: renderop.OutEnableBracketedPaste},
	}

	require.NoError(t, d.Paint(ops, sink))
	assert.Equal(t, "\x1b[2J\x1b[?1049h\x1b[?25l\x1b[?2004h", string(sink.data))
}

func TestDirectBackendSkipsNoopRawModeOps(t *testing.T) {
	d := NewDirectBackend()
	sink := &fakeSink{}

	ops := renderop.OutputVec{
		{Kind: renderop.OutEnterRawMode},
		{Kind: renderop.OutExitRawMode},
		{Kind: renderop.OutNoop},
	}

	require.NoError(t, d.Paint(ops, sink))
	assert.Empty(t, sink.data)
	assert.Equal(t, 0, sink.flushes)
}

func TestCommandBackendCoalescesRepeatedCursorMoves(t *testing.T) {
	c := NewCommandBackend()
	sink := &fakeSink{}

	ops := renderop.OutputVec{
		{Kind: renderop.OutMoveCursorPositionAbs, Pos: pos(1, 1)},
		{Kind: renderop.OutMoveCursorPositionAbs, Pos: pos(1, 1)},
	}

	require.NoError(t, c.Paint(ops, sink))
	assert.Equal(t, "\x1b[2;2H", string(sink.data))
}

func TestCommandBackendStyledTextWrapsWithReset(t *testing.T) {
	c := NewCommandBackend()
	sink := &fakeSink{}

	style := tuistyle.Style{Fg: tuistyle.Ansi256(9)}
	ops := renderop.OutputVec{
		{Kind: renderop.OutCompositorPaintText, Text: "hi", Style: style, HasStyle: true},
	}

	require.NoError(t, c.Paint(ops, sink))
	out := string(sink.data)
	assert.Contains(t, out, "hi")
	assert.Contains(t, out, "\x1b[38;5;9m")
	assert.Contains(t, out, "\x1b[0m")
}

func TestCommandBackendMouseTrackingTogglesBothModes(t *testing.T) {
	c := NewCommandBackend()
	sink := &fakeSink{}

	require.NoError(t, c.Paint(renderop.OutputVec{{Kind: renderop.OutEnableMouseTracking}}, sink))
	require.NoError(t, c.Paint(renderop.OutputVec{{Kind: renderop.OutDisableMouseTracking}}, sink))
	assert.NotEmpty(t, sink.data)
}
