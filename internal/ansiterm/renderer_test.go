package ansiterm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tuicore/internal/offscreen"
	"tuicore/internal/tuistyle"
)

func newRenderer(t *testing.T, support ColorSupport) *PixelCharRenderer {
	t.Helper()
	return New(WithColorSupport(support))
}

func TestRenderLinePlainTextNoStyle(t *testing.T) {
	r := newRenderer(t, ColorSupportTrueColor)
	out := r.RenderLine([]offscreen.PixelChar{
		offscreen.PlainText('h', tuistyle.Style{}),
		offscreen.PlainText('i', tuistyle.Style{}),
	})
	assert.Equal(t, "hi", string(out))
}

func TestRenderLineSameStyleEmitsOnce(t *testing.T) {
	r := newRenderer(t, ColorSupportTrueColor)
	bold := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}
	out := r.RenderLine([]offscreen.PixelChar{
		offscreen.PlainText('a', bold),
		offscreen.PlainText('b', bold),
	})
	assert.Equal(t, "\x1b[1mab", string(out))
}

func TestRenderLineTransitionToDefaultEmitsReset(t *testing.T) {
	r := newRenderer(t, ColorSupportTrueColor)
	bold := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}
	out := r.RenderLine([]offscreen.PixelChar{
		offscreen.PlainText('a', bold),
		offscreen.PlainText('b', tuistyle.Style{}),
	})
	assert.Equal(t, "\x1b[1ma\x1b[0mb", string(out))
}

func TestRenderLineNonSupersetAttribsForcesResetAndFullStyle(t *testing.T) {
	r := newRenderer(t, ColorSupportTrueColor)
	bold := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}
	italic := tuistyle.Style{Attribs: tuistyle.Attribs{Italic: true}}
	out := r.RenderLine([]offscreen.PixelChar{
		offscreen.PlainText('a', bold),
		offscreen.PlainText('b', italic),
	})
	// italic is not a superset of bold (bold would be silently dropped
	// without an explicit reset), so the renderer must reset first.
	assert.Equal(t, "\x1b[1ma\x1b[0m\x1b[3mb", string(out))
}

func TestRenderLineSupersetAttribsEmitsOnlyDelta(t *testing.T) {
	r := newRenderer(t, ColorSupportTrueColor)
	bold := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}
	boldUnderline := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true, Underline: true}}
	out := r.RenderLine([]offscreen.PixelChar{
		offscreen.PlainText('a', bold),
		offscreen.PlainText('b', boldUnderline),
	})
	assert.Equal(t, "\x1b[1ma\x1b[4mb", string(out))
}

func TestRenderLineColorSupportNoneSuppressesColor(t *testing.T) {
	r := newRenderer(t, ColorSupportNone)
	styled := tuistyle.Style{Fg: tuistyle.RGB(255, 0, 0)}
	out := r.RenderLine([]offscreen.PixelChar{offscreen.PlainText('x', styled)})
	assert.Equal(t, "x", string(out))
}

func TestRenderLineRGBDowngradesToAnsi256WithoutTrueColor(t *testing.T) {
	r := newRenderer(t, ColorSupportAnsi256)
	styled := tuistyle.Style{Fg: tuistyle.RGB(255, 255, 255)}
	out := r.RenderLine([]offscreen.PixelChar{offscreen.PlainText('x', styled)})
	assert.Equal(t, "\x1b[38;5;231mx", string(out))
}

func TestRenderLineVoidAndSpacerRenderAsSpace(t *testing.T) {
	r := newRenderer(t, ColorSupportTrueColor)
	out := r.RenderLine([]offscreen.PixelChar{offscreen.Void, offscreen.Spacer})
	assert.Equal(t, "  ", string(out))
}

func TestStyleDiffingDisabledEmitsFullStyleEveryCell(t *testing.T) {
	r := New(WithColorSupport(ColorSupportTrueColor), WithStyleDiffing(false))
	bold := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}
	out := r.RenderLine([]offscreen.PixelChar{
		offscreen.PlainText('a', bold),
		offscreen.PlainText('b', bold),
	})
	assert.Equal(t, "\x1b[0m\x1b[1ma\x1b[0m\x1b[1mb", string(out))
}

func TestAppendStyledTextTracksStateAcrossCalls(t *testing.T) {
	r := newRenderer(t, ColorSupportTrueColor)
	bold := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}

	var buf []byte
	buf = r.AppendStyledText(buf, "a", bold, true)
	buf = r.AppendStyledText(buf, "b", bold, true)
	assert.Equal(t, "\x1b[1mab", string(buf))
}

func TestRenderBufferJoinsLinesAndResetsTrailingStyle(t *testing.T) {
	r := newRenderer(t, ColorSupportTrueColor)
	bold := tuistyle.Style{Attribs: tuistyle.Attribs{Bold: true}}
	rows := []offscreen.Line{
		{offscreen.PlainText('a', bold)},
		{offscreen.PlainText('b', tuistyle.Style{})},
	}
	out := r.RenderBuffer(rows)
	assert.Equal(t, "\x1b[1ma\r\n\x1b[0mb", string(out))
}
