// Package ansiterm implements the §4.6 PixelCharRenderer: a stateful,
// style-diffing renderer from PixelChar cells to ANSI bytes. It generalizes
// the teacher's Screen.writeStyle/writeCursorPos (tui/screen.go) — which
// wrote styles unconditionally per changed cell — into the style-diffing
// contract §4.6 and §9 require: an SGR reset whenever any attribute would
// need to be turned off, because ANSI has no composable per-attribute "off".
package ansiterm

import (
	"strconv"
	"unicode/utf8"

	"tuicore/internal/offscreen"
	"tuicore/internal/tuistyle"
)

const (
	esc = "\x1b["
)

// Config holds the `style_diffing_enabled` knob from §6.
type Config struct {
	StyleDiffingEnabled bool
	ColorSupport        ColorSupport
}

// Option configures a PixelCharRenderer.
type Option func(*Config)

// WithStyleDiffing toggles style diffing; when off, the renderer emits
// every cell's full style regardless of the tracked current style — used
// for testing (§6).
func WithStyleDiffing(enabled bool) Option {
	return func(c *Config) { c.StyleDiffingEnabled = enabled }
}

// WithColorSupport overrides detected color capability for this renderer.
func WithColorSupport(support ColorSupport) Option {
	return func(c *Config) { c.ColorSupport = support }
}

// PixelCharRenderer renders PixelChar cells to ANSI bytes, tracking the
// currently-active style so it only ever emits the delta.
type PixelCharRenderer struct {
	cfg           Config
	buf           []byte
	currentStyle  tuistyle.Style
	hasActiveStyle bool
}

// New constructs a renderer. Color support defaults to the process-wide
// detected capability unless overridden.
func New(opts ...Option) *PixelCharRenderer {
	cfg := Config{StyleDiffingEnabled: true, ColorSupport: DetectColorSupport()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &PixelCharRenderer{cfg: cfg, buf: make([]byte, 0, 256)}
}

// RenderLine renders one row of cells into the renderer's reusable byte
// buffer and returns a view of it. The returned slice is invalidated by the
// next call to RenderLine or RenderToAnsi.
func (r *PixelCharRenderer) RenderLine(cells []offscreen.PixelChar) []byte {
	r.buf = r.buf[:0]
	for _, cell := range cells {
		r.renderCell(cell)
	}
	return r.buf
}

func (r *PixelCharRenderer) renderCell(cell offscreen.PixelChar) {
	switch cell.Kind {
	case offscreen.PixelVoid, offscreen.PixelSpacer:
		r.applyStyleDelta(tuistyle.Style{})
		r.buf = append(r.buf, ' ')
		return
	}

	r.applyStyleDelta(cell.Style)
	r.buf = appendRune(r.buf, cell.DisplayChar)
}

// applyStyleDelta emits whatever SGR bytes are needed to move from
// r.currentStyle to target, per the §4.6 contract:
//   - same style: nothing
//   - target is default and a style is active: reset, clear flag
//   - target's attributes are not a superset of current: reset, then full style
//   - otherwise: only the delta (new fg, new bg, newly enabled attributes)
func (r *PixelCharRenderer) applyStyleDelta(target tuistyle.Style) {
	if !r.cfg.StyleDiffingEnabled {
		r.emitReset()
		r.emitFullStyle(target)
		r.currentStyle = target
		r.hasActiveStyle = !target.IsDefault()
		return
	}

	if r.hasActiveStyle && target == r.currentStyle {
		return
	}

	if target.IsDefault() {
		if r.hasActiveStyle {
			r.emitReset()
			r.hasActiveStyle = false
		}
		r.currentStyle = target
		return
	}

	if !r.hasActiveStyle {
		r.emitFullStyle(target)
		r.currentStyle = target
		r.hasActiveStyle = true
		return
	}

	if !target.Attribs.SupersetOf(r.currentStyle.Attribs) {
		r.emitReset()
		r.emitFullStyle(target)
		r.currentStyle = target
		return
	}

	// Attribute-compatible: emit only the delta.
	r.emitAttribDelta(r.currentStyle.Attribs, target.Attribs)
	if target.Fg != r.currentStyle.Fg {
		r.emitFgColor(target.Fg)
	}
	if target.Bg != r.currentStyle.Bg {
		r.emitBgColor(target.Bg)
	}
	r.currentStyle = target
}

func (r *PixelCharRenderer) emitReset() {
	r.buf = append(r.buf, esc...)
	r.buf = append(r.buf, '0', 'm')
}

func (r *PixelCharRenderer) emitFullStyle(s tuistyle.Style) {
	r.emitAttribDelta(tuistyle.Attribs{}, s.Attribs)
	r.emitFgColor(s.Fg)
	r.emitBgColor(s.Bg)
}

func (r *PixelCharRenderer) emitAttribDelta(from, to tuistyle.Attribs) {
	emit := func(was, is bool, code string) {
		if is && !was {
			r.buf = append(r.buf, esc...)
			r.buf = append(r.buf, code...)
			r.buf = append(r.buf, 'm')
		}
	}
	emit(from.Bold, to.Bold, "1")
	emit(from.Dim, to.Dim, "2")
	emit(from.Italic, to.Italic, "3")
	emit(from.Underline, to.Underline, "4")
	emit(from.BlinkSlow, to.BlinkSlow, "5")
	emit(from.BlinkRapid, to.BlinkRapid, "6")
	emit(from.Reverse, to.Reverse, "7")
	emit(from.Hidden, to.Hidden, "8")
	emit(from.Strikethrough, to.Strikethrough, "9")
	emit(from.Overline, to.Overline, "53")
}

func (r *PixelCharRenderer) emitFgColor(c tuistyle.TuiColor) {
	r.emitColor(c, 38)
}

func (r *PixelCharRenderer) emitBgColor(c tuistyle.TuiColor) {
	r.emitColor(c, 48)
}

// emitColor writes the color sequence for base (38 = fg, 48 = bg),
// respecting the renderer's color support: RGB is downgraded to ANSI-256
// automatically if the process lacks true-color support, and suppressed
// entirely under ColorSupportNone. Integer formatting is stack-allocated
// decimal conversion (strconv.AppendInt into the reusable buffer) — no
// intermediate heap string for numeric parameters.
func (r *PixelCharRenderer) emitColor(c tuistyle.TuiColor, base int) {
	if c.Kind == tuistyle.ColorNone {
		return
	}
	if r.cfg.ColorSupport == ColorSupportNone {
		return
	}

	r.buf = append(r.buf, esc...)
	r.buf = strconv.AppendInt(r.buf, int64(base), 10)

	switch c.Kind {
	case tuistyle.ColorRGB:
		if r.cfg.ColorSupport == ColorSupportTrueColor {
			r.buf = append(r.buf, ';', '2', ';')
			r.buf = strconv.AppendInt(r.buf, int64(c.R), 10)
			r.buf = append(r.buf, ';')
			r.buf = strconv.AppendInt(r.buf, int64(c.G), 10)
			r.buf = append(r.buf, ';')
			r.buf = strconv.AppendInt(r.buf, int64(c.B), 10)
		} else {
			r.buf = append(r.buf, ';', '5', ';')
			r.buf = strconv.AppendInt(r.buf, int64(rgbToAnsi256(c.R, c.G, c.B)), 10)
		}
	case tuistyle.ColorAnsi:
		r.buf = append(r.buf, ';', '5', ';')
		r.buf = strconv.AppendInt(r.buf, int64(c.Ansi256), 10)
	}
	r.buf = append(r.buf, 'm')
}

// rgbToAnsi256 approximates a 24-bit color as the nearest ANSI-256 index
// using the standard 6x6x6 color cube (indices 16-231).
func rgbToAnsi256(r, g, b uint8) uint8 {
	toCube := func(v uint8) int {
		return int(v) * 5 / 255
	}
	rc, gc, bc := toCube(r), toCube(g), toCube(b)
	return uint8(16 + 36*rc + 6*gc + bc)
}

func appendRune(buf []byte, r rune) []byte {
	if r == 0 {
		r = ' '
	}
	var tmp [4]byte
	n := utf8.EncodeRune(tmp[:], r)
	return append(buf, tmp[:n]...)
}

// AppendStyledText appends text to dst, applying whatever style transition
// is needed first, and tracks the result as the renderer's active style.
// This lets a backend drive the same style-diffing engine used for
// PixelChar cells directly off a post-composition PrintStyledText /
// CompositorPaintText operation, whose payload is a styled run rather than
// individually-tagged cells.
func (r *PixelCharRenderer) AppendStyledText(dst []byte, text string, style tuistyle.Style, hasStyle bool) []byte {
	save := r.buf
	r.buf = dst
	if !hasStyle {
		style = tuistyle.Style{}
	}
	r.applyStyleDelta(style)
	r.buf = append(r.buf, text...)
	out := r.buf
	r.buf = save
	return out
}

// RenderToAnsi is implemented by any offscreen-buffer-shaped source that can
// produce a full-frame ANSI byte stream, joining per-line output with
// CR LF and emitting a trailing SGR reset if a style remained active.
type RenderToAnsi interface {
	RenderToAnsi(r *PixelCharRenderer) []byte
}

// RenderBuffer renders every row of rows, joined by CR LF, with a trailing
// reset if a style is still active at the end (§4.6 "Line joining").
func (r *PixelCharRenderer) RenderBuffer(rows []offscreen.Line) []byte {
	var out []byte
	for i, row := range rows {
		if i > 0 {
			out = append(out, '\r', '\n')
		}
		out = append(out, r.RenderLine(row)...)
	}
	if r.hasActiveStyle {
		out = append(out, esc...)
		out = append(out, '0', 'm')
		r.hasActiveStyle = false
		r.currentStyle = tuistyle.Style{}
	}
	return out
}
