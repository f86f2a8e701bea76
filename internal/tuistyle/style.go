// Package tuistyle defines the style model every cell in the offscreen
// buffer carries: a foreground/background color pair plus an attribute
// flag set, generalizing the teacher's basement.Style (which only carried
// ANSI-escape strings) into a structured, comparable value.
package tuistyle

// ColorKind distinguishes how a TuiColor's value should be interpreted.
type ColorKind int

const (
	ColorNone ColorKind = iota
	ColorAnsi
	ColorRGB
)

// TuiColor is either unset, an ANSI-256 index, or a 24-bit RGB triple.
type TuiColor struct {
	Kind    ColorKind
	Ansi256 uint8
	R, G, B uint8
}

// NoColor is the zero-value "unset" color.
var NoColor = TuiColor{Kind: ColorNone}

// Ansi256 constructs an ANSI-256 indexed color.
func Ansi256(n uint8) TuiColor { return TuiColor{Kind: ColorAnsi, Ansi256: n} }

// RGB constructs a 24-bit color.
func RGB(r, g, b uint8) TuiColor { return TuiColor{Kind: ColorRGB, R: r, G: g, B: b} }

// Attribs is the flag set of independent text attributes. It is a plain
// struct of bools rather than a bitmask — the SGR escape for each one is
// independent and the struct form reads directly off a style literal, the
// way the teacher's basement.Style does.
type Attribs struct {
	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Reverse       bool
	Hidden        bool
	Overline      bool
	BlinkSlow     bool
	BlinkRapid    bool
}

// IsZero reports whether no attribute is set.
func (a Attribs) IsZero() bool { return a == Attribs{} }

// SupersetOf reports whether a has every attribute that other has set —
// i.e. transitioning from other to a never needs to turn an attribute off.
func (a Attribs) SupersetOf(other Attribs) bool {
	if other.Bold && !a.Bold {
		return false
	}
	if other.Dim && !a.Dim {
		return false
	}
	if other.Italic && !a.Italic {
		return false
	}
	if other.Underline && !a.Underline {
		return false
	}
	if other.Strikethrough && !a.Strikethrough {
		return false
	}
	if other.Reverse && !a.Reverse {
		return false
	}
	if other.Hidden && !a.Hidden {
		return false
	}
	if other.Overline && !a.Overline {
		return false
	}
	if other.BlinkSlow && !a.BlinkSlow {
		return false
	}
	if other.BlinkRapid && !a.BlinkRapid {
		return false
	}
	return true
}

// Style is the complete visual style of one cell.
type Style struct {
	Fg      TuiColor
	Bg      TuiColor
	Attribs Attribs
}

// IsDefault reports whether the style is the terminal's default — no
// colors and no attributes.
func (s Style) IsDefault() bool {
	return s.Fg.Kind == ColorNone && s.Bg.Kind == ColorNone && s.Attribs.IsZero()
}
