//go:build !chroma

package highlight

import "tuicore/internal/tuistyle"

// Span is one run of code text sharing a single style.
type Span struct {
	Text  string
	Style tuistyle.Style
}

// Highlight returns code as a single dim, unhighlighted span. Present for
// builds that opt out of the chroma lexer tables.
func Highlight(code, lang string) []Span {
	return []Span{{Text: code, Style: tuistyle.Style{Attribs: tuistyle.Attribs{Dim: true}}}}
}

// ResetCacheForTest is a no-op in this build; present so callers can call
// it unconditionally regardless of build tags.
func ResetCacheForTest() {}
