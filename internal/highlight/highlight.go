//go:build chroma

// Package highlight renders fenced code blocks' tokens into styled spans
// for the offscreen buffer. It generalizes the teacher's chroma-backed
// Highlight (tui/highlight_chroma.go) — swapping its basement.Style/raw
// ANSI-string color fields for the structured tuistyle.Style this module
// renders through its own compositor rather than writing escape codes
// inline — and the build-tag pairing with a stdlib-only fallback in
// highlight_default.go, present for builds where pulling in chroma's lexer
// tables is not wanted.
package highlight

import (
	"sync"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"

	"tuicore/internal/tuistyle"
)

// Span is one run of code text sharing a single style.
type Span struct {
	Text  string
	Style tuistyle.Style
}

var (
	lexerCacheMu sync.Mutex
	lexerCache   = map[string]chroma.Lexer{}
)

// cachedLexer returns a coalesced lexer for lang, process-wide cached since
// lexer construction walks chroma's full registry (§5 "process-wide cached
// syntax highlighting").
func cachedLexer(lang string) chroma.Lexer {
	lexerCacheMu.Lock()
	defer lexerCacheMu.Unlock()

	if l, ok := lexerCache[lang]; ok {
		return l
	}

	var l chroma.Lexer
	if lang != "" {
		l = lexers.Get(lang)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)
	lexerCache[lang] = l
	return l
}

// Highlight tokenizes code as lang and returns the styled spans to paint.
// On tokenization failure it degrades to a single dim span rather than
// returning an error, matching the teacher's fallback behavior.
func Highlight(code, lang string) []Span {
	lexer := cachedLexer(lang)
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []Span{{Text: code, Style: tuistyle.Style{Attribs: tuistyle.Attribs{Dim: true}}}}
	}

	var spans []Span
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)

		st := tuistyle.Style{}
		if entry.Bold == chroma.Yes {
			st.Attribs.Bold = true
		}
		if entry.Underline == chroma.Yes {
			st.Attribs.Underline = true
		}
		if entry.Italic == chroma.Yes {
			st.Attribs.Italic = true
		}

		switch token.Type.Category() {
		case chroma.Keyword:
			st.Fg = tuistyle.Ansi256(5)
			st.Attribs.Bold = true
		case chroma.Name:
			st.Fg = tuistyle.Ansi256(7)
		case chroma.LiteralString:
			st.Fg = tuistyle.Ansi256(2)
		case chroma.LiteralNumber:
			st.Fg = tuistyle.Ansi256(6)
		case chroma.Comment:
			st.Fg = tuistyle.Ansi256(8)
			st.Attribs.Dim = true
		case chroma.Operator, chroma.Punctuation:
			st.Fg = tuistyle.Ansi256(7)
		}

		spans = append(spans, Span{Text: token.Value, Style: st})
	}

	return spans
}

// ResetCacheForTest clears the process-wide lexer cache, matching the
// reset-hook contract §9 requires of cached process-wide state.
func ResetCacheForTest() {
	lexerCacheMu.Lock()
	lexerCache = map[string]chroma.Lexer{}
	lexerCacheMu.Unlock()
}
