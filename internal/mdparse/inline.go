package mdparse

import "tuicore/internal/mdast"

// parseInline tokenises one line of already-block-stripped text into
// fragments. Specific constructs are tried before the plain-text fallback,
// which greedily takes whatever is left up to the next special character —
// exactly the "plain text is a greedy take_while" ordering the grammar
// calls for. A construct whose closing delimiter never appears degrades to
// plain text for that opening delimiter, which is how a single malformed
// construct becomes plain text without aborting the rest of the line.
func parseInline(text string) []mdast.Fragment {
	c := newCursor(text)
	var frags []mdast.Fragment

	for !c.eof() {
		if f, next, ok := tryInlineCode(c); ok {
			frags = append(frags, f)
			c = next
			continue
		}
		if f, next, ok := tryImage(c); ok {
			frags = append(frags, f)
			c = next
			continue
		}
		if f, next, ok := tryLink(c); ok {
			frags = append(frags, f)
			c = next
			continue
		}
		if f, next, ok := tryCheckbox(c); ok {
			frags = append(frags, f)
			c = next
			continue
		}
		if f, next, ok := tryBold(c); ok {
			frags = append(frags, f)
			c = next
			continue
		}
		if f, next, ok := tryItalic(c); ok {
			frags = append(frags, f)
			c = next
			continue
		}

		plain, next := takePlain(c)
		if len(plain) == 0 {
			// No recogniser matched and no plain byte could be consumed
			// (e.g. a lone special char at EOF): take one byte verbatim so
			// the cursor always makes progress.
			b, _ := c.peek()
			frags = append(frags, mdast.Fragment{Kind: mdast.FragPlain, Text: string(rune(b))})
			next = cursor{s: c.s, pos: c.pos + 1}
		} else {
			frags = append(frags, mdast.Fragment{Kind: mdast.FragPlain, Text: plain})
		}
		c = next
	}

	return mergeAdjacentPlain(frags)
}

// takePlain greedily consumes everything up to the next byte that opens a
// special construct.
func takePlain(c cursor) (string, cursor) {
	return c.takeWhile(func(b byte) bool {
		switch b {
		case '*', '_', '`', '[', '!':
			return false
		default:
			return !isNewlineOrNull(b)
		}
	})
}

func tryInlineCode(c cursor) (mdast.Fragment, cursor, bool) {
	next, ok := c.literal("`")
	if !ok {
		return mdast.Fragment{}, c, false
	}
	content, next, ok := next.takeUntilLiteral("`")
	if !ok || content == "" {
		return mdast.Fragment{}, c, false
	}
	return mdast.Fragment{Kind: mdast.FragInlineCode, Text: content}, next, true
}

func tryBold(c cursor) (mdast.Fragment, cursor, bool) {
	next, ok := c.literal("**")
	if !ok {
		return mdast.Fragment{}, c, false
	}
	content, next, ok := next.takeUntilLiteral("**")
	if !ok || content == "" {
		return mdast.Fragment{}, c, false
	}
	return mdast.Fragment{Kind: mdast.FragBold, Text: content}, next, true
}

func tryItalic(c cursor) (mdast.Fragment, cursor, bool) {
	for _, delim := range []string{"*", "_"} {
		next, ok := c.literal(delim)
		if !ok {
			continue
		}
		content, next, ok := next.takeUntilLiteral(delim)
		if !ok || content == "" {
			continue
		}
		return mdast.Fragment{Kind: mdast.FragItalic, Text: content}, next, true
	}
	return mdast.Fragment{}, c, false
}

func tryLink(c cursor) (mdast.Fragment, cursor, bool) {
	next, ok := c.literal("[")
	if !ok {
		return mdast.Fragment{}, c, false
	}
	label, next, ok := next.takeUntilLiteral("]")
	if !ok {
		return mdast.Fragment{}, c, false
	}
	next, ok = next.literal("(")
	if !ok {
		return mdast.Fragment{}, c, false
	}
	url, next, ok := next.takeUntilLiteral(")")
	if !ok {
		return mdast.Fragment{}, c, false
	}
	return mdast.Fragment{Kind: mdast.FragLink, Text: label, URL: url}, next, true
}

func tryImage(c cursor) (mdast.Fragment, cursor, bool) {
	next, ok := c.literal("!")
	if !ok {
		return mdast.Fragment{}, c, false
	}
	link, next, ok := tryLink(next)
	if !ok {
		return mdast.Fragment{}, c, false
	}
	return mdast.Fragment{Kind: mdast.FragImage, Text: link.Text, URL: link.URL}, next, true
}

func tryCheckbox(c cursor) (mdast.Fragment, cursor, bool) {
	if next, ok := c.literal("[ ]"); ok {
		return mdast.Fragment{Kind: mdast.FragCheckbox, Checked: false}, next, true
	}
	if next, ok := c.literal("[x]"); ok {
		return mdast.Fragment{Kind: mdast.FragCheckbox, Checked: true}, next, true
	}
	if next, ok := c.literal("[X]"); ok {
		return mdast.Fragment{Kind: mdast.FragCheckbox, Checked: true}, next, true
	}
	return mdast.Fragment{}, c, false
}

// mergeAdjacentPlain coalesces runs of plain fragments produced by the
// one-byte-at-a-time fallback so a malformed construct degrades to a single
// plain fragment instead of one fragment per byte.
func mergeAdjacentPlain(frags []mdast.Fragment) []mdast.Fragment {
	if len(frags) == 0 {
		return frags
	}
	out := make([]mdast.Fragment, 0, len(frags))
	for _, f := range frags {
		if f.Kind == mdast.FragPlain && len(out) > 0 && out[len(out)-1].Kind == mdast.FragPlain {
			out[len(out)-1].Text += f.Text
			continue
		}
		out = append(out, f)
	}
	return out
}
