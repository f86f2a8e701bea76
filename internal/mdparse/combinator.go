package mdparse

// This file holds the small combinator core the rest of the package is
// built on. Each combinator takes a cursor position within a line string and
// either succeeds (returning the consumed text and an advanced position) or
// fails (returning ok=false and leaving the position untouched) — the same
// shape as a nom/parsec-style parser, scaled down to exactly what a single
// markdown line needs. There is no parser-combinator library anywhere in
// this module's dependency surface, so these are hand-rolled; see
// DESIGN.md.

// cursor scans one logical line. Lines never contain `\n` or `\0` by
// construction (splitLogicalLines already stripped them), so cursor itself
// does not need to special-case those bytes — but the predicates below still
// treat them as terminators for defense when cursor is fed a raw, unsplit
// string (e.g. directly from a buffer that skipped line splitting).
type cursor struct {
	s   string
	pos int
}

func newCursor(s string) cursor { return cursor{s: s} }

func (c cursor) eof() bool { return c.pos >= len(c.s) }

func (c cursor) peek() (byte, bool) {
	if c.eof() {
		return 0, false
	}
	return c.s[c.pos], true
}

func (c cursor) rest() string { return c.s[c.pos:] }

// literal consumes lit if c.rest() starts with it.
func (c cursor) literal(lit string) (cursor, bool) {
	if len(c.rest()) < len(lit) || c.rest()[:len(lit)] != lit {
		return c, false
	}
	return cursor{s: c.s, pos: c.pos + len(lit)}, true
}

// takeWhile consumes the longest prefix satisfying pred, which may be empty.
func (c cursor) takeWhile(pred func(byte) bool) (string, cursor) {
	start := c.pos
	p := c.pos
	for p < len(c.s) && pred(c.s[p]) {
		p++
	}
	return c.s[start:p], cursor{s: c.s, pos: p}
}

// takeUntil consumes bytes up to (not including) the first occurrence of
// any byte in stops, or to EOF. Always succeeds, possibly with "".
func (c cursor) takeUntil(stops string) (string, cursor) {
	return c.takeWhile(func(b byte) bool {
		return !containsByte(stops, b) && !isNewlineOrNull(b)
	})
}

// takeUntilLiteral consumes bytes up to (not including) the first
// occurrence of lit, succeeding only if lit is actually found.
func (c cursor) takeUntilLiteral(lit string) (string, cursor, bool) {
	idx := indexOf(c.rest(), lit)
	if idx < 0 {
		return "", c, false
	}
	return c.rest()[:idx], cursor{s: c.s, pos: c.pos + idx + len(lit)}, true
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}
