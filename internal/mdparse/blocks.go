// Package mdparse implements the §4.3 markdown parser: a block/inline
// combinator pipeline over a string that upholds the null-padding invariant
// (see lines.go). The parser is purely functional — no mutable global state
// — and never fails outright: a malformed construct at any level degrades
// to plain text rather than aborting the document (§4.3 "Failure
// semantics").
package mdparse

import (
	"strings"

	"tuicore/internal/mdast"
)

// Parse turns s (a null-padding-invariant string, typically
// ZeroCopyGapBuffer.AsStr()) into a Document.
func Parse(s string) mdast.Document {
	lines := splitLogicalLines(s)
	return parseBlocks(lines)
}

func parseBlocks(lines []string) mdast.Document {
	if allBlank(lines) {
		return mdast.Document{}
	}

	var doc mdast.Document
	var paraBuf []string
	flushPara := func() {
		if len(paraBuf) == 0 {
			return
		}
		joined := strings.Join(paraBuf, " ")
		doc.Elements = append(doc.Elements, mdast.Element{
			Kind:      mdast.ElText,
			Fragments: parseInline(joined),
		})
		paraBuf = nil
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flushPara()
			i++
			continue
		}

		if el, ok := tryMetadata(line); ok {
			flushPara()
			doc.Elements = append(doc.Elements, el)
			i++
			continue
		}

		if lang, ok := fenceOpen(trimmed); ok {
			flushPara()
			el, consumed := parseCodeBlock(lines, i+1, lang)
			doc.Elements = append(doc.Elements, el)
			i += consumed + 1
			continue
		}

		if level, content, ok := parseHeadingLine(line); ok {
			flushPara()
			doc.Elements = append(doc.Elements, mdast.Element{
				Kind:      mdast.ElHeading,
				Level:     level,
				Fragments: parseInline(content),
			})
			i++
			continue
		}

		if _, _, _, ok := parseListLine(line); ok {
			flushPara()
			el, consumed := parseList(lines, i)
			doc.Elements = append(doc.Elements, el)
			i += consumed
			continue
		}

		paraBuf = append(paraBuf, trimmed)
		i++
	}
	flushPara()

	return doc
}

func allBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// tryMetadata recognises `@title:`, `@date:`, `@tags:` and `@authors:`
// lines, which must start at column 0.
func tryMetadata(line string) (mdast.Element, bool) {
	if !strings.HasPrefix(line, "@") {
		return mdast.Element{}, false
	}
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return mdast.Element{}, false
	}
	key := line[1:colon]
	value := strings.TrimSpace(line[colon+1:])

	switch key {
	case "title":
		return mdast.Element{Kind: mdast.ElTitle, Text: value}, true
	case "date":
		return mdast.Element{Kind: mdast.ElDate, Text: value}, true
	case "tags":
		return mdast.Element{Kind: mdast.ElTags, Strings: splitCSV(value)}, true
	case "authors":
		return mdast.Element{Kind: mdast.ElAuthors, Strings: splitCSV(value)}, true
	default:
		return mdast.Element{}, false
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseHeadingLine recognises 1-6 `#` followed by a space and inline
// content running to end of line.
func parseHeadingLine(line string) (int, string, bool) {
	i := 0
	for i < len(line) && line[i] == '#' && i < 6 {
		i++
	}
	if i == 0 || i > 6 {
		return 0, "", false
	}
	if i >= len(line) || line[i] != ' ' {
		return 0, "", false
	}
	return i, strings.TrimSpace(line[i+1:]), true
}

// fenceOpen recognises a ``` fence, returning the optional language tag.
func fenceOpen(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, "```") {
		return "", false
	}
	return strings.TrimSpace(trimmed[3:]), true
}

// parseCodeBlock consumes raw lines (no inline parsing) until a closing
// fence or EOF, returning the element and the number of lines consumed
// (including the closing fence, if present).
func parseCodeBlock(lines []string, start int, lang string) (mdast.Element, int) {
	el := mdast.Element{Kind: mdast.ElCodeBlock, Language: lang}
	i := start
	for i < len(lines) {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			return el, i - start + 1
		}
		el.Lines = append(el.Lines, lines[i])
		i++
	}
	// Unterminated fence: treat everything to EOI as the code block body,
	// per §4.3 "the parser fails only if a fundamental predicate cannot be
	// satisfied at EOI" — here it can (EOI itself closes the block).
	return el, i - start
}

// parseListLine recognises a bullet line, returning its indentation, bullet
// kind, ordinal (for ordered bullets) and inline content.
func parseListLine(line string) (indent int, bullet mdast.BulletKind, content string, ok bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	indent = i
	rest := line[i:]

	if len(rest) >= 2 && (rest[0] == '-' || rest[0] == '*' || rest[0] == '+') && rest[1] == ' ' {
		return indent, mdast.BulletUnordered, strings.TrimSpace(rest[2:]), true
	}

	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits+1 < len(rest) && rest[digits] == '.' && rest[digits+1] == ' ' {
		return indent, mdast.BulletOrdered, strings.TrimSpace(rest[digits+2:]), true
	}

	return 0, 0, "", false
}

// parseList consumes contiguous list lines at the same indentation as the
// first, returning the element and the number of lines consumed.
func parseList(lines []string, start int) (mdast.Element, int) {
	indent, bullet, _, _ := parseListLine(lines[start])
	el := mdast.Element{Kind: mdast.ElSmartList, Bullet: bullet, Indent: indent}

	i := start
	for i < len(lines) {
		lineIndent, lineBullet, content, ok := parseListLine(lines[i])
		if !ok || lineIndent != indent || lineBullet != bullet {
			break
		}
		el.Items = append(el.Items, mdast.ListItem{Fragments: parseInline(content)})
		i++
	}
	return el, i - start
}
