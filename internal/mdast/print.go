package mdast

import (
	"strconv"
	"strings"
)

// Print renders doc back to markdown text in a canonical form — ignoring
// the source's null padding and whitespace variations. It exists so the
// parser can be tested for idempotence (§8 property 5): Print(Parse(x))
// parses to the same tree as Print(Parse(Print(Parse(x)))).
func Print(doc Document) string {
	var b strings.Builder
	for i, el := range doc.Elements {
		if i > 0 {
			b.WriteByte('\n')
		}
		printElement(&b, el)
	}
	return b.String()
}

func printElement(b *strings.Builder, el Element) {
	switch el.Kind {
	case ElHeading:
		b.WriteString(strings.Repeat("#", el.Level))
		b.WriteByte(' ')
		printFragments(b, el.Fragments)
		b.WriteByte('\n')
	case ElText:
		printFragments(b, el.Fragments)
		b.WriteByte('\n')
	case ElSmartList:
		for i, item := range el.Items {
			b.WriteString(strings.Repeat(" ", el.Indent))
			if el.Bullet == BulletOrdered {
				b.WriteString(strconv.Itoa(i + 1))
				b.WriteString(". ")
			} else {
				b.WriteString("- ")
			}
			printFragments(b, item.Fragments)
			b.WriteByte('\n')
		}
	case ElCodeBlock:
		b.WriteString("```")
		b.WriteString(el.Language)
		b.WriteByte('\n')
		for _, l := range el.Lines {
			b.WriteString(l)
			b.WriteByte('\n')
		}
		b.WriteString("```")
		b.WriteByte('\n')
	case ElTitle:
		b.WriteString("@title: ")
		b.WriteString(el.Text)
		b.WriteByte('\n')
	case ElDate:
		b.WriteString("@date: ")
		b.WriteString(el.Text)
		b.WriteByte('\n')
	case ElTags:
		b.WriteString("@tags: ")
		b.WriteString(strings.Join(el.Strings, ", "))
		b.WriteByte('\n')
	case ElAuthors:
		b.WriteString("@authors: ")
		b.WriteString(strings.Join(el.Strings, ", "))
		b.WriteByte('\n')
	}
}

func printFragments(b *strings.Builder, frags []Fragment) {
	for _, f := range frags {
		switch f.Kind {
		case FragPlain:
			b.WriteString(f.Text)
		case FragBold:
			b.WriteString("**")
			b.WriteString(f.Text)
			b.WriteString("**")
		case FragItalic:
			b.WriteByte('*')
			b.WriteString(f.Text)
			b.WriteByte('*')
		case FragInlineCode:
			b.WriteByte('`')
			b.WriteString(f.Text)
			b.WriteByte('`')
		case FragLink:
			b.WriteByte('[')
			b.WriteString(f.Text)
			b.WriteString("](")
			b.WriteString(f.URL)
			b.WriteByte(')')
		case FragImage:
			b.WriteString("![")
			b.WriteString(f.Text)
			b.WriteString("](")
			b.WriteString(f.URL)
			b.WriteByte(')')
		case FragCheckbox:
			if f.Checked {
				b.WriteString("[x]")
			} else {
				b.WriteString("[ ]")
			}
		}
	}
}
