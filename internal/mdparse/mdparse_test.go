package mdparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuicore/internal/mdast"
)

func TestEmptyDocument(t *testing.T) {
	doc := Parse("\n" + strings.Repeat("\x00", 255))
	assert.Empty(t, doc.Elements)
}

func TestHeadingAndBulletList(t *testing.T) {
	input := "# Title\n- item one\n- item two\n"
	doc := Parse(input)
	require.Len(t, doc.Elements, 2)

	heading := doc.Elements[0]
	assert.Equal(t, mdast.ElHeading, heading.Kind)
	assert.Equal(t, 1, heading.Level)
	require.Len(t, heading.Fragments, 1)
	assert.Equal(t, "Title", heading.Fragments[0].Text)

	list := doc.Elements[1]
	assert.Equal(t, mdast.ElSmartList, list.Kind)
	assert.Equal(t, mdast.BulletUnordered, list.Bullet)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "item one", list.Items[0].Fragments[0].Text)
	assert.Equal(t, "item two", list.Items[1].Fragments[0].Text)
}

func TestNullPaddingToleranceMatchesUnpadded(t *testing.T) {
	padded := "# Title\n" + strings.Repeat("\x00", 255) +
		"- item one\n" + strings.Repeat("\x00", 255) +
		"- item two\n" + strings.Repeat("\x00", 255)
	unpadded := "# Title\n- item one\n- item two\n"

	docPadded := Parse(padded)
	docUnpadded := Parse(unpadded)

	assert.Equal(t, mdast.Print(docUnpadded), mdast.Print(docPadded))
}

func TestInlineConstructs(t *testing.T) {
	doc := Parse("**bold** and *italic* and `code` and [a](http://x) and ![alt](http://y) and [x] done\n")
	require.Len(t, doc.Elements, 1)
	frags := doc.Elements[0].Fragments

	var kinds []mdast.FragmentKind
	for _, f := range frags {
		kinds = append(kinds, f.Kind)
	}
	assert.Contains(t, kinds, mdast.FragBold)
	assert.Contains(t, kinds, mdast.FragItalic)
	assert.Contains(t, kinds, mdast.FragInlineCode)
	assert.Contains(t, kinds, mdast.FragLink)
	assert.Contains(t, kinds, mdast.FragImage)
	assert.Contains(t, kinds, mdast.FragCheckbox)
}

func TestMetadata(t *testing.T) {
	doc := Parse("@title: My Doc\n@date: 2026-01-01\n@tags: a, b, c\n@authors: Jane, John\n")
	require.Len(t, doc.Elements, 4)
	assert.Equal(t, mdast.ElTitle, doc.Elements[0].Kind)
	assert.Equal(t, "My Doc", doc.Elements[0].Text)
	assert.Equal(t, mdast.ElTags, doc.Elements[2].Kind)
	assert.Equal(t, []string{"a", "b", "c"}, doc.Elements[2].Strings)
}

func TestCodeBlock(t *testing.T) {
	doc := Parse("```go\nfunc main() {}\n```\n")
	require.Len(t, doc.Elements, 1)
	cb := doc.Elements[0]
	assert.Equal(t, mdast.ElCodeBlock, cb.Kind)
	assert.Equal(t, "go", cb.Language)
	assert.Equal(t, []string{"func main() {}"}, cb.Lines)
}

func TestMalformedConstructFallsBackToPlain(t *testing.T) {
	doc := Parse("this **never closes\n")
	require.Len(t, doc.Elements, 1)
	frags := doc.Elements[0].Fragments
	require.Len(t, frags, 1)
	assert.Equal(t, mdast.FragPlain, frags[0].Kind)
	assert.Equal(t, "this **never closes", frags[0].Text)
}

func TestPrintParseIdempotent(t *testing.T) {
	input := "# Title\n- one\n- two\n\nSome **bold** text.\n"
	doc1 := Parse(input)
	printed := mdast.Print(doc1)
	doc2 := Parse(printed)
	assert.Equal(t, mdast.Print(doc2), printed)
}
