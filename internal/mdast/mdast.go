// Package mdast defines the typed markdown document tree produced by
// mdparse. Every string field borrows from the gap buffer's AsStr() view —
// nothing in this package copies text.
package mdast

// BulletKind distinguishes ordered and unordered list items.
type BulletKind int

const (
	BulletUnordered BulletKind = iota
	BulletOrdered
)

// Fragment is one inline run within a line: Plain, Bold, Italic, InlineCode,
// Link, Image, Checkbox, or a bullet marker.
type Fragment struct {
	Kind     FragmentKind
	Text     string // Plain / Bold / Italic / InlineCode / Link.Text / Image.Alt
	URL      string // Link / Image
	Checked  bool   // Checkbox
	OrderedN int    // OrderedBullet
}

// FragmentKind enumerates inline fragment kinds.
type FragmentKind int

const (
	FragPlain FragmentKind = iota
	FragBold
	FragItalic
	FragInlineCode
	FragLink
	FragImage
	FragCheckbox
	FragUnorderedBullet
	FragOrderedBullet
)

// ListItem is one entry of a SmartList.
type ListItem struct {
	Fragments []Fragment
}

// Element is one block-level node of the document.
type Element struct {
	Kind ElementKind

	// Heading
	Level     int
	Fragments []Fragment // Heading / Text

	// SmartList
	Items  []ListItem
	Bullet BulletKind
	Indent int

	// CodeBlock
	Language string
	Lines    []string

	// Title / Date / Tags / Authors
	Text    string
	Strings []string
}

// ElementKind enumerates block-level element kinds.
type ElementKind int

const (
	ElHeading ElementKind = iota
	ElText
	ElSmartList
	ElCodeBlock
	ElTitle
	ElDate
	ElTags
	ElAuthors
)

// Document is an ordered sequence of block elements.
type Document struct {
	Elements []Element
}
