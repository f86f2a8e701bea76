package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuicore/internal/idx"
)

func TestInsertTextAdvancesCursor(t *testing.T) {
	e := New()
	require.True(t, e.InsertText("abc"))
	assert.Equal(t, idx.Pos{Row: 0, Col: 3}, e.Cursor())

	content, ok := e.Buffer().GetLineContent(0)
	require.True(t, ok)
	assert.Equal(t, "abc", content)
}

func TestNewLineSplitsAndMovesCursor(t *testing.T) {
	e := FromString("hello world")
	e.SetCursor(idx.Pos{Row: 0, Col: 5})
	require.True(t, e.NewLine())

	assert.Equal(t, idx.Pos{Row: 1, Col: 0}, e.Cursor())
	first, _ := e.Buffer().GetLineContent(0)
	second, _ := e.Buffer().GetLineContent(1)
	assert.Equal(t, "hello", first)
	assert.Equal(t, " world", second)
}

func TestBackspaceJoinsLinesAtColumnZero(t *testing.T) {
	e := FromString("foo\nbar")
	e.SetCursor(idx.Pos{Row: 1, Col: 0})
	require.True(t, e.Backspace())

	assert.Equal(t, idx.Length(1), e.Buffer().LineCount())
	content, _ := e.Buffer().GetLineContent(0)
	assert.Equal(t, "foobar", content)
	assert.Equal(t, idx.Pos{Row: 0, Col: 3}, e.Cursor())
}

func TestBackspaceWithinLine(t *testing.T) {
	e := FromString("abc")
	e.SetCursor(idx.Pos{Row: 0, Col: 2})
	require.True(t, e.Backspace())

	content, _ := e.Buffer().GetLineContent(0)
	assert.Equal(t, "ac", content)
	assert.Equal(t, idx.Pos{Row: 0, Col: 1}, e.Cursor())
}

func TestDeleteForwardJoinsNextLine(t *testing.T) {
	e := FromString("foo\nbar")
	e.SetCursor(idx.Pos{Row: 0, Col: 3})
	require.True(t, e.DeleteForward())

	assert.Equal(t, idx.Length(1), e.Buffer().LineCount())
	content, _ := e.Buffer().GetLineContent(0)
	assert.Equal(t, "foobar", content)
}

func TestMoveRightWrapsToNextLine(t *testing.T) {
	e := FromString("ab\ncd")
	e.SetCursor(idx.Pos{Row: 0, Col: 2})
	e.MoveRight()
	assert.Equal(t, idx.Pos{Row: 1, Col: 0}, e.Cursor())
}

func TestMoveLeftWrapsToPreviousLine(t *testing.T) {
	e := FromString("ab\ncd")
	e.SetCursor(idx.Pos{Row: 1, Col: 0})
	e.MoveLeft()
	assert.Equal(t, idx.Pos{Row: 0, Col: 2}, e.Cursor())
}

func TestMoveDownClampsColumnToShorterLine(t *testing.T) {
	e := FromString("hello\nhi")
	e.SetCursor(idx.Pos{Row: 0, Col: 5})
	e.MoveDown()
	assert.Equal(t, idx.Pos{Row: 1, Col: 2}, e.Cursor())
}

func TestDocumentParsesCurrentBufferContents(t *testing.T) {
	e := FromString("# Title\n\nbody text")
	doc := e.Document()
	require.NotEmpty(t, doc.Elements)
}
