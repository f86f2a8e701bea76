package gapbuf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuicore/internal/idx"
)

func TestEmptyBuffer(t *testing.T) {
	b := FromString("")
	assert.Equal(t, idx.Length(1), b.LineCount())

	content, ok := b.GetLineContent(0)
	require.True(t, ok)
	assert.Equal(t, "", content)

	s := b.AsStr()
	assert.True(t, strings.HasPrefix(s, "\n"))
}

func TestASCIIInsert(t *testing.T) {
	b := FromString("abc\n")
	ok := b.InsertAtGrapheme(0, 1, "X")
	require.True(t, ok)

	content, li, ok := b.GetLineWithInfo(0)
	require.True(t, ok)
	assert.Equal(t, "aXbc", content)
	assert.Equal(t, idx.Length(4), li.GraphemeCount)
	assert.Equal(t, idx.ColWidth(4), li.DisplayWidth)

	var starts []int
	for _, s := range li.Segments {
		starts = append(starts, s.StartByteIndex.Int())
	}
	assert.Equal(t, []int{0, 1, 2, 3}, starts)
}

func TestWideGraphemeInsert(t *testing.T) {
	b := FromString("ab\n")
	ok := b.InsertAtGrapheme(0, 1, "\U0001F600") // 😀
	require.True(t, ok)

	content, li, ok := b.GetLineWithInfo(0)
	require.True(t, ok)
	assert.Equal(t, "a\U0001F600b", content)
	assert.Equal(t, idx.Length(3), li.GraphemeCount)
	assert.Equal(t, idx.ColWidth(4), li.DisplayWidth)

	var widths []int
	var sizes []int
	for _, s := range li.Segments {
		widths = append(widths, s.DisplayWidth.Int())
		sizes = append(sizes, s.BytesSize.Int())
	}
	assert.Equal(t, []int{1, 2, 1}, widths)
	assert.Equal(t, []int{1, 4, 1}, sizes)
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	b := FromString("hello world\n")
	original, _ := b.GetLineContent(0)

	ok := b.InsertAtGrapheme(0, 5, ", there")
	require.True(t, ok)

	ok = b.DeleteAtGrapheme(0, 5, 7)
	require.True(t, ok)

	after, _ := b.GetLineContent(0)
	assert.Equal(t, original, after)
}

func TestSlotGrowth(t *testing.T) {
	b := FromString("x\n", WithSlotSize(8), WithSlotSizePage(8))
	long := strings.Repeat("y", 64)
	ok := b.InsertAtGrapheme(0, 1, long)
	require.True(t, ok)

	content, _ := b.GetLineContent(0)
	assert.Equal(t, "x"+long, content)
}

func TestSplitAndJoinLines(t *testing.T) {
	b := FromString("hello world\n")
	tail, ok := b.SplitLineAtCol(0, 5)
	require.True(t, ok)
	assert.Equal(t, " world", tail)

	b.InsertLine(1, tail)
	assert.Equal(t, idx.Length(2), b.LineCount())

	ok = b.JoinLines(0)
	require.True(t, ok)
	assert.Equal(t, idx.Length(1), b.LineCount())
	joined, _ := b.GetLineContent(0)
	assert.Equal(t, "hello world", joined)
}

func TestInsertAtColSnapsLeftOfWideGrapheme(t *testing.T) {
	b := FromString("ab\n")
	b.InsertAtGrapheme(0, 1, "\U0001F600") // "a😀b", 😀 occupies cols 1-2
	_, ok := b.InsertAtCol(0, 2, "Z")       // col 2 is inside the wide grapheme
	require.True(t, ok)

	content, _ := b.GetLineContent(0)
	assert.Equal(t, "aZ\U0001F600b", content)
}

func TestFindRowContainingByte(t *testing.T) {
	b := FromLines([]string{"aaa", "bbb", "ccc"})
	off1, ok := b.GetByteOffsetForRow(1)
	require.True(t, ok)

	row := b.FindRowContainingByte(off1 + 1)
	assert.Equal(t, idx.RowIndex(1), row)
}

func TestRemoveLine(t *testing.T) {
	b := FromLines([]string{"a", "b", "c"})
	ok := b.RemoveLine(1)
	require.True(t, ok)
	assert.Equal(t, idx.Length(2), b.LineCount())

	c0, _ := b.GetLineContent(0)
	c1, _ := b.GetLineContent(1)
	assert.Equal(t, "a", c0)
	assert.Equal(t, "c", c1)
}

func TestOutOfRangeIsRecoverable(t *testing.T) {
	b := New()
	_, ok := b.GetLineContent(5)
	assert.False(t, ok)

	ok = b.InsertAtGrapheme(5, 0, "x")
	assert.False(t, ok)
}
