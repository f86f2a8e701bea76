package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuicore/internal/idx"
	"tuicore/internal/offscreen"
	"tuicore/internal/tuistyle"
)

func bufferOf(size idx.Size, cells map[idx.Pos]rune) *offscreen.Buffer {
	b := offscreen.New(size)
	for pos, r := range cells {
		b.Set(pos, offscreen.PlainText(r, tuistyle.Style{}))
	}
	return b
}

func TestDiffIdenticalBuffersYieldsNoChunks(t *testing.T) {
	size := idx.Size{Width: 5, Height: 2}
	a := bufferOf(size, map[idx.Pos]rune{{Row: 0, Col: 0}: 'x'})
	b := bufferOf(size, map[idx.Pos]rune{{Row: 0, Col: 0}: 'x'})

	assert.Empty(t, Diff(a, b))
}

func TestDiffCoalescesContiguousChangedCells(t *testing.T) {
	size := idx.Size{Width: 6, Height: 1}
	prev := offscreen.New(size)
	cur := bufferOf(size, map[idx.Pos]rune{
		{Row: 0, Col: 1}: 'a',
		{Row: 0, Col: 2}: 'b',
		{Row: 0, Col: 3}: 'c',
	})

	chunks := Diff(prev, cur)
	require.Len(t, chunks, 1)
	assert.Equal(t, idx.RowIndex(0), chunks[0].Row)
	assert.Equal(t, idx.ColIndex(1), chunks[0].ColStart)
	require.Len(t, chunks[0].Cells, 3)
	assert.Equal(t, 'a', rune(chunks[0].Cells[0].DisplayChar))
	assert.Equal(t, 'c', rune(chunks[0].Cells[2].DisplayChar))
}

func TestDiffSplitsNonContiguousRuns(t *testing.T) {
	size := idx.Size{Width: 10, Height: 1}
	prev := offscreen.New(size)
	cur := bufferOf(size, map[idx.Pos]rune{
		{Row: 0, Col: 0}: 'a',
		{Row: 0, Col: 5}: 'b',
	})

	chunks := Diff(prev, cur)
	require.Len(t, chunks, 2)
	assert.Equal(t, idx.ColIndex(0), chunks[0].ColStart)
	assert.Equal(t, idx.ColIndex(5), chunks[1].ColStart)
}

func TestDiffUnchangedRowProducesNoChunk(t *testing.T) {
	size := idx.Size{Width: 4, Height: 2}
	prev := bufferOf(size, map[idx.Pos]rune{{Row: 0, Col: 0}: 'x'})
	cur := bufferOf(size, map[idx.Pos]rune{
		{Row: 0, Col: 0}: 'x',
		{Row: 1, Col: 0}: 'y',
	})

	chunks := Diff(prev, cur)
	require.Len(t, chunks, 1)
	assert.Equal(t, idx.RowIndex(1), chunks[0].Row)
}

func TestApplyReproducesCurrentFromPreviousAndChunks(t *testing.T) {
	size := idx.Size{Width: 6, Height: 2}
	prev := bufferOf(size, map[idx.Pos]rune{{Row: 1, Col: 0}: 'z'})
	cur := bufferOf(size, map[idx.Pos]rune{
		{Row: 0, Col: 2}: 'a',
		{Row: 0, Col: 3}: 'b',
		{Row: 1, Col: 0}: 'z',
	})

	chunks := Diff(prev, cur)
	result := Apply(prev, chunks)

	assert.True(t, offscreen.Equal(result, cur))
}
