// Package gapbuf implements the zero-copy gap buffer described in §4.2: a
// contiguous byte store organised as fixed-size (but individually growable)
// line slots, each slot holding `\n`-terminated, `\0`-padded content. The
// buffer's entire contents are exposed as a single `string` view via AsStr,
// which upholds the null-padding invariant the markdown parser depends on
// for zero-copy reparsing on every keystroke.
//
// Ownership is exclusive: nothing in this package is safe for concurrent
// mutation (§5). Out-of-range row/column/grapheme indices are reported as
// `false`/zero values, never panics; a broken null-padding invariant is a
// programming error and panics in debug builds (see assert.go).
package gapbuf

import (
	"sort"
	"strings"

	"tuicore/internal/idx"
)

const (
	defaultSlotSize = 256
	// slotSizeCap is where the doubling growth policy switches to linear
	// page-sized growth, resolving the spec's open question about the
	// per-slot upper bound with a doubling-then-capping policy.
	slotSizeCap = 64 * 1024
)

// Config holds the tunables from §6 "Configuration" that affect storage
// layout. Color/style options live in the ansiterm package; only the two
// gap-buffer-relevant knobs are here.
type Config struct {
	SlotSizeInitial int
	SlotSizePage    int
}

func defaultConfig() Config {
	return Config{SlotSizeInitial: defaultSlotSize, SlotSizePage: defaultSlotSize}
}

// Option configures a new ZeroCopyGapBuffer.
type Option func(*Config)

// WithSlotSize overrides the initial per-line slot size.
func WithSlotSize(n int) Option {
	return func(c *Config) { c.SlotSizeInitial = n }
}

// WithSlotSizePage overrides the page increment used when a line outgrows
// its slot.
func WithSlotSizePage(n int) Option {
	return func(c *Config) { c.SlotSizePage = n }
}

// ZeroCopyGapBuffer owns all editor text for one document.
type ZeroCopyGapBuffer struct {
	buffer   []byte
	lines    []LineInfo
	slotSize []int
	cfg      Config
}

func applyOptions(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// New returns an empty buffer with a single empty line.
func New(opts ...Option) *ZeroCopyGapBuffer {
	b := &ZeroCopyGapBuffer{cfg: applyOptions(opts)}
	b.appendRawLine("")
	return b
}

// FromString splits s on "\n" and constructs a buffer with one line per
// substring (a trailing "\n" does not produce an extra empty line, matching
// how a file's last line is usually stored).
func FromString(s string, opts ...Option) *ZeroCopyGapBuffer {
	b := &ZeroCopyGapBuffer{cfg: applyOptions(opts)}
	lines := strings.Split(s, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	for _, l := range lines {
		b.appendRawLine(l)
	}
	return b
}

// FromLines constructs a buffer with exactly one slot per entry of lines.
func FromLines(lines []string, opts ...Option) *ZeroCopyGapBuffer {
	b := &ZeroCopyGapBuffer{cfg: applyOptions(opts)}
	if len(lines) == 0 {
		b.appendRawLine("")
		return b
	}
	for _, l := range lines {
		b.appendRawLine(l)
	}
	return b
}

// appendRawLine appends one more line slot at the end of the buffer. It does
// not validate content for embedded terminators — callers are internal and
// trusted (public mutation goes through InsertLine/SetLine which do guard).
func (b *ZeroCopyGapBuffer) appendRawLine(content string) {
	slot := nextSlotSize(b.cfg.SlotSizeInitial, len(content)+1, b.cfg.SlotSizePage)
	offset := idx.ByteIndex(len(b.buffer))

	raw := make([]byte, slot)
	copy(raw, content)
	raw[len(content)] = '\n'
	// the rest of raw is already zero-valued: the null padding.

	b.buffer = append(b.buffer, raw...)
	b.slotSize = append(b.slotSize, slot)
	b.lines = append(b.lines, buildLineInfo(offset, content))
	b.checkInvariants("appendRawLine")
}

// nextSlotSize implements the doubling-then-capping growth policy: double
// the slot until it would exceed slotSizeCap, then grow linearly by `page`.
func nextSlotSize(current, needed, page int) int {
	if current <= 0 {
		current = defaultSlotSize
	}
	size := current
	for size < needed {
		if size < slotSizeCap {
			size *= 2
		} else {
			size += page
		}
	}
	return size
}

// LineCount returns the number of lines.
func (b *ZeroCopyGapBuffer) LineCount() idx.Length {
	return idx.Length(len(b.lines))
}

func (b *ZeroCopyGapBuffer) inRange(row idx.RowIndex) bool {
	return row.Int() >= 0 && row.Int() < len(b.lines)
}

// GetLineContent returns the content of row without its `\n`/`\0` padding.
func (b *ZeroCopyGapBuffer) GetLineContent(row idx.RowIndex) (string, bool) {
	if !b.inRange(row) {
		return "", false
	}
	li := b.lines[row.Int()]
	start := li.BufferOffset.Int()
	return string(b.buffer[start : start+li.ContentLen.Int()]), true
}

// GetLineInfo returns the metadata for row.
func (b *ZeroCopyGapBuffer) GetLineInfo(row idx.RowIndex) (LineInfo, bool) {
	if !b.inRange(row) {
		return LineInfo{}, false
	}
	return b.lines[row.Int()], true
}

// GetLineWithInfo returns both content and metadata for row in one call.
func (b *ZeroCopyGapBuffer) GetLineWithInfo(row idx.RowIndex) (string, LineInfo, bool) {
	content, ok := b.GetLineContent(row)
	if !ok {
		return "", LineInfo{}, false
	}
	return content, b.lines[row.Int()], true
}

// AsStr exposes the entire buffer as a single string under the null-padding
// invariant: debug builds validate UTF-8 and terminator placement before
// returning (§4.2 "Null-padding invariant").
func (b *ZeroCopyGapBuffer) AsStr() string {
	b.checkInvariants("AsStr")
	return string(b.buffer)
}

// Clear empties the buffer back to a single empty line.
func (b *ZeroCopyGapBuffer) Clear() {
	b.buffer = nil
	b.lines = nil
	b.slotSize = nil
	b.appendRawLine("")
}

// PushLine appends a new line at the end of the buffer.
func (b *ZeroCopyGapBuffer) PushLine(content string) {
	b.InsertLine(idx.RowIndex(len(b.lines)), content)
}

// InsertLine inserts a new line at row, shifting subsequent lines down.
// row == LineCount() appends.
func (b *ZeroCopyGapBuffer) InsertLine(row idx.RowIndex, content string) bool {
	n := len(b.lines)
	if row.Int() < 0 || row.Int() > n {
		return false
	}
	if row.Int() == n {
		b.appendRawLine(content)
		return true
	}

	slot := nextSlotSize(b.cfg.SlotSizeInitial, len(content)+1, b.cfg.SlotSizePage)
	raw := make([]byte, slot)
	copy(raw, content)
	raw[len(content)] = '\n'

	insertOffset := b.lines[row.Int()].BufferOffset.Int()

	newBuffer := make([]byte, 0, len(b.buffer)+slot)
	newBuffer = append(newBuffer, b.buffer[:insertOffset]...)
	newBuffer = append(newBuffer, raw...)
	newBuffer = append(newBuffer, b.buffer[insertOffset:]...)
	b.buffer = newBuffer

	newSlotSize := make([]int, 0, n+1)
	newSlotSize = append(newSlotSize, b.slotSize[:row.Int()]...)
	newSlotSize = append(newSlotSize, slot)
	newSlotSize = append(newSlotSize, b.slotSize[row.Int():]...)
	b.slotSize = newSlotSize

	newLines := make([]LineInfo, 0, n+1)
	newLines = append(newLines, b.lines[:row.Int()]...)
	newLines = append(newLines, buildLineInfo(idx.ByteIndex(insertOffset), content))
	newLines = append(newLines, b.lines[row.Int():]...)
	b.lines = newLines

	b.rebuildOffsets()
	b.checkInvariants("InsertLine")
	return true
}

// RemoveLine deletes row entirely, shifting subsequent lines up.
func (b *ZeroCopyGapBuffer) RemoveLine(row idx.RowIndex) bool {
	if !b.inRange(row) {
		return false
	}
	if len(b.lines) == 1 {
		// A buffer always has at least one line; removing the only line
		// clears its content instead of leaving zero lines.
		b.SetLine(row, "")
		return true
	}
	li := b.lines[row.Int()]
	start := li.BufferOffset.Int()
	end := start + b.slotSize[row.Int()]

	newBuffer := make([]byte, 0, len(b.buffer)-(end-start))
	newBuffer = append(newBuffer, b.buffer[:start]...)
	newBuffer = append(newBuffer, b.buffer[end:]...)
	b.buffer = newBuffer

	b.slotSize = append(b.slotSize[:row.Int()], b.slotSize[row.Int()+1:]...)
	b.lines = append(b.lines[:row.Int()], b.lines[row.Int()+1:]...)

	b.rebuildOffsets()
	b.checkInvariants("RemoveLine")
	return true
}

// SetLine replaces the content of row wholesale.
func (b *ZeroCopyGapBuffer) SetLine(row idx.RowIndex, content string) bool {
	if !b.inRange(row) {
		return false
	}
	needed := len(content) + 1
	if needed > b.slotSize[row.Int()] {
		b.growSlot(row.Int(), needed)
	}
	li := b.lines[row.Int()]
	start := li.BufferOffset.Int()
	slot := b.slotSize[row.Int()]

	for i := start; i < start+slot; i++ {
		b.buffer[i] = 0
	}
	copy(b.buffer[start:], content)
	b.buffer[start+len(content)] = '\n'

	b.lines[row.Int()] = buildLineInfo(li.BufferOffset, content)
	b.checkInvariants("SetLine")
	return true
}

// rebuildOffsets recomputes BufferOffset for every line from the cumulative
// slot sizes. Called after any operation that changes a line's slot size or
// the number of lines.
func (b *ZeroCopyGapBuffer) rebuildOffsets() {
	var off idx.ByteIndex
	for i := range b.lines {
		b.lines[i].BufferOffset = off
		off += idx.ByteIndex(b.slotSize[i])
	}
}

// growSlot enlarges the slot for line i to hold at least `needed` content+NL
// bytes, shifting every subsequent line's bytes to the right and re-zeroing
// the newly opened padding region.
func (b *ZeroCopyGapBuffer) growSlot(i, needed int) {
	oldSize := b.slotSize[i]
	newSize := nextSlotSize(oldSize, needed, b.cfg.SlotSizePage)
	delta := newSize - oldSize
	if delta <= 0 {
		return
	}

	shiftStart := b.lines[i].BufferOffset.Int() + oldSize
	b.buffer = append(b.buffer, make([]byte, delta)...)
	copy(b.buffer[shiftStart+delta:], b.buffer[shiftStart:len(b.buffer)-delta])
	for p := shiftStart; p < shiftStart+delta; p++ {
		b.buffer[p] = 0
	}

	b.slotSize[i] = newSize
	b.rebuildOffsets()
}

// GetByteOffsetForRow returns the buffer offset at which row's slot begins.
func (b *ZeroCopyGapBuffer) GetByteOffsetForRow(row idx.RowIndex) (idx.ByteIndex, bool) {
	if !b.inRange(row) {
		return 0, false
	}
	return b.lines[row.Int()].BufferOffset, true
}

// FindRowContainingByte returns the row whose slot contains byte offset b2
// via binary search over line start offsets.
func (b *ZeroCopyGapBuffer) FindRowContainingByte(b2 idx.ByteIndex) idx.RowIndex {
	n := len(b.lines)
	i := sort.Search(n, func(i int) bool {
		return b.lines[i].BufferOffset.Int() > b2.Int()
	})
	if i == 0 {
		return 0
	}
	return idx.RowIndex(i - 1)
}
