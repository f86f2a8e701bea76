//go:build debug

package gapbuf

import "fmt"

// debugAssertions is true only in builds tagged `debug` (go build -tags debug),
// the same opt-in convention the teacher uses for the chroma highlighter
// build tag. Release builds compile out every call below to a no-op in
// assert_release.go.
const debugAssertions = true

func (b *ZeroCopyGapBuffer) checkInvariants(where string) {
	for i, li := range b.lines {
		off := li.BufferOffset.Int()
		slot := b.slotSize[i]
		nlPos := off + li.ContentLen.Int()
		if nlPos >= len(b.buffer) || b.buffer[nlPos] != '\n' {
			panic(fmt.Sprintf("gapbuf: invariant violated in %s: line %d missing newline terminator at byte %d", where, i, nlPos))
		}
		for p := nlPos + 1; p < off+slot; p++ {
			if b.buffer[p] != 0 {
				panic(fmt.Sprintf("gapbuf: invariant violated in %s: line %d has non-null byte at %d within padding", where, i, p))
			}
		}
		content := b.buffer[off : off+li.ContentLen.Int()]
		for _, c := range content {
			if c == '\n' || c == 0 {
				panic(fmt.Sprintf("gapbuf: invariant violated in %s: line %d content contains terminator byte", where, i))
			}
		}
	}
}
