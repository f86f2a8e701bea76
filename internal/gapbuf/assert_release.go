//go:build !debug

package gapbuf

const debugAssertions = false

func (b *ZeroCopyGapBuffer) checkInvariants(where string) {}
