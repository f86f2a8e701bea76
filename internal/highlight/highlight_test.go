package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// These exercise the default (non-chroma) build: a plain `go test ./...`
// run, with no -tags chroma, compiles highlight_default.go.

func TestHighlightDefaultReturnsSingleDimSpan(t *testing.T) {
	spans := Highlight("func main() {}", "go")
	assert.Len(t, spans, 1)
	assert.Equal(t, "func main() {}", spans[0].Text)
	assert.True(t, spans[0].Style.Attribs.Dim)
}

func TestResetCacheForTestIsSafeNoop(t *testing.T) {
	assert.NotPanics(t, ResetCacheForTest)
}
