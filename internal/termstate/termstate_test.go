package termstate

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"tuicore/internal/idx"
)

func TestZeroGuardReleaseIsNoop(t *testing.T) {
	var g Guard
	assert.NoError(t, g.Release())
	assert.NoError(t, g.Release())
}

func TestEnableOnNonTTYFailsButLeavesGuardReleasable(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	assert.NoError(t, err)
	defer f.Close()

	g, err := Enable(f, f, WithAltScreen(), WithHiddenCursor())
	assert.Error(t, err)
	assert.NotNil(t, g)

	assert.NoError(t, g.Release())
	assert.NoError(t, g.Release())
}

func TestSizeFallsBackWhenNotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "not-a-tty")
	assert.NoError(t, err)
	defer f.Close()

	size := Size(f)
	assert.Equal(t, idx.Size{Width: 80, Height: 24}, size)
}

func TestResizeWatcherStopIsIdempotent(t *testing.T) {
	calls := 0
	w := WatchResize(os.Stdout, func(idx.Size) { calls++ })
	w.Stop()
	w.Stop()
}
