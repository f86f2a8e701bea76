package keyinput

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string, n int) []Event {
	t.Helper()
	done := make(chan struct{})
	defer close(done)

	ch := Start(strings.NewReader(input), done)
	var got []Event
	for i := 0; i < n; i++ {
		select {
		case ev, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
	return got
}

func TestPlainCharacter(t *testing.T) {
	events := collect(t, "a", 1)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Key: KeyChar, Rune: 'a'}, events[0])
}

func TestEnterAndBackspace(t *testing.T) {
	events := collect(t, "\r\x7f", 2)
	require.Len(t, events, 2)
	assert.Equal(t, KeyEnter, events[0].Key)
	assert.Equal(t, KeyBackspace, events[1].Key)
}

func TestCtrlChar(t *testing.T) {
	events := collect(t, string(rune(0x03)), 1)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Key: KeyChar, Rune: 'c', Mod: ModCtrl}, events[0])
}

func TestArrowKeysViaCSI(t *testing.T) {
	events := collect(t, "\x1b[A\x1b[B\x1b[C\x1b[D", 4)
	require.Len(t, events, 4)
	assert.Equal(t, KeyArrowUp, events[0].Key)
	assert.Equal(t, KeyArrowDown, events[1].Key)
	assert.Equal(t, KeyArrowRight, events[2].Key)
	assert.Equal(t, KeyArrowLeft, events[3].Key)
}

func TestDeleteViaTildeSequence(t *testing.T) {
	events := collect(t, "\x1b[3~", 1)
	require.Len(t, events, 1)
	assert.Equal(t, KeyDelete, events[0].Key)
}

func TestArrowKeysViaSS3(t *testing.T) {
	events := collect(t, "\x1bOA\x1bOP", 2)
	require.Len(t, events, 2)
	assert.Equal(t, KeyArrowUp, events[0].Key)
	assert.Equal(t, KeyF1, events[1].Key)
}

func TestBareEscReportedAfterTimeout(t *testing.T) {
	events := collect(t, "\x1b", 1)
	require.Len(t, events, 1)
	assert.Equal(t, KeyEsc, events[0].Key)
}

func TestAltChar(t *testing.T) {
	events := collect(t, "\x1bx", 1)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Key: KeyChar, Rune: 'x', Mod: ModAlt}, events[0])
}
