package keyinput

import (
	"bufio"
	"io"
	"time"
)

// csiTimeout is the max time to wait for subsequent bytes within a CSI or
// SS3 sequence before treating what has arrived so far as complete.
const csiTimeout = 50 * time.Millisecond

// escTimeout is how long to wait after a bare ESC byte for a follow-up byte
// before reporting a standalone Esc key press.
const escTimeout = 10 * time.Millisecond

// Start begins reading r and returns a channel of decoded key events. A
// single goroutine owns r for its entire lifetime — nothing else may read
// from it — eliminating data races on the underlying reader, the same
// design the teacher's StartInput used around os.Stdin.
func Start(r io.Reader, done <-chan struct{}) <-chan Event {
	ch := make(chan Event)
	go inputLoop(r, ch, done)
	return ch
}

func inputLoop(r io.Reader, ch chan<- Event, done <-chan struct{}) {
	reader := bufio.NewReader(r)

	rawCh := make(chan byte, 128)
	go func() {
		for {
			b, err := reader.ReadByte()
			if err != nil {
				close(rawCh)
				return
			}
			rawCh <- b
		}
	}()

	for {
		select {
		case <-done:
			close(ch)
			return
		case b, ok := <-rawCh:
			if !ok {
				close(ch)
				return
			}
			if b == 0x1b {
				processEsc(rawCh, ch)
			} else {
				processChar(b, ch)
			}
		}
	}
}

func processEsc(rawCh <-chan byte, ch chan<- Event) {
	select {
	case next, ok := <-rawCh:
		if !ok {
			ch <- Event{Key: KeyEsc}
			return
		}
		switch next {
		case '[':
			parseCSI(rawCh, ch)
		case 'O':
			parseSS3(rawCh, ch)
		default:
			ch <- Event{Key: KeyChar, Rune: rune(next), Mod: ModAlt}
		}
	case <-time.After(escTimeout):
		ch <- Event{Key: KeyEsc}
	}
}

func processChar(b byte, ch chan<- Event) {
	switch {
	case b <= 0x1f:
		switch b {
		case 0x0d:
			ch <- Event{Key: KeyEnter}
		case 0x09:
			ch <- Event{Key: KeyTab}
		case 0x08:
			ch <- Event{Key: KeyBackspace}
		case 0x03:
			ch <- Event{Key: KeyChar, Rune: 'c', Mod: ModCtrl}
		default:
			ch <- Event{Key: KeyChar, Rune: rune(b + 0x60), Mod: ModCtrl}
		}
	case b == 0x7f:
		ch <- Event{Key: KeyBackspace}
	default:
		ch <- Event{Key: KeyChar, Rune: rune(b)}
	}
}

func readByteTimeout(rawCh <-chan byte, timeout time.Duration) (byte, bool) {
	select {
	case b, ok := <-rawCh:
		return b, ok
	case <-time.After(timeout):
		return 0, false
	}
}

func parseCSI(rawCh <-chan byte, ch chan<- Event) {
	var params []byte

	for {
		b, ok := readByteTimeout(rawCh, csiTimeout)
		if !ok {
			return
		}
		if b >= 0x40 && b <= 0x7E {
			dispatchCSI(params, b, ch)
			return
		}
		params = append(params, b)
	}
}

func dispatchCSI(params []byte, final byte, ch chan<- Event) {
	p := string(params)

	switch final {
	case 'A':
		ch <- Event{Key: KeyArrowUp}
	case 'B':
		ch <- Event{Key: KeyArrowDown}
	case 'C':
		ch <- Event{Key: KeyArrowRight}
	case 'D':
		ch <- Event{Key: KeyArrowLeft}
	case 'H':
		ch <- Event{Key: KeyHome}
	case 'F':
		ch <- Event{Key: KeyEnd}
	case '~':
		key := p
		if i := indexOf(p, ';'); i >= 0 {
			key = p[:i]
		}
		switch key {
		case "1":
			ch <- Event{Key: KeyHome}
		case "2":
			ch <- Event{Key: KeyInsert}
		case "3":
			ch <- Event{Key: KeyDelete}
		case "4":
			ch <- Event{Key: KeyEnd}
		case "5":
			ch <- Event{Key: KeyPgUp}
		case "6":
			ch <- Event{Key: KeyPgDown}
		case "15":
			ch <- Event{Key: KeyF5}
		case "17":
			ch <- Event{Key: KeyF6}
		case "18":
			ch <- Event{Key: KeyF7}
		case "19":
			ch <- Event{Key: KeyF8}
		case "20":
			ch <- Event{Key: KeyF9}
		case "21":
			ch <- Event{Key: KeyF10}
		case "23":
			ch <- Event{Key: KeyF11}
		case "24":
			ch <- Event{Key: KeyF12}
		}
	}
}

func indexOf(s string, sep byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return i
		}
	}
	return -1
}

func parseSS3(rawCh <-chan byte, ch chan<- Event) {
	b, ok := readByteTimeout(rawCh, csiTimeout)
	if !ok {
		return
	}
	switch b {
	case 'A':
		ch <- Event{Key: KeyArrowUp}
	case 'B':
		ch <- Event{Key: KeyArrowDown}
	case 'C':
		ch <- Event{Key: KeyArrowRight}
	case 'D':
		ch <- Event{Key: KeyArrowLeft}
	case 'P':
		ch <- Event{Key: KeyF1}
	case 'Q':
		ch <- Event{Key: KeyF2}
	case 'R':
		ch <- Event{Key: KeyF3}
	case 'S':
		ch <- Event{Key: KeyF4}
	case 'H':
		ch <- Event{Key: KeyHome}
	case 'F':
		ch <- Event{Key: KeyEnd}
	}
}
