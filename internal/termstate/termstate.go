// Package termstate owns the terminal-mode side effects §4.8 requires to be
// scoped and crash-safe: entering raw mode and (optionally) the alternate
// screen, and guaranteeing both are released on every exit path. It
// generalizes the teacher's enableRawMode/disableRawMode (tui/term.go) and
// the raw-mode bracketing in Screen.NewScreen/Screen.Close (tui/screen.go)
// into a single reusable guard, adding the alt-screen and cursor-visibility
// bracketing the teacher's Screen always applied inline.
package termstate

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"tuicore/internal/idx"
)

const (
	hideCursor    = "\x1b[?25l"
	showCursor    = "\x1b[?25h"
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
)

// Config holds the Guard's entry behavior.
type Config struct {
	AltScreen  bool
	HideCursor bool
}

// Option configures a Guard before it takes effect.
type Option func(*Config)

// WithAltScreen enables entering the alternate screen buffer on Enable.
func WithAltScreen() Option { return func(c *Config) { c.AltScreen = true } }

// WithHiddenCursor hides the cursor on Enable.
func WithHiddenCursor() Option { return func(c *Config) { c.HideCursor = true } }

// Guard holds everything needed to restore a terminal to the state it was
// in before Enable was called. A zero Guard's Release is a no-op, so
// `defer g.Release()` is always safe even if Enable returned an error
// partway through (§4.8 "guaranteed release").
type Guard struct {
	f         *os.File
	out       *os.File
	oldState  *term.State
	raw       bool
	altScreen bool
	cursorHidden bool

	mu sync.Mutex
}

// Enable puts f (typically os.Stdin) into raw mode and applies any
// requested Options, writing their escape sequences to out (typically
// os.Stdout). On error it releases anything it already applied before
// returning, so callers do not need to call Release on a failed Enable.
func Enable(f *os.File, out *os.File, opts ...Option) (*Guard, error) {
	cfg := Config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Guard{f: f, out: out}

	oldState, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return g, fmt.Errorf("termstate: enable raw mode: %w", err)
	}
	g.oldState = oldState
	g.raw = true

	if cfg.AltScreen {
		if _, err := out.WriteString(enterAltScreen); err != nil {
			g.Release()
			return g, fmt.Errorf("termstate: enter alt screen: %w", err)
		}
		g.altScreen = true
	}

	if cfg.HideCursor {
		if _, err := out.WriteString(hideCursor); err != nil {
			g.Release()
			return g, fmt.Errorf("termstate: hide cursor: %w", err)
		}
		g.cursorHidden = true
	}

	return g, nil
}

// Release restores everything Enable applied, in reverse order, and is
// idempotent: calling it more than once (or on a Guard whose Enable never
// succeeded) does nothing harmful. Errors from individual restoration steps
// are collected but do not stop later steps from running — a failure to
// show the cursor must never leave raw mode enabled.
func (g *Guard) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if g.cursorHidden {
		_, err := g.out.WriteString(showCursor)
		record(err)
		g.cursorHidden = false
	}
	if g.altScreen {
		_, err := g.out.WriteString(exitAltScreen)
		record(err)
		g.altScreen = false
	}
	if g.raw {
		record(term.Restore(int(g.f.Fd()), g.oldState))
		g.raw = false
	}
	return firstErr
}

// Size reports the current terminal dimensions in cells, falling back to
// 80x24 if the ioctl fails (matching the teacher's Screen.NewScreen
// fallback behavior in tui/screen.go).
func Size(out *os.File) idx.Size {
	w, h, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return idx.Size{Width: 80, Height: 24}
	}
	return idx.Size{Width: idx.ColWidth(w), Height: idx.RowHeight(h)}
}

// ResizeWatcher delivers SIGWINCH-triggered size changes, generalizing the
// teacher's Screen.handleResize goroutine+channel pattern into a standalone
// component decoupled from any particular Screen type.
type ResizeWatcher struct {
	sigCh chan os.Signal
	done  chan struct{}
}

// WatchResize starts listening for terminal resize signals and invokes
// onResize with the new size on every SIGWINCH. The returned watcher must
// be stopped with Stop to release the signal registration and goroutine.
func WatchResize(out *os.File, onResize func(idx.Size)) *ResizeWatcher {
	w := &ResizeWatcher{
		sigCh: make(chan os.Signal, 1),
		done:  make(chan struct{}),
	}
	signal.Notify(w.sigCh, syscall.SIGWINCH)

	go func() {
		for {
			select {
			case <-w.done:
				return
			case <-w.sigCh:
				onResize(Size(out))
			}
		}
	}()

	return w
}

// Stop unregisters the SIGWINCH handler and terminates the watcher
// goroutine. Safe to call once; a second call is a no-op.
func (w *ResizeWatcher) Stop() {
	signal.Stop(w.sigCh)
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}
