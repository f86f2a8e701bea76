// Command coredemo is a minimal terminal editor wiring every core package
// together end to end: keystrokes flow through editor into the gap buffer,
// the buffer is reparsed into a document on every edit, docrender.BuildIR
// walks that document into a RenderOpIR stream, the compositor rasterises it
// onto an offscreen buffer, diff compares it against the previously painted
// frame, and a backend emits only what changed. It plays the role the
// teacher's cmd/demo/main.go played for tui.Screen, generalized to this
// module's pipeline.
package main

import (
	"bufio"
	"fmt"
	"os"

	"tuicore/internal/backend"
	"tuicore/internal/compositor"
	"tuicore/internal/diff"
	"tuicore/internal/docrender"
	"tuicore/internal/editor"
	"tuicore/internal/idx"
	"tuicore/internal/keyinput"
	"tuicore/internal/offscreen"
	"tuicore/internal/renderop"
	"tuicore/internal/termstate"
)

// stdoutSink adapts a bufio.Writer to backend.Sink.
type stdoutSink struct{ w *bufio.Writer }

func (s stdoutSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s stdoutSink) Flush() error                { return s.w.Flush() }

func main() {
	ed := editor.New()
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "coredemo: %v\n", err)
			os.Exit(1)
		}
		ed = editor.FromString(string(data))
	}

	guard, err := termstate.Enable(os.Stdin, os.Stdout, termstate.WithAltScreen(), termstate.WithHiddenCursor())
	if err != nil {
		fmt.Fprintf(os.Stderr, "coredemo: %v\n", err)
		os.Exit(1)
	}
	defer guard.Release()

	sink := stdoutSink{w: bufio.NewWriterSize(os.Stdout, 64*1024)}

	var paint backend.PaintRenderOp = backend.NewDirectBackend()
	if os.Getenv("COREDEMO_BACKEND") == "command" {
		paint = backend.NewCommandBackend()
	}
	comp := compositor.New()

	size := termstate.Size(os.Stdout)
	previous := offscreen.New(size)
	current := offscreen.New(size)

	redraw := func() {
		ops := docrender.BuildIR(ed.Document(), size)
		current.Clear()
		comp.Compose(current, ops)

		if chunks := diff.Diff(previous, current); len(chunks) > 0 {
			paint.Paint(docrender.DiffToOutput(chunks), sink)
		}
		paint.Paint(renderop.OutputVec{{Kind: renderop.OutMoveCursorPositionAbs, Pos: ed.Cursor()}}, sink)

		previous, current = current, previous
	}
	redraw()

	done := make(chan struct{})
	defer close(done)
	events := keyinput.Start(os.Stdin, done)

	resizer := termstate.WatchResize(os.Stdout, func(newSize idx.Size) {
		size = newSize
		previous = offscreen.New(size)
		current = offscreen.New(size)
		redraw()
	})
	defer resizer.Stop()

	for ev := range events {
		if quit(ev) {
			return
		}
		applyEvent(ed, ev)
		redraw()
	}
}

func quit(ev keyinput.Event) bool {
	if ev.Key == keyinput.KeyEsc {
		return true
	}
	return ev.Key == keyinput.KeyChar && ev.Mod == keyinput.ModCtrl && ev.Rune == 'c'
}

func applyEvent(ed *editor.Editor, ev keyinput.Event) {
	switch ev.Key {
	case keyinput.KeyChar:
		ed.InsertText(string(ev.Rune))
	case keyinput.KeyEnter:
		ed.NewLine()
	case keyinput.KeyBackspace:
		ed.Backspace()
	case keyinput.KeyDelete:
		ed.DeleteForward()
	case keyinput.KeyArrowLeft:
		ed.MoveLeft()
	case keyinput.KeyArrowRight:
		ed.MoveRight()
	case keyinput.KeyArrowUp:
		ed.MoveUp()
	case keyinput.KeyArrowDown:
		ed.MoveDown()
	}
}
