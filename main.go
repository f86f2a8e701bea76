// Command tuicore is a one-shot, non-interactive markdown-to-ANSI renderer:
// it parses its argument (or stdin) and prints a single rendered frame, no
// raw mode or input loop involved. It adapts the teacher's root main.go,
// which did the equivalent one-shot dump through basement.Parse, onto this
// module's parser and render pipeline. cmd/coredemo is the interactive
// counterpart.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"tuicore/internal/backend"
	"tuicore/internal/compositor"
	"tuicore/internal/docrender"
	"tuicore/internal/mdparse"
	"tuicore/internal/offscreen"
	"tuicore/internal/termstate"
)

// stdoutSink adapts a bufio.Writer to backend.Sink.
type stdoutSink struct{ w *bufio.Writer }

func (s stdoutSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s stdoutSink) Flush() error                { return s.w.Flush() }

func main() {
	info, statErr := os.Stdin.Stat()

	switch {
	case len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help"):
		demo()
	case len(os.Args) > 1:
		render(strings.Join(os.Args[1:], " "))
	case statErr == nil && info.Mode()&os.ModeCharDevice == 0:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tuicore: %v\n", err)
			os.Exit(1)
		}
		render(string(data))
	default:
		fmt.Fprintln(os.Stderr, "Usage: tuicore <markdown text> or pipe input")
	}
}

// render parses input, lays it out at the current (or fallback) terminal
// size, and paints the whole frame once — there is no previous frame to
// diff against, so it goes through docrender.BufferToOutput rather than
// diff.Diff.
func render(input string) {
	size := termstate.Size(os.Stdout)
	buf := offscreen.New(size)
	ops := docrender.BuildIR(mdparse.Parse(input), size)
	compositor.New().Compose(buf, ops)

	out := bufio.NewWriter(os.Stdout)
	backend.NewDirectBackend().Paint(docrender.BufferToOutput(buf), stdoutSink{w: out})
	out.WriteByte('\n')
	out.Flush()
}

func demo() {
	render(`@title: tuicore demo
@tags: markdown, terminal

# Bringing markdown-like syntax to the terminal

It should be something as **easy** and as *natural* as writing text.

- keep it simple
- is the idea
- behind all this

` + "```go\nfunc main() {}\n```" + `

Rendered via the direct ANSI backend, no alternate screen, one frame only.
`)
}
