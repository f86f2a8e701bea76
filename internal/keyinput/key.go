// Package keyinput decodes raw terminal input bytes into key events. It
// generalizes the teacher's tui/key.go + tui/input.go — the CSI/SS3 escape
// decoder and single-reader-goroutine input loop — out of the tui package
// and into a standalone component any driver can use ahead of editor/
// and the render pipeline.
package keyinput

// Key represents a special key or a plain character.
type Key int

const (
	KeyNull Key = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEsc
	KeySpace

	KeyArrowUp
	KeyArrowDown
	KeyArrowRight
	KeyArrowLeft

	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDown
	KeyDelete
	KeyInsert

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyChar represents a regular rune key.
	KeyChar
)

// Mod represents modifier keys (Ctrl, Alt, Shift).
type Mod int

const (
	ModNone  Mod = 0
	ModCtrl  Mod = 1 << 0
	ModAlt   Mod = 1 << 1
	ModShift Mod = 1 << 2
)

// Event is a single decoded keyboard event.
type Event struct {
	Key  Key
	Rune rune
	Mod  Mod
}
