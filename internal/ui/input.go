package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Command is a keyboard shortcut action.
type Command int

const (
	CmdNone Command = iota
	CmdNewGame
	CmdUndo
	CmdHint
	CmdFlip
	CmdToggleSound
	CmdCancel
)

// keyBindings is checked in order; the first key down this frame wins.
var keyBindings = []struct {
	key ebiten.Key
	cmd Command
}{
	{ebiten.KeyN, CmdNewGame},
	{ebiten.KeyU, CmdUndo},
	{ebiten.KeyH, CmdHint},
	{ebiten.KeyF, CmdFlip},
	{ebiten.KeyS, CmdToggleSound},
	{ebiten.KeyEscape, CmdCancel},
}

// InputHandler snapshots mouse, wheel and shortcut state once per frame so
// every consumer in a frame sees the same input.
type InputHandler struct {
	mouseX, mouseY   int
	leftJustPressed  bool
	leftJustReleased bool
	wheelY           float64
	command          Command
}

func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update reads the input state. Call once per frame.
func (ih *InputHandler) Update() {
	ih.mouseX, ih.mouseY = ebiten.CursorPosition()
	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	_, ih.wheelY = ebiten.Wheel()

	ih.command = CmdNone
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			ih.command = b.cmd
			break
		}
	}
}

// MousePosition returns the cursor in layout coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

func (ih *InputHandler) IsLeftJustReleased() bool {
	return ih.leftJustReleased
}

// WheelY is the vertical scroll this frame.
func (ih *InputHandler) WheelY() float64 {
	return ih.wheelY
}

// Command returns the shortcut pressed this frame, CmdNone if none.
func (ih *InputHandler) Command() Command {
	return ih.command
}

// IsInBounds reports whether the cursor is within the rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// IsKeyJustPressed reports whether key went down this frame.
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
