package app

import "github.com/veandco/go-sdl2/sdl"

// Cmd is a keyboard command of the SDL viewer.
type Cmd int

const (
	CmdNone Cmd = iota
	CmdQuit
	CmdSubdivideMore
	CmdSubdivideLess
	CmdWireframe
	CmdSpin
	CmdResetView
	CmdFitView
)

// Command maps a scancode to its command. F12 and E are handled after
// the frame is drawn and are not listed here.
func Command(key sdl.Scancode) Cmd {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return CmdQuit
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS, sdl.SCANCODE_UP:
		return CmdSubdivideMore
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS, sdl.SCANCODE_DOWN:
		return CmdSubdivideLess
	case sdl.SCANCODE_W:
		return CmdWireframe
	case sdl.SCANCODE_SPACE:
		return CmdSpin
	case sdl.SCANCODE_R:
		return CmdResetView
	case sdl.SCANCODE_F:
		return CmdFitView
	}
	return CmdNone
}
