// Package input translates SDL2 events into preview actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is something the preview loop should do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionOrbitLeft
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionRender
	ActionScreenshot
	ActionToggleAccelerator
)

var actionNames = [...]string{
	"none", "quit", "orbit-left", "orbit-right", "orbit-up", "orbit-down",
	"zoom-in", "zoom-out", "render", "screenshot", "toggle-accelerator",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ActionForKey maps a key to its preview action.
func ActionForKey(sc sdl.Scancode) Action {
	switch sc {
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		return ActionQuit
	case sdl.SCANCODE_LEFT:
		return ActionOrbitLeft
	case sdl.SCANCODE_RIGHT:
		return ActionOrbitRight
	case sdl.SCANCODE_UP:
		return ActionOrbitUp
	case sdl.SCANCODE_DOWN:
		return ActionOrbitDown
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return ActionZoomIn
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return ActionZoomOut
	case sdl.SCANCODE_R:
		return ActionRender
	case sdl.SCANCODE_S, sdl.SCANCODE_F12:
		return ActionScreenshot
	case sdl.SCANCODE_B:
		return ActionToggleAccelerator
	}
	return ActionNone
}

// Input collects the actions of one poll.
type Input struct {
	actions []Action
	exposed bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		actions: make([]Action, 0, 16),
	}
}

// Update drains pending SDL events. Returns true if the window was closed
// or a quit key was pressed.
func (i *Input) Update() bool {
	i.actions = i.actions[:0]
	i.exposed = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.actions = append(i.actions, ActionQuit)

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_EXPOSED {
				i.exposed = true
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if a := ActionForKey(e.Keysym.Scancode); a != ActionNone {
				i.actions = append(i.actions, a)
			}
		}
	}

	return i.Has(ActionQuit)
}

// Actions returns the actions from the last Update.
func (i *Input) Actions() []Action {
	return i.actions
}

// Has reports whether action a occurred during the last Update.
func (i *Input) Has(a Action) bool {
	for _, got := range i.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Exposed reports whether the window needs repainting.
func (i *Input) Exposed() bool {
	return i.exposed
}
