// Package input turns SDL2 events into viewer actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionPrecisionUp
	ActionPrecisionDown
	ActionDepthUp
	ActionDepthDown
	ActionToggleWireframe
	ActionToggleStitching
	ActionTogglePause
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionQuit:            "quit",
	ActionPrecisionUp:     "precision+",
	ActionPrecisionDown:   "precision-",
	ActionDepthUp:         "depth+",
	ActionDepthDown:       "depth-",
	ActionToggleWireframe: "wireframe",
	ActionToggleStitching: "stitching",
	ActionTogglePause:     "pause",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionForKey returns the action bound to a key.
func ActionForKey(key sdl.Keycode) Action {
	switch key {
	case sdl.K_ESCAPE, sdl.K_q:
		return ActionQuit
	case sdl.K_EQUALS, sdl.K_PLUS, sdl.K_KP_PLUS:
		return ActionPrecisionUp
	case sdl.K_MINUS, sdl.K_KP_MINUS:
		return ActionPrecisionDown
	case sdl.K_RIGHTBRACKET:
		return ActionDepthUp
	case sdl.K_LEFTBRACKET:
		return ActionDepthDown
	case sdl.K_f:
		return ActionToggleWireframe
	case sdl.K_t:
		return ActionToggleStitching
	case sdl.K_SPACE:
		return ActionTogglePause
	default:
		return ActionNone
	}
}

// Input collects the actions of one frame.
type Input struct {
	actions []Action
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		actions: make([]Action, 0, 8),
	}
}

// Update drains the SDL event queue. It returns true once the viewer
// should quit.
func (i *Input) Update() bool {
	i.actions = i.actions[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			a := ActionForKey(e.Keysym.Sym)
			if a == ActionQuit {
				quit = true
			}
			if a != ActionNone {
				i.actions = append(i.actions, a)
			}
		}
	}

	return quit
}

// Actions returns the actions triggered during the last Update.
func (i *Input) Actions() []Action {
	return i.actions
}
