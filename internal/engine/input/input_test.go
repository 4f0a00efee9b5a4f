package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key  sdl.Keycode
		want Action
	}{
		{sdl.K_ESCAPE, ActionQuit},
		{sdl.K_q, ActionQuit},
		{sdl.K_EQUALS, ActionPrecisionUp},
		{sdl.K_KP_MINUS, ActionPrecisionDown},
		{sdl.K_RIGHTBRACKET, ActionDepthUp},
		{sdl.K_LEFTBRACKET, ActionDepthDown},
		{sdl.K_f, ActionToggleWireframe},
		{sdl.K_t, ActionToggleStitching},
		{sdl.K_SPACE, ActionTogglePause},
		{sdl.K_a, ActionNone},
	}

	for _, tt := range tests {
		if got := ActionForKey(tt.key); got != tt.want {
			t.Errorf("key %d: expected %v, got %v", tt.key, tt.want, got)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionTogglePause.String() != "pause" {
		t.Errorf("expected pause, got %s", ActionTogglePause.String())
	}
	if Action(99).String() != "unknown" {
		t.Errorf("expected unknown, got %s", Action(99).String())
	}
}
