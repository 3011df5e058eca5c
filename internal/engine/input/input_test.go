package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-view/internal/engine/camera"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		event  sdl.Event
		want   Event
		wantOK bool
	}{
		{
			name:   "quit",
			event:  &sdl.QuitEvent{Type: sdl.QUIT},
			want:   Event{Type: EventQuit},
			wantOK: true,
		},
		{
			name:   "resize",
			event:  &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 1024, Data2: 768},
			want:   Event{Type: EventWindowResize, Width: 1024, Height: 768},
			wantOK: true,
		},
		{
			name:  "window focus ignored",
			event: &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_GAINED},
		},
		{
			name:   "key down",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}},
			want:   Event{Type: EventKeyDown, Key: sdl.SCANCODE_W},
			wantOK: true,
		},
		{
			name:   "key repeat",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_A}},
			want:   Event{Type: EventKeyDown, Key: sdl.SCANCODE_A, Repeat: true},
			wantOK: true,
		},
		{
			name:   "key up",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}},
			want:   Event{Type: EventKeyUp, Key: sdl.SCANCODE_ESCAPE},
			wantOK: true,
		},
		{
			name:   "mouse move",
			event:  &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 10, Y: 20},
			want:   Event{Type: EventMouseMove, MouseX: 10, MouseY: 20},
			wantOK: true,
		},
		{
			name:   "mouse down",
			event:  &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, X: 5, Y: 6, Button: sdl.BUTTON_LEFT},
			want:   Event{Type: EventMouseDown, MouseX: 5, MouseY: 6, Button: sdl.BUTTON_LEFT},
			wantOK: true,
		},
		{
			name:   "mouse up",
			event:  &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, X: 5, Y: 6, Button: sdl.BUTTON_RIGHT},
			want:   Event{Type: EventMouseUp, MouseX: 5, MouseY: 6, Button: sdl.BUTTON_RIGHT},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.event)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestControlKey(t *testing.T) {
	tests := map[sdl.Scancode]camera.Key{
		sdl.SCANCODE_W:     camera.KeyForward,
		sdl.SCANCODE_UP:    camera.KeyForward,
		sdl.SCANCODE_S:     camera.KeyBackward,
		sdl.SCANCODE_DOWN:  camera.KeyBackward,
		sdl.SCANCODE_A:     camera.KeyLeft,
		sdl.SCANCODE_LEFT:  camera.KeyLeft,
		sdl.SCANCODE_D:     camera.KeyRight,
		sdl.SCANCODE_RIGHT: camera.KeyRight,
		sdl.SCANCODE_R:     camera.KeyUp,
		sdl.SCANCODE_F:     camera.KeyDown,
	}
	for sc, want := range tests {
		got, ok := ControlKey(sc)
		if !ok || got != want {
			t.Errorf("ControlKey(%d) = %v, %v; want %v, true", sc, got, ok, want)
		}
	}

	if _, ok := ControlKey(sdl.SCANCODE_F12); ok {
		t.Error("F12 should not map to a controls key")
	}
}

func TestControlButton(t *testing.T) {
	if b, ok := ControlButton(sdl.BUTTON_LEFT); !ok || b != camera.MouseLeft {
		t.Errorf("left = %v, %v", b, ok)
	}
	if b, ok := ControlButton(sdl.BUTTON_RIGHT); !ok || b != camera.MouseRight {
		t.Errorf("right = %v, %v", b, ok)
	}
	if _, ok := ControlButton(9); ok {
		t.Error("unknown button should not map")
	}
}

func TestIsKeyPressed(t *testing.T) {
	in := New()
	in.events = append(in.events, Event{Type: EventKeyDown, Key: sdl.SCANCODE_C})

	if !in.IsKeyPressed(sdl.SCANCODE_C) {
		t.Error("C should be pressed")
	}
	if in.IsKeyPressed(sdl.SCANCODE_V) {
		t.Error("V should not be pressed")
	}
}
