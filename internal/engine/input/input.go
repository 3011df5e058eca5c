// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-view/internal/engine/camera"
)

// EventType is the kind of a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Repeat bool
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := Translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		if e.Type == EventQuit {
			quit = true
		}
	}
	return quit
}

// Translate converts one SDL event. ok is false for events the viewer ignores.
func Translate(event sdl.Event) (e Event, ok bool) {
	switch ev := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if ev.Event == sdl.WINDOWEVENT_RESIZED || ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return Event{
				Type:   EventWindowResize,
				Width:  int(ev.Data1),
				Height: int(ev.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		e = Event{Key: ev.Keysym.Scancode, Repeat: ev.Repeat != 0}
		switch ev.Type {
		case sdl.KEYDOWN:
			e.Type = EventKeyDown
			return e, true
		case sdl.KEYUP:
			e.Type = EventKeyUp
			return e, true
		}

	case *sdl.MouseMotionEvent:
		return Event{
			Type:   EventMouseMove,
			MouseX: int(ev.X),
			MouseY: int(ev.Y),
		}, true

	case *sdl.MouseButtonEvent:
		e = Event{MouseX: int(ev.X), MouseY: int(ev.Y), Button: ev.Button}
		switch ev.Type {
		case sdl.MOUSEBUTTONDOWN:
			e.Type = EventMouseDown
			return e, true
		case sdl.MOUSEBUTTONUP:
			e.Type = EventMouseUp
			return e, true
		}
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// ControlKey maps a scancode to a first-person controls key.
func ControlKey(sc sdl.Scancode) (camera.Key, bool) {
	switch sc {
	case sdl.SCANCODE_W, sdl.SCANCODE_UP:
		return camera.KeyForward, true
	case sdl.SCANCODE_S, sdl.SCANCODE_DOWN:
		return camera.KeyBackward, true
	case sdl.SCANCODE_A, sdl.SCANCODE_LEFT:
		return camera.KeyLeft, true
	case sdl.SCANCODE_D, sdl.SCANCODE_RIGHT:
		return camera.KeyRight, true
	case sdl.SCANCODE_R:
		return camera.KeyUp, true
	case sdl.SCANCODE_F:
		return camera.KeyDown, true
	}
	return 0, false
}

// ControlButton maps an SDL mouse button to a controls button.
func ControlButton(b uint8) (camera.MouseButton, bool) {
	switch b {
	case sdl.BUTTON_LEFT:
		return camera.MouseLeft, true
	case sdl.BUTTON_MIDDLE:
		return camera.MouseMiddle, true
	case sdl.BUTTON_RIGHT:
		return camera.MouseRight, true
	}
	return 0, false
}
