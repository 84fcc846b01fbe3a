// Package input turns SDL2 events into viewer input: named key presses,
// orbit drags, zoom steps and part picks.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is the kind of processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKey
	EventDrag
	EventZoom
	EventPick
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    string // SDL key name, e.g. "C", "1", "F12", "Escape"
	Width  int
	Height int
	DX, DY float32 // drag delta in pixels
	Zoom   float32 // wheel steps, positive zooms in
	X, Y   float32 // cursor position in window points for EventPick
}

// Input collects the events of one frame.
type Input struct {
	events   []Event
	dragging bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update polls SDL events. It returns true when the window should close.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if e, ok := i.translate(event); ok {
			i.events = append(i.events, e)
			if e.Type == EventQuit {
				quit = true
			}
		}
	}
	return quit
}

func (i *Input) translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return Event{Type: EventKey, Key: sdl.GetKeyName(e.Keysym.Sym)}, true
		}

	case *sdl.MouseButtonEvent:
		switch {
		case e.Button == sdl.BUTTON_LEFT:
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
		case e.Button == sdl.BUTTON_RIGHT && e.Type == sdl.MOUSEBUTTONDOWN:
			return Event{Type: EventPick, X: float32(e.X), Y: float32(e.Y)}, true
		}

	case *sdl.MouseMotionEvent:
		if i.dragging && (e.XRel != 0 || e.YRel != 0) {
			return Event{Type: EventDrag, DX: float32(e.XRel), DY: float32(e.YRel)}, true
		}

	case *sdl.MouseWheelEvent:
		if e.Y != 0 {
			return Event{Type: EventZoom, Zoom: float32(e.Y)}, true
		}
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Dragging reports whether the left button is held.
func (i *Input) Dragging() bool {
	return i.dragging
}
