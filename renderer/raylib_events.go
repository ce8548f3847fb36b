package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibEvents turns raylib's polled input state into EventSource
// callbacks. Poll must be called once per frame on the window thread.
type RaylibEvents struct {
	pointerFns []func(x, y float64)
	resizeFns  []func(w, h int, deviceRatio float64)

	lastMouse rl.Vector2

	lastW, lastH int
	lastRatio    float64
}

// NewRaylibEvents starts from the current window size and mouse position
// so Poll only reports real changes.
func NewRaylibEvents() *RaylibEvents {
	e := &RaylibEvents{lastMouse: rl.GetMousePosition()}
	e.lastW, e.lastH, e.lastRatio = windowSize()
	return e
}

// OnPointerMove implements EventSource.
func (e *RaylibEvents) OnPointerMove(fn func(x, y float64)) {
	e.pointerFns = append(e.pointerFns, fn)
}

// OnResize implements EventSource.
func (e *RaylibEvents) OnResize(fn func(w, h int, deviceRatio float64)) {
	e.resizeFns = append(e.resizeFns, fn)
}

// Subscriptions returns the number of installed handlers.
func (e *RaylibEvents) Subscriptions() int {
	return len(e.pointerFns) + len(e.resizeFns)
}

// Poll dispatches a resize if the window size or scale changed and a
// pointer move if the mouse moved since the last call.
func (e *RaylibEvents) Poll() {
	if len(e.resizeFns) > 0 {
		w, h, ratio := windowSize()
		if w != e.lastW || h != e.lastH || ratio != e.lastRatio {
			e.lastW, e.lastH, e.lastRatio = w, h, ratio
			for _, fn := range e.resizeFns {
				fn(w, h, ratio)
			}
		}
	}

	if len(e.pointerFns) > 0 {
		pos := rl.GetMousePosition()
		if pos != e.lastMouse {
			e.lastMouse = pos
			for _, fn := range e.pointerFns {
				fn(float64(pos.X), float64(pos.Y))
			}
		}
	}
}

// windowSize returns the logical window size and its device pixel ratio.
func windowSize() (w, h int, ratio float64) {
	return rl.GetScreenWidth(), rl.GetScreenHeight(), DeviceRatio()
}

// DeviceRatio returns the window's physical-to-logical pixel ratio.
func DeviceRatio() float64 {
	return float64(rl.GetWindowScaleDPI().X)
}
