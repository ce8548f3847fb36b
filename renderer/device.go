package renderer

import (
	"errors"
	"fmt"
)

// ErrNoContext is returned when no graphics context is available.
var ErrNoContext = errors.New("renderer: no graphics context")

// Program is a linked vertex+fragment pipeline owned by a Device.
type Program uint32

// UniformKind is the GLSL type of a uniform value.
type UniformKind int

const (
	UniformFloat UniformKind = iota
	UniformVec2
	UniformVec3
)

// Components returns how many floats a value of this kind holds.
func (k UniformKind) Components() int {
	switch k {
	case UniformVec2:
		return 2
	case UniformVec3:
		return 3
	default:
		return 1
	}
}

// Stage identifies where pipeline construction failed.
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// CompileError carries the failing stage and the driver's info log.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("%s shader failed", e.Stage)
	}
	return fmt.Sprintf("%s shader failed: %s", e.Stage, e.Log)
}

// Device is the slice of a graphics context the background needs.
// All calls must come from the thread that owns the context.
type Device interface {
	// CompileProgram compiles both stages and links them. A failure in any
	// step returns a *CompileError and no program.
	CompileProgram(vertexSrc, fragmentSrc string) (Program, error)

	// UniformLocation returns the location of a uniform, or -1 if the
	// program does not use it.
	UniformLocation(p Program, name string) int32

	SetUniform(p Program, loc int32, value []float32, kind UniformKind)

	// ResizeSurface resizes the backing buffer to w×h pixels and points
	// the viewport at all of it.
	ResizeSurface(w, h int)

	// DrawTriangle issues one draw of the full-screen triangle into the
	// backing buffer.
	DrawTriangle(p Program)

	// Present copies the backing buffer onto the window at its logical size.
	Present(logicalW, logicalH int)

	// Release frees the program and the backing buffer.
	Release(p Program)
}

// EventSource delivers host surface events. Subscribing is the only way
// handlers get installed; nothing is delivered to sources never asked.
type EventSource interface {
	OnPointerMove(fn func(x, y float64))
	OnResize(fn func(w, h int, deviceRatio float64))
}
