package effect

import "math/rand"

// MaxTimeOffset bounds the random per-session phase offset, in seconds.
const MaxTimeOffset = 100.0

// Clock turns wall seconds since start into the shader's iTime.
type Clock struct {
	Offset float64
	Scale  float64
}

// NewClock draws a random phase offset so that repeated sessions do not
// start from the same animation frame.
func NewClock(timeScale float64, rng *rand.Rand) Clock {
	return Clock{
		Offset: rng.Float64() * MaxTimeOffset,
		Scale:  timeScale,
	}
}

// Elapsed returns (seconds + offset) · scale.
func (c Clock) Elapsed(seconds float64) float64 {
	return (seconds + c.Offset) * c.Scale
}

// State is everything the renderer mutates over a session.
// The input handler may only write Pointer.Raw; everything else belongs to Tick.
type State struct {
	Params   Params
	Clock    Clock
	Pointer  Pointer
	Geometry Geometry

	Time   float64 // iTime of the last tick
	Frames uint64  // Ticks applied so far
}

// NewState returns the state before the first frame.
func NewState(params Params, clock Clock) State {
	return State{
		Params:  params,
		Clock:   clock,
		Pointer: NewPointer(),
	}
}

// Tick advances the state to wall time seconds.
func Tick(s State, seconds float64) State {
	s.Time = s.Clock.Elapsed(seconds)
	s.Pointer = s.Pointer.Step()
	s.Frames++
	return s
}

// Resize installs new surface geometry for a logical size and device ratio.
func (s State) Resize(logicalW, logicalH int, deviceRatio float64) State {
	s.Geometry = NewGeometry(logicalW, logicalH, deviceRatio, s.Params.DPRCap)
	return s
}

// Inputs returns the per-frame inputs of the fragment stage.
func (s State) Inputs() FrameInputs {
	return FrameInputs{
		Time:    s.Time,
		Aspect:  s.Geometry.Aspect(),
		Pointer: s.Pointer.Smooth,
	}
}
