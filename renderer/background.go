package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/termglow/effect"
)

var uniformNames = []string{
	uniformTime,
	uniformResolution,
	uniformScale,
	uniformGridMul,
	uniformDigitSize,
	uniformScanline,
	uniformGlitch,
	uniformFlicker,
	uniformNoiseAmp,
	uniformCurvature,
	uniformTint,
	uniformMouse,
	uniformMouseStrength,
	uniformUseMouse,
	uniformBrightness,
	uniformAspect,
}

// Options tweaks how a Background is built. The zero value uses the
// built-in shader sources.
type Options struct {
	VertexSource   string
	FragmentSource string
}

// Background renders the terminal effect over the whole window, one draw
// of the full-screen triangle per frame.
type Background struct {
	dev     Device
	opts    Options
	program Program
	locs    map[string]int32
	state   effect.State

	initialized bool
}

// NewBackground creates a background around dev. Nothing touches the
// device until Init.
func NewBackground(dev Device, state effect.State, opts Options) *Background {
	if opts.VertexSource == "" {
		opts.VertexSource = VertexShader
	}
	if opts.FragmentSource == "" {
		opts.FragmentSource = FragmentShader
	}
	return &Background{dev: dev, opts: opts, state: state}
}

// Init builds the pipeline, pushes the static uniforms, applies the initial
// surface size and subscribes to events. If the pipeline cannot be built
// nothing is subscribed and Frame stays a no-op.
func (b *Background) Init(events EventSource, logicalW, logicalH int, deviceRatio float64) error {
	if b.initialized {
		return nil
	}
	if b.dev == nil {
		return ErrNoContext
	}

	prog, err := b.dev.CompileProgram(b.opts.VertexSource, b.opts.FragmentSource)
	if err != nil {
		var ce *CompileError
		if errors.As(err, &ce) {
			slog.Error("shader pipeline failed", "stage", ce.Stage, "log", ce.Log)
		} else {
			slog.Error("shader pipeline failed", "error", err)
		}
		return fmt.Errorf("building background pipeline: %w", err)
	}

	b.program = prog
	b.locs = make(map[string]int32, len(uniformNames))
	for _, name := range uniformNames {
		b.locs[name] = b.dev.UniformLocation(prog, name)
	}
	b.initialized = true

	b.pushStatic()
	b.Resize(logicalW, logicalH, deviceRatio)

	if events != nil {
		events.OnResize(b.Resize)
		if b.state.Params.PointerReactive {
			events.OnPointerMove(b.handlePointer)
		}
	}

	slog.Info("background ready",
		"buffer_w", b.state.Geometry.BufferW,
		"buffer_h", b.state.Geometry.BufferH,
		"ratio", b.state.Geometry.Ratio,
		"pointer_reactive", b.state.Params.PointerReactive,
	)
	return nil
}

// pushStatic sends the parameters that never change after Init.
func (b *Background) pushStatic() {
	p := b.state.Params
	b.set(uniformScale, UniformFloat, float32(p.Scale))
	b.set(uniformGridMul, UniformVec2, float32(p.GridMul.X), float32(p.GridMul.Y))
	b.set(uniformDigitSize, UniformFloat, float32(p.DigitSize))
	b.set(uniformScanline, UniformFloat, float32(p.ScanlineIntensity))
	b.set(uniformGlitch, UniformFloat, float32(p.GlitchAmount))
	b.set(uniformFlicker, UniformFloat, float32(p.FlickerAmount))
	b.set(uniformNoiseAmp, UniformFloat, float32(p.NoiseAmp))
	b.set(uniformCurvature, UniformFloat, float32(p.Curvature))
	b.set(uniformTint, UniformVec3, float32(p.Tint.R), float32(p.Tint.G), float32(p.Tint.B))
	b.set(uniformMouseStrength, UniformFloat, float32(p.PointerStrength))
	b.set(uniformUseMouse, UniformFloat, float32(p.UseMouse()))
	b.set(uniformBrightness, UniformFloat, float32(p.Brightness))
}

// Resize recomputes the surface geometry for a logical size and device
// ratio, resizes the backing buffer and pushes resolution and aspect.
// Calling it twice with the same arguments changes nothing.
func (b *Background) Resize(logicalW, logicalH int, deviceRatio float64) {
	b.state = b.state.Resize(logicalW, logicalH, deviceRatio)
	if !b.initialized {
		return
	}

	g := b.state.Geometry
	b.dev.ResizeSurface(g.BufferW, g.BufferH)

	res := g.Resolution()
	b.set(uniformResolution, UniformVec3, float32(res[0]), float32(res[1]), float32(res[2]))
	b.set(uniformAspect, UniformFloat, float32(g.Aspect()))

	slog.Debug("surface resized",
		"logical_w", g.LogicalW,
		"logical_h", g.LogicalH,
		"buffer_w", g.BufferW,
		"buffer_h", g.BufferH,
		"ratio", g.Ratio,
	)
}

// handlePointer records a pointer move in window coordinates. The window
// is the surface, so its rect starts at the origin.
func (b *Background) handlePointer(x, y float64) {
	g := b.state.Geometry
	b.state.Pointer.Move(x, y, effect.Rect{W: float64(g.LogicalW), H: float64(g.LogicalH)})
}

// Frame advances the effect to wall time seconds and draws it.
func (b *Background) Frame(seconds float64) {
	if !b.initialized {
		return
	}

	b.state = effect.Tick(b.state, seconds)

	// Minimized windows have no pixels to draw into
	if b.state.Geometry.Empty() {
		return
	}

	m := b.state.Pointer.Smooth
	b.set(uniformTime, UniformFloat, float32(b.state.Time))
	b.set(uniformMouse, UniformVec2, float32(m.X), float32(m.Y))

	b.dev.DrawTriangle(b.program)
	b.dev.Present(b.state.Geometry.LogicalW, b.state.Geometry.LogicalH)
}

func (b *Background) set(name string, kind UniformKind, v ...float32) {
	loc, ok := b.locs[name]
	if !ok || loc < 0 {
		return
	}
	b.dev.SetUniform(b.program, loc, v, kind)
}

// Frames returns how many frames have been rendered.
func (b *Background) Frames() uint64 {
	return b.state.Frames
}

// State returns a copy of the current effect state.
func (b *Background) State() effect.State {
	return b.state
}

// Ready reports whether Init succeeded.
func (b *Background) Ready() bool {
	return b.initialized
}

// Unload frees the pipeline and backing buffer.
func (b *Background) Unload() {
	if b.initialized {
		b.dev.Release(b.program)
		b.initialized = false
	}
}
