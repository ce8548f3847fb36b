// Package effect holds the GPU-free half of the faulty-terminal background:
// the parameter set, surface geometry, pointer smoothing, the per-frame
// tick and a CPU reference of the fragment stage.
package effect

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/termglow/config"
)

// RGB is a linear colour triple. Channels are not clamped.
type RGB struct {
	R, G, B float64
}

// Scale returns c with every channel multiplied by f.
func (c RGB) Scale(f float64) RGB {
	return RGB{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Mul multiplies two colours channel by channel.
func (c RGB) Mul(o RGB) RGB {
	return RGB{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Params is the immutable parameter set uploaded as static uniforms.
type Params struct {
	Scale             float64
	GridMul           r2.Vec
	DigitSize         float64
	TimeScale         float64
	ScanlineIntensity float64
	GlitchAmount      float64
	FlickerAmount     float64
	NoiseAmp          float64
	Curvature         float64
	Tint              RGB
	PointerReactive   bool
	PointerStrength   float64
	Brightness        float64
	DPRCap            float64
}

// NewParams builds a parameter set from the effect section of the config.
func NewParams(c config.EffectConfig) Params {
	return Params{
		Scale:             c.Scale,
		GridMul:           r2.Vec{X: c.GridMul[0], Y: c.GridMul[1]},
		DigitSize:         c.DigitSize,
		TimeScale:         c.TimeScale,
		ScanlineIntensity: c.ScanlineIntensity,
		GlitchAmount:      c.GlitchAmount,
		FlickerAmount:     c.FlickerAmount,
		NoiseAmp:          c.NoiseAmp,
		Curvature:         c.Curvature,
		Tint:              RGB{R: c.Tint[0], G: c.Tint[1], B: c.Tint[2]},
		PointerReactive:   c.PointerReactive,
		PointerStrength:   c.PointerStrength,
		Brightness:        c.Brightness,
		DPRCap:            c.DPRCap,
	}
}

// UseMouse returns the shader's float encoding of the pointer toggle.
func (p Params) UseMouse() float64 {
	if p.PointerReactive {
		return 1
	}
	return 0
}
