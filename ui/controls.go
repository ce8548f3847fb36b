package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/termglow/config"
)

// SliderDescriptor binds a slider to one numeric field of the effect config.
type SliderDescriptor struct {
	ID    string
	Label string
	Min   float32
	Max   float32
	Field func(*config.EffectConfig) *float64
}

// EffectSliders returns the tunable effect parameters in display order.
func EffectSliders() []SliderDescriptor {
	return []SliderDescriptor{
		{ID: "scale", Label: "Scale", Min: 0.25, Max: 4, Field: func(c *config.EffectConfig) *float64 { return &c.Scale }},
		{ID: "grid_x", Label: "Grid X", Min: 0.5, Max: 4, Field: func(c *config.EffectConfig) *float64 { return &c.GridMul[0] }},
		{ID: "grid_y", Label: "Grid Y", Min: 0.5, Max: 4, Field: func(c *config.EffectConfig) *float64 { return &c.GridMul[1] }},
		{ID: "digit_size", Label: "Digit", Min: 0.5, Max: 3, Field: func(c *config.EffectConfig) *float64 { return &c.DigitSize }},
		{ID: "time_scale", Label: "Speed", Min: 0, Max: 2, Field: func(c *config.EffectConfig) *float64 { return &c.TimeScale }},
		{ID: "scanline", Label: "Scanline", Min: 0, Max: 1, Field: func(c *config.EffectConfig) *float64 { return &c.ScanlineIntensity }},
		{ID: "glitch", Label: "Glitch", Min: 0, Max: 3, Field: func(c *config.EffectConfig) *float64 { return &c.GlitchAmount }},
		{ID: "flicker", Label: "Flicker", Min: 0, Max: 2, Field: func(c *config.EffectConfig) *float64 { return &c.FlickerAmount }},
		{ID: "noise_amp", Label: "Noise", Min: 0, Max: 3, Field: func(c *config.EffectConfig) *float64 { return &c.NoiseAmp }},
		{ID: "curvature", Label: "Curve", Min: -0.5, Max: 1, Field: func(c *config.EffectConfig) *float64 { return &c.Curvature }},
		{ID: "tint_r", Label: "Tint R", Min: 0, Max: 1, Field: func(c *config.EffectConfig) *float64 { return &c.Tint[0] }},
		{ID: "tint_g", Label: "Tint G", Min: 0, Max: 1, Field: func(c *config.EffectConfig) *float64 { return &c.Tint[1] }},
		{ID: "tint_b", Label: "Tint B", Min: 0, Max: 1, Field: func(c *config.EffectConfig) *float64 { return &c.Tint[2] }},
		{ID: "pointer_strength", Label: "Pointer", Min: 0, Max: 1, Field: func(c *config.EffectConfig) *float64 { return &c.PointerStrength }},
		{ID: "brightness", Label: "Bright", Min: 0, Max: 2, Field: func(c *config.EffectConfig) *float64 { return &c.Brightness }},
	}
}

// TuningPanel draws sliders over an effect config.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sliders  []SliderDescriptor
}

// NewTuningPanel creates a tuning panel at x, y.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sliders:  EffectSliders(),
	}
}

// Height returns the panel height: one row per slider plus the pointer
// toggle.
func (p *TuningPanel) Height() int32 {
	t := p.renderer.Theme
	return int32(len(p.sliders)+1)*(t.LineHeight+6) + t.Padding*2
}

// Draw renders the sliders and writes moved values back into cfg. It
// returns the bottom of the panel and whether anything changed.
func (p *TuningPanel) Draw(cfg *config.EffectConfig) (int32, bool) {
	t := p.renderer.Theme
	changed := false

	y := p.y + t.Padding
	sliderX := p.x + t.LabelWidth
	sliderW := p.width - t.LabelWidth - 50

	for _, s := range p.sliders {
		ptr := s.Field(cfg)
		cur := float32(*ptr)
		v := gui.SliderBar(rect(sliderX, y, sliderW, t.LineHeight), s.Label, fmt.Sprintf("%.3f", cur), cur, s.Min, s.Max)
		if v != cur {
			*ptr = float64(v)
			changed = true
		}
		y += t.LineHeight + 6
	}

	reactive := gui.CheckBox(rect(p.x+t.Padding, y, t.LineHeight, t.LineHeight), "Pointer reactive", cfg.PointerReactive)
	if reactive != cfg.PointerReactive {
		cfg.PointerReactive = reactive
		changed = true
	}
	y += t.LineHeight + 6

	return y, changed
}
