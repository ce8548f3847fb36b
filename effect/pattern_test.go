package effect

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/termglow/config"
)

func defaultParams(t *testing.T) Params {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return NewParams(cfg.Effect)
}

func TestDistortZeroCurvatureIsIdentity(t *testing.T) {
	for _, uv := range []r2.Vec{
		{X: 0, Y: 0},
		{X: 1, Y: 1},
		{X: 0.123456789, Y: 0.987654321},
		{X: 0.5, Y: 0.5},
		{X: 1e-12, Y: 1 - 1e-12},
	} {
		if got := Distort(uv, 0); got != uv {
			t.Errorf("Distort(%v, 0) = %v, want exact input", uv, got)
		}
	}
}

func TestBarrel(t *testing.T) {
	centre := r2.Vec{X: 0.5, Y: 0.5}
	if got := Barrel(centre, 0.7); got != centre {
		t.Errorf("centre should be a fixed point, got %v", got)
	}

	// Positive curvature pushes points away from the centre
	corner := r2.Vec{X: 0.9, Y: 0.9}
	got := Barrel(corner, 0.2)
	if r2.Norm(r2.Sub(got, centre)) <= r2.Norm(r2.Sub(corner, centre)) {
		t.Errorf("expected %v to move outward, got %v", corner, got)
	}

	// c = (0.8, 0.8), |c|² = 1.28, factor 1.256 → 0.5 + 0.4·1.256
	want := 0.5 + 0.4*1.256
	if math.Abs(got.X-want) > 1e-12 || math.Abs(got.Y-want) > 1e-12 {
		t.Errorf("expected (%f, %f), got %v", want, want, got)
	}
}

func TestShadeGolden(t *testing.T) {
	p := defaultParams(t)
	in := func(time float64) FrameInputs {
		return FrameInputs{Time: time, Aspect: 16.0 / 9.0, Pointer: r2.Vec{X: 0.4, Y: 0.6}}
	}

	tests := []struct {
		name string
		uv   r2.Vec
		time float64
		want RGB
	}{
		{"lit glyph", r2.Vec{X: 0.31, Y: 0.62}, 12.5, RGB{0.041158567526400375, 0.10289641881600094, 0.061737851289600555}},
		{"dim glyph", r2.Vec{X: 0.44, Y: 0.37}, 12.5, RGB{0.026112845721599987, 0.06528211430399997, 0.039169268582399976}},
		{"glitch active", r2.Vec{X: 0.31, Y: 0.62}, 40.0, RGB{0.03293371738293654, 0.08233429345734135, 0.04940057607440481}},
		{"dark cell", r2.Vec{X: 0.73, Y: 0.21}, 12.5, RGB{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Shade(tc.uv, p, in(tc.time))
			if !closeRGB(got, tc.want, 1e-9) {
				t.Errorf("Shade(%v, t=%g) = %+v, want %+v", tc.uv, tc.time, got, tc.want)
			}
		})
	}
}

func TestShadeDeterministic(t *testing.T) {
	p := defaultParams(t)
	in := FrameInputs{Time: 7.25, Aspect: 1.6, Pointer: r2.Vec{X: 0.2, Y: 0.8}}

	a := Render(48, 27, p, in)
	b := Render(48, 27, p, in)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d differs between renders: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestShadeTintAndBrightness(t *testing.T) {
	p := defaultParams(t)
	in := FrameInputs{Time: 12.5, Aspect: 16.0 / 9.0, Pointer: r2.Vec{X: 0.4, Y: 0.6}}
	uv := r2.Vec{X: 0.31, Y: 0.62}

	base := Shade(uv, p, in)
	if base.G == 0 {
		t.Fatal("expected a lit sample to start from")
	}

	p.Tint = RGB{R: 1, G: 0, B: 0}
	red := Shade(uv, p, in)
	if red.G != 0 || red.B != 0 {
		t.Errorf("expected only red channel, got %+v", red)
	}

	p.Brightness = 0
	if dark := Shade(uv, p, in); dark != (RGB{}) {
		t.Errorf("expected black at zero brightness, got %+v", dark)
	}
}

func TestIntensityIgnoresPointerWhenDisabled(t *testing.T) {
	p := defaultParams(t)
	p.PointerReactive = false

	s := r2.Vec{X: 0.7, Y: 0.4}
	ref := Intensity(s, p, FrameInputs{Time: 3, Aspect: 1.5, Pointer: r2.Vec{X: 0.5, Y: 0.5}})
	for _, ptr := range []r2.Vec{{X: 0, Y: 0}, {X: 0.47, Y: 0.4}, {X: 1, Y: 1}} {
		got := Intensity(s, p, FrameInputs{Time: 3, Aspect: 1.5, Pointer: ptr})
		if got != ref {
			t.Errorf("pointer %v changed intensity: %f vs %f", ptr, got, ref)
		}
	}
}

func TestIntensityPointerGlow(t *testing.T) {
	p := defaultParams(t)
	in := FrameInputs{Time: 3, Aspect: 1.5, Pointer: r2.Vec{X: 0.5, Y: 0.5}}

	// Cell sitting right under the pointer: distance 0, glow = strength·10
	s := r2.Vec{X: 0.5 * p.Scale * in.Aspect, Y: 0.5 * p.Scale}

	off := p
	off.PointerReactive = false

	delta := Intensity(s, p, in) - Intensity(s, off, in)
	want := p.PointerStrength * 10 * (1 + 0.1*math.Sin(-in.Time*5))
	if math.Abs(delta-want) > 1e-12 {
		t.Errorf("expected glow %f under the pointer, got %f", want, delta)
	}
}

func TestRenderOrientation(t *testing.T) {
	p := defaultParams(t)
	in := FrameInputs{Time: 12.5, Aspect: 1, Pointer: r2.Vec{X: 0.5, Y: 0.5}}

	w, h := 8, 4
	img := Render(w, h, p, in)
	if len(img) != w*h {
		t.Fatalf("expected %d pixels, got %d", w*h, len(img))
	}

	// Top-left pixel samples the top of the surface (v near 1)
	want := Shade(r2.Vec{X: 0.5 / 8, Y: 1 - 0.5/4}, p, in).ToRGBA()
	if img[0] != want {
		t.Errorf("top-left pixel %v, want %v", img[0], want)
	}
}

func TestToRGBAClamps(t *testing.T) {
	c := RGB{R: -1, G: 2, B: 0.5}.ToRGBA()
	if c.R != 0 || c.G != 255 || c.B != 128 || c.A != 255 {
		t.Errorf("unexpected clamp result %v", c)
	}
}

func TestGLSLHelpers(t *testing.T) {
	if glslMod(-0.25, 1) != 0.75 {
		t.Errorf("glslMod should floor, got %f", glslMod(-0.25, 1))
	}
	if fract(-1.25) != 0.75 {
		t.Errorf("fract(-1.25) = %f", fract(-1.25))
	}
	if step(0.5, 0.5) != 1 || step(0.5, 0.49) != 0 {
		t.Error("step edge handling wrong")
	}

	// GLSL mat2(c,-s,s,c)·p maps (1,0) to (cos a, -sin a)
	got := rot(r2.Vec{X: 1, Y: 0}, math.Pi/2)
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y+1) > 1e-12 {
		t.Errorf("rot((1,0), π/2) = %v, want (0,-1)", got)
	}
}

func closeRGB(a, b RGB, tol float64) bool {
	return math.Abs(a.R-b.R) <= tol && math.Abs(a.G-b.G) <= tol && math.Abs(a.B-b.B) <= tol
}
