package effect

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// FrameInputs are the uniforms that change per frame or per resize.
type FrameInputs struct {
	Time    float64 // iTime
	Aspect  float64 // logical w/h
	Pointer r2.Vec  // smoothed pointer in surface space
}

// Shade evaluates the fragment stage at surface coordinate uv ∈ [0,1]².
// It mirrors the GLSL in renderer/shaders.go line for line and is used for
// previews and golden images.
func Shade(uv r2.Vec, p Params, in FrameInputs) RGB {
	sh := shader{p: p, iTime: in.Time, t: in.Time * 0.333333, aspect: in.Aspect, mouse: in.Pointer}

	q := r2.Scale(p.Scale, Distort(uv, p.Curvature))
	q.X *= in.Aspect

	v := sh.color(q)
	return p.Tint.Scale(v).Scale(p.Brightness)
}

// Distort applies barrel distortion when curvature is non-zero and returns
// uv untouched otherwise.
func Distort(uv r2.Vec, curvature float64) r2.Vec {
	if curvature == 0 {
		return uv
	}
	return Barrel(uv, curvature)
}

// Barrel applies radial lens distortion around the surface centre.
func Barrel(uv r2.Vec, curvature float64) r2.Vec {
	c := r2.Sub(r2.Scale(2, uv), r2.Vec{X: 1, Y: 1})
	c = r2.Scale(1+curvature*r2.Norm2(c), c)
	return r2.Add(r2.Scale(0.5, c), r2.Vec{X: 0.5, Y: 0.5})
}

// Intensity returns the per-cell intensity that the glyph threshold is
// compared against, for the cell containing scaled coordinate s.
func Intensity(s r2.Vec, p Params, in FrameInputs) float64 {
	sh := shader{p: p, iTime: in.Time, t: in.Time * 0.333333, aspect: in.Aspect, mouse: in.Pointer}
	return sh.intensity(s)
}

// shader carries the uniforms and derived time of one evaluation.
type shader struct {
	p      Params
	iTime  float64
	t      float64 // iTime / 3, drives the noise field
	aspect float64
	mouse  r2.Vec
}

func (sh shader) noise(q r2.Vec) float64 {
	return math.Sin(q.X*10)*math.Sin(q.Y*3+sh.t*0.3) + 0.2
}

// rot applies GLSL mat2(c, -s, s, c), a clockwise rotation by angle.
func rot(q r2.Vec, angle float64) r2.Vec {
	return r2.Rotate(q, -angle, r2.Vec{})
}

// fbm sums two octaves, halving amplitude and doubling frequency.
func (sh shader) fbm(q r2.Vec) float64 {
	amp := 0.5 * sh.p.NoiseAmp
	f := amp * sh.noise(q)

	q = r2.Scale(2, rot(q, sh.t*0.02))
	amp *= 0.5
	f += amp * sh.noise(q)

	return f
}

func (sh shader) pattern(q r2.Vec) float64 {
	one := r2.Vec{X: 1, Y: 1}
	warp := r2.Vec{
		X: sh.fbm(r2.Add(q, one)),
		Y: sh.fbm(r2.Add(rot(q, sh.t*0.1), one)),
	}
	return sh.fbm(r2.Add(q, warp))
}

func (sh shader) grid() r2.Vec {
	return r2.Scale(15, sh.p.GridMul)
}

// cell snaps q to the lower-left corner of its grid cell.
func (sh shader) cell(q r2.Vec) r2.Vec {
	g := sh.grid()
	return r2.Vec{X: math.Floor(q.X*g.X) / g.X, Y: math.Floor(q.Y*g.Y) / g.Y}
}

func (sh shader) intensity(s r2.Vec) float64 {
	v := sh.pattern(r2.Scale(0.1, s))*1.3 - 0.03

	if sh.p.PointerReactive {
		m := r2.Scale(sh.p.Scale, sh.mouse)
		m.X *= sh.aspect
		d := r2.Norm(r2.Sub(s, m))
		glow := math.Exp(-d*8) * sh.p.PointerStrength * 10
		v += glow
		v += math.Sin(d*20-sh.iTime*5) * 0.1 * glow
	}
	return v
}

// digit renders the dot-matrix glyph of the cell containing q.
func (sh shader) digit(q r2.Vec) float64 {
	g := sh.grid()
	s := sh.cell(q)
	q = r2.Vec{X: q.X * g.X, Y: q.Y * g.Y}

	v := sh.intensity(s)

	q = r2.Scale(sh.p.DigitSize, r2.Vec{X: fract(q.X), Y: fract(q.Y)})

	px5 := q.X * 5
	py5 := (1 - q.Y) * 5

	i := math.Floor(py5) - 2
	j := math.Floor(px5) - 2
	f := (i*i + j*j) * 0.0625

	on := step(0.1, v-f)
	b := on * (0.2 + fract(py5)*0.8) * (0.75 + fract(px5)*0.25)

	return step(0, q.X) * step(q.X, 1) * step(0, q.Y) * step(q.Y, 1) * b
}

func (sh shader) onOff(a, b, c float64) float64 {
	return step(c, math.Sin(sh.iTime+a*math.Cos(sh.iTime*b))) * sh.p.FlickerAmount
}

func (sh shader) color(q r2.Vec) float64 {
	bar := (step(glslMod(q.Y+sh.t*20, 1), 0.2)*0.4 + 1) * sh.p.ScanlineIntensity

	y := q.Y - glslMod(sh.iTime*0.25, 1)
	window := 1 / (1 + 50*y*y)
	displacement := math.Sin(q.Y*20+sh.iTime) * 0.0125 * sh.onOff(4, 2, 0.8) * (1 + math.Cos(sh.iTime*60)) * window
	q.X += displacement * sh.p.GlitchAmount

	d := sh.digit(q)
	glow := d * 0.3

	return (d*0.9 + glow) * bar
}

// step is GLSL step: 0 if x < edge, else 1.
func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

// glslMod is GLSL mod, which floors rather than truncates.
func glslMod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

// ToRGBA clamps c to [0,1] and converts it to an opaque 8-bit colour.
func (c RGB) ToRGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

func to8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Render shades a w×h image row by row, top row first. Pixel centres are
// sampled, matching rasterisation of the full-screen triangle.
func Render(w, h int, p Params, in FrameInputs) []color.RGBA {
	out := make([]color.RGBA, w*h)
	for y := 0; y < h; y++ {
		v := 1 - (float64(y)+0.5)/float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			out[y*w+x] = Shade(r2.Vec{X: u, Y: v}, p, in).ToRGBA()
		}
	}
	return out
}
