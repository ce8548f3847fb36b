package effect

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Damping is the fraction of the remaining distance the smoothed pointer
// covers each frame.
const Damping = 0.08

// Rect is a surface rectangle in window coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Pointer holds the raw pointer position written by the input handler and
// the smoothed position advanced by Tick. Both are in surface space [0,1]²
// with y pointing up.
type Pointer struct {
	Raw    r2.Vec
	Smooth r2.Vec
}

// NewPointer returns a pointer resting at the surface centre.
func NewPointer() Pointer {
	centre := r2.Vec{X: 0.5, Y: 0.5}
	return Pointer{Raw: centre, Smooth: centre}
}

// Normalize maps a window-space position into surface space, flipping the
// vertical axis. ok is false when the rectangle is degenerate.
func Normalize(sx, sy float64, rect Rect) (v r2.Vec, ok bool) {
	if rect.W <= 0 || rect.H <= 0 {
		return r2.Vec{}, false
	}
	return r2.Vec{
		X: (sx - rect.X) / rect.W,
		Y: 1 - (sy-rect.Y)/rect.H,
	}, true
}

// Move records a raw pointer event. Events on a degenerate surface are dropped.
func (p *Pointer) Move(sx, sy float64, rect Rect) {
	if v, ok := Normalize(sx, sy, rect); ok {
		p.Raw = v
	}
}

// Step advances the smoothed position one frame toward the raw position.
func (p Pointer) Step() Pointer {
	p.Smooth = r2.Add(p.Smooth, r2.Scale(Damping, r2.Sub(p.Raw, p.Smooth)))
	return p
}

// StepsToConverge returns how many damped steps shrink the distance to the
// target below tol of its starting value: ceil(ln tol / ln(1-coef)).
func StepsToConverge(coef, tol float64) int {
	if coef <= 0 || coef >= 1 || tol <= 0 || tol >= 1 {
		return 0
	}
	return int(math.Ceil(math.Log(tol) / math.Log(1-coef)))
}
