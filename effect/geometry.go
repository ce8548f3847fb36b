package effect

import "math"

// Geometry describes the drawing surface: its logical (window) size, the
// capped pixel ratio and the backing buffer size in physical pixels.
type Geometry struct {
	LogicalW, LogicalH int
	Ratio              float64
	BufferW, BufferH   int
}

// CapRatio clamps a device pixel ratio to maxRatio. Non-positive ratios count as 1.
func CapRatio(deviceRatio, maxRatio float64) float64 {
	r := deviceRatio
	if r <= 0 || math.IsNaN(r) {
		r = 1
	}
	if maxRatio > 0 && r > maxRatio {
		r = maxRatio
	}
	return r
}

// NewGeometry computes the backing buffer for a logical size at the given
// device ratio, capped to maxRatio: floor(w·r) × floor(h·r).
func NewGeometry(logicalW, logicalH int, deviceRatio, maxRatio float64) Geometry {
	r := CapRatio(deviceRatio, maxRatio)
	return Geometry{
		LogicalW: logicalW,
		LogicalH: logicalH,
		Ratio:    r,
		BufferW:  int(math.Floor(float64(logicalW) * r)),
		BufferH:  int(math.Floor(float64(logicalH) * r)),
	}
}

// Aspect returns the logical aspect ratio w/h, or 1 for a degenerate surface.
func (g Geometry) Aspect() float64 {
	if g.LogicalH <= 0 {
		return 1
	}
	return float64(g.LogicalW) / float64(g.LogicalH)
}

// Resolution returns the iResolution uniform: buffer width, height and
// buffer aspect.
func (g Geometry) Resolution() [3]float64 {
	ar := 1.0
	if g.BufferH > 0 {
		ar = float64(g.BufferW) / float64(g.BufferH)
	}
	return [3]float64{float64(g.BufferW), float64(g.BufferH), ar}
}

// Empty reports whether the backing buffer has no pixels.
func (g Geometry) Empty() bool {
	return g.BufferW <= 0 || g.BufferH <= 0
}
