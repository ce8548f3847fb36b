package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/termglow/effect"
	"github.com/pthm-cable/termglow/telemetry"
)

// HUDData is everything the debug HUD shows for one frame.
type HUDData struct {
	State  effect.State
	Perf   telemetry.PerfStats
	FPS    int32
	Status string // "running" or why the effect is off
}

// NewHUDData collects HUD data from the renderer state and frame stats.
func NewHUDData(state effect.State, perf telemetry.PerfStats, fps int32, status string) HUDData {
	return HUDData{State: state, Perf: perf, FPS: fps, Status: status}
}

func hud(data any) HUDData {
	d, _ := data.(HUDData)
	return d
}

// PointerLag is how far the smoothed pointer trails the raw one.
func (d HUDData) PointerLag() float32 {
	p := d.State.Pointer
	return float32(r2.Norm(r2.Sub(p.Raw, p.Smooth)))
}

func vecText(v r2.Vec) string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// HUDPanel describes the debug HUD.
func HUDPanel() PanelDescriptor {
	return PanelDescriptor{
		ID:     "hud",
		Title:  "termglow",
		Width:  280,
		Anchor: AnchorTopLeft,
		Sections: []SectionDescriptor{
			{
				ID:    "frame",
				Title: "Frame",
				Fields: []FieldDescriptor{
					{ID: "status", Label: "Status", Widget: WidgetText, TextGetter: func(d any) string { return hud(d).Status }},
					{ID: "fps", Label: "FPS", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("%d", hud(d).FPS) }},
					{ID: "frames", Label: "Frames", Widget: WidgetText, TextGetter: func(d any) string { return fmt.Sprintf("%d", hud(d).State.Frames) }},
					{ID: "avg", Label: "Avg ms", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 {
						return float32(hud(d).Perf.AvgFrame.Seconds() * 1000)
					}},
					{ID: "p95", Label: "P95 ms", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 {
						return float32(hud(d).Perf.P95Frame.Seconds() * 1000)
					}},
				},
			},
			{
				ID:    "surface",
				Title: "Surface",
				Fields: []FieldDescriptor{
					{ID: "logical", Label: "Logical", Widget: WidgetText, TextGetter: func(d any) string {
						g := hud(d).State.Geometry
						return fmt.Sprintf("%dx%d", g.LogicalW, g.LogicalH)
					}},
					{ID: "buffer", Label: "Buffer", Widget: WidgetText, TextGetter: func(d any) string {
						g := hud(d).State.Geometry
						return fmt.Sprintf("%dx%d @%.2f", g.BufferW, g.BufferH, g.Ratio)
					}},
					{ID: "aspect", Label: "Aspect", Widget: WidgetText, Format: "%.3f", Getter: func(d any) float32 {
						return float32(hud(d).State.Geometry.Aspect())
					}},
				},
			},
			{
				ID:      "pointer",
				Title:   "Pointer",
				Visible: func(d any) bool { return hud(d).State.Params.PointerReactive },
				Fields: []FieldDescriptor{
					{ID: "raw", Label: "Raw", Widget: WidgetText, TextGetter: func(d any) string { return vecText(hud(d).State.Pointer.Raw) }},
					{ID: "smooth", Label: "Smooth", Widget: WidgetText, TextGetter: func(d any) string { return vecText(hud(d).State.Pointer.Smooth) }},
					{ID: "lag", Label: "Lag", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 1.5}, Getter: func(d any) float32 {
						return hud(d).PointerLag()
					}},
				},
			},
			{
				ID:    "effect",
				Title: "Effect",
				Fields: []FieldDescriptor{
					{ID: "time", Label: "iTime", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 { return float32(hud(d).State.Time) }},
					{ID: "tint", Label: "Tint", Widget: WidgetSwatch, ColorGetter: func(d any) rl.Color {
						p := hud(d).State.Params
						c := p.Tint.Scale(p.Brightness).ToRGBA()
						return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
					}},
				},
			},
		},
	}
}

// HUD draws the debug panel and key legend.
type HUD struct {
	renderer *Renderer
	panel    PanelDescriptor
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		panel:    HUDPanel(),
	}
}

// Draw renders the panel and returns its bounds.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) rl.Rectangle {
	return h.renderer.DrawPanel(h.panel, data, screenW, screenH)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenH int32, controls string) {
	h.renderer.DrawLegend(controls, screenH)
}

// ToWindow maps a surface-space point back to window coordinates, undoing
// effect.Normalize for a surface covering the whole window.
func ToWindow(v r2.Vec, g effect.Geometry) rl.Vector2 {
	return rl.Vector2{
		X: float32(v.X * float64(g.LogicalW)),
		Y: float32((1 - v.Y) * float64(g.LogicalH)),
	}
}

// DrawPointerMarkers draws a ring at the raw pointer and a dot at the
// smoothed one.
func DrawPointerMarkers(s effect.State) {
	rl.DrawCircleLinesV(ToWindow(s.Pointer.Raw, s.Geometry), 10, rl.Yellow)
	rl.DrawCircleV(ToWindow(s.Pointer.Smooth, s.Geometry), 4, rl.Green)
}
