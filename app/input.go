package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/termglow/ui"
)

// handleInput drains the key queue: F11 toggles fullscreen, the rest go to
// the overlay registry. Mouse and resize come through the event source.
func (a *App) handleInput() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if key == rl.KeyF11 {
			rl.ToggleFullscreen()
			continue
		}
		if id, on, ok := a.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on)
		}
	}
}

// drawOverlays draws whichever debug overlays are switched on.
func (a *App) drawOverlays() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	state := a.State()

	if a.overlays.IsEnabled(ui.OverlayPointer) && state.Params.PointerReactive {
		ui.DrawPointerMarkers(state)
	}

	if a.overlays.IsEnabled(ui.OverlayHUD) {
		data := ui.NewHUDData(state, a.perf.Stats(), rl.GetFPS(), a.status)
		a.hud.Draw(data, w, h)
	}

	if a.overlays.IsEnabled(ui.OverlayLegend) {
		a.hud.DrawControls(h, a.overlays.Legend("F11 Fullscreen"))
	}
}
