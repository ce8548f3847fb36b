// Effect preview tool - live CPU rendering of the background with sliders.
//
// Usage: go run ./cmd/effectpreview -config config.yaml -out tuned.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/termglow/config"
	"github.com/pthm-cable/termglow/effect"
	"github.com/pthm-cable/termglow/ui"
)

const (
	windowWidth   = 1120
	windowHeight  = 720
	previewX      = 10
	previewY      = 10
	previewWidth  = 640
	previewHeight = 360
	gridW         = 256 // CPU render size, stretched to the preview
	gridH         = 144
	panelX        = previewX + previewWidth + 20
	panelWidth    = windowWidth - panelX - 10
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "termglow.yaml", "Where Write YAML saves the tuned config")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	initial := *cfg

	rl.InitWindow(windowWidth, windowHeight, "Effect Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)
	rl.SetTextureFilter(texture, rl.FilterBilinear)

	state := newState(cfg.Effect)
	panel := ui.NewTuningPanel(panelX, 40, panelWidth)
	previewRect := effect.Rect{X: previewX, Y: previewY, W: previewWidth, H: previewHeight}

	var seconds float64
	animating := true
	status := ""

	for !rl.WindowShouldClose() {
		if animating {
			seconds += float64(rl.GetFrameTime())
		}

		mouse := rl.GetMousePosition()
		if state.Params.PointerReactive && inPreview(mouse) {
			state.Pointer.Move(float64(mouse.X), float64(mouse.Y), previewRect)
		}

		state = effect.Tick(state, seconds)
		rl.UpdateTexture(texture, effect.Render(gridW, gridH, state.Params, state.Inputs()))

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridW, Height: gridH},
			rl.Rectangle{X: previewX, Y: previewY, Width: previewWidth, Height: previewHeight},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(previewX, previewY, previewWidth, previewHeight, rl.DarkGray)
		if state.Params.PointerReactive {
			p := state.Pointer.Smooth
			rl.DrawCircleLines(
				int32(previewX+p.X*previewWidth),
				int32(previewY+(1-p.Y)*previewHeight),
				6, rl.Yellow)
		}

		statsY := int32(previewY + previewHeight + 15)
		rl.DrawText(fmt.Sprintf("iTime: %.2f  Seconds: %.1f  Frames: %d", state.Time, seconds, state.Frames), previewX+5, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Aspect: %.3f  Pointer: (%.2f, %.2f)", state.Geometry.Aspect(), state.Pointer.Smooth.X, state.Pointer.Smooth.Y), previewX+5, statsY+20, 16, rl.DarkGray)
		if status != "" {
			rl.DrawText(status, previewX+5, statsY+45, 16, rl.DarkGreen)
		}

		rl.DrawText("Effect Parameters", panelX, 10, 20, rl.DarkGray)
		bottom, changed := panel.Draw(&cfg.Effect)
		if changed {
			state = retune(state, cfg.Effect)
		}

		// Buttons
		y := float32(bottom + 10)
		label := "Animate"
		if animating {
			label = "Stop"
		}
		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, label) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Reset Time") {
			seconds = 0
		}
		y += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Reset All") {
			*cfg = initial
			state = newState(cfg.Effect)
			seconds = 0
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Write YAML") {
			status = writeConfig(cfg, *outPath)
		}

		rl.DrawText("Press C to copy the effect section to the clipboard", panelX, windowHeight-30, 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyC) {
			if text, err := effectYAML(cfg.Effect); err != nil {
				slog.Error("failed to encode effect", "error", err)
			} else {
				rl.SetClipboardText(text)
				status = "Effect section copied"
			}
		}

		rl.EndDrawing()
	}
}

// newState starts a preview session with no time offset.
func newState(ec config.EffectConfig) effect.State {
	s := effect.NewState(effect.NewParams(ec), effect.Clock{Scale: ec.TimeScale})
	return s.Resize(gridW, gridH, 1)
}

// retune swaps in new parameters while keeping time, pointer and frame
// count. The surface is resized again since the ratio cap may have moved.
func retune(s effect.State, ec config.EffectConfig) effect.State {
	s.Params = effect.NewParams(ec)
	s.Clock.Scale = ec.TimeScale
	return s.Resize(s.Geometry.LogicalW, s.Geometry.LogicalH, 1)
}

func inPreview(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, rl.Rectangle{X: previewX, Y: previewY, Width: previewWidth, Height: previewHeight})
}

func writeConfig(cfg *config.Config, path string) string {
	if err := cfg.Validate(); err != nil {
		slog.Error("tuned config is invalid", "error", err)
		return "Invalid config, not written"
	}
	if err := cfg.WriteYAML(path); err != nil {
		slog.Error("failed to write config", "path", path, "error", err)
		return "Write failed"
	}
	slog.Info("config written", "path", path)
	return "Written to " + path
}

// effectYAML renders just the effect section, ready to paste into a
// config file.
func effectYAML(ec config.EffectConfig) (string, error) {
	out, err := yaml.Marshal(struct {
		Effect config.EffectConfig `yaml:"effect"`
	}{ec})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
