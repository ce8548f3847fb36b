// Package app drives the background once per display refresh and draws the
// debug overlays on top.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/termglow/config"
	"github.com/pthm-cable/termglow/effect"
	"github.com/pthm-cable/termglow/renderer"
	"github.com/pthm-cable/termglow/telemetry"
	"github.com/pthm-cable/termglow/ui"
)

// Options configures an App.
type Options struct {
	Seed      int64               // RNG seed for the time offset
	OutputDir string              // Overrides telemetry.output_dir when set
	ShaderLog *renderer.ShaderLog // The log passed to renderer.InstallTraceLog
}

// App holds the running effect, its telemetry and the overlays.
type App struct {
	cfg *config.Config

	bg     *renderer.Background
	events *renderer.RaylibEvents
	state  effect.State // Used for the HUD when the background is off
	status string

	perf     *telemetry.PerfCollector
	reporter *telemetry.Reporter
	output   *telemetry.OutputManager

	hud      *ui.HUD
	overlays *ui.OverlayRegistry
}

// New builds the app on the current window. A missing graphics context or a
// broken shader does not fail New: the app runs without the effect and the
// HUD reports why.
func New(opts Options) (*App, error) {
	cfg := config.Cfg()

	outDir := cfg.Telemetry.OutputDir
	if opts.OutputDir != "" {
		outDir = opts.OutputDir
	}
	output, err := telemetry.NewOutputManager(outDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	clock := effect.NewClock(cfg.Effect.TimeScale, rng)
	state := effect.NewState(effect.NewParams(cfg.Effect), clock)

	perf := telemetry.NewPerfCollector(cfg.Telemetry.WindowFrames)
	a := &App{
		cfg:      cfg,
		events:   renderer.NewRaylibEvents(),
		state:    state,
		perf:     perf,
		reporter: telemetry.NewReporter(perf, output, cfg.Telemetry.ReportIntervalSec),
		output:   output,
		hud:      ui.NewHUD(),
		overlays: ui.NewOverlayRegistry(),
	}
	a.overlays.SetEnabled(ui.OverlayHUD, cfg.Debug.ShowHUD)
	a.overlays.SetEnabled(ui.OverlayLegend, cfg.Debug.ShowHUD)

	a.status = statusFor(a.initBackground(opts.ShaderLog))

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	err = output.WriteSession(telemetry.SessionInfo{
		Seed:       opts.Seed,
		TimeOffset: clock.Offset,
		StartedAt:  time.Now().Format(time.RFC3339),
	})
	if err != nil {
		slog.Error("failed to write session", "error", err)
	}

	slog.Info("app started",
		"seed", opts.Seed,
		"time_offset", clock.Offset,
		"status", a.status,
		"output_dir", output.Dir(),
	)
	return a, nil
}

// initBackground opens the device and builds the pipeline. A nil
// *RaylibDevice never reaches the Device interface.
func (a *App) initBackground(diag *renderer.ShaderLog) error {
	dev, err := renderer.NewRaylibDevice(diag)
	if err != nil {
		slog.Warn("running without background", "error", err)
		return err
	}

	bg := renderer.NewBackground(dev, a.state, renderer.Options{})
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if err := bg.Init(a.events, w, h, renderer.DeviceRatio()); err != nil {
		return err
	}
	a.bg = bg
	return nil
}

// statusFor describes the background's state for the HUD.
func statusFor(err error) string {
	var ce *renderer.CompileError
	switch {
	case err == nil:
		return "running"
	case errors.Is(err, renderer.ErrNoContext):
		return "off: no graphics context"
	case errors.As(err, &ce):
		return fmt.Sprintf("off: %s stage failed", ce.Stage)
	default:
		return "off: " + err.Error()
	}
}

// Step runs one display refresh: poll events, draw the effect and the
// overlays, then present. EndDrawing blocks on vsync.
func (a *App) Step() {
	a.perf.StartFrame()

	a.perf.StartPhase(telemetry.PhaseEvents)
	a.events.Poll()
	a.handleInput()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.perf.StartPhase(telemetry.PhaseEffect)
	if a.bg != nil {
		a.bg.Frame(rl.GetTime())
	}

	a.perf.StartPhase(telemetry.PhaseHUD)
	a.drawOverlays()

	a.perf.StartPhase(telemetry.PhasePresent)
	rl.EndDrawing()

	a.perf.StartPhase(telemetry.PhaseTelemetry)
	a.reporter.Update(rl.GetTime())

	a.perf.EndFrame()
}

// State returns the current effect state.
func (a *App) State() effect.State {
	if a.bg != nil {
		return a.bg.State()
	}
	return a.state
}

// Status returns "running" or why the effect is off.
func (a *App) Status() string {
	return a.status
}

// Unload releases the pipeline and closes the output files.
func (a *App) Unload() {
	if a.bg != nil {
		a.bg.Unload()
	}
	if stats := a.perf.Stats(); stats.Frames > 0 {
		stats.LogStats()
	}
	if err := a.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
