package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/termglow/app"
	"github.com/pthm-cable/termglow/config"
	"github.com/pthm-cable/termglow/renderer"
)

func init() {
	// raylib must stay on the thread that opened the window
	runtime.LockOSThread()
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for frames.csv and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed for the time offset (0 = time-based)")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")

	flag.Parse()

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if *logText {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Hook the trace log first so window and context creation are logged
	diag := &renderer.ShaderLog{}
	renderer.InstallTraceLog(diag)
	rl.SetTraceLogLevel(rl.LogWarning)

	// No MSAA and an opaque framebuffer
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	if !rl.IsWindowReady() {
		slog.Warn("window could not be opened, effect disabled")
		return
	}
	if cfg.Screen.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	}
	if cfg.Screen.Fullscreen {
		rl.ToggleFullscreen()
	}

	a, err := app.New(app.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		ShaderLog: diag,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Unload()

	for !rl.WindowShouldClose() {
		a.Step()
	}
}
