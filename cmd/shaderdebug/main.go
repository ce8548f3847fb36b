// Shader debug tool - renders one frame of the background to a PNG file.
//
// The default path draws through the GPU pipeline in a hidden window. With
// -cpu the frame comes from the CPU reference, which is bit-reproducible and
// suits golden images.
//
// Usage: go run ./cmd/shaderdebug -time 12.5 -out frame.png
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"os"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/termglow/config"
	"github.com/pthm-cable/termglow/effect"
	"github.com/pthm-cable/termglow/renderer"
)

type frameOptions struct {
	Width, Height int
	Seconds       float64 // Wall seconds since start
	Seed          int64   // 0 = no time offset
	Pointer       r2.Vec  // Surface space, y up
}

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "debug.png", "Output PNG path")
	width := flag.Int("width", 512, "Render width")
	height := flag.Int("height", 512, "Render height")
	seconds := flag.Float64("time", 0, "Wall seconds since start")
	seed := flag.Int64("seed", 0, "RNG seed for the time offset (0 = no offset)")
	pointerX := flag.Float64("pointer-x", 0.5, "Pointer x in [0,1]")
	pointerY := flag.Float64("pointer-y", 0.5, "Pointer y in [0,1], bottom up")
	cpu := flag.Bool("cpu", false, "Use the CPU reference instead of the GPU")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	opts := frameOptions{
		Width:   *width,
		Height:  *height,
		Seconds: *seconds,
		Seed:    *seed,
		Pointer: r2.Vec{X: *pointerX, Y: *pointerY},
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		slog.Error("size must be positive", "width", opts.Width, "height", opts.Height)
		os.Exit(1)
	}

	render := renderGPU
	if *cpu {
		render = renderCPU
	}
	if err := render(cfg.Effect, opts, *outPath); err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Frame rendered to: %s (%dx%d)\n", *outPath, opts.Width, opts.Height)
}

// frameState builds the state the frame is drawn from. The pointer is
// settled so that Tick leaves it where it was put.
func frameState(ec config.EffectConfig, opts frameOptions) effect.State {
	clock := effect.Clock{Scale: ec.TimeScale}
	if opts.Seed != 0 {
		clock = effect.NewClock(ec.TimeScale, rand.New(rand.NewSource(opts.Seed)))
	}
	s := effect.NewState(effect.NewParams(ec), clock)
	s.Pointer = effect.Pointer{Raw: opts.Pointer, Smooth: opts.Pointer}
	return s.Resize(opts.Width, opts.Height, 1)
}

// cpuFrame shades the frame on the CPU.
func cpuFrame(ec config.EffectConfig, opts frameOptions) *image.RGBA {
	s := effect.Tick(frameState(ec, opts), opts.Seconds)
	pixels := effect.Render(opts.Width, opts.Height, s.Params, s.Inputs())

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for i, c := range pixels {
		img.SetRGBA(i%opts.Width, i/opts.Width, c)
	}
	return img
}

func renderCPU(ec config.EffectConfig, opts frameOptions, out string) error {
	img := rl.NewImageFromImage(cpuFrame(ec, opts))
	defer rl.UnloadImage(img)

	if !rl.ExportImage(*img, out) {
		return fmt.Errorf("exporting %s", out)
	}
	return nil
}

func renderGPU(ec config.EffectConfig, opts frameOptions, out string) error {
	diag := &renderer.ShaderLog{}
	renderer.InstallTraceLog(diag)
	rl.SetTraceLogLevel(rl.LogWarning)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), "Shader Debug")
	defer rl.CloseWindow()

	dev, err := renderer.NewRaylibDevice(diag)
	if err != nil {
		return err
	}

	bg := renderer.NewBackground(dev, frameState(ec, opts), renderer.Options{})
	if err := bg.Init(nil, opts.Width, opts.Height, 1); err != nil {
		return err
	}
	defer bg.Unload()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	bg.Frame(opts.Seconds)
	rl.EndDrawing()

	img := dev.Snapshot()
	if img == nil {
		return errors.New("no backing buffer to read")
	}
	defer rl.UnloadImage(img)

	if !rl.ExportImage(*img, out) {
		return fmt.Errorf("exporting %s", out)
	}
	return nil
}
