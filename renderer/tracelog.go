package renderer

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// InstallTraceLog routes raylib's trace log into slog and hands every line
// to diag. Call it before InitWindow so context creation is logged too.
func InstallTraceLog(diag *ShaderLog) {
	rl.SetTraceLogCallback(func(level int, msg string) {
		diag.Observe(msg)
		slog.Log(context.Background(), slogLevel(level), msg, "source", "raylib")
	})
}

func slogLevel(level int) slog.Level {
	switch rl.TraceLogLevel(level) {
	case rl.LogTrace, rl.LogDebug:
		return slog.LevelDebug
	case rl.LogWarning:
		return slog.LevelWarn
	case rl.LogError, rl.LogFatal:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
