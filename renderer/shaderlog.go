package renderer

import "strings"

// ShaderLog picks shader diagnostics out of the driver's trace log while a
// program is being built. raylib swaps in its default stage when ours fails
// to compile, so the log is the only place the failure shows up.
type ShaderLog struct {
	capturing bool
	stage     Stage
	details   []string
}

// Begin starts a capture, discarding anything left from the last one.
func (l *ShaderLog) Begin() {
	l.capturing = true
	l.stage = ""
	l.details = l.details[:0]
}

// Observe feeds one trace log line. Lines outside a capture are ignored.
func (l *ShaderLog) Observe(msg string) {
	if l == nil || !l.capturing {
		return
	}

	switch {
	case strings.Contains(msg, "Failed to compile vertex shader"):
		l.fail(StageVertex)
	case strings.Contains(msg, "Failed to compile fragment shader"):
		l.fail(StageFragment)
	case strings.Contains(msg, "Failed to link shader program"):
		l.fail(StageLink)
	case strings.Contains(msg, "Compile error:"), strings.Contains(msg, "Link error:"):
		if _, detail, ok := strings.Cut(msg, "error:"); ok {
			l.details = append(l.details, strings.TrimSpace(detail))
		}
	}
}

// First failure wins; a broken vertex stage usually breaks the link too.
func (l *ShaderLog) fail(s Stage) {
	if l.stage == "" {
		l.stage = s
	}
}

// End stops the capture and returns a *CompileError if any stage failed.
func (l *ShaderLog) End() error {
	l.capturing = false
	if l.stage == "" {
		return nil
	}
	return &CompileError{Stage: l.stage, Log: strings.Join(l.details, "\n")}
}
