package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaylibDevice draws through raylib's GL context into a render texture that
// serves as the backing buffer, then stretches it over the window.
type RaylibDevice struct {
	shader rl.Shader
	loaded bool

	target        rl.RenderTexture2D
	hasTarget     bool
	width, height int32

	diag *ShaderLog
}

// NewRaylibDevice wraps the current raylib window. diag must be the log
// installed with InstallTraceLog, or compile failures go unnoticed.
func NewRaylibDevice(diag *ShaderLog) (*RaylibDevice, error) {
	if !rl.IsWindowReady() {
		return nil, ErrNoContext
	}
	if diag == nil {
		diag = &ShaderLog{}
	}
	return &RaylibDevice{diag: diag}, nil
}

// CompileProgram implements Device. Only one program is held at a time.
func (d *RaylibDevice) CompileProgram(vertexSrc, fragmentSrc string) (Program, error) {
	d.diag.Begin()
	shader := rl.LoadShaderFromMemory(vertexSrc, fragmentSrc)
	err := d.diag.End()

	fallback := shader.ID == 0 || shader.ID == rl.GetShaderIdDefault()
	if err == nil && fallback {
		err = &CompileError{Stage: StageLink, Log: "driver returned the default shader"}
	}
	if err != nil {
		if !fallback {
			rl.UnloadShader(shader)
		}
		return 0, err
	}

	if d.loaded {
		rl.UnloadShader(d.shader)
	}
	d.shader = shader
	d.loaded = true
	return Program(shader.ID), nil
}

// UniformLocation implements Device.
func (d *RaylibDevice) UniformLocation(_ Program, name string) int32 {
	return rl.GetShaderLocation(d.shader, name)
}

// SetUniform implements Device.
func (d *RaylibDevice) SetUniform(_ Program, loc int32, value []float32, kind UniformKind) {
	rl.SetShaderValue(d.shader, loc, value, uniformType(kind))
}

func uniformType(k UniformKind) rl.ShaderUniformDataType {
	switch k {
	case UniformVec2:
		return rl.ShaderUniformVec2
	case UniformVec3:
		return rl.ShaderUniformVec3
	default:
		return rl.ShaderUniformFloat
	}
}

// ResizeSurface implements Device. A zero-sized surface drops the buffer.
func (d *RaylibDevice) ResizeSurface(w, h int) {
	if d.hasTarget && int32(w) == d.width && int32(h) == d.height {
		return
	}
	if d.hasTarget {
		rl.UnloadRenderTexture(d.target)
		d.hasTarget = false
	}

	d.width, d.height = int32(w), int32(h)
	if w <= 0 || h <= 0 {
		return
	}

	d.target = rl.LoadRenderTexture(d.width, d.height)
	rl.SetTextureFilter(d.target.Texture, rl.FilterBilinear)
	d.hasTarget = true
}

// DrawTriangle implements Device.
func (d *RaylibDevice) DrawTriangle(_ Program) {
	if !d.hasTarget || !d.loaded {
		return
	}

	rl.BeginTextureMode(d.target)
	rl.Viewport(0, 0, d.width, d.height)

	rl.BeginShaderMode(d.shader)
	rl.Begin(rl.Triangles)
	rl.Vertex2f(-1, -1)
	rl.Vertex2f(3, -1)
	rl.Vertex2f(-1, 3)
	rl.End()
	rl.EndShaderMode()

	rl.EndTextureMode()
}

// Present implements Device. Render textures are stored bottom-up, so the
// source rectangle is flipped.
func (d *RaylibDevice) Present(logicalW, logicalH int) {
	if !d.hasTarget {
		return
	}

	srcRect := rl.Rectangle{X: 0, Y: float32(d.height), Width: float32(d.width), Height: -float32(d.height)}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: float32(logicalW), Height: float32(logicalH)}
	rl.DrawTexturePro(d.target.Texture, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Snapshot reads the backing buffer back as an upright image. The caller
// owns the result and must UnloadImage it.
func (d *RaylibDevice) Snapshot() *rl.Image {
	if !d.hasTarget {
		return nil
	}
	img := rl.LoadImageFromTexture(d.target.Texture)
	rl.ImageFlipVertical(img)
	return img
}

// Release implements Device.
func (d *RaylibDevice) Release(_ Program) {
	if d.hasTarget {
		rl.UnloadRenderTexture(d.target)
		d.hasTarget = false
	}
	if d.loaded {
		rl.UnloadShader(d.shader)
		d.loaded = false
	}
}
