package renderer

import (
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/termglow/config"
	"github.com/pthm-cable/termglow/effect"
)

// fakeDevice records what the background asks of the GPU. It rejects
// sources with unbalanced braces or parentheses the way a GLSL compiler
// would reject a syntax error.
type fakeDevice struct {
	compiles int
	draws    int
	presents int
	released bool

	viewportW, viewportH int
	presentW, presentH   int

	names    []string
	uniforms map[string][]float32
	badKinds []string
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{uniforms: make(map[string][]float32)}
}

func (d *fakeDevice) CompileProgram(vs, fs string) (Program, error) {
	d.compiles++
	if !balanced(vs) {
		return 0, &CompileError{Stage: StageVertex, Log: "syntax error"}
	}
	if !balanced(fs) {
		return 0, &CompileError{Stage: StageFragment, Log: "syntax error"}
	}
	return 1, nil
}

func balanced(src string) bool {
	return strings.Count(src, "{") == strings.Count(src, "}") &&
		strings.Count(src, "(") == strings.Count(src, ")")
}

func (d *fakeDevice) UniformLocation(_ Program, name string) int32 {
	d.names = append(d.names, name)
	return int32(len(d.names) - 1)
}

func (d *fakeDevice) SetUniform(_ Program, loc int32, value []float32, kind UniformKind) {
	name := d.names[loc]
	if len(value) != kind.Components() {
		d.badKinds = append(d.badKinds, name)
	}
	d.uniforms[name] = append([]float32(nil), value...)
}

func (d *fakeDevice) ResizeSurface(w, h int) { d.viewportW, d.viewportH = w, h }
func (d *fakeDevice) DrawTriangle(Program)   { d.draws++ }
func (d *fakeDevice) Release(Program)        { d.released = true }

func (d *fakeDevice) Present(w, h int) {
	d.presents++
	d.presentW, d.presentH = w, h
}

type fakeEvents struct {
	pointer []func(x, y float64)
	resize  []func(w, h int, ratio float64)
}

func (e *fakeEvents) OnPointerMove(fn func(x, y float64))             { e.pointer = append(e.pointer, fn) }
func (e *fakeEvents) OnResize(fn func(w, h int, deviceRatio float64)) { e.resize = append(e.resize, fn) }

func testState(t *testing.T) effect.State {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return effect.NewState(effect.NewParams(cfg.Effect), effect.Clock{Offset: 10, Scale: 0.3})
}

func TestInitPushesStaticUniforms(t *testing.T) {
	dev := newFakeDevice()
	b := NewBackground(dev, testState(t), Options{})
	if err := b.Init(&fakeEvents{}, 1280, 720, 1); err != nil {
		t.Fatalf("Init: %v", err)
	}

	want := map[string][]float32{
		uniformScale:         {1},
		uniformGridMul:       {2, 1},
		uniformDigitSize:     {1.5},
		uniformScanline:      {0.3},
		uniformGlitch:        {1},
		uniformFlicker:       {1},
		uniformNoiseAmp:      {1},
		uniformCurvature:     {0.2},
		uniformTint:          {0.4, 1, 0.6},
		uniformMouseStrength: {0.2},
		uniformUseMouse:      {1},
		uniformBrightness:    {0.8},
	}
	for name, w := range want {
		got, ok := dev.uniforms[name]
		if !ok {
			t.Errorf("%s never pushed", name)
			continue
		}
		if !equalFloats(got, w) {
			t.Errorf("%s = %v, want %v", name, got, w)
		}
	}
	if len(dev.badKinds) > 0 {
		t.Errorf("uniforms pushed with the wrong component count: %v", dev.badKinds)
	}
	if len(dev.names) != len(uniformNames) {
		t.Errorf("looked up %d uniforms, want %d", len(dev.names), len(uniformNames))
	}
}

func TestResizePushesGeometry(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		ratio        float64
		wantW, wantH int
	}{
		{"unit", 1280, 720, 1, 1280, 720},
		{"capped", 801, 600, 2, 1201, 900},
		{"fractional", 1001, 333, 1.25, 1251, 416},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dev := newFakeDevice()
			events := &fakeEvents{}
			b := NewBackground(dev, testState(t), Options{})
			if err := b.Init(events, 640, 480, 1); err != nil {
				t.Fatalf("Init: %v", err)
			}

			events.resize[0](tc.w, tc.h, tc.ratio)

			if dev.viewportW != tc.wantW || dev.viewportH != tc.wantH {
				t.Errorf("viewport %dx%d, want %dx%d", dev.viewportW, dev.viewportH, tc.wantW, tc.wantH)
			}
			wantRes := []float32{float32(tc.wantW), float32(tc.wantH), float32(float64(tc.wantW) / float64(tc.wantH))}
			if got := dev.uniforms[uniformResolution]; !equalFloats(got, wantRes) {
				t.Errorf("iResolution = %v, want %v", got, wantRes)
			}
			wantAspect := float32(float64(tc.w) / float64(tc.h))
			if got := dev.uniforms[uniformAspect]; !equalFloats(got, []float32{wantAspect}) {
				t.Errorf("uAspect = %v, want %v", got, wantAspect)
			}

			// Same size again changes nothing
			before := b.State().Geometry
			b.Resize(tc.w, tc.h, tc.ratio)
			if b.State().Geometry != before {
				t.Errorf("resize not idempotent: %+v vs %+v", b.State().Geometry, before)
			}
		})
	}
}

func TestPointerReactivityOffSubscribesNothing(t *testing.T) {
	state := testState(t)
	state.Params.PointerReactive = false

	dev := newFakeDevice()
	events := &fakeEvents{}
	b := NewBackground(dev, state, Options{})
	if err := b.Init(events, 800, 600, 1); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if len(events.pointer) != 0 {
		t.Errorf("expected no pointer subscription, got %d", len(events.pointer))
	}
	if len(events.resize) != 1 {
		t.Errorf("expected one resize subscription, got %d", len(events.resize))
	}
	if got := dev.uniforms[uniformUseMouse]; !equalFloats(got, []float32{0}) {
		t.Errorf("uUseMouse = %v, want 0", got)
	}
}

func TestCompileFailureRendersNothing(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		stage Stage
	}{
		{"vertex", Options{VertexSource: VertexShader + "\nvoid broken() {"}, StageVertex},
		{"fragment", Options{FragmentSource: strings.Replace(FragmentShader, "}", "", 1)}, StageFragment},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dev := newFakeDevice()
			events := &fakeEvents{}
			b := NewBackground(dev, testState(t), tc.opts)

			err := b.Init(events, 800, 600, 1)
			var ce *CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("expected a CompileError, got %v", err)
			}
			if ce.Stage != tc.stage {
				t.Errorf("stage %q, want %q", ce.Stage, tc.stage)
			}

			for i := 0; i < 10; i++ {
				b.Frame(float64(i) / 60)
			}
			if b.Frames() != 0 {
				t.Errorf("expected 0 frames, got %d", b.Frames())
			}
			if dev.draws != 0 || dev.presents != 0 {
				t.Errorf("expected no draws, got %d draws %d presents", dev.draws, dev.presents)
			}
			if len(events.pointer)+len(events.resize) != 0 {
				t.Error("failed init must not subscribe to events")
			}
			if b.Ready() {
				t.Error("background reports ready after a failed init")
			}
		})
	}
}

func TestInitWithoutDevice(t *testing.T) {
	b := NewBackground(nil, testState(t), Options{})
	if err := b.Init(&fakeEvents{}, 800, 600, 1); !errors.Is(err, ErrNoContext) {
		t.Errorf("expected ErrNoContext, got %v", err)
	}
}

func TestFrameDrawsOncePerTick(t *testing.T) {
	dev := newFakeDevice()
	b := NewBackground(dev, testState(t), Options{})
	if err := b.Init(&fakeEvents{}, 1280, 720, 1); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for i := 1; i <= 3; i++ {
		b.Frame(float64(i))
		if dev.draws != i || dev.presents != i {
			t.Fatalf("after %d frames: %d draws, %d presents", i, dev.draws, dev.presents)
		}
	}
	if b.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", b.Frames())
	}
	if dev.presentW != 1280 || dev.presentH != 720 {
		t.Errorf("presented at %dx%d, want the logical size", dev.presentW, dev.presentH)
	}

	wantTime := float32(effect.Clock{Offset: 10, Scale: 0.3}.Elapsed(3))
	if got := dev.uniforms[uniformTime]; !equalFloats(got, []float32{wantTime}) {
		t.Errorf("iTime = %v, want %v", got, wantTime)
	}
}

func TestFrameSkipsDrawOnEmptySurface(t *testing.T) {
	dev := newFakeDevice()
	b := NewBackground(dev, testState(t), Options{})
	if err := b.Init(&fakeEvents{}, 0, 0, 1); err != nil {
		t.Fatalf("Init: %v", err)
	}

	b.Frame(1)
	if dev.draws != 0 {
		t.Errorf("drew into an empty surface")
	}
	if b.Frames() != 1 {
		t.Errorf("time should still advance, got %d frames", b.Frames())
	}
}

func TestPointerMoveIsSmoothed(t *testing.T) {
	dev := newFakeDevice()
	events := &fakeEvents{}
	b := NewBackground(dev, testState(t), Options{})
	if err := b.Init(events, 1000, 500, 1); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(events.pointer) != 1 {
		t.Fatalf("expected one pointer subscription, got %d", len(events.pointer))
	}

	// Top-right corner of the window is (1, 1) in surface space
	events.pointer[0](1000, 0)
	if raw := b.State().Pointer.Raw; raw != (r2.Vec{X: 1, Y: 1}) {
		t.Fatalf("raw pointer %v, want (1, 1)", raw)
	}
	if smooth := b.State().Pointer.Smooth; smooth != (r2.Vec{X: 0.5, Y: 0.5}) {
		t.Errorf("pointer handler moved the smoothed position to %v", smooth)
	}

	b.Frame(0)
	want := float32(0.5 + 0.5*effect.Damping)
	if got := dev.uniforms[uniformMouse]; !equalFloats(got, []float32{want, want}) {
		t.Errorf("uMouse = %v, want (%v, %v)", got, want, want)
	}
}

func TestUnloadReleases(t *testing.T) {
	dev := newFakeDevice()
	b := NewBackground(dev, testState(t), Options{})
	if err := b.Init(nil, 640, 480, 1); err != nil {
		t.Fatalf("Init: %v", err)
	}
	b.Unload()
	if !dev.released {
		t.Error("expected the device to be released")
	}
	b.Frame(1)
	if dev.draws != 0 {
		t.Error("drew after unload")
	}
}

func TestFragmentShaderDeclaresUniforms(t *testing.T) {
	for _, name := range uniformNames {
		if !strings.Contains(FragmentShader, " "+name+";") {
			t.Errorf("fragment shader does not declare %s", name)
		}
	}
	if !balanced(VertexShader) || !balanced(FragmentShader) {
		t.Error("built-in shader sources are unbalanced")
	}
}

func equalFloats(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
