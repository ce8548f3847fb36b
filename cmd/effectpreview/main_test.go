package main

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/termglow/config"
)

func TestEffectYAMLRoundTrip(t *testing.T) {
	ec := config.Defaults().Effect
	ec.Curvature = 0.35
	ec.Tint = [3]float64{1, 0.5, 0.25}

	text, err := effectYAML(ec)
	if err != nil {
		t.Fatalf("effectYAML: %v", err)
	}

	var got struct {
		Effect config.EffectConfig `yaml:"effect"`
	}
	if err := yaml.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, text)
	}
	if got.Effect != ec {
		t.Errorf("round trip changed the effect:\n got %+v\nwant %+v", got.Effect, ec)
	}
}

func TestRetuneKeepsSession(t *testing.T) {
	ec := config.Defaults().Effect
	s := newState(ec)
	s.Pointer.Raw = r2.Vec{X: 0.9, Y: 0.1}
	s.Frames = 12
	s.Time = 3

	ec.TimeScale = 1
	ec.Brightness = 1.5
	got := retune(s, ec)

	if got.Frames != 12 || got.Time != 3 || got.Pointer != s.Pointer {
		t.Errorf("retune lost session state: %+v", got)
	}
	if got.Clock.Scale != 1 || got.Params.Brightness != 1.5 {
		t.Errorf("retune did not apply parameters: scale %v brightness %v", got.Clock.Scale, got.Params.Brightness)
	}
	if got.Geometry.BufferW != gridW || got.Geometry.BufferH != gridH {
		t.Errorf("buffer %dx%d, want %dx%d", got.Geometry.BufferW, got.Geometry.BufferH, gridW, gridH)
	}
}
