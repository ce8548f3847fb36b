package main

import (
	"bytes"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/termglow/config"
)

func TestFrameStateHoldsPointer(t *testing.T) {
	ec := config.Defaults().Effect
	opts := frameOptions{Width: 64, Height: 32, Pointer: r2.Vec{X: 0.2, Y: 0.9}}

	s := frameState(ec, opts)
	if s.Clock.Offset != 0 {
		t.Errorf("seed 0 should leave no offset, got %v", s.Clock.Offset)
	}
	if s.Geometry.BufferW != 64 || s.Geometry.BufferH != 32 {
		t.Errorf("buffer %dx%d, want 64x32", s.Geometry.BufferW, s.Geometry.BufferH)
	}
	if s.Pointer.Smooth != opts.Pointer {
		t.Errorf("pointer %v, want %v", s.Pointer.Smooth, opts.Pointer)
	}

	seeded := frameState(ec, frameOptions{Width: 64, Height: 32, Seed: 7})
	if seeded.Clock.Offset == 0 {
		t.Error("seeded clock has no offset")
	}
}

func TestCPUFrameIsReproducible(t *testing.T) {
	ec := config.Defaults().Effect
	opts := frameOptions{Width: 48, Height: 27, Seconds: 4.25, Seed: 42, Pointer: r2.Vec{X: 0.7, Y: 0.3}}

	a := cpuFrame(ec, opts)
	b := cpuFrame(ec, opts)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("same inputs produced different frames")
	}

	opts.Seconds += 1
	c := cpuFrame(ec, opts)
	if bytes.Equal(a.Pix, c.Pix) {
		t.Error("frame did not change with time")
	}
}
