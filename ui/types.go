// Package ui provides descriptor-driven debug panels drawn with raygui.
// Panels are described as sections of fields with getters over an opaque
// data value, so the layout can be computed and tested without a window.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText   WidgetType = iota // Label plus formatted value
	WidgetBar                      // Progress bar over Range
	WidgetSwatch                   // Color preview square
	WidgetSpacer                   // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// Normalize maps v into [0,1] over the range, clamped.
func (r FieldRange) Normalize(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	n := (v - r.Min) / (r.Max - r.Min)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string
	Label       string
	Widget      WidgetType
	Format      string // Printf format when Getter is used for text
	Range       FieldRange
	Visible     func(any) bool     // nil = always visible
	Getter      func(any) float32  // numeric value
	TextGetter  func(any) string   // text value, wins over Getter
	ColorGetter func(any) rl.Color // swatch color
}

// Text returns the value text of a text field.
func (fd FieldDescriptor) Text(data any) string {
	switch {
	case fd.TextGetter != nil:
		return fd.TextGetter(data)
	case fd.Getter != nil:
		return fmt.Sprintf(fd.Format, fd.Getter(data))
	default:
		return ""
	}
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string
	Title    string
	Sections []SectionDescriptor
	Width    int32
	Anchor   PanelAnchor
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Origin returns the top-left corner of a w×h panel anchored inside a
// screen of the given size, margin pixels from the edges.
func (a PanelAnchor) Origin(w, h, screenW, screenH, margin int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - w - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - h - margin
	case AnchorBottomRight:
		return screenW - w - margin, screenH - h - margin
	default:
		return margin, margin
	}
}

// Theme holds UI styling constants.
type Theme struct {
	Padding      int32
	Margin       int32
	LineHeight   int32
	HeaderHeight int32 // raygui panel title bar
	LabelWidth   int32
	SwatchSize   int32
	SectionGap   int32
	SpacerHeight int32
	FontSize     int32
	LegendColor  rl.Color
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Padding:      8,
		Margin:       10,
		LineHeight:   18,
		HeaderHeight: 24,
		LabelWidth:   80,
		SwatchSize:   12,
		SectionGap:   4,
		SpacerHeight: 6,
		FontSize:     14,
		LegendColor:  rl.Color{R: 150, G: 150, B: 150, A: 255},
	}
}

// FieldHeight returns the vertical space a widget takes.
func (t Theme) FieldHeight(w WidgetType) int32 {
	switch w {
	case WidgetBar:
		return t.LineHeight + 2
	case WidgetSpacer:
		return t.SpacerHeight
	default:
		return t.LineHeight
	}
}

// Height returns the panel height for data, skipping hidden sections and
// fields.
func (p PanelDescriptor) Height(data any, t Theme) int32 {
	h := t.Padding * 2
	if p.Title != "" {
		h += t.HeaderHeight
	}
	for _, sd := range p.Sections {
		if sd.Visible != nil && !sd.Visible(data) {
			continue
		}
		if sd.Title != "" {
			h += t.LineHeight
		}
		for _, fd := range sd.Fields {
			if fd.Visible != nil && !fd.Visible(data) {
				continue
			}
			h += t.FieldHeight(fd.Widget)
		}
		h += t.SectionGap
	}
	return h
}
