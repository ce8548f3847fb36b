package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws panel descriptors with raygui controls.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel lays out and draws a whole panel anchored on a screen of the
// given size. It returns the panel bounds.
func (r *Renderer) DrawPanel(pd PanelDescriptor, data any, screenW, screenH int32) rl.Rectangle {
	t := r.Theme
	w := pd.Width
	if w == 0 {
		w = 260
	}
	h := pd.Height(data, t)
	x, y := pd.Anchor.Origin(w, h, screenW, screenH, t.Margin)

	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
	gui.Panel(bounds, pd.Title)

	cy := y + t.Padding
	if pd.Title != "" {
		cy += t.HeaderHeight
	}
	inner := w - t.Padding*2
	for _, sd := range pd.Sections {
		cy = r.DrawSection(x+t.Padding, cy, sd, data, inner)
	}
	return bounds
}

// DrawSection renders a section with header and fields and returns the
// next Y position.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}

	if sd.Title != "" {
		gui.Line(rect(x, y, width, r.Theme.LineHeight), sd.Title)
		y += r.Theme.LineHeight
	}

	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		r.DrawField(x, y, fd, data, width)
		y += r.Theme.FieldHeight(fd.Widget)
	}

	return y + r.Theme.SectionGap
}

// DrawField renders one field at x, y.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) {
	t := r.Theme
	valueX := x + t.LabelWidth
	valueW := width - t.LabelWidth

	switch fd.Widget {
	case WidgetText:
		gui.Label(rect(x, y, t.LabelWidth, t.LineHeight), fd.Label)
		gui.Label(rect(valueX, y, valueW, t.LineHeight), fd.Text(data))

	case WidgetBar:
		var v float32
		if fd.Getter != nil {
			v = fd.Getter(data)
		}
		gui.Label(rect(x, y, t.LabelWidth, t.LineHeight), fd.Label)
		// Leave room on the right for the value text
		gui.ProgressBar(rect(valueX, y+2, valueW-44, t.LineHeight-4), "", fmt.Sprintf("%.2f", v), v, fd.Range.Min, fd.Range.Max)

	case WidgetSwatch:
		color := rl.White
		if fd.ColorGetter != nil {
			color = fd.ColorGetter(data)
		}
		gui.Label(rect(x, y, t.LabelWidth, t.LineHeight), fd.Label)
		off := (t.LineHeight - t.SwatchSize) / 2
		rl.DrawRectangle(valueX, y+off, t.SwatchSize, t.SwatchSize, color)
		rl.DrawRectangleLines(valueX, y+off, t.SwatchSize, t.SwatchSize, rl.DarkGray)
	}
}

// DrawLegend draws a key legend along the bottom-left of the screen.
func (r *Renderer) DrawLegend(text string, screenH int32) {
	rl.DrawText(text, r.Theme.Margin, screenH-r.Theme.FontSize-r.Theme.Margin, r.Theme.FontSize, r.Theme.LegendColor)
}

func rect(x, y, w, h int32) rl.Rectangle {
	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)}
}
