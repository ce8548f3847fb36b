package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies a debug overlay.
type OverlayID string

const (
	OverlayHUD     OverlayID = "hud"
	OverlayLegend  OverlayID = "legend"
	OverlayPointer OverlayID = "pointer"
)

// OverlayDescriptor defines an overlay that can be toggled from the keyboard.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32 // 0 = no key
	KeyLabel string
}

// OverlayRegistry manages overlay state and key bindings.
type OverlayRegistry struct {
	byID    map[OverlayID]OverlayDescriptor
	enabled map[OverlayID]bool
	order   []OverlayID
}

// NewOverlayRegistry creates a registry with the HUD, legend and pointer
// marker overlays.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	r.Register(OverlayDescriptor{ID: OverlayHUD, Name: "HUD", Key: rl.KeyF3, KeyLabel: "F3"})
	r.Register(OverlayDescriptor{ID: OverlayLegend, Name: "Keys", Key: rl.KeyF1, KeyLabel: "F1"})
	r.Register(OverlayDescriptor{ID: OverlayPointer, Name: "Pointer", Key: rl.KeyF4, KeyLabel: "F4"})
	return r
}

// Register adds an overlay. Registering an existing ID replaces it.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if _, ok := r.byID[desc.ID]; !ok {
		r.order = append(r.order, desc.ID)
	}
	r.byID[desc.ID] = desc
}

// Toggle switches an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// HandleKeyPress toggles the overlay bound to key, if any. It returns the
// overlay, its new state and whether a toggle happened.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	if key == 0 {
		return "", false, false
	}
	for _, id := range r.order {
		if r.byID[id].Key == key {
			return id, r.Toggle(id), true
		}
	}
	return "", false, false
}

// Legend returns the key bindings as "F3 HUD · F1 Keys ...", followed by
// any extra entries.
func (r *OverlayRegistry) Legend(extra ...string) string {
	parts := make([]string, 0, len(r.order)+len(extra))
	for _, id := range r.order {
		d := r.byID[id]
		if d.KeyLabel != "" {
			parts = append(parts, d.KeyLabel+" "+d.Name)
		}
	}
	parts = append(parts, extra...)
	return strings.Join(parts, " · ")
}
