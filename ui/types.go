// Package ui draws the raylib overlays: the countdown HUD, the frame timing
// panel and the live tuning panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Accent         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 14, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 100, A: 255},
		SectionHeader:  rl.Gold,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		Accent:         rl.Color{R: 255, G: 215, B: 0, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     110,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
