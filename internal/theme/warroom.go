package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Standard ANSI 16-color palette using fixed hex values so the report
// browser looks the same regardless of terminal color scheme
var (
	// Basic 8 colors (0-7)
	ANSIBlack     = tcell.NewHexColor(0x000000)
	ANSIRed       = tcell.NewHexColor(0x800000)
	ANSIGreen     = tcell.NewHexColor(0x008000)
	ANSIBrown     = tcell.NewHexColor(0x808000)
	ANSIBlue      = tcell.NewHexColor(0x000080)
	ANSIMagenta   = tcell.NewHexColor(0x800080)
	ANSICyan      = tcell.NewHexColor(0x008080)
	ANSILightGray = tcell.NewHexColor(0xC0C0C0)

	// Bright 8 colors (8-15)
	ANSIDarkGray     = tcell.NewHexColor(0x808080)
	ANSILightRed     = tcell.NewHexColor(0xFF0000)
	ANSILightGreen   = tcell.NewHexColor(0x00FF00)
	ANSIYellow       = tcell.NewHexColor(0xFFFF00)
	ANSILightBlue    = tcell.NewHexColor(0x0000FF)
	ANSILightMagenta = tcell.NewHexColor(0xFF00FF)
	ANSILightCyan    = tcell.NewHexColor(0x00FFFF)
	ANSIWhite        = tcell.NewHexColor(0xFFFFFF)
)

// WarRoomTheme is the default dark map-room look for the browser
type WarRoomTheme struct{}

// NewWarRoomTheme creates a new war room theme instance
func NewWarRoomTheme() *WarRoomTheme {
	return &WarRoomTheme{}
}

// Name returns the theme name
func (t *WarRoomTheme) Name() string {
	return "warroom"
}

// DefaultColors returns the default color scheme
func (t *WarRoomTheme) DefaultColors() DefaultColors {
	return DefaultColors{
		Background: ANSIBlack,
		Foreground: ANSILightGray,
		Muted:      ANSIDarkGray,
	}
}

// ListColors returns the color scheme for country lists
func (t *WarRoomTheme) ListColors() ListColors {
	return ListColors{
		Background: ANSIBlack,
		Foreground: ANSILightGray,
		SelectedBg: ANSIRed,       // Red selection bar, white text
		SelectedFg: ANSIWhite,
		PlayerFg:   ANSIYellow,    // Player nation stands out
		MajorFg:    ANSILightCyan, // Major powers slightly brighter
	}
}

// StatusColors returns the status bar color scheme
func (t *WarRoomTheme) StatusColors() StatusColors {
	return StatusColors{
		Background: ANSIBlue, // Blue #000080 bar at the bottom
		Foreground: ANSILightGray,
		ErrorBg:    ANSIRed,
		ErrorFg:    ANSIWhite,
		StableFg:   ANSILightGreen,
		ShakyFg:    ANSIYellow,
		CriticalFg: ANSILightRed,
	}
}

// PanelColors returns the panel color scheme
func (t *WarRoomTheme) PanelColors() PanelColors {
	return PanelColors{
		Background: ANSIBlack,
		Foreground: ANSILightGray,
		Border:     ANSILightGray,
		Title:      ANSILightGray,
		HeaderBg:   ANSIBlue,
		HeaderFg:   ANSIWhite,
	}
}

// BorderStyle returns the border styling
func (t *WarRoomTheme) BorderStyle() BorderStyle {
	return BorderStyle{
		Color:      ANSILightGray,
		TitleColor: ANSILightGray,
		Padding:    0,
	}
}
