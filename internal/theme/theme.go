package theme

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// DefaultColors defines base text colors for plain views
type DefaultColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Muted      tcell.Color // secondary text such as hints and file paths
}

// ListColors defines color scheme for selectable lists and tables
type ListColors struct {
	Background tcell.Color
	Foreground tcell.Color
	SelectedBg tcell.Color
	SelectedFg tcell.Color
	PlayerFg   tcell.Color // accent for the player nation row
	MajorFg    tcell.Color // accent for major power rows
}

// StatusColors defines color scheme for the status bar and gauges
type StatusColors struct {
	Background tcell.Color
	Foreground tcell.Color
	ErrorBg    tcell.Color
	ErrorFg    tcell.Color
	StableFg   tcell.Color // gauge readings above 70%
	ShakyFg    tcell.Color // gauge readings above 40%
	CriticalFg tcell.Color // everything below
}

// PanelColors defines color scheme for bordered panels
type PanelColors struct {
	Background tcell.Color
	Foreground tcell.Color
	Border     tcell.Color
	Title      tcell.Color
	HeaderBg   tcell.Color
	HeaderFg   tcell.Color
}

// BorderStyle defines border styling options
type BorderStyle struct {
	Color      tcell.Color
	TitleColor tcell.Color
	Padding    int
}

// Theme interface defines all theming properties
type Theme interface {
	// Name returns the theme name
	Name() string

	// Color schemes for different components
	DefaultColors() DefaultColors
	ListColors() ListColors
	StatusColors() StatusColors
	PanelColors() PanelColors

	// Border styling
	BorderStyle() BorderStyle
}

// ThemeManager manages theme selection and application
type ThemeManager struct {
	currentTheme Theme
	themes       map[string]Theme
}

// NewThemeManager creates a new theme manager
func NewThemeManager() *ThemeManager {
	tm := &ThemeManager{
		themes: make(map[string]Theme),
	}

	// Register built-in themes
	tm.RegisterTheme(NewWarRoomTheme())

	// Set default theme
	tm.SetTheme("warroom")

	return tm
}

// RegisterTheme registers a new theme
func (tm *ThemeManager) RegisterTheme(theme Theme) {
	tm.themes[theme.Name()] = theme
}

// SetTheme sets the current theme by name
func (tm *ThemeManager) SetTheme(name string) error {
	if theme, exists := tm.themes[name]; exists {
		tm.currentTheme = theme
		return nil
	}
	return fmt.Errorf("theme '%s' not found", name)
}

// Current returns the current theme
func (tm *ThemeManager) Current() Theme {
	return tm.currentTheme
}

// Available returns list of available theme names
func (tm *ThemeManager) Available() []string {
	names := make([]string, 0, len(tm.themes))
	for name := range tm.themes {
		names = append(names, name)
	}
	return names
}

// Global theme manager instance
var defaultThemeManager = NewThemeManager()

// GetThemeManager returns the global theme manager
func GetThemeManager() *ThemeManager {
	return defaultThemeManager
}

// Current returns the current theme from the global manager
func Current() Theme {
	return defaultThemeManager.Current()
}

// GaugeColor maps a 0-100 gauge reading such as stability or war
// support onto the current theme's status colors.
func GaugeColor(percent float64) tcell.Color {
	colors := Current().StatusColors()
	switch {
	case percent > 70:
		return colors.StableFg
	case percent > 40:
		return colors.ShakyFg
	default:
		return colors.CriticalFg
	}
}
