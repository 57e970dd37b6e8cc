package components

import (
	"fmt"

	"github.com/rivo/tview"

	"sitrep/internal/theme"
)

// DetailComponent shows the full analysis text for the selected
// country.
type DetailComponent struct {
	view *tview.TextView
}

// NewDetailComponent creates the detail pane
func NewDetailComponent() *DetailComponent {
	view := theme.NewPanelView()
	view.SetTitle(" Detail ")
	view.SetWrap(false)

	return &DetailComponent{view: view}
}

// GetView returns the underlying text view
func (dc *DetailComponent) GetView() *tview.TextView {
	return dc.view
}

// ShowCountry replaces the pane content and scrolls back to the top
func (dc *DetailComponent) ShowCountry(name, text string) {
	dc.view.SetTitle(fmt.Sprintf(" %s ", name))
	dc.view.SetText(text)
	dc.view.ScrollToBeginning()
}
