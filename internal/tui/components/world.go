package components

import (
	"github.com/rivo/tview"

	"sitrep/internal/theme"
)

// WorldComponent shows the world situation summary as a full page.
type WorldComponent struct {
	view *tview.TextView
}

// NewWorldComponent creates the world summary page
func NewWorldComponent() *WorldComponent {
	view := theme.NewPanelView()
	view.SetTitle(" World Situation ")
	view.SetWrap(false)

	return &WorldComponent{view: view}
}

// GetView returns the underlying text view
func (wc *WorldComponent) GetView() *tview.TextView {
	return wc.view
}

// SetSummary replaces the page content
func (wc *WorldComponent) SetSummary(text string) {
	wc.view.SetText(text)
	wc.view.ScrollToBeginning()
}
