package components

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"sitrep/internal/theme"
)

// StatusComponent manages the bottom status bar
type StatusComponent struct {
	wrapper *tview.TextView
	player  string
	date    string
	active  int
	errText string
}

// NewStatusComponent creates a new status bar component
func NewStatusComponent() *StatusComponent {
	statusBar := theme.NewStatusBar()
	statusBar.SetTextAlign(tview.AlignLeft)
	statusBar.SetWrap(false)

	sc := &StatusComponent{wrapper: statusBar}
	sc.UpdateStatus()
	return sc
}

// GetWrapper returns the status bar TextView
func (sc *StatusComponent) GetWrapper() *tview.TextView {
	return sc.wrapper
}

// SetDataset sets the loaded save's identity shown on the left
func (sc *StatusComponent) SetDataset(player, date string, active int) {
	sc.player = player
	sc.date = date
	sc.active = active
	sc.errText = ""
	sc.UpdateStatus()
}

// SetError shows a transient error instead of the dataset summary
func (sc *StatusComponent) SetError(msg string) {
	sc.errText = msg
	sc.UpdateStatus()
}

// UpdateStatus updates the status bar display
func (sc *StatusComponent) UpdateStatus() {
	sc.wrapper.SetText(sc.statusText())
}

func (sc *StatusComponent) statusText() string {
	statusColors := theme.Current().StatusColors()

	var statusText strings.Builder
	statusText.WriteString(" ")

	if sc.errText != "" {
		statusText.WriteString(fmt.Sprintf("[%s:%s]%s[-:-]",
			statusColors.ErrorFg.String(), statusColors.ErrorBg.String(), sc.errText))
		statusText.WriteString(" | Q=Quit")
		return statusText.String()
	}

	if sc.player == "" {
		statusText.WriteString("No save loaded")
	} else {
		statusText.WriteString(fmt.Sprintf("Playing [%s]%s[-]",
			theme.Current().ListColors().PlayerFg.String(), sc.player))
		statusText.WriteString(fmt.Sprintf(" | %s", sc.date))
		statusText.WriteString(fmt.Sprintf(" | %d active nations", sc.active))
	}

	statusText.WriteString(" | W=World Enter=Detail Q=Quit")
	return statusText.String()
}
