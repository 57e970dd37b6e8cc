package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"sitrep/internal/locale"
	"sitrep/internal/log"
	"sitrep/internal/report"
	"sitrep/internal/save"
	"sitrep/internal/tui/components"
)

// BrowserApp is the interactive situation browser over one extracted
// save.
type BrowserApp struct {
	app      *tview.Application
	pages    *tview.Pages
	mainGrid *tview.Grid

	// UI Components
	countryList *components.CountryListComponent
	detail      *components.DetailComponent
	world       *components.WorldComponent
	status      *components.StatusComponent

	// Data
	summarizer *report.Summarizer
	countries  []save.Country
	player     string
	date       string
	events     []string

	// State
	worldVisible bool
}

// NewBrowser creates and configures the browser over an extraction
// document.
func NewBrowser(doc *report.Document, loc *locale.Localizer) *BrowserApp {
	browser := &BrowserApp{
		app:         tview.NewApplication(),
		countryList: components.NewCountryListComponent(),
		detail:      components.NewDetailComponent(),
		world:       components.NewWorldComponent(),
		status:      components.NewStatusComponent(),
		summarizer:  report.NewSummarizer(loc),
		countries:   doc.ActiveCountries(),
		player:      doc.Metadata.Player,
		date:        doc.Metadata.Date,
		events:      doc.Events,
	}

	browser.setupUI()
	browser.setupInputHandling()
	browser.loadData(loc)

	log.Info("browser ready",
		"player", browser.player,
		"date", browser.date,
		"countries", len(browser.countries))
	return browser
}

// setupUI configures the user interface layout
func (ba *BrowserApp) setupUI() {
	// Country table on the left, detail pane on the right, status bar
	// across the bottom
	ba.mainGrid = tview.NewGrid().
		SetRows(0, 1).
		SetColumns(44, 0).
		SetBorders(false)

	ba.mainGrid.AddItem(ba.countryList.GetView(), 0, 0, 1, 1, 0, 0, true)
	ba.mainGrid.AddItem(ba.detail.GetView(), 0, 1, 1, 1, 0, 0, false)
	ba.mainGrid.AddItem(ba.status.GetWrapper(), 1, 0, 1, 2, 0, 0, false)

	ba.pages = tview.NewPages()
	ba.pages.AddPage("main", ba.mainGrid, true, true)

	ba.app.SetRoot(ba.pages, true)
}

// setupInputHandling configures global key handling
func (ba *BrowserApp) setupInputHandling() {
	ba.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			if ba.worldVisible {
				ba.hideWorld()
				return nil
			}
			ba.exit()
			return nil
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q', 'Q':
				ba.exit()
				return nil
			case 'w', 'W':
				ba.toggleWorld()
				return nil
			}
		}
		return event
	})
}

// loadData fills every component from the extraction
func (ba *BrowserApp) loadData(loc *locale.Localizer) {
	ba.countryList.SetOnSelect(ba.showCountry)
	ba.countryList.SetCountries(ba.countries, ba.player, loc)
	ba.status.SetDataset(loc.CountryName(ba.player), ba.date, len(ba.countries))
	ba.world.SetSummary(ba.summarizer.WorldSummary(ba.player, ba.date, ba.events, ba.countries))

	if tag := ba.countryList.SelectedTag(); tag != "" {
		ba.showCountry(tag)
	}
}

// Run starts the TUI application
func (ba *BrowserApp) Run() error {
	return ba.app.Run()
}

// exit shuts down the application
func (ba *BrowserApp) exit() {
	ba.app.Stop()
}

// showCountry puts the selected country's analysis in the detail pane
func (ba *BrowserApp) showCountry(tag string) {
	text := ba.summarizer.CountryDetails(tag, ba.player, ba.date, ba.countries)
	ba.detail.ShowCountry(tag, text)
}

// toggleWorld flips between the main layout and the world summary page
func (ba *BrowserApp) toggleWorld() {
	if ba.worldVisible {
		ba.hideWorld()
		return
	}
	ba.worldVisible = true
	ba.pages.AddPage("world", ba.world.GetView(), true, true)
}

func (ba *BrowserApp) hideWorld() {
	ba.worldVisible = false
	ba.pages.RemovePage("world")
}
