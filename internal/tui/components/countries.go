package components

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"sitrep/internal/locale"
	"sitrep/internal/report"
	"sitrep/internal/save"
	"sitrep/internal/theme"
)

// CountryListComponent manages the selectable country table on the
// left side of the browser.
type CountryListComponent struct {
	table     *tview.Table
	countries []save.Country
	onSelect  func(tag string)
}

// NewCountryListComponent creates the country table
func NewCountryListComponent() *CountryListComponent {
	table := theme.NewTable()
	table.SetTitle(" Countries ")
	table.SetSelectable(true, false)
	table.SetFixed(1, 0)

	return &CountryListComponent{table: table}
}

// GetView returns the underlying table
func (cl *CountryListComponent) GetView() *tview.Table {
	return cl.table
}

// SetOnSelect registers the callback fired when the highlighted row
// changes
func (cl *CountryListComponent) SetOnSelect(fn func(tag string)) {
	cl.onSelect = fn
	cl.table.SetSelectionChangedFunc(func(row, column int) {
		if cl.onSelect == nil || row < 1 || row > len(cl.countries) {
			return
		}
		cl.onSelect(cl.countries[row-1].Tag)
	})
}

// SelectedTag returns the tag of the highlighted row, or "" when the
// table is empty
func (cl *CountryListComponent) SelectedTag() string {
	row, _ := cl.table.GetSelection()
	if row < 1 || row > len(cl.countries) {
		return ""
	}
	return cl.countries[row-1].Tag
}

// SetCountries fills the table: player nation first, then major
// powers, then everyone else sorted by tag
func (cl *CountryListComponent) SetCountries(countries []save.Country, player string, loc *locale.Localizer) {
	cl.countries = orderCountries(countries, player)

	focus := report.NewFocusAnalyzer(loc)
	listColors := theme.Current().ListColors()
	panelColors := theme.Current().PanelColors()

	cl.table.Clear()
	for col, header := range []string{"Tag", "Country", "Stab", "War", "Focus", "Role"} {
		cell := tview.NewTableCell(header).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold).
			SetTextColor(panelColors.HeaderFg).
			SetBackgroundColor(panelColors.HeaderBg)
		cl.table.SetCell(0, col, cell)
	}

	for i := range cl.countries {
		c := &cl.countries[i]
		row := i + 1

		nameColor := listColors.Foreground
		role := ""
		if c.Tag == player {
			nameColor = listColors.PlayerFg
			role = "PLAYER"
		} else if save.IsMajorPower(c.Tag) {
			nameColor = listColors.MajorFg
			role = "MAJOR"
		}

		focusText := "-"
		if fa := focus.AnalyzeCountry(c); fa != nil && fa.CurrentFocusName != "" {
			focusText = fa.CurrentFocusName
		}

		stability := c.Stability * 100
		warSupport := c.WarSupport * 100

		cl.table.SetCell(row, 0, tview.NewTableCell(c.Tag).SetTextColor(nameColor))
		cl.table.SetCell(row, 1, tview.NewTableCell(loc.CountryName(c.Tag)).
			SetTextColor(nameColor).
			SetExpansion(1))
		cl.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%5.1f%%", stability)).
			SetTextColor(theme.GaugeColor(stability)).
			SetAlign(tview.AlignRight))
		cl.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%5.1f%%", warSupport)).
			SetTextColor(theme.GaugeColor(warSupport)).
			SetAlign(tview.AlignRight))
		cl.table.SetCell(row, 4, tview.NewTableCell(focusText).SetTextColor(listColors.Foreground))
		cl.table.SetCell(row, 5, tview.NewTableCell(role).SetTextColor(nameColor))
	}

	if len(cl.countries) > 0 {
		cl.table.Select(1, 0)
	}
}

// orderCountries ranks the player nation ahead of major powers ahead
// of everyone else, each group sorted by tag.
func orderCountries(countries []save.Country, player string) []save.Country {
	ordered := make([]save.Country, len(countries))
	copy(ordered, countries)

	rank := func(c *save.Country) int {
		switch {
		case c.Tag == player:
			return 0
		case save.IsMajorPower(c.Tag):
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := rank(&ordered[i]), rank(&ordered[j])
		if ri != rj {
			return ri < rj
		}
		return ordered[i].Tag < ordered[j].Tag
	})
	return ordered
}
