package theme

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ThemedComponents provides convenience factory functions for creating
// themed components while still allowing manual styling using theme
// properties
type ThemedComponents struct {
	theme Theme
}

// NewThemedComponents creates a new themed components factory
func NewThemedComponents(theme Theme) *ThemedComponents {
	return &ThemedComponents{theme: theme}
}

// NewList creates a new list with theme applied
func (tc *ThemedComponents) NewList() *tview.List {
	list := tview.NewList()
	colors := tc.theme.ListColors()
	border := tc.theme.BorderStyle()

	list.SetBackgroundColor(colors.Background)
	list.SetMainTextColor(colors.Foreground)
	list.SetSecondaryTextColor(tc.theme.DefaultColors().Muted)
	list.SetSelectedTextColor(colors.SelectedFg)
	list.SetSelectedBackgroundColor(colors.SelectedBg)
	list.SetBorderColor(border.Color)
	list.SetTitleColor(border.TitleColor)
	list.SetBorder(true)
	list.SetBorderPadding(border.Padding, border.Padding, border.Padding, border.Padding)

	return list
}

// NewTable creates a new table with theme applied
func (tc *ThemedComponents) NewTable() *tview.Table {
	table := tview.NewTable()
	colors := tc.theme.ListColors()
	border := tc.theme.BorderStyle()

	table.SetBackgroundColor(colors.Background)
	table.SetBorderColor(border.Color)
	table.SetTitleColor(border.TitleColor)
	table.SetBorder(true)
	table.SetSelectedStyle(tcell.StyleDefault.
		Background(colors.SelectedBg).
		Foreground(colors.SelectedFg))

	return table
}

// NewTextView creates a new text view with theme applied
func (tc *ThemedComponents) NewTextView() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.DefaultColors()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)

	return textView
}

// NewPanelView creates a new text view styled for bordered panels
func (tc *ThemedComponents) NewPanelView() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.PanelColors()
	border := tc.theme.BorderStyle()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetBorderColor(colors.Border)
	textView.SetTitleColor(colors.Title)
	textView.SetBorder(true)
	textView.SetBorderPadding(border.Padding, border.Padding, border.Padding, border.Padding)

	return textView
}

// NewStatusBar creates a new text view styled for status bars
func (tc *ThemedComponents) NewStatusBar() *tview.TextView {
	textView := tview.NewTextView()
	colors := tc.theme.StatusColors()

	textView.SetBackgroundColor(colors.Background)
	textView.SetTextColor(colors.Foreground)
	textView.SetDynamicColors(true)

	return textView
}

// NewInputField creates a new input field with theme applied
func (tc *ThemedComponents) NewInputField() *tview.InputField {
	input := tview.NewInputField()
	colors := tc.theme.DefaultColors()

	input.SetBackgroundColor(colors.Background)
	input.SetFieldBackgroundColor(colors.Background)
	input.SetFieldTextColor(colors.Foreground)
	input.SetLabelColor(colors.Foreground)

	return input
}

// NewFlex creates a new flex with theme applied
func (tc *ThemedComponents) NewFlex() *tview.Flex {
	flex := tview.NewFlex()
	colors := tc.theme.DefaultColors()

	flex.SetBackgroundColor(colors.Background)

	return flex
}

// Global factory instance using current theme
var defaultFactory = &ThemedComponents{}

// updateDefaultFactory updates the global factory with current theme
func updateDefaultFactory() {
	defaultFactory.theme = defaultThemeManager.Current()
}

// Convenience functions using global theme
func NewList() *tview.List {
	updateDefaultFactory()
	return defaultFactory.NewList()
}

func NewTable() *tview.Table {
	updateDefaultFactory()
	return defaultFactory.NewTable()
}

func NewTextView() *tview.TextView {
	updateDefaultFactory()
	return defaultFactory.NewTextView()
}

func NewPanelView() *tview.TextView {
	updateDefaultFactory()
	return defaultFactory.NewPanelView()
}

func NewStatusBar() *tview.TextView {
	updateDefaultFactory()
	return defaultFactory.NewStatusBar()
}

func NewInputField() *tview.InputField {
	updateDefaultFactory()
	return defaultFactory.NewInputField()
}

func NewFlex() *tview.Flex {
	updateDefaultFactory()
	return defaultFactory.NewFlex()
}
