package report

import (
	"fmt"
	"sort"
	"strings"

	"sitrep/internal/locale"
	"sitrep/internal/save"
)

// FocusAnalysis is a country's focus tree situation. CurrentFocus holds
// the raw identifier and CurrentFocusName its localized form; both are
// empty when the focus only resolves to engine placeholder text.
type FocusAnalysis struct {
	Tag                 string
	Name                string
	CurrentFocus        string
	CurrentFocusName    string
	Progress            float64
	CompletedCount      int
	CompletedFocuses    []string
	CompletedFocusNames []string
	Paused              bool
}

// FocusAnalyzer derives focus analyses from resolved countries.
type FocusAnalyzer struct {
	loc *locale.Localizer
}

func NewFocusAnalyzer(loc *locale.Localizer) *FocusAnalyzer {
	return &FocusAnalyzer{loc: loc}
}

// hasPlaceholder is the filter for focus display names. Focus titles only
// ever embed dynamic text in bracket form, so this is narrower than
// locale.HasDynamicText.
func hasPlaceholder(text string) bool {
	return strings.Contains(text, "[") && strings.Contains(text, "]")
}

// AnalyzeCountry builds the focus analysis for one country, or nil when
// the save recorded no focus block for it.
func (a *FocusAnalyzer) AnalyzeCountry(c *save.Country) *FocusAnalysis {
	focus := c.Focus
	if focus == nil {
		return nil
	}

	analysis := &FocusAnalysis{
		Tag:              c.Tag,
		Name:             a.loc.CountryName(c.Tag),
		CompletedCount:   len(focus.Completed),
		CompletedFocuses: focus.Completed,
		Paused:           focus.Paused != nil && *focus.Paused != "no",
	}
	if focus.Progress != nil {
		analysis.Progress = *focus.Progress
	}

	if focus.Current != nil {
		current := *focus.Current
		localized := a.loc.Text(current)
		if hasPlaceholder(localized) {
			// Placeholder in the title means nothing printable exists
			// for this focus, so the raw identifier goes too.
			current = ""
		} else {
			analysis.CurrentFocusName = localized
			if hasPlaceholder(a.Description(current, false)) {
				analysis.CurrentFocusName = ""
			}
		}
		analysis.CurrentFocus = current
	}

	for _, id := range focus.Completed {
		name := a.loc.Text(id)
		if !hasPlaceholder(name) {
			analysis.CompletedFocusNames = append(analysis.CompletedFocusNames, name)
		}
	}

	return analysis
}

// Description resolves a focus description, returning empty when the
// localisation has nothing for it. Truncation caps the text at 150 runes
// for single-line display.
func (a *FocusAnalyzer) Description(focusID string, truncate bool) string {
	descKey := focusID + "_desc"
	description := a.loc.Text(descKey)
	if description == descKey {
		return ""
	}

	description = strings.TrimSpace(strings.ReplaceAll(description, `\n`, " "))
	if truncate {
		if runes := []rune(description); len(runes) > 150 {
			description = string(runes[:150]) + "..."
		}
	}
	return description
}

// Leaders returns the countries with at least minCompleted finished
// focuses, ordered by completed count and then current progress.
func (a *FocusAnalyzer) Leaders(countries []save.Country, minCompleted int) []FocusAnalysis {
	var leaders []FocusAnalysis
	for i := range countries {
		analysis := a.AnalyzeCountry(&countries[i])
		if analysis != nil && analysis.CompletedCount >= minCompleted {
			leaders = append(leaders, *analysis)
		}
	}

	sort.SliceStable(leaders, func(i, j int) bool {
		if leaders[i].CompletedCount != leaders[j].CompletedCount {
			return leaders[i].CompletedCount > leaders[j].CompletedCount
		}
		return leaders[i].Progress > leaders[j].Progress
	})
	return leaders
}

// ActiveFocuses returns the countries currently working a focus, most
// progressed first. Paused focuses do not count.
func (a *FocusAnalyzer) ActiveFocuses(countries []save.Country) []FocusAnalysis {
	var active []FocusAnalysis
	for i := range countries {
		analysis := a.AnalyzeCountry(&countries[i])
		if analysis != nil && analysis.CurrentFocus != "" && !analysis.Paused {
			active = append(active, *analysis)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Progress > active[j].Progress
	})
	return active
}

// statusText is the parenthesised progress tag after a focus name.
func (fa *FocusAnalysis) statusText() string {
	if fa.Paused {
		return "PAUSED"
	}
	return fmt.Sprintf("%.1f%% complete", fa.Progress)
}

// lastNames returns the newest n completed focus names.
func (fa *FocusAnalysis) lastNames(n int) []string {
	names := fa.CompletedFocusNames
	if len(names) > n {
		names = names[len(names)-n:]
	}
	return names
}

// Summary formats a one-line focus digest: the current focus with its
// progress, then the completed count, pipe-separated. With showCompleted
// the newest completions are listed too.
func (a *FocusAnalyzer) Summary(fa *FocusAnalysis, showCompleted bool) string {
	var lines []string

	if fa.CurrentFocus != "" {
		lines = append(lines, fmt.Sprintf("Current: %s (%s)", fa.CurrentFocusName, fa.statusText()))
	}

	if fa.CompletedCount > 0 {
		lines = append(lines, fmt.Sprintf("Completed: %d focuses", fa.CompletedCount))
		if showCompleted {
			if recent := fa.lastNames(3); len(recent) > 0 {
				lines = append(lines, fmt.Sprintf("Recent: %s", strings.Join(recent, ", ")))
			}
		}
	}

	if len(lines) == 0 {
		return "No focus activity"
	}
	return strings.Join(lines, " | ")
}

// SummaryVerbose formats the multi-line focus digest with the full
// description of the current focus and the newest completions.
func (a *FocusAnalyzer) SummaryVerbose(fa *FocusAnalysis) string {
	var lines []string

	if fa.CurrentFocus != "" {
		lines = append(lines, fmt.Sprintf("Current: %s (%s)", fa.CurrentFocusName, fa.statusText()))
		if description := a.Description(fa.CurrentFocus, false); description != "" {
			lines = append(lines, fmt.Sprintf("  → %s", description))
		}
	}

	if fa.CompletedCount > 0 {
		lines = append(lines, fmt.Sprintf("Completed: %d focuses", fa.CompletedCount))
		if recent := fa.lastNames(3); len(recent) > 0 {
			lines = append(lines, fmt.Sprintf("Recent: %s", strings.Join(recent, ", ")))
		}
	}

	if len(lines) == 0 {
		return "No focus activity"
	}
	return strings.Join(lines, "\n    ")
}
