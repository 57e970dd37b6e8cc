// Package report turns resolved save data into the analyses and rendered
// reports the CLI and TUI present: political and focus breakdowns, the
// world situation summary, the extraction JSON and the report files on
// disk.
package report

import (
	"fmt"
	"sort"
	"strings"

	"sitrep/internal/locale"
	"sitrep/internal/save"
)

// PartyShare is one party's popularity with its localized display name.
// Shares keep the save's party order so reports stay stable run to run.
type PartyShare struct {
	Name    string
	Support float64
}

// PoliticalAnalysis is a country's political situation with localized
// names and gauges scaled to percentages.
type PoliticalAnalysis struct {
	Tag              string
	Name             string
	Stability        float64
	WarSupport       float64
	RulingParty      string
	PoliticalPower   float64
	ElectionsAllowed bool
	PartySupport     []PartyShare
	NationalIdeas    []string
}

// PoliticalAnalyzer derives political analyses from resolved countries.
type PoliticalAnalyzer struct {
	loc *locale.Localizer
}

func NewPoliticalAnalyzer(loc *locale.Localizer) *PoliticalAnalyzer {
	return &PoliticalAnalyzer{loc: loc}
}

// partyOrder is how the save lists party blocks.
var partyOrder = []string{"democratic", "communism", "fascism", "neutrality"}

// AnalyzeCountry builds the political analysis for one country. Gauges
// come out multiplied by 100; a missing politics block leaves party and
// idea lists empty and the ruling party "Unknown".
func (a *PoliticalAnalyzer) AnalyzeCountry(c *save.Country) PoliticalAnalysis {
	analysis := PoliticalAnalysis{
		Tag:         c.Tag,
		Name:        a.loc.CountryName(c.Tag),
		Stability:   c.Stability * 100,
		WarSupport:  c.WarSupport * 100,
		RulingParty: "Unknown",
	}

	politics := c.Politics
	if politics == nil {
		return analysis
	}

	if politics.RulingParty != nil {
		analysis.RulingParty = *politics.RulingParty
	}
	if politics.PoliticalPower != nil {
		analysis.PoliticalPower = *politics.PoliticalPower
	}
	if politics.ElectionsAllowed != nil {
		analysis.ElectionsAllowed = *politics.ElectionsAllowed
	}

	for _, partyType := range partyOrder {
		party := c.Party(partyType)
		if party == nil || party.Popularity == nil {
			continue
		}
		analysis.PartySupport = append(analysis.PartySupport, PartyShare{
			Name:    a.loc.Text(partyType),
			Support: *party.Popularity,
		})
	}

	for _, idea := range politics.Ideas {
		analysis.NationalIdeas = append(analysis.NationalIdeas, a.loc.IdeaName(idea))
	}

	return analysis
}

// SummaryLine formats one country for the aligned major power table.
func (a *PoliticalAnalyzer) SummaryLine(pa PoliticalAnalysis) string {
	return fmt.Sprintf("%-15s | %-12s | Stability: %5.1f%% | War Support: %5.1f%%",
		pa.Name, pa.RulingParty, pa.Stability, pa.WarSupport)
}

// DetailedReport formats the multi-line political breakdown used in the
// player analysis section.
func (a *PoliticalAnalyzer) DetailedReport(pa PoliticalAnalysis) string {
	lines := []string{
		fmt.Sprintf("Government: %s", pa.RulingParty),
		fmt.Sprintf("Political Power: %g", pa.PoliticalPower),
		fmt.Sprintf("Elections Allowed: %t", pa.ElectionsAllowed),
		fmt.Sprintf("Stability: %.1f%%", pa.Stability),
		fmt.Sprintf("War Support: %.1f%%", pa.WarSupport),
	}

	if len(pa.PartySupport) > 0 {
		lines = append(lines, "", "Party Support:")
		for _, share := range pa.PartySupport {
			lines = append(lines, fmt.Sprintf("  %-15s: %5.1f%%", share.Name, share.Support))
		}
	}

	if len(pa.NationalIdeas) > 0 {
		lines = append(lines, "", "National Ideas:")
		for _, idea := range pa.NationalIdeas {
			lines = append(lines, fmt.Sprintf("  • %s", idea))
		}
	}

	return strings.Join(lines, "\n")
}

// sortedPartySupport returns party shares ordered by support, strongest
// first, for the country detail breakdown.
func sortedPartySupport(shares []PartyShare) []PartyShare {
	out := make([]PartyShare, len(shares))
	copy(out, shares)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Support > out[j].Support
	})
	return out
}
