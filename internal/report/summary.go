package report

import (
	"fmt"
	"sort"
	"strings"

	"sitrep/internal/locale"
	"sitrep/internal/save"
)

const (
	summaryBanner = "=================================================="
	detailBanner  = "============================================================"
)

// Summarizer renders the console views: the world situation summary, the
// player analysis and per-country detail breakdowns. All views work off
// the active country set.
type Summarizer struct {
	loc       *locale.Localizer
	political *PoliticalAnalyzer
	focus     *FocusAnalyzer
	events    *EventAnalyzer
}

func NewSummarizer(loc *locale.Localizer) *Summarizer {
	return &Summarizer{
		loc:       loc,
		political: NewPoliticalAnalyzer(loc),
		focus:     NewFocusAnalyzer(loc),
		events:    NewEventAnalyzer(loc),
	}
}

// Political exposes the political analyzer for callers that need raw
// analyses rather than rendered text.
func (s *Summarizer) Political() *PoliticalAnalyzer { return s.political }

// Focus exposes the focus analyzer.
func (s *Summarizer) Focus() *FocusAnalyzer { return s.focus }

// Events exposes the event analyzer.
func (s *Summarizer) Events() *EventAnalyzer { return s.events }

func findCountry(countries []save.Country, tag string) *save.Country {
	for i := range countries {
		if countries[i].Tag == tag {
			return &countries[i]
		}
	}
	return nil
}

// WorldSummary renders the full world situation report: recent events,
// major power status and the most active focus trees.
func (s *Summarizer) WorldSummary(player, date string, events []string, countries []save.Country) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", summaryBanner)
	fmt.Fprintf(&b, "HOI4 WORLD SITUATION REPORT\n")
	fmt.Fprintf(&b, "%s\n", summaryBanner)
	fmt.Fprintf(&b, "Date: %s\n", date)
	fmt.Fprintf(&b, "Player Nation: %s\n", s.loc.CountryName(player))

	s.writeEventsSection(&b, events)
	s.writeMajorPowersSection(&b, countries)
	s.writeFocusSection(&b, countries)

	return b.String()
}

// writeEventsSection lists the newest localized events, ten at most.
func (s *Summarizer) writeEventsSection(b *strings.Builder, events []string) {
	clean := s.events.CleanEvents(events)
	if len(clean) > 10 {
		clean = clean[len(clean)-10:]
	}

	fmt.Fprintf(b, "\nRECENT GLOBAL EVENTS:\n")
	if len(clean) == 0 {
		fmt.Fprintf(b, "  No major events to report\n")
		return
	}
	for i, event := range clean {
		fmt.Fprintf(b, "  %2d. %s\n", i+1, event)
	}
}

// writeMajorPowersSection prints one summary line per great power found
// in the active set, with its focus digest underneath.
func (s *Summarizer) writeMajorPowersSection(b *strings.Builder, countries []save.Country) {
	fmt.Fprintf(b, "\nMAJOR POWER STATUS:\n")
	for _, tag := range save.MajorPowerTags() {
		country := findCountry(countries, tag)
		if country == nil {
			continue
		}

		political := s.political.AnalyzeCountry(country)
		fmt.Fprintf(b, "  %s\n", s.political.SummaryLine(political))

		if focus := s.focus.AnalyzeCountry(country); focus != nil {
			fmt.Fprintf(b, "    Focus: %s\n", s.focus.Summary(focus, false))
		}
	}
}

// writeFocusSection ranks the nations with the most finished focuses.
func (s *Summarizer) writeFocusSection(b *strings.Builder, countries []save.Country) {
	fmt.Fprintf(b, "\nFOCUS TREE PROGRESS:\n")

	leaders := s.focus.Leaders(countries, 3)
	if len(leaders) == 0 {
		fmt.Fprintf(b, "  No significant focus activity\n")
		return
	}
	if len(leaders) > 5 {
		leaders = leaders[:5]
	}

	fmt.Fprintf(b, "  Most Active Nations:\n")
	for i := range leaders {
		leader := &leaders[i]
		fmt.Fprintf(b, "    %-15s | %d completed\n", leader.Name, leader.CompletedCount)
		if leader.CurrentFocus != "" {
			status := fmt.Sprintf("%.0f%%", leader.Progress)
			if leader.Paused {
				status = "PAUSED"
			}
			fmt.Fprintf(b, "      → %s (%s)\n", leader.CurrentFocusName, status)
		}
	}
}

// PlayerDetails renders the in-depth analysis of the player nation.
func (s *Summarizer) PlayerDetails(player string, countries []save.Country) string {
	country := findCountry(countries, player)
	if country == nil {
		return "No player data available"
	}

	political := s.political.AnalyzeCountry(country)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", summaryBanner)
	fmt.Fprintf(&b, "DETAILED %s ANALYSIS\n", strings.ToUpper(political.Name))
	fmt.Fprintf(&b, "%s\n", summaryBanner)
	fmt.Fprintf(&b, "%s\n", s.political.DetailedReport(political))

	if focus := s.focus.AnalyzeCountry(country); focus != nil {
		fmt.Fprintf(&b, "\nFocus Tree Progress:\n")
		fmt.Fprintf(&b, "  Completed Focuses: %d\n", focus.CompletedCount)
		if focus.CurrentFocus != "" {
			fmt.Fprintf(&b, "  Current Focus: %s (%s)\n", focus.CurrentFocusName, focus.statusText())
		}
		if recent := focus.lastNames(5); len(recent) > 0 {
			fmt.Fprintf(&b, "  Recent Completed: %s\n", strings.Join(recent, ", "))
		}
	}

	return b.String()
}

// CountryDetails renders the full breakdown for one country from the
// active set. The tag is case-insensitive.
func (s *Summarizer) CountryDetails(tag, player, date string, countries []save.Country) string {
	tag = strings.ToUpper(tag)
	country := findCountry(countries, tag)
	if country == nil {
		available := make([]string, 0, len(countries))
		for i := range countries {
			available = append(available, countries[i].Tag)
		}
		sort.Strings(available)
		if len(available) > 15 {
			available = available[:15]
		}
		return fmt.Sprintf("Country %q not found\nAvailable country tags (first 15): %s",
			tag, strings.Join(available, ", "))
	}

	political := s.political.AnalyzeCountry(country)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", detailBanner)
	fmt.Fprintf(&b, "DETAILED COUNTRY ANALYSIS: %s\n", strings.ToUpper(political.Name))
	fmt.Fprintf(&b, "Country Tag: %s\n", tag)
	fmt.Fprintf(&b, "Date: %s\n", date)
	if tag == player {
		fmt.Fprintf(&b, "Status: PLAYER NATION\n")
	}
	if save.IsMajorPower(tag) {
		fmt.Fprintf(&b, "Status: MAJOR POWER\n")
	}
	fmt.Fprintf(&b, "%s\n", detailBanner)

	fmt.Fprintf(&b, "\nPOLITICAL SITUATION:\n")
	fmt.Fprintf(&b, "  Stability: %.1f%%\n", political.Stability)
	fmt.Fprintf(&b, "  War Support: %.1f%%\n", political.WarSupport)
	fmt.Fprintf(&b, "  Political Power: %.0f\n", political.PoliticalPower)
	fmt.Fprintf(&b, "  Ruling Party: %s\n", political.RulingParty)

	if len(political.PartySupport) > 0 {
		fmt.Fprintf(&b, "\nPARTY SUPPORT:\n")
		for _, share := range sortedPartySupport(political.PartySupport) {
			fmt.Fprintf(&b, "  %s: %.1f%%\n", share.Name, share.Support)
		}
	}

	if len(political.NationalIdeas) > 0 {
		fmt.Fprintf(&b, "\nNATIONAL IDEAS:\n")
		ideas := political.NationalIdeas
		if len(ideas) > 8 {
			ideas = ideas[:8]
		}
		for _, idea := range ideas {
			fmt.Fprintf(&b, "  • %s\n", idea)
		}
	}

	fmt.Fprintf(&b, "\nFOCUS TREE PROGRESS:\n")
	if focus := s.focus.AnalyzeCountry(country); focus != nil {
		fmt.Fprintf(&b, "  Completed Focuses: %d\n", focus.CompletedCount)
		if focus.CurrentFocus != "" {
			fmt.Fprintf(&b, "  Current Focus: %s (%s)\n", focus.CurrentFocusName, focus.statusText())
		} else {
			fmt.Fprintf(&b, "  Current Focus: None active\n")
		}
		if len(focus.CompletedFocusNames) > 0 {
			recent := focus.lastNames(8)
			fmt.Fprintf(&b, "  Recent Completed (%d):\n", len(recent))
			for _, name := range recent {
				fmt.Fprintf(&b, "    • %s\n", name)
			}
		}
	} else {
		fmt.Fprintf(&b, "  No focus tree activity detected\n")
	}

	fmt.Fprintf(&b, "\n%s\n", detailBanner)
	return b.String()
}
