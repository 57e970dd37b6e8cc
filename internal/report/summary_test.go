package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitrep/internal/save"
)

func worldFixture() []save.Country {
	ger := germanCountry()
	hun := save.Country{
		Tag:        "HUN",
		Stability:  0.55,
		WarSupport: 0.30,
		Focus: &save.Focus{
			Completed: []string{"treaty_1", "treaty_2", "treaty_3"},
		},
	}
	return []save.Country{ger, hun}
}

func TestSummarizer_WorldSummary(t *testing.T) {
	loc := testLocale()
	loc.Add("news.1.t", "Rhineland Remilitarized")
	s := NewSummarizer(loc)

	got := s.WorldSummary("GER", "1936.8.1", []string{"news.1", "hidden.9"}, worldFixture())

	want := strings.Join([]string{
		"==================================================",
		"HOI4 WORLD SITUATION REPORT",
		"==================================================",
		"Date: 1936.8.1",
		"Player Nation: Germany",
		"",
		"RECENT GLOBAL EVENTS:",
		"   1. Rhineland Remilitarized",
		"",
		"MAJOR POWER STATUS:",
		"  Germany         | fascism      | Stability:  65.0% | War Support:  40.0%",
		"    Focus: Current: Rhineland (45.7% complete) | Completed: 5 focuses",
		"",
		"FOCUS TREE PROGRESS:",
		"  Most Active Nations:",
		"    Germany         | 5 completed",
		"      → Rhineland (46%)",
		"    Hungary         | 3 completed",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestSummarizer_WorldSummaryEmptySections(t *testing.T) {
	s := NewSummarizer(testLocale())

	got := s.WorldSummary("POR", "1936.1.1", nil, nil)

	assert.Contains(t, got, "RECENT GLOBAL EVENTS:\n  No major events to report\n")
	assert.Contains(t, got, "FOCUS TREE PROGRESS:\n  No significant focus activity\n")
	assert.NotContains(t, got, "Most Active Nations")
}

func TestSummarizer_WorldSummaryKeepsLastTenEvents(t *testing.T) {
	loc := testLocale()
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		loc.Add("ev."+id+".t", "Event "+strings.ToUpper(id))
	}
	s := NewSummarizer(loc)

	events := []string{
		"ev.a", "ev.b", "ev.c", "ev.d", "ev.e", "ev.f",
		"ev.g", "ev.h", "ev.i", "ev.j", "ev.k", "ev.l",
	}
	got := s.WorldSummary("GER", "1936.8.1", events, nil)

	assert.NotContains(t, got, "Event A")
	assert.NotContains(t, got, "Event B")
	assert.Contains(t, got, "   1. Event C")
	assert.Contains(t, got, "  10. Event L")
}

func TestSummarizer_PlayerDetails(t *testing.T) {
	s := NewSummarizer(testLocale())

	got := s.PlayerDetails("GER", worldFixture())

	want := strings.Join([]string{
		"==================================================",
		"DETAILED GERMANY ANALYSIS",
		"==================================================",
		"Government: fascism",
		"Political Power: 150",
		"Elections Allowed: false",
		"Stability: 65.0%",
		"War Support: 40.0%",
		"",
		"Party Support:",
		"  Democratic     :  20.0%",
		"  Fascism        :  70.0%",
		"",
		"National Ideas:",
		"  • MEFO Bills",
		"",
		"Focus Tree Progress:",
		"  Completed Focuses: 5",
		"  Current Focus: Rhineland (45.7% complete)",
		"  Recent Completed: Army 1, Army 2, Army 3, Army 4, Army 5",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestSummarizer_PlayerDetailsMissing(t *testing.T) {
	s := NewSummarizer(testLocale())
	assert.Equal(t, "No player data available", s.PlayerDetails("XXX", worldFixture()))
}

func TestSummarizer_CountryDetails(t *testing.T) {
	s := NewSummarizer(testLocale())

	got := s.CountryDetails("ger", "GER", "1936.8.1", worldFixture())

	assert.Contains(t, got, "DETAILED COUNTRY ANALYSIS: GERMANY")
	assert.Contains(t, got, "Country Tag: GER")
	assert.Contains(t, got, "Date: 1936.8.1")
	assert.Contains(t, got, "Status: PLAYER NATION")
	assert.Contains(t, got, "Status: MAJOR POWER")
	assert.Contains(t, got, "POLITICAL SITUATION:\n  Stability: 65.0%")
	assert.Contains(t, got, "  Political Power: 150")
	assert.Contains(t, got, "  Ruling Party: fascism")
	// Detail view lists parties strongest first
	assert.Contains(t, got, "PARTY SUPPORT:\n  Fascism: 70.0%\n  Democratic: 20.0%")
	assert.Contains(t, got, "NATIONAL IDEAS:\n  • MEFO Bills")
	assert.Contains(t, got, "  Recent Completed (5):\n    • Army 1")

	require.True(t, strings.HasSuffix(got, detailBanner+"\n"))
}

func TestSummarizer_CountryDetailsNotFound(t *testing.T) {
	s := NewSummarizer(testLocale())

	got := s.CountryDetails("XYZ", "GER", "1936.8.1", worldFixture())

	assert.Contains(t, got, `Country "XYZ" not found`)
	assert.Contains(t, got, "Available country tags (first 15): GER, HUN")
}

func TestSummarizer_CountryDetailsNoFocus(t *testing.T) {
	s := NewSummarizer(testLocale())
	countries := []save.Country{{Tag: "POR", Stability: 0.9, WarSupport: 0.2}}

	got := s.CountryDetails("POR", "GER", "1936.8.1", countries)

	assert.Contains(t, got, "FOCUS TREE PROGRESS:\n  No focus tree activity detected")
	assert.NotContains(t, got, "Status: MAJOR POWER")
}
