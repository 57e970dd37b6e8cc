package report

import (
	"sitrep/internal/locale"
)

// EventAnalyzer localizes fired event IDs for display and drops the ones
// that only resolve to engine placeholder text.
type EventAnalyzer struct {
	loc *locale.Localizer
}

func NewEventAnalyzer(loc *locale.Localizer) *EventAnalyzer {
	return &EventAnalyzer{loc: loc}
}

// CleanEvents returns localized titles for the events that have usable
// display text. Hidden events, which never localize, are dropped along
// with anything whose title or description embeds dynamic placeholders.
func (a *EventAnalyzer) CleanEvents(rawEvents []string) []string {
	var clean []string
	for _, event := range rawEvents {
		title := a.loc.EventName(event)
		if title == event {
			continue
		}
		if locale.HasDynamicText(title) || locale.HasDynamicText(a.Description(event)) {
			continue
		}
		clean = append(clean, title)
	}
	return clean
}

// Description returns an event's description text, or empty when the
// localisation has none under either suffix the game uses.
func (a *EventAnalyzer) Description(eventID string) string {
	if desc, ok := a.loc.Lookup(eventID + ".d"); ok {
		return desc
	}
	if desc, ok := a.loc.Lookup(eventID + ".desc"); ok {
		return desc
	}
	return ""
}
