package save

// SentinelGauge is the value stability and war support take when the save
// recorded nothing for them. Exactly 0.5 means "no data", not a genuine
// measurement, and callers must treat it that way.
const SentinelGauge = 0.5

// Save is the top-level decoded document for one game session snapshot.
// Countries keeps encounter order; tags are unique.
type Save struct {
	Player    string
	Date      string
	Countries []Country
	Events    []string
}

// Country is the resolved record for one tag. JSON field names follow the
// extract output format consumed downstream.
type Country struct {
	Tag        string             `json:"-"`
	Stability  float64            `json:"stability"`
	WarSupport float64            `json:"war_support"`
	Variables  map[string]float64 `json:"variables"`
	Politics   *Politics          `json:"politics"`
	Focus      *Focus             `json:"focus"`
}

// Focus is a country's national focus state. Paused is the raw save value,
// where "no" or absence means the current focus is running. Completed holds
// only identifiers that appeared under this country's own section.
type Focus struct {
	Progress  *float64 `json:"progress"`
	Current   *string  `json:"current"`
	Paused    *string  `json:"paused"`
	Completed []string `json:"completed"`
}

type Politics struct {
	RulingParty      *string  `json:"ruling_party"`
	PoliticalPower   *float64 `json:"political_power"`
	Parties          *Parties `json:"parties"`
	Ideas            []string `json:"ideas"`
	LastElection     *string  `json:"last_election"`
	ElectionsAllowed *bool    `json:"elections_allowed"`
}

type Parties struct {
	Democratic *Party `json:"democratic"`
	Communism  *Party `json:"communism"`
	Fascism    *Party `json:"fascism"`
	Neutrality *Party `json:"neutrality"`
}

// Party holds popularity and leadership for one ideology group. A save may
// carry several country_leader entries for the same party.
type Party struct {
	Popularity    *float64 `json:"popularity"`
	CountryLeader []Leader `json:"country_leader"`
}

type Leader struct {
	Ideology  *string    `json:"ideology"`
	Character *Character `json:"character"`
}

// Character references an entry in the save-wide character database. Name
// is filled by reconciliation when the directory has the ID; it stays nil
// when the lookup misses.
type Character struct {
	ID   *int64  `json:"id"`
	Type *int64  `json:"type"`
	Name *string `json:"name,omitempty"`
}

// Active reports whether the save recorded real data for this country: at
// least one gauge moved off the no-data default, and focus state shows the
// country is actually being played (a current focus or recorded progress).
func (c *Country) Active() bool {
	moved := c.Stability != SentinelGauge || c.WarSupport != SentinelGauge
	if !moved {
		return false
	}
	return c.Focus != nil && (c.Focus.Current != nil || c.Focus.Progress != nil)
}

// Party returns the named party record, or nil when politics or the party
// block is absent.
func (c *Country) Party(name string) *Party {
	if c.Politics == nil || c.Politics.Parties == nil {
		return nil
	}
	switch name {
	case "democratic":
		return c.Politics.Parties.Democratic
	case "communism":
		return c.Politics.Parties.Communism
	case "fascism":
		return c.Politics.Parties.Fascism
	case "neutrality":
		return c.Politics.Parties.Neutrality
	}
	return nil
}

// RulingParty returns the ruling party name, or empty when unknown.
func (c *Country) RulingParty() string {
	if c.Politics == nil || c.Politics.RulingParty == nil {
		return ""
	}
	return *c.Politics.RulingParty
}

// LeaderCharacter returns the first leader character of the ruling party,
// which is how the save names a country's head of state.
func (c *Country) LeaderCharacter() *Character {
	party := c.Party(c.RulingParty())
	if party == nil || len(party.CountryLeader) == 0 {
		return nil
	}
	return party.CountryLeader[0].Character
}

var majorPowers = map[string]bool{
	"GER": true,
	"SOV": true,
	"USA": true,
	"ENG": true,
	"FRA": true,
	"ITA": true,
	"JAP": true,
}

// IsMajorPower reports whether a tag belongs to the fixed set of great
// powers that reports single out.
func IsMajorPower(tag string) bool {
	return majorPowers[tag]
}

// MajorPowerTags returns the great power tags in report order.
func MajorPowerTags() []string {
	return []string{"GER", "SOV", "USA", "ENG", "FRA", "ITA", "JAP"}
}
