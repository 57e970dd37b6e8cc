package save

import (
	"fmt"
	"sync"

	"sitrep/internal/log"
	"sitrep/internal/savefile"
)

// ResolveSave walks a decoded tree into the typed model. The tree is never
// mutated; absence of a field is recorded as nil or as the declared
// default, never invented data.
func ResolveSave(root *savefile.Node) (*Save, error) {
	s := &Save{}

	if n := root.Get("player"); n != nil {
		v, err := scalarString(n, "player")
		if err != nil {
			return nil, err
		}
		s.Player = v
	}

	if n := root.Get("date"); n != nil {
		v, err := scalarString(n, "date")
		if err != nil {
			return nil, err
		}
		s.Date = v
	}

	if n := root.Get("fired_event_names"); n != nil {
		events, err := stringList(n, "fired_event_names")
		if err != nil {
			return nil, err
		}
		s.Events = events
	}

	if n := root.Get("countries"); n != nil {
		if n.Kind() != savefile.KindObject {
			return nil, mismatch("countries", "object", n)
		}
		countries, err := ResolveCountries(n)
		if err != nil {
			return nil, err
		}
		s.Countries = countries
	}

	return s, nil
}

// ResolveCountries resolves every entry under the countries root, one
// goroutine per country. Each goroutine reads the shared tree and writes
// only to its own slot, so no lock is needed; results keep encounter
// order. A duplicated tag keeps its first entry.
func ResolveCountries(countries *savefile.Node) ([]Country, error) {
	type entry struct {
		tag  string
		node *savefile.Node
	}
	var entries []entry
	seen := make(map[string]bool)
	for _, p := range countries.Pairs() {
		if p.Key == "" {
			continue
		}
		if seen[p.Key] {
			log.Warn("duplicate country tag, keeping the first entry", "tag", p.Key)
			continue
		}
		seen[p.Key] = true
		entries = append(entries, entry{tag: p.Key, node: p.Value})
	}

	results := make([]Country, len(entries))
	errs := make([]error, len(entries))
	var wg sync.WaitGroup
	for i, e := range entries {
		wg.Add(1)
		go func(slot int, tag string, node *savefile.Node) {
			defer wg.Done()
			c, err := ResolveCountry(tag, node)
			if err != nil {
				errs[slot] = err
				return
			}
			results[slot] = *c
		}(i, e.tag, e.node)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ResolveCountry resolves one country subtree. The stability and war
// support gauges default to the 0.5 no-data value when the save has no
// entry for them.
func ResolveCountry(tag string, node *savefile.Node) (*Country, error) {
	if node.Kind() != savefile.KindObject {
		return nil, mismatch("countries."+tag, "object", node)
	}

	c := &Country{
		Tag:        tag,
		Stability:  SentinelGauge,
		WarSupport: SentinelGauge,
		Variables:  map[string]float64{},
	}

	if n := node.Get("stability"); n != nil {
		f, err := scalarFloat(n, tag+".stability")
		if err != nil {
			return nil, err
		}
		c.Stability = f
	}

	if n := node.Get("war_support"); n != nil {
		f, err := scalarFloat(n, tag+".war_support")
		if err != nil {
			return nil, err
		}
		c.WarSupport = f
	}

	if n := node.Get("variables"); n != nil {
		vars, err := floatMap(n, tag+".variables")
		if err != nil {
			return nil, err
		}
		c.Variables = vars
	}

	if n := node.Get("politics"); n != nil {
		politics, err := resolvePolitics(n, tag+".politics")
		if err != nil {
			return nil, err
		}
		c.Politics = politics
	}

	if n := node.Get("focus"); n != nil {
		focus, err := resolveFocus(n, tag+".focus")
		if err != nil {
			return nil, err
		}
		c.Focus = focus
	}

	return c, nil
}

func resolvePolitics(node *savefile.Node, field string) (*Politics, error) {
	if node.Kind() != savefile.KindObject {
		return nil, mismatch(field, "object", node)
	}

	p := &Politics{}

	if n := node.Get("ruling_party"); n != nil {
		s, err := scalarString(n, field+".ruling_party")
		if err != nil {
			return nil, err
		}
		p.RulingParty = &s
	}

	if n := node.Get("political_power"); n != nil {
		f, err := scalarFloat(n, field+".political_power")
		if err != nil {
			return nil, err
		}
		p.PoliticalPower = &f
	}

	if n := node.Get("parties"); n != nil {
		parties, err := resolveParties(n, field+".parties")
		if err != nil {
			return nil, err
		}
		p.Parties = parties
	}

	if n := node.Get("ideas"); n != nil {
		ideas, err := stringList(n, field+".ideas")
		if err != nil {
			return nil, err
		}
		p.Ideas = ideas
	}

	if n := node.Get("last_election"); n != nil {
		s, err := scalarString(n, field+".last_election")
		if err != nil {
			return nil, err
		}
		p.LastElection = &s
	}

	if n := node.Get("elections_allowed"); n != nil {
		b, err := scalarBool(n, field+".elections_allowed")
		if err != nil {
			return nil, err
		}
		p.ElectionsAllowed = &b
	}

	return p, nil
}

func resolveParties(node *savefile.Node, field string) (*Parties, error) {
	if node.Kind() != savefile.KindObject {
		return nil, mismatch(field, "object", node)
	}

	parties := &Parties{}
	for _, name := range []string{"democratic", "communism", "fascism", "neutrality"} {
		n := node.Get(name)
		if n == nil {
			continue
		}
		party, err := resolveParty(n, field+"."+name)
		if err != nil {
			return nil, err
		}
		switch name {
		case "democratic":
			parties.Democratic = party
		case "communism":
			parties.Communism = party
		case "fascism":
			parties.Fascism = party
		case "neutrality":
			parties.Neutrality = party
		}
	}
	return parties, nil
}

func resolveParty(node *savefile.Node, field string) (*Party, error) {
	if node.Kind() != savefile.KindObject {
		return nil, mismatch(field, "object", node)
	}

	party := &Party{}

	if n := node.Get("popularity"); n != nil {
		f, err := scalarFloat(n, field+".popularity")
		if err != nil {
			return nil, err
		}
		party.Popularity = &f
	}

	// country_leader repeats when a party carries several leaders, and a
	// single occurrence still resolves into a one-element list
	for i, n := range node.GetAll("country_leader") {
		leader, err := resolveLeader(n, fmt.Sprintf("%s.country_leader[%d]", field, i))
		if err != nil {
			return nil, err
		}
		party.CountryLeader = append(party.CountryLeader, *leader)
	}

	return party, nil
}

func resolveLeader(node *savefile.Node, field string) (*Leader, error) {
	if node.Kind() != savefile.KindObject {
		return nil, mismatch(field, "object", node)
	}

	leader := &Leader{}

	if n := node.Get("ideology"); n != nil {
		s, err := scalarString(n, field+".ideology")
		if err != nil {
			return nil, err
		}
		leader.Ideology = &s
	}

	if n := node.Get("character"); n != nil {
		character, err := resolveCharacter(n, field+".character")
		if err != nil {
			return nil, err
		}
		leader.Character = character
	}

	return leader, nil
}

func resolveCharacter(node *savefile.Node, field string) (*Character, error) {
	// some saves write the reference as a bare numeric ID
	if node.Kind() == savefile.KindScalar {
		id, err := scalarInt(node, field)
		if err != nil {
			return nil, err
		}
		return &Character{ID: &id}, nil
	}
	if node.Kind() != savefile.KindObject {
		return nil, mismatch(field, "object", node)
	}

	character := &Character{}

	if n := node.Get("id"); n != nil {
		id, err := scalarInt(n, field+".id")
		if err != nil {
			return nil, err
		}
		character.ID = &id
	}

	if n := node.Get("type"); n != nil {
		t, err := scalarInt(n, field+".type")
		if err != nil {
			return nil, err
		}
		character.Type = &t
	}

	return character, nil
}

func resolveFocus(node *savefile.Node, field string) (*Focus, error) {
	if node.Kind() != savefile.KindObject {
		return nil, mismatch(field, "object", node)
	}

	focus := &Focus{Completed: []string{}}

	if n := node.Get("progress"); n != nil {
		f, err := scalarFloat(n, field+".progress")
		if err != nil {
			return nil, err
		}
		focus.Progress = &f
	}

	if n := node.Get("current"); n != nil {
		s, err := scalarString(n, field+".current")
		if err != nil {
			return nil, err
		}
		focus.Current = &s
	}

	if n := node.Get("paused"); n != nil {
		s, err := scalarString(n, field+".paused")
		if err != nil {
			return nil, err
		}
		focus.Paused = &s
	}

	// completed appears once per finished focus in older saves and as one
	// block in newer ones; both collapse into a flat list
	for i, n := range node.GetAll("completed") {
		ids, err := stringList(n, fmt.Sprintf("%s.completed[%d]", field, i))
		if err != nil {
			return nil, err
		}
		focus.Completed = append(focus.Completed, ids...)
	}

	return focus, nil
}

func mismatch(field, expected string, n *savefile.Node) *savefile.SchemaMismatchError {
	return &savefile.SchemaMismatchError{Field: field, Expected: expected, Actual: n.Kind().String()}
}

func scalarString(n *savefile.Node, field string) (string, error) {
	if n.Kind() != savefile.KindScalar {
		return "", mismatch(field, "scalar", n)
	}
	return n.Value(), nil
}

func scalarFloat(n *savefile.Node, field string) (float64, error) {
	if n.Kind() != savefile.KindScalar {
		return 0, mismatch(field, "number", n)
	}
	f, ok := n.Float()
	if !ok {
		return 0, &savefile.SchemaMismatchError{
			Field:    field,
			Expected: "number",
			Actual:   fmt.Sprintf("non-numeric scalar %q", n.Value()),
		}
	}
	return f, nil
}

func scalarInt(n *savefile.Node, field string) (int64, error) {
	if n.Kind() != savefile.KindScalar {
		return 0, mismatch(field, "integer", n)
	}
	i, ok := n.Int()
	if !ok {
		return 0, &savefile.SchemaMismatchError{
			Field:    field,
			Expected: "integer",
			Actual:   fmt.Sprintf("non-integer scalar %q", n.Value()),
		}
	}
	return i, nil
}

func scalarBool(n *savefile.Node, field string) (bool, error) {
	if n.Kind() != savefile.KindScalar {
		return false, mismatch(field, "yes or no", n)
	}
	b, ok := n.Bool()
	if !ok {
		return false, &savefile.SchemaMismatchError{
			Field:    field,
			Expected: "yes or no",
			Actual:   fmt.Sprintf("scalar %q", n.Value()),
		}
	}
	return b, nil
}

// stringList accepts the spellings a list takes in the save format: a block
// of elements, a bare value for one-entry lists, and the empty block, which
// decodes as an empty object.
func stringList(n *savefile.Node, field string) ([]string, error) {
	switch n.Kind() {
	case savefile.KindScalar:
		return []string{n.Value()}, nil
	case savefile.KindArray:
		out := make([]string, 0, len(n.Elems()))
		for i, e := range n.Elems() {
			if e.Kind() != savefile.KindScalar {
				return nil, &savefile.SchemaMismatchError{
					Field:    fmt.Sprintf("%s[%d]", field, i),
					Expected: "scalar",
					Actual:   e.Kind().String(),
				}
			}
			out = append(out, e.Value())
		}
		return out, nil
	case savefile.KindObject:
		if len(n.Pairs()) == 0 {
			return []string{}, nil
		}
	}
	return nil, mismatch(field, "list", n)
}

func floatMap(n *savefile.Node, field string) (map[string]float64, error) {
	if n.Kind() != savefile.KindObject {
		return nil, mismatch(field, "object", n)
	}
	out := make(map[string]float64, len(n.Pairs()))
	for _, p := range n.Pairs() {
		if p.Key == "" {
			return nil, &savefile.SchemaMismatchError{
				Field:    field,
				Expected: "keyed entries",
				Actual:   "bare element",
			}
		}
		f, err := scalarFloat(p.Value, field+"."+p.Key)
		if err != nil {
			return nil, err
		}
		out[p.Key] = f
	}
	return out, nil
}
