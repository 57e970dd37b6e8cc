package save

// Reconcile attaches character display names to every country's party
// leaders. A lookup miss leaves the name unset; reconciliation never
// fails. Completed-focus lists need no work here: they are read from each
// country's own subtree during resolution, so an identifier can never end
// up attached to a neighboring country.
func Reconcile(s *Save, dir CharacterDirectory) {
	for i := range s.Countries {
		reconcileCountry(&s.Countries[i], dir)
	}
}

func reconcileCountry(c *Country, dir CharacterDirectory) {
	if c.Politics == nil || c.Politics.Parties == nil {
		return
	}
	for _, party := range []*Party{
		c.Politics.Parties.Democratic,
		c.Politics.Parties.Communism,
		c.Politics.Parties.Fascism,
		c.Politics.Parties.Neutrality,
	} {
		if party == nil {
			continue
		}
		for i := range party.CountryLeader {
			character := party.CountryLeader[i].Character
			if character == nil || character.ID == nil || character.Name != nil {
				continue
			}
			if name, ok := dir.Lookup(*character.ID); ok {
				party.CountryLeader[i].Character.Name = &name
			}
		}
	}
}

// LeaderName returns the reconciled display name of a country's head of
// state, or empty when the save does not record one.
func LeaderName(c *Country) string {
	character := c.LeaderCharacter()
	if character == nil || character.Name == nil {
		return ""
	}
	return *character.Name
}
