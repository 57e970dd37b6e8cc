package save

import (
	"testing"

	"sitrep/internal/savefile"
)

func TestBuildCharacterDirectory(t *testing.T) {
	root, err := savefile.Decode([]byte(`
		characters={
			7={ name="Smith" portrait=big }
			11={ name="Jones" }
			nonsense={ name="skipped, key is not numeric" }
			12={ portrait=small }
		}
		character_manager={
			characters={
				21={ name="Keitel" }
				7={ name="shadowed, first sighting wins" }
			}
		}
	`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	dir := BuildCharacterDirectory(root)

	want := map[int64]string{7: "Smith", 11: "Jones", 21: "Keitel"}
	if len(dir) != len(want) {
		t.Fatalf("directory has %d entries, want %d: %v", len(dir), len(want), dir)
	}
	for id, name := range want {
		if got, ok := dir.Lookup(id); !ok || got != name {
			t.Errorf("Lookup(%d) = %q %v, want %q", id, got, ok, name)
		}
	}
	if _, ok := dir.Lookup(12); ok {
		t.Error("entry without a name should not be in the directory")
	}
}

func TestReconcile_AttachesNamesAndToleratesMisses(t *testing.T) {
	s := resolveText(t, `
		countries={
			GER={
				politics={
					ruling_party=fascism
					parties={
						fascism={
							country_leader={ character={ id=7 type=1 } }
							country_leader={ character={ id=99 type=1 } }
						}
					}
				}
			}
		}
	`)

	Reconcile(s, CharacterDirectory{7: "Smith"})

	leaders := s.Countries[0].Politics.Parties.Fascism.CountryLeader
	if leaders[0].Character.Name == nil || *leaders[0].Character.Name != "Smith" {
		t.Errorf("leader 0 name = %v, want Smith", leaders[0].Character.Name)
	}
	if leaders[1].Character.Name != nil {
		t.Errorf("leader 1 name = %q, want unset for the missing ID", *leaders[1].Character.Name)
	}
}

func TestReconcile_SkipsCountriesWithoutPolitics(t *testing.T) {
	s := resolveText(t, "countries={ AAA={} BBB={ politics={} } }")

	// must not panic on sparse records
	Reconcile(s, CharacterDirectory{1: "Anyone"})
}

func TestLeaderName(t *testing.T) {
	s := resolveText(t, `
		countries={
			GER={
				politics={
					ruling_party=fascism
					parties={
						fascism={ country_leader={ character={ id=7 } } }
						democratic={ country_leader={ character={ id=8 } } }
					}
				}
			}
			SOV={ politics={ ruling_party=communism } }
		}
	`)
	Reconcile(s, CharacterDirectory{7: "Smith", 8: "Other"})

	if got := LeaderName(&s.Countries[0]); got != "Smith" {
		t.Errorf("LeaderName() = %q, want the ruling party's leader Smith", got)
	}
	if got := LeaderName(&s.Countries[1]); got != "" {
		t.Errorf("LeaderName() without parties = %q, want empty", got)
	}
}

func TestIsMajorPower(t *testing.T) {
	for _, tag := range MajorPowerTags() {
		if !IsMajorPower(tag) {
			t.Errorf("IsMajorPower(%s) = false", tag)
		}
	}
	if IsMajorPower("LUX") {
		t.Error("IsMajorPower(LUX) = true")
	}
}
