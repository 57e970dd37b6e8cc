package locale

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeLocFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadFile_ParsesBothLineForms(t *testing.T) {
	content := "\xef\xbb\xbf" + `l_english:
 # a comment line
 GER:0 "Germany"
 SOV:1 "Soviet Union"
 AUS_political_events.16.t: "Nazis in the Government"
 ger_rhineland: "Remilitarize the Rhineland"

 broken line without a value
 empty:0 ""
`
	localizer := NewLocalizer()
	count, err := localizer.LoadFile(writeLocFile(t, t.TempDir(), "test_l_english.yml", content))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if count != 4 {
		t.Errorf("LoadFile() = %d entries, want 4", count)
	}

	tests := []struct{ key, want string }{
		{"GER", "Germany"},
		{"SOV", "Soviet Union"},
		{"AUS_political_events.16.t", "Nazis in the Government"},
		{"ger_rhineland", "Remilitarize the Rhineland"},
	}
	for _, tt := range tests {
		if got := localizer.Text(tt.key); got != tt.want {
			t.Errorf("Text(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestLoadFile_ReadsEachFileOnce(t *testing.T) {
	path := writeLocFile(t, t.TempDir(), "dup_l_english.yml", "l_english:\n GER:0 \"Germany\"\n")

	localizer := NewLocalizer()
	if count, _ := localizer.LoadFile(path); count != 1 {
		t.Fatalf("first load = %d, want 1", count)
	}
	if count, _ := localizer.LoadFile(path); count != 0 {
		t.Errorf("second load = %d, want 0", count)
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeLocFile(t, dir, "countries_l_english.yml", "l_english:\n GER:0 \"Germany\"\n")
	writeLocFile(t, dir, "focus_l_english.yml", "l_english:\n ger_a:0 \"A\"\n ger_b:0 \"B\"\n")
	writeLocFile(t, dir, "notes.txt", "GER:0 \"not a localisation file\"\n")

	localizer := NewLocalizer()
	total, err := localizer.LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error = %v", err)
	}
	if total != 3 {
		t.Errorf("LoadDirectory() = %d entries, want 3", total)
	}
}

func TestText_FallbackChain(t *testing.T) {
	localizer := NewLocalizer()
	localizer.Add("direct_key", "Direct Hit")
	localizer.Add("lower_key", "Found Lowercase")
	localizer.Add("UPPER_KEY", "Found Uppercase")

	tests := []struct {
		name string
		key  string
		want string
	}{
		{"direct lookup", "direct_key", "Direct Hit"},
		{"lowercase variant", "LOWER_KEY", "Found Lowercase"},
		{"uppercase variant", "upper_key", "Found Uppercase"},
		{"tag prefix stripped in fallback", "GER_rhineland", "Rhineland"},
		{"underscores become words", "four_year_plan", "Four Year Plan"},
		{"event suffix stripped", "nationalist_uprising_events.12", "Nationalist Uprising"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := localizer.Text(tt.key); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestCountryName(t *testing.T) {
	localizer := NewLocalizer()
	localizer.Add("GER", "Germany")
	localizer.Add("SOV_NAME", "Soviet Union")
	localizer.Add("FRA_DEF", "France")

	tests := []struct{ tag, want string }{
		{"GER", "Germany"},
		{"SOV", "Soviet Union"},
		{"FRA", "France"},
		{"XYZ", "Xyz"}, // no translation anywhere, cleaned tag
	}
	for _, tt := range tests {
		if got := localizer.CountryName(tt.tag); got != tt.want {
			t.Errorf("CountryName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestEventName(t *testing.T) {
	localizer := NewLocalizer()
	localizer.Add("germany.5", "Anschluss")
	localizer.Add("news.42.t", "War in Europe")

	tests := []struct{ id, want string }{
		{"germany.5", "Anschluss"},
		{"news.42", "War in Europe"},
		{"hidden.999", "hidden.999"}, // hidden events keep their ID
	}
	for _, tt := range tests {
		if got := localizer.EventName(tt.id); got != tt.want {
			t.Errorf("EventName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestFocusDescription(t *testing.T) {
	localizer := NewLocalizer()
	localizer.Add("ger_rhineland", "Remilitarize the Rhineland")
	localizer.Add("ger_rhineland_desc", "March troops into the demilitarized zone.")

	if got := localizer.FocusName("ger_rhineland"); got != "Remilitarize the Rhineland" {
		t.Errorf("FocusName() = %q", got)
	}
	if got := localizer.FocusDescription("ger_rhineland"); got != "March troops into the demilitarized zone." {
		t.Errorf("FocusDescription() = %q", got)
	}
}

func TestLeaderName(t *testing.T) {
	localizer := NewLocalizer()
	localizer.Add("DEN_thorvald_stauning", "Thorvald Stauning")
	localizer.Add("MANNERHEIM", "Carl Gustaf Emil Mannerheim")

	if got, ok := localizer.LeaderName("DEN_thorvald_stauning", "DEN"); !ok || got != "Thorvald Stauning" {
		t.Errorf("LeaderName() = %q %v, want the translated key", got, ok)
	}
	if got, ok := localizer.LeaderName("mannerheim", "FIN"); !ok || got != "Carl Gustaf Emil Mannerheim" {
		t.Errorf("LeaderName() = %q %v, want the uppercase spelling hit", got, ok)
	}
	// untranslated keys come back cleaned rather than raw
	if got, ok := localizer.LeaderName("hitler", "GER"); !ok || got != "Hitler" {
		t.Errorf("LeaderName() = %q %v, want the cleaned key", got, ok)
	}
	if _, ok := localizer.LeaderName("", "GER"); ok {
		t.Error("LeaderName(\"\") should not resolve")
	}
}

func TestHasDynamicText(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Germany declares war", false},
		{"[FROM.GetName] declares war on [ROOT.GetName]", true},
		{"The ROOT.GetAdjective army advances", true},
		{"PREV. forces retreat", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := HasDynamicText(tt.text); got != tt.want {
			t.Errorf("HasDynamicText(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestFilterDynamic(t *testing.T) {
	in := []string{"Plain Focus", "[ROOT.GetName] Rises", "Another Focus"}
	want := []string{"Plain Focus", "Another Focus"}
	if got := FilterDynamic(in); !reflect.DeepEqual(got, want) {
		t.Errorf("FilterDynamic() = %v, want %v", got, want)
	}
}
