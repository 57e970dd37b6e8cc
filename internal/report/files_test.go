package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitrep/internal/save"
)

func TestDocument_RoundTrip(t *testing.T) {
	ger := germanCountry()
	full := &save.Save{
		Player: "GER",
		Date:   "1936.8.1",
		Countries: []save.Country{
			ger,
			{Tag: "SWE", Stability: 0.5, WarSupport: 0.5},
			{Tag: "POR", Stability: 0.5, WarSupport: 0.5},
		},
		Events: []string{"news.1", "germany.5"},
	}

	doc := NewDocument(full, []save.Country{ger})
	path := filepath.Join(t.TempDir(), "game_data.json")
	require.NoError(t, doc.WriteJSON(path))

	// The file shape is fixed: tags live next to the data object, never
	// inside it, and the metadata carries both country counts.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var shape struct {
		Metadata  map[string]any   `json:"metadata"`
		Events    []string         `json:"events"`
		Countries []map[string]any `json:"countries"`
	}
	require.NoError(t, json.Unmarshal(raw, &shape))

	assert.Equal(t, "GER", shape.Metadata["player"])
	assert.Equal(t, "1936.8.1", shape.Metadata["date"])
	assert.EqualValues(t, 3, shape.Metadata["total_countries"])
	assert.EqualValues(t, 1, shape.Metadata["active_countries"])
	assert.Equal(t, []string{"news.1", "germany.5"}, shape.Events)

	require.Len(t, shape.Countries, 1)
	assert.Equal(t, "GER", shape.Countries[0]["tag"])
	data, ok := shape.Countries[0]["data"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, data, "stability")
	assert.Contains(t, data, "war_support")
	assert.NotContains(t, data, "tag")

	loaded, err := ReadJSON(path)
	require.NoError(t, err)
	countries := loaded.ActiveCountries()
	require.Len(t, countries, 1)
	assert.Equal(t, "GER", countries[0].Tag, "tags restored on load")
	assert.Equal(t, "fascism", countries[0].RulingParty())
}

func TestDocument_EmptyEventsStayAnArray(t *testing.T) {
	doc := NewDocument(&save.Save{Player: "GER", Date: "1936.1.1"}, nil)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"events":[]`)
}

func TestFileWriter_SaveGlobal(t *testing.T) {
	w := NewFileWriter(t.TempDir())

	path, err := w.SaveGlobal("world body", "situation", "", "1936.8.1")
	require.NoError(t, err)
	assert.Equal(t, "situation_1936_8_1.txt", filepath.Base(path))
	assert.Equal(t, "global", filepath.Base(filepath.Dir(path)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	banner := strings.Repeat("=", 70)
	want := strings.Join([]string{
		banner,
		"HOI4 GLOBAL SITUATION REPORT",
		banner,
		"Generated: Unknown",
		"Game Date: 1936.8.1",
		"Scope: Global Analysis",
		banner,
		"",
		"world body",
		"",
		banner,
		"End of Report",
		banner,
	}, "\n")
	assert.Equal(t, want, string(raw))
}

func TestFileWriter_SaveCountry(t *testing.T) {
	w := NewFileWriter(t.TempDir())

	path, err := w.SaveCountry("country body", "analysis", []string{"GER", "ITA"}, "2026-08-25 10:00:00", "1936.8.1")
	require.NoError(t, err)
	assert.Equal(t, "analysis_GER_ITA_1936_8_1.txt", filepath.Base(path))
	assert.Equal(t, "countries", filepath.Base(filepath.Dir(path)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	assert.Contains(t, content, "HOI4 COUNTRY ANALYSIS REPORT")
	assert.Contains(t, content, "Generated: 2026-08-25 10:00:00")
	assert.Contains(t, content, "Focus Countries: GER, ITA")
	assert.Contains(t, content, "Scope: Country Analysis")
	assert.Contains(t, content, "country body")
	assert.True(t, strings.HasSuffix(content, "End of Report\n"+strings.Repeat("=", 70)))
}
