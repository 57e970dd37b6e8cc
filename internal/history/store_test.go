package history

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitrep/internal/save"
)

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(date string, stability float64) (*save.Save, []save.Country) {
	ger := save.Country{
		Tag:        "GER",
		Stability:  stability,
		WarSupport: 0.40,
		Politics: &save.Politics{
			RulingParty:    strp("fascism"),
			PoliticalPower: f64p(120),
		},
		Focus: &save.Focus{
			Current:   strp("GER_rhineland"),
			Progress:  f64p(30),
			Completed: []string{"a", "b"},
		},
	}
	ita := save.Country{Tag: "ITA", Stability: 0.7, WarSupport: 0.3}

	resolved := &save.Save{
		Player:    "GER",
		Date:      date,
		Countries: []save.Country{ger, ita, {Tag: "SWE"}},
		Events:    []string{"news.1"},
	}
	return resolved, []save.Country{ger, ita}
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-apply anything
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	var versions int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&versions))
	assert.Equal(t, len(migrations), versions)
}

func TestStore_RecordAndQuery(t *testing.T) {
	store := openStore(t)

	first, firstActive := sampleRun("1936.3.7", 0.65)
	firstID, err := store.Record("saves/one.hoi4", first, firstActive)
	require.NoError(t, err)

	second, secondActive := sampleRun("1936.8.1", 0.55)
	secondID, err := store.Record("saves/two.hoi4", second, secondActive)
	require.NoError(t, err)
	require.NotEqual(t, firstID, secondID)

	sessions, err := store.Sessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, secondID, sessions[0].ID, "newest session first")
	assert.Equal(t, "1936.8.1", sessions[0].GameDate)
	assert.Equal(t, "saves/two.hoi4", sessions[0].SavePath)
	assert.Equal(t, "GER", sessions[0].Player)
	assert.Equal(t, 3, sessions[0].TotalCountries)
	assert.Equal(t, 2, sessions[0].ActiveCountries)
	assert.Equal(t, 1, sessions[0].EventCount)
	assert.False(t, sessions[0].CreatedAt.IsZero())

	snapshots, err := store.Snapshots(firstID)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "GER", snapshots[0].Tag)
	assert.Equal(t, "ITA", snapshots[1].Tag)
	assert.InDelta(t, 0.65, snapshots[0].Stability, 1e-9)
	assert.Equal(t, "fascism", snapshots[0].RulingParty)
	assert.InDelta(t, 120, snapshots[0].PoliticalPower, 1e-9)
	assert.Equal(t, "GER_rhineland", snapshots[0].CurrentFocus)
	assert.InDelta(t, 30, snapshots[0].FocusProgress, 1e-9)
	assert.Equal(t, 2, snapshots[0].CompletedFocuses)
}

func TestStore_Trend(t *testing.T) {
	store := openStore(t)

	for _, run := range []struct {
		date      string
		stability float64
	}{
		{"1936.1.1", 0.50},
		{"1936.6.1", 0.60},
		{"1937.1.1", 0.70},
	} {
		resolved, active := sampleRun(run.date, run.stability)
		_, err := store.Record("saves/auto.hoi4", resolved, active)
		require.NoError(t, err)
	}

	points, err := store.Trend("GER", 10)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "1936.1.1", points[0].GameDate, "oldest point first")
	assert.Equal(t, "1937.1.1", points[2].GameDate)
	assert.InDelta(t, 0.50, points[0].Stability, 1e-9)
	assert.InDelta(t, 0.70, points[2].Stability, 1e-9)

	limited, err := store.Trend("GER", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	empty, err := store.Trend("POR", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_SnapshotDefaultsForSparseCountries(t *testing.T) {
	store := openStore(t)

	resolved := &save.Save{
		Player:    "ITA",
		Date:      "1936.1.1",
		Countries: []save.Country{{Tag: "ITA", Stability: 0.7, WarSupport: 0.3}},
	}
	sessionID, err := store.Record("saves/sparse.hoi4", resolved, resolved.Countries)
	require.NoError(t, err)

	snapshots, err := store.Snapshots(sessionID)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Empty(t, snapshots[0].RulingParty)
	assert.Empty(t, snapshots[0].CurrentFocus)
	assert.Zero(t, snapshots[0].PoliticalPower)
	assert.Zero(t, snapshots[0].CompletedFocuses)
}

func TestStore_RejectsForeignSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE sessions (bogus INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid history schema")
}
