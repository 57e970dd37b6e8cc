// Package analysis holds end-to-end tests that run the real decode,
// resolve, report and history code against complete synthetic saves.
package analysis

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"sitrep/internal/locale"
)

// sampleSave is small but structurally complete: player metadata, fired
// events, a character database, bulky sections the analysis never reads,
// and four countries covering the active and inactive cases.
const sampleSave = `HOI4txt
player="GER"
date=1936.1.1.12
fired_event_names={
	"germany.1"
	"usa_elections"
}
provinces={ 1 2 3 4 5 6 7 8 9 10 }
weather={
	static_front=yes
}
character_manager={
	characters={
		900={
			name="Adolf Hitler"
		}
		901={
			name="Joseph Stalin"
		}
	}
}
countries={
	GER={
		stability=0.65
		war_support=0.48
		variables={
			army_experience=120.5
		}
		politics={
			ruling_party=fascism
			political_power=123.45
			last_election="1933.3.5"
			elections_allowed=no
			parties={
				democratic={
					popularity=20.1
				}
				fascism={
					popularity=66.2
					country_leader={
						ideology="nazism"
						character={
							id=900
							type=47
						}
					}
				}
			}
			ideas={
				"war_economy"
				"GER_mefo_bills"
			}
		}
		focus={
			progress=45.67
			current="GER_rhineland"
			paused=no
			completed={
				"GER_army_innovations"
				"GER_four_year_plan"
				"GER_hermann_goering_werke"
			}
		}
		technology={ infantry_weapons=1 }
	}
	SOV={
		stability=0.72
		war_support=0.55
		politics={
			ruling_party=communism
			political_power=88.0
			parties={
				communism={
					popularity=90.0
					country_leader={
						ideology="stalinism"
						character=901
					}
				}
			}
		}
		focus={
			current="SOV_five_year_plan"
			progress=10.0
		}
	}
	POR={
		stability=0.61
		war_support=0.3
	}
	HUN={
		focus={
			current="HUN_reform"
			progress=5.0
		}
	}
}
`

// laterSave is the same campaign two months on, for trend tests.
const laterSave = `HOI4txt
player="GER"
date=1936.3.1.12
countries={
	GER={
		stability=0.70
		war_support=0.52
		politics={
			ruling_party=fascism
			political_power=150.0
		}
		focus={
			progress=12.5
			current="GER_anschluss"
			completed={
				"GER_army_innovations"
				"GER_four_year_plan"
				"GER_hermann_goering_werke"
				"GER_rhineland"
			}
		}
	}
}
`

// writePlainSave writes the save as plain text with a UTF-8 byte order
// mark, which the game emits on some platforms.
func writePlainSave(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	data := append([]byte{0xef, 0xbb, 0xbf}, text...)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// writeZipSave wraps the save in the zip container compressed saves use:
// a gamestate entry next to a meta entry.
func writeZipSave(t *testing.T, dir, name, text string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	meta, err := zw.Create("meta")
	require.NoError(t, err)
	_, err = meta.Write([]byte("HOI4txt\ndate=1936.1.1.12\n"))
	require.NoError(t, err)

	gamestate, err := zw.Create("gamestate")
	require.NoError(t, err)
	_, err = gamestate.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// writeGzipSave writes the save gzip-compressed, the oldest on-disk form.
func writeGzipSave(t *testing.T, dir, name, text string) string {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(text))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// newTestLocalizer loads a localisation directory shaped like the real
// game's, exercising the file glob and line parser on the way.
func newTestLocalizer(t *testing.T) *locale.Localizer {
	t.Helper()
	dir := t.TempDir()
	content := "\xef\xbb\xbfl_english:\n" +
		" GER:0 \"Germany\"\n" +
		" SOV:0 \"Soviet Union\"\n" +
		" POR:0 \"Portugal\"\n" +
		" HUN:0 \"Hungary\"\n" +
		" GER_rhineland:0 \"Remilitarize the Rhineland\"\n" +
		" GER_anschluss:0 \"The Anschluss\"\n" +
		" GER_army_innovations:0 \"Army Innovations\"\n" +
		" GER_four_year_plan:0 \"Four Year Plan\"\n" +
		" GER_hermann_goering_werke:0 \"Hermann Goering Werke\"\n" +
		" SOV_five_year_plan:0 \"Second Five Year Plan\"\n" +
		" germany.1.t:0 \"Remilitarization of the Rhineland\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "focus_l_english.yml"), []byte(content), 0o644))

	loc := locale.NewLocalizer()
	count, err := loc.LoadDirectory(dir)
	require.NoError(t, err)
	require.Equal(t, 11, count)
	return loc
}
