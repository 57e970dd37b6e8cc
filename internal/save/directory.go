package save

import (
	"strconv"

	"sitrep/internal/savefile"
)

// CharacterDirectory maps numeric character IDs to display names. Built
// once from a save-wide scan and read-only afterwards; country records
// reference it, they never own it.
type CharacterDirectory map[int64]string

// Lookup returns the display name for an ID. A miss is a normal absence,
// never an error.
func (d CharacterDirectory) Lookup(id int64) (string, bool) {
	name, ok := d[id]
	return name, ok
}

// BuildCharacterDirectory scans the character database sections of a save.
// The database sits at the root under characters, or nested inside
// character_manager depending on game version; both spots are read. The
// scan is permissive: entries without a numeric key or a name are skipped.
func BuildCharacterDirectory(root *savefile.Node) CharacterDirectory {
	dir := CharacterDirectory{}
	if n := root.Get("characters"); n != nil {
		collectCharacters(n, dir)
	}
	if m := root.Get("character_manager"); m != nil && m.Kind() == savefile.KindObject {
		if n := m.Get("characters"); n != nil {
			collectCharacters(n, dir)
		}
	}
	return dir
}

func collectCharacters(node *savefile.Node, dir CharacterDirectory) {
	if node.Kind() != savefile.KindObject {
		return
	}
	for _, p := range node.Pairs() {
		id, err := strconv.ParseInt(p.Key, 10, 64)
		if err != nil || p.Value.Kind() != savefile.KindObject {
			continue
		}
		name := p.Value.Get("name")
		if name == nil || name.Kind() != savefile.KindScalar {
			continue
		}
		if _, taken := dir[id]; !taken {
			dir[id] = name.Value()
		}
	}
}
