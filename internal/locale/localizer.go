package locale

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sitrep/internal/log"
)

// The game's localisation files look like YAML but are not: keys carry a
// version suffix (GER:0 "Germany") and values hold unescaped quotes and
// color codes, so real YAML parsers reject them. Line-based matching is
// the reliable way in.
var (
	versionedLine = regexp.MustCompile(`^\s*([^:]+?):\d+\s+"([^"]*)"`)
	plainLine     = regexp.MustCompile(`^\s*([^:]+?):\s+"([^"]*)"`)

	tagPrefix   = regexp.MustCompile(`^[A-Z]+_`)
	dSuffix     = regexp.MustCompile(`\.d$`)
	eventSuffix = regexp.MustCompile(`_events\.\d+$`)
)

var titleCaser = cases.Title(language.English)

// Localizer resolves game keys (tags, focus and idea identifiers, event
// IDs) to display text from the game's localisation files.
type Localizer struct {
	translations map[string]string
	loadedFiles  map[string]bool
}

func NewLocalizer() *Localizer {
	return &Localizer{
		translations: make(map[string]string),
		loadedFiles:  make(map[string]bool),
	}
}

// Len returns the number of loaded translations.
func (l *Localizer) Len() int {
	return len(l.translations)
}

// LoadFile parses one localisation file and returns how many entries it
// added. A file is only read once.
func (l *Localizer) LoadFile(path string) (int, error) {
	if l.loadedFiles[path] {
		return 0, nil
	}
	l.loadedFiles[path] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	data = bytes.TrimPrefix(data, []byte{0xef, 0xbb, 0xbf})

	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || line == "l_english:" {
			continue
		}

		match := versionedLine.FindStringSubmatch(line)
		if match == nil {
			match = plainLine.FindStringSubmatch(line)
		}
		if match == nil {
			continue
		}

		key := strings.TrimSpace(match[1])
		value := strings.TrimSpace(match[2])
		if key != "" && value != "" {
			l.translations[key] = value
			count++
		}
	}

	log.Debug("loaded localisation file", "file", filepath.Base(path), "entries", count)
	return count, nil
}

// LoadDirectory loads every english localisation file under dir and
// returns the total number of entries added.
func (l *Localizer) LoadDirectory(dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*_l_english.yml"))
	if err != nil {
		return 0, err
	}

	total := 0
	for _, path := range files {
		count, err := l.LoadFile(path)
		if err != nil {
			log.Warn("skipping unreadable localisation file", "file", path, "error", err)
			continue
		}
		total += count
	}

	log.Info("localisation loaded", "dir", dir, "files", len(files), "entries", total)
	return total, nil
}

// Add registers a single translation, mostly useful in tests.
func (l *Localizer) Add(key, value string) {
	l.translations[key] = value
}

// Lookup returns the translation for exactly this key, with none of the
// fallbacks Text applies.
func (l *Localizer) Lookup(key string) (string, bool) {
	v, ok := l.translations[key]
	return v, ok
}

// Text resolves a key to display text. Lookup tries the key as written,
// then lowercase and uppercase spellings, and finally falls back to a
// cleaned rendering of the key itself so callers always get something
// printable.
func (l *Localizer) Text(key string) string {
	if v, ok := l.translations[key]; ok {
		return v
	}
	for _, variant := range []string{strings.ToLower(key), strings.ToUpper(key)} {
		if v, ok := l.translations[variant]; ok {
			return v
		}
	}
	return cleanKey(key)
}

// cleanKey turns an unlocalized game key into something readable:
// GER_rhineland becomes "Rhineland".
func cleanKey(key string) string {
	cleaned := tagPrefix.ReplaceAllString(key, "")
	cleaned = dSuffix.ReplaceAllString(cleaned, "")
	cleaned = eventSuffix.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "_", " ")
	return titleCaser.String(cleaned)
}

// CountryName resolves a tag to the country's display name, trying the
// NAME, DEF and ADJ localisation variants before falling back.
func (l *Localizer) CountryName(tag string) string {
	if v, ok := l.translations[tag]; ok {
		return v
	}
	for _, pattern := range []string{tag + "_NAME", tag + "_DEF", tag + "_ADJ"} {
		if v, ok := l.translations[pattern]; ok {
			return v
		}
	}
	return cleanKey(tag)
}

// EventName resolves a fired event ID to its title. Hidden events have no
// localisation and keep their raw ID.
func (l *Localizer) EventName(eventID string) string {
	if v, ok := l.translations[eventID]; ok {
		return v
	}
	if v, ok := l.translations[eventID+".t"]; ok {
		return v
	}
	return eventID
}

// IdeaName resolves a national idea identifier.
func (l *Localizer) IdeaName(ideaID string) string {
	return l.Text(ideaID)
}

// FocusName resolves a focus identifier.
func (l *Localizer) FocusName(focusID string) string {
	return l.Text(focusID)
}

// FocusDescription resolves a focus identifier to its description text.
func (l *Localizer) FocusDescription(focusID string) string {
	return l.Text(focusID + "_desc")
}

// LeaderName resolves a character name key from the save into a display
// name. Character keys come in several spellings across game versions, so
// a handful of patterns is tried; the boolean is false when none matched
// and the caller should fall back to its own wording.
func (l *Localizer) LeaderName(characterKey, tag string) (string, bool) {
	if characterKey == "" {
		return "", false
	}

	attempts := []string{
		characterKey,
		strings.ToUpper(characterKey),
		characterKey + "_NAME",
		tag + "_" + characterKey,
		"LEADER_" + tag + "_" + characterKey,
	}
	for _, attempt := range attempts {
		resolved := l.Text(attempt)
		if resolved != attempt && len(resolved) > 3 {
			return resolved, true
		}
	}
	return "", false
}

// HasDynamicText reports whether display text contains engine placeholders
// like [FROM.GetName] that only the game can expand.
func HasDynamicText(text string) bool {
	if text == "" {
		return false
	}
	if strings.Contains(text, "[") && strings.Contains(text, "]") {
		return true
	}
	for _, pattern := range []string{"ROOT.", "FROM.", "THIS.", "PREV.", ".Get"} {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}

// FilterDynamic drops entries whose display text the game would rewrite at
// runtime.
func FilterDynamic(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !HasDynamicText(item) {
			out = append(out, item)
		}
	}
	return out
}
