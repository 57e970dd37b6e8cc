package report

import (
	"encoding/json"
	"fmt"
	"os"

	"sitrep/internal/save"
)

// Metadata heads the extraction document.
type Metadata struct {
	Player          string `json:"player"`
	Date            string `json:"date"`
	TotalCountries  int    `json:"total_countries"`
	ActiveCountries int    `json:"active_countries"`
}

// CountryEntry pairs a tag with its resolved record. The tag lives
// outside the data object so consumers can index without touching it.
type CountryEntry struct {
	Tag  string       `json:"tag"`
	Data save.Country `json:"data"`
}

// Document is the extraction JSON consumed by downstream analysis. It
// carries only the active countries; the total count survives in the
// metadata.
type Document struct {
	Metadata  Metadata       `json:"metadata"`
	Events    []string       `json:"events"`
	Countries []CountryEntry `json:"countries"`
}

// NewDocument assembles the extraction document from a resolved save and
// its active subset.
func NewDocument(s *save.Save, active []save.Country) *Document {
	doc := &Document{
		Metadata: Metadata{
			Player:          s.Player,
			Date:            s.Date,
			TotalCountries:  len(s.Countries),
			ActiveCountries: len(active),
		},
		Events:    s.Events,
		Countries: make([]CountryEntry, 0, len(active)),
	}
	if doc.Events == nil {
		doc.Events = []string{}
	}
	for _, c := range active {
		doc.Countries = append(doc.Countries, CountryEntry{Tag: c.Tag, Data: c})
	}
	return doc
}

// WriteJSON writes the document to path, pretty-printed.
func (d *Document) WriteJSON(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal extraction document: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads a previously written extraction document. Countries
// regain their tags so lookups on the records work as usual.
func ReadJSON(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range doc.Countries {
		doc.Countries[i].Data.Tag = doc.Countries[i].Tag
	}
	return &doc, nil
}

// ActiveCountries returns the document's country records with tags
// filled in.
func (d *Document) ActiveCountries() []save.Country {
	countries := make([]save.Country, 0, len(d.Countries))
	for _, entry := range d.Countries {
		c := entry.Data
		c.Tag = entry.Tag
		countries = append(countries, c)
	}
	return countries
}
