package extract

import (
	"fmt"

	"sitrep/internal/log"
	"sitrep/internal/save"
	"sitrep/internal/savefile"
)

// Extraction is the result of decoding one save end to end: the full
// resolved document plus the active subset reports care about.
type Extraction struct {
	Path   string
	Save   *save.Save
	Active []save.Country
}

// Pipeline runs load, decode, resolve and reconcile for single files. The
// zero value uses the default nesting limit.
type Pipeline struct {
	MaxDepth int
}

// Run decodes one save file. Decode errors are fatal for the file and
// carry the offending byte offset where the decoder has one; the caller
// decides whether to stop or move on to the next file.
func (p *Pipeline) Run(path string) (*Extraction, error) {
	data, err := Load(path)
	if err != nil {
		return nil, err
	}
	return p.RunBytes(path, data)
}

// RunBytes decodes already-loaded save text. Useful when the bytes came
// from somewhere other than a file on disk.
func (p *Pipeline) RunBytes(path string, data []byte) (*Extraction, error) {
	maxDepth := p.MaxDepth
	if maxDepth <= 0 {
		maxDepth = savefile.DefaultMaxDepth
	}

	root, err := savefile.DecodeWithDepth(data, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	resolved, err := save.ResolveSave(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	directory := save.BuildCharacterDirectory(root)
	save.Reconcile(resolved, directory)
	resolved.Events = FilterEvents(resolved.Events)

	extraction := &Extraction{
		Path: path,
		Save: resolved,
	}
	for _, c := range resolved.Countries {
		if c.Active() {
			extraction.Active = append(extraction.Active, c)
		}
	}

	log.Info("save decoded",
		"path", path,
		"player", resolved.Player,
		"date", resolved.Date,
		"countries", len(resolved.Countries),
		"active", len(extraction.Active),
		"characters", len(directory))
	return extraction, nil
}

// FilterEvents drops the literal "id" and "=" entries that the save
// format leaves between real event names.
func FilterEvents(events []string) []string {
	out := make([]string, 0, len(events))
	for _, event := range events {
		if event == "id" || event == "=" {
			continue
		}
		out = append(out, event)
	}
	return out
}
