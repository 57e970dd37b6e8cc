package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sitrep/internal/log"
)

// LatestSave returns the most recently modified save file in dir. The
// game overwrites rolling autosaves, so modification time is the only
// reliable ordering.
func LatestSave(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.hoi4"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no save files in %s", dir)
	}

	latest := ""
	var latestMod int64
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); latest == "" || mod > latestMod {
			latest = path
			latestMod = mod
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no readable save files in %s", dir)
	}
	return latest, nil
}

// RunBatch decodes every save in dir, fanning files out to a fixed
// worker pool. A decode failure is fatal only to its own file: the
// error is logged with the offending offset and the batch moves on.
// The returned error covers the directory itself, not individual
// saves. Results keep Glob's sorted file order regardless of which
// worker finished first.
func RunBatch(dir string, p *Pipeline, workers int) ([]*Extraction, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.hoi4"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no save files in %s", dir)
	}

	if workers <= 0 {
		workers = 1
	}
	if workers > len(matches) {
		workers = len(matches)
	}

	results := make([]*Extraction, len(matches))
	errs := make([]error, len(matches))
	jobs := make(chan int, len(matches))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = p.Run(matches[i])
			}
		}()
	}
	for i := range matches {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var extractions []*Extraction
	failed := 0
	for i, extraction := range results {
		if errs[i] != nil {
			failed++
			log.Error("skipping save", "path", matches[i], "error", errs[i])
			continue
		}
		extractions = append(extractions, extraction)
	}

	log.Info("batch finished", "dir", dir, "decoded", len(extractions), "failed", failed, "workers", workers)
	return extractions, nil
}
