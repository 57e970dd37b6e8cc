package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sitrep/internal/log"
)

// fileBanner frames saved report files.
const fileBanner = "======================================================================"

// FileWriter saves rendered reports under the reports directory tree,
// global ones in reports/global and country-scoped ones in
// reports/countries.
type FileWriter struct {
	baseDir string
}

func NewFileWriter(baseDir string) *FileWriter {
	return &FileWriter{baseDir: baseDir}
}

// dateToken makes a game date filename-safe: 1936.8.1 becomes 1936_8_1.
func dateToken(date string) string {
	return strings.ReplaceAll(date, ".", "_")
}

func orUnknown(generatedAt string) string {
	if generatedAt == "" {
		return "Unknown"
	}
	return generatedAt
}

// SaveGlobal writes a globally scoped report and returns the path it
// landed at. The filename carries the report type and the game date.
func (w *FileWriter) SaveGlobal(body, reportType, generatedAt, date string) (string, error) {
	dir := filepath.Join(w.baseDir, "global")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", reportType, dateToken(date)))

	lines := []string{
		fileBanner,
		fmt.Sprintf("HOI4 GLOBAL %s REPORT", strings.ToUpper(reportType)),
		fileBanner,
		fmt.Sprintf("Generated: %s", orUnknown(generatedAt)),
		fmt.Sprintf("Game Date: %s", date),
		"Scope: Global Analysis",
		fileBanner,
		"",
		body,
		"",
		fileBanner,
		"End of Report",
		fileBanner,
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	log.Info("report saved", "scope", "global", "type", reportType, "path", path)
	return path, nil
}

// SaveCountry writes a country-scoped report covering the given tags and
// returns the path it landed at.
func (w *FileWriter) SaveCountry(body, reportType string, tags []string, generatedAt, date string) (string, error) {
	dir := filepath.Join(w.baseDir, "countries")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.txt",
		reportType, strings.Join(tags, "_"), dateToken(date)))

	lines := []string{
		fileBanner,
		fmt.Sprintf("HOI4 COUNTRY %s REPORT", strings.ToUpper(reportType)),
		fileBanner,
		fmt.Sprintf("Generated: %s", orUnknown(generatedAt)),
		fmt.Sprintf("Game Date: %s", date),
		fmt.Sprintf("Focus Countries: %s", strings.Join(tags, ", ")),
		"Scope: Country Analysis",
		fileBanner,
		"",
		body,
		"",
		fileBanner,
		"End of Report",
		fileBanner,
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	log.Info("report saved", "scope", "country", "type", reportType, "tags", strings.Join(tags, ","), "path", path)
	return path, nil
}
