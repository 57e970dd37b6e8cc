// Command trim_save shrinks a save file by dropping the heavyweight
// sections the analysis never reads: provinces, unit state, AI
// planning and similar bulk. A trimmed save decodes the same, just
// faster.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sitrep/internal/extract"
	"sitrep/internal/savefile"
)

// Sections with no analytical value. Most of a late-game save's bulk
// lives here.
var sectionsToRemove = []string{
	"provinces",
	"states",
	"raids",
	"project_pool",
	"program",
	"technology",
	"equipment_market",
	"equipments",
	"division_templates",
	"strategic_operatives",
	"character_manager",
	"rail_way",
	"power_balance",
	"weather",
	"unit_leader",
	"strategic_air",
	"combat",
	"supply_system_2",
	"threat",
	"variables",
	"combat_log",
	"resources",
	"production",
	"dynamic_modifier",
	"intelligence_agency",
	"division_template_id",
	"division_names_tracker",
	"units",
	"cached_navy_strength",
	"navy_theater",
	"theatres",
	"fuel_status",
	"deployment",
	"diplomacy",
	"ai",
	"strategic_navy",
	"intel",
	"name_group",
	"program_status",
	"recruit_scientist",
	"ship_names_tracker",
	"operative_codenames_tracker",
	"railway_gun_names_tracker",
}

func main() {
	var (
		output  = flag.String("output", "", "Output path (defaults to <save>_cleaned.hoi4)")
		preview = flag.Bool("preview", false, "Report section sizes without writing anything")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: trim_save [flags] <save.hoi4>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	data, err := extract.Load(inputPath)
	if err != nil {
		fmt.Printf("Error reading save file: %v\n", err)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)
	p.Printf("Original file: %d characters, %d lines\n", len(data), countLines(data))

	trimmed, removals, err := savefile.StripSections(data, sectionsToRemove)
	if err != nil {
		fmt.Printf("Error scanning save file: %v\n", err)
		os.Exit(1)
	}

	counts := make(map[string]int)
	sizes := make(map[string]int)
	for _, r := range removals {
		counts[r.Name]++
		sizes[r.Name] += r.Size
	}

	if *preview {
		for _, name := range sectionsToRemove {
			if counts[name] == 0 {
				fmt.Printf("%s: not found\n", name)
				continue
			}
			p.Printf("%s: %d characters (%d occurrence(s))\n", name, sizes[name], counts[name])
		}
		total := len(data) - len(trimmed)
		p.Printf("Would remove %d characters (%.1f%%)\n", total, percent(total, len(data)))
		return
	}

	for _, name := range sectionsToRemove {
		if counts[name] == 0 {
			fmt.Printf("Section not found: %s\n", name)
			continue
		}
		p.Printf("Removed %d occurrence(s) of %s (%d chars)\n", counts[name], name, sizes[name])
	}

	trimmed = cleanupNewlines(trimmed)

	outputPath := *output
	if outputPath == "" {
		ext := filepath.Ext(inputPath)
		outputPath = strings.TrimSuffix(inputPath, ext) + "_cleaned" + ext
	}
	if err := os.WriteFile(outputPath, trimmed, 0644); err != nil {
		fmt.Printf("Error writing cleaned file: %v\n", err)
		os.Exit(1)
	}

	reduction := len(data) - len(trimmed)
	p.Printf("Cleaned file: %d characters, %d lines\n", len(trimmed), countLines(trimmed))
	p.Printf("Total reduction: %d characters (%.1f%%)\n", reduction, percent(reduction, len(data)))
	fmt.Printf("Wrote %s\n", outputPath)
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// cleanupNewlines strips trailing whitespace per line and collapses
// runs of blank lines left behind by section removal.
func cleanupNewlines(data []byte) []byte {
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return []byte(blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

func countLines(data []byte) int {
	return bytes.Count(data, []byte("\n"))
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
