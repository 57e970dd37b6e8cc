package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"sitrep/internal/config"
	"sitrep/internal/extract"
	"sitrep/internal/focusmap"
	"sitrep/internal/history"
	"sitrep/internal/locale"
	"sitrep/internal/log"
	"sitrep/internal/report"
	"sitrep/internal/save"
	"sitrep/internal/theme"
	"sitrep/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "sitrep.yaml", "Path to the optional YAML config")
		savePath    = flag.String("save", "", "Save file to analyze (default: newest in the saves dir)")
		batch       = flag.Bool("batch", false, "Decode every save in the saves dir")
		browse      = flag.Bool("browse", false, "Open the interactive browser")
		countryTag  = flag.String("country", "", "Print the detailed analysis for one country tag")
		mapTag      = flag.String("map", "", "Render the focus chain image for one country tag")
		trendTag    = flag.String("trend", "", "Print the recorded history trend for one country tag")
		writeFiles  = flag.Bool("reports", false, "Write text reports under the reports dir")
		showVersion = flag.Bool("version", false, "Print version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("sitrep %s (%s, built %s)\n", version, commit, date)
		return
	}

	defer log.Close()

	// Set up global panic handler first
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "Application crashed. See sitrep_debug.log for details.\n")
			os.Exit(1)
		}
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}

	if *browse {
		// The TUI owns the terminal, so logging moves to a file
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Fprintln(os.Stderr, "The browser needs a terminal. Run without -browse for plain output.")
			os.Exit(1)
		}
		if err := log.SetFileOutput("sitrep_debug.log"); err != nil {
			fmt.Printf("Warning: Could not configure debug logging to file: %v\n", err)
		}
		setupSignalHandlers()
	}

	if cfg.Theme != "" {
		if err := theme.GetThemeManager().SetTheme(cfg.Theme); err != nil {
			log.Warn("unknown theme, keeping default", "theme", cfg.Theme)
		}
	}

	loc := newLocalizer(cfg)

	// Trend reporting reads only the history database
	if *trendTag != "" {
		if err := printTrend(cfg, loc, *trendTag); err != nil {
			fatal(err)
		}
		return
	}

	if *batch {
		if err := runBatchMode(cfg, loc, *writeFiles); err != nil {
			fatal(err)
		}
		return
	}

	doc, extraction, err := loadDocument(cfg, *savePath)
	if err != nil {
		fatal(err)
	}
	recordHistory(cfg, extraction)

	switch {
	case *browse:
		app := tui.NewBrowser(doc, loc)
		if err := app.Run(); err != nil {
			fatal(err)
		}
	case *mapTag != "":
		if err := renderFocusMap(cfg, loc, doc, *mapTag); err != nil {
			fatal(err)
		}
	case *countryTag != "":
		if err := runCountry(cfg, loc, doc, *countryTag, *writeFiles); err != nil {
			fatal(err)
		}
	default:
		if err := runSummary(cfg, loc, doc, *writeFiles); err != nil {
			fatal(err)
		}
	}
}

// loadDocument decodes the requested save, falling back to the last
// extraction document when no save can be found. The extraction is nil
// on the fallback path since nothing new was decoded.
func loadDocument(cfg *config.Config, savePath string) (*report.Document, *extract.Extraction, error) {
	path := savePath
	if path == "" {
		found, err := extract.LatestSave(cfg.SavesDir)
		if err != nil {
			if doc, jsonErr := report.ReadJSON(cfg.DataFile); jsonErr == nil {
				log.Warn("no save found, reusing previous extraction",
					"data", cfg.DataFile, "error", err)
				return doc, nil, nil
			}
			return nil, nil, err
		}
		path = found
	}

	pipeline := &extract.Pipeline{MaxDepth: cfg.MaxDepth}
	extraction, err := pipeline.Run(path)
	if err != nil {
		return nil, nil, err
	}

	doc := report.NewDocument(extraction.Save, extraction.Active)
	if err := doc.WriteJSON(cfg.DataFile); err != nil {
		log.Warn("could not write extraction document", "path", cfg.DataFile, "error", err)
	}
	return doc, extraction, nil
}

// recordHistory stores one session row per freshly decoded save. A
// broken history database never blocks the analysis itself.
func recordHistory(cfg *config.Config, extraction *extract.Extraction) {
	if extraction == nil {
		return
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		log.Warn("history unavailable", "path", cfg.HistoryDB, "error", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(extraction.Path, extraction.Save, extraction.Active); err != nil {
		log.Warn("could not record analysis run", "error", err)
	}
}

func runSummary(cfg *config.Config, loc *locale.Localizer, doc *report.Document, writeFiles bool) error {
	summarizer := report.NewSummarizer(loc)
	countries := doc.ActiveCountries()

	world := summarizer.WorldSummary(doc.Metadata.Player, doc.Metadata.Date, doc.Events, countries)
	fmt.Println(world)
	fmt.Println()
	fmt.Println(summarizer.PlayerDetails(doc.Metadata.Player, countries))

	if writeFiles {
		writer := report.NewFileWriter(cfg.ReportsDir)
		path, err := writer.SaveGlobal(world, "situation", generatedAt(), doc.Metadata.Date)
		if err != nil {
			return err
		}
		fmt.Printf("\nReport saved: %s\n", path)
	}
	return nil
}

func runCountry(cfg *config.Config, loc *locale.Localizer, doc *report.Document, tag string, writeFiles bool) error {
	summarizer := report.NewSummarizer(loc)
	body := summarizer.CountryDetails(tag, doc.Metadata.Player, doc.Metadata.Date, doc.ActiveCountries())
	fmt.Println(body)

	if writeFiles {
		writer := report.NewFileWriter(cfg.ReportsDir)
		path, err := writer.SaveCountry(body, "analysis", []string{strings.ToUpper(tag)}, generatedAt(), doc.Metadata.Date)
		if err != nil {
			return err
		}
		fmt.Printf("\nReport saved: %s\n", path)
	}
	return nil
}

func runBatchMode(cfg *config.Config, loc *locale.Localizer, writeFiles bool) error {
	pipeline := &extract.Pipeline{MaxDepth: cfg.MaxDepth}
	extractions, err := extract.RunBatch(cfg.SavesDir, pipeline, cfg.Workers)
	if err != nil {
		return err
	}

	var store *history.Store
	if opened, err := history.Open(cfg.HistoryDB); err != nil {
		log.Warn("history unavailable", "path", cfg.HistoryDB, "error", err)
	} else {
		store = opened
		defer store.Close()
	}

	summarizer := report.NewSummarizer(loc)
	writer := report.NewFileWriter(cfg.ReportsDir)
	for _, extraction := range extractions {
		s := extraction.Save
		fmt.Printf("%s: %s on %s, %d active countries\n",
			filepath.Base(extraction.Path), loc.CountryName(s.Player), s.Date, len(extraction.Active))

		if store != nil {
			if _, err := store.Record(extraction.Path, s, extraction.Active); err != nil {
				log.Warn("could not record analysis run", "path", extraction.Path, "error", err)
			}
		}
		if writeFiles {
			world := summarizer.WorldSummary(s.Player, s.Date, s.Events, extraction.Active)
			if _, err := writer.SaveGlobal(world, "situation", generatedAt(), s.Date); err != nil {
				log.Warn("could not write report", "path", extraction.Path, "error", err)
			}
		}
	}
	fmt.Printf("Decoded %d saves\n", len(extractions))
	return nil
}

func renderFocusMap(cfg *config.Config, loc *locale.Localizer, doc *report.Document, tag string) error {
	tag = strings.ToUpper(tag)

	var target *save.Country
	countries := doc.ActiveCountries()
	for i := range countries {
		if countries[i].Tag == tag {
			target = &countries[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("country %s is not in the extraction", tag)
	}

	chain, err := focusmap.BuildChain(target, loc)
	if err != nil {
		return err
	}

	renderer := &focusmap.Renderer{MaxWidth: 1200}
	outPath := filepath.Join(cfg.ReportsDir, fmt.Sprintf("focus_chain_%s.png", tag))
	if err := renderer.SavePNG(context.Background(), chain, outPath); err != nil {
		return err
	}
	fmt.Printf("Focus chain image: %s\n", outPath)

	if isatty.IsTerminal(os.Stdout.Fd()) {
		data, err := os.ReadFile(outPath)
		if err != nil {
			return err
		}
		if err := focusmap.WriteSixel(os.Stdout, data, focusmap.Encoder(cfg.SixelEncoder)); err != nil {
			log.Warn("sixel output failed", "error", err)
		}
	}
	return nil
}

func printTrend(cfg *config.Config, loc *locale.Localizer, tag string) error {
	tag = strings.ToUpper(tag)

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	points, err := store.Trend(tag, 20)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Printf("No recorded history for %s\n", tag)
		return nil
	}

	fmt.Printf("Trend for %s (%s), oldest first:\n", loc.CountryName(tag), tag)
	fmt.Printf("%-12s %10s %12s %8s %10s\n", "Game Date", "Stability", "War Support", "Power", "Completed")
	for _, pt := range points {
		fmt.Printf("%-12s %9.1f%% %11.1f%% %8.0f %10d\n",
			pt.GameDate, pt.Stability*100, pt.WarSupport*100, pt.PoliticalPower, pt.CompletedFocuses)
	}
	return nil
}

// newLocalizer loads display names from the game's localisation dir and
// from a project-local locale dir, either of which may be absent.
func newLocalizer(cfg *config.Config) *locale.Localizer {
	loc := locale.NewLocalizer()

	dirs := []string{"locale"}
	if dir := cfg.LocalisationDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if _, err := loc.LoadDirectory(dir); err != nil {
			log.Warn("could not load localisation", "dir", dir, "error", err)
		}
	}

	if loc.Len() == 0 {
		log.Debug("no localisation loaded, names stay raw")
	}
	return loc
}

func generatedAt() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

// setupSignalHandlers catches crashes so the terminal is not left in
// the TUI's raw state without a trace of what happened
func setupSignalHandlers() {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGSEGV, syscall.SIGABRT, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		log.Error("SIGNAL RECEIVED", "signal", sig.String(), "stack", string(debug.Stack()))
		fmt.Fprintf(os.Stderr, "Application received signal %s. See sitrep_debug.log for details.\n", sig.String())
		os.Exit(1)
	}()
}

func fatal(err error) {
	log.Error("fatal", "error", err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
