// Package main is the entry point for the parse-gamebooks application
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ohri/parse-gamebooks/internal/utils"
	"github.com/ohri/parse-gamebooks/pkg/parser"
	"github.com/ohri/parse-gamebooks/pkg/resolver"
	"github.com/ohri/parse-gamebooks/pkg/scraper"
)

// Version is set during build using ldflags
var (
	version = "dev"
)

func main() {
	// Define command-line flags
	versionFlag := flag.Bool("version", false, "Print version information and exit")
	weekFlag := flag.Int("week", 0, "Week number (required)")
	seasonFlag := flag.Int("season", 0, "Season year (defaults to the year parsed from the PDF)")
	outputFlag := flag.String("output", "", "Output directory (default: directory of the input file)")
	csvFlag := flag.Bool("csv", false, "Also write a CSV dump of the resolved players")
	indexFlag := flag.String("index", "", "List gamebook PDF links found on an index page and exit")
	flag.Parse()

	// Print version and exit if requested
	if *versionFlag {
		fmt.Printf("parse-gamebooks version %s\n", version)
		return
	}

	// Setup logging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Optional .env carrying PLAYERS_DB_URL / PLAYERS_DB_PATH overrides
	_ = godotenv.Load()

	// Index mode: list available gamebook PDFs and exit
	if *indexFlag != "" {
		html, err := scraper.FetchURL(*indexFlag)
		if err != nil {
			log.Fatalf("Failed to fetch index page: %v", err)
		}
		for _, link := range scraper.ExtractGamebookLinks(html, *indexFlag) {
			fmt.Println(link)
		}
		return
	}

	pdfPath := flag.Arg(0)
	if pdfPath == "" {
		log.Fatalf("Usage: parse-gamebooks -week <int> [-season <int>] <gamebook.pdf>")
	}
	if *weekFlag <= 0 {
		log.Fatalf("Missing required -week argument")
	}

	// Create output directory if specified
	outputDir := *outputFlag
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
		log.Printf("Using output directory: %s", outputDir)
	}

	// A URL argument is downloaded first, then processed like a local file
	if strings.HasPrefix(pdfPath, "http://") || strings.HasPrefix(pdfPath, "https://") {
		dir := outputDir
		if dir == "" {
			dir = "."
		}
		local := filepath.Join(dir, filepath.Base(pdfPath))
		if err := scraper.DownloadFile(pdfPath, local); err != nil {
			log.Fatalf("Failed to download gamebook: %v", err)
		}
		pdfPath = local
	}

	log.Printf("Extracting player data from %s...", pdfPath)
	text, err := parser.ReadPDFText(pdfPath)
	if err != nil {
		log.Fatalf("Failed to read PDF: %v", err)
	}

	entries, info, err := parser.ParseGamebook(text)
	if err != nil {
		log.Fatalf("Failed to parse gamebook: %v", err)
	}
	log.Printf("Found %d players", len(entries))

	info.Week = *weekFlag
	switch {
	case *seasonFlag > 0:
		info.Season = *seasonFlag
		log.Printf("Using season from command line: %d", info.Season)
	case info.Season > 0:
		log.Printf("Using season from PDF: %d", info.Season)
	default:
		log.Fatalf("Could not determine season from PDF; pass -season")
	}

	// Download (first use) and load the players reference database
	dbPath := getenv("PLAYERS_DB_PATH", "players.csv")
	dbURL := getenv("PLAYERS_DB_URL", resolver.DefaultDatabaseURL)
	if err := resolver.EnsureDatabase(dbPath, dbURL); err != nil {
		log.Fatalf("Failed to fetch players database: %v", err)
	}
	db, err := resolver.LoadDatabase(dbPath)
	if err != nil {
		log.Fatalf("Failed to load players database: %v", err)
	}

	players, stats := resolver.ResolveAll(db, entries, info)
	utils.DisplayResolution(stats, len(entries))
	utils.DisplaySummary(players, info)

	// Output files take the input's base name
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(pdfPath)
	}

	sqlPath := filepath.Join(dir, base+".sql")
	if err := utils.SaveToSQL(players, info, sqlPath); err != nil {
		log.Fatalf("Failed to write SQL file: %v", err)
	}
	log.Printf("Saved %d statements to %s", len(players), sqlPath)

	if *csvFlag {
		csvPath := filepath.Join(dir, base+".csv")
		if err := utils.SaveToCSV(players, csvPath); err != nil {
			log.Fatalf("Failed to write CSV file: %v", err)
		}
		log.Printf("Saved CSV to %s", csvPath)
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
