// Package resolver matches parsed roster entries against the nflverse
// players reference table and produces resolved output records
package resolver

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gocarina/gocsv"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ohri/parse-gamebooks/pkg/models"
	"github.com/ohri/parse-gamebooks/pkg/parser"
	"github.com/ohri/parse-gamebooks/pkg/scraper"
)

// DefaultDatabaseURL is the nflverse players release asset
const DefaultDatabaseURL = "https://github.com/nflverse/nflverse-data/releases/download/players/players.csv"

// gsisRegex is the canonical league identifier format: two digits, hyphen,
// seven digits
var gsisRegex = regexp.MustCompile(`^\d{2}-\d{7}$`)

// playerRecord is one row of the nflverse players.csv; columns beyond these
// are ignored by gocsv
type playerRecord struct {
	GsisID       string `csv:"gsis_id"`
	DisplayName  string `csv:"display_name"`
	ShortName    string `csv:"short_name"`
	FootballName string `csv:"football_name"`
	FirstName    string `csv:"first_name"`
	LastName     string `csv:"last_name"`
	LatestTeam   string `csv:"latest_team"`
}

// Database is an in-memory name index over the players reference table
type Database struct {
	byNameTeam   map[string]*playerRecord   // normalized name scoped by team
	byName       map[string][]*playerRecord // normalized name, any team
	bySquashTeam map[string]*playerRecord   // name with spaces/periods stripped, scoped by team
	byTeam       map[string][]*playerRecord
	names        []string // indexed names, for fuzzy suggestions
}

// Stats reports the outcome of resolving one run's roster entries
type Stats struct {
	Matched    int
	Unresolved []string
	Malformed  []string
}

// EnsureDatabase makes sure a local copy of the reference CSV exists,
// downloading it on first use. The cache has no expiry; staleness is an
// accepted tradeoff for a batch tool.
func EnsureDatabase(path, url string) error {
	if _, err := os.Stat(path); err == nil {
		log.Printf("Players database already exists at %s", path)
		return nil
	}
	if err := scraper.DownloadFile(url, path); err != nil {
		return fmt.Errorf("error downloading players database: %w", err)
	}
	return nil
}

// LoadDatabase reads the reference CSV and builds the lookup indexes
func LoadDatabase(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening players database: %w", err)
	}
	defer f.Close()

	var records []*playerRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("error parsing players database: %w", err)
	}

	db := &Database{
		byNameTeam:   make(map[string]*playerRecord),
		byName:       make(map[string][]*playerRecord),
		bySquashTeam: make(map[string]*playerRecord),
		byTeam:       make(map[string][]*playerRecord),
	}
	nameSet := make(map[string]bool)

	for _, rec := range records {
		if rec.GsisID == "" {
			continue
		}
		team := strings.ToUpper(rec.LatestTeam)
		db.byTeam[team] = append(db.byTeam[team], rec)

		for _, name := range nameVariants(rec) {
			key := normalizeName(name)
			if key == "" {
				continue
			}
			if _, ok := db.byNameTeam[key+"|"+team]; !ok {
				db.byNameTeam[key+"|"+team] = rec
			}
			db.byName[key] = append(db.byName[key], rec)
			if _, ok := db.bySquashTeam[squashName(name)+"|"+team]; !ok {
				db.bySquashTeam[squashName(name)+"|"+team] = rec
			}
			if !nameSet[name] {
				nameSet[name] = true
				db.names = append(db.names, name)
			}
		}
	}

	log.Printf("Loaded %d player records from %s", len(records), path)
	return db, nil
}

// nameVariants returns every spelling a gamebook might use for a record:
// display name, short name ("T.Woolen"), football name, and first initial
// plus last name
func nameVariants(rec *playerRecord) []string {
	var variants []string
	if rec.DisplayName != "" {
		variants = append(variants, rec.DisplayName)
	}
	if rec.ShortName != "" {
		variants = append(variants, rec.ShortName)
	}
	if rec.FootballName != "" {
		variants = append(variants, rec.FootballName)
	}
	if rec.FirstName != "" && rec.LastName != "" {
		initial, _ := utf8.DecodeRuneInString(rec.FirstName)
		variants = append(variants, string(initial)+"."+rec.LastName)
	}
	return variants
}

// normalizeName lowercases, trims and collapses whitespace
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// squashName additionally strips spaces and periods, so "N. Collins" and
// "N.Collins" compare equal
func squashName(name string) string {
	return strings.NewReplacer(" ", "", ".", "").Replace(strings.ToLower(name))
}

// Lookup resolves a roster name to a GSIS identifier. The ladder mirrors how
// gamebooks abbreviate names: exact with team, exact any team (for players
// who changed clubs), squashed spelling with team, then last name within the
// team as a last resort.
func (db *Database) Lookup(name, teamAbbr string) (string, bool) {
	key := normalizeName(name)
	team := strings.ToUpper(teamAbbr)

	if rec, ok := db.byNameTeam[key+"|"+team]; ok {
		return rec.GsisID, true
	}

	if recs := db.byName[key]; len(recs) > 0 {
		ids := distinctIDs(recs)
		if len(ids) == 1 {
			return ids[0], true
		}
		// Ambiguous name: only the team can disambiguate
		log.Printf("Ambiguous name %q matches %d players; scoping to team %s", name, len(ids), team)
		for _, rec := range recs {
			if strings.ToUpper(rec.LatestTeam) == team {
				return rec.GsisID, true
			}
		}
		return "", false
	}

	if rec, ok := db.bySquashTeam[squashName(name)+"|"+team]; ok {
		return rec.GsisID, true
	}

	if i := strings.LastIndex(name, "."); i >= 0 {
		last := normalizeName(name[i+1:])
		for _, rec := range db.byTeam[team] {
			if strings.ToLower(rec.LastName) == last {
				return rec.GsisID, true
			}
		}
	}

	return "", false
}

func distinctIDs(recs []*playerRecord) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, rec := range recs {
		if !seen[rec.GsisID] {
			seen[rec.GsisID] = true
			ids = append(ids, rec.GsisID)
		}
	}
	return ids
}

// Suggest returns up to n reference names closest to the given name. Used to
// flag unresolved players in the log rather than dropping them silently.
func (db *Database) Suggest(name string, n int) []string {
	// Periods break subsequence matching against full names
	ranks := fuzzy.RankFindNormalizedFold(strings.ReplaceAll(name, ".", " "), db.names)
	sort.Sort(ranks)

	var out []string
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == n {
			break
		}
	}
	return out
}

// ValidGsisID reports whether an identifier matches the canonical
// 00-XXXXXXX format
func ValidGsisID(id string) bool {
	return gsisRegex.MatchString(id)
}

// ResolveAll joins roster entries with the reference table, attaches the game
// metadata and keeps only entries carrying a well-formed GSIS identifier.
// Unresolved and malformed entries are counted, never fatal.
func ResolveAll(db *Database, entries []models.RosterEntry, info models.GameInfo) ([]models.ResolvedPlayer, Stats) {
	var resolved []models.ResolvedPlayer
	var stats Stats

	for _, e := range entries {
		team := parser.TeamAbbreviation(e.Team)
		opponent := parser.TeamAbbreviation(parser.Opponent(e.Team, info))

		id, ok := db.Lookup(e.Name, team)
		if !ok {
			stats.Unresolved = append(stats.Unresolved, fmt.Sprintf("%s (%s)", e.Name, e.Team))
			if suggestions := db.Suggest(e.Name, 3); len(suggestions) > 0 {
				log.Printf("No match for %s (%s); closest: %s", e.Name, e.Team, strings.Join(suggestions, ", "))
			}
			continue
		}
		if !ValidGsisID(id) {
			stats.Malformed = append(stats.Malformed, fmt.Sprintf("%s (%s) gsis=%s", e.Name, e.Team, id))
			continue
		}

		stats.Matched++
		resolved = append(resolved, models.ResolvedPlayer{
			GsisID:   id,
			Team:     team,
			Opponent: opponent,
			Week:     info.Week,
			Season:   info.Season,
			Position: e.Position,
			Status:   e.Status,
		})
	}

	return resolved, stats
}
