package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ohri/parse-gamebooks/pkg/models"
)

// SaveToSQL writes the resolved players for one game as SQL statements. The
// file starts with a comment block carrying the final score, week and season;
// an existing file is overwritten. Zero players still produces the header.
func SaveToSQL(players []models.ResolvedPlayer, info models.GameInfo, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "-- %s %s, %s %s\n-- Week %d, Season %d\n\n",
		info.VisitorTeam, info.VisitorScore, info.HomeTeam, info.HomeScore, info.Week, info.Season)
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range players {
		_, err = fmt.Fprintf(f, "exec stats.find_or_create_rawstat_gsis('%s', '%s', '%s', %d, %d, '%s', '%s');\n",
			p.GsisID, p.Team, p.Opponent, p.Week, p.Season, p.Position, p.Status)
		if err != nil {
			return fmt.Errorf("failed to write player data: %w", err)
		}
	}

	return nil
}

// SaveToCSV writes the resolved players to a CSV file
func SaveToCSV(players []models.ResolvedPlayer, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"gsis_id", "team", "opponent", "week", "season", "position", "status"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range players {
		record := []string{
			p.GsisID, p.Team, p.Opponent,
			strconv.Itoa(p.Week), strconv.Itoa(p.Season),
			p.Position, p.Status,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write player data: %w", err)
		}
	}
	w.Flush()

	return w.Error()
}
