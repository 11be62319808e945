// Package parser provides functionality to parse NFL gamebook documents
package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ohri/parse-gamebooks/pkg/models"
)

// ReadPDFText reads a PDF file and returns its text content
func ReadPDFText(pdfPath string) (string, error) {
	// Open the PDF file
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	// Extract plain text from the PDF
	plainText, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting text from PDF: %w", err)
	}

	// Read the content into a string
	bytes, err := io.ReadAll(plainText)
	if err != nil {
		return "", fmt.Errorf("error reading plain text from PDF: %w", err)
	}

	return string(bytes), nil
}

// playerRegex matches one roster column entry: position, jersey number and
// abbreviated name, e.g. "WR 10 J.Smith-Njigba". Inactive lists prefix the
// position with a depth digit ("3QB 6 J.Milroe").
var playerRegex = regexp.MustCompile(`([0-9]?[A-Z][A-Z/]*)\s+(\d+)\s+([A-Z]\.[A-Za-z'-]+)`)

// ParseGamebook scans the text of one gamebook for the roster sections and
// header metadata. Section boundaries are located by their textual anchors
// because page layout varies between documents. Lines that match no expected
// pattern are skipped.
func ParseGamebook(text string) ([]models.RosterEntry, models.GameInfo, error) {
	lines := strings.Split(text, "\n")

	info := extractGameInfo(lines)
	if info.VisitorTeam == "" || info.HomeTeam == "" {
		return nil, info, fmt.Errorf("no VISITOR/HOME header found in gamebook text")
	}

	// Locate the section anchors
	lineupsIdx, subsIdx, dnpIdx, inactiveIdx, fieldGoalsIdx := -1, -1, -1, -1, -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "Lineups" && lineupsIdx == -1:
			lineupsIdx = i
		case strings.Contains(line, "Substitutions") && subsIdx == -1:
			subsIdx = i
		case strings.Contains(line, "Did Not Play") && dnpIdx == -1:
			dnpIdx = i
		case strings.Contains(line, "Not Active") && inactiveIdx == -1:
			inactiveIdx = i
		case strings.Contains(line, "Field Goals") && fieldGoalsIdx == -1:
			fieldGoalsIdx = i
		}
	}

	var entries []models.RosterEntry
	seen := make(map[string]int)

	// Sections run starters -> substitutions -> did not play -> inactive, so a
	// player listed again later carries the more specific designation and
	// overwrites the earlier status.
	add := func(e models.RosterEntry) {
		k := e.Name + "|" + e.Team
		if i, ok := seen[k]; ok {
			entries[i].Status = e.Status
			if e.Position != "" {
				entries[i].Position = e.Position
			}
			return
		}
		seen[k] = len(entries)
		entries = append(entries, e)
	}

	// Starters: between the Lineups header block (heading, club names,
	// Offense/Defense labels) and Substitutions
	if lineupsIdx != -1 && subsIdx >= lineupsIdx+3 {
		for _, line := range lines[lineupsIdx+3 : subsIdx] {
			for _, e := range parseRosterLine(line, info, models.StatusStarter) {
				add(e)
			}
		}
	}

	// Substitutions: backups who entered the game
	if subsIdx != -1 {
		end := sectionEnd(subsIdx, len(lines), dnpIdx, inactiveIdx, fieldGoalsIdx)
		for _, line := range lines[subsIdx+1 : end] {
			if strings.Contains(line, "Did Not Play") {
				continue
			}
			for _, e := range parseRosterLine(line, info, models.StatusBackup) {
				add(e)
			}
		}
	}

	// Did Not Play: dressed but never entered; same status code as backups
	if dnpIdx != -1 {
		end := sectionEnd(dnpIdx, len(lines), inactiveIdx, fieldGoalsIdx)
		for _, line := range lines[dnpIdx+1 : end] {
			for _, e := range parseRosterLine(line, info, models.StatusBackup) {
				add(e)
			}
		}
	}

	// Not Active: the inactive list, terminated by the Field Goals block
	if inactiveIdx != -1 {
		end := sectionEnd(inactiveIdx, len(lines), fieldGoalsIdx)
		for _, line := range lines[inactiveIdx+1 : end] {
			for _, e := range parseRosterLine(line, info, models.StatusInactive) {
				add(e)
			}
		}
	}

	return entries, info, nil
}

// sectionEnd returns the first following anchor index, or max when none of
// the candidates lies past start
func sectionEnd(start, max int, candidates ...int) int {
	end := max
	for _, c := range candidates {
		if c > start && c < end {
			end = c
		}
	}
	return end
}

// parseRosterLine extracts players from one two-column roster line. The left
// column belongs to the visiting club, the right to the home club; lineup
// rows carry four position groups (visitor offense/defense, home
// offense/defense), two per club.
func parseRosterLine(line string, info models.GameInfo, status string) []models.RosterEntry {
	matches := playerRegex.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return nil
	}

	var out []models.RosterEntry
	mid := len(line) / 2
	for n, m := range matches {
		pos := strings.TrimLeft(line[m[2]:m[3]], "0123456789")
		name := line[m[6]:m[7]]

		team := info.VisitorTeam
		if status == models.StatusStarter && len(matches) == 4 {
			// Full lineup row: columns 0-1 are the visitor, 2-3 the home club
			if n >= 2 {
				team = info.HomeTeam
			}
		} else if m[0] >= mid {
			team = info.HomeTeam
		}

		out = append(out, models.RosterEntry{
			Name:     name,
			Team:     team,
			Position: pos,
			Status:   status,
		})
	}
	return out
}

// extractGameInfo pulls the matchup, final score and season out of the
// gamebook header region
func extractGameInfo(lines []string) models.GameInfo {
	var info models.GameInfo
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "VISITOR:") && info.VisitorTeam == "":
			info.VisitorTeam, info.VisitorScore = parseScoreLine(line)
		case strings.HasPrefix(line, "HOME:") && info.HomeTeam == "":
			info.HomeTeam, info.HomeScore = parseScoreLine(line)
		case strings.HasPrefix(line, "Date:") && info.Season == 0:
			info.Season = parseSeason(line)
		}
	}
	return info
}

// parseScoreLine handles header lines like
// "VISITOR: Houston Texans 0 6 6 7 0 19": the club name runs up to the first
// numeric field and the last field is the final score
func parseScoreLine(line string) (team, score string) {
	parts := strings.Fields(line)
	for i := 1; i < len(parts); i++ {
		if _, err := strconv.Atoi(parts[i]); err == nil {
			return strings.Join(parts[1:i], " "), parts[len(parts)-1]
		}
	}
	return "", ""
}

// parseSeason pulls the year out of a header line like "Date: Monday, 10/20/2025"
func parseSeason(line string) int {
	for _, part := range strings.Fields(line) {
		if strings.Count(part, "/") == 2 {
			fields := strings.Split(part, "/")
			if year, err := strconv.Atoi(fields[2]); err == nil {
				return year
			}
		}
	}
	return 0
}

// Opponent returns the other club in the matchup for a given team name
func Opponent(team string, info models.GameInfo) string {
	switch team {
	case info.VisitorTeam:
		return info.HomeTeam
	case info.HomeTeam:
		return info.VisitorTeam
	}
	return ""
}
