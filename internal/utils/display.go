// Package utils provides utility functions for parse-gamebooks
package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ohri/parse-gamebooks/pkg/models"
	"github.com/ohri/parse-gamebooks/pkg/resolver"
)

// DisplaySummary prints the resolved players for a game grouped by team
func DisplaySummary(players []models.ResolvedPlayer, info models.GameInfo) {
	fmt.Printf("\n====== %s %s, %s %s (Week %d, Season %d) ======\n",
		info.VisitorTeam, info.VisitorScore, info.HomeTeam, info.HomeScore, info.Week, info.Season)
	fmt.Printf("%-12s | %-4s | %-8s | %-6s | %-6s\n",
		"GSIS ID", "Team", "Opponent", "Pos", "Status")
	fmt.Printf("%-12s | %-4s | %-8s | %-6s | %-6s\n",
		strings.Repeat("-", 12), strings.Repeat("-", 4), strings.Repeat("-", 8),
		strings.Repeat("-", 6), strings.Repeat("-", 6))

	// Group players by team
	teamPlayers := make(map[string][]models.ResolvedPlayer)
	for _, player := range players {
		teamPlayers[player.Team] = append(teamPlayers[player.Team], player)
	}

	// Get all team names and sort them
	var teamNames []string
	for team := range teamPlayers {
		teamNames = append(teamNames, team)
	}
	sort.Strings(teamNames)

	for _, team := range teamNames {
		fmt.Printf("\n%s (%d players)\n", team, len(teamPlayers[team]))
		for _, player := range teamPlayers[team] {
			fmt.Printf("%-12s | %-4s | %-8s | %-6s | %-6s\n",
				player.GsisID, player.Team, player.Opponent, player.Position, player.Status)
		}
	}

	// Counts per participation status
	counts := make(map[string]int)
	for _, player := range players {
		counts[player.Status]++
	}
	fmt.Printf("\nStarters: %d, Backups: %d, Inactive: %d\n",
		counts[models.StatusStarter], counts[models.StatusBackup], counts[models.StatusInactive])
	fmt.Println(strings.Repeat("=", 60))
}

// DisplayResolution prints the match rate plus any unresolved or malformed entries
func DisplayResolution(stats resolver.Stats, total int) {
	if total == 0 {
		fmt.Println("No players parsed from the gamebook")
		return
	}
	fmt.Printf("Matched %d/%d players (%d%%)\n", stats.Matched, total, stats.Matched*100/total)

	if len(stats.Unresolved) > 0 {
		fmt.Printf("\nUnmatched players (%d):\n", len(stats.Unresolved))
		for _, name := range stats.Unresolved {
			fmt.Printf("  - %s\n", name)
		}
	}

	if len(stats.Malformed) > 0 {
		fmt.Printf("\nExcluded for non-standard GSIS ID (%d):\n", len(stats.Malformed))
		for _, name := range stats.Malformed {
			fmt.Printf("  - %s\n", name)
		}
	}
}
