package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohri/parse-gamebooks/pkg/models"
)

func sampleInfo() models.GameInfo {
	return models.GameInfo{
		VisitorTeam:  "Houston Texans",
		VisitorScore: "19",
		HomeTeam:     "Seattle Seahawks",
		HomeScore:    "38",
		Week:         7,
		Season:       2024,
	}
}

func TestSaveToSQL(t *testing.T) {
	players := []models.ResolvedPlayer{
		{GsisID: "00-1234567", Team: "HOU", Opponent: "SEA", Week: 7, Season: 2024, Position: "QB", Status: "S"},
	}
	path := filepath.Join(t.TempDir(), "game.sql")
	require.NoError(t, SaveToSQL(players, sampleInfo(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"-- Houston Texans 19, Seattle Seahawks 38\n"+
			"-- Week 7, Season 2024\n"+
			"\n"+
			"exec stats.find_or_create_rawstat_gsis('00-1234567', 'HOU', 'SEA', 7, 2024, 'QB', 'S');\n",
		string(content))
}

func TestSaveToSQLZeroPlayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.sql")
	require.NoError(t, SaveToSQL(nil, sampleInfo(), path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"-- Houston Texans 19, Seattle Seahawks 38\n-- Week 7, Season 2024\n\n",
		string(content))
}

func TestSaveToSQLIdempotent(t *testing.T) {
	players := []models.ResolvedPlayer{
		{GsisID: "00-1234567", Team: "HOU", Opponent: "SEA", Week: 7, Season: 2024, Position: "QB", Status: "S"},
		{GsisID: "00-7654321", Team: "SEA", Opponent: "HOU", Week: 7, Season: 2024, Position: "CB", Status: "I"},
	}
	path := filepath.Join(t.TempDir(), "game.sql")

	require.NoError(t, SaveToSQL(players, sampleInfo(), path))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// Overwrites without confirmation; reruns are byte-identical
	require.NoError(t, SaveToSQL(players, sampleInfo(), path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSaveToCSV(t *testing.T) {
	players := []models.ResolvedPlayer{
		{GsisID: "00-1234567", Team: "HOU", Opponent: "SEA", Week: 7, Season: 2024, Position: "QB", Status: "S"},
	}
	path := filepath.Join(t.TempDir(), "game.csv")
	require.NoError(t, SaveToCSV(players, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"gsis_id,team,opponent,week,season,position,status\n"+
			"00-1234567,HOU,SEA,7,2024,QB,S\n",
		string(content))
}
