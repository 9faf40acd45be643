// Package extractor recognises puzzle result messages and parses the manual
// Mini submission fields.
package extractor

import (
	"puzzlestats/internal/models"
	"regexp"
	"strconv"
	"strings"
)

var (
	guessPattern    = regexp.MustCompile(`Wordle (\d+) ([1-6X])/6`)
	groupingPattern = regexp.MustCompile(`Connections[ \t]*\nPuzzle #(\d+)[ \t]*\n([\s\S]+)`)
)

// Match is a recognised result before scoring.
type Match struct {
	Game     models.GameType
	PuzzleID int
	// Outcome is the Wordle token: "1".."6" or "X".
	Outcome string
	// Grid holds the Connections tile rows that survived filtering.
	Grid [][]models.Tile
}

// Extract returns the first known result signature found in text.
// Wordle is checked before Connections.
func Extract(text string) (Match, bool) {
	content := strings.ReplaceAll(text, "\r\n", "\n")
	content = strings.ReplaceAll(content, ",", "")

	if m := guessPattern.FindStringSubmatch(content); m != nil {
		id, err := strconv.Atoi(m[1])
		if err == nil {
			return Match{Game: models.GameWordle, PuzzleID: id, Outcome: m[2]}, true
		}
	}

	if m := groupingPattern.FindStringSubmatch(content); m != nil {
		id, err := strconv.Atoi(m[1])
		if err != nil {
			return Match{}, false
		}
		grid := TileRows(m[2])
		if len(grid) == 0 {
			return Match{}, false
		}
		return Match{Game: models.GameConnections, PuzzleID: id, Grid: grid}, true
	}

	return Match{}, false
}

// TileRows keeps only lines carrying exactly one attempt's worth of tiles
// and reduces each to its tiles. Blank and decorative lines are dropped,
// including stray squares such as "🟪 gg".
func TileRows(block string) [][]models.Tile {
	var grid [][]models.Tile
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		var row []models.Tile
		for _, r := range line {
			if models.IsTile(r) {
				row = append(row, models.Tile(r))
			}
		}
		if len(row) == models.GridWidth {
			grid = append(grid, row)
		}
	}
	return grid
}
