// Package scoring turns extracted results into canonical records.
package scoring

import (
	"fmt"
	"puzzlestats/internal/models"
	"slices"
	"strconv"
)

// ScoreGuess maps a Wordle outcome token to a record.
func ScoreGuess(outcome string) (models.GuessRecord, error) {
	if outcome == "X" {
		return models.GuessRecord{Guesses: models.FailedGuesses, Failed: true}, nil
	}
	n, err := strconv.Atoi(outcome)
	if err != nil || n < 1 || n > models.MaxGuesses {
		return models.GuessRecord{}, fmt.Errorf("invalid wordle outcome %q", outcome)
	}
	return models.GuessRecord{Guesses: n}, nil
}

// GroupingResult is the scored grid plus the intermediate values.
type GroupingResult struct {
	Record models.GroupingRecord
	Groups []models.Tile
	Solved int
	Base   int
	Bonus  int
}

type solveKey struct {
	solved, mistakes int
}

var baseScores = map[solveKey]int{
	{4, 0}: 95,
	{4, 1}: 88,
	{4, 2}: 81,
	{4, 3}: 73,
	{2, 4}: 65,
	{1, 4}: 57,
	{0, 4}: 50,
}

const defaultBase = 50

// ScoreGrouping classifies each row as solved (one color) or a mistake and
// scores the grid.
func ScoreGrouping(grid [][]models.Tile) GroupingResult {
	var groups []models.Tile
	mistakes := 0
	for _, row := range grid {
		if len(row) == 0 {
			continue
		}
		if homogeneous(row) {
			groups = append(groups, row[0])
		} else {
			mistakes++
		}
	}

	base := BaseScore(len(groups), mistakes)
	bonus, purpleFirst := OrderBonus(groups)

	return GroupingResult{
		Record: models.GroupingRecord{
			Mistakes:    min(mistakes, models.MaxMistakes),
			Score:       base + bonus,
			PurpleFirst: purpleFirst,
		},
		Groups: groups,
		Solved: len(groups),
		Base:   base,
		Bonus:  bonus,
	}
}

// BaseScore looks up the (solved, mistakes) table. Partial or abandoned
// grids fall back to the minimum base.
func BaseScore(solved, mistakes int) int {
	if base, ok := baseScores[solveKey{solved, mistakes}]; ok {
		return base
	}
	return defaultBase
}

// OrderBonus rewards solving the hardest categories first. The first
// matching rule wins, so a full canonical order always earns 4 even though
// it also starts with the purple-blue pair, mistakes or not.
func OrderBonus(groups []models.Tile) (bonus int, purpleFirst bool) {
	switch {
	case slices.Equal(groups, models.CanonicalOrder):
		return 4, true
	case hasPrefix(groups, models.TilePurple, models.TileBlue):
		return 3, true
	case hasPrefix(groups, models.TileBlue, models.TilePurple):
		return 3, false
	case hasPrefix(groups, models.TilePurple):
		return 2, true
	case hasPrefix(groups, models.TileBlue):
		return 1, false
	default:
		return 0, false
	}
}

func hasPrefix(groups []models.Tile, prefix ...models.Tile) bool {
	return len(groups) >= len(prefix) && slices.Equal(groups[:len(prefix)], prefix)
}

func homogeneous(row []models.Tile) bool {
	for _, t := range row[1:] {
		if t != row[0] {
			return false
		}
	}
	return true
}
