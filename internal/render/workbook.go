package render

import (
	"bytes"
	"fmt"
	"puzzlestats/internal/models"
	"puzzlestats/internal/services"
	"puzzlestats/internal/stats"

	"github.com/xuri/excelize/v2"
)

const PlayersSheet = "Players"

// Board is one game's full ranking.
type Board struct {
	Game    models.GameType
	Entries []stats.Entry
}

var (
	boardHeader  = []any{"Rank", "User ID", "Player", "Average", "Sample"}
	playerHeader = []any{"Game", "User ID", "Player", "Window", "Count", "Wins", "Win rate", "Mean", "Missed", "Current streak", "Best streak"}
)

func BoardSheet(game models.GameType) string {
	return game.Title() + " Leaderboard"
}

// Workbook writes one sheet per leaderboard followed by every player summary.
func Workbook(boards []Board, players []services.UserSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	first := true
	for _, board := range boards {
		sheet := BoardSheet(board.Game)
		if err := addSheet(f, sheet, first); err != nil {
			return nil, err
		}
		first = false

		rows := make([][]any, 0, len(board.Entries))
		for _, e := range board.Entries {
			rows = append(rows, []any{e.Rank, e.UserID, e.Username, e.Average, e.Sample})
		}
		if err := writeTable(f, sheet, boardHeader, rows, bold); err != nil {
			return nil, err
		}
	}

	if err := addSheet(f, PlayersSheet, first); err != nil {
		return nil, err
	}
	rows := make([][]any, 0, len(players))
	for _, p := range players {
		var mean any = p.Mean.String()
		if p.Mean.Valid {
			mean = p.Mean.Rounded()
		}
		rows = append(rows, []any{
			p.Game.Title(), p.UserID, p.Username, string(p.Window),
			p.Count, p.Wins, p.WinRate, mean, p.Missed, p.Streak.Current, p.Streak.Best,
		})
	}
	if err := writeTable(f, PlayersSheet, playerHeader, rows, bold); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

// addSheet renames the default sheet for the first one so the workbook has
// no empty leftover.
func addSheet(f *excelize.File, name string, first bool) error {
	if first {
		return f.SetSheetName(f.GetSheetName(0), name)
	}
	_, err := f.NewSheet(name)
	return err
}

func writeTable(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// Collect gathers what the workbook holds, game by game: the current
// leaderboards and every all-time player summary.
func Collect(s services.StatsServiceInterface) ([]Board, []services.UserSummary) {
	boards := make([]Board, 0, len(models.Games))
	var players []services.UserSummary
	for _, game := range models.Games {
		boards = append(boards, Board{Game: game, Entries: s.Ranking(game)})
		players = append(players, s.Summaries(game, stats.WindowAllTime)...)
	}
	return boards, players
}
