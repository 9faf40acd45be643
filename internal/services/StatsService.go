package services

import (
	"fmt"
	"puzzlestats/internal/models"
	"puzzlestats/internal/stats"
	"puzzlestats/internal/structures"
	"strconv"
)

type StatsServiceInterface interface {
	Summary(userID string, game models.GameType, window stats.Window) (UserSummary, error)
	Summaries(game models.GameType, window stats.Window) []UserSummary
	Ranking(game models.GameType) []stats.Entry
	Leaderboard(game models.GameType, page int) (stats.Page, error)
	Revision() uint64
	CacheTag(game models.GameType) string
}

type UserSummary struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	stats.Summary
}

type StatsService struct {
	conf    *structures.Config
	records RecordServiceInterface
	clock   Clock
}

func NewStatsService(conf *structures.Config, records RecordServiceInterface, clock Clock) StatsServiceInterface {
	return &StatsService{conf: conf, records: records, clock: clock}
}

func (s *StatsService) options(window stats.Window) stats.Options {
	return stats.Options{Window: window, Size: s.conf.Game.WindowSize, Now: s.clock()}
}

// Summary returns models.ErrNoData when the user has never recorded the game.
func (s *StatsService) Summary(userID string, game models.GameType, window stats.Window) (UserSummary, error) {
	u, ok := s.records.User(userID)
	if !ok || u.Records(game) == 0 {
		return UserSummary{}, fmt.Errorf("%w: %s has no %s results", models.ErrNoData, userID, game.Title())
	}
	return UserSummary{
		UserID:   userID,
		Username: u.Username,
		Summary:  stats.Summarize(u, game, s.options(window)),
	}, nil
}

// Summaries lists every player holding records for game, in first-seen order.
func (s *StatsService) Summaries(game models.GameType, window stats.Window) []UserSummary {
	opts := s.options(window)
	var out []UserSummary
	for _, ref := range s.records.Users() {
		if ref.User.Records(game) == 0 {
			continue
		}
		out = append(out, UserSummary{
			UserID:   ref.ID,
			Username: ref.User.Username,
			Summary:  stats.Summarize(ref.User, game, opts),
		})
	}
	return out
}

// Ranking ranks every player on the current window.
func (s *StatsService) Ranking(game models.GameType) []stats.Entry {
	summaries := s.Summaries(game, stats.WindowCurrent)
	candidates := make([]stats.Candidate, 0, len(summaries))
	for _, us := range summaries {
		candidates = append(candidates, stats.Candidate{UserID: us.UserID, Username: us.Username, Summary: us.Summary})
	}
	return stats.Rank(game, candidates)
}

func (s *StatsService) Leaderboard(game models.GameType, page int) (stats.Page, error) {
	entries := s.Ranking(game)
	if len(entries) == 0 {
		return stats.Page{}, fmt.Errorf("%w: no %s entries", models.ErrNoData, game.Title())
	}
	return stats.Paginate(entries, page, s.conf.Game.PageSize), nil
}

func (s *StatsService) Revision() uint64 {
	return s.records.Revision()
}

// CacheTag names everything a game's responses depend on: the store
// revision, plus the current day for Mini whose window follows the calendar.
func (s *StatsService) CacheTag(game models.GameType) string {
	rev := strconv.FormatUint(s.Revision(), 10)
	if game == models.GameMini {
		return rev + "@" + s.clock().Format(models.DateLayout)
	}
	return rev
}
