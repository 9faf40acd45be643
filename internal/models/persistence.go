package models

import (
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// LegacyStorage is the unversioned document written by earlier deployments.
// Wordle failures may be stored as guesses 7.5 without a failed flag,
// Connections records may lack purple_first, and Mini may be keyed by a
// sequential number instead of a date.
type LegacyStorage struct {
	Users map[string]*LegacyUser `json:"users"`
}

type LegacyUser struct {
	Username    string                    `json:"username"`
	Wordle      map[string]LegacyGuess    `json:"wordle"`
	Connections map[string]LegacyGrouping `json:"connections"`
	Mini        map[string]any            `json:"mini"`
}

type LegacyGuess struct {
	Guesses float64 `json:"guesses"`
	Failed  *bool   `json:"failed"`
}

type LegacyGrouping struct {
	Mistakes    int   `json:"mistakes"`
	Score       int   `json:"score"`
	PurpleFirst *bool `json:"purple_first"`
}

type MigrationReport struct {
	Users          int
	Wordle         int
	Connections    int
	Mini           int
	DroppedRecords int
}

// Migrate converts the legacy document into the current schema.
func (l *LegacyStorage) Migrate() (*Storage, MigrationReport) {
	var report MigrationReport
	out := NewStorage()

	for _, id := range sortedKeys(l.Users) {
		lu := l.Users[id]
		if lu == nil {
			continue
		}
		u := NewUser(lu.Username)

		for key, g := range lu.Wordle {
			puzzle, ok := legacyPuzzleKey(key)
			if !ok {
				report.DroppedRecords++
				continue
			}
			u.Wordle[puzzle] = migrateGuess(g)
			report.Wordle++
		}

		for key, c := range lu.Connections {
			puzzle, ok := legacyPuzzleKey(key)
			if !ok {
				report.DroppedRecords++
				continue
			}
			rec := GroupingRecord{Mistakes: min(max(c.Mistakes, 0), MaxMistakes), Score: c.Score}
			if c.PurpleFirst != nil {
				rec.PurpleFirst = *c.PurpleFirst
			}
			u.Connections[puzzle] = rec
			report.Connections++
		}

		for key, v := range lu.Mini {
			if _, ok := DayNumber(key); !ok {
				report.DroppedRecords++
				continue
			}
			seconds, err := cast.ToIntE(v)
			if err != nil || seconds < 0 {
				report.DroppedRecords++
				continue
			}
			u.Mini[key] = seconds
			report.Mini++
		}

		out.Users[id] = u
		out.Order = append(out.Order, id)
		report.Users++
	}

	return out, report
}

func migrateGuess(g LegacyGuess) GuessRecord {
	failed := g.Guesses > MaxGuesses || g.Guesses < 1
	if g.Failed != nil {
		failed = *g.Failed
	}
	if failed {
		return GuessRecord{Guesses: FailedGuesses, Failed: true}
	}
	return GuessRecord{Guesses: int(g.Guesses)}
}

func legacyPuzzleKey(key string) (int, bool) {
	n, err := cast.ToIntE(strings.ReplaceAll(strings.TrimSpace(key), ",", ""))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
