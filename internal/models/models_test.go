package models

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_Normalize(t *testing.T) {
	s := &Storage{
		Order: []string{"b", "ghost", "b"},
		Users: map[string]*User{
			"a":    {Username: "A"},
			"b":    {Username: "B"},
			"c":    {Username: "C"},
			"nil!": nil,
		},
	}
	s.Normalize()

	assert.Equal(t, StorageVersion, s.Version)
	assert.Equal(t, []string{"b", "a", "c"}, s.Order)
	assert.NotContains(t, s.Users, "nil!")
	assert.NotNil(t, s.Users["a"].Wordle)
	assert.NotNil(t, s.Users["a"].Connections)
	assert.NotNil(t, s.Users["a"].Mini)
}

func TestStorage_NormalizeEmpty(t *testing.T) {
	var s Storage
	s.Normalize()
	assert.NotNil(t, s.Users)
	assert.Empty(t, s.Order)
}

func TestLegacyStorage_Migrate(t *testing.T) {
	doc := `{
		"users": {
			"u2": {
				"username": "bob",
				"wordle": {"1,200": {"guesses": 7.5}, "1201": {"guesses": 3, "failed": false}, "-4": {"guesses": 2}},
				"connections": {"400": {"mistakes": 6, "score": 50, "purple_first": true}, "401": {"mistakes": 0, "score": 95}},
				"mini": {"2025-07-01": 42, "2025-07-02": "75", "7": 30, "2025-07-03": "slow"}
			},
			"u1": {"username": "alice"}
		}
	}`
	var legacy LegacyStorage
	require.NoError(t, json.Unmarshal([]byte(doc), &legacy))

	storage, report := legacy.Migrate()

	assert.Equal(t, []string{"u1", "u2"}, storage.Order)
	assert.Equal(t, MigrationReport{Users: 2, Wordle: 2, Connections: 2, Mini: 2, DroppedRecords: 3}, report)

	bob := storage.Users["u2"]
	assert.Equal(t, GuessRecord{Guesses: FailedGuesses, Failed: true}, bob.Wordle[1200])
	assert.Equal(t, GuessRecord{Guesses: 3}, bob.Wordle[1201])
	assert.Equal(t, GroupingRecord{Mistakes: MaxMistakes, Score: 50, PurpleFirst: true}, bob.Connections[400])
	assert.False(t, bob.Connections[401].PurpleFirst)
	assert.Equal(t, map[string]int{"2025-07-01": 42, "2025-07-02": 75}, bob.Mini)

	alice := storage.Users["u1"]
	assert.Empty(t, alice.Wordle)
	assert.NotNil(t, alice.Mini)
}

func TestMigrateGuess_ExplicitFailedWins(t *testing.T) {
	failed := true
	assert.Equal(t, GuessRecord{Guesses: FailedGuesses, Failed: true}, migrateGuess(LegacyGuess{Guesses: 4, Failed: &failed}))
	assert.Equal(t, GuessRecord{Guesses: FailedGuesses, Failed: true}, migrateGuess(LegacyGuess{Guesses: 0}))
	assert.Equal(t, GuessRecord{Guesses: 6}, migrateGuess(LegacyGuess{Guesses: 6}))
}

func TestRecords(t *testing.T) {
	assert.True(t, GuessRecord{Guesses: 6}.Won())
	assert.False(t, GuessRecord{Guesses: FailedGuesses, Failed: true}.Won())

	assert.True(t, GroupingRecord{Mistakes: 3}.Won())
	assert.False(t, GroupingRecord{Mistakes: 4}.Won())
	assert.True(t, GroupingRecord{Score: 95}.Perfect())
	assert.False(t, GroupingRecord{Score: 94}.Perfect())
	assert.True(t, GroupingRecord{Score: 99}.ReverseRainbow())
}

func TestDayNumber(t *testing.T) {
	a, ok := DayNumber("2025-07-01")
	require.True(t, ok)
	b, ok := DayNumber("2025-07-02")
	require.True(t, ok)
	assert.Equal(t, 1, b-a)

	_, ok = DayNumber("12")
	assert.False(t, ok)
}

func TestUser_CloneIsDeep(t *testing.T) {
	u := NewUser("ana")
	u.Wordle[1] = GuessRecord{Guesses: 2}
	c := u.Clone()
	c.Wordle[2] = GuessRecord{Guesses: 3}

	assert.Len(t, u.Wordle, 1)
	assert.Equal(t, 1, u.Records(GameWordle))
	assert.Equal(t, 0, u.Records(GameMini))
}

func TestParseGameType(t *testing.T) {
	g, err := ParseGameType(" Wordle ")
	require.NoError(t, err)
	assert.Equal(t, GameWordle, g)
	assert.Equal(t, "Connections", GameConnections.Title())
	assert.False(t, GameConnections.LowerIsBetter())
	assert.True(t, GameMini.LowerIsBetter())

	_, err = ParseGameType("chess")
	assert.True(t, errors.Is(err, ErrUnknownGame))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("time", "use seconds or mm:ss")
	assert.Equal(t, "time: use seconds or mm:ss", err.Error())
	assert.Equal(t, "oops", NewValidationError("", "oops").Error())
}
