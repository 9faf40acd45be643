package models

import "time"

const (
	MaxGuesses = 6
	// FailedGuesses is stored for an "X/6" result. It sorts worse than any
	// real guess count and is never averaged.
	FailedGuesses = MaxGuesses + 1

	MaxMistakes         = 4
	PerfectScore        = 95
	ReverseRainbowScore = 99

	DateLayout = "2006-01-02"
)

type GuessRecord struct {
	Guesses int  `json:"guesses"`
	Failed  bool `json:"failed"`
}

func (r GuessRecord) Won() bool {
	return !r.Failed
}

type GroupingRecord struct {
	Mistakes    int  `json:"mistakes"`
	Score       int  `json:"score"`
	PurpleFirst bool `json:"purple_first"`
}

// Won is true for anything short of a total loss.
func (r GroupingRecord) Won() bool {
	return r.Mistakes < MaxMistakes
}

func (r GroupingRecord) Perfect() bool {
	return r.Score >= PerfectScore
}

func (r GroupingRecord) ReverseRainbow() bool {
	return r.Score == ReverseRainbowScore
}

// DayNumber converts a Mini date key into a contiguous day axis.
func DayNumber(date string) (int, bool) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, false
	}
	return int(t.Unix() / 86400), true
}
