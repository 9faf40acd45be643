package stats

import (
	"puzzlestats/internal/models"
	"sort"
	"strconv"
	"time"
)

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Span struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Summary is one player's view of one game over one window. Streaks always
// cover the full history.
type Summary struct {
	Game         models.GameType `json:"game"`
	Window       Window          `json:"window"`
	Span         Span            `json:"span"`
	Count        int             `json:"count"`
	Wins         int             `json:"wins"`
	WinRate      float64         `json:"winRate"`
	Mean         Mean            `json:"mean"`
	Sample       int             `json:"sample"`
	Missed       int             `json:"missed"`
	Distribution []Bucket        `json:"distribution"`
	Streak       Streak          `json:"streak"`

	Perfects        int     `json:"perfects,omitempty"`
	PurpleFirsts    int     `json:"purpleFirsts,omitempty"`
	ReverseRainbows int     `json:"reverseRainbows,omitempty"`
	PerfectStreak   *Streak `json:"perfectStreak,omitempty"`
	BestSeconds     *int    `json:"bestSeconds,omitempty"`
}

func Summarize(u *models.User, game models.GameType, opts Options) Summary {
	switch game {
	case models.GameWordle:
		return SummarizeGuesses(u.Wordle, opts)
	case models.GameConnections:
		return SummarizeGroupings(u.Connections, opts)
	default:
		return SummarizeTimed(u.Mini, opts)
	}
}

var guessLabels = []string{"1", "2", "3", "4", "5", "6", "X"}

// SummarizeGuesses averages guesses over wins only; a failure counts toward
// the win rate but never toward the mean.
func SummarizeGuesses(records map[int]models.GuessRecord, opts Options) Summary {
	s := Summary{Game: models.GameWordle, Window: windowOf(opts), Distribution: buckets(guessLabels)}
	ids := sortedIDs(records)

	points := make([]StreakPoint, 0, len(ids))
	for _, id := range ids {
		points = append(points, StreakPoint{Axis: id, Success: records[id].Won()})
	}
	s.Streak = ComputeStreak(points, Ascending)

	r, ok := IDWindow(ids, opts)
	if !ok {
		return s
	}
	s.Span = Span{From: strconv.Itoa(r.From), To: strconv.Itoa(r.To)}

	var sum float64
	var present []int
	for _, id := range ids {
		if !r.Contains(id) {
			continue
		}
		rec := records[id]
		present = append(present, id)
		s.Count++
		if rec.Won() {
			s.Wins++
			sum += float64(rec.Guesses)
			if rec.Guesses >= 1 && rec.Guesses <= models.MaxGuesses {
				s.Distribution[rec.Guesses-1].Count++
			}
		} else {
			s.Distribution[len(guessLabels)-1].Count++
		}
	}
	s.WinRate = rate(s.Wins, s.Count)
	s.Mean = MeanOf(sum, s.Wins)
	s.Sample = s.Wins
	s.Missed = Missed(r, present)
	return s
}

var mistakeLabels = []string{"0", "1", "2", "3", "4"}

// SummarizeGroupings averages the score over every record, losses included.
func SummarizeGroupings(records map[int]models.GroupingRecord, opts Options) Summary {
	s := Summary{Game: models.GameConnections, Window: windowOf(opts), Distribution: buckets(mistakeLabels)}
	ids := sortedIDs(records)

	wins := make([]StreakPoint, 0, len(ids))
	perfects := make([]StreakPoint, 0, len(ids))
	for _, id := range ids {
		rec := records[id]
		wins = append(wins, StreakPoint{Axis: id, Success: rec.Won()})
		perfects = append(perfects, StreakPoint{Axis: id, Success: rec.Perfect()})
	}
	s.Streak = ComputeStreak(wins, Ascending)
	perfect := ComputeStreak(perfects, Ascending)
	s.PerfectStreak = &perfect

	r, ok := IDWindow(ids, opts)
	if !ok {
		return s
	}
	s.Span = Span{From: strconv.Itoa(r.From), To: strconv.Itoa(r.To)}

	var sum float64
	var present []int
	for _, id := range ids {
		if !r.Contains(id) {
			continue
		}
		rec := records[id]
		present = append(present, id)
		s.Count++
		sum += float64(rec.Score)
		if rec.Won() {
			s.Wins++
		}
		if rec.Perfect() {
			s.Perfects++
		}
		if rec.PurpleFirst {
			s.PurpleFirsts++
		}
		if rec.ReverseRainbow() {
			s.ReverseRainbows++
		}
		m := min(max(rec.Mistakes, 0), models.MaxMistakes)
		s.Distribution[m].Count++
	}
	s.WinRate = rate(s.Wins, s.Count)
	s.Mean = MeanOf(sum, s.Count)
	s.Sample = s.Count
	s.Missed = Missed(r, present)
	return s
}

var timedLabels = []string{"<1m", "1m", "2m", "3m", "4m", "5m+"}

// SummarizeTimed works on calendar days. Every submitted day counts as a
// success for streaks; the streak breaks only on a missing day.
func SummarizeTimed(records map[string]int, opts Options) Summary {
	s := Summary{Game: models.GameMini, Window: windowOf(opts), Distribution: buckets(timedLabels)}

	byDay := make(map[int]int, len(records))
	days := make([]int, 0, len(records))
	for date, seconds := range records {
		day, ok := models.DayNumber(date)
		if !ok {
			continue
		}
		byDay[day] = seconds
		days = append(days, day)
	}
	sort.Ints(days)

	points := make([]StreakPoint, 0, len(days))
	for _, d := range days {
		points = append(points, StreakPoint{Axis: d, Success: true})
	}
	s.Streak = ComputeStreak(points, Ascending)

	r, ok := DayWindow(days, opts)
	if !ok {
		return s
	}
	s.Span = Span{From: dayString(r.From), To: dayString(r.To)}

	var sum float64
	var present []int
	best := -1
	for _, d := range days {
		if !r.Contains(d) {
			continue
		}
		seconds := byDay[d]
		present = append(present, d)
		s.Count++
		sum += float64(seconds)
		if best < 0 || seconds < best {
			best = seconds
		}
		s.Distribution[min(seconds/60, len(timedLabels)-1)].Count++
	}
	s.Wins = s.Count
	s.WinRate = rate(s.Wins, s.Count)
	s.Mean = MeanOf(sum, s.Count)
	s.Sample = s.Count
	s.Missed = Missed(r, present)
	if best >= 0 {
		s.BestSeconds = &best
	}
	return s
}

func windowOf(opts Options) Window {
	if opts.Window == WindowCurrent {
		return WindowCurrent
	}
	return WindowAllTime
}

func buckets(labels []string) []Bucket {
	out := make([]Bucket, len(labels))
	for i, l := range labels {
		out[i].Label = l
	}
	return out
}

func sortedIDs[V any](records map[int]V) []int {
	ids := make([]int, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func dayString(day int) string {
	return time.Unix(int64(day)*86400, 0).UTC().Format(models.DateLayout)
}
