package stats

import (
	"puzzlestats/internal/models"
	"sort"
)

const DefaultPageSize = 10

// Candidate is one player's window summary, fed in user insertion order.
type Candidate struct {
	UserID   string
	Username string
	Summary  Summary
}

type Entry struct {
	Rank     int     `json:"rank"`
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Average  float64 `json:"average"`
	Sample   int     `json:"sample"`
}

// Rank orders candidates by their rounded average. Ties keep the input
// order, and players without a sample in the window are left out.
func Rank(game models.GameType, candidates []Candidate) []Entry {
	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		if c.Summary.Sample == 0 || !c.Summary.Mean.Valid {
			continue
		}
		entries = append(entries, Entry{
			UserID:   c.UserID,
			Username: c.Username,
			Average:  c.Summary.Mean.Rounded(),
			Sample:   c.Summary.Sample,
		})
	}

	lower := game.LowerIsBetter()
	sort.SliceStable(entries, func(i, j int) bool {
		if lower {
			return entries[i].Average < entries[j].Average
		}
		return entries[i].Average > entries[j].Average
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

type Page struct {
	Number  int     `json:"page"`
	Pages   int     `json:"pages"`
	Total   int     `json:"total"`
	Entries []Entry `json:"entries"`
}

// Paginate returns page n (1-based), clamped into range.
func Paginate(entries []Entry, n, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (len(entries) + size - 1) / size
	if pages == 0 {
		return Page{Number: 1, Entries: []Entry{}}
	}
	n = min(max(n, 1), pages)
	start := (n - 1) * size
	end := min(start+size, len(entries))
	return Page{Number: n, Pages: pages, Total: len(entries), Entries: entries[start:end]}
}
