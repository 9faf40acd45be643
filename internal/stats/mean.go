// Package stats derives summaries, rolling windows, streaks and
// leaderboards from a player's record history.
package stats

import (
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// Mean is an average that may have no samples. An invalid Mean is the
// "no data" value and renders as N/A.
type Mean struct {
	Value float64
	Valid bool
}

func MeanOf(sum float64, n int) Mean {
	if n <= 0 {
		return Mean{}
	}
	return Mean{Value: sum / float64(n), Valid: true}
}

// Rounded returns the value rounded to two decimals, the precision used
// for display and ranking.
func (m Mean) Rounded() float64 {
	return math.Round(m.Value*100) / 100
}

func (m Mean) String() string {
	if !m.Valid {
		return "N/A"
	}
	return strconv.FormatFloat(m.Rounded(), 'f', -1, 64)
}

func (m Mean) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Rounded())
}

func (m *Mean) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Mean{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Mean{Value: v, Valid: true}
	return nil
}

func rate(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
