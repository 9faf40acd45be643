package stats

import (
	"slices"
	"sort"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

// StreakPoint is one record on the time axis: a puzzle id, or a day number
// for the timed puzzle.
type StreakPoint struct {
	Axis    int
	Success bool
}

type Streak struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// ComputeStreak finds the run ending at the most recent point and the longest
// run anywhere. A run grows while the axis is contiguous and points succeed;
// a gap or a failure ends it. Both directions give the same result.
func ComputeStreak(points []StreakPoint, dir Direction) Streak {
	if len(points) == 0 {
		return Streak{}
	}
	sorted := slices.Clone(points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Axis < sorted[j].Axis })

	if dir == Descending {
		return walkDescending(sorted)
	}
	return walkAscending(sorted)
}

func walkAscending(points []StreakPoint) Streak {
	var s Streak
	run := 0
	for i, p := range points {
		if i > 0 && p.Axis != points[i-1].Axis+1 {
			run = 0
		}
		if p.Success {
			run++
		} else {
			run = 0
		}
		s.Best = max(s.Best, run)
	}
	s.Current = run
	return s
}

func walkDescending(points []StreakPoint) Streak {
	var s Streak
	run := 0
	open := true
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		if i < len(points)-1 && p.Axis != points[i+1].Axis-1 {
			if open {
				s.Current = run
				open = false
			}
			run = 0
		}
		if p.Success {
			run++
		} else {
			if open {
				s.Current = run
				open = false
			}
			run = 0
		}
		s.Best = max(s.Best, run)
	}
	if open {
		s.Current = run
	}
	return s
}
