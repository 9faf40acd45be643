package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pts(axis ...int) []StreakPoint {
	out := make([]StreakPoint, len(axis))
	for i, a := range axis {
		out[i] = StreakPoint{Axis: a, Success: true}
	}
	return out
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name   string
		points []StreakPoint
		want   Streak
	}{
		{"empty", nil, Streak{}},
		{"single success", pts(5), Streak{Current: 1, Best: 1}},
		{"single failure", []StreakPoint{{Axis: 5}}, Streak{}},
		{"contiguous", pts(1, 2, 3, 4), Streak{Current: 4, Best: 4}},
		{"gap resets", pts(1, 2, 3, 5, 6), Streak{Current: 2, Best: 3}},
		{"unsorted input", pts(6, 1, 5, 3, 2), Streak{Current: 2, Best: 3}},
		{
			"failure resets",
			[]StreakPoint{{1, true}, {2, true}, {3, false}, {4, true}},
			Streak{Current: 1, Best: 2},
		},
		{
			"ends on failure",
			[]StreakPoint{{1, true}, {2, true}, {3, true}, {4, false}},
			Streak{Current: 0, Best: 3},
		},
		{
			"current is best",
			[]StreakPoint{{10, true}, {12, true}, {13, true}, {14, true}},
			Streak{Current: 3, Best: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.points, Ascending))
			assert.Equal(t, tt.want, ComputeStreak(tt.points, Descending))
		})
	}
}

func TestComputeStreak_DirectionInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		var points []StreakPoint
		axis := rng.Intn(5)
		for n := rng.Intn(30); n > 0; n-- {
			axis += 1 + rng.Intn(2)*rng.Intn(3)
			points = append(points, StreakPoint{Axis: axis, Success: rng.Intn(4) > 0})
		}
		rng.Shuffle(len(points), func(a, b int) { points[a], points[b] = points[b], points[a] })

		asc := ComputeStreak(points, Ascending)
		desc := ComputeStreak(points, Descending)
		assert.Equal(t, asc, desc, "points %v", points)
		assert.LessOrEqual(t, asc.Current, asc.Best)
	}
}

func TestComputeStreak_DoesNotReorderInput(t *testing.T) {
	points := pts(3, 1, 2)
	ComputeStreak(points, Descending)
	assert.Equal(t, pts(3, 1, 2), points)
}
