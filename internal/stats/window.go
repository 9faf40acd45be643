package stats

import (
	"fmt"
	"puzzlestats/internal/models"
	"slices"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
)

type Window string

const (
	WindowAllTime Window = "alltime"
	WindowCurrent Window = "current"

	DefaultWindowSize = 14
)

func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case "", WindowAllTime:
		return WindowAllTime, nil
	case WindowCurrent, "14day":
		return WindowCurrent, nil
	}
	return "", models.NewValidationError("window", fmt.Sprintf("unknown window %q", s))
}

// Options selects the slice of history a summary covers.
type Options struct {
	Window Window
	Size   int
	Now    time.Time
}

func (o Options) size() int {
	if o.Size <= 0 {
		return DefaultWindowSize
	}
	return o.Size
}

// IDRange is an inclusive range on an integer axis.
type IDRange struct {
	From int
	To   int
}

func (r IDRange) Contains(v int) bool {
	return v >= r.From && v <= r.To
}

// IDWindow picks the range a summary covers on a puzzle id axis. The
// current window is the last size ids ending at the latest one, clamped to
// the earliest id on record.
func IDWindow(ids []int, opts Options) (IDRange, bool) {
	if len(ids) == 0 {
		return IDRange{}, false
	}
	first, last := slices.Min(ids), slices.Max(ids)
	if opts.Window != WindowCurrent {
		return IDRange{From: first, To: last}, true
	}
	return IDRange{From: max(last-(opts.size()-1), first), To: last}, true
}

// DayWindow picks the range on the day-number axis. The current window is
// the size calendar days ending today, independent of what was recorded.
func DayWindow(days []int, opts Options) (IDRange, bool) {
	if opts.Window == WindowCurrent {
		today, _ := models.DayNumber(opts.Now.Format(models.DateLayout))
		return IDRange{From: today - (opts.size() - 1), To: today}, true
	}
	if len(days) == 0 {
		return IDRange{}, false
	}
	return IDRange{From: slices.Min(days), To: slices.Max(days)}, true
}

// Missed counts axis values inside r that carry no record, bounded below by
// the first value the player ever recorded.
func Missed(r IDRange, present []int) int {
	if len(present) == 0 {
		return 0
	}
	from := max(r.From, slices.Min(present))
	if from > r.To || from < 0 {
		return 0
	}
	expected := roaring.New()
	expected.AddRange(uint64(from), uint64(r.To)+1)
	seen := roaring.New()
	for _, v := range present {
		if v >= 0 {
			seen.Add(uint32(v))
		}
	}
	expected.AndNot(seen)
	return int(expected.GetCardinality())
}
