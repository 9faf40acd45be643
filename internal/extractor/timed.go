package extractor

import (
	"puzzlestats/internal/models"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var (
	secondsPattern = regexp.MustCompile(`^\d{1,5}$`)
	clockPattern   = regexp.MustCompile(`^(\d{1,3}):(\d{2})$`)
)

// ParseDuration accepts a bare number of seconds or mm:ss.
func ParseDuration(input string) (int, error) {
	s := strings.TrimSpace(input)
	if secondsPattern.MatchString(s) {
		return strconv.Atoi(s)
	}
	if m := clockPattern.FindStringSubmatch(s); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		if seconds > 59 {
			return 0, models.NewValidationError("time", "seconds must be between 00 and 59")
		}
		return minutes*60 + seconds, nil
	}
	return 0, models.NewValidationError("time", "use seconds (90) or mm:ss (1:30)")
}

var dateParser = newDateParser()

func newDateParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseDate resolves the Mini date field against now. Empty input means
// today; YYYY-MM-DD and phrases such as "yesterday" or "last monday" are
// accepted. Future dates are rejected.
func ParseDate(input string, now time.Time) (string, error) {
	s := strings.TrimSpace(input)
	today := truncateDay(now)
	if s == "" {
		return today.Format(models.DateLayout), nil
	}

	day, err := time.ParseInLocation(models.DateLayout, s, now.Location())
	if err != nil {
		r, perr := dateParser.Parse(strings.ToLower(s), now)
		if perr != nil || r == nil {
			return "", models.NewValidationError("date", "use YYYY-MM-DD, today or yesterday")
		}
		day = r.Time.In(now.Location())
	}

	day = truncateDay(day)
	if day.After(today) {
		return "", models.NewValidationError("date", "date is in the future")
	}
	return day.Format(models.DateLayout), nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
