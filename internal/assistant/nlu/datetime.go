package nlu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateTimeExtractor parses calendar dates and clock times from free text.
// Results are canonical strings: dates as YYYY-MM-DD, times as HH:MM (24h).
// The reference clock is injectable so tests can pin "now".
type DateTimeExtractor struct {
	now func() time.Time
}

// NewDateTimeExtractor returns an extractor using the system clock.
func NewDateTimeExtractor() *DateTimeExtractor {
	return &DateTimeExtractor{now: time.Now}
}

// NewDateTimeExtractorAt returns an extractor with a fixed clock source.
func NewDateTimeExtractorAt(now func() time.Time) *DateTimeExtractor {
	return &DateTimeExtractor{now: now}
}

var explicitDatePatterns = []struct {
	re        *regexp.Regexp
	yearFirst bool
}{
	{regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`), true},
	{regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`), false},
	{regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`), false},
}

// Longest phrase first so "day after tomorrow" is not shadowed by "tomorrow".
var relativeDates = []struct {
	phrase string
	delta  int
}{
	{"day after tomorrow", 2},
	{"tomorrow", 1},
	{"yesterday", -1},
	{"today", 0},
}

var weekdayPattern = regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tue|wed|thu|fri|sat|sun)\b`)

var weekdayIndex = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// Date extracts a calendar date. Rules are tried in decreasing order of
// specificity and the first match wins: explicit numeric dates, relative
// keywords, weekday names (resolving to the next occurrence strictly after
// today), then the literal phrase "next week". Invalid numerics are treated
// as no match, never as an error.
func (e *DateTimeExtractor) Date(text string) (string, bool) {
	lower := strings.ToLower(text)
	today := e.now()

	for _, p := range explicitDatePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var year, month, day int
		if p.yearFirst {
			year, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			day, _ = strconv.Atoi(m[3])
		} else {
			day, _ = strconv.Atoi(m[1])
			month, _ = strconv.Atoi(m[2])
			year, _ = strconv.Atoi(m[3])
		}
		if d, ok := validDate(year, month, day); ok {
			return d.Format("2006-01-02"), true
		}
	}

	for _, r := range relativeDates {
		if strings.Contains(lower, r.phrase) {
			return today.AddDate(0, 0, r.delta).Format("2006-01-02"), true
		}
	}

	if m := weekdayPattern.FindStringSubmatch(lower); m != nil {
		target := weekdayIndex[m[1]]
		ahead := (int(target) - int(today.Weekday()) + 7) % 7
		if ahead == 0 {
			// Same weekday as today resolves to next week, never today.
			ahead = 7
		}
		return today.AddDate(0, 0, ahead).Format("2006-01-02"), true
	}

	if strings.Contains(lower, "next week") {
		return today.AddDate(0, 0, 7).Format("2006-01-02"), true
	}

	return "", false
}

var (
	clockPattern  = regexp.MustCompile(`(\d{1,2})[:.](\d{2})`)
	atHourPattern = regexp.MustCompile(`(?:at)\s+(\d{1,2})`)
)

var dayParts = []struct {
	word  string
	clock string
}{
	{"morning", "09:00"},
	{"afternoon", "14:00"},
	{"evening", "18:00"},
	{"night", "20:00"},
}

// Time extracts a clock time: an explicit HH:MM / HH.MM, an "at N" hour with
// optional am/pm elsewhere in the text, or a day-part keyword. First matching
// rule wins; out-of-range numerics fall through to the next rule.
func (e *DateTimeExtractor) Time(text string) (string, bool) {
	lower := strings.ToLower(text)

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
			return fmt.Sprintf("%02d:%02d", hour, minute), true
		}
	}

	if m := atHourPattern.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if strings.Contains(lower, "pm") && hour < 12 {
			hour += 12
		} else if strings.Contains(lower, "am") && hour == 12 {
			hour = 0
		}
		if hour >= 0 && hour < 24 {
			return fmt.Sprintf("%02d:00", hour), true
		}
	}

	for _, p := range dayParts {
		if strings.Contains(lower, p.word) {
			return p.clock, true
		}
	}

	return "", false
}

func validDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
