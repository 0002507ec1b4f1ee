package nlu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-01-15 is a Wednesday.
func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestDateExplicitFormats(t *testing.T) {
	e := NewDateTimeExtractorAt(fixedClock(2025, time.January, 15))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "iso format", input: "book me for 2025-10-05", want: "2025-10-05"},
		{name: "dotted format", input: "book me for 05.10.2025", want: "2025-10-05"},
		{name: "slash format", input: "book me for 05/10/2025", want: "2025-10-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Date(tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateInvalidNumericsFallThrough(t *testing.T) {
	e := NewDateTimeExtractorAt(fixedClock(2025, time.January, 15))

	for _, input := range []string{"2025-02-30", "2025-13-01", "32.01.2025"} {
		_, ok := e.Date(input)
		assert.False(t, ok, "expected no date for %q", input)
	}
}

func TestDateRelativeKeywords(t *testing.T) {
	e := NewDateTimeExtractorAt(fixedClock(2025, time.January, 15))

	tests := []struct {
		input string
		want  string
	}{
		{input: "book for today", want: "2025-01-15"},
		{input: "book for tomorrow", want: "2025-01-16"},
		{input: "the day after tomorrow works", want: "2025-01-17"},
		{input: "it was yesterday", want: "2025-01-14"},
	}

	for _, tt := range tests {
		got, ok := e.Date(tt.input)
		assert.True(t, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestDateWeekdayResolvesStrictlyAfterToday(t *testing.T) {
	// Today is Wednesday: Friday is two days away.
	wed := NewDateTimeExtractorAt(fixedClock(2025, time.January, 15))
	got, ok := wed.Date("see you friday")
	assert.True(t, ok)
	assert.Equal(t, "2025-01-17", got)

	// Today is Friday: "friday" rolls a full week, never today.
	fri := NewDateTimeExtractorAt(fixedClock(2025, time.January, 17))
	got, ok = fri.Date("book friday")
	assert.True(t, ok)
	assert.Equal(t, "2025-01-24", got)

	// Three-letter abbreviation, on word boundary only.
	got, ok = wed.Date("maybe mon then")
	assert.True(t, ok)
	assert.Equal(t, "2025-01-20", got)

	_, ok = wed.Date("next month maybe")
	assert.False(t, ok, "substring inside another word must not match a weekday")
}

func TestDatePrecedence(t *testing.T) {
	e := NewDateTimeExtractorAt(fixedClock(2025, time.January, 15))

	// Explicit numeric date beats the weekday mention.
	got, ok := e.Date("monday 2025-10-05")
	assert.True(t, ok)
	assert.Equal(t, "2025-10-05", got)

	// Weekday beats the "next week" phrase.
	got, ok = e.Date("monday next week")
	assert.True(t, ok)
	assert.Equal(t, "2025-01-20", got)
}

func TestDateNextWeek(t *testing.T) {
	e := NewDateTimeExtractorAt(fixedClock(2025, time.January, 15))

	got, ok := e.Date("sometime next week")
	assert.True(t, ok)
	assert.Equal(t, "2025-01-22", got)

	_, ok = e.Date("no date in here")
	assert.False(t, ok)
}

func TestTimeExtraction(t *testing.T) {
	e := NewDateTimeExtractorAt(fixedClock(2025, time.January, 15))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "colon clock", input: "book at 14:30", want: "14:30"},
		{name: "dot clock", input: "book at 14.30", want: "14:30"},
		{name: "single digit hour", input: "9:05 works", want: "09:05"},
		{name: "at hour pm", input: "at 3 pm please", want: "15:00"},
		{name: "at twelve am", input: "at 12 am", want: "00:00"},
		{name: "at hour bare", input: "at 9", want: "09:00"},
		{name: "morning keyword", input: "in the morning", want: "09:00"},
		{name: "afternoon keyword", input: "afternoon slot", want: "14:00"},
		{name: "evening keyword", input: "evening please", want: "18:00"},
		{name: "night keyword", input: "at night", want: "20:00"},
		{name: "clock beats day part", input: "10:30 in the morning", want: "10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := e.Time(tt.input)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeInvalidNumericsFallThrough(t *testing.T) {
	e := NewDateTimeExtractorAt(fixedClock(2025, time.January, 15))

	_, ok := e.Time("25:99")
	assert.False(t, ok)

	_, ok = e.Time("nothing here")
	assert.False(t, ok)
}
