package nlu

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bookingbot/server/internal/assistant/model"
)

func newTestExtractor() *EntityExtractor {
	return NewEntityExtractor(NewDateTimeExtractorAt(fixedClock(2025, time.January, 15)))
}

func TestSubjectExtraction(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		input string
		want  string
	}{
		{input: "i need help with math homework", want: "math"},
		{input: "looking for an algebra tutor", want: "math"},
		{input: "english lessons please", want: "english"},
		{input: "python coding classes", want: "programming"},
		{input: "spanish conversation practice", want: "spanish"},
	}

	for _, tt := range tests {
		got, ok := e.Subject(tt.input)
		assert.True(t, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, ok := e.Subject("just a chat")
	assert.False(t, ok)
}

func TestSubjectTableOrderBreaksTies(t *testing.T) {
	e := newTestExtractor()

	// Both subjects present: the earlier table entry wins.
	got, ok := e.Subject("math or english, either works")
	assert.True(t, ok)
	assert.Equal(t, "math", got)
}

func TestTutorNameExtraction(t *testing.T) {
	e := newTestExtractor()

	got, ok := e.TutorName("Find tutor John Smith for me")
	assert.True(t, ok)
	assert.Equal(t, "John Smith", got)

	got, ok = e.TutorName("is Anna available")
	assert.True(t, ok)
	assert.Equal(t, "Anna", got)

	// Weekdays, months and action verbs are never names, alone or as part of
	// a two-token candidate.
	_, ok = e.TutorName("Show Monday please")
	assert.False(t, ok)

	_, ok = e.TutorName("Book Friday if you can")
	assert.False(t, ok)

	// A rejected candidate does not hide a real name later in the text.
	got, ok = e.TutorName("Show Monday slots for Anna Petrova")
	assert.True(t, ok)
	assert.Equal(t, "Anna Petrova", got)

	_, ok = e.TutorName("all lowercase text here")
	assert.False(t, ok)
}

func TestActionExtraction(t *testing.T) {
	e := newTestExtractor()

	tests := []struct {
		input string
		want  string
	}{
		{input: "reserve a slot", want: "book"},
		{input: "remove it please", want: "cancel"},
		{input: "display my options", want: "view"},
	}

	for _, tt := range tests {
		got, ok := e.Action(tt.input)
		assert.True(t, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, ok := e.Action("hello there")
	assert.False(t, ok)
}

func TestExtractAll(t *testing.T) {
	e := newTestExtractor()

	raw := "Book math with Anna tomorrow at 10:00"
	bag := e.ExtractAll(raw, "book math with anna tomorrow at 10:00")

	assert.Equal(t, "math", bag[model.EntitySubject])
	assert.Equal(t, "Anna", bag[model.EntityTutorName])
	assert.Equal(t, "2025-01-16", bag[model.EntityDate])
	assert.Equal(t, "10:00", bag[model.EntityTime])
	assert.Equal(t, "book", bag[model.EntityAction])
}

func TestExtractAllOmitsAbsentKinds(t *testing.T) {
	e := newTestExtractor()

	bag := e.ExtractAll("hello there", "hello there")
	assert.False(t, bag.Has(model.EntitySubject))
	assert.False(t, bag.Has(model.EntityDate))
	assert.False(t, bag.Has(model.EntityTime))
}
