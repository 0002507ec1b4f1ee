package dialog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingbot/server/internal/assistant/model"
)

func TestResponseSelectorConstruction(t *testing.T) {
	_, err := NewResponseSelector()
	assert.NoError(t, err)
}

func TestResponseSelectorRejectsMismatchedTemplates(t *testing.T) {
	_, err := newResponseSelector(map[model.ResponseKey]template{
		"bad": {text: "hello {name}"},
	})
	assert.Error(t, err, "undeclared placeholder must fail construction")

	_, err = newResponseSelector(map[model.ResponseKey]template{
		"bad": {text: "hello", required: []string{"name"}},
	})
	assert.Error(t, err, "unused declared placeholder must fail construction")
}

func TestRenderFillsPlaceholders(t *testing.T) {
	s, err := NewResponseSelector()
	require.NoError(t, err)

	got := s.Render(KeyBookingConfirmed, map[string]string{"date": "2025-01-16", "time": "10:00"})
	assert.Contains(t, got, "2025-01-16")
	assert.Contains(t, got, "10:00")
	assert.NotContains(t, got, "{date}")
}

func TestRenderMissingParamReturnsRawTemplate(t *testing.T) {
	s, err := NewResponseSelector()
	require.NoError(t, err)

	got := s.Render(KeyBookingConfirmed, map[string]string{"date": "2025-01-16"})
	assert.Contains(t, got, "{time}", "missing param must soft-fail to the raw template")
}

func TestRenderUnknownKey(t *testing.T) {
	s, err := NewResponseSelector()
	require.NoError(t, err)

	got := s.Render("no_such_key", nil)
	assert.Contains(t, got, "rephrase")
}

func TestComposeSlotsForDate(t *testing.T) {
	s, err := NewResponseSelector()
	require.NoError(t, err)

	msg := s.Compose(&model.Outcome{
		ResponseKey: KeySlotsForDate,
		Params:      map[string]string{"date": "2025-01-16"},
		Slots:       []string{"09:00", "10:00"},
	})

	assert.Contains(t, msg, "2025-01-16")
	assert.Contains(t, msg, "09:00, 10:00")
	assert.Contains(t, msg, "What time would you prefer?")
}

func TestComposeCancelListIsNumbered(t *testing.T) {
	s, err := NewResponseSelector()
	require.NoError(t, err)

	msg := s.Compose(&model.Outcome{
		ResponseKey: KeyCancelList,
		Bookings: []model.Booking{
			{Date: "2025-01-16", Time: "10:00"},
			{Date: "2025-01-17", Time: "09:00"},
		},
	})

	assert.Contains(t, msg, "1. 2025-01-16 at 10:00")
	assert.Contains(t, msg, "2. 2025-01-17 at 09:00")
}

func TestComposeBookingListEmpty(t *testing.T) {
	s, err := NewResponseSelector()
	require.NoError(t, err)

	msg := s.Compose(&model.Outcome{ResponseKey: KeyBookingList})
	assert.Contains(t, msg, "don't have any bookings")
}

func TestComposeSchedule(t *testing.T) {
	s, err := NewResponseSelector()
	require.NoError(t, err)

	msg := s.Compose(&model.Outcome{
		ResponseKey: KeySchedule,
		Schedule: []model.DayAvailability{
			{Date: "2025-01-16", Weekday: "Thursday", Slots: []string{"09:00"}},
			{Date: "2025-01-17", Weekday: "Friday", Slots: nil},
		},
	})

	assert.Contains(t, msg, "Thursday (2025-01-16):")
	assert.Contains(t, msg, "09:00")
	assert.Contains(t, msg, "Friday (2025-01-17):")
	assert.Contains(t, msg, "No slots available")
}

func TestComposePlainKeyPassesThrough(t *testing.T) {
	s, err := NewResponseSelector()
	require.NoError(t, err)

	msg := s.Compose(&model.Outcome{ResponseKey: KeyGreeting})
	assert.True(t, strings.HasPrefix(msg, "Hello!"))
}
