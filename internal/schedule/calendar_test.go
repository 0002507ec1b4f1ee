package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingbot/server/internal/assistant/model"
)

func testConfig() model.ScheduleConfig {
	return model.ScheduleConfig{
		Slots:          []string{"09:00", "10:00", "11:00"},
		WorkingDays:    []int{1, 2, 3, 4, 5},
		MaxAdvanceDays: 30,
		WindowDays:     7,
	}
}

func TestBookSlotUniqueness(t *testing.T) {
	s := NewStore(testConfig())

	assert.True(t, s.Book("2025-01-16", "10:00", "alice"))
	assert.False(t, s.Book("2025-01-16", "10:00", "bob"), "second booking for the same slot must fail")

	available := s.AvailableSlots("2025-01-16")
	assert.NotContains(t, available, "10:00")
	assert.Contains(t, available, "09:00")
}

func TestBookRejectsUnknownSlot(t *testing.T) {
	s := NewStore(testConfig())
	assert.False(t, s.Book("2025-01-16", "23:00", "alice"))
}

func TestCancelRequiresOwnership(t *testing.T) {
	s := NewStore(testConfig())
	require.True(t, s.Book("2025-01-16", "10:00", "alice"))

	assert.False(t, s.Cancel("2025-01-16", "10:00", "bob"))
	assert.False(t, s.Cancel("2025-01-16", "09:00", "alice"))
	assert.True(t, s.Cancel("2025-01-16", "10:00", "alice"))

	assert.Contains(t, s.AvailableSlots("2025-01-16"), "10:00")
}

func TestUserBookingsSorted(t *testing.T) {
	s := NewStore(testConfig())
	require.True(t, s.Book("2025-01-17", "09:00", "alice"))
	require.True(t, s.Book("2025-01-16", "11:00", "alice"))
	require.True(t, s.Book("2025-01-16", "09:00", "alice"))
	require.True(t, s.Book("2025-01-16", "10:00", "bob"))

	got := s.UserBookings("alice")
	require.Len(t, got, 3)
	assert.Equal(t, model.Booking{Date: "2025-01-16", Time: "09:00", UserID: "alice"}, got[0])
	assert.Equal(t, model.Booking{Date: "2025-01-16", Time: "11:00", UserID: "alice"}, got[1])
	assert.Equal(t, model.Booking{Date: "2025-01-17", Time: "09:00", UserID: "alice"}, got[2])
}

func TestUpcomingSkipsNonWorkingDays(t *testing.T) {
	// 2025-01-15 is a Wednesday; the 7-day window from tomorrow covers
	// Thu, Fri, Sat, Sun, Mon, Tue, Wed.
	now := func() time.Time {
		return time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)
	}
	s := newStoreAt(testConfig(), now)
	require.True(t, s.Book("2025-01-16", "10:00", "alice"))

	days := s.Upcoming()
	require.Len(t, days, 5, "weekend days are excluded")

	assert.Equal(t, "2025-01-16", days[0].Date)
	assert.Equal(t, "Thursday", days[0].Weekday)
	assert.NotContains(t, days[0].Slots, "10:00")
	assert.Contains(t, days[0].Slots, "09:00")

	assert.Equal(t, "2025-01-17", days[1].Date)
	assert.Equal(t, "2025-01-20", days[2].Date, "weekend skipped")
	assert.Equal(t, "2025-01-22", days[4].Date)
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	s := NewStore(testConfig())

	const workers = 16
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		go func() {
			results <- s.Book("2025-01-16", "10:00", "alice")
		}()
	}

	wins := 0
	for i := 0; i < workers; i++ {
		if <-results {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent booking may succeed")
}
