package schedule

import (
	"sort"
	"sync"
	"time"

	"github.com/bookingbot/server/internal/assistant/model"
)

// Store is an in-memory booking calendar with a fixed daily slot catalog.
// All methods are safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	slots       []string
	workingDays map[time.Weekday]bool
	windowDays  int
	// bookings[date][time] = user id
	bookings map[string]map[string]string
	now      func() time.Time
}

func NewStore(cfg model.ScheduleConfig) *Store {
	return newStoreAt(cfg, time.Now)
}

func newStoreAt(cfg model.ScheduleConfig, now func() time.Time) *Store {
	s := &Store{
		slots:       cfg.Slots,
		workingDays: map[time.Weekday]bool{},
		windowDays:  cfg.WindowDays,
		bookings:    map[string]map[string]string{},
		now:         now,
	}
	for _, d := range cfg.WorkingDays {
		s.workingDays[time.Weekday(d%7)] = true
	}
	return s
}

// AvailableSlots returns the slots not yet booked on the given date.
func (s *Store) AvailableSlots(date string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.availableLocked(date)
}

func (s *Store) availableLocked(date string) []string {
	booked := s.bookings[date]
	out := make([]string, 0, len(s.slots))
	for _, slot := range s.slots {
		if _, taken := booked[slot]; !taken {
			out = append(out, slot)
		}
	}
	return out
}

// Book reserves a slot for the user. It reports false when the slot is not
// in the catalog or already taken; the check and the insert happen under
// the same lock so two users cannot claim one slot.
func (s *Store) Book(date, slot, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.knownSlot(slot) {
		return false
	}
	day := s.bookings[date]
	if day == nil {
		day = map[string]string{}
		s.bookings[date] = day
	}
	if _, taken := day[slot]; taken {
		return false
	}
	day[slot] = userID
	return true
}

// Cancel removes the user's booking. It reports false when no such booking
// exists or the slot belongs to another user.
func (s *Store) Cancel(date, slot, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.bookings[date]
	if !ok {
		return false
	}
	owner, ok := day[slot]
	if !ok || owner != userID {
		return false
	}
	delete(day, slot)
	if len(day) == 0 {
		delete(s.bookings, date)
	}
	return true
}

// UserBookings returns the user's bookings sorted by date then time.
func (s *Store) UserBookings(userID string) []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Booking
	for date, day := range s.bookings {
		for slot, owner := range day {
			if owner == userID {
				out = append(out, model.Booking{Date: date, Time: slot, UserID: userID})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out
}

// Upcoming returns per-day availability for the configured window,
// skipping non-working days. The window starts tomorrow.
func (s *Store) Upcoming() []model.DayAvailability {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	out := make([]model.DayAvailability, 0, s.windowDays)
	for i := 1; i <= s.windowDays; i++ {
		day := today.AddDate(0, 0, i)
		if !s.workingDays[day.Weekday()] {
			continue
		}
		date := day.Format("2006-01-02")
		out = append(out, model.DayAvailability{
			Date:    date,
			Weekday: day.Weekday().String(),
			Slots:   s.availableLocked(date),
		})
	}
	return out
}

func (s *Store) knownSlot(slot string) bool {
	for _, known := range s.slots {
		if known == slot {
			return true
		}
	}
	return false
}
