package dialog

import (
	"context"

	"github.com/bookingbot/server/internal/assistant/model"
	logx "github.com/bookingbot/server/pkg/logger"
)

// Calendar is the booking collaborator the dialog core consults and mutates.
type Calendar interface {
	AvailableSlots(date string) []string
	Book(date, slot, userID string) bool
	Cancel(date, slot, userID string) bool
	UserBookings(userID string) []model.Booking
	Upcoming() []model.DayAvailability
}

// Machine decides the next dialog state and response for each turn. It
// mutates the session's state and context; persisting the session is the
// caller's job.
type Machine struct {
	calendar  Calendar
	threshold float64
}

func NewMachine(calendar Calendar, confidenceThreshold float64) *Machine {
	return &Machine{calendar: calendar, threshold: confidenceThreshold}
}

func (m *Machine) Decide(ctx context.Context, session *model.Session, u model.Understanding) *model.Outcome {
	merged := session.Context.Merge(u.Entities)
	session.Context = merged

	out := &model.Outcome{
		SessionID:  session.ID,
		Intent:     u.Prediction.Intent,
		Confidence: u.Prediction.Confidence,
		Entities:   u.Entities,
		Context:    merged,
		State:      session.State,
	}

	intent := u.Prediction.Intent
	confident := u.Prediction.Confidence >= m.threshold

	// Greetings and goodbyes interrupt whatever flow is active.
	if confident && intent == model.IntentGreeting {
		out.ResponseKey = KeyGreeting
		return out
	}
	if confident && intent == model.IntentGoodbye {
		session.Reset()
		out.State = session.State
		out.ResponseKey = KeyGoodbye
		return out
	}

	switch session.State {
	case model.StateAwaitingDate:
		return m.handleAwaitingDate(session, merged, out)
	case model.StateAwaitingTime:
		return m.handleAwaitingTime(session, merged, out)
	case model.StateAwaitingCancelTarget:
		return m.handleAwaitingCancel(session, merged, out)
	}

	if !confident {
		logx.Debug().
			Str("intent", string(intent)).
			Float64("confidence", u.Prediction.Confidence).
			Msg("intent below confidence threshold")
		out.ResponseKey = KeyFallback
		return out
	}

	switch intent {
	case model.IntentBookClass:
		return m.handleBookClass(session, merged, out)
	case model.IntentCancelClass, model.IntentCancelBooking:
		return m.handleCancelRequest(session, merged, out)
	case model.IntentShowSchedule:
		out.ResponseKey = KeySchedule
		out.Schedule = m.calendar.Upcoming()
		return out
	case model.IntentViewBookings:
		return m.handleViewBookings(session, merged, out)
	case model.IntentSearchTutor:
		return m.handleSearchTutor(merged, out)
	}

	out.ResponseKey = KeyFallback
	return out
}

func (m *Machine) handleBookClass(session *model.Session, merged model.EntityBag, out *model.Outcome) *model.Outcome {
	date, hasDate := merged.Get(model.EntityDate)
	slot, hasTime := merged.Get(model.EntityTime)

	switch {
	case hasDate && hasTime:
		return m.bookSlot(session, date, slot, out)
	case hasDate:
		session.State = model.StateAwaitingTime
		out.State = session.State
		out.ResponseKey = KeyAskTime
		out.Params = map[string]string{"date": date}
		out.MissingInfo = []string{"time"}
		out.NeedsClarification = true
		return out
	default:
		session.State = model.StateAwaitingDate
		out.State = session.State
		out.ResponseKey = KeyAskDate
		out.MissingInfo = []string{"date"}
		out.NeedsClarification = true
		return out
	}
}

func (m *Machine) handleAwaitingDate(session *model.Session, merged model.EntityBag, out *model.Outcome) *model.Outcome {
	date, ok := out.Entities.Get(model.EntityDate)
	if !ok {
		out.ResponseKey = KeyDateRetry
		out.MissingInfo = []string{"date"}
		out.NeedsClarification = true
		return out
	}

	session.State = model.StateAwaitingTime
	out.State = session.State
	out.ResponseKey = KeySlotsForDate
	out.Params = map[string]string{"date": date}
	out.Slots = m.calendar.AvailableSlots(date)
	out.MissingInfo = []string{"time"}
	out.NeedsClarification = true
	return out
}

func (m *Machine) handleAwaitingTime(session *model.Session, merged model.EntityBag, out *model.Outcome) *model.Outcome {
	slot, ok := out.Entities.Get(model.EntityTime)
	if !ok {
		out.ResponseKey = KeyTimeRetry
		out.MissingInfo = []string{"time"}
		out.NeedsClarification = true
		return out
	}

	date, _ := merged.Get(model.EntityDate)
	return m.bookSlot(session, date, slot, out)
}

func (m *Machine) bookSlot(session *model.Session, date, slot string, out *model.Outcome) *model.Outcome {
	booked := m.calendar.Book(date, slot, session.UserID)
	session.Reset()
	out.State = session.State

	if booked {
		out.ResponseKey = KeyBookingConfirmed
		out.Params = map[string]string{"date": date, "time": slot}
		out.ActionData = model.EntityBag{model.EntityDate: date, model.EntityTime: slot}
	} else {
		out.ResponseKey = KeyBookingFailed
	}
	return out
}

func (m *Machine) handleCancelRequest(session *model.Session, merged model.EntityBag, out *model.Outcome) *model.Outcome {
	date, hasDate := merged.Get(model.EntityDate)
	slot, hasTime := merged.Get(model.EntityTime)
	if hasDate && hasTime {
		return m.cancelSlot(session, date, slot, out)
	}

	bookings := m.calendar.UserBookings(session.UserID)
	if len(bookings) == 0 {
		out.ResponseKey = KeyNoBookings
		return out
	}

	session.State = model.StateAwaitingCancelTarget
	out.State = session.State
	out.ResponseKey = KeyCancelList
	out.Bookings = bookings
	out.MissingInfo = []string{"cancel_target"}
	out.NeedsClarification = true
	return out
}

func (m *Machine) handleAwaitingCancel(session *model.Session, merged model.EntityBag, out *model.Outcome) *model.Outcome {
	date, hasDate := merged.Get(model.EntityDate)
	slot, hasTime := merged.Get(model.EntityTime)
	if !hasDate || !hasTime {
		out.ResponseKey = KeyCancelRetry
		out.MissingInfo = []string{"cancel_target"}
		out.NeedsClarification = true
		return out
	}
	return m.cancelSlot(session, date, slot, out)
}

func (m *Machine) cancelSlot(session *model.Session, date, slot string, out *model.Outcome) *model.Outcome {
	cancelled := m.calendar.Cancel(date, slot, session.UserID)
	session.Reset()
	out.State = session.State

	if cancelled {
		out.ResponseKey = KeyCancelSuccess
		out.Params = map[string]string{"date": date, "time": slot}
		out.ActionData = model.EntityBag{model.EntityDate: date, model.EntityTime: slot}
	} else {
		out.ResponseKey = KeyCancelNotFound
	}
	return out
}

func (m *Machine) handleViewBookings(session *model.Session, merged model.EntityBag, out *model.Outcome) *model.Outcome {
	bookings := m.calendar.UserBookings(session.UserID)

	params := map[string]string{}
	if date, ok := merged.Get(model.EntityDate); ok {
		params["date"] = date
		filtered := bookings[:0:0]
		for _, b := range bookings {
			if b.Date == date {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	} else if name, ok := merged.Get(model.EntityTutorName); ok {
		params["tutor_name"] = name
	}

	out.ResponseKey = KeyBookingList
	out.Params = params
	out.Bookings = bookings
	return out
}

func (m *Machine) handleSearchTutor(merged model.EntityBag, out *model.Outcome) *model.Outcome {
	subject, hasSubject := merged.Get(model.EntitySubject)
	name, hasName := merged.Get(model.EntityTutorName)

	if !hasSubject && !hasName {
		out.ResponseKey = KeySearchClarify
		out.MissingInfo = []string{"search_query"}
		out.NeedsClarification = true
		return out
	}

	out.ActionData = merged.Clone()
	if hasSubject {
		out.ResponseKey = KeySearchSubject
		out.Params = map[string]string{"subject": subject}
	} else {
		out.ResponseKey = KeySearchTutor
		out.Params = map[string]string{"tutor_name": name}
	}
	return out
}
