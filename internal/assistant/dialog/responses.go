package dialog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bookingbot/server/internal/assistant/model"
	logx "github.com/bookingbot/server/pkg/logger"
)

// Response keys. Dialog decisions reference these instead of raw strings so
// a typo fails at selector construction, not mid-conversation.
const (
	KeyGreeting         model.ResponseKey = "greeting"
	KeyAskDate          model.ResponseKey = "ask_date"
	KeyAskTime          model.ResponseKey = "ask_time"
	KeyDateRetry        model.ResponseKey = "date_retry"
	KeyTimeRetry        model.ResponseKey = "time_retry"
	KeyBookingConfirmed model.ResponseKey = "booking_confirmed"
	KeyBookingFailed    model.ResponseKey = "booking_failed"
	KeyNoBookings       model.ResponseKey = "no_bookings"
	KeyCancelSuccess    model.ResponseKey = "cancel_success"
	KeyCancelNotFound   model.ResponseKey = "cancel_not_found"
	KeyCancelRetry      model.ResponseKey = "cancel_retry"
	KeyCancelList       model.ResponseKey = "cancel_list"
	KeyGoodbye          model.ResponseKey = "goodbye"
	KeySchedule         model.ResponseKey = "schedule"
	KeySlotsForDate     model.ResponseKey = "slots_for_date"
	KeyBookingList      model.ResponseKey = "booking_list"
	KeySearchClarify    model.ResponseKey = "search_clarify"
	KeySearchSubject    model.ResponseKey = "search_subject"
	KeySearchTutor      model.ResponseKey = "search_tutor"
	KeyFallback         model.ResponseKey = "fallback"
)

// template is one canned response variant. Required names every placeholder
// the text expects; the set is checked against the text at construction.
type template struct {
	text     string
	required []string
}

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

var defaultTemplates = map[model.ResponseKey]template{
	KeyGreeting: {text: "Hello! I'm here to help you book classes. You can ask me to:\n" +
		"- Book a class\n" +
		"- Cancel a booking\n" +
		"- Show the schedule\n" +
		"How can I assist you?"},
	KeyAskDate: {text: "Sure! I'd be happy to help you book a class. " +
		"What date would you like to book? (e.g., today, tomorrow, Monday, 2025-10-05)"},
	KeyAskTime: {
		text:     "Great! I see you want to book for {date}. What time would you prefer? (e.g., 9am, 10:00, 14:30)",
		required: []string{"date"},
	},
	KeyDateRetry: {text: "I couldn't understand that date. Please try again (e.g., today, tomorrow, Monday)"},
	KeyTimeRetry: {text: "I couldn't understand that time. Please try again (e.g., 9am, 14:00)"},
	KeyBookingConfirmed: {
		text:     "Perfect! Your class is booked for {date} at {time}. I'll send you a reminder. See you then!",
		required: []string{"date", "time"},
	},
	KeyBookingFailed: {text: "Sorry, that time slot is not available. Would you like to see available slots?"},
	KeyNoBookings:    {text: "You don't have any bookings at the moment."},
	KeyCancelSuccess: {
		text:     "Your booking for {date} at {time} has been cancelled.",
		required: []string{"date", "time"},
	},
	KeyCancelNotFound: {text: "I couldn't find that booking. Please check your bookings."},
	KeyCancelRetry:    {text: "Please tell me the date and time of the booking you want to cancel (e.g., tomorrow at 10:00)."},
	KeyGoodbye: {text: "Goodbye! Have a great day! Feel free to come back anytime you need to book a class."},
	KeySearchClarify: {text: "What would you like to search for? You can specify a subject (like 'math' or 'english') or a tutor's name."},
	KeySearchSubject: {
		text:     "Searching for {subject} tutors...",
		required: []string{"subject"},
	},
	KeySearchTutor: {
		text:     "Searching for {tutor_name}...",
		required: []string{"tutor_name"},
	},
	KeyFallback: {text: "I'm not sure I understood that. Could you please rephrase? You can:\n" +
		"- Say hello to start\n" +
		"- Book a class\n" +
		"- Cancel a booking\n" +
		"- Show the schedule\n" +
		"- Say goodbye to end"},
	// Composite keys rendered from structured data rather than placeholders.
	KeyCancelList:   {text: "Here are your current bookings:"},
	KeySchedule:     {text: "Available slots for the next 7 days:"},
	KeySlotsForDate: {text: "Available slots for {date}:", required: []string{"date"}},
	KeyBookingList:  {text: "Showing your bookings..."},
}

// ResponseSelector renders canned responses by key. Construction fails when
// a template's declared placeholders disagree with its text.
type ResponseSelector struct {
	templates map[model.ResponseKey]template
}

func NewResponseSelector() (*ResponseSelector, error) {
	return newResponseSelector(defaultTemplates)
}

func newResponseSelector(templates map[model.ResponseKey]template) (*ResponseSelector, error) {
	for key, tpl := range templates {
		found := map[string]bool{}
		for _, m := range placeholderPattern.FindAllStringSubmatch(tpl.text, -1) {
			found[m[1]] = true
		}
		declared := map[string]bool{}
		for _, name := range tpl.required {
			declared[name] = true
		}
		for name := range found {
			if !declared[name] {
				return nil, fmt.Errorf("template %q uses undeclared placeholder {%s}", key, name)
			}
		}
		for name := range declared {
			if !found[name] {
				return nil, fmt.Errorf("template %q declares unused placeholder {%s}", key, name)
			}
		}
	}
	return &ResponseSelector{templates: templates}, nil
}

// Render fills the keyed template from params. A missing param returns the
// raw template text so the conversation never dies on a formatting gap.
func (s *ResponseSelector) Render(key model.ResponseKey, params map[string]string) string {
	tpl, ok := s.templates[key]
	if !ok {
		logx.Warn().Str("key", string(key)).Msg("unknown response key")
		return "I'm not sure how to help with that. Could you rephrase?"
	}
	for _, name := range tpl.required {
		if _, ok := params[name]; !ok {
			logx.Warn().Str("key", string(key)).Str("missing", name).Msg("response param absent, returning raw template")
			return tpl.text
		}
	}
	out := tpl.text
	for _, name := range tpl.required {
		out = strings.ReplaceAll(out, "{"+name+"}", params[name])
	}
	return out
}

// Compose renders an outcome into its final message, appending structured
// data (slot lists, booking lists, the availability window) for the
// composite keys.
func (s *ResponseSelector) Compose(outcome *model.Outcome) string {
	base := s.Render(outcome.ResponseKey, outcome.Params)

	switch outcome.ResponseKey {
	case KeySlotsForDate:
		var b strings.Builder
		b.WriteString(base)
		b.WriteString("\n")
		b.WriteString(strings.Join(outcome.Slots, ", "))
		b.WriteString("\n\nWhat time would you prefer?")
		return b.String()

	case KeyCancelList:
		var b strings.Builder
		b.WriteString(base)
		b.WriteString("\n")
		for i, bk := range outcome.Bookings {
			fmt.Fprintf(&b, "%d. %s at %s\n", i+1, bk.Date, bk.Time)
		}
		b.WriteString("\nPlease tell me the date and time you want to cancel.")
		return b.String()

	case KeyBookingList:
		if len(outcome.Bookings) == 0 {
			return s.Render(KeyNoBookings, nil)
		}
		var b strings.Builder
		b.WriteString(s.bookingListHeader(outcome.Params))
		b.WriteString("\n")
		for i, bk := range outcome.Bookings {
			fmt.Fprintf(&b, "%d. %s at %s\n", i+1, bk.Date, bk.Time)
		}
		return strings.TrimRight(b.String(), "\n")

	case KeySchedule:
		var b strings.Builder
		b.WriteString(base)
		b.WriteString("\n\n")
		for _, day := range outcome.Schedule {
			fmt.Fprintf(&b, "%s (%s):\n", day.Weekday, day.Date)
			if len(day.Slots) > 0 {
				b.WriteString("  " + strings.Join(day.Slots, ", ") + "\n")
			} else {
				b.WriteString("  No slots available\n")
			}
		}
		return strings.TrimRight(b.String(), "\n")
	}
	return base
}

func (s *ResponseSelector) bookingListHeader(params map[string]string) string {
	if date, ok := params["date"]; ok {
		return fmt.Sprintf("Showing your bookings for %s...", date)
	}
	if name, ok := params["tutor_name"]; ok {
		return fmt.Sprintf("Showing your bookings with %s...", name)
	}
	return s.templates[KeyBookingList].text
}

// Keys returns every registered response key sorted, for diagnostics.
func (s *ResponseSelector) Keys() []model.ResponseKey {
	out := make([]model.ResponseKey, 0, len(s.templates))
	for k := range s.templates {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
