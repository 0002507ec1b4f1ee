package model

// Intent is one label from the fixed closed set describing the user's goal
// for a single turn.
type Intent string

const (
	IntentGreeting      Intent = "greeting"
	IntentBookClass     Intent = "book_class"
	IntentCancelClass   Intent = "cancel_class"
	IntentShowSchedule  Intent = "show_schedule"
	IntentGoodbye       Intent = "goodbye"
	IntentSearchTutor   Intent = "search_tutor"
	IntentViewBookings  Intent = "view_bookings"
	IntentCancelBooking Intent = "cancel_booking"
	IntentGeneral       Intent = "general"
)

// IntentPrediction pairs a predicted intent with the maximum posterior
// probability across the label set. Keyword-fallback confidences are fixed
// constants, not calibrated probabilities, and are not comparable across calls.
type IntentPrediction struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// EntityKind enumerates the slots the entity extractors can fill.
type EntityKind string

const (
	EntitySubject   EntityKind = "subject"
	EntityTutorName EntityKind = "tutor_name"
	EntityDate      EntityKind = "date"
	EntityTime      EntityKind = "time"
	EntityAction    EntityKind = "action"
)

// EntityBag maps entity kinds to canonical values (dates as YYYY-MM-DD, times
// as HH:MM). A kind is present only when detected; absence means unknown,
// never an empty string.
type EntityBag map[EntityKind]string

// Get returns the value for kind and whether it is present.
func (b EntityBag) Get(kind EntityKind) (string, bool) {
	v, ok := b[kind]
	return v, ok
}

// Has reports whether an entity of the given kind was detected.
func (b EntityBag) Has(kind EntityKind) bool {
	_, ok := b[kind]
	return ok
}

// Clone returns an independent copy of the bag.
func (b EntityBag) Clone() EntityBag {
	out := make(EntityBag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Merge returns a new bag where values from fresh overwrite prior values for
// the same kind (most-recent-wins) and kinds absent from fresh keep their
// previous values. Neither receiver nor argument is mutated.
func (b EntityBag) Merge(fresh EntityBag) EntityBag {
	out := b.Clone()
	for k, v := range fresh {
		out[k] = v
	}
	return out
}
