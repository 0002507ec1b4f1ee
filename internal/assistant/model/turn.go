package model

// TurnInput represents one user utterance to process.
type TurnInput struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Utterance string `json:"utterance"`
}

// AnalyzedUtterance is the normalizer node output: the raw utterance plus its
// lowercased, typo-corrected, whitespace-collapsed form.
type AnalyzedUtterance struct {
	SessionID  string
	UserID     string
	Raw        string
	Normalized string
}

// Understanding is the NLU node output for one turn: the intent prediction
// and the entities extracted fresh from this utterance.
type Understanding struct {
	SessionID  string
	UserID     string
	Raw        string
	Prediction IntentPrediction
	Entities   EntityBag
}

// ResponseType tags how the assistant's reply should be interpreted.
type ResponseType string

const (
	// ResponseAction carries an executable or executed action with its data.
	ResponseAction ResponseType = "action"
	// ResponseClarification asks the user to supply missing information.
	ResponseClarification ResponseType = "clarification"
	// ResponseMessage is plain conversational text with no pending action.
	ResponseMessage ResponseType = "message"
)

// Response is the rendered, user-facing part of a turn result.
type Response struct {
	Type       ResponseType `json:"type"`
	Message    string       `json:"message"`
	ActionData EntityBag    `json:"action_data,omitempty"`
}

// ResponseKey selects a response template. The dialog package owns the
// template catalog.
type ResponseKey string

// Outcome is the dialog state machine decision for a turn, before the
// response text is rendered.
type Outcome struct {
	SessionID          string
	Intent             Intent
	Confidence         float64
	Entities           EntityBag
	Context            EntityBag
	State              DialogState
	MissingInfo        []string
	NeedsClarification bool

	ResponseKey ResponseKey
	Params      map[string]string
	ActionData  EntityBag

	// Structured payloads for composite renderings.
	Slots    []string
	Bookings []Booking
	Schedule []DayAvailability
}

// TurnResult is the externally observable contract of one processed turn,
// regardless of transport.
type TurnResult struct {
	SessionID          string      `json:"session_id"`
	Intent             Intent      `json:"intent"`
	Confidence         float64     `json:"confidence"`
	Entities           EntityBag   `json:"entities"`
	Context            EntityBag   `json:"context"`
	MissingInfo        []string    `json:"missing_info"`
	Response           Response    `json:"response"`
	NeedsClarification bool        `json:"needs_clarification"`
	State              DialogState `json:"state"`
}

// TurnState stores per-invocation state for the turn graph.
// All reads/writes happen only inside graph state handlers, which the graph
// runtime serializes, so no additional locking is required.
type TurnState struct {
	SessionID     string
	UserID        string
	Understanding *Understanding
}
