package model

// Booking is one reserved (date, time) slot on the shared calendar. At most
// one booking exists per (date, time) pair system-wide.
type Booking struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	UserID string `json:"user_id"`
}

// DayAvailability is one day of a rendered availability window.
type DayAvailability struct {
	Date    string   `json:"date"`
	Weekday string   `json:"weekday"`
	Slots   []string `json:"slots"`
}
