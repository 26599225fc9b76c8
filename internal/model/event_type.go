package model

// EventType is a catalog entry describing a kind of event (wedding,
// reception, ...).  Bookings reference it by EventID without a constraint.
type EventType struct {
	EventID     string `json:"event_id"`
	EventName   string `json:"event_name"`
	Description string `json:"description"`
}
