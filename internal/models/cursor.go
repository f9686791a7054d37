package models

// TrackedEventCursor is the durable record of the last raw notification id.
type TrackedEventCursor struct {
	LastTrackedEventId string `json:"lastTrackedEventId"`
}
