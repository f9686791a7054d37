package models

// RawEvent is a notification delivered by the camera side. Id is the
// upstream ding identifier, unrelated to the capture timestamp.
type RawEvent struct {
	Id   string `json:"id"`
	Kind string `json:"kind"`
}
