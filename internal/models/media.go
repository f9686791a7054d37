package models

import (
	"path/filepath"
	"strings"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Media is a copied-out locator for a single stored file: either a base64
// payload or a URL, depending on the configured media mode.
type Media struct {
	Media           string    `json:"media"`
	Type            MediaType `json:"type"`
	DurationSeconds float64   `json:"durationSeconds,omitempty"`
}

// MediaTypeOf classifies a file name: .mp4 is video, anything else is an image.
func MediaTypeOf(name string) MediaType {
	if strings.EqualFold(filepath.Ext(name), ".mp4") {
		return MediaVideo
	}
	return MediaImage
}
