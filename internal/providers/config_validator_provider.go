package providers

import (
	"errors"

	"github.com/gookit/validate"

	"doorbelld/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	c := cv.conf
	if c.Media.Mode == "url" && c.Media.BaseUrl == "" {
		return errors.New("media.baseUrl is required in url mode")
	}
	if c.Capture.VideoEnabled && c.Capture.VideoDuration <= 0 {
		return errors.New("capture.videoDuration must be positive when video is enabled")
	}
	if c.Mqtt.Enabled && c.Mqtt.Broker == "" {
		return errors.New("mqtt.broker is required when mqtt is enabled")
	}
	if c.Mirror.Enabled && (c.Mirror.Endpoint == "" || c.Mirror.Bucket == "") {
		return errors.New("mirror.endpoint and mirror.bucket are required when mirror is enabled")
	}
	return nil
}
