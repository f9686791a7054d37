package jobs

import (
	"bytes"
	"context"
	"errors"
	"strings"

	json "github.com/goccy/go-json"

	"doorbelld/internal/models"
	"doorbelld/internal/mqttclient"
	"doorbelld/internal/providers"
	"doorbelld/internal/services"
	"doorbelld/internal/structures"
)

var errEmptyPayload = errors.New("empty motion payload")

// MqttListener turns messages on the motion topic into raw events.
type MqttListener struct {
	client mqttclient.Client
	topic  string
	motion services.MotionServiceInterface
	logger providers.Logger
}

func NewMqttListener(conf *structures.Config, client mqttclient.Client, motion services.MotionServiceInterface, logger providers.Logger) *MqttListener {
	return &MqttListener{
		client: client,
		topic:  conf.Mqtt.MotionTopic,
		motion: motion,
		logger: logger,
	}
}

func (l *MqttListener) Start() error {
	if l.topic == "" {
		return nil
	}
	if err := l.client.Subscribe(l.topic, 1, l.Handle); err != nil {
		return err
	}
	l.logger.Infof(providers.TypeMotion, "Listening for motion on %s", l.topic)
	return nil
}

func (l *MqttListener) Handle(topic string, payload []byte) {
	raw, err := ParseRawEvent(payload)
	if err != nil {
		l.logger.Warnf(providers.TypeMotion, "Bad payload on %s: %s", topic, err)
		return
	}
	if _, err := l.motion.HandleNotification(context.Background(), raw); err != nil {
		l.logger.Errorf(providers.TypeMotion, "Motion event %s: %s", raw.Id, err)
	}
}

type rawPayload struct {
	Id   json.RawMessage `json:"id"`
	Kind string          `json:"kind"`
}

// ParseRawEvent accepts {"id": ..., "kind": ...} with a string or numeric
// id, or a bare id.
func ParseRawEvent(payload []byte) (models.RawEvent, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return models.RawEvent{}, errEmptyPayload
	}
	if trimmed[0] != '{' {
		return models.RawEvent{Id: strings.Trim(string(trimmed), `"`)}, nil
	}

	var p rawPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return models.RawEvent{}, err
	}
	raw := models.RawEvent{Kind: p.Kind}
	if len(p.Id) > 0 && p.Id[0] == '"' {
		if err := json.Unmarshal(p.Id, &raw.Id); err != nil {
			return models.RawEvent{}, err
		}
	} else if !bytes.Equal(p.Id, []byte("null")) {
		raw.Id = string(p.Id)
	}
	if raw.Id == "" {
		return models.RawEvent{}, errEmptyPayload
	}
	return raw, nil
}
