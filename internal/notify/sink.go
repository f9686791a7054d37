package notify

import (
	"context"
	"errors"

	json "github.com/goccy/go-json"

	"doorbelld/internal/models"
	"doorbelld/internal/mqttclient"
	"doorbelld/internal/structures"
)

const MessageTypeEvent = "event"

// Sink receives every newly materialized event. Delivery is best effort.
type Sink interface {
	Notify(ctx context.Context, event *models.Event) error
}

type Message struct {
	Type  string        `json:"type"`
	Event *models.Event `json:"event"`
}

func encodeEvent(event *models.Event) ([]byte, error) {
	return json.Marshal(Message{Type: MessageTypeEvent, Event: event})
}

// NewSink fans out to the websocket hub and, when MQTT is on, the broker.
func NewSink(conf *structures.Config, hub *WebsocketHub, client mqttclient.Client) Sink {
	if !conf.Mqtt.Enabled {
		return hub
	}
	return MultiSink{hub, NewMQTTSink(conf, client)}
}

type MultiSink []Sink

func (m MultiSink) Notify(ctx context.Context, event *models.Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type MQTTSink struct {
	client mqttclient.Client
	topic  string
}

func NewMQTTSink(conf *structures.Config, client mqttclient.Client) *MQTTSink {
	return &MQTTSink{client: client, topic: conf.Mqtt.EventTopic}
}

func (s *MQTTSink) Notify(_ context.Context, event *models.Event) error {
	payload, err := encodeEvent(event)
	if err != nil {
		return err
	}
	return s.client.Publish(s.topic, 1, false, payload)
}
