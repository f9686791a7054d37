package mqttclient

import (
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"doorbelld/internal/providers"
	"doorbelld/internal/structures"
)

type Client interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
	Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error
	Close()
}

type PahoClient struct {
	client mqtt.Client
	logger providers.Logger
}

// NewClientProvider connects to the configured broker, or returns a client
// that does nothing when MQTT is disabled.
func NewClientProvider(conf *structures.Config, logger providers.Logger) (Client, error) {
	if !conf.Mqtt.Enabled {
		return &noopClient{}, nil
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(conf.Mqtt.Broker)
	opts.SetClientID(conf.Mqtt.ClientId)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(5 * time.Second)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		logger.Warnf(providers.TypeMotion, "MQTT connection lost: %s", err)
	})

	if conf.Mqtt.Username != "" {
		opts.SetUsername(conf.Mqtt.Username)
		opts.SetPassword(conf.Mqtt.Password)
	}

	cli := mqtt.NewClient(opts)
	token := cli.Connect()
	if ok := token.WaitTimeout(10 * time.Second); !ok {
		return nil, errors.New("mqtt connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", err)
	}

	logger.Infof(providers.TypeApp, "Connected to MQTT broker %s", conf.Mqtt.Broker)
	return &PahoClient{client: cli, logger: logger}, nil
}

func (c *PahoClient) Publish(topic string, qos byte, retained bool, payload []byte) error {
	token := c.client.Publish(topic, qos, retained, payload)
	token.Wait()
	return token.Error()
}

func (c *PahoClient) Subscribe(topic string, qos byte, handler func(topic string, payload []byte)) error {
	token := c.client.Subscribe(topic, qos, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

func (c *PahoClient) Close() {
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(250)
	}
}

type noopClient struct{}

func (n *noopClient) Publish(_ string, _ byte, _ bool, _ []byte) error { return nil }
func (n *noopClient) Subscribe(_ string, _ byte, _ func(string, []byte)) error {
	return nil
}
func (n *noopClient) Close() {}
