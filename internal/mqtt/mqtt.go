package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

// DefaultClientID is used when a target leaves ClientID empty.
const DefaultClientID = "favicon"

const timeout = 5 * time.Second

// Target is the broker and topic a message goes to.
type Target struct {
	Broker   string
	ClientID string
	Topic    string
	QoS      byte
	Retain   bool
	Username string
	Password string
}

// Publish connects to t.Broker, publishes message to t.Topic and
// disconnects. Each call uses a fresh connection.
func Publish(t Target, message string) error {
	clientID := t.ClientID
	if clientID == "" {
		clientID = DefaultClientID
	}
	opts := pahomqtt.NewClientOptions().
		AddBroker(t.Broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout).
		SetConnectRetry(false)

	if t.Username != "" {
		opts.SetUsername(t.Username)
	}
	if t.Password != "" {
		opts.SetPassword(t.Password)
	}

	client := pahomqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: connect timeout")
	}
	if tok.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", tok.Error())
	}
	defer client.Disconnect(250)

	pub := client.Publish(t.Topic, t.QoS, t.Retain, message)
	if !pub.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt: publish timeout")
	}
	if pub.Error() != nil {
		return fmt.Errorf("mqtt: publish: %w", pub.Error())
	}
	return nil
}
