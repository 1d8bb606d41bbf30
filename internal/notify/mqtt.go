// Package notify publishes computed breakdowns to an MQTT broker so
// downstream consumers (dashboards, spreadsheets) can follow along.
// Publishing is fire-and-forget: a failed publish is logged, never
// surfaced to the computation.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/rkeulen/autokosten/internal/config"
	"github.com/rkeulen/autokosten/internal/models"
)

const topicPrefix = "autokosten/breakdowns/"

// Publisher publishes breakdowns. The zero value is a disabled
// publisher whose Publish is a no-op.
type Publisher struct {
	client mqtt.Client
}

// NewPublisher connects to the configured broker. An empty broker URL
// returns a disabled publisher and no error.
func NewPublisher(cfg config.MQTTConfig) (*Publisher, error) {
	if cfg.Broker == "" {
		return &Publisher{}, nil
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "autokosten"
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(clientID).
		SetConnectTimeout(5 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
		return nil, fmt.Errorf("connecting to mqtt broker: %v", token.Error())
	}
	return &Publisher{client: client}, nil
}

// Publish sends one breakdown as JSON to the plate's topic.
func (p *Publisher) Publish(b models.CostBreakdown) {
	if p == nil || p.client == nil {
		return
	}
	payload, err := json.Marshal(b)
	if err != nil {
		log.WithError(err).Error("marshal breakdown for publish")
		return
	}
	token := p.client.Publish(topicPrefix+b.Plate, 0, false, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			log.WithField("plate", b.Plate).WithError(token.Error()).Warn("publish breakdown failed")
		}
	}()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p != nil && p.client != nil {
		p.client.Disconnect(250)
	}
}
